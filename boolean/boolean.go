// Package boolean provides the field-constrained {0,1} value used to
// mask points in conditional selection and to address window-table
// lookups (spec.md §6.3).
package boolean

import (
	"github.com/zirclecrypto/sapling-gadgets/field"
	"github.com/zirclecrypto/sapling-gadgets/r1cs"
)

// Boolean is either an allocated circuit bit, the negation of one, or a
// compile-time constant.
type Boolean struct {
	variable r1cs.Variable
	value    bool
	hasValue bool
	negated  bool
	constant bool
}

// Constant returns a Boolean with no underlying variable, fixed at b.
func Constant(b bool) Boolean {
	return Boolean{value: b, hasValue: true, constant: true}
}

// Alloc allocates a circuit bit constrained to {0,1} with witness value.
// hasValue is false when value is unknown; the witness closure then
// reports AssignmentMissing, and Alloc returns that error without
// allocating a bit.
func Alloc(cs r1cs.ConstraintSystem, name string, value bool, hasValue bool) (Boolean, error) {
	sub := cs.Namespace(name)
	v, _, err := sub.Alloc("boolean", func() (field.Element, error) {
		if !hasValue {
			return field.Zero(), r1cs.New(r1cs.AssignmentMissing, name, "boolean witness not supplied")
		}
		if value {
			return field.One(), nil
		}
		return field.Zero(), nil
	})
	if err != nil {
		return Boolean{}, err
	}

	one := sub.One()
	// b * (1 - b) = 0, i.e. b*1 - b*b = 0  =>  b*b = b
	sub.Enforce("boolean constraint",
		func(lc r1cs.LinearCombination) r1cs.LinearCombination { return lc.Add(v) },
		func(lc r1cs.LinearCombination) r1cs.LinearCombination { return lc.Add(v) },
		func(lc r1cs.LinearCombination) r1cs.LinearCombination { return lc.Add(v) },
	)
	_ = one

	return Boolean{variable: v, value: value, hasValue: hasValue}, nil
}

// Not returns the logical negation of b. Negating twice returns to an
// allocated/constant representation of the original kind.
func (b Boolean) Not() Boolean {
	if b.constant {
		return Constant(!b.value)
	}
	return Boolean{
		variable: b.variable,
		value:    !b.value,
		hasValue: b.hasValue,
		negated:  !b.negated,
		constant: false,
	}
}

// GetValue returns the boolean's witness, or (false, false) if unknown.
func (b Boolean) GetValue() (bool, bool) {
	if !b.hasValue {
		return false, false
	}
	return b.value, true
}

// Lc returns the linear combination coeff*b, expressed over the
// constant-one variable for constant Booleans, and over the negation
// 1 - variable when b is a negated allocated bit.
func (b Boolean) Lc(one r1cs.Variable, coeff field.Element) r1cs.LinearCombination {
	if b.constant {
		if b.value {
			return r1cs.LinearCombination{}.AddCoeff(coeff, one)
		}
		return r1cs.LinearCombination{}
	}
	if b.negated {
		// coeff * (1 - v) = coeff*one - coeff*v
		return r1cs.LinearCombination{}.AddCoeff(coeff, one).SubCoeff(coeff, b.variable)
	}
	return r1cs.LinearCombination{}.AddCoeff(coeff, b.variable)
}

// And returns the logical AND of a and b, with a single multiplication
// constraint (a.Lc)*(b.Lc) = result. Works uniformly over allocated,
// negated, and constant Booleans.
func And(cs r1cs.ConstraintSystem, a, b Boolean) (Boolean, error) {
	sub := cs.Namespace("and")
	av, aok := a.GetValue()
	bv, bok := b.GetValue()

	v, _, err := sub.Alloc("result", func() (field.Element, error) {
		if !aok || !bok {
			return field.Zero(), r1cs.New(r1cs.AssignmentMissing, "and", "operand has no witness")
		}
		if av && bv {
			return field.One(), nil
		}
		return field.Zero(), nil
	})
	if err != nil {
		return Boolean{}, err
	}

	one := sub.One()
	sub.Enforce("and constraint",
		func(lc r1cs.LinearCombination) r1cs.LinearCombination { return append(lc, a.Lc(one, field.One())...) },
		func(lc r1cs.LinearCombination) r1cs.LinearCombination { return append(lc, b.Lc(one, field.One())...) },
		func(lc r1cs.LinearCombination) r1cs.LinearCombination { return lc.Add(v) },
	)

	return Boolean{variable: v, value: aok && bok && av && bv, hasValue: aok && bok}, nil
}
