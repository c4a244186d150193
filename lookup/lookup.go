// Package lookup implements the 3-bit windowed table lookup the
// fixed-base multiplier composes with Edwards addition (spec.md §6.2).
//
// Given three Booleans b0,b1,b2 (little-endian) and a table of 8
// (x,y) pairs, it returns the pair addressed by b2 b1 b0 as two fresh
// AllocatedNums, selected via a multilinear polynomial over {0,1}^3 so
// that two lookup constraints (one per coordinate), plus one for the
// product b1*b2, are required regardless of which entry is selected.
package lookup

import (
	"math/bits"

	"github.com/zirclecrypto/sapling-gadgets/boolean"
	"github.com/zirclecrypto/sapling-gadgets/field"
	"github.com/zirclecrypto/sapling-gadgets/num"
	"github.com/zirclecrypto/sapling-gadgets/r1cs"
)

// coefficients returns, for a length-8 table of values indexed by
// b2b1b0, the Möbius-transform coefficients c[S] such that
// values[i] == Σ_{S⊆{0,1,2}} c[S] · Π_{k∈S} bit_k, for every assignment
// of bits matching i. This is the standard subset-sum trick for
// multilinear interpolation over a binary cube.
func coefficients(values [8]field.Element) [8]field.Element {
	var coeffs [8]field.Element
	for mask := 0; mask < 8; mask++ {
		sum := field.Zero()
		sub := mask
		for {
			term := values[sub]
			if bits.OnesCount(uint(mask&^sub))%2 == 1 {
				term = field.Neg(term)
			}
			sum = field.Add(sum, term)
			if sub == 0 {
				break
			}
			sub = (sub - 1) & mask
		}
		coeffs[mask] = sum
	}
	return coeffs
}

// Lookup3XY selects table[b2*4+b1*2+b0] and returns it as two freshly
// allocated, constrained AllocatedNums.
func Lookup3XY(cs r1cs.ConstraintSystem, bits3 [3]boolean.Boolean, table [8][2]field.Element) (num.AllocatedNum, num.AllocatedNum, error) {
	b0, b1, b2 := bits3[0], bits3[1], bits3[2]

	index, known := selectedIndex(b0, b1, b2)

	resX, err := num.Alloc(cs.Namespace("x"), func() (field.Element, error) {
		if !known {
			return field.Zero(), r1cs.New(r1cs.AssignmentMissing, "x", "lookup bits have no witness")
		}
		return table[index][0], nil
	})
	if err != nil {
		return num.AllocatedNum{}, num.AllocatedNum{}, err
	}

	resY, err := num.Alloc(cs.Namespace("y"), func() (field.Element, error) {
		if !known {
			return field.Zero(), r1cs.New(r1cs.AssignmentMissing, "y", "lookup bits have no witness")
		}
		return table[index][1], nil
	})
	if err != nil {
		return num.AllocatedNum{}, num.AllocatedNum{}, err
	}

	var xs, ys [8]field.Element
	for i := 0; i < 8; i++ {
		xs[i] = table[i][0]
		ys[i] = table[i][1]
	}
	xc := coefficients(xs)
	yc := coefficients(ys)

	precomp, err := boolean.And(cs.Namespace("precomp"), b1, b2)
	if err != nil {
		return num.AllocatedNum{}, num.AllocatedNum{}, err
	}

	one := cs.One()

	cs.Enforce("x-coordinate lookup",
		func(lc r1cs.LinearCombination) r1cs.LinearCombination {
			lc = lc.AddCoeff(xc[0b001], one)
			lc = append(lc, b1.Lc(one, xc[0b011])...)
			lc = append(lc, b2.Lc(one, xc[0b101])...)
			lc = append(lc, precomp.Lc(one, xc[0b111])...)
			return lc
		},
		func(lc r1cs.LinearCombination) r1cs.LinearCombination {
			return append(lc, b0.Lc(one, field.One())...)
		},
		func(lc r1cs.LinearCombination) r1cs.LinearCombination {
			lc = lc.Add(resX.GetVariable())
			lc = lc.SubCoeff(xc[0b000], one)
			lc = append(lc, negateLc(b1.Lc(one, xc[0b010]))...)
			lc = append(lc, negateLc(b2.Lc(one, xc[0b100]))...)
			lc = append(lc, negateLc(precomp.Lc(one, xc[0b110]))...)
			return lc
		},
	)

	cs.Enforce("y-coordinate lookup",
		func(lc r1cs.LinearCombination) r1cs.LinearCombination {
			lc = lc.AddCoeff(yc[0b001], one)
			lc = append(lc, b1.Lc(one, yc[0b011])...)
			lc = append(lc, b2.Lc(one, yc[0b101])...)
			lc = append(lc, precomp.Lc(one, yc[0b111])...)
			return lc
		},
		func(lc r1cs.LinearCombination) r1cs.LinearCombination {
			return append(lc, b0.Lc(one, field.One())...)
		},
		func(lc r1cs.LinearCombination) r1cs.LinearCombination {
			lc = lc.Add(resY.GetVariable())
			lc = lc.SubCoeff(yc[0b000], one)
			lc = append(lc, negateLc(b1.Lc(one, yc[0b010]))...)
			lc = append(lc, negateLc(b2.Lc(one, yc[0b100]))...)
			lc = append(lc, negateLc(precomp.Lc(one, yc[0b110]))...)
			return lc
		},
	)

	return resX, resY, nil
}

func negateLc(lc r1cs.LinearCombination) r1cs.LinearCombination {
	out := make(r1cs.LinearCombination, len(lc))
	for i, t := range lc {
		out[i] = r1cs.Term{Coeff: field.Neg(t.Coeff), Var: t.Var}
	}
	return out
}

func selectedIndex(b0, b1, b2 boolean.Boolean) (int, bool) {
	v0, ok0 := b0.GetValue()
	v1, ok1 := b1.GetValue()
	v2, ok2 := b2.GetValue()
	if !ok0 || !ok1 || !ok2 {
		return 0, false
	}
	idx := 0
	if v0 {
		idx += 1
	}
	if v1 {
		idx += 2
	}
	if v2 {
		idx += 4
	}
	return idx, true
}
