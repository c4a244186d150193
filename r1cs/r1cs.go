// Package r1cs describes the constraint-system capability every gadget in
// this module is written against: variable allocation with a witness
// closure, rank-1 constraint enforcement, and namespacing.
//
// This mirrors the low-level R1CS surface gnark's own frontend is built
// on top of (see the linear-expression/R1C shape in gnark's
// internal/backend/compiled and frontend/cs packages) rather than
// gnark's higher-level frontend.API: the gadgets below need to name each
// constraint and assert on its namespace path (spec-mandated, see
// §8/§9), which only a raw A·B=C builder exposes.
package r1cs

import "github.com/zirclecrypto/sapling-gadgets/field"

// Variable is an opaque handle into a constraint system's assignment
// vector. Variable 0 is always the distinguished constant-one variable.
type Variable int

// Term is a single coefficient*variable product inside a linear
// combination.
type Term struct {
	Coeff field.Element
	Var   Variable
}

// LinearCombination is a formal sum of Terms: Σ coeff_i * var_i.
type LinearCombination []Term

// Add appends var with coefficient 1.
func (lc LinearCombination) Add(v Variable) LinearCombination {
	return append(lc, Term{Coeff: field.One(), Var: v})
}

// Sub appends var with coefficient -1.
func (lc LinearCombination) Sub(v Variable) LinearCombination {
	return append(lc, Term{Coeff: field.Neg(field.One()), Var: v})
}

// AddCoeff appends var with the given coefficient.
func (lc LinearCombination) AddCoeff(coeff field.Element, v Variable) LinearCombination {
	return append(lc, Term{Coeff: coeff, Var: v})
}

// SubCoeff appends var with the negated coefficient.
func (lc LinearCombination) SubCoeff(coeff field.Element, v Variable) LinearCombination {
	return append(lc, Term{Coeff: field.Neg(coeff), Var: v})
}

// LCBuilder builds a LinearCombination starting from the empty sum. It is
// the Go stand-in for the `|lc| lc + ...` closures in the reference
// implementation.
type LCBuilder func(LinearCombination) LinearCombination

// ConstraintSystem is the capability gadgets are written against. A
// concrete implementation (see r1cstest) owns the assignment vector and
// the constraint list; Namespace returns a view scoped under an
// additional path segment so that constraints and allocations compose
// their names into the full path the tests in §8/§9 key off of.
type ConstraintSystem interface {
	// Alloc runs compute, stores the resulting witness against a fresh
	// variable named path/name (where path is the current namespace),
	// and returns the variable together with its value. An error from
	// compute (AssignmentMissing, DivisionByZero) propagates unchanged.
	Alloc(name string, compute func() (field.Element, error)) (Variable, field.Element, error)

	// Enforce asserts a(LC)*b(LC) = c(LC) under the name path/name.
	Enforce(name string, a, b, c LCBuilder)

	// Namespace returns a ConstraintSystem scoped under an additional
	// path segment; the returned value shares the same underlying
	// assignment vector and constraint list.
	Namespace(name string) ConstraintSystem

	// One returns the distinguished constant-1 variable.
	One() Variable
}

// Kind classifies the way a gadget call can fail.
type Kind int

const (
	// AssignmentMissing means a witness closure needed an input value
	// that was never supplied (e.g. set-up-only mode).
	AssignmentMissing Kind = iota
	// DivisionByZero means a witness closure needed to invert a field
	// element that turned out to be zero.
	DivisionByZero
	// MalformedInput means the caller violated a structural precondition
	// (e.g. fixed_base_multiplication's bit-length-multiple-of-3 rule).
	MalformedInput
)

func (k Kind) String() string {
	switch k {
	case AssignmentMissing:
		return "assignment missing"
	case DivisionByZero:
		return "division by zero"
	case MalformedInput:
		return "malformed input"
	default:
		return "unknown"
	}
}

// Error is the error type every gadget in this module returns on
// witness-time failure. Path is the namespace the failure occurred
// under, when known.
type Error struct {
	Kind Kind
	Path string
	Msg  string
}

func (e *Error) Error() string {
	if e.Path == "" {
		return e.Kind.String() + ": " + e.Msg
	}
	return e.Path + ": " + e.Kind.String() + ": " + e.Msg
}

// New builds an *Error.
func New(kind Kind, path, msg string) *Error {
	return &Error{Kind: kind, Path: path, Msg: msg}
}
