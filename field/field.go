// Package field re-exports the prime field the circuit runs over.
//
// Everything here is a thin adapter around gnark-crypto's bls12-381
// scalar field element: the gadgets in the sibling packages never touch
// modular arithmetic directly, they go through this package so the
// field implementation stays swappable without touching a single
// constraint.
package field

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Element is a single value in the circuit's prime field.
type Element = fr.Element

// Zero returns the additive identity.
func Zero() Element {
	var z Element
	z.SetZero()
	return z
}

// One returns the multiplicative identity.
func One() Element {
	var o Element
	o.SetOne()
	return o
}

// FromInt64 builds an Element from a small signed constant.
func FromInt64(v int64) Element {
	var e Element
	e.SetInt64(v)
	return e
}

// FromBigInt reduces v modulo the field modulus.
func FromBigInt(v *big.Int) Element {
	var e Element
	e.SetBigInt(v)
	return e
}

// Add returns a+b.
func Add(a, b Element) Element {
	var r Element
	r.Add(&a, &b)
	return r
}

// Sub returns a-b.
func Sub(a, b Element) Element {
	var r Element
	r.Sub(&a, &b)
	return r
}

// Mul returns a*b.
func Mul(a, b Element) Element {
	var r Element
	r.Mul(&a, &b)
	return r
}

// Neg returns -a.
func Neg(a Element) Element {
	var r Element
	r.Neg(&a)
	return r
}

// Double returns 2*a.
func Double(a Element) Element {
	var r Element
	r.Double(&a)
	return r
}

// Square returns a*a.
func Square(a Element) Element {
	var r Element
	r.Square(&a)
	return r
}

// Inverse returns (1/a, true), or (0, false) iff a is zero.
func Inverse(a Element) (Element, bool) {
	if a.IsZero() {
		return Zero(), false
	}
	var r Element
	r.Inverse(&a)
	return r, true
}

// Sqrt returns (sqrt(a), true) if a is a quadratic residue, else (0, false).
func Sqrt(a Element) (Element, bool) {
	var r Element
	if r.Sqrt(&a) == nil {
		return Zero(), false
	}
	return r, true
}

// Equal reports whether a == b.
func Equal(a, b Element) bool {
	return a.Equal(&b)
}

// IsZero reports whether a is the additive identity.
func IsZero(a Element) bool {
	return a.IsZero()
}
