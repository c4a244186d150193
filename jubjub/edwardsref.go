package jubjub

import "github.com/zirclecrypto/sapling-gadgets/field"

// EdwardsAffine is an off-circuit point on the a=-1 twisted Edwards
// curve, used only by tests and by the fixed-base table builder in
// params.go (spec.md §8 checks every gadget's output against this reference).
type EdwardsAffine struct {
	X, Y field.Element
}

// Neutral returns the curve's identity element.
func Neutral() EdwardsAffine {
	return EdwardsAffine{X: field.Zero(), Y: field.One()}
}

// Add implements the standard unified addition law for a=-1 twisted
// Edwards curves:
//
//	x3 = (x1*y2 + x2*y1) / (1 + d*x1*x2*y1*y2)
//	y3 = (y1*y2 + x1*x2) / (1 - d*x1*x2*y1*y2)
//
// which is complete (defined at the identity and for p.Add(p)) and is
// exactly the relation the in-circuit addition gadget enforces.
func (p EdwardsAffine) Add(params *JubjubParams, q EdwardsAffine) EdwardsAffine {
	x1y2 := field.Mul(p.X, q.Y)
	x2y1 := field.Mul(q.X, p.Y)
	y1y2 := field.Mul(p.Y, q.Y)
	x1x2 := field.Mul(p.X, q.X)
	dx1x2y1y2 := field.Mul(params.d, field.Mul(x1x2, y1y2))

	xNum := field.Add(x1y2, x2y1)
	xDen := field.Add(field.One(), dx1x2y1y2)
	yNum := field.Add(y1y2, x1x2)
	yDen := field.Sub(field.One(), dx1x2y1y2)

	xDenInv, _ := field.Inverse(xDen)
	yDenInv, _ := field.Inverse(yDen)

	return EdwardsAffine{
		X: field.Mul(xNum, xDenInv),
		Y: field.Mul(yNum, yDenInv),
	}
}

// Double returns p+p.
func (p EdwardsAffine) Double(params *JubjubParams) EdwardsAffine {
	return p.Add(params, p)
}

// Equal reports whether p and q are the same affine point.
func (p EdwardsAffine) Equal(q EdwardsAffine) bool {
	return field.Equal(p.X, q.X) && field.Equal(p.Y, q.Y)
}

// OnCurve reports whether p satisfies -x^2+y^2=1+d*x^2*y^2.
func (p EdwardsAffine) OnCurve(params *JubjubParams) bool {
	x2 := field.Square(p.X)
	y2 := field.Square(p.Y)
	lhs := field.Sub(y2, x2)
	rhs := field.Add(field.One(), field.Mul(params.d, field.Mul(x2, y2)))
	return field.Equal(lhs, rhs)
}

// ScalarMul computes bits-weighted double-and-add multiplication of p
// by a little-endian bit sequence, the off-circuit analogue of the
// variable-base multiplication gadget.
func (p EdwardsAffine) ScalarMul(params *JubjubParams, bitsLE []bool) EdwardsAffine {
	acc := Neutral()
	base := p
	for _, bit := range bitsLE {
		if bit {
			acc = acc.Add(params, base)
		}
		base = base.Double(params)
	}
	return acc
}

// ScalarMulInt computes v*p for a small non-negative int v by v
// repeated additions.
func (p EdwardsAffine) ScalarMulInt(params *JubjubParams, v int) EdwardsAffine {
	acc := Neutral()
	for i := 0; i < v; i++ {
		acc = acc.Add(params, p)
	}
	return acc
}

