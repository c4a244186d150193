package jubjub

import "github.com/zirclecrypto/sapling-gadgets/field"

// MontgomeryAffine is an off-circuit point on the monic Montgomery
// curve y^2 = x^3 + A*x^2 + x, the curve the in-circuit add/double
// gadgets operate on directly (their formulas carry no separate B
// coefficient — see DESIGN.md).
type MontgomeryAffine struct {
	X, Y field.Element
}

// Add implements the standard Montgomery addition law for distinct
// points:
//
//	lambda = (y2-y1)/(x2-x1)
//	x3 = lambda^2 - A - x1 - x2
//	y3 = lambda*(x1-x3) - y1
func (p MontgomeryAffine) Add(params *JubjubParams, q MontgomeryAffine) MontgomeryAffine {
	dx := field.Sub(q.X, p.X)
	dy := field.Sub(q.Y, p.Y)
	dxInv, _ := field.Inverse(dx)
	lambda := field.Mul(dy, dxInv)

	x3 := field.Sub(field.Sub(field.Sub(field.Square(lambda), params.a), p.X), q.X)
	y3 := field.Sub(field.Mul(lambda, field.Sub(p.X, x3)), p.Y)
	return MontgomeryAffine{X: x3, Y: y3}
}

// Double implements the tangent-line doubling law:
//
//	lambda = (3*x1^2 + 2*A*x1 + 1) / (2*y1)
//	x3 = lambda^2 - A - 2*x1
//	y3 = lambda*(x1-x3) - y1
func (p MontgomeryAffine) Double(params *JubjubParams) MontgomeryAffine {
	x1 := p.X
	three := field.FromInt64(3)
	num := field.Add(field.Add(field.Mul(three, field.Square(x1)), field.Mul(params.twoA, x1)), field.One())
	den := field.Double(p.Y)
	denInv, _ := field.Inverse(den)
	lambda := field.Mul(num, denInv)

	x3 := field.Sub(field.Sub(field.Square(lambda), params.a), field.Double(x1))
	y3 := field.Sub(field.Mul(lambda, field.Sub(x1, x3)), p.Y)
	return MontgomeryAffine{X: x3, Y: y3}
}

// OnCurve reports whether p satisfies y^2 = x^3 + A*x^2 + x.
func (p MontgomeryAffine) OnCurve(params *JubjubParams) bool {
	lhs := field.Square(p.Y)
	x2 := field.Square(p.X)
	rhs := field.Add(field.Add(field.Mul(field.Mul(p.X, x2), field.One()), field.Mul(params.a, x2)), p.X)
	return field.Equal(lhs, rhs)
}

// GetForXMontgomery returns the curve point with x-coordinate x, or
// ok=false if x^3+A*x^2+x has no square root; sign selects which of the
// two roots to return.
func GetForXMontgomery(params *JubjubParams, x field.Element, sign bool) (MontgomeryAffine, bool) {
	x2 := field.Square(x)
	x3 := field.Mul(x, x2)
	rhs := field.Add(field.Add(x3, field.Mul(params.a, x2)), x)
	y, ok := field.Sqrt(rhs)
	if !ok {
		return MontgomeryAffine{}, false
	}
	if sign {
		y = field.Neg(y)
	}
	return MontgomeryAffine{X: x, Y: y}, true
}

// FromEdwards maps an Edwards point to its Montgomery counterpart via
// the inverse of the birational map IntoEdwards uses:
//
//	x = (1+v) / (1-v)
//	y = scale * (1+v) / (u * (1-v))   [derived below]
//
// Concretely this module only needs the forward direction (Montgomery
// to Edwards, exercised by the IntoEdwards gadget); FromEdwards exists
// so tests can round-trip a generator without hand-deriving Montgomery
// coordinates by hand.
func FromEdwards(params *JubjubParams, p EdwardsAffine) (MontgomeryAffine, bool) {
	// v = (x-1)/(x+1)  =>  x = (1+v)/(1-v)
	onePlusV := field.Add(field.One(), p.Y)
	oneMinusV := field.Sub(field.One(), p.Y)
	if field.IsZero(oneMinusV) {
		return MontgomeryAffine{}, false
	}
	oneMinusVInv, _ := field.Inverse(oneMinusV)
	x := field.Mul(onePlusV, oneMinusVInv)

	// u = scale*x_mont/y_mont  =>  y_mont = scale*x_mont/u
	if field.IsZero(p.X) {
		return MontgomeryAffine{}, false
	}
	uInv, _ := field.Inverse(p.X)
	y := field.Mul(field.Mul(params.scale, x), uInv)

	return MontgomeryAffine{X: x, Y: y}, true
}

// IntoEdwards maps p to its birationally-equivalent Edwards point via
//
//	u = scale * x / y
//	v = (x-1) / (x+1)
//
// exactly the relation the IntoEdwards gadget enforces.
func (p MontgomeryAffine) IntoEdwards(params *JubjubParams) (EdwardsAffine, bool) {
	if field.IsZero(p.Y) {
		return EdwardsAffine{}, false
	}
	yInv, _ := field.Inverse(p.Y)
	u := field.Mul(field.Mul(params.scale, p.X), yInv)

	xPlus1 := field.Add(p.X, field.One())
	if field.IsZero(xPlus1) {
		return EdwardsAffine{}, false
	}
	xPlus1Inv, _ := field.Inverse(xPlus1)
	v := field.Mul(field.Sub(p.X, field.One()), xPlus1Inv)

	return EdwardsAffine{X: u, Y: v}, true
}
