// Package montgomery implements the in-circuit gadget for points on
// the monic Montgomery curve y^2=x^3+A*x^2+x: construction from raw
// coordinates, addition of points with distinct x, doubling, and the birational
// map into the a=-1 twisted Edwards curve (spec.md §4.3).
package montgomery

import (
	"github.com/zirclecrypto/sapling-gadgets/edwards"
	"github.com/zirclecrypto/sapling-gadgets/field"
	"github.com/zirclecrypto/sapling-gadgets/jubjub"
	"github.com/zirclecrypto/sapling-gadgets/num"
	"github.com/zirclecrypto/sapling-gadgets/r1cs"
)

// Point is a constrained Montgomery point. Unlike edwards.Point it
// carries no curve-membership constraint by construction: the only
// entry point, InterpretUnchecked, allocates the coordinates and
// leaves verifying they satisfy the curve equation to the caller
// (spec.md §4.3.1 — callers that need the guarantee chain through
// edwards.Interpret's check after IntoEdwards).
type Point struct {
	x, y num.AllocatedNum
}

// X returns the underlying x-coordinate AllocatedNum.
func (p Point) X() num.AllocatedNum { return p.x }

// Y returns the underlying y-coordinate AllocatedNum.
func (p Point) Y() num.AllocatedNum { return p.y }

// GetXY returns both witness coordinates, or ok=false if either is
// unassigned.
func (p Point) GetXY() (field.Element, field.Element, bool) {
	xv, xok := p.x.GetValue()
	yv, yok := p.y.GetValue()
	if !xok || !yok {
		return field.Zero(), field.Zero(), false
	}
	return xv, yv, true
}

// InterpretUnchecked allocates x and y without enforcing the curve
// equation (spec.md §4.3.1).
func InterpretUnchecked(cs r1cs.ConstraintSystem, xv, yv field.Element, hasValue bool) (Point, error) {
	x, err := num.Alloc(cs.Namespace("x"), func() (field.Element, error) {
		if !hasValue {
			return field.Zero(), r1cs.New(r1cs.AssignmentMissing, "x", "interpret_unchecked witness not supplied")
		}
		return xv, nil
	})
	if err != nil {
		return Point{}, err
	}
	y, err := num.Alloc(cs.Namespace("y"), func() (field.Element, error) {
		if !hasValue {
			return field.Zero(), r1cs.New(r1cs.AssignmentMissing, "y", "interpret_unchecked witness not supplied")
		}
		return yv, nil
	})
	if err != nil {
		return Point{}, err
	}
	return Point{x: x, y: y}, nil
}

// Add implements the Montgomery chord-and-tangent addition law for two
// distinct points (spec.md §4.3.2):
//
//	lambda = (y2-y1) / (x2-x1)
//	x3 = lambda^2 - A - x1 - x2
//	y3 = lambda*(x1-x3) - y1
func (p Point) Add(cs r1cs.ConstraintSystem, q Point, params jubjub.Params) (Point, error) {
	x1, y1, v1 := p.GetXY()
	x2, y2, v2 := q.GetXY()
	has := v1 && v2

	lambda, err := num.Alloc(cs.Namespace("lambda"), func() (field.Element, error) {
		if !has {
			return field.Zero(), r1cs.New(r1cs.AssignmentMissing, "lambda", "addition operands have no witness")
		}
		denom, ok := field.Inverse(field.Sub(x2, x1))
		if !ok {
			return field.Zero(), r1cs.New(r1cs.DivisionByZero, "lambda", "x2-x1 is zero")
		}
		return field.Mul(field.Sub(y2, y1), denom), nil
	})
	if err != nil {
		return Point{}, err
	}
	cs.Enforce("evaluate lambda",
		func(lc r1cs.LinearCombination) r1cs.LinearCombination { return lc.Add(lambda.GetVariable()) },
		func(lc r1cs.LinearCombination) r1cs.LinearCombination {
			return lc.Add(q.x.GetVariable()).Sub(p.x.GetVariable())
		},
		func(lc r1cs.LinearCombination) r1cs.LinearCombination {
			return lc.Add(q.y.GetVariable()).Sub(p.y.GetVariable())
		},
	)

	one := cs.One()
	a := params.MontgomeryA()
	lv, _ := lambda.GetValue()

	x3, err := num.Alloc(cs.Namespace("xprime"), func() (field.Element, error) {
		if !has {
			return field.Zero(), r1cs.New(r1cs.AssignmentMissing, "xprime", "addition operands have no witness")
		}
		return field.Sub(field.Sub(field.Sub(field.Square(lv), a), x1), x2), nil
	})
	if err != nil {
		return Point{}, err
	}
	cs.Enforce("evaluate xprime",
		func(lc r1cs.LinearCombination) r1cs.LinearCombination { return lc.Add(lambda.GetVariable()) },
		func(lc r1cs.LinearCombination) r1cs.LinearCombination { return lc.Add(lambda.GetVariable()) },
		func(lc r1cs.LinearCombination) r1cs.LinearCombination {
			return lc.Add(x3.GetVariable()).AddCoeff(a, one).Add(p.x.GetVariable()).Add(q.x.GetVariable())
		},
	)

	x3v, _ := x3.GetValue()
	y3, err := num.Alloc(cs.Namespace("yprime"), func() (field.Element, error) {
		if !has {
			return field.Zero(), r1cs.New(r1cs.AssignmentMissing, "yprime", "addition operands have no witness")
		}
		return field.Sub(field.Mul(lv, field.Sub(x1, x3v)), y1), nil
	})
	if err != nil {
		return Point{}, err
	}
	cs.Enforce("evaluate yprime",
		func(lc r1cs.LinearCombination) r1cs.LinearCombination { return lc.Add(lambda.GetVariable()) },
		func(lc r1cs.LinearCombination) r1cs.LinearCombination {
			return lc.Add(p.x.GetVariable()).Sub(x3.GetVariable())
		},
		func(lc r1cs.LinearCombination) r1cs.LinearCombination {
			return lc.Add(y3.GetVariable()).Add(p.y.GetVariable())
		},
	)

	return Point{x: x3, y: y3}, nil
}

// Double implements the tangent-line doubling law under the same
// three constraint names as Add, reusing the caller-supplied namespace
// directly so the full paths read "doubling/evaluate lambda" etc
// (spec.md §4.3.3):
//
//	lambda = (3*x1^2 + 2*A*x1 + 1) / (2*y1)
//	x3 = lambda^2 - A - 2*x1
//	y3 = lambda*(x1-x3) - y1
func (p Point) Double(cs r1cs.ConstraintSystem, params jubjub.Params) (Point, error) {
	x1, y1, has := p.GetXY()

	one := cs.One()
	twoA := params.Montgomery2A()

	x1sq, err := p.x.Square(cs.Namespace("x1 squared"))
	if err != nil {
		return Point{}, err
	}
	x1sqv, _ := x1sq.GetValue()

	lambda, err := num.Alloc(cs.Namespace("lambda"), func() (field.Element, error) {
		if !has {
			return field.Zero(), r1cs.New(r1cs.AssignmentMissing, "lambda", "doubling operand has no witness")
		}
		three := field.FromInt64(3)
		numerator := field.Add(field.Add(field.Mul(three, x1sqv), field.Mul(twoA, x1)), field.One())
		denom, ok := field.Inverse(field.Double(y1))
		if !ok {
			return field.Zero(), r1cs.New(r1cs.DivisionByZero, "lambda", "y1 is zero")
		}
		return field.Mul(numerator, denom), nil
	})
	if err != nil {
		return Point{}, err
	}
	cs.Enforce("evaluate lambda",
		func(lc r1cs.LinearCombination) r1cs.LinearCombination {
			return lc.Add(p.y.GetVariable()).Add(p.y.GetVariable())
		},
		func(lc r1cs.LinearCombination) r1cs.LinearCombination { return lc.Add(lambda.GetVariable()) },
		func(lc r1cs.LinearCombination) r1cs.LinearCombination {
			return lc.AddCoeff(field.FromInt64(3), x1sq.GetVariable()).AddCoeff(twoA, p.x.GetVariable()).Add(one)
		},
	)

	a := params.MontgomeryA()
	lv, _ := lambda.GetValue()

	x3, err := num.Alloc(cs.Namespace("xprime"), func() (field.Element, error) {
		if !has {
			return field.Zero(), r1cs.New(r1cs.AssignmentMissing, "xprime", "doubling operand has no witness")
		}
		return field.Sub(field.Sub(field.Square(lv), a), field.Double(x1)), nil
	})
	if err != nil {
		return Point{}, err
	}
	cs.Enforce("evaluate xprime",
		func(lc r1cs.LinearCombination) r1cs.LinearCombination { return lc.Add(lambda.GetVariable()) },
		func(lc r1cs.LinearCombination) r1cs.LinearCombination { return lc.Add(lambda.GetVariable()) },
		func(lc r1cs.LinearCombination) r1cs.LinearCombination {
			return lc.Add(x3.GetVariable()).AddCoeff(a, one).Add(p.x.GetVariable()).Add(p.x.GetVariable())
		},
	)

	x3v, _ := x3.GetValue()
	y3, err := num.Alloc(cs.Namespace("yprime"), func() (field.Element, error) {
		if !has {
			return field.Zero(), r1cs.New(r1cs.AssignmentMissing, "yprime", "doubling operand has no witness")
		}
		return field.Sub(field.Mul(lv, field.Sub(x1, x3v)), y1), nil
	})
	if err != nil {
		return Point{}, err
	}
	cs.Enforce("evaluate yprime",
		func(lc r1cs.LinearCombination) r1cs.LinearCombination { return lc.Add(lambda.GetVariable()) },
		func(lc r1cs.LinearCombination) r1cs.LinearCombination {
			return lc.Add(p.x.GetVariable()).Sub(x3.GetVariable())
		},
		func(lc r1cs.LinearCombination) r1cs.LinearCombination {
			return lc.Add(y3.GetVariable()).Add(p.y.GetVariable())
		},
	)

	return Point{x: x3, y: y3}, nil
}

// IntoEdwards maps p onto the birationally-equivalent a=-1 twisted
// Edwards curve (spec.md §4.3.4):
//
//	u = scale * x/y
//	v = (x-1)/(x+1)
func (p Point) IntoEdwards(cs r1cs.ConstraintSystem, params jubjub.Params) (edwards.Point, error) {
	xv, yv, has := p.GetXY()
	scale := params.Scale()

	u, err := num.Alloc(cs.Namespace("u"), func() (field.Element, error) {
		if !has {
			return field.Zero(), r1cs.New(r1cs.AssignmentMissing, "u", "into_edwards operand has no witness")
		}
		denom, ok := field.Inverse(yv)
		if !ok {
			return field.Zero(), r1cs.New(r1cs.DivisionByZero, "u", "y is zero")
		}
		return field.Mul(field.Mul(scale, xv), denom), nil
	})
	if err != nil {
		return edwards.Point{}, err
	}
	cs.Enforce("u computation",
		func(lc r1cs.LinearCombination) r1cs.LinearCombination { return lc.Add(u.GetVariable()) },
		func(lc r1cs.LinearCombination) r1cs.LinearCombination { return lc.Add(p.y.GetVariable()) },
		func(lc r1cs.LinearCombination) r1cs.LinearCombination { return lc.AddCoeff(scale, p.x.GetVariable()) },
	)

	one := cs.One()
	v, err := num.Alloc(cs.Namespace("v"), func() (field.Element, error) {
		if !has {
			return field.Zero(), r1cs.New(r1cs.AssignmentMissing, "v", "into_edwards operand has no witness")
		}
		denom, ok := field.Inverse(field.Add(xv, field.One()))
		if !ok {
			return field.Zero(), r1cs.New(r1cs.DivisionByZero, "v", "x+1 is zero")
		}
		return field.Mul(field.Sub(xv, field.One()), denom), nil
	})
	if err != nil {
		return edwards.Point{}, err
	}
	cs.Enforce("v computation",
		func(lc r1cs.LinearCombination) r1cs.LinearCombination { return lc.Add(v.GetVariable()) },
		func(lc r1cs.LinearCombination) r1cs.LinearCombination { return lc.Add(p.x.GetVariable()).Add(one) },
		func(lc r1cs.LinearCombination) r1cs.LinearCombination { return lc.Add(p.x.GetVariable()).Sub(one) },
	)

	return edwards.WrapXY(u, v), nil
}
