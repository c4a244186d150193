// Package edwards implements the in-circuit gadget for points on the
// a=-1 twisted Edwards curve: construction from raw coordinates,
// conditional selection against the identity, complete addition and
// doubling, and variable-base scalar multiplication (spec.md §4.2).
package edwards

import (
	"fmt"

	"github.com/zirclecrypto/sapling-gadgets/boolean"
	"github.com/zirclecrypto/sapling-gadgets/field"
	"github.com/zirclecrypto/sapling-gadgets/jubjub"
	"github.com/zirclecrypto/sapling-gadgets/num"
	"github.com/zirclecrypto/sapling-gadgets/r1cs"
)

// Point is a constrained Edwards point: two AllocatedNums known (by
// construction of every function below) to satisfy the curve equation.
type Point struct {
	x, y num.AllocatedNum
}

// X returns the underlying x-coordinate AllocatedNum.
func (p Point) X() num.AllocatedNum { return p.x }

// Y returns the underlying y-coordinate AllocatedNum.
func (p Point) Y() num.AllocatedNum { return p.y }

// WrapXY builds a Point directly from already-constrained coordinates,
// for gadgets (e.g. montgomery.Point.IntoEdwards) that compute x and y
// under their own constraint names and only need the Edwards type to
// carry them onward.
func WrapXY(x, y num.AllocatedNum) Point {
	return Point{x: x, y: y}
}

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

// Interpret allocates x and y and enforces the single curve-membership
// constraint -x^2+y^2=1+d*x^2*y^2 (spec.md §4.2.1). With hasValue=false
// the witness closures report AssignmentMissing and Interpret returns
// that error.
func Interpret(cs r1cs.ConstraintSystem, xv, yv field.Element, hasValue bool, params jubjub.Params) (Point, error) {
	missing := func(which string) func() (field.Element, error) {
		return func() (field.Element, error) {
			return field.Zero(), r1cs.New(r1cs.AssignmentMissing, which, "interpret witness not supplied")
		}
	}

	x, err := num.Alloc(cs.Namespace("x"), func() (field.Element, error) {
		if !hasValue {
			return missing("x")()
		}
		return xv, nil
	})
	if err != nil {
		return Point{}, err
	}
	y, err := num.Alloc(cs.Namespace("y"), func() (field.Element, error) {
		if !hasValue {
			return missing("y")()
		}
		return yv, nil
	})
	if err != nil {
		return Point{}, err
	}

	x2, err := x.Square(cs.Namespace("x2"))
	if err != nil {
		return Point{}, err
	}
	y2, err := y.Square(cs.Namespace("y2"))
	if err != nil {
		return Point{}, err
	}
	x2y2, err := x2.Mul(cs.Namespace("x2 y2"), y2)
	if err != nil {
		return Point{}, err
	}

	one := cs.One()
	d := params.EdwardsD()
	cs.Enforce("on curve check",
		func(lc r1cs.LinearCombination) r1cs.LinearCombination {
			return lc.Add(y2.GetVariable()).Sub(x2.GetVariable())
		},
		func(lc r1cs.LinearCombination) r1cs.LinearCombination {
			return lc.Add(one)
		},
		func(lc r1cs.LinearCombination) r1cs.LinearCombination {
			return lc.Add(one).AddCoeff(d, x2y2.GetVariable())
		},
	)

	return Point{x: x, y: y}, nil
}

// ConditionallySelect returns p when condition is true, and the
// identity (0,1) when condition is false (spec.md §4.2.2):
//
//	x' = condition * x
//	y' = 1 + condition*(y-1)
func (p Point) ConditionallySelect(cs r1cs.ConstraintSystem, condition boolean.Boolean) (Point, error) {
	xv, yv, known := p.GetXY()
	condVal, condKnown := condition.GetValue()
	has := known && condKnown

	xPrime, err := num.Alloc(cs.Namespace("x'"), func() (field.Element, error) {
		if !has {
			return field.Zero(), r1cs.New(r1cs.AssignmentMissing, "x'", "select operands have no witness")
		}
		if condVal {
			return xv, nil
		}
		return field.Zero(), nil
	})
	if err != nil {
		return Point{}, err
	}

	yPrime, err := num.Alloc(cs.Namespace("y'"), func() (field.Element, error) {
		if !has {
			return field.Zero(), r1cs.New(r1cs.AssignmentMissing, "y'", "select operands have no witness")
		}
		if condVal {
			return yv, nil
		}
		return field.One(), nil
	})
	if err != nil {
		return Point{}, err
	}

	one := cs.One()
	condLc := condition.Lc(one, field.One())

	cs.Enforce("x' computation",
		func(lc r1cs.LinearCombination) r1cs.LinearCombination { return append(lc, condLc...) },
		func(lc r1cs.LinearCombination) r1cs.LinearCombination { return lc.Add(p.x.GetVariable()) },
		func(lc r1cs.LinearCombination) r1cs.LinearCombination { return lc.Add(xPrime.GetVariable()) },
	)
	cs.Enforce("y' computation",
		func(lc r1cs.LinearCombination) r1cs.LinearCombination { return append(lc, condLc...) },
		func(lc r1cs.LinearCombination) r1cs.LinearCombination {
			return lc.Add(p.y.GetVariable()).Sub(one)
		},
		func(lc r1cs.LinearCombination) r1cs.LinearCombination {
			return lc.Add(yPrime.GetVariable()).Sub(one)
		},
	)

	return Point{x: xPrime, y: yPrime}, nil
}

// Add implements the complete twisted-Edwards addition law (spec.md
// §4.2.3), sound at the identity and when q==p:
//
//	U  = (x1+y1)*(x2+y2)
//	A  = y2*x1
//	B  = x2*y1
//	C  = d*A*B
//	x3 = (A+B) / (1+C)
//	y3 = (U-A-B) / (1-C)
func (p Point) Add(cs r1cs.ConstraintSystem, q Point, params jubjub.Params) (Point, error) {
	x1, y1, v1 := p.GetXY()
	x2, y2, v2 := q.GetXY()
	has := v1 && v2

	u, err := num.Alloc(cs.Namespace("U"), func() (field.Element, error) {
		if !has {
			return field.Zero(), r1cs.New(r1cs.AssignmentMissing, "U", "addition operands have no witness")
		}
		return field.Mul(field.Add(x1, y1), field.Add(x2, y2)), nil
	})
	if err != nil {
		return Point{}, err
	}
	cs.Enforce("U computation",
		func(lc r1cs.LinearCombination) r1cs.LinearCombination {
			return lc.Add(p.x.GetVariable()).Add(p.y.GetVariable())
		},
		func(lc r1cs.LinearCombination) r1cs.LinearCombination {
			return lc.Add(q.x.GetVariable()).Add(q.y.GetVariable())
		},
		func(lc r1cs.LinearCombination) r1cs.LinearCombination { return lc.Add(u.GetVariable()) },
	)

	a, err := num.Alloc(cs.Namespace("A"), func() (field.Element, error) {
		if !has {
			return field.Zero(), r1cs.New(r1cs.AssignmentMissing, "A", "addition operands have no witness")
		}
		return field.Mul(y2, x1), nil
	})
	if err != nil {
		return Point{}, err
	}
	cs.Enforce("A computation",
		func(lc r1cs.LinearCombination) r1cs.LinearCombination { return lc.Add(q.y.GetVariable()) },
		func(lc r1cs.LinearCombination) r1cs.LinearCombination { return lc.Add(p.x.GetVariable()) },
		func(lc r1cs.LinearCombination) r1cs.LinearCombination { return lc.Add(a.GetVariable()) },
	)

	b, err := num.Alloc(cs.Namespace("B"), func() (field.Element, error) {
		if !has {
			return field.Zero(), r1cs.New(r1cs.AssignmentMissing, "B", "addition operands have no witness")
		}
		return field.Mul(y1, x2), nil
	})
	if err != nil {
		return Point{}, err
	}
	cs.Enforce("B computation",
		func(lc r1cs.LinearCombination) r1cs.LinearCombination { return lc.Add(p.y.GetVariable()) },
		func(lc r1cs.LinearCombination) r1cs.LinearCombination { return lc.Add(q.x.GetVariable()) },
		func(lc r1cs.LinearCombination) r1cs.LinearCombination { return lc.Add(b.GetVariable()) },
	)

	d := params.EdwardsD()
	av, aok := a.GetValue()
	bv, bok := b.GetValue()
	c, err := num.Alloc(cs.Namespace("C"), func() (field.Element, error) {
		if !aok || !bok {
			return field.Zero(), r1cs.New(r1cs.AssignmentMissing, "C", "A or B has no witness")
		}
		return field.Mul(d, field.Mul(av, bv)), nil
	})
	if err != nil {
		return Point{}, err
	}
	cs.Enforce("C computation",
		func(lc r1cs.LinearCombination) r1cs.LinearCombination {
			return lc.AddCoeff(d, a.GetVariable())
		},
		func(lc r1cs.LinearCombination) r1cs.LinearCombination { return lc.Add(b.GetVariable()) },
		func(lc r1cs.LinearCombination) r1cs.LinearCombination { return lc.Add(c.GetVariable()) },
	)

	one := cs.One()
	uv, _ := u.GetValue()
	cv, cok := c.GetValue()

	x3, err := num.Alloc(cs.Namespace("x3"), func() (field.Element, error) {
		if !aok || !bok || !cok {
			return field.Zero(), r1cs.New(r1cs.AssignmentMissing, "x3", "x3 operands have no witness")
		}
		denom, ok := field.Inverse(field.Add(field.One(), cv))
		if !ok {
			return field.Zero(), r1cs.New(r1cs.DivisionByZero, "x3", "1+C is zero")
		}
		return field.Mul(field.Add(av, bv), denom), nil
	})
	if err != nil {
		return Point{}, err
	}
	cs.Enforce("x3 computation",
		func(lc r1cs.LinearCombination) r1cs.LinearCombination {
			return lc.Add(one).Add(c.GetVariable())
		},
		func(lc r1cs.LinearCombination) r1cs.LinearCombination { return lc.Add(x3.GetVariable()) },
		func(lc r1cs.LinearCombination) r1cs.LinearCombination {
			return lc.Add(a.GetVariable()).Add(b.GetVariable())
		},
	)

	y3, err := num.Alloc(cs.Namespace("y3"), func() (field.Element, error) {
		if !aok || !bok || !cok {
			return field.Zero(), r1cs.New(r1cs.AssignmentMissing, "y3", "y3 operands have no witness")
		}
		denom, ok := field.Inverse(field.Sub(field.One(), cv))
		if !ok {
			return field.Zero(), r1cs.New(r1cs.DivisionByZero, "y3", "1-C is zero")
		}
		return field.Mul(field.Sub(field.Sub(uv, av), bv), denom), nil
	})
	if err != nil {
		return Point{}, err
	}
	cs.Enforce("y3 computation",
		func(lc r1cs.LinearCombination) r1cs.LinearCombination {
			return lc.Add(one).Sub(c.GetVariable())
		},
		func(lc r1cs.LinearCombination) r1cs.LinearCombination { return lc.Add(y3.GetVariable()) },
		func(lc r1cs.LinearCombination) r1cs.LinearCombination {
			return lc.Add(u.GetVariable()).Sub(a.GetVariable()).Sub(b.GetVariable())
		},
	)

	return Point{x: x3, y: y3}, nil
}

// Double returns p+p, expressed by calling Add with both operands set
// to p so the complete addition law (sound at doubling, unlike the
// affine tangent-line law) does the work.
func (p Point) Double(cs r1cs.ConstraintSystem, params jubjub.Params) (Point, error) {
	return p.Add(cs, p, params)
}

// Mul computes the variable-base scalar multiplication Σ bits[i]*2^i * p
// via double-and-add over the little-endian bit sequence bits (spec.md
// §4.2.5). curbase starts at p itself and is doubled at the top of every
// iteration after the first; the first masked value becomes the result
// directly, and every later one is folded in with a complete addition,
// so a mul over n bits carries n selections, n-1 doublings, and n-1
// additions — no pre-seeded identity point is allocated.
func (p Point) Mul(cs r1cs.ConstraintSystem, bits []boolean.Boolean, params jubjub.Params) (Point, error) {
	var curbase Point
	var result Point
	haveResult := false

	for i, bit := range bits {
		if i == 0 {
			curbase = p
		} else {
			var err error
			curbase, err = curbase.Double(cs.Namespace(fmt.Sprintf("doubling %d", i)), params)
			if err != nil {
				return Point{}, err
			}
		}

		thisbase, err := curbase.ConditionallySelect(cs.Namespace(fmt.Sprintf("selection %d", i)), bit)
		if err != nil {
			return Point{}, err
		}

		if !haveResult {
			result = thisbase
			haveResult = true
		} else {
			result, err = result.Add(cs.Namespace(fmt.Sprintf("addition %d", i)), thisbase, params)
			if err != nil {
				return Point{}, err
			}
		}
	}

	return result, nil
}
