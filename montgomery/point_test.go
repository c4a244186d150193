package montgomery_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zirclecrypto/sapling-gadgets/field"
	"github.com/zirclecrypto/sapling-gadgets/jubjub"
	"github.com/zirclecrypto/sapling-gadgets/montgomery"
	"github.com/zirclecrypto/sapling-gadgets/r1cs"
	"github.com/zirclecrypto/sapling-gadgets/r1cs/r1cstest"
)

// firstGetForX searches x = from, from+1, ... for the first value
// get_for_x accepts, mirroring mont.rs:1050-1066's rejection-sampling
// loop (there driven by an RNG; here by a deterministic sweep so the
// test needs no random-field-element generator).
func firstGetForX(params *jubjub.JubjubParams, from int64) (jubjub.MontgomeryAffine, int64) {
	x := from
	for {
		if p, ok := jubjub.GetForXMontgomery(params, field.FromInt64(x), false); ok {
			return p, x
		}
		x++
	}
}

// sampleMontgomeryPoints obtains two Montgomery curve points with
// distinct x via get_for_x. The cofactor is not cleared, so the points
// are not necessarily in the prime-order subgroup.
func sampleMontgomeryPoints(t *testing.T, params *jubjub.JubjubParams) (jubjub.MontgomeryAffine, jubjub.MontgomeryAffine) {
	t.Helper()
	p, usedX := firstGetForX(params, 1)
	q, _ := firstGetForX(params, usedX+1)
	return p, q
}

func TestAddMatchesOffCircuitReference(t *testing.T) {
	params := jubjub.New()
	p, q := sampleMontgomeryPoints(t, params)

	cs := r1cstest.New()
	pp, err := montgomery.InterpretUnchecked(cs.Namespace("p"), p.X, p.Y, true)
	require.NoError(t, err)
	qq, err := montgomery.InterpretUnchecked(cs.Namespace("q"), q.X, q.Y, true)
	require.NoError(t, err)

	sum, err := pp.Add(cs.Namespace("addition"), qq, params)
	require.NoError(t, err)
	require.True(t, cs.IsSatisfied())

	want := p.Add(params, q)
	xv, yv, ok := sum.GetXY()
	require.True(t, ok)
	require.True(t, field.Equal(xv, want.X))
	require.True(t, field.Equal(yv, want.Y))
}

func TestDoubleMatchesOffCircuitReference(t *testing.T) {
	params := jubjub.New()
	p, _ := sampleMontgomeryPoints(t, params)

	cs := r1cstest.New()
	pp, err := montgomery.InterpretUnchecked(cs.Namespace("p"), p.X, p.Y, true)
	require.NoError(t, err)

	doubled, err := pp.Double(cs.Namespace("doubling"), params)
	require.NoError(t, err)
	require.True(t, cs.IsSatisfied())

	want := p.Double(params)
	xv, yv, ok := doubled.GetXY()
	require.True(t, ok)
	require.True(t, field.Equal(xv, want.X))
	require.True(t, field.Equal(yv, want.Y))
}

func TestIntoEdwardsMatchesOffCircuitReference(t *testing.T) {
	params := jubjub.New()
	p, _ := sampleMontgomeryPoints(t, params)

	cs := r1cstest.New()
	pp, err := montgomery.InterpretUnchecked(cs.Namespace("p"), p.X, p.Y, true)
	require.NoError(t, err)

	edw, err := pp.IntoEdwards(cs.Namespace("into_edwards"), params)
	require.NoError(t, err)
	require.True(t, cs.IsSatisfied())

	want, ok := p.IntoEdwards(params)
	require.True(t, ok)
	xv, yv, ok := edw.GetXY()
	require.True(t, ok)
	require.True(t, field.Equal(xv, want.X))
	require.True(t, field.Equal(yv, want.Y))
}

func TestDoublingLambdaTamperIsDetected(t *testing.T) {
	params := jubjub.New()
	p, _ := sampleMontgomeryPoints(t, params)

	cs := r1cstest.New()
	pp, err := montgomery.InterpretUnchecked(cs.Namespace("p"), p.X, p.Y, true)
	require.NoError(t, err)

	_, err = pp.Double(cs.Namespace("doubling"), params)
	require.NoError(t, err)
	require.True(t, cs.IsSatisfied())

	require.NoError(t, cs.Set("doubling/lambda/num", field.Add(field.One(), field.One())))
	path, unsatisfied := cs.WhichIsUnsatisfied()
	require.True(t, unsatisfied)
	require.Equal(t, "doubling/evaluate lambda", path)
}

func TestDoubleAtYZeroReturnsDivisionByZero(t *testing.T) {
	params := jubjub.New()

	cs := r1cstest.New()
	p, err := montgomery.InterpretUnchecked(cs.Namespace("p"), field.Zero(), field.Zero(), true)
	require.NoError(t, err)

	_, err = p.Double(cs.Namespace("doubling"), params)
	require.Error(t, err)

	var gadgetErr *r1cs.Error
	require.ErrorAs(t, err, &gadgetErr)
	require.Equal(t, r1cs.DivisionByZero, gadgetErr.Kind)
}
