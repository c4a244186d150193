package boolean_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zirclecrypto/sapling-gadgets/boolean"
	"github.com/zirclecrypto/sapling-gadgets/field"
	"github.com/zirclecrypto/sapling-gadgets/r1cs/r1cstest"
)

func TestAllocTrueAndFalse(t *testing.T) {
	for _, v := range []bool{true, false} {
		cs := r1cstest.New()
		b, err := boolean.Alloc(cs, "bit", v, true)
		require.NoError(t, err)
		got, ok := b.GetValue()
		require.True(t, ok)
		require.Equal(t, v, got)
		require.True(t, cs.IsSatisfied())
	}
}

func TestBooleanConstraintCatchesNonBinaryTamper(t *testing.T) {
	cs := r1cstest.New()
	_, err := boolean.Alloc(cs, "bit", true, true)
	require.NoError(t, err)

	require.NoError(t, cs.Set("bit/boolean", field.FromInt64(2)))
	path, unsatisfied := cs.WhichIsUnsatisfied()
	require.True(t, unsatisfied)
	require.Equal(t, "bit/boolean constraint", path)
}

func TestNotFlipsValue(t *testing.T) {
	cs := r1cstest.New()
	b, err := boolean.Alloc(cs, "bit", true, true)
	require.NoError(t, err)
	notB := b.Not()
	v, ok := notB.GetValue()
	require.True(t, ok)
	require.False(t, v)
}

func TestAndTruthTable(t *testing.T) {
	cases := []struct {
		a, b, want bool
	}{
		{false, false, false},
		{false, true, false},
		{true, false, false},
		{true, true, true},
	}
	for _, c := range cases {
		cs := r1cstest.New()
		a, err := boolean.Alloc(cs, "a", c.a, true)
		require.NoError(t, err)
		b, err := boolean.Alloc(cs, "b", c.b, true)
		require.NoError(t, err)
		result, err := boolean.And(cs, a, b)
		require.NoError(t, err)
		got, ok := result.GetValue()
		require.True(t, ok)
		require.Equal(t, c.want, got)
		require.True(t, cs.IsSatisfied())
	}
}

func TestConstantNegationFlipsValue(t *testing.T) {
	c := boolean.Constant(true)
	v, ok := c.GetValue()
	require.True(t, ok)
	require.True(t, v)

	notV, ok := c.Not().GetValue()
	require.True(t, ok)
	require.False(t, notV)
}
