package num_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zirclecrypto/sapling-gadgets/field"
	"github.com/zirclecrypto/sapling-gadgets/num"
	"github.com/zirclecrypto/sapling-gadgets/r1cs/r1cstest"
)

func TestSquare(t *testing.T) {
	cs := r1cstest.New()
	sub := cs.Namespace("x3")
	n, err := num.Alloc(sub, func() (field.Element, error) { return field.FromInt64(7), nil })
	require.NoError(t, err)

	sq, err := n.Square(sub)
	require.NoError(t, err)

	v, ok := sq.GetValue()
	require.True(t, ok)
	require.True(t, field.Equal(v, field.FromInt64(49)))
	require.True(t, cs.IsSatisfied())

	_, ok = cs.Get("x3/num")
	require.True(t, ok)
}

func TestMulTamperIsDetected(t *testing.T) {
	cs := r1cstest.New()
	a, err := num.Alloc(cs.Namespace("a"), func() (field.Element, error) { return field.FromInt64(6), nil })
	require.NoError(t, err)
	b, err := num.Alloc(cs.Namespace("b"), func() (field.Element, error) { return field.FromInt64(9), nil })
	require.NoError(t, err)

	_, err = a.Mul(cs.Namespace("result"), b)
	require.NoError(t, err)
	require.True(t, cs.IsSatisfied())

	require.NoError(t, cs.Set("a/num", field.FromInt64(7)))
	path, unsatisfied := cs.WhichIsUnsatisfied()
	require.True(t, unsatisfied)
	require.Equal(t, "result/multiplication constraint", path)
}
