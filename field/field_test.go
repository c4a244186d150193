package field_test

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/zirclecrypto/sapling-gadgets/field"
)

func genElement() gopter.Gen {
	return func(genParams *gopter.GenParameters) *gopter.GenResult {
		var v big.Int
		v.SetUint64(genParams.NextUint64())
		return gopter.NewGenResult(field.FromBigInt(&v), gopter.NoShrinker)
	}
}

func TestFieldProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("a+b-b == a", prop.ForAll(
		func(a, b field.Element) bool {
			return field.Equal(field.Sub(field.Add(a, b), b), a)
		}, genElement(), genElement(),
	))

	properties.Property("nonzero a * inverse(a) == 1", prop.ForAll(
		func(a field.Element) bool {
			if field.IsZero(a) {
				return true
			}
			inv, ok := field.Inverse(a)
			if !ok {
				return false
			}
			return field.Equal(field.Mul(a, inv), field.One())
		}, genElement(),
	))

	properties.Property("sqrt of a square recovers it up to sign", prop.ForAll(
		func(a field.Element) bool {
			sq := field.Square(a)
			root, ok := field.Sqrt(sq)
			if !ok {
				return false
			}
			return field.Equal(root, a) || field.Equal(root, field.Neg(a))
		}, genElement(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestInverseOfZero(t *testing.T) {
	_, ok := field.Inverse(field.Zero())
	require.False(t, ok)
}

func TestDoubleMatchesAdd(t *testing.T) {
	a := field.FromInt64(12345)
	require.True(t, field.Equal(field.Double(a), field.Add(a, a)))
}
