package jubjub_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zirclecrypto/sapling-gadgets/field"
	"github.com/zirclecrypto/sapling-gadgets/jubjub"
)

func TestGeneratorIsOnCurve(t *testing.T) {
	params := jubjub.New()
	gen := params.Generator(jubjub.NoteCommitmentRandomization)
	require.True(t, gen.OnCurve(params))
	require.False(t, field.IsZero(gen.X))
}

func TestWindowTablesStartAtIdentity(t *testing.T) {
	params := jubjub.New()
	tables := params.CircuitGenerators(jubjub.NoteCommitmentRandomization)
	require.Len(t, tables, jubjub.NumWindows)
	for _, table := range tables {
		require.True(t, field.IsZero(table[0][0]))
		require.True(t, field.Equal(table[0][1], field.One()))
	}
}

func TestWindowTableEntryOneIsTheChunkBase(t *testing.T) {
	params := jubjub.New()
	gen := params.Generator(jubjub.NoteCommitmentRandomization)
	tables := params.CircuitGenerators(jubjub.NoteCommitmentRandomization)
	require.True(t, field.Equal(tables[0][1][0], gen.X))
	require.True(t, field.Equal(tables[0][1][1], gen.Y))
}

func TestAdditionIsCommutative(t *testing.T) {
	params := jubjub.New()
	gen := params.Generator(jubjub.NoteCommitmentRandomization)
	double := gen.Double(params)

	sum1 := gen.Add(params, double)
	sum2 := double.Add(params, gen)
	require.True(t, sum1.Equal(sum2))
}

func TestAddIdentityIsNoop(t *testing.T) {
	params := jubjub.New()
	gen := params.Generator(jubjub.NoteCommitmentRandomization)
	sum := gen.Add(params, jubjub.Neutral())
	require.True(t, sum.Equal(gen))
}

func TestMontgomeryEdwardsRoundTrip(t *testing.T) {
	params := jubjub.New()
	gen := params.Generator(jubjub.NoteCommitmentRandomization)

	mont, ok := jubjub.FromEdwards(params, gen)
	require.True(t, ok)
	require.True(t, mont.OnCurve(params))

	back, ok := mont.IntoEdwards(params)
	require.True(t, ok)
	require.True(t, back.Equal(gen))
}

func TestScalarMulMatchesRepeatedAddition(t *testing.T) {
	params := jubjub.New()
	gen := params.Generator(jubjub.NoteCommitmentRandomization)

	bits := []bool{true, false, true} // 1 + 4 = 5
	viaScalarMul := gen.ScalarMul(params, bits)

	viaRepeatedAdd := jubjub.Neutral()
	for i := 0; i < 5; i++ {
		viaRepeatedAdd = viaRepeatedAdd.Add(params, gen)
	}

	require.True(t, viaScalarMul.Equal(viaRepeatedAdd))
}
