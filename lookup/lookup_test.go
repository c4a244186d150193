package lookup_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zirclecrypto/sapling-gadgets/boolean"
	"github.com/zirclecrypto/sapling-gadgets/field"
	"github.com/zirclecrypto/sapling-gadgets/lookup"
	"github.com/zirclecrypto/sapling-gadgets/r1cs/r1cstest"
)

func sampleTable() [8][2]field.Element {
	var table [8][2]field.Element
	for i := 0; i < 8; i++ {
		table[i] = [2]field.Element{field.FromInt64(int64(10 + i)), field.FromInt64(int64(100 + i))}
	}
	return table
}

func TestLookupSelectsEveryIndex(t *testing.T) {
	table := sampleTable()
	for idx := 0; idx < 8; idx++ {
		cs := r1cstest.New()
		b0, err := boolean.Alloc(cs.Namespace("b0"), "bit", idx&1 != 0, true)
		require.NoError(t, err)
		b1, err := boolean.Alloc(cs.Namespace("b1"), "bit", idx&2 != 0, true)
		require.NoError(t, err)
		b2, err := boolean.Alloc(cs.Namespace("b2"), "bit", idx&4 != 0, true)
		require.NoError(t, err)

		x, y, err := lookup.Lookup3XY(cs, [3]boolean.Boolean{b0, b1, b2}, table)
		require.NoError(t, err)

		xv, ok := x.GetValue()
		require.True(t, ok)
		yv, ok := y.GetValue()
		require.True(t, ok)

		require.True(t, field.Equal(xv, table[idx][0]))
		require.True(t, field.Equal(yv, table[idx][1]))
		require.True(t, cs.IsSatisfied())
	}
}

func TestLookupTamperIsDetected(t *testing.T) {
	table := sampleTable()
	cs := r1cstest.New()
	b0, err := boolean.Alloc(cs.Namespace("b0"), "bit", true, true)
	require.NoError(t, err)
	b1, err := boolean.Alloc(cs.Namespace("b1"), "bit", false, true)
	require.NoError(t, err)
	b2, err := boolean.Alloc(cs.Namespace("b2"), "bit", false, true)
	require.NoError(t, err)

	_, _, err = lookup.Lookup3XY(cs, [3]boolean.Boolean{b0, b1, b2}, table)
	require.NoError(t, err)
	require.True(t, cs.IsSatisfied())

	require.NoError(t, cs.Set("x/num", field.FromInt64(999)))
	_, unsatisfied := cs.WhichIsUnsatisfied()
	require.True(t, unsatisfied)
}
