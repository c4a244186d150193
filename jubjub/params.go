// Package jubjub supplies the concrete curve parameters the gadget
// packages are written against (spec.md §6.1), together with an
// off-circuit reference implementation of the same curves, used by New
// to build the fixed-base window tables and by tests (spec.md §8
// compares every gadget's witness against an "off-circuit" computation).
//
// The curve instantiated here follows the Sapling-lineage Jubjub curve
// the original gadget suite (kept under original_source/) was written
// against: a twisted Edwards curve with a=-1 and a birationally
// equivalent Montgomery curve with A=40962, both over the BLS12-381
// scalar field. See DESIGN.md for how d and scale are derived rather
// than quoted from memory.
package jubjub

import (
	"math/big"

	"github.com/zirclecrypto/sapling-gadgets/field"
)

// FixedGeneratorId names one of the curve's precomputed fixed bases.
type FixedGeneratorId int

const (
	// NoteCommitmentRandomization is the base used to blind a note
	// commitment, named directly in spec.md §6.1's example and
	// exercised by the original gadget suite's own fixed-base test.
	NoteCommitmentRandomization FixedGeneratorId = iota
)

// WindowBitsPerChunk is the width of a fixed-base lookup window.
const WindowBitsPerChunk = 3

// ScalarBits is the bit length fixed-base scalars are padded/truncated
// to; chosen as a multiple of WindowBitsPerChunk (spec.md §4.4).
const ScalarBits = 255

// NumWindows is the number of 3-bit windows a ScalarBits-length scalar
// chunks into.
const NumWindows = ScalarBits / WindowBitsPerChunk

// Params is the abstract supply of curve constants and precomputed
// generator tables every gadget in this module is parameterized over
// (spec.md §6.1).
type Params interface {
	EdwardsD() field.Element
	MontgomeryA() field.Element
	Montgomery2A() field.Element
	Scale() field.Element
	// CircuitGenerators returns one window table per 3-bit chunk for
	// the given fixed base, each table holding the 8 precomputed
	// Edwards (x,y) pairs for chunk values 0..=7.
	CircuitGenerators(base FixedGeneratorId) [][8][2]field.Element
}

// JubjubParams is the concrete Params implementation for the curve this
// module ships.
type JubjubParams struct {
	d            field.Element
	a            field.Element
	twoA         field.Element
	scale        field.Element
	generators   map[FixedGeneratorId][][8][2]field.Element
	baseForID    map[FixedGeneratorId]EdwardsAffine
}

// New derives the curve constants and precomputes every registered
// fixed-base window table.
func New() *JubjubParams {
	// d = -10240/10241, the small-integer Jubjub ratio.
	num := field.FromInt64(-10240)
	den := field.FromInt64(10241)
	denInv, ok := field.Inverse(den)
	if !ok {
		panic("jubjub: 10241 is not invertible mod Fr, impossible")
	}
	d := field.Mul(num, denInv)

	a := field.FromInt64(40962)
	twoA := field.Double(a)

	// scale = sqrt(-(A+2)); see DESIGN.md for the derivation that this
	// is the constant into_edwards needs so that a monic Montgomery
	// point maps onto the a=-1 curve above.
	aPlus2 := field.Add(a, field.FromInt64(2))
	negAPlus2 := field.Neg(aPlus2)
	scale, ok := field.Sqrt(negAPlus2)
	if !ok {
		panic("jubjub: -(A+2) is not a quadratic residue mod Fr")
	}

	p := &JubjubParams{
		d:          d,
		a:          a,
		twoA:       twoA,
		scale:      scale,
		generators: make(map[FixedGeneratorId][][8][2]field.Element),
		baseForID:  make(map[FixedGeneratorId]EdwardsAffine),
	}

	base := findGenerator(p)
	p.baseForID[NoteCommitmentRandomization] = base
	p.generators[NoteCommitmentRandomization] = buildWindowTables(p, base, NumWindows)

	return p
}

// EdwardsD implements Params.
func (p *JubjubParams) EdwardsD() field.Element { return p.d }

// MontgomeryA implements Params.
func (p *JubjubParams) MontgomeryA() field.Element { return p.a }

// Montgomery2A implements Params.
func (p *JubjubParams) Montgomery2A() field.Element { return p.twoA }

// Scale implements Params.
func (p *JubjubParams) Scale() field.Element { return p.scale }

// CircuitGenerators implements Params.
func (p *JubjubParams) CircuitGenerators(base FixedGeneratorId) [][8][2]field.Element {
	return p.generators[base]
}

// Generator returns the affine base point registered under id, for
// off-circuit test reference.
func (p *JubjubParams) Generator(id FixedGeneratorId) EdwardsAffine {
	return p.baseForID[id]
}

// findGenerator deterministically searches for a point on the curve
// -x²+y²=1+d x²y², starting at y=2 and incrementing, and multiplies it by
// the cofactor 8, so that a concrete prime-order fixed base exists
// without hardcoding an unverifiable magic constant.
func findGenerator(p *JubjubParams) EdwardsAffine {
	one := field.One()
	for y := int64(2); ; y++ {
		yv := field.FromInt64(y)
		y2 := field.Square(yv)
		// x^2 = (y^2-1)/(1+d*y^2)
		numerator := field.Sub(y2, one)
		denom := field.Add(one, field.Mul(p.d, y2))
		if field.IsZero(denom) {
			continue
		}
		denomInv, _ := field.Inverse(denom)
		x2 := field.Mul(numerator, denomInv)
		x, ok := field.Sqrt(x2)
		if !ok {
			continue
		}
		if field.IsZero(x) {
			continue
		}
		// Clear the cofactor 8 so the base lies in the prime-order subgroup.
		g := EdwardsAffine{X: x, Y: yv}.Double(p).Double(p).Double(p)
		if field.IsZero(g.X) {
			continue
		}
		return g
	}
}

// buildWindowTables precomputes, for base, the numWindows tables of 8
// multiples fixed_base_multiplication needs: table i entry v holds
// v * (2^(3i) * base), with entry 0 the neutral element (scenario 3 in
// spec.md §8).
func buildWindowTables(p *JubjubParams, base EdwardsAffine, numWindows int) [][8][2]field.Element {
	tables := make([][8][2]field.Element, numWindows)
	cur := base
	neutral := EdwardsAffine{X: field.Zero(), Y: field.One()}
	for i := 0; i < numWindows; i++ {
		var table [8][2]field.Element
		table[0] = [2]field.Element{neutral.X, neutral.Y}
		acc := neutral
		for v := 1; v < 8; v++ {
			acc = acc.Add(p, cur)
			table[v] = [2]field.Element{acc.X, acc.Y}
		}
		tables[i] = table
		cur = cur.Double(p).Double(p).Double(p)
	}
	return tables
}

// BigIntBits returns the little-endian bits of v, truncated/padded to
// numBits — the representation spec.md §4.4/§8 calls "bits(s)".
func BigIntBits(v *big.Int, numBits int) []bool {
	out := make([]bool, numBits)
	for i := 0; i < numBits; i++ {
		out[i] = v.Bit(i) == 1
	}
	return out
}
