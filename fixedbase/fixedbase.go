// Package fixedbase implements fixed-base scalar multiplication: a
// scalar's bits, taken three at a time, each address a precomputed
// window table via lookup.Lookup3XY, and the selected points, one per
// window, are accumulated with complete Edwards addition (spec.md §4.4).
package fixedbase

import (
	"fmt"

	"github.com/zirclecrypto/sapling-gadgets/boolean"
	"github.com/zirclecrypto/sapling-gadgets/edwards"
	"github.com/zirclecrypto/sapling-gadgets/field"
	"github.com/zirclecrypto/sapling-gadgets/jubjub"
	"github.com/zirclecrypto/sapling-gadgets/lookup"
	"github.com/zirclecrypto/sapling-gadgets/num"
	"github.com/zirclecrypto/sapling-gadgets/r1cs"
)

// Multiply computes base * bits, where bits is little-endian and its
// length must be a multiple of jubjub.WindowBitsPerChunk (spec.md
// §4.4's structural precondition). A violation surfaces as a
// MalformedInput error rather than a panic, since it is a caller
// programming mistake discoverable before any witness is touched.
func Multiply(cs r1cs.ConstraintSystem, base jubjub.FixedGeneratorId, bits []boolean.Boolean, params jubjub.Params) (edwards.Point, error) {
	if len(bits)%jubjub.WindowBitsPerChunk != 0 {
		return edwards.Point{}, r1cs.New(r1cs.MalformedInput, "", fmt.Sprintf(
			"fixed_base_multiplication: bit length %d is not a multiple of %d", len(bits), jubjub.WindowBitsPerChunk))
	}

	tables := params.CircuitGenerators(base)
	numWindows := len(bits) / jubjub.WindowBitsPerChunk
	if numWindows > len(tables) {
		return edwards.Point{}, r1cs.New(r1cs.MalformedInput, "", fmt.Sprintf(
			"fixed_base_multiplication: %d windows requested but only %d precomputed", numWindows, len(tables)))
	}

	var acc edwards.Point
	haveAcc := false

	for i := 0; i < numWindows; i++ {
		chunk := [3]boolean.Boolean{bits[3*i], bits[3*i+1], bits[3*i+2]}

		x, y, err := lookup.Lookup3XY(cs.Namespace(fmt.Sprintf("window table lookup %d", i)), chunk, tables[i])
		if err != nil {
			return edwards.Point{}, err
		}
		windowPoint := wrapLookupResult(x, y)

		if !haveAcc {
			acc = windowPoint
			haveAcc = true
			continue
		}

		acc, err = acc.Add(cs.Namespace(fmt.Sprintf("addition %d", i)), windowPoint, params)
		if err != nil {
			return edwards.Point{}, err
		}
	}

	if !haveAcc {
		return edwards.Interpret(cs, field.Zero(), field.One(), true, params)
	}

	return acc, nil
}

// wrapLookupResult builds an edwards.Point from a lookup's two
// AllocatedNums. The lookup's "x-coordinate lookup"/"y-coordinate
// lookup" constraints already pin the values to a genuine table entry,
// so no further curve-membership check is needed here.
func wrapLookupResult(x, y num.AllocatedNum) edwards.Point {
	return edwards.WrapXY(x, y)
}
