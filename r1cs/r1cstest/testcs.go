// Package r1cstest provides an in-memory constraint system used by every
// gadget package's tests: it evaluates witnesses eagerly and lets a test
// tamper with any named variable, then ask which constraint (if any) is
// now unsatisfied. This is the Go analogue of bellman's
// circuit::test::TestConstraintSystem, which the original gadget test
// suite (kept under original_source/) drives the same way.
package r1cstest

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/zirclecrypto/sapling-gadgets/field"
	"github.com/zirclecrypto/sapling-gadgets/r1cs"
)

type constraint struct {
	path string
	a, b, c r1cs.LinearCombination
}

// store is the shared, namespace-independent state: every namespaced
// view returned by Namespace points back at the same store.
type store struct {
	assignments map[r1cs.Variable]field.Element
	paths       map[r1cs.Variable]string
	nextVar     r1cs.Variable
	constraints []constraint
	log         zerolog.Logger
}

// CS is a namespaced view over a shared store.
type CS struct {
	s    *store
	path string
}

// New returns a fresh constraint system with a Nop logger.
func New() *CS {
	return NewWithLogger(zerolog.Nop())
}

// NewWithLogger returns a fresh constraint system that emits Trace-level
// events (keyed by namespace path) for every allocation and constraint,
// useful when diagnosing an unsatisfiable circuit without peppering the
// gadgets themselves with fmt.Println.
func NewWithLogger(logger zerolog.Logger) *CS {
	s := &store{
		assignments: map[r1cs.Variable]field.Element{0: field.One()},
		paths:       map[r1cs.Variable]string{0: "ONE"},
		nextVar:     1,
		log:         logger,
	}
	return &CS{s: s}
}

func (cs *CS) fullPath(name string) string {
	if cs.path == "" {
		return name
	}
	return cs.path + "/" + name
}

// Namespace implements r1cs.ConstraintSystem.
func (cs *CS) Namespace(name string) r1cs.ConstraintSystem {
	return &CS{s: cs.s, path: cs.fullPath(name)}
}

// One implements r1cs.ConstraintSystem.
func (cs *CS) One() r1cs.Variable {
	return 0
}

// Alloc implements r1cs.ConstraintSystem.
func (cs *CS) Alloc(name string, compute func() (field.Element, error)) (r1cs.Variable, field.Element, error) {
	path := cs.fullPath(name)
	val, err := compute()
	if err != nil {
		cs.s.log.Trace().Str("path", path).Err(err).Msg("allocation failed")
		return 0, field.Zero(), err
	}
	v := cs.s.nextVar
	cs.s.nextVar++
	cs.s.assignments[v] = val
	cs.s.paths[v] = path
	cs.s.log.Trace().Str("path", path).Msg("allocated")
	return v, val, nil
}

// Enforce implements r1cs.ConstraintSystem.
func (cs *CS) Enforce(name string, a, b, c r1cs.LCBuilder) {
	path := cs.fullPath(name)
	con := constraint{
		path: path,
		a:    a(nil),
		b:    b(nil),
		c:    c(nil),
	}
	cs.s.constraints = append(cs.s.constraints, con)
	cs.s.log.Trace().Str("path", path).Msg("enforced")
}

func (s *store) evaluate(lc r1cs.LinearCombination) field.Element {
	sum := field.Zero()
	for _, t := range lc {
		sum = field.Add(sum, field.Mul(t.Coeff, s.assignments[t.Var]))
	}
	return sum
}

// IsSatisfied reports whether every enforced constraint currently holds
// against the stored assignment.
func (cs *CS) IsSatisfied() bool {
	_, ok := cs.WhichIsUnsatisfied()
	return !ok
}

// WhichIsUnsatisfied returns the namespace path of the first constraint
// (in enforcement order) whose A*B != C under the current assignment,
// and true. If every constraint holds it returns ("", false).
func (cs *CS) WhichIsUnsatisfied() (string, bool) {
	for _, con := range cs.s.constraints {
		a := cs.s.evaluate(con.a)
		b := cs.s.evaluate(con.b)
		c := cs.s.evaluate(con.c)
		lhs := field.Mul(a, b)
		if !field.Equal(lhs, c) {
			return con.path, true
		}
	}
	return "", false
}

// Get returns the witness stored at the variable allocated under path.
func (cs *CS) Get(path string) (field.Element, bool) {
	for v, p := range cs.s.paths {
		if p == path {
			return cs.s.assignments[v], true
		}
	}
	return field.Zero(), false
}

// Set overwrites the witness stored at the variable allocated under
// path, for tampering tests (spec §8 P9 and the numbered scenarios).
func (cs *CS) Set(path string, v field.Element) error {
	for id, p := range cs.s.paths {
		if p == path {
			cs.s.assignments[id] = v
			return nil
		}
	}
	return fmt.Errorf("r1cstest: no variable allocated at path %q", path)
}

// NumConstraints returns the number of constraints enforced so far.
func (cs *CS) NumConstraints() int {
	return len(cs.s.constraints)
}
