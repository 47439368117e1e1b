// Package circuit implements a reversible gate-level circuit builder.
//
// A Circuit owns an ordered list of qubit slots and an append-only log
// of primitive gate applications (X, CX, CCX, SWAP). Gates that are not
// primitive, multi-controlled NOT and controlled swap, are decomposed
// into primitives while the gate is applied. Scratch qubits (ancillas)
// used by decompositions are reclaimed with Uncompute, which replays the
// gates that wrote to them in reverse order.
//
// A Circuit is not safe for concurrent use.
package circuit

import (
	"fmt"

	"go.uber.org/zap"
)

// Slot is one addressable qubit position of the circuit.
type Slot struct {
	Index   int
	Key     string // empty when the slot has no key
	Ancilla bool
	Free    bool // meaningful only for ancillas
}

// EffectiveKey returns the slot key, or the synthesized q<index> name
// when the slot has no key.
func (s Slot) EffectiveKey() string {
	if len(s.Key) > 0 {
		return s.Key
	}
	return DefaultKey(s.Index)
}

func (s Slot) String() string {
	switch {
	case s.Ancilla && s.Free:
		return fmt.Sprintf("%s (ancilla, free)", s.EffectiveKey())
	case s.Ancilla:
		return fmt.Sprintf("%s (ancilla)", s.EffectiveKey())
	default:
		return s.EffectiveKey()
	}
}

// DefaultKey returns the key used for slot index when it was registered
// without one.
func DefaultKey(index int) string {
	return fmt.Sprintf("q%d", index)
}

// Circuit holds the qubit slots and the gate log.
type Circuit struct {
	slots []Slot
	keys  map[string]int
	gates []Gate
	log   *zap.Logger
}

// Option configures a Circuit.
type Option func(c *Circuit)

// WithLogger sets the logger used for debug output.
func WithLogger(log *zap.Logger) Option {
	return func(c *Circuit) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates an empty circuit.
func New(opts ...Option) *Circuit {
	c := &Circuit{
		keys: make(map[string]int),
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewWithQubits creates a circuit with n keyless qubits. The qubits can
// be referenced by index or by their default keys q0..q<n-1>.
func NewWithQubits(n int, opts ...Option) *Circuit {
	c := New(opts...)
	for i := 0; i < n; i++ {
		c.appendSlot(Slot{})
	}
	return c
}

func (c *Circuit) String() string {
	var ancillas int
	for _, s := range c.slots {
		if s.Ancilla {
			ancillas++
		}
	}
	return fmt.Sprintf("#qubits=%d (ancillas=%d) #gates=%d",
		len(c.slots), ancillas, len(c.gates))
}

// Gates returns a copy of the gate log.
func (c *Circuit) Gates() []Gate {
	result := make([]Gate, len(c.gates))
	for i, g := range c.gates {
		result[i] = g.clone()
	}
	return result
}

// NumGates returns the number of gates in the gate log.
func (c *Circuit) NumGates() int {
	return len(c.gates)
}

// Dump prints a debug dump of the circuit.
func (c *Circuit) Dump() {
	fmt.Printf("circuit %s\n", c)
	for _, s := range c.slots {
		fmt.Printf("%4d\t%s\n", s.Index, s)
	}
	for id, gate := range c.gates {
		fmt.Printf("%04d\t%s\n", id, gate)
	}
}
