package circuit

import (
	"go.uber.org/zap"
)

// Uncompute restores the ancillas to zero and marks them free.
//
// All gates of the log that reference any of the ancillas are appended
// again in reverse order. Every primitive is its own inverse, so the
// reversed replay undoes the computation on all qubits it touched. The
// replayed history must be the ancillas' complete write history since
// their allocation; Uncompute does not verify this.
//
// An ancilla no gate references is simply freed.
func (c *Circuit) Uncompute(ancillas ...Index) error {
	if err := c.checkAncillas(ancillas); err != nil {
		return err
	}
	targets := make(map[int]bool, len(ancillas))
	for _, a := range ancillas {
		targets[int(a)] = true
	}

	var replay []Gate
	for _, g := range c.gates {
		for _, q := range g.Qubits {
			if targets[q] {
				replay = append(replay, g)
				break
			}
		}
	}
	for i := len(replay) - 1; i >= 0; i-- {
		c.emit(replay[i].Op, replay[i].Qubits...)
	}
	for _, a := range ancillas {
		c.slots[a].Free = true
	}

	c.log.Debug("uncompute",
		zap.Ints("ancillas", indexInts(ancillas)),
		zap.Int("replayed", len(replay)))

	return nil
}
