package circuit

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// AddAncilla registers a new ancilla slot with the initial free flag
// and returns its index.
func (c *Circuit) AddAncilla(free bool) Index {
	idx := c.appendSlot(Slot{
		Ancilla: true,
		Free:    free,
	})
	c.log.Debug("add ancilla", zap.Int("index", int(idx)), zap.Bool("free", free))
	return idx
}

// FreeAncilla returns the first free ancilla in index order and marks
// it in use.
func (c *Circuit) FreeAncilla() (Index, error) {
	idx, ok := c.takeFreeAncilla(nil)
	if !ok {
		return 0, ErrNoFreeAncilla
	}
	return idx, nil
}

// takeFreeAncilla marks the first free ancilla not in exclude as in
// use.
func (c *Circuit) takeFreeAncilla(exclude map[int]bool) (Index, bool) {
	for i := range c.slots {
		s := &c.slots[i]
		if s.Ancilla && s.Free && !exclude[i] {
			s.Free = false
			return Index(i), true
		}
	}
	return 0, false
}

// allocAncilla returns a scratch ancilla, reusing a free one when
// possible and registering a new in-use ancilla otherwise.
func (c *Circuit) allocAncilla(exclude map[int]bool) Index {
	if idx, ok := c.takeFreeAncilla(exclude); ok {
		c.log.Debug("reuse ancilla", zap.Int("index", int(idx)))
		return idx
	}
	return c.AddAncilla(false)
}

// checkAncillas verifies that all indices are registered ancillas.
func (c *Circuit) checkAncillas(indices []Index) error {
	for _, idx := range indices {
		if int(idx) < 0 || int(idx) >= len(c.slots) {
			return errors.Wrapf(ErrInvalidAncilla, "index %d out of range", idx)
		}
		if !c.slots[idx].Ancilla {
			return errors.Wrapf(ErrInvalidAncilla, "qubit %s",
				c.slots[idx].EffectiveKey())
		}
	}
	return nil
}

// Release marks the ancillas free for reuse. The caller must have
// restored their value to zero; Release does not verify it.
func (c *Circuit) Release(indices ...Index) error {
	if err := c.checkAncillas(indices); err != nil {
		return err
	}
	for _, idx := range indices {
		c.slots[idx].Free = true
	}
	return nil
}

// NumAncillas returns the number of ancilla slots.
func (c *Circuit) NumAncillas() int {
	var count int
	for _, s := range c.slots {
		if s.Ancilla {
			count++
		}
	}
	return count
}

// NumFreeAncillas returns the number of ancillas currently free.
func (c *Circuit) NumFreeAncillas() int {
	var count int
	for _, s := range c.slots {
		if s.Ancilla && s.Free {
			count++
		}
	}
	return count
}
