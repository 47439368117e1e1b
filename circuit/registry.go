package circuit

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Ref references a qubit slot either by key or by index.
type Ref interface {
	isRef()
}

// Name references a qubit by its key.
type Name string

// Index references a qubit by its slot index.
type Index int

func (Name) isRef()  {}
func (Index) isRef() {}

func (n Name) String() string {
	return string(n)
}

// Int returns the index as int.
func (i Index) Int() int {
	return int(i)
}

// Indices converts qubit indices into references.
func Indices(indices ...int) []Ref {
	result := make([]Ref, len(indices))
	for i, idx := range indices {
		result[i] = Index(idx)
	}
	return result
}

// Names converts qubit keys into references.
func Names(names ...string) []Ref {
	result := make([]Ref, len(names))
	for i, n := range names {
		result[i] = Name(n)
	}
	return result
}

func (c *Circuit) appendSlot(slot Slot) Index {
	slot.Index = len(c.slots)
	c.slots = append(c.slots, slot)
	if len(slot.Key) > 0 {
		c.keys[slot.Key] = slot.Index
	}
	return Index(slot.Index)
}

// keyInUse tests if the key is registered explicitly or is the default
// key of a keyless slot.
func (c *Circuit) keyInUse(key string) bool {
	if _, ok := c.keys[key]; ok {
		return true
	}
	idx, ok := defaultKeyIndex(key)
	return ok && idx < len(c.slots) && len(c.slots[idx].Key) == 0
}

// defaultKeyIndex parses default keys of the form q<index>.
func defaultKeyIndex(key string) (int, bool) {
	if !strings.HasPrefix(key, "q") || len(key) < 2 {
		return 0, false
	}
	digits := key[1:]
	if len(digits) > 1 && digits[0] == '0' {
		return 0, false
	}
	idx, err := strconv.Atoi(digits)
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}

// AddQubit registers a new qubit slot and returns its index. An empty
// key registers a keyless qubit. A key of the form q<n> is accepted
// only for slot n.
func (c *Circuit) AddQubit(key string) (Index, error) {
	if len(key) > 0 && c.keyInUse(key) {
		return 0, errors.Wrapf(ErrDuplicateKey, "qubit %q", key)
	}
	// q<n> is reserved for slot n.
	if idx, ok := defaultKeyIndex(key); ok && idx != len(c.slots) {
		return 0, errors.Wrapf(ErrDuplicateKey,
			"qubit %q: default key of slot %d", key, idx)
	}
	return c.appendSlot(Slot{Key: key}), nil
}

// NumQubits returns the number of registered slots, ancillas included.
func (c *Circuit) NumQubits() int {
	return len(c.slots)
}

// Resolve returns the slot index the reference points to.
func (c *Circuit) Resolve(ref Ref) (Index, error) {
	switch r := ref.(type) {
	case Index:
		if int(r) < 0 || int(r) >= len(c.slots) {
			return 0, errors.Wrapf(ErrUnknownRef, "index %d", r)
		}
		return r, nil

	case Name:
		if idx, ok := c.keys[string(r)]; ok {
			return Index(idx), nil
		}
		idx, ok := defaultKeyIndex(string(r))
		if ok && idx < len(c.slots) && len(c.slots[idx].Key) == 0 {
			return Index(idx), nil
		}
		return 0, errors.Wrapf(ErrUnknownRef, "key %q", string(r))

	default:
		return 0, errors.Wrapf(ErrUnknownRef, "%v", ref)
	}
}

// KeyByIndex returns the key of the slot index. Keyless slots return
// their default key.
func (c *Circuit) KeyByIndex(index int) (string, error) {
	if index < 0 || index >= len(c.slots) {
		return "", errors.Wrapf(ErrOutOfRange, "index %d, #qubits=%d",
			index, len(c.slots))
	}
	return c.slots[index].EffectiveKey(), nil
}

// Keys returns the effective key of every slot in index order.
func (c *Circuit) Keys() []string {
	result := make([]string, len(c.slots))
	for i, s := range c.slots {
		result[i] = s.EffectiveKey()
	}
	return result
}

// Slot returns the slot at index.
func (c *Circuit) Slot(index int) (Slot, error) {
	if index < 0 || index >= len(c.slots) {
		return Slot{}, errors.Wrapf(ErrOutOfRange, "index %d", index)
	}
	return c.slots[index], nil
}

// Slots returns a copy of all slots.
func (c *Circuit) Slots() []Slot {
	result := make([]Slot, len(c.slots))
	copy(result, c.slots)
	return result
}
