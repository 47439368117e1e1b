package circuit

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// MCX applies a NOT to target controlled by all controls.
//
// One control emits CX and two controls emit CCX. With k > 2 controls
// the controls are AND-ed left to right into a chain of k-2 scratch
// ancillas:
//
//	CCX c0 c1 a0
//	CCX a0 c2 a1
//	...
//	CCX a(k-3) c(k-1) target
//
// Free ancillas are reused before new ones are registered. The scratch
// ancillas are returned in allocation order and remain in use; the
// caller reclaims them with Uncompute once they are no longer needed.
func (c *Circuit) MCX(controls []Ref, target Ref) ([]Index, error) {
	if len(controls) == 0 {
		return nil, errors.Wrap(ErrOperandCount, "MCX: no controls")
	}
	refs := make([]Ref, 0, len(controls)+1)
	refs = append(refs, controls...)
	refs = append(refs, target)
	qubits, err := c.resolveAll(refs)
	if err != nil {
		return nil, errors.Wrap(err, "MCX")
	}
	ctrl := qubits[:len(controls)]
	tgt := qubits[len(controls)]

	switch len(ctrl) {
	case 1:
		c.emit(CX, ctrl[0], tgt)
		return nil, nil
	case 2:
		c.emit(CCX, ctrl[0], ctrl[1], tgt)
		return nil, nil
	}

	exclude := make(map[int]bool, len(qubits))
	for _, q := range qubits {
		exclude[q] = true
	}

	scratch := make([]Index, 0, len(ctrl)-2)
	acc := ctrl[0]
	for i := 1; i < len(ctrl)-1; i++ {
		a := c.allocAncilla(exclude)
		exclude[int(a)] = true
		scratch = append(scratch, a)

		c.emit(CCX, acc, ctrl[i], int(a))
		acc = int(a)
	}
	c.emit(CCX, acc, ctrl[len(ctrl)-1], tgt)

	c.log.Debug("decompose MCX",
		zap.Ints("controls", ctrl),
		zap.Int("target", tgt),
		zap.Ints("ancillas", indexInts(scratch)))

	return scratch, nil
}

// Fredkin applies the controlled swap of a and b:
//
//	CX b a
//	CCX control a b
//	CX b a
func (c *Circuit) Fredkin(control, a, b Ref) error {
	qubits, err := c.resolveAll([]Ref{control, a, b})
	if err != nil {
		return errors.Wrap(err, "Fredkin")
	}
	c.emit(CX, qubits[2], qubits[1])
	c.emit(CCX, qubits[0], qubits[1], qubits[2])
	c.emit(CX, qubits[2], qubits[1])
	return nil
}

// MultiX applies X to each target. The targets are resolved before any
// gate is emitted.
func (c *Circuit) MultiX(targets ...Ref) error {
	qubits := make([]int, len(targets))
	for i, ref := range targets {
		idx, err := c.Resolve(ref)
		if err != nil {
			return errors.Wrap(err, "MultiX")
		}
		qubits[i] = int(idx)
	}
	for _, q := range qubits {
		c.emit(X, q)
	}
	return nil
}

func indexInts(indices []Index) []int {
	result := make([]int, len(indices))
	for i, idx := range indices {
		result[i] = int(idx)
	}
	return result
}
