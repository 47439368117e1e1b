package circuit

import (
	"github.com/pkg/errors"
)

// resolveAll resolves the references and checks that they are pairwise
// distinct.
func (c *Circuit) resolveAll(refs []Ref) ([]int, error) {
	result := make([]int, len(refs))
	seen := make(map[int]bool, len(refs))
	for i, ref := range refs {
		idx, err := c.Resolve(ref)
		if err != nil {
			return nil, err
		}
		if seen[int(idx)] {
			return nil, errors.Wrapf(ErrDuplicateOperand, "qubit %s",
				c.slots[idx].EffectiveKey())
		}
		seen[int(idx)] = true
		result[i] = int(idx)
	}
	return result, nil
}

// Apply resolves the operands and appends the primitive gate op to the
// gate log.
func (c *Circuit) Apply(op Operation, operands ...Ref) error {
	if op.Arity() == 0 {
		return errors.Wrapf(ErrUnknownOperation, "%s", op)
	}
	if len(operands) != op.Arity() {
		return errors.Wrapf(ErrOperandCount, "%s: got %d, expected %d",
			op, len(operands), op.Arity())
	}
	qubits, err := c.resolveAll(operands)
	if err != nil {
		return errors.Wrapf(err, "%s", op)
	}
	c.emit(op, qubits...)
	return nil
}

// emit appends a gate with already validated operands.
func (c *Circuit) emit(op Operation, qubits ...int) {
	q := make([]int, len(qubits))
	copy(q, qubits)
	c.gates = append(c.gates, Gate{
		Op:     op,
		Qubits: q,
	})
}

// X applies the NOT gate to target.
func (c *Circuit) X(target Ref) error {
	return c.Apply(X, target)
}

// CX applies the controlled NOT gate.
func (c *Circuit) CX(control, target Ref) error {
	return c.Apply(CX, control, target)
}

// CCX applies the Toffoli gate.
func (c *Circuit) CCX(control0, control1, target Ref) error {
	return c.Apply(CCX, control0, control1, target)
}

// Toffoli is an alias for CCX.
func (c *Circuit) Toffoli(control0, control1, target Ref) error {
	return c.CCX(control0, control1, target)
}

// Swap exchanges the values of qubits a and b.
func (c *Circuit) Swap(a, b Ref) error {
	return c.Apply(SWAP, a, b)
}
