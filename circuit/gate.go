package circuit

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Operation specifies the gate function.
type Operation byte

// Primitive gate functions. Every one of them is its own inverse.
const (
	X Operation = iota
	CX
	CCX
	SWAP
)

// NumOperations is the number of defined operations.
const NumOperations = int(SWAP) + 1

func (op Operation) String() string {
	switch op {
	case X:
		return "X"
	case CX:
		return "CX"
	case CCX:
		return "CCX"
	case SWAP:
		return "SWAP"
	default:
		return fmt.Sprintf("{Operation %d}", op)
	}
}

// Arity returns the number of qubit operands the operation takes.
func (op Operation) Arity() int {
	switch op {
	case X:
		return 1
	case CX, SWAP:
		return 2
	case CCX:
		return 3
	default:
		return 0
	}
}

// ParseOperation parses an operation name, case-insensitively.
// "toffoli" is accepted for CCX and "cnot" for CX.
func ParseOperation(name string) (Operation, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "X", "NOT":
		return X, nil
	case "CX", "CNOT":
		return CX, nil
	case "CCX", "TOFFOLI":
		return CCX, nil
	case "SWAP":
		return SWAP, nil
	default:
		return 0, errors.Wrapf(ErrUnknownOperation, "%q", name)
	}
}

// Gate is one entry of the gate log. For controlled operations the
// controls come first and the target is the last qubit.
type Gate struct {
	Op     Operation
	Qubits []int
}

func (g Gate) String() string {
	var sb strings.Builder
	sb.WriteString(g.Op.String())
	for _, q := range g.Qubits {
		fmt.Fprintf(&sb, " %d", q)
	}
	return sb.String()
}

// Controls returns the control qubits of the gate.
func (g Gate) Controls() []int {
	switch g.Op {
	case CX, CCX:
		return g.Qubits[:len(g.Qubits)-1]
	default:
		return nil
	}
}

// Target returns the target qubit of the gate. For SWAP this is the
// second qubit.
func (g Gate) Target() int {
	return g.Qubits[len(g.Qubits)-1]
}

// References reports whether the gate references the given qubit.
func (g Gate) References(qubit int) bool {
	for _, q := range g.Qubits {
		if q == qubit {
			return true
		}
	}
	return false
}

func (g Gate) clone() Gate {
	qubits := make([]int, len(g.Qubits))
	copy(qubits, g.Qubits)
	return Gate{
		Op:     g.Op,
		Qubits: qubits,
	}
}
