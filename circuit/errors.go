package circuit

import (
	"github.com/pkg/errors"
)

// Circuit construction errors. They are returned wrapped with context;
// match them with errors.Is.
var (
	ErrDuplicateKey     = errors.New("duplicate qubit key")
	ErrUnknownRef       = errors.New("unknown qubit reference")
	ErrOutOfRange       = errors.New("qubit index out of range")
	ErrDuplicateOperand = errors.New("duplicate gate operand")
	ErrNoFreeAncilla    = errors.New("no free ancilla")
	ErrInvalidAncilla   = errors.New("invalid ancilla")
	ErrOperandCount     = errors.New("invalid number of operands")
	ErrUnknownOperation = errors.New("unknown operation")
)
