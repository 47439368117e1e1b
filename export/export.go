// Package export renders circuits into external representations: the
// textual gate block, a symbolic quantum-algebra expression, and a
// simulator program.
package export

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"qgates/circuit"
)

// Export errors.
var (
	ErrUnsupportedBackend = errors.New("unsupported backend")
	ErrSyntax             = errors.New("syntax error")
	ErrTooManyQubits      = errors.New("too many qubits to simulate")
)

// Source is the read-only view of a circuit the exporters consume.
type Source interface {
	NumQubits() int
	Keys() []string
	Gates() []circuit.Gate
}

var _ Source = (*circuit.Circuit)(nil)

// Representation is an exported circuit.
type Representation interface {
	String() string
}

// Renderer renders a circuit into one representation.
type Renderer interface {
	Render(name string, src Source) (Representation, error)
}

// Backend identifies an export target.
type Backend int

// Export backends.
const (
	QASM Backend = iota
	Symbolic
	Simulator
)

var backendNames = map[Backend]string{
	QASM:      "qasm",
	Symbolic:  "sympy",
	Simulator: "qiskit",
}

func (b Backend) String() string {
	name, ok := backendNames[b]
	if ok {
		return name
	}
	return fmt.Sprintf("{Backend %d}", int(b))
}

// ParseBackend parses the backend name.
func ParseBackend(name string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "qasm", "gate":
		return QASM, nil
	case "sympy", "symbolic":
		return Symbolic, nil
	case "qiskit", "simulator", "sim":
		return Simulator, nil
	default:
		return 0, errors.Wrapf(ErrUnsupportedBackend, "%q", name)
	}
}

// Renderer returns the renderer of the backend.
func (b Backend) Renderer() (Renderer, error) {
	switch b {
	case QASM:
		return gateBlockRenderer{}, nil
	case Symbolic:
		return symbolicRenderer{}, nil
	case Simulator:
		return simulatorRenderer{}, nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedBackend, "%s", b)
	}
}

// Export renders the circuit with the backend.
func Export(src Source, name string, backend Backend) (Representation, error) {
	r, err := backend.Renderer()
	if err != nil {
		return nil, err
	}
	return r.Render(name, src)
}

type gateBlockRenderer struct{}

func (gateBlockRenderer) Render(name string, src Source) (Representation, error) {
	return GateBlock(name, src), nil
}

type symbolicRenderer struct{}

func (symbolicRenderer) Render(name string, src Source) (Representation, error) {
	return NewExpression(src), nil
}

type simulatorRenderer struct{}

func (simulatorRenderer) Render(name string, src Source) (Representation, error) {
	return NewProgram(name, src), nil
}
