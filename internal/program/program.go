// Package program builds circuits from YAML circuit programs.
//
// A program registers qubits and ancillas and then runs a list of
// operations against the circuit:
//
//	name: adder
//	qubits: [a, b, "", res]
//	ancillas:
//	  - free: false
//	ops:
//	  - {op: x, args: [a]}
//	  - {op: mcx, args: [a, b, q2, res]}
//	  - {op: uncompute}
//
// Numeric arguments reference qubits by index, all others by key.
package program

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"qgates/circuit"
)

// ErrProgram is returned for malformed programs.
var ErrProgram = errors.New("invalid program")

// DefaultName is the gate name of programs without a name.
const DefaultName = "qc"

// Program is a YAML circuit program.
type Program struct {
	Name     string    `yaml:"name"`
	Qubits   []string  `yaml:"qubits"`
	Ancillas []Ancilla `yaml:"ancillas"`
	Ops      []Op      `yaml:"ops"`
}

// Ancilla declares an ancilla qubit.
type Ancilla struct {
	Free bool `yaml:"free"`
}

// Op is one program operation.
type Op struct {
	Op   string   `yaml:"op"`
	Args []string `yaml:"args,flow"`
}

func (op Op) String() string {
	return op.Op + " " + strings.Join(op.Args, " ")
}

// Parse parses a YAML program.
func Parse(data []byte) (*Program, error) {
	p := new(Program)
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, errors.Wrap(err, "parse program")
	}
	if len(p.Name) == 0 {
		p.Name = DefaultName
	}
	return p, nil
}

// Load reads and parses the YAML program file.
func Load(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return p, nil
}

// Marshal returns the program as YAML.
func (p *Program) Marshal() ([]byte, error) {
	return yaml.Marshal(p)
}

// ref converts a program argument into a qubit reference.
func ref(arg string) circuit.Ref {
	idx, err := strconv.Atoi(arg)
	if err == nil && idx >= 0 {
		return circuit.Index(idx)
	}
	return circuit.Name(arg)
}

func refs(args []string) []circuit.Ref {
	result := make([]circuit.Ref, len(args))
	for i, arg := range args {
		result[i] = ref(arg)
	}
	return result
}

// Build runs the program against a new circuit.
func (p *Program) Build(opts ...circuit.Option) (*circuit.Circuit, error) {
	c := circuit.New(opts...)

	for _, key := range p.Qubits {
		if _, err := c.AddQubit(key); err != nil {
			return nil, errors.Wrap(err, "qubits")
		}
	}
	for _, anc := range p.Ancillas {
		c.AddAncilla(anc.Free)
	}

	b := &builder{
		c: c,
	}
	for i, op := range p.Ops {
		if err := b.run(op); err != nil {
			return nil, errors.Wrapf(err, "op %d (%s)", i, op)
		}
	}
	return c, nil
}

type builder struct {
	c       *circuit.Circuit
	scratch []circuit.Index
}

func (b *builder) run(op Op) error {
	args := refs(op.Args)

	switch strings.ToLower(op.Op) {
	case "qubit":
		if len(op.Args) > 1 {
			return errors.Wrap(ErrProgram, "qubit takes at most one key")
		}
		var key string
		if len(op.Args) == 1 {
			key = op.Args[0]
		}
		_, err := b.c.AddQubit(key)
		return err

	case "ancilla":
		if len(op.Args) > 1 || (len(op.Args) == 1 && op.Args[0] != "free") {
			return errors.Wrap(ErrProgram, "ancilla takes an optional 'free'")
		}
		b.c.AddAncilla(len(op.Args) == 1)
		return nil

	case "fredkin", "cswap":
		if len(args) != 3 {
			return errors.Wrapf(circuit.ErrOperandCount, "fredkin: %d", len(args))
		}
		return b.c.Fredkin(args[0], args[1], args[2])

	case "mcx":
		if len(args) < 2 {
			return errors.Wrapf(circuit.ErrOperandCount, "mcx: %d", len(args))
		}
		scratch, err := b.c.MCX(args[:len(args)-1], args[len(args)-1])
		if err != nil {
			return err
		}
		b.scratch = scratch
		return nil

	case "multix":
		return b.c.MultiX(args...)

	case "uncompute":
		indices, err := b.ancillas(args)
		if err != nil {
			return err
		}
		return b.c.Uncompute(indices...)

	case "release":
		indices, err := b.ancillas(args)
		if err != nil {
			return err
		}
		return b.c.Release(indices...)

	default:
		gate, err := circuit.ParseOperation(op.Op)
		if err != nil {
			return err
		}
		return b.c.Apply(gate, args...)
	}
}

// ancillas resolves the arguments into slot indices. Without arguments
// it returns the scratch ancillas of the last mcx.
func (b *builder) ancillas(args []circuit.Ref) ([]circuit.Index, error) {
	if len(args) == 0 {
		result := b.scratch
		b.scratch = nil
		return result, nil
	}
	result := make([]circuit.Index, len(args))
	for i, arg := range args {
		idx, err := b.c.Resolve(arg)
		if err != nil {
			return nil, err
		}
		result[i] = idx
	}
	return result, nil
}
