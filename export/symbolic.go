package export

import (
	"fmt"
	"strings"

	"github.com/markkurossi/text/superscript"

	"qgates/circuit"
)

// Operator is one gate of a symbolic expression.
type Operator struct {
	Name     string // X, CNOT, CGate, SWAP
	Controls []int
	Targets  []int
}

func (op Operator) String() string {
	switch op.Name {
	case "CGate":
		return fmt.Sprintf("CGate((%s),X(%d))", joinInts(op.Controls, ","), op.Targets[0])
	case "CNOT":
		return fmt.Sprintf("CNOT(%d,%d)", op.Controls[0], op.Targets[0])
	default:
		return fmt.Sprintf("%s(%s)", op.Name, joinInts(op.Targets, ","))
	}
}

// Pretty returns the operator name with its qubits as superscripts,
// controls first.
func (op Operator) Pretty() string {
	var parts []string
	for _, q := range op.Controls {
		parts = append(parts, superscript.Itoa(q))
	}
	for _, q := range op.Targets {
		parts = append(parts, superscript.Itoa(q))
	}
	name := op.Name
	if name == "CGate" {
		name = "CCX"
	}
	return name + strings.Join(parts, "˒")
}

// apply applies the operator to the basis state.
func (op Operator) apply(bits []bool) {
	for _, c := range op.Controls {
		if !bits[c] {
			return
		}
	}
	switch op.Name {
	case "SWAP":
		a, b := op.Targets[0], op.Targets[1]
		bits[a], bits[b] = bits[b], bits[a]
	default:
		bits[op.Targets[0]] = !bits[op.Targets[0]]
	}
}

// Ket is a computational basis state. Bits[i] is the value of qubit i.
type Ket struct {
	Bits []bool
}

// Label returns the state label with the highest qubit first.
func (k Ket) Label() string {
	var sb strings.Builder
	for i := len(k.Bits) - 1; i >= 0; i-- {
		if k.Bits[i] {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func (k Ket) String() string {
	return fmt.Sprintf("Qubit('%s')", k.Label())
}

// Outcome is a measurement outcome with its probability.
type Outcome struct {
	State Ket
	Prob  float64
}

// Expression is a product of gate operators applied to the all-zero
// state. Ops are in application order.
type Expression struct {
	NumQubits int
	Ops       []Operator
}

// NewExpression builds the symbolic expression of the circuit.
func NewExpression(src Source) *Expression {
	expr := &Expression{
		NumQubits: src.NumQubits(),
	}
	for _, gate := range src.Gates() {
		var op Operator
		switch gate.Op {
		case circuit.X:
			op = Operator{Name: "X", Targets: []int{gate.Qubits[0]}}
		case circuit.CX:
			op = Operator{
				Name:     "CNOT",
				Controls: []int{gate.Qubits[0]},
				Targets:  []int{gate.Qubits[1]},
			}
		case circuit.CCX:
			op = Operator{
				Name:     "CGate",
				Controls: []int{gate.Qubits[0], gate.Qubits[1]},
				Targets:  []int{gate.Qubits[2]},
			}
		case circuit.SWAP:
			op = Operator{Name: "SWAP", Targets: []int{gate.Qubits[0], gate.Qubits[1]}}
		}
		expr.Ops = append(expr.Ops, op)
	}
	return expr
}

func (e *Expression) initial() Ket {
	return Ket{
		Bits: make([]bool, e.NumQubits),
	}
}

// String renders the expression with the last applied operator first,
// e.g. CNOT(0,1)*X(0)*Qubit('00').
func (e *Expression) String() string {
	var parts []string
	for i := len(e.Ops) - 1; i >= 0; i-- {
		parts = append(parts, e.Ops[i].String())
	}
	parts = append(parts, e.initial().String())
	return strings.Join(parts, "*")
}

// Pretty renders the expression in operator notation.
func (e *Expression) Pretty() string {
	var parts []string
	for i := len(e.Ops) - 1; i >= 0; i-- {
		parts = append(parts, e.Ops[i].Pretty())
	}
	parts = append(parts, "|"+e.initial().Label()+"⟩")
	return strings.Join(parts, "·")
}

// Apply evaluates the expression. All operators are permutations of
// the computational basis so the result is a single basis state.
func (e *Expression) Apply() Ket {
	ket := e.initial()
	for _, op := range e.Ops {
		op.apply(ket.Bits)
	}
	return ket
}

// MeasureAll returns the outcomes of measuring all qubits of the
// evaluated expression.
func (e *Expression) MeasureAll() []Outcome {
	return []Outcome{
		{
			State: e.Apply(),
			Prob:  1,
		},
	}
}

func joinInts(values []int, sep string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, sep)
}
