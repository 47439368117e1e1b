package export

import (
	"fmt"
	"strings"

	"qgates/circuit"
)

// Text is a textual circuit representation.
type Text string

func (t Text) String() string {
	return string(t)
}

// GateBlock renders the circuit as a named gate definition:
//
//	gate <name> <key0> <key1> ... {
//		<op> <key> ...
//	}
//
// followed by an empty line. Operation names are lowercase and qubits
// are referenced by key.
func GateBlock(name string, src Source) Text {
	keys := src.Keys()

	var sb strings.Builder
	sb.WriteString("gate ")
	sb.WriteString(name)
	for _, k := range keys {
		sb.WriteString(" ")
		sb.WriteString(k)
	}
	sb.WriteString(" {\n")

	for _, gate := range src.Gates() {
		sb.WriteString("\t")
		sb.WriteString(strings.ToLower(gate.Op.String()))
		for _, q := range gate.Qubits {
			sb.WriteString(" ")
			sb.WriteString(keys[q])
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	return Text(sb.String())
}

// OpenQASM renders the circuit as an OpenQASM 2.0 program over a single
// quantum register. When measure is set, every qubit i is measured into
// classical bit i at the end of the program.
func OpenQASM(src Source, measure bool) Text {
	numQubits := max(src.NumQubits(), 1)

	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", numQubits)
	fmt.Fprintf(&sb, "creg c[%d];\n\n", numQubits)

	for _, gate := range src.Gates() {
		switch gate.Op {
		case circuit.X:
			fmt.Fprintf(&sb, "x q[%d];\n", gate.Qubits[0])
		case circuit.CX:
			fmt.Fprintf(&sb, "cx q[%d], q[%d];\n", gate.Qubits[0], gate.Qubits[1])
		case circuit.CCX:
			fmt.Fprintf(&sb, "ccx q[%d], q[%d], q[%d];\n",
				gate.Qubits[0], gate.Qubits[1], gate.Qubits[2])
		case circuit.SWAP:
			fmt.Fprintf(&sb, "swap q[%d], q[%d];\n", gate.Qubits[0], gate.Qubits[1])
		}
	}

	if measure {
		for q := range src.NumQubits() {
			fmt.Fprintf(&sb, "measure q[%d] -> c[%d];\n", q, q)
		}
	}

	return Text(sb.String())
}
