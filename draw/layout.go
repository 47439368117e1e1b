package draw

import (
	"qgates/circuit"
)

// Source is the read-only circuit view the diagram is drawn from.
type Source interface {
	NumQubits() int
	Keys() []string
	Gates() []circuit.Gate
}

// Layout places the gate log on a grid of steps. Each gate takes the
// earliest step after every gate already placed on the qubits between
// its lowest and highest operand, so its vertical connector never
// crosses another gate.
type Layout struct {
	numQubits int
	keys      []string
	ancilla   []bool
	gates     []circuit.Gate
	steps     [][]int     // step -> gate indices
	grid      map[pos]int // occupied cell -> gate index
}

type pos struct {
	step  int
	qubit int
}

// NewLayout computes the layout of the circuit.
func NewLayout(src Source) *Layout {
	l := &Layout{
		numQubits: src.NumQubits(),
		keys:      src.Keys(),
		ancilla:   make([]bool, src.NumQubits()),
		gates:     src.Gates(),
		grid:      make(map[pos]int),
	}
	if s, ok := src.(interface{ Slots() []circuit.Slot }); ok {
		for _, slot := range s.Slots() {
			if slot.Index < len(l.ancilla) {
				l.ancilla[slot.Index] = slot.Ancilla
			}
		}
	}

	level := make([]int, l.numQubits)
	for idx, gate := range l.gates {
		lo, hi := span(gate)
		step := 0
		for q := lo; q <= hi; q++ {
			step = max(step, level[q])
		}
		for q := lo; q <= hi; q++ {
			level[q] = step + 1
			l.grid[pos{step, q}] = idx
		}
		for len(l.steps) <= step {
			l.steps = append(l.steps, nil)
		}
		l.steps[step] = append(l.steps[step], idx)
	}
	return l
}

func span(g circuit.Gate) (lo, hi int) {
	lo, hi = g.Qubits[0], g.Qubits[0]
	for _, q := range g.Qubits[1:] {
		lo = min(lo, q)
		hi = max(hi, q)
	}
	return
}

// NumQubits returns the number of wires.
func (l *Layout) NumQubits() int {
	return l.numQubits
}

// NumSteps returns the number of occupied steps.
func (l *Layout) NumSteps() int {
	return len(l.steps)
}

// Step returns the indices of the gates placed at step.
func (l *Layout) Step(step int) []int {
	if step < 0 || step >= len(l.steps) {
		return nil
	}
	return l.steps[step]
}

// Gate returns the gate with the log index.
func (l *Layout) Gate(idx int) circuit.Gate {
	return l.gates[idx]
}

// GateAt returns the log index of the gate whose span covers the cell.
func (l *Layout) GateAt(step, qubit int) (int, bool) {
	idx, ok := l.grid[pos{step, qubit}]
	return idx, ok
}

// Cell describes what is drawn in one grid cell.
type Cell struct {
	Gate        *circuit.Gate
	GateIndex   int
	Control     bool
	Target      bool
	Operand     bool // any operand of the gate on this qubit
	VertAbove   bool
	VertBelow   bool
	PassThrough bool
}

// Cell returns the cell at step and qubit.
func (l *Layout) Cell(step, qubit int) Cell {
	info := Cell{GateIndex: -1}
	idx, ok := l.GateAt(step, qubit)
	if !ok {
		return info
	}
	gate := l.gates[idx]
	info.Gate = &gate
	info.GateIndex = idx

	if gate.References(qubit) {
		info.Operand = true
		switch gate.Op {
		case circuit.CX, circuit.CCX:
			info.Target = gate.Target() == qubit
			info.Control = !info.Target
		default:
			info.Target = true
		}
	}

	if len(gate.Qubits) > 1 {
		lo, hi := span(gate)
		info.VertAbove = qubit > lo
		info.VertBelow = qubit < hi
		info.PassThrough = !info.Operand
	}
	return info
}
