package export

import (
	"fmt"
	"math/cmplx"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"qgates/circuit"
)

// MaxSimQubits is the largest register the state vector simulator
// accepts.
const MaxSimQubits = 24

// Instruction is one simulator instruction.
type Instruction struct {
	Name   string // x, cx, ccx, swap
	Qubits []int
}

func (i Instruction) String() string {
	args := make([]string, len(i.Qubits))
	for idx, q := range i.Qubits {
		args[idx] = fmt.Sprintf("q[%d]", q)
	}
	return fmt.Sprintf("%s %s", i.Name, strings.Join(args, ", "))
}

// Program is a simulator circuit. Measure maps qubit i to its classical
// bit; the exporter measures qubit i into classical bit i.
type Program struct {
	Name         string
	NumQubits    int
	Instructions []Instruction
	Measure      []int
}

// NewProgram builds the simulator program of the circuit.
func NewProgram(name string, src Source) *Program {
	p := &Program{
		Name:      name,
		NumQubits: src.NumQubits(),
		Measure:   make([]int, src.NumQubits()),
	}
	for q := range p.Measure {
		p.Measure[q] = q
	}
	for _, gate := range src.Gates() {
		qubits := make([]int, len(gate.Qubits))
		copy(qubits, gate.Qubits)
		p.Instructions = append(p.Instructions, Instruction{
			Name:   strings.ToLower(gate.Op.String()),
			Qubits: qubits,
		})
	}
	return p
}

func (p *Program) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "circuit %s: qubits=%d clbits=%d\n",
		p.Name, p.NumQubits, len(p.Measure))
	for _, inst := range p.Instructions {
		fmt.Fprintf(&sb, "  %s\n", inst)
	}
	for q, c := range p.Measure {
		fmt.Fprintf(&sb, "  measure q[%d] -> c[%d]\n", q, c)
	}
	return sb.String()
}

// Run executes the program on the all-zero state and returns the final
// state vector.
func (p *Program) Run() (*StateVector, error) {
	if p.NumQubits > MaxSimQubits {
		return nil, errors.Wrapf(ErrTooManyQubits, "%d > %d",
			p.NumQubits, MaxSimQubits)
	}
	state := NewStateVector(p.NumQubits)
	for _, inst := range p.Instructions {
		if err := state.Apply(inst.Name, inst.Qubits...); err != nil {
			return nil, err
		}
	}
	return state, nil
}

// Bitstring returns the classical register value for the basis state,
// with the highest classical bit first.
func (p *Program) Bitstring(basis int) string {
	bits := make([]byte, len(p.Measure))
	for i := range bits {
		bits[i] = '0'
	}
	for q, c := range p.Measure {
		if basis&(1<<q) != 0 {
			bits[len(bits)-1-c] = '1'
		}
	}
	return string(bits)
}

// Counts runs the program and samples shots measurements of all
// qubits. The sampling is reproducible for the seed.
func (p *Program) Counts(shots int, seed uint64) (map[string]int, error) {
	state, err := p.Run()
	if err != nil {
		return nil, err
	}
	states := state.BasisStates()
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	counts := make(map[string]int)
	for range shots {
		r := rng.Float64()
		pick := states[len(states)-1]
		for _, s := range states {
			if r < s.Prob {
				pick = s
				break
			}
			r -= s.Prob
		}
		counts[p.Bitstring(pick.Basis)]++
	}
	return counts, nil
}

// StateVector holds the amplitudes of a quantum register.
type StateVector struct {
	Amplitudes []complex128
	NumQubits  int
}

// NewStateVector creates the all-zero state of numQubits qubits.
func NewStateVector(numQubits int) *StateVector {
	n := 1 << numQubits
	amps := make([]complex128, n)
	amps[0] = 1
	return &StateVector{Amplitudes: amps, NumQubits: numQubits}
}

// Clone returns a copy of the state vector.
func (s *StateVector) Clone() *StateVector {
	amps := make([]complex128, len(s.Amplitudes))
	copy(amps, s.Amplitudes)
	return &StateVector{Amplitudes: amps, NumQubits: s.NumQubits}
}

// Apply applies the named gate.
func (s *StateVector) Apply(name string, qubits ...int) error {
	for _, q := range qubits {
		if q < 0 || q >= s.NumQubits {
			return errors.Errorf("%s: qubit %d out of range", name, q)
		}
	}
	switch {
	case name == "x" && len(qubits) == 1:
		s.applyX(qubits[0])
	case name == "cx" && len(qubits) == 2:
		s.applyCX(qubits[0], qubits[1])
	case name == "ccx" && len(qubits) == 3:
		s.applyCCX(qubits[0], qubits[1], qubits[2])
	case name == "swap" && len(qubits) == 2:
		s.applySWAP(qubits[0], qubits[1])
	default:
		return errors.Errorf("unsupported instruction %s/%d", name, len(qubits))
	}
	return nil
}

func (s *StateVector) applyX(q int) {
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyCX(control, target int) {
	n := len(s.Amplitudes)
	cBit := 1 << control
	tBit := 1 << target
	for i := 0; i < n; i++ {
		if i&cBit != 0 && i&tBit == 0 {
			j := i | tBit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyCCX(control0, control1, target int) {
	n := len(s.Amplitudes)
	cMask := 1<<control0 | 1<<control1
	tBit := 1 << target
	for i := 0; i < n; i++ {
		if i&cMask == cMask && i&tBit == 0 {
			j := i | tBit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applySWAP(q1, q2 int) {
	n := len(s.Amplitudes)
	bit1 := 1 << q1
	bit2 := 1 << q2
	for i := 0; i < n; i++ {
		if i&bit1 != 0 && i&bit2 == 0 {
			j := (i & ^bit1) | bit2
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

// QubitProbability holds the probabilities of measuring 0 and 1.
type QubitProbability struct {
	Prob0 float64
	Prob1 float64
}

// QubitProbabilities returns the marginal probabilities of each qubit.
func (s *StateVector) QubitProbabilities() []QubitProbability {
	probs := make([]QubitProbability, s.NumQubits)
	n := len(s.Amplitudes)

	for i := 0; i < n; i++ {
		prob := real(s.Amplitudes[i] * cmplx.Conj(s.Amplitudes[i]))
		for q := 0; q < s.NumQubits; q++ {
			if i&(1<<q) != 0 {
				probs[q].Prob1 += prob
			} else {
				probs[q].Prob0 += prob
			}
		}
	}

	return probs
}

// BasisState is a basis state with non-zero amplitude.
type BasisState struct {
	Basis     int
	Amplitude complex128
	Prob      float64
}

// BasisStates returns the basis states with non-negligible probability
// in ascending basis order.
func (s *StateVector) BasisStates() []BasisState {
	var states []BasisState
	for i, amp := range s.Amplitudes {
		prob := real(amp * cmplx.Conj(amp))
		if prob > 1e-10 {
			states = append(states, BasisState{
				Basis:     i,
				Amplitude: amp,
				Prob:      prob,
			})
		}
	}
	sort.Slice(states, func(i, j int) bool {
		return states[i].Basis < states[j].Basis
	})
	return states
}

// MostLikely returns the basis state with the highest probability.
func (s *StateVector) MostLikely() BasisState {
	var best BasisState
	for _, st := range s.BasisStates() {
		if st.Prob > best.Prob {
			best = st
		}
	}
	return best
}

// Stats returns the gate statistics of the program.
func (p *Program) Stats() circuit.Stats {
	var stats circuit.Stats
	for _, inst := range p.Instructions {
		op, err := circuit.ParseOperation(inst.Name)
		if err == nil {
			stats[op]++
		}
	}
	return stats
}
