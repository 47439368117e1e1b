package circuit

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAddQubitIndices(t *testing.T) {
	c := New()
	for i := 0; i < 10; i++ {
		idx, err := c.AddQubit("")
		require.NoError(t, err)
		assert.Equal(t, Index(i), idx)
		assert.Equal(t, i+1, c.NumQubits())
	}
}

func TestBase(t *testing.T) {
	c := New()
	a, _ := c.AddQubit("")
	b, _ := c.AddQubit("")
	d, _ := c.AddQubit("")
	require.NoError(t, c.CCX(a, b, d))
	assert.Equal(t, 3, c.NumQubits())
}

func TestBaseMapping(t *testing.T) {
	c := New()
	_, err := c.AddQubit("a")
	require.NoError(t, err)
	_, err = c.AddQubit("b")
	require.NoError(t, err)
	d, err := c.AddQubit("c")
	require.NoError(t, err)

	require.NoError(t, c.CCX(Name("a"), Index(1), d))
	assert.Equal(t, 3, c.NumQubits())
	assert.Equal(t, []Gate{{Op: CCX, Qubits: []int{0, 1, 2}}}, c.Gates())
}

func TestDuplicateKey(t *testing.T) {
	c := New()
	_, err := c.AddQubit("a")
	require.NoError(t, err)

	_, err = c.AddQubit("a")
	assert.True(t, errors.Is(err, ErrDuplicateKey), "got %v", err)
	assert.Equal(t, 1, c.NumQubits())

	// Default key of a keyless slot.
	_, err = c.AddQubit("")
	require.NoError(t, err)
	_, err = c.AddQubit("q1")
	assert.True(t, errors.Is(err, ErrDuplicateKey), "got %v", err)
}

func TestReservedDefaultKey(t *testing.T) {
	c := New()
	for _, key := range []string{"q1", "q5"} {
		_, err := c.AddQubit(key)
		assert.True(t, errors.Is(err, ErrDuplicateKey), "%s: got %v", key, err)
	}
	assert.Equal(t, 0, c.NumQubits())

	q0, err := c.AddQubit("q0")
	require.NoError(t, err)
	a := c.AddAncilla(false)
	require.NoError(t, c.CX(q0, a))

	assert.Equal(t, []string{"q0", "q1"}, c.Keys())
	key, err := c.KeyByIndex(1)
	require.NoError(t, err)
	idx, err := c.Resolve(Name(key))
	require.NoError(t, err)
	assert.Equal(t, Index(1), idx)
}

func TestDuplicateOperand(t *testing.T) {
	c := New()
	a, _ := c.AddQubit("a")
	b, _ := c.AddQubit("b")

	err := c.Toffoli(a, b, a)
	assert.True(t, errors.Is(err, ErrDuplicateOperand), "got %v", err)

	err = c.CX(Name("a"), Index(0))
	assert.True(t, errors.Is(err, ErrDuplicateOperand), "got %v", err)
	assert.Equal(t, 0, c.NumGates())
}

func TestOperandCount(t *testing.T) {
	c := NewWithQubits(3)
	err := c.Apply(CX, Index(0))
	assert.True(t, errors.Is(err, ErrOperandCount), "got %v", err)

	_, err = c.MCX(nil, Index(0))
	assert.True(t, errors.Is(err, ErrOperandCount), "got %v", err)
	assert.Equal(t, 0, c.NumGates())
}

func TestMapping(t *testing.T) {
	c := NewWithQubits(4)
	require.NoError(t, c.CCX(Name("q0"), Name("q1"), Name("q2")))
	assert.Equal(t, []Gate{{Op: CCX, Qubits: []int{0, 1, 2}}}, c.Gates())
}

func TestResolve(t *testing.T) {
	c := New()
	c.AddQubit("a")
	c.AddQubit("")

	tests := []struct {
		ref  Ref
		want Index
		err  error
	}{
		{Name("a"), 0, nil},
		{Index(0), 0, nil},
		{Name("q1"), 1, nil},
		{Index(1), 1, nil},
		{Name("q0"), 0, ErrUnknownRef},
		{Name("b"), 0, ErrUnknownRef},
		{Index(2), 0, ErrUnknownRef},
		{Index(-1), 0, ErrUnknownRef},
		{Name("q01"), 0, ErrUnknownRef},
	}
	for _, tt := range tests {
		got, err := c.Resolve(tt.ref)
		if tt.err != nil {
			assert.True(t, errors.Is(err, tt.err), "Resolve(%v): got %v", tt.ref, err)
			continue
		}
		require.NoError(t, err, "Resolve(%v)", tt.ref)
		assert.Equal(t, tt.want, got, "Resolve(%v)", tt.ref)
	}
}

func TestGetKeyByIndex(t *testing.T) {
	c := New()
	c.AddQubit("a")
	c.AddQubit("b")
	c.AddQubit("")

	_, err := c.KeyByIndex(3)
	assert.True(t, errors.Is(err, ErrOutOfRange), "got %v", err)
	_, err = c.KeyByIndex(-1)
	assert.True(t, errors.Is(err, ErrOutOfRange), "got %v", err)

	key, err := c.KeyByIndex(0)
	require.NoError(t, err)
	assert.Equal(t, "a", key)

	key, err = c.KeyByIndex(2)
	require.NoError(t, err)
	assert.Equal(t, "q2", key)

	assert.Equal(t, []string{"a", "b", "q2"}, c.Keys())
}

func TestAddFreeAncilla(t *testing.T) {
	c := New()
	a := c.AddAncilla(true)
	b, err := c.FreeAncilla()
	require.NoError(t, err)
	assert.Equal(t, a, b)

	_, err = c.FreeAncilla()
	assert.True(t, errors.Is(err, ErrNoFreeAncilla), "got %v", err)
}

func TestRelease(t *testing.T) {
	c := New()
	q, _ := c.AddQubit("q")
	a := c.AddAncilla(false)

	err := c.Release(a, q)
	assert.True(t, errors.Is(err, ErrInvalidAncilla), "got %v", err)
	assert.Equal(t, 0, c.NumFreeAncillas())

	require.NoError(t, c.Release(a))
	got, err := c.FreeAncilla()
	require.NoError(t, err)
	assert.Equal(t, a, got)
}

func TestMCXSmall(t *testing.T) {
	c := NewWithQubits(3)

	anc, err := c.MCX(Indices(0), Index(2))
	require.NoError(t, err)
	assert.Empty(t, anc)

	anc, err = c.MCX(Indices(0, 1), Index(2))
	require.NoError(t, err)
	assert.Empty(t, anc)

	assert.Equal(t, []Gate{
		{Op: CX, Qubits: []int{0, 2}},
		{Op: CCX, Qubits: []int{0, 1, 2}},
	}, c.Gates())
	assert.Equal(t, 3, c.NumQubits())
}

func TestMCXChain(t *testing.T) {
	c := NewWithQubits(5)

	anc, err := c.MCX(Indices(0, 1, 2, 3), Index(4))
	require.NoError(t, err)
	assert.Equal(t, []Index{5, 6}, anc)
	assert.Equal(t, []Gate{
		{Op: CCX, Qubits: []int{0, 1, 5}},
		{Op: CCX, Qubits: []int{5, 2, 6}},
		{Op: CCX, Qubits: []int{6, 3, 4}},
	}, c.Gates())

	for _, a := range anc {
		slot, err := c.Slot(int(a))
		require.NoError(t, err)
		assert.True(t, slot.Ancilla)
		assert.False(t, slot.Free)
	}
}

func TestMCXReusesFreeAncillas(t *testing.T) {
	c := NewWithQubits(4)
	free := c.AddAncilla(true)

	anc, err := c.MCX(Indices(0, 1, 2), Index(3))
	require.NoError(t, err)
	assert.Equal(t, []Index{free}, anc)
	assert.Equal(t, 5, c.NumQubits())
}

func TestMCXSkipsFreeOperand(t *testing.T) {
	c := NewWithQubits(3)
	free := c.AddAncilla(true)

	anc, err := c.MCX([]Ref{Index(0), Index(1), free}, Index(2))
	require.NoError(t, err)
	assert.Equal(t, []Index{4}, anc)

	slot, _ := c.Slot(int(free))
	assert.True(t, slot.Free)
}

func TestMCXDuplicateOperand(t *testing.T) {
	c := NewWithQubits(4)
	_, err := c.MCX(Indices(0, 1, 2), Index(1))
	assert.True(t, errors.Is(err, ErrDuplicateOperand), "got %v", err)
	assert.Equal(t, 0, c.NumGates())
	assert.Equal(t, 4, c.NumQubits())
}

func TestFredkin(t *testing.T) {
	c := New()
	a, _ := c.AddQubit("a")
	b, _ := c.AddQubit("b")
	d, _ := c.AddQubit("c")

	require.NoError(t, c.Fredkin(a, b, d))
	assert.Equal(t, []Gate{
		{Op: CX, Qubits: []int{2, 1}},
		{Op: CCX, Qubits: []int{0, 1, 2}},
		{Op: CX, Qubits: []int{2, 1}},
	}, c.Gates())

	err := c.Fredkin(a, b, a)
	assert.True(t, errors.Is(err, ErrDuplicateOperand), "got %v", err)
	assert.Equal(t, 3, c.NumGates())
}

func TestMultiX(t *testing.T) {
	c := NewWithQubits(3)
	require.NoError(t, c.MultiX(Indices(0, 2)...))
	assert.Equal(t, []Gate{
		{Op: X, Qubits: []int{0}},
		{Op: X, Qubits: []int{2}},
	}, c.Gates())

	err := c.MultiX(Index(1), Name("nope"))
	assert.True(t, errors.Is(err, ErrUnknownRef), "got %v", err)
	assert.Equal(t, 2, c.NumGates())
}

func TestUncomputeSingleWriter(t *testing.T) {
	c := New()
	a, _ := c.AddQubit("")
	b, _ := c.AddQubit("")
	anc0 := c.AddAncilla(false)
	anc1 := c.AddAncilla(false)

	require.NoError(t, c.CX(a, anc0))
	require.NoError(t, c.X(b))
	require.NoError(t, c.CX(b, anc1))

	require.NoError(t, c.Uncompute(anc0, anc1))
	assert.Equal(t, []Gate{
		{Op: CX, Qubits: []int{0, 2}},
		{Op: X, Qubits: []int{1}},
		{Op: CX, Qubits: []int{1, 3}},
		{Op: CX, Qubits: []int{1, 3}},
		{Op: CX, Qubits: []int{0, 2}},
	}, c.Gates())
	assert.Equal(t, 2, c.NumFreeAncillas())

	got, err := c.FreeAncilla()
	require.NoError(t, err)
	assert.Equal(t, anc0, got)
}

func TestUncomputeUnwritten(t *testing.T) {
	c := New()
	a := c.AddAncilla(false)
	require.NoError(t, c.Uncompute(a))
	assert.Equal(t, 0, c.NumGates())
	assert.Equal(t, 1, c.NumFreeAncillas())
}

func TestUncomputeInvalid(t *testing.T) {
	c := New()
	q, _ := c.AddQubit("q")
	a := c.AddAncilla(false)
	require.NoError(t, c.CX(q, a))

	err := c.Uncompute(a, q)
	assert.True(t, errors.Is(err, ErrInvalidAncilla), "got %v", err)
	err = c.Uncompute(Index(7))
	assert.True(t, errors.Is(err, ErrInvalidAncilla), "got %v", err)

	assert.Equal(t, 1, c.NumGates())
	assert.Equal(t, 0, c.NumFreeAncillas())
}

func TestUncomputing1(t *testing.T) {
	c := New(WithLogger(zap.NewNop()))
	a, _ := c.AddQubit("")
	b, _ := c.AddQubit("")
	anc0 := c.AddAncilla(false)
	anc1 := c.AddAncilla(false)
	f, _ := c.AddQubit("res")

	_, err := c.MCX([]Ref{a, b}, anc0)
	require.NoError(t, err)
	scratch, err := c.MCX([]Ref{a, b, anc0}, anc1)
	require.NoError(t, err)
	require.Len(t, scratch, 1)
	require.NoError(t, c.CX(anc1, f))

	assert.Equal(t, []Index{5}, scratch)
	require.Equal(t, 4, c.NumGates())
	require.NoError(t, c.Uncompute(anc0, anc1))

	// The scratch-only CCX into ancilla 5 is not replayed.
	assert.Equal(t, []Gate{
		{Op: CCX, Qubits: []int{0, 1, 2}},
		{Op: CCX, Qubits: []int{0, 1, 5}},
		{Op: CCX, Qubits: []int{5, 2, 3}},
		{Op: CX, Qubits: []int{3, 4}},
		{Op: CX, Qubits: []int{3, 4}},
		{Op: CCX, Qubits: []int{5, 2, 3}},
		{Op: CCX, Qubits: []int{0, 1, 2}},
	}, c.Gates())
	assert.Equal(t, 2, c.NumFreeAncillas())
}

func TestUncomputing2(t *testing.T) {
	c := New()
	var q []Ref
	for i := 0; i < 4; i++ {
		idx, _ := c.AddQubit("")
		q = append(q, idx)
	}
	var a []Index
	for i := 0; i < 4; i++ {
		a = append(a, c.AddAncilla(false))
	}
	r, _ := c.AddQubit("")

	_, err := c.MCX(q, a[0])
	require.NoError(t, err)
	_, err = c.MCX(append(q[:4:4], a[0]), a[1])
	require.NoError(t, err)
	_, err = c.MCX(append(q[:4:4], a[0]), a[2])
	require.NoError(t, err)
	_, err = c.MCX(append(q[:4:4], a[0], a[1]), a[3])
	require.NoError(t, err)
	require.NoError(t, c.CX(a[3], r))

	// 2+3+3+4 scratch ancillas, 3+4+4+5 CCX gates.
	assert.Equal(t, 21, c.NumQubits())
	assert.Equal(t, 17, c.NumGates())

	require.NoError(t, c.Uncompute(a...))

	// Only the gates writing into a[0..3] and the CX reading a[3] are
	// replayed.
	assert.Equal(t, 23, c.NumGates())
	assert.Equal(t, 4, c.NumFreeAncillas())
	gates := c.Gates()
	assert.Equal(t, Gate{Op: CX, Qubits: []int{7, 8}}, gates[17])
	assert.Equal(t, Gate{Op: CCX, Qubits: []int{10, 3, 4}}, gates[22])
}

func TestMCXDeterministicAfterUncompute(t *testing.T) {
	c := New()
	q := make([]Ref, 4)
	for i := range q {
		idx, _ := c.AddQubit("")
		q[i] = idx
	}
	var a []Index
	for i := 0; i < 4; i++ {
		a = append(a, c.AddAncilla(false))
	}

	start := c.NumGates()
	scratch1, err := c.MCX(q, a[0])
	require.NoError(t, err)
	first := c.Gates()[start:]
	assert.Len(t, first, 3)
	assert.Equal(t, []Index{8, 9}, scratch1)

	require.NoError(t, c.Uncompute(scratch1...))
	numQubits := c.NumQubits()

	start = c.NumGates()
	scratch2, err := c.MCX(q, a[0])
	require.NoError(t, err)
	second := c.Gates()[start:]

	assert.Equal(t, scratch1, scratch2)
	assert.Equal(t, first, second)
	assert.Equal(t, numQubits, c.NumQubits())
}

func TestGatesIsCopy(t *testing.T) {
	c := NewWithQubits(2)
	require.NoError(t, c.CX(Index(0), Index(1)))
	gates := c.Gates()
	gates[0].Qubits[0] = 1
	assert.Equal(t, []int{0, 1}, c.Gates()[0].Qubits)
}

func TestParseOperation(t *testing.T) {
	tests := []struct {
		input string
		want  Operation
		ok    bool
	}{
		{"x", X, true},
		{"CX", CX, true},
		{"cnot", CX, true},
		{"ccx", CCX, true},
		{"Toffoli", CCX, true},
		{"swap", SWAP, true},
		{"h", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseOperation(tt.input)
		if !tt.ok {
			assert.True(t, errors.Is(err, ErrUnknownOperation), "ParseOperation(%q): %v", tt.input, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestStats(t *testing.T) {
	c := NewWithQubits(3)
	c.AddAncilla(true)
	require.NoError(t, c.X(Index(0)))
	require.NoError(t, c.X(Index(1)))
	require.NoError(t, c.Fredkin(Index(0), Index(1), Index(2)))

	stats := c.Stats()
	assert.Equal(t, 2, stats[X])
	assert.Equal(t, 2, stats[CX])
	assert.Equal(t, 1, stats[CCX])
	assert.Equal(t, 5, stats.Sum())
	assert.Equal(t, "X=2 CX=2 CCX=1 SWAP=0", stats.String())

	var buf bytes.Buffer
	c.PrintStats(&buf)
	out := buf.String()
	assert.Contains(t, out, "Qubits")
	assert.Contains(t, out, "Ancillas")
	assert.Contains(t, out, "CCX")
}
