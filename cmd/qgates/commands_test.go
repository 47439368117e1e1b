package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qgates/circuit"
	"qgates/export"
)

const bellProgram = `name: bell
qubits: ["", ""]
ops:
  - {op: x, args: [q0]}
  - {op: cx, args: [q0, q1]}
`

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "none.yaml")))
	err := cmd.Execute()
	return out.String(), err
}

func TestExportCommand(t *testing.T) {
	path := writeFile(t, "bell.yaml", bellProgram)

	out, err := run(t, "export", path)
	require.NoError(t, err)
	assert.Equal(t, "gate bell q0 q1 {\n\tx q0\n\tcx q0 q1\n}\n\n", out)

	out, err = run(t, "export", "-n", "qc", path)
	require.NoError(t, err)
	assert.Equal(t, "gate qc q0 q1 {\n\tx q0\n\tcx q0 q1\n}\n\n", out)

	out, err = run(t, "export", "-b", "sympy", path)
	require.NoError(t, err)
	assert.Equal(t, "CNOT(0,1)*X(0)*Qubit('00')\n", out)

	out, err = run(t, "export", "-b", "qiskit", path)
	require.NoError(t, err)
	assert.Contains(t, out, "circuit bell: qubits=2 clbits=2")

	_, err = run(t, "export", "-b", "cirq", path)
	assert.True(t, errors.Is(err, export.ErrUnsupportedBackend))
}

func TestInputFormats(t *testing.T) {
	gate := writeFile(t, "adder.gate", "gate adder a b c {\n\tx a\n\tx b\n\tccx a b c\n}\n")
	out, err := run(t, "export", gate)
	require.NoError(t, err)
	assert.Equal(t, "gate adder a b c {\n\tx a\n\tx b\n\tccx a b c\n}\n\n", out)

	qasm := writeFile(t, "bell.qasm", "OPENQASM 2.0;\nqreg q[2];\nx q[0];\ncx q[0], q[1];\n")
	out, err = run(t, "export", qasm)
	require.NoError(t, err)
	assert.Equal(t, "gate qc q0 q1 {\n\tx q0\n\tcx q0 q1\n}\n\n", out)

	_, err = run(t, "export", writeFile(t, "bell.txt", ""))
	assert.Error(t, err)

	_, err = run(t, "export", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := writeFile(t, "bad.yaml", "qubits: [a]\nops: [{op: x, args: [b]}]\n")
	_, err = run(t, "export", bad)
	assert.True(t, errors.Is(err, circuit.ErrUnknownRef))
}

func TestQASMCommand(t *testing.T) {
	path := writeFile(t, "bell.yaml", bellProgram)
	out, err := run(t, "qasm", path)
	require.NoError(t, err)
	assert.Contains(t, out, "qreg q[2];")
	assert.Contains(t, out, "measure q[1] -> c[1];")

	out, err = run(t, "qasm", "--measure=false", path)
	require.NoError(t, err)
	assert.NotContains(t, out, "measure")
}

func TestSimulateCommand(t *testing.T) {
	path := writeFile(t, "fredkin.yaml", `qubits: [c, a, b]
ops:
  - {op: multix, args: [c, a]}
  - {op: fredkin, args: [c, a, b]}
`)
	out, err := run(t, "simulate", "-s", "1", path)
	require.NoError(t, err)
	assert.Equal(t, "101: 1\n", out)

	out, err = run(t, "simulate", path)
	require.NoError(t, err)
	assert.Equal(t, "101: 1024\n", out)

	_, err = run(t, "simulate", "-s", "0", path)
	assert.Error(t, err)
}

func TestDrawAndStats(t *testing.T) {
	path := writeFile(t, "mcx.yaml", `qubits: [a, b, c, t]
ops:
  - {op: mcx, args: [a, b, c, t]}
`)
	out, err := run(t, "draw", path)
	require.NoError(t, err)
	for _, key := range []string{"a", "b", "c", "t", "q4"} {
		assert.Contains(t, out, key)
	}
	assert.Contains(t, out, "⊕")

	out, err = run(t, "stats", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Ancillas")
	assert.Contains(t, out, "CCX")
}

func TestConfigAndLogLevel(t *testing.T) {
	path := writeFile(t, "bell.yaml", bellProgram)
	cfg := writeFile(t, "qgates.yaml", "backend: sympy\n")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"export", path, "--config", cfg})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "CNOT(0,1)*X(0)*Qubit('00')\n", out.String())

	_, err := run(t, "export", path, "--log-level", "loud")
	assert.Error(t, err)
}
