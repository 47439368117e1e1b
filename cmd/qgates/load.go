package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"qgates/circuit"
	"qgates/export"
	"qgates/internal/program"
)

// loadCircuit builds the circuit of the input file. YAML files are
// circuit programs, .gate files gate blocks, and .qasm files OpenQASM
// 2.0 programs. It returns the circuit and its gate name; the name is
// empty when the input does not define one.
func loadCircuit(path string, log *zap.Logger) (*circuit.Circuit, string, error) {
	opts := []circuit.Option{circuit.WithLogger(log)}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		p, err := program.Load(path)
		if err != nil {
			return nil, "", err
		}
		c, err := p.Build(opts...)
		if err != nil {
			return nil, "", errors.Wrap(err, path)
		}
		return c, p.Name, nil

	case ".gate":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, "", err
		}
		c, name, err := export.ParseGateBlock(string(data), opts...)
		if err != nil {
			return nil, "", errors.Wrap(err, path)
		}
		return c, name, nil

	case ".qasm":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, "", err
		}
		c, err := export.ParseOpenQASM(string(data), opts...)
		if err != nil {
			return nil, "", errors.Wrap(err, path)
		}
		return c, "", nil

	default:
		return nil, "", errors.Errorf("%s: unsupported input format", path)
	}
}
