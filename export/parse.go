package export

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"qgates/circuit"
)

// Pre-compiled regexps for gate block and OpenQASM parsing.
var (
	gateHeaderRegex = regexp.MustCompile(`^gate\s+(\S+)((?:\s+[^\s{]+)*)\s*\{$`)
	gateLineRegex   = regexp.MustCompile(`^(\w+)((?:\s+\S+)+)$`)
	qregRegex       = regexp.MustCompile(`^qreg\s+(\w+)\[(\d+)\];?$`)
	qasmGateRegex   = regexp.MustCompile(`^(\w+)\s+(\w+\[\d+\](?:\s*,\s*\w+\[\d+\])*);?$`)
	qasmOperand     = regexp.MustCompile(`^(\w+)\[(\d+)\]$`)
)

func syntaxError(line int, format string, args ...interface{}) error {
	return errors.Wrapf(ErrSyntax, "line %d: "+format,
		append([]interface{}{line}, args...)...)
}

// ParseGateBlock parses a gate block produced by GateBlock and rebuilds
// the circuit. It returns the circuit and the gate name. Parameters
// named with their default key q<index> are registered keyless.
func ParseGateBlock(text string, opts ...circuit.Option) (*circuit.Circuit, string, error) {
	c := circuit.New(opts...)
	var name string
	var inBody, closed bool

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lineNo := i + 1
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if closed {
			return nil, "", syntaxError(lineNo, "trailing input %q", line)
		}

		if !inBody {
			matches := gateHeaderRegex.FindStringSubmatch(line)
			if matches == nil {
				return nil, "", syntaxError(lineNo, "expected gate header, got %q", line)
			}
			name = matches[1]
			for idx, key := range strings.Fields(matches[2]) {
				if key == circuit.DefaultKey(idx) {
					key = ""
				}
				if _, err := c.AddQubit(key); err != nil {
					return nil, "", errors.Wrapf(err, "line %d", lineNo)
				}
			}
			inBody = true
			continue
		}

		if line == "}" {
			closed = true
			continue
		}

		matches := gateLineRegex.FindStringSubmatch(line)
		if matches == nil {
			return nil, "", syntaxError(lineNo, "invalid gate %q", line)
		}
		op, err := circuit.ParseOperation(matches[1])
		if err != nil {
			return nil, "", errors.Wrapf(err, "line %d", lineNo)
		}
		operands := circuit.Names(strings.Fields(matches[2])...)
		if err := c.Apply(op, operands...); err != nil {
			return nil, "", errors.Wrapf(err, "line %d", lineNo)
		}
	}
	if !inBody {
		return nil, "", syntaxError(len(lines), "missing gate header")
	}
	if !closed {
		return nil, "", syntaxError(len(lines), "missing closing brace")
	}
	return c, name, nil
}

// MaxParseQubits is the largest quantum register ParseOpenQASM accepts.
const MaxParseQubits = 4096

// ParseOpenQASM parses an OpenQASM 2.0 program using the x, cx, ccx,
// and swap gates over a single quantum register. Classical registers,
// measurements, and barriers are ignored. Registers larger than
// MaxParseQubits are rejected.
func ParseOpenQASM(text string, opts ...circuit.Option) (*circuit.Circuit, error) {
	var c *circuit.Circuit
	var qreg string

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lineNo := i + 1
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "OPENQASM") ||
			strings.HasPrefix(line, "include") ||
			strings.HasPrefix(line, "creg") ||
			strings.HasPrefix(line, "measure") ||
			strings.HasPrefix(line, "barrier") {
			continue
		}

		if strings.HasPrefix(line, "qreg") {
			matches := qregRegex.FindStringSubmatch(line)
			if matches == nil {
				return nil, syntaxError(lineNo, "invalid qreg %q", line)
			}
			if c != nil {
				return nil, syntaxError(lineNo, "multiple quantum registers")
			}
			n, err := strconv.Atoi(matches[2])
			if err != nil || n > MaxParseQubits {
				return nil, syntaxError(lineNo, "qreg size %s exceeds %d",
					matches[2], MaxParseQubits)
			}
			qreg = matches[1]
			c = circuit.NewWithQubits(n, opts...)
			continue
		}

		matches := qasmGateRegex.FindStringSubmatch(line)
		if matches == nil {
			return nil, syntaxError(lineNo, "invalid statement %q", line)
		}
		if c == nil {
			return nil, syntaxError(lineNo, "gate before qreg")
		}
		op, err := circuit.ParseOperation(matches[1])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}

		var operands []circuit.Ref
		for _, arg := range strings.Split(matches[2], ",") {
			m := qasmOperand.FindStringSubmatch(strings.TrimSpace(arg))
			if m == nil || m[1] != qreg {
				return nil, syntaxError(lineNo, "invalid operand %q", arg)
			}
			idx, err := strconv.Atoi(m[2])
			if err != nil {
				return nil, syntaxError(lineNo, "invalid operand %q", arg)
			}
			operands = append(operands, circuit.Index(idx))
		}
		if err := c.Apply(op, operands...); err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}
	}
	if c == nil {
		return nil, syntaxError(len(lines), "missing qreg")
	}
	return c, nil
}
