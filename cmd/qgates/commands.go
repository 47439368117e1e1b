package main

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"qgates/draw"
	"qgates/export"
	"qgates/internal/config"
	"qgates/internal/view"
)

// app holds the state shared by the commands.
type app struct {
	configPath string
	logLevel   string

	cfg config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := new(app)

	rootCmd := &cobra.Command{
		Use:   "qgates",
		Short: "Build, export, and simulate reversible quantum circuits",
		Long: `qgates builds reversible circuits from X, CX, CCX, and SWAP gates
with multi-control decomposition and ancilla uncomputation, and exports
them as gate blocks, symbolic expressions, or simulator programs.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "",
		"configuration file")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	var backendName, gateName string
	exportCmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Export the circuit with a backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.export(cmd.OutOrStdout(), args[0], backendName, gateName)
		},
	}
	exportCmd.Flags().StringVarP(&backendName, "backend", "b", "",
		"backend: qasm, sympy, or qiskit")
	exportCmd.Flags().StringVarP(&gateName, "name", "n", "",
		"gate name")

	var measure bool
	qasmCmd := &cobra.Command{
		Use:   "qasm FILE",
		Short: "Print the circuit as an OpenQASM 2.0 program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := loadCircuit(args[0], a.log)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), export.OpenQASM(c, measure))
			return nil
		},
	}
	qasmCmd.Flags().BoolVarP(&measure, "measure", "m", true,
		"measure all qubits")

	drawCmd := &cobra.Command{
		Use:   "draw FILE",
		Short: "Draw the circuit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := loadCircuit(args[0], a.log)
			if err != nil {
				return err
			}
			theme := draw.PlainTheme
			if a.cfg.Color {
				theme = draw.ColorTheme
			}
			fmt.Fprint(cmd.OutOrStdout(), draw.NewLayout(c).Render(draw.Options{
				Theme:  theme,
				Header: true,
			}))
			return nil
		},
	}

	statsCmd := &cobra.Command{
		Use:   "stats FILE",
		Short: "Print circuit statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := loadCircuit(args[0], a.log)
			if err != nil {
				return err
			}
			c.PrintStats(cmd.OutOrStdout())
			return nil
		},
	}

	var shots int
	var seed uint64
	simulateCmd := &cobra.Command{
		Use:   "simulate FILE",
		Short: "Simulate the circuit and print measurement counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("shots") {
				a.cfg.Shots = shots
			}
			if cmd.Flags().Changed("seed") {
				a.cfg.Seed = seed
			}
			return a.simulate(cmd.OutOrStdout(), args[0])
		},
	}
	simulateCmd.Flags().IntVarP(&shots, "shots", "s", 0, "number of shots")
	simulateCmd.Flags().Uint64Var(&seed, "seed", 0, "sampling seed")

	viewCmd := &cobra.Command{
		Use:   "view FILE",
		Short: "View and edit the circuit interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.view(args[0])
		},
	}

	rootCmd.AddCommand(exportCmd, qasmCmd, drawCmd, statsCmd, simulateCmd, viewCmd)
	return rootCmd
}

// setup loads the configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if len(a.logLevel) > 0 {
		cfg.LogLevel = a.logLevel
	}
	log, err := cfg.Logger()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	return nil
}

// gateName returns the gate name: the flag, the name defined by the
// input, or the configured default.
func (a *app) gateName(flag, input string) string {
	switch {
	case len(flag) > 0:
		return flag
	case len(input) > 0:
		return input
	default:
		return a.cfg.GateName
	}
}

func (a *app) export(w io.Writer, path, backendName, gateName string) error {
	if len(backendName) == 0 {
		backendName = a.cfg.Backend
	}
	backend, err := export.ParseBackend(backendName)
	if err != nil {
		return err
	}
	c, name, err := loadCircuit(path, a.log)
	if err != nil {
		return err
	}
	name = a.gateName(gateName, name)

	a.log.Debug("export",
		zap.String("file", path),
		zap.Stringer("backend", backend),
		zap.String("name", name),
		zap.Int("qubits", c.NumQubits()),
		zap.Int("gates", c.NumGates()))

	rep, err := export.Export(c, name, backend)
	if err != nil {
		return err
	}
	out := rep.String()
	if backend != export.QASM {
		out += "\n"
	}
	_, err = io.WriteString(w, out)
	return err
}

func (a *app) simulate(w io.Writer, path string) error {
	if a.cfg.Shots <= 0 {
		return errors.Errorf("shots must be positive: %d", a.cfg.Shots)
	}
	c, name, err := loadCircuit(path, a.log)
	if err != nil {
		return err
	}
	prog := export.NewProgram(a.gateName("", name), c)
	counts, err := prog.Counts(a.cfg.Shots, a.cfg.Seed)
	if err != nil {
		return err
	}

	var states []string
	for state := range counts {
		states = append(states, state)
	}
	sort.Strings(states)
	for _, state := range states {
		fmt.Fprintf(w, "%s: %d\n", state, counts[state])
	}
	return nil
}

func (a *app) view(path string) error {
	c, name, err := loadCircuit(path, a.log)
	if err != nil {
		return err
	}
	backend, err := export.ParseBackend(a.cfg.Backend)
	if err != nil {
		return err
	}
	m := view.New(c, a.gateName("", name),
		view.WithLogger(a.log),
		view.WithColor(a.cfg.Color),
		view.WithBackend(backend),
		view.WithShots(a.cfg.Shots, a.cfg.Seed),
		view.WithSavePath(strings.TrimSuffix(path, filepath.Ext(path))+".gate"))

	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(view.Model); ok {
		a.log.Info("viewer closed",
			zap.Int("qubits", fm.Circuit().NumQubits()),
			zap.Int("gates", fm.Circuit().NumGates()))
	}
	return nil
}
