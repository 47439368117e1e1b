// Package view implements the interactive circuit viewer.
package view

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"qgates/circuit"
	"qgates/draw"
	"qgates/export"
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusCircuit focus = iota
	focusEditor
	focusMenu
	focusSelect
)

// Model represents the viewer state. The circuit gate log is append
// only; the layout and the gate-block editor are derived from it.
type Model struct {
	circuit       *circuit.Circuit
	layout        *draw.Layout
	name          string
	log           *zap.Logger
	theme         draw.Theme
	backend       export.Backend
	shots         int
	seed          uint64
	savePath      string
	cursorQubit   int
	cursorStep    int
	viewStartStep int
	width         int
	height        int
	editor        textarea.Model
	focus         focus
	lastText      string
	statusMsg     string
	statusErr     bool

	// Menu state
	menuCat  int
	menuItem int

	// Operand-selection state
	pending  *menuItem
	operands []int

	// Scratch ancillas of the last multi-control X.
	scratch []circuit.Index
}

// Option configures the viewer.
type Option func(m *Model)

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(m *Model) {
		m.log = log
	}
}

// WithColor selects the colored or plain diagram theme.
func WithColor(color bool) Option {
	return func(m *Model) {
		if color {
			m.theme = draw.ColorTheme
		} else {
			m.theme = draw.PlainTheme
		}
	}
}

// WithBackend sets the backend of the export preview.
func WithBackend(backend export.Backend) Option {
	return func(m *Model) {
		m.backend = backend
	}
}

// WithShots sets the simulator shots and seed of the preview.
func WithShots(shots int, seed uint64) Option {
	return func(m *Model) {
		m.shots = shots
		m.seed = seed
	}
}

// WithSavePath sets the file ctrl+s writes the gate block to.
func WithSavePath(path string) Option {
	return func(m *Model) {
		m.savePath = path
	}
}

// New creates a viewer for the circuit. The viewer owns the circuit.
func New(c *circuit.Circuit, name string, opts ...Option) Model {
	ta := textarea.New()
	ta.Placeholder = "gate " + name + " q0 {\n}"
	ta.SetWidth(40)
	ta.SetHeight(20)
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.KeyMap.InsertNewline.SetEnabled(true)

	m := Model{
		circuit:  c,
		name:     name,
		log:      zap.NewNop(),
		theme:    draw.ColorTheme,
		backend:  export.QASM,
		shots:    1024,
		seed:     1,
		savePath: name + ".gate",
		editor:   ta,
		focus:    focusCircuit,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.sync()
	return m
}

// Circuit returns the circuit being viewed.
func (m Model) Circuit() *circuit.Circuit {
	return m.circuit
}

func (m *Model) sync() {
	m.layout = draw.NewLayout(m.circuit)
	m.editor.SetValue(export.GateBlock(m.name, m.circuit).String())
	// The editor expands tabs; compare against what it holds.
	m.lastText = m.editor.Value()
	m.cursorQubit = min(m.cursorQubit, max(m.circuit.NumQubits()-1, 0))
}

func (m *Model) setStatus(format string, args ...interface{}) {
	m.statusMsg = fmt.Sprintf(format, args...)
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.statusMsg = err.Error()
	m.statusErr = true
	m.log.Debug("viewer operation failed", zap.Error(err))
}

// parseEditor rebuilds the circuit from the edited gate block. On
// error the circuit is kept.
func (m *Model) parseEditor() {
	text := m.editor.Value()
	if text == m.lastText {
		return
	}
	c, name, err := export.ParseGateBlock(text, circuit.WithLogger(m.log))
	if err != nil {
		m.setError(err)
		return
	}
	m.circuit = c
	m.name = name
	m.scratch = nil
	m.sync()
	m.setStatus("Parsed %d gates", c.NumGates())
}

// emptyCircuit returns a circuit with the registry of the current one
// and no gates.
func (m *Model) emptyCircuit() (*circuit.Circuit, error) {
	c := circuit.New(circuit.WithLogger(m.log))
	for _, slot := range m.circuit.Slots() {
		if slot.Ancilla {
			c.AddAncilla(slot.Free)
			continue
		}
		if _, err := c.AddQubit(slot.Key); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// apply runs the menu item on the operands.
func (m *Model) apply(item menuItem, operands []int) {
	refs := circuit.Indices(operands...)
	var err error

	switch item.act {
	case actX:
		err = m.circuit.X(refs[0])
	case actCX:
		err = m.circuit.CX(refs[0], refs[1])
	case actCCX:
		err = m.circuit.CCX(refs[0], refs[1], refs[2])
	case actSwap:
		err = m.circuit.Swap(refs[0], refs[1])
	case actFredkin:
		err = m.circuit.Fredkin(refs[0], refs[1], refs[2])
	case actMultiX:
		err = m.circuit.MultiX(refs...)
	case actMCX:
		var scratch []circuit.Index
		scratch, err = m.circuit.MCX(refs[:len(refs)-1], refs[len(refs)-1])
		if err == nil && len(scratch) > 0 {
			m.scratch = scratch
		}
	case actAddQubit:
		_, err = m.circuit.AddQubit("")
	case actAddAncilla:
		m.circuit.AddAncilla(false)
	case actUncompute, actRelease:
		indices := m.scratch
		if len(indices) == 0 {
			indices = []circuit.Index{circuit.Index(m.cursorQubit)}
		}
		if item.act == actUncompute {
			err = m.circuit.Uncompute(indices...)
		} else {
			err = m.circuit.Release(indices...)
		}
		if err == nil {
			m.scratch = nil
		}
	}
	if err != nil {
		m.setError(err)
		return
	}
	m.sync()
	m.setStatus("%s: %d gates", item.name, m.circuit.NumGates())
}

// startSelect starts operand selection with the cursor qubit selected.
func (m *Model) startSelect(item menuItem) {
	if !item.selects() {
		var operands []int
		if item.operands == 1 {
			operands = []int{m.cursorQubit}
		}
		m.focus = focusCircuit
		m.apply(item, operands)
		return
	}
	m.pending = &item
	m.operands = []int{m.cursorQubit}
	m.focus = focusSelect
}

// toggleOperand adds the cursor qubit to the selection or removes it.
func (m *Model) toggleOperand() {
	for i, q := range m.operands {
		if q == m.cursorQubit {
			m.operands = append(m.operands[:i], m.operands[i+1:]...)
			return
		}
	}
	m.operands = append(m.operands, m.cursorQubit)
}

func (m *Model) cancelSelect() {
	m.pending = nil
	m.operands = nil
	m.focus = focusCircuit
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetWidth(max(msg.Width/3-6, 20))
		circH := msg.Height - controlsH - previewH - 4
		m.editor.SetHeight(max(circH-6, 4))

	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusCircuit:
			m.statusMsg = ""
			switch key {
			case "q":
				return m, tea.Quit
			case "tab":
				m.focus = focusEditor
				m.editor.Focus()
			case "ctrl+r":
				c, err := m.emptyCircuit()
				if err != nil {
					m.setError(err)
					break
				}
				m.circuit = c
				m.scratch = nil
				m.cursorStep = 0
				m.viewStartStep = 0
				m.sync()
			case "ctrl+s":
				text := export.GateBlock(m.name, m.circuit).String()
				if err := os.WriteFile(m.savePath, []byte(text), 0644); err != nil {
					m.setError(err)
				} else {
					m.setStatus("Saved %s", m.savePath)
				}
			case "up", "k":
				if m.cursorQubit > 0 {
					m.cursorQubit--
				}
			case "down", "j":
				if m.cursorQubit < m.circuit.NumQubits()-1 {
					m.cursorQubit++
				}
			case "left", "h":
				if m.cursorStep > 0 {
					m.cursorStep--
					if m.cursorStep < m.viewStartStep {
						m.viewStartStep = m.cursorStep
					}
				}
			case "right", "l":
				if m.cursorStep < m.layout.NumSteps() {
					m.cursorStep++
				}
			case "+", "=":
				m.apply(gateMenu[2].items[0], nil)
			case "a":
				m.focus = focusMenu
				m.menuCat = 0
				m.menuItem = 0
			case "x":
				m.apply(gateMenu[0].items[0], []int{m.cursorQubit})
			case "u":
				m.apply(gateMenu[2].items[2], nil)
			case "b":
				m.backend = (m.backend + 1) % (export.Simulator + 1)
			}

		case focusEditor:
			switch key {
			case "tab", "esc":
				m.editor.Blur()
				m.focus = focusCircuit
				m.parseEditor()
			default:
				var cmd tea.Cmd
				m.editor, cmd = m.editor.Update(msg)
				cmds = append(cmds, cmd)
			}

		case focusMenu:
			switch key {
			case "esc":
				m.focus = focusCircuit
			case "up", "k":
				if m.menuItem > 0 {
					m.menuItem--
				}
			case "down", "j":
				if m.menuItem < len(gateMenu[m.menuCat].items)-1 {
					m.menuItem++
				}
			case "left", "h":
				if m.menuCat > 0 {
					m.menuCat--
					m.menuItem = 0
				}
			case "right", "l":
				if m.menuCat < len(gateMenu)-1 {
					m.menuCat++
					m.menuItem = 0
				}
			case "enter":
				m.startSelect(gateMenu[m.menuCat].items[m.menuItem])
			}

		case focusSelect:
			switch key {
			case "esc":
				m.cancelSelect()
			case "up", "k":
				if m.cursorQubit > 0 {
					m.cursorQubit--
				}
			case "down", "j":
				if m.cursorQubit < m.circuit.NumQubits()-1 {
					m.cursorQubit++
				}
			case " ", "space":
				m.toggleOperand()
			case "enter":
				if !m.pending.ready(len(m.operands)) {
					m.statusMsg = fmt.Sprintf("%s needs%s", m.pending.name, m.pending.hint())
					m.statusErr = true
					break
				}
				item, operands := *m.pending, m.operands
				m.cancelSelect()
				m.apply(item, operands)
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	editorWidth := m.width / 3
	circuitWidth := m.width - editorWidth - 4
	circuitHeight := max(m.height-controlsH-previewH-4, 6)

	circuitPanel := m.renderCircuitPanel(circuitWidth, circuitHeight)
	editorPanel := m.renderEditorPanel(editorWidth, circuitHeight)
	previewPanel := m.renderPreviewPanel(m.width-4, previewH-2)
	controlsPanel := m.renderControlsPanel(m.width-4, controlsH-2)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, circuitPanel, editorPanel)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, previewPanel, controlsPanel)

	if m.focus == focusMenu {
		frame = overlayAt(frame, m.renderMenu(), 2, 2)
	}
	return frame
}
