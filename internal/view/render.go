package view

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"qgates/draw"
	"qgates/export"
)

// ──────────────────────────── Panel rendering ────────────────────────────

// renderCircuitPanel renders the circuit diagram panel.
func (m Model) renderCircuitPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Circuit " + m.name))
	sb.WriteString("\n\n")

	availWidth := width - labelVisualW - 4
	maxSteps := max(availWidth/draw.CellW, 1)

	startStep := m.viewStartStep
	if m.cursorStep >= startStep+maxSteps {
		startStep = m.cursorStep - maxSteps + 1
	}
	if startStep > 0 {
		fmt.Fprintf(&sb, "  ◀ showing steps %d–%d\n", startStep, startStep+maxSteps-1)
	}

	sb.WriteString(m.layout.Render(draw.Options{
		Theme:       m.theme,
		StartStep:   startStep,
		MaxSteps:    maxSteps,
		Header:      true,
		Cursor:      m.focus != focusEditor,
		CursorStep:  m.cursorStep,
		CursorQubit: m.cursorQubit,
	}))

	if m.focus == focusSelect {
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "  %s", activeStyle.Render(m.pending.name))
		sb.WriteString("  Operands: ")
		sb.WriteString(selectStyle.Render(m.operandKeys()))
		sb.WriteString(dimStyle.Render("   ↑↓ Move  Space Toggle  Enter Apply  Esc Cancel"))
	} else {
		key, _ := m.circuit.KeyByIndex(m.cursorQubit)
		fmt.Fprintf(&sb, "\n  Position: Step %d, Qubit %s", m.cursorStep, key)
	}
	if m.statusMsg != "" {
		style := activeStyle
		if m.statusErr {
			style = errorStyle
		}
		fmt.Fprintf(&sb, "  │  %s", style.Render(m.statusMsg))
	}

	return circuitStyle.Width(width).Height(height).Render(sb.String())
}

// operandKeys lists the selected operands by key. The last one is the
// target.
func (m Model) operandKeys() string {
	keys := make([]string, len(m.operands))
	for i, q := range m.operands {
		keys[i], _ = m.circuit.KeyByIndex(q)
	}
	return "[" + strings.Join(keys, " ") + "]"
}

// renderEditorPanel renders the gate-block editor panel.
func (m Model) renderEditorPanel(width, height int) string {
	var sb strings.Builder

	title := "Gate Block"
	if m.focus == focusEditor {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(m.editor.View())

	return editorStyle.Width(width).Height(height).Render(sb.String())
}

// renderPreviewPanel renders the output of the preview backend.
func (m Model) renderPreviewPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Export " + m.backend.String()))
	sb.WriteString("  ")
	sb.WriteString(dimStyle.Render(m.circuit.Stats().String()))
	sb.WriteString("\n")
	sb.WriteString(m.preview())

	return previewStyle.Width(width).Height(height).Render(sb.String())
}

func (m Model) preview() string {
	switch m.backend {
	case export.Symbolic:
		expr := export.NewExpression(m.circuit)
		return expr.Pretty() + "\n= " + expr.Apply().String()

	case export.Simulator:
		counts, err := export.NewProgram(m.name, m.circuit).Counts(m.shots, m.seed)
		if err != nil {
			return errorStyle.Render(err.Error())
		}
		var states []string
		for state := range counts {
			states = append(states, state)
		}
		sort.Strings(states)
		var sb strings.Builder
		for _, state := range states {
			fmt.Fprintf(&sb, "%s: %d\n", state, counts[state])
		}
		return sb.String()

	default:
		slots := m.circuit.Slots()
		var ancillas, free int
		for _, slot := range slots {
			if slot.Ancilla {
				ancillas++
				if slot.Free {
					free++
				}
			}
		}
		return fmt.Sprintf("qubits %d  ancillas %d (free %d)  scratch %v",
			len(slots), ancillas, free, m.scratch)
	}
}

// renderControlsPanel renders the bottom help/controls bar.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(activeStyle.Render("Navigate: "))
	sb.WriteString("↑↓/jk Move qubit  ←→/hl Move step  + Qubit")
	sb.WriteString("    ")
	sb.WriteString(activeStyle.Render("a"))
	sb.WriteString(" Add gate  ")
	sb.WriteString(activeStyle.Render("x"))
	sb.WriteString(" NOT  ")
	sb.WriteString(activeStyle.Render("u"))
	sb.WriteString(" Uncompute\n")

	sb.WriteString(activeStyle.Render("Actions:  "))
	sb.WriteString("Tab Edit gate block  b Backend  ^R Reset  ^S Save  q/^C Quit")

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}

// ──────────────────────────── Overlay helpers ────────────────────────────

// overlayAt composites the overlay string on top of the background at
// visible column x and line y.
func overlayAt(bg, overlay string, x, y int) string {
	bgLines := strings.Split(bg, "\n")

	for i, line := range strings.Split(overlay, "\n") {
		idx := y + i
		if idx < 0 || idx >= len(bgLines) {
			continue
		}
		bgLine := bgLines[idx]
		left := ansi.Truncate(bgLine, x, "")
		if pad := x - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ansi.TruncateLeft(bgLine, x+ansi.StringWidth(line), "")
		bgLines[idx] = left + line + right
	}
	return strings.Join(bgLines, "\n")
}
