// Package draw renders circuits as text diagrams with one wire per
// qubit slot.
package draw

import (
	"fmt"
	"strings"

	"qgates/circuit"
)

// Options control diagram rendering.
type Options struct {
	Theme     Theme
	StartStep int
	MaxSteps  int // 0 draws every step
	Header    bool

	// Cursor highlights the cell at CursorStep and CursorQubit.
	Cursor      bool
	CursorStep  int
	CursorQubit int
}

// Diagram draws the circuit with the plain theme.
func Diagram(src Source) string {
	return NewLayout(src).Render(Options{Theme: PlainTheme})
}

// padCenter centres a string within the given width.
func padCenter(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	total := width - len(s)
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// Render draws the layout.
func (l *Layout) Render(opts Options) string {
	var sb strings.Builder

	labelW := 3
	for _, k := range l.keys {
		labelW = max(labelW, len(k)+1)
	}

	start := max(opts.StartStep, 0)
	end := max(l.NumSteps(), 1)
	if opts.MaxSteps > 0 {
		end = min(end, start+opts.MaxSteps)
	}

	if opts.Header {
		header := strings.Repeat(" ", labelW+2)
		for step := start; step < end; step++ {
			header += opts.Theme.Dim.Render(padCenter(fmt.Sprintf("%d", step), CellW))
		}
		sb.WriteString(header + "\n")
	}

	for qubit := range l.numQubits {
		labelStyle := opts.Theme.Label
		if l.ancilla[qubit] {
			labelStyle = opts.Theme.Ancilla
		}
		topLine := strings.Repeat(" ", labelW+2)
		midLine := labelStyle.Render(fmt.Sprintf("%-*s", labelW, l.keys[qubit])) + "──"
		botLine := strings.Repeat(" ", labelW+2)

		for step := start; step < end; step++ {
			cursor := opts.Cursor && step == opts.CursorStep && qubit == opts.CursorQubit
			top, mid, bot := renderCell(l.Cell(step, qubit), cursor, opts.Theme)
			topLine += top
			midLine += mid
			botLine += bot
		}

		sb.WriteString(strings.TrimRight(topLine, " ") + "\n")
		sb.WriteString(midLine + "\n")
		sb.WriteString(strings.TrimRight(botLine, " ") + "\n")
	}
	return sb.String()
}

// symbol returns the wire symbol of a gate operand cell.
func symbol(info Cell) string {
	switch {
	case info.Control:
		return "●"
	case info.Gate.Op == circuit.SWAP:
		return "×"
	default:
		return "⊕"
	}
}

// renderCell returns 3 lines (top, mid, bot) for a single cell. Each
// line is exactly CellW visual characters wide.
func renderCell(info Cell, cursor bool, theme Theme) (top, mid, bot string) {
	emptyRow := strings.Repeat(" ", CellW)
	halfW := CellW / 2
	vertRow := strings.Repeat(" ", halfW) + "│" + strings.Repeat(" ", CellW-halfW-1)

	if cursor {
		innerW := CellW - 2
		dashL := (innerW - 1) / 2
		dashR := innerW - dashL - 1

		top = theme.Cursor.Render("╔" + strings.Repeat("═", innerW) + "╗")
		bot = theme.Cursor.Render("╚" + strings.Repeat("═", innerW) + "╝")
		side := theme.Cursor.Render("║")

		switch {
		case info.Gate != nil && info.Operand && len(info.Gate.Qubits) == 1:
			name := padCenter(info.Gate.Op.String(), gateNameW)
			mid = side + "┤" + theme.Gate.Render(name) + "├" + side
		case info.Gate != nil && info.Operand:
			mid = side + strings.Repeat("─", dashL) + theme.Gate.Render(symbol(info)) + strings.Repeat("─", dashR) + side
		case info.PassThrough:
			mid = side + strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR) + side
		default:
			mid = side + strings.Repeat("─", innerW) + side
		}
		return
	}

	dashL := (CellW - 1) / 2
	dashR := CellW - dashL - 1

	top = emptyRow
	if info.VertAbove {
		top = vertRow
	}
	bot = emptyRow
	if info.VertBelow {
		bot = vertRow
	}

	switch {
	case info.Gate != nil && info.Operand && len(info.Gate.Qubits) == 1:
		margin := (CellW - gateBoxW) / 2
		rightMargin := CellW - margin - gateBoxW
		name := padCenter(info.Gate.Op.String(), gateNameW)

		top = strings.Repeat(" ", margin) + theme.Gate.Render("┌"+strings.Repeat("─", gateNameW)+"┐") + strings.Repeat(" ", rightMargin)
		mid = strings.Repeat("─", margin) + theme.Gate.Render("┤"+name+"├") + strings.Repeat("─", rightMargin)
		bot = strings.Repeat(" ", margin) + theme.Gate.Render("└"+strings.Repeat("─", gateNameW)+"┘") + strings.Repeat(" ", rightMargin)

	case info.Gate != nil && info.Operand:
		mid = strings.Repeat("─", dashL) + theme.Gate.Render(symbol(info)) + strings.Repeat("─", dashR)

	case info.PassThrough:
		mid = strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR)

	default:
		mid = strings.Repeat("─", CellW)
	}
	return
}
