package view

import (
	"fmt"
	"strings"
)

// action is a circuit operation the viewer can run.
type action int

const (
	actX action = iota
	actCX
	actCCX
	actSwap
	actMCX
	actFredkin
	actMultiX
	actAddQubit
	actAddAncilla
	actUncompute
	actRelease
)

// menuItem represents a single choice in the menu.
type menuItem struct {
	name   string
	symbol string
	act    action

	// operands is the exact operand count; minOperands the minimum for
	// variadic operations. Zero for both means the item runs directly.
	operands    int
	minOperands int
}

// selects reports whether the item needs operand selection.
func (item menuItem) selects() bool {
	return item.operands > 1 || item.minOperands > 0
}

// ready reports whether n selected operands complete the item.
func (item menuItem) ready(n int) bool {
	if item.operands > 0 {
		return n == item.operands
	}
	return n >= item.minOperands
}

func (item menuItem) hint() string {
	switch {
	case item.operands > 1:
		return fmt.Sprintf(" %d qubits", item.operands)
	case item.minOperands > 0:
		return fmt.Sprintf(" ≥%d qubits", item.minOperands)
	default:
		return ""
	}
}

// menuCategory groups related menu items under a tab.
type menuCategory struct {
	name  string
	items []menuItem
}

// gateMenu defines the menu categories and items.
var gateMenu = []menuCategory{
	{
		name: "Primitive",
		items: []menuItem{
			{name: "NOT (X)", symbol: "X", act: actX, operands: 1},
			{name: "CNOT", symbol: "●─⊕", act: actCX, operands: 2},
			{name: "Toffoli (CCX)", symbol: "●─●─⊕", act: actCCX, operands: 3},
			{name: "SWAP", symbol: "×─×", act: actSwap, operands: 2},
		},
	},
	{
		name: "Decomposed",
		items: []menuItem{
			{name: "Multi-control X", symbol: "●…●─⊕", act: actMCX, minOperands: 2},
			{name: "Fredkin", symbol: "●─×─×", act: actFredkin, operands: 3},
			{name: "Multi X", symbol: "X…X", act: actMultiX, minOperands: 1},
		},
	},
	{
		name: "Registry",
		items: []menuItem{
			{name: "Add qubit", symbol: "+q", act: actAddQubit},
			{name: "Add ancilla", symbol: "+a", act: actAddAncilla},
			{name: "Uncompute", symbol: "↺", act: actUncompute},
			{name: "Release", symbol: "○", act: actRelease},
		},
	},
}

// renderMenu renders the floating menu popup.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Add Gate"))
	sb.WriteString("\n")

	for i, cat := range gateMenu {
		name := " " + cat.name + " "
		if i == m.menuCat {
			sb.WriteString(activeStyle.Render(name))
		} else {
			sb.WriteString(dimStyle.Render(name))
		}
		if i < len(gateMenu)-1 {
			sb.WriteString(dimStyle.Render("│"))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 36)))
	sb.WriteString("\n")

	cat := gateMenu[m.menuCat]
	for i, item := range cat.items {
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-18s", item.name)))
			sb.WriteString(gateStyle.Render(item.symbol))
		} else {
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-18s", item.name)))
			sb.WriteString(dimStyle.Render(item.symbol))
		}
		sb.WriteString(dimStyle.Render(item.hint()))
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ←→ Cat  ⏎ Ok  Esc ✕"))

	return menuBorderStyle.Render(sb.String())
}
