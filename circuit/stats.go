package circuit

import (
	"fmt"
	"io"

	"github.com/markkurossi/tabulate"
)

// Stats holds per-operation gate counts.
type Stats [NumOperations]int

// Sum returns the total number of gates.
func (s Stats) Sum() int {
	var sum int
	for _, v := range s {
		sum += v
	}
	return sum
}

func (s Stats) String() string {
	var result string
	for op := X; int(op) < NumOperations; op++ {
		if len(result) > 0 {
			result += " "
		}
		result += fmt.Sprintf("%s=%d", op, s[op])
	}
	return result
}

// Stats computes the gate statistics of the circuit.
func (c *Circuit) Stats() Stats {
	var stats Stats
	for _, g := range c.gates {
		stats[g.Op]++
	}
	return stats
}

// PrintStats prints the circuit resource report as a table.
func (c *Circuit) PrintStats(o io.Writer) {
	stats := c.Stats()

	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Resource").SetAlign(tabulate.ML)
	tab.Header("Count").SetAlign(tabulate.MR)

	row := tab.Row()
	row.Column("Qubits")
	row.Column(fmt.Sprintf("%d", c.NumQubits()))

	row = tab.Row()
	row.Column("├╴Ancillas").SetFormat(tabulate.FmtItalic)
	row.Column(fmt.Sprintf("%d", c.NumAncillas())).SetFormat(tabulate.FmtItalic)

	row = tab.Row()
	row.Column("╰╴Free").SetFormat(tabulate.FmtItalic)
	row.Column(fmt.Sprintf("%d", c.NumFreeAncillas())).SetFormat(tabulate.FmtItalic)

	for op := X; int(op) < NumOperations; op++ {
		row = tab.Row()
		row.Column(op.String())
		row.Column(fmt.Sprintf("%d", stats[op]))
	}

	row = tab.Row()
	row.Column("Gates").SetFormat(tabulate.FmtBold)
	row.Column(fmt.Sprintf("%d", stats.Sum())).SetFormat(tabulate.FmtBold)

	tab.Print(o)
}
