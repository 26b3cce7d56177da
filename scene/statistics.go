package scene

import (
	"bytes"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// Node kinds listed in statistics tables.
var statisticsKinds = []NodeKind{
	KindContainer, KindCell, KindCamera, KindLight, KindObject, KindSpline,
	KindCellPortal, KindAntiPortal, KindHelper, KindUnknown,
}

// Node counts of a single container.
type ContainerStatistics struct {
	Path      string
	Counts    map[NodeKind]int
	Modifiers int
}

// Per container node counts in depth-first order.
type Statistics []ContainerStatistics

// Collect the direct child counts of this container and of every container
// below it.
func (c *Container) Statistics() Statistics {
	var out Statistics
	c.Walk(func(n *Node) {
		if n.container == nil {
			return
		}
		row := ContainerStatistics{
			Path:   n.Path(),
			Counts: make(map[NodeKind]int),
		}
		for _, child := range n.container.Nodes() {
			row.Counts[child.kind]++
			row.Modifiers += len(child.modifiers)
		}
		out = append(out, row)
	})
	return out
}

// Get the total count of a node kind over all containers.
func (s Statistics) Total(kind NodeKind) int {
	total := 0
	for _, row := range s {
		total += row.Counts[kind]
	}
	return total
}

// Render the statistics as a text table.
func (s Statistics) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)

	header := []string{"Container"}
	for _, kind := range statisticsKinds {
		header = append(header, kind.String())
	}
	header = append(header, "Modifiers")
	table.SetHeader(header)

	modifiers := 0
	for _, row := range s {
		cols := []string{row.Path}
		for _, kind := range statisticsKinds {
			cols = append(cols, strconv.Itoa(row.Counts[kind]))
		}
		cols = append(cols, strconv.Itoa(row.Modifiers))
		table.Append(cols)
		modifiers += row.Modifiers
	}

	footer := []string{"Total"}
	for _, kind := range statisticsKinds {
		footer = append(footer, strconv.Itoa(s.Total(kind)))
	}
	footer = append(footer, strconv.Itoa(modifiers))
	table.SetFooter(footer)

	table.Render()
	return buf.String()
}
