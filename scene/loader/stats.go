package loader

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
)

// Stats summarize a load or save run. The root container is not counted.
type Stats struct {
	Containers int
	Nodes      int
	Modifiers  int
	Elapsed    time.Duration
}

// Render the statistics as a text table.
func (s Stats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Item", "Count"})
	table.Append([]string{"Containers", strconv.Itoa(s.Containers)})
	table.Append([]string{"Nodes", strconv.Itoa(s.Nodes)})
	table.Append([]string{"Modifiers", strconv.Itoa(s.Modifiers)})
	table.SetFooter([]string{"Time", fmt.Sprintf("%d ms", s.Elapsed.Nanoseconds()/1e6)})
	table.Render()
	return buf.String()
}

func (s Stats) log(verb, path string) {
	logger.Debugf(
		"%s %q took %d ms; containers: %d (without the root container), nodes: %d, modifiers: %d",
		verb, path, s.Elapsed.Nanoseconds()/1e6, s.Containers, s.Nodes, s.Modifiers,
	)
}
