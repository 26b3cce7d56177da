package cmd

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/cofenberg/pixellight-sub004/scene"
)

// Resolve a node path inside a scene and print its properties.
func FindNode(ctx *cli.Context) error {
	cfg, err := setup(ctx)
	if err != nil {
		return err
	}

	if ctx.NArg() != 2 {
		return errors.New("expected a scene file and a node path")
	}

	sc, _, err := loadScene(cfg, ctx.Args().Get(0))
	if err != nil {
		return err
	}

	path := ctx.Args().Get(1)
	n := sc.Root().Get(path)
	if n == nil {
		return fmt.Errorf("no scene node at path %q", path)
	}

	fmt.Fprint(ctx.App.Writer, nodeTable(n, !ctx.Bool("all")))
	return nil
}

func nodeTable(n *scene.Node, noDefault bool) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Property", "Value"})
	table.Append([]string{"Path", n.Path()})
	table.Append([]string{"Class", n.Class()})
	table.Append([]string{"Kind", n.Kind().String()})
	for _, v := range n.Values(noDefault) {
		table.Append([]string{v.Name, v.Value})
	}
	for idx, m := range n.Modifiers() {
		table.Append([]string{fmt.Sprintf("Modifier %d", idx), m.Class()})
	}
	if n.IsPlaceholder() {
		table.SetFooter([]string{"", "unknown class"})
	}
	table.Render()
	return buf.String()
}
