package cmd

import (
	"errors"
	"fmt"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/urfave/cli"

	"github.com/cofenberg/pixellight-sub004/scene"
)

// Print a scene as a JSON tree, optionally filtered by a JSONPath expression.
func DumpScene(ctx *cli.Context) error {
	cfg, err := setup(ctx)
	if err != nil {
		return err
	}

	if ctx.NArg() != 1 {
		return errors.New("missing scene file")
	}

	sc, _, err := loadScene(cfg, ctx.Args().First())
	if err != nil {
		return err
	}

	var out interface{} = sceneTree(sc.Root().Node, ctx.Bool("no-default"))
	if query := ctx.String("query"); query != "" {
		if out, err = queryTree(out, query); err != nil {
			return err
		}
	}

	fmt.Fprintln(ctx.App.Writer, oj.JSON(out, &ojg.Options{Indent: 2, Sort: true}))
	return nil
}

// Convert a node and its subtree into generic JSON values.
func sceneTree(n *scene.Node, noDefault bool) map[string]interface{} {
	values := make(map[string]interface{})
	for _, v := range n.Values(noDefault) {
		values[v.Name] = v.Value
	}

	out := map[string]interface{}{
		"name":   n.Name(),
		"class":  n.Class(),
		"kind":   n.Kind().String(),
		"values": values,
	}

	if n.NumModifiers("") > 0 {
		modifiers := make([]interface{}, 0, n.NumModifiers(""))
		for _, m := range n.Modifiers() {
			mValues := make(map[string]interface{})
			for _, v := range m.Values(noDefault) {
				mValues[v.Name] = v.Value
			}
			modifiers = append(modifiers, map[string]interface{}{"class": m.Class(), "values": mValues})
		}
		out["modifiers"] = modifiers
	}

	if n.IsContainer() {
		children := make([]interface{}, 0, n.AsContainer().Len())
		for _, child := range n.AsContainer().Nodes() {
			children = append(children, sceneTree(child, noDefault))
		}
		out["children"] = children
	}
	return out
}

func queryTree(tree interface{}, query string) ([]interface{}, error) {
	x, err := jp.ParseString(query)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", query, err)
	}
	return x.Get(tree), nil
}
