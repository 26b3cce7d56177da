package cmd

import (
	"errors"
	"fmt"

	"github.com/cofenberg/pixellight-sub004/config"
	"github.com/cofenberg/pixellight-sub004/scene"
	"github.com/cofenberg/pixellight-sub004/scene/loader"
	"github.com/urfave/cli"
)

// Load a scene file into a new scene and resolve its portals.
func loadScene(cfg config.Config, filename string) (*scene.Scene, loader.Stats, error) {
	sc := scene.New(nil, cfg.SceneOptions())
	stats, err := loader.LoadFile(sc.Root(), filename, cfg.LoaderOptions())
	if err != nil {
		return nil, stats, err
	}

	if _, unresolved := sc.Root().PostProcess(); unresolved > 0 {
		logger.Warningf("%s: %d cell portals have no valid target cell", filename, unresolved)
	}
	return sc, stats, nil
}

// Display scene load statistics and per-container node counts.
func ShowSceneInfo(ctx *cli.Context) error {
	cfg, err := setup(ctx)
	if err != nil {
		return err
	}

	if ctx.NArg() == 0 {
		return errors.New("missing scene file")
	}

	for idx := 0; idx < ctx.NArg(); idx++ {
		sceneFile := ctx.Args().Get(idx)
		sc, stats, err := loadScene(cfg, sceneFile)
		if err != nil {
			return err
		}

		fmt.Fprintf(ctx.App.Writer, "%s\n%s\n%s", sceneFile, stats.Table(), sc.Root().Statistics().Table())
	}

	return nil
}

// Load a scene and save it again, possibly in another density.
func ConvertScene(ctx *cli.Context) error {
	cfg, err := setup(ctx)
	if err != nil {
		return err
	}

	if ctx.NArg() != 2 {
		return errors.New("expected an input and an output scene file")
	}

	sc, _, err := loadScene(cfg, ctx.Args().Get(0))
	if err != nil {
		return err
	}

	opts := cfg.LoaderOptions()
	if ctx.IsSet("no-default") {
		opts.NoDefault = ctx.Bool("no-default")
	}

	outFile := ctx.Args().Get(1)
	stats, err := loader.SaveFile(sc.Root(), outFile, opts)
	if err != nil {
		return err
	}

	logger.Noticef("wrote %s:\n%s", outFile, stats.Table())
	return nil
}
