package cmd

import (
	"github.com/cofenberg/pixellight-sub004/config"
	"github.com/cofenberg/pixellight-sub004/log"
	"github.com/urfave/cli"
)

var logger = log.New("plscene")

// Load the configuration selected by the global flags and apply its logging
// settings. The verbosity flags override the configured level.
func setup(ctx *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := ctx.GlobalString("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}

	log.SetLevel(cfg.LogLevel())
	for module, level := range cfg.ModuleLevels() {
		log.SetModuleLevel(module, level)
	}
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
	return cfg, nil
}
