package main

import (
	"os"

	"github.com/cofenberg/pixellight-sub004/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "plscene"
	app.Usage = "inspect and convert PixelLight scene files"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "config, c",
			Usage: "load settings from a TOML file",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "info",
			Usage: "display scene statistics",
			Description: `
Load one or more scene files and display the load statistics followed by the
number of nodes of each kind inside every scene container.`,
			ArgsUsage: "scene_file1.scene scene_file2.scene ...",
			Action:    cmd.ShowSceneInfo,
		},
		{
			Name:  "convert",
			Usage: "load a scene and save it again",
			Description: `
Load a scene file and write it back in the current format version. Unknown
node and modifier classes are preserved.`,
			ArgsUsage: "in.scene out.scene",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "no-default",
					Usage: "skip properties which have their default value",
				},
			},
			Action: cmd.ConvertScene,
		},
		{
			Name:      "find",
			Usage:     "resolve a node path and display the node",
			ArgsUsage: "scene_file node_path",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "all, a",
					Usage: "include properties which have their default value",
				},
			},
			Action: cmd.FindNode,
		},
		{
			Name:      "dump",
			Usage:     "print the scene tree as JSON",
			ArgsUsage: "scene_file",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "no-default",
					Usage: "skip properties which have their default value",
				},
				cli.StringFlag{
					Name:  "query, q",
					Usage: "only print the values matching this JSONPath expression",
				},
			},
			Action: cmd.DumpScene,
		},
		{
			Name:      "watch",
			Usage:     "reload a scene whenever it changes",
			ArgsUsage: "scene_file",
			Action:    cmd.WatchScene,
		},
	}

	app.Run(os.Args)
}
