package cli

import (
	"github.com/samrai/greetsite"
	"github.com/samrai/greetsite/core"

	"github.com/urfave/cli/v2"
)

var startServer = greetsite.Start

func serverFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "port",
			Aliases: []string{"p"},
			Usage:   "port to listen on",
			Value:   8080,
			EnvVars: []string{"PORT"},
		},
		configFlag(),
	}
}

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "path to the config file",
		Value:   core.ConfigFile,
		EnvVars: []string{"GREETSITE_CONFIG"},
	}
}

var DevCommand = &cli.Command{
	Name:  "dev",
	Usage: "Start greetsite in dev mode (live reload, unminified assets)",
	Flags: serverFlags(),
	Action: func(c *cli.Context) error {
		startServer(greetsite.RuntimeConfig{
			Env:        "dev",
			Port:       c.Int("port"),
			ConfigPath: c.String("config"),
		})
		return nil
	},
}

var ProdCommand = &cli.Command{
	Name:  "prod",
	Usage: "Start greetsite in production mode (minified, cacheable assets)",
	Flags: serverFlags(),
	Action: func(c *cli.Context) error {
		startServer(greetsite.RuntimeConfig{
			Env:        "prod",
			Port:       c.Int("port"),
			ConfigPath: c.String("config"),
		})
		return nil
	},
}
