package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/Julian-Alberts/mc-map-reader/internal/config"
	"github.com/Julian-Alberts/mc-map-reader/internal/logging"
)

func main() {
	app := &cli.App{
		Name:  "mcmapreader",
		Usage: "inspect Minecraft Anvil region files",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "config file (yaml, toml or json)"},
			&cli.IntFlag{Name: "workers", Usage: "decode goroutines, overrides the config"},
			&cli.StringFlag{Name: "log-level", Usage: "overrides log.level"},
		},
		Before: setup,
		After:  teardown,
		Commands: []*cli.Command{
			headerCommand,
			chunkCommand,
			dumpCommand,
			containersCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

const configKey = "mcmapreader.config"

var logCloser io.Closer

func setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}

	if logCloser, err = logging.Setup(logrus.StandardLogger(), cfg.Log); err != nil {
		return err
	}
	c.App.Metadata = map[string]interface{}{configKey: cfg}
	return nil
}

func teardown(*cli.Context) error {
	if logCloser != nil {
		return logCloser.Close()
	}
	return nil
}

func loadedConfig(c *cli.Context) *config.Config {
	return c.App.Metadata[configKey].(*config.Config)
}
