// Package command wires the basil CLI.
package command

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tomatool/basil/internal/version"
	"github.com/urfave/cli/v2"
)

// Run executes the CLI with the given process arguments.
func Run(args []string) error {
	app := &cli.App{
		Name:    "basil",
		Usage:   "Behavior-driven test runner",
		Version: version.Version,
		Description: `Basil matches Gherkin steps to registered handlers, executes them
under a failure-capturing protocol, and reports every outcome. Backend
resources for the built-in step libraries are declared in basil.yml.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
			if c.Bool("debug") {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				log.Debug().Msg("debug logging enabled")
			}
			return nil
		},
		Commands: []*cli.Command{
			runCommand,
			stepsCommand,
			runsCommand,
			versionCommand,
		},
	}

	return app.Run(args)
}
