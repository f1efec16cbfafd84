package command

import (
	"fmt"
	"strings"

	"github.com/tomatool/basil"
	"github.com/tomatool/basil/config"
	"github.com/tomatool/basil/steplib"
	"github.com/urfave/cli/v2"
)

var stepsCommand = &cli.Command{
	Name:  "steps",
	Usage: "List the step definitions for the configured resources",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Value:   "basil.yml",
			Usage:   "Configuration file path",
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "Filter steps by substring",
		},
	},
	Action: stepsAction,
}

func stepsAction(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	registry := basil.NewRegistry[steplib.World]()
	for name, res := range cfg.Resources {
		switch res.Type {
		case "postgres":
			registry.Merge(steplib.SQLSteps(name))
		case "redis":
			registry.Merge(steplib.RedisSteps(name))
		case "websocket":
			registry.Merge(steplib.WebSocketSteps(name))
		case "kafka":
			registry.Merge(steplib.KafkaSteps(name))
		}
	}

	filter := c.String("filter")
	for _, info := range registry.Steps() {
		if filter != "" && !strings.Contains(info.Expr, filter) {
			continue
		}
		fmt.Printf("%-5s %s\n", info.Kind, info.Expr)
	}
	return nil
}
