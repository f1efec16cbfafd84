package command

import (
	"fmt"

	"github.com/tomatool/basil/internal/runlog"
	"github.com/urfave/cli/v2"
)

var runsCommand = &cli.Command{
	Name:  "runs",
	Usage: "List past runs recorded under .basil/runs",
	Action: func(c *cli.Context) error {
		runs, err := runlog.ListRuns()
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("no recorded runs")
			return nil
		}
		for _, run := range runs {
			fmt.Printf("%s  %s\n", run.Timestamp.Format("2006-01-02 15:04:05"), run.Name)
		}
		return nil
	},
}
