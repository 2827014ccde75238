package api

import (
	"github.com/urfave/cli/v2"

	"github.com/hzpp/hzpp/pkg/journeyplan"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the core web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
				},
				Action: func(c *cli.Context) error {
					planner, err := journeyplan.NewDefaultPlanner()
					if err != nil {
						return err
					}

					return SetupServer(c.String("listen"), planner)
				},
			},
		},
	}
}
