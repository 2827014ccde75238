package journeyplan

import (
	"context"
	"time"

	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/hzpp/hzpp/pkg/cache"
	"github.com/hzpp/hzpp/pkg/config"
	"github.com/hzpp/hzpp/pkg/livestatus"
	"github.com/hzpp/hzpp/pkg/model"
	"github.com/hzpp/hzpp/pkg/portal"
	"github.com/hzpp/hzpp/pkg/redis_client"
	"github.com/hzpp/hzpp/pkg/stations"
	"github.com/hzpp/hzpp/pkg/util"
)

// NewDefaultPlanner builds a planner from the configuration named by the
// HZPP_CONFIG environment variable (defaults apply when unset). Redis-backed
// caching is wired in only when a cache lifetime is configured.
func NewDefaultPlanner() (*Planner, error) {
	env := util.GetEnvironmentVariables()

	cfg, err := config.Load(env["HZPP_CONFIG"])
	if err != nil {
		return nil, err
	}

	var resultCache *cache.Cache
	if cfg.CacheTimeToLiveSeconds > 0 {
		if err := redis_client.Connect(); err != nil {
			return nil, err
		}

		resultCache = cache.New(redis_client.Client, time.Duration(cfg.CacheTimeToLiveSeconds)*time.Second)
	}

	directory := stations.NewDirectory(cfg.Endpoints.PortalURL, nil)
	portalClient := portal.NewClient(cfg.Endpoints, directory, resultCache)
	liveClient := livestatus.NewClient(cfg.Endpoints.TrainStatusURL, cfg.AuthToken, directory)

	return NewPlanner(portalClient, liveClient, cfg), nil
}

func searchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "start", Usage: "start station ID", Required: true},
		&cli.StringFlag{Name: "dest", Usage: "destination station ID", Required: true},
		&cli.StringFlag{Name: "via", Usage: "via station ID"},
		&cli.StringFlag{Name: "date", Usage: "departure date (YYYY-MM-DD)"},
		&cli.IntFlag{Name: "class", Usage: "carriage class (1 or 2)", Value: 2},
		&cli.BoolFlag{Name: "direct", Usage: "only direct trains"},
		&cli.BoolFlag{Name: "bicycle", Usage: "travelling with a bicycle"},
	}
}

func optionsFromFlags(c *cli.Context) model.JourneyOptions {
	date := c.String("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	trainType := model.TrainTypeAll
	if c.Bool("direct") {
		trainType = model.TrainTypeDirect
	}

	return model.JourneyOptions{
		Trip:          model.TripOneWay,
		StartID:       c.String("start"),
		DestID:        c.String("dest"),
		ViaID:         c.String("via"),
		Class:         model.Class(c.Int("class")),
		TrainType:     trainType,
		DepartureDate: date,
		Bicycle:       c.Bool("bicycle"),
	}
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "journeys",
		Usage: "Query journeys, schedules and live train info",
		Subcommands: []*cli.Command{
			{
				Name:  "stations",
				Usage: "list the station directory",
				Action: func(c *cli.Context) error {
					planner, err := NewDefaultPlanner()
					if err != nil {
						return err
					}

					directory, err := planner.Portal.Directory.Stations(context.Background())
					if err != nil {
						return err
					}

					pretty.Println(directory)

					return nil
				},
			},
			{
				Name:  "search",
				Usage: "search for journey candidates",
				Flags: searchFlags(),
				Action: func(c *cli.Context) error {
					planner, err := NewDefaultPlanner()
					if err != nil {
						return err
					}

					routes, err := planner.JourneyRoutes(context.Background(), optionsFromFlags(c))
					if err != nil {
						return err
					}

					pretty.Println(routes)

					return nil
				},
			},
			{
				Name:  "schedule",
				Usage: "reconstruct the full schedule for one candidate",
				Flags: append(searchFlags(),
					&cli.StringFlag{Name: "departure-number", Usage: "candidate departure number", Required: true},
					&cli.BoolFlag{Name: "segments", Usage: "print the flattened ride/transfer view"},
				),
				Action: func(c *cli.Context) error {
					planner, err := NewDefaultPlanner()
					if err != nil {
						return err
					}

					schedule, err := planner.RouteSchedule(context.Background(), optionsFromFlags(c), c.String("departure-number"), model.TripTypeOutward)
					if err != nil {
						return err
					}

					if c.Bool("segments") {
						pretty.Println(ConvertToSegments(schedule))
					} else {
						pretty.Println(schedule)
					}

					return nil
				},
			},
			{
				Name:  "live",
				Usage: "fetch the live snapshot for one train",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "train", Usage: "train number", Required: true},
				},
				Action: func(c *cli.Context) error {
					planner, err := NewDefaultPlanner()
					if err != nil {
						return err
					}

					info, err := planner.Live.TrainInfo(context.Background(), c.String("train"))
					if err != nil {
						return err
					}

					log.Info().
						Str("state", info.State.String()).
						Str("status", info.Status.String()).
						Msg("Fetched live train info")
					pretty.Println(info)

					return nil
				},
			},
		},
	}
}
