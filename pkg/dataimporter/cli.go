package dataimporter

import (
	"fmt"
	"time"

	"github.com/findmybus/findmybus/pkg/config"
	"github.com/findmybus/findmybus/pkg/ctdf"
	"github.com/findmybus/findmybus/pkg/session"
	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "data-importer",
		Usage: "Download & convert GTFS feeds into CTDF",
		Subcommands: []*cli.Command{
			{
				Name:  "static",
				Usage: "Import the GTFS static schedule",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "url",
						Usage: "Override the configured schedule url",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := loadConfig(c)
					if err != nil {
						return err
					}

					feedSession, err := session.Open(c.Context, cfg)
					if err != nil {
						return err
					}
					defer feedSession.Close()

					startTime := time.Now()
					if err := feedSession.RefreshStatic(c.Context); err != nil {
						return err
					}

					static := feedSession.Static()
					log.Info().
						Str("agency", static.AgencyName).
						Int("stops", len(static.Stops)).
						Int("routes", len(static.Routes)).
						Int("trips", len(static.Trips)).
						Str("length", time.Since(startTime).String()).
						Msg("Static import complete")

					return nil
				},
			},
			{
				Name:  "realtime",
				Usage: "Fetch the GTFS realtime vehicle positions once",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "url",
						Usage: "Override the configured realtime url",
					},
					&cli.BoolFlag{
						Name:  "print",
						Usage: "Print every decoded vehicle",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := loadConfig(c)
					if err != nil {
						return err
					}

					feedSession, err := session.Open(c.Context, cfg)
					if err != nil {
						return err
					}
					defer feedSession.Close()

					if err := feedSession.RefreshRealtime(c.Context); err != nil {
						return err
					}

					realtime := feedSession.Realtime()
					log.Info().
						Str("feedTimestamp", realtime.FeedTimestamp).
						Int("vehicles", len(realtime.Vehicles)).
						Msg("Realtime fetch complete")

					if c.Bool("print") {
						for _, vehicle := range realtime.Vehicles {
							pretty.Println(vehicle)
						}
					}

					return nil
				},
			},
			{
				Name:  "stop-times",
				Usage: "Print the persisted schedule of a trip",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "trip",
						Usage:    "ID of the trip",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := loadConfig(c)
					if err != nil {
						return err
					}

					feedSession, err := session.Open(c.Context, cfg)
					if err != nil {
						return err
					}
					defer feedSession.Close()

					stopTimes, err := feedSession.StopTimesForTrip(c.Context, c.String("trip"))
					if err != nil {
						return err
					}

					for _, line := range formatStopTimes(feedSession.Static(), c.String("trip"), stopTimes) {
						fmt.Println(line)
					}

					return nil
				},
			},
		},
	}
}

// formatStopTimes renders a trip schedule as a route header followed by one
// departure per line, using stop names where the stop is known.
func formatStopTimes(static *ctdf.StaticDataset, tripID string, stopTimes ctdf.StopTimes) []string {
	header := tripID
	if trip, exists := static.Trips[tripID]; exists {
		if route, exists := static.Routes[trip.RouteID]; exists {
			header = fmt.Sprintf("%s %s", route.DisplayName(), tripID)
		}
		if trip.Headsign != nil {
			header = fmt.Sprintf("%s to %s", header, *trip.Headsign)
		}
	}

	lines := []string{header}
	for _, stopTime := range stopTimes {
		stopName := stopTime.StopID
		if stop, exists := static.Stops[stopTime.StopID]; exists && stop.Name != "" {
			stopName = stop.Name
		}

		lines = append(lines, fmt.Sprintf("%s\t%s", stopTime.DepartureTime, stopName))
	}

	return lines
}

// loadConfig reads the global --config file and applies the command's --url
// override to the feed it imports.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("url") {
		switch c.Command.Name {
		case "static":
			cfg.Static.URL = c.String("url")
		case "realtime":
			cfg.Realtime.URL = c.String("url")
		}
	}

	return cfg, nil
}
