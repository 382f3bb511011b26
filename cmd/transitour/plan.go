package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/transitour/transitour/export"
	"github.com/transitour/transitour/gtfs"
	"github.com/transitour/transitour/network"
	"github.com/transitour/transitour/planner"
)

func planFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Usage: "YAML config file"},
		&cli.StringFlag{Name: "feed", Usage: "GTFS feed directory, zip archive, or URL"},
		&cli.StringFlag{Name: "start", Usage: "start stop ID (default: lowest stop ID)"},
		&cli.BoolFlag{Name: "open", Usage: "do not return to the start stop"},
		&cli.IntFlag{Name: "max-passes", Usage: "improvement pass budget, 0 = unlimited"},
		&cli.StringFlag{Name: "max-duration", Usage: "improvement time budget, e.g. 90s, 0 = unlimited"},
		&cli.IntFlag{Name: "workers", Value: 4, Usage: "all-pairs resolver workers"},
		&cli.StringSliceFlag{Name: "skip-stop-prefix", Usage: "drop stops whose ID has this prefix"},
		&cli.StringFlag{Name: "name", Usage: "tour name used in exports"},
		&cli.Float64Flag{Name: "frame-rate", Usage: "Earth Studio frame rate"},
		&cli.Float64Flag{Name: "speedup", Usage: "Earth Studio time compression factor"},
		&cli.StringFlag{Name: "geojson", Usage: "write the itinerary as GeoJSON to this file"},
		&cli.StringFlag{Name: "esp", Usage: "write an Earth Studio project to this file"},
	}
}

func planCommand() *cli.Command {
	return &cli.Command{
		Name:  "plan",
		Usage: "Compute the fastest all-station tour for a GTFS feed",
		Flags: planFlags(),
		Action: func(c *cli.Context) error {
			cfg, err := resolveConfig(c)
			if err != nil {
				return err
			}

			net, err := loadNetwork(cfg)
			if err != nil {
				return err
			}

			res, err := planner.Plan(net,
				planner.WithClosedTour(!cfg.Open),
				planner.WithStart(cfg.Start),
				planner.WithMaxPasses(cfg.MaxPasses),
				planner.WithMaxDuration(cfg.maxDuration),
				planner.WithWorkers(cfg.Workers),
				planner.WithLogger(log.Logger),
			)
			if err != nil {
				return err
			}

			printReport(net, res)

			if cfg.GeoJSON != "" {
				raw, err := export.GeoJSON(net, res.Itinerary)
				if err != nil {
					return err
				}
				if err := os.WriteFile(cfg.GeoJSON, raw, 0o644); err != nil {
					return err
				}
				log.Info().Str("path", cfg.GeoJSON).Msg("GeoJSON written")
			}

			if cfg.ESP != "" {
				raw, err := export.EarthStudio(net, res.Itinerary,
					export.WithName(cfg.Name),
					export.WithFrameRate(cfg.FrameRate),
					export.WithSpeedup(cfg.Speedup),
				)
				if err != nil {
					return err
				}
				if err := os.WriteFile(cfg.ESP, raw, 0o644); err != nil {
					return err
				}
				log.Info().Str("path", cfg.ESP).Msg("Earth Studio project written")
			}

			return nil
		},
	}
}

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "Load a GTFS feed and report the derived network",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "YAML config file"},
			&cli.StringFlag{Name: "feed", Usage: "GTFS feed directory, zip archive, or URL"},
			&cli.StringSliceFlag{Name: "skip-stop-prefix", Usage: "drop stops whose ID has this prefix"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := resolveConfig(c)
			if err != nil {
				return err
			}

			net, err := loadNetwork(cfg)
			if err != nil {
				return err
			}

			rides, transfers := 0, 0
			for _, e := range net.Edges() {
				if e.Kind == network.Transfer {
					transfers++
				} else {
					rides++
				}
			}
			fmt.Printf("stations:  %d\n", net.StationCount())
			fmt.Printf("rides:     %d\n", rides)
			fmt.Printf("transfers: %d\n", transfers)

			return nil
		},
	}
}

func loadNetwork(cfg config) (*network.Network, error) {
	feed, err := gtfs.Load(cfg.Feed)
	if err != nil {
		return nil, err
	}

	var opts []gtfs.Option
	if filter := cfg.stopFilter(); filter != nil {
		opts = append(opts, gtfs.WithStopFilter(filter))
	}

	return feed.Network(opts...)
}

// printReport writes the visiting order and the total travel time, one
// stop per line.
func printReport(net *network.Network, res planner.Result) {
	for i, stop := range res.Itinerary.Stops {
		s, _ := net.Station(stop.StationID)
		name := s.Name
		if name == "" {
			name = s.ID
		}
		fmt.Printf("%4d  %8s  %s\n", i, clock(stop.Offset), name)
	}
	hours := float64(res.Cost) / 3600
	fmt.Printf("\n%d stops, %.2f hours (%s after %d passes)\n",
		len(res.Itinerary.Stops), hours, res.State, res.Passes)
}

// clock formats a second offset as H:MM:SS.
func clock(seconds int64) string {
	return fmt.Sprintf("%d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
}
