package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/banshee-data/inertial.conditioner/internal/config"
	"github.com/banshee-data/inertial.conditioner/internal/measurement"
	"github.com/banshee-data/inertial.conditioner/internal/monitor"
	"github.com/banshee-data/inertial.conditioner/internal/monitoring"
	"github.com/banshee-data/inertial.conditioner/internal/pipeline"
	"github.com/banshee-data/inertial.conditioner/internal/recording"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"
)

func runCmd() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Condition a CSV recording",
		Description: `Reads a triad recording with the columns

  timestamp_ns,kind,frame,x,y,z[,bx,by,bz][,accuracy][,variant]

runs every kind through its own conditioning stream and writes the
conditioned samples in the same format.

# Examples

Condition with the built-in defaults:
  imu-condition run --input walk.csv --output walk.ned.csv

Query 20ms behind each sample and chart the result:
  imu-condition run --input walk.csv --config median.yaml \
    --query-offset 20ms --plot walk.png --html walk.html

Re-time all kinds onto the accelerometer timestamps:
  imu-condition run --input walk.csv --align-to acceleration`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "CSV recording to condition",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "conditioning config (.json, .yaml or .yml); built-in defaults when omitted",
				Sources: cli.EnvVars("IMU_CONDITION_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "conditioned CSV output, - for stdout",
				Value:   "-",
			},
			&cli.DurationFlag{
				Name:  "query-offset",
				Usage: "query each stream this far behind the newest sample",
			},
			&cli.StringFlag{
				Name:  "align-to",
				Usage: "re-time every other kind onto this kind's conditioned timestamps",
			},
			&cli.StringFlag{
				Name:  "plot",
				Usage: "write a PNG chart of raw vs conditioned samples",
			},
			&cli.StringFlag{
				Name:  "html",
				Usage: "write an interactive HTML chart of raw vs conditioned samples",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log per-sample diagnostics",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			monitoring.SetDebug(cmd.Bool("debug"))

			cfg, err := loadConfig(cmd.String("config"))
			if err != nil {
				return err
			}

			var alignTo measurement.Kind
			if s := cmd.String("align-to"); s != "" {
				if alignTo, err = measurement.ParseKind(s); err != nil {
					return fmt.Errorf("invalid align-to: %w", err)
				}
			}

			in, err := os.Open(cmd.String("input"))
			if err != nil {
				return fmt.Errorf("failed to open input: %w", err)
			}
			defer in.Close()

			raw, err := readRecording(in)
			if err != nil {
				return err
			}

			series, err := conditionAll(ctx, raw, runOptions{
				cfg:         cfg,
				queryOffset: cmd.Duration("query-offset"),
				alignTo:     alignTo,
				metrics:     pipeline.NewMetrics(prometheus.NewRegistry()),
			})
			if err != nil {
				return err
			}

			if err := writeOutput(cmd.String("output"), cmd.Root().Writer, series); err != nil {
				return err
			}

			if path := cmd.String("plot"); path != "" {
				if err := monitor.SavePNG(path, series); err != nil {
					return err
				}
			}
			if path := cmd.String("html"); path != "" {
				if err := monitor.SaveHTML(path, cmd.String("input"), series); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

type runOptions struct {
	cfg         *config.ConditioningConfig
	queryOffset time.Duration
	alignTo     measurement.Kind
	metrics     *pipeline.Metrics
}

func loadConfig(path string) (*config.ConditioningConfig, error) {
	if path == "" {
		return config.EmptyConditioningConfig(), nil
	}
	cfg, err := config.LoadConditioningConfig(path)
	if err != nil {
		return nil, err
	}
	monitoring.Logf("loaded config %s", path)
	return cfg, nil
}

func readRecording(r io.Reader) ([]measurement.Triad, error) {
	rec, err := recording.NewReader(r)
	if err != nil {
		return nil, err
	}
	return rec.ReadAll()
}

// conditionAll runs each kind present in raw through its own stream, in
// measurement.ValidKinds order.
func conditionAll(ctx context.Context, raw []measurement.Triad, opts runOptions) ([]monitor.Series, error) {
	byKind := make(map[measurement.Kind][]measurement.Triad)
	for _, m := range raw {
		byKind[m.Kind] = append(byKind[m.Kind], m)
	}

	var series []monitor.Series
	for _, kind := range measurement.ValidKinds {
		samples, ok := byKind[kind]
		if !ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		conditioned, err := conditionKind(samples, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", kind, err)
		}
		monitoring.Logf("%s: %d samples in, %d conditioned", kind, len(samples), len(conditioned))
		series = append(series, monitor.Series{Kind: kind, Raw: samples, Conditioned: conditioned})
	}

	if opts.alignTo != "" {
		if err := alignSeries(series, opts); err != nil {
			return nil, err
		}
	}
	return series, nil
}

func conditionKind(samples []measurement.Triad, opts runOptions) ([]measurement.Triad, error) {
	stream, err := pipeline.NewTriadStreamFromConfig(opts.cfg, opts.metrics)
	if err != nil {
		return nil, err
	}
	monitoring.Debugf("stream %s conditions %s", stream.ID(), samples[0].Kind)

	offset := opts.queryOffset.Nanoseconds()
	out := make([]measurement.Triad, 0, len(samples))
	var dst measurement.Triad
	for _, m := range samples {
		ok, err := stream.Process(m, m.Timestamp-offset, &dst)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, dst)
		}
	}
	return out, nil
}

// alignSeries replaces the conditioned samples of every kind except
// opts.alignTo with samples re-timed onto the reference timestamps.
func alignSeries(series []monitor.Series, opts runOptions) error {
	idx := slices.IndexFunc(series, func(s monitor.Series) bool { return s.Kind == opts.alignTo })
	if idx < 0 {
		return fmt.Errorf("align-to kind %s not present in recording", opts.alignTo)
	}
	reference := series[idx].Conditioned

	for i := range series {
		if i == idx {
			continue
		}
		series[i].Conditioned = alignOnto(series[i].Conditioned, reference, opts.cfg)
	}
	return nil
}

// alignOnto walks reference in time order, feeding samples into a bounded
// Aligner until it holds one at or past each reference timestamp.
func alignOnto(samples, reference []measurement.Triad, cfg *config.ConditioningConfig) []measurement.Triad {
	if len(samples) == 0 {
		return nil
	}
	aligner := pipeline.NewAligner[measurement.Triad](cfg.GetMaxHistorySamples(), cfg.GetHistoryWindow())

	out := make([]measurement.Triad, 0, len(reference))
	next := 0
	var newest int64
	var dst measurement.Triad
	for _, ref := range reference {
		for next < len(samples) && (aligner.Len() == 0 || newest < ref.Timestamp) {
			aligner.Add(samples[next])
			newest = samples[next].Timestamp
			next++
		}
		if aligner.At(ref.Timestamp, &dst) {
			out = append(out, dst)
		}
	}
	return out
}

func writeOutput(path string, stdout io.Writer, series []monitor.Series) error {
	var rows []measurement.Triad
	for _, s := range series {
		rows = append(rows, s.Conditioned...)
	}
	slices.SortStableFunc(rows, func(a, b measurement.Triad) int {
		switch {
		case a.Timestamp < b.Timestamp:
			return -1
		case a.Timestamp > b.Timestamp:
			return 1
		}
		return 0
	})

	if path == "-" {
		return writeRows(stdout, rows)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := writeRows(f, rows); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}
	monitoring.Logf("wrote %d conditioned samples to %s", len(rows), path)
	return nil
}

func writeRows(w io.Writer, rows []measurement.Triad) error {
	rec := recording.NewWriter(w)
	for _, m := range rows {
		if err := rec.Write(m); err != nil {
			return err
		}
	}
	if err := rec.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
