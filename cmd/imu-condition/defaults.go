package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

func defaultsCmd() *cli.Command {
	return &cli.Command{
		Name:  "defaults",
		Usage: "Print the effective conditioning configuration",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "config file to resolve; built-in defaults when omitted",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "output format: json or yaml",
				Value: "json",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd.String("config"))
			if err != nil {
				return err
			}
			resolved := cfg.Resolved()

			w := cmd.Root().Writer
			switch cmd.String("format") {
			case "json":
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(resolved)
			case "yaml":
				enc := yaml.NewEncoder(w)
				enc.SetIndent(2)
				if err := enc.Encode(resolved); err != nil {
					return err
				}
				return enc.Close()
			default:
				return fmt.Errorf("unknown output format: %q", cmd.String("format"))
			}
		},
	}
}
