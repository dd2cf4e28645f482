// Command imu-condition runs recorded IMU triads through the conditioning
// pipeline: frame conversion, interpolation and averaging.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/banshee-data/inertial.conditioner/internal/version"
	"github.com/urfave/cli/v3"
)

const name = "imu-condition"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    name,
		Usage:   "Condition recorded accelerometer, gyroscope and magnetometer triads",
		Version: version.String(),
		Commands: []*cli.Command{
			runCmd(),
			defaultsCmd(),
		},
	}
}
