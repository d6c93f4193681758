package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/adammck/quadruped"
	"github.com/adammck/quadruped/calibration"
	"github.com/adammck/quadruped/components/legs"
	fake_servos "github.com/adammck/quadruped/fake/servos"
	"github.com/adammck/quadruped/math3d"
	"github.com/adammck/quadruped/servos"
	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "main",
})

func main() {
	def := servos.DefaultConfig()

	app := &cli.App{
		Name:  "quadruped",
		Usage: "move a four-legged robot",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "driver", Value: def.Driver, Usage: "servo driver: pca9685, dynamixel, or fake", EnvVars: []string{"QUADRUPED_DRIVER"}},
			&cli.StringFlag{Name: "i2c-bus", Value: def.Bus, Usage: "the i2c bus of the pca9685 (default: first)", EnvVars: []string{"QUADRUPED_I2C_BUS"}},
			&cli.UintFlag{Name: "i2c-addr", Value: uint(def.Addr), Usage: "the i2c address of the pca9685", EnvVars: []string{"QUADRUPED_I2C_ADDR"}},
			&cli.StringFlag{Name: "port", Value: def.Port, Usage: "the serial port path of the dynamixel bus", EnvVars: []string{"QUADRUPED_PORT"}},
			&cli.UintFlag{Name: "baud", Value: def.Baud, Usage: "the baud rate of the dynamixel bus", EnvVars: []string{"QUADRUPED_BAUD"}},
			&cli.IntFlag{Name: "base-id", Value: def.BaseID, Usage: "the dynamixel ID of channel zero", EnvVars: []string{"QUADRUPED_BASE_ID"}},
			&cli.StringFlag{Name: "offsets", Value: "offsets.json", Usage: "the servo offsets file", EnvVars: []string{"QUADRUPED_OFFSETS"}},
			&cli.IntFlag{Name: "speed", Value: legs.DefaultSpeed, Usage: "the speed of direct moves (1-8)"},
			&cli.BoolFlag{Name: "symmetric-lift", Usage: "lower the feet gradually during direct moves"},
			&cli.BoolFlag{Name: "debug", Usage: "log every tick"},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				logrus.SetLevel(logrus.DebugLevel)
			}

			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "stand",
				Usage:  "stand up on the calibration points",
				Action: withBoot(func(c *cli.Context, q *quadruped.Quadruped) error { return nil }),
			},
			{
				Name:  "walk",
				Usage: "take some steps",
				Flags: []cli.Flag{
					&cli.Float64Flag{Name: "direction", Usage: "degrees; zero is forwards, positive is counterclockwise"},
					&cli.Float64Flag{Name: "step", Value: 40, Usage: "the stride length, in mm"},
					&cli.Float64Flag{Name: "spin", Usage: "degrees to turn per step"},
					&cli.IntFlag{Name: "steps", Value: 4, Usage: "the number of steps to take"},
				},
				Action: withBoot(walk),
			},
			{
				Name:  "height",
				Usage: "raise or lower the body",
				Flags: []cli.Flag{
					&cli.Float64Flag{Name: "mm", Value: legs.DefaultBodyHeight, Usage: "the distance from the hips to the feet"},
				},
				Action: withBoot(func(c *cli.Context, q *quadruped.Quadruped) error {
					q.Legs.SetBodyHeight(c.Float64("mm"))
					return nil
				}),
			},
			{
				Name:  "tilt",
				Usage: "lean the body without moving the feet",
				Flags: []cli.Flag{
					&cli.Float64Flag{Name: "yaw", Usage: "degrees"},
					&cli.Float64Flag{Name: "pitch", Usage: "degrees, along the length of the body"},
					&cli.Float64Flag{Name: "roll", Usage: "degrees, across the body"},
				},
				Action: withBoot(func(c *cli.Context, q *quadruped.Quadruped) error {
					q.Legs.Tilt(math3d.Euler(c.Float64("yaw"), c.Float64("pitch"), c.Float64("roll")))
					return nil
				}),
			},
			{
				Name:  "install",
				Usage: "center every servo, ready to attach the legs",
				Action: withRobot(func(c *cli.Context, q *quadruped.Quadruped) error {
					q.Legs.InstallationPosition()
					return nil
				}),
			},
			{
				Name:  "precalibrate",
				Usage: "move to the calibration points, ignoring the offsets",
				Flags: []cli.Flag{
					&cli.Float64Flag{Name: "mm", Usage: "also move to this height"},
				},
				Action: withRobot(func(c *cli.Context, q *quadruped.Quadruped) error {
					q.Legs.BeforeCalibrationPosition()
					if c.IsSet("mm") {
						q.Legs.SetBeforeCalibrationHeight(c.Float64("mm"))
					}

					return nil
				}),
			},
			{
				Name:  "offsets",
				Usage: "set and save the servo offsets of one leg",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "leg", Required: true, Usage: "0=FL, 1=BL, 2=BR, 3=FR"},
					&cli.Float64Flag{Name: "coxa"},
					&cli.Float64Flag{Name: "femur"},
					&cli.Float64Flag{Name: "tibia"},
				},
				Action: withRobot(offsets),
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func walk(c *cli.Context, q *quadruped.Quadruped) error {
	r := legs.Request{
		Direction:  c.Float64("direction"),
		StepLength: c.Float64("step"),
		Spin:       c.Float64("spin"),
		Speed:      c.Int("speed"),
	}

	for i := 0; i < c.Int("steps"); i++ {
		if q.Stopping() {
			break
		}

		q.Legs.Move(r)
	}

	q.Legs.ReturnToCalibration()
	return nil
}

func offsets(c *cli.Context, q *quadruped.Quadruped) error {
	err := q.LoadOffsets()
	if err != nil {
		return err
	}

	a := legs.Angles{
		Coxa:  c.Float64("coxa"),
		Femur: c.Float64("femur"),
		Tibia: c.Float64("tibia"),
	}

	err = q.SetLegOffsets(c.Int("leg"), a)
	if err != nil {
		return err
	}

	q.Legs.StandUp()
	return nil
}

func openDriver(c *cli.Context) (quadruped.Driver, error) {
	if c.String("driver") == "fake" {
		return fake_servos.New(), nil
	}

	cfg := servos.Config{
		Driver: c.String("driver"),
		Bus:    c.String("i2c-bus"),
		Addr:   uint16(c.Uint("i2c-addr")),
		Port:   c.String("port"),
		Baud:   c.Uint("baud"),
		BaseID: c.Int("base-id"),
	}

	return servos.Open(cfg, clock.New())
}

// withRobot opens the servo driver, runs f, and then closes the driver (which
// powers the servos off) even if f failed.
func withRobot(f func(*cli.Context, *quadruped.Quadruped) error) cli.ActionFunc {
	return func(c *cli.Context) (err error) {
		driver, err := openDriver(c)
		if err != nil {
			return errors.Wrap(err, "while opening servo driver")
		}

		q := quadruped.New(driver, calibration.NewFileStore(c.String("offsets")), clock.New())
		q.Legs.SetMoveSpeed(c.Int("speed"))
		q.Legs.SetSymmetricLift(c.Bool("symmetric-lift"))

		defer func() {
			err = multierr.Append(err, q.Close())
		}()

		// Catch both SIGINT (ctrl+c) and SIGTERM (kill/systemd), to stop between
		// movements and power down the servos before exiting.
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		defer func() {
			signal.Stop(sig)
			close(sig)
		}()

		go func() {
			for range sig {
				log.Infof("caught signal, stopping after this movement")
				q.Stop()
			}
		}()

		return f(c, q)
	}
}

// withBoot is like withRobot, but stands up with the saved offsets first.
func withBoot(f func(*cli.Context, *quadruped.Quadruped) error) cli.ActionFunc {
	return withRobot(func(c *cli.Context, q *quadruped.Quadruped) error {
		err := q.Boot()
		if err != nil {
			return err
		}

		return f(c, q)
	})
}
