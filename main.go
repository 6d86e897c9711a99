package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "sportzone",
		Usage: "Book SportZone Events match tickets",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to a YAML config file",
				EnvVars: []string{"SPORTZONE_CONFIG"},
			},
		},
		Action: runLoginMenu,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "log in as a user or admin and use the booking menu",
				Action: runLoginMenu,
			},
			{
				Name:   "kiosk",
				Usage:  "booking menu without login",
				Action: runKioskMenu,
			},
			{
				Name:  "deadline",
				Usage: "show the time remaining until a deadline",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "manual",
						Usage: "use the manual day-count calculator",
					},
				},
				Action: runDeadline,
			},
			{
				Name:   "serve",
				Usage:  "serve the booking API over HTTP",
				Action: runServer,
			},
			{
				Name:      "hash-password",
				ArgsUsage: "<password>",
				Usage:     "print a bcrypt hash for the password_hash config field",
				Action:    runHashPassword,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}
