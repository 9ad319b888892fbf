package api

import (
	"github.com/findmybus/findmybus/pkg/config"
	"github.com/findmybus/findmybus/pkg/session"
	"github.com/urfave/cli/v2"
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
						Usage: "listen target for the web server",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}

					listen := cfg.API.Listen
					if c.IsSet("listen") {
						listen = c.String("listen")
					}

					feedSession, err := session.Open(c.Context, cfg)
					if err != nil {
						return err
					}
					defer feedSession.Close()

					return SetupServer(listen, feedSession)
				},
			},
		},
	}
}
