package cli

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/e-c-centric/ClassHelper/pkg/server"
	"github.com/e-c-centric/ClassHelper/pkg/usecase/attendance"
	"github.com/e-c-centric/ClassHelper/pkg/usecase/report"
	"github.com/e-c-centric/ClassHelper/pkg/utils/logging"
)

func serveCommand() *cli.Command {
	var (
		cfg      config
		addr     string
		apiToken string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Listen address",
			Value:       ":8080",
			Sources:     cli.EnvVars("CLASSHELPER_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "api-token",
			Usage:       "Shared bearer token required on AI routes",
			Sources:     cli.EnvVars("CLASSHELPER_API_TOKEN"),
			Destination: &apiToken,
		},
		&cli.StringFlag{
			Name:        "bucket",
			Usage:       "Cloud Storage bucket for recording archive (optional)",
			Sources:     cli.EnvVars("CLASSHELPER_BUCKET"),
			Destination: &cfg.bucket,
		},
		&cli.BoolFlag{
			Name:        "memory",
			Usage:       "Use the in-memory store (local development only)",
			Destination: &cfg.memoryStore,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.New(cfg.logLevel, os.Stderr)
			logging.SetDefault(logger)

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}

			gemini, err := cfg.newGemini(ctx)
			if err != nil {
				return err
			}

			storage, err := cfg.newStorage(ctx)
			if err != nil {
				return err
			}

			var attendanceOpts []attendance.Option
			if storage != nil {
				attendanceOpts = append(attendanceOpts, attendance.WithStorage(storage))
			}
			attendanceUC := attendance.New(repo, gemini, attendanceOpts...)
			reportUC := report.New(repo, gemini)

			if apiToken == "" {
				logger.Warn("no api-token configured, AI routes are unauthenticated")
			}

			srv := server.New(attendanceUC, reportUC, apiToken, server.WithLogger(logger))
			return srv.Run(addr)
		},
	}
}
