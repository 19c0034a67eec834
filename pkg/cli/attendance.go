package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/e-c-centric/ClassHelper/pkg/model"
	"github.com/e-c-centric/ClassHelper/pkg/usecase/attendance"
)

func attendanceCommand() *cli.Command {
	var (
		cfg       config
		classID   string
		date      string
		inputPath string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "class-id",
			Aliases:     []string{"c"},
			Usage:       "Class ID to take attendance for",
			Required:    true,
			Destination: &classID,
		},
		&cli.StringFlag{
			Name:        "date",
			Usage:       "Attendance date (YYYY-MM-DD)",
			Required:    true,
			Destination: &date,
		},
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "Path to a transcript text file",
			Required:    true,
			Destination: &inputPath,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:  "attendance",
		Usage: "Reconcile a transcript against the roster and record attendance",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			transcript, err := os.ReadFile(inputPath)
			if err != nil {
				return goerr.Wrap(err, "failed to read transcript", goerr.V("path", inputPath))
			}

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}

			gemini, err := cfg.newGemini(ctx)
			if err != nil {
				return err
			}

			uc := attendance.New(repo, gemini)
			result, err := uc.Reconcile(ctx, attendance.ReconcileInput{
				ClassID:       model.ClassID(classID),
				Date:          model.Date(date),
				Transcription: string(transcript),
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(c.Root().Writer, "Matched: %s\n", strings.Join(result.Matched, ", "))
			fmt.Fprintf(c.Root().Writer, "Present: %d\n", result.TotalPresent)
			if len(result.Ambiguous) > 0 {
				fmt.Fprintf(c.Root().Writer, "Ambiguous (marked present): %s\n", strings.Join(result.Ambiguous, ", "))
			}
			return nil
		},
	}
}
