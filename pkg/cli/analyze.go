package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/urfave/cli/v3"

	"github.com/e-c-centric/ClassHelper/pkg/model"
	"github.com/e-c-centric/ClassHelper/pkg/usecase/report"
)

func analyzeCommand() *cli.Command {
	var (
		cfg     config
		classID string
		from    string
		to      string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "class-id",
			Aliases:     []string{"c"},
			Usage:       "Class ID to analyze",
			Required:    true,
			Destination: &classID,
		},
		&cli.StringFlag{
			Name:        "from",
			Usage:       "Range start (YYYY-MM-DD)",
			Required:    true,
			Destination: &from,
		},
		&cli.StringFlag{
			Name:        "to",
			Usage:       "Range end (YYYY-MM-DD)",
			Required:    true,
			Destination: &to,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:  "analyze",
		Usage: "Analyze class participation over a date range",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}

			gemini, err := cfg.newGemini(ctx)
			if err != nil {
				return err
			}

			uc := report.New(repo, gemini)

			sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
			sp.Suffix = " Analyzing participation..."
			sp.Start()

			result, err := uc.AnalyzeParticipation(ctx, report.AnalyzeInput{
				ClassID: model.ClassID(classID),
				Range:   model.DateRange{From: model.Date(from), To: model.Date(to)},
			})
			sp.Stop()
			if err != nil {
				return err
			}

			fmt.Fprintln(c.Root().Writer, result.Analysis)
			return nil
		},
	}
}
