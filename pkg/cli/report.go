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

func reportCommand() *cli.Command {
	var (
		cfg        config
		classID    string
		date       string
		reportType string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "class-id",
			Aliases:     []string{"c"},
			Usage:       "Class ID to report on",
			Required:    true,
			Destination: &classID,
		},
		&cli.StringFlag{
			Name:        "date",
			Usage:       "Date to report on (YYYY-MM-DD)",
			Required:    true,
			Destination: &date,
		},
		&cli.StringFlag{
			Name:        "type",
			Aliases:     []string{"t"},
			Usage:       "Report type (attendance, participation, comprehensive)",
			Value:       string(model.ReportTypeComprehensive),
			Destination: &reportType,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:  "report",
		Usage: "Generate and print a class report for one day",
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
			sp.Suffix = " Generating report..."
			sp.Start()

			result, err := uc.Generate(ctx, report.GenerateInput{
				ClassID: model.ClassID(classID),
				Date:    model.Date(date),
				Type:    model.ReportType(reportType),
			})
			sp.Stop()
			if err != nil {
				return err
			}

			fmt.Fprintln(c.Root().Writer, result.Report)
			return nil
		},
	}
}
