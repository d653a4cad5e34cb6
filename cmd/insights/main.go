// chainsight/cmd/insights/main.go
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/opsintel/chainsight/internal/classify"
	"github.com/opsintel/chainsight/internal/dataset"
	"github.com/opsintel/chainsight/internal/domain"
	"github.com/opsintel/chainsight/internal/metrics"
	"github.com/opsintel/chainsight/internal/recommend"
	"github.com/opsintel/chainsight/internal/service"
	"github.com/opsintel/chainsight/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "insights",
		Usage: "compute supply-chain insights from a dataset file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "dataset file (.csv or .xlsx)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "date",
				Usage: "reference date for delivery classification (YYYY-MM-DD, default today)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "metrics",
				Usage:  "print the operations overview metrics",
				Action: runMetrics,
			},
			{
				Name:   "abc",
				Usage:  "print the ABC inventory classification",
				Action: runABC,
			},
			{
				Name:   "recommend",
				Usage:  "print risk insights and cost recommendations",
				Action: runRecommend,
			},
			{
				Name:   "report",
				Usage:  "print the full dashboard snapshot",
				Action: runReport,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("command failed")
	}
}

func loadTable(c *cli.Context) (*domain.Table, time.Time, error) {
	table, err := dataset.NewLoader().Load(c.String("file"))
	if err != nil {
		return nil, time.Time{}, err
	}

	today := classify.Midnight(time.Now())
	if raw := c.String("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("invalid --date %q: %w", raw, err)
		}
		today = parsed
	}
	return table, today, nil
}

func runMetrics(c *cli.Context) error {
	table, today, err := loadTable(c)
	if err != nil {
		return err
	}
	return printJSON(service.BuildOverview(table, today))
}

func runABC(c *cli.Context) error {
	table, _, err := loadTable(c)
	if err != nil {
		return err
	}
	return printJSON(classify.ABC(metrics.ProductRollup(table)))
}

func runRecommend(c *cli.Context) error {
	table, _, err := loadTable(c)
	if err != nil {
		return err
	}
	return printJSON(recommend.All(table))
}

func runReport(c *cli.Context) error {
	table, today, err := loadTable(c)
	if err != nil {
		return err
	}
	snapshot := domain.DashboardSnapshot{
		GeneratedAt: time.Now().UTC(),
		Source:      c.String("file"),
		Rows:        table.Len(),
		Overview:    service.BuildOverview(table, today),
		Risk:        service.BuildRisk(table),
		Performance: service.BuildPerformance(table, today),
		Inventory:   service.BuildInventory(table),
		Cost:        service.BuildCost(table),
	}
	return printJSON(snapshot)
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
