package run

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/unnamed-lab/tradelens/analytics"
	appcfg "github.com/unnamed-lab/tradelens/config"
	"github.com/unnamed-lab/tradelens/internal/cli/config"
	"github.com/unnamed-lab/tradelens/internal/report"
	"github.com/unnamed-lab/tradelens/journal"
	"github.com/unnamed-lab/tradelens/match"
	"github.com/unnamed-lab/tradelens/pkg/id"
)

func New(rc *config.RootConfig) *cobra.Command {
	var (
		eventsPath string
		marksPath  string
		outPath    string
		orgPath    string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Reconcile an event stream and print the performance report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := appcfg.Default()
			if rc.ConfigPath != "" {
				loaded, err := appcfg.LoadFromFile(rc.ConfigPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if outPath != "" {
				cfg.Journal.Type = "csv"
				cfg.Journal.FillsFile = outPath
			}

			events, err := ReadEventsCSV(eventsPath)
			if err != nil {
				return fmt.Errorf("read events: %w", err)
			}
			logrus.WithField("events", len(events)).Info("loaded event stream")

			m := match.New(match.WithLogger(logrus.StandardLogger()))
			res, err := m.Match(events)
			if err != nil {
				return fmt.Errorf("match: %w", err)
			}

			rep := analytics.AnalyzeWith(res.Events, nil, analytics.Config{
				BullishRatio: cfg.Analytics.BullishRatio,
				BearishRatio: cfg.Analytics.BearishRatio,
			})

			report.Print(cmd.OutOrStdout(), rep, res.Anomalies)

			if marksPath != "" {
				marks, err := ReadMarksCSV(marksPath)
				if err != nil {
					return fmt.Errorf("read marks: %w", err)
				}
				report.PrintValuation(cmd.OutOrStdout(), match.Value(res.Books, marks))
			}

			run := journal.RunRecord{
				RunID:        id.NewRunID(),
				Created:      time.Now().UTC(),
				Source:       eventsPath,
				Events:       len(res.Events),
				Fills:        rep.Summary.Fills,
				Wins:         rep.Summary.Wins,
				Losses:       rep.Summary.Losses,
				Anomalies:    len(res.Anomalies),
				TotalPnL:     rep.Summary.TotalPnL,
				TotalFees:    rep.Summary.TotalFees,
				WinRate:      rep.Summary.WinRate,
				ProfitFactor: rep.Risk.ProfitFactor,
				MaxDrawdown:  rep.Drawdown.Max,
			}

			if err := journalRun(cfg, run, res); err != nil {
				return err
			}

			if orgPath != "" {
				if err := run.WriteOrg(orgPath); err != nil {
					return fmt.Errorf("write org report: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&eventsPath, "events", "", "Canonical events CSV (required)")
	cmd.Flags().StringVar(&marksPath, "marks", "", "Mark prices CSV for unrealized valuation")
	cmd.Flags().StringVar(&outPath, "out", "", "Write fills CSV to this path (overrides config)")
	cmd.Flags().StringVar(&orgPath, "org", "", "Write an org-mode run summary to this path")
	_ = cmd.MarkFlagRequired("events")

	return cmd
}

func journalRun(cfg *appcfg.Config, run journal.RunRecord, res *match.Result) error {
	var j journal.Journal
	var err error

	switch cfg.Journal.Type {
	case "none":
		return nil
	case "csv":
		j, err = journal.NewCSV(cfg.Journal.FillsFile)
	case "sqlite":
		j, err = journal.NewSQLite(cfg.Journal.DBPath)
	}
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer func() {
		if cerr := j.Close(); cerr != nil {
			fmt.Fprintln(os.Stderr, "close journal:", cerr)
		}
	}()

	if err := j.RecordRun(run); err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	for _, ev := range res.Events {
		if err := j.RecordFill(run.RunID, journal.FromMatched(ev)); err != nil {
			return fmt.Errorf("record fill %s: %w", ev.ID, err)
		}
	}
	return nil
}
