package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/berkasflow/berkasflow/internal/report"
	"github.com/berkasflow/berkasflow/internal/storage"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show statistics over stored evaluations",
		Long: `Summarize the evaluations saved in the results database: status
distribution, average completion, and the documents most often missing.`,
		RunE: runStats,
	}
}

func runStats(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	sink, cleanup, err := initResultSink(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	db, ok := sink.(*storage.SQLiteStorage)
	if !ok {
		return fmt.Errorf("stats requires the sqlite results backend")
	}

	stats, err := db.GetStatistics(ctx)
	if err != nil {
		return err
	}

	fmt.Println(report.TitleStyle.Render(fmt.Sprintf("Evaluations: %d", stats.TotalEvaluations)))
	fmt.Printf("Average completion: %.1f%%\n", stats.AverageCompletion)
	fmt.Printf("Average confidence: %.2f\n", stats.AverageConfidence)

	if len(stats.StatusCounts) > 0 {
		fmt.Println("\nStatus distribution:")
		for _, status := range []string{"complete", "nearly_complete", "partial", "incomplete"} {
			if count, ok := stats.StatusCounts[status]; ok {
				fmt.Printf("  %-16s %d\n", status, count)
			}
		}
	}

	if len(stats.MostCommonMissing) > 0 {
		fmt.Println("\nMost commonly missing documents:")
		limit := len(stats.MostCommonMissing)
		if limit > 5 {
			limit = 5
		}
		for _, mc := range stats.MostCommonMissing[:limit] {
			fmt.Printf("  %-32s %d\n", mc.Label, mc.Count)
		}
	}

	return nil
}
