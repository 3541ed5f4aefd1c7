package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/berkasflow/berkasflow/internal/classifier"
	"github.com/berkasflow/berkasflow/internal/report"
)

func recommendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend the best checklist template for a document set",
		Long: `Classify the documents in a directory, score every checklist template
against them, and recommend the best fit.

Examples:
  berkas recommend --dir ./uploads
  berkas recommend --dir ./uploads --json`,
		Args: cobra.ArbitraryArgs,
		RunE: runRecommend,
	}

	cmd.Flags().StringP("dir", "d", ".", "Directory containing the documents")
	cmd.Flags().Bool("json", false, "Print the recommendation as JSON")

	_ = viper.BindPFlag("recommend.dir", cmd.Flags().Lookup("dir"))
	_ = viper.BindPFlag("recommend.json", cmd.Flags().Lookup("json"))

	return cmd
}

func runRecommend(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	eng, err := buildEngine()
	if err != nil {
		return err
	}

	paths, err := resolvePaths(args, viper.GetString("recommend.dir"))
	if err != nil {
		return err
	}

	docs := eng.classifier.BatchClassify(ctx, paths, classifier.BatchOptions{
		Workers: viper.GetInt("classify.workers"),
	})
	if err := ctx.Err(); err != nil {
		return err
	}

	result := eng.recommender.Recommend(docs)

	if viper.GetBool("recommend.json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to encode recommendation: %w", err)
		}
		return nil
	}

	fmt.Println(report.NewFormatter().FormatRecommendation(result))
	return nil
}
