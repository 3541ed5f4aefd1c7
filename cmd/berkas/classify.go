package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/berkasflow/berkasflow/internal/classifier"
	"github.com/berkasflow/berkasflow/internal/config"
	"github.com/berkasflow/berkasflow/internal/report"
	"github.com/berkasflow/berkasflow/internal/upload"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify documents into categories",
		Long: `Classify every document in a directory into its category, using text
content when it can be extracted and the filename otherwise.

Examples:
  berkas classify --dir ./uploads
  berkas classify --dir ./uploads --workers 8 --json
  berkas classify --dir ./uploads --company "PT Contoh" --save
  berkas classify --dir ./uploads --company "PT Contoh" --upload`,
		Args: cobra.ArbitraryArgs,
		RunE: runClassify,
	}

	cmd.Flags().StringP("dir", "d", ".", "Directory containing the documents")
	cmd.Flags().IntP("workers", "w", 4, "Number of parallel classification workers")
	cmd.Flags().Duration("timeout", 0, "Per-file extraction timeout (default 30s)")
	cmd.Flags().String("company", "", "Company the documents belong to")
	cmd.Flags().Bool("save", false, "Persist results to the configured sink")
	cmd.Flags().Bool("upload", false, "Archive documents by category after classifying")
	cmd.Flags().Bool("json", false, "Print results as JSON")

	_ = viper.BindPFlag("classify.dir", cmd.Flags().Lookup("dir"))
	_ = viper.BindPFlag("classify.workers", cmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("extraction.timeout", cmd.Flags().Lookup("timeout"))
	_ = viper.BindPFlag("classify.company", cmd.Flags().Lookup("company"))
	_ = viper.BindPFlag("classify.save", cmd.Flags().Lookup("save"))
	_ = viper.BindPFlag("classify.upload", cmd.Flags().Lookup("upload"))
	_ = viper.BindPFlag("classify.json", cmd.Flags().Lookup("json"))

	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	eng, err := buildEngine()
	if err != nil {
		return err
	}

	paths, err := resolvePaths(args, viper.GetString("classify.dir"))
	if err != nil {
		return err
	}

	slog.Info("Classifying documents", "count", len(paths))

	bar := progressbar.NewOptions(len(paths),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Classifying documents..."),
	)

	docs := eng.classifier.BatchClassify(ctx, paths, classifier.BatchOptions{
		Workers:    viper.GetInt("classify.workers"),
		OnProgress: func(done, _ int) { _ = bar.Set(done) },
	})
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)

	if err := ctx.Err(); err != nil {
		return err
	}

	formatter := report.NewFormatter()
	if viper.GetBool("classify.json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(docs); err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
	} else {
		for _, doc := range docs {
			fmt.Printf("%-40s → %s (%.2f, %s)\n", doc.Filename, doc.Category, doc.Confidence, doc.Method)
		}
		fmt.Println()
		fmt.Println(formatter.FormatClassificationSummary(eng.classifier.Summarize(docs)))
	}

	company := viper.GetString("classify.company")

	if viper.GetBool("classify.save") {
		if company == "" {
			return fmt.Errorf("--company is required with --save")
		}
		sink, cleanup, err := initResultSink(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		id, err := sink.SaveClassifications(ctx, company, docs)
		if err != nil {
			return fmt.Errorf("failed to save classifications: %w", err)
		}
		slog.Info("Classifications saved", "id", id)
	}

	if viper.GetBool("classify.upload") {
		if company == "" {
			return fmt.Errorf("--company is required with --upload")
		}
		uploader, err := upload.New(uploadConfig())
		if err != nil {
			return err
		}

		for _, doc := range docs {
			file, err := os.Open(doc.FilePath)
			if err != nil {
				slog.Warn("Skipping archive upload", "file", doc.FilePath, "error", err)
				continue
			}
			key, err := uploader.Upload(ctx, company, doc.Category, doc.Filename, file)
			_ = file.Close()
			if err != nil {
				return fmt.Errorf("failed to archive %s: %w", doc.Filename, err)
			}
			slog.Debug("Archived document", "key", key)
		}
		slog.Info("Documents archived", "count", len(docs))
	}

	return nil
}

// uploadConfig reads the archive backend settings.
func uploadConfig() upload.Config {
	localPath := viper.GetString("upload.local_path")
	if localPath == "" {
		localPath = "$HOME/.local/share/berkas/archive"
	}

	return upload.Config{
		Backend:   viper.GetString("upload.backend"),
		LocalPath: config.ExpandPath(localPath),
		S3Bucket:  viper.GetString("upload.s3_bucket"),
		S3Region:  viper.GetString("upload.s3_region"),
		AccessKey: viper.GetString("upload.access_key"),
		SecretKey: viper.GetString("upload.secret_key"),
	}
}
