package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/berkasflow/berkasflow/internal/checklist"
	"github.com/berkasflow/berkasflow/internal/classifier"
	"github.com/berkasflow/berkasflow/internal/common"
	"github.com/berkasflow/berkasflow/internal/model"
	"github.com/berkasflow/berkasflow/internal/notify"
	"github.com/berkasflow/berkasflow/internal/report"
	"github.com/berkasflow/berkasflow/internal/service"
)

func evaluateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate documents against a checklist template",
		Long: `Classify the documents in a directory, then check them against a named
checklist template and report what is found and what is missing.

Examples:
  berkas evaluate --dir ./uploads --template "BG PIHK PT"
  berkas evaluate --dir ./uploads --template "BG PPIU PT" --company "PT Contoh" --save
  berkas evaluate --dir ./uploads --template "BG PIHK PT" --notify 628123456789`,
		Args: cobra.ArbitraryArgs,
		RunE: runEvaluate,
	}

	cmd.Flags().StringP("dir", "d", ".", "Directory containing the documents")
	cmd.Flags().StringP("template", "t", "", "Checklist template name (required)")
	cmd.Flags().String("company", "", "Company the documents belong to")
	cmd.Flags().Bool("save", false, "Persist the evaluation to the configured sink")
	cmd.Flags().String("notify", "", "WhatsApp number to send the completeness summary to")
	cmd.Flags().Bool("json", false, "Print the evaluation as JSON")
	_ = cmd.MarkFlagRequired("template")

	_ = viper.BindPFlag("evaluate.dir", cmd.Flags().Lookup("dir"))
	_ = viper.BindPFlag("evaluate.template", cmd.Flags().Lookup("template"))
	_ = viper.BindPFlag("evaluate.company", cmd.Flags().Lookup("company"))
	_ = viper.BindPFlag("evaluate.save", cmd.Flags().Lookup("save"))
	_ = viper.BindPFlag("evaluate.notify", cmd.Flags().Lookup("notify"))
	_ = viper.BindPFlag("evaluate.json", cmd.Flags().Lookup("json"))

	return cmd
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	eng, err := buildEngine()
	if err != nil {
		return err
	}

	paths, err := resolvePaths(args, viper.GetString("evaluate.dir"))
	if err != nil {
		return err
	}

	docs := eng.classifier.BatchClassify(ctx, paths, classifier.BatchOptions{
		Workers: viper.GetInt("classify.workers"),
	})
	if err := ctx.Err(); err != nil {
		return err
	}

	result, err := eng.evaluator.Evaluate(viper.GetString("evaluate.template"), docs)
	if err != nil {
		var unknown *checklist.UnknownTemplateError
		if errors.As(err, &unknown) {
			return fmt.Errorf("%s\nValid templates: %s", unknown.Error(), strings.Join(unknown.Available, ", "))
		}
		return err
	}

	if viper.GetBool("evaluate.json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to encode evaluation: %w", err)
		}
	} else {
		fmt.Println(report.NewFormatter().FormatEvaluation(result))
	}

	company := viper.GetString("evaluate.company")

	if viper.GetBool("evaluate.save") {
		if company == "" {
			return fmt.Errorf("--company is required with --save")
		}
		sink, cleanup, err := initResultSink(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		id, err := sink.SaveEvaluation(ctx, company, result)
		if err != nil {
			return fmt.Errorf("failed to save evaluation: %w", err)
		}
		slog.Info("Evaluation saved", "id", id)
	}

	if recipient := viper.GetString("evaluate.notify"); recipient != "" {
		if company == "" {
			company = "(tanpa nama)"
		}
		if err := sendEvaluationNotification(ctx, recipient, company, result); err != nil {
			// A failed notification must not fail the evaluation.
			common.LogError(err, "Failed to send notification", common.Fields{"recipient": recipient})
		}
	}

	return nil
}

func sendEvaluationNotification(ctx context.Context, recipient, company string, result *model.EvaluationResult) error {
	notifier, err := notify.NewWAHANotifier(notifyConfig())
	if err != nil {
		return err
	}

	window := viper.GetDuration("notify.throttle_window")
	throttled := notify.NewThrottled(notifier, window)

	message := notify.EvaluationMessage(company, result, time.Now())
	return common.WithRetry(ctx, func() error {
		return throttled.Send(ctx, recipient, message)
	}, service.RetryOptions{MaxAttempts: 3})
}

// notifyConfig reads the WAHA gateway settings.
func notifyConfig() notify.Config {
	cfg := notify.DefaultConfig()
	if url := viper.GetString("notify.api_url"); url != "" {
		cfg.APIURL = url
	}
	if key := viper.GetString("notify.api_key"); key != "" {
		cfg.APIKey = key
	}
	if session := viper.GetString("notify.session"); session != "" {
		cfg.Session = session
	}
	return cfg
}
