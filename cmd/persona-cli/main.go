package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/email-persona/internal/core"
	"github.com/mikey/email-persona/internal/di"
)

func main() {
	flags := di.ParseFlags()

	container, err := di.BuildCLIContainer(flags)
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run analyzes an offline email batch and prints the signal bundle as JSON.
func run(flags *di.CLIFlags, service *core.SignalService, logger *zap.Logger) error {
	defer logger.Sync()

	if flags.UserEmail == "" {
		return fmt.Errorf("the -user flag is required")
	}

	emails, err := readRecords(flags.EmailsFile)
	if err != nil {
		return fmt.Errorf("failed to read email batch: %w", err)
	}

	var sent []core.EmailRecord
	if flags.SentFile != "" {
		sent, err = readRecords(flags.SentFile)
		if err != nil {
			return fmt.Errorf("failed to read sent batch: %w", err)
		}
	}

	var bodies []string
	if flags.BodiesFile != "" {
		data, err := os.ReadFile(flags.BodiesFile)
		if err != nil {
			return fmt.Errorf("failed to read bodies file: %w", err)
		}
		if err := json.Unmarshal(data, &bodies); err != nil {
			return fmt.Errorf("failed to parse bodies file: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	start := time.Now()
	signals, err := service.Analyze(ctx, core.AnalysisInput{
		UserEmail:  flags.UserEmail,
		Emails:     emails,
		SentEmails: sent,
		SentBodies: bodies,
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	logger.Info("Analysis complete",
		zap.Int("total_emails", signals.TotalEmailsAnalyzed),
		zap.Int("sent_emails", signals.SentEmailsAnalyzed),
		zap.Float64("quality_score", signals.AnalysisQualityScore),
		zap.Duration("elapsed", time.Since(start)))

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(signals)
}

// readRecords reads a JSON array of email records from a file, or stdin when
// path is empty.
func readRecords(path string) ([]core.EmailRecord, error) {
	var data []byte
	var err error
	if path == "" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	var records []core.EmailRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}
