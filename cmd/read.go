package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/uzresk/azure-ocr-samples/internal/config"
	"github.com/uzresk/azure-ocr-samples/internal/utils"
	"github.com/uzresk/azure-ocr-samples/pkg/computervision"
	"github.com/uzresk/azure-ocr-samples/pkg/limiter"
	"github.com/uzresk/azure-ocr-samples/pkg/ocr"
	"github.com/uzresk/azure-ocr-samples/pkg/output"
)

var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Extract text from an image with the Read API",
	Long: `Submit an image to the Azure Computer Vision Read API, wait for the
asynchronous operation to finish and print the recognized text.

The image is either a publicly reachable URL (--url) or a local file (--image).
Credentials are taken from the SUBSCRIPTION_KEY and ENDPOINT environment
variables, which may also be set in a .env file.

Example:
  azure-ocr read --image ./fixtures/sample.png
  azure-ocr read --url https://example.com/receipt.jpg --format hocr -o receipt.hocr`,
	RunE: runRead,
}

var (
	readURL          string
	readImage        string
	readFormat       string
	readOutput       string
	readLanguage     string
	readPages        string
	readModelVersion string
	readReadingOrder string
	readPollInterval time.Duration
	readMaxAttempts  int
	readTimeout      time.Duration
	readRateLimit    float64
)

func init() {
	RootCmd.AddCommand(readCmd)

	readCmd.Flags().StringVar(&readURL, "url", "", "URL of a remote image to read")
	readCmd.Flags().StringVar(&readImage, "image", "", "Path to a local image file to read")
	readCmd.Flags().StringVarP(&readFormat, "format", "f", "text", "Output format: "+strings.Join(output.NewDefaultRegistry().List(), ", "))
	readCmd.Flags().StringVarP(&readOutput, "output", "o", "", "Output path for the result (prints to stdout if not specified)")
	readCmd.Flags().StringVar(&readLanguage, "language", "", "BCP-47 language code of the text (auto-detected if not specified)")
	readCmd.Flags().StringVar(&readPages, "pages", "", "Page numbers to process in multi-page documents, e.g. 1-3,5")
	readCmd.Flags().StringVar(&readModelVersion, "model-version", "", "Read model version (uses the service default if not specified)")
	readCmd.Flags().StringVar(&readReadingOrder, "reading-order", "", "Line ordering: basic or natural")
	readCmd.Flags().DurationVar(&readPollInterval, "poll-interval", config.DefaultPollInterval, "Time to wait before each result poll")
	readCmd.Flags().IntVar(&readMaxAttempts, "max-attempts", 0, "Maximum number of result polls (0 polls until the operation finishes)")
	readCmd.Flags().DurationVar(&readTimeout, "timeout", 0, "Deadline for the whole job (0 disables)")
	readCmd.Flags().Float64Var(&readRateLimit, "rate-limit", 0, "Maximum API calls per second (0 disables)")

	readCmd.MarkFlagsMutuallyExclusive("url", "image")
	readCmd.MarkFlagsOneRequired("url", "image")
}

func runRead(cmd *cobra.Command, args []string) error {
	cfg := config.FromEnv()
	cfg.PollInterval = readPollInterval
	cfg.MaxAttempts = readMaxAttempts
	cfg.Timeout = readTimeout
	cfg.RateLimit = readRateLimit

	if err := cfg.Validate(); err != nil {
		return err
	}

	registry := output.NewDefaultRegistry()
	formatter, err := registry.Get(readFormat)
	if err != nil {
		return err
	}

	client, err := computervision.New(cfg.Endpoint, computervision.WithSubscriptionKey(cfg.SubscriptionKey))
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	reader := limiter.NewReader(limiter.PerSecond(cfg.RateLimit), client)

	var out io.Writer = cmd.OutOrStdout()
	progress := out

	// the file is only written once the job has succeeded
	var result bytes.Buffer
	if readOutput != "" {
		out = &result
	} else if formatter.Name() != "text" {
		// keep structured output parseable
		progress = cmd.ErrOrStderr()
	}

	ctx := cmd.Context()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	runner := ocr.NewRunner(reader,
		ocr.WithOutput(out),
		ocr.WithProgress(progress),
		ocr.WithFormatter(formatter),
		ocr.WithPollInterval(cfg.PollInterval),
		ocr.WithMaxAttempts(cfg.MaxAttempts),
		ocr.WithReadOptions(&computervision.ReadOptions{
			Language:     readLanguage,
			Pages:        readPages,
			ModelVersion: readModelVersion,
			ReadingOrder: readReadingOrder,
		}),
	)

	if readURL != "" {
		err = runner.ReadFromRemote(ctx, readURL)
	} else {
		err = runner.ReadFromLocal(ctx, readImage)
	}
	if err != nil {
		return utils.MaskSensitiveError(err)
	}

	if readOutput != "" {
		if err := os.WriteFile(readOutput, result.Bytes(), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		slog.Info("Read result written", "path", readOutput, "format", formatter.Name())
	}

	return nil
}
