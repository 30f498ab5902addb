package ocr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/uzresk/azure-ocr-samples/pkg/computervision"
	"github.com/uzresk/azure-ocr-samples/pkg/output"
)

var (
	ErrNoOperationID     = errors.New("couldn't extract the operation id from the operation location")
	ErrOperationFailed   = errors.New("read operation failed")
	ErrPollLimitExceeded = errors.New("read operation did not finish")
)

// Reader is the subset of the Computer Vision API the runner needs
type Reader interface {
	Read(ctx context.Context, imageURL string, options *computervision.ReadOptions) (string, error)
	ReadInStream(ctx context.Context, image []byte, options *computervision.ReadOptions) (string, error)
	GetReadResult(ctx context.Context, operationID string) (*computervision.ReadOperationResult, error)
}

// Runner submits Read jobs, waits for them to finish and prints the result
type Runner struct {
	reader Reader

	out      io.Writer
	progress io.Writer

	formatter   output.Formatter
	readOptions *computervision.ReadOptions

	pollInterval time.Duration
	maxAttempts  int

	sleep func(ctx context.Context, d time.Duration) error
}

type Option func(*Runner)

// WithOutput sets where results are written. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.out = w
	}
}

// WithProgress sets where the operation location and polling notices are
// written. Defaults to the result output.
func WithProgress(w io.Writer) Option {
	return func(r *Runner) {
		r.progress = w
	}
}

func WithFormatter(f output.Formatter) Option {
	return func(r *Runner) {
		r.formatter = f
	}
}

func WithReadOptions(options *computervision.ReadOptions) Option {
	return func(r *Runner) {
		r.readOptions = options
	}
}

func WithPollInterval(d time.Duration) Option {
	return func(r *Runner) {
		r.pollInterval = d
	}
}

// WithMaxAttempts bounds the number of result fetches. 0 polls until the
// operation reaches a terminal status or the context is done.
func WithMaxAttempts(n int) Option {
	return func(r *Runner) {
		r.maxAttempts = n
	}
}

func NewRunner(reader Reader, options ...Option) *Runner {
	r := &Runner{
		reader: reader,

		out:       os.Stdout,
		formatter: output.Text{},

		pollInterval: time.Second,
		sleep:        sleepContext,
	}

	for _, option := range options {
		option(r)
	}

	if r.progress == nil {
		r.progress = r.out
	}

	return r
}

// ReadFromRemote recognizes text in the image at imageURL
func (r *Runner) ReadFromRemote(ctx context.Context, imageURL string) error {
	slog.Info("Submitting remote image", "url", imageURL)

	location, err := r.reader.Read(ctx, imageURL, r.readOptions)
	if err != nil {
		return fmt.Errorf("failed to submit image: %w", err)
	}

	return r.pollAndPrint(ctx, location)
}

// ReadFromLocal recognizes text in the image file at path
func (r *Runner) ReadFromLocal(ctx context.Context, path string) error {
	image, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	slog.Info("Submitting local image", "path", path, "size", len(image))

	location, err := r.reader.ReadInStream(ctx, image, r.readOptions)
	if err != nil {
		return fmt.Errorf("failed to submit image: %w", err)
	}

	return r.pollAndPrint(ctx, location)
}

func (r *Runner) pollAndPrint(ctx context.Context, location string) error {
	fmt.Fprintln(r.progress, "Operation Location:"+location)
	fmt.Fprintln(r.progress, "Polling for Read results ...")

	operationID, err := ExtractOperationID(location)
	if err != nil {
		return err
	}

	result, err := r.PollResult(ctx, operationID)
	if err != nil {
		return err
	}

	return r.formatter.Format(r.out, result)
}

// PollResult waits for the operation to reach a terminal status, fetching
// its state once per poll interval. A failed operation returns
// ErrOperationFailed along with the last result.
func (r *Runner) PollResult(ctx context.Context, operationID string) (*computervision.ReadOperationResult, error) {
	for attempt := 1; r.maxAttempts == 0 || attempt <= r.maxAttempts; attempt++ {
		if err := r.sleep(ctx, r.pollInterval); err != nil {
			return nil, err
		}

		result, err := r.reader.GetReadResult(ctx, operationID)
		if err != nil {
			return nil, fmt.Errorf("failed to get read result: %w", err)
		}

		// nil until the service has accepted the request
		if result == nil {
			slog.Debug("Read result not available yet", "attempt", attempt)
			continue
		}

		slog.Debug("Polled read result", "attempt", attempt, "status", result.Status)

		if !result.Status.Terminal() {
			continue
		}

		if result.Status == computervision.OperationStatusFailed {
			return result, fmt.Errorf("%w: operation %s", ErrOperationFailed, operationID)
		}

		return result, nil
	}

	return nil, fmt.Errorf("%w after %d attempts", ErrPollLimitExceeded, r.maxAttempts)
}

// ExtractOperationID returns the last path segment of an Operation-Location
func ExtractOperationID(location string) (string, error) {
	segments := strings.Split(location, "/")
	for len(segments) > 0 && segments[len(segments)-1] == "" {
		segments = segments[:len(segments)-1]
	}

	if len(segments) == 0 {
		return "", ErrNoOperationID
	}

	return segments[len(segments)-1], nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
