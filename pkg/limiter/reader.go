package limiter

import (
	"context"

	"github.com/uzresk/azure-ocr-samples/pkg/computervision"
	"github.com/uzresk/azure-ocr-samples/pkg/ocr"

	"golang.org/x/time/rate"
)

var _ ocr.Reader = &limitedReader{}

type limitedReader struct {
	limiter *rate.Limiter
	reader  ocr.Reader
}

// NewReader waits on l before every call to r. A nil limiter passes calls
// straight through.
func NewReader(l *rate.Limiter, r ocr.Reader) ocr.Reader {
	return &limitedReader{
		limiter: l,
		reader:  r,
	}
}

// PerSecond returns a limiter allowing n calls per second, or nil when n is
// not positive
func PerSecond(n float64) *rate.Limiter {
	if n <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(n), 1)
}

func (r *limitedReader) Read(ctx context.Context, imageURL string, options *computervision.ReadOptions) (string, error) {
	if err := r.wait(ctx); err != nil {
		return "", err
	}
	return r.reader.Read(ctx, imageURL, options)
}

func (r *limitedReader) ReadInStream(ctx context.Context, image []byte, options *computervision.ReadOptions) (string, error) {
	if err := r.wait(ctx); err != nil {
		return "", err
	}
	return r.reader.ReadInStream(ctx, image, options)
}

func (r *limitedReader) GetReadResult(ctx context.Context, operationID string) (*computervision.ReadOperationResult, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	return r.reader.GetReadResult(ctx, operationID)
}

func (r *limitedReader) wait(ctx context.Context) error {
	if r.limiter == nil {
		return nil
	}
	return r.limiter.Wait(ctx)
}
