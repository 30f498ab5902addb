package output

import (
	"errors"
	"io"

	"github.com/uzresk/azure-ocr-samples/pkg/computervision"
)

// ErrEmptyResult is returned when there is no operation result to format
var ErrEmptyResult = errors.New("no read result to format")

// Formatter renders a completed Read operation
type Formatter interface {
	// Name returns the format name used to select the formatter
	Name() string
	// Format writes the result to w
	Format(w io.Writer, result *computervision.ReadOperationResult) error
}

// NewDefaultRegistry returns a registry holding every built-in format
func NewDefaultRegistry() *Registry {
	return NewRegistry(Text{}, JSON{}, YAML{}, HOCR{})
}
