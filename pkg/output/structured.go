package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/uzresk/azure-ocr-samples/pkg/computervision"
	"github.com/uzresk/azure-ocr-samples/pkg/hocr"
	yaml "go.yaml.in/yaml/v3"
)

// JSON writes the operation result as indented JSON
type JSON struct{}

func (JSON) Name() string {
	return "json"
}

func (JSON) Format(w io.Writer, result *computervision.ReadOperationResult) error {
	if result == nil {
		return ErrEmptyResult
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// YAML writes the operation result as YAML
type YAML struct{}

func (YAML) Name() string {
	return "yaml"
}

func (YAML) Format(w io.Writer, result *computervision.ReadOperationResult) error {
	if result == nil {
		return ErrEmptyResult
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}

// HOCR writes the operation result as an hOCR document
type HOCR struct{}

func (HOCR) Name() string {
	return "hocr"
}

func (HOCR) Format(w io.Writer, result *computervision.ReadOperationResult) error {
	if result == nil {
		return ErrEmptyResult
	}

	_, err := fmt.Fprintln(w, hocr.FromReadResult(result))
	return err
}
