package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/uzresk/azure-ocr-samples/pkg/computervision"
)

// Text prints every word with its confidence and bounding box,
// followed by the text of the page, one page at a time.
type Text struct{}

func (Text) Name() string {
	return "text"
}

func (Text) Format(w io.Writer, result *computervision.ReadOperationResult) error {
	if result == nil {
		return ErrEmptyResult
	}
	if result.AnalyzeResult == nil {
		return nil
	}

	for _, page := range result.AnalyzeResult.ReadResults {
		if _, err := fmt.Fprintf(w, "\nPrinting Read results for page %d\n", page.Page); err != nil {
			return err
		}

		var text strings.Builder
		for _, line := range page.Lines {
			for _, word := range line.Words {
				if _, err := fmt.Fprintf(w, "%s\tConfidence[%s] BoundingBox%s\n",
					word.Text, formatFloat(word.Confidence), formatBoundingBox(word.BoundingBox)); err != nil {
					return err
				}
			}
			text.WriteString(line.Text)
			text.WriteString("\n")
		}

		if _, err := fmt.Fprintln(w, text.String()); err != nil {
			return err
		}
	}

	return nil
}

func formatBoundingBox(box []float64) string {
	coords := make([]string, len(box))
	for i, c := range box {
		coords[i] = formatFloat(c)
	}
	return "[" + strings.Join(coords, ", ") + "]"
}

// formatFloat prints whole numbers with one decimal, e.g. 27.0 and 1.0,
// matching the service's reference samples
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
