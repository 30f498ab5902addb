package hocr

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/uzresk/azure-ocr-samples/pkg/computervision"
)

// FromReadResult converts a Read operation result to a complete hOCR document
func FromReadResult(result *computervision.ReadOperationResult) string {
	if result == nil || result.AnalyzeResult == nil {
		return WrapInHOCRDocument("")
	}

	var pages []string
	for _, page := range result.AnalyzeResult.ReadResults {
		pages = append(pages, convertPage(page))
	}

	return WrapInHOCRDocument(strings.Join(pages, "\n"))
}

func convertPage(page computervision.ReadResult) string {
	var b strings.Builder

	// PDF pages are measured in inches; hOCR bboxes are in pixels
	scale := 1.0
	resolution := ""
	if strings.EqualFold(page.Unit, "inch") {
		scale = InchDPI
		resolution = fmt.Sprintf("; scan_res %d %d", InchDPI, InchDPI)
	}

	fmt.Fprintf(&b, "<div class='ocr_page' id='page_%d' title='bbox 0 0 %d %d; ppageno %d%s'>\n",
		page.Page,
		int(math.Ceil(scaleValue(page.Width, scale))), int(math.Ceil(scaleValue(page.Height, scale))),
		page.Page-1,
		resolution)

	for i, line := range page.Lines {
		lineID := fmt.Sprintf("%d_%d", page.Page, i+1)

		b.WriteString("<span class='ocr_line' id='line_" + lineID + "'")
		if box, ok := BoxFromPolygon(scalePolygon(line.BoundingBox, scale)); ok {
			fmt.Fprintf(&b, " title='bbox %d %d %d %d'", box.X0, box.Y0, box.X1, box.Y1)
		}
		b.WriteString(">")

		for j, word := range line.Words {
			if j > 0 {
				b.WriteString(" ")
			}
			b.WriteString(convertWord(word, scale, fmt.Sprintf("%s_%d", lineID, j+1)))
		}

		b.WriteString("</span>\n")
	}

	b.WriteString("</div>")
	return b.String()
}

func convertWord(word computervision.Word, scale float64, id string) string {
	title := fmt.Sprintf("x_wconf %d", int(math.Round(word.Confidence*100)))
	if box, ok := BoxFromPolygon(scalePolygon(word.BoundingBox, scale)); ok {
		title = fmt.Sprintf("bbox %d %d %d %d; %s", box.X0, box.Y0, box.X1, box.Y1, title)
	}

	return fmt.Sprintf("<span class='ocrx_word' id='word_%s' title='%s'>%s</span>", id, title, html.EscapeString(word.Text))
}

// WrapInHOCRDocument wraps page content in a complete hOCR HTML document
func WrapInHOCRDocument(content string) string {
	return fmt.Sprintf(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd">
<html xmlns="http://www.w3.org/1999/xhtml" xml:lang="en" lang="en">
<head>
<title></title>
<meta http-equiv="Content-Type" content="text/html;charset=utf-8" />
<meta name='ocr-system' content='azure-computer-vision-read' />
<meta name='ocr-capabilities' content='ocr_page ocr_line ocrx_word' />
</head>
<body>
%s
</body>
</html>`, content)
}
