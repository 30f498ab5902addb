package computervision

import "time"

// OperationStatus is the state of an asynchronous Read operation
type OperationStatus string

const (
	OperationStatusNotStarted OperationStatus = "notStarted"
	OperationStatusRunning    OperationStatus = "running"
	OperationStatusFailed     OperationStatus = "failed"
	OperationStatusSucceeded  OperationStatus = "succeeded"
)

// Terminal reports whether no further status change can occur
func (s OperationStatus) Terminal() bool {
	return s == OperationStatusSucceeded || s == OperationStatusFailed
}

// ReadOperationResult is the body returned by read/analyzeResults/{operationId}
type ReadOperationResult struct {
	Status              OperationStatus `json:"status" yaml:"status"`
	CreatedDateTime     time.Time       `json:"createdDateTime" yaml:"createdDateTime"`
	LastUpdatedDateTime time.Time       `json:"lastUpdatedDateTime" yaml:"lastUpdatedDateTime"`
	AnalyzeResult       *AnalyzeResult  `json:"analyzeResult,omitempty" yaml:"analyzeResult,omitempty"`
}

type AnalyzeResult struct {
	Version      string       `json:"version" yaml:"version"`
	ModelVersion string       `json:"modelVersion" yaml:"modelVersion"`
	ReadResults  []ReadResult `json:"readResults" yaml:"readResults"`
}

// ReadResult holds the recognized lines of one page
type ReadResult struct {
	Page     int     `json:"page" yaml:"page"`
	Language string  `json:"language,omitempty" yaml:"language,omitempty"`
	Angle    float64 `json:"angle" yaml:"angle"`
	Width    float64 `json:"width" yaml:"width"`
	Height   float64 `json:"height" yaml:"height"`
	Unit     string  `json:"unit" yaml:"unit"`
	Lines    []Line  `json:"lines" yaml:"lines"`
}

type Line struct {
	Language    string      `json:"language,omitempty" yaml:"language,omitempty"`
	BoundingBox []float64   `json:"boundingBox" yaml:"boundingBox"`
	Appearance  *Appearance `json:"appearance,omitempty" yaml:"appearance,omitempty"`
	Text        string      `json:"text" yaml:"text"`
	Words       []Word      `json:"words" yaml:"words"`
}

type Appearance struct {
	Style Style `json:"style" yaml:"style"`
}

type Style struct {
	Name       string  `json:"name" yaml:"name"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// Word is a single recognized word. BoundingBox is a clockwise quadrangle
// starting at the top-left corner: [x1, y1, x2, y2, x3, y3, x4, y4].
type Word struct {
	BoundingBox []float64 `json:"boundingBox" yaml:"boundingBox"`
	Text        string    `json:"text" yaml:"text"`
	Confidence  float64   `json:"confidence" yaml:"confidence"`
}

// ReadOptions are the optional query parameters of read/analyze
type ReadOptions struct {
	// Language is a BCP-47 code; empty lets the service auto-detect.
	Language string
	// Pages selects pages of multi-page input, e.g. "1-3,5".
	Pages        string
	ModelVersion string
	// ReadingOrder is "basic" or "natural".
	ReadingOrder string
}

type readRequest struct {
	URL string `json:"url"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
