package computervision

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uzresk/azure-ocr-samples/internal/utils"
)

const apiPath = "/vision/v3.2/read"

// APIError is a non-success response from the Computer Vision service
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("computer vision API error: %d %s - %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("computer vision API error: %d - %s", e.StatusCode, e.Message)
}

// Client talks to the Read operations of the Computer Vision REST API
type Client struct {
	client *http.Client

	endpoint string
	key      string
}

// Option configures a Client
type Option func(*Client)

func WithClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

func WithSubscriptionKey(key string) Option {
	return func(c *Client) {
		c.key = key
	}
}

// New creates a client for the given resource endpoint,
// e.g. https://<resource>.cognitiveservices.azure.com
func New(endpoint string, options ...Option) (*Client, error) {
	if endpoint == "" {
		return nil, errors.New("invalid endpoint")
	}

	c := &Client{
		client:   &http.Client{Timeout: 60 * time.Second},
		endpoint: strings.TrimSuffix(endpoint, "/"),
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

// Read submits a remotely hosted image and returns the Operation-Location
// to poll for the result
func (c *Client) Read(ctx context.Context, imageURL string, options *ReadOptions) (string, error) {
	body, err := json.Marshal(readRequest{URL: imageURL})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	return c.analyze(ctx, "application/json", bytes.NewReader(body), options)
}

// ReadInStream submits raw image bytes and returns the Operation-Location
// to poll for the result
func (c *Client) ReadInStream(ctx context.Context, image []byte, options *ReadOptions) (string, error) {
	return c.analyze(ctx, "application/octet-stream", bytes.NewReader(image), options)
}

// GetReadResult fetches the current state of a Read operation
func (c *Client) GetReadResult(ctx context.Context, operationID string) (*ReadOperationResult, error) {
	id, err := uuid.Parse(operationID)
	if err != nil {
		return nil, fmt.Errorf("invalid operation id %q: %w", operationID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+apiPath+"/analyzeResults/"+id.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, convertError(resp)
	}

	var result ReadOperationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode read result: %w", err)
	}

	return &result, nil
}

func (c *Client) analyze(ctx context.Context, contentType string, body io.Reader, options *ReadOptions) (string, error) {
	u, err := url.Parse(c.endpoint + apiPath + "/analyze")
	if err != nil {
		return "", fmt.Errorf("invalid endpoint: %w", err)
	}

	if options != nil {
		query := u.Query()
		if options.Language != "" {
			query.Set("language", options.Language)
		}
		if options.Pages != "" {
			query.Set("pages", options.Pages)
		}
		if options.ModelVersion != "" {
			query.Set("model-version", options.ModelVersion)
		}
		if options.ReadingOrder != "" {
			query.Set("readingOrder", options.ReadingOrder)
		}
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		return "", convertError(resp)
	}

	return resp.Header.Get("Operation-Location"), nil
}

func convertError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body errorResponse
	if err := json.Unmarshal(data, &body); err == nil && body.Error.Message != "" {
		apiErr.Code = body.Error.Code
		apiErr.Message = body.Error.Message
		return apiErr
	}

	if len(data) == 0 {
		apiErr.Message = http.StatusText(resp.StatusCode)
	} else {
		apiErr.Message = utils.TruncateBody(data)
	}

	return apiErr
}
