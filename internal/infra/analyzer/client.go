package analyzer

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/go-resty/resty/v2"

	"happyhour-console/internal/domain/bar"
	"happyhour-console/internal/pkg/config"
	"happyhour-console/internal/pkg/errs"
)

var (
	ErrNotConfigured  = errs.New("analyzer base URL is not configured")
	ErrUpstreamFailed = errs.New("analyzer request failed")
	ErrBadPayload     = errs.New("analyzer returned an unreadable payload")
)

// uploadResponse is the analysis service's envelope. The analysis
// field arrives as a JSON-encoded string, not an object, and needs a
// second decode.
type uploadResponse struct {
	Message  string   `json:"message"`
	Filename string   `json:"filename"`
	Pages    []string `json:"pages"`
	Analysis string   `json:"analysis"`
}

type Client struct {
	http *resty.Client
}

func NewClient(cfg config.AnalyzerConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, ErrNotConfigured
	}

	http := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount)

	return &Client{http: http}, nil
}

// Analyze posts the PDF as multipart form data and decodes the
// happy-hour schedules out of the double-encoded analysis field. Any
// non-2xx answer is a hard failure; the caller decides what a failed
// analysis means for the edit session.
func (c *Client) Analyze(ctx context.Context, filename string, data []byte) (bar.AnalysisResult, error) {
	var out uploadResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetFileReader("file", filename, bytes.NewReader(data)).
		SetResult(&out).
		Post("/upload")
	if err != nil {
		return bar.AnalysisResult{}, errs.Mark(err, ErrUpstreamFailed)
	}
	if resp.IsError() {
		return bar.AnalysisResult{}, errs.Wrap(ErrUpstreamFailed, resp.Status())
	}

	var result bar.AnalysisResult
	if err := json.Unmarshal([]byte(out.Analysis), &result); err != nil {
		return bar.AnalysisResult{}, errs.Mark(err, ErrBadPayload)
	}
	return result, nil
}
