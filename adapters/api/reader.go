package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/tidwall/gjson"

	"statcalc/internal"
	"statcalc/internal/errors"
)

// JSONReader reads values from a JSON array in a file or behind a URL
type JSONReader struct {
	source     *JSONSource
	httpClient *http.Client
	logger     *internal.Logger
}

// NewJSONReader creates a new reader for a JSON source
func NewJSONReader(source *JSONSource) *JSONReader {
	return &JSONReader{
		source: source,
		httpClient: &http.Client{
			Timeout: source.Timeout,
		},
		logger: internal.DefaultLogger.With("JSONReader"),
	}
}

// WithHTTPClient swaps the client used for remote sources
func (r *JSONReader) WithHTTPClient(client *http.Client) *JSONReader {
	r.httpClient = client
	return r
}

// Name describes the source in error messages
func (r *JSONReader) Name() string {
	if r.source.DataPath == "" {
		return r.source.Location
	}
	return fmt.Sprintf("%s at %q", r.source.Location, r.source.DataPath)
}

// Tokens returns the array elements as text in document order. Numbers keep
// their literal form and strings their content, so the parser sees exactly
// what was written; null elements become empty tokens.
func (r *JSONReader) Tokens(ctx context.Context) ([]string, error) {
	if err := r.source.Validate(); err != nil {
		return nil, errors.ConfigInvalid(err.Error())
	}

	startTime := time.Now()
	body, err := r.load(ctx)
	if err != nil {
		return nil, errors.SourceError(r.Name(), err)
	}

	tokens, err := r.extract(body)
	if err != nil {
		return nil, errors.SourceError(r.Name(), err)
	}

	r.logger.Debug("read %d values from %s in %.2fms", len(tokens), r.source.Location,
		float64(time.Since(startTime).Nanoseconds())/1e6)
	return tokens, nil
}

func (r *JSONReader) load(ctx context.Context) ([]byte, error) {
	if r.source.IsRemote() {
		return r.fetch(ctx)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(r.source.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to open JSON file: %w", err)
	}
	defer f.Close()
	return r.readLimited(f)
}

// fetch performs the GET request with the configured headers and auth
func (r *JSONReader) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.source.Location, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range r.source.Headers {
		req.Header.Set(k, v)
	}
	switch r.source.AuthMethod {
	case "bearer":
		req.Header.Set("Authorization", "Bearer "+r.source.AuthToken)
	case "api_key":
		req.Header.Set("X-API-Key", r.source.AuthToken)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := r.readLimited(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.ExternalServiceError(req.URL.Host,
			fmt.Errorf("source returned status %d: %s", resp.StatusCode, string(body)))
	}
	return body, nil
}

func (r *JSONReader) readLimited(rd io.Reader) ([]byte, error) {
	if r.source.MaxBytes <= 0 {
		return io.ReadAll(rd)
	}
	body, err := io.ReadAll(io.LimitReader(rd, r.source.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	if int64(len(body)) > r.source.MaxBytes {
		return nil, fmt.Errorf("document exceeds %d bytes", r.source.MaxBytes)
	}
	return body, nil
}

// extract locates the array with gjson and flattens it to tokens
func (r *JSONReader) extract(body []byte) ([]string, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid JSON document")
	}

	var result gjson.Result
	if r.source.DataPath == "" {
		result = gjson.ParseBytes(body)
	} else {
		result = gjson.GetBytes(body, r.source.DataPath)
		if !result.Exists() {
			return nil, fmt.Errorf("data path '%s' not found in document", r.source.DataPath)
		}
	}
	if !result.IsArray() {
		return nil, fmt.Errorf("data path '%s' is not an array", r.source.DataPath)
	}

	elements := result.Array()
	tokens := make([]string, 0, len(elements))
	for _, el := range elements {
		switch el.Type {
		case gjson.String:
			tokens = append(tokens, el.Str)
		case gjson.Null:
			tokens = append(tokens, "")
		default:
			tokens = append(tokens, el.Raw)
		}
	}
	return tokens, nil
}
