package api

import (
	"strings"
	"time"
)

// JSONSource locates an array of values inside a JSON document
type JSONSource struct {
	// Location is a file path or an http(s) URL
	Location string `json:"location"`
	// DataPath is a gjson path to the array (e.g. "data.heights" or "rows.#.height").
	// Empty means the document itself is the array.
	DataPath string `json:"data_path"`

	Headers    map[string]string `json:"headers,omitempty"`
	AuthMethod string            `json:"auth_method"` // "none", "bearer", "api_key"
	AuthToken  string            `json:"auth_token,omitempty"`

	Timeout  time.Duration `json:"timeout"`
	MaxBytes int64         `json:"max_bytes"`
}

// DefaultJSONSource returns a source with the standard timeout and size limit
func DefaultJSONSource(location, dataPath string) *JSONSource {
	return &JSONSource{
		Location:   location,
		DataPath:   dataPath,
		AuthMethod: "none",
		Timeout:    30 * time.Second,
		MaxBytes:   10 << 20,
	}
}

// IsRemote reports whether the location is fetched over HTTP
func (s *JSONSource) IsRemote() bool {
	return strings.HasPrefix(s.Location, "http://") || strings.HasPrefix(s.Location, "https://")
}
