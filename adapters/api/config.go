package api

import (
	"fmt"
	"strings"
)

// Validate checks that the source can be read
func (s *JSONSource) Validate() error {
	if strings.TrimSpace(s.Location) == "" {
		return fmt.Errorf("json source location is required")
	}
	switch s.AuthMethod {
	case "", "none":
	case "bearer", "api_key":
		if s.AuthToken == "" {
			return fmt.Errorf("auth method %q requires a token", s.AuthMethod)
		}
		if !s.IsRemote() {
			return fmt.Errorf("auth method %q only applies to http sources", s.AuthMethod)
		}
	default:
		return fmt.Errorf("unsupported auth method: %s", s.AuthMethod)
	}
	if s.MaxBytes < 0 {
		return fmt.Errorf("max bytes must not be negative")
	}
	return nil
}
