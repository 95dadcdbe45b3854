package ports

import "context"

// SourcePort supplies raw value tokens from outside the request body:
// spreadsheet columns and JSON documents.
// Tokens are returned unparsed so validation reports positions uniformly.
type SourcePort interface {
	Name() string
	Tokens(ctx context.Context) ([]string, error)
}
