package excel

// Config selects a value column from a spreadsheet or CSV file
type Config struct {
	FilePath string `json:"file_path"`
	Column   string `json:"column"` // header name; empty selects the first column
}

// Enabled reports whether a file was configured
func (c Config) Enabled() bool {
	return c.FilePath != ""
}
