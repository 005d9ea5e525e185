package console

// Raw ANSI Color Codes
const (
	// Reset
	CodeReset = "\033[0m"

	// Foreground
	CodeRed    = "\033[31m"
	CodeGreen  = "\033[32m"
	CodeYellow = "\033[33m"
	CodeBlue   = "\033[34m"
	CodeCyan   = "\033[36m"
)
