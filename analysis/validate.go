package analysis

import "fmt"

// Default write-up size constraints.
const (
	DefaultMaxWords = 150
	DefaultMaxLines = 10
)

// ValidationResult reports write-up constraint checks. Errors make the
// write-up invalid; warnings are advisory only.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Warnings []string `json:"warnings"`
	Errors   []string `json:"errors"`
}

// ValidateWriteup checks a write-up against word and line limits. Only the
// word-count ceiling is a hard failure; long write-ups and thin insight
// coverage produce warnings.
func ValidateWriteup(w Writeup, maxWords, maxLines int) ValidationResult {
	result := ValidationResult{
		Valid:    true,
		Warnings: []string{},
		Errors:   []string{},
	}

	if w.WordCount > maxWords {
		result.Valid = false
		result.Errors = append(result.Errors,
			fmt.Sprintf("Word count (%d) exceeds limit (%d)", w.WordCount, maxWords))
	}

	if w.LineCount > maxLines {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Line count (%d) exceeds recommended limit (%d)", w.LineCount, maxLines))
	}

	if w.NumInsights < 3 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Only %d insights generated (expected 5)", w.NumInsights))
	}

	return result
}
