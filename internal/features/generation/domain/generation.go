package domain

// GenerationRequest is the body of a document generation call.
type GenerationRequest struct {
	Prompt string `json:"prompt" binding:"required"`
	Pages  int    `json:"pages" binding:"required,gt=0"`
}

// GenerationResult is a formatted document ready for the editor.
type GenerationResult struct {
	FormattedText string `json:"formattedText"`
	Title         string `json:"title"`
}

const (
	DefaultTitle  = "Generated Document"
	SynopsisTitle = "Generated Synopsis"

	// SynopsisKeyword in a prompt selects the fixed synopsis outline.
	SynopsisKeyword = "synopsis"
)

// SynopsisSections is the fixed outline of a synopsis, in order.
var SynopsisSections = []string{
	"Introduction",
	"Problem Statement",
	"Literature Review",
	"Proposed Solution",
	"Project Scope",
	"Modules and Functionalities",
	"Expected Results",
	"Conclusion",
}
