package application

import "fmt"

const instructionTemplate = `Generate a well-formatted document with HTML tags for the following prompt: %s.
The document should be approximately %d words long to fill %d A4 pages.
Include a title, introduction, main content with multiple sections, and a conclusion.
Use appropriate HTML tags for formatting and insert <div class="page-break"></div> tag
approximately every %d words to create natural page breaks.
Format the content with proper headings, paragraphs, and lists to ensure good readability.
`

// BuildInstruction renders the model instruction for prompt spanning pages.
func BuildInstruction(prompt string, pages, wordsPerPage int) string {
	return fmt.Sprintf(instructionTemplate, prompt, pages*wordsPerPage, pages, wordsPerPage)
}
