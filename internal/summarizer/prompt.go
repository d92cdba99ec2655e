package summarizer

import "fmt"

const instructionTemplate = `Summarize the text provided by the user.

Rules:
- Write the summary in %s.
- Use between %d and %d words.
- Keep only the core ideas and critical facts (names, numbers, dates).
- Output only the summary as plain prose, with no title, list or preamble.`

// instruction renders the system prompt used by the chat-style backends,
// which have no native length parameters.
func instruction(req Request) string {
	return fmt.Sprintf(instructionTemplate, req.Language, req.MinLength, req.MaxLength)
}
