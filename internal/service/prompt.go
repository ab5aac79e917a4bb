package service

import "fmt"

const promptTemplate = `Based only on the document text provided, answer the following question. ` +
	`If the answer is not in the text, say so. DOCUMENT TEXT: "%s" QUESTION: "%s"`

// BuildPrompt embeds the full document text and the question in the fixed instruction frame.
// Neither value is escaped or truncated.
func BuildPrompt(docText, question string) string {
	return fmt.Sprintf(promptTemplate, docText, question)
}
