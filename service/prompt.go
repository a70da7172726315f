package service

import (
	"fmt"
	"strings"

	"github.com/tranvd/ragchat-be/types"
	"github.com/tranvd/ragchat-be/utils"
)

// BuildPrompt assembles the model-facing prompt: the retrieval context
// block first, then the user's message, then one delimited block per
// attachment. Every opened file block has a matching closing marker.
func BuildPrompt(contextText, message string, attachments []types.Attachment) string {
	var b strings.Builder
	if contextText != "" {
		b.WriteString(contextText)
		b.WriteString("\n\n")
	}
	b.WriteString(message)
	for _, attachment := range attachments {
		b.WriteString("\n\n")
		b.WriteString(FormatAttachment(attachment))
	}
	return b.String()
}

// FormatAttachment renders a single attachment as a delimited file
// block. Text attachments carry their content literally; binary ones a
// size summary and a data URI.
func FormatAttachment(attachment types.Attachment) string {
	var b strings.Builder
	switch a := attachment.(type) {
	case types.TextAttachment:
		fmt.Fprintf(&b, "--- File: %s (text/plain) ---\n", a.Name)
		b.WriteString(a.Content)
		fmt.Fprintf(&b, "\n--- End File: %s ---", a.Name)
	case types.BinaryAttachment:
		fmt.Fprintf(&b, "--- File: %s (%s) ---\n", a.Name, a.MimeType)
		fmt.Fprintf(&b, "%s file, %s\n", utils.GetFileCategory(a.MimeType), utils.FormatFileSize(a.Size))
		fmt.Fprintf(&b, "data:%s;base64,%s\n", a.MimeType, a.Content)
		fmt.Fprintf(&b, "--- End File: %s ---", a.Name)
	}
	return b.String()
}
