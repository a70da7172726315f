package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tranvd/ragchat-be/types"
)

func TestBuildPromptContextFirst(t *testing.T) {
	prompt := BuildPrompt("Context from 1 relevant document(s):\n\nDocument 1 (Go):\nbody", "what is Go?", nil)

	assert.True(t, strings.HasPrefix(prompt, "Context from 1 relevant document(s):"))
	assert.True(t, strings.HasSuffix(prompt, "what is Go?"))
	assert.Contains(t, prompt, "body\n\nwhat is Go?")
}

func TestBuildPromptNoContext(t *testing.T) {
	prompt := BuildPrompt("", "plain question", nil)
	assert.Equal(t, "plain question", prompt)
}

func TestBuildPromptAttachmentBlocks(t *testing.T) {
	attachments := []types.Attachment{
		types.TextAttachment{Type: types.AttachmentTypeText, Name: "a.txt", Content: "alpha"},
		types.BinaryAttachment{
			Type:     types.AttachmentTypeFile,
			Name:     "pic.png",
			MimeType: "image/png",
			Size:     2048,
			Content:  "AAAA",
		},
	}

	prompt := BuildPrompt("", "look at these", attachments)

	// every opened block is closed
	assert.Equal(t, 2, strings.Count(prompt, "--- File: "))
	assert.Equal(t, 2, strings.Count(prompt, "--- End File: "))
	assert.Contains(t, prompt, "--- File: a.txt (text/plain) ---\nalpha\n--- End File: a.txt ---")
	assert.Less(t, strings.Index(prompt, "look at these"), strings.Index(prompt, "--- File: a.txt"))
	assert.Less(t, strings.Index(prompt, "--- End File: a.txt"), strings.Index(prompt, "--- File: pic.png"))
}

func TestFormatAttachmentText(t *testing.T) {
	block := FormatAttachment(types.TextAttachment{
		Type:    types.AttachmentTypeText,
		Name:    "notes.md",
		Content: "# heading",
	})

	assert.Equal(t, "--- File: notes.md (text/plain) ---\n# heading\n--- End File: notes.md ---", block)
}

func TestFormatAttachmentBinary(t *testing.T) {
	block := FormatAttachment(types.BinaryAttachment{
		Type:     types.AttachmentTypeFile,
		Name:     "pic.png",
		MimeType: "image/png",
		Size:     1536,
		Content:  "iVBORw0KGgo=",
	})

	assert.Contains(t, block, "--- File: pic.png (image/png) ---")
	assert.Contains(t, block, "Image file, 1.5 KB")
	assert.Contains(t, block, "data:image/png;base64,iVBORw0KGgo=")
	assert.True(t, strings.HasSuffix(block, "--- End File: pic.png ---"))
}
