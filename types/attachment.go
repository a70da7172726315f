package types

import "io"

const (
	AttachmentTypeText = "textFile"
	AttachmentTypeFile = "file"
)

// Attachment is the transport-ready representation of a processed upload.
// It is one of TextAttachment or BinaryAttachment.
type Attachment interface {
	AttachmentType() string
	FileName() string
}

// TextAttachment carries decoded text content verbatim
type TextAttachment struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

func (a TextAttachment) AttachmentType() string { return AttachmentTypeText }
func (a TextAttachment) FileName() string       { return a.Name }

// BinaryAttachment carries base64-encoded content. IsText is set when a
// text-classified file had to fall back to base64 because its bytes did
// not decode as text.
type BinaryAttachment struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`
	Content  string `json:"content"`
	IsText   bool   `json:"isText"`
}

func (a BinaryAttachment) AttachmentType() string { return AttachmentTypeFile }
func (a BinaryAttachment) FileName() string       { return a.Name }

// FileUpload is the raw file handle handed to the file processor
type FileUpload struct {
	Name     string
	MimeType string
	Size     int64
	Reader   io.Reader
}
