package types

type DataResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type AddDocumentResponse struct {
	ID string `json:"id"`
}

type SearchResponse struct {
	Documents []Document `json:"documents"`
	Context   string     `json:"context,omitempty"`
}

type AskAIResponse struct {
	Answer    string     `json:"answer"`
	Documents []Document `json:"documents"`
}

// ProcessFilesResponse reports a file-processing batch. Failures never
// abort sibling files; they are itemized per offending file instead.
type ProcessFilesResponse struct {
	Attachments []Attachment `json:"attachments"`
	Failures    []string     `json:"failures,omitempty"`
}
