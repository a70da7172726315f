package types

type AddDocumentRequest struct {
	Title    string           `json:"title"`
	Content  string           `json:"content"`
	Metadata DocumentMetadata `json:"metadata,omitempty"`
}

type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

type AskAIRequest struct {
	Question string `json:"question"`
}
