package docstore

import "io"

// Document is a payload to forward to the remote API.
type Document struct {
	// Name is the filename presented to the remote API.
	Name string
	// ContentType is the declared MIME type.
	ContentType string
	// Size is the payload length in bytes.
	Size int64
	// Reader provides the payload bytes.
	Reader io.Reader
}

// Upload references a stored object on the remote API.
type Upload struct {
	// FileID is the remote object id.
	FileID string
	// MessageID is the id of the message wrapping the document.
	MessageID int64
}

// sendDocumentResponse is the remote API envelope.
type sendDocumentResponse struct {
	OK          bool           `json:"ok"`
	Description string         `json:"description"`
	Result      *messageResult `json:"result"`
}

type messageResult struct {
	MessageID int64           `json:"message_id"`
	Document  *documentResult `json:"document"`
}

type documentResult struct {
	FileID       string `json:"file_id"`
	FileUniqueID string `json:"file_unique_id"`
	FileName     string `json:"file_name"`
	FileSize     int64  `json:"file_size"`
}
