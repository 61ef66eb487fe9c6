package relay

// UploadResult is the success payload returned to the caller.
type UploadResult struct {
	Success   bool   `json:"success"`
	FileID    string `json:"fileId"`
	MessageID int64  `json:"messageId"`
	FileName  string `json:"fileName"`
	Size      int64  `json:"size"`
}
