// Package relay implements the upload pipeline: authenticate the caller,
// stage the uploaded file, check ownership, forward to the document store
// and map the result. Nothing is persisted locally beyond the lifetime of
// one request.
package relay

import (
	"mime/multipart"
)

// UploadRequest is the multipart form accepted by the upload endpoint.
type UploadRequest struct {
	// File is the uploaded document. Required.
	File *multipart.FileHeader `form:"file"`
	// UserID, when present, must match the authenticated caller's uid.
	UserID string `form:"userId"`
	// FileName overrides the client-supplied filename when set.
	FileName string `form:"fileName"`
	// Folder is a free-form label included in the forwarded caption.
	Folder string `form:"folder"`
}

// EffectiveName returns the filename to present downstream.
func (r *UploadRequest) EffectiveName() string {
	if r.FileName != "" {
		return r.FileName
	}
	if r.File != nil && r.File.Filename != "" {
		return r.File.Filename
	}
	return "upload"
}

// ContentType returns the declared MIME type of the uploaded file.
func (r *UploadRequest) ContentType() string {
	if r.File == nil {
		return ""
	}
	return r.File.Header.Get("Content-Type")
}
