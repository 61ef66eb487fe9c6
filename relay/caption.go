package relay

import (
	"fmt"
	"strings"
	"time"

	"github.com/skillsenselab/uploadrelay/auth"
	"github.com/skillsenselab/uploadrelay/util"
)

// BuildCaption renders the human-readable caption attached to a forwarded
// document: who uploaded it, where it belongs and how big it is.
func BuildCaption(id *auth.Identity, req *UploadRequest, size int64, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Uploaded by: %s (%s)\n", id.DisplayName(), id.UID)
	if req.Folder != "" {
		fmt.Fprintf(&b, "Folder: %s\n", req.Folder)
	}
	fmt.Fprintf(&b, "File: %s\n", req.EffectiveName())
	fmt.Fprintf(&b, "Size: %s\n", util.FormatSize(size))
	fmt.Fprintf(&b, "Date: %s", now.UTC().Format(time.RFC3339))
	return b.String()
}
