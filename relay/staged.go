package relay

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/skillsenselab/uploadrelay/logger"
)

// StagedFile is an uploaded file written to the local temp directory for
// the duration of one request. Remove is idempotent and must run on every
// request outcome.
type StagedFile struct {
	// Path is the absolute location of the staged file.
	Path string
	// Size is the staged payload length in bytes.
	Size int64

	removed bool
	log     *logger.Logger
}

// Stage copies the uploaded file to the OS temp directory under a random
// name. The original filename never touches the filesystem.
func Stage(fh *multipart.FileHeader, log *logger.Logger) (*StagedFile, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("relay: opening upload: %w", err)
	}
	defer src.Close()

	path := filepath.Join(os.TempDir(), uuid.New().String())
	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("relay: staging upload: %w", err)
	}

	size, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("relay: staging upload: %w", err)
	}

	return &StagedFile{Path: path, Size: size, log: log}, nil
}

// Open returns a reader over the staged bytes. The caller closes it.
func (s *StagedFile) Open() (*os.File, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("relay: reading staged file: %w", err)
	}
	return f, nil
}

// Remove deletes the staged file. Safe to call more than once; a failed
// removal is logged and never surfaces to the caller.
func (s *StagedFile) Remove() {
	if s.removed {
		return
	}
	s.removed = true
	if err := os.Remove(s.Path); err != nil && !os.IsNotExist(err) {
		s.log.WithError(err).Warn("failed to remove staged file", logger.Fields(
			"path", s.Path,
		))
	}
}
