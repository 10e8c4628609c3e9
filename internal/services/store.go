package services

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/soundgrid/sequencer-backend/internal/platform/apierr"
	"github.com/soundgrid/sequencer-backend/internal/platform/logger"
)

// StoredFile describes where an uploaded sample landed on disk.
type StoredFile struct {
	ID            uuid.UUID
	FilePath      string
	FileExtension string
}

// FileStore persists uploaded sample files on local disk and serves as the
// counterpart of the static /samples route.
type FileStore interface {
	Store(filename string, content io.Reader) (*StoredFile, error)
	Remove(url string) error
}

type localFileStore struct {
	sampleDir string
	staticDir string
	log       *logger.Logger
}

func NewLocalFileStore(sampleDir, staticDir string, baseLog *logger.Logger) FileStore {
	storeLog := baseLog.With("service", "FileStore")
	return &localFileStore{
		sampleDir: sampleDir,
		staticDir: staticDir,
		log:       storeLog,
	}
}

// Store streams the upload to "<sampleDir>/<uuid>.<ext>". The extension is
// the segment after the first dot, lowercased; files without one are stored
// under the bare UUID. The sample dir is created when absent; stream errors
// propagate and abort the store.
func (fs *localFileStore) Store(filename string, content io.Reader) (*StoredFile, error) {
	parts := strings.Split(filename, ".")
	fileExtension := ""
	if len(parts) > 1 {
		fileExtension = strings.ToLower(parts[1])
	}

	id := uuid.New()

	name := id.String()
	if fileExtension != "" {
		name = name + "." + fileExtension
	}
	filePath := filepath.Join(fs.sampleDir, name)

	if err := os.MkdirAll(fs.sampleDir, 0o755); err != nil {
		return nil, apierr.FileSystem(err)
	}

	out, err := os.Create(filePath)
	if err != nil {
		return nil, apierr.FileSystem(err)
	}
	defer out.Close()

	if _, err := io.Copy(out, content); err != nil {
		// Do not leave a truncated sample behind.
		_ = os.Remove(filePath)
		return nil, apierr.FileSystem(err)
	}

	fs.log.Debug("Stored sample file", "path", filePath)
	return &StoredFile{ID: id, FilePath: filePath, FileExtension: fileExtension}, nil
}

// Remove deletes the file backing the given public URL.
func (fs *localFileStore) Remove(url string) error {
	filePath := filepath.Join(fs.staticDir, filepath.FromSlash(strings.TrimPrefix(url, "/")))
	if err := os.Remove(filePath); err != nil {
		return apierr.FileSystem(err)
	}
	return nil
}
