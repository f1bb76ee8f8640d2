// Package filestore keeps tenant attachments on disk under content-hashed
// filenames.
package filestore

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"github.com/pkg/errors"

	"tenant-ledger/internal/apperrors"
	"tenant-ledger/internal/logger"
)

// sniffLen is enough of the file head for filetype to match every type it knows.
const sniffLen = 261

// DefaultMIME is recorded when the content type cannot be detected.
const DefaultMIME = "application/octet-stream"

var (
	ErrFileStore     apperrors.Error = apperrors.New("file storage error").WithTitle("File Error")
	ErrSourceMissing apperrors.Error = ErrFileStore.New("selected file does not exist")
	ErrNotImage      apperrors.Error = ErrFileStore.New("selected file is not an image")
	ErrEmptyFile     apperrors.Error = ErrFileStore.New("selected file is empty")
)

// Stored describes a file written to the store.
type Stored struct {
	Path         string // location on disk, Dir joined with the hashed name
	OriginalName string
	MimeType     string
	Size         int64
}

// Store writes files into Dir. Identical content always lands on the same
// path, so saving a file twice leaves a single copy.
type Store struct {
	Dir          string
	RequireImage bool
	log          logger.Logger
}

func New(dir string, requireImage bool, log logger.Logger) *Store {
	if log == nil {
		log = logger.NewNop()
	}
	return &Store{Dir: dir, RequireImage: requireImage, log: log}
}

// SaveFile copies the file at path into the store.
func (s *Store) SaveFile(path string) (*Stored, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSourceMissing.Msg("file not found: " + path)
		}
		return nil, ErrFileStore.Err(errors.Wrapf(err, "open %s", path))
	}
	defer f.Close()

	return s.Save(filepath.Base(path), f)
}

// Save streams r into the store. name supplies the extension and is kept as
// the original name.
func (s *Store) Save(name string, r io.Reader) (*Stored, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, ErrFileStore.Err(errors.Wrapf(err, "create directory %s", s.Dir))
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, ErrFileStore.Err(errors.Wrapf(err, "read %s", name))
	}
	if n == 0 {
		return nil, ErrEmptyFile.Msg(name + " is empty")
	}
	head = head[:n]

	kind, _ := filetype.Match(head)
	if s.RequireImage && !filetype.IsImage(head) {
		return nil, ErrNotImage.Msg(name + " is not a supported image")
	}

	tmp, err := os.CreateTemp(s.Dir, ".upload-*")
	if err != nil {
		return nil, ErrFileStore.Err(errors.Wrap(err, "create temporary file"))
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	hash := sha256.New()
	size, err := io.Copy(io.MultiWriter(tmp, hash), io.MultiReader(bytes.NewReader(head), r))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, ErrFileStore.Err(errors.Wrapf(err, "copy %s", name))
	}

	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" && kind != filetype.Unknown {
		ext = "." + kind.Extension
	}
	dest := filepath.Join(s.Dir, hex.EncodeToString(hash.Sum(nil))+ext)

	if _, err := os.Stat(dest); err == nil {
		s.log.Debug("FileStore", "content already stored", map[string]interface{}{"path": dest})
	} else if err := os.Rename(tmpName, dest); err != nil {
		return nil, ErrFileStore.Err(errors.Wrapf(err, "move file to %s", dest))
	}

	mime := DefaultMIME
	if kind != filetype.Unknown {
		mime = kind.MIME.Value
	}

	s.log.Info("FileStore", "file stored", map[string]interface{}{
		"original": name,
		"path":     dest,
		"mime":     mime,
		"bytes":    size,
	})

	return &Stored{
		Path:         dest,
		OriginalName: name,
		MimeType:     mime,
		Size:         size,
	}, nil
}

// Exists reports whether a stored path is still present on disk.
func Exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
