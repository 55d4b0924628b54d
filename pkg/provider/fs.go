package provider

import (
	"context"
	"errors"
	"io/fs"
)

// FS serves form definitions from a file system, one file per form. The
// zero extension means form names map to file names verbatim.
type FS struct {
	files fs.FS
	ext   string
}

// NewFS builds a file-system provider. ext, when non-empty, is appended to
// the form name to build the file name ("Event" + ".form" -> "Event.form").
func NewFS(files fs.FS, ext string) *FS {
	return &FS{files: files, ext: ext}
}

// GetForm implements Provider.
func (p *FS) GetForm(ctx context.Context, name string) (string, error) {
	if p.files == nil {
		return "", errors.New("provider: fs is nil")
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	data, err := fs.ReadFile(p.files, name+p.ext)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", err
	}
	return string(data), nil
}
