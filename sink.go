package astgen

import (
	"os"
	"path/filepath"

	"github.com/teranos/astgen/errors"
)

// Sink receives finished source text. The engine renders a whole family in
// memory before touching the sink, so a schema defect never produces a
// partial file; a sink failure aborts that file only, not sibling units.
type Sink interface {
	WriteFile(path string, content []byte) error
}

// OSSink writes files to the local filesystem, creating parent directories
// as needed.
type OSSink struct{}

func (OSSink) WriteFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "failed to create output directory")
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}
