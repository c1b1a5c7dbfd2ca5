package astgen

import (
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/teranos/astgen/errors"
)

// Formatter runs a backend's formatting command on a written file.
// Formatting is best effort: the engine logs a failure as a warning and
// keeps the unformatted file. An unformatted but correct file is an
// acceptable outcome; a truncated one is not.
type Formatter interface {
	Format(cmdTemplate, path string) error
}

// ExecFormatter launches the command template as an external process with
// the file path appended as its sole argument. Formatter output is captured
// only to enrich the warning log line; it is never parsed.
type ExecFormatter struct{}

func (ExecFormatter) Format(cmdTemplate, path string) error {
	if cmdTemplate == "" {
		return nil
	}

	argv, err := shellquote.Split(cmdTemplate)
	if err != nil {
		return errors.Wrapf(err, "invalid format command %q", cmdTemplate)
	}
	if len(argv) == 0 {
		return nil
	}

	argv = append(argv, path)
	out, err := exec.Command(argv[0], argv[1:]...).CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, "%s: %s", argv[0], strings.TrimSpace(string(out)))
	}
	return nil
}

// NopFormatter disables formatting entirely (tests, --no-format).
type NopFormatter struct{}

func (NopFormatter) Format(string, string) error { return nil }
