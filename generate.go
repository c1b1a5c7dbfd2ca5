package astgen

import (
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/teranos/astgen/errors"
	"github.com/teranos/astgen/logger"
	"github.com/teranos/astgen/schema"
)

// Options configures a generation run. The zero value writes to the current
// directory through the OS sink with real formatter invocation.
type Options struct {
	// OutputRoot is prepended to every backend's OutputDir.
	OutputRoot string

	// Sink receives finished files. Defaults to OSSink.
	Sink Sink

	// Formatter runs each backend's FormatCmd. Defaults to ExecFormatter.
	Formatter Formatter

	// FormatOverrides replaces a backend's FormatCmd, keyed by language.
	// An empty-string override disables formatting for that language.
	FormatOverrides map[string]string

	// Log defaults to the global logger.
	Log *zap.SugaredLogger
}

func (o Options) sink() Sink {
	if o.Sink != nil {
		return o.Sink
	}
	return OSSink{}
}

func (o Options) formatter() Formatter {
	if o.Formatter != nil {
		return o.Formatter
	}
	return ExecFormatter{}
}

func (o Options) log() *zap.SugaredLogger {
	if o.Log != nil {
		return o.Log
	}
	return logger.Logger
}

func (o Options) formatCmd(b Backend) string {
	if cmd, ok := o.FormatOverrides[b.Language()]; ok {
		return cmd
	}
	return b.FormatCmd()
}

// Generate emits one family for one backend and returns the written path.
//
// The orchestration is fixed: validate the family, probe every type mapping,
// render the header, the family interface, the node definitions in schema
// order and finally the visitor surface, write the finished text through the
// sink, then run the formatter. Validation and mapping errors abort before
// any output byte exists; only a formatter failure is tolerated (logged,
// file kept).
func Generate(sch *schema.Schema, b Backend, fam *schema.Family, opts Options) (string, error) {
	if err := schema.ValidateFamily(sch, fam); err != nil {
		return "", err
	}
	if err := probeMappings(b.Mapper(), fam); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(b.Header(fam))

	text, err := b.FamilyInterface(fam)
	if err != nil {
		return "", errors.Wrapf(err, "family interface for %s", fam.Name)
	}
	sb.WriteString(text)

	for i := range fam.Nodes {
		node := &fam.Nodes[i]
		text, err := b.NodeDefinition(fam, node)
		if err != nil {
			return "", errors.Wrapf(err, "node %s%s", node.Name, fam.Name)
		}
		sb.WriteString(text)
	}

	text, err = b.VisitorSurface(fam, fam.Nodes)
	if err != nil {
		return "", errors.Wrapf(err, "visitor surface for %s", fam.Name)
	}
	sb.WriteString(text)

	path := filepath.Join(opts.OutputRoot, b.OutputDir(),
		strings.ToLower(fam.Name)+"."+b.FileExtension())
	if err := opts.sink().WriteFile(path, []byte(sb.String())); err != nil {
		return "", err
	}

	if err := opts.formatter().Format(opts.formatCmd(b), path); err != nil {
		opts.log().Warnw("formatter failed, keeping unformatted file",
			"language", b.Language(), "path", path, "error", err)
	}

	return path, nil
}

// probeMappings resolves every result kind and every field type up front so
// an unmapped abstract type fails the family before emission starts.
func probeMappings(m TypeMapper, fam *schema.Family) error {
	for _, kind := range fam.Results {
		if _, err := m.Result(fam, kind); err != nil {
			return err
		}
	}
	for i := range fam.Nodes {
		for _, field := range fam.Nodes[i].Fields {
			if _, err := m.Map(fam, field.Type); err != nil {
				return errors.Wrapf(err, "node %s: field %s", fam.Nodes[i].Name, field.Name)
			}
		}
	}
	return nil
}

// UnitResult reports the outcome of one (backend, family) unit.
type UnitResult struct {
	Language string
	Family   string
	Path     string
	Err      error
}

// GenerateAll runs every (backend, family) unit concurrently. Units read
// the same immutable schema and write distinct paths, so concurrent runs
// produce the same bytes as sequential ones. One unit's failure never
// stops another: all units run to completion and each reports its own
// outcome. Results come back in deterministic (backend, family) order.
func GenerateAll(sch *schema.Schema, backends []Backend, opts Options) []UnitResult {
	results := make([]UnitResult, len(backends)*len(sch.Families))

	var wg sync.WaitGroup
	for bi, b := range backends {
		for fi, fam := range sch.Families {
			wg.Add(1)
			go func(idx int, b Backend, fam *schema.Family) {
				defer wg.Done()
				path, err := Generate(sch, b, fam, opts)
				results[idx] = UnitResult{
					Language: b.Language(),
					Family:   fam.Name,
					Path:     path,
					Err:      err,
				}
				if err != nil {
					opts.log().Errorw("generation failed",
						"language", b.Language(), "family", fam.Name, "error", err)
					return
				}
				opts.log().Infow("generated",
					"language", b.Language(), "family", fam.Name, "path", path)
			}(bi*len(sch.Families)+fi, b, fam)
		}
	}
	wg.Wait()

	return results
}

// CombineResults folds unit errors into one error, nil when all succeeded.
func CombineResults(results []UnitResult) error {
	var combined error
	for _, r := range results {
		if r.Err != nil {
			combined = errors.CombineErrors(combined,
				errors.Wrapf(r.Err, "%s %s", r.Language, r.Family))
		}
	}
	return combined
}
