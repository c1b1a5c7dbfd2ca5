package commands

import (
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/astgen"
	"github.com/teranos/astgen/config"
	"github.com/teranos/astgen/errors"
	"github.com/teranos/astgen/golang"
	"github.com/teranos/astgen/python"
	"github.com/teranos/astgen/schema"
	"github.com/teranos/astgen/typescript"
)

var (
	generateLanguages []string
	generateOutput    string
	generateNoFormat  bool
)

// registeredBackends constructs every known backend over the schema.
// Declaration order is the default generation order.
func registeredBackends(sch *schema.Schema) []astgen.Backend {
	return []astgen.Backend{
		golang.NewGenerator(sch),
		typescript.NewGenerator(sch),
		python.NewGenerator(sch),
	}
}

// GenerateCmd regenerates the syntax-tree source files.
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate node types and visitors for the selected languages",
	Long: `Generate syntax-tree node definitions and visitor dispatch code.

Each (language, family) pair produces one file, written whole and then run
through the language's formatter. A formatter failure keeps the unformatted
file and only logs a warning; schema defects abort the affected family
before anything is written.

Settings can also come from astgen.toml or ASTGEN_* environment variables;
flags win.`,
	RunE: runGenerate,
}

func init() {
	GenerateCmd.Flags().StringSliceVarP(&generateLanguages, "languages", "l", nil,
		"Languages to generate for (default: all registered)")
	GenerateCmd.Flags().StringVarP(&generateOutput, "output", "o", "",
		"Output root directory (default: current directory)")
	GenerateCmd.Flags().BoolVar(&generateNoFormat, "no-format", false,
		"Skip formatter invocation on generated files")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	languages := generateLanguages
	if len(languages) == 0 {
		languages = cfg.Languages
	}
	output := generateOutput
	if output == "" {
		output = cfg.Output
	}

	sch := schema.Lox()
	backends, err := selectBackends(sch, languages)
	if err != nil {
		return err
	}

	opts := astgen.Options{
		OutputRoot:      output,
		FormatOverrides: cfg.FormatCmds,
	}
	if generateNoFormat || cfg.NoFormat {
		opts.Formatter = astgen.NopFormatter{}
	}

	for _, b := range backends {
		pterm.Info.Printf("Generating %s to %s/ ...\n", b.Language(), b.OutputDir())
	}

	results := astgen.GenerateAll(sch, backends, opts)
	for _, r := range results {
		if r.Err != nil {
			pterm.Error.Printf("✗ %s %s: %v\n", r.Language, r.Family, r.Err)
			continue
		}
		pterm.Success.Printf("✓ Generated %s\n", r.Path)
	}

	return astgen.CombineResults(results)
}

// selectBackends filters the registry by the requested language names.
func selectBackends(sch *schema.Schema, languages []string) ([]astgen.Backend, error) {
	all := registeredBackends(sch)
	if len(languages) == 0 {
		return all, nil
	}

	byName := make(map[string]astgen.Backend, len(all))
	for _, b := range all {
		byName[b.Language()] = b
	}

	selected := make([]astgen.Backend, 0, len(languages))
	for _, lang := range languages {
		b, ok := byName[normalizeLanguage(lang)]
		if !ok {
			return nil, errors.Newf("unknown language: %s (supported: go, typescript, python)", lang)
		}
		selected = append(selected, b)
	}
	return selected, nil
}

func normalizeLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	switch lang {
	case "golang":
		return "go"
	case "ts":
		return "typescript"
	case "py":
		return "python"
	default:
		return lang
	}
}
