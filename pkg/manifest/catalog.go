package manifest

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/promakler/sitekit/pkg/utils/fileutils"
	"github.com/tdewolff/minify/v2"
	minhtml "github.com/tdewolff/minify/v2/html"

	gm "github.com/yuin/goldmark"
	gmext "github.com/yuin/goldmark/extension"
	gmparse "github.com/yuin/goldmark/parser"
)

var catalogPage = template.Must(template.New("catalog").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{ .Title }}</title>
<style>
body { font-family: system-ui, sans-serif; margin: 2rem auto; max-width: 60rem; }
table { border-collapse: collapse; width: 100%; }
th, td { border-bottom: 1px solid #ddd; padding: .4rem .6rem; text-align: left; }
code { background: #f4f4f4; padding: 0 .2rem; }
</style>
</head>
<body>
{{ .Body }}
</body>
</html>
`))

// Markdown renders the manifest as a markdown document with one table row
// per section type.
func (m *Manifest) Markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", m.TemplateName)
	fmt.Fprintf(&b, "Template `%s` provides %d section types.\n\n", m.TemplateID, len(m.Sections))
	b.WriteString("| Section | Default | Variants |\n")
	b.WriteString("|---|---|---|\n")

	for _, s := range m.Sections {
		names := make([]string, len(s.Variants))
		for i, v := range s.Variants {
			names[i] = fmt.Sprintf("`%s` (%s)", v.ID, escapeCell(v.Name))
		}
		def := "-"
		if s.DefaultVariant != "" {
			def = "`" + s.DefaultVariant + "`"
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", escapeCell(s.Type), def, strings.Join(names, ", "))
	}

	return b.String()
}

// RenderCatalog writes a minified standalone HTML page describing m.
func (m *Manifest) RenderCatalog(w io.Writer) error {
	md := gm.New(
		gm.WithExtensions(gmext.GFM),
		gm.WithParserOptions(gmparse.WithAutoHeadingID()),
	)

	var body bytes.Buffer
	if err := md.Convert([]byte(m.Markdown()), &body); err != nil {
		return fmt.Errorf("render catalog markdown: %w", err)
	}

	mini := minify.New()
	mini.AddFunc("text/html", minhtml.Minify)

	mw := mini.Writer("text/html", w)
	if err := catalogPage.Execute(mw, map[string]any{
		"Title": m.TemplateName + " sections",
		"Body":  template.HTML(body.String()),
	}); err != nil {
		_ = mw.Close()
		return err
	}
	return mw.Close()
}

// WriteCatalog renders the catalog to path atomically.
func (m *Manifest) WriteCatalog(path string) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}
	return fileutils.AtomicEdit(path, m.RenderCatalog)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
