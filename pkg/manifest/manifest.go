package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/promakler/sitekit/pkg/utils/fileutils"
	"github.com/promakler/sitekit/pkg/utils/set"
)

// DefaultVariant is preferred as a section's default when the type has it.
const DefaultVariant = "A"

var ErrInvalidManifest = errors.New("invalid manifest")

// Manifest is the published summary of a template's sections and variants.
type Manifest struct {
	TemplateID   string    `json:"template_id"`
	TemplateName string    `json:"template_name"`
	Sections     []Section `json:"sections"`
}

type Section struct {
	Type           string        `json:"type"`
	DefaultVariant string        `json:"default_variant,omitempty"`
	Variants       []VariantInfo `json:"variants"`
}

type VariantInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Build turns scraped entries into a manifest. Variant keys are de-duplicated
// keeping their first position.
func Build(templateID, templateName string, entries []Entry) *Manifest {
	m := &Manifest{
		TemplateID:   templateID,
		TemplateName: templateName,
		Sections:     make([]Section, 0, len(entries)),
	}

	for _, e := range entries {
		seen := set.New[string]()
		unique := make([]string, 0, len(e.Variants))
		for _, v := range e.Variants {
			if seen.AddNew(v.Key) {
				unique = append(unique, v.Key)
			}
		}

		def := ""
		if seen.Has(DefaultVariant) {
			def = DefaultVariant
		} else if len(unique) > 0 {
			def = unique[0]
		}

		variants := make([]VariantInfo, len(unique))
		for i, id := range unique {
			variants[i] = VariantInfo{ID: id, Name: Title(id)}
		}

		m.Sections = append(m.Sections, Section{
			Type:           e.Type,
			DefaultVariant: def,
			Variants:       variants,
		})
	}

	return m
}

var separators = regexp.MustCompile(`[-_]+`)

// Title turns a variant key into a display name: "split-text-image" becomes
// "Split Text Image".
func Title(id string) string {
	s := separators.ReplaceAllString(id, " ")

	var b strings.Builder
	b.Grow(len(s))
	atWord := true
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]

		word := r < utf8.RuneSelf && (r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r))
		if word && atWord {
			r = unicode.ToUpper(r)
		}
		atWord = !word
		b.WriteRune(r)
	}
	return b.String()
}

// Section returns the section for type t.
func (m *Manifest) Section(t string) (Section, bool) {
	for _, s := range m.Sections {
		if s.Type == t {
			return s, true
		}
	}
	return Section{}, false
}

// Entries converts the manifest back to registry entries, without component names.
func (m *Manifest) Entries() []Entry {
	out := make([]Entry, len(m.Sections))
	for i, s := range m.Sections {
		out[i].Type = s.Type
		for _, v := range s.Variants {
			out[i].Variants = append(out[i].Variants, Variant{Key: v.ID})
		}
	}
	return out
}

// Encode writes m as JSON indented with two spaces, without a trailing
// newline. Characters such as & and < are written literally.
func (m *Manifest) Encode(w io.Writer) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return err
	}
	_, err := w.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
	return err
}

// Write writes m to path atomically, creating parent directories. It reports
// whether the file content changed.
func (m *Manifest) Write(path string) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}
	return fileutils.AtomicEdit(path, m.Encode)
}

// Read loads a manifest from path.
func Read(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidManifest, path, err)
	}
	if m.TemplateID == "" {
		return nil, fmt.Errorf("%w: %s: missing template_id", ErrInvalidManifest, path)
	}
	return &m, nil
}
