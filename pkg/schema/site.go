package schema

import (
	"bytes"
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultStylePreset       = "modern"
	DefaultDetailPageVariant = "default"
)

var ErrUnsupportedFormat = errors.New("unsupported site format")

// Site is the root of a site content file.
type Site struct {
	Meta  Meta   `json:"meta"`
	Pages []Page `json:"pages" validate:"required,dive"`
}

type Meta struct {
	Domain             string  `json:"domain" validate:"required"`
	Template           string  `json:"template" validate:"required,oneof=template-a template-b template-c"`
	SectionStylePreset string  `json:"sectionStylePreset" validate:"oneof=modern hauptstadt-classic"`
	DetailPageVariant  string  `json:"detailPageVariant" validate:"oneof=default vo"`
	Brand              Brand   `json:"brand"`
	Contact            Contact `json:"contact"`
}

type Brand struct {
	Name    string `json:"name" validate:"required"`
	Tagline string `json:"tagline,omitempty"`
	Logo    string `json:"logo,omitempty" validate:"omitempty,url"`
	Colors  Colors `json:"colors"`
	Fonts   Fonts  `json:"fonts"`
}

type Colors struct {
	Primary     string `json:"primary" validate:"hexrgb"`
	Secondary   string `json:"secondary" validate:"hexrgb"`
	Accent      string `json:"accent" validate:"hexrgb"`
	AccentLight string `json:"accentLight" validate:"hexrgb"`
}

type Fonts struct {
	Display string `json:"display" validate:"required"`
	Body    string `json:"body" validate:"required"`
}

type Contact struct {
	Phone   string  `json:"phone" validate:"required"`
	Email   string  `json:"email" validate:"required,email"`
	Address string  `json:"address" validate:"required"`
	Hours   string  `json:"hours,omitempty"`
	Social  *Social `json:"social,omitempty" validate:"omitempty"`
}

type Social struct {
	Facebook  string `json:"facebook,omitempty" validate:"omitempty,url"`
	Instagram string `json:"instagram,omitempty" validate:"omitempty,url"`
	LinkedIn  string `json:"linkedin,omitempty" validate:"omitempty,url"`
}

// CTA is a call-to-action link shared by several section props.
type CTA struct {
	Text string `json:"text" validate:"required,max=30"`
	Href string `json:"href" validate:"required"`
}

// Page is one routed page. An empty slug is the index page.
type Page struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title" validate:"required,max=80"`
	Description string    `json:"description,omitempty" validate:"omitempty,max=160"`
	Sections    []Section `json:"sections" validate:"required,dive"`
}

// Section is a typed block of page content. Props stay an open record here
// and are checked per type by ValidateProps.
type Section struct {
	Type    string         `json:"type" validate:"required,sectiontype"`
	Variant string         `json:"variant" validate:"required"`
	Order   *float64       `json:"order" validate:"required"`
	Visible bool           `json:"visible"`
	Props   map[string]any `json:"props" validate:"required"`
}

func (s *Section) UnmarshalJSON(b []byte) error {
	type plain Section
	p := plain{Visible: true}
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*s = Section(p)
	return nil
}

// VisibleSections returns the visible sections ordered by Order. Sections
// with equal Order keep their file order.
func (p Page) VisibleSections() []Section {
	out := make([]Section, 0, len(p.Sections))
	for _, s := range p.Sections {
		if s.Visible {
			out = append(out, s)
		}
	}
	slices.SortStableFunc(out, func(a, b Section) int {
		return cmp.Compare(a.Rank(), b.Rank())
	})
	return out
}

// Rank is the section's order key, zero when unset.
func (s Section) Rank() float64 {
	if s.Order == nil {
		return 0
	}
	return *s.Order
}

// Page returns the page with the given slug.
func (s *Site) Page(slug string) (*Page, bool) {
	for i := range s.Pages {
		if s.Pages[i].Slug == slug {
			return &s.Pages[i], true
		}
	}
	return nil, false
}

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the decoder for a site file by extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Decode reads a site in the given format and applies defaults. It does not
// validate.
func Decode(r io.Reader, format Format) (*Site, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatJSON:
	case FormatYAML:
		// YAML goes through the JSON decoder so both formats share one set
		// of field names and defaults.
		var doc any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		if raw, err = json.Marshal(doc); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	var site Site
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&site); err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}
	site.applyDefaults()
	return &site, nil
}

// LoadFile decodes the site file at path.
func LoadFile(path string) (*Site, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	site, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return site, nil
}

func (s *Site) applyDefaults() {
	if s.Meta.SectionStylePreset == "" {
		s.Meta.SectionStylePreset = DefaultStylePreset
	}
	if s.Meta.DetailPageVariant == "" {
		s.Meta.DetailPageVariant = DefaultDetailPageVariant
	}
}
