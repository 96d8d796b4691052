package schema

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func loadFixture(t *testing.T) *Site {
	t.Helper()
	site, err := LoadFile("testdata/site.json")
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	return site
}

func TestLoadFileDefaults(t *testing.T) {
	site := loadFixture(t)

	if site.Meta.SectionStylePreset != DefaultStylePreset {
		t.Errorf("sectionStylePreset = %q", site.Meta.SectionStylePreset)
	}
	if site.Meta.DetailPageVariant != DefaultDetailPageVariant {
		t.Errorf("detailPageVariant = %q", site.Meta.DetailPageVariant)
	}

	home := site.Pages[0]
	if !home.Sections[0].Visible {
		t.Error("section without visible flag should default to visible")
	}
	if home.Sections[2].Visible {
		t.Error("explicit visible=false was overridden")
	}

	if p, ok := site.Page("kontakt"); !ok || p.Title != "Kontakt" {
		t.Errorf("Page(kontakt) = %+v, %v", p, ok)
	}
}

func TestValidateFixture(t *testing.T) {
	site := loadFixture(t)

	if issues := site.Validate(); len(issues) != 0 {
		t.Errorf("Validate() = %v", issues)
	}
	if issues := site.ValidateAllProps(); len(issues) != 0 {
		t.Errorf("ValidateAllProps() = %v", issues)
	}
}

func TestVisibleSections(t *testing.T) {
	site := loadFixture(t)

	var got []string
	for _, s := range site.Pages[0].VisibleSections() {
		got = append(got, s.Type)
	}
	want := []string{"hero", "featured-listings", "districts", "cta"}
	if !slices.Equal(got, want) {
		t.Errorf("VisibleSections() = %v, want %v", got, want)
	}

	page := Page{Sections: []Section{
		{Type: "b", Order: order(2), Visible: true},
		{Type: "a1", Order: order(1), Visible: true},
		{Type: "a2", Order: order(1), Visible: true},
		{Type: "unset", Visible: true},
	}}
	got = got[:0]
	for _, s := range page.VisibleSections() {
		got = append(got, s.Type)
	}
	if !slices.Equal(got, []string{"unset", "a1", "a2", "b"}) {
		t.Errorf("equal orders not stable: %v", got)
	}
}

func order(v float64) *float64 { return &v }

func TestValidateIssues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Site)
		path   string
		rule   string
	}{
		{
			name:   "bad colour",
			mutate: func(s *Site) { s.Meta.Brand.Colors.Primary = "blue" },
			path:   "meta.brand.colors.primary",
			rule:   "hexrgb",
		},
		{
			name:   "short hex colour",
			mutate: func(s *Site) { s.Meta.Brand.Colors.AccentLight = "#fff" },
			path:   "meta.brand.colors.accentLight",
			rule:   "hexrgb",
		},
		{
			name:   "unknown template",
			mutate: func(s *Site) { s.Meta.Template = "template-z" },
			path:   "meta.template",
			rule:   "oneof",
		},
		{
			name:   "bad email",
			mutate: func(s *Site) { s.Meta.Contact.Email = "nope" },
			path:   "meta.contact.email",
			rule:   "email",
		},
		{
			name:   "bad social url",
			mutate: func(s *Site) { s.Meta.Contact.Social.Facebook = "facebook" },
			path:   "meta.contact.social.facebook",
			rule:   "url",
		},
		{
			name:   "unknown section type",
			mutate: func(s *Site) { s.Pages[0].Sections[0].Type = "gallery" },
			path:   "pages[0].sections[0].type",
			rule:   "sectiontype",
		},
		{
			name:   "page title too long",
			mutate: func(s *Site) { s.Pages[1].Title = strings.Repeat("x", 81) },
			path:   "pages[1].title",
			rule:   "max",
		},
		{
			name:   "missing props",
			mutate: func(s *Site) { s.Pages[0].Sections[4].Props = nil },
			path:   "pages[0].sections[4].props",
			rule:   "required",
		},
		{
			name:   "missing variant",
			mutate: func(s *Site) { s.Pages[1].Sections[1].Variant = "" },
			path:   "pages[1].sections[1].variant",
			rule:   "required",
		},
		{
			name:   "missing order",
			mutate: func(s *Site) { s.Pages[0].Sections[2].Order = nil },
			path:   "pages[0].sections[2].order",
			rule:   "required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			site := loadFixture(t)
			tt.mutate(site)

			issues := site.Validate()
			if len(issues) != 1 {
				t.Fatalf("Validate() = %v, want one issue", issues)
			}
			if issues[0].Path != tt.path || issues[0].Rule != tt.rule {
				t.Errorf("issue = %+v, want %s/%s", issues[0], tt.path, tt.rule)
			}
			if !strings.HasPrefix(issues[0].Error(), tt.path+": ") {
				t.Errorf("Error() = %q", issues[0].Error())
			}
		})
	}
}

func TestValidateProps(t *testing.T) {
	tests := []struct {
		name    string
		typ     string
		props   map[string]any
		path    string
		rule    string
		noCheck bool
	}{
		{
			name: "valid trust",
			typ:  TypeTrust,
			props: map[string]any{"stats": []any{
				map[string]any{"value": "500+", "label": "Objekte"},
				map[string]any{"value": "25", "label": "Jahre"},
			}},
		},
		{
			name:  "usps too few items",
			typ:   TypeUSPs,
			props: map[string]any{"items": []any{map[string]any{"icon": "x", "title": "t", "description": "d"}}},
			path:  "items",
			rule:  "min",
		},
		{
			name:  "listings limit too high",
			typ:   TypeFeaturedListings,
			props: map[string]any{"title": "Angebote", "layout": "grid", "limit": 20},
			path:  "limit",
			rule:  "max",
		},
		{
			name:  "listings fractional limit",
			typ:   TypeFeaturedListings,
			props: map[string]any{"title": "Angebote", "layout": "grid", "limit": 4.5},
		},
		{
			name:  "listings limit zero",
			typ:   TypeFeaturedListings,
			props: map[string]any{"title": "Angebote", "layout": "grid", "limit": 0},
			path:  "limit",
			rule:  "min",
		},
		{
			name:  "rating without count",
			typ:   TypeRating,
			props: map[string]any{"score": 4.8, "source": "Google"},
			path:  "count",
			rule:  "required",
		},
		{
			name:  "rating with zero count",
			typ:   TypeRating,
			props: map[string]any{"score": 4.8, "count": 0, "source": "Google"},
		},
		{
			name: "hero search without enabled",
			typ:  TypeHero,
			props: map[string]any{"title": "Willkommen", "search": map[string]any{
				"types": []any{"kaufen"}, "filters": []any{"ort"},
			}},
			path: "search.enabled",
			rule: "required",
		},
		{
			name: "hero search disabled",
			typ:  TypeHero,
			props: map[string]any{"title": "Willkommen", "search": map[string]any{
				"enabled": false, "types": []any{"kaufen"}, "filters": []any{"ort"},
			}},
		},
		{
			name:  "listings unknown layout",
			typ:   TypeFeaturedListings,
			props: map[string]any{"title": "Angebote", "layout": "carousel"},
			path:  "layout",
			rule:  "oneof",
		},
		{
			name:  "contact unknown form field",
			typ:   TypeContact,
			props: map[string]any{"title": "Kontakt", "formFields": []any{"name", "fax"}},
			path:  "formFields[1]",
			rule:  "oneof",
		},
		{
			name:  "contact without form fields",
			typ:   TypeContact,
			props: map[string]any{"title": "Kontakt"},
			path:  "formFields",
			rule:  "required",
		},
		{
			name:  "hero title wrong type",
			typ:   TypeHero,
			props: map[string]any{"title": 5},
			path:  "title",
			rule:  "type",
		},
		{
			name:  "testimonial rating out of range",
			typ:   TypeTestimonials,
			props: map[string]any{"title": "Stimmen", "items": []any{testimonial(5), testimonial(6)}},
			path:  "items[1].rating",
			rule:  "max",
		},
		{
			name:  "footer copyright missing",
			typ:   TypeFooter,
			props: map[string]any{"legal": []any{map[string]any{"text": "Impressum", "href": "/impressum"}}},
			path:  "copyright",
			rule:  "required",
		},
		{
			name:    "type without props schema",
			typ:     TypeProcess,
			props:   map[string]any{"anything": true},
			noCheck: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues, ok := ValidateProps(tt.typ, tt.props)
			if ok == tt.noCheck {
				t.Fatalf("ValidateProps() checked = %v", ok)
			}
			if tt.rule == "" {
				if len(issues) != 0 {
					t.Errorf("unexpected issues %v", issues)
				}
				return
			}
			if len(issues) != 1 {
				t.Fatalf("ValidateProps() = %v, want one issue", issues)
			}
			if issues[0].Path != tt.path || issues[0].Rule != tt.rule {
				t.Errorf("issue = %+v, want %s/%s", issues[0], tt.path, tt.rule)
			}
		})
	}
}

func testimonial(rating int) map[string]any {
	return map[string]any{"text": "Sehr gut", "author": "A. Kunde", "rating": rating}
}

func TestDecodeProps(t *testing.T) {
	section := Section{
		Type:  TypeFeaturedListings,
		Props: map[string]any{"title": "Angebote", "layout": "map"},
	}

	v, issues, ok := section.DecodeProps()
	if !ok || len(issues) != 0 {
		t.Fatalf("DecodeProps() = %v, %v", issues, ok)
	}
	props, isListings := v.(*FeaturedListingsProps)
	if !isListings {
		t.Fatalf("DecodeProps() type = %T", v)
	}
	if props.Limit != DefaultListingsLimit {
		t.Errorf("limit = %v, want default %d", props.Limit, DefaultListingsLimit)
	}

	section = Section{
		Type: TypeDistricts,
		Props: map[string]any{"title": "Bezirke", "items": []any{
			map[string]any{"name": "Mitte", "count": 12, "image": "https://x.test/a.webp"},
			map[string]any{"name": "Pankow", "count": "20+", "image": "https://x.test/b.webp"},
			map[string]any{"name": "Wedding", "count": 1.5, "image": "https://x.test/c.webp"},
			map[string]any{"name": "Moabit", "count": "", "image": "https://x.test/d.webp"},
		}},
	}
	v, issues, _ = section.DecodeProps()
	if len(issues) != 0 {
		t.Fatalf("DecodeProps() issues = %v", issues)
	}
	items := v.(*DistrictsProps).Items
	if items[0].Count.String() != "12" || items[1].Count.String() != "20+" || items[2].Count.String() != "1.5" {
		t.Errorf("counts = %v %v %v", items[0].Count, items[1].Count, items[2].Count)
	}
	if items[3].Count.Kind != KindString {
		t.Errorf("empty string count kind = %v", items[3].Count.Kind)
	}

	section.Props["items"].([]any)[0].(map[string]any)["count"] = true
	if _, issues, _ = section.DecodeProps(); len(issues) != 1 || issues[0].Rule != "type" {
		t.Errorf("bool count issues = %v", issues)
	}
}

func TestPropsFor(t *testing.T) {
	for _, typ := range SectionTypes() {
		_, ok := PropsFor(typ)
		wantOK := typ != TypeContent && typ != TypeCTA && typ != TypeProcess
		if ok != wantOK {
			t.Errorf("PropsFor(%q) ok = %v, want %v", typ, ok, wantOK)
		}
	}
	if _, ok := PropsFor("gallery"); ok {
		t.Error("PropsFor(gallery) should be false")
	}
}

func TestDecodeYAML(t *testing.T) {
	src := `
meta:
  domain: example.de
  template: template-b
  sectionStylePreset: hauptstadt-classic
  brand:
    name: Example
    colors:
      primary: "#000000"
      secondary: "#111111"
      accent: "#222222"
      accentLight: "#333333"
    fonts:
      display: Lora
      body: Inter
  contact:
    phone: "030 1"
    email: hello@example.de
    address: Berlin
pages:
  - slug: ""
    title: Home
    sections:
      - type: rating
        variant: A
        order: 1
        props:
          score: 4.8
          count: 120
          source: Google
`
	site, err := Decode(strings.NewReader(src), FormatYAML)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if site.Meta.SectionStylePreset != "hauptstadt-classic" {
		t.Errorf("sectionStylePreset = %q", site.Meta.SectionStylePreset)
	}
	if site.Meta.Brand.Colors.AccentLight != "#333333" {
		t.Errorf("accentLight = %q", site.Meta.Brand.Colors.AccentLight)
	}
	if issues := site.Validate(); len(issues) != 0 {
		t.Errorf("Validate() = %v", issues)
	}
	if issues := site.ValidateAllProps(); len(issues) != 0 {
		t.Errorf("ValidateAllProps() = %v", issues)
	}
	if s := site.Pages[0].Sections[0]; !s.Visible || s.Rank() != 1 {
		t.Errorf("section = %+v", s)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		err  bool
	}{
		{"a/site.json", FormatJSON, false},
		{"site.YAML", FormatYAML, false},
		{"site.yml", FormatYAML, false},
		{"site.toml", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.err || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, %v", tt.path, got, err)
		}
		if err != nil && !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("error %v is not ErrUnsupportedFormat", err)
		}
	}
}

func TestIssuesError(t *testing.T) {
	if Issues(nil) != nil {
		t.Error("Issues(nil) should be nil")
	}
	err := Issues([]Issue{{Path: "a", Message: "x"}, {Message: "y"}})
	if err == nil || err.Error() != "a: x\ny" {
		t.Errorf("Issues() = %v", err)
	}
}
