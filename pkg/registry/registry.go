// Package registry maps section types and variants to the components that
// render them.
package registry

import (
	"fmt"
	"path"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/promakler/sitekit/pkg/manifest"
	"github.com/promakler/sitekit/pkg/schema"
)

// Component is an opaque reference to an external renderer. Path is relative
// to the template's src directory and may be empty when unknown.
type Component struct {
	Name string
	Path string
}

type section struct {
	keys       []string
	components map[string]Component
}

// Registry is an ordered two-level table type -> variant -> Component. It is
// not modified after construction and is safe for concurrent reads.
type Registry struct {
	types    []string
	sections map[string]*section
	logger   *log.Logger
}

type Option func(*Registry)

// WithLogger sets the logger used for lookup warnings.
func WithLogger(l *log.Logger) Option {
	return func(r *Registry) {
		r.logger = l
	}
}

func newRegistry(opts ...Option) *Registry {
	r := &Registry{
		sections: make(map[string]*section),
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) add(typ, key string, c Component) {
	s, ok := r.sections[typ]
	if !ok {
		s = &section{components: make(map[string]Component)}
		r.sections[typ] = s
		r.types = append(r.types, typ)
	}
	if _, dup := s.components[key]; !dup {
		s.keys = append(s.keys, key)
	}
	s.components[key] = c
}

// Default returns the built-in registry of the template.
func Default(opts ...Option) *Registry {
	r := newRegistry(opts...)
	for _, t := range defaultTable {
		for _, v := range t.variants {
			r.add(t.typ, v.key, Component{
				Name: v.component,
				Path: path.Join("sections", t.dir, v.component+".astro"),
			})
		}
	}
	return r
}

// FromEntries builds a registry from scraped registry source. Component
// paths are unknown and left empty.
func FromEntries(entries []manifest.Entry, opts ...Option) *Registry {
	r := newRegistry(opts...)
	for _, e := range entries {
		if _, ok := r.sections[e.Type]; !ok {
			r.sections[e.Type] = &section{components: make(map[string]Component)}
			r.types = append(r.types, e.Type)
		}
		for _, v := range e.Variants {
			r.add(e.Type, v.Key, Component{Name: v.Component})
		}
	}
	return r
}

// Lookup returns the component for a type and variant. A missing type or
// variant is logged as a warning and yields nil.
func (r *Registry) Lookup(typ, variant string) *Component {
	s, ok := r.sections[typ]
	if !ok {
		r.logger.Warn("section type not found in registry", "type", typ)
		return nil
	}
	c, ok := s.components[variant]
	if !ok {
		r.logger.Warn("variant not found for section type", "type", typ, "variant", variant)
		return nil
	}
	return &c
}

// Variants lists the variant keys of typ in registry order, or nil for an
// unknown type.
func (r *Registry) Variants(typ string) []string {
	s, ok := r.sections[typ]
	if !ok {
		return nil
	}
	return slices.Clone(s.keys)
}

func (r *Registry) HasSection(typ string) bool {
	_, ok := r.sections[typ]
	return ok
}

func (r *Registry) HasVariant(typ, variant string) bool {
	s, ok := r.sections[typ]
	if !ok {
		return false
	}
	_, ok = s.components[variant]
	return ok
}

// Types lists the section types in registry order.
func (r *Registry) Types() []string {
	return slices.Clone(r.types)
}

// Entries converts the registry to manifest entries.
func (r *Registry) Entries() []manifest.Entry {
	out := make([]manifest.Entry, len(r.types))
	for i, typ := range r.types {
		s := r.sections[typ]
		out[i].Type = typ
		for _, key := range s.keys {
			out[i].Variants = append(out[i].Variants, manifest.Variant{Key: key, Component: s.components[key].Name})
		}
	}
	return out
}

// Unresolved is a section of a site that has no component in the registry.
type Unresolved struct {
	Page    string
	Path    string
	Type    string
	Variant string
	Hidden  bool
	Reason  string
}

func (u Unresolved) String() string {
	return fmt.Sprintf("%s: %s", u.Path, u.Reason)
}

// Resolve checks every section of site against the registry, including
// hidden ones, and returns those that would render nothing. It does not log.
func (r *Registry) Resolve(site *schema.Site) []Unresolved {
	var out []Unresolved
	for pi, page := range site.Pages {
		for si, sec := range page.Sections {
			u := Unresolved{
				Page:    page.Slug,
				Path:    fmt.Sprintf("pages[%d].sections[%d]", pi, si),
				Type:    sec.Type,
				Variant: sec.Variant,
				Hidden:  !sec.Visible,
			}
			switch {
			case !r.HasSection(sec.Type):
				u.Reason = fmt.Sprintf("section type %q not found in registry", sec.Type)
			case !r.HasVariant(sec.Type, sec.Variant):
				u.Reason = fmt.Sprintf("variant %q not found for section type %q", sec.Variant, sec.Type)
			default:
				continue
			}
			out = append(out, u)
		}
	}
	return out
}
