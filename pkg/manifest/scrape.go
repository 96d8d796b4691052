package manifest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

const DefaultDeclaration = "export const SectionRegistry"

// MaxLineLength bounds a single source line. Bundled or inlined sources can
// carry data URLs far longer than bufio's default token size.
const MaxLineLength = 16 << 20

var ErrDeclarationNotFound = errors.New("registry declaration not found")

var (
	// typeLine matches `hero: {` or `'featured-listings': {` at depth 1.
	typeLine = regexp.MustCompile(`^['"]?([A-Za-z0-9-]+)['"]?:\s*{\s*$`)
	// variantLine matches `A: HeroA,` or `'split-text-image': HeroSplit,` at depth 2.
	variantLine = regexp.MustCompile(`^['"]?([A-Za-z0-9-]+)['"]?:\s*([A-Za-z_$][A-Za-z0-9_$]*)?`)
)

// Entry is one section type of a scraped registry.
type Entry struct {
	Type     string
	Variants []Variant
}

// Variant is a variant key and, when it could be read, the identifier of the
// component it maps to.
type Variant struct {
	Key       string
	Component string
}

// Keys returns the variant keys in source order.
func (e Entry) Keys() []string {
	keys := make([]string, len(e.Variants))
	for i, v := range e.Variants {
		keys[i] = v.Key
	}
	return keys
}

// Scrape extracts section types and their variant keys from the source text
// of a registry object literal declared on a line starting with declaration.
//
// It is a line scanner, not a parser. Depth 1 inside the literal is the type
// level, depth 2 the variant level; braces are counted after each line is
// classified and scanning stops when the depth returns to zero. Literals
// split over several lines, braces inside comments or strings, and several
// keys on one line are misread without error. A line longer than
// MaxLineLength fails the scan with bufio.ErrTooLong.
func Scrape(r io.Reader, declaration string) ([]Entry, error) {
	if declaration == "" {
		declaration = DefaultDeclaration
	}

	var (
		entries []Entry
		current = -1
		inside  bool
		depth   int
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineLength)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())

		if !inside {
			if strings.HasPrefix(line, declaration) {
				inside = true
				depth += strings.Count(line, "{")
				depth -= strings.Count(line, "}")
			}
			continue
		}

		opens := strings.Count(line, "{")
		closes := strings.Count(line, "}")

		switch {
		case depth == 1:
			if m := typeLine.FindStringSubmatch(line); m != nil {
				entries = append(entries, Entry{Type: m[1]})
				current = len(entries) - 1
			}
		case depth == 2 && current >= 0:
			if m := variantLine.FindStringSubmatch(line); m != nil && m[1] != "default" {
				entries[current].Variants = append(entries[current].Variants, Variant{Key: m[1], Component: m[2]})
			}
		}

		depth += opens - closes
		if depth == 0 {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan registry source: %w", err)
	}

	if !inside {
		return nil, fmt.Errorf("%w: %q", ErrDeclarationNotFound, declaration)
	}

	return entries, nil
}
