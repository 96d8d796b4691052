package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Issue is a single validation failure. Path uses the JSON field names of
// the site file, e.g. pages[0].sections[2].type.
type Issue struct {
	Path    string
	Rule    string
	Message string
}

func (i Issue) Error() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// Issues joins a list of issues into one error, or nil when empty.
func Issues(issues []Issue) error {
	if len(issues) == 0 {
		return nil
	}
	errs := make([]error, len(issues))
	for i, issue := range issues {
		errs[i] = issue
	}
	return errors.Join(errs...)
}

var hexRGB = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

var getValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("hexrgb", func(fl validator.FieldLevel) bool {
		return hexRGB.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("sectiontype", func(fl validator.FieldLevel) bool {
		return IsSectionType(fl.Field().String())
	})

	return v
})

// Validate checks shape and bounds of the whole site. Props are only checked
// for presence; see ValidateProps.
func (s *Site) Validate() []Issue {
	return validateStruct(s, "")
}

// ValidateProps checks a section's props against the schema for its type.
// It reports false when the type has no props schema, in which case the
// props are accepted as they are.
func ValidateProps(sectionType string, props map[string]any) ([]Issue, bool) {
	_, issues, ok := decodeProps(sectionType, props, "")
	return issues, ok
}

// DecodeProps decodes and validates a section's props into the typed
// struct returned by PropsFor.
func (s Section) DecodeProps() (any, []Issue, bool) {
	return decodeProps(s.Type, s.Props, "props")
}

// ValidateAllProps runs ValidateProps over every section of the site,
// prefixing issue paths with the section's location.
func (s *Site) ValidateAllProps() []Issue {
	var issues []Issue
	for pi, page := range s.Pages {
		for si, section := range page.Sections {
			prefix := fmt.Sprintf("pages[%d].sections[%d].props", pi, si)
			_, found, _ := decodeProps(section.Type, section.Props, prefix)
			issues = append(issues, found...)
		}
	}
	return issues
}

func decodeProps(sectionType string, props map[string]any, prefix string) (any, []Issue, bool) {
	target, ok := PropsFor(sectionType)
	if !ok {
		return nil, nil, false
	}

	raw, err := json.Marshal(props)
	if err != nil {
		return nil, []Issue{{Path: prefix, Rule: "type", Message: err.Error()}}, true
	}
	if err := json.NewDecoder(bytes.NewReader(raw)).Decode(target); err != nil {
		return nil, []Issue{decodeIssue(err, prefix)}, true
	}

	return target, validateStruct(target, prefix), true
}

func decodeIssue(err error, prefix string) Issue {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return Issue{
			Path:    joinPath(prefix, typeErr.Field),
			Rule:    "type",
			Message: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
		}
	}
	return Issue{Path: prefix, Rule: "type", Message: err.Error()}
}

func validateStruct(v any, prefix string) []Issue {
	err := getValidator().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Issue{{Path: prefix, Rule: "invalid", Message: err.Error()}}
	}

	issues := make([]Issue, 0, len(verrs))
	for _, fe := range verrs {
		// Namespace starts with the Go type name of the root struct.
		_, path, _ := strings.Cut(fe.Namespace(), ".")
		issues = append(issues, Issue{
			Path:    joinPath(prefix, path),
			Rule:    fe.Tag(),
			Message: describe(fe),
		})
	}
	return issues
}

func joinPath(prefix, path string) string {
	switch {
	case prefix == "":
		return path
	case path == "":
		return prefix
	default:
		return prefix + "." + path
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min", "max":
		bound := "at least"
		if fe.Tag() == "max" {
			bound = "at most"
		}
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("must be %s %s characters", bound, fe.Param())
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("must have %s %s items", bound, fe.Param())
		default:
			return fmt.Sprintf("must be %s %s", bound, fe.Param())
		}
	case "oneof":
		return fmt.Sprintf("must be one of %s, got %q", strings.ReplaceAll(fe.Param(), " ", ", "), fe.Value())
	case "sectiontype":
		return fmt.Sprintf("unknown section type %q", fe.Value())
	case "url":
		return "must be a URL"
	case "email":
		return "must be an email address"
	case "hexrgb":
		return fmt.Sprintf("must be a #RRGGBB colour, got %q", fe.Value())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
