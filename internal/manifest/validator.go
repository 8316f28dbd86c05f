package manifest

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/package.schema.json
var packageSchemaJSON []byte

//go:embed schema/entry.schema.json
var entrySchemaJSON []byte

// installedSchema describes packages fetched from a registry: name and
// version are required and the name must be a valid npm name.
var installedSchema = compileOnce("package.schema.json", packageSchemaJSON)

// localSchema describes a caller's checkout, where only the entry fields
// matter and registry metadata may be absent.
var localSchema = compileOnce("entry.schema.json", entrySchemaJSON)

func compileOnce(url string, raw []byte) func() (*jsonschema.Schema, error) {
	return sync.OnceValues(func() (*jsonschema.Schema, error) {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("decoding embedded schema %s: %w", url, err)
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(url, doc); err != nil {
			return nil, fmt.Errorf("registering schema %s: %w", url, err)
		}
		s, err := c.Compile(url)
		if err != nil {
			return nil, fmt.Errorf("compiling schema %s: %w", url, err)
		}
		return s, nil
	})
}

var printer = message.NewPrinter(language.English)

// Issue is one schema violation. Field is a JSON pointer into the document,
// empty for violations of the document as a whole.
type Issue struct {
	Field   string
	Keyword string
	Message string
}

func (i Issue) String() string {
	if i.Field == "" {
		return i.Message
	}
	return i.Field + ": " + i.Message
}

// Validate checks raw package.json bytes of an installed package and
// returns the violations found, or nil when the document is acceptable.
// An error means the bytes are not JSON at all.
func Validate(data []byte) ([]Issue, error) {
	return validate(installedSchema, data)
}

// ValidateLocal is Validate for a local checkout. Only the fields used to
// find the entry are checked.
func ValidateLocal(data []byte) ([]Issue, error) {
	return validate(localSchema, data)
}

func validate(load func() (*jsonschema.Schema, error), data []byte) ([]Issue, error) {
	schema, err := load()
	if err != nil {
		return nil, err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}

	err = schema.Validate(doc)
	if err == nil {
		return nil, nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return nil, err
	}

	issues := leafIssues(verr)
	if len(issues) == 0 {
		return []Issue{{Message: verr.Error()}}, nil
	}
	return issues, nil
}

// leafIssues flattens the cause tree. Combinator keywords only report that
// a branch failed, so they are skipped in favour of their causes.
func leafIssues(root *jsonschema.ValidationError) []Issue {
	var issues []Issue
	stack := []*jsonschema.ValidationError{root}
	for len(stack) > 0 {
		ve := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if len(ve.Causes) > 0 {
			stack = append(stack, ve.Causes...)
			continue
		}
		if ve.ErrorKind == nil {
			continue
		}
		kw := ve.ErrorKind.KeywordPath()
		if len(kw) == 0 {
			continue
		}
		switch keyword := kw[len(kw)-1]; keyword {
		case "oneOf", "anyOf", "allOf", "$ref":
		default:
			issue := Issue{Keyword: keyword, Message: ve.ErrorKind.LocalizedString(printer)}
			if len(ve.InstanceLocation) > 0 {
				issue.Field = "/" + strings.Join(ve.InstanceLocation, "/")
			}
			if !slices.Contains(issues, issue) {
				issues = append(issues, issue)
			}
		}
	}
	slices.SortFunc(issues, func(a, b Issue) int {
		return strings.Compare(a.String(), b.String())
	})
	return issues
}
