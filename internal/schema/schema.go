// Package schema validates persisted workbook records and exports against
// an embedded CUE schema.
//
// The schema describes the current record shape exactly: every field is
// required and no other field is allowed. Records written by older versions
// are expected to fail until they have been migrated.
package schema

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/meworkbook/internal/model"
)

//go:embed workbook.cue
var workbookCUE string

// Kind selects the top-level definition a document is checked against.
type Kind string

const (
	// KindState is the persisted RootState record.
	KindState Kind = "state"

	// KindExport is the export record.
	KindExport Kind = "export"
)

// ParseKind resolves a kind name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.TrimSpace(s)); k {
	case KindState, KindExport:
		return k, nil
	}
	return "", fmt.Errorf("unknown document kind %q (want %q or %q)", s, KindState, KindExport)
}

func (k Kind) definition() string {
	if k == KindExport {
		return "#Export"
	}
	return "#RootState"
}

// Issue is one schema violation.
type Issue struct {
	Path    string
	Message string
	Pos     token.Pos
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// ValidationError lists every violation found in a document.
type ValidationError struct {
	Kind   Kind
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 1 {
		return fmt.Sprintf("invalid %s document: %s", e.Kind, e.Issues[0])
	}
	return fmt.Sprintf("invalid %s document: %d issues, first: %s", e.Kind, len(e.Issues), e.Issues[0])
}

// Validator checks documents against the compiled schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// New compiles the embedded schema.
func New() (*Validator, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileString(workbookCUE, cue.Filename("workbook.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile workbook schema: %w", err)
	}
	return &Validator{ctx: ctx, schema: schema}, nil
}

// Validate checks a JSON document of the given kind. Malformed JSON is
// returned as a plain error; schema violations as *ValidationError.
func (v *Validator) Validate(kind Kind, data []byte) error {
	doc := v.ctx.CompileBytes(data, cue.Filename(string(kind)+".json"))
	if err := doc.Err(); err != nil {
		return fmt.Errorf("parse %s document: %w", kind, err)
	}

	def := v.schema.LookupPath(cue.ParsePath(kind.definition()))
	if !def.Exists() {
		return fmt.Errorf("schema has no %s definition", kind.definition())
	}

	if err := def.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return toValidationError(kind, err)
	}
	return nil
}

// ValidateState checks a typed state through its persisted encoding.
func (v *Validator) ValidateState(s *model.RootState) error {
	data, err := model.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	return v.Validate(KindState, data)
}

// ValidateExport checks an export record through its JSON encoding.
func (v *Validator) ValidateExport(e model.Export) error {
	data, err := model.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return v.Validate(KindExport, data)
}

func toValidationError(kind Kind, err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	ve := &ValidationError{Kind: kind}
	for _, e := range errs {
		issue := Issue{
			Path:    strings.Join(e.Path(), "."),
			Message: errorMessage(e),
		}
		if positions := errors.Positions(e); len(positions) > 0 {
			issue.Pos = positions[0]
		}
		ve.Issues = append(ve.Issues, issue)
	}
	return ve
}

// errorMessage formats e without the path prefix CUE adds to Error().
func errorMessage(e errors.Error) string {
	format, args := e.Msg()
	return fmt.Sprintf(format, args...)
}
