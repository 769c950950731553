// Package validation checks catalog payloads using the validator/v10 library.
//
// Payloads arrive as decoded JSON objects. Each is checked in two passes: a
// structural pass (presence, primitive type, unknown keys) and a semantic pass
// driven by validate tags on the domain types. A field that fails structurally
// is left out of the semantic pass, and every violation from both passes is
// reported together in one error.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/bookcatalog/catalog-server/internal/domain"
	domainerrors "github.com/bookcatalog/catalog-server/internal/errors"
	"github.com/bookcatalog/catalog-server/internal/genre"
	"github.com/bookcatalog/catalog-server/internal/id"
)

// Validator wraps go-playground/validator with the catalog's custom rules and
// domain error conversion.
type Validator struct {
	v      *validator.Validate
	genres *genre.Set
	now    func() time.Time
}

// Option configures a Validator.
type Option func(*Validator)

// WithClock overrides the clock used for the publication year ceiling.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) { v.now = now }
}

// New creates a validator that accepts the given genres.
func New(genres *genre.Set, opts ...Option) *Validator {
	val := &Validator{
		v:      validator.New(validator.WithRequiredStructEnabled()),
		genres: genres,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(val)
	}

	// Use JSON tag names in error messages
	val.v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// Registration only fails for empty tags or nil funcs.
	_ = val.v.RegisterValidation("uuidshape", func(fl validator.FieldLevel) bool {
		return id.Valid(fl.Field().String())
	})
	_ = val.v.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
		return val.genres.Contains(fl.Field().String())
	})
	_ = val.v.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
		return fl.Field().Int() <= int64(val.now().Year())
	})

	return val
}

// Author validates a new author payload.
func (v *Validator) Author(raw map[string]any) (domain.NewAuthor, error) {
	fields, problems := authorSchema.check(raw)

	out := domain.NewAuthor{
		Name: fields.str("name"),
		Bio:  fields.str("bio"),
	}
	return out, v.semantic(out, problems)
}

// Book validates a new book payload.
func (v *Validator) Book(raw map[string]any) (domain.NewBook, error) {
	fields, problems := bookSchema.check(raw)

	out := domain.NewBook{
		AuthorID: fields.str("author_id"),
		Title:    fields.str("title"),
		PubYear:  fields.integer("pub_year"),
		Genre:    fields.str("genre"),
	}
	return out, v.semantic(out, problems)
}

// BookPatch validates a partial book update. At least one updatable field
// must be present.
func (v *Validator) BookPatch(raw map[string]any) (domain.BookPatch, error) {
	fields, problems := bookUpdateSchema.check(raw)

	out := domain.BookPatch{
		AuthorID: fields.strPtr("author_id"),
		Title:    fields.strPtr("title"),
		PubYear:  fields.integerPtr("pub_year"),
		Genre:    fields.strPtr("genre"),
	}

	if !bookUpdateSchema.anyPresent(raw) {
		problems[bodyField] = "An author ID, title, publication year, or genre field must be defined to update a book."
	}

	return out, v.semantic(out, problems)
}

// Login validates login credentials. Unknown keys are ignored.
func (v *Validator) Login(raw map[string]any) (domain.Credentials, error) {
	fields, problems := loginSchema.check(raw)

	out := domain.Credentials{
		Username: fields.str("username"),
		Password: fields.str("password"),
	}
	return out, v.semantic(out, problems)
}

// ID checks a row identifier taken from a path or query.
func (v *Validator) ID(s string) error {
	if err := v.v.Var(s, "uuidshape"); err != nil {
		return domainerrors.ValidationWithDetails(
			fmt.Sprintf("invalid id %q: ids must be 36-character lowercase UUIDs", s),
			map[string]string{"id": messageFor("uuidshape", "", v.now)},
		)
	}
	return nil
}

// Genre checks a genre filter value.
func (v *Validator) Genre(s string) error {
	if err := v.v.Var(s, "genre"); err != nil {
		return domainerrors.ValidationWithDetails(
			fmt.Sprintf("invalid genre %q", s),
			map[string]string{"genre": messageFor("genre", "", v.now)},
		)
	}
	return nil
}

// Username checks an identity taken from a path.
func (v *Validator) Username(s string) error {
	if err := v.v.Var(s, "min=5,max=20"); err != nil {
		return domainerrors.ValidationWithDetails(
			fmt.Sprintf("invalid username %q: usernames must be 5 to 20 characters", s),
			map[string]string{"username": v.formatFieldErrors(err)},
		)
	}
	return nil
}

// semantic runs tag validation over s, drops violations for fields that
// already failed structurally, and merges what remains with problems.
func (v *Validator) semantic(s any, problems map[string]string) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err, problems)
	}
	if len(problems) > 0 {
		return newValidationError(problems)
	}
	return nil
}

// formatError converts validator errors to domain errors.
func (v *Validator) formatError(err error, problems map[string]string) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fieldErrors := make(map[string]string, len(validationErrs)+len(problems))
	for k, msg := range problems {
		fieldErrors[k] = msg
	}
	for _, e := range validationErrs {
		if _, failed := problems[e.Field()]; failed {
			continue
		}
		fieldErrors[e.Field()] = messageFor(e.Tag(), e.Param(), v.now)
	}

	if len(fieldErrors) == 0 {
		return nil
	}
	return newValidationError(fieldErrors)
}

func (v *Validator) formatFieldErrors(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "is invalid"
	}
	return messageFor(validationErrs[0].Tag(), validationErrs[0].Param(), v.now)
}

// newValidationError builds the aggregated error: one message listing every
// field in name order, plus the field map as details.
func newValidationError(fieldErrors map[string]string) error {
	names := make([]string, 0, len(fieldErrors))
	for name := range fieldErrors {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+fieldErrors[name])
	}

	return domainerrors.ValidationWithDetails(
		"validation failed: "+strings.Join(parts, "; "),
		fieldErrors,
	)
}

//nolint:gocyclo // Switch statement covering validation tags is intentionally exhaustive.
func messageFor(tag, param string, now func() time.Time) string {
	switch tag {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", param)
	case "max":
		return fmt.Sprintf("must not exceed %s characters", param)
	case "len":
		return fmt.Sprintf("must be exactly %s characters", param)
	case "gte":
		return "must be greater than or equal to " + param
	case "lte":
		return "must be less than or equal to " + param
	case "uuidshape":
		return "must be a 36-character lowercase UUID"
	case "genre":
		return "must be one of the configured genres"
	case "notfuture":
		return fmt.Sprintf("must not be later than %d", now().Year())
	default:
		return "is invalid"
	}
}
