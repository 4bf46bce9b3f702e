package decode

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/prototable/internal/dynval"
	"github.com/vk/prototable/internal/protoerr"
)

// BindFunc binds one dynamic value into the target record. The target
// already carries every field declared before this one.
type BindFunc[T any] func(dst *T, v cty.Value, ctx *Context) error

// PostFunc runs after all fields are bound. It may still mutate derived
// fields (clamping a computed maximum, for example) and fails with an
// InvariantViolation when a cross-field constraint does not hold.
type PostFunc[T any] func(dst *T) error

// Field is one rule in a schema's binding table. Exactly one binding mode
// applies per field:
//
//   - plain: the value under Key is bound; absence falls through to
//     Default, then DefaultFrom, then the mandatory rules.
//   - Flatten: Bind always receives the table the parent record is being
//     decoded from, so the sub-record's keys appear inline in it.
//   - FlattenSeq: a sequence under Key is bound element-wise; when Key is
//     absent the parent table itself is bound once as a single inline
//     instance (through SelfBind when set, since inline keys are commonly
//     renamed to avoid colliding with the parent's own).
type Field[T any] struct {
	// Key is the table key the field reads from.
	Key string

	// Name optionally gives the field a logical name for error messages
	// when it differs from Key (the rename rule).
	Name string

	// Bind performs the actual binding and type check.
	Bind BindFunc[T]

	// Default is bound when the key is absent.
	Default *cty.Value

	// DefaultFrom computes the value to bind from already-bound siblings
	// when the key is absent and no constant default applies.
	DefaultFrom func(dst *T) cty.Value

	// Required marks the field unconditionally mandatory.
	Required bool

	// RequiredIf marks the field mandatory only when the predicate holds
	// over the already-bound siblings.
	RequiredIf func(dst *T) bool

	Flatten    bool
	FlattenSeq bool

	// SelfBind handles the inline single-instance form of a FlattenSeq
	// field. Defaults to Bind.
	SelfBind BindFunc[T]
}

func (f *Field[T]) display() string {
	if f.Name != "" {
		return f.Name
	}
	return f.Key
}

// Schema decodes one dynamic table into one record of type T, or fails with
// a precise error. Field rules run in declaration order.
type Schema[T any] struct {
	what   string
	fields []Field[T]
	post   []PostFunc[T]
}

// NewSchema builds a schema for records described as `what` in error
// messages. Malformed field rules are programmer errors and panic at
// construction, before any definition is decoded.
func NewSchema[T any](what string, fields []Field[T], post ...PostFunc[T]) *Schema[T] {
	for i := range fields {
		f := &fields[i]
		if f.Bind == nil {
			panic(fmt.Sprintf("schema %q: field %d has no bind function", what, i))
		}
		if f.Key == "" && !f.Flatten {
			panic(fmt.Sprintf("schema %q: field %d has no key and is not flattened", what, i))
		}
		if (f.Flatten || f.FlattenSeq) && (f.Default != nil || f.DefaultFrom != nil || f.Required || f.RequiredIf != nil) {
			panic(fmt.Sprintf("schema %q: field %d mixes flatten with presence rules", what, i))
		}
		if f.SelfBind != nil && !f.FlattenSeq {
			panic(fmt.Sprintf("schema %q: field %d sets SelfBind without FlattenSeq", what, i))
		}
	}
	return &Schema[T]{what: what, fields: fields, post: post}
}

// Decode converts one dynamic value into a fully constructed record. The
// first rule violation aborts the decode and nothing partial is returned.
func (s *Schema[T]) Decode(v cty.Value, ctx *Context) (*T, error) {
	if dynval.KindOf(v) != dynval.KindTable {
		return nil, protoerr.TypeMismatchf("%s: expected table, got %s", s.what, dynval.KindOf(v))
	}

	dst := new(T)
	for i := range s.fields {
		f := &s.fields[i]
		if err := decodeField(dst, f, v, ctx); err != nil {
			return nil, fmt.Errorf("%s: field %q: %w", s.what, f.display(), err)
		}
	}

	for _, check := range s.post {
		if err := check(dst); err != nil {
			return nil, fmt.Errorf("%s: %w", s.what, err)
		}
	}
	return dst, nil
}

func decodeField[T any](dst *T, f *Field[T], table cty.Value, ctx *Context) error {
	switch {
	case f.Flatten:
		return f.Bind(dst, table, ctx)

	case f.FlattenSeq:
		if !dynval.Has(table, f.Key) {
			bind := f.SelfBind
			if bind == nil {
				bind = f.Bind
			}
			return bind(dst, table, ctx)
		}
		elems, err := dynval.Elements(dynval.Attr(table, f.Key))
		if err != nil {
			return err
		}
		for i, elem := range elems {
			if err := f.Bind(dst, elem, ctx); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
		return nil

	default:
		if dynval.Has(table, f.Key) {
			return f.Bind(dst, dynval.Attr(table, f.Key), ctx)
		}
		if f.Default != nil {
			return f.Bind(dst, *f.Default, ctx)
		}
		if f.DefaultFrom != nil {
			return f.Bind(dst, f.DefaultFrom(dst), ctx)
		}
		if f.Required || (f.RequiredIf != nil && f.RequiredIf(dst)) {
			return protoerr.MissingMandatoryFieldf("attribute %q is required", f.Key)
		}
		return nil
	}
}
