// Package variant selects among sibling record shapes for sum-typed
// records. Selection is by the shape of the input alone: an ordered list of
// predicates is tried in declaration order and the first match wins, so an
// ambiguous input always resolves to the earlier case. Where a definition
// carries an explicit discriminator key, dispatch short-circuits to a direct
// tag lookup instead.
package variant

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/prototable/internal/decode"
	"github.com/vk/prototable/internal/dynval"
	"github.com/vk/prototable/internal/protoerr"
)

// DecodeFunc decodes the selected alternative.
type DecodeFunc[T any] func(v cty.Value, ctx *decode.Context) (T, error)

// Case pairs a shape predicate with the decoder it selects. Cases carrying a
// discriminator or otherwise more specific shape must be declared before
// looser structural ones.
type Case[T any] struct {
	Name   string
	When   func(v cty.Value) bool
	Decode DecodeFunc[T]
}

// Dispatcher picks one alternative of a sum-typed record from the shape of
// the input value.
type Dispatcher[T any] struct {
	what   string
	tagKey string
	byTag  map[string]DecodeFunc[T]
	cases  []Case[T]
}

// New builds a shape-dispatched decoder for records described as `what` in
// error messages. Case order is significant and preserved.
func New[T any](what string, cases ...Case[T]) *Dispatcher[T] {
	return &Dispatcher[T]{what: what, cases: cases}
}

// WithTag enables discriminator dispatch: when the input is a table carrying
// tagKey, its string value selects the decoder directly, bypassing the shape
// predicates. An unrecognized value fails with UnknownVariantTag.
func (d *Dispatcher[T]) WithTag(tagKey string, byTag map[string]DecodeFunc[T]) *Dispatcher[T] {
	d.tagKey = tagKey
	d.byTag = byTag
	return d
}

// Decode selects and runs the matching alternative's decoder.
func (d *Dispatcher[T]) Decode(v cty.Value, ctx *decode.Context) (T, error) {
	var zero T

	if d.tagKey != "" && dynval.Has(v, d.tagKey) {
		tag, err := dynval.String(dynval.Attr(v, d.tagKey))
		if err != nil {
			return zero, protoerr.TypeMismatchf("%s: discriminator %q must be a string", d.what, d.tagKey)
		}
		fn, ok := d.byTag[tag]
		if !ok {
			return zero, protoerr.UnknownVariantTagf("%s: unknown %s %q", d.what, d.tagKey, tag)
		}
		return fn(v, ctx)
	}

	for _, c := range d.cases {
		if c.When(v) {
			return c.Decode(v, ctx)
		}
	}
	return zero, protoerr.NoMatchingVariantf("%s: value of kind %s matched no variant", d.what, dynval.KindOf(v))
}
