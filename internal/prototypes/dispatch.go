package prototypes

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/prototable/internal/ctxlog"
	"github.com/vk/prototable/internal/decode"
	"github.com/vk/prototable/internal/dynval"
	"github.com/vk/prototable/internal/registry"
	"github.com/vk/prototable/internal/variant"
)

func lift[T registry.Prototype](fn func(cty.Value, *decode.Context) (T, error)) variant.DecodeFunc[registry.Prototype] {
	return func(v cty.Value, ctx *decode.Context) (registry.Prototype, error) {
		p, err := fn(v, ctx)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}

// definitionDispatcher selects the category schema from a definition's
// "type" discriminator. A definition without one matches no variant.
var definitionDispatcher = variant.New[registry.Prototype]("definition").
	WithTag("type", map[string]variant.DecodeFunc[registry.Prototype]{
		CategoryEntity:        lift(DecodeEntity),
		CategoryItem:          lift(DecodeItem),
		CategoryFluid:         lift(DecodeFluid),
		CategoryRecipe:        lift(DecodeRecipe),
		CategoryVirtualSignal: lift(DecodeVirtualSignal),
	})

// Decode decodes one top-level definition table into a concrete prototype.
func Decode(v cty.Value, ctx *decode.Context) (registry.Prototype, error) {
	return definitionDispatcher.Decode(v, ctx)
}

// Load is the decode phase of a load: each definition is decoded and
// inserted before the next is considered, and the first failure aborts the
// whole load. The caller runs reg.ValidateReferences afterwards.
func Load(ctx context.Context, reg *registry.Registry, defs []cty.Value) error {
	logger := ctxlog.FromContext(ctx)
	dctx := decode.NewContext(reg)

	for i, def := range defs {
		p, err := Decode(def, dctx)
		if err != nil {
			return fmt.Errorf("definition %d (%s): %w", i, describe(def), err)
		}
		if err := reg.Extend(p); err != nil {
			return fmt.Errorf("definition %d (%s): %w", i, describe(def), err)
		}
		logger.Debug("Prototype registered.", "category", p.ProtoType(), "name", p.ProtoName())
	}
	return nil
}

func describe(def cty.Value) string {
	if name, err := dynval.String(dynval.Attr(def, "name")); err == nil {
		return name
	}
	return "unnamed"
}
