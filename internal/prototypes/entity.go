package prototypes

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/prototable/internal/decode"
	"github.com/vk/prototable/internal/protoerr"
)

// Entity is a placeable world object. Its footprint is a width/height pair;
// a definition that gives only the width gets a square footprint.
type Entity struct {
	Base
	Width     int64
	Height    int64
	MaxHealth float64
	Flags     []string
}

var entitySchema = decode.NewSchema("entity",
	[]decode.Field[Entity]{
		{Key: "name", Required: true, Bind: bindString(func(e *Entity) *string { return &e.Name })},
		{Key: "type", Default: defStr(CategoryEntity), Bind: bindString(func(e *Entity) *string { return &e.Type })},
		{Key: "width", Required: true, Bind: bindInt(func(e *Entity) *int64 { return &e.Width }, 1, 32767)},
		{
			Key:         "height",
			DefaultFrom: func(e *Entity) cty.Value { return cty.NumberIntVal(e.Width) },
			Bind:        bindInt(func(e *Entity) *int64 { return &e.Height }, 1, 32767),
		},
		{Key: "max_health", Default: defNum(100), Bind: bindFloat(func(e *Entity) *float64 { return &e.MaxHealth })},
		{Key: "flags", Bind: bindStrings(func(e *Entity) *[]string { return &e.Flags })},
	},
	func(e *Entity) error {
		if e.MaxHealth < 0 {
			return protoerr.Invariantf("max_health must not be negative, got %g", e.MaxHealth)
		}
		return nil
	},
)

// DecodeEntity decodes one entity definition table.
func DecodeEntity(v cty.Value, ctx *decode.Context) (*Entity, error) {
	return entitySchema.Decode(v, ctx)
}
