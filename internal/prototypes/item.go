package prototypes

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/prototable/internal/decode"
	"github.com/vk/prototable/internal/dynval"
	"github.com/vk/prototable/internal/registry"
)

// Item is a carriable prototype. An item that places an entity names it by
// reference; the entity may be defined later in the same load, so the link
// is deferred until the validation pass.
type Item struct {
	Base
	IconSpec
	StackSize   int64
	FuelValue   float64
	PlaceResult *registry.Ref[*Entity]
	PickSound   *Sound
}

var itemSchema = decode.NewSchema("item",
	[]decode.Field[Item]{
		{Key: "name", Required: true, Bind: bindString(func(i *Item) *string { return &i.Name })},
		{Key: "type", Default: defStr(CategoryItem), Bind: bindString(func(i *Item) *string { return &i.Type })},
		{Flatten: true, Name: "icon", Bind: bindIconSpec(func(i *Item) *IconSpec { return &i.IconSpec })},
		{Key: "stack_size", Required: true, Bind: bindInt(func(i *Item) *int64 { return &i.StackSize }, 1, 65535)},
		{Key: "fuel_value", Default: defNum(0), Bind: bindFloat(func(i *Item) *float64 { return &i.FuelValue })},
		{
			Key: "place_result",
			Bind: func(dst *Item, v cty.Value, ctx *decode.Context) error {
				name, err := dynval.String(v)
				if err != nil {
					return err
				}
				dst.PlaceResult = registry.NewRef[*Entity](ctx.Registry, CategoryEntity, name)
				return nil
			},
		},
		{
			Key: "pick_sound",
			Bind: func(dst *Item, v cty.Value, ctx *decode.Context) error {
				sound, err := DecodeSound(v, ctx)
				if err != nil {
					return err
				}
				dst.PickSound = sound
				return nil
			},
		},
	},
)

// DecodeItem decodes one item definition table.
func DecodeItem(v cty.Value, ctx *decode.Context) (*Item, error) {
	return itemSchema.Decode(v, ctx)
}
