package prototypes

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/prototable/internal/decode"
	"github.com/vk/prototable/internal/registry"
)

// Category names. Each concrete record kind owns one registry category.
const (
	CategoryEntity        = "entity"
	CategoryItem          = "item"
	CategoryFluid         = "fluid"
	CategoryRecipe        = "recipe"
	CategoryVirtualSignal = "virtual-signal"
)

// SignalKind is the abstract union over the categories a circuit signal may
// come from. Candidate order is resolution priority: an item shadows a fluid
// of the same name, which shadows a virtual signal.
var SignalKind = registry.Abstract("signal", CategoryItem, CategoryFluid, CategoryVirtualSignal)

// Base carries the identity every prototype shares.
type Base struct {
	Name string
	Type string
}

// ProtoName implements registry.Prototype.
func (b *Base) ProtoName() string { return b.Name }

// ProtoType implements registry.Prototype.
func (b *Base) ProtoType() string { return b.Type }

// IconSpec is flattened into the prototypes that carry an icon: its keys
// appear inline in the owning definition table rather than under a subtable.
type IconSpec struct {
	Icon     string
	IconSize int64
}

var iconSchema = decode.NewSchema("icon", []decode.Field[IconSpec]{
	{Key: "icon", Bind: bindString(func(s *IconSpec) *string { return &s.Icon })},
	{Key: "icon_size", Default: defInt(64), Bind: bindInt(func(s *IconSpec) *int64 { return &s.IconSize }, 1, 512)},
})

func bindIconSpec[T any](slot func(*T) *IconSpec) decode.BindFunc[T] {
	return func(dst *T, v cty.Value, ctx *decode.Context) error {
		icon, err := iconSchema.Decode(v, ctx)
		if err != nil {
			return err
		}
		*slot(dst) = *icon
		return nil
	}
}
