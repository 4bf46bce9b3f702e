package prototypes

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/prototable/internal/decode"
)

// VirtualSignal is a pure identifier prototype; it exists only so circuit
// networks can carry signals that are not backed by an item or fluid.
type VirtualSignal struct {
	Base
	IconSpec
}

var virtualSignalSchema = decode.NewSchema("virtual signal",
	[]decode.Field[VirtualSignal]{
		{Key: "name", Required: true, Bind: bindString(func(s *VirtualSignal) *string { return &s.Name })},
		{Key: "type", Default: defStr(CategoryVirtualSignal), Bind: bindString(func(s *VirtualSignal) *string { return &s.Type })},
		{Flatten: true, Name: "icon", Bind: bindIconSpec(func(s *VirtualSignal) *IconSpec { return &s.IconSpec })},
	},
)

// DecodeVirtualSignal decodes one virtual signal definition table.
func DecodeVirtualSignal(v cty.Value, ctx *decode.Context) (*VirtualSignal, error) {
	return virtualSignalSchema.Decode(v, ctx)
}
