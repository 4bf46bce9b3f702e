package prototypes

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/prototable/internal/decode"
	"github.com/vk/prototable/internal/protoerr"
)

// Fluid is a temperature-carrying prototype. The maximum temperature
// defaults to the default temperature and is clamped back to it if a
// definition sets it lower.
type Fluid struct {
	Base
	IconSpec
	DefaultTemperature float64
	MaxTemperature     float64
	HeatCapacity       float64
}

var fluidSchema = decode.NewSchema("fluid",
	[]decode.Field[Fluid]{
		{Key: "name", Required: true, Bind: bindString(func(f *Fluid) *string { return &f.Name })},
		{Key: "type", Default: defStr(CategoryFluid), Bind: bindString(func(f *Fluid) *string { return &f.Type })},
		{Flatten: true, Name: "icon", Bind: bindIconSpec(func(f *Fluid) *IconSpec { return &f.IconSpec })},
		{Key: "default_temperature", Default: defNum(15), Bind: bindFloat(func(f *Fluid) *float64 { return &f.DefaultTemperature })},
		{
			Key:         "max_temperature",
			DefaultFrom: func(f *Fluid) cty.Value { return cty.NumberFloatVal(f.DefaultTemperature) },
			Bind:        bindFloat(func(f *Fluid) *float64 { return &f.MaxTemperature }),
		},
		{Key: "heat_capacity", Default: defNum(1), Bind: bindFloat(func(f *Fluid) *float64 { return &f.HeatCapacity })},
	},
	func(f *Fluid) error {
		if f.HeatCapacity <= 0 {
			return protoerr.Invariantf("heat_capacity must be positive, got %g", f.HeatCapacity)
		}
		if f.MaxTemperature < f.DefaultTemperature {
			f.MaxTemperature = f.DefaultTemperature
		}
		return nil
	},
)

// DecodeFluid decodes one fluid definition table.
func DecodeFluid(v cty.Value, ctx *decode.Context) (*Fluid, error) {
	return fluidSchema.Decode(v, ctx)
}
