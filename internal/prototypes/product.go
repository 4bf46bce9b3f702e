package prototypes

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/prototable/internal/decode"
)

// Product is one output of a recipe. A product either has a fixed amount or
// an amount_min/amount_max range; the range bounds become mandatory exactly
// when no fixed amount was given.
type Product struct {
	Name        string
	Amount      *int64
	AmountMin   int64
	AmountMax   int64
	Probability float64
}

func productRangeNeeded(p *Product) bool { return p.Amount == nil }

func clampProductRange(p *Product) error {
	if p.Amount == nil && p.AmountMax < p.AmountMin {
		p.AmountMax = p.AmountMin
	}
	return nil
}

// productSchema decodes the list form, one table per product.
var productSchema = decode.NewSchema("product",
	[]decode.Field[Product]{
		{Key: "name", Required: true, Bind: bindString(func(p *Product) *string { return &p.Name })},
		{Key: "amount", Bind: bindIntPtr(func(p *Product) **int64 { return &p.Amount }, 1, 65535)},
		{Key: "amount_min", RequiredIf: productRangeNeeded, Bind: bindInt(func(p *Product) *int64 { return &p.AmountMin }, 1, 65535)},
		{Key: "amount_max", RequiredIf: productRangeNeeded, Bind: bindInt(func(p *Product) *int64 { return &p.AmountMax }, 1, 65535)},
		{Key: "probability", Default: defNum(1), Bind: bindFloatBetween(func(p *Product) *float64 { return &p.Probability }, 0, 1)},
	},
	clampProductRange,
)

// inlineProductSchema decodes the single-product form written directly in
// the recipe's own table. Its keys are renamed ("result", "result_count")
// so they cannot collide with the recipe's attributes.
var inlineProductSchema = decode.NewSchema("product",
	[]decode.Field[Product]{
		{Key: "result", Name: "name", Required: true, Bind: bindString(func(p *Product) *string { return &p.Name })},
		{Key: "result_count", Name: "amount", Default: defInt(1), Bind: bindIntPtr(func(p *Product) **int64 { return &p.Amount }, 1, 65535)},
		{Key: "result_probability", Name: "probability", Default: defNum(1), Bind: bindFloatBetween(func(p *Product) *float64 { return &p.Probability }, 0, 1)},
	},
)

// DecodeProduct decodes one product table of the list form.
func DecodeProduct(v cty.Value, ctx *decode.Context) (*Product, error) {
	return productSchema.Decode(v, ctx)
}
