package prototypes

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/prototable/internal/decode"
	"github.com/vk/prototable/internal/dynval"
	"github.com/vk/prototable/internal/protoerr"
	"github.com/vk/prototable/internal/registry"
	"github.com/vk/prototable/internal/variant"
)

// Ingredient is one input of a recipe. The referenced item or fluid may be
// defined later in the same load, so Target is a deferred reference into the
// category named by Type.
type Ingredient struct {
	Type   string
	Name   string
	Amount int64
	Target *registry.Ref[registry.Prototype]
}

var ingredientSchema = decode.NewSchema("ingredient",
	[]decode.Field[Ingredient]{
		{Key: "type", Default: defStr(CategoryItem), Bind: bindString(func(i *Ingredient) *string { return &i.Type })},
		{Key: "name", Required: true, Bind: bindString(func(i *Ingredient) *string { return &i.Name })},
		{Key: "amount", Required: true, Bind: bindInt(func(i *Ingredient) *int64 { return &i.Amount }, 1, 65535)},
	},
	func(i *Ingredient) error {
		if i.Type != CategoryItem && i.Type != CategoryFluid {
			return protoerr.Invariantf("ingredient type must be %q or %q, got %q", CategoryItem, CategoryFluid, i.Type)
		}
		return nil
	},
)

// ingredientDispatcher accepts the full table form and the two-element
// shorthand ["iron-plate", 2]. The table form is declared first so a table
// is never misread as a sequence.
var ingredientDispatcher = variant.New[*Ingredient]("ingredient",
	variant.Case[*Ingredient]{
		Name: "full table",
		When: func(v cty.Value) bool { return dynval.Has(v, "name") },
		Decode: func(v cty.Value, ctx *decode.Context) (*Ingredient, error) {
			return ingredientSchema.Decode(v, ctx)
		},
	},
	variant.Case[*Ingredient]{
		Name: "shorthand pair",
		When: func(v cty.Value) bool { return dynval.KindOf(v) == dynval.KindSequence },
		Decode: func(v cty.Value, ctx *decode.Context) (*Ingredient, error) {
			nameVal, err := dynval.Index(v, 0)
			if err != nil {
				return nil, err
			}
			name, err := dynval.String(nameVal)
			if err != nil {
				return nil, err
			}
			amountVal, err := dynval.Index(v, 1)
			if err != nil {
				return nil, err
			}
			amount, err := dynval.IntBetween(amountVal, 1, 65535)
			if err != nil {
				return nil, err
			}
			return &Ingredient{Type: CategoryItem, Name: name, Amount: amount}, nil
		},
	},
)

// DecodeIngredient decodes one ingredient of either form and creates the
// deferred reference to the named item or fluid.
func DecodeIngredient(v cty.Value, ctx *decode.Context) (*Ingredient, error) {
	ing, err := ingredientDispatcher.Decode(v, ctx)
	if err != nil {
		return nil, err
	}
	ing.Target = registry.NewRef[registry.Prototype](ctx.Registry, ing.Type, ing.Name)
	return ing, nil
}

// Recipe turns ingredients into products. Products are written either as a
// `results` array or as a single product inline in the recipe table
// (`result`, `result_count`).
type Recipe struct {
	Base
	Category       string
	EnergyRequired float64
	Enabled        bool
	Ingredients    []*Ingredient
	Products       []*Product
}

var recipeSchema = decode.NewSchema("recipe",
	[]decode.Field[Recipe]{
		{Key: "name", Required: true, Bind: bindString(func(r *Recipe) *string { return &r.Name })},
		{Key: "type", Default: defStr(CategoryRecipe), Bind: bindString(func(r *Recipe) *string { return &r.Type })},
		{Key: "category", Default: defStr("crafting"), Bind: bindString(func(r *Recipe) *string { return &r.Category })},
		{Key: "energy_required", Default: defNum(0.5), Bind: bindFloat(func(r *Recipe) *float64 { return &r.EnergyRequired })},
		{Key: "enabled", Default: defBool(true), Bind: bindBool(func(r *Recipe) *bool { return &r.Enabled })},
		{
			Key:      "ingredients",
			Required: true,
			Bind: func(dst *Recipe, v cty.Value, ctx *decode.Context) error {
				elems, err := dynval.Elements(v)
				if err != nil {
					return err
				}
				for i, elem := range elems {
					ing, err := DecodeIngredient(elem, ctx)
					if err != nil {
						return fmt.Errorf("element %d: %w", i, err)
					}
					dst.Ingredients = append(dst.Ingredients, ing)
				}
				return nil
			},
		},
		{
			Key:        "results",
			FlattenSeq: true,
			Bind: func(dst *Recipe, v cty.Value, ctx *decode.Context) error {
				product, err := productSchema.Decode(v, ctx)
				if err != nil {
					return err
				}
				dst.Products = append(dst.Products, product)
				return nil
			},
			SelfBind: func(dst *Recipe, v cty.Value, ctx *decode.Context) error {
				product, err := inlineProductSchema.Decode(v, ctx)
				if err != nil {
					return err
				}
				dst.Products = append(dst.Products, product)
				return nil
			},
		},
	},
	func(r *Recipe) error {
		if len(r.Products) == 0 {
			return protoerr.Invariantf("recipe produces nothing")
		}
		if r.EnergyRequired <= 0 {
			return protoerr.Invariantf("energy_required must be positive, got %g", r.EnergyRequired)
		}
		return nil
	},
)

// DecodeRecipe decodes one recipe definition table.
func DecodeRecipe(v cty.Value, ctx *decode.Context) (*Recipe, error) {
	return recipeSchema.Decode(v, ctx)
}
