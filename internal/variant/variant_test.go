package variant_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
	"pgregory.net/rapid"

	"github.com/vk/prototable/internal/decode"
	"github.com/vk/prototable/internal/dynval"
	"github.com/vk/prototable/internal/protoerr"
	"github.com/vk/prototable/internal/registry"
	"github.com/vk/prototable/internal/variant"
)

type shape struct {
	kind string
}

func constCase(name, kind string, when func(cty.Value) bool) variant.Case[*shape] {
	return variant.Case[*shape]{
		Name: name,
		When: when,
		Decode: func(cty.Value, *decode.Context) (*shape, error) {
			return &shape{kind: kind}, nil
		},
	}
}

func hasKey(key string) func(cty.Value) bool {
	return func(v cty.Value) bool { return dynval.Has(v, key) }
}

func testCtx() *decode.Context {
	return decode.NewContext(registry.New())
}

func TestFirstMatchingCaseWins(t *testing.T) {
	t.Parallel()

	d := variant.New[*shape]("shape",
		constCase("a", "a", hasKey("alpha")),
		constCase("b", "b", hasKey("beta")),
	)

	// Deliberately ambiguous: the input satisfies both predicates.
	ambiguous := cty.ObjectVal(map[string]cty.Value{
		"alpha": cty.True,
		"beta":  cty.True,
	})

	got, err := d.Decode(ambiguous, testCtx())
	require.NoError(t, err)
	require.Equal(t, "a", got.kind, "the earlier-declared case must win")
}

func TestNoMatchingVariant(t *testing.T) {
	t.Parallel()

	d := variant.New[*shape]("shape",
		constCase("a", "a", hasKey("alpha")),
	)

	_, err := d.Decode(cty.ObjectVal(map[string]cty.Value{"gamma": cty.True}), testCtx())
	require.ErrorIs(t, err, protoerr.ErrNoMatchingVariant)
}

func TestDiscriminatorShortCircuits(t *testing.T) {
	t.Parallel()

	d := variant.New[*shape]("shape",
		// This looser structural case would also match, but the tag decides.
		constCase("fallback", "fallback", func(v cty.Value) bool { return dynval.KindOf(v) == dynval.KindTable }),
	).WithTag("type", map[string]variant.DecodeFunc[*shape]{
		"circle": func(cty.Value, *decode.Context) (*shape, error) { return &shape{kind: "circle"}, nil },
	})

	got, err := d.Decode(cty.ObjectVal(map[string]cty.Value{
		"type": cty.StringVal("circle"),
	}), testCtx())
	require.NoError(t, err)
	require.Equal(t, "circle", got.kind)

	// Without the tag, the structural cases still apply.
	got, err = d.Decode(cty.ObjectVal(map[string]cty.Value{"r": cty.NumberIntVal(1)}), testCtx())
	require.NoError(t, err)
	require.Equal(t, "fallback", got.kind)
}

func TestUnknownVariantTag(t *testing.T) {
	t.Parallel()

	d := variant.New[*shape]("shape").WithTag("type", map[string]variant.DecodeFunc[*shape]{
		"circle": func(cty.Value, *decode.Context) (*shape, error) { return &shape{kind: "circle"}, nil },
	})

	_, err := d.Decode(cty.ObjectVal(map[string]cty.Value{
		"type": cty.StringVal("pentagon"),
	}), testCtx())
	require.ErrorIs(t, err, protoerr.ErrUnknownVariantTag)
	require.ErrorContains(t, err, "pentagon")
}

func TestNonStringDiscriminatorFails(t *testing.T) {
	t.Parallel()

	d := variant.New[*shape]("shape").WithTag("type", map[string]variant.DecodeFunc[*shape]{
		"circle": func(cty.Value, *decode.Context) (*shape, error) { return &shape{kind: "circle"}, nil },
	})

	_, err := d.Decode(cty.ObjectVal(map[string]cty.Value{
		"type": cty.NumberIntVal(7),
	}), testCtx())
	require.ErrorIs(t, err, protoerr.ErrTypeMismatch)
}

// Property: whatever extra keys an input carries, an input matching both
// cases always resolves to the first-declared one.
func TestAmbiguityAlwaysResolvesToEarlierCase(t *testing.T) {
	t.Parallel()

	d := variant.New[*shape]("shape",
		constCase("a", "a", hasKey("alpha")),
		constCase("b", "b", hasKey("beta")),
	)

	rapid.Check(t, func(t *rapid.T) {
		attrs := map[string]cty.Value{
			"alpha": cty.True,
			"beta":  cty.True,
		}
		extra := rapid.SliceOfDistinct(
			rapid.StringMatching(`[a-z]{1,8}`),
			func(s string) string { return s },
		).Draw(t, "extra")
		for _, key := range extra {
			attrs[key] = cty.True
		}

		got, err := d.Decode(cty.ObjectVal(attrs), testCtx())
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if got.kind != "a" {
			t.Fatalf("ambiguous input resolved to %q, want first-declared case", got.kind)
		}
	})
}
