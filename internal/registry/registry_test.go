package registry_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/prototable/internal/ctxlog"
	"github.com/vk/prototable/internal/protoerr"
	"github.com/vk/prototable/internal/registry"
)

type widget struct {
	name string
}

func (w *widget) ProtoName() string { return w.name }
func (w *widget) ProtoType() string { return "widget" }

type gadget struct {
	name string
}

func (g *gadget) ProtoName() string { return g.name }
func (g *gadget) ProtoType() string { return "gadget" }

func testCtx() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestExtendAndFind(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	require.NoError(t, reg.Extend(&widget{name: "foo"}))

	p, err := reg.Find("widget", "foo")
	require.NoError(t, err)
	require.Equal(t, "foo", p.ProtoName())

	w, err := registry.Find[*widget](reg, "widget", "foo")
	require.NoError(t, err)
	require.Equal(t, "foo", w.name)

	_, err = reg.Find("widget", "missing")
	require.ErrorIs(t, err, protoerr.ErrPrototypeNotFound)

	_, err = reg.Find("no-such-category", "foo")
	require.ErrorIs(t, err, protoerr.ErrPrototypeNotFound)
}

func TestFindIsCaseSensitive(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	require.NoError(t, reg.Extend(&widget{name: "Foo"}))

	_, err := reg.Find("widget", "foo")
	require.ErrorIs(t, err, protoerr.ErrPrototypeNotFound)
}

func TestExtendRejectsDuplicatesByDefault(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	first := &widget{name: "foo"}
	require.NoError(t, reg.Extend(first))

	err := reg.Extend(&widget{name: "foo"})
	require.ErrorIs(t, err, protoerr.ErrDuplicateName)

	// The original entry survives the rejected insertion.
	w, err := registry.Find[*widget](reg, "widget", "foo")
	require.NoError(t, err)
	require.Same(t, first, w)
}

func TestAllowOverwriteReplaces(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	reg.AllowOverwrite("widget")

	require.NoError(t, reg.Extend(&widget{name: "foo"}))
	second := &widget{name: "foo"}
	require.NoError(t, reg.Extend(second))

	w, err := registry.Find[*widget](reg, "widget", "foo")
	require.NoError(t, err)
	require.Same(t, second, w)
	require.Equal(t, 1, reg.Len("widget"))
}

func TestDuplicatePolicyIsPerCategory(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	reg.AllowOverwrite("widget")

	require.NoError(t, reg.Extend(&widget{name: "foo"}))
	require.NoError(t, reg.Extend(&widget{name: "foo"}))

	require.NoError(t, reg.Extend(&gadget{name: "foo"}))
	require.ErrorIs(t, reg.Extend(&gadget{name: "foo"}), protoerr.ErrDuplicateName)
}

func TestNamespacesAreIndependent(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	require.NoError(t, reg.Extend(&widget{name: "foo"}))
	require.NoError(t, reg.Extend(&gadget{name: "foo"}))

	require.Equal(t, 1, reg.Len("widget"))
	require.Equal(t, 1, reg.Len("gadget"))
	require.Equal(t, []string{"gadget", "widget"}, reg.Categories())
}

func TestTypedFindRejectsWrongRecordType(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	require.NoError(t, reg.Extend(&widget{name: "foo"}))

	_, err := registry.Find[*gadget](reg, "widget", "foo")
	require.ErrorIs(t, err, protoerr.ErrTypeMismatch)
}

func TestExtendRejectsEmptyName(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	require.Error(t, reg.Extend(&widget{name: ""}))
}

func TestAllSortedByName(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	require.NoError(t, reg.Extend(&widget{name: "b"}))
	require.NoError(t, reg.Extend(&widget{name: "a"}))

	all := reg.All("widget")
	require.Len(t, all, 2)
	require.Equal(t, "a", all[0].ProtoName())
	require.Equal(t, "b", all[1].ProtoName())
}
