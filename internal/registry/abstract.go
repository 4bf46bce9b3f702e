package registry

import (
	"github.com/vk/prototable/internal/protoerr"
)

// AbstractID is the identity of a prototype located through an abstract
// kind: its name plus the concrete category it was found in. It is a cheap
// copy, not a handle into the registry.
type AbstractID struct {
	Name string
	Type string
}

// AbstractKind is a read-only union view over several concrete categories,
// tried in declaration order. It has no storage of its own: lookups yield
// identities via FindCloned, and direct Find or Extend are always errors.
type AbstractKind struct {
	name       string
	candidates []string
}

// Abstract declares an abstract kind over the given candidate categories.
// The candidate order is the resolution priority and is fixed for the
// lifetime of the kind.
func Abstract(name string, candidates ...string) AbstractKind {
	if len(candidates) == 0 {
		panic("abstract kind declared with no candidate categories")
	}
	return AbstractKind{name: name, candidates: candidates}
}

// Name returns the abstract kind's name.
func (k AbstractKind) Name() string { return k.name }

// Candidates returns the candidate categories in priority order.
func (k AbstractKind) Candidates() []string {
	out := make([]string, len(k.candidates))
	copy(out, k.candidates)
	return out
}

// Find always fails: an abstract kind cannot back a direct registry handle
// because the concrete storage differs per candidate category.
func (k AbstractKind) Find(r *Registry, name string) (Prototype, error) {
	return nil, protoerr.AbstractFindf("abstract kind %q cannot be looked up directly; use FindCloned", k.name)
}

// FindCloned tries each candidate category in priority order and returns the
// identity of the first prototype found under the given name.
func (k AbstractKind) FindCloned(r *Registry, name string) (AbstractID, error) {
	for _, category := range k.candidates {
		if p, err := r.Find(category, name); err == nil {
			return AbstractID{Name: p.ProtoName(), Type: category}, nil
		}
	}
	return AbstractID{}, protoerr.NotFoundf("no prototype named %q in any candidate category of %q", name, k.name)
}

// Extend always fails: abstract kinds are views, never storage targets.
func (k AbstractKind) Extend(r *Registry, p Prototype) error {
	return protoerr.AbstractExtendf("abstract kind %q cannot store prototypes", k.name)
}
