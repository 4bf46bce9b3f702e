package registry

import (
	"context"
	"fmt"

	"github.com/vk/prototable/internal/ctxlog"
)

type refState int

const (
	refCreated refState = iota
	refResolved
	refInvalid
)

// pendingRef is the type-erased validation entry the Registry keeps for each
// deferred reference. The resolve closure closes over the typed reference, so
// the pending list never needs to know the concrete record type.
type pendingRef struct {
	category string
	name     string
	resolve  func(*Registry) error
}

// Ref is a named, lazily resolved handle to a prototype of type T that may
// not have been inserted yet when the reference is created. A Ref moves from
// created to either resolved or invalid exactly once; both outcomes are
// terminal.
type Ref[T Prototype] struct {
	category string
	name     string
	target   T
	state    refState
}

// NewRef creates an unresolved reference to the prototype stored under the
// given category and name, and appends its validation entry to the
// registry's pending list. Creation never fails: forward references to
// not-yet-inserted records are legal until ValidateReferences runs.
func NewRef[T Prototype](r *Registry, category, name string) *Ref[T] {
	ref := &Ref[T]{category: category, name: name}
	r.pending = append(r.pending, pendingRef{
		category: category,
		name:     name,
		resolve:  ref.Resolve,
	})
	return ref
}

// Name returns the referenced prototype's name.
func (ref *Ref[T]) Name() string { return ref.name }

// Category returns the category the reference resolves against.
func (ref *Ref[T]) Category() string { return ref.category }

// Resolved reports whether the reference has been successfully resolved.
func (ref *Ref[T]) Resolved() bool { return ref.state == refResolved }

// Resolve looks the reference up in the registry. On success the target is
// stored and subsequent calls are no-ops; on failure the reference becomes
// invalid and stays so.
func (ref *Ref[T]) Resolve(r *Registry) error {
	switch ref.state {
	case refResolved:
		return nil
	case refInvalid:
		return fmt.Errorf("reference to %s %q is invalid", ref.category, ref.name)
	}

	target, err := Find[T](r, ref.category, ref.name)
	if err != nil {
		ref.state = refInvalid
		return err
	}
	ref.target = target
	ref.state = refResolved
	return nil
}

// Get returns the resolved target. The boolean is false until Resolve has
// succeeded.
func (ref *Ref[T]) Get() (T, bool) {
	if ref.state != refResolved {
		var zero T
		return zero, false
	}
	return ref.target, true
}

// ValidateReferences resolves every deferred reference created during the
// decode phase, in creation order, and returns the first failure. It is
// intended to be called exactly once, after all definitions have been
// decoded; a failure means the load as a whole is invalid. A fully
// successful pass drains the pending list, so the count of outstanding
// references drops to zero.
func (r *Registry) ValidateReferences(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Validating deferred references.", "count", len(r.pending))

	for _, pr := range r.pending {
		if err := pr.resolve(r); err != nil {
			return fmt.Errorf("dangling reference to %s %q: %w", pr.category, pr.name, err)
		}
	}
	r.pending = nil

	logger.Debug("All references resolved.")
	return nil
}

// PendingReferences returns the number of deferred references still awaiting
// a successful validation pass.
func (r *Registry) PendingReferences() int {
	return len(r.pending)
}
