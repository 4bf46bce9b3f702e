package decode

import (
	"github.com/vk/prototable/internal/registry"
)

// Context carries the mutable load state through a decode call. Bind
// functions use it to create deferred references and, for self-registering
// sub-records, to insert into the registry's categories.
type Context struct {
	Registry *registry.Registry
}

// NewContext returns a Context decoding into the given registry.
func NewContext(reg *registry.Registry) *Context {
	return &Context{Registry: reg}
}
