// Package prototypes declares the concrete record schemas the engine
// decodes definitions into. Everything here is configuration of the
// internal/decode, internal/variant and internal/registry packages: a
// category constant, a struct, a schema table, and a decoder per record
// kind, plus the top-level dispatch that selects a schema from a
// definition's "type" discriminator.
package prototypes
