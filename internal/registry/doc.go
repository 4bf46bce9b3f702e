// Package registry provides the central store for decoded prototypes.
//
// The Registry partitions prototypes into string-keyed categories, one per
// concrete record type, and enforces name uniqueness within each category.
// While definitions are being decoded, records may name other records that
// have not been inserted yet; such links are created as deferred references
// and recorded on the registry's pending list. After the decode phase the
// caller runs ValidateReferences exactly once, which resolves every pending
// reference in creation order and fails fast on the first dangling name.
//
// Abstract kinds are read-only union views over several concrete categories,
// for record kinds that are polymorphic across otherwise unrelated storage.
package registry
