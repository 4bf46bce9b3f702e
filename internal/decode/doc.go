// Package decode implements the conversion contract between dynamic
// definition tables and concrete prototype structs.
//
// A Schema is an ordered table of field rules evaluated in declaration
// order. Rules bind directly into the target struct as they run, so a later
// rule's default expression or mandatory predicate can read every sibling
// field bound before it. The first rule violation aborts the whole record's
// decode; a partially bound record is never observable outside the schema.
//
// Schemas are plain data. The concrete record types under
// internal/prototypes are configurations of this package, not extensions of
// it.
package decode
