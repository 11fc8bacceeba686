// Package archive is a compact binary serialization core.
//
// It converts in-memory values of arbitrary Go types to and from a byte
// stream. The central idea, carried over from the C++ zpp::serializer
// this package is modeled on, is that every value is routed through a
// single dispatch function to exactly one handler: a user-defined
// Serialize hook, a built-in container handler, a pointer/interface
// handler, or a raw primitive. Runtime-polymorphic values (structs
// reached only through an interface) are handled by the registry
// package, keyed by a stable 64-bit id derived from a name via the
// typeid package.
//
// Output archives append to a caller-owned growable buffer; input
// archives read from a caller-owned byte slice. Neither archive is
// self-describing: there are no field names, no per-field tags, and no
// schema version beyond whatever a polymorphic id carries. Producer and
// consumer must agree on types and field order; byte order is always
// little-endian regardless of host platform.
package archive
