// Package microjson implements a template-driven parser for a restricted
// dialect of JSON. Given a caller-declared schema describing the expected
// shape of a document, it validates structure, resolves each attribute
// against the schema, converts the value text, and writes the result
// directly to caller-owned storage. Every destination is supplied by the
// caller ahead of time, and the parser's scratch buffers (bounded to a few
// hundred bytes) are call-local. A parse call is not allocation-free: the
// arguments of its internal debug-trace calls are boxed on every parse,
// whether or not a sink is installed with EnableDebug, which costs a small
// heap allocation for, among others, each matched attribute name and each
// array read.
//
// The three core pieces are the Object Reader (ParseObject), the Array
// Reader (ParseArray), and the Address Resolver that sits underneath both,
// translating a schema entry plus an optional enclosing-array index into
// the destination to write. See Kind, AttrSchema, ObjectSchema, and
// ArraySchema for the schema vocabulary, and Status for the closed set of
// diagnostic codes a parse call can return.
package microjson
