// Package snapshot encodes composite trees into self-checking byte frames.
//
// # Frame Layout
//
// A frame is a fixed 20-byte little-endian header followed by the payload:
//
//	offset  size  field
//	0       4     magic "CTS1"
//	4       1     format version
//	5       1     codec flags (bit 0: snappy)
//	6       2     reserved, zero
//	8       4     payload length
//	12      8     xxhash64 of the payload as stored
//
// The payload is a msgpack encoded node record. Codec stages are applied in
// order when encoding and in reverse order when decoding, each one selected
// by its flag bit.
//
// # Records
//
// A node record is one of tree, AMR, collection, point set or uniform grid.
// Trees and collections carry their slots in order, empty slots included,
// together with the slot metadata. Metadata values keep their Go type on a
// round trip for strings, booleans, int, int64, float64, their slices,
// bounding boxes and nested [composite.Information] bags; other value types
// are rejected with [ErrUnsupported].
package snapshot
