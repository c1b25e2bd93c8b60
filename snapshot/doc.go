// Package snapshot packs a content tree into a self-describing binary blob, e.g. to archive a
// published revision or move it between gateways.
//
// Two formats are supported:
//
//   - binary: magic bytes, a big endian codec version and the length prefixed tree text.
//   - unixfs: the tree text embedded as the data of a UnixFS raw node.
//
// Either way the payload is the persisted JSON form of the tree, so entry order is kept.
package snapshot
