// Package tree provides the in-memory content tree edited by the admin console and published to the
// read-only viewer. The tree is a hierarchy of named directories and documents, where a document holds
// an opaque rich-text (HTML) payload and a directory holds an ordered list of uniquely named entries.
//
// The main features of this package include:
//
//   - Defining the Node structure, an explicit two-variant union of directories and documents.
//   - Resolving slash-delimited paths against the tree, starting from the root directory "/".
//   - Mutating the tree through a Store, where every operation is validated up front and applied
//     atomically: create, delete, reorder and content edits.
//   - Serializing the tree into the JSON text consumed by the viewer, and deserializing it back
//     without losing entry order or the directory/document distinction.
//   - Comparing two trees to report unpublished changes.
//
// Entries keep their insertion order. Nothing in this package sorts directory entries, the only way to
// change the display order is Store.Reorder.
package tree
