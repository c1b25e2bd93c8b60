package tree

import (
	"strings"

	"github.com/pkg/errors"
)

// PathSeparator delimits names in a path.
const PathSeparator = "/"

// segments splits a path into names. A single leading separator is dropped, nothing else is
// normalized: "." and ".." are looked up literally and empty segments never match an entry.
func segments(path string) []string {
	if path == "" || path == PathSeparator {
		return nil
	}

	parts := strings.Split(path, PathSeparator)
	if parts[0] == "" {
		parts = parts[1:]
	}

	return parts
}

// Resolve locates the node addressed by path, starting from root.
func Resolve(root *Node, path string) (*Node, error) {
	current := root
	for _, part := range segments(path) {
		// cannot traverse through a document
		child, found := current.Child(part)
		if !found {
			return nil, errors.WithMessagef(ErrNotFound, "path %q", path)
		}
		current = child
	}

	return current, nil
}

// CanonicalPath returns the absolute form of path, e.g. "a/b" becomes "/a/b".
func CanonicalPath(path string) string {
	return PathSeparator + strings.Join(segments(path), PathSeparator)
}

// JoinPath appends name to the parent path.
func JoinPath(parent, name string) string {
	return childPath(CanonicalPath(parent), name)
}

// childPath appends name to a parent path that is already canonical.
func childPath(parent, name string) string {
	if parent == PathSeparator {
		return parent + name
	}
	return parent + PathSeparator + name
}

// SplitPath splits path into its parent path and last name. The root has no name.
func SplitPath(path string) (parent, name string) {
	parts := segments(path)
	if len(parts) == 0 {
		return PathSeparator, ""
	}

	return PathSeparator + strings.Join(parts[:len(parts)-1], PathSeparator), parts[len(parts)-1]
}

// IsRoot reports whether path addresses the root directory.
func IsRoot(path string) bool {
	return len(segments(path)) == 0
}

// ValidateName checks that name can be used as a directory entry.
func ValidateName(name string) error {
	if name == "" {
		return errors.WithMessage(ErrInvalidName, "name is empty")
	}

	if strings.Contains(name, PathSeparator) {
		return errors.WithMessagef(ErrInvalidName, "name %q contains %q", name, PathSeparator)
	}

	return nil
}
