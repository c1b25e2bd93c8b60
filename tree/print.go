package tree

import (
	"fmt"
	"io"
)

// PrettyPrint writes the tree rooted at root, one entry per line in display order. Directory names
// end with a slash.
func PrettyPrint(w io.Writer, root *Node) {
	fmt.Fprintln(w, RootName)
	printEntries(w, root, "")
}

func printEntries(w io.Writer, dir *Node, prefix string) {
	for i, entry := range dir.Entries {
		connector, indent := "├── ", "│   "
		if i == len(dir.Entries)-1 {
			connector, indent = "└── ", "    "
		}

		name := entry.Name
		if entry.IsDirectory() {
			name += "/"
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, connector, name)

		if entry.IsDirectory() {
			printEntries(w, entry, prefix+indent)
		}
	}
}

// PrettyPrintChanges writes one line per changed path.
func PrettyPrintChanges(w io.Writer, changes []Change) {
	for _, change := range changes {
		fmt.Fprintf(w, "%-9s %s\n", change.Status, change.Path)
	}
}
