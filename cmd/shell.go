package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/ckhero/content-tree/session"
	"github.com/ckhero/content-tree/tree"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	shellArgs sourceArgument

	shellCmd = &cobra.Command{
		Use:   "shell",
		Short: "Edit the content tree interactively",
		Run:   startShell,
	}

	errQuit = errors.New("quit")
)

func init() {
	bindSourceFlags(shellCmd, &shellArgs)

	rootCmd.AddCommand(shellCmd)
}

func startShell(*cobra.Command, []string) {
	sess, closer := mustLoadSession(shellArgs)
	defer closer()

	newShell(sess, os.Stdout, shellArgs.timeout).run(os.Stdin)
}

type shellCommand struct {
	usage string
	run   func(sh *shell, arg string) error
}

var shellCommands map[string]shellCommand

func init() {
	shellCommands = map[string]shellCommand{
		"help":    {"help", (*shell).help},
		"status":  {"status", (*shell).status},
		"ls":      {"ls [path]", (*shell).list},
		"tree":    {"tree", (*shell).showTree},
		"cd":      {"cd <name>|..", (*shell).changeDirectory},
		"goto":    {"goto <path>", (*shell).navigateTo},
		"select":  {"select <name>", (*shell).selectEntry},
		"mkdir":   {"mkdir <name>", (*shell).createFolder},
		"touch":   {"touch <name>", (*shell).createFile},
		"rm":      {"rm", (*shell).deleteSelected},
		"mv":      {"mv up|down", (*shell).move},
		"cat":     {"cat <path>", (*shell).cat},
		"edit":    {"edit <path> <content>", (*shell).edit},
		"changes": {"changes", (*shell).changes},
		"publish": {"publish", (*shell).publish},
		"reload":  {"reload", (*shell).reload},
		"exit":    {"exit", (*shell).quit},
	}
}

// shell is a line based editor over a session. Errors are reported and the shell goes on.
type shell struct {
	sess    *session.Session
	out     io.Writer
	timeout time.Duration
}

func newShell(sess *session.Session, out io.Writer, timeout time.Duration) *shell {
	return &shell{sess, out, timeout}
}

func (sh *shell) run(in io.Reader) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for sh.prompt(); scanner.Scan(); sh.prompt() {
		if err := sh.exec(scanner.Text()); err != nil {
			if err == errQuit {
				return
			}
			fmt.Fprintf(sh.out, "error: %v\n", err)
		}
	}
}

func (sh *shell) prompt() {
	var current string
	sh.sess.Do(func(nav *session.Navigator) error {
		current = nav.CurrentPath()
		return nil
	})

	fmt.Fprintf(sh.out, "%s> ", current)
}

func (sh *shell) exec(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	name, arg, _ := strings.Cut(line, " ")
	command, ok := shellCommands[name]
	if !ok {
		return errors.Errorf("unknown command %q, try help", name)
	}

	return command.run(sh, strings.TrimSpace(arg))
}

func (sh *shell) newContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), sh.timeout)
}

func (sh *shell) help(string) error {
	names := make([]string, 0, len(shellCommands))
	for name := range shellCommands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(sh.out, "  %s\n", shellCommands[name].usage)
	}

	return nil
}

func (sh *shell) status(string) error {
	status, err := sh.sess.Status()
	if err != nil {
		return err
	}

	fmt.Fprintf(sh.out, "path:      %s\n", status.CurrentPath)
	fmt.Fprintf(sh.out, "selected:  %s\n", status.Selected)
	fmt.Fprintf(sh.out, "dirty:     %v\n", status.Dirty)
	fmt.Fprintf(sh.out, "revision:  %s\n", status.Revision.Hex())
	fmt.Fprintf(sh.out, "published: %s\n", status.PublishedRevision.Hex())

	return nil
}

func (sh *shell) list(path string) error {
	return sh.sess.Do(func(nav *session.Navigator) error {
		var (
			entries []tree.Entry
			err     error
		)
		if path == "" {
			entries, err = nav.List()
		} else {
			entries, err = nav.Store().List(path)
		}
		if err != nil {
			return err
		}

		selected, _ := nav.Selected()
		for _, entry := range entries {
			mark := " "
			if path == "" && entry.Name == selected {
				mark = "*"
			}

			name := entry.Name
			if entry.Kind == tree.KindDirectory {
				name += "/"
			}
			fmt.Fprintf(sh.out, "%s %s\n", mark, name)
		}

		return nil
	})
}

func (sh *shell) showTree(string) error {
	return sh.sess.Do(func(nav *session.Navigator) error {
		tree.PrettyPrint(sh.out, nav.Store().Root())
		return nil
	})
}

func (sh *shell) changeDirectory(name string) error {
	return sh.sess.Do(func(nav *session.Navigator) error {
		switch {
		case name == "..":
			nav.NavigateUp()
		case !nav.NavigateInto(name):
			return errors.WithMessagef(tree.ErrNotFound, "directory %q", name)
		}
		return nil
	})
}

func (sh *shell) navigateTo(path string) error {
	return sh.sess.Do(func(nav *session.Navigator) error {
		node, err := nav.NavigateTo(path)
		if err != nil {
			return err
		}

		if node.IsDocument() {
			fmt.Fprintln(sh.out, node.Content)
		}
		return nil
	})
}

func (sh *shell) selectEntry(name string) error {
	return sh.sess.Do(func(nav *session.Navigator) error {
		return nav.Select(name)
	})
}

func (sh *shell) createFolder(name string) error {
	return sh.create(name, tree.KindDirectory)
}

func (sh *shell) createFile(name string) error {
	return sh.create(name, tree.KindDocument)
}

func (sh *shell) create(name string, kind tree.Kind) error {
	return sh.sess.Do(func(nav *session.Navigator) error {
		_, err := nav.CreateChild(name, kind)
		return err
	})
}

func (sh *shell) deleteSelected(string) error {
	return sh.sess.Do(func(nav *session.Navigator) error {
		return nav.Delete()
	})
}

func (sh *shell) move(arg string) error {
	direction, err := tree.ParseDirection(arg)
	if err != nil {
		return err
	}

	return sh.sess.Do(func(nav *session.Navigator) error {
		return nav.Reorder(direction)
	})
}

func (sh *shell) cat(path string) error {
	return sh.sess.Do(func(nav *session.Navigator) error {
		node, err := nav.Store().Resolve(path)
		if err != nil {
			return err
		}

		if !node.IsDocument() {
			return errors.WithMessagef(tree.ErrWrongKind, "%q is a directory", path)
		}

		fmt.Fprintln(sh.out, node.Content)
		return nil
	})
}

func (sh *shell) edit(arg string) error {
	path, content, _ := strings.Cut(arg, " ")

	return sh.sess.Do(func(nav *session.Navigator) error {
		return nav.Store().SetContent(path, content)
	})
}

func (sh *shell) changes(string) error {
	changes, err := sh.sess.Changes()
	if err != nil {
		return err
	}

	tree.PrettyPrintChanges(sh.out, changes)
	return nil
}

func (sh *shell) publish(string) error {
	ctx, cancel := sh.newContext()
	defer cancel()

	result, err := sh.sess.Publish(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(sh.out, result.Message)
	return nil
}

func (sh *shell) reload(string) error {
	ctx, cancel := sh.newContext()
	defer cancel()

	return sh.sess.Reload(ctx)
}

func (sh *shell) quit(string) error {
	return errQuit
}
