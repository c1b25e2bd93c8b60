package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/ckhero/content-tree/tree"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	diffArgs struct {
		timeout time.Duration
	}

	diffCmd = &cobra.Command{
		Use:   "diff <base> <current>",
		Short: "Diff two persisted content trees, each a file path or an http URL",
		Args:  cobra.ExactArgs(2),
		Run:   diffTrees,
	}
)

func init() {
	diffCmd.Flags().DurationVar(&diffArgs.timeout, "timeout", 30*time.Second, "Timeout of each load request")

	rootCmd.AddCommand(diffCmd)
}

func diffTrees(_ *cobra.Command, args []string) {
	base := mustLoadTree(locationArgument(args[0], diffArgs.timeout))
	current := mustLoadTree(locationArgument(args[1], diffArgs.timeout))

	diffRoot, err := tree.Diff(base, current)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to diff content trees")
	}

	changes := diffRoot.Changes()
	if len(changes) == 0 {
		logrus.Info("No changes")
		return
	}

	tree.PrettyPrintChanges(os.Stdout, changes)
}

// locationArgument treats http(s) locations as URLs and anything else as a file path.
func locationArgument(location string, timeout time.Duration) sourceArgument {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return sourceArgument{loadURL: location, timeout: timeout}
	}

	return sourceArgument{loadFile: location, timeout: timeout}
}
