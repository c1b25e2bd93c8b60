package cmd

import (
	"github.com/ckhero/content-tree/tree"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	statusArgs sourceArgument

	statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Show the revision and size of the persisted content tree",
		Run:   showStatus,
	}
)

func init() {
	bindLoaderFlags(statusCmd, &statusArgs)

	rootCmd.AddCommand(statusCmd)
}

func showStatus(*cobra.Command, []string) {
	root := mustLoadTree(statusArgs)

	revision, err := tree.Revision(root)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to compute revision")
	}

	var directories, documents int
	root.Traverse(tree.RootName, func(node *tree.Node, path string) error {
		if node.IsDirectory() {
			directories++
		} else {
			documents++
		}
		return nil
	})

	logrus.WithFields(logrus.Fields{
		"revision":    revision,
		"directories": directories - 1,
		"documents":   documents,
	}).Info("Content tree loaded")
}
