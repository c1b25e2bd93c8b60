package cmd

import (
	"context"
	"os"

	"github.com/ckhero/content-tree/tree"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	treeArgs sourceArgument

	treeCmd = &cobra.Command{
		Use:   "tree",
		Short: "Print the persisted content tree",
		Run:   printTree,
	}
)

func init() {
	bindLoaderFlags(treeCmd, &treeArgs)

	rootCmd.AddCommand(treeCmd)
}

func printTree(*cobra.Command, []string) {
	root := mustLoadTree(treeArgs)
	tree.PrettyPrint(os.Stdout, root)
}

func mustLoadTree(args sourceArgument) *tree.Node {
	ctx, cancel := context.WithTimeout(context.Background(), args.timeout)
	defer cancel()

	text, err := newLoader(args).Load(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load content")
	}

	root, err := tree.Deserialize(text)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to parse content")
	}

	return root
}
