package cmd

import (
	"os"
	"time"

	"github.com/ckhero/content-tree/snapshot"
	"github.com/ckhero/content-tree/tree"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	importArgs struct {
		source sourceArgument

		file string
	}

	importCmd = &cobra.Command{
		Use:   "import",
		Short: "Publish a content tree snapshot",
		Run:   importSnapshot,
	}
)

func init() {
	importCmd.Flags().StringVar(&importArgs.file, "file", "", "Snapshot file to import")
	importCmd.MarkFlagRequired("file")

	importCmd.Flags().StringVar(&importArgs.source.publishFile, "publish-file", "", "Viewer data module file to publish content to")
	importCmd.Flags().StringSliceVar(&importArgs.source.publishURLs, "publish-url", nil, "Gateway URLs to publish content to, separated by comma")
	importCmd.Flags().StringVar(&importArgs.source.publishMethod, "publish-method", publishMethodForm, "Publish method of the gateway, form or rpc")
	importCmd.MarkFlagsOneRequired("publish-file", "publish-url")
	importCmd.MarkFlagsMutuallyExclusive("publish-file", "publish-url")
	importCmd.Flags().DurationVar(&importArgs.source.timeout, "timeout", 30*time.Second, "Timeout of the publish request")

	rootCmd.AddCommand(importCmd)
}

func importSnapshot(*cobra.Command, []string) {
	data, err := os.ReadFile(importArgs.file)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to read snapshot")
	}

	root, format, err := snapshot.Decode(data)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to decode snapshot")
	}

	text, err := tree.Serialize(root)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to serialize content tree")
	}

	publisher, closer, err := newPublisher(importArgs.source)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize publisher")
	}
	defer closer()

	result := mustPublish(publisher, text, importArgs.source.timeout)

	logrus.WithFields(logrus.Fields{
		"format":   format,
		"revision": result.Revision,
	}).Info(result.Message)
}
