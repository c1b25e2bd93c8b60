package cmd

import (
	"os"

	"github.com/ckhero/content-tree/snapshot"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	exportArgs struct {
		source sourceArgument

		out    string
		format string
	}

	exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Export the persisted content tree as a snapshot",
		Run:   exportSnapshot,
	}
)

func init() {
	bindLoaderFlags(exportCmd, &exportArgs.source)

	exportCmd.Flags().StringVar(&exportArgs.out, "out", "", "Snapshot file to write")
	exportCmd.MarkFlagRequired("out")
	exportCmd.Flags().StringVar(&exportArgs.format, "format", string(snapshot.FormatBinary), "Snapshot format, binary or unixfs")

	rootCmd.AddCommand(exportCmd)
}

func exportSnapshot(*cobra.Command, []string) {
	format, err := snapshot.ParseFormat(exportArgs.format)
	if err != nil {
		logrus.WithError(err).Fatal("Invalid snapshot format")
	}

	root := mustLoadTree(exportArgs.source)

	data, err := snapshot.Encode(root, format)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to encode snapshot")
	}

	if err := os.WriteFile(exportArgs.out, data, 0644); err != nil {
		logrus.WithError(err).Fatal("Failed to write snapshot")
	}

	logrus.WithFields(logrus.Fields{
		"file":   exportArgs.out,
		"format": format,
		"size":   len(data),
	}).Info("Snapshot exported")
}
