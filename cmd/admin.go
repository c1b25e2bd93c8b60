package cmd

import (
	"github.com/ckhero/content-tree/gateway"
	"github.com/spf13/cobra"
)

var (
	adminArgs struct {
		source sourceArgument

		endpoint string
		origins  []string
	}

	adminCmd = &cobra.Command{
		Use:   "admin",
		Short: "Start the admin API to edit and publish the content tree",
		Run:   startAdmin,
	}
)

func init() {
	bindSourceFlags(adminCmd, &adminArgs.source)

	adminCmd.Flags().StringVar(&adminArgs.endpoint, "endpoint", "127.0.0.1:6790", "Listen address of the admin API")
	adminCmd.Flags().StringSliceVar(&adminArgs.origins, "origins", nil, "Allowed CORS origins separated by comma, all if empty")

	rootCmd.AddCommand(adminCmd)
}

func startAdmin(*cobra.Command, []string) {
	sess, closer := mustLoadSession(adminArgs.source)
	defer closer()

	gateway.MustServeAdmin(adminArgs.endpoint, sess, adminArgs.origins...)
}
