package cmd

import (
	"github.com/ckhero/content-tree/gateway"
	"github.com/spf13/cobra"
)

var (
	gatewayArgs gateway.Config

	gatewayCmd = &cobra.Command{
		Use:   "gateway",
		Short: "Start the content gateway that persists published content",
		Run:   startGateway,
	}
)

func init() {
	gatewayCmd.Flags().StringVar(&gatewayArgs.Endpoint, "endpoint", "127.0.0.1:6789", "Listen address of the gateway")
	gatewayCmd.Flags().StringVar(&gatewayArgs.DataFile, "file", "content-data.js", "Viewer data module to persist content into")
	gatewayCmd.Flags().BoolVar(&gatewayArgs.RPCEnabled, "rpc", false, "Serve JSON-RPC at the gateway root")
	gatewayCmd.Flags().StringSliceVar(&gatewayArgs.OriginsAllowed, "origins", nil, "Allowed CORS origins separated by comma, all if empty")

	rootCmd.AddCommand(gatewayCmd)
}

func startGateway(*cobra.Command, []string) {
	gateway.MustServe(gatewayArgs)
}
