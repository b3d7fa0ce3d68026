package main

import (
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "panelhouse",
		Short: "Comics and blog publishing site",
		Long: `panelhouse renders comic listings, a device aware comic reader and a
markdown blog on top of the content API.

Run "panelhouse serve" to start the web server.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newSelectCmd(), newRenderCmd())
	return root
}
