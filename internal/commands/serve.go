package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcpserver "github.com/torch-corp/glare/internal/mcp"
	"github.com/torch-corp/glare/internal/registry"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		Long: `Start an MCP (Model Context Protocol) server that exposes the template registry.

The server runs over stdio so AI coding assistants can browse and read the
design system's assets before installing them.

Tools provided:
  - list_assets: List installable assets, optionally of one kind
  - read_asset: Read an asset's source and the packages and assets it imports`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, args)
		},
	}

	return cmd
}

// runServe executes the serve command
func runServe(cmd *cobra.Command, args []string) error {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	registryDir, _ := cmd.Flags().GetString("registry")
	reg, err := registry.Open(registryDir)
	if err != nil {
		return err
	}

	// Run the server (blocks until context is cancelled or error)
	return mcpserver.NewServer(reg).Run(ctx)
}
