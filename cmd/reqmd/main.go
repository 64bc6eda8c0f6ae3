// reqmd: requirements database MCP server.
//
// Requirements live as markdown files inside the project they describe.
// reqmd exposes them to AI coding tools over MCP stdio transport.
//
// Usage:
//
//	reqmd serve    # Start MCP server (stdio transport)
//	reqmd update   # Update to the latest version
//	reqmd version  # Print the version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"reqmd/internal/reqstore"
	reqserver "reqmd/internal/server"
	"reqmd/internal/updater"
	"reqmd/internal/version"
)

// requirementsPathEnv overrides the default requirements directory. It is
// read here, at the entry point, and threaded down explicitly — no package
// below cmd consults the environment.
const requirementsPathEnv = "REQMD_REQUIREMENTS_PATH"

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "reqmd",
		Short:         "Requirements database MCP server",
		Long:          "reqmd stores project requirements as markdown files and serves them to AI coding tools over MCP.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var requirementsPath string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server (stdio transport)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if requirementsPath == "" {
				requirementsPath = os.Getenv(requirementsPathEnv)
			}
			return serve(requirementsPath)
		},
	}
	serveCmd.Flags().StringVar(&requirementsPath, "requirements-path", "",
		"project-relative requirements directory (default: docs/development/requirements, env "+requirementsPathEnv+")")

	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Update reqmd to the latest release",
		Run: func(*cobra.Command, []string) {
			runUpdate()
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(*cobra.Command, []string) {
			fmt.Printf("reqmd v%s\n", version.Version)
		},
	}

	root.AddCommand(serveCmd, updateCmd, versionCmd)
	return root
}

func serve(requirementsPath string) error {
	// Logs go to stderr so they never interfere with the MCP stdio
	// transport on stdout.
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	locator := reqstore.NewLocator(requirementsPath)
	s, cleanup, err := reqserver.New(locator, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	// Best-effort background version check, printed to stderr.
	go checkForUpdates()

	logger.Info("starting MCP server",
		zap.String("version", version.Version),
		zap.String("requirements_path", requirementsPath),
	)

	return mcpserver.ServeStdio(s)
}

// checkForUpdates prints a notice to stderr when a newer release exists.
// Network failures are silently ignored.
func checkForUpdates() {
	result := updater.CheckVersion(version.Version)
	if result.UpdateAvailable {
		fmt.Fprintf(os.Stderr,
			"\n  Update available: v%s → v%s\n"+
				"  Run: reqmd update\n"+
				"  Release: %s\n\n",
			result.CurrentVersion, result.LatestVersion, result.ReleaseURL,
		)
	}
}

// runUpdate performs a self-update to the latest release.
func runUpdate() {
	fmt.Fprintf(os.Stderr, "Checking for updates...\n")

	result := updater.CheckVersion(version.Version)
	if !result.UpdateAvailable {
		fmt.Fprintf(os.Stderr, "Already at the latest version (v%s)\n", result.CurrentVersion)
		return
	}

	fmt.Fprintf(os.Stderr, "New version available: v%s → v%s\n", result.CurrentVersion, result.LatestVersion)
	fmt.Fprintf(os.Stderr, "Downloading...\n")

	if err := updater.SelfUpdate(version.Version); err != nil {
		fmt.Fprintf(os.Stderr, "Update failed: %v\n", err)
		fmt.Fprintf(os.Stderr, "\n  You can download manually from:\n  %s\n", result.ReleaseURL)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Updated to v%s. Restart reqmd to use the new version.\n", result.LatestVersion)
}
