package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the homecal application
var rootCmd = &cobra.Command{
	Use:   "homecal",
	Short: "Self-hosted personal calendar widget",
	Long: `homecal is a self-hosted calendar web application. It renders a month
grid with your events and the US public holidays, lets you manage events
and the display theme in the browser, and can import events from Google
Calendar over OAuth2.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "homecal version %s\n" .Version}}`)

	// If no subcommand is provided, run the web server by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newHolidaysCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
}
