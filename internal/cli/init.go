package cli

import (
	"fmt"

	"github.com/naveen1798kumar/acb-dashboard/internal/config"
	"github.com/spf13/cobra"
)

var initAPIURL string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Configure the API endpoint",
	Long: `Create the acb configuration with the base URL of the bakery API.

Example:
  acb init --api https://bakery.example.com/api`,
	Run: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initAPIURL, "api", "", "Base URL of the bakery API (required)")
	initCmd.MarkFlagRequired("api")
}

func runInit(cmd *cobra.Command, args []string) {
	cfg, err := config.Initialize(initAPIURL)
	if err != nil {
		exitError("%v", err)
	}
	fmt.Printf("Configured for %s (config in %s)\n", cfg.APIURL, cfg.Path())
	fmt.Println("Run 'acb login EMAIL' to authenticate.")
}
