// Command acb is the admin CLI for the bakery storefront API.
package main

import (
	"os"

	"github.com/naveen1798kumar/acb-dashboard/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
