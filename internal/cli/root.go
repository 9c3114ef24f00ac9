// Package cli implements the command-line interface for the bakery admin
// dashboard.
package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/naveen1798kumar/acb-dashboard/internal/api"
	"github.com/naveen1798kumar/acb-dashboard/internal/catalog"
	"github.com/naveen1798kumar/acb-dashboard/internal/config"
	"github.com/naveen1798kumar/acb-dashboard/internal/store"
)

// cmdContext holds common resources for CLI commands
type cmdContext struct {
	Config *config.Config
	Store  *store.Store
	Client *api.Client
}

// Close releases resources held by cmdContext
func (c *cmdContext) Close() {
	if c.Store != nil {
		c.Store.Close()
	}
}

// initContext initializes config and the snapshot store (no client)
func initContext() *cmdContext {
	cfg, err := config.Load()
	if err != nil {
		exitError("%v", err)
	}

	st, err := store.New(cfg.DatabasePath())
	if err != nil {
		exitError("failed to open snapshot cache: %v", err)
	}
	if err := st.Initialize(); err != nil {
		st.Close()
		exitError("failed to initialize snapshot cache: %v", err)
	}

	return &cmdContext{Config: cfg, Store: st}
}

// initFullContext initializes config, store, and the API client
func initFullContext() *cmdContext {
	ctx := initContext()
	ctx.Client = api.New(ctx.Config.APIURL, ctx.Config.Token)
	return ctx
}

var rootCmd = &cobra.Command{
	Use:   "acb",
	Short: "Bakery dashboard admin CLI",
	Long: `acb is the admin command-line tool for the bakery storefront API.
Manage products, categories, promotional events, orders, and registered
users without the web dashboard.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(ordersCmd)
	rootCmd.AddCommand(usersCmd)
}

// exitError prints an error and exits
func exitError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}

// shortID returns first 8 characters of an ID
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// confirmFunc builds the delete confirmation gate. With assumeYes the gate
// always passes (for scripting); otherwise it prompts y/N on stderr.
func confirmFunc(noun string, assumeYes bool) func(id string) bool {
	if assumeYes {
		return func(string) bool { return true }
	}
	reader := bufio.NewReader(os.Stdin)
	return func(id string) bool {
		fmt.Fprintf(os.Stderr, "Delete %s %s? [y/N] ", noun, shortID(id))
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	}
}

// pageFooter describes the visible window under a listing.
func pageFooter[T any](p catalog.Page[T]) string {
	return fmt.Sprintf("page %d/%d (%d items)", p.Current, p.TotalPages, p.Total)
}

// saveSnapshot caches a successful list fetch; failures only warn, a broken
// cache must not break a live listing.
func saveSnapshot[T any](c *cmdContext, resource string, items []T) {
	payload, err := json.Marshal(items)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to encode %s snapshot: %v\n", resource, err)
		return
	}
	if err := c.Store.SaveSnapshot(resource, payload); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
}

// loadSnapshot serves a --cached listing from the snapshot store.
func loadSnapshot[T any](c *cmdContext, resource string) []T {
	payload, at, err := c.Store.LoadSnapshot(resource)
	if err != nil {
		exitError("%v", err)
	}
	var items []T
	if err := json.Unmarshal(payload, &items); err != nil {
		exitError("failed to decode cached %s: %v", resource, err)
	}
	fmt.Fprintf(os.Stderr, "showing cached %s from %s\n", resource, at.Local().Format("2006-01-02 15:04"))
	return items
}

// invalidateSnapshot drops the cache after a successful mutation.
func invalidateSnapshot(c *cmdContext, resource string) {
	if err := c.Store.InvalidateSnapshot(resource); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
}
