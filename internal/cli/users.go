package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/naveen1798kumar/acb-dashboard/internal/catalog"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List registered storefront users",
}

var (
	userSearch string
	userPage   int
)

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users with search and pagination",
	Run:   runUsersList,
}

func init() {
	usersListCmd.Flags().StringVar(&userSearch, "search", "", "Substring search over name and phone")
	usersListCmd.Flags().IntVar(&userPage, "page", 1, "Page number")
	usersCmd.AddCommand(usersListCmd)
}

func runUsersList(cmd *cobra.Command, args []string) {
	c := initFullContext()
	defer c.Close()

	users, err := c.Client.ListUsers(cmd.Context())
	if err != nil {
		exitError("%v", err)
	}

	view := catalog.NewView(catalog.UserFields(), c.Config.PageSize)
	view.SetItems(users)
	view.SetSearch(userSearch)
	view.SetPage(userPage)

	page := view.Page()
	if page.Total == 0 {
		fmt.Println("No users found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPHONE\tREGISTERED")
	for _, u := range page.Items {
		registered := "-"
		if !u.CreatedAt.IsZero() {
			registered = u.CreatedAt.Local().Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", shortID(u.ID), u.Name, u.Phone, registered)
	}
	w.Flush()
	fmt.Println(pageFooter(page))
}
