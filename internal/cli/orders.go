package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/naveen1798kumar/acb-dashboard/internal/catalog"
	"github.com/naveen1798kumar/acb-dashboard/internal/models"
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Inspect and update customer orders",
}

var (
	orderSearch string
	orderStatus string
	orderPage   int
	orderCached bool
)

var ordersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders with search, status filter, and pagination",
	Run:   runOrdersList,
}

var ordersShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show one order in full",
	Args:  cobra.ExactArgs(1),
	Run:   runOrdersShow,
}

var ordersStatusCmd = &cobra.Command{
	Use:   "status ID STATUS",
	Short: "Set an order's fulfillment status",
	Long: `Set an order's fulfillment status.

Known statuses: created, paid, shipped, delivered, cancelled.`,
	Args: cobra.ExactArgs(2),
	Run:  runOrdersStatus,
}

func init() {
	ordersListCmd.Flags().StringVar(&orderSearch, "search", "", "Substring search over customer name, phone, and order id")
	ordersListCmd.Flags().StringVar(&orderStatus, "status", "", "Filter by status")
	ordersListCmd.Flags().IntVar(&orderPage, "page", 1, "Page number")
	ordersListCmd.Flags().BoolVar(&orderCached, "cached", false, "Serve from the local snapshot cache")

	ordersCmd.AddCommand(ordersListCmd)
	ordersCmd.AddCommand(ordersShowCmd)
	ordersCmd.AddCommand(ordersStatusCmd)
}

func statusColor(status string) string {
	switch status {
	case models.OrderDelivered:
		return color.GreenString(status)
	case models.OrderCancelled:
		return color.RedString(status)
	default:
		return color.YellowString(status)
	}
}

func runOrdersList(cmd *cobra.Command, args []string) {
	c := initFullContext()
	defer c.Close()

	view := catalog.NewView(catalog.OrderFields(), c.Config.PageSize)

	if orderCached {
		view.SetItems(loadSnapshot[models.Order](c, "orders"))
	} else {
		orders, err := c.Client.ListOrders(cmd.Context())
		if err != nil {
			exitError("%v", err)
		}
		view.SetItems(orders)
		saveSnapshot(c, "orders", orders)
	}

	view.SetSearch(orderSearch)
	view.SetField("status", orderStatus)
	view.SetPage(orderPage)

	page := view.Page()
	if page.Total == 0 {
		fmt.Println("No orders found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCUSTOMER\tTOTAL\tPAYMENT\tSTATUS")
	for _, o := range page.Items {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%s\n",
			shortID(o.ID), o.Customer.Name, o.Total, o.PaymentStatus, statusColor(o.Status))
	}
	w.Flush()
	fmt.Println(pageFooter(page))
}

func runOrdersShow(cmd *cobra.Command, args []string) {
	c := initFullContext()
	defer c.Close()

	o, err := c.Client.GetOrder(cmd.Context(), args[0])
	if err != nil {
		exitError("%v", err)
	}

	bold := color.New(color.Bold)
	bold.Printf("Order %s\n", o.ID)
	fmt.Printf("  customer: %s", o.Customer.Name)
	if o.Customer.Phone != "" {
		fmt.Printf(" (%s)", o.Customer.Phone)
	}
	fmt.Println()
	fmt.Printf("  status:   %s\n", statusColor(o.Status))
	fmt.Printf("  payment:  %s\n", o.PaymentStatus)
	fmt.Printf("  total:    %.2f\n", o.Total)
	for _, item := range o.Items {
		fmt.Printf("  item:     %dx %s @ %.2f\n", item.Quantity, item.Name, item.Price)
	}
}

func runOrdersStatus(cmd *cobra.Command, args []string) {
	c := initFullContext()
	defer c.Close()

	if err := c.Client.UpdateOrderStatus(cmd.Context(), args[0], args[1]); err != nil {
		exitError("%v", err)
	}
	invalidateSnapshot(c, "orders")
	fmt.Printf("Order %s is now %s\n", shortID(args[0]), statusColor(args[1]))
}
