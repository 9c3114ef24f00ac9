package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/naveen1798kumar/acb-dashboard/internal/catalog"
	"github.com/naveen1798kumar/acb-dashboard/internal/models"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Manage promotional events and their linked products",
}

var (
	eventName        string
	eventDescription string
	eventStart       string
	eventEnd         string
	eventImage       string
	eventCached      bool
	eventDeleteYes   bool
)

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List events",
	Run:   runEventsList,
}

var eventsAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Create an event",
	Args:  cobra.ExactArgs(1),
	Run:   runEventsAdd,
}

var eventsEditCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Update an event",
	Args:  cobra.ExactArgs(1),
	Run:   runEventsEdit,
}

var eventsRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete an event (asks for confirmation)",
	Args:  cobra.ExactArgs(1),
	Run:   runEventsRm,
}

var eventsToggleCmd = &cobra.Command{
	Use:   "toggle ID",
	Short: "Toggle an event between active and inactive",
	Args:  cobra.ExactArgs(1),
	Run:   runEventsToggle,
}

var eventsLinkCmd = &cobra.Command{
	Use:   "link EVENT_ID",
	Short: "Edit the products linked to an event",
	Long: `Interactively edit the product set linked to an event.

The session shows linked and available products. Commands:
  +ID        add product ID to the draft
  -ID        remove product ID from the draft
  /TEXT      filter both lists by search text (empty to clear)
  cat NAME   filter by category (empty to clear)
  save       send the full draft to the server and exit
  cancel     discard the draft and exit

Nothing is sent to the server until 'save'; the draft always replaces the
event's linked set wholesale.`,
	Args: cobra.ExactArgs(1),
	Run:  runEventsLink,
}

func init() {
	eventsListCmd.Flags().BoolVar(&eventCached, "cached", false, "Serve from the local snapshot cache")

	for _, cmd := range []*cobra.Command{eventsAddCmd, eventsEditCmd} {
		cmd.Flags().StringVar(&eventDescription, "description", "", "Short description")
		cmd.Flags().StringVar(&eventStart, "start", "", "Start date (YYYY-MM-DD)")
		cmd.Flags().StringVar(&eventEnd, "end", "", "End date (YYYY-MM-DD)")
		cmd.Flags().StringVar(&eventImage, "image", "", "Path to an image file")
	}
	eventsEditCmd.Flags().StringVar(&eventName, "name", "", "New event name")
	eventsEditCmd.MarkFlagRequired("name")
	eventsRmCmd.Flags().BoolVar(&eventDeleteYes, "yes", false, "Skip the confirmation prompt")

	eventsCmd.AddCommand(eventsListCmd)
	eventsCmd.AddCommand(eventsAddCmd)
	eventsCmd.AddCommand(eventsEditCmd)
	eventsCmd.AddCommand(eventsRmCmd)
	eventsCmd.AddCommand(eventsToggleCmd)
	eventsCmd.AddCommand(eventsLinkCmd)
}

func runEventsList(cmd *cobra.Command, args []string) {
	c := initFullContext()
	defer c.Close()

	var events []models.Event
	if eventCached {
		events = loadSnapshot[models.Event](c, "events")
	} else {
		var err error
		events, err = c.Client.ListEvents(cmd.Context())
		if err != nil {
			exitError("%v", err)
		}
		saveSnapshot(c, "events", events)
	}

	if len(events) == 0 {
		fmt.Println("No events yet")
		return
	}

	active := color.New(color.FgGreen).Sprint("active")
	inactive := color.New(color.Faint).Sprint("inactive")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTART\tEND\tPRODUCTS\tSTATE")
	for _, e := range events {
		state := inactive
		if e.IsActive {
			state = active
		}
		start, end := e.StartDate, e.EndDate
		if start == "" {
			start = "-"
		}
		if end == "" {
			end = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			shortID(e.ID), e.Name, start, end, len(e.Products), state)
	}
	w.Flush()
}

func runEventsAdd(cmd *cobra.Command, args []string) {
	c := initFullContext()
	defer c.Close()

	e, err := c.Client.CreateEvent(cmd.Context(), models.EventDraft{
		Name:        args[0],
		Description: eventDescription,
		StartDate:   eventStart,
		EndDate:     eventEnd,
		ImagePath:   eventImage,
	})
	if err != nil {
		exitError("%v", err)
	}
	invalidateSnapshot(c, "events")
	fmt.Printf("Created event %s (%s)\n", e.Name, shortID(e.ID))
}

func runEventsEdit(cmd *cobra.Command, args []string) {
	c := initFullContext()
	defer c.Close()

	e, err := c.Client.UpdateEvent(cmd.Context(), args[0], models.EventDraft{
		Name:        eventName,
		Description: eventDescription,
		StartDate:   eventStart,
		EndDate:     eventEnd,
		ImagePath:   eventImage,
	})
	if err != nil {
		exitError("%v", err)
	}
	invalidateSnapshot(c, "events")
	fmt.Printf("Updated event %s\n", e.Name)
}

func runEventsRm(cmd *cobra.Command, args []string) {
	c := initFullContext()
	defer c.Close()

	confirm := confirmFunc("event", eventDeleteYes)
	if !confirm(args[0]) {
		fmt.Println("Aborted.")
		return
	}
	if err := c.Client.DeleteEvent(cmd.Context(), args[0]); err != nil {
		exitError("%v", err)
	}
	invalidateSnapshot(c, "events")
	fmt.Printf("Deleted event %s\n", shortID(args[0]))
}

func runEventsToggle(cmd *cobra.Command, args []string) {
	c := initFullContext()
	defer c.Close()

	e, err := c.Client.GetEvent(cmd.Context(), args[0])
	if err != nil {
		exitError("%v", err)
	}
	updated, err := c.Client.SetEventFlag(cmd.Context(), e.ID, "isActive", !e.IsActive)
	if err != nil {
		exitError("%v", err)
	}
	invalidateSnapshot(c, "events")

	if updated.IsActive {
		color.Green("%s is now active", updated.Name)
	} else {
		fmt.Printf("%s is now inactive\n", updated.Name)
	}
}

// eventLinkSource adapts the API client to the link editor's contract.
func eventLinkSource(c *cmdContext) catalog.LinkSource[models.Product] {
	return catalog.LinkSource[models.Product]{
		Parent: func(ctx context.Context, parentID string) ([]string, error) {
			e, err := c.Client.GetEvent(ctx, parentID)
			if err != nil {
				return nil, err
			}
			return e.ProductIDs(), nil
		},
		Items: c.Client.ListProducts,
		Categories: func(ctx context.Context) ([]string, error) {
			cats, err := c.Client.ListCategories(ctx)
			if err != nil {
				return nil, err
			}
			names := make([]string, 0, len(cats))
			for _, cat := range cats {
				names = append(names, cat.Name)
			}
			return names, nil
		},
		Save: c.Client.SetEventProducts,
	}
}

func runEventsLink(cmd *cobra.Command, args []string) {
	c := initFullContext()
	defer c.Close()

	editor := catalog.NewLinkEditor(catalog.ProductFields(), eventLinkSource(c))
	if err := editor.Open(cmd.Context(), args[0]); err != nil {
		exitError("%v", err)
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		printLinkPartitions(editor)
		fmt.Fprint(os.Stderr, "link> ")

		line, err := reader.ReadString('\n')
		if err != nil {
			editor.Cancel()
			fmt.Println("Cancelled.")
			return
		}
		line = strings.TrimSpace(line)

		switch {
		case line == "save":
			refetch, err := editor.Save(cmd.Context())
			if err != nil {
				color.Red("save failed: %v (draft kept, retry with 'save')", err)
				continue
			}
			if refetch {
				invalidateSnapshot(c, "events")
			}
			color.Green("Saved.")
			return
		case line == "cancel":
			editor.Cancel()
			fmt.Println("Cancelled.")
			return
		case strings.HasPrefix(line, "/"):
			editor.SetSearch(strings.TrimPrefix(line, "/"))
		case strings.HasPrefix(line, "cat "):
			editor.SetField("category", strings.TrimSpace(strings.TrimPrefix(line, "cat ")))
		case line == "cat":
			editor.SetField("category", "")
		case strings.HasPrefix(line, "+"):
			toggleIfAbsent(editor, strings.TrimPrefix(line, "+"), true)
		case strings.HasPrefix(line, "-"):
			toggleIfAbsent(editor, strings.TrimPrefix(line, "-"), false)
		case line == "":
			// just reprint
		default:
			fmt.Println("commands: +ID, -ID, /TEXT, cat NAME, save, cancel")
		}
	}
}

// toggleIfAbsent flips draft membership only when the flip moves it in the
// requested direction, so "+id" twice is harmless.
func toggleIfAbsent(editor *catalog.LinkEditor[models.Product], id string, want bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return
	}
	if editor.Contains(id) == want {
		return
	}
	if err := editor.Toggle(id); err != nil {
		color.Red("%v", err)
	}
}

func printLinkPartitions(editor *catalog.LinkEditor[models.Product]) {
	blue := color.New(color.FgBlue, color.Bold)
	green := color.New(color.FgGreen, color.Bold)

	blue.Println("Linked:")
	linked := editor.Linked()
	if len(linked) == 0 {
		fmt.Println("  (none)")
	}
	for _, p := range linked {
		fmt.Printf("  [x] %s  %s (%s)\n", shortID(p.ID), p.Name, p.Category)
	}

	green.Println("Available:")
	available := editor.Available()
	if len(available) == 0 {
		fmt.Println("  (none)")
	}
	for _, p := range available {
		fmt.Printf("  [ ] %s  %s (%s)\n", shortID(p.ID), p.Name, p.Category)
	}
}
