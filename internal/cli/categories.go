package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/naveen1798kumar/acb-dashboard/internal/models"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Manage categories and subcategories",
}

var (
	categoryName      string
	categoryImage     string
	categoryCached    bool
	categoryDeleteYes bool
)

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories with their subcategories",
	Run:   runCategoriesList,
}

var categoriesAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Create a category",
	Args:  cobra.ExactArgs(1),
	Run:   runCategoriesAdd,
}

var categoriesEditCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Rename a category or replace its image",
	Args:  cobra.ExactArgs(1),
	Run:   runCategoriesEdit,
}

var categoriesRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a category (asks for confirmation)",
	Args:  cobra.ExactArgs(1),
	Run:   runCategoriesRm,
}

var categoriesSubCmd = &cobra.Command{
	Use:   "sub",
	Short: "Manage subcategories",
}

var categoriesSubAddCmd = &cobra.Command{
	Use:   "add CATEGORY_ID NAME",
	Short: "Add a subcategory to a category",
	Args:  cobra.ExactArgs(2),
	Run:   runCategoriesSubAdd,
}

func init() {
	categoriesListCmd.Flags().BoolVar(&categoryCached, "cached", false, "Serve from the local snapshot cache")
	categoriesAddCmd.Flags().StringVar(&categoryImage, "image", "", "Path to an image file")
	categoriesEditCmd.Flags().StringVar(&categoryName, "name", "", "New category name")
	categoriesEditCmd.Flags().StringVar(&categoryImage, "image", "", "Path to an image file")
	categoriesEditCmd.MarkFlagRequired("name")
	categoriesRmCmd.Flags().BoolVar(&categoryDeleteYes, "yes", false, "Skip the confirmation prompt")

	categoriesSubCmd.AddCommand(categoriesSubAddCmd)
	categoriesCmd.AddCommand(categoriesListCmd)
	categoriesCmd.AddCommand(categoriesAddCmd)
	categoriesCmd.AddCommand(categoriesEditCmd)
	categoriesCmd.AddCommand(categoriesRmCmd)
	categoriesCmd.AddCommand(categoriesSubCmd)
}

func runCategoriesList(cmd *cobra.Command, args []string) {
	c := initFullContext()
	defer c.Close()

	var categories []models.Category
	if categoryCached {
		categories = loadSnapshot[models.Category](c, "categories")
	} else {
		var err error
		categories, err = c.Client.ListCategories(cmd.Context())
		if err != nil {
			exitError("%v", err)
		}
		saveSnapshot(c, "categories", categories)
	}

	if len(categories) == 0 {
		fmt.Println("No categories yet")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSUBCATEGORIES")
	for _, cat := range categories {
		subs := "-"
		if names := cat.SubcategoryNames(); len(names) > 0 {
			subs = ""
			for i, n := range names {
				if i > 0 {
					subs += ", "
				}
				subs += n
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", shortID(cat.ID), cat.Name, subs)
	}
	w.Flush()
}

func runCategoriesAdd(cmd *cobra.Command, args []string) {
	c := initFullContext()
	defer c.Close()

	cat, err := c.Client.CreateCategory(cmd.Context(), models.CategoryDraft{
		Name:      args[0],
		ImagePath: categoryImage,
	})
	if err != nil {
		exitError("%v", err)
	}
	invalidateSnapshot(c, "categories")
	color.Green("Created category %s (%s)", cat.Name, shortID(cat.ID))
}

func runCategoriesEdit(cmd *cobra.Command, args []string) {
	c := initFullContext()
	defer c.Close()

	cat, err := c.Client.UpdateCategory(cmd.Context(), args[0], models.CategoryDraft{
		Name:      categoryName,
		ImagePath: categoryImage,
	})
	if err != nil {
		exitError("%v", err)
	}
	invalidateSnapshot(c, "categories")
	fmt.Printf("Updated category %s\n", cat.Name)
}

func runCategoriesRm(cmd *cobra.Command, args []string) {
	c := initFullContext()
	defer c.Close()

	confirm := confirmFunc("category", categoryDeleteYes)
	if !confirm(args[0]) {
		fmt.Println("Aborted.")
		return
	}
	if err := c.Client.DeleteCategory(cmd.Context(), args[0]); err != nil {
		exitError("%v", err)
	}
	invalidateSnapshot(c, "categories")
	fmt.Printf("Deleted category %s\n", shortID(args[0]))
}

func runCategoriesSubAdd(cmd *cobra.Command, args []string) {
	c := initFullContext()
	defer c.Close()

	cat, err := c.Client.AddSubcategory(cmd.Context(), args[0], args[1])
	if err != nil {
		exitError("%v", err)
	}
	invalidateSnapshot(c, "categories")
	fmt.Printf("Added subcategory %s to %s (%d total)\n", args[1], cat.Name, len(cat.Subcategories))
}
