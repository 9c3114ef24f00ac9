package cli

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/naveen1798kumar/acb-dashboard/internal/catalog"
	"github.com/naveen1798kumar/acb-dashboard/internal/models"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Manage catalog products",
}

var (
	productSearch      string
	productCategory    string
	productSubcategory string
	productPage        int
	productCached      bool

	productName        string
	productDescription string
	productImage       string
	productEvent       string
	productTopSelling  bool
	productVariants    []string

	productDeleteYes bool
)

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products with search, filters, and pagination",
	Run:   runProductsList,
}

var productsShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show one product and a few related ones",
	Args:  cobra.ExactArgs(1),
	Run:   runProductsShow,
}

var productsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a product",
	Long: `Create a product. Variants are given as label:price:stock triples.

Example:
  acb products add --name "Sourdough Loaf" --category breads \
    --variant "500g:4.50:20" --variant "1kg:8.00:10" --image ./loaf.jpg`,
	Run: runProductsAdd,
}

var productsEditCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Update a product",
	Args:  cobra.ExactArgs(1),
	Run:   runProductsEdit,
}

var productsRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a product (asks for confirmation)",
	Args:  cobra.ExactArgs(1),
	Run:   runProductsRm,
}

var productsFeatureCmd = &cobra.Command{
	Use:   "feature ID",
	Short: "Toggle the top-selling flag on a product",
	Args:  cobra.ExactArgs(1),
	Run:   runProductsFeature,
}

func init() {
	productsListCmd.Flags().StringVar(&productSearch, "search", "", "Substring search over name and description")
	productsListCmd.Flags().StringVar(&productCategory, "category", "", "Filter by category")
	productsListCmd.Flags().StringVar(&productSubcategory, "subcategory", "", "Filter by subcategory")
	productsListCmd.Flags().IntVar(&productPage, "page", 1, "Page number")
	productsListCmd.Flags().BoolVar(&productCached, "cached", false, "Serve from the local snapshot cache")

	for _, cmd := range []*cobra.Command{productsAddCmd, productsEditCmd} {
		cmd.Flags().StringVar(&productName, "name", "", "Product name")
		cmd.Flags().StringVar(&productCategory, "category", "", "Category name")
		cmd.Flags().StringVar(&productSubcategory, "subcategory", "", "Subcategory name")
		cmd.Flags().StringVar(&productDescription, "description", "", "Description")
		cmd.Flags().StringVar(&productImage, "image", "", "Path to an image file")
		cmd.Flags().StringSliceVar(&productVariants, "variant", nil, "Variant as label:price:stock (repeatable)")
		cmd.Flags().BoolVar(&productTopSelling, "top-selling", false, "Mark as top selling")
	}
	productsAddCmd.Flags().StringVar(&productEvent, "event", "", "Link the new product to this event id")
	productsAddCmd.MarkFlagRequired("name")
	productsAddCmd.MarkFlagRequired("category")

	productsRmCmd.Flags().BoolVar(&productDeleteYes, "yes", false, "Skip the confirmation prompt")

	productsCmd.AddCommand(productsListCmd)
	productsCmd.AddCommand(productsShowCmd)
	productsCmd.AddCommand(productsAddCmd)
	productsCmd.AddCommand(productsEditCmd)
	productsCmd.AddCommand(productsRmCmd)
	productsCmd.AddCommand(productsFeatureCmd)
}

// productCoordinator wires the product view to the API client.
func productCoordinator(c *cmdContext, assumeYes bool) *catalog.Coordinator[models.Product, models.ProductDraft] {
	view := catalog.NewView(catalog.ProductFields(), c.Config.PageSize)
	ops := catalog.Ops[models.Product, models.ProductDraft]{
		List: c.Client.ListProducts,
		Create: func(ctx context.Context, d models.ProductDraft) (models.Product, error) {
			p, err := c.Client.CreateProduct(ctx, d)
			if err != nil {
				return models.Product{}, err
			}
			return *p, nil
		},
		Update: func(ctx context.Context, id string, d models.ProductDraft) (models.Product, error) {
			p, err := c.Client.UpdateProduct(ctx, id, d)
			if err != nil {
				return models.Product{}, err
			}
			return *p, nil
		},
		Delete: c.Client.DeleteProduct,
		Toggle: func(ctx context.Context, id, field string, value bool) (models.Product, error) {
			p, err := c.Client.SetProductFlag(ctx, id, field, value)
			if err != nil {
				return models.Product{}, err
			}
			return *p, nil
		},
	}
	return catalog.NewCoordinator(view, ops, confirmFunc("product", assumeYes))
}

func runProductsList(cmd *cobra.Command, args []string) {
	c := initFullContext()
	defer c.Close()

	view := catalog.NewView(catalog.ProductFields(), c.Config.PageSize)

	if productCached {
		view.SetItems(loadSnapshot[models.Product](c, "products"))
	} else {
		items, err := c.Client.ListProducts(cmd.Context())
		if err != nil {
			exitError("%v", err)
		}
		view.SetItems(items)
		saveSnapshot(c, "products", items)
	}

	view.SetSearch(productSearch)
	view.SetField("category", productCategory)
	view.SetField("subcategory", productSubcategory)
	view.SetPage(productPage)

	page := view.Page()
	if page.Total == 0 {
		fmt.Println("No products found")
		return
	}

	printProductTable(page.Items)
	fmt.Println(pageFooter(page))
}

func printProductTable(products []models.Product) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tSUBCATEGORY\tVARIANTS\tTOP")
	yes := color.New(color.FgGreen).Sprint("yes")
	no := color.New(color.Faint).Sprint("no")
	for _, p := range products {
		top := no
		if p.IsTopSelling {
			top = yes
		}
		sub := p.Subcategory
		if sub == "" {
			sub = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			shortID(p.ID), p.Name, p.Category, sub, len(p.Variants), top)
	}
	w.Flush()
}

func runProductsShow(cmd *cobra.Command, args []string) {
	c := initFullContext()
	defer c.Close()

	p, err := c.Client.GetProduct(cmd.Context(), args[0])
	if err != nil {
		exitError("%v", err)
	}

	bold := color.New(color.Bold)
	bold.Println(p.Name)
	fmt.Printf("  id:          %s\n", p.ID)
	fmt.Printf("  category:    %s\n", p.Category)
	if p.Subcategory != "" {
		fmt.Printf("  subcategory: %s\n", p.Subcategory)
	}
	if p.Description != "" {
		fmt.Printf("  description: %s\n", p.Description)
	}
	fmt.Printf("  top selling: %t\n", p.IsTopSelling)
	for _, v := range p.Variants {
		fmt.Printf("  variant:     %s (%.2f, %d in stock)\n", v.Label, v.Price, v.Stock)
	}

	if p.Category == "" {
		return
	}
	all, err := c.Client.ListProducts(cmd.Context())
	if err != nil {
		return // related products are cosmetic, skip on error
	}
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	related := catalog.RelatedSample(all, catalog.ProductFields(), p.ID, p.Category, 3, r)
	if len(related) > 0 {
		fmt.Println("\nRelated:")
		for _, rp := range related {
			fmt.Printf("  %s  %s\n", shortID(rp.ID), rp.Name)
		}
	}
}

func parseVariants(specs []string) ([]models.Variant, error) {
	variants := make([]models.Variant, 0, len(specs))
	for _, spec := range specs {
		parts := strings.Split(spec, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("variant %q: want label:price:stock", spec)
		}
		var v models.Variant
		v.Label = parts[0]
		if _, err := fmt.Sscanf(parts[1], "%f", &v.Price); err != nil {
			return nil, fmt.Errorf("variant %q: bad price: %w", spec, err)
		}
		if _, err := fmt.Sscanf(parts[2], "%d", &v.Stock); err != nil {
			return nil, fmt.Errorf("variant %q: bad stock: %w", spec, err)
		}
		variants = append(variants, v)
	}
	return variants, nil
}

func productDraftFromFlags() models.ProductDraft {
	variants, err := parseVariants(productVariants)
	if err != nil {
		exitError("%v", err)
	}
	return models.ProductDraft{
		Name:         productName,
		Category:     productCategory,
		Subcategory:  productSubcategory,
		Description:  productDescription,
		IsTopSelling: productTopSelling,
		Variants:     variants,
		ImagePath:    productImage,
		EventID:      productEvent,
	}
}

func runProductsAdd(cmd *cobra.Command, args []string) {
	c := initFullContext()
	defer c.Close()

	coord := productCoordinator(c, false)
	created, err := coord.SubmitCreate(cmd.Context(), productDraftFromFlags())
	if err != nil {
		exitError("%v", err)
	}
	invalidateSnapshot(c, "products")
	fmt.Printf("Created product %s (%s)\n", created.Name, shortID(created.ID))
}

func runProductsEdit(cmd *cobra.Command, args []string) {
	c := initFullContext()
	defer c.Close()

	coord := productCoordinator(c, false)
	if err := coord.Refresh(cmd.Context()); err != nil {
		exitError("%v", err)
	}
	updated, err := coord.SubmitUpdate(cmd.Context(), args[0], productDraftFromFlags())
	if err != nil {
		exitError("%v", err)
	}
	invalidateSnapshot(c, "products")
	fmt.Printf("Updated product %s (%s)\n", updated.Name, shortID(updated.ID))
}

func runProductsRm(cmd *cobra.Command, args []string) {
	c := initFullContext()
	defer c.Close()

	coord := productCoordinator(c, productDeleteYes)
	if err := coord.Refresh(cmd.Context()); err != nil {
		exitError("%v", err)
	}
	if err := coord.SubmitDelete(cmd.Context(), args[0]); err != nil {
		if err == catalog.ErrNotConfirmed {
			fmt.Println("Aborted.")
			return
		}
		exitError("%v", err)
	}
	invalidateSnapshot(c, "products")
	fmt.Printf("Deleted product %s\n", shortID(args[0]))
}

func runProductsFeature(cmd *cobra.Command, args []string) {
	c := initFullContext()
	defer c.Close()

	p, err := c.Client.GetProduct(cmd.Context(), args[0])
	if err != nil {
		exitError("%v", err)
	}

	coord := productCoordinator(c, false)
	if err := coord.Refresh(cmd.Context()); err != nil {
		exitError("%v", err)
	}
	updated, err := coord.ToggleField(cmd.Context(), p.ID, "isTopSelling", p.IsTopSelling)
	if err != nil {
		exitError("%v", err)
	}
	invalidateSnapshot(c, "products")

	state := "no longer"
	if updated.IsTopSelling {
		state = "now"
	}
	fmt.Printf("%s is %s top selling\n", updated.Name, state)
}
