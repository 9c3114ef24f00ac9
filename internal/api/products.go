package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/naveen1798kumar/acb-dashboard/internal/models"
)

// ListProducts returns the full product collection.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	data, err := c.getRaw(ctx, c.url("/products"))
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return decodeList[models.Product](data, "products")
}

// GetProduct returns a single product by id.
func (c *Client) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	if err := c.doJSON(ctx, "GET", c.url("/products/"+id), nil, &p); err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	return &p, nil
}

// CreateProduct creates a product. When the draft carries an image path the
// request is encoded as a multipart form, otherwise plain JSON.
func (c *Client) CreateProduct(ctx context.Context, draft models.ProductDraft) (*models.Product, error) {
	var p models.Product
	if draft.ImagePath != "" {
		fields, err := productFields(draft)
		if err != nil {
			return nil, err
		}
		if err := c.doMultipart(ctx, "POST", c.url("/products"), fields, "image", draft.ImagePath, &p); err != nil {
			return nil, fmt.Errorf("create product: %w", err)
		}
		return &p, nil
	}

	body, err := productBody(draft)
	if err != nil {
		return nil, err
	}
	if err := c.doJSON(ctx, "POST", c.url("/products"), body, &p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &p, nil
}

// UpdateProduct replaces a product's fields.
func (c *Client) UpdateProduct(ctx context.Context, id string, draft models.ProductDraft) (*models.Product, error) {
	var p models.Product
	if draft.ImagePath != "" {
		fields, err := productFields(draft)
		if err != nil {
			return nil, err
		}
		if err := c.doMultipart(ctx, "PUT", c.url("/products/"+id), fields, "image", draft.ImagePath, &p); err != nil {
			return nil, fmt.Errorf("update product %s: %w", id, err)
		}
		return &p, nil
	}

	body, err := productBody(draft)
	if err != nil {
		return nil, err
	}
	if err := c.doJSON(ctx, "PUT", c.url("/products/"+id), body, &p); err != nil {
		return nil, fmt.Errorf("update product %s: %w", id, err)
	}
	return &p, nil
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	resp, err := c.do(ctx, "DELETE", c.url("/products/"+id), nil, nil)
	if err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("delete product %s: %w", id, decodeError(resp))
	}
	return nil
}

// SetProductFlag flips a single boolean field on a product, e.g. isTopSelling.
func (c *Client) SetProductFlag(ctx context.Context, id, field string, value bool) (*models.Product, error) {
	body := map[string]bool{field: value}
	var p models.Product
	if err := c.doJSON(ctx, "PUT", c.url("/products/"+id), body, &p); err != nil {
		return nil, fmt.Errorf("set product %s %s: %w", id, field, err)
	}
	return &p, nil
}

// productFields flattens a draft into multipart form fields. Variants travel
// as a JSON string, matching the server's form parser.
func productFields(draft models.ProductDraft) (map[string]string, error) {
	variants, err := json.Marshal(draft.Variants)
	if err != nil {
		return nil, fmt.Errorf("marshal variants: %w", err)
	}

	fields := map[string]string{
		"name":         draft.Name,
		"category":     draft.Category,
		"description":  draft.Description,
		"isTopSelling": strconv.FormatBool(draft.IsTopSelling),
		"variants":     string(variants),
	}
	if draft.Subcategory != "" {
		fields["subcategory"] = draft.Subcategory
	}
	if draft.EventID != "" {
		fields["eventId"] = draft.EventID
	}
	return fields, nil
}

// productBody builds the JSON payload for an image-less create or update.
func productBody(draft models.ProductDraft) (map[string]interface{}, error) {
	body := map[string]interface{}{
		"name":         draft.Name,
		"category":     draft.Category,
		"description":  draft.Description,
		"isTopSelling": draft.IsTopSelling,
		"variants":     draft.Variants,
	}
	if draft.Subcategory != "" {
		body["subcategory"] = draft.Subcategory
	}
	if draft.EventID != "" {
		body["eventId"] = draft.EventID
	}
	return body, nil
}
