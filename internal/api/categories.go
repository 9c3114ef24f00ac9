package api

import (
	"context"
	"fmt"

	"github.com/naveen1798kumar/acb-dashboard/internal/models"
)

// ListCategories returns all categories with their subcategories.
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	data, err := c.getRaw(ctx, c.url("/categories"))
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return decodeList[models.Category](data, "categories")
}

// CreateCategory creates a category, multipart when an image accompanies it.
func (c *Client) CreateCategory(ctx context.Context, draft models.CategoryDraft) (*models.Category, error) {
	var cat models.Category
	if draft.ImagePath != "" {
		fields := map[string]string{"name": draft.Name}
		if err := c.doMultipart(ctx, "POST", c.url("/categories"), fields, "image", draft.ImagePath, &cat); err != nil {
			return nil, fmt.Errorf("create category: %w", err)
		}
		return &cat, nil
	}

	body := map[string]string{"name": draft.Name}
	if err := c.doJSON(ctx, "POST", c.url("/categories"), body, &cat); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &cat, nil
}

// UpdateCategory renames a category and optionally replaces its image.
func (c *Client) UpdateCategory(ctx context.Context, id string, draft models.CategoryDraft) (*models.Category, error) {
	var cat models.Category
	if draft.ImagePath != "" {
		fields := map[string]string{"name": draft.Name}
		if err := c.doMultipart(ctx, "PUT", c.url("/categories/"+id), fields, "image", draft.ImagePath, &cat); err != nil {
			return nil, fmt.Errorf("update category %s: %w", id, err)
		}
		return &cat, nil
	}

	body := map[string]string{"name": draft.Name}
	if err := c.doJSON(ctx, "PUT", c.url("/categories/"+id), body, &cat); err != nil {
		return nil, fmt.Errorf("update category %s: %w", id, err)
	}
	return &cat, nil
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	resp, err := c.do(ctx, "DELETE", c.url("/categories/"+id), nil, nil)
	if err != nil {
		return fmt.Errorf("delete category %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("delete category %s: %w", id, decodeError(resp))
	}
	return nil
}

// AddSubcategory appends a subcategory and returns the updated category.
func (c *Client) AddSubcategory(ctx context.Context, categoryID, name string) (*models.Category, error) {
	body := map[string]string{"name": name}
	var cat models.Category
	if err := c.doJSON(ctx, "POST", c.url("/categories/"+categoryID+"/subcategories"), body, &cat); err != nil {
		return nil, fmt.Errorf("add subcategory to %s: %w", categoryID, err)
	}
	return &cat, nil
}
