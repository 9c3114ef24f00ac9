package models

// Category groups products and carries its own subcategories.
type Category struct {
	ID            string        `json:"_id"`
	Name          string        `json:"name"`
	Image         string        `json:"image,omitempty"`
	Subcategories []Subcategory `json:"subcategories,omitempty"`
}

// Subcategory is a named subdivision of a category.
type Subcategory struct {
	Name string `json:"name"`
}

// SubcategoryNames returns the names of the category's subcategories.
func (c *Category) SubcategoryNames() []string {
	names := make([]string, 0, len(c.Subcategories))
	for _, s := range c.Subcategories {
		names = append(names, s.Name)
	}
	return names
}

// CategoryDraft is the client-side payload for creating or updating a category.
type CategoryDraft struct {
	Name      string
	ImagePath string
}
