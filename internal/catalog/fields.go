package catalog

import (
	"fmt"
	"strings"

	"github.com/naveen1798kumar/acb-dashboard/internal/models"
)

// Field descriptors for the dashboard's resources. These are the only place
// that knows which record fields are searchable, filterable, and sortable.

// ProductFields searches name and description, filters on category and
// subcategory, and sorts by name or price.
func ProductFields() Fields[models.Product] {
	return Fields[models.Product]{
		Key: func(p models.Product) string { return p.ID },
		SearchText: func(p models.Product) []string {
			return []string{p.Name, p.Description}
		},
		Value: func(p models.Product, field string) string {
			switch field {
			case "category":
				return p.Category
			case "subcategory":
				return p.Subcategory
			case "name":
				return p.Name
			case "topSelling":
				return fmt.Sprintf("%t", p.IsTopSelling)
			}
			return ""
		},
		Less: map[string]func(a, b models.Product) bool{
			"name": func(a, b models.Product) bool {
				return strings.ToLower(a.Name) < strings.ToLower(b.Name)
			},
			"price": func(a, b models.Product) bool { return a.Price < b.Price },
		},
	}
}

// CategoryFields searches and sorts by name.
func CategoryFields() Fields[models.Category] {
	return Fields[models.Category]{
		Key:        func(c models.Category) string { return c.ID },
		SearchText: func(c models.Category) []string { return []string{c.Name} },
		Value: func(c models.Category, field string) string {
			if field == "name" {
				return c.Name
			}
			return ""
		},
		Less: map[string]func(a, b models.Category) bool{
			"name": func(a, b models.Category) bool {
				return strings.ToLower(a.Name) < strings.ToLower(b.Name)
			},
		},
	}
}

// EventFields searches name and description and filters on active state.
func EventFields() Fields[models.Event] {
	return Fields[models.Event]{
		Key: func(e models.Event) string { return e.ID },
		SearchText: func(e models.Event) []string {
			return []string{e.Name, e.Description}
		},
		Value: func(e models.Event, field string) string {
			switch field {
			case "name":
				return e.Name
			case "active":
				return fmt.Sprintf("%t", e.IsActive)
			}
			return ""
		},
	}
}

// OrderFields searches customer name and phone and filters on status.
func OrderFields() Fields[models.Order] {
	return Fields[models.Order]{
		Key: func(o models.Order) string { return o.ID },
		SearchText: func(o models.Order) []string {
			return []string{o.Customer.Name, o.Customer.Phone, o.ID}
		},
		Value: func(o models.Order, field string) string {
			switch field {
			case "status":
				return o.Status
			case "paymentStatus":
				return o.PaymentStatus
			}
			return ""
		},
		Less: map[string]func(a, b models.Order) bool{
			"total": func(a, b models.Order) bool { return a.Total < b.Total },
		},
	}
}

// UserFields searches name and phone.
func UserFields() Fields[models.User] {
	return Fields[models.User]{
		Key: func(u models.User) string { return u.ID },
		SearchText: func(u models.User) []string {
			return []string{u.Name, u.Phone}
		},
		Value: func(u models.User, field string) string {
			if field == "name" {
				return u.Name
			}
			return ""
		},
	}
}
