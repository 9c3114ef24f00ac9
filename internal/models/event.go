package models

import (
	"encoding/json"
	"fmt"
)

// Event is a promotional campaign with a set of linked products.
type Event struct {
	ID          string       `json:"_id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	StartDate   string       `json:"startDate,omitempty"`
	EndDate     string       `json:"endDate,omitempty"`
	Image       string       `json:"image,omitempty"`
	IsActive    bool         `json:"isActive"`
	Products    []ProductRef `json:"products,omitempty"`
}

// ProductIDs returns the ids of the products linked to the event.
func (e *Event) ProductIDs() []string {
	ids := make([]string, 0, len(e.Products))
	for _, p := range e.Products {
		ids = append(ids, p.ID)
	}
	return ids
}

// ProductRef identifies a product linked to an event. The server returns
// either a bare id string or a populated product object depending on the
// endpoint, so both forms decode into the same value.
type ProductRef struct {
	ID string
}

// UnmarshalJSON accepts "abc123" as well as {"_id": "abc123", ...}.
func (r *ProductRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		r.ID = id
		return nil
	}
	var obj struct {
		ID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decode product reference: %w", err)
	}
	r.ID = obj.ID
	return nil
}

// MarshalJSON always writes the bare id form, which is what the update
// endpoint expects.
func (r ProductRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}

// EventDraft is the client-side payload for creating or updating an event.
type EventDraft struct {
	Name        string
	Description string
	StartDate   string
	EndDate     string
	ImagePath   string
}
