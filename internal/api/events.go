package api

import (
	"context"
	"fmt"

	"github.com/naveen1798kumar/acb-dashboard/internal/models"
)

// ListEvents returns all promotional events.
func (c *Client) ListEvents(ctx context.Context) ([]models.Event, error) {
	data, err := c.getRaw(ctx, c.url("/events"))
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return decodeList[models.Event](data, "events")
}

// GetEvent returns a single event with its linked products populated.
func (c *Client) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	var e models.Event
	if err := c.doJSON(ctx, "GET", c.url("/events/"+id), nil, &e); err != nil {
		return nil, fmt.Errorf("get event %s: %w", id, err)
	}
	return &e, nil
}

// CreateEvent creates an event, multipart when an image accompanies it.
func (c *Client) CreateEvent(ctx context.Context, draft models.EventDraft) (*models.Event, error) {
	var e models.Event
	if draft.ImagePath != "" {
		if err := c.doMultipart(ctx, "POST", c.url("/events"), eventFields(draft), "image", draft.ImagePath, &e); err != nil {
			return nil, fmt.Errorf("create event: %w", err)
		}
		return &e, nil
	}

	if err := c.doJSON(ctx, "POST", c.url("/events"), eventBody(draft), &e); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return &e, nil
}

// UpdateEvent replaces an event's fields.
func (c *Client) UpdateEvent(ctx context.Context, id string, draft models.EventDraft) (*models.Event, error) {
	var e models.Event
	if draft.ImagePath != "" {
		if err := c.doMultipart(ctx, "PUT", c.url("/events/"+id), eventFields(draft), "image", draft.ImagePath, &e); err != nil {
			return nil, fmt.Errorf("update event %s: %w", id, err)
		}
		return &e, nil
	}

	if err := c.doJSON(ctx, "PUT", c.url("/events/"+id), eventBody(draft), &e); err != nil {
		return nil, fmt.Errorf("update event %s: %w", id, err)
	}
	return &e, nil
}

// DeleteEvent removes an event.
func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	resp, err := c.do(ctx, "DELETE", c.url("/events/"+id), nil, nil)
	if err != nil {
		return fmt.Errorf("delete event %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("delete event %s: %w", id, decodeError(resp))
	}
	return nil
}

// SetEventFlag flips a single boolean field on an event, e.g. isActive.
func (c *Client) SetEventFlag(ctx context.Context, id, field string, value bool) (*models.Event, error) {
	body := map[string]bool{field: value}
	var e models.Event
	if err := c.doJSON(ctx, "PUT", c.url("/events/"+id), body, &e); err != nil {
		return nil, fmt.Errorf("set event %s %s: %w", id, field, err)
	}
	return &e, nil
}

// SetEventProducts replaces the event's linked-product set wholesale.
// There is deliberately no incremental variant: the association is always
// saved as the complete desired set.
func (c *Client) SetEventProducts(ctx context.Context, id string, productIDs []string) error {
	if productIDs == nil {
		productIDs = []string{}
	}
	body := map[string][]string{"products": productIDs}
	if err := c.doJSON(ctx, "PUT", c.url("/events/"+id), body, nil); err != nil {
		return fmt.Errorf("set event %s products: %w", id, err)
	}
	return nil
}

func eventFields(draft models.EventDraft) map[string]string {
	fields := map[string]string{
		"name":        draft.Name,
		"description": draft.Description,
	}
	if draft.StartDate != "" {
		fields["startDate"] = draft.StartDate
	}
	if draft.EndDate != "" {
		fields["endDate"] = draft.EndDate
	}
	return fields
}

func eventBody(draft models.EventDraft) map[string]interface{} {
	body := map[string]interface{}{
		"name":        draft.Name,
		"description": draft.Description,
	}
	if draft.StartDate != "" {
		body["startDate"] = draft.StartDate
	}
	if draft.EndDate != "" {
		body["endDate"] = draft.EndDate
	}
	return body
}
