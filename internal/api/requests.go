package api

import (
	"context"
	"net/url"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/HamdySalah/carelink/internal/model"
)

// CreateRequestInput is the care-request posting form.
type CreateRequestInput struct {
	Title       string         `json:"title"`
	Details     string         `json:"details,omitempty"`
	Address     string         `json:"address"`
	Location    model.Location `json:"location"`
	ScheduledAt time.Time      `json:"scheduledAt"`
	Hours       int            `json:"hours"`
	Budget      float64        `json:"budget,omitempty"`
}

// CreateRequest posts a new care request (patients only).
func (c *Client) CreateRequest(ctx context.Context, in CreateRequestInput) (*model.CareRequest, error) {
	var r model.CareRequest
	if err := c.post(ctx, "/requests", in, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// RequestFilter narrows the request listing.
type RequestFilter struct {
	Status model.RequestStatus // empty = any
	Mine   bool                // only requests the caller owns / is assigned to
}

// Requests lists care requests visible to the caller.
func (c *Client) Requests(ctx context.Context, f RequestFilter) ([]model.CareRequest, error) {
	v := url.Values{}
	if f.Status != "" {
		v.Set("status", string(f.Status))
	}
	if f.Mine {
		v.Set("mine", "true")
	}
	var out []model.CareRequest
	if err := c.get(ctx, "/requests"+query(v), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Request fetches a single care request by id.
func (c *Client) Request(ctx context.Context, id uuid.UUID) (*model.CareRequest, error) {
	var r model.CareRequest
	if err := c.get(ctx, "/requests/"+id.String(), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// CancelRequest cancels an open request (owner only).
func (c *Client) CancelRequest(ctx context.Context, id uuid.UUID) (*model.CareRequest, error) {
	var r model.CareRequest
	if err := c.post(ctx, "/requests/"+id.String()+"/cancel", nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// CompleteRequest marks an accepted request as completed, unlocking reviews.
func (c *Client) CompleteRequest(ctx context.Context, id uuid.UUID) (*model.CareRequest, error) {
	var r model.CareRequest
	if err := c.post(ctx, "/requests/"+id.String()+"/complete", nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// ApplyInput is a nurse's offer on a request.
type ApplyInput struct {
	Price   float64 `json:"price"`
	Message string  `json:"message,omitempty"`
}

// Apply submits an application for an open request (nurses only).
// Applying twice yields KindAlreadyApplied.
func (c *Client) Apply(ctx context.Context, requestID uuid.UUID, in ApplyInput) (*model.Application, error) {
	var a model.Application
	if err := c.post(ctx, "/requests/"+requestID.String()+"/applications", in, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Applications lists applications on a request (owner only).
func (c *Client) Applications(ctx context.Context, requestID uuid.UUID) ([]model.Application, error) {
	var out []model.Application
	if err := c.get(ctx, "/requests/"+requestID.String()+"/applications", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AcceptApplication accepts one application, rejecting the others and
// moving the request to accepted. A second accept yields KindAlreadyAccepted.
func (c *Client) AcceptApplication(ctx context.Context, applicationID uuid.UUID) (*model.Application, error) {
	var a model.Application
	if err := c.post(ctx, "/applications/"+applicationID.String()+"/accept", nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}
