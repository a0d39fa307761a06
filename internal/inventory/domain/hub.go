package domain

import "context"

// Hub is a fulfillment location as known to the external hub directory.
// The inventory service references hubs by opaque id only and does not
// own their lifecycle.
type Hub struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Location string `json:"location"`
}

// HubDirectory is the external collaborator that answers hub lookups.
type HubDirectory interface {
	Exists(ctx context.Context, hubID string) (bool, error)
	Get(ctx context.Context, hubID string) (*Hub, error)
}
