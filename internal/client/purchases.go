package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/fic-client/pkg/fic"
)

// PurchasesClient implements fic.PurchasesClient on the acquisti resource.
type PurchasesClient struct {
	transport fic.Transport
}

// NewPurchasesClient creates a new purchase register client.
func NewPurchasesClient(transport fic.Transport) *PurchasesClient {
	return &PurchasesClient{transport: transport}
}

// List implements fic.PurchasesClient.List
func (c *PurchasesClient) List(filters fic.Wire) *fic.PurchaseList {
	return fic.NewPurchaseList(c.transport, filters)
}

// Get implements fic.PurchasesClient.Get
func (c *PurchasesClient) Get(ctx context.Context, id string) (*fic.Purchase, error) {
	resp, err := c.transport.Request(ctx, "POST", "acquisti/dettagli", fic.Wire{"id": id})
	if err != nil {
		return nil, fmt.Errorf("getting purchase: %w", err)
	}

	details := resp.Map("dettagli_documento")
	if len(details) == 0 {
		return nil, &fic.NotFoundError{ID: id}
	}

	purchase := &fic.Purchase{}
	if err := purchase.FromWire(details); err != nil {
		return nil, fmt.Errorf("parsing purchase: %w", err)
	}

	return purchase, nil
}

// Create implements fic.PurchasesClient.Create
func (c *PurchasesClient) Create(ctx context.Context, purchase *fic.Purchase) error {
	resp, err := c.transport.Request(ctx, "POST", "acquisti/nuovo", purchase.ToWire())
	if err != nil {
		return fmt.Errorf("creating purchase: %w", err)
	}

	purchase.ID = resp.String("new_id")

	return nil
}

// Update implements fic.PurchasesClient.Update
func (c *PurchasesClient) Update(ctx context.Context, id string, fields fic.Wire) error {
	payload := make(fic.Wire, len(fields)+1)
	for key, value := range fields {
		payload[key] = value
	}

	payload["id"] = id

	if _, err := c.transport.Request(ctx, "POST", "acquisti/modifica", payload); err != nil {
		return fmt.Errorf("updating purchase: %w", err)
	}

	return nil
}

// Save implements fic.PurchasesClient.Save
func (c *PurchasesClient) Save(ctx context.Context, purchase *fic.Purchase) error {
	changes := purchase.Changes()
	if len(changes) == 0 {
		return nil
	}

	return c.Update(ctx, purchase.ID, changes)
}

// Delete implements fic.PurchasesClient.Delete
func (c *PurchasesClient) Delete(ctx context.Context, id string) error {
	if _, err := c.transport.Request(ctx, "POST", "acquisti/elimina", fic.Wire{"id": id}); err != nil {
		return fmt.Errorf("deleting purchase: %w", err)
	}

	return nil
}

// DeletePurchase implements fic.PurchasesClient.DeletePurchase
func (c *PurchasesClient) DeletePurchase(ctx context.Context, purchase *fic.Purchase) error {
	if err := c.Delete(ctx, purchase.ID); err != nil {
		return err
	}

	purchase.ID = ""

	return nil
}
