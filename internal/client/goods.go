package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/fic-client/pkg/fic"
)

// GoodsClient implements fic.GoodsClient on the prodotti resource.
type GoodsClient struct {
	transport fic.Transport
}

// NewGoodsClient creates a new product catalog client.
func NewGoodsClient(transport fic.Transport) *GoodsClient {
	return &GoodsClient{transport: transport}
}

// List implements fic.GoodsClient.List
func (c *GoodsClient) List(filters fic.Wire) *fic.GoodList {
	return fic.NewGoodList(c.transport, filters)
}

// Get implements fic.GoodsClient.Get
func (c *GoodsClient) Get(ctx context.Context, id string) (*fic.Good, error) {
	resp, err := c.transport.Request(ctx, "POST", "prodotti/lista", fic.Wire{"id": id})
	if err != nil {
		return nil, fmt.Errorf("getting product: %w", err)
	}

	list := resp.List("lista_prodotti")
	if len(list) == 0 {
		return nil, &fic.NotFoundError{ID: id}
	}

	good := &fic.Good{}
	if err := good.FromWire(list[0], fic.NewCurrency("EUR")); err != nil {
		return nil, fmt.Errorf("parsing product: %w", err)
	}

	return good, nil
}

// Create implements fic.GoodsClient.Create
func (c *GoodsClient) Create(ctx context.Context, good *fic.Good) error {
	resp, err := c.transport.Request(ctx, "POST", "prodotti/nuovo", good.ToWire())
	if err != nil {
		return fmt.Errorf("creating product: %w", err)
	}

	good.ID = resp.String("id")

	return nil
}

// Update implements fic.GoodsClient.Update
func (c *GoodsClient) Update(ctx context.Context, id string, fields fic.Wire) error {
	payload := make(fic.Wire, len(fields)+1)
	for key, value := range fields {
		payload[key] = value
	}

	payload["id"] = id

	if _, err := c.transport.Request(ctx, "POST", "prodotti/modifica", payload); err != nil {
		return fmt.Errorf("updating product: %w", err)
	}

	return nil
}

// Delete implements fic.GoodsClient.Delete
func (c *GoodsClient) Delete(ctx context.Context, id string) error {
	if _, err := c.transport.Request(ctx, "POST", "prodotti/elimina", fic.Wire{"id": id}); err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	return nil
}

// DeleteGood implements fic.GoodsClient.DeleteGood
func (c *GoodsClient) DeleteGood(ctx context.Context, good *fic.Good) error {
	if err := c.Delete(ctx, good.ID); err != nil {
		return err
	}

	good.ID = ""

	return nil
}
