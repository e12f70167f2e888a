// Package client implements the resource façades declared in pkg/fic on
// top of the HTTP transport.
package client

import (
	"github.com/fivetwenty-io/fic-client/pkg/fic"
)

// Client implements the fic.Client interface.
type Client struct {
	transport fic.Transport
	customers *CustomersClient
	suppliers *SuppliersClient
	goods     *GoodsClient
	purchases *PurchasesClient
}

// New creates a new client on top of the given transport.
func New(transport fic.Transport) *Client {
	return &Client{
		transport: transport,
		customers: NewCustomersClient(transport),
		suppliers: NewSuppliersClient(transport),
		goods:     NewGoodsClient(transport),
		purchases: NewPurchasesClient(transport),
	}
}

// Documents implements fic.Client.Documents
func (c *Client) Documents(docType fic.DocumentType) fic.DocumentsClient {
	return NewDocumentsClient(c.transport, docType)
}

// Customers implements fic.Client.Customers
func (c *Client) Customers() fic.CustomersClient {
	return c.customers
}

// Suppliers implements fic.Client.Suppliers
func (c *Client) Suppliers() fic.SuppliersClient {
	return c.suppliers
}

// Goods implements fic.Client.Goods
func (c *Client) Goods() fic.GoodsClient {
	return c.goods
}

// Purchases implements fic.Client.Purchases
func (c *Client) Purchases() fic.PurchasesClient {
	return c.purchases
}
