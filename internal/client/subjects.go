package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/fic-client/pkg/fic"
)

// subjectsClient carries the raw registry operations shared by customers
// and suppliers. kind is the resource path segment, clienti or fornitori.
type subjectsClient struct {
	transport fic.Transport
	kind      string
}

// fetch looks a subject up by identifier through the list endpoint and
// returns the first match. An empty result fails with a NotFoundError.
func (s *subjectsClient) fetch(ctx context.Context, id string) (fic.Wire, error) {
	resp, err := s.transport.Request(ctx, "POST", s.kind+"/lista", fic.Wire{"id": id})
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", s.kind, err)
	}

	list := resp.List("lista_" + s.kind)
	if len(list) == 0 {
		return nil, &fic.NotFoundError{ID: id}
	}

	return list[0], nil
}

func (s *subjectsClient) create(ctx context.Context, wire fic.Wire) (string, error) {
	resp, err := s.transport.Request(ctx, "POST", s.kind+"/nuovo", wire)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", s.kind, err)
	}

	return resp.String("id"), nil
}

func (s *subjectsClient) update(ctx context.Context, id string, fields fic.Wire) error {
	payload := make(fic.Wire, len(fields)+1)
	for key, value := range fields {
		payload[key] = value
	}

	payload["id"] = id

	if _, err := s.transport.Request(ctx, "POST", s.kind+"/modifica", payload); err != nil {
		return fmt.Errorf("updating %s: %w", s.kind, err)
	}

	return nil
}

func (s *subjectsClient) delete(ctx context.Context, id string) error {
	if _, err := s.transport.Request(ctx, "POST", s.kind+"/elimina", fic.Wire{"id": id}); err != nil {
		return fmt.Errorf("deleting %s: %w", s.kind, err)
	}

	return nil
}

func (s *subjectsClient) bulkCreate(ctx context.Context, subjects []any) error {
	if _, err := s.transport.Request(ctx, "POST", s.kind+"/importa", fic.Wire{"lista_soggetti": subjects}); err != nil {
		return fmt.Errorf("importing %s: %w", s.kind, err)
	}

	return nil
}

// CustomersClient implements fic.CustomersClient.
type CustomersClient struct {
	subjectsClient
}

// NewCustomersClient creates a new customers client.
func NewCustomersClient(transport fic.Transport) *CustomersClient {
	return &CustomersClient{subjectsClient{transport: transport, kind: "clienti"}}
}

// List implements fic.CustomersClient.List
func (c *CustomersClient) List(filters fic.Wire) *fic.CustomerList {
	return fic.NewCustomerList(c.transport, filters)
}

// Get implements fic.CustomersClient.Get
func (c *CustomersClient) Get(ctx context.Context, id string) (*fic.Customer, error) {
	wire, err := c.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	customer := &fic.Customer{}
	if err := customer.FromWire(wire); err != nil {
		return nil, fmt.Errorf("parsing customer: %w", err)
	}

	return customer, nil
}

// Create implements fic.CustomersClient.Create
func (c *CustomersClient) Create(ctx context.Context, customer *fic.Customer) error {
	id, err := c.create(ctx, customer.ToWire())
	if err != nil {
		return err
	}

	customer.ID = id

	return nil
}

// Update implements fic.CustomersClient.Update
func (c *CustomersClient) Update(ctx context.Context, id string, fields fic.Wire) error {
	return c.update(ctx, id, fields)
}

// Save implements fic.CustomersClient.Save
func (c *CustomersClient) Save(ctx context.Context, customer *fic.Customer) error {
	changes := customer.Changes()
	if len(changes) == 0 {
		return nil
	}

	return c.update(ctx, customer.ID, changes)
}

// Delete implements fic.CustomersClient.Delete
func (c *CustomersClient) Delete(ctx context.Context, id string) error {
	return c.delete(ctx, id)
}

// DeleteCustomer implements fic.CustomersClient.DeleteCustomer
func (c *CustomersClient) DeleteCustomer(ctx context.Context, customer *fic.Customer) error {
	if err := c.delete(ctx, customer.ID); err != nil {
		return err
	}

	customer.ID = ""

	return nil
}

// BulkCreate implements fic.CustomersClient.BulkCreate
func (c *CustomersClient) BulkCreate(ctx context.Context, customers ...*fic.Customer) error {
	subjects := make([]any, 0, len(customers))
	for _, customer := range customers {
		subjects = append(subjects, customer.ToWire())
	}

	return c.bulkCreate(ctx, subjects)
}

// SuppliersClient implements fic.SuppliersClient.
type SuppliersClient struct {
	subjectsClient
}

// NewSuppliersClient creates a new suppliers client.
func NewSuppliersClient(transport fic.Transport) *SuppliersClient {
	return &SuppliersClient{subjectsClient{transport: transport, kind: "fornitori"}}
}

// List implements fic.SuppliersClient.List
func (c *SuppliersClient) List(filters fic.Wire) *fic.SupplierList {
	return fic.NewSupplierList(c.transport, filters)
}

// Get implements fic.SuppliersClient.Get
func (c *SuppliersClient) Get(ctx context.Context, id string) (*fic.Supplier, error) {
	wire, err := c.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	supplier := &fic.Supplier{}
	if err := supplier.FromWire(wire); err != nil {
		return nil, fmt.Errorf("parsing supplier: %w", err)
	}

	return supplier, nil
}

// Create implements fic.SuppliersClient.Create
func (c *SuppliersClient) Create(ctx context.Context, supplier *fic.Supplier) error {
	id, err := c.create(ctx, supplier.ToWire())
	if err != nil {
		return err
	}

	supplier.ID = id

	return nil
}

// Update implements fic.SuppliersClient.Update
func (c *SuppliersClient) Update(ctx context.Context, id string, fields fic.Wire) error {
	return c.update(ctx, id, fields)
}

// Save implements fic.SuppliersClient.Save
func (c *SuppliersClient) Save(ctx context.Context, supplier *fic.Supplier) error {
	changes := supplier.Changes()
	if len(changes) == 0 {
		return nil
	}

	return c.update(ctx, supplier.ID, changes)
}

// Delete implements fic.SuppliersClient.Delete
func (c *SuppliersClient) Delete(ctx context.Context, id string) error {
	return c.delete(ctx, id)
}

// DeleteSupplier implements fic.SuppliersClient.DeleteSupplier
func (c *SuppliersClient) DeleteSupplier(ctx context.Context, supplier *fic.Supplier) error {
	if err := c.delete(ctx, supplier.ID); err != nil {
		return err
	}

	supplier.ID = ""

	return nil
}

// BulkCreate implements fic.SuppliersClient.BulkCreate
func (c *SuppliersClient) BulkCreate(ctx context.Context, suppliers ...*fic.Supplier) error {
	subjects := make([]any, 0, len(suppliers))
	for _, supplier := range suppliers {
		subjects = append(subjects, supplier.ToWire())
	}

	return c.bulkCreate(ctx, subjects)
}
