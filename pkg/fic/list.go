package fic

import (
	"context"
	"errors"
	"fmt"
)

// Transport issues one API request and decodes the JSON response body.
// Implementations inject the account credentials, enforce the success
// contract and classify application errors.
type Transport interface {
	Request(ctx context.Context, method, path string, body Wire) (Wire, error)
}

// List is a lazy paginated sequence of entities. Pages are fetched on
// demand, strictly in increasing order, and entries are deduplicated by
// identifier in a cache owned by the list. A List is not safe for
// concurrent use.
type List[T any] struct {
	transport Transport
	path      string
	listKey   string
	filters   Wire
	build     func(Wire) (T, error)
	idOf      func(T) string

	order []string
	cache map[string]T
}

func newList[T any](transport Transport, path, listKey string, filters Wire, build func(Wire) (T, error), idOf func(T) string) *List[T] {
	if filters == nil {
		filters = Wire{}
	}

	return &List[T]{
		transport: transport,
		path:      path,
		listKey:   listKey,
		filters:   filters,
		build:     build,
		idOf:      idOf,
		cache:     make(map[string]T),
	}
}

// Iterator starts a new iteration. Entries already cached by a previous
// partial iteration are replayed first, then pages are fetched from the
// configured starting page onward.
func (l *List[T]) Iterator() *Iterator[T] {
	page := 1
	if start := l.filters.Int("pagina"); start > 0 {
		page = start
	}

	return &Iterator[T]{list: l, page: page}
}

// All drains a fresh iteration into a slice.
func (l *List[T]) All(ctx context.Context) ([]T, error) {
	var items []T

	err := l.ForEach(ctx, func(item T) error {
		items = append(items, item)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

// ForEach runs fn for every entity of a fresh iteration. Iteration stops
// at the first error returned by fn.
func (l *List[T]) ForEach(ctx context.Context, fn func(T) error) error {
	iterator := l.Iterator()

	for {
		item, err := iterator.Next(ctx)
		if errors.Is(err, ErrNoMoreItems) {
			return nil
		}

		if err != nil {
			return err
		}

		if err := fn(item); err != nil {
			return err
		}
	}
}

// Iterator walks a List. Next suspends at the network call whenever the
// cached entries are exhausted and more pages remain.
type Iterator[T any] struct {
	list *List[T]
	pos  int
	page int
	done bool
}

// Next returns the next entity, fetching further pages as needed. It
// returns ErrNoMoreItems once the server-reported page count is exhausted.
func (it *Iterator[T]) Next(ctx context.Context) (T, error) {
	var zero T

	for {
		if it.pos < len(it.list.order) {
			item := it.list.cache[it.list.order[it.pos]]
			it.pos++

			return item, nil
		}

		if it.done {
			return zero, ErrNoMoreItems
		}

		if err := it.fetchPage(ctx); err != nil {
			return zero, err
		}
	}
}

func (it *Iterator[T]) fetchPage(ctx context.Context) error {
	filters := make(Wire, len(it.list.filters)+1)
	for key, value := range it.list.filters {
		filters[key] = value
	}

	filters["pagina"] = it.page

	response, err := it.list.transport.Request(ctx, "POST", it.list.path, filters)
	if err != nil {
		return fmt.Errorf("failed to fetch page %d: %w", it.page, err)
	}

	for _, item := range response.List(it.list.listKey) {
		entity, err := it.list.build(item)
		if err != nil {
			return err
		}

		id := it.list.idOf(entity)
		if _, ok := it.list.cache[id]; ok {
			continue
		}

		it.list.cache[id] = entity
		it.list.order = append(it.list.order, id)
	}

	if it.page >= response.Int("numero_pagine") {
		it.done = true
	}

	it.page++

	return nil
}

// DocumentList is a lazy paginated list of documents of one variant.
type DocumentList struct {
	*List[*Document]
}

// NewDocumentList builds a list over {type}/lista with the given filters.
func NewDocumentList(transport Transport, docType DocumentType, filters Wire) (*DocumentList, error) {
	if !docType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDocumentType, string(docType))
	}

	build := func(item Wire) (*Document, error) {
		document := &Document{Type: docType}
		if err := document.FromWire(item); err != nil {
			return nil, err
		}

		return document, nil
	}

	idOf := func(document *Document) string {
		return document.ID
	}

	return &DocumentList{
		List: newList(transport, string(docType)+"/lista", "lista_documenti", filters, build, idOf),
	}, nil
}

// CustomerList is a lazy paginated list of customers.
type CustomerList struct {
	*List[*Customer]

	transport Transport
}

// NewCustomerList builds a list over clienti/lista with the given filters.
func NewCustomerList(transport Transport, filters Wire) *CustomerList {
	build := func(item Wire) (*Customer, error) {
		customer := &Customer{}
		if err := customer.FromWire(item); err != nil {
			return nil, err
		}

		return customer, nil
	}

	idOf := func(customer *Customer) string {
		return customer.ID
	}

	return &CustomerList{
		List:      newList(transport, "clienti/lista", "lista_clienti", filters, build, idOf),
		transport: transport,
	}
}

// BulkCreate imports the given customers in one batch request, bypassing
// per-item creation.
func (l *CustomerList) BulkCreate(ctx context.Context, customers ...*Customer) error {
	subjects := make([]any, 0, len(customers))
	for _, customer := range customers {
		subjects = append(subjects, customer.ToWire())
	}

	if _, err := l.transport.Request(ctx, "POST", "clienti/importa", Wire{"lista_soggetti": subjects}); err != nil {
		return fmt.Errorf("failed to import customers: %w", err)
	}

	return nil
}

// SupplierList is a lazy paginated list of suppliers.
type SupplierList struct {
	*List[*Supplier]

	transport Transport
}

// NewSupplierList builds a list over fornitori/lista with the given
// filters.
func NewSupplierList(transport Transport, filters Wire) *SupplierList {
	build := func(item Wire) (*Supplier, error) {
		supplier := &Supplier{}
		if err := supplier.FromWire(item); err != nil {
			return nil, err
		}

		return supplier, nil
	}

	idOf := func(supplier *Supplier) string {
		return supplier.ID
	}

	return &SupplierList{
		List:      newList(transport, "fornitori/lista", "lista_fornitori", filters, build, idOf),
		transport: transport,
	}
}

// BulkCreate imports the given suppliers in one batch request, bypassing
// per-item creation.
func (l *SupplierList) BulkCreate(ctx context.Context, suppliers ...*Supplier) error {
	subjects := make([]any, 0, len(suppliers))
	for _, supplier := range suppliers {
		subjects = append(subjects, supplier.ToWire())
	}

	if _, err := l.transport.Request(ctx, "POST", "fornitori/importa", Wire{"lista_soggetti": subjects}); err != nil {
		return fmt.Errorf("failed to import suppliers: %w", err)
	}

	return nil
}

// PurchaseList is a lazy paginated list of purchases.
type PurchaseList struct {
	*List[*Purchase]
}

// NewPurchaseList builds a list over acquisti/lista with the given
// filters.
func NewPurchaseList(transport Transport, filters Wire) *PurchaseList {
	build := func(item Wire) (*Purchase, error) {
		purchase := &Purchase{}
		if err := purchase.FromWire(item); err != nil {
			return nil, err
		}

		return purchase, nil
	}

	idOf := func(purchase *Purchase) string {
		return purchase.ID
	}

	return &PurchaseList{
		List: newList(transport, "acquisti/lista", "lista_documenti", filters, build, idOf),
	}
}

// GoodList is a lazy paginated list of product catalog entries.
type GoodList struct {
	*List[*Good]
}

// NewGoodList builds a list over prodotti/lista with the given filters.
func NewGoodList(transport Transport, filters Wire) *GoodList {
	build := func(item Wire) (*Good, error) {
		good := &Good{}
		if err := good.FromWire(item, NewCurrency("EUR")); err != nil {
			return nil, err
		}

		return good, nil
	}

	idOf := func(good *Good) string {
		return good.ID
	}

	return &GoodList{
		List: newList(transport, "prodotti/lista", "lista_prodotti", filters, build, idOf),
	}
}
