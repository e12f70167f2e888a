package fic

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTransport serves canned pages keyed by the pagina filter and records
// every request it sees.
type stubTransport struct {
	pages map[int]Wire
	calls []Wire
	paths []string
}

func (s *stubTransport) Request(_ context.Context, _, path string, body Wire) (Wire, error) {
	s.calls = append(s.calls, body)
	s.paths = append(s.paths, path)

	page, ok := s.pages[body.Int("pagina")]
	if !ok {
		return Wire{}, nil
	}

	return page, nil
}

func goodPage(totalPages int, ids ...string) Wire {
	items := make([]any, 0, len(ids))
	for _, id := range ids {
		items = append(items, map[string]any{"id": id, "nome": "product " + id})
	}

	return Wire{
		"numero_pagine":  totalPages,
		"lista_prodotti": items,
	}
}

func idRange(from, to int) []string {
	ids := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		ids = append(ids, fmt.Sprintf("%d", i))
	}

	return ids
}

func TestListAll(t *testing.T) {
	transport := &stubTransport{pages: map[int]Wire{
		1: goodPage(3, idRange(1, 10)...),
		2: goodPage(3, idRange(11, 20)...),
		3: goodPage(3, idRange(21, 25)...),
	}}

	goods, err := NewGoodList(transport, nil).All(context.Background())
	require.NoError(t, err)

	assert.Len(t, goods, 25)
	assert.Equal(t, "1", goods[0].ID)
	assert.Equal(t, "25", goods[24].ID)

	// One request per page, no more.
	require.Len(t, transport.calls, 3)
	assert.Equal(t, "prodotti/lista", transport.paths[0])
	assert.Equal(t, 1, transport.calls[0].Int("pagina"))
	assert.Equal(t, 2, transport.calls[1].Int("pagina"))
	assert.Equal(t, 3, transport.calls[2].Int("pagina"))
}

func TestListDeduplicatesRepeatedIDs(t *testing.T) {
	// Page 2 repeats the last entry of page 1.
	transport := &stubTransport{pages: map[int]Wire{
		1: goodPage(2, "1", "2", "3"),
		2: goodPage(2, "3", "4"),
	}}

	goods, err := NewGoodList(transport, nil).All(context.Background())
	require.NoError(t, err)

	require.Len(t, goods, 4)
	assert.Equal(t, "1", goods[0].ID)
	assert.Equal(t, "4", goods[3].ID)
}

func TestListSinglePage(t *testing.T) {
	transport := &stubTransport{pages: map[int]Wire{
		1: goodPage(1, "1", "2"),
	}}

	goods, err := NewGoodList(transport, nil).All(context.Background())
	require.NoError(t, err)
	assert.Len(t, goods, 2)
	assert.Len(t, transport.calls, 1)
}

func TestListEmpty(t *testing.T) {
	transport := &stubTransport{pages: map[int]Wire{
		1: {"numero_pagine": 0, "lista_prodotti": []any{}},
	}}

	goods, err := NewGoodList(transport, nil).All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, goods)
	assert.Len(t, transport.calls, 1)
}

func TestIteratorExhaustion(t *testing.T) {
	transport := &stubTransport{pages: map[int]Wire{
		1: goodPage(1, "1"),
	}}

	iterator := NewGoodList(transport, nil).Iterator()

	good, err := iterator.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1", good.ID)

	_, err = iterator.Next(context.Background())
	require.ErrorIs(t, err, ErrNoMoreItems)

	// Repeated calls keep failing the same way.
	_, err = iterator.Next(context.Background())
	require.ErrorIs(t, err, ErrNoMoreItems)
}

func TestListReplaysCacheAcrossIterations(t *testing.T) {
	transport := &stubTransport{pages: map[int]Wire{
		1: goodPage(2, "1", "2"),
		2: goodPage(2, "3"),
	}}

	list := NewGoodList(transport, nil)

	// Walk only into the first page.
	iterator := list.Iterator()
	first, err := iterator.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1", first.ID)
	require.Len(t, transport.calls, 1)

	// A fresh iteration replays the cached entries before fetching more.
	goods, err := list.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, goods, 3)
	assert.Len(t, transport.calls, 3)
}

func TestListForEachStopsOnError(t *testing.T) {
	transport := &stubTransport{pages: map[int]Wire{
		1: goodPage(2, "1", "2"),
		2: goodPage(2, "3"),
	}}

	count := 0
	err := NewGoodList(transport, nil).ForEach(context.Background(), func(*Good) error {
		count++

		return fmt.Errorf("stop here")
	})
	require.EqualError(t, err, "stop here")
	assert.Equal(t, 1, count)
	assert.Len(t, transport.calls, 1)
}

func TestListHonorsStartingPageFilter(t *testing.T) {
	transport := &stubTransport{pages: map[int]Wire{
		2: goodPage(2, "11", "12"),
	}}

	goods, err := NewGoodList(transport, Wire{"pagina": 2}).All(context.Background())
	require.NoError(t, err)
	assert.Len(t, goods, 2)
	require.Len(t, transport.calls, 1)
	assert.Equal(t, 2, transport.calls[0].Int("pagina"))
}

func TestListForwardsFilters(t *testing.T) {
	transport := &stubTransport{pages: map[int]Wire{
		1: {"numero_pagine": 1, "lista_clienti": []any{map[string]any{"id": "5", "nome": "ACME"}}},
	}}

	customers, err := NewCustomerList(transport, Wire{"filtro": "ACME"}).All(context.Background())
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "ACME", customers[0].Name)

	require.Len(t, transport.calls, 1)
	assert.Equal(t, "ACME", transport.calls[0].String("filtro"))
	assert.Equal(t, "clienti/lista", transport.paths[0])
}

func TestDocumentListValidatesType(t *testing.T) {
	_, err := NewDocumentList(&stubTransport{}, "nope", nil)
	require.ErrorIs(t, err, ErrUnknownDocumentType)
}

func TestDocumentList(t *testing.T) {
	transport := &stubTransport{pages: map[int]Wire{
		1: {
			"numero_pagine": 1,
			"lista_documenti": []any{
				map[string]any{"id": "88", "token": "tok-88", "id_cliente": "123", "nome": "ACME", "numero": "1/A"},
				map[string]any{"id": "89", "token": "tok-89", "id_cliente": "124", "nome": "Other", "numero": "2/A"},
			},
		},
	}}

	list, err := NewDocumentList(transport, DocumentTypeInvoice, nil)
	require.NoError(t, err)

	documents, err := list.All(context.Background())
	require.NoError(t, err)
	require.Len(t, documents, 2)
	assert.Equal(t, "fatture/lista", transport.paths[0])
	assert.Equal(t, DocumentTypeInvoice, documents[0].Type)
	assert.Equal(t, "tok-88", documents[0].Token)
	assert.Equal(t, "1/A", documents[0].Number)
}

func TestCustomerListBulkCreate(t *testing.T) {
	transport := &stubTransport{}

	first := &Customer{Subject: Subject{Name: "ACME"}}
	second := &Customer{Subject: Subject{Name: "Other"}}

	require.NoError(t, NewCustomerList(transport, nil).BulkCreate(context.Background(), first, second))

	require.Len(t, transport.calls, 1)
	assert.Equal(t, "clienti/importa", transport.paths[0])

	subjects, ok := transport.calls[0]["lista_soggetti"].([]any)
	require.True(t, ok)
	require.Len(t, subjects, 2)
	assert.Equal(t, "ACME", subjects[0].(Wire).String("nome"))
}

func TestSupplierListBulkCreate(t *testing.T) {
	transport := &stubTransport{}

	require.NoError(t, NewSupplierList(transport, nil).BulkCreate(context.Background(), &Supplier{Subject: Subject{Name: "Fornitore"}}))

	require.Len(t, transport.calls, 1)
	assert.Equal(t, "fornitori/importa", transport.paths[0])
}

func TestPurchaseList(t *testing.T) {
	transport := &stubTransport{pages: map[int]Wire{
		1: {
			"numero_pagine":   1,
			"lista_documenti": []any{map[string]any{"id": "15", "nome": "Fornitore", "importo_totale": "122.00"}},
		},
	}}

	purchases, err := NewPurchaseList(transport, nil).All(context.Background())
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, "acquisti/lista", transport.paths[0])
	assert.Equal(t, "122.00", purchases[0].TotalAmount)
}
