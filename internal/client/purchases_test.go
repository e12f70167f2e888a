package client

import (
	"context"
	"testing"

	"github.com/fivetwenty-io/fic-client/pkg/fic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func purchaseDetails() fic.Wire {
	return fic.Wire{
		"dettagli_documento": map[string]any{
			"id":                 "15",
			"tipo":               "fattura",
			"saldato":            true,
			"id_fornitore":       "7",
			"nome":               "Fornitore S.r.l.",
			"data":               "14/03/2026",
			"importo_totale":     "122.00",
			"deducibilita_tasse": 100,
			"deducibilita_iva":   100,
			"numero_fattura":     "F-2026-12",
		},
	}
}

func TestPurchasesClient_Get(t *testing.T) {
	transport := &stubTransport{responses: map[string]fic.Wire{
		"acquisti/dettagli": purchaseDetails(),
	}}

	purchase, err := NewPurchasesClient(transport).Get(context.Background(), "15")
	require.NoError(t, err)

	call := transport.lastCall(t)
	assert.Equal(t, "acquisti/dettagli", call.path)
	assert.Equal(t, "15", call.body.String("id"))

	assert.Equal(t, "15", purchase.ID)
	assert.True(t, purchase.Paid)
	assert.Equal(t, "F-2026-12", purchase.InvoiceNumber)
}

func TestPurchasesClient_GetNotFound(t *testing.T) {
	transport := &stubTransport{responses: map[string]fic.Wire{
		"acquisti/dettagli": {"dettagli_documento": map[string]any{}},
	}}

	_, err := NewPurchasesClient(transport).Get(context.Background(), "99")
	require.Error(t, err)
	assert.True(t, fic.IsNotFound(err))
}

func TestPurchasesClient_Create(t *testing.T) {
	transport := &stubTransport{responses: map[string]fic.Wire{
		"acquisti/nuovo": {"success": true, "new_id": "15"},
	}}

	purchase := &fic.Purchase{SupplierID: "7", Name: "Fornitore S.r.l.", TotalAmount: "122.00"}
	require.NoError(t, NewPurchasesClient(transport).Create(context.Background(), purchase))

	call := transport.lastCall(t)
	assert.Equal(t, "acquisti/nuovo", call.path)
	assert.Equal(t, "7", call.body.String("id_fornitore"))
	assert.Equal(t, "15", purchase.ID)
}

func TestPurchasesClient_Save(t *testing.T) {
	load := func(t *testing.T) *fic.Purchase {
		t.Helper()

		purchase := &fic.Purchase{}
		details := fic.Wire(purchaseDetails()["dettagli_documento"].(map[string]any))
		require.NoError(t, purchase.FromWire(details))

		return purchase
	}

	t.Run("no changes means no request", func(t *testing.T) {
		transport := &stubTransport{}

		require.NoError(t, NewPurchasesClient(transport).Save(context.Background(), load(t)))
		assert.Empty(t, transport.calls)
	})

	t.Run("only changed fields are sent", func(t *testing.T) {
		transport := &stubTransport{}

		purchase := load(t)
		purchase.Paid = false

		require.NoError(t, NewPurchasesClient(transport).Save(context.Background(), purchase))

		call := transport.lastCall(t)
		assert.Equal(t, "acquisti/modifica", call.path)
		assert.Equal(t, "15", call.body.String("id"))
		assert.Equal(t, false, call.body["saldato"])
		assert.False(t, call.body.Has("nome"))
	})
}

func TestPurchasesClient_DeletePurchase(t *testing.T) {
	transport := &stubTransport{}

	purchase := &fic.Purchase{ID: "15"}
	require.NoError(t, NewPurchasesClient(transport).DeletePurchase(context.Background(), purchase))

	call := transport.lastCall(t)
	assert.Equal(t, "acquisti/elimina", call.path)
	assert.Equal(t, "15", call.body.String("id"))
	assert.Empty(t, purchase.ID)
}

func TestPurchasesClient_List(t *testing.T) {
	transport := &stubTransport{responses: map[string]fic.Wire{
		"acquisti/lista": {
			"numero_pagine":   1,
			"lista_documenti": []any{map[string]any{"id": "15", "nome": "Fornitore S.r.l."}},
		},
	}}

	purchases, err := NewPurchasesClient(transport).List(fic.Wire{"anno": 2026}).All(context.Background())
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, 2026, transport.lastCall(t).body.Int("anno"))
}
