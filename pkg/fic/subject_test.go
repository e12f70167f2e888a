package fic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectPhoneNumbers(t *testing.T) {
	subject := &Subject{}

	// National numbers are parsed as Italian and exposed in E.164 form.
	require.NoError(t, subject.SetPhone("347 1234567"))
	assert.Equal(t, "+393471234567", subject.Phone())

	require.NoError(t, subject.SetFax("+41 44 668 1800"))
	assert.Equal(t, "+41446681800", subject.Fax())

	require.Error(t, subject.SetPhone("not a number"))

	require.NoError(t, subject.SetPhone(""))
	assert.Equal(t, "", subject.Phone())
}

func TestCustomerToWire(t *testing.T) {
	customer := &Customer{
		Subject: Subject{
			ID:         "5",
			Name:       "ACME S.r.l.",
			Reference:  "Mario Rossi",
			Country:    "Italia",
			CountryIso: "IT",
			Mail:       "acme@example.com",
			VATNumber:  "01234567890",
			Address: Address{
				Street: "Via Roma 1",
				Zip:    "20121",
				City:   "Milano",
			},
		},
		PaymentTerms:             30,
		EndMonthPayment:          true,
		DefaultVATValue:          22,
		DefaultVATDescription:    "Ordinaria",
		PublicAdministration:     true,
		PublicAdministrationCode: "ABC1234",
	}
	require.NoError(t, customer.SetPhone("+393471234567"))

	wire := customer.ToWire()

	assert.Equal(t, "5", wire.String("id"))
	assert.Equal(t, "ACME S.r.l.", wire.String("nome"))
	assert.Equal(t, "Mario Rossi", wire.String("referente"))
	assert.Equal(t, "+393471234567", wire.String("tel"))
	assert.Equal(t, "Via Roma 1", wire.String("indirizzo_via"))
	assert.Equal(t, "20121", wire.String("indirizzo_cap"))
	assert.Equal(t, 30, wire.Int("termini_pagamento"))
	assert.True(t, wire.Bool("pagamento_fine_mese"))
	assert.True(t, wire.Bool("PA"))
	assert.Equal(t, "ABC1234", wire.String("PA_codice"))

	// Unset fields are dropped rather than sent as zero values.
	assert.False(t, wire.Has("fax"))
	assert.False(t, wire.Has("cf"))
	assert.False(t, wire.Has("indirizzo_provincia"))
}

func TestCustomerFromWire(t *testing.T) {
	customer := &Customer{}
	require.NoError(t, customer.FromWire(Wire{
		"id":                  "5",
		"nome":                "ACME S.r.l.",
		"paese":               "Italia",
		"paese_iso":           "IT",
		"mail":                "acme@example.com",
		"tel":                 "+393471234567",
		"fax":                 "+390212345678",
		"piva":                "01234567890",
		"indirizzo_via":       "Via Roma 1",
		"indirizzo_citta":     "Milano",
		"termini_pagamento":   30,
		"pagamento_fine_mese": true,
		"val_iva_default":     22,
		"desc_iva_default":    "Ordinaria",
	}))

	assert.Equal(t, "5", customer.ID)
	assert.Equal(t, "ACME S.r.l.", customer.Name)
	assert.Equal(t, "IT", customer.CountryIso)
	assert.Equal(t, "+393471234567", customer.Phone())
	assert.Equal(t, "Via Roma 1", customer.Address.Street)
	assert.Equal(t, 30, customer.PaymentTerms)
	assert.True(t, customer.EndMonthPayment)
	assert.InDelta(t, 22, customer.DefaultVATValue, 0.0001)
	assert.Equal(t, "Ordinaria", customer.DefaultVATDescription)
}

func TestSubjectFaxLoadsFromPhoneKey(t *testing.T) {
	// The remote API reports the fax under the tel key, so a loaded
	// subject carries the phone number as its fax too.
	customer := &Customer{}
	require.NoError(t, customer.FromWire(Wire{
		"id":   "5",
		"nome": "ACME",
		"tel":  "+393471234567",
		"fax":  "+390212345678",
	}))

	assert.Equal(t, "+393471234567", customer.Phone())
	assert.Equal(t, "+393471234567", customer.Fax())
}

func TestCustomerChanges(t *testing.T) {
	loaded := func(t *testing.T) *Customer {
		t.Helper()

		customer := &Customer{}
		require.NoError(t, customer.FromWire(Wire{
			"id":                "5",
			"nome":              "ACME S.r.l.",
			"tel":               "+393471234567",
			"fax":               "+393471234567",
			"termini_pagamento": 30,
		}))

		return customer
	}

	t.Run("unchanged customer yields no changes", func(t *testing.T) {
		assert.Empty(t, loaded(t).Changes())
	})

	t.Run("only modified keys are reported", func(t *testing.T) {
		customer := loaded(t)
		customer.Name = "ACME S.p.A."
		customer.PaymentTerms = 60

		changes := customer.Changes()
		assert.Equal(t, Wire{"nome": "ACME S.p.A.", "termini_pagamento": 60}, changes)
	})
}

func TestSupplierRoundTrip(t *testing.T) {
	supplier := &Supplier{
		Subject: Subject{
			ID:        "7",
			Name:      "Fornitore S.r.l.",
			VATNumber: "09876543210",
		},
	}
	require.NoError(t, supplier.SetPhone("+390212345678"))
	require.NoError(t, supplier.SetFax("+390212345678"))

	wire := supplier.ToWire()
	assert.Equal(t, "7", wire.String("id"))
	assert.False(t, wire.Has("termini_pagamento"))

	loaded := &Supplier{}
	require.NoError(t, loaded.FromWire(wire))
	assert.Equal(t, supplier.Name, loaded.Name)
	assert.Equal(t, supplier.VATNumber, loaded.VATNumber)
	assert.Equal(t, "+390212345678", loaded.Phone())
	assert.Empty(t, loaded.Changes())
}
