package fic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSubject(t *testing.T) *Subject {
	t.Helper()

	subject := &Subject{
		ID:         "123",
		Name:       "ACME S.r.l.",
		Country:    "Italia",
		CountryIso: "IT",
		Mail:       "acme@example.com",
		VATNumber:  "01234567890",
		FiscalCode: "CMAXXX80A01H501X",
		Address: Address{
			Street:   "Via Roma 1",
			Zip:      "20121",
			City:     "Milano",
			Province: "MI",
		},
	}
	require.NoError(t, subject.SetPhone("+393471234567"))
	require.NoError(t, subject.SetFax("+390212345678"))

	return subject
}

func testGood(t *testing.T) Good {
	t.Helper()

	netPrice, err := NewMoneyFromMajor("10.25", NewCurrency("EUR"))
	require.NoError(t, err)

	return Good{
		Code:          "W-01",
		Name:          "Widget",
		UnitOfMeasure: "pz",
		Quantity:      Ptr(2.0),
		Description:   "A widget",
		NetPrice:      &netPrice,
		VATCode:       Ptr(0),
		Taxable:       Ptr(true),
		Discount:      Ptr(10.0),
	}
}

func TestParseDocumentType(t *testing.T) {
	docType, err := ParseDocumentType("fatture")
	require.NoError(t, err)
	assert.Equal(t, DocumentTypeInvoice, docType)

	_, err = ParseDocumentType("nope")
	require.ErrorIs(t, err, ErrUnknownDocumentType)
}

func TestNewDocument(t *testing.T) {
	document, err := NewDocument(DocumentTypeInvoice)
	require.NoError(t, err)
	assert.Equal(t, DocumentTypeInvoice, document.Type)
	assert.Equal(t, "EUR", document.Currency.Code())

	_, err = NewDocument("nope")
	require.ErrorIs(t, err, ErrUnknownDocumentType)
}

func TestDocumentToWireValidation(t *testing.T) {
	document, err := NewDocument(DocumentTypeInvoice)
	require.NoError(t, err)

	_, err = document.ToWire()
	require.ErrorIs(t, err, ErrSubjectNotDefined)
	assert.True(t, IsValidation(err))

	document.Subject = testSubject(t)

	_, err = document.ToWire()
	require.ErrorIs(t, err, ErrNoProductsAdded)

	document.AddGood(testGood(t))

	_, err = document.ToWire()
	require.NoError(t, err)
}

func TestDocumentToWirePaymentMethodLineCap(t *testing.T) {
	document, err := NewDocument(DocumentTypeInvoice)
	require.NoError(t, err)
	document.Subject = testSubject(t)
	document.AddGood(testGood(t))
	document.PaymentMethod.Title = "1\n2\n3\n4\n5\n6"

	// The payment method is validated even when it is not shown.
	_, err = document.ToWire()
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestDocumentToWireInvalidPublicAdministration(t *testing.T) {
	document, err := NewDocument(DocumentTypeInvoice)
	require.NoError(t, err)
	document.Subject = testSubject(t)
	document.AddGood(testGood(t))
	document.PublicAdministration = &PublicAdministration{EntityType: "X"}

	_, err = document.ToWire()
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestDocumentSubjectKeyByVariant(t *testing.T) {
	invoice, err := NewDocument(DocumentTypeInvoice)
	require.NoError(t, err)
	invoice.Subject = testSubject(t)
	invoice.AddGood(testGood(t))

	wire, err := invoice.ToWire()
	require.NoError(t, err)
	assert.Equal(t, "123", wire.String("id_cliente"))
	assert.False(t, wire.Has("id_fornitore"))

	order, err := NewDocument(DocumentTypeSupplierOrder)
	require.NoError(t, err)
	order.Subject = testSubject(t)
	order.AddGood(testGood(t))

	wire, err = order.ToWire()
	require.NoError(t, err)
	assert.Equal(t, "123", wire.String("id_fornitore"))
	assert.False(t, wire.Has("id_cliente"))
}

func TestDocumentToWireDropsFalsyValues(t *testing.T) {
	document, err := NewDocument(DocumentTypeInvoice)
	require.NoError(t, err)
	document.Subject = testSubject(t)
	document.AddGood(testGood(t))

	wire, err := document.ToWire()
	require.NoError(t, err)

	assert.False(t, wire.Has("ddt"))
	assert.False(t, wire.Has("PA"))
	assert.False(t, wire.Has("split_payment"))
	assert.False(t, wire.Has("numero"))
	assert.False(t, wire.Has("data"))
	assert.False(t, wire.Has("rivalsa"))
	assert.False(t, wire.Has("metodo_pagamento"))
}

func TestDocumentRoundTrip(t *testing.T) {
	stamp, err := NewMoneyFromMajor("2.00", NewCurrency("EUR"))
	require.NoError(t, err)

	document, err := NewDocument(DocumentTypeInvoice)
	require.NoError(t, err)

	document.Subject = testSubject(t)
	document.Language = "it"
	document.Number = "1/A"
	document.Date = time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)
	document.ExchangeRatio = "1"
	document.VATIncluded = true
	document.WithholdingTaxRatio = 20
	document.WithholdingTaxIncome = 100
	document.Stamp = &stamp
	document.DocumentSubject = "March supplies"
	document.Notes = "<b>urgent</b>"
	document.ShowPaymentInfo = true
	document.PaymentMethod = PaymentMethod{
		Name:  "Bonifico bancario",
		Title: "Banca Popolare\nIBAN IT00A0000000000000000000000",
	}
	document.TransportDocument = &EmbeddedTransportDocument{
		Number: "42",
		Date:   time.Date(2026, time.March, 13, 0, 0, 0, 0, time.UTC),
		Packs:  "3",
		Weight: "12.5",
		Causal: "vendita",
	}
	document.PublicAdministration = &PublicAdministration{
		EntityType:        PAB2B,
		DocumentType:      PADocumentTypeOrder,
		DocumentNumber:    "PO-7",
		Date:              time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
		CIG:               "Z123456789",
		DestinationCode:   "ABC1234",
		VATCollectability: PACollectabilityImmediate,
		PaymentMethod:     PAPaymentMethodBankTransfer,
		IBAN:              "IT00A0000000000000000000000",
	}
	document.SplitPayment = true
	document.AddGood(testGood(t))

	payment := NewPayment()
	payment.DueDate = time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)
	payment.Method = PaymentMethodNotPaid
	document.AddPayment(payment)

	wire, err := document.ToWire()
	require.NoError(t, err)

	assert.Equal(t, "14/03/2026", wire.String("data"))
	assert.Equal(t, "1.00000", wire.String("valuta_cambio"))
	assert.Equal(t, "2.00000", wire.String("marca_bollo"))
	assert.True(t, wire.Bool("ddt"))
	assert.True(t, wire.Bool("PA"))
	assert.Equal(t, "Banca Popolare", wire.String("metodo_titolo1"))
	assert.Equal(t, "Via Roma 1", wire.String("indirizzo_via"))

	loaded := &Document{Type: DocumentTypeInvoice}
	require.NoError(t, loaded.FromWire(wire))

	assert.Equal(t, document.Number, loaded.Number)
	assert.Equal(t, document.Date, loaded.Date)
	assert.Equal(t, "EUR", loaded.Currency.Code())
	assert.Equal(t, "1.00000", loaded.ExchangeRatio)
	assert.True(t, loaded.VATIncluded)
	assert.InDelta(t, 20, loaded.WithholdingTaxRatio, 0.0001)
	assert.InDelta(t, 100, loaded.WithholdingTaxIncome, 0.0001)
	require.NotNil(t, loaded.Stamp)
	assert.True(t, loaded.Stamp.Equals(stamp))
	assert.Equal(t, document.DocumentSubject, loaded.DocumentSubject)
	assert.Equal(t, document.Notes, loaded.Notes)
	assert.True(t, loaded.SplitPayment)

	require.NotNil(t, loaded.Subject)
	assert.Equal(t, "123", loaded.Subject.ID)
	assert.Equal(t, document.Subject.Name, loaded.Subject.Name)
	assert.Equal(t, "IT", loaded.Subject.CountryIso)
	assert.Equal(t, "acme@example.com", loaded.Subject.Mail)
	assert.Equal(t, "+393471234567", loaded.Subject.Phone())
	assert.Equal(t, "+390212345678", loaded.Subject.Fax())
	assert.Equal(t, document.Subject.Address, loaded.Subject.Address)

	require.NotNil(t, loaded.TransportDocument)
	assert.Equal(t, *document.TransportDocument, *loaded.TransportDocument)

	require.NotNil(t, loaded.PublicAdministration)
	assert.Equal(t, *document.PublicAdministration, *loaded.PublicAdministration)

	assert.True(t, loaded.ShowPaymentInfo)
	assert.Equal(t, document.PaymentMethod, loaded.PaymentMethod)

	require.Len(t, loaded.Goods, 1)
	assert.Equal(t, "Widget", loaded.Goods[0].Name)
	require.NotNil(t, loaded.Goods[0].NetPrice)
	assert.Equal(t, "10.25000", loaded.Goods[0].NetPrice.MajorUnits())
	require.NotNil(t, loaded.Goods[0].Quantity)
	assert.InDelta(t, 2.0, *loaded.Goods[0].Quantity, 0.0001)
	require.NotNil(t, loaded.Goods[0].VATCode)
	assert.Equal(t, 0, *loaded.Goods[0].VATCode)

	require.Len(t, loaded.Payments, 1)
	assert.Equal(t, payment.DueDate, loaded.Payments[0].DueDate)
	assert.Equal(t, PaymentAmountAuto, loaded.Payments[0].Amount)
	assert.Equal(t, PaymentMethodNotPaid, loaded.Payments[0].Method)
}

func TestDocumentFromWireSubjectContactBlock(t *testing.T) {
	contact := Wire{
		"mail": "acme@example.com",
		"tel":  "+393471234567",
		"fax":  "+390212345678",
	}

	// The block arrives as map[string]any off the network and as Wire
	// when produced by ToWire; both must load the same way.
	for name, block := range map[string]any{
		"decoded": map[string]any(contact),
		"typed":   contact,
	} {
		t.Run(name, func(t *testing.T) {
			loaded := &Document{Type: DocumentTypeInvoice}
			require.NoError(t, loaded.FromWire(Wire{
				"id_cliente":       "123",
				"nome":             "ACME S.r.l.",
				"extra_anagrafica": block,
			}))

			require.NotNil(t, loaded.Subject)
			assert.Equal(t, "acme@example.com", loaded.Subject.Mail)
			assert.Equal(t, "+393471234567", loaded.Subject.Phone())
			assert.Equal(t, "+390212345678", loaded.Subject.Fax())
		})
	}
}

func TestDocumentFromWireComputedFields(t *testing.T) {
	document := &Document{Type: DocumentTypeInvoice}
	require.NoError(t, document.FromWire(Wire{
		"id":                  "88",
		"token":               "tok-88",
		"id_cliente":          "123",
		"nome":                "ACME",
		"importo_netto":       "100.00",
		"importo_iva":         "22.00",
		"importo_totale":      "122.00",
		"importo_rit_acconto": "20.00",
		"template_id":         "1854",
		"link_doc":            "https://example.com/doc.pdf",
		"PA":                  true,
		"PA_ts":               true,
		"PA_ts_stato":         "inviato",
	}))

	assert.Equal(t, "88", document.ID)
	assert.Equal(t, "tok-88", document.Token)

	require.NotNil(t, document.NetAmount())
	assert.Equal(t, "10000", document.NetAmount().Amount())
	require.NotNil(t, document.VATAmount())
	assert.Equal(t, "2200", document.VATAmount().Amount())
	require.NotNil(t, document.GrossAmount())
	assert.Equal(t, "12200", document.GrossAmount().Amount())
	require.NotNil(t, document.WithholdingAmount())
	assert.Equal(t, "2000", document.WithholdingAmount().Amount())
	assert.Nil(t, document.WithholdingOtherAmount())

	// The legacy template_id key is honored when id_template is absent.
	assert.Equal(t, "1854", document.TemplateID)

	assert.Equal(t, "https://example.com/doc.pdf", document.Links().Document())

	require.NotNil(t, document.PublicAdministration)
	assert.Equal(t, "inviato", document.PublicAdministration.TransmissionStatus())
}

func loadedTestDocument(t *testing.T) *Document {
	t.Helper()

	document := &Document{Type: DocumentTypeInvoice}
	require.NoError(t, document.FromWire(Wire{
		"id":             "88",
		"token":          "tok-88",
		"id_cliente":     "123",
		"nome":           "ACME",
		"numero":         "1/A",
		"data":           "14/03/2026",
		"valuta":         "EUR",
		"importo_totale": "12.51",
		"lista_articoli": []any{map[string]any{
			"id":           "1",
			"codice":       "W-01",
			"cod":          "W-01",
			"nome":         "Widget",
			"descrizione":  "A widget",
			"desc":         "A widget",
			"prezzo_netto": "10.25000",
			"valore_iva":   "22",
		}},
		"lista_pagamenti": []any{map[string]any{
			"data_scadenza": "31/03/2026",
			"importo":       "auto",
			"metodo":        "not",
		}},
	}))

	return document
}

func TestDocumentChanges(t *testing.T) {
	t.Run("unchanged document yields no changes", func(t *testing.T) {
		document := loadedTestDocument(t)

		changes, err := document.Changes()
		require.NoError(t, err)
		assert.Empty(t, changes)
	})

	t.Run("only modified keys are reported", func(t *testing.T) {
		document := loadedTestDocument(t)
		document.Notes = "now with notes"

		changes, err := document.Changes()
		require.NoError(t, err)
		assert.Equal(t, Wire{"note": "now with notes"}, changes)
	})

	t.Run("line item edits show up as the full list", func(t *testing.T) {
		document := loadedTestDocument(t)
		document.Goods[0].Name = "Renamed widget"

		changes, err := document.Changes()
		require.NoError(t, err)
		require.Contains(t, changes, "lista_articoli")
		assert.Len(t, changes, 1)
	})

	t.Run("server-computed line VAT does not count as a change", func(t *testing.T) {
		document := loadedTestDocument(t)
		assert.Equal(t, "22", document.Goods[0].VATAmount())

		changes, err := document.Changes()
		require.NoError(t, err)
		assert.Empty(t, changes)
	})
}
