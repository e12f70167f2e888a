package fic

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType tags a document variant and doubles as the resource path
// segment used by the API.
type DocumentType string

// The nine document variants.
const (
	DocumentTypeInvoice           DocumentType = "fatture"
	DocumentTypeProforma          DocumentType = "proforma"
	DocumentTypeOrder             DocumentType = "ordini"
	DocumentTypeQuotation         DocumentType = "preventivi"
	DocumentTypeReceipt           DocumentType = "ricevute"
	DocumentTypeReport            DocumentType = "rapporti"
	DocumentTypeCreditNote        DocumentType = "ndc"
	DocumentTypeSupplierOrder     DocumentType = "ordforn"
	DocumentTypeTransportDocument DocumentType = "ddt"
)

var documentTypes = map[DocumentType]bool{
	DocumentTypeInvoice:           true,
	DocumentTypeProforma:          true,
	DocumentTypeOrder:             true,
	DocumentTypeQuotation:         true,
	DocumentTypeReceipt:           true,
	DocumentTypeReport:            true,
	DocumentTypeCreditNote:        true,
	DocumentTypeSupplierOrder:     true,
	DocumentTypeTransportDocument: true,
}

// Valid reports whether the tag names a known document variant.
func (t DocumentType) Valid() bool {
	return documentTypes[t]
}

// ParseDocumentType validates a raw type tag.
func ParseDocumentType(value string) (DocumentType, error) {
	docType := DocumentType(value)
	if !docType.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownDocumentType, value)
	}

	return docType, nil
}

// Totals display modes for quotations, reports and supplier orders.
const (
	TotalsShowAll  = "tutti"
	TotalsShowNets = "netti"
	TotalsHideAll  = "nessuno"
)

// Document is an issued document of any variant: invoice, proforma, order,
// quotation, receipt, report, credit note, supplier order or transport
// document. The Type tag selects the resource path and the wire key the
// subject identifier is emitted under.
type Document struct {
	// Type tags the document variant.
	Type DocumentType

	// ID is the document identifier, assigned by the server.
	ID string

	// Token is the permanent identifier assigned on create, used instead
	// of the numeric id for updates and deletes.
	Token string

	// Name is the document name as reported by the server.
	Name string

	// Subject is the customer or supplier counterpart. Mandatory for any
	// create or update payload.
	Subject *Subject

	// Language is the 2-letter document language code (it, en, de).
	Language string

	// Number is the document number and series. A series alone picks the
	// next number for that series.
	Number string

	// Date is the document date. The server uses the current date when
	// absent.
	Date time.Time

	// Currency is the document currency. Defaults to EUR.
	Currency Currency

	// ExchangeRatio is the decimal exchange ratio against EUR. The server
	// uses the current ratio when empty.
	ExchangeRatio string

	// VATIncluded reports whether prices on the document include VAT.
	VATIncluded bool

	// Compensation is the INPS compensation ratio. Not available on
	// transport documents and supplier orders.
	Compensation float64

	// WithholdingTaxRatio is the withholding tax ratio.
	WithholdingTaxRatio float64

	// WithholdingTaxIncome is the withholding tax income ratio upon
	// total.
	WithholdingTaxIncome float64

	// WithholdingOtherRatio is the other withholding ratio, if
	// applicable.
	WithholdingOtherRatio float64

	// Stamp is the stamp duty amount.
	Stamp *PreciseMoney

	// DocumentSubject is the visible document subject.
	DocumentSubject string

	// DocumentInternalSubject is the internal document subject.
	DocumentInternalSubject string

	// RevenueCenter is the revenue center name.
	RevenueCenter string

	// CostCenter is the cost center name.
	CostCenter string

	// Notes carries HTML notes.
	Notes string

	// HideExpiration hides the document expiration.
	HideExpiration bool

	// AccompanyingInvoice marks an accompanying invoice as present.
	AccompanyingInvoice bool

	// TemplateID is the template identifier.
	TemplateID string

	// AccompanyingInvoiceTemplateID is the accompanying invoice template
	// identifier.
	AccompanyingInvoiceTemplateID string

	// TransportDocument is the embedded transport document block, emitted
	// under the ddt flag when present.
	TransportDocument *EmbeddedTransportDocument

	// ShowPaymentInfo shows the payment method details on the document.
	ShowPaymentInfo bool

	// PaymentMethod describes how the document is to be paid.
	PaymentMethod PaymentMethod

	// ShowTotals is one of the Totals constants. Only for quotations,
	// reports and supplier orders.
	ShowTotals string

	// ShowPayWithPayPal shows the "Pay with PayPal" button. Only for
	// receipts, invoices, proforma and orders.
	ShowPayWithPayPal bool

	// ShowPayWithBankTransfer shows the "Pay with bank transfer" button.
	ShowPayWithBankTransfer bool

	// ShowNotifyPaymentExecuted shows the "Notify payment executed"
	// button.
	ShowNotifyPaymentExecuted bool

	// Goods are the ordered line items. At least one is mandatory for any
	// create or update payload.
	Goods []Good

	// Payments are the ordered payment entries.
	Payments []Payment

	// PublicAdministration is the electronic invoicing block, emitted
	// under the PA flag when present.
	PublicAdministration *PublicAdministration

	// SplitPayment marks the document as split payment.
	SplitPayment bool

	autocompleteSubject bool
	autosaveSubject     bool

	netAmount              *PreciseMoney
	vatAmount              *PreciseMoney
	grossAmount            *PreciseMoney
	withholdingAmount      *PreciseMoney
	withholdingOtherAmount *PreciseMoney
	links                  Links

	original map[string]string
}

// NewDocument returns an empty document of the given variant with the
// currency set to EUR.
func NewDocument(docType DocumentType) (*Document, error) {
	if !docType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDocumentType, string(docType))
	}

	return &Document{
		Type:     docType,
		Currency: NewCurrency("EUR"),
	}, nil
}

// AddGood appends a line item.
func (d *Document) AddGood(good Good) *Document {
	d.Goods = append(d.Goods, good)

	return d
}

// AddPayment appends a payment entry.
func (d *Document) AddPayment(payment Payment) *Document {
	d.Payments = append(d.Payments, payment)

	return d
}

// EnableAutocompleteSubject asks the server to fill missing subject fields
// from the registry.
func (d *Document) EnableAutocompleteSubject() {
	d.autocompleteSubject = true
}

// EnableAutosaveSubject asks the server to save or update the subject in
// the registry.
func (d *Document) EnableAutosaveSubject() {
	d.autosaveSubject = true
}

// NetAmount returns the server-computed net amount, or nil before the
// document has been read back.
func (d *Document) NetAmount() *PreciseMoney {
	return d.netAmount
}

// VATAmount returns the server-computed VAT amount, or nil before the
// document has been read back.
func (d *Document) VATAmount() *PreciseMoney {
	return d.vatAmount
}

// GrossAmount returns the server-computed gross amount, or nil before the
// document has been read back.
func (d *Document) GrossAmount() *PreciseMoney {
	return d.grossAmount
}

// WithholdingAmount returns the server-computed withholding tax amount.
func (d *Document) WithholdingAmount() *PreciseMoney {
	return d.withholdingAmount
}

// WithholdingOtherAmount returns the server-computed other withholding
// amount.
func (d *Document) WithholdingOtherAmount() *PreciseMoney {
	return d.withholdingOtherAmount
}

// Links returns the server-generated PDF and attachment links.
func (d *Document) Links() Links {
	return d.links
}

// ToWire renders the document in its flat wire form. It fails with a
// ValidationError when the subject is missing, the goods list is empty, a
// payment method field overflows its line cap or a constrained public
// administration field carries an unknown value. Falsy values are dropped
// from the result.
func (d *Document) ToWire() (Wire, error) {
	if d.Subject == nil {
		return nil, ErrSubjectNotDefined
	}

	if len(d.Goods) == 0 {
		return nil, ErrNoProductsAdded
	}

	paymentMethod, err := d.PaymentMethod.ToWire()
	if err != nil {
		return nil, err
	}

	if d.PublicAdministration != nil {
		if err := d.PublicAdministration.Validate(); err != nil {
			return nil, err
		}
	}

	goods := make([]any, 0, len(d.Goods))
	for i := range d.Goods {
		goods = append(goods, d.Goods[i].ToWire())
	}

	payments := make([]any, 0, len(d.Payments))
	for i := range d.Payments {
		payments = append(payments, d.Payments[i].toWire())
	}

	wire := Wire{
		"nome":                    d.Subject.Name,
		"paese":                   d.Subject.Country,
		"paese_iso":               d.Subject.CountryIso,
		"lingua":                  d.Language,
		"piva":                    d.Subject.VATNumber,
		"cf":                      d.Subject.FiscalCode,
		"autocompila_anagrafica":  d.autocompleteSubject,
		"salva_anagrafica":        d.autosaveSubject,
		"numero":                  d.Number,
		"data":                    FormatWireDate(d.Date),
		"valuta":                  d.Currency.Code(),
		"valuta_cambio":           formatExchangeRatio(d.ExchangeRatio),
		"prezzi_ivati":            d.VATIncluded,
		"rivalsa":                 d.Compensation,
		"rit_acconto":             d.WithholdingTaxRatio,
		"imponibile_ritenuta":     d.WithholdingTaxIncome,
		"rit_altra":               d.WithholdingOtherRatio,
		"marca_bollo":             moneyToWire(d.Stamp),
		"oggetto_visibile":        d.DocumentSubject,
		"oggetto_interno":         d.DocumentInternalSubject,
		"centro_ricavo":           d.RevenueCenter,
		"centro_costo":            d.CostCenter,
		"note":                    d.Notes,
		"nascondi_scadenza":       d.HideExpiration,
		"ddt":                     d.TransportDocument != nil,
		"ftacc":                   d.AccompanyingInvoice,
		"id_template":             d.TemplateID,
		"ftacc_id_template":       d.AccompanyingInvoiceTemplateID,
		"mostra_info_pagamento":   d.ShowPaymentInfo,
		"mostra_totali":           d.ShowTotals,
		"mostra_bottone_paypal":   d.ShowPayWithPayPal,
		"mostra_bottone_bonifico": d.ShowPayWithBankTransfer,
		"mostra_bottone_notifica": d.ShowNotifyPaymentExecuted,
		"lista_articoli":          goods,
		"lista_pagamenti":         payments,
		"split_payment":           d.SplitPayment,
		"extra_anagrafica": filterFalsy(Wire{
			"mail": d.Subject.Mail,
			"tel":  d.Subject.Phone(),
			"fax":  d.Subject.Fax(),
		}),
	}

	if d.Type == DocumentTypeSupplierOrder {
		wire["id_fornitore"] = d.Subject.ID
	} else {
		wire["id_cliente"] = d.Subject.ID
	}

	if ddt := d.TransportDocument; ddt != nil {
		wire["ddt_id_template"] = ddt.TemplateID
		wire["ddt_numero"] = ddt.Number
		wire["ddt_data"] = FormatWireDate(ddt.Date)
		wire["ddt_colli"] = ddt.Packs
		wire["ddt_peso"] = ddt.Weight
		wire["ddt_causale"] = ddt.Causal
		wire["ddt_luogo"] = ddt.Place
		wire["ddt_trasportatore"] = ddt.TransporterData
		wire["ddt_annotazioni"] = ddt.Annotations
	}

	if pa := d.PublicAdministration; pa != nil {
		wire["PA"] = true
		wire["PA_tipo_cliente"] = pa.EntityType
		wire["PA_tipo"] = pa.DocumentType
		wire["PA_numero"] = pa.DocumentNumber
		wire["PA_data"] = FormatWireDate(pa.Date)
		wire["PA_cup"] = pa.CUP
		wire["PA_cig"] = pa.CIG
		wire["PA_codice"] = pa.DestinationCode
		wire["PA_pec"] = pa.CertifiedEmail
		wire["PA_esigibilita"] = pa.VATCollectability
		wire["PA_modalita_pagamento"] = pa.PaymentMethod
		wire["PA_istituto_credito"] = pa.CreditInstitution
		wire["PA_iban"] = pa.IBAN
		wire["PA_beneficiario"] = pa.Payee
	}

	for key, value := range prefixedAddress(d.Subject.Address) {
		wire[key] = value
	}

	if d.ShowPaymentInfo {
		for key, value := range paymentMethod {
			wire[key] = value
		}
	}

	return filterFalsy(wire), nil
}

// FromWire fills the document from its flat wire form and snapshots the
// payload for later diffing. The token and the server-computed VAT value
// of each line are left out of the snapshot.
func (d *Document) FromWire(wire Wire) error {
	d.original = documentSnapshot(wire)
	d.autocompleteSubject = false
	d.autosaveSubject = false

	d.ID = wire.String("id")
	d.Token = wire.String("token")
	d.Name = wire.String("nome")

	subject := &Subject{}
	if wire.Has("id_cliente") {
		subject.ID = wire.String("id_cliente")
	} else {
		subject.ID = wire.String("id_fornitore")
	}

	subject.Name = wire.String("nome")
	subject.Country = wire.String("paese")
	subject.CountryIso = wire.String("paese_iso")
	subject.VATNumber = wire.String("piva")
	subject.FiscalCode = wire.String("cf")
	subject.Address.fromWire(wire)

	if extra := wire.Map("extra_anagrafica"); extra != nil {
		subject.Mail = extra.String("mail")

		if err := subject.SetPhone(extra.String("tel")); err != nil {
			return err
		}

		if err := subject.SetFax(extra.String("fax")); err != nil {
			return err
		}
	}

	d.Subject = subject

	d.Language = wire.String("lingua")
	d.Number = wire.String("numero")

	date, err := ParseWireDate(wire.String("data"))
	if err != nil {
		return err
	}

	d.Date = date

	currencyCode := wire.String("valuta")
	if currencyCode == "" {
		currencyCode = "EUR"
	}

	d.Currency = NewCurrency(currencyCode)
	d.ExchangeRatio = wire.String("valuta_cambio")
	d.VATIncluded = wire.Bool("prezzi_ivati")

	if d.netAmount, err = moneyFromWire(wire.String("importo_netto"), d.Currency); err != nil {
		return err
	}

	if d.vatAmount, err = moneyFromWire(wire.String("importo_iva"), d.Currency); err != nil {
		return err
	}

	if d.grossAmount, err = moneyFromWire(wire.String("importo_totale"), d.Currency); err != nil {
		return err
	}

	if d.withholdingAmount, err = moneyFromWire(wire.String("importo_rit_acconto"), d.Currency); err != nil {
		return err
	}

	if d.withholdingOtherAmount, err = moneyFromWire(wire.String("importo_rit_altra"), d.Currency); err != nil {
		return err
	}

	d.Compensation = floatOrZero(wire, "rivalsa")
	d.WithholdingTaxRatio = floatOrZero(wire, "rit_acconto")
	d.WithholdingTaxIncome = floatOrZero(wire, "imponibile_ritenuta")
	d.WithholdingOtherRatio = floatOrZero(wire, "rit_altra")

	if d.Stamp, err = moneyFromWire(wire.String("marca_bollo"), d.Currency); err != nil {
		return err
	}

	d.DocumentSubject = wire.String("oggetto_visibile")
	d.DocumentInternalSubject = wire.String("oggetto_interno")
	d.RevenueCenter = wire.String("centro_ricavo")
	d.CostCenter = wire.String("centro_costo")
	d.Notes = wire.String("note")
	d.HideExpiration = wire.Bool("nascondi_scadenza")

	d.TransportDocument = nil

	if wire.Bool("ddt") {
		ddtDate, err := ParseWireDate(wire.String("ddt_data"))
		if err != nil {
			return err
		}

		d.TransportDocument = &EmbeddedTransportDocument{
			TemplateID:      wire.String("ddt_id_template"),
			Number:          wire.String("ddt_numero"),
			Date:            ddtDate,
			Packs:           wire.String("ddt_colli"),
			Weight:          wire.String("ddt_peso"),
			Causal:          wire.String("ddt_causale"),
			Place:           wire.String("ddt_luogo"),
			TransporterData: wire.String("ddt_trasportatore"),
			Annotations:     wire.String("ddt_annotazioni"),
		}
	}

	d.AccompanyingInvoice = wire.Bool("ftacc")

	d.TemplateID = wire.String("id_template")
	if d.TemplateID == "" {
		d.TemplateID = wire.String("template_id")
	}

	d.AccompanyingInvoiceTemplateID = wire.String("ftacc_id_template")

	d.PaymentMethod = PaymentMethod{}
	d.ShowPaymentInfo = wire.Bool("mostra_info_pagamento")

	if d.ShowPaymentInfo {
		d.PaymentMethod.FromWire(wire)
	}

	d.ShowTotals = wire.String("mostra_totali")
	d.ShowPayWithPayPal = wire.Bool("mostra_bottone_paypal")
	d.ShowPayWithBankTransfer = wire.Bool("mostra_bottone_bonifico")
	d.ShowNotifyPaymentExecuted = wire.Bool("mostra_bottone_notifica")

	d.Goods = nil
	d.Payments = nil

	for _, item := range wire.List("lista_articoli") {
		var good Good
		if err := good.FromWire(item, d.Currency); err != nil {
			return err
		}

		d.Goods = append(d.Goods, good)
	}

	for _, item := range wire.List("lista_pagamenti") {
		var payment Payment
		if err := payment.fromWire(item); err != nil {
			return err
		}

		d.Payments = append(d.Payments, payment)
	}

	d.links = Links{
		document:            wire.String("link_doc"),
		transportDocument:   wire.String("link_ddt"),
		accompanyingInvoice: wire.String("link_ftacc"),
		attachment:          wire.String("link_allegato"),
	}

	d.PublicAdministration = nil

	if wire.Bool("PA") {
		pa := &PublicAdministration{}
		if err := pa.fromWire(wire); err != nil {
			return err
		}

		d.PublicAdministration = pa
	}

	d.SplitPayment = wire.Bool("split_payment")

	return nil
}

// Changes renders the current payload and diffs it against the snapshot
// captured when the document was loaded. An empty result means a save
// would be a no-op.
func (d *Document) Changes() (Wire, error) {
	current, err := d.ToWire()
	if err != nil {
		return nil, err
	}

	return diffWire(current, d.original), nil
}

// documentSnapshot canonicalizes a document payload for diffing: the token
// is dropped and the server-computed VAT value is stripped from each line
// item.
func documentSnapshot(wire Wire) map[string]string {
	snapshot := make(Wire, len(wire))

	for key, value := range wire {
		if key == "token" {
			continue
		}

		snapshot[key] = value
	}

	if goods := wire.List("lista_articoli"); len(goods) > 0 {
		cleaned := make([]any, 0, len(goods))

		for _, good := range goods {
			item := make(Wire, len(good))

			for key, value := range good {
				if key == "valore_iva" {
					continue
				}

				item[key] = value
			}

			cleaned = append(cleaned, item)
		}

		snapshot["lista_articoli"] = cleaned
	}

	return snapshotWire(snapshot)
}

func floatOrZero(wire Wire, key string) float64 {
	if value := wire.FloatPtr(key); value != nil {
		return *value
	}

	return 0
}

// formatExchangeRatio renders a decimal exchange ratio with the fixed
// 5-decimal precision used on the wire.
func formatExchangeRatio(ratio string) any {
	if ratio == "" {
		return nil
	}

	parsed, err := decimal.NewFromString(ratio)
	if err != nil {
		return ratio
	}

	return parsed.StringFixed(5)
}
