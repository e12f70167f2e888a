package fic

import "time"

// PurchasePayment is a due-date entry on a purchase.
type PurchasePayment struct {
	// DueDate is the payment due date.
	DueDate time.Time

	// Method is the payment method name.
	Method string

	// Amount is the payment amount in major units.
	Amount string

	// SettlementDate is the date the payment was settled.
	SettlementDate time.Time
}

func (p PurchasePayment) toWire() Wire {
	return Wire{
		"data_scadenza": FormatWireDate(p.DueDate),
		"metodo":        p.Method,
		"importo":       p.Amount,
		"data_saldo":    FormatWireDate(p.SettlementDate),
	}
}

func (p *PurchasePayment) fromWire(wire Wire) error {
	dueDate, err := ParseWireDate(wire.String("data_scadenza"))
	if err != nil {
		return err
	}

	settlementDate, err := ParseWireDate(wire.String("data_saldo"))
	if err != nil {
		return err
	}

	p.DueDate = dueDate
	p.Method = wire.String("metodo")
	p.Amount = wire.String("importo")
	p.SettlementDate = settlementDate

	return nil
}

// Purchase is a registered purchase (supplier invoice or receipt). Amounts
// are decimal strings in major units as reported by the server.
type Purchase struct {
	// ID is the purchase identifier, assigned by the server.
	ID string

	// SupplierID identifies the supplier.
	SupplierID string

	// InvoiceNumber is the supplier invoice number.
	InvoiceNumber string

	// AccrualYear is the accrual year of the purchase.
	AccrualYear string

	// Name is the purchase name.
	Name string

	// Date is the purchase date.
	Date time.Time

	// Category is the purchase category.
	Category string

	// NetAmount is the net amount in major units.
	NetAmount string

	// VATAmount is the VAT amount in major units.
	VATAmount string

	// TotalAmount is the total amount in major units.
	TotalAmount string

	// WithholdingTax is the withholding tax amount.
	WithholdingTax string

	// RetirementTax is the retirement tax amount.
	RetirementTax string

	// DeductibleTax is the tax deductibility percentage. Nil leaves the
	// remote default untouched.
	DeductibleTax *int

	// DeductibleVAT is the VAT deductibility percentage. Nil leaves the
	// remote default untouched.
	DeductibleVAT *int

	// Depreciation is the depreciation amount.
	Depreciation string

	// CostCentre is the cost centre name.
	CostCentre string

	// CurrencyCode is the purchase currency code.
	CurrencyCode string

	// ExchangeRatio is the exchange ratio against EUR.
	ExchangeRatio string

	// Description is the purchase description.
	Description string

	// AttachmentFile is the attached file name.
	AttachmentFile string

	// AttachmentLink is the link to the attachment.
	AttachmentLink string

	// NextDueDate is the next payment due date.
	NextDueDate time.Time

	// Type is the purchase type.
	Type string

	// Paid reports whether the purchase has been settled.
	Paid bool

	// Payments are the ordered payment entries.
	Payments []PurchasePayment

	original map[string]string
}

// AddPayment appends a payment entry.
func (p *Purchase) AddPayment(payment PurchasePayment) *Purchase {
	p.Payments = append(p.Payments, payment)

	return p
}

// ToWire renders the purchase in its flat wire form. Null and empty-string
// values are dropped.
func (p *Purchase) ToWire() Wire {
	payments := make([]any, 0, len(p.Payments))
	for i := range p.Payments {
		payments = append(payments, p.Payments[i].toWire())
	}

	wire := Wire{
		"id":                     p.ID,
		"tipo":                   p.Type,
		"saldato":                p.Paid,
		"anno_competenza":        p.AccrualYear,
		"id_fornitore":           p.SupplierID,
		"nome":                   p.Name,
		"data":                   FormatWireDate(p.Date),
		"descrizione":            p.Description,
		"categoria":              p.Category,
		"prossima_scadenza":      FormatWireDate(p.NextDueDate),
		"file_allegato":          p.AttachmentFile,
		"link_allegato":          p.AttachmentLink,
		"importo_netto":          p.NetAmount,
		"importo_iva":            p.VATAmount,
		"importo_totale":         p.TotalAmount,
		"ritenuta_acconto":       p.WithholdingTax,
		"ritenuta_previdenziale": p.RetirementTax,
		"ammortamento":           p.Depreciation,
		"centro_costo":           p.CostCentre,
		"numero_fattura":         p.InvoiceNumber,
		"valuta":                 p.CurrencyCode,
		"valuta_cambio":          p.ExchangeRatio,
	}

	if p.DeductibleTax != nil {
		wire["deducibilita_tasse"] = *p.DeductibleTax
	}

	if p.DeductibleVAT != nil {
		wire["deducibilita_iva"] = *p.DeductibleVAT
	}

	if len(payments) > 0 {
		wire["lista_pagamenti"] = payments
	}

	return filterEmpty(wire)
}

// FromWire fills the purchase from its flat wire form and snapshots the
// payload for later diffing.
func (p *Purchase) FromWire(wire Wire) error {
	p.original = snapshotWire(wire)

	p.ID = wire.String("id")
	p.Type = wire.String("tipo")
	p.Paid = wire.Bool("saldato")
	p.AccrualYear = wire.String("anno_competenza")
	p.SupplierID = wire.String("id_fornitore")
	p.Name = wire.String("nome")

	date, err := ParseWireDate(wire.String("data"))
	if err != nil {
		return err
	}

	p.Date = date
	p.Description = wire.String("descrizione")
	p.Category = wire.String("categoria")

	nextDueDate, err := ParseWireDate(wire.String("prossima_scadenza"))
	if err != nil {
		return err
	}

	p.NextDueDate = nextDueDate
	p.AttachmentFile = wire.String("file_allegato")
	p.AttachmentLink = wire.String("link_allegato")
	p.NetAmount = wire.String("importo_netto")
	p.VATAmount = wire.String("importo_iva")
	p.TotalAmount = wire.String("importo_totale")
	p.WithholdingTax = wire.String("ritenuta_acconto")
	p.RetirementTax = wire.String("ritenuta_previdenziale")
	p.DeductibleTax = wire.IntPtr("deducibilita_tasse")
	p.DeductibleVAT = wire.IntPtr("deducibilita_iva")
	p.Depreciation = wire.String("ammortamento")
	p.CostCentre = wire.String("centro_costo")
	p.InvoiceNumber = wire.String("numero_fattura")
	p.CurrencyCode = wire.String("valuta")
	p.ExchangeRatio = wire.String("valuta_cambio")

	p.Payments = nil

	for _, item := range wire.List("lista_pagamenti") {
		var payment PurchasePayment
		if err := payment.fromWire(item); err != nil {
			return err
		}

		p.Payments = append(p.Payments, payment)
	}

	return nil
}

// Changes diffs the current payload against the snapshot captured when the
// purchase was loaded.
func (p *Purchase) Changes() Wire {
	return diffWire(p.ToWire(), p.original)
}
