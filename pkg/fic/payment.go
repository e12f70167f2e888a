package fic

import (
	"strconv"
	"strings"
	"time"
)

// Sentinel values accepted by Payment fields.
const (
	// PaymentAmountAuto lets the server compute the payment amount.
	PaymentAmountAuto = "auto"

	// PaymentMethodNotPaid marks the payment as not yet paid.
	PaymentMethodNotPaid = "not"

	// PaymentMethodReversed marks the payment as reversed.
	PaymentMethodReversed = "rev"
)

// Payment is a due-date entry on a document.
type Payment struct {
	// DueDate is the payment due date.
	DueDate time.Time

	// Amount is the payment amount in major units, or PaymentAmountAuto.
	Amount string

	// Method is the account name, or one of the PaymentMethodNotPaid and
	// PaymentMethodReversed sentinels.
	Method string

	// SettlementDate is the date the payment was settled.
	SettlementDate time.Time
}

// NewPayment returns a payment with the amount set to PaymentAmountAuto.
func NewPayment() Payment {
	return Payment{Amount: PaymentAmountAuto}
}

func (p Payment) toWire() Wire {
	return Wire{
		"data_scadenza": FormatWireDate(p.DueDate),
		"importo":       p.Amount,
		"metodo":        p.Method,
		"data_saldo":    FormatWireDate(p.SettlementDate),
	}
}

func (p *Payment) fromWire(wire Wire) error {
	dueDate, err := ParseWireDate(wire.String("data_scadenza"))
	if err != nil {
		return err
	}

	settlementDate, err := ParseWireDate(wire.String("data_saldo"))
	if err != nil {
		return err
	}

	p.DueDate = dueDate
	p.Amount = wire.String("importo")
	p.Method = wire.String("metodo")
	p.SettlementDate = settlementDate

	return nil
}

// paymentMethodMaxLines caps the title and description line count.
const paymentMethodMaxLines = 5

// PaymentMethod describes how a document is to be paid. Title and
// description hold up to five newline-separated lines each; on the wire
// every line gets its own indexed key.
type PaymentMethod struct {
	// Name is the payment method name.
	Name string

	// Title is the multi-line payment method title.
	Title string

	// Description is the multi-line payment method description.
	Description string
}

// ToWire renders the method into metodo_pagamento plus the indexed
// metodo_titoloN and metodo_descN keys. Titles or descriptions longer than
// five lines fail with a ValidationError.
func (pm PaymentMethod) ToWire() (Wire, error) {
	titleLines := strings.Split(pm.Title, "\n")
	if len(titleLines) > paymentMethodMaxLines {
		return nil, NewValidationError("payment method title cannot contain more than 5 lines")
	}

	descriptionLines := strings.Split(pm.Description, "\n")
	if len(descriptionLines) > paymentMethodMaxLines {
		return nil, NewValidationError("payment method description cannot contain more than 5 lines")
	}

	wire := Wire{"metodo_pagamento": pm.Name}

	for i, line := range titleLines {
		wire["metodo_titolo"+strconv.Itoa(i+1)] = line
	}

	for i, line := range descriptionLines {
		wire["metodo_desc"+strconv.Itoa(i+1)] = line
	}

	return wire, nil
}

// FromWire joins the indexed title and description keys back into
// newline-separated strings, skipping empty lines.
func (pm *PaymentMethod) FromWire(wire Wire) {
	pm.Name = wire.String("metodo_pagamento")
	pm.Title = joinIndexed(wire, "metodo_titolo")
	pm.Description = joinIndexed(wire, "metodo_desc")
}

func joinIndexed(wire Wire, prefix string) string {
	lines := make([]string, 0, paymentMethodMaxLines)

	for i := 1; i <= paymentMethodMaxLines; i++ {
		if line := wire.String(prefix + strconv.Itoa(i)); line != "" {
			lines = append(lines, line)
		}
	}

	return strings.Join(lines, "\n")
}
