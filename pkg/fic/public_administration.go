package fic

import (
	"fmt"
	"time"
)

// Entity types for electronic invoicing.
const (
	PAPublicEntity = "PA"
	PAB2B          = "B2B"
)

// Referenced document types for the electronic invoicing block.
const (
	PADocumentTypeOrder      = "ordine"
	PADocumentTypeConvention = "convenzione"
	PADocumentTypeContract   = "contratto"
	PADocumentTypeAny        = "nessuno"
)

// VAT collectability modes.
const (
	PACollectabilityImmediate    = "I"
	PACollectabilityDelayed      = "D"
	PACollectabilitySplitPayment = "S"
	PACollectabilityNotSpecified = "N"
)

// Payment method codes for the electronic invoicing block.
const (
	PAPaymentMethodCash                 = "MP01"
	PAPaymentMethodCheck                = "MP02"
	PAPaymentMethodCashiersCheck        = "MP03"
	PAPaymentMethodCashToTreasury       = "MP04"
	PAPaymentMethodBankTransfer         = "MP05"
	PAPaymentMethodPromissoryNote       = "MP06"
	PAPaymentMethodBankBulletin         = "MP07"
	PAPaymentMethodCreditCard           = "MP08"
	PAPaymentMethodDirectDebit          = "MP09"
	PAPaymentMethodDirectDebitUtilities = "MP10"
	PAPaymentMethodDirectDebitFast      = "MP11"
	PAPaymentMethodBankReceipt          = "MP12"
	PAPaymentMethodMAV                  = "MP13"
	PAPaymentMethodStateReceipts        = "MP14"
	PAPaymentMethodSpecialAccounting    = "MP15"
	PAPaymentMethodBankDomiciliation    = "MP16"
	PAPaymentMethodPostalDomiciliation  = "MP17"
)

var paEntityTypes = map[string]bool{
	PAPublicEntity: true,
	PAB2B:          true,
}

var paDocumentTypes = map[string]bool{
	PADocumentTypeOrder:      true,
	PADocumentTypeConvention: true,
	PADocumentTypeContract:   true,
	PADocumentTypeAny:        true,
}

var paCollectabilities = map[string]bool{
	PACollectabilityImmediate:    true,
	PACollectabilityDelayed:      true,
	PACollectabilitySplitPayment: true,
	PACollectabilityNotSpecified: true,
}

var paPaymentMethods = map[string]bool{
	PAPaymentMethodCash:                 true,
	PAPaymentMethodCheck:                true,
	PAPaymentMethodCashiersCheck:        true,
	PAPaymentMethodCashToTreasury:       true,
	PAPaymentMethodBankTransfer:         true,
	PAPaymentMethodPromissoryNote:       true,
	PAPaymentMethodBankBulletin:         true,
	PAPaymentMethodCreditCard:           true,
	PAPaymentMethodDirectDebit:          true,
	PAPaymentMethodDirectDebitUtilities: true,
	PAPaymentMethodDirectDebitFast:      true,
	PAPaymentMethodBankReceipt:          true,
	PAPaymentMethodMAV:                  true,
	PAPaymentMethodStateReceipts:        true,
	PAPaymentMethodSpecialAccounting:    true,
	PAPaymentMethodBankDomiciliation:    true,
	PAPaymentMethodPostalDomiciliation:  true,
}

// PublicAdministration carries the electronic invoicing block attached to a
// document when invoicing public entities or B2B counterparts through the
// exchange system.
type PublicAdministration struct {
	// EntityType is PAPublicEntity or PAB2B.
	EntityType string

	// DocumentType is one of the PADocumentType constants.
	DocumentType string

	// DocumentNumber is the number of the referenced document.
	DocumentNumber string

	// Date is the date of the referenced document.
	Date time.Time

	// CUP is the "Codice Unitario Progetto" project code.
	CUP string

	// CIG is the "Codice Identificativo Gara" tender code.
	CIG string

	// DestinationCode is the office code or B2B customer code.
	DestinationCode string

	// CertifiedEmail is the certified email address for B2B counterparts.
	CertifiedEmail string

	// VATCollectability is one of the PACollectability constants.
	VATCollectability string

	// PaymentMethod is one of the PAPaymentMethod code constants.
	PaymentMethod string

	// CreditInstitution is the name of the credit institution.
	CreditInstitution string

	// IBAN is the payment IBAN.
	IBAN string

	// Payee is the payee name.
	Payee string

	// transmissionStatus reports the sending status through the exchange
	// system. Server-assigned, read only.
	transmissionStatus string
}

// TransmissionStatus returns the server-reported sending status through the
// exchange system, or "" when the document has not been transmitted.
func (pa *PublicAdministration) TransmissionStatus() string {
	return pa.transmissionStatus
}

// Validate checks the constrained fields against their allowed values.
func (pa *PublicAdministration) Validate() error {
	if pa.EntityType != "" && !paEntityTypes[pa.EntityType] {
		return NewValidationError(fmt.Sprintf("invalid entity type %q", pa.EntityType))
	}

	if pa.DocumentType != "" && !paDocumentTypes[pa.DocumentType] {
		return NewValidationError(fmt.Sprintf("invalid referenced document type %q", pa.DocumentType))
	}

	if pa.VATCollectability != "" && !paCollectabilities[pa.VATCollectability] {
		return NewValidationError(fmt.Sprintf("invalid VAT collectability %q", pa.VATCollectability))
	}

	if pa.PaymentMethod != "" && !paPaymentMethods[pa.PaymentMethod] {
		return NewValidationError(fmt.Sprintf("invalid payment method code %q", pa.PaymentMethod))
	}

	return nil
}

func (pa *PublicAdministration) fromWire(wire Wire) error {
	pa.EntityType = wire.String("PA_tipo_cliente")
	pa.DocumentType = wire.String("PA_tipo")
	pa.DocumentNumber = wire.String("PA_numero")

	date, err := ParseWireDate(wire.String("PA_data"))
	if err != nil {
		return err
	}

	pa.Date = date
	pa.CUP = wire.String("PA_cup")
	pa.CIG = wire.String("PA_cig")
	pa.DestinationCode = wire.String("PA_codice")
	pa.CertifiedEmail = wire.String("PA_pec")
	pa.VATCollectability = wire.String("PA_esigibilita")
	pa.PaymentMethod = wire.String("PA_modalita_pagamento")
	pa.CreditInstitution = wire.String("PA_istituto_credito")
	pa.IBAN = wire.String("PA_iban")
	pa.Payee = wire.String("PA_beneficiario")

	if wire.Bool("PA_ts") {
		pa.transmissionStatus = wire.String("PA_ts_stato")
	}

	return nil
}
