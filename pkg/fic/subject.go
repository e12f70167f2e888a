package fic

import (
	"fmt"

	"github.com/nyaruka/phonenumbers"
)

// phoneDefaultRegion is the region used to parse phone numbers given
// without an international prefix.
const phoneDefaultRegion = "IT"

// Address is a subject's postal address. On the wire its fields appear
// flattened into the parent object with an indirizzo_ prefix.
type Address struct {
	Street   string
	Zip      string
	City     string
	Province string
	Extra    string
}

func (a Address) toWire() Wire {
	return Wire{
		"via":       a.Street,
		"cap":       a.Zip,
		"citta":     a.City,
		"provincia": a.Province,
		"extra":     a.Extra,
	}
}

// prefixedAddress flattens an address into indirizzo_-prefixed keys ready
// to be merged into a parent payload.
func prefixedAddress(a Address) Wire {
	prefixed := make(Wire)

	for key, value := range a.toWire() {
		prefixed["indirizzo_"+key] = value
	}

	return prefixed
}

func (a *Address) fromWire(wire Wire) {
	a.Street = wire.String("indirizzo_via")
	a.Zip = wire.String("indirizzo_cap")
	a.City = wire.String("indirizzo_citta")
	a.Province = wire.String("indirizzo_provincia")
	a.Extra = wire.String("indirizzo_extra")
}

// Subject is the common part of a Customer or Supplier counterparty.
// Phone and fax numbers are stored parsed and exposed in E.164 form.
type Subject struct {
	// ID is the resource identifier, assigned by the server on create.
	ID string

	// Name is the subject name.
	Name string

	// Reference is the reference person name.
	Reference string

	// Address is the subject's postal address.
	Address Address

	// Country is the subject country name.
	Country string

	// CountryIso is the ISO code of the subject country.
	CountryIso string

	// Mail is the subject email address.
	Mail string

	// VATNumber is the subject VAT number.
	VATNumber string

	// FiscalCode is the subject fiscal code.
	FiscalCode string

	// Extra carries free-form extra info.
	Extra string

	phone *phonenumbers.PhoneNumber
	fax   *phonenumbers.PhoneNumber

	original map[string]string
}

// SetPhone parses and stores the subject phone number. Numbers without an
// international prefix are parsed as Italian. An empty string clears the
// number.
func (s *Subject) SetPhone(number string) error {
	parsed, err := parsePhone(number)
	if err != nil {
		return err
	}

	s.phone = parsed

	return nil
}

// Phone returns the subject phone number in E.164 form, or "" when unset.
func (s *Subject) Phone() string {
	return formatPhone(s.phone)
}

// SetFax parses and stores the subject fax number. An empty string clears
// the number.
func (s *Subject) SetFax(number string) error {
	parsed, err := parsePhone(number)
	if err != nil {
		return err
	}

	s.fax = parsed

	return nil
}

// Fax returns the subject fax number in E.164 form, or "" when unset.
func (s *Subject) Fax() string {
	return formatPhone(s.fax)
}

func parsePhone(number string) (*phonenumbers.PhoneNumber, error) {
	if number == "" {
		return nil, nil
	}

	parsed, err := phonenumbers.Parse(number, phoneDefaultRegion)
	if err != nil {
		return nil, fmt.Errorf("failed to parse phone number %q: %w", number, err)
	}

	return parsed, nil
}

func formatPhone(number *phonenumbers.PhoneNumber) string {
	if number == nil {
		return ""
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}

func (s *Subject) toWireBase() Wire {
	wire := Wire{
		"id":        s.ID,
		"nome":      s.Name,
		"referente": s.Reference,
		"paese":     s.Country,
		"paese_iso": s.CountryIso,
		"mail":      s.Mail,
		"tel":       s.Phone(),
		"fax":       s.Fax(),
		"piva":      s.VATNumber,
		"cf":        s.FiscalCode,
		"extra":     s.Extra,
	}

	for key, value := range prefixedAddress(s.Address) {
		wire[key] = value
	}

	return wire
}

// fromWireBase fills the common fields and snapshots the payload for later
// diffing. The fax number is read from the tel key, mirroring the remote
// API behavior.
func (s *Subject) fromWireBase(wire Wire) error {
	s.original = snapshotWire(wire)

	s.ID = wire.String("id")
	s.Name = wire.String("nome")
	s.Reference = wire.String("referente")
	s.Country = wire.String("paese")
	s.CountryIso = wire.String("paese_iso")
	s.Mail = wire.String("mail")

	if err := s.SetPhone(wire.String("tel")); err != nil {
		return err
	}

	if err := s.SetFax(wire.String("tel")); err != nil {
		return err
	}

	s.VATNumber = wire.String("piva")
	s.FiscalCode = wire.String("cf")
	s.Extra = wire.String("extra")
	s.Address.fromWire(wire)

	return nil
}

// changes diffs the current payload against the snapshot captured when the
// subject was loaded.
func (s *Subject) changes(current Wire) Wire {
	return diffWire(current, s.original)
}

// Customer is a customer counterparty.
type Customer struct {
	Subject

	// PaymentTerms is the default payment terms in days.
	PaymentTerms int

	// EndMonthPayment pays at the end of the month once the payment terms
	// are due.
	EndMonthPayment bool

	// DefaultVATValue is the default VAT rate value.
	DefaultVATValue float64

	// DefaultVATDescription is the default VAT rate description.
	DefaultVATDescription string

	// PublicAdministration marks the customer as a public administration
	// entity.
	PublicAdministration bool

	// PublicAdministrationCode is the public administration entity code.
	// Only meaningful when PublicAdministration is set.
	PublicAdministrationCode string
}

// ToWire renders the customer in its flat wire form, dropping falsy
// values.
func (c *Customer) ToWire() Wire {
	wire := c.toWireBase()

	wire["termini_pagamento"] = c.PaymentTerms
	wire["pagamento_fine_mese"] = c.EndMonthPayment
	wire["val_iva_default"] = c.DefaultVATValue
	wire["desc_iva_default"] = c.DefaultVATDescription
	wire["PA"] = c.PublicAdministration
	wire["PA_codice"] = c.PublicAdministrationCode

	return filterFalsy(wire)
}

// FromWire fills the customer from its flat wire form.
func (c *Customer) FromWire(wire Wire) error {
	if err := c.fromWireBase(wire); err != nil {
		return err
	}

	c.PaymentTerms = wire.Int("termini_pagamento")
	c.EndMonthPayment = wire.Bool("pagamento_fine_mese")

	if value := wire.FloatPtr("val_iva_default"); value != nil {
		c.DefaultVATValue = *value
	} else {
		c.DefaultVATValue = 0
	}

	c.DefaultVATDescription = wire.String("desc_iva_default")
	c.PublicAdministration = wire.Bool("PA")
	c.PublicAdministrationCode = wire.String("PA_codice")

	return nil
}

// Changes returns the keys of the current payload whose values differ from
// the snapshot captured at load time. An empty result means a save would
// be a no-op.
func (c *Customer) Changes() Wire {
	return c.changes(c.ToWire())
}

// Supplier is a supplier counterparty.
type Supplier struct {
	Subject
}

// ToWire renders the supplier in its flat wire form, dropping falsy
// values.
func (s *Supplier) ToWire() Wire {
	return filterFalsy(s.toWireBase())
}

// FromWire fills the supplier from its flat wire form.
func (s *Supplier) FromWire(wire Wire) error {
	return s.fromWireBase(wire)
}

// Changes returns the keys of the current payload whose values differ from
// the snapshot captured at load time.
func (s *Supplier) Changes() Wire {
	return s.changes(s.ToWire())
}
