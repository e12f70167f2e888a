package fic

import "time"

// EmbeddedTransportDocument carries the transport document details embedded
// in another document. On the wire its fields appear flattened with a ddt_
// prefix, gated by the ddt flag.
type EmbeddedTransportDocument struct {
	// TemplateID is the template identifier.
	TemplateID string

	// Number is the transport document number.
	Number string

	// Date is the transport document date.
	Date time.Time

	// Packs is the number of packs.
	Packs string

	// Weight is the total weight of the packs.
	Weight string

	// Causal is the transport causal.
	Causal string

	// Place is the shipping place.
	Place string

	// TransporterData identifies the transporter.
	TransporterData string

	// Annotations carries free-form notes.
	Annotations string
}

// Links collects the server-generated PDF and attachment links of a
// document. All fields are assigned by the server and read only.
type Links struct {
	document            string
	transportDocument   string
	accompanyingInvoice string
	attachment          string
}

// Document returns the link to the document in PDF format.
func (l Links) Document() string {
	return l.document
}

// TransportDocument returns the link to the transport document in PDF
// format.
func (l Links) TransportDocument() string {
	return l.transportDocument
}

// AccompanyingInvoice returns the link to the accompanying invoice in PDF
// format.
func (l Links) AccompanyingInvoice() string {
	return l.accompanyingInvoice
}

// Attachment returns the link to the attachment, if present.
func (l Links) Attachment() string {
	return l.attachment
}
