package fic

// Ptr returns a pointer to v. Handy for the optional fields of Good.
func Ptr[T any](v T) *T {
	return &v
}

func ptrWire[T any](p *T) any {
	if p == nil {
		return nil
	}

	return *p
}

// Good is a product or service line item within a document, or a
// stand-alone entry of the product catalog. Optional numeric and boolean
// fields are pointers so an unset field is omitted from the payload rather
// than sent as zero.
type Good struct {
	// ID is the product identifier, assigned by the server.
	ID string

	// Code is the product code.
	Code string

	// Name is the product name.
	Name string

	// UnitOfMeasure is the measurement unit.
	UnitOfMeasure string

	// Quantity is the quantity on the line.
	Quantity *float64

	// Description is the product description.
	Description string

	// Category is the product category.
	Category string

	// NetPrice is the VAT-exclusive price. Mandatory when the document
	// prices are not VAT included.
	NetPrice *PreciseMoney

	// GrossPrice is the VAT-inclusive price. Mandatory when the document
	// prices are VAT included.
	GrossPrice *PreciseMoney

	// VATCode is the VAT rate code.
	VATCode *int

	// Taxable reports whether the line is taxable.
	Taxable *bool

	// Discount is the discount percentage.
	Discount *float64

	// ApplyWithholdingAndContributions applies withholding tax and
	// contributions to the line.
	ApplyWithholdingAndContributions *bool

	// Order is the explicit line ordering, ascending from 0.
	Order *int

	// HighlightDiscount renders the discount in red.
	HighlightDiscount *bool

	// InTransportDocument includes the line in the transport document.
	InTransportDocument *bool

	// FromWarehouse updates the warehouse stock. Ignored when the line is
	// not linked to the product catalog or the warehouse is disabled.
	FromWarehouse *bool

	// InitialStock is the initial amount in stock.
	InitialStock *int

	// vatAmount is the VAT percentile computed by the server. Read only.
	vatAmount string
}

// VATAmount returns the server-computed VAT percentile, or "" when the
// line has not been read back from the server.
func (g *Good) VATAmount() string {
	return g.vatAmount
}

// ToWire renders the line in its flat wire form. Null and empty-string
// values are dropped.
func (g *Good) ToWire() Wire {
	return filterEmpty(Wire{
		"id":                    g.ID,
		"codice":                g.Code,
		"cod":                   g.Code,
		"nome":                  g.Name,
		"um":                    g.UnitOfMeasure,
		"quantita":              ptrWire(g.Quantity),
		"descrizione":           g.Description,
		"desc":                  g.Description,
		"categoria":             g.Category,
		"prezzo_netto":          moneyToWire(g.NetPrice),
		"prezzo_lordo":          moneyToWire(g.GrossPrice),
		"cod_iva":               ptrWire(g.VATCode),
		"tassabile":             ptrWire(g.Taxable),
		"sconto":                ptrWire(g.Discount),
		"applica_ra_contributi": ptrWire(g.ApplyWithholdingAndContributions),
		"ordine":                ptrWire(g.Order),
		"sconto_rosso":          ptrWire(g.HighlightDiscount),
		"in_ddt":                ptrWire(g.InTransportDocument),
		"magazzino":             ptrWire(g.FromWarehouse),
		"giacenza_iniziale":     ptrWire(g.InitialStock),
	})
}

// FromWire fills the line from its flat wire form. Prices are converted
// from major units using the given currency's subunit factor.
func (g *Good) FromWire(wire Wire, currency Currency) error {
	g.ID = wire.String("id")
	g.Code = wire.String("codice")
	g.Name = wire.String("nome")
	g.UnitOfMeasure = wire.String("um")
	g.Quantity = wire.FloatPtr("quantita")
	g.Description = wire.String("descrizione")
	g.Category = wire.String("categoria")

	netPrice, err := moneyFromWire(wire.String("prezzo_netto"), currency)
	if err != nil {
		return err
	}

	grossPrice, err := moneyFromWire(wire.String("prezzo_lordo"), currency)
	if err != nil {
		return err
	}

	g.NetPrice = netPrice
	g.GrossPrice = grossPrice
	g.VATCode = wire.IntPtr("cod_iva")
	g.vatAmount = wire.String("valore_iva")
	g.Taxable = wire.BoolPtr("tassabile")
	g.Discount = wire.FloatPtr("sconto")
	g.ApplyWithholdingAndContributions = wire.BoolPtr("applica_ra_contributi")
	g.Order = wire.IntPtr("ordine")
	g.HighlightDiscount = wire.BoolPtr("sconto_rosso")
	g.InTransportDocument = wire.BoolPtr("in_ddt")
	g.FromWarehouse = wire.BoolPtr("magazzino")
	g.InitialStock = wire.IntPtr("giacenza_iniziale")

	return nil
}
