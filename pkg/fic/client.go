package fic

import (
	"context"
	"time"
)

// Client is the entry point to the invoicing API. One resource client
// exists per entity family; documents are further routed by variant tag.
type Client interface {
	// Documents returns the resource client for the given document
	// variant. An unknown tag fails with ErrUnknownDocumentType on the
	// first operation.
	Documents(docType DocumentType) DocumentsClient

	// Customers returns the customer registry resource client.
	Customers() CustomersClient

	// Suppliers returns the supplier registry resource client.
	Suppliers() SuppliersClient

	// Goods returns the product catalog resource client.
	Goods() GoodsClient

	// Purchases returns the purchase register resource client.
	Purchases() PurchasesClient
}

// DocumentsClient manages the documents of one variant.
type DocumentsClient interface {
	// List returns a lazy paginated list over the variant's documents.
	List(filters Wire) (*DocumentList, error)

	// Get fetches the full document details by token.
	Get(ctx context.Context, token string) (*Document, error)

	// Create validates and creates the document, then reads the details
	// back so server-assigned fields are populated. The document is
	// mutated in place.
	Create(ctx context.Context, document *Document) error

	// Update overlays the token on the given fields and sends a partial
	// update.
	Update(ctx context.Context, token string, fields Wire) error

	// Save sends the fields changed since the document was loaded. When
	// nothing changed no request is issued.
	Save(ctx context.Context, document *Document) error

	// Delete removes the document identified by token.
	Delete(ctx context.Context, token string) error

	// DeleteDocument removes the given document and clears its
	// identifier, marking it detached.
	DeleteDocument(ctx context.Context, document *Document) error
}

// CustomersClient manages the customer registry.
type CustomersClient interface {
	// List returns a lazy paginated list over the customers.
	List(filters Wire) *CustomerList

	// Get fetches a customer by identifier. An empty result fails with a
	// NotFoundError.
	Get(ctx context.Context, id string) (*Customer, error)

	// Create creates the customer and assigns the server identifier onto
	// it.
	Create(ctx context.Context, customer *Customer) error

	// Update overlays the identifier on the given fields and sends a
	// partial update.
	Update(ctx context.Context, id string, fields Wire) error

	// Save sends the fields changed since the customer was loaded. When
	// nothing changed no request is issued.
	Save(ctx context.Context, customer *Customer) error

	// Delete removes the customer identified by id.
	Delete(ctx context.Context, id string) error

	// DeleteCustomer removes the given customer and clears its
	// identifier.
	DeleteCustomer(ctx context.Context, customer *Customer) error

	// BulkCreate imports the given customers in one batch request.
	BulkCreate(ctx context.Context, customers ...*Customer) error
}

// SuppliersClient manages the supplier registry.
type SuppliersClient interface {
	// List returns a lazy paginated list over the suppliers.
	List(filters Wire) *SupplierList

	// Get fetches a supplier by identifier. An empty result fails with a
	// NotFoundError.
	Get(ctx context.Context, id string) (*Supplier, error)

	// Create creates the supplier and assigns the server identifier onto
	// it.
	Create(ctx context.Context, supplier *Supplier) error

	// Update overlays the identifier on the given fields and sends a
	// partial update.
	Update(ctx context.Context, id string, fields Wire) error

	// Save sends the fields changed since the supplier was loaded. When
	// nothing changed no request is issued.
	Save(ctx context.Context, supplier *Supplier) error

	// Delete removes the supplier identified by id.
	Delete(ctx context.Context, id string) error

	// DeleteSupplier removes the given supplier and clears its
	// identifier.
	DeleteSupplier(ctx context.Context, supplier *Supplier) error

	// BulkCreate imports the given suppliers in one batch request.
	BulkCreate(ctx context.Context, suppliers ...*Supplier) error
}

// GoodsClient manages the product catalog.
type GoodsClient interface {
	// List returns a lazy paginated list over the catalog entries.
	List(filters Wire) *GoodList

	// Get fetches a catalog entry by identifier. An empty result fails
	// with a NotFoundError.
	Get(ctx context.Context, id string) (*Good, error)

	// Create creates the catalog entry and assigns the server identifier
	// onto it.
	Create(ctx context.Context, good *Good) error

	// Update overlays the identifier on the given fields and sends a
	// partial update.
	Update(ctx context.Context, id string, fields Wire) error

	// Delete removes the catalog entry identified by id.
	Delete(ctx context.Context, id string) error

	// DeleteGood removes the given catalog entry and clears its
	// identifier.
	DeleteGood(ctx context.Context, good *Good) error
}

// PurchasesClient manages the purchase register.
type PurchasesClient interface {
	// List returns a lazy paginated list over the purchases.
	List(filters Wire) *PurchaseList

	// Get fetches the full purchase details by identifier. An empty
	// result fails with a NotFoundError.
	Get(ctx context.Context, id string) (*Purchase, error)

	// Create creates the purchase and assigns the server identifier onto
	// it.
	Create(ctx context.Context, purchase *Purchase) error

	// Update overlays the identifier on the given fields and sends a
	// partial update.
	Update(ctx context.Context, id string, fields Wire) error

	// Save sends the fields changed since the purchase was loaded. When
	// nothing changed no request is issued.
	Save(ctx context.Context, purchase *Purchase) error

	// Delete removes the purchase identified by id.
	Delete(ctx context.Context, id string) error

	// DeletePurchase removes the given purchase and clears its
	// identifier.
	DeletePurchase(ctx context.Context, purchase *Purchase) error
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a fic.Client.
//
// # Credentials
//
// Every request body carries the account credentials, injected by the HTTP
// layer as the api_uid and api_key fields alongside the caller-supplied
// fields. Both are mandatory.
//
// # Timeouts and retries
//
// Per-request timeouts should generally be controlled via context passed
// to client methods. Retry behavior can be tuned via RetryMax/RetryWaitMin/
// RetryWaitMax; by default no retry is performed.
type Config struct {
	// APIUID: account identifier, injected into every request body as
	// api_uid.
	APIUID string

	// APIKey: account API key, injected into every request body as
	// api_key.
	APIKey string

	// APIEndpoint: base URL for the API. ficclient.New normalizes this
	// value by trimming a trailing slash and adding "https://" if no
	// scheme is present. Defaults to the production endpoint.
	APIEndpoint string

	// HTTPTimeout: optional default HTTP timeout where supported. Most
	// client calls should rely on context timeouts.
	HTTPTimeout time.Duration

	// RetryMax: maximum number of retries for transient failures. The
	// default is 0, matching the remote API's billing semantics where a
	// replayed mutation is not idempotent.
	RetryMax int

	// RetryWaitMin: minimum backoff between retries. Applied when
	// RetryMax > 0.
	RetryWaitMin time.Duration

	// RetryWaitMax: maximum backoff between retries. Applied when
	// RetryMax > 0.
	RetryWaitMax time.Duration

	// Debug: enables verbose HTTP request/response logging when a Logger
	// is provided.
	Debug bool

	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger

	// UserAgent: overrides the default User-Agent header sent by the
	// client.
	UserAgent string
}
