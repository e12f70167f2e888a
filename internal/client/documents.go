package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/fic-client/pkg/fic"
)

// DocumentsClient implements fic.DocumentsClient for one document variant.
type DocumentsClient struct {
	transport fic.Transport
	docType   fic.DocumentType
}

// NewDocumentsClient creates a new documents client for the given variant.
func NewDocumentsClient(transport fic.Transport, docType fic.DocumentType) *DocumentsClient {
	return &DocumentsClient{
		transport: transport,
		docType:   docType,
	}
}

func (c *DocumentsClient) path(action string) string {
	return string(c.docType) + "/" + action
}

func (c *DocumentsClient) checkType() error {
	if !c.docType.Valid() {
		return fmt.Errorf("%w: %q", fic.ErrUnknownDocumentType, string(c.docType))
	}

	return nil
}

// List implements fic.DocumentsClient.List
func (c *DocumentsClient) List(filters fic.Wire) (*fic.DocumentList, error) {
	return fic.NewDocumentList(c.transport, c.docType, filters)
}

// Get implements fic.DocumentsClient.Get
func (c *DocumentsClient) Get(ctx context.Context, token string) (*fic.Document, error) {
	if err := c.checkType(); err != nil {
		return nil, err
	}

	details, err := c.fetchDetails(ctx, token)
	if err != nil {
		return nil, err
	}

	document := &fic.Document{Type: c.docType}
	if err := document.FromWire(details); err != nil {
		return nil, fmt.Errorf("parsing document details: %w", err)
	}

	return document, nil
}

func (c *DocumentsClient) fetchDetails(ctx context.Context, token string) (fic.Wire, error) {
	resp, err := c.transport.Request(ctx, "POST", c.path("dettagli"), fic.Wire{"token": token})
	if err != nil {
		return nil, fmt.Errorf("getting document details: %w", err)
	}

	details := resp.Map("dettagli_documento")
	if len(details) == 0 {
		return nil, &fic.NotFoundError{ID: token}
	}

	return details, nil
}

// Create implements fic.DocumentsClient.Create. The payload is validated
// before any network call; on success the server identifiers are assigned
// onto the document and the full details are read back.
func (c *DocumentsClient) Create(ctx context.Context, document *fic.Document) error {
	if err := c.checkType(); err != nil {
		return err
	}

	if document.Type == "" {
		document.Type = c.docType
	}

	wire, err := document.ToWire()
	if err != nil {
		return err
	}

	resp, err := c.transport.Request(ctx, "POST", c.path("nuovo"), wire)
	if err != nil {
		return fmt.Errorf("creating document: %w", err)
	}

	document.ID = resp.String("new_id")
	document.Token = resp.String("token")

	details, err := c.fetchDetails(ctx, document.Token)
	if err != nil {
		return err
	}

	if err := document.FromWire(details); err != nil {
		return fmt.Errorf("parsing document details: %w", err)
	}

	return nil
}

// Update implements fic.DocumentsClient.Update
func (c *DocumentsClient) Update(ctx context.Context, token string, fields fic.Wire) error {
	if err := c.checkType(); err != nil {
		return err
	}

	update := make(fic.Wire, len(fields)+1)
	for key, value := range fields {
		update[key] = value
	}

	update["token"] = token

	if _, err := c.transport.Request(ctx, "POST", c.path("modifica"), update); err != nil {
		return fmt.Errorf("updating document: %w", err)
	}

	return nil
}

// Save implements fic.DocumentsClient.Save. When no field changed since
// the document was loaded, no request is issued.
func (c *DocumentsClient) Save(ctx context.Context, document *fic.Document) error {
	changes, err := document.Changes()
	if err != nil {
		return err
	}

	if len(changes) == 0 {
		return nil
	}

	return c.Update(ctx, document.Token, changes)
}

// Delete implements fic.DocumentsClient.Delete
func (c *DocumentsClient) Delete(ctx context.Context, token string) error {
	if err := c.checkType(); err != nil {
		return err
	}

	if _, err := c.transport.Request(ctx, "POST", c.path("elimina"), fic.Wire{"token": token}); err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}

	return nil
}

// DeleteDocument implements fic.DocumentsClient.DeleteDocument. The
// document identifier is cleared, marking the entity detached.
func (c *DocumentsClient) DeleteDocument(ctx context.Context, document *fic.Document) error {
	if err := c.Delete(ctx, document.Token); err != nil {
		return err
	}

	document.ID = ""

	return nil
}
