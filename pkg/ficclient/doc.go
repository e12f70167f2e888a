// Package ficclient provides the primary entry point for constructing an
// invoicing API client that implements the fic.Client interface.
//
// It layers configuration and the HTTP transport on top of the resource
// interfaces and types defined in the fic package. Most applications
// should import ficclient to build a client, then use the returned
// fic.Client to access resource-specific clients, for example Documents(),
// Customers(), Purchases().
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/fic-client/pkg/fic"
//	  "github.com/fivetwenty-io/fic-client/pkg/ficclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := ficclient.New(&fic.Config{
//	    APIUID: "123456",
//	    APIKey: "secret",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  invoices := cli.Documents(fic.DocumentTypeInvoice)
//
//	  invoice, err := invoices.Get(ctx, "permanent-token")
//	  if err != nil { log.Fatal(err) }
//
//	  invoice.Notes = "updated"
//	  if err := invoices.Save(ctx, invoice); err != nil { log.Fatal(err) }
//	}
//
// Every request body carries the account credentials; there is no separate
// authentication handshake. Errors returned by the remote API are
// classified into typed errors, see the fic package for the taxonomy.
package ficclient
