// Package fic provides types, interfaces, and helpers for working with the
// Fatture in Cloud v1 API.
//
// # Overview
//
// The package defines the domain models (documents, customers, suppliers,
// goods, purchases), the wire codec translating them to and from the flat
// Italian-keyed JSON schema used by the API, precise money arithmetic, lazy
// paginated lists, and the error taxonomy shared by every resource client.
//
// Most applications should construct a client through
// github.com/fivetwenty-io/fic-client/pkg/ficclient and use the returned
// fic.Client to access resource-specific clients, for example Documents(),
// Customers(), Purchases().
//
// # Wire format
//
// Every request is an HTTP POST whose JSON body carries the account
// credentials alongside the operation fields. Dates travel as dd/mm/yyyy
// strings, addresses are flattened into "indirizzo_"-prefixed keys, and
// money amounts are plain decimal numbers in major currency units. The
// codec in this package reproduces that schema exactly; see Document,
// Subject, and Purchase for the per-entity mappings.
//
// # Change tracking
//
// Entities loaded from the API capture a snapshot of their wire
// representation. Saving an entity sends only the keys whose serialized
// value changed since load; an unchanged entity produces no request at all.
package fic
