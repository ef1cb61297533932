// Package order provides the Order aggregate as the remote order service
// returns it, and the requests the wizard sends to create or edit one.
//
// The package includes:
//   - Order: a restored remote order with its references, package and parties
//   - Status: the remote lifecycle, validated on restore
//   - Request: the create/edit body built from a wizard draft
//
// Key business rules:
//   - An order is created once per wizard session; later submissions are edits
//   - Creating an order requires an identified acting user
//   - Partner orders carry a manually entered price, HQ orders never do
//   - Package numbers are parsed before any request is built
package order
