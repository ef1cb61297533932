// Package box models the shipping boxes kept in store inventory.
//
// A Box is owned by the remote inventory service; this service only holds a
// read model of the known boxes and asks the remote service to create, update
// or decrement them. Boxes are unique by id, and the name acts as a secondary
// natural key when a draft is not yet bound to an id.
package box
