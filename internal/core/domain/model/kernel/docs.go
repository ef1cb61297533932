// Package kernel provides the value objects shared by the shipping domain model.
//
// The package includes:
//   - UUID: identifiers issued by this service (sessions, idempotency keys, events)
//   - Money: decimal amount plus ISO-4217 currency, used for rates and final prices
//   - Dimensions: package and box measurements with their unit
//
// All value objects are immutable and reject their zero value through Validate.
package kernel
