// Package shipment models the fulfillment record tied 1:1 to an order, the
// carrier rates quoted for it, and the provider selection sent before
// fulfillment.
//
// Shipment lifecycle:
//
//	DRAFT ──> PROVIDER_SELECTED ──> FULFILLED
//
// Rates are ephemeral: they are fetched per quote and never stored remotely.
// A Quote tracks one fetch, including the cosmetic progress shown while it loads.
package shipment
