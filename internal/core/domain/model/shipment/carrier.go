package shipment

import "strings"

// Carrier is the carrier type sent with a provider selection.
type Carrier string

const (
	CarrierFedex         Carrier = "FEDEX"
	CarrierDHL           Carrier = "DHL"
	CarrierEstafeta      Carrier = "ESTAFETA"
	CarrierUPS           Carrier = "UPS"
	CarrierPaquetexpress Carrier = "PAQUETEXPRESS"
	CarrierRedpack       Carrier = "REDPACK"
)

// knownCarriers is checked in order; the first token found in the service name wins.
var knownCarriers = []Carrier{
	CarrierFedex,
	CarrierDHL,
	CarrierEstafeta,
	CarrierUPS,
	CarrierPaquetexpress,
	CarrierRedpack,
}

// DeriveCarrier infers the carrier from the rate's service name, e.g.
// "FedEx Standard Overnight" is FEDEX. Unknown names fall back to the
// upper-cased provider.
func DeriveCarrier(r Rate) Carrier {
	name := strings.ToUpper(strings.ReplaceAll(r.ServiceName, " ", ""))
	for _, c := range knownCarriers {
		if strings.Contains(name, string(c)) {
			return c
		}
	}
	return Carrier(strings.ToUpper(strings.TrimSpace(r.Provider)))
}
