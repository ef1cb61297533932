package shipment

import "shipping/internal/core/domain/model/kernel"

// Rate is one quoted carrier option for a shipment.
//
// IsOcurre marks branch pick-up services, where the recipient collects the
// parcel at the carrier office instead of a door delivery.
type Rate struct {
	ID            string
	Provider      string
	ServiceName   string
	Price         kernel.Money
	InsuranceFee  kernel.Money
	IsOcurre      bool
	EstimatedDays int
}

// Currency is the currency the rate was quoted in.
func (r Rate) Currency() string {
	return r.Price.Currency()
}

// FindRate looks a rate up by id.
func FindRate(rates []Rate, id string) (Rate, bool) {
	for _, r := range rates {
		if r.ID == id {
			return r, true
		}
	}
	return Rate{}, false
}
