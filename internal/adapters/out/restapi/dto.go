package restapi

import (
	"fmt"

	"shipping/internal/core/domain/model/box"
	"shipping/internal/core/domain/model/draft"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/model/shipment"

	"github.com/shopspring/decimal"
)

type moneyDTO struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func moneyFromDomain(m kernel.Money) moneyDTO {
	return moneyDTO{Amount: m.Amount(), Currency: m.Currency()}
}

func (d moneyDTO) toDomain() (kernel.Money, error) {
	currency := d.Currency
	if currency == "" {
		currency = kernel.DefaultCurrency
	}
	return kernel.NewMoney(d.Amount, currency)
}

type dimensionsDTO struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Unit   string  `json:"unit"`
}

func dimensionsFromDomain(d kernel.Dimensions) dimensionsDTO {
	return dimensionsDTO{Length: d.Length(), Width: d.Width(), Height: d.Height(), Unit: string(d.Unit())}
}

func (d dimensionsDTO) toDomain() (kernel.Dimensions, error) {
	unit := kernel.DimensionUnit(d.Unit)
	if unit == "" {
		unit = kernel.Centimeters
	}
	return kernel.NewDimensions(d.Length, d.Width, d.Height, unit)
}

type addressDTO struct {
	Street       string `json:"street"`
	Number       string `json:"number,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	City         string `json:"city"`
	State        string `json:"state,omitempty"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country,omitempty"`
	Reference    string `json:"reference,omitempty"`
}

func addressFromDomain(a draft.Address) addressDTO {
	return addressDTO(a)
}

func (d addressDTO) toDomain() draft.Address {
	return draft.Address(d)
}

// customerDTO is the body of the customer endpoints.
type customerDTO struct {
	ID      string     `json:"id,omitempty"`
	Name    string     `json:"name"`
	Company string     `json:"company,omitempty"`
	Email   string     `json:"email,omitempty"`
	Phone   string     `json:"phone"`
	Address addressDTO `json:"address"`
}

func customerFromDomain(c draft.ContactDraft) customerDTO {
	return customerDTO{
		Name:    c.Name,
		Company: c.Company,
		Email:   c.Email,
		Phone:   c.Phone,
		Address: addressFromDomain(c.Address),
	}
}

type boxDTO struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Dimensions dimensionsDTO `json:"dimensions"`
	Stock      int           `json:"stock"`
}

func (d boxDTO) toDomain() (*box.Box, error) {
	dims, err := d.Dimensions.toDomain()
	if err != nil {
		return nil, err
	}
	return box.RestoreBox(d.ID, d.Name, dims, d.Stock)
}

type boxCreateDTO struct {
	Name       string        `json:"name"`
	Dimensions dimensionsDTO `json:"dimensions"`
	Stock      int           `json:"stock"`
}

type boxPatchDTO struct {
	Name       *string        `json:"name,omitempty"`
	Dimensions *dimensionsDTO `json:"dimensions,omitempty"`
	Stock      *int           `json:"stock,omitempty"`
}

func boxPatchFromDomain(p box.Patch) boxPatchDTO {
	dto := boxPatchDTO{Name: p.Name, Stock: p.Stock}
	if p.Dimensions != nil {
		d := dimensionsFromDomain(*p.Dimensions)
		dto.Dimensions = &d
	}
	return dto
}

type boxPageDTO struct {
	Items      []boxDTO `json:"items"`
	Page       int      `json:"page"`
	TotalPages int      `json:"totalPages"`
}

type referencesDTO struct {
	OrderNumber        string `json:"orderNumber"`
	PartnerOrderNumber string `json:"partnerOrderNumber,omitempty"`
}

type packageDTO struct {
	BoxID               string        `json:"boxId,omitempty"`
	Ownership           string        `json:"ownership"`
	Name                string        `json:"name"`
	Dimensions          dimensionsDTO `json:"dimensions"`
	Weight              float64       `json:"weight"`
	Quantity            int           `json:"quantity"`
	ClassificationCodes []string      `json:"classificationCodes"`
}

type partyDTO struct {
	ContactID string     `json:"contactId,omitempty"`
	Name      string     `json:"name"`
	Company   string     `json:"company,omitempty"`
	Email     string     `json:"email,omitempty"`
	Phone     string     `json:"phone"`
	Address   addressDTO `json:"address"`
}

func partyFromDomain(p order.Party) partyDTO {
	return partyDTO{
		ContactID: p.ContactID,
		Name:      p.Name,
		Company:   p.Company,
		Email:     p.Email,
		Phone:     p.Phone,
		Address:   addressFromDomain(p.Address),
	}
}

func (d partyDTO) toDomain() order.Party {
	return order.Party{
		ContactID: d.ContactID,
		Name:      d.Name,
		Company:   d.Company,
		Email:     d.Email,
		Phone:     d.Phone,
		Address:   d.Address.toDomain(),
	}
}

// orderRequestDTO is the create/edit body of the order endpoints.
type orderRequestDTO struct {
	Type        string        `json:"type"`
	References  referencesDTO `json:"references"`
	Package     packageDTO    `json:"package"`
	Origin      partyDTO      `json:"origin"`
	Destination partyDTO      `json:"destination"`
	Pricing     *moneyDTO     `json:"pricing,omitempty"`
	CreatedBy   string        `json:"createdBy,omitempty"`
	StoreID     string        `json:"storeId,omitempty"`
}

func orderRequestFromDomain(r order.Request) orderRequestDTO {
	dto := orderRequestDTO{
		Type: string(r.Type),
		References: referencesDTO{
			OrderNumber:        r.References.OrderNumber,
			PartnerOrderNumber: r.References.PartnerOrderNumber,
		},
		Package: packageDTO{
			BoxID:               r.Package.BoxID,
			Ownership:           string(r.Package.Ownership),
			Name:                r.Package.Name,
			Dimensions:          dimensionsFromDomain(r.Package.Dimensions),
			Weight:              r.Package.Weight,
			Quantity:            r.Package.Quantity,
			ClassificationCodes: r.Package.ClassificationCodes,
		},
		Origin:      partyFromDomain(r.Origin),
		Destination: partyFromDomain(r.Destination),
		CreatedBy:   r.CreatedBy,
		StoreID:     r.StoreID,
	}
	if r.Pricing != nil {
		p := moneyFromDomain(*r.Pricing)
		dto.Pricing = &p
	}
	if dto.Package.ClassificationCodes == nil {
		dto.Package.ClassificationCodes = []string{}
	}
	return dto
}

type orderDTO struct {
	ID          string        `json:"id"`
	Type        string        `json:"type"`
	Status      string        `json:"status"`
	References  referencesDTO `json:"references"`
	Package     packageDTO    `json:"package"`
	Origin      partyDTO      `json:"origin"`
	Destination partyDTO      `json:"destination"`
	Pricing     *moneyDTO     `json:"pricing"`
	CreatedBy   string        `json:"createdBy"`
}

func (d orderDTO) toDomain() (*order.Order, error) {
	status, err := order.ParseStatus(d.Status)
	if err != nil {
		return nil, err
	}
	dims, err := d.Package.Dimensions.toDomain()
	if err != nil {
		return nil, err
	}

	details := order.Details{
		References: order.References{
			OrderNumber:        d.References.OrderNumber,
			PartnerOrderNumber: d.References.PartnerOrderNumber,
		},
		Package: order.Package{
			BoxID:               d.Package.BoxID,
			Ownership:           draft.Ownership(d.Package.Ownership).Normalize(),
			Name:                d.Package.Name,
			Dimensions:          dims,
			Weight:              d.Package.Weight,
			Quantity:            d.Package.Quantity,
			ClassificationCodes: d.Package.ClassificationCodes,
		},
		Origin:      d.Origin.toDomain(),
		Destination: d.Destination.toDomain(),
		CreatedBy:   d.CreatedBy,
	}
	if d.Pricing != nil {
		p, err := d.Pricing.toDomain()
		if err != nil {
			return nil, err
		}
		details.Pricing = &p
	}

	return order.RestoreOrder(d.ID, draft.OrderType(d.Type), status, details)
}

// rateDTO is a quoted rate. Price and insurance share one currency; a
// missing insurance fee means none.
type rateDTO struct {
	ID            string           `json:"id"`
	Provider      string           `json:"provider"`
	ServiceName   string           `json:"serviceName"`
	Price         decimal.Decimal  `json:"price"`
	InsuranceFee  *decimal.Decimal `json:"insuranceFee,omitempty"`
	Currency      string           `json:"currency"`
	IsOcurre      bool             `json:"isOcurre"`
	EstimatedDays int              `json:"estimatedDays"`
}

func rateFromDomain(r shipment.Rate) rateDTO {
	fee := r.InsuranceFee.Amount()
	return rateDTO{
		ID:            r.ID,
		Provider:      r.Provider,
		ServiceName:   r.ServiceName,
		Price:         r.Price.Amount(),
		InsuranceFee:  &fee,
		Currency:      r.Currency(),
		IsOcurre:      r.IsOcurre,
		EstimatedDays: r.EstimatedDays,
	}
}

func (d rateDTO) toDomain() (shipment.Rate, error) {
	currency := d.Currency
	if currency == "" {
		currency = kernel.DefaultCurrency
	}
	price, err := kernel.NewMoney(d.Price, currency)
	if err != nil {
		return shipment.Rate{}, fmt.Errorf("rate %s: %w", d.ID, err)
	}
	insurance := kernel.ZeroMoney(currency)
	if d.InsuranceFee != nil {
		if insurance, err = kernel.NewMoney(*d.InsuranceFee, currency); err != nil {
			return shipment.Rate{}, fmt.Errorf("rate %s: %w", d.ID, err)
		}
	}
	return shipment.Rate{
		ID:            d.ID,
		Provider:      d.Provider,
		ServiceName:   d.ServiceName,
		Price:         price,
		InsuranceFee:  insurance,
		IsOcurre:      d.IsOcurre,
		EstimatedDays: d.EstimatedDays,
	}, nil
}

type costBreakdownDTO struct {
	Base      moneyDTO `json:"base"`
	Insurance moneyDTO `json:"insurance"`
	Total     moneyDTO `json:"total"`
}

func costBreakdownFromDomain(c shipment.CostBreakdown) costBreakdownDTO {
	return costBreakdownDTO{
		Base:      moneyFromDomain(c.Base),
		Insurance: moneyFromDomain(c.Insurance),
		Total:     moneyFromDomain(c.Total),
	}
}

func (d costBreakdownDTO) toDomain() (shipment.CostBreakdown, error) {
	base, err := d.Base.toDomain()
	if err != nil {
		return shipment.CostBreakdown{}, err
	}
	insurance, err := d.Insurance.toDomain()
	if err != nil {
		return shipment.CostBreakdown{}, err
	}
	total, err := d.Total.toDomain()
	if err != nil {
		return shipment.CostBreakdown{}, err
	}
	return shipment.CostBreakdown{Base: base, Insurance: insurance, Total: total}, nil
}

// providerSelectionDTO is the select-provider body.
type providerSelectionDTO struct {
	ShipmentID    string           `json:"shipmentId"`
	Provider      string           `json:"provider"`
	CarrierType   string           `json:"carrierType"`
	Rate          rateDTO          `json:"rate"`
	FinalPrice    moneyDTO         `json:"finalPrice"`
	CostBreakdown costBreakdownDTO `json:"costBreakdown"`
}

func providerSelectionFromDomain(s shipment.ProviderSelection) providerSelectionDTO {
	return providerSelectionDTO{
		ShipmentID:    s.ShipmentID(),
		Provider:      s.Provider(),
		CarrierType:   string(s.Carrier()),
		Rate:          rateFromDomain(s.Rate()),
		FinalPrice:    moneyFromDomain(s.FinalPrice()),
		CostBreakdown: costBreakdownFromDomain(s.CostBreakdown()),
	}
}

type shipmentDTO struct {
	ID             string            `json:"id"`
	OrderID        string            `json:"orderId"`
	Status         string            `json:"status"`
	Provider       string            `json:"provider"`
	Rate           *rateDTO          `json:"rate"`
	FinalPrice     *moneyDTO         `json:"finalPrice"`
	CostBreakdown  *costBreakdownDTO `json:"costBreakdown"`
	TrackingNumber string            `json:"trackingNumber"`
	LabelURL       string            `json:"labelUrl"`
}

func (d shipmentDTO) toDomain() (*shipment.Shipment, error) {
	status, err := shipment.ParseStatus(d.Status)
	if err != nil {
		return nil, err
	}

	details := shipment.Details{
		Provider: d.Provider,
		Label:    shipment.Label{TrackingNumber: d.TrackingNumber, LabelURL: d.LabelURL},
	}
	if d.Rate != nil {
		r, err := d.Rate.toDomain()
		if err != nil {
			return nil, err
		}
		details.Rate = &r
	}
	if d.FinalPrice != nil {
		p, err := d.FinalPrice.toDomain()
		if err != nil {
			return nil, err
		}
		details.FinalPrice = &p
	}
	if d.CostBreakdown != nil {
		c, err := d.CostBreakdown.toDomain()
		if err != nil {
			return nil, err
		}
		details.CostBreakdown = &c
	}

	return shipment.RestoreShipment(d.ID, d.OrderID, status, details)
}
