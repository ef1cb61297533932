package draft

import "strings"

// Address is a postal address as captured by the contact step.
type Address struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`
	Reference    string `json:"reference"`
}

// ContactDraft is a sender or recipient as edited in the form.
//
// ID is empty for a contact that does not exist remotely yet. Save asks the
// contact resolver to persist the current values; it is cleared once the
// remote create or update succeeds.
type ContactDraft struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Company string  `json:"company"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Address Address `json:"address"`
	Save    bool    `json:"save"`
}

// IsKnown reports whether the draft points at an existing remote contact.
func (c ContactDraft) IsKnown() bool {
	return strings.TrimSpace(c.ID) != ""
}
