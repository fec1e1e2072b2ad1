package parser

import (
	"strings"

	"github.com/joseph-ayodele/cardscan/constants"
	"github.com/joseph-ayodele/cardscan/internal/entity"
)

// NewAddress assembles an address from user- or collaborator-supplied parts.
// Addresses below the validity bar are kept with IsValid=false.
func NewAddress(street, city, state, postalCode, country string) entity.ParsedAddress {
	a := entity.ParsedAddress{
		Street:     strings.TrimSpace(street),
		City:       strings.TrimSpace(city),
		State:      strings.TrimSpace(state),
		PostalCode: strings.TrimSpace(postalCode),
		Country:    strings.TrimSpace(country),
		Label:      constants.LabelWork,
	}
	parts := make([]string, 0, 5)
	for _, p := range []string{a.Street, a.City, a.State, a.PostalCode, a.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	a.Raw = strings.Join(parts, ", ")
	a.ID = itemID("address", 0, a.Raw)
	a.IsValid = ValidAddress(a)
	return a
}
