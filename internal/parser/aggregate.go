package parser

import (
	"github.com/joseph-ayodele/cardscan/internal/entity"
)

// Aggregate computes the per-category scores and validation flags from the extractor output.
// orgText is any organization text found (organization name, job title or department).
func Aggregate(
	cfg Config,
	hasName bool,
	phones []entity.ParsedPhoneNumber,
	emails []entity.ParsedEmail,
	orgText string,
	addresses []entity.ParsedAddress,
) (entity.ConfidenceScores, entity.ValidationFlags) {
	cfg = cfg.withDefaults()

	var scores entity.ConfidenceScores
	if hasName {
		scores.Name = cfg.NameScore
	}
	if len(phones) > 0 {
		scores.Phone = cfg.PhoneScore
	}
	if len(emails) > 0 {
		scores.Email = cfg.EmailScore
	}
	if orgText != "" {
		scores.Organization = cfg.OrganizationScore
	}
	scores.Address = cfg.AddressScore

	flags := entity.ValidationFlags{HasValidName: hasName}
	for _, ph := range phones {
		if ph.IsValid {
			flags.HasValidPhone = true
			break
		}
	}
	for _, e := range emails {
		if e.IsValid {
			flags.HasValidEmail = true
			break
		}
	}
	for _, a := range addresses {
		if a.IsValid {
			flags.HasValidAddress = true
			break
		}
	}
	return scores, flags
}
