package constants

// SocialService identifies a social network a profile handle belongs to.
type SocialService string

const (
	LinkedIn  SocialService = "linkedin"
	Twitter   SocialService = "twitter"
	Instagram SocialService = "instagram"
	Facebook  SocialService = "facebook"
)

// allServices is the fixed iteration order for social extraction.
var allServices = []SocialService{
	LinkedIn,
	Twitter,
	Instagram,
	Facebook,
}

var profileBase = map[SocialService]string{
	LinkedIn:  "https://www.linkedin.com/in/",
	Twitter:   "https://twitter.com/",
	Instagram: "https://www.instagram.com/",
	Facebook:  "https://www.facebook.com/",
}

// SocialServices returns the supported services in extraction order.
func SocialServices() []SocialService {
	out := make([]SocialService, len(allServices))
	copy(out, allServices)
	return out
}

// AsStringSlice returns the service names in extraction order.
func AsStringSlice() []string {
	result := make([]string, len(allServices))
	for i, s := range allServices {
		result[i] = string(s)
	}
	return result
}

// ProfileURL builds the canonical profile URL for a handle.
func ProfileURL(s SocialService, handle string) string {
	base, ok := profileBase[s]
	if !ok || handle == "" {
		return ""
	}
	return base + handle
}
