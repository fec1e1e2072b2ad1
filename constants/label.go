package constants

// Labels attached to phone numbers, emails and urls.
const (
	LabelWork     = "work"
	LabelMobile   = "mobile"
	LabelHome     = "home"
	LabelFax      = "fax"
	LabelHomepage = "homepage"
)
