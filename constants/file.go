package constants

import "strings"

// Source formats a scan can originate from.
const (
	TEXT  = "TEXT"
	IMAGE = "IMAGE"
)

// FileTypes holds the allowed values for the format column of a scan.
var FileTypes = []string{TEXT, IMAGE}

// AllowedExtensions holds the default allowed file extensions for card ingestion.
var AllowedExtensions = map[string]struct{}{
	"txt":  {},
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"tif":  {},
	"tiff": {},
	"heic": {},
	"heif": {},
}

// ExportFormats lists the output encodings understood by the export package.
var ExportFormats = []string{"json", "yaml", "vcard", "csv", "xlsx"}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat returns TEXT or IMAGE for a supported extension, "" otherwise.
func MapExtToFormat(ext string) string {
	ext = NormalizeExt(ext)
	if _, ok := AllowedExtensions[ext]; !ok {
		return ""
	}
	if ext == "txt" {
		return TEXT
	}
	return IMAGE
}

func IsHEICExt(ext string) bool {
	ext = NormalizeExt(ext)
	return ext == "heic" || ext == "heif"
}
