package translate

import "sort"

// Languages maps display names to translation codes. This is the set
// the UI offers; the codes follow the translation provider's catalog.
var Languages = map[string]string{
	"Greek":   "el",
	"English": "en",
	"French":  "fr",
	"Spanish": "es",
	"German":  "de",
	"Hindi":   "hi",
	"Chinese": "zh-CN",
	"Russian": "ru",
	"Dutch":   "nl",
	"Arabic":  "ar",
}

// LanguageNames returns the display names in stable order.
func LanguageNames() []string {
	names := make([]string, 0, len(Languages))
	for name := range Languages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NameForCode resolves a code back to its display name; falls back to
// the code itself for anything outside the catalog.
func NameForCode(code string) string {
	for name, c := range Languages {
		if c == code {
			return name
		}
	}
	return code
}

// SupportedCode reports whether a code is in the catalog.
func SupportedCode(code string) bool {
	for _, c := range Languages {
		if c == code {
			return true
		}
	}
	return false
}
