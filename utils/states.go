package utils

import "strings"

// stateAbbreviations maps two-letter region codes to canonical state names.
// Keys and values are lowercase; matching is exact after trim+lowercase.
var stateAbbreviations = map[string]string{
	"ap": "andhra pradesh",
	"ar": "arunachal pradesh",
	"as": "assam",
	"br": "bihar",
	"cg": "chhattisgarh",
	"ga": "goa",
	"gj": "gujarat",
	"hr": "haryana",
	"hp": "himachal pradesh",
	"jh": "jharkhand",
	"ka": "karnataka",
	"kl": "kerala",
	"mp": "madhya pradesh",
	"mh": "maharashtra",
	"mn": "manipur",
	"ml": "meghalaya",
	"mz": "mizoram",
	"nl": "nagaland",
	"od": "odisha",
	"pb": "punjab",
	"rj": "rajasthan",
	"sk": "sikkim",
	"tn": "tamil nadu",
	"ts": "telangana",
	"tr": "tripura",
	"up": "uttar pradesh",
	"uk": "uttarakhand",
	"wb": "west bengal",
	"dl": "delhi",
	"jk": "jammu and kashmir",
	"la": "ladakh",
	"py": "puducherry",
	"ch": "chandigarh",
}

// NormalizeState returns the canonical lowercase form of a region string so
// two regions can be compared for equality. Known two-letter abbreviations
// expand to the full state name; anything else comes back trimmed and
// lowercased unchanged. No fuzzy matching.
func NormalizeState(s string) string {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "" {
		return ""
	}
	if full, ok := stateAbbreviations[normalized]; ok {
		return full
	}
	return normalized
}

// SameState reports whether two region strings refer to the same state after
// normalization.
func SameState(a, b string) bool {
	return NormalizeState(a) == NormalizeState(b)
}
