package domain

import "strings"

// inScopeStates holds the study's geographic boundary: the 50 US state
// abbreviations (Alaska and Hawaii included) plus the District of Columbia.
// Territories (PR, GU, VI, AS, MP) and the marine/military region codes that
// appear in the STATE column are out of scope.
var inScopeStates = map[string]struct{}{
	"AL": {}, "AK": {}, "AZ": {}, "AR": {}, "CA": {}, "CO": {}, "CT": {},
	"DE": {}, "DC": {}, "FL": {}, "GA": {}, "HI": {}, "ID": {}, "IL": {},
	"IN": {}, "IA": {}, "KS": {}, "KY": {}, "LA": {}, "ME": {}, "MD": {},
	"MA": {}, "MI": {}, "MN": {}, "MS": {}, "MO": {}, "MT": {}, "NE": {},
	"NV": {}, "NH": {}, "NJ": {}, "NM": {}, "NY": {}, "NC": {}, "ND": {},
	"OH": {}, "OK": {}, "OR": {}, "PA": {}, "RI": {}, "SC": {}, "SD": {},
	"TN": {}, "TX": {}, "UT": {}, "VT": {}, "VA": {}, "WA": {}, "WV": {},
	"WI": {}, "WY": {},
}

// InScope reports whether a 2-letter state code falls inside the study
// boundary. Unknown, blank, and territory codes are out of scope, not errors.
func InScope(stateCode string) bool {
	code := strings.ToUpper(strings.TrimSpace(stateCode))
	_, ok := inScopeStates[code]
	return ok
}
