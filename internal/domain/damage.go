package domain

import "strings"

// damageMultipliers maps recognized exponent codes to their multiplier.
// Codes are matched after upper-casing.
var damageMultipliers = map[string]float64{
	"H": 100,
	"K": 1_000,
	"M": 1_000_000,
	"B": 1_000_000_000,
}

// NormalizeDamage converts a (magnitude, exponent code) pair into a dollar
// value. Unrecognized codes — blanks, digits, "?", "-" and other artifacts
// present in the source data — leave the magnitude unscaled. That default is
// policy, not an error: legacy rows must survive the pipeline unchanged.
func NormalizeDamage(magnitude float64, exponentCode string) float64 {
	return magnitude * DamageMultiplier(exponentCode)
}

// DamageMultiplier returns the multiplier for an exponent code,
// case-insensitively, defaulting to 1 for anything unrecognized.
func DamageMultiplier(exponentCode string) float64 {
	code := strings.ToUpper(strings.TrimSpace(exponentCode))
	if m, ok := damageMultipliers[code]; ok {
		return m
	}
	return 1
}
