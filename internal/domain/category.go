package domain

import (
	"regexp"
	"strings"
)

// Category is one bucket of the fixed weather taxonomy.
type Category string

const (
	CategoryLightning     Category = "lightning"
	CategoryHail          Category = "hail"
	CategoryRain          Category = "rain"
	CategoryWinter        Category = "winter"
	CategoryWind          Category = "wind"
	CategoryFire          Category = "fire"
	CategoryLowVisibility Category = "low-visibility"
	CategoryOceanSurge    Category = "ocean-surge"
	CategoryHeat          Category = "heat"
	CategoryVolcanic      Category = "volcanic"
	CategoryUncategorized Category = "uncategorized"
)

// classificationRule pairs an unanchored pattern with the category assigned
// on match.
type classificationRule struct {
	pattern  *regexp.Regexp
	category Category
}

// classificationRules is evaluated in order, first match wins. The order is
// the whole algorithm: "flash flood and wind" is rain because the flood rule
// precedes the wind rule. Multi-word patterns tolerate any amount of
// whitespace between words.
var classificationRules = []classificationRule{
	{regexp.MustCompile(`lightning`), CategoryLightning},
	{regexp.MustCompile(`hail`), CategoryHail},
	{regexp.MustCompile(`rain|flood|wet|fld`), CategoryRain},
	{regexp.MustCompile(`snow|winter|wintry|blizzard|sleet|cold|ice|freeze|avalanche|icy`), CategoryWinter},
	{regexp.MustCompile(`thunder|tstm|tornado|wind|hurricane|funnel|tropical\s*storm`), CategoryWind},
	{regexp.MustCompile(`fire`), CategoryFire},
	{regexp.MustCompile(`fog|visibility|dark|dust`), CategoryLowVisibility},
	{regexp.MustCompile(`surf|surge|tide|tsunami|current`), CategoryOceanSurge},
	{regexp.MustCompile(`heat|high\s*temp|record\s*temp|warm|dry`), CategoryHeat},
	{regexp.MustCompile(`volcan`), CategoryVolcanic},
}

// Classify maps a free-text event-type label to a Category. Matching is
// case-insensitive substring search over the whole label; labels matching no
// rule fall through to CategoryUncategorized.
func Classify(eventType string) Category {
	text := strings.ToLower(eventType)
	for _, rule := range classificationRules {
		if rule.pattern.MatchString(text) {
			return rule.category
		}
	}
	return CategoryUncategorized
}

// Categories returns the taxonomy in classification priority order, with the
// fallback bucket last. Useful for stable report ordering.
func Categories() []Category {
	out := make([]Category, 0, len(classificationRules)+1)
	for _, rule := range classificationRules {
		out = append(out, rule.category)
	}
	return append(out, CategoryUncategorized)
}
