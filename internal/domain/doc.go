// Package domain models NOAA Storm Events database records and the
// cleaning rules applied to them.
//
// # Data Source
//
// Records come from the NOAA National Weather Service Storm Events
// database (1950-2011), distributed as a bzip2-compressed CSV of roughly
// 900k rows. The archive is downloaded once and kept locally; an enriched
// snapshot is cached in SQLite so later runs skip the parse.
//
// # Data Conventions
//
// Damage exponents:
//
//	Property and crop damage are stored as a magnitude plus a single-letter
//	exponent column (PROPDMGEXP / CROPDMGEXP): H = hundreds, K = thousands,
//	M = millions, B = billions, matched case-insensitively. Real rows also
//	carry digits, "?", "-", "+" and blanks in the exponent column. Those are
//	legacy or data-entry artifacts and are treated as unscaled (multiplier 1),
//	never as errors. See [NormalizeDamage].
//
// Begin dates:
//
//	BGN_DATE holds "M/D/YYYY 0:00:00" with the time portion always zero.
//	Only the first whitespace-delimited token is parsed; rows with an
//	unparseable date keep a zero time rather than failing the run.
//
// Event types:
//
//	EVTYPE is free text with hundreds of distinct spellings ("TSTM WIND",
//	"THUNDERSTORM WINDS", "Tstm Wind", ...). Records are bucketed into a
//	fixed taxonomy by an ordered rule table evaluated first-match-wins; see
//	[Classify] for the exact priority order. An event mentioning both
//	"flood" and "wind" lands in the rain bucket because the flood rule is
//	tested first. That cascade is deliberate, not an overlap bug.
//
// State codes:
//
//	STATE is a 2-letter abbreviation. The study covers the 50 US states
//	plus the District of Columbia; territory codes (PR, GU, VI, AS, MP) and
//	marine/military region codes fall out of scope. See [InScope].
package domain
