package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MatchStrategy names the rule that accepted a login.
type MatchStrategy string

const (
	MatchNone          MatchStrategy = ""
	MatchExact         MatchStrategy = "exact"
	MatchSlashStripped MatchStrategy = "slash-stripped"
	MatchYearPrefix    MatchStrategy = "year-prefix"
)

// UnknownYear is the partition used when a registration number carries no 4-digit run.
const UnknownYear = "unknown"

var (
	resultRegNumberPattern = regexp.MustCompile(`^([A-Za-z]{3,}/\d{4}/\d+|\d{8,}[A-Za-z]*)$`)
	leadingYearPattern     = regexp.MustCompile(`^\d{4}`)
	anyYearPattern         = regexp.MustCompile(`\d{4}`)
)

// MatchRoster checks a submitted registration number against the roster, trying
// progressively looser rules. It returns MatchNone when nothing matches.
//
// The year-prefix rule accepts any submission whose first four characters are
// digits contained anywhere in a roster entry, so "2024XYZ" matches "ANY2024ANY".
func MatchRoster(submitted string, roster []string) MatchStrategy {
	for _, entry := range roster {
		if entry == submitted {
			return MatchExact
		}
	}

	stripped := stripSlashes(submitted)
	for _, entry := range roster {
		if stripSlashes(entry) == stripped {
			return MatchSlashStripped
		}
	}

	if prefix := leadingYearPattern.FindString(submitted); prefix != "" {
		for _, entry := range roster {
			if strings.Contains(entry, prefix) {
				return MatchYearPrefix
			}
		}
	}
	return MatchNone
}

// ValidResultRegNumber reports whether reg satisfies the stricter format required
// when saving a result: letters/year/digits or 8+ digits with an optional letter suffix.
// Login does not apply this rule.
func ValidResultRegNumber(reg string) bool {
	return resultRegNumberPattern.MatchString(reg)
}

// CanonicalRegNumber is the trimmed, upper-cased form results are stored under.
func CanonicalRegNumber(reg string) string {
	return strings.ToUpper(strings.TrimSpace(reg))
}

// PartitionYear returns the first 4-digit run of reg, or fallback when there is none.
func PartitionYear(reg, fallback string) string {
	if year := anyYearPattern.FindString(reg); year != "" {
		return year
	}
	return fallback
}

// ResultID builds the identifier of a result saved at the given time.
func ResultID(canonical string, at time.Time) string {
	return canonical + "_" + strconv.FormatInt(at.UnixMilli(), 10)
}

func stripSlashes(s string) string {
	return strings.ReplaceAll(s, "/", "")
}
