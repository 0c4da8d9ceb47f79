// Package nphies carries local Saudi NPHIES format checks. Network
// verification against the NPHIES service lives outside this core; only the
// syntactic rules are enforced here.
package nphies

import (
	"regexp"
	"time"
)

// National ID/Iqama: 10 digits starting with 1 or 2.
var saudiIDPattern = regexp.MustCompile(`^[12]\d{9}$`)

// ValidNationalID reports whether value is a syntactically valid Saudi
// National ID or Iqama number.
func ValidNationalID(value string) bool {
	return saudiIDPattern.MatchString(value)
}

// ClaimFacts is the subset of a claim the compliance heuristics look at.
type ClaimFacts struct {
	Amount      float64
	NationalID  string
	SubmittedAt time.Time
	ServiceDate time.Time
}

const (
	highAmountThreshold = 100000
	staleSubmissionDays = 90
)

// ComplianceFlags evaluates fixed review heuristics against a claim and
// returns the human-readable flags that apply. The list may be empty.
func ComplianceFlags(f ClaimFacts) []string {
	var flags []string

	if f.NationalID == "" {
		flags = append(flags, "Patient national ID missing")
	} else if !ValidNationalID(f.NationalID) {
		flags = append(flags, "Invalid Saudi national ID format")
	}

	if f.Amount > highAmountThreshold {
		flags = append(flags, "High amount - financial review needed")
	}

	if !f.ServiceDate.IsZero() && !f.SubmittedAt.IsZero() {
		if f.SubmittedAt.Sub(f.ServiceDate) > staleSubmissionDays*24*time.Hour {
			flags = append(flags, "Claim submitted more than 90 days after service")
		}
	}

	return flags
}
