package domain

// DefaultEligibleYears are the years of study allowed to file submissions
// and placement records.
var DefaultEligibleYears = []string{"E-3", "E-4"}

// EligibilityPolicy gates ledger writes by year of study.
type EligibilityPolicy struct {
	years map[string]struct{}
}

func NewEligibilityPolicy(years ...string) EligibilityPolicy {
	if len(years) == 0 {
		years = DefaultEligibleYears
	}
	p := EligibilityPolicy{years: make(map[string]struct{}, len(years))}
	for _, y := range years {
		p.years[y] = struct{}{}
	}
	return p
}

// Allows reports whether a student in year may write to the ledger.
func (p EligibilityPolicy) Allows(year string) bool {
	_, ok := p.years[year]
	return ok
}
