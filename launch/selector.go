package launch

import "fmt"

// SiteSelector picks which launch site the dashboard shows: AllSites or a
// site name as it appears in the table.
type SiteSelector string

// AllSites selects every site.
const AllSites SiteSelector = "ALL"

// IsAll reports whether s selects every site.
func (s SiteSelector) IsAll() bool { return s == AllSites }

// Matches reports whether a record launched from site passes the selector.
func (s SiteSelector) Matches(site string) bool {
	return s.IsAll() || string(s) == site
}

// PayloadRange bounds payload mass in kilograms, inclusive on both ends.
type PayloadRange struct {
	Low  float64 `json:"low" yaml:"low"`
	High float64 `json:"high" yaml:"high"`
}

// Contains reports whether kg lies within the range.
func (r PayloadRange) Contains(kg float64) bool {
	return r.Low <= kg && kg <= r.High
}

// Valid reports whether Low <= High.
func (r PayloadRange) Valid() bool { return r.Low <= r.High }

func (r PayloadRange) String() string {
	return fmt.Sprintf("[%g, %g]", r.Low, r.High)
}
