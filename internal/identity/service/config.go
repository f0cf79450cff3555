package service

// Bucket maps an upper bound onto its label. Bounds are half-open: a value
// lands in the first bucket whose Max it is strictly below, so the exact
// threshold belongs to the next bucket up.
type Bucket struct {
	Max   float64
	Label string
}

// Config carries the fixed classification data the resolver works from.
// Injected so the bucketing and domain rules stay independently testable.
type Config struct {
	FreeEmailDomains map[string]bool
	TeamSizeBuckets  []Bucket
	TeamSizeOverflow string
	RevenueBuckets   []Bucket
	RevenueOverflow  string
}

// DefaultConfig returns the production classification rules.
func DefaultConfig() Config {
	return Config{
		FreeEmailDomains: map[string]bool{
			"gmail.com":      true,
			"googlemail.com": true,
			"yahoo.com":      true,
			"hotmail.com":    true,
			"outlook.com":    true,
			"live.com":       true,
			"msn.com":        true,
			"aol.com":        true,
			"icloud.com":     true,
			"me.com":         true,
			"mail.com":       true,
			"gmx.com":        true,
			"proton.me":      true,
			"protonmail.com": true,
			"yandex.com":     true,
			"zoho.com":       true,
		},
		TeamSizeBuckets: []Bucket{
			{Max: 1, Label: "1"},
			{Max: 5, Label: "2-5"},
			{Max: 10, Label: "6-10"},
			{Max: 25, Label: "11-25"},
			{Max: 50, Label: "26-50"},
			{Max: 100, Label: "51-100"},
		},
		TeamSizeOverflow: "100+",
		RevenueBuckets: []Bucket{
			{Max: 100_000, Label: "$0 - $100K"},
			{Max: 500_000, Label: "$100K - $500K"},
			{Max: 1_000_000, Label: "$500K - $1M"},
			{Max: 5_000_000, Label: "$1M - $5M"},
			{Max: 10_000_000, Label: "$5M - $10M"},
		},
		RevenueOverflow: "$10M+",
	}
}

// TeamSizeBucket places a head count in its bucket. Team-size bounds are
// inclusive, unlike revenue.
func (c Config) TeamSizeBucket(size int) string {
	for _, b := range c.TeamSizeBuckets {
		if float64(size) <= b.Max {
			return b.Label
		}
	}
	return c.TeamSizeOverflow
}

// RevenueBucket places an annualized revenue figure. The exact bound lands in
// the higher bucket: 100000 is "$100K - $500K", not "$0 - $100K".
func (c Config) RevenueBucket(annual float64) string {
	for _, b := range c.RevenueBuckets {
		if annual < b.Max {
			return b.Label
		}
	}
	return c.RevenueOverflow
}

// IsFreeEmailDomain reports whether the domain belongs to a personal email
// provider.
func (c Config) IsFreeEmailDomain(domain string) bool {
	return c.FreeEmailDomains[domain]
}
