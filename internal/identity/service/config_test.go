package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTeamSizeBucket(t *testing.T) {
	cfg := DefaultConfig()

	cases := []struct {
		size int
		want string
	}{
		{1, "1"},
		{2, "2-5"},
		{5, "2-5"},
		{6, "6-10"},
		{10, "6-10"},
		{11, "11-25"},
		{25, "11-25"},
		{26, "26-50"},
		{50, "26-50"},
		{51, "51-100"},
		{100, "51-100"},
		{101, "100+"},
		{500, "100+"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, cfg.TeamSizeBucket(tc.size), "size %d", tc.size)
	}
}

func TestRevenueBucket(t *testing.T) {
	cfg := DefaultConfig()

	cases := []struct {
		annual float64
		want   string
	}{
		{0, "$0 - $100K"},
		{99_999, "$0 - $100K"},
		// The exact threshold lands in the higher bucket.
		{100_000, "$100K - $500K"},
		{499_999, "$100K - $500K"},
		{500_000, "$500K - $1M"},
		{1_000_000, "$1M - $5M"},
		{5_000_000, "$5M - $10M"},
		{10_000_000, "$10M+"},
		{25_000_000, "$10M+"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, cfg.RevenueBucket(tc.annual), "annual %v", tc.annual)
	}
}

func TestAnnualizedRevenue(t *testing.T) {
	assert.Equal(t, 240_000.0, AnnualizedRevenue(240_000, 50_000))
	assert.Equal(t, 600_000.0, AnnualizedRevenue(0, 50_000))
	assert.Equal(t, 0.0, AnnualizedRevenue(0, 0))
}

func TestEmailDomain(t *testing.T) {
	assert.Equal(t, "acme.co", EmailDomain("jane@acme.co"))
	assert.Equal(t, "acme.co", EmailDomain("jane@ACME.CO"))
	assert.Equal(t, "", EmailDomain("not-an-email"))
	assert.Equal(t, "", EmailDomain("trailing@"))
}

func TestIsFreeEmailDomain(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.IsFreeEmailDomain("gmail.com"))
	assert.True(t, cfg.IsFreeEmailDomain("proton.me"))
	assert.False(t, cfg.IsFreeEmailDomain("acme.co"))
}

func TestSplitFounderName(t *testing.T) {
	first, last := SplitFounderName("Jane Doe")
	assert.Equal(t, "Jane", first)
	assert.Equal(t, "Doe", last)

	first, last = SplitFounderName("Jane van der Berg")
	assert.Equal(t, "Jane", first)
	assert.Equal(t, "van der Berg", last)

	first, last = SplitFounderName("Jane")
	assert.Equal(t, "Jane", first)
	assert.Equal(t, "", last)

	first, last = SplitFounderName("")
	assert.Equal(t, "", first)
	assert.Equal(t, "", last)
}
