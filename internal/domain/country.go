package domain

import (
	"fmt"
	"strconv"
)

// Mode selects the question content and comparison rule for a quiz.
type Mode string

const (
	ModeFlags      Mode = "flags"
	ModeCapitals   Mode = "capitals"
	ModePopulation Mode = "population"
)

// Modes lists every quiz mode in display order.
var Modes = []Mode{ModeFlags, ModeCapitals, ModePopulation}

// Valid reports whether m is a known quiz mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeFlags, ModeCapitals, ModePopulation:
		return true
	}
	return false
}

// Country is one record from the reference dataset. CCA3 is the unique
// identity key for a country within a session.
type Country struct {
	Name       CountryName  `json:"name"`
	Capital    []string     `json:"capital,omitempty"`
	Population int64        `json:"population"`
	Flags      CountryFlags `json:"flags"`
	Region     string       `json:"region"`
	Subregion  string       `json:"subregion,omitempty"`
	Area       float64      `json:"area"`
	CCA2       string       `json:"cca2"`
	CCA3       string       `json:"cca3"`
}

// CountryName holds the common and official names.
type CountryName struct {
	Common   string `json:"common"`
	Official string `json:"official"`
}

// CountryFlags holds flag image references.
type CountryFlags struct {
	PNG string `json:"png"`
	SVG string `json:"svg"`
	Alt string `json:"alt,omitempty"`
}

// Playable reports whether the record carries the data every quiz mode needs.
// Records failing this are dropped at the dataset boundary and never reach
// question generation.
func (c Country) Playable() bool {
	return c.Name.Common != "" && c.Flags.PNG != "" && c.Population > 0
}

// HasCapital reports whether the country is eligible for capital questions.
func (c Country) HasCapital() bool {
	return len(c.Capital) > 0
}

// FormatPopulation renders a population count in compact form: 1.5B, 2.3M,
// 1.0K, or the plain number below a thousand.
func FormatPopulation(population int64) string {
	switch {
	case population >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", float64(population)/1_000_000_000)
	case population >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(population)/1_000_000)
	case population >= 1_000:
		return fmt.Sprintf("%.1fK", float64(population)/1_000)
	}
	return strconv.FormatInt(population, 10)
}
