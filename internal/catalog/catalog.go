// Package catalog holds the set of country/pricing regions the checker
// queries. The built-in set covers every region the GOG storefront quotes
// prices for; a YAML file can replace it for custom runs.
package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Code is a two-letter country/region identifier.
type Code string

// Region pairs a region code with its display name.
type Region struct {
	Code Code   `yaml:"code"`
	Name string `yaml:"name"`
}

// regions is the built-in catalog in canonical iteration order. Ordering
// matters: wishlist best-offer ties are broken by the first region
// encountered in this order.
var regions = []Region{
	{"US", "United States"},
	{"AR", "Argentina"},
	{"BS", "Bahamas"},
	{"BR", "Brazil"},
	{"CA", "Canada"},
	{"CL", "Chile"},
	{"CO", "Colombia"},
	{"CR", "Costa Rica"},
	{"GL", "Greenland"},
	{"MX", "Mexico"},
	{"PA", "Panama"},
	{"VE", "Venezuela"},
	{"AL", "Albania"},
	{"AD", "Andorra"},
	{"AT", "Austria"},
	{"BE", "Belgium"},
	{"BA", "Bosnia and Herzegovina"},
	{"BG", "Bulgaria"},
	{"HR", "Croatia"},
	{"CY", "Cyprus"},
	{"CZ", "Czech Republic"},
	{"DK", "Denmark"},
	{"EE", "Estonia"},
	{"FI", "Finland"},
	{"FR", "France"},
	{"DE", "Germany"},
	{"GR", "Greece"},
	{"HU", "Hungary"},
	{"IS", "Iceland"},
	{"IE", "Ireland"},
	{"IM", "Isle of Man"},
	{"IT", "Italy"},
	{"LV", "Latvia"},
	{"LI", "Liechtenstein"},
	{"LT", "Lithuania"},
	{"LU", "Luxembourg"},
	{"MT", "Malta"},
	{"MD", "Moldova"},
	{"MC", "Monaco"},
	{"ME", "Montenegro"},
	{"NL", "Netherlands"},
	{"MK", "North Macedonia"},
	{"NO", "Norway"},
	{"PL", "Poland"},
	{"PT", "Portugal"},
	{"RO", "Romania"},
	{"RS", "Serbia"},
	{"SK", "Slovakia"},
	{"SI", "Slovenia"},
	{"ES", "Spain"},
	{"SE", "Sweden"},
	{"CH", "Switzerland"},
	{"TR", "Turkey"},
	{"UA", "Ukraine"},
	{"GB", "United Kingdom"},
	{"AU", "Australia"},
	{"BD", "Bangladesh"},
	{"KH", "Cambodia"},
	{"CN", "China"},
	{"HK", "Hong Kong SAR China"},
	{"IN", "India"},
	{"ID", "Indonesia"},
	{"JP", "Japan"},
	{"MY", "Malaysia"},
	{"MN", "Mongolia"},
	{"NZ", "New Zealand"},
	{"PH", "Philippines"},
	{"SG", "Singapore"},
	{"LK", "Sri Lanka"},
	{"TW", "Taiwan"},
	{"VN", "Vietnam"},
	{"DZ", "Algeria"},
	{"AM", "Armenia"},
	{"EG", "Egypt"},
	{"GE", "Georgia"},
	{"IL", "Israel"},
	{"KZ", "Kazakhstan"},
	{"MA", "Morocco"},
	{"NG", "Nigeria"},
	{"QA", "Qatar"},
	{"SA", "Saudi Arabia"},
	{"ZA", "South Africa"},
	{"AE", "United Arab Emirates"},
}

// Regions returns the built-in catalog in canonical order.
// The returned slice is a copy and safe to modify.
func Regions() []Region {
	out := make([]Region, len(regions))
	copy(out, regions)
	return out
}

// Name returns the display name for a region code.
func Name(code Code) (string, bool) {
	for _, r := range regions {
		if r.Code == code {
			return r.Name, true
		}
	}
	return "", false
}

// regionsFile is the on-disk shape of a catalog override.
type regionsFile struct {
	Regions []Region `yaml:"regions"`
}

// LoadFile reads a catalog override from a YAML file. The file lists regions
// in the order they should be iterated, e.g.:
//
//	regions:
//	  - code: US
//	    name: United States
//	  - code: PL
//	    name: Poland
func LoadFile(path string) ([]Region, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read regions file: %w", err)
	}

	var parsed regionsFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse regions file %s: %w", path, err)
	}
	if len(parsed.Regions) == 0 {
		return nil, fmt.Errorf("regions file %s contains no regions", path)
	}

	seen := make(map[Code]bool, len(parsed.Regions))
	out := make([]Region, 0, len(parsed.Regions))
	for _, r := range parsed.Regions {
		code := Code(strings.ToUpper(strings.TrimSpace(string(r.Code))))
		if len(code) != 2 {
			return nil, fmt.Errorf("invalid region code %q in %s (want two letters)", r.Code, path)
		}
		if seen[code] {
			return nil, fmt.Errorf("duplicate region code %q in %s", code, path)
		}
		seen[code] = true
		name := strings.TrimSpace(r.Name)
		if name == "" {
			name = string(code)
		}
		out = append(out, Region{Code: code, Name: name})
	}
	return out, nil
}
