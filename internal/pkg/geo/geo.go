// Package geo validates user-supplied areas against a bundled ISO 3166
// country/region dataset. The data is a static asset compiled into the
// binary; validation is a closed-list check, never a live lookup.
package geo

import (
	_ "embed"
	"encoding/json"

	"github.com/permahub/api/internal/domain"
)

//go:embed country-region.json
var countryRegionJSON []byte

type countryEntry struct {
	CountryShortCode string   `json:"countryShortCode"`
	Regions          []string `json:"regions"`
}

var regionsByCountry map[string]map[string]struct{}

func init() {
	var entries []countryEntry
	if err := json.Unmarshal(countryRegionJSON, &entries); err != nil {
		panic("geo: corrupt country-region.json: " + err.Error())
	}
	regionsByCountry = make(map[string]map[string]struct{}, len(entries))
	for _, e := range entries {
		set := make(map[string]struct{}, len(e.Regions))
		for _, r := range e.Regions {
			set[r] = struct{}{}
		}
		regionsByCountry[e.CountryShortCode] = set
	}
}

// ValidateArea checks area.Country against the ISO 3166-1 alpha-2 list and,
// when a region is given, area.Region against that country's ISO 3166-2
// codes. A nil area is valid.
func ValidateArea(area *domain.Area) error {
	if area == nil {
		return nil
	}
	regions, ok := regionsByCountry[area.Country]
	if !ok {
		return domain.Ef(domain.KindBadInput, "'%s' is invalid country, please refer to ISO3166-2", area.Country)
	}
	if area.Region == "" {
		return nil
	}
	if _, ok := regions[area.Region]; !ok {
		return domain.Ef(domain.KindBadInput, "'%s' is invalid region of '%s', please refer to ISO3166-2", area.Region, area.Country)
	}
	return nil
}
