package timezones

import (
	"strings"

	"github.com/goliatone/go-typeinput/pkg/schema"
)

// Name is the provider name used in `dropdown` declarations.
const Name = "timezones"

// Provider returns an options provider over the embedded zones. Regions such
// as "Europe" or "America" restrict the list to zones under those prefixes;
// UTC is always kept.
func Provider(regions ...string) schema.OptionsProvider {
	return func() (any, error) {
		zones, err := DefaultZones()
		if err != nil {
			return nil, err
		}
		return FilterRegions(zones, regions...), nil
	}
}

// Dropdown is the fragment that attaches Provider to a string field.
func Dropdown(regions ...string) schema.Dropdown {
	return schema.Dropdown{Provider: Provider(regions...)}
}

// FilterRegions keeps zones under any of the region prefixes.
func FilterRegions(zones []string, regions ...string) []string {
	if len(regions) == 0 {
		return zones
	}
	out := make([]string, 0, len(zones))
	for _, zone := range zones {
		if zone == "UTC" {
			out = append(out, zone)
			continue
		}
		for _, region := range regions {
			if strings.HasPrefix(zone, strings.TrimSuffix(region, "/")+"/") {
				out = append(out, zone)
				break
			}
		}
	}
	return out
}
