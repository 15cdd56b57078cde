package profile

import "strings"

// Option is a selectable preference value with its display label.
type Option struct {
	Value string
	Label string
}

var ClimateConcernOptions = []Option{
	{"sea-level-rise", "Sea Level Rise"},
	{"extreme-weather", "Extreme Weather Events"},
	{"wildfires", "Wildfires"},
	{"flooding", "Flooding"},
	{"droughts", "Droughts"},
	{"heat-waves", "Heat Waves"},
	{"biodiversity-loss", "Biodiversity Loss"},
	{"deforestation", "Deforestation"},
	{"ocean-acidification", "Ocean Acidification"},
	{"glacier-melting", "Glacier & Ice Cap Melting"},
	{"air-quality", "Air Quality & Pollution"},
	{"water-scarcity", "Water Scarcity"},
	{"food-security", "Food Security"},
	{"climate-migration", "Climate Migration"},
	{"ecosystem-collapse", "Ecosystem Collapse"},
	{"coral-bleaching", "Coral Reef Bleaching"},
	{"permafrost-thaw", "Permafrost Thawing"},
	{"rising-temperatures", "Rising Global Temperatures"},
}

var GeographicFocusOptions = []Option{
	{"local", "Local / My Community"},
	{"regional", "Regional"},
	{"national", "National"},
	{"global", "Global"},
	{"arctic", "Arctic & Antarctic"},
	{"coastal", "Coastal Areas"},
	{"tropical", "Tropical Regions"},
	{"urban", "Urban Areas"},
	{"rural", "Rural Areas"},
	{"island-nations", "Island Nations"},
	{"developing-countries", "Developing Countries"},
	{"north-america", "North America"},
	{"south-america", "South America"},
	{"europe", "Europe"},
	{"asia", "Asia"},
	{"africa", "Africa"},
	{"oceania", "Oceania"},
	{"middle-east", "Middle East"},
}

var InterestCategoryOptions = []Option{
	{"energy", "Energy & Renewables"},
	{"policy", "Climate Policy & Legislation"},
	{"science", "Climate Science & Research"},
	{"technology", "Green Technology & Innovation"},
	{"economics", "Climate Economics & Finance"},
	{"agriculture", "Agriculture & Food Systems"},
	{"transportation", "Transportation & EVs"},
	{"buildings", "Buildings & Construction"},
	{"activism", "Climate Activism & Movements"},
	{"health", "Health Impacts"},
	{"justice", "Climate Justice & Equity"},
	{"corporate", "Corporate Sustainability"},
	{"conservation", "Conservation & Wildlife"},
	{"carbon-markets", "Carbon Markets & Offsets"},
	{"adaptation", "Adaptation Strategies"},
	{"mitigation", "Mitigation Solutions"},
	{"circular-economy", "Circular Economy"},
	{"sustainable-living", "Sustainable Living"},
}

// ValuesToString joins option values as their labels, separated by ", ".
// Unknown values are kept verbatim.
func ValuesToString(values []string, options []Option) string {
	labels := make([]string, 0, len(values))
	for _, v := range values {
		label := v
		for _, o := range options {
			if o.Value == v {
				label = o.Label
				break
			}
		}
		labels = append(labels, label)
	}
	return strings.Join(labels, ", ")
}

// StringToValues parses a comma-separated list of labels or values back
// into option values. Entries matching no option are dropped.
func StringToValues(s string, options []Option) []string {
	if s == "" {
		return nil
	}
	var values []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		for _, o := range options {
			if strings.EqualFold(o.Label, part) || o.Value == part {
				values = append(values, o.Value)
				break
			}
		}
	}
	return values
}
