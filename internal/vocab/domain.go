package vocab

import "strings"

// Domain is a hazard category grouping related markers.
type Domain string

const (
	DomainPFAS        Domain = "pfas"
	DomainMetals      Domain = "metals"
	DomainParabens    Domain = "parabens"
	DomainPhthalates  Domain = "phthalates"
	DomainVOCs        Domain = "vocs"
	DomainPesticides  Domain = "pesticides"
	DomainMycotoxins  Domain = "mycotoxins"
	DomainPlastics    Domain = "plastics"
	DomainOxidative   Domain = "oxidative"
	DomainMethylation Domain = "methylation"
)

var allDomains = []Domain{
	DomainPFAS, DomainMetals, DomainParabens, DomainPhthalates, DomainVOCs,
	DomainPesticides, DomainMycotoxins, DomainPlastics, DomainOxidative, DomainMethylation,
}

// AllDomains returns every domain in reporting order.
func AllDomains() []Domain {
	out := make([]Domain, len(allDomains))
	copy(out, allDomains)
	return out
}

// ParseDomain accepts the canonical name plus the column spellings used by
// older ingredient tables ("voc", "mycotox").
func ParseDomain(s string) (Domain, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pfas":
		return DomainPFAS, true
	case "metals", "metal":
		return DomainMetals, true
	case "parabens", "paraben":
		return DomainParabens, true
	case "phthalates", "phthalate":
		return DomainPhthalates, true
	case "vocs", "voc":
		return DomainVOCs, true
	case "pesticides", "pesticide":
		return DomainPesticides, true
	case "mycotoxins", "mycotox":
		return DomainMycotoxins, true
	case "plastics", "plastic":
		return DomainPlastics, true
	case "oxidative":
		return DomainOxidative, true
	case "methylation":
		return DomainMethylation, true
	}
	return "", false
}
