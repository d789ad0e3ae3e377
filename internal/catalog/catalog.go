// Package catalog holds the static provisioning tables: the feature
// catalog that maps feature codes to registry global-filter values, the
// feature-package classification, and the site-to-domain table.
package catalog

// Class labels a feature package for identity-materialization rules.
type Class string

const (
	ClassResidential Class = "Residential"
	ClassCommercial  Class = "Commercial"
	ClassRCF         Class = "RCF"
)

// ActionFilter marks catalog entries whose values are emitted verbatim,
// without the residential TAS suffix.
const ActionFilter = "hssFilter"

// Entry is one feature-catalog row. Entries sharing a Name are all
// consulted when that feature code is requested.
type Entry struct {
	Name   string
	Action string
	Values []string
}

// Catalog is the static configuration consulted by the request builder.
// It is constructor-injected so deployments can replace it wholesale.
type Catalog struct {
	Entries       []Entry
	Packages      map[string]Class
	SiteDomains   map[string]string
	DefaultDomain string
}

// Domain resolves a site code to its SIP domain, falling back to the
// default domain for unknown or absent sites.
func (c *Catalog) Domain(site string) string {
	if d, ok := c.SiteDomains[site]; ok && d != "" {
		return d
	}
	return c.DefaultDomain
}

// IsResidential reports whether the feature package is classified residential.
func (c *Catalog) IsResidential(pkg string) bool {
	return c.Packages[pkg] == ClassResidential
}

// IsCommercial reports whether the feature package is classified commercial.
func (c *Catalog) IsCommercial(pkg string) bool {
	return c.Packages[pkg] == ClassCommercial
}

// IsRCF reports whether the feature package is a remote-call-forwarding one.
func (c *Catalog) IsRCF(pkg string) bool {
	return c.Packages[pkg] == ClassRCF
}

// EntriesNamed returns the catalog rows matching a feature code, in
// catalog order.
func (c *Catalog) EntriesNamed(name string) []Entry {
	var out []Entry
	for _, e := range c.Entries {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

// Default returns the built-in catalog for the engineering registry.
func Default() *Catalog {
	return &Catalog{
		Entries: []Entry{
			{Name: "900", Action: ActionFilter, Values: []string{"900COS"}},
			{Name: "INTL", Action: ActionFilter, Values: []string{"INTLCOS"}},
			{Name: "DP01", Action: "imsServiceProfilePrefix", Values: []string{"CID"}},
			{Name: "BC01", Action: "imsServiceProfilePrefix", Values: []string{"MUT-CTS", "MO-CTS", "CIDBCP", "REG-CTS"}},
			{Name: "HGROUP", Action: ActionFilter, Values: []string{"MO-DCA011-UNREG", "MUT-DCA011-UNREG"}},
			{Name: "BGROUP", Action: ActionFilter, Values: []string{"MO-DCA011-UNREG", "MUT-DCA011-UNREG"}},
		},
		Packages: map[string]Class{
			"DP01":  ClassResidential,
			"BC01":  ClassCommercial,
			"RCF01": ClassRCF,
		},
		SiteDomains: map[string]string{
			"DV2": "ims.eng.rr.com",
		},
		DefaultDomain: "ims.eng.rr.com",
	}
}
