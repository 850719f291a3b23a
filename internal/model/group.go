package model

import "strings"

// Group is a named collection of users.
type Group interface {
	Name() string
	IsDescendantOfOrEqualTo(base string) bool
}

var (
	_ Group = OktaGroup{}
	_ Group = DnGroup{}
)

// OktaGroup is a group native to the identity provider.
type OktaGroup struct {
	ID        string
	Type      string
	GroupName string
}

func (g OktaGroup) Name() string {
	return g.GroupName
}

// IsDescendantOfOrEqualTo treats group names as slash separated paths.
func (g OktaGroup) IsDescendantOfOrEqualTo(base string) bool {
	base = strings.TrimSuffix(base, "/")
	if base == "" {
		return true
	}
	name := strings.ToLower(g.GroupName)
	base = strings.ToLower(base)
	return name == base || strings.HasPrefix(name, base+"/")
}

// DnGroup is a group in the legacy directory, identified by its DN.
type DnGroup struct {
	Dn Dn
}

func (g DnGroup) Name() string {
	return g.Dn.Name()
}

func (g DnGroup) IsDescendantOfOrEqualTo(base string) bool {
	ancestor, err := ParseDn(base)
	if err != nil {
		return false
	}
	return g.Dn.IsDescendantOfOrEqualTo(ancestor)
}
