package model

import (
	"fmt"
	"strings"
)

// DnComponent is a single type=value pair of a distinguished name.
type DnComponent struct {
	Type  string
	Value string
}

func (c DnComponent) equal(o DnComponent) bool {
	return strings.EqualFold(c.Type, o.Type) && strings.EqualFold(c.Value, o.Value)
}

// Dn is a distinguished name with components ordered from the root down.
type Dn struct {
	Components []DnComponent
}

// ParseDn parses an LDAP style string such as "cn=Admins,ou=Groups,dc=cru,dc=org".
// Escaped separators are not supported.
func ParseDn(s string) (Dn, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Dn{}, nil
	}

	parts := strings.Split(s, ",")
	components := make([]DnComponent, len(parts))
	for i, part := range parts {
		typ, value, ok := strings.Cut(part, "=")
		if !ok {
			return Dn{}, fmt.Errorf("invalid dn component %q", part)
		}
		components[len(parts)-1-i] = DnComponent{
			Type:  strings.TrimSpace(typ),
			Value: strings.TrimSpace(value),
		}
	}
	return Dn{Components: components}, nil
}

// Name returns the value of the leaf component.
func (d Dn) Name() string {
	if len(d.Components) == 0 {
		return ""
	}
	return d.Components[len(d.Components)-1].Value
}

// Child returns a new Dn one level below d.
func (d Dn) Child(typ, value string) Dn {
	components := make([]DnComponent, 0, len(d.Components)+1)
	components = append(components, d.Components...)
	components = append(components, DnComponent{Type: typ, Value: value})
	return Dn{Components: components}
}

// Parent returns the Dn one level above d. The root has no parent.
func (d Dn) Parent() (Dn, bool) {
	if len(d.Components) == 0 {
		return Dn{}, false
	}
	return Dn{Components: d.Components[:len(d.Components)-1]}, true
}

func (d Dn) IsDescendantOfOrEqualTo(ancestor Dn) bool {
	if len(ancestor.Components) > len(d.Components) {
		return false
	}
	for i, c := range ancestor.Components {
		if !c.equal(d.Components[i]) {
			return false
		}
	}
	return true
}

func (d Dn) IsDescendantOf(ancestor Dn) bool {
	return len(ancestor.Components) < len(d.Components) && d.IsDescendantOfOrEqualTo(ancestor)
}

func (d Dn) String() string {
	parts := make([]string, len(d.Components))
	for i, c := range d.Components {
		parts[len(d.Components)-1-i] = c.Type + "=" + c.Value
	}
	return strings.Join(parts, ",")
}
