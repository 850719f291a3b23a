package model

// Attr identifies a logical group of User fields an update intends to change.
type Attr string

const (
	AttrEmail                Attr = "EMAIL"
	AttrPassword             Attr = "PASSWORD"
	AttrName                 Attr = "NAME"
	AttrPreferredName        Attr = "CRU_PREFERRED_NAME"
	AttrContact              Attr = "CONTACT"
	AttrLocation             Attr = "LOCATION"
	AttrEmployeeNumber       Attr = "EMPLOYEE_NUMBER"
	AttrDesignation          Attr = "CRU_DESIGNATION"
	AttrHumanResource        Attr = "HUMAN_RESOURCE"
	AttrProxyAddresses       Attr = "CRU_PROXY_ADDRESSES"
	AttrOrca                 Attr = "ORCA"
	AttrFlags                Attr = "FLAGS"
	AttrSecurityQA           Attr = "SECURITYQA"
	AttrSelfServiceKeys      Attr = "SELFSERVICEKEYS"
	AttrMFASecret            Attr = "MFA_SECRET"
	AttrMFAIntruderDetection Attr = "MFA_INTRUDER_DETECTION"
	AttrDomainsVisited       Attr = "DOMAINSVISITED"
	AttrFacebook             Attr = "FACEBOOK"
	AttrGlobalRegistry       Attr = "GLOBALREGISTRY"
	AttrLoginTime            Attr = "LOGINTIME"
)

// DefaultAttrs is used when an update does not name any attribute group.
var DefaultAttrs = []Attr{AttrEmail, AttrName, AttrFlags}

// NormalizeAttrs de-duplicates attrs preserving order, or returns DefaultAttrs
// when attrs is empty.
func NormalizeAttrs(attrs ...Attr) []Attr {
	if len(attrs) == 0 {
		attrs = DefaultAttrs
	}

	seen := make(map[Attr]struct{}, len(attrs))
	out := make([]Attr, 0, len(attrs))
	for _, a := range attrs {
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}

// FilterAttrs returns the attrs that are members of allowed, preserving order.
func FilterAttrs(attrs []Attr, allowed map[Attr]struct{}) []Attr {
	var out []Attr
	for _, a := range attrs {
		if _, ok := allowed[a]; ok {
			out = append(out, a)
		}
	}
	return out
}

// AttrStrings converts attrs to strings for logging.
func AttrStrings(attrs []Attr) []string {
	out := make([]string, len(attrs))
	for i, a := range attrs {
		out[i] = string(a)
	}
	return out
}
