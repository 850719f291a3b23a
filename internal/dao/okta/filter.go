package okta

import (
	"fmt"
	"strings"

	"github.com/dtroode/idm-okta/internal/model"
	"github.com/dtroode/idm-okta/internal/query"
)

var searchAttributes = map[query.Attribute]string{
	query.AttrGUID:        profileTheKeyGUID,
	query.AttrEmail:       profileEmail,
	query.AttrEmailAlias:  profileEmailAliases,
	query.AttrFirstName:   profileFirstName,
	query.AttrLastName:    profileLastName,
	query.AttrEmployeeID:  profileUSEmployeeID,
	query.AttrDesignation: profileUSDesignation,
}

var filterEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// ToFilter translates expr into an Okta search filter. When includeDeactivated
// is set EMAIL comparisons also match the original email of deactivated users.
func ToFilter(expr query.Expression, includeDeactivated bool) (string, error) {
	switch e := expr.(type) {
	case query.BooleanExpression:
		return booleanFilter(e, includeDeactivated)
	case query.ComparisonExpression:
		return comparisonFilter(e, includeDeactivated)
	default:
		return "", fmt.Errorf("unrecognized expression: %T", expr)
	}
}

func booleanFilter(e query.BooleanExpression, includeDeactivated bool) (string, error) {
	var sep string
	switch e.Type {
	case query.And:
		sep = " and "
	case query.Or:
		sep = " or "
	default:
		return "", fmt.Errorf("unrecognized boolean expression type: %s", e.Type)
	}

	parts := make([]string, 0, len(e.Components))
	for _, c := range e.Components {
		part, err := ToFilter(c, includeDeactivated)
		if err != nil {
			return "", err
		}
		parts = append(parts, part)
	}
	return "(" + strings.Join(parts, sep) + ")", nil
}

func comparisonFilter(e query.ComparisonExpression, includeDeactivated bool) (string, error) {
	if e.Attribute == query.AttrGroup {
		return "", fmt.Errorf("%w: group search", model.ErrUnsupportedOperation)
	}

	attr, ok := searchAttributes[e.Attribute]
	if !ok {
		return "", fmt.Errorf("unrecognized attribute: %s", e.Attribute)
	}

	if includeDeactivated && e.Attribute == query.AttrEmail {
		live, err := compareFilter(profileEmail, e.Type, e.Value)
		if err != nil {
			return "", err
		}
		original, err := compareFilter(profileOriginalEmail, e.Type, e.Value)
		if err != nil {
			return "", err
		}
		return "(" + live + " or " + original + ")", nil
	}

	return compareFilter(attr, e.Type, e.Value)
}

func compareFilter(attr string, typ query.ComparisonType, value string) (string, error) {
	var oper string
	switch typ {
	case query.EQ:
		oper = "eq"
	case query.SW:
		oper = "sw"
	case query.LIKE:
		return "", fmt.Errorf("%w: LIKE comparisons", model.ErrUnsupportedOperation)
	default:
		return "", fmt.Errorf("unrecognized comparison type: %s", typ)
	}

	return fmt.Sprintf(`profile.%s %s "%s"`, attr, oper, filterEscaper.Replace(value)), nil
}
