package query

import (
	"fmt"
	"strings"

	"github.com/dtroode/idm-okta/internal/model"
)

// Matches evaluates expr against an already loaded user.
func Matches(expr Expression, user *model.User) (bool, error) {
	switch e := expr.(type) {
	case BooleanExpression:
		return e.matches(user)
	case ComparisonExpression:
		return e.matches(user)
	default:
		return false, fmt.Errorf("unrecognized expression: %T", expr)
	}
}

func (e BooleanExpression) matches(user *model.User) (bool, error) {
	for _, c := range e.Components {
		ok, err := Matches(c, user)
		if err != nil {
			return false, err
		}
		if e.Type == And && !ok {
			return false, nil
		}
		if e.Type == Or && ok {
			return true, nil
		}
	}
	return e.Type == And, nil
}

func (e ComparisonExpression) matches(user *model.User) (bool, error) {
	values, err := attributeValues(e.Attribute, user)
	if err != nil {
		return false, err
	}

	for _, v := range values {
		ok, err := compare(e.Type, v, e.Value)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func attributeValues(attr Attribute, user *model.User) ([]string, error) {
	switch attr {
	case AttrGUID:
		return []string{user.TheKeyGUID}, nil
	case AttrEmail:
		return []string{user.Email}, nil
	case AttrEmailAlias:
		return user.ProxyAddresses, nil
	case AttrFirstName:
		return []string{user.FirstName}, nil
	case AttrLastName:
		return []string{user.LastName}, nil
	case AttrEmployeeID:
		return []string{user.EmployeeID}, nil
	case AttrDesignation:
		return []string{user.Designation}, nil
	case AttrGroup:
		names := make([]string, len(user.Groups))
		for i, g := range user.Groups {
			names[i] = g.Name()
		}
		return names, nil
	default:
		return nil, fmt.Errorf("unrecognized attribute: %s", attr)
	}
}

func compare(typ ComparisonType, actual, expected string) (bool, error) {
	actual = strings.ToLower(actual)
	expected = strings.ToLower(expected)

	switch typ {
	case EQ:
		return actual == expected, nil
	case SW:
		return strings.HasPrefix(actual, expected), nil
	case LIKE:
		return wildcardMatch(actual, expected), nil
	default:
		return false, fmt.Errorf("unrecognized comparison: %s", typ)
	}
}

// wildcardMatch matches s against pattern where '*' matches any run of characters.
func wildcardMatch(s, pattern string) bool {
	parts := strings.Split(pattern, "*")
	if len(parts) == 1 {
		return s == pattern
	}

	if !strings.HasPrefix(s, parts[0]) {
		return false
	}
	s = s[len(parts[0]):]

	last := parts[len(parts)-1]
	for _, part := range parts[1 : len(parts)-1] {
		i := strings.Index(s, part)
		if i < 0 {
			return false
		}
		s = s[i+len(part):]
	}
	return strings.HasSuffix(s, last)
}
