package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/idm-okta/internal/model"
)

func TestBooleanExpression_Builders(t *testing.T) {
	a := Eq(AttrEmail, "a@b.com")
	b := Sw(AttrFirstName, "J")
	c := Eq(AttrLastName, "Doe")

	t.Run("and on and flattens", func(t *testing.T) {
		expr := AndOf(a, b).And(c)
		require.IsType(t, BooleanExpression{}, expr)
		be := expr.(BooleanExpression)
		assert.Equal(t, And, be.Type)
		assert.Equal(t, []Expression{a, b, c}, be.Components)
	})

	t.Run("or on and nests", func(t *testing.T) {
		expr := AndOf(a, b).Or(c)
		be := expr.(BooleanExpression)
		assert.Equal(t, Or, be.Type)
		assert.Len(t, be.Components, 2)
		assert.Equal(t, AndOf(a, b), be.Components[0])
	})

	t.Run("comparison builders wrap", func(t *testing.T) {
		assert.Equal(t, OrOf(a, b), a.Or(b))
		assert.Equal(t, AndOf(a, b), a.And(b))
	})
}

func TestMatches(t *testing.T) {
	user := &model.User{
		TheKeyGUID:     "6b4c9d44-4c2b-4c1f-9c33-6dd7c2f8a0e1",
		Email:          "John.Doe@example.com",
		FirstName:      "John",
		LastName:       "Doe",
		EmployeeID:     "000123",
		Designation:    "2000000",
		ProxyAddresses: []string{"jd@cru.org"},
		Groups:         []model.Group{model.OktaGroup{ID: "1", GroupName: "Staff"}},
	}

	tests := []struct {
		name string
		expr Expression
		want bool
	}{
		{name: "eq is case insensitive", expr: Eq(AttrEmail, "john.doe@EXAMPLE.com"), want: true},
		{name: "sw", expr: Sw(AttrFirstName, "jo"), want: true},
		{name: "sw mismatch", expr: Sw(AttrLastName, "Smi"), want: false},
		{name: "like", expr: Like(AttrEmail, "john*@*.com"), want: true},
		{name: "like mismatch", expr: Like(AttrEmail, "*@cru.org"), want: false},
		{name: "alias", expr: Eq(AttrEmailAlias, "jd@cru.org"), want: true},
		{name: "group", expr: Eq(AttrGroup, "staff"), want: true},
		{name: "and", expr: AndOf(Eq(AttrLastName, "doe"), Eq(AttrEmployeeID, "000123")), want: true},
		{name: "and short circuits false", expr: AndOf(Eq(AttrLastName, "smith"), Eq(AttrEmployeeID, "000123")), want: false},
		{name: "or", expr: OrOf(Eq(AttrLastName, "smith"), Eq(AttrDesignation, "2000000")), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Matches(tt.expr, user)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWildcardMatch(t *testing.T) {
	assert.True(t, wildcardMatch("abc", "abc"))
	assert.True(t, wildcardMatch("abc", "*"))
	assert.True(t, wildcardMatch("abc", "a*"))
	assert.True(t, wildcardMatch("abc", "*c"))
	assert.True(t, wildcardMatch("abc", "a*b*c"))
	assert.False(t, wildcardMatch("abc", "a*d"))
	assert.False(t, wildcardMatch("ab", "ab*b"))
}
