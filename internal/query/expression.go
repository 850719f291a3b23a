// Package query describes user search expressions independent of any store.
package query

// Attribute is a searchable user attribute.
type Attribute string

const (
	AttrGUID        Attribute = "GUID"
	AttrEmail       Attribute = "EMAIL"
	AttrEmailAlias  Attribute = "EMAIL_ALIAS"
	AttrFirstName   Attribute = "FIRST_NAME"
	AttrLastName    Attribute = "LAST_NAME"
	AttrEmployeeID  Attribute = "US_EMPLOYEE_ID"
	AttrDesignation Attribute = "US_DESIGNATION"
	AttrGroup       Attribute = "GROUP"
)

// BooleanType joins the components of a BooleanExpression.
type BooleanType string

const (
	And BooleanType = "AND"
	Or  BooleanType = "OR"
)

// ComparisonType is the operator of a ComparisonExpression.
type ComparisonType string

const (
	EQ   ComparisonType = "EQ"
	SW   ComparisonType = "SW"
	LIKE ComparisonType = "LIKE"
)

// Expression is a node of a search expression tree.
type Expression interface {
	And(exprs ...Expression) Expression
	Or(exprs ...Expression) Expression
}

// BooleanExpression joins at least one component with AND or OR.
type BooleanExpression struct {
	Type       BooleanType
	Components []Expression
}

// ComparisonExpression compares a single attribute against a value.
type ComparisonExpression struct {
	Type      ComparisonType
	Attribute Attribute
	Value     string
}

func Eq(attr Attribute, value string) ComparisonExpression {
	return ComparisonExpression{Type: EQ, Attribute: attr, Value: value}
}

func Sw(attr Attribute, value string) ComparisonExpression {
	return ComparisonExpression{Type: SW, Attribute: attr, Value: value}
}

// Like matches value with '*' wildcards.
func Like(attr Attribute, value string) ComparisonExpression {
	return ComparisonExpression{Type: LIKE, Attribute: attr, Value: value}
}

func AndOf(expr Expression, exprs ...Expression) BooleanExpression {
	return newBoolean(And, expr, exprs)
}

func OrOf(expr Expression, exprs ...Expression) BooleanExpression {
	return newBoolean(Or, expr, exprs)
}

func newBoolean(typ BooleanType, expr Expression, exprs []Expression) BooleanExpression {
	components := make([]Expression, 0, len(exprs)+1)
	components = append(components, expr)
	components = append(components, exprs...)
	return BooleanExpression{Type: typ, Components: components}
}

func (e ComparisonExpression) And(exprs ...Expression) Expression {
	return newBoolean(And, e, exprs)
}

func (e ComparisonExpression) Or(exprs ...Expression) Expression {
	return newBoolean(Or, e, exprs)
}

// And appends to e when e is already an AND expression.
func (e BooleanExpression) And(exprs ...Expression) Expression {
	if e.Type != And {
		return newBoolean(And, e, exprs)
	}
	return e.extend(exprs)
}

// Or appends to e when e is already an OR expression.
func (e BooleanExpression) Or(exprs ...Expression) Expression {
	if e.Type != Or {
		return newBoolean(Or, e, exprs)
	}
	return e.extend(exprs)
}

func (e BooleanExpression) extend(exprs []Expression) BooleanExpression {
	components := make([]Expression, 0, len(e.Components)+len(exprs))
	components = append(components, e.Components...)
	components = append(components, exprs...)
	return BooleanExpression{Type: e.Type, Components: components}
}
