package query

import (
	"fmt"
	"strings"
)

// Condition represents a WHERE clause condition.
// Implementations must generate SQL fragments and parameter maps
// using Spanner's named parameter format (@paramName).
type Condition interface {
	// SQL returns the SQL fragment and parameter map for this condition.
	// paramIndex is the first free index for generated names (@p0, @p1, ...).
	SQL(paramIndex int) (string, map[string]interface{})
}

// cmpCondition implements a binary comparison (field <op> value).
type cmpCondition struct {
	field string
	op    string
	value interface{}
}

// Eq creates a WHERE condition for equality comparison.
// Example: Eq("status", "aktif") generates "status = @p0"
func Eq(field string, value interface{}) Condition {
	return &cmpCondition{field: field, op: "=", value: value}
}

// Lt creates "field < @pN".
func Lt(field string, value interface{}) Condition {
	return &cmpCondition{field: field, op: "<", value: value}
}

// Lte creates "field <= @pN".
func Lte(field string, value interface{}) Condition {
	return &cmpCondition{field: field, op: "<=", value: value}
}

// Gt creates "field > @pN".
func Gt(field string, value interface{}) Condition {
	return &cmpCondition{field: field, op: ">", value: value}
}

// Gte creates "field >= @pN".
func Gte(field string, value interface{}) Condition {
	return &cmpCondition{field: field, op: ">=", value: value}
}

func (c *cmpCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s %s @%s", c.field, c.op, paramName), map[string]interface{}{
		paramName: c.value,
	}
}

// In creates "field IN UNNEST(@pN)". values must be a slice Spanner can bind
// as an ARRAY, such as []string.
func In(field string, values interface{}) Condition {
	return &inCondition{field: field, values: values}
}

type inCondition struct {
	field  string
	values interface{}
}

func (c *inCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s IN UNNEST(@%s)", c.field, paramName), map[string]interface{}{
		paramName: c.values,
	}
}

// IsNull creates a WHERE condition for NULL checks.
// Example: IsNull("end_date") generates "end_date IS NULL"
func IsNull(field string) Condition {
	return &nullCondition{field: field}
}

// IsNotNull creates a WHERE condition for NOT NULL checks.
func IsNotNull(field string) Condition {
	return &nullCondition{field: field, not: true}
}

type nullCondition struct {
	field string
	not   bool
}

func (c *nullCondition) SQL(int) (string, map[string]interface{}) {
	if c.not {
		return c.field + " IS NOT NULL", map[string]interface{}{}
	}
	return c.field + " IS NULL", map[string]interface{}{}
}

// And groups conditions with AND inside parentheses.
func And(conditions ...Condition) Condition {
	return &groupCondition{sep: " AND ", conditions: conditions}
}

// Or groups conditions with OR inside parentheses.
// Example: Or(IsNull("end_date"), Gte("end_date", d)) generates
// "(end_date IS NULL OR end_date >= @p0)"
func Or(conditions ...Condition) Condition {
	return &groupCondition{sep: " OR ", conditions: conditions}
}

type groupCondition struct {
	sep        string
	conditions []Condition
}

func (c *groupCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	fragment, params := joinConditions(c.conditions, c.sep, paramIndex)
	if len(c.conditions) <= 1 {
		return fragment, params
	}
	return "(" + fragment + ")", params
}

// joinConditions renders conditions in order, advancing the parameter index
// by the number of parameters each one consumed.
func joinConditions(conditions []Condition, sep string, paramIndex int) (string, map[string]interface{}) {
	parts := make([]string, 0, len(conditions))
	params := make(map[string]interface{})
	for _, condition := range conditions {
		if condition == nil {
			continue
		}
		fragment, condParams := condition.SQL(paramIndex)
		parts = append(parts, fragment)
		for k, v := range condParams {
			params[k] = v
		}
		paramIndex += len(condParams)
	}
	return strings.Join(parts, sep), params
}
