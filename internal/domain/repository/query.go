package repository

// Generic query shape shared by every repository contract. A filter
// maps an entity field to either conditions or, via Eq, an exact value.

// Op is a comparison operator usable in a condition.
type Op string

const (
	OpEq Op = "=="
	OpNe Op = "!="
	OpLt Op = "<"
	OpGt Op = ">"
)

// Condition pairs an operator with the value it compares against.
type Condition struct {
	Op    Op
	Value any
}

// Filter maps field names to the conditions they must satisfy. All
// conditions are conjunctive.
type Filter map[string][]Condition

// Eq is shorthand for a single exact-match condition.
func Eq(value any) []Condition { return []Condition{{Op: OpEq, Value: value}} }

// Direction of a sort.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Options carries one sort key plus pagination. Cursor is an opaque
// value previously handed out by GetMany; when set it takes precedence
// over Offset.
type Options struct {
	SortBy    string
	Direction Direction
	Limit     int
	Offset    int
	Cursor    string
}
