package odm

// Op identifies a comparison operator in a query condition.
type Op int

const (
	OpEq Op = iota
	OpNe
	OpGt
	OpGte
	OpLt
	OpLte
	OpIn
	OpRegex // case-insensitive substring/regex match; backend decides details
)

// Condition is one field comparison. Storage adapters translate a slice of
// conditions into their native filter format (bson.M, SQL WHERE, ...).
// All conditions on a query are ANDed together.
type Condition struct {
	Field string
	Op    Op
	Value any
}

// Sort directions.
const (
	Asc  = 1
	Desc = -1
)

// SortSpec is one ordering clause.
type SortSpec struct {
	Field string
	Dir   int // Asc or Desc
}

// Query is a storage-agnostic query under construction. Callers chain
// Where/Sort/Limit/Skip and hand the result to the storage layer; a Query
// with no conditions matches every document.
//
//	q := odm.NewQuery().
//	    Where("party", odm.OpEq, "Whig").
//	    Where("age", odm.OpGte, 30).
//	    Sort("last_name", odm.Asc).
//	    Limit(20)
type Query struct {
	conds []Condition
	sorts []SortSpec
	limit int64
	skip  int64
}

// NewQuery returns an empty query matching all documents.
func NewQuery() *Query { return &Query{} }

// Where appends a condition. Conditions are ANDed.
func (q *Query) Where(field string, op Op, value any) *Query {
	q.conds = append(q.conds, Condition{Field: field, Op: op, Value: value})
	return q
}

// Sort appends an ordering clause. Dir is Asc or Desc.
func (q *Query) Sort(field string, dir int) *Query {
	q.sorts = append(q.sorts, SortSpec{Field: field, Dir: dir})
	return q
}

// Limit caps the number of documents returned. Zero means no cap.
func (q *Query) Limit(n int64) *Query {
	q.limit = n
	return q
}

// Skip discards the first n matching documents.
func (q *Query) Skip(n int64) *Query {
	q.skip = n
	return q
}

// Accessors used by storage adapters when planning the query.

func (q *Query) Conditions() []Condition { return q.conds }
func (q *Query) Sorts() []SortSpec       { return q.sorts }
func (q *Query) LimitValue() int64       { return q.limit }
func (q *Query) SkipValue() int64        { return q.skip }
