package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mongolearn/lessons-api/internal/odm"
)

// planFind translates an odm.Query into a bson filter plus find options.
// A nil or empty query plans to an empty filter, matching everything.
func planFind(q *odm.Query) (bson.M, *options.FindOptions) {
	filter := bson.M{}
	opts := options.Find()
	if q == nil {
		return filter, opts
	}

	for _, c := range q.Conditions() {
		merge(filter, c)
	}

	if sorts := q.Sorts(); len(sorts) > 0 {
		sort := bson.D{}
		for _, s := range sorts {
			sort = append(sort, bson.E{Key: s.Field, Value: s.Dir})
		}
		opts.SetSort(sort)
	}
	if q.LimitValue() > 0 {
		opts.SetLimit(q.LimitValue())
	}
	if q.SkipValue() > 0 {
		opts.SetSkip(q.SkipValue())
	}

	return filter, opts
}

// merge folds one condition into the filter. Multiple conditions on the
// same field accumulate inside a single operator document, so
// Where("age", Gte, 21).Where("age", Lte, 65) becomes
// {age: {$gte: 21, $lte: 65}}.
func merge(filter bson.M, c odm.Condition) {
	if c.Op == odm.OpEq {
		// Plain equality; on array fields mongo reads this as containment,
		// which is exactly what the keyword filter needs.
		filter[c.Field] = c.Value
		return
	}

	var op string
	value := c.Value
	switch c.Op {
	case odm.OpNe:
		op = "$ne"
	case odm.OpGt:
		op = "$gt"
	case odm.OpGte:
		op = "$gte"
	case odm.OpLt:
		op = "$lt"
	case odm.OpLte:
		op = "$lte"
	case odm.OpIn:
		op = "$in"
	case odm.OpRegex:
		op = "$regex"
		value = primitive.Regex{Pattern: toString(c.Value), Options: "i"}
	default:
		return
	}

	existing, ok := filter[c.Field].(bson.M)
	if !ok {
		existing = bson.M{}
		filter[c.Field] = existing
	}
	existing[op] = value
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
