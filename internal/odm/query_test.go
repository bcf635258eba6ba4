package odm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mongolearn/lessons-api/internal/odm"
)

func TestQueryAccumulates(t *testing.T) {
	q := odm.NewQuery().
		Where("party", odm.OpEq, "Whig").
		Where("age", odm.OpGte, 30).
		Sort("last_name", odm.Asc).
		Limit(20).
		Skip(5)

	conds := q.Conditions()
	assert.Len(t, conds, 2)
	assert.Equal(t, odm.Condition{Field: "party", Op: odm.OpEq, Value: "Whig"}, conds[0])
	assert.Equal(t, odm.Condition{Field: "age", Op: odm.OpGte, Value: 30}, conds[1])

	sorts := q.Sorts()
	assert.Len(t, sorts, 1)
	assert.Equal(t, odm.SortSpec{Field: "last_name", Dir: odm.Asc}, sorts[0])

	assert.Equal(t, int64(20), q.LimitValue())
	assert.Equal(t, int64(5), q.SkipValue())
}

func TestEmptyQueryMatchesEverything(t *testing.T) {
	q := odm.NewQuery()

	assert.Empty(t, q.Conditions())
	assert.Empty(t, q.Sorts())
	assert.Zero(t, q.LimitValue())
	assert.Zero(t, q.SkipValue())
}
