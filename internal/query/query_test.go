package query

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var testSpec = Spec{
	Equality: map[string]string{
		"purpose": "purpose",
		"status":  "paymentStatus",
	},
	Bools:     map[string]string{"subscribed": "subscribed"},
	DateRange: true,
	Sort:      bson.D{{Key: "createdAt", Value: -1}},
}

func TestBuildEqualityFilters(t *testing.T) {
	opts := testSpec.Build(url.Values{"purpose": {"Tithe"}, "status": {"Successful"}})

	assert.Equal(t, "Tithe", opts.Filter["purpose"])
	assert.Equal(t, "Successful", opts.Filter["paymentStatus"])
}

func TestBuildIgnoresUnknownParams(t *testing.T) {
	opts := testSpec.Build(url.Values{"bogus": {"x"}})
	assert.NotContains(t, opts.Filter, "bogus")
}

func TestBuildBoolFilter(t *testing.T) {
	opts := testSpec.Build(url.Values{"subscribed": {"true"}})
	assert.Equal(t, true, opts.Filter["subscribed"])

	opts = testSpec.Build(url.Values{"subscribed": {"false"}})
	assert.Equal(t, false, opts.Filter["subscribed"])
}

func TestBuildDateRange(t *testing.T) {
	opts := testSpec.Build(url.Values{"startDate": {"2026-01-01"}, "endDate": {"2026-01-31"}})

	rng, ok := opts.Filter["createdAt"].(bson.M)
	require.True(t, ok)

	from := rng["$gte"].(time.Time)
	to := rng["$lte"].(time.Time)
	assert.Equal(t, 2026, from.Year())
	assert.True(t, to.After(from))
	// endDate is inclusive through the whole day.
	assert.Equal(t, 31, to.Day())
}

func TestBuildDateRangeRequiresBothBounds(t *testing.T) {
	opts := testSpec.Build(url.Values{"startDate": {"2026-01-01"}})
	assert.NotContains(t, opts.Filter, "createdAt")
}

func TestBuildSearch(t *testing.T) {
	spec := Spec{SearchFields: []string{"title", "preacher"}}
	opts := spec.Build(url.Values{"search": {"grace"}})

	or, ok := opts.Filter["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 2)

	first := or[0].(bson.M)
	rx, ok := first["title"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "grace", rx.Pattern)
	assert.Equal(t, "i", rx.Options)
}

func TestBuildSearchEscapesMetacharacters(t *testing.T) {
	spec := Spec{SearchFields: []string{"title"}}
	opts := spec.Build(url.Values{"search": {"a.b*c"}})

	or := opts.Filter["$or"].(bson.A)
	rx := or[0].(bson.M)["title"].(primitive.Regex)
	assert.Equal(t, `a\.b\*c`, rx.Pattern)
}

func TestBuildBaseFilterAlwaysApplies(t *testing.T) {
	spec := Spec{Base: bson.M{"published": true}}

	opts := spec.Build(url.Values{})
	assert.Equal(t, true, opts.Filter["published"])

	// The gate is not caller-overridable.
	opts = spec.Build(url.Values{"published": {"false"}})
	assert.Equal(t, true, opts.Filter["published"])
}

func TestBuildTimeWindow(t *testing.T) {
	spec := Spec{TimeWindowField: "startDate"}

	opts := spec.Build(url.Values{"upcoming": {"true"}})
	cond := opts.Filter["startDate"].(bson.M)
	assert.Contains(t, cond, "$gte")

	opts = spec.Build(url.Values{"past": {"true"}})
	cond = opts.Filter["startDate"].(bson.M)
	assert.Contains(t, cond, "$lt")

	// upcoming wins when the caller sends both.
	opts = spec.Build(url.Values{"upcoming": {"true"}, "past": {"true"}})
	cond = opts.Filter["startDate"].(bson.M)
	assert.Contains(t, cond, "$gte")
}

func TestBuildLimitDefault(t *testing.T) {
	opts := testSpec.Build(url.Values{})
	assert.Equal(t, int64(DefaultLimit), opts.Limit)
}

func TestBuildLimitParam(t *testing.T) {
	opts := testSpec.Build(url.Values{"limit": {"25"}})
	assert.Equal(t, int64(25), opts.Limit)
}

func TestBuildLimitNonNumericFallsBack(t *testing.T) {
	opts := testSpec.Build(url.Values{"limit": {"lots"}})
	assert.Equal(t, int64(DefaultLimit), opts.Limit)
}

func TestBuildFixedLimitIgnoresParam(t *testing.T) {
	spec := Spec{Limit: 5}
	opts := spec.Build(url.Values{"limit": {"50"}})
	assert.Equal(t, int64(5), opts.Limit)
}

func TestBuildKeepsSort(t *testing.T) {
	opts := testSpec.Build(url.Values{})
	require.Len(t, opts.Sort, 1)
	assert.Equal(t, "createdAt", opts.Sort[0].Key)
	assert.Equal(t, -1, opts.Sort[0].Value)
}
