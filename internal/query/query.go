// Package query translates request query parameters into the filter, sort and
// limit specification a repository's FindMany consumes. Every resource gets a
// Spec (data, not code) describing which parameters it honors.
package query

import (
	"net/url"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultLimit = 100

// Spec describes how a single resource interprets query parameters.
type Spec struct {
	// Equality maps a query-parameter name to the document field it matches
	// exactly, e.g. "status" -> "paymentStatus".
	Equality map[string]string
	// Bools maps a query-parameter name to a boolean document field; the
	// parameter value is parsed as "true"/"false".
	Bools map[string]string
	// DateRange enables the createdAt range filter driven by startDate/endDate
	// (both must be present; bounds are inclusive).
	DateRange bool
	// SearchFields lists fields matched case-insensitively as substrings when
	// the "search" parameter is present (any field may match).
	SearchFields []string
	// TimeWindowField enables the upcoming/past split on the named date field.
	// "upcoming=true" keeps records at or after now, "past=true" before now.
	TimeWindowField string
	// Base is AND-ed in unconditionally and cannot be overridden by the
	// caller, e.g. published-only gates on public listings.
	Base bson.M
	// Sort is the fixed result ordering for the resource.
	Sort bson.D
	// Limit, when non-zero, is a fixed limit the caller cannot change
	// (featured/upcoming variants). Otherwise the "limit" parameter applies,
	// falling back to DefaultLimit.
	Limit int64
}

// Options is the structured output consumed by Repository.FindMany.
type Options struct {
	Filter bson.M
	Sort   bson.D
	Limit  int64
}

// Build applies the spec's rules independently to the given parameters;
// all present filters combine with logical AND.
func (s Spec) Build(params url.Values) Options {
	filter := bson.M{}
	for k, v := range s.Base {
		filter[k] = v
	}

	for param, field := range s.Equality {
		if v := params.Get(param); v != "" {
			filter[field] = v
		}
	}

	for param, field := range s.Bools {
		if v := params.Get(param); v != "" {
			filter[field] = v == "true"
		}
	}

	if s.DateRange {
		start, end := params.Get("startDate"), params.Get("endDate")
		if start != "" && end != "" {
			from, errFrom := time.Parse("2006-01-02", start)
			to, errTo := time.Parse("2006-01-02", end)
			if errFrom == nil && errTo == nil {
				// endDate is inclusive: extend to the end of that day.
				to = to.Add(24*time.Hour - time.Nanosecond)
				filter["createdAt"] = bson.M{"$gte": from, "$lte": to}
			}
		}
	}

	if len(s.SearchFields) > 0 {
		if term := params.Get("search"); term != "" {
			or := make(bson.A, 0, len(s.SearchFields))
			for _, f := range s.SearchFields {
				or = append(or, bson.M{f: primitive.Regex{Pattern: regexEscape(term), Options: "i"}})
			}
			filter["$or"] = or
		}
	}

	if s.TimeWindowField != "" {
		now := time.Now()
		if params.Get("upcoming") == "true" {
			filter[s.TimeWindowField] = bson.M{"$gte": now}
		} else if params.Get("past") == "true" {
			filter[s.TimeWindowField] = bson.M{"$lt": now}
		}
	}

	limit := s.Limit
	if limit == 0 {
		limit = DefaultLimit
		if v := params.Get("limit"); v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
				limit = n
			}
		}
	}

	return Options{Filter: filter, Sort: s.Sort, Limit: limit}
}

// regexEscape neutralizes regex metacharacters so user search terms are
// matched literally.
func regexEscape(s string) string {
	const meta = `\.+*?()|[]{}^$`
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		for j := 0; j < len(meta); j++ {
			if c == meta[j] {
				out = append(out, '\\')
				break
			}
		}
		out = append(out, c)
	}
	return string(out)
}
