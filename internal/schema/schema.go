package schema

import (
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// nowSentinel marks a default that resolves to time.Now() at insert time.
type nowSentinel struct{}

// Now is the default value for date fields that follow the clock.
var Now = nowSentinel{}

// Rule describes the constraints of a single field.
type Rule struct {
	Name     string
	Required bool
	Enum     []string
	MinLen   int
	Min      float64 // numeric lower bound, inclusive; only checked when HasMin
	HasMin   bool
	Pattern  *regexp.Regexp
	Default  any // applied when the field is absent; Now resolves to time.Now()
}

// Descriptor is the per-entity schema: the field rules plus the collection
// the entity lives in. Repositories validate every create and patch against it.
type Descriptor struct {
	Entity     string
	Collection string
	Rules      []Rule
}

// ValidationError reports the first unmet constraint.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ApplyDefaults fills in absent fields in place.
func (d Descriptor) ApplyDefaults(doc bson.M) {
	for _, r := range d.Rules {
		if r.Default == nil {
			continue
		}
		if v, ok := doc[r.Name]; ok && !isZeroValue(v) {
			continue
		}
		if _, ok := r.Default.(nowSentinel); ok {
			doc[r.Name] = time.Now().UTC()
		} else {
			doc[r.Name] = r.Default
		}
	}
}

// ValidateCreate checks every rule against a full document. Defaults are
// expected to be applied already.
func (d Descriptor) ValidateCreate(doc bson.M) error {
	for _, r := range d.Rules {
		v, present := doc[r.Name]
		if !present || isZeroValue(v) {
			if r.Required {
				return invalid(r.Name, "is required")
			}
			continue
		}
		if err := r.check(v); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePatch re-validates only the fields present in the patch.
func (d Descriptor) ValidatePatch(patch bson.M) error {
	for _, r := range d.Rules {
		v, present := patch[r.Name]
		if !present {
			continue
		}
		if isZeroValue(v) {
			if r.Required {
				return invalid(r.Name, "is required")
			}
			continue
		}
		if err := r.check(v); err != nil {
			return err
		}
	}
	return nil
}

// Required reports whether the named field carries a Required rule, so
// callers can refuse to unset it.
func (d Descriptor) Required(field string) bool {
	for _, r := range d.Rules {
		if r.Name == field {
			return r.Required
		}
	}
	return false
}

func (r Rule) check(v any) error {
	if len(r.Enum) > 0 {
		s, ok := v.(string)
		if !ok {
			return invalid(r.Name, "must be a string")
		}
		if !contains(r.Enum, s) {
			return invalid(r.Name, fmt.Sprintf("%q is not an allowed value", s))
		}
	}
	if r.MinLen > 0 {
		s, ok := v.(string)
		if !ok {
			return invalid(r.Name, "must be a string")
		}
		if len(s) < r.MinLen {
			return invalid(r.Name, fmt.Sprintf("must be at least %d characters", r.MinLen))
		}
	}
	if r.Pattern != nil {
		s, ok := v.(string)
		if !ok {
			return invalid(r.Name, "must be a string")
		}
		if !r.Pattern.MatchString(s) {
			return invalid(r.Name, "has an invalid format")
		}
	}
	if r.HasMin {
		f, ok := asFloat(v)
		if !ok {
			return invalid(r.Name, "must be a number")
		}
		if f < r.Min {
			return invalid(r.Name, fmt.Sprintf("must be at least %v", r.Min))
		}
	}
	return nil
}

func contains(set []string, s string) bool {
	for _, e := range set {
		if e == s {
			return true
		}
	}
	return false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// isZeroValue treats empty strings and zero times as "absent" so struct zero
// values do not mask defaults or satisfy required checks.
func isZeroValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case time.Time:
		return t.IsZero()
	default:
		return false
	}
}
