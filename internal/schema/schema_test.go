package schema

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

var testDesc = Descriptor{
	Entity:     "Widget",
	Collection: "widgets",
	Rules: []Rule{
		{Name: "name", Required: true},
		{Name: "email", Required: true, Pattern: regexp.MustCompile(`^\S+@\S+\.\S+$`)},
		{Name: "note", MinLen: 10},
		{Name: "amount", Required: true, Min: 1, HasMin: true},
		{Name: "kind", Enum: []string{"A", "B"}, Default: "A"},
		{Name: "joined", Default: Now},
		{Name: "color", Default: "blue"},
	},
}

func validDoc() bson.M {
	return bson.M{
		"name":   "thing",
		"email":  "a@x.com",
		"amount": 5.0,
		"kind":   "B",
	}
}

func TestValidateCreateAccepts(t *testing.T) {
	doc := validDoc()
	testDesc.ApplyDefaults(doc)
	require.NoError(t, testDesc.ValidateCreate(doc))
}

func TestValidateCreateRequired(t *testing.T) {
	doc := validDoc()
	delete(doc, "name")
	err := testDesc.ValidateCreate(doc)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
}

func TestValidateCreateTreatsEmptyStringAsAbsent(t *testing.T) {
	doc := validDoc()
	doc["name"] = ""
	require.Error(t, testDesc.ValidateCreate(doc))
}

func TestValidateCreateEnum(t *testing.T) {
	doc := validDoc()
	doc["kind"] = "C"
	err := testDesc.ValidateCreate(doc)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "kind", verr.Field)
}

func TestValidateCreateMinLen(t *testing.T) {
	doc := validDoc()
	doc["note"] = "short"
	require.Error(t, testDesc.ValidateCreate(doc))

	doc["note"] = "long enough text"
	require.NoError(t, testDesc.ValidateCreate(doc))
}

func TestValidateCreateNumericMin(t *testing.T) {
	doc := validDoc()
	doc["amount"] = 0.5
	require.Error(t, testDesc.ValidateCreate(doc))

	doc["amount"] = int64(3)
	require.NoError(t, testDesc.ValidateCreate(doc))
}

func TestValidateCreatePattern(t *testing.T) {
	doc := validDoc()
	doc["email"] = "not-an-email"
	err := testDesc.ValidateCreate(doc)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)
}

func TestApplyDefaults(t *testing.T) {
	doc := bson.M{"name": "thing"}
	testDesc.ApplyDefaults(doc)

	assert.Equal(t, "A", doc["kind"])
	assert.Equal(t, "blue", doc["color"])

	joined, ok := doc["joined"].(time.Time)
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().UTC(), joined, time.Minute)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	doc := bson.M{"kind": "B", "color": "red"}
	testDesc.ApplyDefaults(doc)

	assert.Equal(t, "B", doc["kind"])
	assert.Equal(t, "red", doc["color"])
}

func TestValidatePatchChecksOnlyPresentFields(t *testing.T) {
	// amount is required but absent from the patch: no error.
	require.NoError(t, testDesc.ValidatePatch(bson.M{"kind": "A"}))

	// A supplied field still has to satisfy its rule.
	require.Error(t, testDesc.ValidatePatch(bson.M{"kind": "C"}))

	// Blanking a required field is rejected.
	require.Error(t, testDesc.ValidatePatch(bson.M{"name": ""}))
}
