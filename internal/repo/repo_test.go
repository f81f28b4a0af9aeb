package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"churchapi/internal/model"
	"churchapi/internal/schema"
)

func TestSplitPatchSeparatesSetAndUnset(t *testing.T) {
	set, unset, err := splitPatch(model.SubscriberSchema, bson.M{
		"subscribed":       true,
		"unsubscribedDate": nil,
	})
	require.NoError(t, err)

	assert.Equal(t, bson.M{"subscribed": true}, set)
	assert.Equal(t, bson.M{"unsubscribedDate": ""}, unset)
}

func TestSplitPatchRejectsNullOnRequiredField(t *testing.T) {
	_, _, err := splitPatch(model.DonationSchema, bson.M{"donorName": nil})
	require.Error(t, err)

	var vErr *schema.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "donorName", vErr.Field)
}

func TestSplitPatchRejectsEmptyRequiredField(t *testing.T) {
	_, _, err := splitPatch(model.DonationSchema, bson.M{"donorName": ""})
	require.Error(t, err)
}

func TestSplitPatchSkipsProtectedFields(t *testing.T) {
	set, unset, err := splitPatch(model.ContactSchema, bson.M{
		"_id":       "attacker-controlled",
		"createdAt": "2001-01-01",
		"updatedAt": nil,
		"status":    "Resolved",
	})
	require.NoError(t, err)

	assert.Equal(t, bson.M{"status": "Resolved"}, set)
	assert.Empty(t, unset)
}

func TestSplitPatchValidatesSetFields(t *testing.T) {
	_, _, err := splitPatch(model.DonationSchema, bson.M{"purpose": "Lottery"})
	require.Error(t, err)
}
