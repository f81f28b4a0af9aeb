package model

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestNewReceiptNumberFormat(t *testing.T) {
	format := regexp.MustCompile(`^GRHCG-\d{4}-\d{4}$`)
	for i := 0; i < 50; i++ {
		rn := NewReceiptNumber("GRHCG")
		assert.Regexp(t, format, rn)
	}
}

func TestNewReceiptNumberUsesCurrentYear(t *testing.T) {
	rn := NewReceiptNumber("ORG")
	year := regexp.MustCompile(`-(\d{4})-`).FindStringSubmatch(rn)
	require.Len(t, year, 2)
	assert.Equal(t, time.Now().Format("2006"), year[1])
}

func TestContactSchemaRejectsShortMessage(t *testing.T) {
	doc := bson.M{
		"name":    "Jane",
		"email":   "jane@x.com",
		"subject": "Hello",
		"message": "too short",
	}
	ContactSchema.ApplyDefaults(doc)
	require.Error(t, ContactSchema.ValidateCreate(doc))

	doc["message"] = "this message is long enough"
	require.NoError(t, ContactSchema.ValidateCreate(doc))
}

func TestContactSchemaDefaults(t *testing.T) {
	doc := bson.M{}
	ContactSchema.ApplyDefaults(doc)
	assert.Equal(t, "General Inquiry", doc["type"])
	assert.Equal(t, "New", doc["status"])
}

func TestDonationSchemaAmountFloor(t *testing.T) {
	doc := bson.M{
		"donorName":  "John",
		"donorEmail": "john@x.com",
		"amount":     0.0,
	}
	DonationSchema.ApplyDefaults(doc)
	require.Error(t, DonationSchema.ValidateCreate(doc))

	doc["amount"] = 100.0
	require.NoError(t, DonationSchema.ValidateCreate(doc))
}

func TestDonationSchemaDefaults(t *testing.T) {
	doc := bson.M{}
	DonationSchema.ApplyDefaults(doc)
	assert.Equal(t, "NGN", doc["currency"])
	assert.Equal(t, "General", doc["purpose"])
	assert.Equal(t, "Paystack", doc["paymentMethod"])
	assert.Equal(t, "Pending", doc["paymentStatus"])
	assert.Equal(t, "One-time", doc["frequency"])
}

func TestDonationSchemaRejectsUnknownPurpose(t *testing.T) {
	doc := bson.M{
		"donorName":  "John",
		"donorEmail": "john@x.com",
		"amount":     50.0,
		"purpose":    "Lottery",
	}
	DonationSchema.ApplyDefaults(doc)
	require.Error(t, DonationSchema.ValidateCreate(doc))
}

func TestEventSchemaPublishedDefault(t *testing.T) {
	doc := bson.M{
		"title":       "Easter Service",
		"description": "Annual Easter service",
		"startDate":   time.Now().Add(24 * time.Hour),
		"startTime":   "09:00",
		"location":    "Main Hall",
	}
	EventSchema.ApplyDefaults(doc)
	require.NoError(t, EventSchema.ValidateCreate(doc))
	assert.Equal(t, true, doc["published"])
	assert.Equal(t, "Service", doc["category"])
}

func TestPublicGates(t *testing.T) {
	assert.Equal(t, true, EventQuery.Base["published"])
	assert.Equal(t, true, SermonQuery.Base["published"])
	assert.Equal(t, true, TestimonyQuery.Base["published"])
	assert.Equal(t, true, TestimonyQuery.Base["approved"])
	assert.Equal(t, true, FeaturedTestimoniesQuery.Base["featured"])
}

func TestFixedLimits(t *testing.T) {
	assert.Equal(t, int64(10), UpcomingEventsQuery.Limit)
	assert.Equal(t, int64(5), FeaturedEventsQuery.Limit)
	assert.Equal(t, int64(5), FeaturedSermonsQuery.Limit)
	assert.Equal(t, int64(5), FeaturedTestimoniesQuery.Limit)
}

func TestTestimonySchemaContentLength(t *testing.T) {
	doc := bson.M{
		"name":    "Mary",
		"title":   "Healed",
		"content": "short story",
	}
	TestimonySchema.ApplyDefaults(doc)
	require.Error(t, TestimonySchema.ValidateCreate(doc))

	doc["content"] = "a testimony long enough to pass the floor"
	require.NoError(t, TestimonySchema.ValidateCreate(doc))
}

func TestMemberSchemaDefaults(t *testing.T) {
	doc := bson.M{
		"firstName": "Ada",
		"lastName":  "Obi",
		"email":     "ada@x.com",
		"phone":     "0800000000",
	}
	MemberSchema.ApplyDefaults(doc)
	require.NoError(t, MemberSchema.ValidateCreate(doc))

	assert.Equal(t, "New Member", doc["membershipType"])
	assert.Equal(t, "Pending Approval", doc["status"])
	_, ok := doc["joinDate"].(time.Time)
	assert.True(t, ok)
}
