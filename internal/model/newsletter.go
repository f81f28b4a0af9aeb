package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"churchapi/internal/query"
	"churchapi/internal/schema"
)

// Subscriber is a newsletter sign-up. Email is globally unique; the
// subscribed flag flips on unsubscribe/resubscribe, and resubscription
// clears unsubscribedDate.
type Subscriber struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email            string             `bson:"email,omitempty" json:"email"`
	Name             string             `bson:"name,omitempty" json:"name,omitempty"`
	Subscribed       bool               `bson:"subscribed" json:"subscribed"`
	SubscribedDate   time.Time          `bson:"subscribedDate,omitempty" json:"subscribedDate"`
	UnsubscribedDate *time.Time         `bson:"unsubscribedDate,omitempty" json:"unsubscribedDate,omitempty"`
	Source           string             `bson:"source,omitempty" json:"source"`
	CreatedAt        time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt,omitempty" json:"updatedAt"`
}

var SubscriberSources = []string{"Website", "Event", "Service", "Manual", "Other"}

var SubscriberSchema = schema.Descriptor{
	Entity:     "Subscriber",
	Collection: "newsletter",
	Rules: []schema.Rule{
		{Name: "email", Required: true, Pattern: emailPattern},
		{Name: "subscribedDate", Default: schema.Now},
		{Name: "source", Enum: SubscriberSources, Default: "Website"},
	},
}

var SubscriberQuery = query.Spec{
	Bools: map[string]string{
		"subscribed": "subscribed",
	},
	Sort: bson.D{{Key: "subscribedDate", Value: -1}},
}
