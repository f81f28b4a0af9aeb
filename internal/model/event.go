package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"churchapi/internal/query"
	"churchapi/internal/schema"
)

// Organizer is the contact person attached to an event.
type Organizer struct {
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Email string `bson:"email,omitempty" json:"email,omitempty"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// Event is a scheduled church program. A zero Capacity means unlimited;
// registeredCount only ever moves up, through the registration endpoint.
type Event struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title                string             `bson:"title,omitempty" json:"title"`
	Description          string             `bson:"description,omitempty" json:"description"`
	StartDate            time.Time          `bson:"startDate,omitempty" json:"startDate"`
	EndDate              time.Time          `bson:"endDate,omitempty" json:"endDate,omitempty"`
	StartTime            string             `bson:"startTime,omitempty" json:"startTime"`
	EndTime              string             `bson:"endTime,omitempty" json:"endTime,omitempty"`
	Location             string             `bson:"location,omitempty" json:"location"`
	Address              string             `bson:"address,omitempty" json:"address,omitempty"`
	Category             string             `bson:"category,omitempty" json:"category"`
	ImageURL             string             `bson:"imageUrl,omitempty" json:"imageUrl"`
	Organizer            *Organizer         `bson:"organizer,omitempty" json:"organizer,omitempty"`
	RegistrationRequired bool               `bson:"registrationRequired" json:"registrationRequired"`
	RegistrationDeadline time.Time          `bson:"registrationDeadline,omitempty" json:"registrationDeadline,omitempty"`
	RegistrationLink     string             `bson:"registrationLink,omitempty" json:"registrationLink,omitempty"`
	Capacity             int                `bson:"capacity,omitempty" json:"capacity,omitempty"`
	RegisteredCount      int                `bson:"registeredCount" json:"registeredCount"`
	Price                float64            `bson:"price" json:"price"`
	Featured             bool               `bson:"featured" json:"featured"`
	Published            *bool              `bson:"published,omitempty" json:"published"`
	Tags                 []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	CreatedAt            time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt,omitempty" json:"updatedAt"`
}

var EventCategories = []string{
	"Service", "Conference", "Seminar", "Outreach", "Youth Event",
	"Prayer Meeting", "Bible Study", "Fellowship", "Special Program", "Other",
}

var EventSchema = schema.Descriptor{
	Entity:     "Event",
	Collection: "events",
	Rules: []schema.Rule{
		{Name: "title", Required: true},
		{Name: "description", Required: true},
		{Name: "startDate", Required: true},
		{Name: "startTime", Required: true},
		{Name: "location", Required: true},
		{Name: "category", Enum: EventCategories, Default: "Service"},
		{Name: "imageUrl", Default: "/images/default-event-image.jpg"},
		{Name: "published", Default: true},
	},
}

// Public event listings sort soonest first and never expose unpublished
// records.
var EventQuery = query.Spec{
	Equality: map[string]string{
		"category": "category",
	},
	TimeWindowField: "startDate",
	Base:            bson.M{"published": true},
	Sort:            bson.D{{Key: "startDate", Value: 1}},
}

var UpcomingEventsQuery = query.Spec{
	TimeWindowField: "startDate",
	Base:            bson.M{"published": true},
	Sort:            bson.D{{Key: "startDate", Value: 1}},
	Limit:           10,
}

var FeaturedEventsQuery = query.Spec{
	Base:  bson.M{"featured": true, "published": true},
	Sort:  bson.D{{Key: "startDate", Value: 1}},
	Limit: 5,
}
