package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"churchapi/internal/query"
	"churchapi/internal/schema"
)

// Contact is a message submitted through the public contact form.
type Contact struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name,omitempty" json:"name"`
	Email     string             `bson:"email,omitempty" json:"email"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Subject   string             `bson:"subject,omitempty" json:"subject"`
	Message   string             `bson:"message,omitempty" json:"message"`
	Type      string             `bson:"type,omitempty" json:"type"`
	Status    string             `bson:"status,omitempty" json:"status"`
	Responded bool               `bson:"responded" json:"responded"`
	CreatedAt time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt,omitempty" json:"updatedAt"`
}

var ContactTypes = []string{"General Inquiry", "Prayer Request", "Counseling", "Partnership", "Other"}

var ContactStatuses = []string{"New", "In Progress", "Resolved"}

var ContactSchema = schema.Descriptor{
	Entity:     "Contact",
	Collection: "contacts",
	Rules: []schema.Rule{
		{Name: "name", Required: true},
		{Name: "email", Required: true, Pattern: emailPattern},
		{Name: "subject", Required: true},
		{Name: "message", Required: true, MinLen: 10},
		{Name: "type", Enum: ContactTypes, Default: "General Inquiry"},
		{Name: "status", Enum: ContactStatuses, Default: "New"},
	},
}

var ContactQuery = query.Spec{
	Equality: map[string]string{
		"status": "status",
		"type":   "type",
	},
	Sort: bson.D{{Key: "createdAt", Value: -1}},
}
