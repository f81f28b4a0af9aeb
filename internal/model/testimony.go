package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"churchapi/internal/query"
	"churchapi/internal/schema"
)

// Testimony is a member-submitted story. It stays unpublished until an
// administrator approves it; approval always publishes.
type Testimony struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name,omitempty" json:"name"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Title     string             `bson:"title,omitempty" json:"title"`
	Content   string             `bson:"content,omitempty" json:"content"`
	Category  string             `bson:"category,omitempty" json:"category"`
	PhotoURL  string             `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	VideoURL  string             `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`
	Approved  bool               `bson:"approved" json:"approved"`
	Featured  bool               `bson:"featured" json:"featured"`
	Published bool               `bson:"published" json:"published"`
	Likes     int                `bson:"likes" json:"likes"`
	Views     int                `bson:"views" json:"views"`
	CreatedAt time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt,omitempty" json:"updatedAt"`
}

var TestimonyCategories = []string{
	"Healing", "Salvation", "Financial Breakthrough", "Deliverance",
	"Answered Prayer", "Marriage/Family", "Career/Business", "Protection", "Other",
}

var TestimonySchema = schema.Descriptor{
	Entity:     "Testimony",
	Collection: "testimonies",
	Rules: []schema.Rule{
		{Name: "name", Required: true},
		{Name: "title", Required: true},
		{Name: "content", Required: true, MinLen: 20},
		{Name: "category", Enum: TestimonyCategories, Default: "Other"},
	},
}

// Public testimony listings require both the approved and published gates.
var TestimonyQuery = query.Spec{
	Equality: map[string]string{
		"category": "category",
	},
	Base: bson.M{"published": true, "approved": true},
	Sort: bson.D{{Key: "createdAt", Value: -1}},
}

var FeaturedTestimoniesQuery = query.Spec{
	Base:  bson.M{"featured": true, "published": true, "approved": true},
	Sort:  bson.D{{Key: "createdAt", Value: -1}},
	Limit: 5,
}
