package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"churchapi/internal/query"
	"churchapi/internal/schema"
)

// Sermon is a published message with optional audio/video media. Views and
// downloads only ever increment.
type Sermon struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title,omitempty" json:"title"`
	Preacher     string             `bson:"preacher,omitempty" json:"preacher"`
	Date         time.Time          `bson:"date,omitempty" json:"date"`
	Scripture    string             `bson:"scripture,omitempty" json:"scripture,omitempty"`
	Description  string             `bson:"description,omitempty" json:"description"`
	AudioURL     string             `bson:"audioUrl,omitempty" json:"audioUrl,omitempty"`
	VideoURL     string             `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`
	ThumbnailURL string             `bson:"thumbnailUrl,omitempty" json:"thumbnailUrl"`
	Duration     string             `bson:"duration,omitempty" json:"duration,omitempty"`
	Category     string             `bson:"category,omitempty" json:"category"`
	Series       string             `bson:"series,omitempty" json:"series,omitempty"`
	Tags         []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Views        int                `bson:"views" json:"views"`
	Downloads    int                `bson:"downloads" json:"downloads"`
	Featured     bool               `bson:"featured" json:"featured"`
	Published    *bool              `bson:"published,omitempty" json:"published"`
	CreatedAt    time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt,omitempty" json:"updatedAt"`
}

var SermonCategories = []string{
	"Sunday Service", "Midweek Service", "Special Event",
	"Bible Study", "Conference", "Other",
}

var SermonSchema = schema.Descriptor{
	Entity:     "Sermon",
	Collection: "sermons",
	Rules: []schema.Rule{
		{Name: "title", Required: true},
		{Name: "preacher", Required: true},
		{Name: "description", Required: true},
		{Name: "date", Default: schema.Now},
		{Name: "category", Enum: SermonCategories, Default: "Sunday Service"},
		{Name: "thumbnailUrl", Default: "/images/default-sermon-thumbnail.jpg"},
		{Name: "published", Default: true},
	},
}

// Sermon search matches the term against title or preacher.
var SermonQuery = query.Spec{
	Equality: map[string]string{
		"category": "category",
		"series":   "series",
	},
	SearchFields: []string{"title", "preacher"},
	Base:         bson.M{"published": true},
	Sort:         bson.D{{Key: "date", Value: -1}},
}

var FeaturedSermonsQuery = query.Spec{
	Base:  bson.M{"featured": true, "published": true},
	Sort:  bson.D{{Key: "date", Value: -1}},
	Limit: 5,
}
