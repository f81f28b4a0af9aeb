package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"churchapi/internal/query"
	"churchapi/internal/schema"
)

// Address is a member's postal address.
type Address struct {
	Street  string `bson:"street,omitempty" json:"street,omitempty"`
	City    string `bson:"city,omitempty" json:"city,omitempty"`
	State   string `bson:"state,omitempty" json:"state,omitempty"`
	Country string `bson:"country,omitempty" json:"country,omitempty"`
}

// EmergencyContact is the person to reach on a member's behalf.
type EmergencyContact struct {
	Name         string `bson:"name,omitempty" json:"name,omitempty"`
	Relationship string `bson:"relationship,omitempty" json:"relationship,omitempty"`
	Phone        string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// Member is a registered congregation member. Email is globally unique;
// new registrations start as Pending Approval.
type Member struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName        string             `bson:"firstName,omitempty" json:"firstName"`
	LastName         string             `bson:"lastName,omitempty" json:"lastName"`
	Email            string             `bson:"email,omitempty" json:"email"`
	Phone            string             `bson:"phone,omitempty" json:"phone"`
	DateOfBirth      time.Time          `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	Gender           string             `bson:"gender,omitempty" json:"gender,omitempty"`
	Address          *Address           `bson:"address,omitempty" json:"address,omitempty"`
	MembershipType   string             `bson:"membershipType,omitempty" json:"membershipType"`
	JoinDate         time.Time          `bson:"joinDate,omitempty" json:"joinDate"`
	Baptized         bool               `bson:"baptized" json:"baptized"`
	BaptismDate      time.Time          `bson:"baptismDate,omitempty" json:"baptismDate,omitempty"`
	Ministries       []string           `bson:"ministries,omitempty" json:"ministries,omitempty"`
	Skills           []string           `bson:"skills,omitempty" json:"skills,omitempty"`
	EmergencyContact *EmergencyContact  `bson:"emergencyContact,omitempty" json:"emergencyContact,omitempty"`
	Status           string             `bson:"status,omitempty" json:"status"`
	PhotoURL         string             `bson:"photoUrl,omitempty" json:"photoUrl"`
	Notes            string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt,omitempty" json:"updatedAt"`
}

var Genders = []string{"Male", "Female"}

var MembershipTypes = []string{"New Member", "Active Member", "Youth", "Children", "Visitor"}

var MemberStatuses = []string{"Active", "Inactive", "Transferred", "Pending Approval"}

const MemberStatusActive = "Active"

var MemberSchema = schema.Descriptor{
	Entity:     "Member",
	Collection: "members",
	Rules: []schema.Rule{
		{Name: "firstName", Required: true},
		{Name: "lastName", Required: true},
		{Name: "email", Required: true, Pattern: emailPattern},
		{Name: "phone", Required: true},
		{Name: "gender", Enum: Genders},
		{Name: "membershipType", Enum: MembershipTypes, Default: "New Member"},
		{Name: "joinDate", Default: schema.Now},
		{Name: "status", Enum: MemberStatuses, Default: "Pending Approval"},
		{Name: "photoUrl", Default: "/images/default-profile.jpg"},
	},
}

var MemberQuery = query.Spec{
	Equality: map[string]string{
		"status": "status",
		"type":   "membershipType",
	},
	Sort: bson.D{{Key: "createdAt", Value: -1}},
}
