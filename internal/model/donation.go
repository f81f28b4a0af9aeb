package model

import (
	"fmt"
	"math/rand"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"churchapi/internal/query"
	"churchapi/internal/schema"
)

// Donation records a single giving transaction. paymentReference is unique
// when present and is what the payment-verification webhook looks up.
type Donation struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DonorName        string             `bson:"donorName,omitempty" json:"donorName"`
	DonorEmail       string             `bson:"donorEmail,omitempty" json:"donorEmail"`
	DonorPhone       string             `bson:"donorPhone,omitempty" json:"donorPhone,omitempty"`
	Amount           float64            `bson:"amount,omitempty" json:"amount"`
	Currency         string             `bson:"currency,omitempty" json:"currency"`
	Purpose          string             `bson:"purpose,omitempty" json:"purpose"`
	CustomPurpose    string             `bson:"customPurpose,omitempty" json:"customPurpose,omitempty"`
	PaymentMethod    string             `bson:"paymentMethod,omitempty" json:"paymentMethod"`
	PaymentReference string             `bson:"paymentReference,omitempty" json:"paymentReference,omitempty"`
	PaymentStatus    string             `bson:"paymentStatus,omitempty" json:"paymentStatus"`
	TransactionID    string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	Recurring        bool               `bson:"recurring" json:"recurring"`
	Frequency        string             `bson:"frequency,omitempty" json:"frequency"`
	Anonymous        bool               `bson:"anonymous" json:"anonymous"`
	ReceiptSent      bool               `bson:"receiptSent" json:"receiptSent"`
	ReceiptNumber    string             `bson:"receiptNumber,omitempty" json:"receiptNumber,omitempty"`
	Message          string             `bson:"message,omitempty" json:"message,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt,omitempty" json:"updatedAt"`
}

const PaymentStatusSuccessful = "Successful"

var DonationPurposes = []string{
	"Tithe", "Offering", "Building Fund", "Missions",
	"Special Project", "Seed Offering", "General", "Other",
}

var PaymentMethods = []string{"Paystack", "Bank Transfer", "Cash", "Other"}

var PaymentStatuses = []string{"Pending", "Successful", "Failed", "Refunded"}

var DonationFrequencies = []string{"One-time", "Weekly", "Monthly", "Yearly"}

var DonationSchema = schema.Descriptor{
	Entity:     "Donation",
	Collection: "donations",
	Rules: []schema.Rule{
		{Name: "donorName", Required: true},
		{Name: "donorEmail", Required: true, Pattern: emailPattern},
		{Name: "amount", Required: true, Min: 1, HasMin: true},
		{Name: "currency", Default: "NGN"},
		{Name: "purpose", Enum: DonationPurposes, Default: "General"},
		{Name: "paymentMethod", Enum: PaymentMethods, Default: "Paystack"},
		{Name: "paymentStatus", Enum: PaymentStatuses, Default: "Pending"},
		{Name: "frequency", Enum: DonationFrequencies, Default: "One-time"},
	},
}

var DonationQuery = query.Spec{
	Equality: map[string]string{
		"purpose": "purpose",
		"status":  "paymentStatus",
	},
	DateRange: true,
	Sort:      bson.D{{Key: "createdAt", Value: -1}},
}

// NewReceiptNumber formats a receipt identifier as <prefix>-<year>-<4 random
// digits>. The suffix carries no uniqueness guarantee; collisions are an
// accepted risk of the format.
func NewReceiptNumber(prefix string) string {
	return fmt.Sprintf("%s-%d-%04d", prefix, time.Now().Year(), rand.Intn(10000))
}
