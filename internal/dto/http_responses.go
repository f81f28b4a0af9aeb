package dto

import (
	"github.com/wb-go/wbf/ginext"
)

// Response is the uniform envelope every endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// DonationListResponse adds the running total over Successful donations to
// the plain list envelope.
type DonationListResponse struct {
	Success     bool    `json:"success"`
	Count       int     `json:"count"`
	TotalAmount float64 `json:"totalAmount"`
	Data        any     `json:"data"`
}

// PurposeStat is one donation-statistics group: Successful donations for a
// single purpose, summed and counted.
type PurposeStat struct {
	Purpose string  `bson:"_id" json:"purpose"`
	Total   float64 `bson:"total" json:"total"`
	Count   int     `bson:"count" json:"count"`
}

// StatsResponse carries the ordered purpose groups plus the grand total.
type StatsResponse struct {
	Success      bool          `json:"success"`
	OverallTotal float64       `json:"overallTotal"`
	Data         []PurposeStat `json:"data"`
}

// DownloadsResponse answers the sermon download counter endpoint with the
// post-increment value.
type DownloadsResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Downloads int    `json:"downloads"`
}

// LikesResponse answers the testimony like endpoint with the post-increment
// value.
type LikesResponse struct {
	Success bool `json:"success"`
	Likes   int  `json:"likes"`
}

// RegistrationResponse answers a successful event registration.
type RegistrationResponse struct {
	EventTitle      string `json:"eventTitle"`
	RegisteredCount int    `json:"registeredCount"`
}

type CreateContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required,min=10"`
	Type    string `json:"type"`
}

type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
}

type UnsubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyPaymentRequest struct {
	Reference string `json:"reference" validate:"required"`
}

// EmailTask is the message the notification worker consumes. Kind selects
// the mail template; DonationID is set for receipts, Email/Name for welcome
// mail.
type EmailTask struct {
	Kind       string `json:"kind" validate:"required"`
	DonationID string `json:"donation_id,omitempty" validate:"omitempty,objectid"`
	Email      string `json:"email,omitempty" validate:"omitempty,email"`
	Name       string `json:"name,omitempty"`
}

const (
	EmailTaskReceipt = "donation_receipt"
	EmailTaskWelcome = "newsletter_welcome"
)

// Success sends a 200 envelope with a payload.
func Success(c *ginext.Context, message string, data any) {
	c.JSON(200, Response{Success: true, Message: message, Data: data})
}

// Created sends a 201 envelope with the stored record.
func Created(c *ginext.Context, message string, data any) {
	c.JSON(201, Response{Success: true, Message: message, Data: data})
}

// List sends a 200 envelope with the record count alongside the records.
func List(c *ginext.Context, count int, data any) {
	c.JSON(200, Response{Success: true, Count: &count, Data: data})
}

// NotFound sends the uniform 404 envelope for an unresolved identity.
func NotFound(c *ginext.Context, entity string) {
	c.JSON(404, Response{Success: false, Message: entity + " not found"})
}

// BadRequest sends a 400 envelope with the rejection reason.
func BadRequest(c *ginext.Context, message string) {
	c.JSON(400, Response{Success: false, Message: message})
}

// Internal sends a 500 envelope carrying the underlying failure description.
func Internal(c *ginext.Context, message string, err error) {
	resp := Response{Success: false, Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(500, resp)
}

// RouteNotFound answers unmatched routes with the uniform envelope.
func RouteNotFound(c *ginext.Context) {
	c.JSON(404, Response{Success: false, Message: "Route not found"})
}
