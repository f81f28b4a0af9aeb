package service

import (
	"time"

	"github.com/pkg/errors"
	"github.com/wb-go/wbf/ginext"
	"go.mongodb.org/mongo-driver/bson"

	"churchapi/internal/dto"
	"churchapi/internal/model"
	"churchapi/internal/repo"
	"churchapi/pkg/validator"
)

// Subscribe signs an email up for the newsletter. A known, unsubscribed
// email is flipped back on (clearing unsubscribedDate); a known, subscribed
// one is rejected; anything else becomes a new subscriber.
func (s *Service) Subscribe(c *ginext.Context) {
	var req dto.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "Invalid JSON format")
		return
	}
	if err := validator.Validate(c.Request.Context(), req); err != nil {
		dto.BadRequest(c, "Please provide a valid email")
		return
	}

	existing, err := s.Subscribers.FindOneBy(c.Request.Context(), bson.M{"email": req.Email})
	switch {
	case err == nil:
		if existing.Subscribed {
			dto.BadRequest(c, "This email is already subscribed")
			return
		}
		updated, err := s.Subscribers.Update(c.Request.Context(), existing.ID, bson.M{
			"subscribed":       true,
			"subscribedDate":   time.Now().UTC(),
			"unsubscribedDate": nil,
		})
		if err != nil {
			respondError(c, s.log, "Subscriber", "Failed to subscribe", err)
			return
		}
		dto.Success(c, "Successfully resubscribed to newsletter!", updated)
		return

	case errors.Is(err, repo.ErrNotFound):
		subscriber := model.Subscriber{
			Email:      req.Email,
			Name:       req.Name,
			Subscribed: true,
		}
		stored, err := s.Subscribers.Create(c.Request.Context(), &subscriber)
		if err != nil {
			respondError(c, s.log, "Subscriber", "Failed to subscribe", err)
			return
		}
		s.publishEmailTask(dto.EmailTask{Kind: dto.EmailTaskWelcome, Email: stored.Email, Name: stored.Name})
		dto.Created(c, "Successfully subscribed to newsletter!", stored)
		return

	default:
		respondError(c, s.log, "Subscriber", "Failed to subscribe", err)
	}
}

// Unsubscribe flips the flag off and stamps unsubscribedDate.
func (s *Service) Unsubscribe(c *ginext.Context) {
	var req dto.UnsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "Invalid JSON format")
		return
	}
	if err := validator.Validate(c.Request.Context(), req); err != nil {
		dto.BadRequest(c, "Please provide a valid email")
		return
	}

	subscriber, err := s.Subscribers.FindOneBy(c.Request.Context(), bson.M{"email": req.Email})
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			c.JSON(404, dto.Response{Success: false, Message: "Email not found in our subscriber list"})
			return
		}
		respondError(c, s.log, "Subscriber", "Failed to unsubscribe", err)
		return
	}
	if !subscriber.Subscribed {
		dto.BadRequest(c, "This email is already unsubscribed")
		return
	}

	if _, err := s.Subscribers.Update(c.Request.Context(), subscriber.ID, bson.M{
		"subscribed":       false,
		"unsubscribedDate": time.Now().UTC(),
	}); err != nil {
		respondError(c, s.log, "Subscriber", "Failed to unsubscribe", err)
		return
	}
	dto.Success(c, "Successfully unsubscribed from newsletter", nil)
}

func (s *Service) GetAllSubscribers(c *ginext.Context) {
	handleList(c, s.Subscribers, model.SubscriberQuery, s.log, "Failed to retrieve subscribers")
}

func (s *Service) DeleteSubscriber(c *ginext.Context) {
	handleDelete(c, s.Subscribers, s.log, "Subscriber deleted successfully", "Failed to delete subscriber")
}
