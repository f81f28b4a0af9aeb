package service

import (
	"github.com/wb-go/wbf/ginext"
	"go.mongodb.org/mongo-driver/bson"

	"churchapi/internal/dto"
	"churchapi/internal/model"
)

func (s *Service) CreateTestimony(c *ginext.Context) {
	handleCreate(c, s.Testimonies, s.log,
		"Thank you for sharing your testimony! It will be reviewed before publishing.",
		"Failed to submit testimony")
}

func (s *Service) GetAllTestimonies(c *ginext.Context) {
	handleList(c, s.Testimonies, model.TestimonyQuery, s.log, "Failed to retrieve testimonies")
}

func (s *Service) GetFeaturedTestimonies(c *ginext.Context) {
	handleList(c, s.Testimonies, model.FeaturedTestimoniesQuery, s.log, "Failed to retrieve featured testimonies")
}

// GetTestimonyByID returns a testimony and counts the read as a view.
func (s *Service) GetTestimonyByID(c *ginext.Context) {
	id, ok := parseID(c, "Testimony")
	if !ok {
		return
	}
	testimony, err := s.Testimonies.Increment(c.Request.Context(), id, "views", 1)
	if err != nil {
		respondError(c, s.log, "Testimony", "Failed to retrieve testimony", err)
		return
	}
	dto.Success(c, "", testimony)
}

func (s *Service) UpdateTestimony(c *ginext.Context) {
	handleUpdate(c, s.Testimonies, s.log, "Testimony updated successfully", "Failed to update testimony")
}

func (s *Service) DeleteTestimony(c *ginext.Context) {
	handleDelete(c, s.Testimonies, s.log, "Testimony deleted successfully", "Failed to delete testimony")
}

// ApproveTestimony flips approved and published together in one update, so a
// testimony can never be approved without also being published.
func (s *Service) ApproveTestimony(c *ginext.Context) {
	id, ok := parseID(c, "Testimony")
	if !ok {
		return
	}
	testimony, err := s.Testimonies.Update(c.Request.Context(), id, bson.M{
		"approved":  true,
		"published": true,
	})
	if err != nil {
		respondError(c, s.log, "Testimony", "Failed to approve testimony", err)
		return
	}
	dto.Success(c, "Testimony approved and published successfully", testimony)
}

// LikeTestimony counts a like.
func (s *Service) LikeTestimony(c *ginext.Context) {
	id, ok := parseID(c, "Testimony")
	if !ok {
		return
	}
	testimony, err := s.Testimonies.Increment(c.Request.Context(), id, "likes", 1)
	if err != nil {
		respondError(c, s.log, "Testimony", "Failed to like testimony", err)
		return
	}
	c.JSON(200, dto.LikesResponse{Success: true, Likes: testimony.Likes})
}
