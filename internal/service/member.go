package service

import (
	"github.com/pkg/errors"
	"github.com/wb-go/wbf/ginext"
	"go.mongodb.org/mongo-driver/bson"

	"churchapi/internal/dto"
	"churchapi/internal/model"
	"churchapi/internal/repo"
)

// RegisterMember creates a membership record pending approval. The email
// pre-check keeps the original 400 message; the unique index on email is the
// backstop when two registrations race past the check.
func (s *Service) RegisterMember(c *ginext.Context) {
	var member model.Member
	if err := c.ShouldBindJSON(&member); err != nil {
		dto.BadRequest(c, "Invalid JSON format")
		return
	}

	if member.Email != "" {
		_, err := s.Members.FindOneBy(c.Request.Context(), bson.M{"email": member.Email})
		if err == nil {
			dto.BadRequest(c, "A member with this email already exists")
			return
		}
		if !errors.Is(err, repo.ErrNotFound) {
			respondError(c, s.log, "Member", "Failed to register member", err)
			return
		}
	}

	stored, err := s.Members.Create(c.Request.Context(), &member)
	if err != nil {
		respondError(c, s.log, "Member", "Failed to register member", err)
		return
	}
	dto.Created(c, "Thank you for registering! Your membership is pending approval.", stored)
}

func (s *Service) GetAllMembers(c *ginext.Context) {
	handleList(c, s.Members, model.MemberQuery, s.log, "Failed to retrieve members")
}

func (s *Service) GetMemberByID(c *ginext.Context) {
	handleGet(c, s.Members, s.log, "Failed to retrieve member")
}

func (s *Service) UpdateMember(c *ginext.Context) {
	handleUpdate(c, s.Members, s.log, "Member updated successfully", "Failed to update member")
}

func (s *Service) DeleteMember(c *ginext.Context) {
	handleDelete(c, s.Members, s.log, "Member deleted successfully", "Failed to delete member")
}

// ApproveMember sets the member Active regardless of prior status; approving
// an already-Active member is accepted.
func (s *Service) ApproveMember(c *ginext.Context) {
	id, ok := parseID(c, "Member")
	if !ok {
		return
	}
	member, err := s.Members.Update(c.Request.Context(), id, bson.M{"status": model.MemberStatusActive})
	if err != nil {
		respondError(c, s.log, "Member", "Failed to approve member", err)
		return
	}
	dto.Success(c, "Member approved successfully", member)
}
