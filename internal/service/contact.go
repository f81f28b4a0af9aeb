package service

import (
	"github.com/wb-go/wbf/ginext"

	"churchapi/internal/dto"
	"churchapi/internal/model"
	"churchapi/pkg/validator"
)

// CreateContact handles the public contact form. Unlike the other resources
// it rejects missing required fields with an explicit 400 before touching
// the store.
func (s *Service) CreateContact(c *ginext.Context) {
	var req dto.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "Please provide all required fields")
		return
	}
	if err := validator.Validate(c.Request.Context(), req); err != nil {
		dto.BadRequest(c, "Please provide all required fields")
		return
	}

	contact := model.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
		Type:    req.Type,
	}
	stored, err := s.Contacts.Create(c.Request.Context(), &contact)
	if err != nil {
		respondError(c, s.log, "Contact", "Failed to submit contact form", err)
		return
	}
	dto.Created(c, "Thank you! Your message has been received.", stored)
}

func (s *Service) GetAllContacts(c *ginext.Context) {
	handleList(c, s.Contacts, model.ContactQuery, s.log, "Failed to retrieve contacts")
}

func (s *Service) GetContactByID(c *ginext.Context) {
	handleGet(c, s.Contacts, s.log, "Failed to retrieve contact")
}

func (s *Service) UpdateContact(c *ginext.Context) {
	handleUpdate(c, s.Contacts, s.log, "Contact updated successfully", "Failed to update contact")
}

func (s *Service) DeleteContact(c *ginext.Context) {
	handleDelete(c, s.Contacts, s.log, "Contact deleted successfully", "Failed to delete contact")
}
