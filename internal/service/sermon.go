package service

import (
	"github.com/wb-go/wbf/ginext"

	"churchapi/internal/dto"
	"churchapi/internal/model"
)

func (s *Service) CreateSermon(c *ginext.Context) {
	handleCreate(c, s.Sermons, s.log, "Sermon created successfully", "Failed to create sermon")
}

func (s *Service) GetAllSermons(c *ginext.Context) {
	handleList(c, s.Sermons, model.SermonQuery, s.log, "Failed to retrieve sermons")
}

func (s *Service) GetFeaturedSermons(c *ginext.Context) {
	handleList(c, s.Sermons, model.FeaturedSermonsQuery, s.log, "Failed to retrieve featured sermons")
}

// GetSermonByID returns a sermon and counts the read as a view. The counter
// is bumped atomically at the store, so the response always carries the
// post-increment value.
func (s *Service) GetSermonByID(c *ginext.Context) {
	id, ok := parseID(c, "Sermon")
	if !ok {
		return
	}
	sermon, err := s.Sermons.Increment(c.Request.Context(), id, "views", 1)
	if err != nil {
		respondError(c, s.log, "Sermon", "Failed to retrieve sermon", err)
		return
	}
	dto.Success(c, "", sermon)
}

func (s *Service) UpdateSermon(c *ginext.Context) {
	handleUpdate(c, s.Sermons, s.log, "Sermon updated successfully", "Failed to update sermon")
}

func (s *Service) DeleteSermon(c *ginext.Context) {
	handleDelete(c, s.Sermons, s.log, "Sermon deleted successfully", "Failed to delete sermon")
}

// IncrementDownloads counts a sermon download.
func (s *Service) IncrementDownloads(c *ginext.Context) {
	id, ok := parseID(c, "Sermon")
	if !ok {
		return
	}
	sermon, err := s.Sermons.Increment(c.Request.Context(), id, "downloads", 1)
	if err != nil {
		respondError(c, s.log, "Sermon", "Failed to update download count", err)
		return
	}
	c.JSON(200, dto.DownloadsResponse{
		Success:   true,
		Message:   "Download count updated",
		Downloads: sermon.Downloads,
	})
}
