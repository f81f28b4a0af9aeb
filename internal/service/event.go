package service

import (
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/wb-go/wbf/ginext"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"churchapi/internal/dto"
	"churchapi/internal/model"
	"churchapi/internal/repo"
)

func (s *Service) CreateEvent(c *ginext.Context) {
	handleCreate(c, s.Events, s.log, "Event created successfully", "Failed to create event")
}

func (s *Service) GetAllEvents(c *ginext.Context) {
	handleList(c, s.Events, model.EventQuery, s.log, "Failed to retrieve events")
}

func (s *Service) GetUpcomingEvents(c *ginext.Context) {
	opts := model.UpcomingEventsQuery.Build(url.Values{"upcoming": {"true"}})
	events, err := s.Events.FindMany(c.Request.Context(), opts)
	if err != nil {
		respondError(c, s.log, "Event", "Failed to retrieve upcoming events", err)
		return
	}
	if events == nil {
		events = []model.Event{}
	}
	dto.List(c, len(events), events)
}

func (s *Service) GetFeaturedEvents(c *ginext.Context) {
	handleList(c, s.Events, model.FeaturedEventsQuery, s.log, "Failed to retrieve featured events")
}

func (s *Service) GetEventByID(c *ginext.Context) {
	handleGet(c, s.Events, s.log, "Failed to retrieve event")
}

func (s *Service) UpdateEvent(c *ginext.Context) {
	handleUpdate(c, s.Events, s.log, "Event updated successfully", "Failed to update event")
}

func (s *Service) DeleteEvent(c *ginext.Context) {
	handleDelete(c, s.Events, s.log, "Event deleted successfully", "Failed to delete event")
}

// registrationFilter guards the atomic registration increment: the event must
// still have room when the update lands, so two racing registrations can
// never exceed capacity.
func registrationFilter(id primitive.ObjectID) bson.M {
	return bson.M{
		"_id": id,
		"$or": bson.A{
			bson.M{"capacity": bson.M{"$exists": false}},
			bson.M{"capacity": nil},
			bson.M{"capacity": 0},
			bson.M{"$expr": bson.M{"$lt": bson.A{"$registeredCount", "$capacity"}}},
		},
	}
}

// RegisterForEvent accepts a registration when the event requires one, has
// room, and the deadline has not passed. The count is bumped with a guarded
// atomic increment rather than a read-modify-write.
func (s *Service) RegisterForEvent(c *ginext.Context) {
	id, ok := parseID(c, "Event")
	if !ok {
		return
	}

	event, err := s.Events.FindOne(c.Request.Context(), id)
	if err != nil {
		respondError(c, s.log, "Event", "Failed to register for event", err)
		return
	}

	if !event.RegistrationRequired {
		dto.BadRequest(c, "This event does not require registration")
		return
	}
	if event.Capacity > 0 && event.RegisteredCount >= event.Capacity {
		dto.BadRequest(c, "Event is at full capacity")
		return
	}
	if !event.RegistrationDeadline.IsZero() && time.Now().After(event.RegistrationDeadline) {
		dto.BadRequest(c, "Registration deadline has passed")
		return
	}

	updated, err := s.Events.IncrementWhere(c.Request.Context(), registrationFilter(id), "registeredCount", 1)
	if err != nil {
		// The guard filter matched nothing: a concurrent registration took
		// the last seat between the read and the increment.
		if errors.Is(err, repo.ErrNotFound) {
			dto.BadRequest(c, "Event is at full capacity")
			return
		}
		respondError(c, s.log, "Event", "Failed to register for event", err)
		return
	}

	s.log.Info().
		Str("event_id", id.Hex()).
		Int("registered_count", updated.RegisteredCount).
		Msg("event registration accepted")

	dto.Success(c, "Successfully registered for event", dto.RegistrationResponse{
		EventTitle:      updated.Title,
		RegisteredCount: updated.RegisteredCount,
	})
}
