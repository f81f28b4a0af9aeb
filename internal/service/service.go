// Package service holds the HTTP handlers for the seven resource kinds. The
// CRUD shape is generic — one implementation parameterized by each resource's
// repository and query spec — with the resource-specific behaviors (counters,
// registration, subscription flow, payment verification) layered per entity.
package service

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/ginext"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"churchapi/internal/dto"
	"churchapi/internal/model"
	"churchapi/internal/query"
	"churchapi/internal/rabbit"
	"churchapi/internal/repo"
	"churchapi/internal/schema"
)

type Service struct {
	Contacts    *repo.Repository[model.Contact]
	Donations   *repo.Repository[model.Donation]
	Events      *repo.Repository[model.Event]
	Members     *repo.Repository[model.Member]
	Subscribers *repo.Repository[model.Subscriber]
	Sermons     *repo.Repository[model.Sermon]
	Testimonies *repo.Repository[model.Testimony]

	log           *zerolog.Logger
	rbt           *rabbit.Client
	receiptPrefix string
}

// New wires one repository per entity kind over the shared database handle.
// rbt may be nil, in which case email tasks are silently skipped.
func New(db *mongo.Database, log *zerolog.Logger, rbt *rabbit.Client, receiptPrefix string) *Service {
	s := &Service{
		log:           log,
		rbt:           rbt,
		receiptPrefix: receiptPrefix,
	}
	if db != nil {
		s.Contacts = repo.New[model.Contact](db, model.ContactSchema, log)
		s.Donations = repo.New[model.Donation](db, model.DonationSchema, log)
		s.Events = repo.New[model.Event](db, model.EventSchema, log)
		s.Members = repo.New[model.Member](db, model.MemberSchema, log)
		s.Subscribers = repo.New[model.Subscriber](db, model.SubscriberSchema, log)
		s.Sermons = repo.New[model.Sermon](db, model.SermonSchema, log)
		s.Testimonies = repo.New[model.Testimony](db, model.TestimonySchema, log)
	}
	return s
}

// parseID turns the :id path parameter into an ObjectID. A malformed id can
// never resolve to a record, so it answers the uniform 404 envelope.
func parseID(c *ginext.Context, entity string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		dto.NotFound(c, entity)
		return primitive.NilObjectID, false
	}
	return id, true
}

// respondError maps a repository failure onto the envelope: unresolved
// identities become 404, schema violations and duplicate unique fields 400,
// everything else a 500 carrying the failure text.
func respondError(c *ginext.Context, log *zerolog.Logger, entity, failMsg string, err error) {
	var vErr *schema.ValidationError
	switch {
	case errors.Is(err, repo.ErrNotFound):
		dto.NotFound(c, entity)
	case errors.As(err, &vErr):
		dto.BadRequest(c, vErr.Error())
	case errors.Is(err, repo.ErrConflict):
		dto.BadRequest(c, err.Error())
	default:
		log.Error().Err(err).Str("entity", entity).Msg(failMsg)
		dto.Internal(c, failMsg, err)
	}
}

// normalizePatch converts a decoded JSON body into an update patch,
// recovering time values from RFC 3339 strings so date fields stay typed.
// Explicit JSON nulls pass through as nil, which unsets the field.
func normalizePatch(body map[string]any) bson.M {
	patch := bson.M{}
	for k, v := range body {
		if s, ok := v.(string); ok {
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				patch[k] = t
				continue
			}
		}
		patch[k] = v
	}
	return patch
}

func handleList[T any](c *ginext.Context, r *repo.Repository[T], spec query.Spec, log *zerolog.Logger, failMsg string) {
	opts := spec.Build(c.Request.URL.Query())
	records, err := r.FindMany(c.Request.Context(), opts)
	if err != nil {
		respondError(c, log, r.Entity(), failMsg, err)
		return
	}
	if records == nil {
		records = []T{}
	}
	dto.List(c, len(records), records)
}

func handleGet[T any](c *ginext.Context, r *repo.Repository[T], log *zerolog.Logger, failMsg string) {
	id, ok := parseID(c, r.Entity())
	if !ok {
		return
	}
	rec, err := r.FindOne(c.Request.Context(), id)
	if err != nil {
		respondError(c, log, r.Entity(), failMsg, err)
		return
	}
	dto.Success(c, "", rec)
}

func handleCreate[T any](c *ginext.Context, r *repo.Repository[T], log *zerolog.Logger, createdMsg, failMsg string) {
	var rec T
	if err := c.ShouldBindJSON(&rec); err != nil {
		dto.BadRequest(c, "Invalid JSON format")
		return
	}
	stored, err := r.Create(c.Request.Context(), &rec)
	if err != nil {
		respondError(c, log, r.Entity(), failMsg, err)
		return
	}
	dto.Created(c, createdMsg, stored)
}

func handleUpdate[T any](c *ginext.Context, r *repo.Repository[T], log *zerolog.Logger, updatedMsg, failMsg string) {
	id, ok := parseID(c, r.Entity())
	if !ok {
		return
	}
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		dto.BadRequest(c, "Invalid JSON format")
		return
	}
	rec, err := r.Update(c.Request.Context(), id, normalizePatch(body))
	if err != nil {
		respondError(c, log, r.Entity(), failMsg, err)
		return
	}
	dto.Success(c, updatedMsg, rec)
}

func handleDelete[T any](c *ginext.Context, r *repo.Repository[T], log *zerolog.Logger, deletedMsg, failMsg string) {
	id, ok := parseID(c, r.Entity())
	if !ok {
		return
	}
	if err := r.Delete(c.Request.Context(), id); err != nil {
		respondError(c, log, r.Entity(), failMsg, err)
		return
	}
	dto.Success(c, deletedMsg, nil)
}

// publishEmailTask hands a mail job to the notification queue. Publish
// failures are logged and never fail the request.
func (s *Service) publishEmailTask(task dto.EmailTask) {
	if s.rbt == nil {
		return
	}
	payload, err := json.Marshal(task)
	if err != nil {
		s.log.Error().Err(err).Str("kind", task.Kind).Msg("failed to marshal email task")
		return
	}
	if err := s.rbt.Publish(payload); err != nil {
		s.log.Error().Err(err).Str("kind", task.Kind).Msg("failed to publish email task")
	}
}
