package repo

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"churchapi/internal/query"
	"churchapi/internal/schema"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("duplicate value for unique field")
)

// Repository is the generic resource repository: one instance per entity kind,
// parameterized by the entity's schema descriptor. All validation, default
// application and timestamp maintenance happens here; side effects are
// confined to the entity's own collection.
type Repository[T any] struct {
	coll *mongo.Collection
	desc schema.Descriptor
	log  *zerolog.Logger
}

func New[T any](db *mongo.Database, desc schema.Descriptor, log *zerolog.Logger) *Repository[T] {
	return &Repository[T]{
		coll: db.Collection(desc.Collection),
		desc: desc,
		log:  log,
	}
}

// Entity returns the human-readable entity name, e.g. for 404 messages.
func (r *Repository[T]) Entity() string {
	return r.desc.Entity
}

// Create validates the record against the schema, applies defaults, assigns
// identity and timestamps, and returns the stored record.
func (r *Repository[T]) Create(ctx context.Context, rec *T) (*T, error) {
	doc, err := toDoc(rec)
	if err != nil {
		return nil, errors.Wrapf(err, "encoding %s", r.desc.Entity)
	}
	delete(doc, "_id")

	r.desc.ApplyDefaults(doc)
	if err := r.desc.ValidateCreate(doc); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc["createdAt"] = now
	doc["updatedAt"] = now

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrConflict
		}
		return nil, errors.Wrapf(err, "inserting %s", r.desc.Entity)
	}

	return r.FindOneBy(ctx, bson.M{"_id": res.InsertedID})
}

// FindMany returns the records matching the filter, ordered and capped per
// the options. An empty result is a nil slice, not an error.
func (r *Repository[T]) FindMany(ctx context.Context, opts query.Options) ([]T, error) {
	findOpts := options.Find()
	if len(opts.Sort) > 0 {
		findOpts.SetSort(opts.Sort)
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}

	cur, err := r.coll.Find(ctx, opts.Filter, findOpts)
	if err != nil {
		return nil, errors.Wrapf(err, "querying %s", r.desc.Collection)
	}
	defer cur.Close(ctx)

	var out []T
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", r.desc.Collection)
	}
	return out, nil
}

// FindOne resolves an identity to its record, or ErrNotFound.
func (r *Repository[T]) FindOne(ctx context.Context, id primitive.ObjectID) (*T, error) {
	return r.FindOneBy(ctx, bson.M{"_id": id})
}

// FindOneBy returns the first record matching the filter, or ErrNotFound.
func (r *Repository[T]) FindOneBy(ctx context.Context, filter bson.M) (*T, error) {
	var rec T
	if err := r.coll.FindOne(ctx, filter).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "fetching %s", r.desc.Entity)
	}
	return &rec, nil
}

// Update applies a partial patch, re-validating only the fields it carries.
// A nil patch value unsets the field. Returns the post-update record.
func (r *Repository[T]) Update(ctx context.Context, id primitive.ObjectID, patch bson.M) (*T, error) {
	set, unset, err := splitPatch(r.desc, patch)
	if err != nil {
		return nil, err
	}
	set["updatedAt"] = time.Now().UTC()

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	var rec T
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrConflict
		}
		return nil, errors.Wrapf(err, "updating %s", r.desc.Entity)
	}
	return &rec, nil
}

// splitPatch separates a patch into its $set and $unset halves. Identity and
// timestamp fields are never caller-writable. A nil value unsets the field,
// but unsetting a required field is a validation failure, the same as
// patching it to empty.
func splitPatch(desc schema.Descriptor, patch bson.M) (set, unset bson.M, err error) {
	set = bson.M{}
	unset = bson.M{}
	for k, v := range patch {
		switch k {
		case "_id", "createdAt", "updatedAt":
			continue
		}
		if v == nil {
			if desc.Required(k) {
				return nil, nil, &schema.ValidationError{Field: k, Reason: "is required"}
			}
			unset[k] = ""
			continue
		}
		set[k] = v
	}
	if err := desc.ValidatePatch(set); err != nil {
		return nil, nil, err
	}
	return set, unset, nil
}

// Delete removes the record, or reports ErrNotFound.
func (r *Repository[T]) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrapf(err, "deleting %s", r.desc.Entity)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Increment atomically bumps an integer field by delta and returns the
// post-increment record. The store serializes concurrent increments.
func (r *Repository[T]) Increment(ctx context.Context, id primitive.ObjectID, field string, delta int) (*T, error) {
	return r.IncrementWhere(ctx, bson.M{"_id": id}, field, delta)
}

// IncrementWhere is Increment with an arbitrary filter, so callers can attach
// guard conditions (e.g. a capacity ceiling) to the atomic update. ErrNotFound
// means no record satisfied the filter.
func (r *Repository[T]) IncrementWhere(ctx context.Context, filter bson.M, field string, delta int) (*T, error) {
	var rec T
	err := r.coll.FindOneAndUpdate(
		ctx,
		filter,
		bson.M{
			"$inc": bson.M{field: delta},
			"$set": bson.M{"updatedAt": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "incrementing %s.%s", r.desc.Collection, field)
	}
	return &rec, nil
}

// Aggregate runs a pipeline over the collection and decodes all results
// into out, which must be a pointer to a slice.
func (r *Repository[T]) Aggregate(ctx context.Context, pipeline mongo.Pipeline, out any) error {
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return errors.Wrapf(err, "aggregating %s", r.desc.Collection)
	}
	defer cur.Close(ctx)
	if err := cur.All(ctx, out); err != nil {
		return errors.Wrapf(err, "decoding %s aggregation", r.desc.Collection)
	}
	return nil
}

func toDoc(rec any) (bson.M, error) {
	raw, err := bson.Marshal(rec)
	if err != nil {
		return nil, err
	}
	doc := bson.M{}
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
