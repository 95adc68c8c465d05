// internal/app/store/content/contentstore.go
package contentstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/polysite/polysite/internal/app/store/storeutil"
	"github.com/polysite/polysite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the content_items collection.
//
// Every query method takes the owning tenant's id as a required parameter and
// folds it into the Mongo filter, so a cross-tenant read cannot be expressed
// through this API at all.
type Store struct {
	c *mongo.Collection
}

// New creates a new content store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("content_items")}
}

// notDeleted is the base predicate shared by every query; soft-deleted items
// are invisible outside of storage maintenance.
func notDeleted(tenantID primitive.ObjectID) bson.M {
	return bson.M{
		"tenant_id":  tenantID,
		"deleted_at": nil,
	}
}

// Create inserts a new content item as a draft. A fresh revision id is minted.
// Returns models.ErrSlugTaken when the (tenant, slug) pair is already in use.
func (s *Store) Create(ctx context.Context, item models.ContentItem) (models.ContentItem, error) {
	now := time.Now().UTC()
	item.ID = primitive.NewObjectID()
	item.Slug = strings.ToLower(strings.TrimSpace(item.Slug))
	if item.Status == "" {
		item.Status = models.StatusDraft
	}
	item.RevisionID = uuid.NewString()
	item.CreatedAt = now
	item.UpdatedAt = now
	item.DeletedAt = nil

	if _, err := s.c.InsertOne(ctx, item); err != nil {
		if storeutil.IsDuplicateKeyErr(err) {
			return models.ContentItem{}, models.ErrSlugTaken
		}
		return models.ContentItem{}, err
	}
	return item, nil
}

// GetBySlug returns the published item with the given slug within the tenant's
// scope. A slug that exists under a different tenant yields the same
// models.ErrContentNotFound as one that does not exist at all.
func (s *Store) GetBySlug(ctx context.Context, tenantID primitive.ObjectID, slug string) (models.ContentItem, error) {
	filter := notDeleted(tenantID)
	filter["slug"] = strings.ToLower(strings.TrimSpace(slug))
	filter["status"] = models.StatusPublished
	return s.findOne(ctx, filter)
}

// GetBySlugAnyStatus is the administrative/preview variant of GetBySlug: it
// also finds drafts and archived items.
func (s *Store) GetBySlugAnyStatus(ctx context.Context, tenantID primitive.ObjectID, slug string) (models.ContentItem, error) {
	filter := notDeleted(tenantID)
	filter["slug"] = strings.ToLower(strings.TrimSpace(slug))
	return s.findOne(ctx, filter)
}

// GetByID returns an item by id, still scoped to the owning tenant.
func (s *Store) GetByID(ctx context.Context, tenantID, id primitive.ObjectID) (models.ContentItem, error) {
	filter := notDeleted(tenantID)
	filter["_id"] = id
	return s.findOne(ctx, filter)
}

func (s *Store) findOne(ctx context.Context, filter bson.M) (models.ContentItem, error) {
	var item models.ContentItem
	err := s.c.FindOne(ctx, filter).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.ContentItem{}, models.ErrContentNotFound
	}
	if err != nil {
		return models.ContentItem{}, err
	}
	return item, nil
}

// ListFilter narrows a List call. The zero value lists published items of any
// type, first page, default page size.
type ListFilter struct {
	Type     models.ContentType // required for homogeneous collections (theme grids)
	Statuses []string           // empty means published only; admin callers pass more
	Limit    int64
	Page     int64 // 1-based
}

// List returns the tenant's content items, newest first, with _id as the
// stable tiebreaker so pages do not skip or repeat rows when items share a
// timestamp.
func (s *Store) List(ctx context.Context, tenantID primitive.ObjectID, f ListFilter) ([]models.ContentItem, error) {
	filter := notDeleted(tenantID)
	if f.Type != "" {
		filter["type"] = f.Type
	}
	if len(f.Statuses) > 0 {
		filter["status"] = bson.M{"$in": f.Statuses}
	} else {
		filter["status"] = models.StatusPublished
	}

	opts := storeutil.Paginate(f.Limit, f.Page).
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.ContentItem
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Update replaces the mutable fields of an item (title, payload, seo, and the
// slug while still a draft). The slug of a published or archived item is
// immutable; changing it would orphan live links and cached renders.
//
// Every successful update mints a new revision id.
func (s *Store) Update(ctx context.Context, tenantID, id primitive.ObjectID, updated models.ContentItem) (models.ContentItem, error) {
	current, err := s.GetByID(ctx, tenantID, id)
	if err != nil {
		return models.ContentItem{}, err
	}

	slug := strings.ToLower(strings.TrimSpace(updated.Slug))
	if slug == "" {
		slug = current.Slug
	}
	if slug != current.Slug && current.Status != models.StatusDraft {
		return models.ContentItem{}, models.ErrSlugImmutable
	}

	set := bson.M{
		"slug":        slug,
		"title":       updated.Title,
		"revision_id": uuid.NewString(),
		"updated_at":  time.Now().UTC(),
		"product":     updated.Product,
		"tour":        updated.Tour,
		"menu_item":   updated.MenuItem,
		"service":     updated.Service,
		"seo":         updated.Seo,
	}

	filter := notDeleted(tenantID)
	filter["_id"] = id
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var item models.ContentItem
	err = s.c.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.ContentItem{}, models.ErrContentNotFound
	}
	if err != nil {
		if storeutil.IsDuplicateKeyErr(err) {
			return models.ContentItem{}, models.ErrSlugTaken
		}
		return models.ContentItem{}, err
	}
	return item, nil
}

// SetStatus moves an item between publish states and mints a new revision.
func (s *Store) SetStatus(ctx context.Context, tenantID, id primitive.ObjectID, status string) (models.ContentItem, error) {
	filter := notDeleted(tenantID)
	filter["_id"] = id

	set := bson.M{
		"status":      status,
		"revision_id": uuid.NewString(),
		"updated_at":  time.Now().UTC(),
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var item models.ContentItem
	err := s.c.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.ContentItem{}, models.ErrContentNotFound
	}
	if err != nil {
		return models.ContentItem{}, err
	}
	return item, nil
}

// SoftDelete marks an item deleted. The slot frees up for slug reuse because
// the unique index only covers non-deleted items. Callers must purge the
// render cache for the item's slug afterwards.
func (s *Store) SoftDelete(ctx context.Context, tenantID, id primitive.ObjectID) (models.ContentItem, error) {
	filter := notDeleted(tenantID)
	filter["_id"] = id

	now := time.Now().UTC()
	set := bson.M{
		"deleted_at": now,
		"updated_at": now,
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var item models.ContentItem
	err := s.c.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.ContentItem{}, models.ErrContentNotFound
	}
	if err != nil {
		return models.ContentItem{}, err
	}
	return item, nil
}

// CountForTenant returns the number of non-deleted items a tenant owns,
// optionally narrowed by status.
func (s *Store) CountForTenant(ctx context.Context, tenantID primitive.ObjectID, status string) (int64, error) {
	filter := notDeleted(tenantID)
	if status != "" {
		filter["status"] = status
	}
	return s.c.CountDocuments(ctx, filter)
}
