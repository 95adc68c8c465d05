// internal/app/store/content/contentstore_test.go
package contentstore

import (
	"errors"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/polysite/polysite/internal/domain/models"
	"github.com/polysite/polysite/internal/testutil"
)

func newItem(tenantID primitive.ObjectID, slug string) models.ContentItem {
	return models.ContentItem{
		TenantID: tenantID,
		Slug:     slug,
		Title:    "Item " + slug,
		Type:     models.TypeProduct,
		Product:  &models.ProductPayload{Name: "Item " + slug, PriceCents: 1000, InStock: true},
	}
}

func TestCreateStartsAsDraft(t *testing.T) {
	s := New(testutil.SetupTestDB(t))
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := s.Create(ctx, newItem(primitive.NewObjectID(), "Widget "))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != models.StatusDraft {
		t.Errorf("status = %q, want draft", created.Status)
	}
	if created.Slug != "widget" {
		t.Errorf("slug = %q, want normalized widget", created.Slug)
	}
	if created.RevisionID == "" {
		t.Error("revision id not minted")
	}
}

func TestSlugUniquePerTenant(t *testing.T) {
	s := New(testutil.SetupTestDB(t))
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tenantA := primitive.NewObjectID()
	tenantB := primitive.NewObjectID()

	if _, err := s.Create(ctx, newItem(tenantA, "widget")); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := s.Create(ctx, newItem(tenantA, "widget")); !errors.Is(err, models.ErrSlugTaken) {
		t.Errorf("same tenant duplicate: got %v, want ErrSlugTaken", err)
	}

	// The same slug under another tenant is a different page entirely.
	if _, err := s.Create(ctx, newItem(tenantB, "widget")); err != nil {
		t.Errorf("cross-tenant same slug: %v", err)
	}
}

func TestGetBySlugIsPublishedOnlyAndTenantScoped(t *testing.T) {
	s := New(testutil.SetupTestDB(t))
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tenantA := primitive.NewObjectID()
	tenantB := primitive.NewObjectID()

	created, err := s.Create(ctx, newItem(tenantA, "widget"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := s.GetBySlug(ctx, tenantA, "widget"); !errors.Is(err, models.ErrContentNotFound) {
		t.Errorf("draft via GetBySlug: got %v, want ErrContentNotFound", err)
	}
	if _, err := s.GetBySlugAnyStatus(ctx, tenantA, "widget"); err != nil {
		t.Errorf("draft via GetBySlugAnyStatus: %v", err)
	}

	if _, err := s.SetStatus(ctx, tenantA, created.ID, models.StatusPublished); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if _, err := s.GetBySlug(ctx, tenantA, "widget"); err != nil {
		t.Errorf("published via GetBySlug: %v", err)
	}

	// Another tenant sees nothing, and cannot address the item by id either.
	if _, err := s.GetBySlug(ctx, tenantB, "widget"); !errors.Is(err, models.ErrContentNotFound) {
		t.Errorf("cross-tenant slug: got %v, want ErrContentNotFound", err)
	}
	if _, err := s.GetByID(ctx, tenantB, created.ID); !errors.Is(err, models.ErrContentNotFound) {
		t.Errorf("cross-tenant id: got %v, want ErrContentNotFound", err)
	}
}

func TestSlugImmutableAfterPublish(t *testing.T) {
	s := New(testutil.SetupTestDB(t))
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tenantID := primitive.NewObjectID()
	created, err := s.Create(ctx, newItem(tenantID, "widget"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Draft slugs may change freely.
	renamed := created
	renamed.Slug = "gadget"
	updated, err := s.Update(ctx, tenantID, created.ID, renamed)
	if err != nil {
		t.Fatalf("rename draft: %v", err)
	}
	if updated.Slug != "gadget" {
		t.Errorf("slug = %q, want gadget", updated.Slug)
	}
	if updated.RevisionID == created.RevisionID {
		t.Error("update did not mint a new revision")
	}

	if _, err := s.SetStatus(ctx, tenantID, created.ID, models.StatusPublished); err != nil {
		t.Fatalf("publish: %v", err)
	}

	renamed.Slug = "doohickey"
	if _, err := s.Update(ctx, tenantID, created.ID, renamed); !errors.Is(err, models.ErrSlugImmutable) {
		t.Errorf("rename published: got %v, want ErrSlugImmutable", err)
	}

	// Non-slug updates still work after publish.
	renamed.Slug = "gadget"
	renamed.Title = "Gadget Deluxe"
	after, err := s.Update(ctx, tenantID, created.ID, renamed)
	if err != nil {
		t.Fatalf("update published: %v", err)
	}
	if after.Title != "Gadget Deluxe" {
		t.Errorf("title = %q", after.Title)
	}
}

func TestUpdateSlugConflict(t *testing.T) {
	s := New(testutil.SetupTestDB(t))
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tenantID := primitive.NewObjectID()
	if _, err := s.Create(ctx, newItem(tenantID, "widget")); err != nil {
		t.Fatalf("create: %v", err)
	}
	other, err := s.Create(ctx, newItem(tenantID, "gadget"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	other.Slug = "widget"
	if _, err := s.Update(ctx, tenantID, other.ID, other); !errors.Is(err, models.ErrSlugTaken) {
		t.Errorf("slug conflict: got %v, want ErrSlugTaken", err)
	}
}

func TestSoftDeleteFreesSlug(t *testing.T) {
	s := New(testutil.SetupTestDB(t))
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tenantID := primitive.NewObjectID()
	created, err := s.Create(ctx, newItem(tenantID, "widget"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	deleted, err := s.SoftDelete(ctx, tenantID, created.ID)
	if err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	if deleted.DeletedAt == nil {
		t.Error("deleted_at not set")
	}

	if _, err := s.GetByID(ctx, tenantID, created.ID); !errors.Is(err, models.ErrContentNotFound) {
		t.Errorf("deleted item still visible: %v", err)
	}

	// The partial unique index only covers live items, so the slug slot is
	// free again.
	if _, err := s.Create(ctx, newItem(tenantID, "widget")); err != nil {
		t.Errorf("reuse slug after delete: %v", err)
	}
}

func TestListFilterAndPagination(t *testing.T) {
	s := New(testutil.SetupTestDB(t))
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tenantID := primitive.NewObjectID()
	for i := 0; i < 5; i++ {
		created, err := s.Create(ctx, newItem(tenantID, fmt.Sprintf("item-%d", i)))
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if i%2 == 0 {
			if _, err := s.SetStatus(ctx, tenantID, created.ID, models.StatusPublished); err != nil {
				t.Fatalf("publish: %v", err)
			}
		}
	}

	// Zero-value filter lists published only.
	published, err := s.List(ctx, tenantID, ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(published) != 3 {
		t.Errorf("published = %d, want 3", len(published))
	}

	all, err := s.List(ctx, tenantID, ListFilter{
		Statuses: []string{models.StatusDraft, models.StatusPublished},
	})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("all = %d, want 5", len(all))
	}

	page1, err := s.List(ctx, tenantID, ListFilter{
		Statuses: []string{models.StatusDraft, models.StatusPublished},
		Limit:    2, Page: 1,
	})
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	page2, err := s.List(ctx, tenantID, ListFilter{
		Statuses: []string{models.StatusDraft, models.StatusPublished},
		Limit:    2, Page: 2,
	})
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if len(page1) != 2 || len(page2) != 2 {
		t.Fatalf("page sizes = %d, %d", len(page1), len(page2))
	}
	seen := map[primitive.ObjectID]bool{}
	for _, it := range append(page1, page2...) {
		if seen[it.ID] {
			t.Errorf("item %s repeated across pages", it.Slug)
		}
		seen[it.ID] = true
	}
}

func TestCountForTenant(t *testing.T) {
	s := New(testutil.SetupTestDB(t))
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tenantID := primitive.NewObjectID()
	created, err := s.Create(ctx, newItem(tenantID, "widget"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.Create(ctx, newItem(tenantID, "gadget")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.SetStatus(ctx, tenantID, created.ID, models.StatusPublished); err != nil {
		t.Fatalf("publish: %v", err)
	}

	total, err := s.CountForTenant(ctx, tenantID, "")
	if err != nil || total != 2 {
		t.Errorf("total = %d (%v), want 2", total, err)
	}
	live, err := s.CountForTenant(ctx, tenantID, models.StatusPublished)
	if err != nil || live != 1 {
		t.Errorf("published = %d (%v), want 1", live, err)
	}
}
