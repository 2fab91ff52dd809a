package pgstore_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"emb-site/internal/domain/access"
	"emb-site/internal/domain/catalog"
	"emb-site/internal/domain/content"
	"emb-site/internal/domain/donations"
	"emb-site/internal/domain/gallery"
	"emb-site/internal/domain/settings"
	"emb-site/internal/infra/pgstore"
	"emb-site/internal/testutil"

	"github.com/google/uuid"
)

func TestDonationTransitionIsConditional(t *testing.T) {
	db := testutil.DB(t)
	store := pgstore.NewDonations(db)
	ctx := context.Background()

	d := &donations.Donation{
		ID:     uuid.NewString(),
		Name:   "Ana",
		Email:  "ana@example.com",
		Amount: 5000,
		Type:   donations.KindOneTime,
		Status: donations.StatusPending,
	}
	if err := store.Create(ctx, d); err != nil {
		t.Fatalf("create: %v", err)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.Transition(ctx, d.ID, donations.StatusPending, donations.StatusApproved, nil)
			if err != nil {
				t.Errorf("transition: %v", err)
				return
			}
			if ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if wins != 1 {
		t.Fatalf("expected exactly one winning transition, got %d", wins)
	}

	got, err := store.Get(ctx, d.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != donations.StatusApproved {
		t.Fatalf("status = %s", got.Status)
	}

	ok, err := store.Transition(ctx, d.ID, donations.StatusPending, donations.StatusCancelled, nil)
	if err != nil || ok {
		t.Fatalf("cancel after approve: ok=%v err=%v", ok, err)
	}
}

func TestDonationLookupByProcessorID(t *testing.T) {
	db := testutil.DB(t)
	store := pgstore.NewDonations(db)
	ctx := context.Background()

	d := &donations.Donation{ID: uuid.NewString(), Name: "B", Email: "b@example.com", Amount: 1, Type: donations.KindSubscription, Status: donations.StatusPending, ProcessorID: "cs_test_1"}
	if err := store.Create(ctx, d); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := store.GetByProcessorID(ctx, "cs_test_1")
	if err != nil || got.ID != d.ID {
		t.Fatalf("by processor id: %v %+v", err, got)
	}
	if _, err := store.GetByProcessorID(ctx, ""); !errors.Is(err, donations.ErrNotFound) {
		t.Fatalf("empty processor id: %v", err)
	}
	if _, err := store.Get(ctx, uuid.NewString()); !errors.Is(err, donations.ErrNotFound) {
		t.Fatalf("missing id: %v", err)
	}
}

func TestPagesSaveReplacesAggregate(t *testing.T) {
	db := testutil.DB(t)
	pages := pgstore.NewPages(db)
	ctx := context.Background()

	p := &content.Page{Slug: "clases", Category: content.CategoryClasses}
	if err := pages.Create(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}

	p.Sections = content.Entries{
		content.Inline(content.Section{ID: "texto-1", Type: content.TypeTextBlock, Body: content.NewBody(content.TypeTextBlock)}),
		content.Reference("legacy-1"),
	}
	p.HeaderTitle = "Clases"
	if err := pages.Save(ctx, p); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := pages.GetBySlug(ctx, "clases")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.HeaderTitle != "Clases" || len(got.Sections) != 2 {
		t.Fatalf("unexpected page: %+v", got)
	}
	if got.Sections[0].Inline == nil || got.Sections[0].Inline.ID != "texto-1" {
		t.Fatalf("inline section lost: %+v", got.Sections[0])
	}
	if got.Sections[1].Ref != "legacy-1" {
		t.Fatalf("reference lost: %+v", got.Sections[1])
	}

	if err := pages.Save(ctx, &content.Page{Slug: "nope"}); !errors.Is(err, content.ErrNotFound) {
		t.Fatalf("save missing page: %v", err)
	}
}

func TestGallerySetOrders(t *testing.T) {
	db := testutil.DB(t)
	store := pgstore.NewGallery(db)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		img := &gallery.Image{URL: "https://cdn.example.com/" + string(rune('a'+i)) + ".jpg", Order: i}
		if err := store.Create(ctx, img); err != nil {
			t.Fatalf("create: %v", err)
		}
		ids = append(ids, img.ID)
	}

	if err := store.SetOrders(ctx, map[string]int{ids[0]: 2, ids[1]: 0, ids[2]: 1}); err != nil {
		t.Fatalf("set orders: %v", err)
	}
	got, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{ids[1], ids[2], ids[0]}
	for i := range want {
		if got[i].ID != want[i] || got[i].Order != i {
			t.Fatalf("position %d: got %s/%d want %s", i, got[i].ID, got[i].Order, want[i])
		}
	}

	if err := store.Delete(ctx, uuid.NewString()); !errors.Is(err, gallery.ErrNotFound) {
		t.Fatalf("delete missing: %v", err)
	}
}

func TestCatalogCollection(t *testing.T) {
	db := testutil.DB(t)
	classes := pgstore.NewClasses(db)
	ctx := context.Background()

	c := &catalog.Class{ID: uuid.NewString(), Name: "Violín", Slug: "violin"}
	if err := classes.Create(ctx, c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := classes.Update(ctx, c.ID, map[string]interface{}{"teacher": "Marta"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := classes.GetBySlug(ctx, "violin")
	if err != nil || got.Teacher != "Marta" {
		t.Fatalf("get by slug: %v %+v", err, got)
	}
	if err := classes.Update(ctx, uuid.NewString(), map[string]interface{}{"teacher": "x"}); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("update missing: %v", err)
	}
}

func TestSettingsPutUpserts(t *testing.T) {
	db := testutil.DB(t)
	store := pgstore.NewSettings(db)
	ctx := context.Background()

	if _, err := store.Get(ctx, settings.KeyGeneral); !errors.Is(err, settings.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := store.Put(ctx, settings.KeyGeneral, []byte(`{"site_name":"A"}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Put(ctx, settings.KeyGeneral, []byte(`{"site_name":"B"}`)); err != nil {
		t.Fatalf("second put: %v", err)
	}

	svc := settings.NewService(store)
	g, err := svc.General(ctx)
	if err != nil || g.SiteName != "B" {
		t.Fatalf("general: %v %+v", err, g)
	}
}

func TestAccountsUpsert(t *testing.T) {
	db := testutil.DB(t)
	store := pgstore.NewAccounts(db)
	ctx := context.Background()

	if err := store.Upsert(ctx, &access.AdminAccount{Email: "a@example.com", PasswordHash: "h1"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := store.Upsert(ctx, &access.AdminAccount{Email: "a@example.com", Name: "Ana", PasswordHash: "h2"}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	got, err := store.GetByEmail(ctx, "a@example.com")
	if err != nil || got.PasswordHash != "h2" || got.Name != "Ana" {
		t.Fatalf("get: %v %+v", err, got)
	}
}
