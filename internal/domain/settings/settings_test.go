package settings

import (
	"context"
	"errors"
	"testing"
)

type memStore map[string][]byte

func (m memStore) Get(_ context.Context, key string) (*Document, error) {
	b, ok := m[key]
	if !ok {
		return nil, ErrNotFound
	}
	return &Document{Key: key, Data: b}, nil
}

func (m memStore) Put(_ context.Context, key string, data []byte) error {
	m[key] = data
	return nil
}

func TestListReplaceKeepsDuplicatesAndOrder(t *testing.T) {
	svc := NewService(memStore{})
	ctx := context.Background()

	got, err := svc.List(ctx, KeyTeachers)
	if err != nil || len(got) != 0 {
		t.Fatalf("empty list = %v, %v", got, err)
	}

	in := []string{"Piano", "Guitarra", "Piano"}
	if err := svc.ReplaceList(ctx, KeyInstruments, in); err != nil {
		t.Fatal(err)
	}
	got, _ = svc.List(ctx, KeyInstruments)
	if len(got) != 3 || got[0] != "Piano" || got[2] != "Piano" {
		t.Fatalf("list = %v", got)
	}

	if err := svc.ReplaceList(ctx, KeyInstruments, []string{"Violín"}); err != nil {
		t.Fatal(err)
	}
	got, _ = svc.List(ctx, KeyInstruments)
	if len(got) != 1 || got[0] != "Violín" {
		t.Fatalf("replace did not overwrite: %v", got)
	}
}

func TestUnknownListRejected(t *testing.T) {
	svc := NewService(memStore{})
	if _, err := svc.List(context.Background(), "admins"); !errors.Is(err, ErrUnknownList) {
		t.Fatalf("err = %v", err)
	}
	if err := svc.ReplaceList(context.Background(), "general", nil); !errors.Is(err, ErrUnknownList) {
		t.Fatalf("err = %v", err)
	}
}

func TestIsAdminIsCaseInsensitive(t *testing.T) {
	svc := NewService(memStore{})
	ctx := context.Background()

	if ok, _ := svc.IsAdmin(ctx, "ana@emb.org"); ok {
		t.Fatal("empty allow-list admitted someone")
	}
	if err := svc.SaveAdmins(ctx, []string{" Ana@EMB.org ", ""}); err != nil {
		t.Fatal(err)
	}
	if ok, _ := svc.IsAdmin(ctx, "ana@emb.org"); !ok {
		t.Fatal("listed admin refused")
	}
	if ok, _ := svc.IsAdmin(ctx, "bea@emb.org"); ok {
		t.Fatal("unlisted email admitted")
	}
	a, _ := svc.Admins(ctx)
	if len(a.Emails) != 1 {
		t.Fatalf("blank kept: %v", a.Emails)
	}
}

func TestGeneralDefaults(t *testing.T) {
	svc := NewService(memStore{})
	g, err := svc.General(context.Background())
	if err != nil || g.Social == nil {
		t.Fatalf("general = %+v, %v", g, err)
	}
}
