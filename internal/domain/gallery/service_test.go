package gallery

import (
	"context"
	"errors"
	"sort"
	"testing"

	"go.uber.org/zap"
)

type memStore struct{ imgs map[string]Image }

func (m *memStore) List(context.Context) ([]Image, error) {
	out := make([]Image, 0, len(m.imgs))
	for _, img := range m.imgs {
		out = append(out, img)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (m *memStore) Create(_ context.Context, img *Image) error {
	m.imgs[img.ID] = *img
	return nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	if _, ok := m.imgs[id]; !ok {
		return ErrNotFound
	}
	delete(m.imgs, id)
	return nil
}

func (m *memStore) UpdateCaption(_ context.Context, id, caption, alt string) error {
	img, ok := m.imgs[id]
	if !ok {
		return ErrNotFound
	}
	img.Caption, img.Alt = caption, alt
	m.imgs[id] = img
	return nil
}

func (m *memStore) SetOrders(_ context.Context, orders map[string]int) error {
	for id, o := range orders {
		img := m.imgs[id]
		img.Order = o
		m.imgs[id] = img
	}
	return nil
}

func seeded(t *testing.T, n int) (*Service, []string) {
	t.Helper()
	svc := NewService(&memStore{imgs: map[string]Image{}}, zap.NewNop())
	var ids []string
	for i := 0; i < n; i++ {
		img, err := svc.Add(context.Background(), "https://cdn.example/img.jpg", "", "")
		if err != nil {
			t.Fatal(err)
		}
		if img.Order != i {
			t.Fatalf("image %d appended at order %d", i, img.Order)
		}
		ids = append(ids, img.ID)
	}
	return svc, ids
}

func assertDense(t *testing.T, imgs []Image, ids []string) {
	t.Helper()
	if len(imgs) != len(ids) {
		t.Fatalf("len = %d, want %d", len(imgs), len(ids))
	}
	for i, img := range imgs {
		if img.Order != i || img.ID != ids[i] {
			t.Fatalf("position %d = %s@%d, want %s@%d", i, img.ID, img.Order, ids[i], i)
		}
	}
}

func TestReorderYieldsDenseOrder(t *testing.T) {
	svc, ids := seeded(t, 4)
	want := []string{ids[2], ids[0], ids[3], ids[1]}

	imgs, err := svc.Reorder(context.Background(), want)
	if err != nil {
		t.Fatal(err)
	}
	assertDense(t, imgs, want)
}

func TestReorderRejectsNonPermutation(t *testing.T) {
	svc, ids := seeded(t, 3)
	bad := [][]string{
		{ids[0], ids[1]},
		{ids[0], ids[0], ids[1]},
		{ids[0], ids[1], "stranger"},
	}
	for _, b := range bad {
		if _, err := svc.Reorder(context.Background(), b); !errors.Is(err, ErrBadPermutation) {
			t.Errorf("%v: err = %v", b, err)
		}
	}
}

func TestDeleteRenumbers(t *testing.T) {
	svc, ids := seeded(t, 4)
	if err := svc.Delete(context.Background(), ids[1]); err != nil {
		t.Fatal(err)
	}
	imgs, _ := svc.List(context.Background())
	assertDense(t, imgs, []string{ids[0], ids[2], ids[3]})

	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestAddRejectsBadURL(t *testing.T) {
	svc := NewService(&memStore{imgs: map[string]Image{}}, zap.NewNop())
	for _, u := range []string{"", "javascript:alert(1)", "/relative.jpg"} {
		if _, err := svc.Add(context.Background(), u, "", ""); !errors.Is(err, ErrInvalidURL) {
			t.Errorf("%q: err = %v", u, err)
		}
	}
}
