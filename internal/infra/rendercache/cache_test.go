package rendercache

import (
	"testing"
	"time"
)

func TestInvalidateDropsAllVariants(t *testing.T) {
	c := New(time.Minute)
	c.Set(Key("home", ""), 1)
	c.Set(Key("contacto", "clases"), 2)
	c.Set(Key("contacto", ""), 3)
	c.Set(Key("contacto-extra", ""), 4)

	c.Invalidate("contacto")

	if _, ok := c.Get(Key("contacto", "clases")); ok {
		t.Error("variant survived")
	}
	if _, ok := c.Get(Key("contacto", "")); ok {
		t.Error("default variant survived")
	}
	if v, ok := c.Get(Key("contacto-extra", "")); !ok || v != 4 {
		t.Error("prefix-sharing slug dropped")
	}
	if _, ok := c.Get(Key("home", "")); !ok {
		t.Error("unrelated page dropped")
	}

	c.Purge()
	if _, ok := c.Get(Key("home", "")); ok {
		t.Error("purge left entries")
	}
}

func TestExpiry(t *testing.T) {
	c := New(time.Minute)
	now := time.Now()
	c.now = func() time.Time { return now }
	c.Set("k", 1)

	c.now = func() time.Time { return now.Add(2 * time.Minute) }
	if _, ok := c.Get("k"); ok {
		t.Fatal("expired entry returned")
	}
}
