package utils

import (
	"errors"
	"testing"
	"time"
)

func TestSearchCache_GetSet(t *testing.T) {
	c := NewSearchCache[[]string](2, time.Hour)

	c.Set("a", []string{"1"})
	c.Set("b", []string{"2"})
	c.Set("c", []string{"3"}) // 淘汰 a

	if _, ok := c.Get("a"); ok {
		t.Error("expected a to be evicted")
	}
	if v, ok := c.Get("c"); !ok || v[0] != "3" {
		t.Errorf("Get(c) = %v, %v", v, ok)
	}
	if c.storage.Len() != 2 {
		t.Errorf("Len = %d, expected 2", c.storage.Len())
	}
}

func TestSearchCache_Expiry(t *testing.T) {
	c := NewSearchCache[int](10, time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set("k", 42)
	if v, ok := c.Get("k"); !ok || v != 42 {
		t.Fatalf("Get = %v, %v", v, ok)
	}

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get("k"); ok {
		t.Error("expected entry to expire")
	}
	if c.storage.Len() != 0 {
		t.Errorf("expired entry should be removed, Len = %d", c.storage.Len())
	}
}

func TestGetOrLoad(t *testing.T) {
	InitCache()
	calls := 0
	load := func() (int, error) {
		calls++
		return 7, nil
	}

	for i := 0; i < 3; i++ {
		v, err := GetOrLoad("answer", time.Minute, load)
		if err != nil || v != 7 {
			t.Fatalf("GetOrLoad = %v, %v", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("load called %d times, expected 1", calls)
	}

	_, err := GetOrLoad("broken", time.Minute, func() (int, error) { return 0, errors.New("boom") })
	if err == nil {
		t.Error("expected error")
	}
	if _, found := Cache.Get("broken"); found {
		t.Error("errors should not be cached")
	}
}

func TestHashIP(t *testing.T) {
	a := HashIP("127.0.0.1")
	if len(a) != 16 {
		t.Errorf("hash length = %d, expected 16", len(a))
	}
	if a != HashIP("127.0.0.1") || a == HashIP("127.0.0.2") {
		t.Error("hash should be deterministic and distinct")
	}
}
