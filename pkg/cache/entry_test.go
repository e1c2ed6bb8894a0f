package cache

import (
	"strings"
	"testing"
	"time"
)

func TestNewEntry(t *testing.T) {
	data := []byte("image bytes")
	entry := NewEntry(data, "image/svg+xml", time.Hour)

	if string(entry.Data) != "image bytes" {
		t.Error("Data not set")
	}
	if entry.ContentType != "image/svg+xml" {
		t.Errorf("ContentType = %s", entry.ContentType)
	}
	if !strings.HasPrefix(entry.ETag, `"`) || !strings.HasSuffix(entry.ETag, `"`) {
		t.Errorf("ETag should be a quoted validator, got %s", entry.ETag)
	}
	if entry.IsExpired() {
		t.Error("fresh entry should not be expired")
	}
	if ttl := entry.TTL(); ttl <= 0 || ttl > time.Hour {
		t.Errorf("TTL = %v, want in (0, 1h]", ttl)
	}
}

func TestValidator_DerivedFromBytes(t *testing.T) {
	a := NewEntry([]byte("same"), "image/png", time.Hour)
	b := NewEntry([]byte("same"), "image/png", time.Minute)
	c := NewEntry([]byte("different"), "image/png", time.Hour)

	if a.ETag != b.ETag {
		t.Error("identical bytes should yield identical validators")
	}
	if a.ETag == c.ETag {
		t.Error("different bytes should yield different validators")
	}
}

func TestEntry_Expiry(t *testing.T) {
	entry := NewEntry([]byte("x"), "image/png", -time.Minute)

	if !entry.IsExpired() {
		t.Error("entry with negative TTL should be expired")
	}
	if entry.TTL() != 0 {
		t.Errorf("expired entry TTL = %v, want 0", entry.TTL())
	}
}
