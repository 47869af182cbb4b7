package cache

import (
	"testing"
	"time"
)

func TestCacheSetAndGet(t *testing.T) {
	responseCache := New()
	defer responseCache.Stop()

	responseCache.Set("key", "value", time.Minute)

	value, isCached := responseCache.Get("key")
	if !isCached {
		t.Fatal("Expected key to be cached")
	}
	if value != "value" {
		t.Errorf("Expected 'value', got %v", value)
	}
}

func TestCacheMiss(t *testing.T) {
	responseCache := New()
	defer responseCache.Stop()

	if _, isCached := responseCache.Get("absent"); isCached {
		t.Error("Expected cache miss for absent key")
	}
}

func TestCacheExpiry(t *testing.T) {
	responseCache := New()
	defer responseCache.Stop()

	responseCache.Set("key", "value", 10*time.Millisecond)
	time.Sleep(25 * time.Millisecond)

	if _, isCached := responseCache.Get("key"); isCached {
		t.Error("Expected key to expire")
	}
	if responseCache.Has("key") {
		t.Error("Expected Has to report expired key as absent")
	}
}

func TestCacheOverwrite(t *testing.T) {
	responseCache := New()
	defer responseCache.Stop()

	responseCache.Set("key", "first", time.Minute)
	responseCache.Set("key", "second", time.Minute)

	value, isCached := responseCache.Get("key")
	if !isCached {
		t.Fatal("Expected key to be cached")
	}
	if value != "second" {
		t.Errorf("Expected overwritten value 'second', got %v", value)
	}
}

func TestCacheHas(t *testing.T) {
	responseCache := New()
	defer responseCache.Stop()

	if responseCache.Has("key") {
		t.Error("Expected Has to be false before Set")
	}

	responseCache.Set("key", 42, time.Minute)

	if !responseCache.Has("key") {
		t.Error("Expected Has to be true after Set")
	}
}
