package cache

import (
	"context"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "missing"); err != nil || ok {
		t.Errorf("Get missing = (ok=%v, err=%v), want miss", ok, err)
	}

	if err := c.Set(ctx, "doc:abc", []byte("<svg/>"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, ok, err := c.Get(ctx, "doc:abc")
	if err != nil || !ok {
		t.Fatalf("Get = (ok=%v, err=%v), want hit", ok, err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("Get data = %q", data)
	}

	if err := c.Delete(ctx, "doc:abc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "doc:abc"); ok {
		t.Error("Get after Delete still hits")
	}
	if err := c.Delete(ctx, "doc:abc"); err != nil {
		t.Errorf("Delete missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, ok, err := c.Get(ctx, "k"); err != nil || ok {
		t.Errorf("expired entry still hits (ok=%v, err=%v)", ok, err)
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, err := c.Get(ctx, "k"); err != nil || ok {
		t.Errorf("NullCache Get = (ok=%v, err=%v), want miss", ok, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	doc := k.DocumentKey("abc")
	if doc != k.DocumentKey("abc") {
		t.Error("DocumentKey not stable")
	}
	if doc == k.DocumentKey("abd") {
		t.Error("DocumentKey collides for different hashes")
	}

	art := k.ArtifactKey("abc", "png", 2.0)
	if art == k.ArtifactKey("abc", "png", 3.0) {
		t.Error("ArtifactKey ignores scale")
	}
	if art == k.ArtifactKey("abc", "pdf", 2.0) {
		t.Error("ArtifactKey ignores format")
	}
	if art == doc {
		t.Error("artifact and document keys collide")
	}
}

func TestHash(t *testing.T) {
	h := Hash([]byte("etchmark"))
	if len(h) != 64 {
		t.Errorf("Hash length = %d, want 64", len(h))
	}
	if h != Hash([]byte("etchmark")) {
		t.Error("Hash not stable")
	}
	if h == Hash([]byte("etchmarl")) {
		t.Error("Hash collides for different inputs")
	}
}
