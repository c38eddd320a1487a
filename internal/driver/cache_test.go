package driver

import (
	"path/filepath"
	"testing"

	"github.com/safeng/decaf-sema/internal/diag"
	"github.com/safeng/decaf-sema/internal/source"
)

func TestDiskCachePutGetRoundTrip(t *testing.T) {
	c := &DiskCache{dir: t.TempDir()}
	key := HashBytes([]byte(`{"decls":[]}`))

	items := []diag.Diagnostic{
		diag.NewError(diag.DeclConflict, source.Location{StartLine: 1, StartCol: 1}, "duplicate 'f'"),
	}
	if err := c.Put(key, items); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := c.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatalf("expected a cache hit")
	}
	if len(got) != 1 || got[0].Message != "duplicate 'f'" {
		t.Fatalf("unexpected cached diagnostics: %+v", got)
	}
}

func TestDiskCacheMissOnUnknownKey(t *testing.T) {
	c := &DiskCache{dir: t.TempDir()}
	_, ok, err := c.Get(HashBytes([]byte("never written")))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatalf("expected a miss for a key that was never Put")
	}
}

func TestDiskCacheDifferentContentDifferentKey(t *testing.T) {
	a := HashBytes([]byte("one"))
	b := HashBytes([]byte("two"))
	if a == b {
		t.Fatalf("expected different content to hash to different keys")
	}
}

func TestDiskCacheDropAllInvalidatesEntries(t *testing.T) {
	c := &DiskCache{dir: t.TempDir()}
	key := HashBytes([]byte("x"))
	if err := c.Put(key, []diag.Diagnostic{diag.NewError(diag.DeclConflict, source.NoLocation, "x")}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := c.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if _, ok, err := c.Get(key); err != nil || ok {
		t.Fatalf("expected a miss after DropAll, got ok=%v err=%v", ok, err)
	}
}

func TestDiskCacheNilReceiverIsNoop(t *testing.T) {
	var c *DiskCache
	if err := c.Put(HashBytes([]byte("x")), nil); err != nil {
		t.Fatalf("Put on nil cache should be a no-op, got %v", err)
	}
	if _, ok, err := c.Get(HashBytes([]byte("x"))); ok || err != nil {
		t.Fatalf("Get on nil cache should be a clean miss, got ok=%v err=%v", ok, err)
	}
	if err := c.DropAll(); err != nil {
		t.Fatalf("DropAll on nil cache should be a no-op, got %v", err)
	}
}

func TestDiskCachePathForIsStableAndNamespaced(t *testing.T) {
	c := &DiskCache{dir: "/tmp/decafsema-test"}
	key := HashBytes([]byte("x"))
	p := c.pathFor(key)
	if filepath.Dir(p) != filepath.Join("/tmp/decafsema-test", "results") {
		t.Fatalf("expected results to live under the cache dir's results/ subdir, got %q", p)
	}
}
