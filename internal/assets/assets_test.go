package assets

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestManagerLoadAndCache(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Output.csv", "a,b\r\n1,2")

	m := NewManager(dir)
	data, err := m.Load(KindTable, "Output.csv")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(data) != "a,b\r\n1,2" {
		t.Errorf("unexpected content %q", data)
	}

	// Served from cache even after the file disappears
	os.Remove(filepath.Join(dir, "Output.csv"))
	if _, err := m.Load(KindTable, "Output.csv"); err != nil {
		t.Errorf("expected cached load, got %v", err)
	}

	hits, misses := m.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("expected 1 hit and 1 miss, got %d/%d", hits, misses)
	}

	m.Close()
	if _, err := m.Load(KindTable, "Output.csv"); err == nil {
		t.Error("expected error after cache cleared and file removed")
	}
}

func TestManagerLoadMissing(t *testing.T) {
	m := NewManager(t.TempDir())
	_, err := m.Load(KindModel, "fyp_lab.glb")

	var loadErr *AssetLoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected AssetLoadError, got %v", err)
	}
	if loadErr.Kind != KindModel {
		t.Errorf("expected kind model, got %s", loadErr.Kind)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist in chain, got %v", err)
	}
}

func TestResolve(t *testing.T) {
	m := NewManager("/srv/lab")
	if got := m.Resolve("Output.csv"); got != filepath.Join("/srv/lab", "Output.csv") {
		t.Errorf("unexpected relative resolve %s", got)
	}
	abs := filepath.Join(t.TempDir(), "x.csv")
	if got := m.Resolve(abs); got != abs {
		t.Errorf("absolute path should be kept, got %s", got)
	}
}

func TestLoadAsync(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "t.csv", "1,2")

	m := NewManager(dir)
	f := m.LoadAsync(context.Background(), KindTable, "t.csv")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	data, err := f.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if string(data) != "1,2" {
		t.Errorf("unexpected content %q", data)
	}
}

func TestLoadAsyncCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewManager(t.TempDir()).LoadAsync(ctx, KindTable, "t.csv")
	<-f.Done()

	_, ok, err := f.Poll()
	if !ok {
		t.Fatal("expected resolved future")
	}
	var loadErr *AssetLoadError
	if !errors.As(err, &loadErr) || !errors.Is(err, context.Canceled) {
		t.Errorf("expected cancelled AssetLoadError, got %v", err)
	}
}
