package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	if _, err := kv.Get(ctx, "taskboard-tasks"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing key, got %v", err)
	}
	if err := kv.Put(ctx, "taskboard-tasks", []byte(`[{"id":"a"}]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := kv.Put(ctx, "taskboard-tasks", []byte(`[{"id":"b"}]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := kv.Get(ctx, "taskboard-tasks")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `[{"id":"b"}]` {
		t.Fatalf("unexpected value %q", got)
	}
}

func TestSQLiteKV_GetPut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", sqliteFileName)
	kv, err := OpenSQLiteKV(context.Background(), path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer kv.Close()
	exerciseKV(t, kv)
}

func TestSQLiteKV_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), sqliteFileName)

	kv, err := OpenSQLiteKV(ctx, path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := kv.Put(ctx, "k", []byte("v1")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := kv.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	kv2, err := OpenSQLiteKV(ctx, path)
	if err != nil {
		t.Fatalf("reopen sqlite: %v", err)
	}
	defer kv2.Close()
	got, err := kv2.Get(ctx, "k")
	if err != nil || string(got) != "v1" {
		t.Fatalf("expected v1 after reopen, got %q err=%v", got, err)
	}
}

func TestFileKV_GetPut(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewFileKV(dir)
	if err != nil {
		t.Fatalf("new file kv: %v", err)
	}
	exerciseKV(t, kv)

	if _, err := os.Stat(filepath.Join(dir, "taskboard-tasks.json")); err != nil {
		t.Fatalf("expected blob file: %v", err)
	}
	ents, _ := os.ReadDir(dir)
	if len(ents) != 1 {
		t.Fatalf("expected no leftover temp files, got %d entries", len(ents))
	}
}

func TestFileKV_RejectsPathKeys(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	if err != nil {
		t.Fatalf("new file kv: %v", err)
	}
	if err := kv.Put(context.Background(), "../escape", []byte("x")); err == nil {
		t.Fatalf("expected invalid key error")
	}
}

func TestMemoryKV_GetPut(t *testing.T) {
	exerciseKV(t, NewMemoryKV())
}

func TestOpenKV_Backends(t *testing.T) {
	ctx := context.Background()
	for _, b := range []Backend{BackendSQLite, BackendJSON, BackendMemory} {
		kv, err := OpenKV(ctx, b, t.TempDir())
		if err != nil {
			t.Fatalf("open %s: %v", b, err)
		}
		exerciseKV(t, kv)
		_ = kv.Close()
	}
	if _, err := OpenKV(ctx, Backend("redis"), t.TempDir()); err == nil {
		t.Fatalf("expected unknown backend error")
	}
}

func TestParseBackend(t *testing.T) {
	cases := map[string]Backend{"": BackendSQLite, "SQLite": BackendSQLite, " json ": BackendJSON, "memory": BackendMemory}
	for in, want := range cases {
		got, err := ParseBackend(in)
		if err != nil || got != want {
			t.Fatalf("ParseBackend(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseBackend("bolt"); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
