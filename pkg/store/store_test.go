package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/arborlab/phylograph/pkg/graph"
	"github.com/arborlab/phylograph/pkg/phylo"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return s
}

func TestFileStoreSaveLoad(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	defer s.Close()

	rec := &Record{Name: "toy1", Graph: graph.FromPhylogeny(phylo.Toy1())}
	if err := s.Save(ctx, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("Save should assign an ID")
	}
	if rec.CreatedAt.IsZero() || rec.UpdatedAt.IsZero() {
		t.Error("Save should set timestamps")
	}

	loaded, err := s.Load(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Name != "toy1" {
		t.Errorf("Name = %q, want %q", loaded.Name, "toy1")
	}
	if len(loaded.Graph.Nodes) != 8 || len(loaded.Graph.Branches) != 10 {
		t.Errorf("Graph = %d nodes / %d branches, want 8 / 10",
			len(loaded.Graph.Nodes), len(loaded.Graph.Branches))
	}

	// Stored graphs import back into working phylogenies
	g, err := graph.ToPhylogeny(loaded.Graph)
	if err != nil {
		t.Fatalf("ToPhylogeny: %v", err)
	}
	if len(g.Recombinants()) != 2 {
		t.Errorf("Recombinants = %d, want 2", len(g.Recombinants()))
	}
}

func TestFileStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	defer s.Close()

	rec := &Record{Name: "before", Graph: graph.FromPhylogeny(phylo.Chain())}
	if err := s.Save(ctx, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}
	created := rec.CreatedAt

	rec.Name = "after"
	if err := s.Save(ctx, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := s.Load(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Name != "after" {
		t.Errorf("Name = %q, want %q", loaded.Name, "after")
	}
	if !loaded.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt changed on overwrite: %v != %v", loaded.CreatedAt, created)
	}
	if loaded.UpdatedAt.Before(created) {
		t.Error("UpdatedAt should not precede CreatedAt")
	}

	recs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 1 {
		t.Errorf("List after overwrite = %d records, want 1", len(recs))
	}
}

func TestFileStoreList(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	defer s.Close()

	for _, name := range []string{"cherry", "apple", "banana"} {
		rec := &Record{Name: name, Graph: graph.FromPhylogeny(phylo.Chain())}
		if err := s.Save(ctx, rec); err != nil {
			t.Fatalf("Save %s: %v", name, err)
		}
	}

	recs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("List = %d records, want 3", len(recs))
	}
	want := []string{"apple", "banana", "cherry"}
	for i, rec := range recs {
		if rec.Name != want[i] {
			t.Errorf("List[%d] = %q, want %q", i, rec.Name, want[i])
		}
	}
}

func TestFileStoreListSkipsCorrupt(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	defer s.Close()

	rec := &Record{Name: "good", Graph: graph.FromPhylogeny(phylo.Chain())}
	if err := s.Save(ctx, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}
	corrupt := filepath.Join(s.Path(), "corrupt.json")
	if err := os.WriteFile(corrupt, []byte("{not json"), 0600); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	recs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 1 || recs[0].Name != "good" {
		t.Errorf("List should skip corrupt files, got %d records", len(recs))
	}
}

func TestFileStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	defer s.Close()

	rec := &Record{Name: "doomed", Graph: graph.FromPhylogeny(phylo.Chain())}
	if err := s.Save(ctx, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := s.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Load(ctx, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load after Delete = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}
}

func TestFileStoreLoadMissing(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	defer s.Close()

	if _, err := s.Load(ctx, "no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load = %v, want ErrNotFound", err)
	}
}
