package store

import (
	"context"
	"errors"
	"testing"

	"github.com/depscope/depscope/pkg/graph"
)

func testSnapshot() *Snapshot {
	g := graph.Graph{
		Root:  "P",
		Nodes: []graph.Node{{ID: "A", Version: "1.0.0"}, {ID: "P", Type: "project"}},
		Edges: []graph.Edge{{From: "P", To: "A"}},
	}
	return New("P", "net6.0", "", g)
}

func TestNewSnapshot(t *testing.T) {
	first := testSnapshot()
	second := testSnapshot()

	if first.ID == "" || first.ID == second.ID {
		t.Errorf("snapshot ids must be unique and non-empty, got %q and %q", first.ID, second.ID)
	}
	if first.CreatedAt.IsZero() {
		t.Error("CreatedAt must be set")
	}
	if first.Project != "P" || first.Framework != "net6.0" {
		t.Errorf("identity = %s/%s, want P/net6.0", first.Project, first.Framework)
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	snap := testSnapshot()

	t.Run("GetAbsent", func(t *testing.T) {
		_, err := s.Get(ctx, snap.ID)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Get error = %v, want ErrNotFound", err)
		}
	})

	t.Run("PutAndGet", func(t *testing.T) {
		if err := s.Put(ctx, snap); err != nil {
			t.Fatalf("Put error: %v", err)
		}
		got, err := s.Get(ctx, snap.ID)
		if err != nil {
			t.Fatalf("Get error: %v", err)
		}
		if got.Project != snap.Project || len(got.Graph.Nodes) != 2 {
			t.Errorf("Get = %+v, want stored snapshot", got)
		}
	})

	t.Run("GetReturnsCopy", func(t *testing.T) {
		got, err := s.Get(ctx, snap.ID)
		if err != nil {
			t.Fatalf("Get error: %v", err)
		}
		got.Project = "mutated"

		again, err := s.Get(ctx, snap.ID)
		if err != nil {
			t.Fatalf("Get error: %v", err)
		}
		if again.Project != "P" {
			t.Error("mutating a returned snapshot must not affect the store")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := s.Delete(ctx, snap.ID); err != nil {
			t.Fatalf("Delete error: %v", err)
		}
		if _, err := s.Get(ctx, snap.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get after Delete error = %v, want ErrNotFound", err)
		}
		// Deleting again is not an error
		if err := s.Delete(ctx, snap.ID); err != nil {
			t.Errorf("second Delete error: %v", err)
		}
	})
}
