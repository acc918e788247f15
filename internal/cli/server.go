package cli

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/depscope/depscope/pkg/depgraph"
	"github.com/depscope/depscope/pkg/graph"
	"github.com/depscope/depscope/pkg/lockfile"
	"github.com/depscope/depscope/pkg/observability"
	"github.com/depscope/depscope/pkg/store"
)

// server implements the snapshot HTTP API over a store backend.
type server struct {
	store  store.Store
	logger *log.Logger
}

func newServer(st store.Store, logger *log.Logger) *server {
	return &server{store: st, logger: logger}
}

// routes builds the chi router for the API.
func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/graphs", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Get("/{id}", s.handleGet)
		r.Delete("/{id}", s.handleDelete)
		r.Get("/{id}/paths/{pkg}", s.handlePaths)
	})
	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCreate builds a graph from the lock file in the request body and
// stores it as a snapshot. The target is selected via the framework and
// runtime query parameters; framework defaults to the lock file's only
// target when omitted.
func (s *server) handleCreate(w http.ResponseWriter, r *http.Request) {
	lock, err := lockfile.Parse(http.MaxBytesReader(w, r.Body, 32<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "parse lock file: "+err.Error())
		return
	}

	framework := r.URL.Query().Get("framework")
	runtime := r.URL.Query().Get("runtime")
	if framework == "" {
		if len(lock.Targets) != 1 {
			writeError(w, http.StatusBadRequest, "framework query parameter required for multi-target lock files")
			return
		}
		framework = lock.Targets[0].Framework
		runtime = lock.Targets[0].RuntimeIdentifier
	}

	hooks := observability.Graph()
	target := targetLabel(framework, runtime)
	hooks.OnBuildStart(r.Context(), lock.Project.Name, target)

	start := time.Now()
	root, err := depgraph.Build(lock, framework, runtime)
	if err != nil {
		hooks.OnBuildComplete(r.Context(), lock.Project.Name, target, 0, time.Since(start), err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	nodeCount := len(depgraph.Nodes(root))
	hooks.OnBuildComplete(r.Context(), lock.Project.Name, target, nodeCount, time.Since(start), nil)

	snap := store.New(lock.Project.Name, framework, runtime, graph.FromRoot(root))
	if err := s.store.Put(r.Context(), snap); err != nil {
		s.logger.Errorf("Snapshot store failed: %v", err)
		writeError(w, http.StatusInternalServerError, "store snapshot")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":        snap.ID,
		"project":   snap.Project,
		"framework": snap.Framework,
		"runtime":   snap.Runtime,
		"packages":  nodeCount,
	})
}

func (s *server) handleGet(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "snapshot not found")
			return
		}
		s.logger.Errorf("Snapshot fetch failed: %v", err)
		writeError(w, http.StatusInternalServerError, "fetch snapshot")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.logger.Errorf("Snapshot delete failed: %v", err)
		writeError(w, http.StatusInternalServerError, "delete snapshot")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handlePaths lists the reference paths from the snapshot's project root to
// the given package. The optional max query parameter caps the number of
// paths enumerated.
func (s *server) handlePaths(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "snapshot not found")
			return
		}
		s.logger.Errorf("Snapshot fetch failed: %v", err)
		writeError(w, http.StatusInternalServerError, "fetch snapshot")
		return
	}

	root, err := snap.Graph.Resolve()
	if err != nil {
		s.logger.Errorf("Snapshot %s is corrupt: %v", snap.ID, err)
		writeError(w, http.StatusInternalServerError, "resolve snapshot")
		return
	}

	pkg := chi.URLParam(r, "pkg")
	node := depgraph.Find(root, pkg)
	if node == nil {
		writeError(w, http.StatusNotFound, "package not in graph")
		return
	}

	maxPaths := 0
	if v := r.URL.Query().Get("max"); v != "" {
		maxPaths, err = strconv.Atoi(v)
		if err != nil || maxPaths < 0 {
			writeError(w, http.StatusBadRequest, "max must be a non-negative integer")
			return
		}
	}

	paths := []string{}
	for p := range depgraph.ReferencePaths(node) {
		paths = append(paths, p)
		if maxPaths > 0 && len(paths) == maxPaths {
			break
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"package": node.ID,
		"paths":   paths,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
