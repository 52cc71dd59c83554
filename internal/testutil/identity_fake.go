// Package testutil provides shared test doubles for the user
// administration packages.
package testutil

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"socuser/internal/domain"
)

// FakeIdentityService is an in-memory stand-in for the identity
// service's admin API. Duplicate emails are rejected with the same 409
// envelope the real service produces, and every request served is
// recorded for assertions.
type FakeIdentityService struct {
	mu         sync.Mutex
	identities map[string]domain.Identity
	requests   []string
	ready      bool
}

// NewFakeIdentityService returns an empty, ready service.
func NewFakeIdentityService() *FakeIdentityService {
	return &FakeIdentityService{
		identities: map[string]domain.Identity{},
		ready:      true,
	}
}

// Handler returns the HTTP handler implementing the admin API.
func (f *FakeIdentityService) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health/ready", f.handleReady)
	mux.HandleFunc("GET /identities", f.handleList)
	mux.HandleFunc("GET /identities/{id}", f.handleGet)
	mux.HandleFunc("POST /identities", f.handleCreate)
	mux.HandleFunc("PUT /identities/{id}", f.handleUpdate)
	mux.HandleFunc("DELETE /identities/{id}", f.handleDelete)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests = append(f.requests, r.Method+" "+r.URL.Path)
		f.mu.Unlock()
		mux.ServeHTTP(w, r)
	})
}

// SetReady controls the readiness endpoint's answer.
func (f *FakeIdentityService) SetReady(ready bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ready = ready
}

// Add seeds an identity directly, bypassing the API.
func (f *FakeIdentityService) Add(ident domain.Identity) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.identities[ident.ID] = ident
}

// Get returns the identity with the given id.
func (f *FakeIdentityService) Get(id string) (domain.Identity, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ident, ok := f.identities[id]
	return ident, ok
}

// ByEmail returns the identity whose email trait matches.
func (f *FakeIdentityService) ByEmail(email string) (domain.Identity, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ident := range f.identities {
		if ident.Traits.Email == email {
			return ident, true
		}
	}
	return domain.Identity{}, false
}

// Len returns the number of stored identities.
func (f *FakeIdentityService) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.identities)
}

// Requests returns the recorded "METHOD /path" strings in order.
func (f *FakeIdentityService) Requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.requests))
	copy(out, f.requests)
	return out
}

func (f *FakeIdentityService) handleReady(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	ready := f.ready
	f.mu.Unlock()

	if !ready {
		writeError(w, http.StatusServiceUnavailable, "service starting")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (f *FakeIdentityService) handleList(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	list := make([]domain.Identity, 0, len(f.identities))
	for _, ident := range f.identities {
		list = append(list, ident)
	}
	f.mu.Unlock()

	writeJSON(w, http.StatusOK, list)
}

func (f *FakeIdentityService) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Traits domain.Traits `json:"traits"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if payload.Traits.Email == "" {
		writeError(w, http.StatusBadRequest, "traits.email is required")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ident := range f.identities {
		if ident.Traits.Email == payload.Traits.Email {
			writeError(w, http.StatusConflict, "an identity with this email already exists")
			return
		}
	}

	ident := domain.Identity{
		ID:     uuid.NewString(),
		Traits: payload.Traits,
		VerifiableAddresses: []domain.VerifiableAddress{
			{Value: payload.Traits.Email},
		},
	}
	f.identities[ident.ID] = ident
	writeJSON(w, http.StatusCreated, ident)
}

func (f *FakeIdentityService) handleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	f.mu.Lock()
	defer f.mu.Unlock()
	ident, ok := f.identities[id]
	if !ok {
		writeError(w, http.StatusNotFound, "no identity with id "+id)
		return
	}
	writeJSON(w, http.StatusOK, ident)
}

func (f *FakeIdentityService) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var payload struct {
		Traits domain.Traits `json:"traits"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	ident, ok := f.identities[id]
	if !ok {
		writeError(w, http.StatusNotFound, "no identity with id "+id)
		return
	}
	ident.Traits = payload.Traits
	f.identities[id] = ident
	writeJSON(w, http.StatusOK, ident)
}

func (f *FakeIdentityService) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.identities[id]; !ok {
		writeError(w, http.StatusNotFound, "no identity with id "+id)
		return
	}
	delete(f.identities, id)
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"code":    status,
			"message": message,
		},
	})
}
