// Package catalogtest provides an in-memory catalog REST API for tests.
//
//	srv := catalogtest.NewServer()
//	defer srv.Close()
//	srv.Seed("/brands", models.Brand{ID: 1, Brand: "acme", Priority: 2})
//	client := catalog.NewClient(srv.URL)
//
// Every request is recorded, and any method and path can be made to fail with
// a given status.
package catalogtest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Collections served with list, create, update and delete.
var Collections = []string{"/products", "/categories", "/subcategories", "/brands", "/clients", "/projects"}

// Request is one recorded call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// JSON decodes the recorded body into a generic map.
func (r Request) JSON() map[string]any {
	var out map[string]any
	_ = json.Unmarshal(r.Body, &out)
	return out
}

type record = map[string]any

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	nextID   int64
	data     map[string][]record
	requests []Request
	failures map[string]int
	uploads  []string
}

func NewServer() *Server {
	s := &Server{
		nextID:   1,
		data:     make(map[string][]record),
		failures: make(map[string]int),
	}

	r := chi.NewRouter()
	r.Use(s.record)
	r.Use(s.inject)

	r.Get("/products", s.productPage)
	r.Get("/search-products", s.searchProducts)
	r.Get("/search-by-model", s.searchByModel)
	r.Get("/distinct-categories", s.distinct)
	r.Post("/upload-product-image", s.upload)

	for _, path := range Collections {
		collection := path
		if collection != "/products" {
			r.Get(collection, s.list(collection))
		}
		r.Post(collection, s.create(collection))
		r.Put(collection+"/{id}", s.update(collection))
		r.Delete(collection+"/{id}", s.remove(collection))
	}

	s.Server = httptest.NewServer(r)
	return s
}

// Seed stores records under a collection path such as "/brands". Records
// without an id get the next free one.
func (s *Server) Seed(collection string, records ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range records {
		raw, _ := json.Marshal(rec)
		var m record
		_ = json.Unmarshal(raw, &m)
		id := toID(m["id"])
		if id == 0 {
			id = s.nextID
		}
		if id >= s.nextID {
			s.nextID = id + 1
		}
		m["id"] = id
		s.data[collection] = append(s.data[collection], m)
	}
}

// Fail makes every later request matching method and path answer status.
func (s *Server) Fail(method, path string, status int) {
	s.mu.Lock()
	s.failures[method+" "+path] = status
	s.mu.Unlock()
}

// Heal removes every injected failure.
func (s *Server) Heal() {
	s.mu.Lock()
	s.failures = make(map[string]int)
	s.mu.Unlock()
}

// Requests returns every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Last returns the most recent request, if any.
func (s *Server) Last() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}, false
	}
	return s.requests[len(s.requests)-1], true
}

// Count returns how many requests matched method and path.
func (s *Server) Count(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, req := range s.requests {
		if req.Method == method && req.Path == path {
			n++
		}
	}
	return n
}

// Reset forgets the recorded requests.
func (s *Server) Reset() {
	s.mu.Lock()
	s.requests = nil
	s.mu.Unlock()
}

// Uploads returns the filenames received by the upload endpoint.
func (s *Server) Uploads() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.uploads...)
}

// IDs returns the stored ids of a collection in storage order.
func (s *Server) IDs(collection string) []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0, len(s.data[collection]))
	for _, m := range s.data[collection] {
		ids = append(ids, toID(m["id"]))
	}
	return ids
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (s *Server) inject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		status, ok := s.failures[r.Method+" "+r.URL.Path]
		s.mu.Unlock()
		if ok {
			http.Error(w, `{"detail":"injected failure"}`, status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) list(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		items := append([]record{}, s.data[collection]...)
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, items)
	}
}

func (s *Server) create(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var m record
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid body"})
			return
		}

		s.mu.Lock()
		id := s.nextID
		s.nextID++
		m["id"] = id
		s.data[collection] = append(s.data[collection], m)
		s.mu.Unlock()

		writeJSON(w, http.StatusOK, map[string]any{"message": "Record created", "id": id})
	}
}

func (s *Server) update(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		var m record
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid body"})
			return
		}
		m["id"] = id

		s.mu.Lock()
		defer s.mu.Unlock()
		for i, existing := range s.data[collection] {
			if toID(existing["id"]) == id {
				s.data[collection][i] = m
				writeJSON(w, http.StatusOK, m)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Record not found"})
	}
}

func (s *Server) remove(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

		s.mu.Lock()
		defer s.mu.Unlock()
		items := s.data[collection]
		for i, existing := range items {
			if toID(existing["id"]) == id {
				s.data[collection] = append(items[:i:i], items[i+1:]...)
				writeJSON(w, http.StatusOK, map[string]string{"detail": "Record deleted"})
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Record not found"})
	}
}

func (s *Server) productPage(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	items := append([]record{}, s.data["/products"]...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, page(items, r.URL.Query()))
}

func (s *Server) searchProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.mu.Lock()
	var items []record
	for _, m := range s.data["/products"] {
		if matches(m, "main_cat", q.Get("main_cat")) && matches(m, "sub_cat", q.Get("sub_cat")) && matches(m, "brand", q.Get("brand")) {
			items = append(items, m)
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, page(items, q))
}

func (s *Server) searchByModel(w http.ResponseWriter, r *http.Request) {
	model := strings.ToLower(r.URL.Query().Get("model"))
	s.mu.Lock()
	items := []record{}
	for _, m := range s.data["/products"] {
		if v, _ := m["model"].(string); strings.Contains(strings.ToLower(v), model) {
			items = append(items, m)
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) distinct(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	products := append([]record{}, s.data["/products"]...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string][]string{
		"main_categories": unique(products, "main_cat"),
		"sub_categories":  unique(products, "sub_cat"),
		"brands":          unique(products, "brand"),
	})
}

func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "file is required"})
		return
	}
	defer file.Close()

	s.mu.Lock()
	s.uploads = append(s.uploads, header.Filename)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"url": "https://images.example.com/" + header.Filename})
}

// page applies limit and offset in id order.
func page(items []record, q url.Values) []record {
	sort.SliceStable(items, func(i, j int) bool { return toID(items[i]["id"]) < toID(items[j]["id"]) })
	offset, _ := strconv.Atoi(q.Get("offset"))
	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil || limit <= 0 {
		limit = len(items)
	}
	if offset >= len(items) {
		return []record{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func matches(m record, key, want string) bool {
	if want == "" {
		return true
	}
	v, _ := m[key].(string)
	return v == want
}

func unique(items []record, key string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, m := range items {
		if v, _ := m[key].(string); v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

func toID(v any) int64 {
	switch id := v.(type) {
	case int64:
		return id
	case float64:
		return int64(id)
	case json.Number:
		n, _ := id.Int64()
		return n
	default:
		return 0
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
