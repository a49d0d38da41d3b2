package placeholder

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"slices"
	"strconv"
	"sync"

	"github.com/leg100/postie/internal/post"
	"gopkg.in/yaml.v3"
)

// Fixture is a set of users and posts served in place of the remote API.
type Fixture struct {
	Users []post.User `yaml:"users"`
	Posts []post.Post `yaml:"posts"`
}

// LoadFixture reads a fixture from a YAML file.
func LoadFixture(path string) (*Fixture, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var f Fixture
	if err := yaml.Unmarshal(buf, &f); err != nil {
		return nil, fmt.Errorf("decoding fixture %s: %w", path, err)
	}
	return &f, nil
}

type fixtureHandler struct {
	mu    sync.Mutex
	users []post.User
	posts []post.Post
}

// NewFixtureHandler returns a handler serving the fixture's users and posts
// using the same routes as the remote API. Updates to posts are retained in
// memory; the fixture itself is left unmodified.
func NewFixtureHandler(f *Fixture) http.Handler {
	h := &fixtureHandler{
		users: slices.Clone(f.Users),
		posts: slices.Clone(f.Posts),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /posts", h.listPosts)
	mux.HandleFunc("GET /users/{id}", h.getUser)
	mux.HandleFunc("PATCH /posts/{id}", h.updatePost)
	return mux
}

func (h *fixtureHandler) listPosts(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	posts := []post.Post{}
	if q := r.URL.Query().Get("userId"); q != "" {
		userID, err := strconv.Atoi(q)
		if err != nil {
			http.Error(w, "invalid userId", http.StatusBadRequest)
			return
		}
		for _, p := range h.posts {
			if p.UserID == userID {
				posts = append(posts, p)
			}
		}
	} else {
		posts = append(posts, h.posts...)
	}
	writeJSON(w, posts)
}

func (h *fixtureHandler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, u := range h.users {
		if u.ID == id {
			writeJSON(w, u)
			return
		}
	}
	http.NotFound(w, r)
}

func (h *fixtureHandler) updatePost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var patch struct {
		Title *string `json:"title"`
		Body  *string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	i := slices.IndexFunc(h.posts, func(p post.Post) bool { return p.ID == id })
	if i < 0 {
		http.NotFound(w, r)
		return
	}
	if patch.Title != nil {
		h.posts[i].Title = *patch.Title
	}
	if patch.Body != nil {
		h.posts[i].Body = *patch.Body
	}
	writeJSON(w, h.posts[i])
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
