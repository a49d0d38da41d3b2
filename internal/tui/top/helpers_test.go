package top

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/x/exp/teatest"
	"github.com/leg100/postie/internal/logging"
	"github.com/leg100/postie/internal/post"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	mu    sync.Mutex
	posts []post.Post
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		posts: []post.Post{
			{ID: 1, UserID: 1, Title: "123", Body: "Some body"},
			{ID: 2, UserID: 2, Title: "qui est esse", Body: "est rerum tempore vitae"},
		},
	}
}

func (f *fakeClient) ListPosts(context.Context) ([]post.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return slices.Clone(f.posts), nil
}

func (f *fakeClient) ListPostsByUser(_ context.Context, userID int) ([]post.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var posts []post.Post
	for _, p := range f.posts {
		if p.UserID == userID {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

func (f *fakeClient) GetUser(_ context.Context, id int) (post.User, error) {
	if id != 1 {
		return post.User{}, errors.New("HTTP error 404")
	}
	return post.User{ID: 1, Name: "Leanne Graham", Username: "Bret"}, nil
}

func (f *fakeClient) UpdatePost(_ context.Context, patch post.Patch) (post.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, p := range f.posts {
		if p.ID == patch.ID {
			f.posts[i].Title = patch.Title
			return f.posts[i], nil
		}
	}
	return post.Post{}, errors.New("HTTP error 404")
}

func setup(t *testing.T, opts Options) *teatest.TestModel {
	t.Helper()

	logger := logging.NewLogger(logging.Options{Level: "debug"})
	svc := post.NewService(post.ServiceOptions{
		Client: newFakeClient(),
		UserID: 1,
		Logger: logger,
	})
	t.Cleanup(svc.Close)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	// Subscribe before the first page is made so that no event is missed.
	postEvents := svc.SubscribePosts(ctx)
	userEvents := svc.SubscribeUser(ctx)
	logEvents := logger.Subscribe(ctx)

	opts.Posts = svc
	opts.Logger = logger
	if opts.FirstPage == "" {
		opts.FirstPage = "posts"
	}
	m, err := New(opts)
	require.NoError(t, err)

	tm := teatest.NewTestModel(
		t,
		m,
		teatest.WithInitialTermSize(100, 30),
	)
	t.Cleanup(func() {
		_ = tm.Quit()
	})
	go relay(postEvents, tm)
	go relay(userEvents, tm)
	go relay(logEvents, tm)
	return tm
}

func relay[T any](events <-chan T, tm *teatest.TestModel) {
	for ev := range events {
		tm.Send(ev)
	}
}

func waitFor(t *testing.T, tm *teatest.TestModel, cond func(s string) bool) {
	t.Helper()

	teatest.WaitFor(
		t,
		tm.Output(),
		func(b []byte) bool {
			return cond(string(b))
		},
		teatest.WithCheckInterval(time.Millisecond*100),
		teatest.WithDuration(time.Second*5),
	)
}
