package post

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/leg100/postie/internal/logging"
	"github.com/leg100/postie/internal/pubsub"
	"github.com/leg100/postie/internal/resource"
)

// Client retrieves and updates posts from the remote API.
type Client interface {
	ListPosts(ctx context.Context) ([]Post, error)
	ListPostsByUser(ctx context.Context, userID int) ([]Post, error)
	GetUser(ctx context.Context, id int) (User, error)
	UpdatePost(ctx context.Context, patch Patch) (Post, error)
}

type ServiceOptions struct {
	Client Client
	// UserID is the user whose posts are tracked by UserPosts.
	UserID int
	// Timeout bounds each fetch attempt. Zero means no timeout.
	Timeout time.Duration
	Logger  logging.Interface
}

// Service owns the post resources.
type Service struct {
	// Posts is the list of all posts.
	Posts *resource.Resource[[]Post]
	// User is the user whose posts are listed in UserPosts.
	User *resource.Resource[User]
	// UserPosts is the list of posts authored by User. It is only fetched
	// once User has been fetched.
	UserPosts *resource.Resource[[]Post]

	client Client
	logger logging.Interface

	postsBroker *pubsub.Broker[resource.State[[]Post]]
	userBroker  *pubsub.Broker[resource.State[User]]
}

// NewService constructs the service, dispatching the initial fetch of each
// resource.
func NewService(opts ServiceOptions) *Service {
	if opts.Logger == nil {
		opts.Logger = logging.Discard
	}
	svc := &Service{
		client:      opts.Client,
		logger:      opts.Logger,
		postsBroker: pubsub.NewBroker[resource.State[[]Post]](opts.Logger),
		userBroker:  pubsub.NewBroker[resource.State[User]](opts.Logger),
	}
	svc.Posts = resource.New("posts", opts.Client.ListPosts, resource.Options[[]Post]{
		Publisher: svc.postsBroker,
		Logger:    opts.Logger,
		Timeout:   opts.Timeout,
	})
	svc.User = resource.New("user-"+strconv.Itoa(opts.UserID), func(ctx context.Context) (User, error) {
		return opts.Client.GetUser(ctx, opts.UserID)
	}, resource.Options[User]{
		Publisher: svc.userBroker,
		Logger:    opts.Logger,
		Timeout:   opts.Timeout,
	})
	svc.UserPosts = resource.Depend(svc.User, "user-posts", func(ctx context.Context, user User) ([]Post, error) {
		return opts.Client.ListPostsByUser(ctx, user.ID)
	}, resource.Options[[]Post]{
		Publisher: svc.postsBroker,
		Logger:    opts.Logger,
		Timeout:   opts.Timeout,
	})
	return svc
}

// SubscribePosts subscribes to changes to both the Posts and UserPosts
// resources. Events can be distinguished by their payload's ID.
func (s *Service) SubscribePosts(ctx context.Context) <-chan resource.Event[resource.State[[]Post]] {
	return s.postsBroker.Subscribe(ctx)
}

// SubscribeUser subscribes to changes to the User resource.
func (s *Service) SubscribeUser(ctx context.Context) <-chan resource.Event[resource.State[User]] {
	return s.userBroker.Subscribe(ctx)
}

// UpdateTitle validates and updates the title of a post. Upon success, the
// post lists are refetched.
func (s *Service) UpdateTitle(ctx context.Context, id int, title string) (Post, error) {
	title, err := ValidateTitle(title)
	if err != nil {
		return Post{}, err
	}
	updated, err := s.client.UpdatePost(ctx, Patch{ID: id, Title: title})
	if err != nil {
		s.logger.Error("updating post", "id", id, "error", err)
		return Post{}, fmt.Errorf("updating post %d: %w", id, err)
	}
	s.logger.Info("updated post", "id", id, "title", title)

	reason := fmt.Sprintf("updated post %d", id)
	for _, r := range []*resource.Resource[[]Post]{s.Posts, s.UserPosts} {
		if err := r.Invalidate(reason); err != nil {
			return updated, err
		}
	}
	return updated, nil
}

// Loading reports whether any resource has a fetch in flight. UserPosts
// awaiting a failed User is not loading.
func (s *Service) Loading() bool {
	if s.Posts.IsPending() {
		return true
	}
	user := s.User.State()
	return user.IsPending() || (user.IsReady() && s.UserPosts.IsPending())
}

// Close cancels in-flight fetches and closes subscriptions.
func (s *Service) Close() {
	s.UserPosts.Close()
	s.User.Close()
	s.Posts.Close()
	s.postsBroker.Shutdown()
	s.userBroker.Shutdown()
}
