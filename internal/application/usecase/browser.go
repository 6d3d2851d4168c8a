// Package usecase contains application-level services.
package usecase

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tesso57/postview/internal/domain/post"
)

// FetchFailureMessage is the only failure text shown to the user.
const FetchFailureMessage = "Unable to load data"

// ErrFetchFailure collapses every reason the post collection could not be loaded.
var ErrFetchFailure = errors.New(FetchFailureMessage)

// PostFetcher abstracts retrieval of the post collection.
type PostFetcher interface {
	FetchPosts(ctx context.Context) ([]post.Post, error)
}

// Phase is the lifecycle of the browser screen.
type Phase int

const (
	Loading Phase = iota
	Error
	Ready
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Error:
		return "error"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// State is a snapshot of the browser.
type State struct {
	Posts        []post.Post
	Visible      []post.Post
	Query        string
	Phase        Phase
	Err          string
	SelectedID   int
	HasSelection bool
}

// IsSelected reports whether id is the highlighted post.
func (s State) IsSelected(id int) bool {
	return s.HasSelection && s.SelectedID == id
}

func (s State) clone() State {
	s.Posts = append([]post.Post(nil), s.Posts...)
	s.Visible = append([]post.Post(nil), s.Visible...)
	return s
}

// FetchTask is the single outstanding post fetch.
type FetchTask struct {
	done   chan struct{}
	cancel context.CancelFunc
}

// Done is closed once the fetch has resolved, whether applied or discarded.
func (t *FetchTask) Done() <-chan struct{} { return t.done }

// Cancel aborts the fetch if it is still running.
func (t *FetchTask) Cancel() { t.cancel() }

// BrowserOption configures a Browser.
type BrowserOption func(*Browser)

// WithLogger sets the diagnostic logger.
func WithLogger(logger *log.Logger) BrowserOption {
	return func(b *Browser) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// Browser is the post browser view-state controller.
type Browser struct {
	fetcher PostFetcher
	logger  *log.Logger

	mu        sync.Mutex
	state     State
	task      *FetchTask
	closed    bool
	observers map[int]func(State)
	nextID    int
}

// NewBrowser constructs a Browser in the Loading phase.
func NewBrowser(fetcher PostFetcher, opts ...BrowserOption) *Browser {
	b := &Browser{
		fetcher:   fetcher,
		logger:    log.New(io.Discard),
		state:     State{Phase: Loading, Posts: []post.Post{}, Visible: []post.Post{}},
		observers: make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Initialize starts the post fetch. Only the first call fetches; later calls
// return the same task.
func (b *Browser) Initialize(ctx context.Context) *FetchTask {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.task != nil {
		return b.task
	}
	if ctx == nil {
		ctx = context.Background()
	}
	taskCtx, cancel := context.WithCancel(ctx)
	task := &FetchTask{done: make(chan struct{}), cancel: cancel}
	b.task = task

	if b.closed {
		cancel()
		close(task.done)
		return task
	}

	go b.fetch(taskCtx, task)
	return task
}

func (b *Browser) fetch(ctx context.Context, task *FetchTask) {
	defer close(task.done)
	defer task.cancel()

	b.logger.Debug("fetching posts")
	posts, err := b.fetchPosts(ctx)
	if err != nil {
		b.logger.Warn("post fetch failed", "err", err)
	} else {
		b.logger.Info("posts loaded", "count", len(posts))
	}

	b.update(func(s *State) bool {
		if b.closed {
			b.logger.Debug("discarding fetch result after close")
			return false
		}
		if err != nil {
			s.Phase = Error
			s.Err = FetchFailureMessage
			s.Posts = []post.Post{}
			s.Visible = []post.Post{}
			return true
		}
		s.Phase = Ready
		s.Posts = append([]post.Post{}, posts...)
		s.Visible = post.Filter(s.Posts, s.Query)
		return true
	})
}

func (b *Browser) fetchPosts(ctx context.Context) ([]post.Post, error) {
	if b.fetcher == nil {
		return nil, errors.New("post fetcher is not configured")
	}
	return b.fetcher.FetchPosts(ctx)
}

// SetQuery replaces the search query and recomputes the visible set.
func (b *Browser) SetQuery(text string) {
	b.update(func(s *State) bool {
		s.Query = text
		s.Visible = post.Filter(s.Posts, text)
		return true
	})
}

// SelectPost highlights id, replacing any previous selection.
func (b *Browser) SelectPost(id int) {
	b.update(func(s *State) bool {
		s.SelectedID = id
		s.HasSelection = true
		return true
	})
}

// Snapshot returns a copy of the current state.
func (b *Browser) Snapshot() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state.clone()
}

// Subscribe registers fn to receive every new state. The returned function
// removes the subscription.
func (b *Browser) Subscribe(fn func(State)) func() {
	if fn == nil {
		return func() {}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return func() {}
	}
	id := b.nextID
	b.nextID++
	b.observers[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.observers, id)
		})
	}
}

// Close tears the browser down. An outstanding fetch is cancelled and its
// result discarded; observers are dropped.
func (b *Browser) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.observers = make(map[int]func(State))
	task := b.task
	b.mu.Unlock()

	if task != nil {
		task.Cancel()
	}
}

func (b *Browser) update(mutate func(*State) bool) {
	b.mu.Lock()
	if !mutate(&b.state) {
		b.mu.Unlock()
		return
	}
	snapshot := b.state
	observers := make([]func(State), 0, len(b.observers))
	for _, fn := range b.observers {
		observers = append(observers, fn)
	}
	b.mu.Unlock()

	for _, fn := range observers {
		fn(snapshot.clone())
	}
}
