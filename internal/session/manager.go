package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"users-table/internal/model"
	"users-table/internal/worker"

	"github.com/google/uuid"
	"golang.org/x/text/language"
)

// Fetcher loads the remote user collection.
type Fetcher interface {
	Fetch(ctx context.Context) ([]model.User, error)
}

// Options tunes a Manager. Zero values fall back to defaults.
type Options struct {
	FetchTimeout time.Duration
	Locale       language.Tag
}

// Manager is the single owner of session state transitions.
type Manager struct {
	store        Store
	fetcher      Fetcher
	pool         worker.Pool
	hub          *Hub
	fetchTimeout time.Duration
	locale       language.Tag

	newID func() string
	now   func() time.Time
}

func NewManager(store Store, fetcher Fetcher, pool worker.Pool, opts Options) *Manager {
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 10 * time.Second
	}
	if opts.Locale == language.Und {
		opts.Locale = language.English
	}
	return &Manager{
		store:        store,
		fetcher:      fetcher,
		pool:         pool,
		hub:          NewHub(),
		fetchTimeout: opts.FetchTimeout,
		locale:       opts.Locale,
		newID:        uuid.NewString,
		now:          time.Now,
	}
}

// Open starts a session in the loading phase and schedules its one fetch.
func (m *Manager) Open(ctx context.Context) (State, error) {
	st := State{
		ID:        m.newID(),
		Users:     []model.User{},
		Phase:     model.StateLoading,
		CreatedAt: m.now(),
	}
	if err := m.store.Create(ctx, st); err != nil {
		return State{}, fmt.Errorf("create session: %w", err)
	}
	id := st.ID
	if !m.pool.Submit(func() { m.load(id) }) {
		m.complete(id, nil, errors.New("worker pool stopped"))
	}
	return st, nil
}

// load runs on a worker. It is detached from the request that opened the
// session, so it gets its own deadline.
func (m *Manager) load(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), m.fetchTimeout)
	defer cancel()
	users, err := m.fetcher.Fetch(ctx)
	m.complete(id, users, err)
}

func (m *Manager) complete(id string, users []model.User, fetchErr error) {
	_, err := m.store.Update(context.Background(), id, func(st *State) error {
		if fetchErr != nil {
			st.Users = []model.User{}
			st.Phase = model.StateFailed
			st.Notice = FailureNotice
			return nil
		}
		st.Users = users
		st.Phase = model.StateFor(users)
		return nil
	})
	if fetchErr != nil {
		log.Printf("session %s: fetch users: %v", id, fetchErr)
	}
	if err != nil {
		log.Printf("session %s: store fetch result: %v", id, err)
		return
	}
	m.hub.Publish(id)
}

// Sort applies a header activation for key and returns the new view.
func (m *Manager) Sort(ctx context.Context, id string, key model.SortKey) (TableView, error) {
	var notice string
	st, err := m.store.Update(ctx, id, func(st *State) error {
		st.Sort = st.Sort.Toggle(key)
		notice = takeNotice(st)
		return nil
	})
	if err != nil {
		return TableView{}, err
	}
	m.hub.Publish(id)
	return Derive(st, notice, m.locale), nil
}

// Table returns the current view, delivering a pending notice exactly once.
func (m *Manager) Table(ctx context.Context, id string) (TableView, error) {
	st, err := m.store.Get(ctx, id)
	if err != nil {
		return TableView{}, err
	}
	if st.Notice == "" || st.Phase.Pending() {
		return Derive(st, "", m.locale), nil
	}
	var notice string
	st, err = m.store.Update(ctx, id, func(st *State) error {
		notice = takeNotice(st)
		return nil
	})
	if err != nil {
		return TableView{}, err
	}
	return Derive(st, notice, m.locale), nil
}

// Snapshot returns the current view without consuming the notice.
func (m *Manager) Snapshot(ctx context.Context, id string) (TableView, error) {
	st, err := m.store.Get(ctx, id)
	if err != nil {
		return TableView{}, err
	}
	return Derive(st, "", m.locale), nil
}

// Wait blocks until the session has left the loading phase or ctx ends.
func (m *Manager) Wait(ctx context.Context, id string) error {
	changed, cancel := m.hub.Subscribe(id)
	defer cancel()
	for {
		st, err := m.store.Get(ctx, id)
		if err != nil {
			return err
		}
		if !st.Phase.Pending() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-changed:
		}
	}
}

// Ping checks the backing store.
func (m *Manager) Ping(ctx context.Context) error {
	return m.store.Ping(ctx)
}
