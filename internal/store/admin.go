package store

import (
	"context"
	"sync"

	"capital-portal/internal/api"
	"capital-portal/internal/model"
	"capital-portal/internal/service"
)

// AdminState is a snapshot of the admin slice. It carries its own
// loading/error pair so the users table can fail independently of
// whatever else an admin page shows.
type AdminState struct {
	Users        []model.User
	LoadingUsers bool
	UsersError   string
}

// AdminSlice owns the admin-only user directory cache.
type AdminSlice struct {
	mu       sync.RWMutex
	state    AdminState
	service  service.AdminService
	logger   Logger
	onChange func()
}

// NewAdminSlice builds the admin slice.
func NewAdminSlice(svc service.AdminService, logger Logger) *AdminSlice {
	if logger == nil {
		logger = nopLogger{}
	}
	return &AdminSlice{service: svc, logger: logger}
}

func (s *AdminSlice) setOnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// State returns a copy of the current snapshot with a cloned list header.
func (s *AdminSlice) State() AdminState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := s.state
	snapshot.Users = append([]model.User(nil), s.state.Users...)
	return snapshot
}

func (s *AdminSlice) notify() {
	s.mu.RLock()
	fn := s.onChange
	s.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// FetchUsers replaces the cached user directory. On failure the list is
// cleared to empty, same policy as the application list.
func (s *AdminSlice) FetchUsers(ctx context.Context) error {
	s.mu.Lock()
	s.state.LoadingUsers = true
	s.state.UsersError = ""
	s.mu.Unlock()
	s.notify()

	users, err := s.service.Users(ctx)

	s.mu.Lock()
	s.state.LoadingUsers = false
	if err != nil {
		s.state.UsersError = api.MessageOf(err)
		s.state.Users = []model.User{}
	} else {
		s.state.Users = users
	}
	s.mu.Unlock()
	s.notify()
	return err
}

// ClearError resets the stored error string.
func (s *AdminSlice) ClearError() {
	s.mu.Lock()
	s.state.UsersError = ""
	s.mu.Unlock()
	s.notify()
}
