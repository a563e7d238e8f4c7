package store

import (
	"context"
	"sync"

	"capital-portal/internal/api"
	"capital-portal/internal/model"
	"capital-portal/internal/service"
)

// AuthState is a snapshot of the authentication slice.
type AuthState struct {
	User          *model.User
	Profile       *model.UserProfile
	FamilyMembers []model.FamilyMember
	Documents     []model.Document

	IsAuthenticated bool
	// IsAdmin is always derived from User.Role at the moment of the
	// operation that set it; it is never independently settable.
	IsAdmin bool
	// InitialLoading is true until the one-time startup session check
	// resolves. Routing decisions must hold until it clears.
	InitialLoading bool
	Loading        bool
	Error          string
}

// AuthSlice owns the session identity, profile and family member cache.
type AuthSlice struct {
	mu       sync.RWMutex
	state    AuthState
	service  service.AuthService
	tokens   *api.TokenSource
	logger   Logger
	onChange func()
}

// NewAuthSlice builds the auth slice. InitialLoading starts true.
func NewAuthSlice(svc service.AuthService, tokens *api.TokenSource, logger Logger) *AuthSlice {
	if logger == nil {
		logger = nopLogger{}
	}
	return &AuthSlice{
		state:   AuthState{InitialLoading: true},
		service: svc,
		tokens:  tokens,
		logger:  logger,
	}
}

func (s *AuthSlice) setOnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// State returns a copy of the current snapshot. Slice headers are cloned
// so later commits cannot mutate a snapshot the caller holds.
func (s *AuthSlice) State() AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := s.state
	snapshot.FamilyMembers = append([]model.FamilyMember(nil), s.state.FamilyMembers...)
	snapshot.Documents = append([]model.Document(nil), s.state.Documents...)
	return snapshot
}

func (s *AuthSlice) begin() {
	s.mu.Lock()
	s.state.Loading = true
	s.state.Error = ""
	s.mu.Unlock()
	s.notify()
}

func (s *AuthSlice) fail(err error) {
	s.mu.Lock()
	s.state.Loading = false
	s.state.Error = api.MessageOf(err)
	s.mu.Unlock()
	s.notify()
}

func (s *AuthSlice) commit(mutate func(*AuthState)) {
	s.mu.Lock()
	s.state.Loading = false
	mutate(&s.state)
	s.mu.Unlock()
	s.notify()
}

func (s *AuthSlice) notify() {
	s.mu.RLock()
	fn := s.onChange
	s.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

func (s *AuthSlice) applySession(st *AuthState, user model.User) {
	u := user
	st.User = &u
	st.IsAuthenticated = true
	st.IsAdmin = user.IsAdmin()
}

// Login authenticates, persists the returned token and installs the
// session identity. No separate profile fetch is needed.
func (s *AuthSlice) Login(ctx context.Context, creds model.LoginCredentials) error {
	s.begin()
	resp, err := s.service.Login(ctx, creds)
	if err != nil {
		s.fail(err)
		return err
	}
	if resp.Token != "" {
		if err := s.tokens.SetToken(resp.Token); err != nil {
			s.logger.Printf("store: persist token after login: %v", err)
		}
	}
	s.commit(func(st *AuthState) {
		s.applySession(st, resp.User)
	})
	return nil
}

// Register creates the account and signs the user in.
func (s *AuthSlice) Register(ctx context.Context, data model.RegisterData) error {
	s.begin()
	resp, err := s.service.Register(ctx, data)
	if err != nil {
		s.fail(err)
		return err
	}
	if resp.Token != "" {
		if err := s.tokens.SetToken(resp.Token); err != nil {
			s.logger.Printf("store: persist token after register: %v", err)
		}
	}
	s.commit(func(st *AuthState) {
		s.applySession(st, resp.User)
	})
	return nil
}

// CheckAuth runs the one-time startup session check. With no stored token
// it resolves silently to unauthenticated; a failed verification is also
// treated as "not signed in", never as a fatal error.
func (s *AuthSlice) CheckAuth(ctx context.Context) {
	if s.tokens.Current() == "" {
		s.mu.Lock()
		s.state.InitialLoading = false
		s.state.IsAuthenticated = false
		s.state.IsAdmin = false
		s.state.User = nil
		s.mu.Unlock()
		s.notify()
		return
	}
	resp, err := s.service.Verify(ctx)
	s.mu.Lock()
	s.state.InitialLoading = false
	if err != nil {
		s.state.IsAuthenticated = false
		s.state.IsAdmin = false
		s.state.User = nil
	} else {
		u := resp.User
		s.state.User = &u
		s.state.IsAuthenticated = true
		s.state.IsAdmin = resp.User.IsAdmin()
	}
	s.mu.Unlock()
	s.notify()
	if err != nil {
		s.logger.Printf("store: session check failed: %v", err)
	}
}

// Logout clears every piece of auth-derived state and revokes the token.
func (s *AuthSlice) Logout() {
	if err := s.tokens.Clear(); err != nil {
		s.logger.Printf("store: clear token on logout: %v", err)
	}
	s.mu.Lock()
	s.state = AuthState{InitialLoading: false}
	s.mu.Unlock()
	s.notify()
}

// ChangePassword submits a password change for the signed-in account.
func (s *AuthSlice) ChangePassword(ctx context.Context, data model.ChangePasswordData) error {
	s.begin()
	if err := s.service.ChangePassword(ctx, data); err != nil {
		s.fail(err)
		return err
	}
	s.commit(func(*AuthState) {})
	return nil
}

// FetchProfile loads the profile, family members and documents.
func (s *AuthSlice) FetchProfile(ctx context.Context) error {
	s.begin()
	data, err := s.service.Profile(ctx)
	if err != nil {
		s.fail(err)
		return err
	}
	s.commit(func(st *AuthState) {
		st.Profile = data.Profile
		st.FamilyMembers = data.FamilyMembers
		st.Documents = data.Documents
	})
	return nil
}

// CreateProfile creates the profile. It is only legal when no profile
// exists; the backend rejects the conflict and the error comes back as a
// validation message. Callers with an existing profile must use
// UpdateProfile.
func (s *AuthSlice) CreateProfile(ctx context.Context, profile model.UserProfile) error {
	s.begin()
	created, err := s.service.CreateProfile(ctx, profile)
	if err != nil {
		s.fail(err)
		return err
	}
	s.commit(func(st *AuthState) {
		st.Profile = &created
	})
	return nil
}

// UpdateProfile updates the existing profile.
func (s *AuthSlice) UpdateProfile(ctx context.Context, profile model.UserProfile) error {
	s.begin()
	updated, err := s.service.UpdateProfile(ctx, profile)
	if err != nil {
		s.fail(err)
		return err
	}
	s.commit(func(st *AuthState) {
		st.Profile = &updated
	})
	return nil
}

// AddFamilyMember appends the created member to the cached list.
func (s *AuthSlice) AddFamilyMember(ctx context.Context, member model.FamilyMember) error {
	s.begin()
	created, err := s.service.AddFamilyMember(ctx, member)
	if err != nil {
		s.fail(err)
		return err
	}
	s.commit(func(st *AuthState) {
		st.FamilyMembers = append(st.FamilyMembers, created)
	})
	return nil
}

// UpdateFamilyMember patches the matching list entry in place.
func (s *AuthSlice) UpdateFamilyMember(ctx context.Context, id model.ID, member model.FamilyMember) error {
	s.begin()
	updated, err := s.service.UpdateFamilyMember(ctx, id, member)
	if err != nil {
		s.fail(err)
		return err
	}
	s.commit(func(st *AuthState) {
		for i := range st.FamilyMembers {
			if st.FamilyMembers[i].ID == id {
				st.FamilyMembers[i] = updated
				return
			}
		}
	})
	return nil
}

// DeleteFamilyMember removes the entry from the cached list.
func (s *AuthSlice) DeleteFamilyMember(ctx context.Context, id model.ID) error {
	s.begin()
	if err := s.service.DeleteFamilyMember(ctx, id); err != nil {
		s.fail(err)
		return err
	}
	s.commit(func(st *AuthState) {
		kept := st.FamilyMembers[:0]
		for _, m := range st.FamilyMembers {
			if m.ID != id {
				kept = append(kept, m)
			}
		}
		st.FamilyMembers = kept
	})
	return nil
}

// ClearError resets the stored error string.
func (s *AuthSlice) ClearError() {
	s.mu.Lock()
	s.state.Error = ""
	s.mu.Unlock()
	s.notify()
}
