package store

import (
	"context"
	"sync"

	"capital-portal/internal/api"
	"capital-portal/internal/model"
	"capital-portal/internal/service"
)

// ApplicationsState is a snapshot of the application slice.
type ApplicationsState struct {
	// Applications is the role-scoped cached list: a user's own
	// applications, or every application for admins.
	Applications []model.Application
	// Detail is the single selected-application slot: the application plus
	// its comments and any denormalized submitter snapshots. Both the
	// general detail page and the admin review view read from it.
	Detail  *model.ApplicationDetails
	Loading bool
	Error   string
}

// ApplicationSlice owns the benefit-application cache.
type ApplicationSlice struct {
	mu       sync.RWMutex
	state    ApplicationsState
	service  service.ApplicationService
	logger   Logger
	onChange func()
}

// NewApplicationSlice builds the application slice.
func NewApplicationSlice(svc service.ApplicationService, logger Logger) *ApplicationSlice {
	if logger == nil {
		logger = nopLogger{}
	}
	return &ApplicationSlice{service: svc, logger: logger}
}

func (s *ApplicationSlice) setOnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// State returns a copy of the current snapshot with a cloned list header.
func (s *ApplicationSlice) State() ApplicationsState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := s.state
	snapshot.Applications = append([]model.Application(nil), s.state.Applications...)
	return snapshot
}

func (s *ApplicationSlice) begin() {
	s.mu.Lock()
	s.state.Loading = true
	s.state.Error = ""
	s.mu.Unlock()
	s.notify()
}

func (s *ApplicationSlice) fail(err error) {
	s.mu.Lock()
	s.state.Loading = false
	s.state.Error = api.MessageOf(err)
	s.mu.Unlock()
	s.notify()
}

func (s *ApplicationSlice) commit(mutate func(*ApplicationsState)) {
	s.mu.Lock()
	s.state.Loading = false
	mutate(&s.state)
	s.mu.Unlock()
	s.notify()
}

func (s *ApplicationSlice) notify() {
	s.mu.RLock()
	fn := s.onChange
	s.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// denormalize folds the detail envelope's submitter snapshots onto the
// application record so views can read one object.
func denormalize(details model.ApplicationDetails) model.ApplicationDetails {
	if details.UserProfile != nil {
		details.Application.UserProfile = details.UserProfile
	}
	if len(details.FamilyMembers) > 0 {
		details.Application.FamilyMembers = details.FamilyMembers
	}
	return details
}

// Create submits a new application, appends it to the cached list and
// selects it. On failure the list is left unchanged.
func (s *ApplicationSlice) Create(ctx context.Context, data model.CreateApplicationData) error {
	s.begin()
	details, err := s.service.Create(ctx, data)
	if err != nil {
		s.fail(err)
		return err
	}
	details = denormalize(details)
	s.commit(func(st *ApplicationsState) {
		st.Applications = append(st.Applications, details.Application)
		st.Detail = &details
	})
	return nil
}

// FetchMine replaces the cached list with the caller's applications. On
// failure the list is cleared to empty rather than left stale.
func (s *ApplicationSlice) FetchMine(ctx context.Context) error {
	s.begin()
	apps, err := s.service.Mine(ctx)
	if err != nil {
		s.failAndClearList(err)
		return err
	}
	s.commit(func(st *ApplicationsState) {
		st.Applications = apps
	})
	return nil
}

// FetchAll replaces the cached list with every application (admin scope),
// optionally filtered. Same clear-on-failure policy as FetchMine.
func (s *ApplicationSlice) FetchAll(ctx context.Context, filter model.ApplicationFilter) error {
	s.begin()
	apps, err := s.service.All(ctx, filter)
	if err != nil {
		s.failAndClearList(err)
		return err
	}
	s.commit(func(st *ApplicationsState) {
		st.Applications = apps
	})
	return nil
}

// Stale-but-present data is worse than visibly empty data.
func (s *ApplicationSlice) failAndClearList(err error) {
	s.mu.Lock()
	s.state.Loading = false
	s.state.Error = api.MessageOf(err)
	s.state.Applications = []model.Application{}
	s.mu.Unlock()
	s.notify()
}

// FetchByID loads one application into the detail slot, folding any
// embedded profile/family snapshots onto the application record.
func (s *ApplicationSlice) FetchByID(ctx context.Context, id model.ID) error {
	s.begin()
	details, err := s.service.ByID(ctx, id)
	if err != nil {
		s.fail(err)
		return err
	}
	details = denormalize(details)
	s.commit(func(st *ApplicationsState) {
		st.Detail = &details
	})
	return nil
}

// UpdateStatus submits an admin status transition. The payload-shape rules
// are enforced before anything is sent: the validation failure is returned
// to the submitting form and never touches the network or the slice state.
// On success the detail slot is replaced and the matching list entry is
// patched in place; a previously denormalized profile on that entry is
// preserved when the fresh response omits one, and every other entry is
// left untouched.
func (s *ApplicationSlice) UpdateStatus(ctx context.Context, id model.ID, data model.UpdateStatusData) error {
	if err := data.Validate(); err != nil {
		return api.NewError(api.KindValidation, err.Error())
	}
	s.begin()
	details, err := s.service.UpdateStatus(ctx, id, data)
	if err != nil {
		s.fail(err)
		return err
	}
	details = denormalize(details)
	s.commit(func(st *ApplicationsState) {
		st.Detail = &details
		for i := range st.Applications {
			if st.Applications[i].ID != details.Application.ID {
				continue
			}
			existingProfile := st.Applications[i].UserProfile
			st.Applications[i] = details.Application
			if st.Applications[i].UserProfile == nil {
				st.Applications[i].UserProfile = existingProfile
			}
			break
		}
	})
	return nil
}

// AddComment appends the created comment to the selected application's
// comment list. Nothing is shown optimistically; the append happens only
// after the backend confirms.
func (s *ApplicationSlice) AddComment(ctx context.Context, id model.ID, comment string) error {
	s.begin()
	created, err := s.service.AddComment(ctx, id, comment)
	if err != nil {
		s.fail(err)
		return err
	}
	s.commit(func(st *ApplicationsState) {
		if st.Detail != nil && st.Detail.Application.ID == id {
			st.Detail.Comments = append(st.Detail.Comments, created)
		}
	})
	return nil
}

// ClearDetail empties the detail slot so one view's selection cannot leak
// into another.
func (s *ApplicationSlice) ClearDetail() {
	s.mu.Lock()
	s.state.Detail = nil
	s.mu.Unlock()
	s.notify()
}

// ClearError resets the stored error string.
func (s *ApplicationSlice) ClearError() {
	s.mu.Lock()
	s.state.Error = ""
	s.mu.Unlock()
	s.notify()
}
