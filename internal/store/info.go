package store

import (
	"context"
	"sync"

	"capital-portal/internal/api"
	"capital-portal/internal/model"
	"capital-portal/internal/service"
)

// InfoState is a snapshot of the informational-content slice: three
// independent resource lists sharing one loading/error pair.
type InfoState struct {
	Materials       []model.InfoMaterial
	MaterialsTotal  int
	CurrentMaterial *model.InfoMaterial

	FAQs []model.FAQ

	ConsultationRequests []model.ConsultationRequest

	Loading bool
	Error   string
}

// InfoSlice owns the materials, FAQ and consultation caches. Each fetch
// variant simply replaces its cached list; the slice never merges partial
// result sets.
type InfoSlice struct {
	mu       sync.RWMutex
	state    InfoState
	service  service.InfoService
	logger   Logger
	onChange func()
}

// NewInfoSlice builds the info slice.
func NewInfoSlice(svc service.InfoService, logger Logger) *InfoSlice {
	if logger == nil {
		logger = nopLogger{}
	}
	return &InfoSlice{service: svc, logger: logger}
}

func (s *InfoSlice) setOnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// State returns a copy of the current snapshot with cloned list headers.
func (s *InfoSlice) State() InfoState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := s.state
	snapshot.Materials = append([]model.InfoMaterial(nil), s.state.Materials...)
	snapshot.FAQs = append([]model.FAQ(nil), s.state.FAQs...)
	snapshot.ConsultationRequests = append([]model.ConsultationRequest(nil), s.state.ConsultationRequests...)
	return snapshot
}

func (s *InfoSlice) begin() {
	s.mu.Lock()
	s.state.Loading = true
	s.state.Error = ""
	s.mu.Unlock()
	s.notify()
}

func (s *InfoSlice) fail(err error) {
	s.mu.Lock()
	s.state.Loading = false
	s.state.Error = api.MessageOf(err)
	s.mu.Unlock()
	s.notify()
}

func (s *InfoSlice) commit(mutate func(*InfoState)) {
	s.mu.Lock()
	s.state.Loading = false
	mutate(&s.state)
	s.mu.Unlock()
	s.notify()
}

func (s *InfoSlice) notify() {
	s.mu.RLock()
	fn := s.onChange
	s.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// FetchMaterials replaces the cached materials page.
func (s *InfoSlice) FetchMaterials(ctx context.Context, page, limit int) error {
	s.begin()
	materials, total, err := s.service.Materials(ctx, page, limit)
	if err != nil {
		s.fail(err)
		return err
	}
	s.commit(func(st *InfoState) {
		st.Materials = materials
		st.MaterialsTotal = total
	})
	return nil
}

// FetchMaterialByID loads one material into the current-material slot.
func (s *InfoSlice) FetchMaterialByID(ctx context.Context, id model.ID) error {
	s.begin()
	material, err := s.service.MaterialByID(ctx, id)
	if err != nil {
		s.fail(err)
		return err
	}
	s.commit(func(st *InfoState) {
		st.CurrentMaterial = &material
	})
	return nil
}

// CreateMaterial appends the created material to the cached list.
func (s *InfoSlice) CreateMaterial(ctx context.Context, data model.CreateInfoMaterialData) error {
	s.begin()
	created, err := s.service.CreateMaterial(ctx, data)
	if err != nil {
		s.fail(err)
		return err
	}
	s.commit(func(st *InfoState) {
		st.Materials = append(st.Materials, created)
	})
	return nil
}

// UpdateMaterial patches the matching list entry in place.
func (s *InfoSlice) UpdateMaterial(ctx context.Context, id model.ID, data model.CreateInfoMaterialData) error {
	s.begin()
	updated, err := s.service.UpdateMaterial(ctx, id, data)
	if err != nil {
		s.fail(err)
		return err
	}
	s.commit(func(st *InfoState) {
		for i := range st.Materials {
			if st.Materials[i].ID == id {
				st.Materials[i] = updated
				break
			}
		}
		if st.CurrentMaterial != nil && st.CurrentMaterial.ID == id {
			st.CurrentMaterial = &updated
		}
	})
	return nil
}

// DeleteMaterial removes the entry from the cached list.
func (s *InfoSlice) DeleteMaterial(ctx context.Context, id model.ID) error {
	s.begin()
	if err := s.service.DeleteMaterial(ctx, id); err != nil {
		s.fail(err)
		return err
	}
	s.commit(func(st *InfoState) {
		kept := make([]model.InfoMaterial, 0, len(st.Materials))
		for _, m := range st.Materials {
			if m.ID != id {
				kept = append(kept, m)
			}
		}
		st.Materials = kept
	})
	return nil
}

// FetchFAQs replaces the FAQ cache with published entries only.
func (s *InfoSlice) FetchFAQs(ctx context.Context, category string) error {
	s.begin()
	faqs, err := s.service.FAQs(ctx, category)
	if err != nil {
		s.fail(err)
		return err
	}
	s.commit(func(st *InfoState) {
		st.FAQs = faqs
	})
	return nil
}

// FetchAllFAQs replaces the FAQ cache including unpublished entries
// (admin path).
func (s *InfoSlice) FetchAllFAQs(ctx context.Context, category string) error {
	s.begin()
	faqs, err := s.service.AllFAQs(ctx, category)
	if err != nil {
		s.fail(err)
		return err
	}
	s.commit(func(st *InfoState) {
		st.FAQs = faqs
	})
	return nil
}

// CreateFAQ appends the created entry to the FAQ cache.
func (s *InfoSlice) CreateFAQ(ctx context.Context, data model.CreateFAQData) error {
	s.begin()
	created, err := s.service.CreateFAQ(ctx, data)
	if err != nil {
		s.fail(err)
		return err
	}
	s.commit(func(st *InfoState) {
		st.FAQs = append(st.FAQs, created)
	})
	return nil
}

// UpdateFAQ patches the matching FAQ entry in place.
func (s *InfoSlice) UpdateFAQ(ctx context.Context, id model.ID, data model.CreateFAQData) error {
	s.begin()
	updated, err := s.service.UpdateFAQ(ctx, id, data)
	if err != nil {
		s.fail(err)
		return err
	}
	s.commit(func(st *InfoState) {
		for i := range st.FAQs {
			if st.FAQs[i].ID == id {
				st.FAQs[i] = updated
				break
			}
		}
	})
	return nil
}

// DeleteFAQ removes the entry from the FAQ cache.
func (s *InfoSlice) DeleteFAQ(ctx context.Context, id model.ID) error {
	s.begin()
	if err := s.service.DeleteFAQ(ctx, id); err != nil {
		s.fail(err)
		return err
	}
	s.commit(func(st *InfoState) {
		kept := make([]model.FAQ, 0, len(st.FAQs))
		for _, f := range st.FAQs {
			if f.ID != id {
				kept = append(kept, f)
			}
		}
		st.FAQs = kept
	})
	return nil
}

// SubmitConsultation sends the contact form and appends the created
// request to the cached list.
func (s *InfoSlice) SubmitConsultation(ctx context.Context, data model.CreateConsultationData) error {
	s.begin()
	created, err := s.service.SubmitConsultation(ctx, data)
	if err != nil {
		s.fail(err)
		return err
	}
	s.commit(func(st *InfoState) {
		st.ConsultationRequests = append(st.ConsultationRequests, created)
	})
	return nil
}

// FetchMyConsultations replaces the cache with the caller's requests.
func (s *InfoSlice) FetchMyConsultations(ctx context.Context) error {
	s.begin()
	requests, err := s.service.MyConsultations(ctx)
	if err != nil {
		s.fail(err)
		return err
	}
	s.commit(func(st *InfoState) {
		st.ConsultationRequests = requests
	})
	return nil
}

// FetchAllConsultations replaces the cache with every request (admin
// path), optionally filtered by status.
func (s *InfoSlice) FetchAllConsultations(ctx context.Context, status model.ConsultationStatus) error {
	s.begin()
	requests, err := s.service.AllConsultations(ctx, status)
	if err != nil {
		s.fail(err)
		return err
	}
	s.commit(func(st *InfoState) {
		st.ConsultationRequests = requests
	})
	return nil
}

// UpdateConsultationStatus patches the matching request in place. The
// status enum is flat; no transition rules are checked client-side.
func (s *InfoSlice) UpdateConsultationStatus(ctx context.Context, id model.ID, status model.ConsultationStatus) error {
	s.begin()
	updated, err := s.service.UpdateConsultationStatus(ctx, id, status)
	if err != nil {
		s.fail(err)
		return err
	}
	s.commit(func(st *InfoState) {
		for i := range st.ConsultationRequests {
			if st.ConsultationRequests[i].ID == id {
				st.ConsultationRequests[i] = updated
				break
			}
		}
	})
	return nil
}

// ClearError resets the stored error string.
func (s *InfoSlice) ClearError() {
	s.mu.Lock()
	s.state.Error = ""
	s.mu.Unlock()
	s.notify()
}
