package store

import (
	"context"
	"testing"

	"capital-portal/internal/api"
	"capital-portal/internal/model"
)

type fakeInfoService struct {
	materials     []model.InfoMaterial
	total         int
	material      model.InfoMaterial
	faqs          []model.FAQ
	faq           model.FAQ
	consultations []model.ConsultationRequest
	consultation  model.ConsultationRequest
	err           error

	publicFAQCalls int
	adminFAQCalls  int
}

func (f *fakeInfoService) Materials(context.Context, int, int) ([]model.InfoMaterial, int, error) {
	return f.materials, f.total, f.err
}

func (f *fakeInfoService) MaterialByID(context.Context, model.ID) (model.InfoMaterial, error) {
	return f.material, f.err
}

func (f *fakeInfoService) CreateMaterial(context.Context, model.CreateInfoMaterialData) (model.InfoMaterial, error) {
	return f.material, f.err
}

func (f *fakeInfoService) UpdateMaterial(context.Context, model.ID, model.CreateInfoMaterialData) (model.InfoMaterial, error) {
	return f.material, f.err
}

func (f *fakeInfoService) DeleteMaterial(context.Context, model.ID) error {
	return f.err
}

func (f *fakeInfoService) FAQs(context.Context, string) ([]model.FAQ, error) {
	f.publicFAQCalls++
	return f.faqs, f.err
}

func (f *fakeInfoService) AllFAQs(context.Context, string) ([]model.FAQ, error) {
	f.adminFAQCalls++
	return f.faqs, f.err
}

func (f *fakeInfoService) CreateFAQ(context.Context, model.CreateFAQData) (model.FAQ, error) {
	return f.faq, f.err
}

func (f *fakeInfoService) UpdateFAQ(context.Context, model.ID, model.CreateFAQData) (model.FAQ, error) {
	return f.faq, f.err
}

func (f *fakeInfoService) DeleteFAQ(context.Context, model.ID) error {
	return f.err
}

func (f *fakeInfoService) SubmitConsultation(context.Context, model.CreateConsultationData) (model.ConsultationRequest, error) {
	return f.consultation, f.err
}

func (f *fakeInfoService) MyConsultations(context.Context) ([]model.ConsultationRequest, error) {
	return f.consultations, f.err
}

func (f *fakeInfoService) AllConsultations(context.Context, model.ConsultationStatus) ([]model.ConsultationRequest, error) {
	return f.consultations, f.err
}

func (f *fakeInfoService) UpdateConsultationStatus(_ context.Context, id model.ID, status model.ConsultationStatus) (model.ConsultationRequest, error) {
	if f.err != nil {
		return model.ConsultationRequest{}, f.err
	}
	return model.ConsultationRequest{ID: id, Status: status}, nil
}

func TestFetchMaterialsCachesPageAndTotal(t *testing.T) {
	svc := &fakeInfoService{
		materials: []model.InfoMaterial{{ID: 1, Title: "How to apply"}},
		total:     42,
	}
	slice := NewInfoSlice(svc, nil)

	if err := slice.FetchMaterials(context.Background(), 1, 10); err != nil {
		t.Fatalf("FetchMaterials: %v", err)
	}
	state := slice.State()
	if len(state.Materials) != 1 || state.MaterialsTotal != 42 {
		t.Fatalf("page/total not cached: %+v", state)
	}

	// A failed fetch keeps the cached page; only the error is recorded.
	svc.err = api.NewError(api.KindNetwork, "the server could not be reached")
	if err := slice.FetchMaterials(context.Background(), 2, 10); err == nil {
		t.Fatalf("expected fetch error")
	}
	state = slice.State()
	if len(state.Materials) != 1 {
		t.Fatalf("cached page dropped on failure")
	}
	if state.Error == "" {
		t.Fatalf("error not recorded")
	}
}

func TestMaterialCRUDKeepsListConsistent(t *testing.T) {
	svc := &fakeInfoService{
		materials: []model.InfoMaterial{{ID: 1, Title: "old"}, {ID: 2, Title: "keep"}},
		total:     2,
	}
	slice := NewInfoSlice(svc, nil)
	ctx := context.Background()
	if err := slice.FetchMaterials(ctx, 1, 10); err != nil {
		t.Fatal(err)
	}

	svc.material = model.InfoMaterial{ID: 1, Title: "new"}
	if err := slice.UpdateMaterial(ctx, 1, model.CreateInfoMaterialData{Title: "new"}); err != nil {
		t.Fatal(err)
	}
	state := slice.State()
	if state.Materials[0].Title != "new" || state.Materials[1].Title != "keep" {
		t.Fatalf("update patched the wrong entry: %+v", state.Materials)
	}

	svc.material = model.InfoMaterial{ID: 1, Title: "current"}
	if err := slice.FetchMaterialByID(ctx, 1); err != nil {
		t.Fatal(err)
	}
	svc.material = model.InfoMaterial{ID: 1, Title: "edited"}
	if err := slice.UpdateMaterial(ctx, 1, model.CreateInfoMaterialData{Title: "edited"}); err != nil {
		t.Fatal(err)
	}
	if cur := slice.State().CurrentMaterial; cur == nil || cur.Title != "edited" {
		t.Fatalf("current material not kept in sync: %+v", cur)
	}

	if err := slice.DeleteMaterial(ctx, 1); err != nil {
		t.Fatal(err)
	}
	state = slice.State()
	if len(state.Materials) != 1 || state.Materials[0].ID != 2 {
		t.Fatalf("wrong entry removed: %+v", state.Materials)
	}
}

func TestFAQFetchSelectsVisibilityPath(t *testing.T) {
	svc := &fakeInfoService{faqs: []model.FAQ{{ID: 1, Question: "q"}}}
	slice := NewInfoSlice(svc, nil)
	ctx := context.Background()

	if err := slice.FetchFAQs(ctx, "payments"); err != nil {
		t.Fatal(err)
	}
	if err := slice.FetchAllFAQs(ctx, ""); err != nil {
		t.Fatal(err)
	}
	if svc.publicFAQCalls != 1 || svc.adminFAQCalls != 1 {
		t.Fatalf("visibility paths not distinguished: public=%d admin=%d", svc.publicFAQCalls, svc.adminFAQCalls)
	}
	if len(slice.State().FAQs) != 1 {
		t.Fatalf("FAQ cache not replaced")
	}
}

func TestConsultationStatusPatchesMatchingRequest(t *testing.T) {
	svc := &fakeInfoService{
		consultations: []model.ConsultationRequest{
			{ID: 1, Status: model.ConsultationPending},
			{ID: 2, Status: model.ConsultationPending},
		},
	}
	slice := NewInfoSlice(svc, nil)
	ctx := context.Background()
	if err := slice.FetchAllConsultations(ctx, ""); err != nil {
		t.Fatal(err)
	}

	if err := slice.UpdateConsultationStatus(ctx, 2, model.ConsultationCompleted); err != nil {
		t.Fatal(err)
	}
	state := slice.State()
	if state.ConsultationRequests[0].Status != model.ConsultationPending {
		t.Fatalf("unrelated request patched: %+v", state.ConsultationRequests)
	}
	if state.ConsultationRequests[1].Status != model.ConsultationCompleted {
		t.Fatalf("matching request not patched: %+v", state.ConsultationRequests)
	}
}

func TestSubmitConsultationAppends(t *testing.T) {
	svc := &fakeInfoService{
		consultation: model.ConsultationRequest{ID: 9, Subject: "appointment", Status: model.ConsultationPending},
	}
	slice := NewInfoSlice(svc, nil)

	err := slice.SubmitConsultation(context.Background(), model.CreateConsultationData{Subject: "appointment"})
	if err != nil {
		t.Fatalf("SubmitConsultation: %v", err)
	}
	got := slice.State().ConsultationRequests
	if len(got) != 1 || got[0].ID != 9 {
		t.Fatalf("request not appended: %+v", got)
	}
}
