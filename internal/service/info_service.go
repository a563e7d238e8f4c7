package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"capital-portal/internal/api"
	"capital-portal/internal/model"
)

// InfoService defines the informational-content operations: materials,
// FAQ and consultation requests.
type InfoService interface {
	Materials(ctx context.Context, page, limit int) ([]model.InfoMaterial, int, error)
	MaterialByID(ctx context.Context, id model.ID) (model.InfoMaterial, error)
	CreateMaterial(ctx context.Context, data model.CreateInfoMaterialData) (model.InfoMaterial, error)
	UpdateMaterial(ctx context.Context, id model.ID, data model.CreateInfoMaterialData) (model.InfoMaterial, error)
	DeleteMaterial(ctx context.Context, id model.ID) error

	FAQs(ctx context.Context, category string) ([]model.FAQ, error)
	AllFAQs(ctx context.Context, category string) ([]model.FAQ, error)
	CreateFAQ(ctx context.Context, data model.CreateFAQData) (model.FAQ, error)
	UpdateFAQ(ctx context.Context, id model.ID, data model.CreateFAQData) (model.FAQ, error)
	DeleteFAQ(ctx context.Context, id model.ID) error

	SubmitConsultation(ctx context.Context, data model.CreateConsultationData) (model.ConsultationRequest, error)
	MyConsultations(ctx context.Context) ([]model.ConsultationRequest, error)
	AllConsultations(ctx context.Context, status model.ConsultationStatus) ([]model.ConsultationRequest, error)
	UpdateConsultationStatus(ctx context.Context, id model.ID, status model.ConsultationStatus) (model.ConsultationRequest, error)
}

type infoService struct {
	client *api.Client
}

// NewInfoService wraps the resource API client.
func NewInfoService(client *api.Client) InfoService {
	return &infoService{client: client}
}

type materialEnvelope struct {
	Material model.InfoMaterial `json:"material"`
}

type faqsEnvelope struct {
	FAQs []model.FAQ `json:"faqs"`
}

type consultationEnvelope struct {
	ConsultationRequest model.ConsultationRequest `json:"consultationRequest"`
}

type consultationsEnvelope struct {
	ConsultationRequests []model.ConsultationRequest `json:"consultationRequests"`
}

func (s *infoService) Materials(ctx context.Context, page, limit int) ([]model.InfoMaterial, int, error) {
	params := url.Values{}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	path := "/info/materials"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}
	var resp struct {
		Materials []model.InfoMaterial `json:"materials"`
		Total     int                  `json:"total"`
	}
	if err := s.client.Get(ctx, path, &resp); err != nil {
		return nil, 0, err
	}
	return resp.Materials, resp.Total, nil
}

func (s *infoService) MaterialByID(ctx context.Context, id model.ID) (model.InfoMaterial, error) {
	var resp materialEnvelope
	if err := s.client.Get(ctx, fmt.Sprintf("/info/materials/%d", id), &resp); err != nil {
		return model.InfoMaterial{}, err
	}
	return resp.Material, nil
}

func (s *infoService) CreateMaterial(ctx context.Context, data model.CreateInfoMaterialData) (model.InfoMaterial, error) {
	var resp materialEnvelope
	if err := s.client.Post(ctx, "/info/materials", data, &resp); err != nil {
		return model.InfoMaterial{}, err
	}
	return resp.Material, nil
}

func (s *infoService) UpdateMaterial(ctx context.Context, id model.ID, data model.CreateInfoMaterialData) (model.InfoMaterial, error) {
	var resp materialEnvelope
	if err := s.client.Put(ctx, fmt.Sprintf("/info/materials/%d", id), data, &resp); err != nil {
		return model.InfoMaterial{}, err
	}
	return resp.Material, nil
}

func (s *infoService) DeleteMaterial(ctx context.Context, id model.ID) error {
	return s.client.Delete(ctx, fmt.Sprintf("/info/materials/%d", id))
}

// FAQs lists published entries only; this is the public fetch path.
func (s *infoService) FAQs(ctx context.Context, category string) ([]model.FAQ, error) {
	return s.fetchFAQs(ctx, "/info/faq", category)
}

// AllFAQs includes unpublished entries; admin fetch path.
func (s *infoService) AllFAQs(ctx context.Context, category string) ([]model.FAQ, error) {
	return s.fetchFAQs(ctx, "/info/faq/all", category)
}

func (s *infoService) fetchFAQs(ctx context.Context, path, category string) ([]model.FAQ, error) {
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}
	var resp faqsEnvelope
	if err := s.client.Get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.FAQs, nil
}

func (s *infoService) CreateFAQ(ctx context.Context, data model.CreateFAQData) (model.FAQ, error) {
	var resp model.FAQ
	if err := s.client.Post(ctx, "/info/faq", data, &resp); err != nil {
		return model.FAQ{}, err
	}
	return resp, nil
}

func (s *infoService) UpdateFAQ(ctx context.Context, id model.ID, data model.CreateFAQData) (model.FAQ, error) {
	var resp model.FAQ
	if err := s.client.Put(ctx, fmt.Sprintf("/info/faq/%d", id), data, &resp); err != nil {
		return model.FAQ{}, err
	}
	return resp, nil
}

func (s *infoService) DeleteFAQ(ctx context.Context, id model.ID) error {
	return s.client.Delete(ctx, fmt.Sprintf("/info/faq/%d", id))
}

func (s *infoService) SubmitConsultation(ctx context.Context, data model.CreateConsultationData) (model.ConsultationRequest, error) {
	var resp consultationEnvelope
	if err := s.client.Post(ctx, "/info/consultation-requests", data, &resp); err != nil {
		return model.ConsultationRequest{}, err
	}
	return resp.ConsultationRequest, nil
}

func (s *infoService) MyConsultations(ctx context.Context) ([]model.ConsultationRequest, error) {
	var resp consultationsEnvelope
	if err := s.client.Get(ctx, "/info/consultation-requests/my", &resp); err != nil {
		return nil, err
	}
	return resp.ConsultationRequests, nil
}

func (s *infoService) AllConsultations(ctx context.Context, status model.ConsultationStatus) ([]model.ConsultationRequest, error) {
	path := "/info/consultation-requests"
	if status != "" {
		path += "?status=" + url.QueryEscape(string(status))
	}
	var resp consultationsEnvelope
	if err := s.client.Get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.ConsultationRequests, nil
}

func (s *infoService) UpdateConsultationStatus(ctx context.Context, id model.ID, status model.ConsultationStatus) (model.ConsultationRequest, error) {
	body := map[string]model.ConsultationStatus{"status": status}
	var resp consultationEnvelope
	if err := s.client.Put(ctx, fmt.Sprintf("/info/consultation-requests/%d/status", id), body, &resp); err != nil {
		return model.ConsultationRequest{}, err
	}
	return resp.ConsultationRequest, nil
}
