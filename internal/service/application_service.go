package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"capital-portal/internal/api"
	"capital-portal/internal/model"
)

// ApplicationService defines the benefit-application operations.
type ApplicationService interface {
	Create(ctx context.Context, data model.CreateApplicationData) (model.ApplicationDetails, error)
	Mine(ctx context.Context) ([]model.Application, error)
	All(ctx context.Context, filter model.ApplicationFilter) ([]model.Application, error)
	ByID(ctx context.Context, id model.ID) (model.ApplicationDetails, error)
	UpdateStatus(ctx context.Context, id model.ID, data model.UpdateStatusData) (model.ApplicationDetails, error)
	AddComment(ctx context.Context, id model.ID, comment string) (model.ApplicationComment, error)
}

type applicationService struct {
	client *api.Client
}

// NewApplicationService wraps the resource API client.
func NewApplicationService(client *api.Client) ApplicationService {
	return &applicationService{client: client}
}

type applicationsEnvelope struct {
	Applications []model.Application `json:"applications"`
}

func (s *applicationService) Create(ctx context.Context, data model.CreateApplicationData) (model.ApplicationDetails, error) {
	var resp model.ApplicationDetails
	if err := s.client.Post(ctx, "/applications", data, &resp); err != nil {
		return model.ApplicationDetails{}, err
	}
	return resp, nil
}

func (s *applicationService) Mine(ctx context.Context) ([]model.Application, error) {
	var resp applicationsEnvelope
	if err := s.client.Get(ctx, "/applications/my", &resp); err != nil {
		return nil, err
	}
	return resp.Applications, nil
}

// All lists every application (admin scope). Zero filter values are
// omitted from the query string.
func (s *applicationService) All(ctx context.Context, filter model.ApplicationFilter) ([]model.Application, error) {
	params := url.Values{}
	if filter.Status != "" {
		params.Set("status", string(filter.Status))
	}
	if filter.Limit > 0 {
		params.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Offset > 0 {
		params.Set("offset", strconv.Itoa(filter.Offset))
	}
	path := "/applications"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}
	var resp applicationsEnvelope
	if err := s.client.Get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Applications, nil
}

func (s *applicationService) ByID(ctx context.Context, id model.ID) (model.ApplicationDetails, error) {
	var resp model.ApplicationDetails
	if err := s.client.Get(ctx, fmt.Sprintf("/applications/%d", id), &resp); err != nil {
		return model.ApplicationDetails{}, err
	}
	return resp, nil
}

func (s *applicationService) UpdateStatus(ctx context.Context, id model.ID, data model.UpdateStatusData) (model.ApplicationDetails, error) {
	var resp model.ApplicationDetails
	if err := s.client.Put(ctx, fmt.Sprintf("/applications/%d/status", id), data, &resp); err != nil {
		return model.ApplicationDetails{}, err
	}
	return resp, nil
}

func (s *applicationService) AddComment(ctx context.Context, id model.ID, comment string) (model.ApplicationComment, error) {
	body := map[string]string{"comment": comment}
	var resp struct {
		Comment model.ApplicationComment `json:"comment"`
	}
	if err := s.client.Post(ctx, fmt.Sprintf("/applications/%d/comments", id), body, &resp); err != nil {
		return model.ApplicationComment{}, err
	}
	return resp.Comment, nil
}
