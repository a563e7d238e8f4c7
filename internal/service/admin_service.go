package service

import (
	"context"

	"capital-portal/internal/api"
	"capital-portal/internal/model"
)

// AdminService defines the admin-only account operations.
type AdminService interface {
	Users(ctx context.Context) ([]model.User, error)
}

type adminService struct {
	client *api.Client
}

// NewAdminService wraps the resource API client.
func NewAdminService(client *api.Client) AdminService {
	return &adminService{client: client}
}

func (s *adminService) Users(ctx context.Context) ([]model.User, error) {
	var resp struct {
		Users []model.User `json:"users"`
	}
	if err := s.client.Get(ctx, "/admin/users", &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}
