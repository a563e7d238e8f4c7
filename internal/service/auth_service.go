// Package service exposes one typed wrapper per backend resource family.
// Each function calls the API clients and returns the tagged *api.Error the
// store layer records; no structured backend detail leaks past here.
package service

import (
	"context"
	"fmt"

	"capital-portal/internal/api"
	"capital-portal/internal/model"
)

// AuthService defines the operations backed by the dedicated auth API.
type AuthService interface {
	Login(ctx context.Context, creds model.LoginCredentials) (model.AuthResponse, error)
	Register(ctx context.Context, data model.RegisterData) (model.AuthResponse, error)
	Verify(ctx context.Context) (model.AuthResponse, error)
	ChangePassword(ctx context.Context, data model.ChangePasswordData) error
	Profile(ctx context.Context) (model.ProfileData, error)
	CreateProfile(ctx context.Context, profile model.UserProfile) (model.UserProfile, error)
	UpdateProfile(ctx context.Context, profile model.UserProfile) (model.UserProfile, error)
	AddFamilyMember(ctx context.Context, member model.FamilyMember) (model.FamilyMember, error)
	UpdateFamilyMember(ctx context.Context, id model.ID, member model.FamilyMember) (model.FamilyMember, error)
	DeleteFamilyMember(ctx context.Context, id model.ID) error
}

type authService struct {
	client *api.Client
}

// NewAuthService wraps the auth API client.
func NewAuthService(client *api.Client) AuthService {
	return &authService{client: client}
}

// Login exchanges credentials for a token. The caller decides whether to
// persist the token; this function only performs the request.
func (s *authService) Login(ctx context.Context, creds model.LoginCredentials) (model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := s.client.Post(ctx, "/login", creds, &resp); err != nil {
		return model.AuthResponse{}, err
	}
	return resp, nil
}

func (s *authService) Register(ctx context.Context, data model.RegisterData) (model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := s.client.Post(ctx, "/register", data, &resp); err != nil {
		return model.AuthResponse{}, err
	}
	return resp, nil
}

// Verify checks the stored token against the backend and returns the
// session it represents.
func (s *authService) Verify(ctx context.Context) (model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := s.client.Get(ctx, "/verify", &resp); err != nil {
		return model.AuthResponse{}, err
	}
	return resp, nil
}

func (s *authService) ChangePassword(ctx context.Context, data model.ChangePasswordData) error {
	return s.client.Post(ctx, "/change-password", data, nil)
}

func (s *authService) Profile(ctx context.Context) (model.ProfileData, error) {
	var resp model.ProfileData
	if err := s.client.Get(ctx, "/profile", &resp); err != nil {
		return model.ProfileData{}, err
	}
	return resp, nil
}

// CreateProfile creates the user's profile. Calling it when a profile
// already exists is a backend-level conflict surfaced as a validation
// error; the caller is expected to route to UpdateProfile instead.
func (s *authService) CreateProfile(ctx context.Context, profile model.UserProfile) (model.UserProfile, error) {
	var resp struct {
		Profile model.UserProfile `json:"profile"`
	}
	if err := s.client.Post(ctx, "/profile", profile, &resp); err != nil {
		return model.UserProfile{}, err
	}
	return resp.Profile, nil
}

func (s *authService) UpdateProfile(ctx context.Context, profile model.UserProfile) (model.UserProfile, error) {
	var resp struct {
		Profile model.UserProfile `json:"profile"`
	}
	if err := s.client.Put(ctx, "/profile", profile, &resp); err != nil {
		return model.UserProfile{}, err
	}
	return resp.Profile, nil
}

func (s *authService) AddFamilyMember(ctx context.Context, member model.FamilyMember) (model.FamilyMember, error) {
	var resp model.FamilyMember
	if err := s.client.Post(ctx, "/family-members", member, &resp); err != nil {
		return model.FamilyMember{}, err
	}
	return resp, nil
}

func (s *authService) UpdateFamilyMember(ctx context.Context, id model.ID, member model.FamilyMember) (model.FamilyMember, error) {
	var resp model.FamilyMember
	if err := s.client.Put(ctx, fmt.Sprintf("/family-members/%d", id), member, &resp); err != nil {
		return model.FamilyMember{}, err
	}
	return resp, nil
}

func (s *authService) DeleteFamilyMember(ctx context.Context, id model.ID) error {
	return s.client.Delete(ctx, fmt.Sprintf("/family-members/%d", id))
}
