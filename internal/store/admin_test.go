package store

import (
	"context"
	"testing"

	"capital-portal/internal/api"
	"capital-portal/internal/model"
)

type fakeAdminService struct {
	users []model.User
	err   error
}

func (f *fakeAdminService) Users(context.Context) ([]model.User, error) {
	return f.users, f.err
}

func TestFetchUsersReplacesListAndClearsOnFailure(t *testing.T) {
	svc := &fakeAdminService{users: []model.User{{ID: 1, Role: model.RoleUser}, {ID: 2, Role: model.RoleAdmin}}}
	slice := NewAdminSlice(svc, nil)
	ctx := context.Background()

	if err := slice.FetchUsers(ctx); err != nil {
		t.Fatalf("FetchUsers: %v", err)
	}
	state := slice.State()
	if len(state.Users) != 2 || state.LoadingUsers || state.UsersError != "" {
		t.Fatalf("unexpected state after fetch: %+v", state)
	}

	svc.err = api.NewError(api.KindNetwork, "the server could not be reached")
	if err := slice.FetchUsers(ctx); err == nil {
		t.Fatalf("expected fetch error")
	}
	state = slice.State()
	if len(state.Users) != 0 {
		t.Fatalf("stale user list survived a failed fetch")
	}
	if state.UsersError == "" {
		t.Fatalf("error not recorded")
	}

	slice.ClearError()
	if slice.State().UsersError != "" {
		t.Fatalf("ClearError left the error behind")
	}
}
