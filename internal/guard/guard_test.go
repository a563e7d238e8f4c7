package guard

import (
	"testing"

	"capital-portal/internal/store"
)

func TestSignedIn(t *testing.T) {
	cases := []struct {
		name string
		auth store.AuthState
		want Decision
	}{
		{"holds while session check pending", store.AuthState{InitialLoading: true}, Hold},
		{"redirects anonymous to login", store.AuthState{}, RedirectLogin},
		{"allows authenticated user", store.AuthState{IsAuthenticated: true}, Allow},
		{"allows admin", store.AuthState{IsAuthenticated: true, IsAdmin: true}, Allow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SignedIn(tc.auth); got != tc.want {
				t.Fatalf("SignedIn = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestAdmin(t *testing.T) {
	cases := []struct {
		name string
		auth store.AuthState
		want Decision
	}{
		{"holds while session check pending", store.AuthState{InitialLoading: true}, Hold},
		{"redirects anonymous to login", store.AuthState{}, RedirectLogin},
		{"sends non-admin home", store.AuthState{IsAuthenticated: true}, RedirectHome},
		{"allows admin", store.AuthState{IsAuthenticated: true, IsAdmin: true}, Allow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Admin(tc.auth); got != tc.want {
				t.Fatalf("Admin = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestAnonymous(t *testing.T) {
	cases := []struct {
		name string
		auth store.AuthState
		want Decision
	}{
		{"holds while session check pending", store.AuthState{InitialLoading: true}, Hold},
		{"allows signed-out visitor", store.AuthState{}, Allow},
		{"sends signed-in user home", store.AuthState{IsAuthenticated: true}, RedirectHome},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Anonymous(tc.auth); got != tc.want {
				t.Fatalf("Anonymous = %s, want %s", got, tc.want)
			}
		})
	}
}
