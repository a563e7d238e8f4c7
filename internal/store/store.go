// Package store holds the client's in-memory state, partitioned into one
// slice per backend resource family. Every async operation runs the same
// lifecycle: mark the slice loading, perform the service call outside the
// lock, then commit the result (or the error string) in a single guarded
// mutation. Errors never propagate past a slice except as the operation's
// return value, which the shell may use to raise a transient alert.
package store

import (
	"capital-portal/internal/api"
	"capital-portal/internal/service"
)

// Logger records store activity. It matches logging.Logger's signature.
type Logger interface {
	Printf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}

// Store aggregates the five state slices. It is the single composed state
// container the shell observes; none of the slices are package-level
// singletons.
type Store struct {
	Auth         *AuthSlice
	Applications *ApplicationSlice
	Info         *InfoSlice
	Admin        *AdminSlice
	Alerts       *AlertSlice
}

// Services bundles the resource-service dependencies a Store needs.
type Services struct {
	Auth         service.AuthService
	Applications service.ApplicationService
	Info         service.InfoService
	Admin        service.AdminService
}

// StoreOption customizes Store construction.
type StoreOption func(*storeConfig)

type storeConfig struct {
	logger    Logger
	alertOpts []AlertOption
}

// WithLogger overrides the default no-op logger on every slice.
func WithLogger(l Logger) StoreOption {
	return func(cfg *storeConfig) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// WithAlertOptions forwards options to the alert slice.
func WithAlertOptions(opts ...AlertOption) StoreOption {
	return func(cfg *storeConfig) {
		cfg.alertOpts = append(cfg.alertOpts, opts...)
	}
}

// New composes a Store over the given services and token source.
func New(svcs Services, tokens *api.TokenSource, opts ...StoreOption) *Store {
	cfg := &storeConfig{logger: nopLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return &Store{
		Auth:         NewAuthSlice(svcs.Auth, tokens, cfg.logger),
		Applications: NewApplicationSlice(svcs.Applications, cfg.logger),
		Info:         NewInfoSlice(svcs.Info, cfg.logger),
		Admin:        NewAdminSlice(svcs.Admin, cfg.logger),
		Alerts:       NewAlertSlice(cfg.alertOpts...),
	}
}

// SetOnChange registers a hook invoked after any slice commits a mutation.
// The shell uses it to schedule a re-render; tests leave it unset.
func (s *Store) SetOnChange(fn func()) {
	if s == nil || fn == nil {
		return
	}
	s.Auth.setOnChange(fn)
	s.Applications.setOnChange(fn)
	s.Info.setOnChange(fn)
	s.Admin.setOnChange(fn)
	s.Alerts.setOnChange(fn)
}
