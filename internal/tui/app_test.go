package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"capital-portal/internal/api"
	"capital-portal/internal/model"
	"capital-portal/internal/store"
)

// shellAuthService is the minimal auth backend the shell tests need.
type shellAuthService struct {
	loginResp model.AuthResponse
	err       error
}

func (s *shellAuthService) Login(context.Context, model.LoginCredentials) (model.AuthResponse, error) {
	return s.loginResp, s.err
}

func (s *shellAuthService) Register(context.Context, model.RegisterData) (model.AuthResponse, error) {
	return s.loginResp, s.err
}

func (s *shellAuthService) Verify(context.Context) (model.AuthResponse, error) {
	return s.loginResp, s.err
}

func (s *shellAuthService) ChangePassword(context.Context, model.ChangePasswordData) error {
	return s.err
}

func (s *shellAuthService) Profile(context.Context) (model.ProfileData, error) {
	return model.ProfileData{}, s.err
}

func (s *shellAuthService) CreateProfile(_ context.Context, p model.UserProfile) (model.UserProfile, error) {
	return p, s.err
}

func (s *shellAuthService) UpdateProfile(_ context.Context, p model.UserProfile) (model.UserProfile, error) {
	return p, s.err
}

func (s *shellAuthService) AddFamilyMember(_ context.Context, m model.FamilyMember) (model.FamilyMember, error) {
	return m, s.err
}

func (s *shellAuthService) UpdateFamilyMember(_ context.Context, id model.ID, m model.FamilyMember) (model.FamilyMember, error) {
	m.ID = id
	return m, s.err
}

func (s *shellAuthService) DeleteFamilyMember(context.Context, model.ID) error {
	return s.err
}

type shellApplicationService struct {
	mine []model.Application
	err  error
}

func (s *shellApplicationService) Create(context.Context, model.CreateApplicationData) (model.ApplicationDetails, error) {
	return model.ApplicationDetails{}, s.err
}

func (s *shellApplicationService) Mine(context.Context) ([]model.Application, error) {
	return s.mine, s.err
}

func (s *shellApplicationService) All(context.Context, model.ApplicationFilter) ([]model.Application, error) {
	return s.mine, s.err
}

func (s *shellApplicationService) ByID(context.Context, model.ID) (model.ApplicationDetails, error) {
	return model.ApplicationDetails{}, s.err
}

func (s *shellApplicationService) UpdateStatus(context.Context, model.ID, model.UpdateStatusData) (model.ApplicationDetails, error) {
	return model.ApplicationDetails{}, s.err
}

func (s *shellApplicationService) AddComment(context.Context, model.ID, string) (model.ApplicationComment, error) {
	return model.ApplicationComment{}, s.err
}

type shellInfoService struct{ err error }

func (s *shellInfoService) Materials(context.Context, int, int) ([]model.InfoMaterial, int, error) {
	return nil, 0, s.err
}

func (s *shellInfoService) MaterialByID(context.Context, model.ID) (model.InfoMaterial, error) {
	return model.InfoMaterial{}, s.err
}

func (s *shellInfoService) CreateMaterial(context.Context, model.CreateInfoMaterialData) (model.InfoMaterial, error) {
	return model.InfoMaterial{}, s.err
}

func (s *shellInfoService) UpdateMaterial(context.Context, model.ID, model.CreateInfoMaterialData) (model.InfoMaterial, error) {
	return model.InfoMaterial{}, s.err
}

func (s *shellInfoService) DeleteMaterial(context.Context, model.ID) error { return s.err }

func (s *shellInfoService) FAQs(context.Context, string) ([]model.FAQ, error) { return nil, s.err }

func (s *shellInfoService) AllFAQs(context.Context, string) ([]model.FAQ, error) { return nil, s.err }

func (s *shellInfoService) CreateFAQ(context.Context, model.CreateFAQData) (model.FAQ, error) {
	return model.FAQ{}, s.err
}

func (s *shellInfoService) UpdateFAQ(context.Context, model.ID, model.CreateFAQData) (model.FAQ, error) {
	return model.FAQ{}, s.err
}

func (s *shellInfoService) DeleteFAQ(context.Context, model.ID) error { return s.err }

func (s *shellInfoService) SubmitConsultation(context.Context, model.CreateConsultationData) (model.ConsultationRequest, error) {
	return model.ConsultationRequest{}, s.err
}

func (s *shellInfoService) MyConsultations(context.Context) ([]model.ConsultationRequest, error) {
	return nil, s.err
}

func (s *shellInfoService) AllConsultations(context.Context, model.ConsultationStatus) ([]model.ConsultationRequest, error) {
	return nil, s.err
}

func (s *shellInfoService) UpdateConsultationStatus(context.Context, model.ID, model.ConsultationStatus) (model.ConsultationRequest, error) {
	return model.ConsultationRequest{}, s.err
}

type shellAdminService struct{ err error }

func (s *shellAdminService) Users(context.Context) ([]model.User, error) { return nil, s.err }

// memoryTokens is an in-memory api.TokenStore.
type memoryTokens struct{ token string }

func (m *memoryTokens) Token() (string, error)  { return m.token, nil }
func (m *memoryTokens) SetToken(t string) error { m.token = t; return nil }
func (m *memoryTokens) ClearToken() error       { m.token = ""; return nil }

// memoryRedirects is an in-memory RedirectStore.
type memoryRedirects struct{ path string }

func (m *memoryRedirects) RedirectPath() (string, error)  { return m.path, nil }
func (m *memoryRedirects) SetRedirectPath(p string) error { m.path = p; return nil }
func (m *memoryRedirects) ClearRedirectPath() error       { m.path = ""; return nil }

func newTestApp(auth *shellAuthService) (*App, *memoryRedirects, *store.Store) {
	tokens := api.NewTokenSource(&memoryTokens{})
	st := store.New(store.Services{
		Auth:         auth,
		Applications: &shellApplicationService{},
		Info:         &shellInfoService{},
		Admin:        &shellAdminService{},
	}, tokens)
	redirects := &memoryRedirects{}
	app := NewApp(st, WithRedirectStore(redirects))
	return app, redirects, st
}

// settle resolves the startup session check so guards stop holding.
func settle(app *App, st *store.Store) {
	st.Auth.CheckAuth(context.Background())
	app.Update(sessionCheckedMsg{})
}

func menuTitles(app *App) []string {
	var titles []string
	for _, item := range app.menu.Items() {
		if m, ok := item.(menuItem); ok {
			titles = append(titles, m.title)
		}
	}
	return titles
}

func hasTitle(titles []string, want string) bool {
	for _, t := range titles {
		if t == want {
			return true
		}
	}
	return false
}

func TestMenuReflectsSessionState(t *testing.T) {
	app, _, st := newTestApp(&shellAuthService{err: api.NewError(api.KindAuth, "no session")})
	settle(app, st)
	titles := menuTitles(app)
	if !hasTitle(titles, "Sign In") || hasTitle(titles, "My Applications") {
		t.Fatalf("anonymous menu wrong: %v", titles)
	}
	if hasTitle(titles, "Users") {
		t.Fatalf("anonymous menu exposes admin entries: %v", titles)
	}

	auth := &shellAuthService{loginResp: model.AuthResponse{Token: "t", User: model.User{ID: 1, Role: model.RoleAdmin}}}
	app, _, st = newTestApp(auth)
	if err := st.Auth.Login(context.Background(), model.LoginCredentials{}); err != nil {
		t.Fatal(err)
	}
	app.rebuildMenu()
	titles = menuTitles(app)
	for _, want := range []string{"My Applications", "All Applications", "Users", "Sign Out"} {
		if !hasTitle(titles, want) {
			t.Fatalf("admin menu missing %q: %v", want, titles)
		}
	}
	if hasTitle(titles, "Sign In") {
		t.Fatalf("signed-in menu still offers Sign In: %v", titles)
	}
}

func TestGuardedNavigationRedirectsToLogin(t *testing.T) {
	app, redirects, st := newTestApp(&shellAuthService{err: api.NewError(api.KindAuth, "no session")})
	settle(app, st)

	cmd := app.navigate(viewApplications)
	if cmd != nil {
		t.Fatalf("redirect must not load data")
	}
	if app.view != viewForm || app.formKind != formLogin {
		t.Fatalf("expected login form, got view=%d form=%d", app.view, app.formKind)
	}
	if redirects.path != "applications" {
		t.Fatalf("destination not remembered, got %q", redirects.path)
	}
}

func TestNavigationHoldsUntilSessionChecked(t *testing.T) {
	app, _, st := newTestApp(&shellAuthService{err: api.NewError(api.KindAuth, "no session")})

	if cmd := app.navigate(viewApplications); cmd != nil {
		t.Fatalf("held navigation must not load data")
	}
	if !app.hasPending || app.pendingView != viewApplications {
		t.Fatalf("navigation not held while session check pending")
	}
	if app.view == viewApplications {
		t.Fatalf("guarded view shown before session check resolved")
	}

	settle(app, st)
	if app.hasPending {
		t.Fatalf("pending navigation not consumed after session check")
	}
}

func TestLoginSubmitReturnsToRememberedDestination(t *testing.T) {
	auth := &shellAuthService{loginResp: model.AuthResponse{Token: "t", User: model.User{ID: 1, Role: model.RoleUser}}}
	app, redirects, st := newTestApp(auth)
	redirects.path = "profile"
	settle(app, st)

	app.openForm(formLogin, newLoginForm())
	app.form.inputs[0].SetValue("user@portal.test")
	app.form.inputs[1].SetValue("pw")
	cmd := app.submitForm()
	if cmd == nil {
		t.Fatalf("submit produced no operation")
	}
	m, followUp := app.Update(cmd())
	app = m.(*App)
	for followUp != nil {
		var next tea.Cmd
		m, next = app.Update(followUp())
		app = m.(*App)
		followUp = next
	}
	if app.view != viewProfile {
		t.Fatalf("login did not return to remembered destination, view=%d", app.view)
	}
	if redirects.path != "" {
		t.Fatalf("redirect path not cleared after use")
	}
}

func TestSessionExpiredRoutesToSignIn(t *testing.T) {
	auth := &shellAuthService{loginResp: model.AuthResponse{Token: "t", User: model.User{ID: 1, Role: model.RoleUser}}}
	app, _, st := newTestApp(auth)
	if err := st.Auth.Login(context.Background(), model.LoginCredentials{}); err != nil {
		t.Fatal(err)
	}
	settle(app, st)

	m, _ := app.Update(SessionExpiredMsg{})
	app = m.(*App)
	if app.view != viewForm || app.formKind != formLogin {
		t.Fatalf("expected sign-in form after expiry, got view=%d form=%d", app.view, app.formKind)
	}
	if st.Auth.State().IsAuthenticated {
		t.Fatalf("session survived expiry")
	}
	found := false
	for _, alert := range st.Alerts.Alerts() {
		if alert.Severity == store.SeverityWarning {
			found = true
		}
	}
	if !found {
		t.Fatalf("no expiry warning raised")
	}
}

func TestStatusFormRejectsInvalidTransition(t *testing.T) {
	app, _, st := newTestApp(&shellAuthService{loginResp: model.AuthResponse{Token: "t", User: model.User{ID: 1, Role: model.RoleAdmin}}})
	if err := st.Auth.Login(context.Background(), model.LoginCredentials{}); err != nil {
		t.Fatal(err)
	}
	settle(app, st)

	app.selectedApplication = 7
	app.openForm(formStatusUpdate, newStatusForm())
	app.form.inputs[0].SetValue("rejected")
	if cmd := app.submitForm(); cmd != nil {
		t.Fatalf("invalid transition must not dispatch")
	}
	if app.form.errMsg == "" {
		t.Fatalf("validation message not shown on the form")
	}
}

func TestEscFromFormReturnsToOriginatingView(t *testing.T) {
	auth := &shellAuthService{loginResp: model.AuthResponse{Token: "t", User: model.User{ID: 1, Role: model.RoleUser}}}
	app, _, st := newTestApp(auth)
	if err := st.Auth.Login(context.Background(), model.LoginCredentials{}); err != nil {
		t.Fatal(err)
	}
	settle(app, st)

	app.setView(viewApplicationDetail)
	app.openForm(formComment, newCommentForm())
	m, _ := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = m.(*App)
	if app.view != viewApplicationDetail {
		t.Fatalf("cancelled comment landed on view=%d, want application detail", app.view)
	}
	if app.form != nil || app.formKind != formNone {
		t.Fatalf("form still active after esc")
	}

	// A form reached straight from the menu still falls back home.
	app.setView(viewLogin)
	app.openForm(formLogin, newLoginForm())
	m, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = m.(*App)
	if app.view != viewHome {
		t.Fatalf("cancelled sign-in landed on view=%d, want home", app.view)
	}
}

// fakeTailer serves canned activity log lines.
type fakeTailer struct{ lines []string }

func (f fakeTailer) Tail(n int) []string {
	if n < len(f.lines) {
		return f.lines[len(f.lines)-n:]
	}
	return f.lines
}

func TestActivityLogScreenShowsRecentEntries(t *testing.T) {
	app, _, _ := newTestApp(&shellAuthService{err: api.NewError(api.KindAuth, "no session")})
	if hasTitle(menuTitles(app), "Activity Log") {
		t.Fatalf("log entry offered without a tailer wired")
	}

	tokens := api.NewTokenSource(&memoryTokens{})
	st := store.New(store.Services{
		Auth:         &shellAuthService{err: api.NewError(api.KindAuth, "no session")},
		Applications: &shellApplicationService{},
		Info:         &shellInfoService{},
		Admin:        &shellAdminService{},
	}, tokens)
	tail := fakeTailer{lines: []string{
		"2026-09-01 10:00:00 [INFO] portal session opened",
		"2026-09-01 10:00:05 [WARN] restore persisted token: no session",
	}}
	app = NewApp(st, WithLogTail(tail))
	settle(app, st)

	if !hasTitle(menuTitles(app), "Activity Log") {
		t.Fatalf("log entry missing from menu: %v", menuTitles(app))
	}
	if cmd := app.navigate(viewLog); cmd != nil {
		t.Fatalf("log screen must not dispatch a load")
	}
	if app.view != viewLog {
		t.Fatalf("navigate did not open the log, view=%d", app.view)
	}
	out := app.View()
	for _, want := range []string{"Activity Log", "portal session opened", "restore persisted token"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log screen missing %q:\n%s", want, out)
		}
	}
}

func TestFamilyMemberFormRequiresIdentityFields(t *testing.T) {
	auth := &shellAuthService{loginResp: model.AuthResponse{Token: "t", User: model.User{ID: 1, Role: model.RoleUser}}}
	app, _, st := newTestApp(auth)
	if err := st.Auth.Login(context.Background(), model.LoginCredentials{}); err != nil {
		t.Fatal(err)
	}
	settle(app, st)

	app.openForm(formFamilyMember, newFamilyMemberForm())
	app.form.inputs[0].SetValue("child")
	if cmd := app.submitForm(); cmd != nil {
		t.Fatalf("member without name, birth date and document must not dispatch")
	}
	if app.form.errMsg == "" {
		t.Fatalf("validation message not shown on the form")
	}

	for i, v := range []string{"child", "Anna", "Petrova", "", "2019-06-01", "birth_certificate", "IV-123456"} {
		app.form.inputs[i].SetValue(v)
	}
	if cmd := app.submitForm(); cmd == nil {
		t.Fatalf("complete member did not dispatch, err=%q", app.form.errMsg)
	}
}
