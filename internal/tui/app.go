// Package tui is the terminal shell of the portal. It follows The Elm
// Architecture via bubbletea: one model, messages in, a rendered string
// out. All domain state lives in the store; the shell only decides what
// to show and which operations to dispatch.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"capital-portal/internal/api"
	"capital-portal/internal/guard"
	"capital-portal/internal/model"
	"capital-portal/internal/store"
)

// view identifies which screen is showing.
type view int

const (
	viewHome view = iota
	viewLogin
	viewRegister
	viewProfile
	viewApplications
	viewApplicationDetail
	viewAdminApplications
	viewMaterials
	viewMaterialDetail
	viewFAQ
	viewConsultations
	viewMyConsultations
	viewUsers
	viewLog
	viewForm
)

// logTailLines is how much of the activity log the shell shows.
const logTailLines = 20

const repaintInterval = time.Second

// viewPath maps a screen to the stable name persisted as the post-login
// destination. Only guarded screens need one.
func viewPath(v view) string {
	switch v {
	case viewProfile:
		return "profile"
	case viewApplications:
		return "applications"
	case viewAdminApplications:
		return "admin/applications"
	case viewConsultations:
		return "admin/consultations"
	case viewMyConsultations:
		return "consultations"
	case viewUsers:
		return "admin/users"
	default:
		return ""
	}
}

func pathView(path string) (view, bool) {
	switch path {
	case "profile":
		return viewProfile, true
	case "applications":
		return viewApplications, true
	case "admin/applications":
		return viewAdminApplications, true
	case "admin/consultations":
		return viewConsultations, true
	case "consultations":
		return viewMyConsultations, true
	case "admin/users":
		return viewUsers, true
	default:
		return viewHome, false
	}
}

// guardFor returns the access rule of a screen.
func guardFor(v view) func(store.AuthState) guard.Decision {
	switch v {
	case viewLogin, viewRegister:
		return guard.Anonymous
	case viewProfile, viewApplications, viewApplicationDetail, viewMyConsultations:
		return guard.SignedIn
	case viewAdminApplications, viewConsultations, viewUsers:
		return guard.Admin
	default:
		return func(store.AuthState) guard.Decision { return guard.Allow }
	}
}

// Logger is the minimal logging surface the shell needs.
type Logger interface {
	Printf(format string, args ...any)
}

// LogTailer supplies recent activity log entries for the log screen.
type LogTailer interface {
	Tail(n int) []string
}

// RedirectStore persists the destination a signed-out user asked for so
// sign-in can return there, across restarts.
type RedirectStore interface {
	RedirectPath() (string, error)
	SetRedirectPath(path string) error
	ClearRedirectPath() error
}

// SessionExpiredMsg is sent into the program when any request comes back
// unauthorized. The shell resets the session and routes to sign-in.
type SessionExpiredMsg struct{}

type sessionCheckedMsg struct{}

type repaintMsg time.Time

// opKind names a dispatched store operation so completion can be routed.
type opKind int

const (
	opNone opKind = iota
	opLogin
	opRegister
	opChangePassword
	opSaveProfile
	opAddFamilyMember
	opLoadProfile
	opLoadApplications
	opLoadAllApplications
	opLoadApplication
	opCreateApplication
	opUpdateStatus
	opAddComment
	opLoadMaterials
	opLoadMaterial
	opCreateMaterial
	opLoadFAQs
	opCreateFAQ
	opSubmitConsultation
	opLoadMyConsultations
	opLoadAllConsultations
	opUpdateConsultation
	opLoadUsers
)

type opDoneMsg struct {
	op  opKind
	err error
}

// formKind selects the submit handler for the active form.
type formKind int

const (
	formNone formKind = iota
	formLogin
	formRegister
	formChangePassword
	formProfile
	formFamilyMember
	formApplicationNew
	formStatusUpdate
	formComment
	formConsultation
	formFAQNew
	formMaterialNew
)

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithLogger overrides the shell logger.
func WithLogger(logger Logger) AppOption {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithLogTail wires the activity log screen to a log reader. Without it
// the screen stays off the menu.
func WithLogTail(tail LogTailer) AppOption {
	return func(a *App) {
		a.tail = tail
	}
}

// WithRedirectStore wires post-login destination persistence.
func WithRedirectStore(rs RedirectStore) AppOption {
	return func(a *App) {
		if rs != nil {
			a.redirects = rs
		}
	}
}

type nopShellLogger struct{}

func (nopShellLogger) Printf(string, ...any) {}

// App is the shell model. It holds view routing and transient UI state;
// everything domain-shaped is read from the store on render.
type App struct {
	store     *store.Store
	logger    Logger
	redirects RedirectStore
	tail      LogTailer

	view        view
	returnView  view
	formReturn  view
	pendingView view
	hasPending  bool

	menu      list.Model
	apps      list.Model
	materials list.Model

	form     *form
	formKind formKind

	faqIndex     int
	consultIndex int
	userIndex    int

	selectedApplication model.ID
	selectedMaterial    model.ID

	statusMsg string
	busy      bool

	width  int
	height int
}

// menuItem implements list.Item for home menu entries.
type menuItem struct {
	title string
	desc  string
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

// NewApp builds the shell around an already wired store.
func NewApp(st *store.Store, opts ...AppOption) *App {
	menu := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	menu.Title = "⚘ FAMILY CAPITAL PORTAL"
	menu.SetShowStatusBar(false)
	menu.SetFilteringEnabled(false)

	apps := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	apps.Title = "Applications"
	apps.SetShowStatusBar(false)
	apps.SetFilteringEnabled(false)

	materials := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	materials.Title = "Information Materials"
	materials.SetShowStatusBar(false)
	materials.SetFilteringEnabled(false)

	a := &App{
		store:     st,
		logger:    nopShellLogger{},
		view:      viewHome,
		menu:      menu,
		apps:      apps,
		materials: materials,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	a.rebuildMenu()
	return a
}

// Init starts the one-time session check and the repaint ticker.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.cmdCheckSession(), scheduleRepaint())
}

func scheduleRepaint() tea.Cmd {
	return tea.Tick(repaintInterval, func(t time.Time) tea.Msg { return repaintMsg(t) })
}

func (a *App) cmdCheckSession() tea.Cmd {
	return func() tea.Msg {
		a.store.Auth.CheckAuth(context.Background())
		return sessionCheckedMsg{}
	}
}

// cmdOp dispatches a blocking store operation off the UI loop.
func (a *App) cmdOp(op opKind, fn func(context.Context) error) tea.Cmd {
	a.busy = true
	return func() tea.Msg {
		return opDoneMsg{op: op, err: fn(context.Background())}
	}
}

// Update routes messages. Keys go to the active form first, then to the
// view-specific handler.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.menu.SetSize(max(0, msg.Width-6), max(0, msg.Height-12))
		a.apps.SetSize(max(0, msg.Width-6), max(0, msg.Height-12))
		a.materials.SetSize(max(0, msg.Width-6), max(0, msg.Height-12))
		return a, nil

	case repaintMsg:
		// Alert expiry happens on store timers; the tick only repaints.
		return a, scheduleRepaint()

	case SessionExpiredMsg:
		a.store.Auth.Logout()
		a.store.Alerts.Warning("your session has expired, please sign in again")
		a.rebuildMenu()
		a.setView(viewLogin)
		a.openForm(formLogin, newLoginForm())
		return a, nil

	case sessionCheckedMsg:
		a.rebuildMenu()
		if a.hasPending {
			pending := a.pendingView
			a.hasPending = false
			return a, a.navigate(pending)
		}
		return a, nil

	case opDoneMsg:
		return a, a.handleOpDone(msg)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, a.updateFocusedList(msg)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return a, tea.Quit
	}

	if a.view == viewForm && a.form != nil {
		if key == "esc" {
			a.closeForm()
			return a, nil
		}
		submitted, cmd := a.form.Update(msg)
		if submitted {
			return a, a.submitForm()
		}
		return a, cmd
	}

	switch key {
	case "q":
		if a.view == viewHome {
			return a, tea.Quit
		}
	case "esc":
		if a.view != viewHome {
			return a, a.goBack()
		}
	}

	switch a.view {
	case viewHome:
		if key == "enter" {
			return a, a.handleMenuSelection()
		}
	case viewApplications, viewAdminApplications:
		switch key {
		case "enter":
			if item, ok := a.apps.SelectedItem().(applicationItem); ok {
				a.selectedApplication = item.id
				return a, a.navigate(viewApplicationDetail)
			}
		case "n":
			if a.view == viewApplications {
				a.openForm(formApplicationNew, newApplicationForm())
			}
		case "r":
			return a, a.loadCmd(a.view)
		}
	case viewApplicationDetail:
		switch key {
		case "s":
			if a.store.Auth.State().IsAdmin {
				a.openForm(formStatusUpdate, newStatusForm())
			}
		case "c":
			a.openForm(formComment, newCommentForm())
		}
	case viewMaterials:
		switch key {
		case "enter":
			if item, ok := a.materials.SelectedItem().(materialItem); ok {
				a.selectedMaterial = item.id
				return a, a.navigate(viewMaterialDetail)
			}
		case "n":
			if a.store.Auth.State().IsAdmin {
				a.openForm(formMaterialNew, newMaterialForm())
			}
		}
	case viewFAQ:
		switch key {
		case "down", "j":
			if a.faqIndex < len(a.store.Info.State().FAQs)-1 {
				a.faqIndex++
			}
		case "up", "k":
			if a.faqIndex > 0 {
				a.faqIndex--
			}
		case "n":
			if a.store.Auth.State().IsAdmin {
				a.openForm(formFAQNew, newFAQForm())
			}
		}
	case viewConsultations:
		requests := a.store.Info.State().ConsultationRequests
		switch key {
		case "down", "j":
			if a.consultIndex < len(requests)-1 {
				a.consultIndex++
			}
		case "up", "k":
			if a.consultIndex > 0 {
				a.consultIndex--
			}
		case "1", "2", "3":
			if a.consultIndex < len(requests) {
				status := map[string]model.ConsultationStatus{
					"1": model.ConsultationPending,
					"2": model.ConsultationInProgress,
					"3": model.ConsultationCompleted,
				}[key]
				id := requests[a.consultIndex].ID
				return a, a.cmdOp(opUpdateConsultation, func(ctx context.Context) error {
					return a.store.Info.UpdateConsultationStatus(ctx, id, status)
				})
			}
		}
	case viewMyConsultations:
		if key == "n" {
			a.openForm(formConsultation, newConsultationForm())
		}
	case viewUsers:
		users := a.store.Admin.State().Users
		switch key {
		case "down", "j":
			if a.userIndex < len(users)-1 {
				a.userIndex++
			}
		case "up", "k":
			if a.userIndex > 0 {
				a.userIndex--
			}
		}
	case viewProfile:
		switch key {
		case "e":
			a.openForm(formProfile, newProfileForm(a.store.Auth.State().Profile))
		case "f":
			a.openForm(formFamilyMember, newFamilyMemberForm())
		case "p":
			a.openForm(formChangePassword, newChangePasswordForm())
		}
	}

	return a, a.updateFocusedList(msg)
}

func (a *App) updateFocusedList(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.view {
	case viewHome:
		a.menu, cmd = a.menu.Update(msg)
	case viewApplications, viewAdminApplications:
		a.apps, cmd = a.apps.Update(msg)
	case viewMaterials:
		a.materials, cmd = a.materials.Update(msg)
	}
	return cmd
}

// navigate applies the screen's access rule and, when allowed, loads its
// data.
func (a *App) navigate(v view) tea.Cmd {
	switch guardFor(v)(a.store.Auth.State()) {
	case guard.Hold:
		a.pendingView = v
		a.hasPending = true
		a.statusMsg = "Checking session..."
		return nil
	case guard.RedirectLogin:
		a.rememberRedirect(v)
		a.setView(viewLogin)
		a.openForm(formLogin, newLoginForm())
		return nil
	case guard.RedirectHome:
		a.setView(viewHome)
		return nil
	}
	a.setView(v)
	return a.loadCmd(v)
}

func (a *App) setView(v view) {
	if v != viewForm {
		a.form = nil
		a.formKind = formNone
	}
	a.view = v
	a.statusMsg = ""
}

func (a *App) goBack() tea.Cmd {
	switch a.view {
	case viewApplicationDetail:
		a.store.Applications.ClearDetail()
		if a.store.Auth.State().IsAdmin && a.returnView == viewAdminApplications {
			return a.navigate(viewAdminApplications)
		}
		return a.navigate(viewApplications)
	case viewMaterialDetail:
		return a.navigate(viewMaterials)
	default:
		a.setView(viewHome)
		return nil
	}
}

// loadCmd fetches whatever the screen renders.
func (a *App) loadCmd(v view) tea.Cmd {
	switch v {
	case viewProfile:
		return a.cmdOp(opLoadProfile, a.store.Auth.FetchProfile)
	case viewApplications:
		a.returnView = viewApplications
		return a.cmdOp(opLoadApplications, a.store.Applications.FetchMine)
	case viewAdminApplications:
		a.returnView = viewAdminApplications
		return a.cmdOp(opLoadAllApplications, func(ctx context.Context) error {
			return a.store.Applications.FetchAll(ctx, model.ApplicationFilter{})
		})
	case viewApplicationDetail:
		id := a.selectedApplication
		return a.cmdOp(opLoadApplication, func(ctx context.Context) error {
			return a.store.Applications.FetchByID(ctx, id)
		})
	case viewMaterials:
		return a.cmdOp(opLoadMaterials, func(ctx context.Context) error {
			return a.store.Info.FetchMaterials(ctx, 1, 20)
		})
	case viewMaterialDetail:
		id := a.selectedMaterial
		return a.cmdOp(opLoadMaterial, func(ctx context.Context) error {
			return a.store.Info.FetchMaterialByID(ctx, id)
		})
	case viewFAQ:
		a.faqIndex = 0
		if a.store.Auth.State().IsAdmin {
			return a.cmdOp(opLoadFAQs, func(ctx context.Context) error {
				return a.store.Info.FetchAllFAQs(ctx, "")
			})
		}
		return a.cmdOp(opLoadFAQs, func(ctx context.Context) error {
			return a.store.Info.FetchFAQs(ctx, "")
		})
	case viewConsultations:
		a.consultIndex = 0
		return a.cmdOp(opLoadAllConsultations, func(ctx context.Context) error {
			return a.store.Info.FetchAllConsultations(ctx, "")
		})
	case viewMyConsultations:
		return a.cmdOp(opLoadMyConsultations, a.store.Info.FetchMyConsultations)
	case viewUsers:
		a.userIndex = 0
		return a.cmdOp(opLoadUsers, a.store.Admin.FetchUsers)
	}
	return nil
}

func (a *App) rememberRedirect(v view) {
	if a.redirects == nil {
		return
	}
	path := viewPath(v)
	if path == "" {
		return
	}
	if err := a.redirects.SetRedirectPath(path); err != nil {
		a.logger.Printf("tui: persist redirect path: %v", err)
	}
}

// consumeRedirect pops the persisted destination, if any.
func (a *App) consumeRedirect() (view, bool) {
	if a.redirects == nil {
		return viewHome, false
	}
	path, err := a.redirects.RedirectPath()
	if err != nil || path == "" {
		return viewHome, false
	}
	if err := a.redirects.ClearRedirectPath(); err != nil {
		a.logger.Printf("tui: clear redirect path: %v", err)
	}
	return pathView(path)
}

// handleOpDone settles a finished operation: raise the outcome alert,
// rebuild whatever lists the operation changed and run any follow-up
// navigation.
func (a *App) handleOpDone(msg opDoneMsg) tea.Cmd {
	a.busy = false
	if msg.err != nil {
		a.store.Alerts.Error(api.MessageOf(msg.err))
		if a.form != nil {
			a.form.SetError(api.MessageOf(msg.err))
		}
		return nil
	}

	switch msg.op {
	case opLogin, opRegister:
		a.rebuildMenu()
		a.closeForm()
		if msg.op == opLogin {
			a.store.Alerts.Success("signed in")
		} else {
			a.store.Alerts.Success("account created")
		}
		if dest, ok := a.consumeRedirect(); ok {
			return a.navigate(dest)
		}
		a.setView(viewHome)
		return nil
	case opChangePassword:
		a.closeForm()
		a.store.Alerts.Success("password changed")
	case opSaveProfile:
		a.closeForm()
		a.store.Alerts.Success("profile saved")
	case opAddFamilyMember:
		a.closeForm()
		a.store.Alerts.Success("family member added")
	case opCreateApplication:
		a.closeForm()
		a.store.Alerts.Success("application submitted")
		a.rebuildApplicationList()
		a.setView(viewApplicationDetail)
		if detail := a.store.Applications.State().Detail; detail != nil {
			a.selectedApplication = detail.Application.ID
		}
	case opUpdateStatus:
		a.closeForm()
		a.store.Alerts.Success("application status updated")
		a.rebuildApplicationList()
		a.setView(viewApplicationDetail)
	case opAddComment:
		a.closeForm()
		a.store.Alerts.Success("comment added")
		a.setView(viewApplicationDetail)
	case opCreateMaterial:
		a.closeForm()
		a.store.Alerts.Success("material published")
		a.rebuildMaterialList()
		a.setView(viewMaterials)
	case opCreateFAQ:
		a.closeForm()
		a.store.Alerts.Success("FAQ entry created")
		a.setView(viewFAQ)
	case opSubmitConsultation:
		a.closeForm()
		a.store.Alerts.Success("consultation request sent")
		a.setView(viewMyConsultations)
	case opLoadApplications, opLoadAllApplications:
		a.rebuildApplicationList()
	case opLoadMaterials:
		a.rebuildMaterialList()
	}
	return nil
}

func (a *App) handleMenuSelection() tea.Cmd {
	item, ok := a.menu.SelectedItem().(menuItem)
	if !ok {
		return nil
	}
	switch item.title {
	case "Sign In":
		a.setView(viewLogin)
		a.openForm(formLogin, newLoginForm())
	case "Create Account":
		a.setView(viewRegister)
		a.openForm(formRegister, newRegisterForm())
	case "My Applications":
		return a.navigate(viewApplications)
	case "Submit Application":
		if guard.SignedIn(a.store.Auth.State()) != guard.Allow {
			return a.navigate(viewApplications)
		}
		a.openForm(formApplicationNew, newApplicationForm())
	case "All Applications":
		return a.navigate(viewAdminApplications)
	case "Profile":
		return a.navigate(viewProfile)
	case "Information Materials":
		return a.navigate(viewMaterials)
	case "FAQ":
		return a.navigate(viewFAQ)
	case "My Consultations":
		return a.navigate(viewMyConsultations)
	case "Consultation Requests":
		return a.navigate(viewConsultations)
	case "Users":
		return a.navigate(viewUsers)
	case "Activity Log":
		return a.navigate(viewLog)
	case "Sign Out":
		a.store.Auth.Logout()
		a.store.Alerts.Info("signed out")
		a.rebuildMenu()
		a.setView(viewHome)
	case "Exit":
		return tea.Quit
	}
	return nil
}

// rebuildMenu derives the home menu from the session state.
func (a *App) rebuildMenu() {
	auth := a.store.Auth.State()
	items := []list.Item{}
	if auth.IsAuthenticated {
		items = append(items,
			menuItem{title: "My Applications", desc: "Track your capital applications"},
			menuItem{title: "Submit Application", desc: "Apply for a capital payout"},
			menuItem{title: "Profile", desc: "Your profile, family and documents"},
		)
	}
	items = append(items,
		menuItem{title: "Information Materials", desc: "Guides on family capital"},
		menuItem{title: "FAQ", desc: "Frequently asked questions"},
	)
	if auth.IsAuthenticated {
		items = append(items, menuItem{title: "My Consultations", desc: "Your consultation requests"})
	}
	if auth.IsAdmin {
		items = append(items,
			menuItem{title: "All Applications", desc: "Review submitted applications"},
			menuItem{title: "Consultation Requests", desc: "Answer citizen requests"},
			menuItem{title: "Users", desc: "Registered accounts"},
		)
	}
	if auth.IsAuthenticated {
		items = append(items, menuItem{title: "Sign Out", desc: "End this session"})
	} else {
		items = append(items,
			menuItem{title: "Sign In", desc: "Access your account"},
			menuItem{title: "Create Account", desc: "Register for the portal"},
		)
	}
	if a.tail != nil {
		items = append(items, menuItem{title: "Activity Log", desc: "Recent portal activity"})
	}
	items = append(items, menuItem{title: "Exit", desc: "Quit the portal"})
	a.menu.SetItems(items)
}

type applicationItem struct {
	id     model.ID
	title  string
	desc   string
	filter string
}

func (i applicationItem) Title() string       { return i.title }
func (i applicationItem) Description() string { return i.desc }
func (i applicationItem) FilterValue() string { return i.filter }

func (a *App) rebuildApplicationList() {
	state := a.store.Applications.State()
	items := make([]list.Item, 0, len(state.Applications))
	for _, app := range state.Applications {
		title := fmt.Sprintf("#%d · %s · %s", app.ID, app.ApplicationType, app.Status)
		desc := app.Purpose
		if app.RequestedAmount > 0 {
			desc = fmt.Sprintf("%s · requested %.2f", desc, app.RequestedAmount)
		}
		if app.UserProfile != nil {
			desc = fmt.Sprintf("%s · %s %s", desc, app.UserProfile.FirstName, app.UserProfile.LastName)
		}
		items = append(items, applicationItem{
			id:     app.ID,
			title:  title,
			desc:   desc,
			filter: strconv.Itoa(int(app.ID)),
		})
	}
	a.apps.SetItems(items)
}

type materialItem struct {
	id    model.ID
	title string
	desc  string
}

func (i materialItem) Title() string       { return i.title }
func (i materialItem) Description() string { return i.desc }
func (i materialItem) FilterValue() string { return i.title }

func (a *App) rebuildMaterialList() {
	state := a.store.Info.State()
	items := make([]list.Item, 0, len(state.Materials))
	for _, m := range state.Materials {
		items = append(items, materialItem{id: m.ID, title: m.Title, desc: m.Category})
	}
	a.materials.SetItems(items)
}

func (a *App) openForm(kind formKind, f *form) {
	if a.view != viewForm {
		a.formReturn = a.view
	}
	a.form = f
	a.formKind = kind
	a.view = viewForm
	a.statusMsg = ""
}

// closeForm returns to the screen the form was opened from, so e.g. a
// cancelled comment lands back on the application detail.
func (a *App) closeForm() {
	a.form = nil
	a.formKind = formNone
	if a.view != viewForm {
		return
	}
	switch a.formReturn {
	case viewForm, viewLogin, viewRegister:
		a.view = viewHome
	default:
		a.view = a.formReturn
	}
}
