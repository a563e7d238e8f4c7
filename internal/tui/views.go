package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"capital-portal/internal/model"
	"capital-portal/internal/store"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	selectStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F7B801"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).MarginTop(1)

	alertStyles = map[store.Severity]lipgloss.Style{
		store.SeveritySuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true),
		store.SeverityError:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		store.SeverityWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")),
		store.SeverityInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")),
	}
)

// View renders the current screen: header, alert banner, content panel,
// footer hints.
func (a *App) View() string {
	var content string
	switch a.view {
	case viewHome:
		content = a.menu.View()
	case viewForm:
		if a.form != nil {
			content = a.form.View()
		}
	case viewApplications, viewAdminApplications:
		content = a.renderApplicationsList()
	case viewApplicationDetail:
		content = a.renderApplicationDetail()
	case viewMaterials:
		content = a.materials.View()
	case viewMaterialDetail:
		content = a.renderMaterialDetail()
	case viewFAQ:
		content = a.renderFAQ()
	case viewConsultations:
		content = a.renderConsultations()
	case viewMyConsultations:
		content = a.renderMyConsultations()
	case viewUsers:
		content = a.renderUsers()
	case viewProfile:
		content = a.renderProfile()
	case viewLog:
		content = a.renderLog()
	default:
		content = a.menu.View()
	}

	width := a.width
	if width <= 0 {
		width = 100
	}

	sections := []string{headerStyle.Render("⚘ FAMILY CAPITAL PORTAL")}
	if banner := a.renderAlerts(); banner != "" {
		sections = append(sections, banner)
	}
	sections = append(sections, panelStyle.Width(max(40, width-2)).Render(content))
	if footer := a.renderFooter(); footer != "" {
		sections = append(sections, footer)
	}
	return strings.Join(sections, "\n")
}

func (a *App) renderAlerts() string {
	alerts := a.store.Alerts.Alerts()
	if len(alerts) == 0 {
		return ""
	}
	lines := make([]string, 0, len(alerts))
	for _, alert := range alerts {
		style, ok := alertStyles[alert.Severity]
		if !ok {
			style = dimStyle
		}
		lines = append(lines, style.Render(fmt.Sprintf("▪ %s", alert.Message)))
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderFooter() string {
	if a.busy {
		return footerStyle.Render("Working...")
	}
	hint := a.statusMsg
	if hint == "" {
		switch a.view {
		case viewHome:
			hint = "Enter → open    q → quit"
		case viewApplications:
			hint = "Enter → detail    n → new application    r → refresh    Esc → back"
		case viewAdminApplications:
			hint = "Enter → detail    r → refresh    Esc → back"
		case viewApplicationDetail:
			if a.store.Auth.State().IsAdmin {
				hint = "s → update status    c → comment    Esc → back"
			} else {
				hint = "c → comment    Esc → back"
			}
		case viewMaterials:
			if a.store.Auth.State().IsAdmin {
				hint = "Enter → read    n → new material    Esc → back"
			} else {
				hint = "Enter → read    Esc → back"
			}
		case viewFAQ:
			hint = "j/k → browse    Esc → back"
		case viewConsultations:
			hint = "j/k → select    1/2/3 → pending/in progress/completed    Esc → back"
		case viewMyConsultations:
			hint = "n → new request    Esc → back"
		case viewProfile:
			hint = "e → edit    f → add family member    p → change password    Esc → back"
		default:
			hint = "Esc → back"
		}
	}
	return footerStyle.Render(hint)
}

func (a *App) renderProfile() string {
	state := a.store.Auth.State()
	if state.Loading && state.Profile == nil {
		return "Loading profile..."
	}
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Profile"))
	b.WriteString("\n\n")
	if state.User != nil {
		b.WriteString(fmt.Sprintf("Account:  %s (%s)\n", state.User.Email, state.User.Role))
	}
	if state.Profile == nil {
		b.WriteString(dimStyle.Render("No profile yet. Press e to fill one in."))
		b.WriteString("\n")
	} else {
		p := state.Profile
		b.WriteString(fmt.Sprintf("Name:     %s %s %s\n", p.LastName, p.FirstName, p.MiddleName))
		b.WriteString(fmt.Sprintf("Born:     %s\n", p.BirthDate))
		b.WriteString(fmt.Sprintf("Passport: %s %s\n", p.PassportSeries, p.PassportNumber))
		b.WriteString(fmt.Sprintf("Address:  %s\n", p.Address))
		b.WriteString(fmt.Sprintf("Phone:    %s\n", p.Phone))
		if p.HasMaternalCapital {
			b.WriteString(fmt.Sprintf("Maternal capital: %.2f\n", p.MaternalCapitalAmount))
		}
	}
	if len(state.FamilyMembers) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("Family"))
		b.WriteString("\n")
		for _, m := range state.FamilyMembers {
			b.WriteString(fmt.Sprintf("  %s · %s %s · born %s\n", m.RelationType, m.FirstName, m.LastName, m.BirthDate))
		}
	}
	if len(state.Documents) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("Documents"))
		b.WriteString("\n")
		for _, d := range state.Documents {
			b.WriteString(fmt.Sprintf("  %s\n", d.DocumentName))
		}
	}
	return b.String()
}

func (a *App) renderApplicationsList() string {
	state := a.store.Applications.State()
	if state.Loading && len(state.Applications) == 0 {
		return "Loading applications..."
	}
	if state.Error != "" && len(state.Applications) == 0 {
		return dimStyle.Render("⚠ " + state.Error)
	}
	if len(state.Applications) == 0 {
		return dimStyle.Render("No applications yet. Press n to submit one.")
	}
	return a.apps.View()
}

func (a *App) renderApplicationDetail() string {
	state := a.store.Applications.State()
	detail := state.Detail
	if detail == nil {
		if state.Loading {
			return "Loading application..."
		}
		if state.Error != "" {
			return dimStyle.Render("⚠ " + state.Error)
		}
		return dimStyle.Render("No application selected.")
	}
	app := detail.Application

	var b strings.Builder
	b.WriteString(sectionStyle.Render(fmt.Sprintf("Application #%d", app.ID)))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Type:      %s\n", app.ApplicationType))
	b.WriteString(fmt.Sprintf("Status:    %s\n", app.Status))
	b.WriteString(fmt.Sprintf("Requested: %.2f\n", app.RequestedAmount))
	if app.ApprovedAmount > 0 {
		b.WriteString(fmt.Sprintf("Approved:  %.2f\n", app.ApprovedAmount))
	}
	if app.RejectionReason != "" {
		b.WriteString(fmt.Sprintf("Rejected:  %s\n", app.RejectionReason))
	}
	b.WriteString(fmt.Sprintf("Purpose:   %s\n", app.Purpose))
	if app.Description != "" {
		b.WriteString(fmt.Sprintf("Details:   %s\n", app.Description))
	}

	if app.UserProfile != nil {
		p := app.UserProfile
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("Applicant"))
		b.WriteString(fmt.Sprintf("\n%s %s %s · %s\n", p.LastName, p.FirstName, p.MiddleName, p.Phone))
		if p.HasMaternalCapital {
			b.WriteString(fmt.Sprintf("Maternal capital: %.2f\n", p.MaternalCapitalAmount))
		}
	}
	if len(app.FamilyMembers) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("Family"))
		b.WriteString("\n")
		for _, m := range app.FamilyMembers {
			b.WriteString(fmt.Sprintf("  %s · %s %s · born %s\n", m.RelationType, m.FirstName, m.LastName, m.BirthDate))
		}
	}
	if len(detail.Comments) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("Comments"))
		b.WriteString("\n")
		for _, c := range detail.Comments {
			author := "applicant"
			if c.IsAdmin {
				author = "reviewer"
			}
			b.WriteString(fmt.Sprintf("  [%s] %s\n", author, c.Comment))
		}
	}
	return b.String()
}

func (a *App) renderMaterialDetail() string {
	state := a.store.Info.State()
	material := state.CurrentMaterial
	if material == nil {
		if state.Loading {
			return "Loading material..."
		}
		if state.Error != "" {
			return dimStyle.Render("⚠ " + state.Error)
		}
		return dimStyle.Render("No material selected.")
	}
	header := sectionStyle.Render(material.Title)
	meta := dimStyle.Render(material.Category)
	return fmt.Sprintf("%s\n%s\n\n%s", header, meta, material.Content)
}

func (a *App) renderFAQ() string {
	state := a.store.Info.State()
	if state.Loading && len(state.FAQs) == 0 {
		return "Loading FAQ..."
	}
	if len(state.FAQs) == 0 {
		if state.Error != "" {
			return dimStyle.Render("⚠ " + state.Error)
		}
		return dimStyle.Render("No FAQ entries yet.")
	}
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Frequently Asked Questions"))
	b.WriteString("\n\n")
	for i, faq := range state.FAQs {
		question := "  " + faq.Question
		if i == a.faqIndex {
			question = selectStyle.Render("▸ " + faq.Question)
		}
		b.WriteString(question)
		if !faq.IsPublished {
			b.WriteString(dimStyle.Render("  (unpublished)"))
		}
		b.WriteString("\n")
		if i == a.faqIndex {
			b.WriteString(dimStyle.Render("    " + faq.Answer))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func consultationLine(r model.ConsultationRequest) string {
	return fmt.Sprintf("#%d · %s · %s · %s", r.ID, r.Subject, r.Name, r.Status)
}

func (a *App) renderConsultations() string {
	state := a.store.Info.State()
	requests := state.ConsultationRequests
	if state.Loading && len(requests) == 0 {
		return "Loading consultation requests..."
	}
	if len(requests) == 0 {
		return dimStyle.Render("No consultation requests.")
	}
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Consultation Requests"))
	b.WriteString("\n\n")
	for i, r := range requests {
		line := "  " + consultationLine(r)
		if i == a.consultIndex {
			line = selectStyle.Render("▸ " + consultationLine(r))
		}
		b.WriteString(line)
		b.WriteString("\n")
		if i == a.consultIndex {
			b.WriteString(dimStyle.Render("    " + r.Message))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (a *App) renderMyConsultations() string {
	state := a.store.Info.State()
	requests := state.ConsultationRequests
	if state.Loading && len(requests) == 0 {
		return "Loading your requests..."
	}
	var b strings.Builder
	b.WriteString(sectionStyle.Render("My Consultation Requests"))
	b.WriteString("\n\n")
	if len(requests) == 0 {
		b.WriteString(dimStyle.Render("No requests yet. Press n to send one."))
		return b.String()
	}
	for _, r := range requests {
		b.WriteString(fmt.Sprintf("  #%d · %s · %s\n", r.ID, r.Subject, r.Status))
	}
	return b.String()
}

func (a *App) renderLog() string {
	if a.tail == nil {
		return dimStyle.Render("Activity log is not configured.")
	}
	lines := a.tail.Tail(logTailLines)
	if len(lines) == 0 {
		return dimStyle.Render("No activity recorded yet.")
	}
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Activity Log"))
	b.WriteString("\n\n")
	for _, line := range lines {
		b.WriteString("  " + line + "\n")
	}
	return b.String()
}

func (a *App) renderUsers() string {
	state := a.store.Admin.State()
	if state.LoadingUsers && len(state.Users) == 0 {
		return "Loading users..."
	}
	if state.UsersError != "" && len(state.Users) == 0 {
		return dimStyle.Render("⚠ " + state.UsersError)
	}
	var b strings.Builder
	b.WriteString(sectionStyle.Render(fmt.Sprintf("Users (%d)", len(state.Users))))
	b.WriteString("\n\n")
	for i, u := range state.Users {
		line := fmt.Sprintf("  #%d · %s · %s", u.ID, u.Email, u.Role)
		if i == a.userIndex {
			line = selectStyle.Render("▸ " + strings.TrimSpace(line))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
