package tui

import (
	"context"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"capital-portal/internal/model"
)

func newLoginForm() *form {
	return newForm("Sign In",
		formField{key: "email", label: "Email", placeholder: "you@example.com"},
		formField{key: "password", label: "Password", secret: true},
	)
}

func newRegisterForm() *form {
	return newForm("Create Account",
		formField{key: "email", label: "Email", placeholder: "you@example.com"},
		formField{key: "password", label: "Password", secret: true},
		formField{key: "confirm", label: "Confirm password", secret: true},
	)
}

func newChangePasswordForm() *form {
	return newForm("Change Password",
		formField{key: "current", label: "Current password", secret: true},
		formField{key: "new", label: "New password", secret: true},
	)
}

func newProfileForm(profile *model.UserProfile) *form {
	var p model.UserProfile
	if profile != nil {
		p = *profile
	}
	capital := ""
	if p.MaternalCapitalAmount > 0 {
		capital = strconv.FormatFloat(p.MaternalCapitalAmount, 'f', -1, 64)
	}
	return newForm("Profile",
		formField{key: "first_name", label: "First name", value: p.FirstName},
		formField{key: "last_name", label: "Last name", value: p.LastName},
		formField{key: "middle_name", label: "Middle name", value: p.MiddleName},
		formField{key: "birth_date", label: "Birth date", placeholder: "1990-04-12", value: p.BirthDate},
		formField{key: "passport_series", label: "Passport series", value: p.PassportSeries},
		formField{key: "passport_number", label: "Passport number", value: p.PassportNumber},
		formField{key: "address", label: "Address", value: p.Address},
		formField{key: "phone", label: "Phone", value: p.Phone},
		formField{key: "capital", label: "Maternal capital amount (blank if none)", value: capital},
	)
}

func newFamilyMemberForm() *form {
	return newForm("Add Family Member",
		formField{key: "relation", label: "Relation (spouse/child)", placeholder: "child"},
		formField{key: "first_name", label: "First name"},
		formField{key: "last_name", label: "Last name"},
		formField{key: "middle_name", label: "Middle name (optional)"},
		formField{key: "birth_date", label: "Birth date", placeholder: "2019-06-01"},
		formField{key: "document_type", label: "Document (birth_certificate/passport)", placeholder: "birth_certificate"},
		formField{key: "document_number", label: "Document number"},
	)
}

func newApplicationForm() *form {
	return newForm("Submit Application",
		formField{key: "type", label: "Type (housing/education/healthcare/other)", placeholder: "housing"},
		formField{key: "amount", label: "Requested amount", placeholder: "450000"},
		formField{key: "purpose", label: "Purpose", placeholder: "mortgage down payment"},
		formField{key: "description", label: "Description"},
	)
}

func newStatusForm() *form {
	return newForm("Update Application Status",
		formField{key: "status", label: "Status (pending/reviewing/approved/rejected/completed)"},
		formField{key: "reason", label: "Rejection reason (required when rejecting)"},
		formField{key: "amount", label: "Approved amount (required when approving)"},
	)
}

func newCommentForm() *form {
	return newForm("Add Comment",
		formField{key: "comment", label: "Comment"},
	)
}

func newConsultationForm() *form {
	return newForm("Request Consultation",
		formField{key: "name", label: "Your name"},
		formField{key: "email", label: "Email"},
		formField{key: "phone", label: "Phone"},
		formField{key: "subject", label: "Subject", placeholder: "payout timing"},
		formField{key: "message", label: "Message"},
	)
}

func newFAQForm() *form {
	return newForm("New FAQ Entry",
		formField{key: "question", label: "Question"},
		formField{key: "answer", label: "Answer"},
		formField{key: "category", label: "Category", placeholder: "payments"},
	)
}

func newMaterialForm() *form {
	return newForm("New Information Material",
		formField{key: "title", label: "Title"},
		formField{key: "content", label: "Content"},
		formField{key: "category", label: "Category", placeholder: "housing"},
	)
}

// submitForm turns the active form into a store operation. Field-level
// validation happens here; anything the backend rejects comes back via
// the operation error.
func (a *App) submitForm() tea.Cmd {
	f := a.form
	if f == nil {
		return nil
	}
	switch a.formKind {

	case formLogin:
		creds := model.LoginCredentials{Email: f.Value("email"), Password: f.Value("password")}
		if creds.Email == "" || creds.Password == "" {
			f.SetError("email and password are required")
			return nil
		}
		return a.cmdOp(opLogin, func(ctx context.Context) error {
			return a.store.Auth.Login(ctx, creds)
		})

	case formRegister:
		if f.Value("password") != f.Value("confirm") {
			f.SetError("passwords do not match")
			return nil
		}
		data := model.RegisterData{Email: f.Value("email"), Password: f.Value("password")}
		if data.Email == "" || data.Password == "" {
			f.SetError("email and password are required")
			return nil
		}
		return a.cmdOp(opRegister, func(ctx context.Context) error {
			return a.store.Auth.Register(ctx, data)
		})

	case formChangePassword:
		data := model.ChangePasswordData{
			CurrentPassword: f.Value("current"),
			NewPassword:     f.Value("new"),
		}
		if data.CurrentPassword == "" || data.NewPassword == "" {
			f.SetError("both passwords are required")
			return nil
		}
		return a.cmdOp(opChangePassword, func(ctx context.Context) error {
			return a.store.Auth.ChangePassword(ctx, data)
		})

	case formProfile:
		var capital float64
		if raw := f.Value("capital"); raw != "" {
			parsed, err := strconv.ParseFloat(raw, 64)
			if err != nil || parsed < 0 {
				f.SetError("maternal capital amount must be a non-negative number")
				return nil
			}
			capital = parsed
		}
		profile := model.UserProfile{
			FirstName:             f.Value("first_name"),
			LastName:              f.Value("last_name"),
			MiddleName:            f.Value("middle_name"),
			BirthDate:             f.Value("birth_date"),
			PassportSeries:        f.Value("passport_series"),
			PassportNumber:        f.Value("passport_number"),
			Address:               f.Value("address"),
			Phone:                 f.Value("phone"),
			HasMaternalCapital:    capital > 0,
			MaternalCapitalAmount: capital,
		}
		if profile.FirstName == "" || profile.LastName == "" {
			f.SetError("first and last name are required")
			return nil
		}
		hasProfile := a.store.Auth.State().Profile != nil
		return a.cmdOp(opSaveProfile, func(ctx context.Context) error {
			if hasProfile {
				return a.store.Auth.UpdateProfile(ctx, profile)
			}
			return a.store.Auth.CreateProfile(ctx, profile)
		})

	case formFamilyMember:
		relation := model.RelationType(strings.ToLower(f.Value("relation")))
		if relation != model.RelationSpouse && relation != model.RelationChild {
			f.SetError("relation must be spouse or child")
			return nil
		}
		if f.Value("first_name") == "" || f.Value("last_name") == "" {
			f.SetError("first and last name are required")
			return nil
		}
		if f.Value("birth_date") == "" {
			f.SetError("birth date is required")
			return nil
		}
		docType := model.DocumentType(strings.ToLower(f.Value("document_type")))
		if docType != model.DocumentBirthCertificate && docType != model.DocumentPassport {
			f.SetError("document must be birth_certificate or passport")
			return nil
		}
		if f.Value("document_number") == "" {
			f.SetError("document number is required")
			return nil
		}
		member := model.FamilyMember{
			RelationType:   relation,
			FirstName:      f.Value("first_name"),
			LastName:       f.Value("last_name"),
			MiddleName:     f.Value("middle_name"),
			BirthDate:      f.Value("birth_date"),
			DocumentType:   docType,
			DocumentNumber: f.Value("document_number"),
		}
		return a.cmdOp(opAddFamilyMember, func(ctx context.Context) error {
			return a.store.Auth.AddFamilyMember(ctx, member)
		})

	case formApplicationNew:
		appType := model.ApplicationType(strings.ToLower(f.Value("type")))
		switch appType {
		case model.ApplicationHousing, model.ApplicationEducation, model.ApplicationHealthcare, model.ApplicationOther:
		default:
			f.SetError("type must be housing, education, healthcare or other")
			return nil
		}
		amount, err := strconv.ParseFloat(f.Value("amount"), 64)
		if err != nil || amount <= 0 {
			f.SetError("requested amount must be a positive number")
			return nil
		}
		data := model.CreateApplicationData{
			ApplicationType: appType,
			RequestedAmount: amount,
			Purpose:         f.Value("purpose"),
			Description:     f.Value("description"),
		}
		return a.cmdOp(opCreateApplication, func(ctx context.Context) error {
			return a.store.Applications.Create(ctx, data)
		})

	case formStatusUpdate:
		data := model.UpdateStatusData{
			Status:          model.ApplicationStatus(strings.ToLower(f.Value("status"))),
			RejectionReason: f.Value("reason"),
		}
		if raw := f.Value("amount"); raw != "" {
			amount, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				f.SetError("approved amount must be a number")
				return nil
			}
			data.ApprovedAmount = amount
		}
		if err := data.Validate(); err != nil {
			f.SetError(err.Error())
			return nil
		}
		id := a.selectedApplication
		return a.cmdOp(opUpdateStatus, func(ctx context.Context) error {
			return a.store.Applications.UpdateStatus(ctx, id, data)
		})

	case formComment:
		comment := f.Value("comment")
		if comment == "" {
			f.SetError("comment is required")
			return nil
		}
		id := a.selectedApplication
		return a.cmdOp(opAddComment, func(ctx context.Context) error {
			return a.store.Applications.AddComment(ctx, id, comment)
		})

	case formConsultation:
		data := model.CreateConsultationData{
			Name:    f.Value("name"),
			Email:   f.Value("email"),
			Phone:   f.Value("phone"),
			Subject: f.Value("subject"),
			Message: f.Value("message"),
		}
		if data.Name == "" || data.Subject == "" || data.Message == "" {
			f.SetError("name, subject and message are required")
			return nil
		}
		return a.cmdOp(opSubmitConsultation, func(ctx context.Context) error {
			return a.store.Info.SubmitConsultation(ctx, data)
		})

	case formFAQNew:
		data := model.CreateFAQData{
			Question: f.Value("question"),
			Answer:   f.Value("answer"),
			Category: f.Value("category"),
		}
		if data.Question == "" || data.Answer == "" {
			f.SetError("question and answer are required")
			return nil
		}
		return a.cmdOp(opCreateFAQ, func(ctx context.Context) error {
			return a.store.Info.CreateFAQ(ctx, data)
		})

	case formMaterialNew:
		data := model.CreateInfoMaterialData{
			Title:    f.Value("title"),
			Content:  f.Value("content"),
			Category: f.Value("category"),
		}
		if data.Title == "" || data.Content == "" {
			f.SetError("title and content are required")
			return nil
		}
		return a.cmdOp(opCreateMaterial, func(ctx context.Context) error {
			return a.store.Info.CreateMaterial(ctx, data)
		})
	}
	return nil
}
