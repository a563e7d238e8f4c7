package model

// InfoMaterial is a published informational article.
type InfoMaterial struct {
	ID          ID     `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	Category    string `json:"category"`
	IsPublished bool   `json:"is_published,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// FAQ is a question/answer pair. Unpublished entries are visible only
// through the admin fetch path.
type FAQ struct {
	ID          ID     `json:"id"`
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	Category    string `json:"category,omitempty"`
	IsPublished bool   `json:"is_published"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// ConsultationStatus is a flat enum mutated only by admins; no transition
// constraints are enforced client-side.
type ConsultationStatus string

const (
	ConsultationPending    ConsultationStatus = "pending"
	ConsultationInProgress ConsultationStatus = "in_progress"
	ConsultationCompleted  ConsultationStatus = "completed"
)

// ConsultationRequest is a contact-form submission.
type ConsultationRequest struct {
	ID        ID                 `json:"id,omitempty"`
	UserID    ID                 `json:"user_id,omitempty"`
	Name      string             `json:"name"`
	Email     string             `json:"email"`
	Phone     string             `json:"phone,omitempty"`
	Subject   string             `json:"subject"`
	Message   string             `json:"message"`
	Status    ConsultationStatus `json:"status,omitempty"`
	CreatedAt string             `json:"created_at,omitempty"`
}

// CreateInfoMaterialData is the create/update payload for materials.
type CreateInfoMaterialData struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	Category    string `json:"category"`
	IsPublished *bool  `json:"is_published,omitempty"`
}

// CreateFAQData is the create/update payload for FAQ entries.
type CreateFAQData struct {
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	Category    string `json:"category,omitempty"`
	IsPublished *bool  `json:"is_published,omitempty"`
}

// CreateConsultationData is the contact-form payload.
type CreateConsultationData struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}
