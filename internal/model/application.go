package model

import (
	"errors"
	"strings"
)

// ApplicationType enumerates what a benefit application requests funds for.
type ApplicationType string

const (
	ApplicationHousing    ApplicationType = "housing"
	ApplicationEducation  ApplicationType = "education"
	ApplicationHealthcare ApplicationType = "healthcare"
	ApplicationOther      ApplicationType = "other"
)

// ApplicationStatus enumerates the review state machine:
// pending -> reviewing -> approved | rejected, approved -> completed.
// The backend owns transitions; the client only validates payload shape.
type ApplicationStatus string

const (
	StatusPending   ApplicationStatus = "pending"
	StatusReviewing ApplicationStatus = "reviewing"
	StatusApproved  ApplicationStatus = "approved"
	StatusRejected  ApplicationStatus = "rejected"
	StatusCompleted ApplicationStatus = "completed"
)

// Application is a benefit request. In detail mode the backend may embed
// denormalized profile, family and comment snapshots.
type Application struct {
	ID              ID                `json:"id"`
	UserID          ID                `json:"user_id"`
	ApplicationType ApplicationType   `json:"application_type"`
	Status          ApplicationStatus `json:"status"`
	RequestedAmount float64           `json:"requested_amount"`
	ApprovedAmount  float64           `json:"approved_amount,omitempty"`
	Purpose         string            `json:"purpose"`
	Description     string            `json:"description,omitempty"`
	RejectionReason string            `json:"rejection_reason,omitempty"`
	CreatedAt       string            `json:"created_at,omitempty"`
	UpdatedAt       string            `json:"updated_at,omitempty"`

	UserProfile   *UserProfile         `json:"user_profile,omitempty"`
	FamilyMembers []FamilyMember       `json:"family_members,omitempty"`
	Comments      []ApplicationComment `json:"comments,omitempty"`
}

// ApplicationComment is append-only from the client's view. IsAdmin tags
// which side of the review wrote it.
type ApplicationComment struct {
	ID            ID     `json:"id"`
	ApplicationID ID     `json:"application_id"`
	UserID        ID     `json:"user_id"`
	IsAdmin       bool   `json:"is_admin"`
	Comment       string `json:"comment"`
	CreatedAt     string `json:"created_at,omitempty"`
}

// CreateApplicationData is the submit payload for a new application.
type CreateApplicationData struct {
	ApplicationType ApplicationType `json:"application_type"`
	RequestedAmount float64         `json:"requested_amount"`
	Purpose         string          `json:"purpose"`
	Description     string          `json:"description,omitempty"`
}

// UpdateStatusData carries an admin status transition. Rejections must name
// a reason and approvals must carry a positive amount; Validate enforces
// that before the request is sent (the backend remains the authority).
type UpdateStatusData struct {
	Status          ApplicationStatus `json:"status"`
	ApprovedAmount  float64           `json:"approved_amount,omitempty"`
	RejectionReason string            `json:"rejection_reason,omitempty"`
	Comment         string            `json:"comment,omitempty"`
}

var (
	ErrRejectionReasonRequired = errors.New("rejection reason is required to reject an application")
	ErrApprovedAmountRequired  = errors.New("a positive approved amount is required to approve an application")
)

// Validate checks the cross-field rules for a status transition payload.
func (d UpdateStatusData) Validate() error {
	switch d.Status {
	case StatusRejected:
		if strings.TrimSpace(d.RejectionReason) == "" {
			return ErrRejectionReasonRequired
		}
	case StatusApproved:
		if d.ApprovedAmount <= 0 {
			return ErrApprovedAmountRequired
		}
	}
	return nil
}

// ApplicationDetails is the detail-mode response envelope: the application
// plus its comments and denormalized submitter snapshots.
type ApplicationDetails struct {
	Application   Application          `json:"application"`
	Comments      []ApplicationComment `json:"comments,omitempty"`
	UserProfile   *UserProfile         `json:"user_profile,omitempty"`
	FamilyMembers []FamilyMember       `json:"family_members,omitempty"`
}

// ApplicationFilter narrows the admin list fetch. Zero values mean "no
// constraint".
type ApplicationFilter struct {
	Status ApplicationStatus
	Limit  int
	Offset int
}
