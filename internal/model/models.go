package model

// Domain entities as the backend serves them. The client caches these; the
// backend owns them. Field names follow the wire format.

// ID aliases the numeric identifier type used by every backend entity.
type ID = int

// Role is the backend-assigned account role.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the account identity returned by login/register/verify.
type User struct {
	ID        ID           `json:"id"`
	Email     string       `json:"email"`
	Role      Role         `json:"role"`
	Profile   *UserProfile `json:"profile,omitempty"`
	CreatedAt string       `json:"created_at,omitempty"`
}

// IsAdmin reports whether the account carries the admin role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// HousingType enumerates the housing attribute on a profile.
type HousingType string

const (
	HousingOwnHouse      HousingType = "own_house"
	HousingOwnApartment  HousingType = "own_apartment"
	HousingRented        HousingType = "rented"
	HousingSocialHousing HousingType = "social_housing"
	HousingOther         HousingType = "other"
)

// OwnershipStatus enumerates profile housing ownership.
type OwnershipStatus string

const (
	OwnershipSole  OwnershipStatus = "sole"
	OwnershipJoint OwnershipStatus = "joint"
	OwnershipNone  OwnershipStatus = "none"
)

// UserProfile is the personal/legal data attached to an account. A user has
// zero or one profile; creating one when it exists (or updating when none
// exists) is rejected by the backend.
type UserProfile struct {
	UserID                ID              `json:"user_id,omitempty"`
	FirstName             string          `json:"first_name"`
	LastName              string          `json:"last_name"`
	MiddleName            string          `json:"middle_name,omitempty"`
	BirthDate             string          `json:"birth_date"`
	PassportSeries        string          `json:"passport_series"`
	PassportNumber        string          `json:"passport_number"`
	Address               string          `json:"address"`
	Phone                 string          `json:"phone"`
	HasMaternalCapital    bool            `json:"has_maternal_capital"`
	MaternalCapitalAmount float64         `json:"maternal_capital_amount"`
	HousingType           HousingType     `json:"housing_type,omitempty"`
	LivingArea            float64         `json:"living_area,omitempty"`
	OwnershipStatus       OwnershipStatus `json:"ownership_status,omitempty"`
}

// RelationType enumerates family member relations.
type RelationType string

const (
	RelationSpouse RelationType = "spouse"
	RelationChild  RelationType = "child"
)

// DocumentType enumerates identity documents for family members.
type DocumentType string

const (
	DocumentBirthCertificate DocumentType = "birth_certificate"
	DocumentPassport         DocumentType = "passport"
)

// FamilyMember belongs to exactly one user and is managed independently of
// the profile.
type FamilyMember struct {
	ID             ID           `json:"id,omitempty"`
	UserID         ID           `json:"user_id,omitempty"`
	FirstName      string       `json:"first_name"`
	LastName       string       `json:"last_name"`
	MiddleName     string       `json:"middle_name,omitempty"`
	BirthDate      string       `json:"birth_date"`
	RelationType   RelationType `json:"relation_type"`
	DocumentType   DocumentType `json:"document_type,omitempty"`
	DocumentNumber string       `json:"document_number,omitempty"`
}

// Document is an uploaded file reference listed on the profile payload.
type Document struct {
	ID           ID     `json:"id,omitempty"`
	UserID       ID     `json:"user_id,omitempty"`
	DocumentName string `json:"document_name"`
	DocumentPath string `json:"document_path"`
	UploadedAt   string `json:"uploaded_at,omitempty"`
}
