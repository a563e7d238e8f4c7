package model

// LoginCredentials is the login payload.
type LoginCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterData is the registration payload. Profile, family members and
// documents may be captured in the same flow.
type RegisterData struct {
	Email         string         `json:"email"`
	Password      string         `json:"password"`
	Profile       *UserProfile   `json:"profile,omitempty"`
	FamilyMembers []FamilyMember `json:"familyMembers,omitempty"`
	Documents     []Document     `json:"documents,omitempty"`
}

// AuthResponse is returned by login, register and verify.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// ChangePasswordData is the change-password payload.
type ChangePasswordData struct {
	Email           string `json:"email"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ProfileData bundles the profile payload returned by GET /profile.
type ProfileData struct {
	Profile       *UserProfile   `json:"profile"`
	FamilyMembers []FamilyMember `json:"familyMembers"`
	Documents     []Document     `json:"documents"`
}
