package domain

// Identity is the authenticated user's profile as returned by the backend.
// Technician-only fields stay empty for other roles.
type Identity struct {
	ID                int64  `json:"id"`
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	Email             string `json:"email"`
	Phone             string `json:"phone,omitempty"`
	Role              Role   `json:"role"`
	RegisterDate      string `json:"registerDate,omitempty"`
	TotalReservations int    `json:"totalReservations,omitempty"`

	Description   string            `json:"description,omitempty"`
	Specialties   []ServiceCategory `json:"specialties,omitempty"`
	AverageRating float64           `json:"averageRating,omitempty"`
}

func (i Identity) FullName() string {
	switch {
	case i.FirstName == "":
		return i.LastName
	case i.LastName == "":
		return i.FirstName
	}
	return i.FirstName + " " + i.LastName
}

// LoginRequest carries the credentials typed on the login form.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the role-specific registration payload. Technician
// registrations fill Description and Specialties.
type RegisterRequest struct {
	FirstName   string            `json:"firstName"`
	LastName    string            `json:"lastName"`
	Email       string            `json:"email"`
	Password    string            `json:"password"`
	Phone       string            `json:"phone,omitempty"`
	Role        Role              `json:"role"`
	Description string            `json:"description,omitempty"`
	Specialties []ServiceCategory `json:"specialties,omitempty"`
}

// AuthResult is what login and registration endpoints hand back.
type AuthResult struct {
	Credential Credential `json:"credential"`
	Identity   Identity   `json:"identity"`
}

// UpdateProfileRequest carries the editable profile fields.
type UpdateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}
