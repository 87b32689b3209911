package model

type MedicalRole string

const (
	MedicalRoleResident  MedicalRole = "resident"
	MedicalRoleAttending MedicalRole = "attending"
)

type Qualification string

const (
	QualificationJunior       Qualification = "Junior"
	QualificationIntermediate Qualification = "Intermediate"
	QualificationSenior       Qualification = "Senior"
)

// Doctor is provisioned outside this service and only ever read here.
type Doctor struct {
	ID            string        `json:"id" bson:"_id"`
	FullName      string        `json:"full_name" bson:"full_name"`
	MedicalRole   MedicalRole   `json:"medical_role" bson:"medical_role"`
	Qualification Qualification `json:"qualification" bson:"qualification"`
	Specialty     string        `json:"specialty" bson:"specialty"`
	UserID        string        `json:"user_id" bson:"user_id"`
}

type SystemRole string

const (
	RoleAdmin  SystemRole = "admin"
	RoleMember SystemRole = "member"
)

// User is a whitelisted authentication principal. DoctorID is empty when the
// principal has no linked doctor profile.
type User struct {
	ID         string     `json:"id" bson:"_id"`
	Email      string     `json:"email" bson:"email"`
	SystemRole SystemRole `json:"system_role" bson:"system_role"`
	DoctorID   string     `json:"doctor_id,omitempty" bson:"doctor_id,omitempty"`
}

// Actor is the resolved caller of a mutating operation. It is always passed
// explicitly; nothing in the services reads it from ambient state.
type Actor struct {
	UserID   string     `json:"user_id"`
	Email    string     `json:"email"`
	Role     SystemRole `json:"role"`
	DoctorID string     `json:"doctor_id,omitempty"`
}

func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}

// AuditID is the identifier stamped on records this actor changes: the
// linked doctor when there is one, the user record otherwise.
func (a *Actor) AuditID() string {
	if a.DoctorID != "" {
		return a.DoctorID
	}
	return a.UserID
}

// Profile is what /me returns. Restricted is set when the principal is
// whitelisted but has no doctor profile.
type Profile struct {
	Actor      Actor   `json:"actor"`
	Doctor     *Doctor `json:"doctor,omitempty"`
	Restricted bool    `json:"restricted"`
}
