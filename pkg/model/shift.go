package model

type ShiftRole string

const (
	ShiftRoleJuniorResident       ShiftRole = "Junior Resident"
	ShiftRoleIntermediateResident ShiftRole = "Intermediate Resident"
	ShiftRoleSeniorResident       ShiftRole = "Senior Resident"
	ShiftRoleAttending            ShiftRole = "Attending"
)

// Shift is populated externally. DoctorID is nil for an unassigned shift.
type Shift struct {
	ID        string    `json:"id" bson:"_id"`
	Date      string    `json:"date" bson:"date"`
	ShiftRole ShiftRole `json:"shift_role" bson:"shift_role"`
	DoctorID  *string   `json:"doctor_id" bson:"doctor_id"`
}

type ShiftDoctor struct {
	FullName    string      `json:"full_name" bson:"full_name"`
	MedicalRole MedicalRole `json:"medical_role" bson:"medical_role"`
}

// ShiftView is a shift left-joined with its assigned doctor.
type ShiftView struct {
	Shift  `bson:",inline"`
	Doctor *ShiftDoctor `json:"doctor" bson:"doctor,omitempty"`
}
