//go:build integration

package testutil

import (
	"shiftboard/pkg/model"
	"testing"
)

// Staff is a seeded ward: one admin who is also a doctor, two residents and
// one whitelisted principal without a doctor profile.
type Staff struct {
	Admin     model.User
	Resident  model.User
	Resident2 model.User
	Unlinked  model.User
	AdminDoc  model.Doctor
	ResDoc    model.Doctor
	ResDoc2   model.Doctor
}

func SeedStaff(t *testing.T, m *MongoHelper) *Staff {
	t.Helper()

	s := &Staff{
		AdminDoc:  model.Doctor{ID: "d1", FullName: "Dr. Head", MedicalRole: model.MedicalRoleAttending, Qualification: model.QualificationSenior, UserID: "u1"},
		ResDoc:    model.Doctor{ID: "d2", FullName: "Dr. Resident", MedicalRole: model.MedicalRoleResident, Qualification: model.QualificationJunior, UserID: "u2"},
		ResDoc2:   model.Doctor{ID: "d3", FullName: "Dr. Second", MedicalRole: model.MedicalRoleResident, Qualification: model.QualificationIntermediate, UserID: "u3"},
		Admin:     model.User{ID: "u1", Email: "head@ward.example", SystemRole: model.RoleAdmin, DoctorID: "d1"},
		Resident:  model.User{ID: "u2", Email: "resident@ward.example", SystemRole: model.RoleMember, DoctorID: "d2"},
		Resident2: model.User{ID: "u3", Email: "second@ward.example", SystemRole: model.RoleMember, DoctorID: "d3"},
		Unlinked:  model.User{ID: "u4", Email: "coordinator@ward.example", SystemRole: model.RoleMember},
	}

	for _, d := range []model.Doctor{s.AdminDoc, s.ResDoc, s.ResDoc2} {
		m.InsertDoctor(t, d)
	}
	for _, u := range []model.User{s.Admin, s.Resident, s.Resident2, s.Unlinked} {
		m.InsertUser(t, u)
	}
	return s
}
