package service

import (
	"context"
	"errors"
	"fmt"
	identityerrors "shiftboard/internal/identity/errors"
	"shiftboard/pkg/config"
	apperrors "shiftboard/pkg/errors"
	"shiftboard/pkg/logger"
	"shiftboard/pkg/model"
	"testing"
)

type mockUserRepository struct {
	users map[string]*model.User
	err   error
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[email]
	if !ok {
		return nil, fmt.Errorf("%w: %s", identityerrors.ErrUserNotFound, email)
	}
	return u, nil
}

type mockDoctorRepository struct {
	doctors map[string]*model.Doctor
	err     error
}

func (m *mockDoctorRepository) FindByID(ctx context.Context, id string) (*model.Doctor, error) {
	if m.err != nil {
		return nil, m.err
	}
	d, ok := m.doctors[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", identityerrors.ErrDoctorNotFound, id)
	}
	return d, nil
}

func newTestService(users *mockUserRepository, doctors *mockDoctorRepository) IdentityService {
	return NewIdentityService(users, doctors, &config.Config{Log: logger.Discard()})
}

func fixtures() (*mockUserRepository, *mockDoctorRepository) {
	users := &mockUserRepository{users: map[string]*model.User{
		"admin@example.com":    {ID: "u-admin", Email: "admin@example.com", SystemRole: model.RoleAdmin, DoctorID: "d1"},
		"resident@example.com": {ID: "u-res", Email: "resident@example.com", SystemRole: model.RoleMember, DoctorID: "d2"},
		"clerk@example.com":    {ID: "u-clerk", Email: "clerk@example.com", SystemRole: "viewer"},
		"ghost@example.com":    {ID: "u-ghost", Email: "ghost@example.com", SystemRole: model.RoleMember, DoctorID: "d-missing"},
	}}
	doctors := &mockDoctorRepository{doctors: map[string]*model.Doctor{
		"d1": {ID: "d1", FullName: "Dana Levi", MedicalRole: model.MedicalRoleAttending, UserID: "u-admin"},
		"d2": {ID: "d2", FullName: "Omer Katz", MedicalRole: model.MedicalRoleResident, UserID: "u-res"},
	}}
	return users, doctors
}

func TestResolveActor(t *testing.T) {
	svc := newTestService(fixtures())

	tests := []struct {
		name     string
		email    string
		wantCode string
		wantRole model.SystemRole
		wantDoc  string
	}{
		{name: "admin", email: "admin@example.com", wantRole: model.RoleAdmin, wantDoc: "d1"},
		{name: "case and spaces are normalized", email: "  Resident@Example.com ", wantRole: model.RoleMember, wantDoc: "d2"},
		{name: "unknown role is member", email: "clerk@example.com", wantRole: model.RoleMember},
		{name: "unknown email", email: "stranger@example.com", wantCode: apperrors.CodeUnauthorized},
		{name: "empty email", email: "", wantCode: apperrors.CodeUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor, err := svc.ResolveActor(context.Background(), tt.email)
			if tt.wantCode != "" {
				if !apperrors.Is(err, tt.wantCode) {
					t.Fatalf("expected %s, got %v", tt.wantCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if actor.Role != tt.wantRole {
				t.Errorf("role = %s, want %s", actor.Role, tt.wantRole)
			}
			if actor.DoctorID != tt.wantDoc {
				t.Errorf("doctor = %s, want %s", actor.DoctorID, tt.wantDoc)
			}
		})
	}
}

func TestResolveActor_StoreFailure(t *testing.T) {
	users, doctors := fixtures()
	users.err = errors.New("connection reset")
	svc := newTestService(users, doctors)

	_, err := svc.ResolveActor(context.Background(), "admin@example.com")
	if !apperrors.Is(err, apperrors.CodeStoreFailure) {
		t.Fatalf("expected STORE_FAILURE, got %v", err)
	}
}

func TestResolveDoctor(t *testing.T) {
	svc := newTestService(fixtures())

	doctor, err := svc.ResolveDoctor(context.Background(), "resident@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doctor.FullName != "Omer Katz" {
		t.Errorf("unexpected doctor %+v", doctor)
	}

	_, err = svc.ResolveDoctor(context.Background(), "clerk@example.com")
	if !apperrors.Is(err, apperrors.CodeNotFound) || !errors.Is(err, identityerrors.ErrDoctorNotLinked) {
		t.Errorf("expected NOT_FOUND wrapping ErrDoctorNotLinked, got %v", err)
	}

	_, err = svc.ResolveDoctor(context.Background(), "ghost@example.com")
	if !apperrors.Is(err, apperrors.CodeNotFound) {
		t.Errorf("expected NOT_FOUND for dangling link, got %v", err)
	}

	_, err = svc.ResolveDoctor(context.Background(), "stranger@example.com")
	if !apperrors.Is(err, apperrors.CodeUnauthorized) {
		t.Errorf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestResolveRole(t *testing.T) {
	svc := newTestService(fixtures())

	role, err := svc.ResolveRole(context.Background(), "admin@example.com")
	if err != nil || role != model.RoleAdmin {
		t.Errorf("expected admin, got %s (%v)", role, err)
	}
}

func TestCheckWhitelist(t *testing.T) {
	svc := newTestService(fixtures())

	if ok, err := svc.CheckWhitelist(context.Background(), "clerk@example.com"); !ok || err != nil {
		t.Errorf("expected whitelisted, got %v (%v)", ok, err)
	}
	if ok, err := svc.CheckWhitelist(context.Background(), "stranger@example.com"); ok || err != nil {
		t.Errorf("expected not whitelisted without error, got %v (%v)", ok, err)
	}

	users, doctors := fixtures()
	users.err = errors.New("timeout")
	if _, err := newTestService(users, doctors).CheckWhitelist(context.Background(), "clerk@example.com"); err == nil {
		t.Error("expected store failure to surface")
	}
}

func TestProfile(t *testing.T) {
	svc := newTestService(fixtures())

	profile, err := svc.Profile(context.Background(), "admin@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Restricted || profile.Doctor == nil || profile.Doctor.ID != "d1" {
		t.Errorf("unexpected profile %+v", profile)
	}

	profile, err = svc.Profile(context.Background(), "clerk@example.com")
	if err != nil {
		t.Fatalf("unlinked user should not error, got %v", err)
	}
	if !profile.Restricted || profile.Doctor != nil {
		t.Errorf("expected restricted profile, got %+v", profile)
	}

	users, doctors := fixtures()
	doctors.err = errors.New("socket closed")
	if _, err := newTestService(users, doctors).Profile(context.Background(), "admin@example.com"); !apperrors.Is(err, apperrors.CodeStoreFailure) {
		t.Errorf("expected STORE_FAILURE, got %v", err)
	}
}
