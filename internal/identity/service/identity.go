package service

import (
	"context"
	"errors"
	"net/http"
	identityerrors "shiftboard/internal/identity/errors"
	"shiftboard/internal/identity/repository"
	"shiftboard/pkg/config"
	apperrors "shiftboard/pkg/errors"
	"shiftboard/pkg/model"
	"shiftboard/pkg/sanitizer"
)

// IdentityService maps a verified email to the user, role and doctor behind
// it. It never mutates anything.
type IdentityService interface {
	CheckWhitelist(ctx context.Context, email string) (bool, error)
	ResolveActor(ctx context.Context, email string) (*model.Actor, error)
	ResolveRole(ctx context.Context, email string) (model.SystemRole, error)
	ResolveDoctor(ctx context.Context, email string) (*model.Doctor, error)
	Profile(ctx context.Context, email string) (*model.Profile, error)
}

type identityService struct {
	users   repository.UserRepository
	doctors repository.DoctorRepository
	cfg     *config.Config
}

func NewIdentityService(
	users repository.UserRepository,
	doctors repository.DoctorRepository,
	cfg *config.Config,
) IdentityService {
	return &identityService{
		users:   users,
		doctors: doctors,
		cfg:     cfg,
	}
}

// CheckWhitelist reports whether email belongs to a known user. Only store
// failures are returned as errors.
func (s *identityService) CheckWhitelist(ctx context.Context, email string) (bool, error) {
	_, err := s.ResolveActor(ctx, email)
	if err == nil {
		return true, nil
	}
	if apperrors.Is(err, apperrors.CodeUnauthorized) {
		return false, nil
	}
	return false, err
}

func (s *identityService) ResolveActor(ctx context.Context, email string) (*model.Actor, error) {
	email = sanitizer.SanitizeEmail(email)
	if email == "" {
		return nil, apperrors.Unauthorized("Authenticated email is required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, identityerrors.ErrUserNotFound) {
			s.cfg.Log.Warn("Principal not in authorized list", "email", email)
			return nil, apperrors.Unauthorized("Email not found in authorized list")
		}
		s.cfg.Log.Error("Failed to look up user", "email", email, "error", err)
		return nil, apperrors.StoreFailure("Failed to verify user", err)
	}

	role := model.RoleMember
	if user.SystemRole == model.RoleAdmin {
		role = model.RoleAdmin
	}

	return &model.Actor{
		UserID:   user.ID,
		Email:    email,
		Role:     role,
		DoctorID: user.DoctorID,
	}, nil
}

func (s *identityService) ResolveRole(ctx context.Context, email string) (model.SystemRole, error) {
	actor, err := s.ResolveActor(ctx, email)
	if err != nil {
		return "", err
	}
	return actor.Role, nil
}

// ResolveDoctor fails with NotFound, not Unauthorized, when the user is known
// but has no doctor profile.
func (s *identityService) ResolveDoctor(ctx context.Context, email string) (*model.Doctor, error) {
	actor, err := s.ResolveActor(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.doctorFor(ctx, actor)
}

func (s *identityService) doctorFor(ctx context.Context, actor *model.Actor) (*model.Doctor, error) {
	if actor.DoctorID == "" {
		return nil, apperrors.Wrap(identityerrors.ErrDoctorNotLinked, apperrors.CodeNotFound,
			"No doctor profile is linked to this account", http.StatusNotFound)
	}

	doctor, err := s.doctors.FindByID(ctx, actor.DoctorID)
	if err != nil {
		if errors.Is(err, identityerrors.ErrDoctorNotFound) {
			s.cfg.Log.Warn("User links to a missing doctor", "user_id", actor.UserID, "doctor_id", actor.DoctorID)
			return nil, apperrors.NotFoundWithID("Doctor", actor.DoctorID)
		}
		s.cfg.Log.Error("Failed to look up doctor", "doctor_id", actor.DoctorID, "error", err)
		return nil, apperrors.StoreFailure("Failed to load doctor profile", err)
	}
	return doctor, nil
}

// Profile resolves the caller for display. An unlinked user gets a
// restricted profile instead of an error.
func (s *identityService) Profile(ctx context.Context, email string) (*model.Profile, error) {
	actor, err := s.ResolveActor(ctx, email)
	if err != nil {
		return nil, err
	}

	doctor, err := s.doctorFor(ctx, actor)
	if err != nil {
		if apperrors.Is(err, apperrors.CodeNotFound) {
			s.cfg.Log.Info("Serving restricted profile", "user_id", actor.UserID)
			return &model.Profile{Actor: *actor, Restricted: true}, nil
		}
		return nil, err
	}

	return &model.Profile{Actor: *actor, Doctor: doctor}, nil
}
