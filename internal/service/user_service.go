package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/localite/user-service/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// CreateUserRequest carries the validated fields for user creation.
type CreateUserRequest struct {
	FirstName    string
	LastName     string
	MiddleName   *string
	MobileNumber string
	Email        string
	DOB          time.Time
	Introduction string
	Address      string
	CityID       *int64
	Pincode      int
	Gender       string
	Username     string
	Password     string
}

// UserService handles user business logic.
type UserService struct {
	users      domain.UserRepository
	orgs       domain.OrganizationRepository
	tx         domain.TxRunner
	bcryptCost int
	logger     *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(
	users domain.UserRepository,
	orgs domain.OrganizationRepository,
	tx domain.TxRunner,
	bcryptCost int,
	logger *slog.Logger,
) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{users: users, orgs: orgs, tx: tx, bcryptCost: bcryptCost, logger: logger}
}

// Create persists a new user. The username uniqueness check is
// case-insensitive and runs before any mutation. When a profile
// picture location arrives with the request it is applied as a
// follow-up update after the insert; the two writes share the request
// transaction but remain distinct statements.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest, profilePicLocation *string) (string, error) {
	var message string

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		_, err := s.users.GetByUsernameOrEmail(ctx, req.Username)
		if err == nil {
			return domain.Conflict("Sorry. That user name already exists.", nil)
		}
		if !errors.Is(err, domain.ErrNoRows) {
			s.logger.Error("user uniqueness check failed", slog.String("error", err.Error()))
			return domain.Database("An error occurred while creating the user.", err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
		if err != nil {
			s.logger.Error("failed to hash password", slog.String("error", err.Error()))
			return domain.Database("An error occurred while creating the user.", err)
		}

		user := &domain.User{
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			MiddleName:   req.MiddleName,
			MobileNumber: req.MobileNumber,
			Email:        req.Email,
			DOB:          req.DOB,
			Introduction: req.Introduction,
			Address:      req.Address,
			CityID:       req.CityID,
			Pincode:      req.Pincode,
			Gender:       req.Gender,
			Username:     req.Username,
			PasswordHash: string(hash),
		}

		if err := s.users.Create(ctx, user); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return domain.Conflict("Sorry. That user name already exists.", nil)
			}
			s.logger.Error("failed to create user",
				slog.String("username", req.Username),
				slog.String("error", err.Error()),
			)
			return domain.Database("An error occurred while creating the user.", err)
		}

		if profilePicLocation != nil {
			user.ProfilePicLocation = profilePicLocation
			if err := s.users.Update(ctx, user); err != nil {
				s.logger.Error("failed to attach profile picture",
					slog.Int64("user_id", user.ID),
					slog.String("error", err.Error()),
				)
				return domain.Database("An error occurred while creating the user.", err)
			}
		}

		message = fmt.Sprintf("%s was added!", user.Username)
		return nil
	})
	if err != nil {
		return "", err
	}

	return message, nil
}

// GetAll loads every user and resolves each user's organizations with
// a follow-up query per user. The N+1 shape is deliberate at the
// declared scale.
func (s *UserService) GetAll(ctx context.Context) ([]UserData, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, domain.Database("An error occurred while listing users.", err)
	}

	out := make([]UserData, 0, len(users))
	for _, u := range users {
		data := userData(u)

		orgs, err := s.orgs.GetByUserID(ctx, u.ID)
		if err != nil {
			return nil, domain.Database("An error occurred while listing users.", err)
		}
		data.Organizations = organizationData(orgs)

		out = append(out, data)
	}

	return out, nil
}

// GetByID fetches one user with its organizations.
func (s *UserService) GetByID(ctx context.Context, id int64) (*UserData, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNoRows) {
			return nil, domain.NotFound("User not found.")
		}
		return nil, domain.Database("An error occurred while fetching the user.", err)
	}

	orgs, err := s.orgs.GetByUserID(ctx, id)
	if err != nil {
		return nil, domain.Database("An error occurred while fetching the user.", err)
	}

	data := userData(user)
	data.Organizations = organizationData(orgs)
	return &data, nil
}

// Update is part of the declared contract but not implemented yet.
func (s *UserService) Update(ctx context.Context, id int64) error {
	return domain.Internal("Update user functionality not yet implemented")
}

// Delete is part of the declared contract but not implemented yet.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	return domain.Internal("Delete user functionality not yet implemented")
}
