package services

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/xperttutor/user-service/internal/models"
	"github.com/xperttutor/user-service/internal/repository"
	"github.com/xperttutor/user-service/internal/utils"
)

// ValidationErrors carries field-level validation failures out of Register so
// the handler can report them as a 400 with per-field detail.
type ValidationErrors []utils.FieldError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, "; ")
}

// RegisterInput is the registration payload. Optional profile fields are
// accepted up front, exactly as they are on later updates.
type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`

	Aadhar        *int64 `json:"aadhar"`
	Phone         *int64 `json:"phone"`
	Phone2        *int64 `json:"phone2"`
	Category      string `json:"category"`
	OrgName       string `json:"orgName"`
	Address       string `json:"address"`
	AccountName   string `json:"accountName"`
	AccountNumber *int64 `json:"accountNumber"`
	IFSC          string `json:"ifsc"`
	OnboardCode   string `json:"onboardCode"`
}

// UpdateInput is a partial profile update; nil fields are left untouched.
type UpdateInput struct {
	Name          *string `json:"name"`
	Aadhar        *int64  `json:"aadhar"`
	Phone         *int64  `json:"phone"`
	Phone2        *int64  `json:"phone2"`
	Category      *string `json:"category"`
	OrgName       *string `json:"orgName"`
	Address       *string `json:"address"`
	AccountName   *string `json:"accountName"`
	AccountNumber *int64  `json:"accountNumber"`
	IFSC          *string `json:"ifsc"`
	OnboardCode   *string `json:"onboardCode"`
	Password      *string `json:"password"`
}

// UserService owns the user records: creation with uniqueness pre-checks,
// credential verification on login, lookups, and partial updates.
type UserService struct {
	repo     repository.UserRepository
	hashCost int
	log      *zap.Logger
}

func NewUserService(repo repository.UserRepository, hashCost int, log *zap.Logger) *UserService {
	if hashCost == 0 {
		hashCost = DefaultHashCost
	}
	return &UserService{repo: repo, hashCost: hashCost, log: log}
}

// Register validates the input, checks username/email uniqueness and creates
// the record with generated referral codes and sentinel defaults.
//
// The uniqueness check is a read before the insert, not a constraint; two
// concurrent registrations can race past it. Known limitation, kept as
// best-effort.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if fieldErrs := utils.ValidateStruct(in); fieldErrs != nil {
		return nil, ValidationErrors(fieldErrs)
	}

	taken, err := s.repo.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}
	taken, err = s.repo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	u := &models.User{
		Name:          in.Name,
		Username:      in.Username,
		Email:         in.Email,
		Aadhar:        in.Aadhar,
		Phone:         in.Phone,
		Phone2:        in.Phone2,
		Category:      defaultString(in.Category),
		OrgName:       defaultString(in.OrgName),
		Address:       defaultString(in.Address),
		AccountName:   defaultString(in.AccountName),
		AccountNumber: in.AccountNumber,
		IFSC:          defaultString(in.IFSC),
		ReferID:       models.NewReferID(),
		AffiliateID:   models.NewAffiliateID(),
		OnboardCode:   in.OnboardCode,
		Children:      []string{},
	}
	if err := SetPassword(u, in.Password, s.hashCost); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.log.Info("user registered", zap.String("username", u.Username), zap.String("referId", u.ReferID))
	return u, nil
}

// Login resolves the username and verifies the password.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	ok, err := VerifyPassword(u, password)
	if err != nil {
		s.log.Error("password hash integrity failure", zap.String("username", username), zap.Error(err))
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.repo.FindByUsername(ctx, username)
}

// Update merges the supplied fields into the record and returns the merged
// result. Unlike Register it re-validates nothing, including username/email
// uniqueness: an asymmetry inherited from the creation-only checks, preserved
// deliberately. A password in the payload is re-hashed before persisting.
func (s *UserService) Update(ctx context.Context, id string, in UpdateInput) (*models.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := bson.M{}
	setString := func(key string, v *string) {
		if v != nil {
			fields[key] = *v
		}
	}
	setInt := func(key string, v *int64) {
		if v != nil {
			fields[key] = *v
		}
	}
	setString("name", in.Name)
	setInt("aadhar", in.Aadhar)
	setInt("phone", in.Phone)
	setInt("phone2", in.Phone2)
	setString("category", in.Category)
	setString("orgName", in.OrgName)
	setString("address", in.Address)
	setString("accountName", in.AccountName)
	setInt("accountNumber", in.AccountNumber)
	setString("ifsc", in.IFSC)
	setString("onboardCode", in.OnboardCode)

	if in.Password != nil {
		if err := SetPassword(u, *in.Password, s.hashCost); err != nil {
			return nil, err
		}
		fields["password"] = u.PasswordHash
	}

	if len(fields) > 0 {
		if err := s.repo.UpdateByID(ctx, id, fields); err != nil {
			return nil, err
		}
	}
	return s.repo.FindByID(ctx, id)
}

func defaultString(v string) string {
	if v == "" {
		return models.NotUpdated
	}
	return v
}
