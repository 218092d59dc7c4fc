package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/harentsoaR/elearn-portal/internal/models"
	"github.com/harentsoaR/elearn-portal/internal/store"
	"github.com/harentsoaR/elearn-portal/internal/utils"
)

// Messages rendered next to the offending form field.
const (
	MsgInvalidFullname    = "Invalid Username"
	MsgInvalidEmail       = "Invalid email address."
	MsgEmailTaken         = "Email already exists. Please choose a different email address."
	MsgInvalidPhone       = "Enter a 10-digit number."
	MsgWeakPassword       = "Password should have at least 8 characters, including one uppercase letter, one lowercase letter, one digit, and one special character."
	MsgPasswordMismatch   = "Passwords do not match or do not meet the criteria."
	MsgPasswordTooLong    = "Password must be at most 72 bytes long."
	MsgInvalidCredentials = "Invalid email or password."
)

type RegistrationInput struct {
	FullName  string
	Phone     string
	Email     string
	Password  string
	Password1 string
}

// CredentialService registers accounts and checks logins.
type CredentialService struct {
	users UserStore
	audit LoginAuditStore
	log   *zap.Logger
	now   func() time.Time
}

// NewCredentialService builds the service. audit may be nil, in which case
// logins are not recorded.
func NewCredentialService(users UserStore, audit LoginAuditStore, log *zap.Logger) *CredentialService {
	return &CredentialService{users: users, audit: audit, log: log, now: time.Now}
}

func (s *CredentialService) HashPassword(plain string) (string, error) {
	return utils.HashPassword(plain)
}

// EmailExists reports whether an account uses email. A store failure is
// logged and reported as false; the unique email index still rejects the
// insert in that case.
func (s *CredentialService) EmailExists(ctx context.Context, email string) bool {
	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return true
	}
	if !errors.Is(err, store.ErrNotFound) {
		s.log.Warn("email existence check failed", zap.Error(err))
	}
	return false
}

// Authenticate returns the user owning email if password matches its hash.
// Every failure, including a store error, is ErrInvalidCredentials so the
// caller cannot tell an unknown email from a wrong password.
func (s *CredentialService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.log.Error("credential lookup failed", zap.Error(err))
		}
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *CredentialService) VerifyCredentials(ctx context.Context, email, password string) bool {
	_, err := s.Authenticate(ctx, email, password)
	return err == nil
}

// Register validates every field and creates the account. Validation
// problems come back as FieldErrors.
func (s *CredentialService) Register(ctx context.Context, in RegistrationInput) (*models.User, error) {
	errs := FieldErrors{}

	if !utils.IsValidFullname(in.FullName) {
		errs["fullname"] = MsgInvalidFullname
	}
	if !utils.IsValidEmail(in.Email) {
		errs["email"] = MsgInvalidEmail
	} else if s.EmailExists(ctx, in.Email) {
		errs["email"] = MsgEmailTaken
	}
	if !utils.IsValidPhoneNumber(in.Phone) {
		errs["phoneno"] = MsgInvalidPhone
	}
	if !utils.IsValidPassword(in.Password) {
		errs["password"] = MsgWeakPassword
	}
	if !utils.IsValidPasswordAndConfirmation(in.Password, in.Password1) {
		errs["password1"] = MsgPasswordMismatch
	}
	if len(errs) > 0 {
		return nil, errs
	}

	hash, err := s.HashPassword(in.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, FieldErrors{"password": MsgPasswordTooLong}
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		FullName:  in.FullName,
		Phone:     in.Phone,
		Email:     in.Email,
		Password:  hash,
		Password1: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, FieldErrors{"email": MsgEmailTaken}
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login checks the email shape before touching the store, then verifies
// the password.
func (s *CredentialService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if !utils.IsValidEmail(email) {
		return nil, FieldErrors{"email": MsgInvalidEmail}
	}
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.recordLogin(ctx, email, password)
	return user, nil
}

// recordLogin appends a login audit record when auditing is enabled. It never
// fails the login.
func (s *CredentialService) recordLogin(ctx context.Context, email, password string) {
	if s.audit == nil {
		return
	}
	hash, err := s.HashPassword(password)
	if err != nil {
		s.log.Warn("login audit: hash failed", zap.Error(err))
		return
	}
	now := s.now().UTC()
	rec := &models.LoginRecord{
		Email:             email,
		LoginPasswordHash: hash,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.audit.Append(ctx, rec); err != nil {
		s.log.Warn("login audit: append failed", zap.Error(err))
	}
}
