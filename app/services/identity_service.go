package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Rakhulsr/khayal-shop/app/models"
	"github.com/Rakhulsr/khayal-shop/app/repositories"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	ActionCartManage     = "cart:manage"
	ActionOrderPlace     = "order:place"
	ActionOrderViewOwn   = "order:view-own"
	ActionAdminOrders    = "admin:orders"
	ActionAdminProducts  = "admin:products"
	ActionAdminDashboard = "admin:dashboard"
)

var adminActions = map[string]bool{
	ActionAdminOrders:    true,
	ActionAdminProducts:  true,
	ActionAdminDashboard: true,
}

const (
	DefaultTokenTTL   = 24 * time.Hour
	MinPasswordLength = 6
)

type SignUpForm struct {
	DisplayName     string `json:"displayName"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
}

type ProfileForm struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email" validate:"omitempty,email"`
}

type IdentityService struct {
	userRepo  repositories.UserRepositoryImpl
	admins    map[string]struct{}
	jwtSecret []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewIdentityService(userRepo repositories.UserRepositoryImpl, adminEmails []string, jwtSecret []byte) *IdentityService {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		admins[strings.ToLower(strings.TrimSpace(email))] = struct{}{}
	}
	return &IdentityService{
		userRepo:  userRepo,
		admins:    admins,
		jwtSecret: jwtSecret,
		tokenTTL:  DefaultTokenTTL,
		now:       time.Now,
	}
}

func (s *IdentityService) IsAdmin(user *models.User) bool {
	if user == nil {
		return false
	}
	_, ok := s.admins[strings.ToLower(user.Email)]
	return ok
}

// Authorize reports whether user may perform action. Unknown actions are
// denied.
func (s *IdentityService) Authorize(user *models.User, action string) bool {
	if user == nil {
		return false
	}
	if adminActions[action] {
		return s.IsAdmin(user)
	}
	switch action {
	case ActionCartManage, ActionOrderPlace, ActionOrderViewOwn:
		return true
	}
	return false
}

// Require is Authorize with a typed error explaining the refusal.
func (s *IdentityService) Require(user *models.User, action string) error {
	if user == nil {
		return &AuthRequiredError{Action: actionDescription(action)}
	}
	if !s.Authorize(user, action) {
		return &ForbiddenError{Action: action}
	}
	return nil
}

func actionDescription(action string) string {
	switch action {
	case ActionCartManage:
		return "manage your cart"
	case ActionOrderPlace:
		return "place an order"
	case ActionOrderViewOwn:
		return "view your orders"
	}
	return "continue"
}

func (s *IdentityService) SignUp(ctx context.Context, form SignUpForm) (*models.User, error) {
	form.Email = strings.ToLower(strings.TrimSpace(form.Email))
	form.DisplayName = strings.TrimSpace(form.DisplayName)

	if err := validateForm(form); err != nil {
		return nil, signUpError(err)
	}

	existing, err := s.userRepo.FindByEmail(ctx, form.Email)
	if err != nil {
		return nil, storeError("look up user", "user", form.Email, err)
	}
	if existing != nil {
		return nil, &ValidationError{Fields: []string{"email"}, Message: "this email is already registered"}
	}

	user := &models.User{Email: form.Email, DisplayName: form.DisplayName}
	if user.DisplayName == "" {
		user.DisplayName = strings.SplitN(form.Email, "@", 2)[0]
	}

	if err := s.userRepo.Create(ctx, user, form.Password); err != nil {
		log.Printf("IdentityService.SignUp: failed to create user %s: %v", form.Email, err)
		return nil, storeError("create user", "user", form.Email, err)
	}

	log.Printf("IdentityService.SignUp: ✅ user %s registered", user.ID)
	return user, nil
}

func signUpError(err error) error {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	for _, f := range verr.Fields {
		switch f {
		case "password":
			verr.Message = fmt.Sprintf("password should be at least %d characters", MinPasswordLength)
			return verr
		case "confirmPassword":
			verr.Message = "passwords do not match"
			return verr
		}
	}
	return verr
}

func (s *IdentityService) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, storeError("look up user", "user", email, err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Printf("IdentityService.SignIn: wrong password for user %s", user.ID)
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// FindUser returns nil, nil when the user no longer exists.
func (s *IdentityService) FindUser(ctx context.Context, id string) (*models.User, error) {
	if id == "" {
		return nil, nil
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError("load user", "user", id, err)
	}
	return user, nil
}

func (s *IdentityService) UpdateProfile(ctx context.Context, userID string, form ProfileForm) (*models.User, error) {
	form.Email = strings.ToLower(strings.TrimSpace(form.Email))
	form.DisplayName = strings.TrimSpace(form.DisplayName)
	if err := validateForm(form); err != nil {
		return nil, err
	}

	user, err := s.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &NotFoundError{Kind: "user", ID: userID}
	}

	if form.Email == "" {
		form.Email = user.Email
	}
	if form.Email != user.Email {
		other, err := s.userRepo.FindByEmail(ctx, form.Email)
		if err != nil {
			return nil, storeError("look up user", "user", form.Email, err)
		}
		if other != nil {
			return nil, &ValidationError{Fields: []string{"email"}, Message: "this email is already registered"}
		}
	}

	user.Email = form.Email
	if form.DisplayName != "" {
		user.DisplayName = form.DisplayName
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		log.Printf("IdentityService.UpdateProfile: failed to update user %s: %v", userID, err)
		return nil, storeError("update user", "user", userID, err)
	}
	return user, nil
}

// IssueToken signs an HS256 bearer token whose subject is the user id.
func (s *IdentityService) IssueToken(user *models.User) (string, time.Time, error) {
	if len(s.jwtSecret) == 0 {
		return "", time.Time{}, errors.New("JWT_SECRET is not configured")
	}

	now := s.now()
	expires := now.Add(s.tokenTTL)
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expires, nil
}

// ParseToken verifies raw and returns the user id it was issued for.
func (s *IdentityService) ParseToken(raw string) (string, error) {
	if len(s.jwtSecret) == 0 {
		return "", ErrInvalidCredentials
	}

	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidCredentials
	}
	return claims.Subject, nil
}
