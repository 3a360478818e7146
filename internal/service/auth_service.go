package service

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"worksafe/internal/model"
	"worksafe/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTenantRequired     = errors.New("tenantId is required")
	ErrMemberNotFound     = errors.New("member not found")
)

// AuthService handles dashboard admin and member authentication
type AuthService struct {
	adminUsername string
	adminPassword string
	jwtSecret     []byte
	userRepo      repository.UserRepo
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepo) *AuthService {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "password123"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super-secret-key-change-in-production"
	}

	return &AuthService{
		adminUsername: username,
		adminPassword: password,
		jwtSecret:     []byte(secret),
		userRepo:      userRepo,
	}
}

// Login validates credentials and returns a tenant-scoped admin token
func (s *AuthService) Login(username, password, tenantID string) (*model.LoginResponse, error) {
	if tenantID == "" {
		return nil, ErrTenantRequired
	}
	if username != s.adminUsername || password != s.adminPassword {
		return nil, ErrInvalidCredentials
	}

	adminID := "admin_" + uuid.New().String()[:8]

	claims := &model.AdminClaims{
		AdminID:  adminID,
		TenantID: tenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:    tokenString,
		AdminID:  adminID,
		TenantID: tenantID,
	}, nil
}

// ValidateAdminToken validates an admin JWT and returns claims
func (s *AuthService) ValidateAdminToken(tokenString string) (*model.AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.AdminClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// IssueMemberToken looks up the member and returns a session token for the
// notification endpoints. The member must belong to the given tenant.
func (s *AuthService) IssueMemberToken(ctx context.Context, tenantID, memberID string) (*model.MemberTokenResponse, error) {
	member, err := s.userRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member == nil || member.TenantID != tenantID {
		return nil, ErrMemberNotFound
	}

	token, err := s.GenerateMemberToken(tenantID, member.ID)
	if err != nil {
		return nil, err
	}

	return &model.MemberTokenResponse{
		Token:    token,
		MemberID: member.ID,
		TenantID: tenantID,
	}, nil
}

// GenerateMemberToken creates a tenant-scoped token for a member session
// (notification stream, submission endpoints)
func (s *AuthService) GenerateMemberToken(tenantID, memberID string) (string, error) {
	claims := &model.MemberClaims{
		MemberID: memberID,
		TenantID: tenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateMemberToken validates a member JWT and returns claims
func (s *AuthService) ValidateMemberToken(tokenString string) (*model.MemberClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.MemberClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.MemberClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
