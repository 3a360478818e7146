package model

import "github.com/golang-jwt/jwt/v5"

// AdminClaims are JWT claims for dashboard admin authentication
type AdminClaims struct {
	AdminID  string `json:"adminId"`
	TenantID string `json:"tenantId"`
	jwt.RegisteredClaims
}

// MemberClaims are JWT claims for tenant member sessions (notification
// stream, submission endpoints)
type MemberClaims struct {
	MemberID string `json:"memberId"`
	TenantID string `json:"tenantId"`
	jwt.RegisteredClaims
}

// LoginRequest is the credentials payload for admin login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	TenantID string `json:"tenantId"`
}

// LoginResponse is returned on successful login
type LoginResponse struct {
	Token    string `json:"token"`
	AdminID  string `json:"adminId"`
	TenantID string `json:"tenantId"`
}

// MemberTokenResponse is returned when an admin issues a member session token
type MemberTokenResponse struct {
	Token    string `json:"token"`
	MemberID string `json:"memberId"`
	TenantID string `json:"tenantId"`
}
