package model

import "time"

// Role names used for ownership resolution and notification fan-out
const (
	RoleSafetyOfficer  = "safety-officer"
	RoleHealthProvider = "occupational-health-provider"
	RoleAdministrator  = "administrator"
)

// Member is a user belonging to a tenant
type Member struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	TenantID  string    `json:"tenantId" bson:"tenantId"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Roles     []string  `json:"roles" bson:"roles"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// HasRole reports whether the member holds the given role
func (m *Member) HasRole(role string) bool {
	for _, r := range m.Roles {
		if r == role {
			return true
		}
	}
	return false
}
