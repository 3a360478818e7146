package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	"worksafe/internal/model"
	"worksafe/internal/repository"
)

// Notifier dispatches a notification to every member of a role group.
// Dispatch is fire-and-forget: failures are logged, never propagated.
type Notifier interface {
	Notify(ctx context.Context, tenantID, roleGroup string, content model.NotificationContent)
}

// NotificationService resolves role-group recipients, persists one
// notification per recipient and pushes it to connected clients.
type NotificationService struct {
	userRepo         repository.UserRepo
	notificationRepo repository.NotificationRepo
	broadcaster      Broadcaster
}

// NewNotificationService creates a new notification service
func NewNotificationService(userRepo repository.UserRepo, notificationRepo repository.NotificationRepo) *NotificationService {
	return &NotificationService{
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

// SetBroadcaster injects the websocket hub
func (s *NotificationService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// ListForMember returns the member's most recent notifications, newest
// first.
func (s *NotificationService) ListForMember(ctx context.Context, memberID string, limit int64) ([]*model.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.notificationRepo.ListByRecipient(ctx, memberID, limit)
}

// Notify resolves the role group's members and delivers the content to
// each of them. Any failure along the way is logged and swallowed so a
// broken notification channel never blocks or rolls back persisted state.
func (s *NotificationService) Notify(ctx context.Context, tenantID, roleGroup string, content model.NotificationContent) {
	members, err := s.userRepo.ListByRole(ctx, tenantID, roleGroup)
	if err != nil {
		log.Printf("notification: resolving %s recipients for tenant %s failed: %v", roleGroup, tenantID, err)
		return
	}
	if len(members) == 0 {
		log.Printf("notification: no %s recipients in tenant %s", roleGroup, tenantID)
		return
	}

	for _, member := range members {
		n := &model.Notification{
			ID:          uuid.New().String(),
			TenantID:    tenantID,
			RecipientID: member.ID,
			RoleGroup:   roleGroup,
			Title:       content.Title,
			Message:     content.Message,
			Link:        content.Link,
		}
		if err := s.notificationRepo.Create(ctx, n); err != nil {
			log.Printf("notification: persisting for member %s failed: %v", member.ID, err)
			continue
		}
		if s.broadcaster != nil {
			s.broadcaster.NotifyMember(member.ID, n)
		}
	}
}
