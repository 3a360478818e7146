package service

import "worksafe/internal/model"

// Broadcaster pushes notifications to connected dashboard clients. The
// websocket hub implements it; services hold the interface so transport
// stays swappable.
type Broadcaster interface {
	NotifyMember(memberID string, n *model.Notification)
}
