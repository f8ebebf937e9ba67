package memory

import "github.com/anonto42/nano-social/backend/internal/repositories"

var (
	_ repositories.UserRepository         = (*Users)(nil)
	_ repositories.FollowRepository       = (*Follows)(nil)
	_ repositories.LikeRepository         = (*Likes)(nil)
	_ repositories.NotificationRepository = (*Notifications)(nil)
	_ repositories.PostRepository         = (*Posts)(nil)
)
