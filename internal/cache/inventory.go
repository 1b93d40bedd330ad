package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix       = "user:%d"
	UserRatingKeyPrefix = "user:%d:rating"
	UserStatsKeyPrefix  = "user:%d:stats"
	AnnouncementsKey    = "announcements:active"
)

const (
	UserTTL          = 5 * time.Minute
	RatingTTL        = 10 * time.Minute
	StatsTTL         = 5 * time.Minute
	AnnouncementsTTL = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func UserRatingKey(userID uint) string {
	return fmt.Sprintf(UserRatingKeyPrefix, userID)
}

func UserStatsKey(userID uint) string {
	return fmt.Sprintf(UserStatsKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
	Invalidate(ctx, UserStatsKey(userID))
}

// InvalidateUserRating drops the cached rating aggregate after a new rating
// row lands. The ratings table stays the source of truth.
func InvalidateUserRating(ctx context.Context, userID uint) {
	Invalidate(ctx, UserRatingKey(userID))
	Invalidate(ctx, UserStatsKey(userID))
}

func InvalidateAnnouncements(ctx context.Context) {
	Invalidate(ctx, AnnouncementsKey)
}
