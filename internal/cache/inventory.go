package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix          = "user:%d"
	ServiceKeyPrefix       = "service:%d"
	ReviewSummaryKeyPrefix = "reviews:%d:summary"
)

const (
	UserTTL          = 5 * time.Minute
	ServiceTTL       = 5 * time.Minute
	ReviewSummaryTTL = 10 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func ServiceKey(serviceID uint) string {
	return fmt.Sprintf(ServiceKeyPrefix, serviceID)
}

func ReviewSummaryKey(userID uint) string {
	return fmt.Sprintf(ReviewSummaryKeyPrefix, userID)
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateService(ctx context.Context, serviceID uint) {
	Invalidate(ctx, ServiceKey(serviceID))
}

func InvalidateReviewSummary(ctx context.Context, userID uint) {
	Invalidate(ctx, ReviewSummaryKey(userID))
}
