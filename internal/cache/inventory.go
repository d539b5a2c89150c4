package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix        = "user:%d"
	ArticleKeyPrefix     = "article:%d"
	ProductKeyPrefix     = "product:%d"
	JournalListKey       = "journals:list"
	UnreadCountKeyPrefix = "notifications:unread:%d"
	ReputationKeyPrefix  = "reputation:%d"
)

const (
	UserTTL        = 5 * time.Minute
	ArticleTTL     = 30 * time.Minute
	ProductTTL     = 10 * time.Minute
	JournalListTTL = 30 * time.Minute
	UnreadTTL      = time.Minute
	ReputationTTL  = 10 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func ArticleKey(articleID uint) string {
	return fmt.Sprintf(ArticleKeyPrefix, articleID)
}

func ProductKey(productID uint) string {
	return fmt.Sprintf(ProductKeyPrefix, productID)
}

func UnreadCountKey(userID uint) string {
	return fmt.Sprintf(UnreadCountKeyPrefix, userID)
}

func ReputationKey(profileID uint) string {
	return fmt.Sprintf(ReputationKeyPrefix, profileID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateArticle(ctx context.Context, articleID uint) {
	Invalidate(ctx, ArticleKey(articleID))
}

func InvalidateProduct(ctx context.Context, productID uint) {
	Invalidate(ctx, ProductKey(productID))
}

func InvalidateUnreadCount(ctx context.Context, userID uint) {
	Invalidate(ctx, UnreadCountKey(userID))
}

func InvalidateReputation(ctx context.Context, profileID uint) {
	Invalidate(ctx, ReputationKey(profileID))
}
