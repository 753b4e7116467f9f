package service

import (
	"bitwise74/job-portal/internal/model"
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// PurgeResendRequests deletes resend records that no longer limit anyone.
// A record is dead once its cooldown ran out and the last resend is over a
// day old, or once its user has verified.
func PurgeResendRequests(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	verified := db.
		Model(&model.User{}).
		Select("id").
		Where("email_verified = ?", true)

	res := db.WithContext(ctx).
		Where("(cooldown < ? AND last_resend < ?) OR user_id IN (?)", now, now.Add(-24*time.Hour), verified).
		Delete(&model.ResendRequest{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to purge resend requests, %w", res.Error)
	}

	return res.RowsAffected, nil
}
