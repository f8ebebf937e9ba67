package repositories

import (
	"context"

	"github.com/anonto42/nano-social/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository keeps each user's likedPosts set.
type LikeRepository interface {
	CreateLike(ctx context.Context, userID uint, postID string) (bool, error)
	DeleteLike(ctx context.Context, userID uint, postID string) error
	GetLikedPostIDs(ctx context.Context, userID uint) ([]string, error)
	DeleteLikesByPostID(ctx context.Context, postID string) error
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike adds postID to the user's set and reports whether a row was
// inserted. Adding twice is a no-op.
func (r *PostgresLikeRepository) CreateLike(ctx context.Context, userID uint, postID string) (bool, error) {
	like := models.Like{UserID: userID, PostID: postID}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteLike removes postID from the user's set. Removing an absent id is a no-op.
func (r *PostgresLikeRepository) DeleteLike(ctx context.Context, userID uint, postID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{}).Error
}

// GetLikedPostIDs returns the user's liked post ids, oldest like first.
func (r *PostgresLikeRepository) GetLikedPostIDs(ctx context.Context, userID uint) ([]string, error) {
	ids := []string{}
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ?", userID).
		Order("id").
		Pluck("post_id", &ids).Error
	return ids, err
}

// DeleteLikesByPostID drops a deleted post from every user's set.
func (r *PostgresLikeRepository) DeleteLikesByPostID(ctx context.Context, postID string) error {
	return r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&models.Like{}).Error
}
