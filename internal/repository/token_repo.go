package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/inaciog/seminars-app-sub000/internal/model"
)

// SpeakerTokenRepository 讲者自助令牌数据访问接口
type SpeakerTokenRepository interface {
	Create(ctx context.Context, token *model.SpeakerToken) error
	GetByToken(ctx context.Context, token string) (*model.SpeakerToken, error)
	ListBySuggestion(ctx context.Context, suggestionID string) ([]model.SpeakerToken, error)
	DeleteBySuggestion(ctx context.Context, suggestionID string) (int64, error)
	DeleteBySuggestionIDs(ctx context.Context, suggestionIDs []string) (int64, error)
}

type speakerTokenRepo struct {
	db *gorm.DB
}

// NewSpeakerTokenRepo 创建 SpeakerTokenRepository 实例
func NewSpeakerTokenRepo(db *gorm.DB) SpeakerTokenRepository {
	return &speakerTokenRepo{db: db}
}

func (r *speakerTokenRepo) Create(ctx context.Context, token *model.SpeakerToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *speakerTokenRepo) GetByToken(ctx context.Context, token string) (*model.SpeakerToken, error) {
	var t model.SpeakerToken
	err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *speakerTokenRepo) ListBySuggestion(ctx context.Context, suggestionID string) ([]model.SpeakerToken, error) {
	var tokens []model.SpeakerToken
	err := r.db.WithContext(ctx).
		Where("suggestion_id = ?", suggestionID).
		Order("created_at DESC").
		Find(&tokens).Error
	return tokens, err
}

func (r *speakerTokenRepo) DeleteBySuggestion(ctx context.Context, suggestionID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("suggestion_id = ?", suggestionID).
		Delete(&model.SpeakerToken{})
	return result.RowsAffected, result.Error
}

func (r *speakerTokenRepo) DeleteBySuggestionIDs(ctx context.Context, suggestionIDs []string) (int64, error) {
	if len(suggestionIDs) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Where("suggestion_id IN ?", suggestionIDs).
		Delete(&model.SpeakerToken{})
	return result.RowsAffected, result.Error
}
