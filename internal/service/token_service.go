package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/inaciog/seminars-app-sub000/config"
	"github.com/inaciog/seminars-app-sub000/internal/dto"
	"github.com/inaciog/seminars-app-sub000/internal/model"
	"github.com/inaciog/seminars-app-sub000/internal/repository"
)

// ── 讲者自助令牌模块业务错误 ──

var (
	ErrTokenNotFound     = errors.New("令牌不存在")
	ErrTokenHasExpired   = errors.New("令牌已过期")
	ErrTokenTypeMismatch = errors.New("令牌类型与表单不匹配")
	ErrAvailabilityDates = errors.New("可用时间区间无效")
)

// TokenService 讲者自助令牌业务接口
// 令牌是作用域为单个推荐的能力凭证，凭 token 字符串访问公开表单，无需登录
type TokenService interface {
	Issue(ctx context.Context, req *dto.IssueTokenRequest, callerID string) (*dto.TokenIssueResponse, error)

	// Validate 供公开表单加载时校验令牌并返回表单上下文
	Validate(ctx context.Context, token string) (*dto.TokenInfoResponse, error)

	// SubmitAvailability 讲者通过 availability 令牌提交可用时间，推荐推进到 availability_received
	SubmitAvailability(ctx context.Context, token string, req *dto.SubmitAvailabilityRequest) error

	// SubmitDetails 讲者通过 details 令牌提交行程/报销信息
	SubmitDetails(ctx context.Context, token string, req *dto.UpsertSeminarDetailsRequest) error
}

type tokenService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTokenService 创建 TokenService 实例
func NewTokenService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) TokenService {
	return &tokenService{cfg: cfg, repo: repo, logger: logger}
}

func (s *tokenService) Issue(ctx context.Context, req *dto.IssueTokenRequest, callerID string) (*dto.TokenIssueResponse, error) {
	suggestion, err := s.repo.Suggestion.GetByID(ctx, req.SuggestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSuggestionNotFound
		}
		s.logger.Error("查询推荐失败", zap.Error(err))
		return nil, err
	}

	if req.SeminarID != nil {
		if _, err := s.repo.Seminar.GetByID(ctx, *req.SeminarID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSeminarNotFound
			}
			s.logger.Error("查询讲座失败", zap.Error(err))
			return nil, err
		}
	}

	token := &model.SpeakerToken{
		SuggestionID: suggestion.SuggestionID,
		SeminarID:    req.SeminarID,
		Token:        newOpaqueToken(),
		Type:         req.Type,
		ExpiresAt:    time.Now().Add(s.cfg.Token.TTL),
	}
	token.CreatedBy = &callerID
	token.UpdatedBy = &callerID

	if err := s.repo.Token.Create(ctx, token); err != nil {
		s.logger.Error("创建令牌失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenIssueResponse{
		Token:     token.Token,
		FormURL:   fmt.Sprintf("%s/public/tokens/%s", strings.TrimRight(s.cfg.Server.BaseURL, "/"), token.Token),
		Type:      token.Type,
		ExpiresAt: token.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z"),
	}, nil
}

func (s *tokenService) Validate(ctx context.Context, token string) (*dto.TokenInfoResponse, error) {
	t, suggestion, err := s.resolve(ctx, token, "")
	if err != nil {
		return nil, err
	}

	return &dto.TokenInfoResponse{
		Type:           t.Type,
		SpeakerName:    suggestion.SpeakerName,
		SuggestedTopic: suggestion.SuggestedTopic,
		ExpiresAt:      t.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z"),
	}, nil
}

func (s *tokenService) SubmitAvailability(ctx context.Context, token string, req *dto.SubmitAvailabilityRequest) error {
	t, suggestion, err := s.resolve(ctx, token, model.TokenTypeAvailability)
	if err != nil {
		return err
	}

	ranges := make([]model.SpeakerAvailability, 0, len(req.Ranges))
	for _, r := range req.Ranges {
		start, err := time.Parse("2006-01-02", r.StartDate)
		if err != nil {
			return ErrAvailabilityDates
		}
		end, err := time.Parse("2006-01-02", r.EndDate)
		if err != nil {
			return ErrAvailabilityDates
		}
		if end.Before(start) {
			return ErrAvailabilityDates
		}
		ranges = append(ranges, model.SpeakerAvailability{
			SuggestionID: t.SuggestionID,
			StartDate:    start,
			EndDate:      end,
			Preference:   r.Preference,
		})
	}

	for i := range ranges {
		if err := s.repo.Availability.Create(ctx, &ranges[i]); err != nil {
			s.logger.Error("写入可用时间失败", zap.String("suggestion_id", t.SuggestionID), zap.Error(err))
			return err
		}
	}

	// 收到可用时间后自动推进工作流
	if model.CanTransitionSuggestion(suggestion.Status, model.SuggestionStatusAvailabilityReceived) {
		suggestion.Status = model.SuggestionStatusAvailabilityReceived
		if err := s.repo.Suggestion.Update(ctx, suggestion); err != nil {
			s.logger.Error("更新推荐状态失败", zap.String("id", suggestion.SuggestionID), zap.Error(err))
			return err
		}
	}

	return nil
}

func (s *tokenService) SubmitDetails(ctx context.Context, token string, req *dto.UpsertSeminarDetailsRequest) error {
	t, _, err := s.resolve(ctx, token, model.TokenTypeDetails)
	if err != nil {
		return err
	}
	if t.SeminarID == nil {
		return ErrSeminarNotFound
	}
	seminarID := *t.SeminarID

	details, err := s.repo.Details.GetBySeminar(ctx, seminarID)
	created := false
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询讲座详情失败", zap.String("seminar_id", seminarID), zap.Error(err))
			return err
		}
		details = &model.SeminarDetails{SeminarID: seminarID}
		created = true
	}

	if req.TravelInfo != nil {
		details.TravelInfo = *req.TravelInfo
	}
	if req.HotelInfo != nil {
		details.HotelInfo = *req.HotelInfo
	}
	if req.PaymentInfo != nil {
		details.PaymentInfo = *req.PaymentInfo
	}
	if req.DocumentStatus != nil {
		details.DocumentStatus = *req.DocumentStatus
	}
	if req.DietaryNotes != nil {
		details.DietaryNotes = *req.DietaryNotes
	}

	if created {
		err = s.repo.Details.Create(ctx, details)
	} else {
		err = s.repo.Details.Update(ctx, details)
	}
	if err != nil {
		s.logger.Error("保存讲座详情失败", zap.String("seminar_id", seminarID), zap.Error(err))
		return err
	}

	return nil
}

// ── 内部辅助方法 ──

// resolve 校验令牌存在、未过期，可选校验类型，并返回其作用域内的推荐
func (s *tokenService) resolve(ctx context.Context, token, wantType string) (*model.SpeakerToken, *model.SpeakerSuggestion, error) {
	t, err := s.repo.Token.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrTokenNotFound
		}
		s.logger.Error("查询令牌失败", zap.Error(err))
		return nil, nil, err
	}

	if t.Expired(time.Now()) {
		return nil, nil, ErrTokenHasExpired
	}
	if wantType != "" && t.Type != wantType {
		return nil, nil, ErrTokenTypeMismatch
	}

	suggestion, err := s.repo.Suggestion.GetByID(ctx, t.SuggestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 令牌不得比推荐存活更久；残留令牌按无效处理
			return nil, nil, ErrTokenNotFound
		}
		s.logger.Error("查询推荐失败", zap.Error(err))
		return nil, nil, err
	}

	return t, suggestion, nil
}

// newOpaqueToken 生成 64 位十六进制不透明令牌
func newOpaqueToken() string {
	a := strings.ReplaceAll(uuid.New().String(), "-", "")
	b := strings.ReplaceAll(uuid.New().String(), "-", "")
	return a + b
}
