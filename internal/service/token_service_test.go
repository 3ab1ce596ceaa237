package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/inaciog/seminars-app-sub000/config"
	"github.com/inaciog/seminars-app-sub000/internal/dto"
	"github.com/inaciog/seminars-app-sub000/internal/model"
)

func setupTestTokenService() (TokenService, *testRepos) {
	repos := newTestRepos()
	cfg := &config.Config{}
	cfg.Server.BaseURL = "https://seminars.example.edu"
	cfg.Token.TTL = 336 * time.Hour
	svc := NewTokenService(cfg, repos.toRepository(), zap.NewNop())
	return svc, repos
}

func TestIssueToken(t *testing.T) {
	svc, repos := setupTestTokenService()
	ctx := context.Background()

	repos.suggestion.suggestions["sug-1"] = &model.SpeakerSuggestion{
		SuggestionID: "sug-1", SpeakerName: "Dr. Chen", Status: model.SuggestionStatusContacted,
	}

	result, err := svc.Issue(ctx, &dto.IssueTokenRequest{
		SuggestionID: "sug-1",
		Type:         model.TokenTypeAvailability,
	}, "admin-1")
	if err != nil {
		t.Fatalf("签发令牌失败: %v", err)
	}

	if len(result.Token) != 64 {
		t.Errorf("令牌应为 64 位十六进制，得到长度 %d", len(result.Token))
	}
	if !strings.HasPrefix(result.FormURL, "https://seminars.example.edu/public/tokens/") {
		t.Errorf("表单链接格式不对: %s", result.FormURL)
	}
	if !strings.HasSuffix(result.FormURL, result.Token) {
		t.Error("表单链接应以令牌结尾")
	}
	if len(repos.token.tokens) != 1 {
		t.Errorf("应落库 1 条令牌，得到 %d", len(repos.token.tokens))
	}
}

func TestIssueTokenSuggestionNotFound(t *testing.T) {
	svc, _ := setupTestTokenService()

	_, err := svc.Issue(context.Background(), &dto.IssueTokenRequest{
		SuggestionID: "missing",
		Type:         model.TokenTypeAvailability,
	}, "admin-1")
	if !errors.Is(err, ErrSuggestionNotFound) {
		t.Fatalf("期望 ErrSuggestionNotFound，得到 %v", err)
	}
}

func TestValidateToken(t *testing.T) {
	svc, repos := setupTestTokenService()
	ctx := context.Background()

	repos.suggestion.suggestions["sug-1"] = &model.SpeakerSuggestion{
		SuggestionID: "sug-1", SpeakerName: "Dr. Chen", SuggestedTopic: "主题",
		Status: model.SuggestionStatusContacted,
	}
	repos.token.Create(ctx, &model.SpeakerToken{
		SuggestionID: "sug-1", Token: "valid-token", Type: model.TokenTypeAvailability,
		ExpiresAt: time.Now().Add(time.Hour),
	})

	info, err := svc.Validate(ctx, "valid-token")
	if err != nil {
		t.Fatalf("校验令牌失败: %v", err)
	}
	if info.SpeakerName != "Dr. Chen" || info.Type != model.TokenTypeAvailability {
		t.Errorf("表单上下文不对: %+v", info)
	}

	if _, err := svc.Validate(ctx, "unknown"); !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("未知令牌应返回 ErrTokenNotFound，得到 %v", err)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	svc, repos := setupTestTokenService()
	ctx := context.Background()

	repos.suggestion.suggestions["sug-1"] = &model.SpeakerSuggestion{SuggestionID: "sug-1", SpeakerName: "X"}
	repos.token.Create(ctx, &model.SpeakerToken{
		SuggestionID: "sug-1", Token: "stale", Type: model.TokenTypeAvailability,
		ExpiresAt: time.Now().Add(-time.Minute),
	})

	if _, err := svc.Validate(ctx, "stale"); !errors.Is(err, ErrTokenHasExpired) {
		t.Fatalf("期望 ErrTokenHasExpired，得到 %v", err)
	}
}

func TestValidateOrphanToken(t *testing.T) {
	svc, repos := setupTestTokenService()
	ctx := context.Background()

	// 推荐已删除，令牌残留：按无效处理
	repos.token.Create(ctx, &model.SpeakerToken{
		SuggestionID: "sug-gone", Token: "orphan", Type: model.TokenTypeAvailability,
		ExpiresAt: time.Now().Add(time.Hour),
	})

	if _, err := svc.Validate(ctx, "orphan"); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("残留令牌应返回 ErrTokenNotFound，得到 %v", err)
	}
}

func TestSubmitAvailabilityAdvancesWorkflow(t *testing.T) {
	svc, repos := setupTestTokenService()
	ctx := context.Background()

	repos.suggestion.suggestions["sug-1"] = &model.SpeakerSuggestion{
		SuggestionID: "sug-1", SpeakerName: "Dr. Chen", Status: model.SuggestionStatusContacted,
	}
	repos.token.Create(ctx, &model.SpeakerToken{
		SuggestionID: "sug-1", Token: "avail-token", Type: model.TokenTypeAvailability,
		ExpiresAt: time.Now().Add(time.Hour),
	})

	err := svc.SubmitAvailability(ctx, "avail-token", &dto.SubmitAvailabilityRequest{
		Ranges: []dto.AvailabilityRangeRequest{
			{StartDate: "2026-03-02", EndDate: "2026-03-06", Preference: model.AvailabilityPreferred},
			{StartDate: "2026-03-16", EndDate: "2026-03-20", Preference: model.AvailabilityPossible},
		},
	})
	if err != nil {
		t.Fatalf("提交可用时间失败: %v", err)
	}

	if len(repos.availability.items) != 2 {
		t.Errorf("应写入 2 条可用时间，得到 %d", len(repos.availability.items))
	}
	if got := repos.suggestion.suggestions["sug-1"].Status; got != model.SuggestionStatusAvailabilityReceived {
		t.Errorf("提交后推荐应推进到 availability_received，得到 %q", got)
	}
}

func TestSubmitAvailabilityRejectsInvalidRange(t *testing.T) {
	svc, repos := setupTestTokenService()
	ctx := context.Background()

	repos.suggestion.suggestions["sug-1"] = &model.SpeakerSuggestion{SuggestionID: "sug-1", SpeakerName: "X", Status: model.SuggestionStatusContacted}
	repos.token.Create(ctx, &model.SpeakerToken{
		SuggestionID: "sug-1", Token: "avail-token", Type: model.TokenTypeAvailability,
		ExpiresAt: time.Now().Add(time.Hour),
	})

	err := svc.SubmitAvailability(ctx, "avail-token", &dto.SubmitAvailabilityRequest{
		Ranges: []dto.AvailabilityRangeRequest{
			{StartDate: "2026-03-06", EndDate: "2026-03-02", Preference: model.AvailabilityPossible},
		},
	})
	if !errors.Is(err, ErrAvailabilityDates) {
		t.Fatalf("结束早于开始应返回 ErrAvailabilityDates，得到 %v", err)
	}
	if len(repos.availability.items) != 0 {
		t.Error("非法区间不应写入任何记录")
	}
}

func TestSubmitAvailabilityTypeMismatch(t *testing.T) {
	svc, repos := setupTestTokenService()
	ctx := context.Background()

	repos.suggestion.suggestions["sug-1"] = &model.SpeakerSuggestion{SuggestionID: "sug-1", SpeakerName: "X"}
	repos.token.Create(ctx, &model.SpeakerToken{
		SuggestionID: "sug-1", Token: "details-token", Type: model.TokenTypeDetails,
		ExpiresAt: time.Now().Add(time.Hour),
	})

	err := svc.SubmitAvailability(ctx, "details-token", &dto.SubmitAvailabilityRequest{
		Ranges: []dto.AvailabilityRangeRequest{
			{StartDate: "2026-03-02", EndDate: "2026-03-06", Preference: model.AvailabilityPossible},
		},
	})
	if !errors.Is(err, ErrTokenTypeMismatch) {
		t.Fatalf("期望 ErrTokenTypeMismatch，得到 %v", err)
	}
}

func TestSubmitDetailsUpserts(t *testing.T) {
	svc, repos := setupTestTokenService()
	ctx := context.Background()

	repos.suggestion.suggestions["sug-1"] = &model.SpeakerSuggestion{SuggestionID: "sug-1", SpeakerName: "X"}
	repos.seminar.seminars["sem-1"] = &model.Seminar{SeminarID: "sem-1", Title: "讲座"}
	repos.token.Create(ctx, &model.SpeakerToken{
		SuggestionID: "sug-1", SeminarID: strPtr("sem-1"), Token: "details-token",
		Type: model.TokenTypeDetails, ExpiresAt: time.Now().Add(time.Hour),
	})

	hotel := "三月二日入住"
	if err := svc.SubmitDetails(ctx, "details-token", &dto.UpsertSeminarDetailsRequest{HotelInfo: &hotel}); err != nil {
		t.Fatalf("首次提交详情失败: %v", err)
	}
	if got := repos.details.details["sem-1"]; got == nil || got.HotelInfo != hotel {
		t.Fatalf("详情应已创建: %+v", got)
	}

	// 二次提交走更新，未提交的字段保留
	travel := "高铁 G27"
	if err := svc.SubmitDetails(ctx, "details-token", &dto.UpsertSeminarDetailsRequest{TravelInfo: &travel}); err != nil {
		t.Fatalf("二次提交详情失败: %v", err)
	}
	got := repos.details.details["sem-1"]
	if got.TravelInfo != travel || got.HotelInfo != hotel {
		t.Errorf("详情应增量更新: %+v", got)
	}
}
