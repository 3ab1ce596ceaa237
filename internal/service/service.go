package service

import (
	"go.uber.org/zap"

	"github.com/inaciog/seminars-app-sub000/config"
	"github.com/inaciog/seminars-app-sub000/internal/repository"
	"github.com/inaciog/seminars-app-sub000/pkg/jwt"
	"github.com/inaciog/seminars-app-sub000/pkg/redis"
	"github.com/inaciog/seminars-app-sub000/pkg/storage"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	User       UserService
	Speaker    SpeakerService
	Room       RoomService
	Plan       PlanService
	Slot       SlotService
	Suggestion SuggestionService
	Seminar    SeminarService
	Token      TokenService
	Upload     UploadService
	Activity   ActivityService
	Deletion   DeletionService
	Planning   PlanningService
	Export     ExportService
	Calendar   CalendarService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	store storage.Store,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:       NewUserService(repo, logger),
		Speaker:    NewSpeakerService(repo, logger),
		Room:       NewRoomService(repo, logger),
		Plan:       NewPlanService(repo, logger),
		Slot:       NewSlotService(repo, logger),
		Suggestion: NewSuggestionService(repo, logger),
		Seminar:    NewSeminarService(repo, logger),
		Token:      NewTokenService(cfg, repo, logger),
		Upload:     NewUploadService(repo, store, logger),
		Activity:   NewActivityService(repo, logger),
		Deletion:   NewDeletionService(repo, store, logger),
		Planning:   NewPlanningService(repo, logger),
		Export:     NewExportService(repo, logger),
		Calendar:   NewCalendarService(repo, logger),
	}
}
