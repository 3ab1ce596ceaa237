package handler

import "github.com/inaciog/seminars-app-sub000/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	Speaker    *SpeakerHandler
	Room       *RoomHandler
	Plan       *PlanHandler
	Slot       *SlotHandler
	Suggestion *SuggestionHandler
	Seminar    *SeminarHandler
	Assignment *AssignmentHandler
	Public     *PublicHandler
	Upload     *UploadHandler
	Activity   *ActivityHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth, svc.User),
		Speaker:    NewSpeakerHandler(svc.Speaker, svc.Deletion),
		Room:       NewRoomHandler(svc.Room, svc.Deletion),
		Plan:       NewPlanHandler(svc.Plan, svc.Deletion),
		Slot:       NewSlotHandler(svc.Slot, svc.Deletion),
		Suggestion: NewSuggestionHandler(svc.Suggestion, svc.Token, svc.Deletion),
		Seminar:    NewSeminarHandler(svc.Seminar, svc.Deletion),
		Assignment: NewAssignmentHandler(svc.Planning),
		Public:     NewPublicHandler(svc.Token),
		Upload:     NewUploadHandler(svc.Upload),
		Activity:   NewActivityHandler(svc.Activity),
		Export:     NewExportHandler(svc.Export, svc.Calendar),
	}
}
