package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/inaciog/seminars-app-sub000/internal/dto"
	"github.com/inaciog/seminars-app-sub000/internal/model"
)

func setupTestPlanningService() (PlanningService, *testRepos) {
	repos := newTestRepos()
	svc := NewPlanningService(repos.toRepository(), zap.NewNop())
	return svc, repos
}

func seedAssignableSlot(repos *testRepos, slotID string) *model.SeminarSlot {
	slot := &model.SeminarSlot{
		SlotID:         slotID,
		SemesterPlanID: "plan-1",
		Date:           time.Date(2026, 3, 19, 0, 0, 0, 0, time.UTC),
		StartTime:      "14:00",
		EndTime:        "15:30",
		RoomID:         strPtr("room-1"),
		Status:         model.SlotStatusAvailable,
	}
	repos.slot.slots[slotID] = slot
	return slot
}

func TestAssignCreatesSeminarAndAlignsPointers(t *testing.T) {
	svc, repos := setupTestPlanningService()
	ctx := context.Background()

	seedAssignableSlot(repos, "slot-1")
	repos.suggestion.suggestions["sug-1"] = &model.SpeakerSuggestion{
		SuggestionID: "sug-1", SpeakerName: "Dr. Chen", SpeakerEmail: "chen@example.edu",
		SuggestedTopic: "随机矩阵理论", Status: model.SuggestionStatusAvailabilityReceived,
	}

	result, err := svc.Assign(ctx, &dto.AssignRequest{SuggestionID: "sug-1", SlotID: "slot-1"}, "admin-1")
	if err != nil {
		t.Fatalf("分配失败: %v", err)
	}
	if !result.Created {
		t.Error("首次分配应新建讲座")
	}

	seminar := repos.seminar.seminars[result.SeminarID]
	if seminar == nil {
		t.Fatal("讲座应已创建")
	}
	if seminar.Title != "随机矩阵理论" {
		t.Errorf("讲座标题应取自推荐主题，得到 %q", seminar.Title)
	}
	if seminar.Status != model.SeminarStatusConfirmed {
		t.Errorf("分配产生的讲座应为 confirmed，得到 %q", seminar.Status)
	}
	if seminar.SlotID == nil || *seminar.SlotID != "slot-1" {
		t.Error("讲座应指回时段")
	}
	if seminar.RoomID == nil || *seminar.RoomID != "room-1" {
		t.Error("讲座应继承时段的场地")
	}

	// 三角指针对称
	slot := repos.slot.slots["slot-1"]
	if slot.AssignedSeminarID == nil || *slot.AssignedSeminarID != seminar.SeminarID {
		t.Error("时段应指向讲座")
	}
	if slot.AssignedSuggestionID == nil || *slot.AssignedSuggestionID != "sug-1" {
		t.Error("时段应指向推荐")
	}
	if slot.Status != model.SlotStatusConfirmed {
		t.Errorf("时段应为 confirmed，得到 %q", slot.Status)
	}

	suggestion := repos.suggestion.suggestions["sug-1"]
	if suggestion.Status != model.SuggestionStatusConfirmed {
		t.Errorf("推荐应推进到 confirmed，得到 %q", suggestion.Status)
	}
}

func TestAssignResolvesSpeakerByEmail(t *testing.T) {
	svc, repos := setupTestPlanningService()
	ctx := context.Background()

	seedAssignableSlot(repos, "slot-1")
	repos.speaker.speakers["spk-9"] = &model.Speaker{SpeakerID: "spk-9", Name: "Dr. Chen", Email: "chen@example.edu"}
	repos.suggestion.suggestions["sug-1"] = &model.SpeakerSuggestion{
		SuggestionID: "sug-1", SpeakerName: "Dr. Chen", SpeakerEmail: "chen@example.edu",
		Status: model.SuggestionStatusContacted,
	}

	result, err := svc.Assign(ctx, &dto.AssignRequest{SuggestionID: "sug-1", SlotID: "slot-1"}, "admin-1")
	if err != nil {
		t.Fatalf("分配失败: %v", err)
	}

	seminar := repos.seminar.seminars[result.SeminarID]
	if seminar.SpeakerID == nil || *seminar.SpeakerID != "spk-9" {
		t.Error("应按邮箱复用已有讲者，而非新建")
	}
	if len(repos.speaker.speakers) != 1 {
		t.Errorf("不应新建讲者，当前 %d 个", len(repos.speaker.speakers))
	}
}

func TestAssignCreatesSpeakerFromSnapshot(t *testing.T) {
	svc, repos := setupTestPlanningService()
	ctx := context.Background()

	seedAssignableSlot(repos, "slot-1")
	// 推荐没有主题，讲座标题回退到占位符
	repos.suggestion.suggestions["sug-1"] = &model.SpeakerSuggestion{
		SuggestionID: "sug-1", SpeakerName: "Dr. Novak", SpeakerEmail: "novak@example.edu",
		SpeakerAffiliation: "某研究所", Status: model.SuggestionStatusPending,
	}

	result, err := svc.Assign(ctx, &dto.AssignRequest{SuggestionID: "sug-1", SlotID: "slot-1"}, "admin-1")
	if err != nil {
		t.Fatalf("分配失败: %v", err)
	}

	if len(repos.speaker.speakers) != 1 {
		t.Fatalf("应从快照新建讲者，当前 %d 个", len(repos.speaker.speakers))
	}
	for _, sp := range repos.speaker.speakers {
		if sp.Name != "Dr. Novak" || sp.Email != "novak@example.edu" {
			t.Errorf("新建讲者应复制快照字段，得到 %+v", sp)
		}
	}

	seminar := repos.seminar.seminars[result.SeminarID]
	if seminar.Title != "Dr. Novak（主题待定）" {
		t.Errorf("无主题时标题应为占位符，得到 %q", seminar.Title)
	}
}

func TestAssignReassignSameSuggestionIsIdempotent(t *testing.T) {
	svc, repos := setupTestPlanningService()
	ctx := context.Background()

	seedAssignableSlot(repos, "slot-1")
	repos.suggestion.suggestions["sug-1"] = &model.SpeakerSuggestion{
		SuggestionID: "sug-1", SpeakerName: "Dr. Chen", SuggestedTopic: "拓扑数据分析",
		Status: model.SuggestionStatusAvailabilityReceived,
	}

	first, err := svc.Assign(ctx, &dto.AssignRequest{SuggestionID: "sug-1", SlotID: "slot-1"}, "admin-1")
	if err != nil {
		t.Fatalf("首次分配失败: %v", err)
	}

	repos.suggestion.suggestions["sug-1"].SuggestedTopic = "拓扑数据分析（修订）"
	second, err := svc.Assign(ctx, &dto.AssignRequest{SuggestionID: "sug-1", SlotID: "slot-1"}, "admin-1")
	if err != nil {
		t.Fatalf("重复分配同一推荐应幂等: %v", err)
	}
	if second.Created {
		t.Error("重复分配应更新既有讲座，而非新建")
	}
	if second.SeminarID != first.SeminarID {
		t.Error("重复分配不应产生新讲座行")
	}
	if len(repos.seminar.seminars) != 1 {
		t.Errorf("讲座行数应为 1，得到 %d", len(repos.seminar.seminars))
	}
	if got := repos.seminar.seminars[first.SeminarID].Title; got != "拓扑数据分析（修订）" {
		t.Errorf("重复分配应同步最新主题，得到 %q", got)
	}
}

func TestAssignOccupiedSlotConflicts(t *testing.T) {
	svc, repos := setupTestPlanningService()
	ctx := context.Background()

	slot := seedAssignableSlot(repos, "slot-1")
	repos.seminar.seminars["sem-1"] = &model.Seminar{SeminarID: "sem-1", Title: "已排定的讲座", SlotID: strPtr("slot-1")}
	slot.Status = model.SlotStatusConfirmed
	slot.AssignedSeminarID = strPtr("sem-1")
	slot.AssignedSuggestionID = strPtr("sug-other")
	repos.suggestion.suggestions["sug-other"] = &model.SpeakerSuggestion{SuggestionID: "sug-other", SpeakerName: "占用者", Status: model.SuggestionStatusConfirmed}
	repos.suggestion.suggestions["sug-1"] = &model.SpeakerSuggestion{SuggestionID: "sug-1", SpeakerName: "Dr. Chen", Status: model.SuggestionStatusPending}

	_, err := svc.Assign(ctx, &dto.AssignRequest{SuggestionID: "sug-1", SlotID: "slot-1"}, "admin-1")
	if !errors.Is(err, ErrSlotOccupied) {
		t.Fatalf("期望 ErrSlotOccupied，得到 %v", err)
	}
	// 冲突消息携带占用讲座的标题
	if err.Error() == ErrSlotOccupied.Error() {
		t.Error("冲突错误应包含占用讲座的标题")
	}
}

func TestAssignSlotHeldByManualSeminarConflicts(t *testing.T) {
	svc, repos := setupTestPlanningService()
	ctx := context.Background()

	// 手工加场的讲座占据时段：没有推荐指针，也不允许被覆盖
	slot := seedAssignableSlot(repos, "slot-1")
	repos.seminar.seminars["sem-1"] = &model.Seminar{SeminarID: "sem-1", Title: "院庆特邀报告", SlotID: strPtr("slot-1")}
	slot.Status = model.SlotStatusConfirmed
	slot.AssignedSeminarID = strPtr("sem-1")
	repos.suggestion.suggestions["sug-1"] = &model.SpeakerSuggestion{SuggestionID: "sug-1", SpeakerName: "Dr. Chen", Status: model.SuggestionStatusPending}

	_, err := svc.Assign(ctx, &dto.AssignRequest{SuggestionID: "sug-1", SlotID: "slot-1"}, "admin-1")
	if !errors.Is(err, ErrSlotOccupied) {
		t.Fatalf("期望 ErrSlotOccupied，得到 %v", err)
	}
	// 占用讲座不得被篡改
	if got := repos.seminar.seminars["sem-1"].Title; got != "院庆特邀报告" {
		t.Errorf("占用讲座的标题不应被覆盖，得到 %q", got)
	}
}

func TestAssignDanglingSeminarPointerTreatedAsFree(t *testing.T) {
	svc, repos := setupTestPlanningService()
	ctx := context.Background()

	// 时段携带指向已删除讲座的残留指针
	slot := seedAssignableSlot(repos, "slot-1")
	slot.AssignedSeminarID = strPtr("sem-ghost")
	slot.AssignedSuggestionID = strPtr("sug-ghost")
	repos.suggestion.suggestions["sug-1"] = &model.SpeakerSuggestion{
		SuggestionID: "sug-1", SpeakerName: "Dr. Chen", SuggestedTopic: "主题",
		Status: model.SuggestionStatusPending,
	}

	result, err := svc.Assign(ctx, &dto.AssignRequest{SuggestionID: "sug-1", SlotID: "slot-1"}, "admin-1")
	if err != nil {
		t.Fatalf("残留指针应按未分配处理: %v", err)
	}
	if !result.Created {
		t.Error("残留指针场景应新建讲座")
	}
	if got := repos.slot.slots["slot-1"].AssignedSeminarID; got == nil || *got != result.SeminarID {
		t.Error("时段指针应被覆盖为新讲座")
	}
}

func TestAssignNotFound(t *testing.T) {
	svc, repos := setupTestPlanningService()
	ctx := context.Background()

	seedAssignableSlot(repos, "slot-1")
	repos.suggestion.suggestions["sug-1"] = &model.SpeakerSuggestion{SuggestionID: "sug-1", SpeakerName: "X"}

	if _, err := svc.Assign(ctx, &dto.AssignRequest{SuggestionID: "missing", SlotID: "slot-1"}, "a"); !errors.Is(err, ErrSuggestionNotFound) {
		t.Errorf("期望 ErrSuggestionNotFound，得到 %v", err)
	}
	if _, err := svc.Assign(ctx, &dto.AssignRequest{SuggestionID: "sug-1", SlotID: "missing"}, "a"); !errors.Is(err, ErrSlotNotFound) {
		t.Errorf("期望 ErrSlotNotFound，得到 %v", err)
	}
}

func TestUnassignReleasesTriangle(t *testing.T) {
	svc, repos := setupTestPlanningService()
	ctx := context.Background()

	slot := seedAssignableSlot(repos, "slot-1")
	slot.Status = model.SlotStatusConfirmed
	slot.AssignedSeminarID = strPtr("sem-1")
	slot.AssignedSuggestionID = strPtr("sug-1")
	repos.seminar.seminars["sem-1"] = &model.Seminar{SeminarID: "sem-1", Title: "讲座", SlotID: strPtr("slot-1")}
	repos.suggestion.suggestions["sug-1"] = &model.SpeakerSuggestion{
		SuggestionID: "sug-1", SpeakerName: "Dr. Chen", Status: model.SuggestionStatusConfirmed,
	}

	if _, err := svc.Unassign(ctx, "slot-1", "admin-1"); err != nil {
		t.Fatalf("取消分配失败: %v", err)
	}

	got := repos.slot.slots["slot-1"]
	if got.AssignedSeminarID != nil || got.AssignedSuggestionID != nil {
		t.Error("时段指针应全部解开")
	}
	if got.Status != model.SlotStatusAvailable {
		t.Errorf("时段应回到 available，得到 %q", got.Status)
	}

	// 讲座保留，仅断开指针
	seminar, ok := repos.seminar.seminars["sem-1"]
	if !ok {
		t.Fatal("取消分配不应删除讲座")
	}
	if seminar.SlotID != nil {
		t.Error("讲座的时段指针应已断开")
	}

	// 推荐退回可再次排期的状态
	if got := repos.suggestion.suggestions["sug-1"].Status; got != model.SuggestionStatusAvailabilityReceived {
		t.Errorf("推荐应退回 availability_received，得到 %q", got)
	}
}

func TestUnassignNotAssigned(t *testing.T) {
	svc, repos := setupTestPlanningService()

	seedAssignableSlot(repos, "slot-1")
	if _, err := svc.Unassign(context.Background(), "slot-1", "admin-1"); !errors.Is(err, ErrSlotNotAssigned) {
		t.Fatalf("期望 ErrSlotNotAssigned，得到 %v", err)
	}
}

func TestUnassignToleratesDanglingSuggestion(t *testing.T) {
	svc, repos := setupTestPlanningService()
	ctx := context.Background()

	slot := seedAssignableSlot(repos, "slot-1")
	slot.Status = model.SlotStatusConfirmed
	slot.AssignedSuggestionID = strPtr("sug-ghost")

	if _, err := svc.Unassign(ctx, "slot-1", "admin-1"); err != nil {
		t.Fatalf("残留的推荐指针应被忽略: %v", err)
	}
	if repos.slot.slots["slot-1"].Status != model.SlotStatusAvailable {
		t.Error("时段应回到 available")
	}
}
