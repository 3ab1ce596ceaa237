package service

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"gorm.io/gorm"

	"github.com/inaciog/seminars-app-sub000/internal/model"
	"github.com/inaciog/seminars-app-sub000/internal/repository"
	"github.com/inaciog/seminars-app-sub000/pkg/storage"
)

// ── 测试夹具 ──

// testRepos 聚合所有 mock repo 便于 seed 数据
type testRepos struct {
	speaker      *mockSpeakerRepo
	room         *mockRoomRepo
	plan         *mockPlanRepo
	slot         *mockSlotRepo
	suggestion   *mockSuggestionRepo
	availability *mockAvailabilityRepo
	workflow     *mockWorkflowRepo
	token        *mockTokenRepo
	seminar      *mockSeminarRepo
	details      *mockDetailsRepo
	upload       *mockUploadRepo
	activity     *mockActivityRepo
	user         *mockUserRepo
}

func newTestRepos() *testRepos {
	return &testRepos{
		speaker:      newMockSpeakerRepo(),
		room:         newMockRoomRepo(),
		plan:         newMockPlanRepo(),
		slot:         newMockSlotRepo(),
		suggestion:   newMockSuggestionRepo(),
		availability: newMockAvailabilityRepo(),
		workflow:     newMockWorkflowRepo(),
		token:        newMockTokenRepo(),
		seminar:      newMockSeminarRepo(),
		details:      newMockDetailsRepo(),
		upload:       newMockUploadRepo(),
		activity:     newMockActivityRepo(),
		user:         newMockUserRepo(),
	}
}

func (r *testRepos) toRepository() *repository.Repository {
	return &repository.Repository{
		Speaker:       r.speaker,
		Room:          r.room,
		SemesterPlan:  r.plan,
		SeminarSlot:   r.slot,
		Suggestion:    r.suggestion,
		Availability:  r.availability,
		Workflow:      r.workflow,
		Token:         r.token,
		Seminar:       r.seminar,
		Details:       r.details,
		UploadedFile:  r.upload,
		ActivityEvent: r.activity,
		User:          r.user,
	}
}

func strPtr(s string) *string { return &s }

// ── Mock SpeakerRepository ──

type mockSpeakerRepo struct {
	speakers map[string]*model.Speaker
	seq      int
}

func newMockSpeakerRepo() *mockSpeakerRepo {
	return &mockSpeakerRepo{speakers: make(map[string]*model.Speaker)}
}

func (m *mockSpeakerRepo) Create(_ context.Context, speaker *model.Speaker) error {
	if speaker.SpeakerID == "" {
		m.seq++
		speaker.SpeakerID = fmt.Sprintf("spk-%d", m.seq)
	}
	m.speakers[speaker.SpeakerID] = speaker
	return nil
}

func (m *mockSpeakerRepo) GetByID(_ context.Context, id string) (*model.Speaker, error) {
	if s, ok := m.speakers[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSpeakerRepo) GetByEmail(_ context.Context, email string) (*model.Speaker, error) {
	for _, s := range m.speakers {
		if s.Email == email {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSpeakerRepo) List(_ context.Context, offset, limit int) ([]model.Speaker, int64, error) {
	var result []model.Speaker
	for _, s := range m.speakers {
		result = append(result, *s)
	}
	return result, int64(len(result)), nil
}

func (m *mockSpeakerRepo) Update(_ context.Context, speaker *model.Speaker) error {
	m.speakers[speaker.SpeakerID] = speaker
	return nil
}

func (m *mockSpeakerRepo) Delete(_ context.Context, id string) error {
	delete(m.speakers, id)
	return nil
}

// ── Mock RoomRepository ──

type mockRoomRepo struct {
	rooms map[string]*model.Room
}

func newMockRoomRepo() *mockRoomRepo {
	return &mockRoomRepo{rooms: make(map[string]*model.Room)}
}

func (m *mockRoomRepo) Create(_ context.Context, room *model.Room) error {
	if room.RoomID == "" {
		room.RoomID = "room-" + room.Name
	}
	m.rooms[room.RoomID] = room
	return nil
}

func (m *mockRoomRepo) GetByID(_ context.Context, id string) (*model.Room, error) {
	if r, ok := m.rooms[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoomRepo) List(_ context.Context) ([]model.Room, error) {
	var result []model.Room
	for _, r := range m.rooms {
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockRoomRepo) Update(_ context.Context, room *model.Room) error {
	m.rooms[room.RoomID] = room
	return nil
}

func (m *mockRoomRepo) Delete(_ context.Context, id string) error {
	delete(m.rooms, id)
	return nil
}

// ── Mock SemesterPlanRepository ──

type mockPlanRepo struct {
	plans map[string]*model.SemesterPlan
}

func newMockPlanRepo() *mockPlanRepo {
	return &mockPlanRepo{plans: make(map[string]*model.SemesterPlan)}
}

func (m *mockPlanRepo) Create(_ context.Context, plan *model.SemesterPlan) error {
	if plan.SemesterPlanID == "" {
		plan.SemesterPlanID = "plan-" + plan.Name
	}
	m.plans[plan.SemesterPlanID] = plan
	return nil
}

func (m *mockPlanRepo) GetByID(_ context.Context, id string) (*model.SemesterPlan, error) {
	if p, ok := m.plans[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPlanRepo) List(_ context.Context) ([]model.SemesterPlan, error) {
	var result []model.SemesterPlan
	for _, p := range m.plans {
		result = append(result, *p)
	}
	return result, nil
}

func (m *mockPlanRepo) Update(_ context.Context, plan *model.SemesterPlan) error {
	m.plans[plan.SemesterPlanID] = plan
	return nil
}

func (m *mockPlanRepo) Delete(_ context.Context, id string) error {
	delete(m.plans, id)
	return nil
}

// ── Mock SeminarSlotRepository ──

type mockSlotRepo struct {
	slots map[string]*model.SeminarSlot
	seq   int
}

func newMockSlotRepo() *mockSlotRepo {
	return &mockSlotRepo{slots: make(map[string]*model.SeminarSlot)}
}

func (m *mockSlotRepo) Create(_ context.Context, slot *model.SeminarSlot) error {
	if slot.SlotID == "" {
		m.seq++
		slot.SlotID = fmt.Sprintf("slot-%d", m.seq)
	}
	if slot.Status == "" {
		slot.Status = model.SlotStatusAvailable
	}
	m.slots[slot.SlotID] = slot
	return nil
}

func (m *mockSlotRepo) GetByID(_ context.Context, id string) (*model.SeminarSlot, error) {
	if s, ok := m.slots[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSlotRepo) ListByPlan(_ context.Context, planID string) ([]model.SeminarSlot, error) {
	var result []model.SeminarSlot
	for _, s := range m.slots {
		if s.SemesterPlanID == planID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSlotRepo) Update(_ context.Context, slot *model.SeminarSlot) error {
	m.slots[slot.SlotID] = slot
	return nil
}

func (m *mockSlotRepo) Delete(_ context.Context, id string) error {
	delete(m.slots, id)
	return nil
}

func (m *mockSlotRepo) DeleteByIDs(_ context.Context, ids []string) error {
	for _, id := range ids {
		delete(m.slots, id)
	}
	return nil
}

func (m *mockSlotRepo) ClearBySeminar(_ context.Context, seminarID string) (int64, error) {
	var n int64
	for _, s := range m.slots {
		if s.AssignedSeminarID != nil && *s.AssignedSeminarID == seminarID {
			s.AssignedSeminarID = nil
			s.AssignedSuggestionID = nil
			s.Status = model.SlotStatusAvailable
			n++
		}
	}
	return n, nil
}

func (m *mockSlotRepo) ClearBySuggestion(_ context.Context, suggestionID string) (int64, error) {
	var n int64
	for _, s := range m.slots {
		if s.AssignedSuggestionID != nil && *s.AssignedSuggestionID == suggestionID {
			s.AssignedSeminarID = nil
			s.AssignedSuggestionID = nil
			s.Status = model.SlotStatusAvailable
			n++
		}
	}
	return n, nil
}

func (m *mockSlotRepo) ClearRoom(_ context.Context, roomID string) (int64, error) {
	var n int64
	for _, s := range m.slots {
		if s.RoomID != nil && *s.RoomID == roomID {
			s.RoomID = nil
			n++
		}
	}
	return n, nil
}

// ── Mock SpeakerSuggestionRepository ──

type mockSuggestionRepo struct {
	suggestions map[string]*model.SpeakerSuggestion
	seq         int
}

func newMockSuggestionRepo() *mockSuggestionRepo {
	return &mockSuggestionRepo{suggestions: make(map[string]*model.SpeakerSuggestion)}
}

func (m *mockSuggestionRepo) Create(_ context.Context, suggestion *model.SpeakerSuggestion) error {
	if suggestion.SuggestionID == "" {
		m.seq++
		suggestion.SuggestionID = fmt.Sprintf("sug-%d", m.seq)
	}
	if suggestion.Status == "" {
		suggestion.Status = model.SuggestionStatusPending
	}
	m.suggestions[suggestion.SuggestionID] = suggestion
	return nil
}

func (m *mockSuggestionRepo) GetByID(_ context.Context, id string) (*model.SpeakerSuggestion, error) {
	if s, ok := m.suggestions[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSuggestionRepo) List(_ context.Context, planID, status string, offset, limit int) ([]model.SpeakerSuggestion, int64, error) {
	var result []model.SpeakerSuggestion
	for _, s := range m.suggestions {
		if planID != "" && (s.SemesterPlanID == nil || *s.SemesterPlanID != planID) {
			continue
		}
		if status != "" && s.Status != status {
			continue
		}
		result = append(result, *s)
	}
	return result, int64(len(result)), nil
}

func (m *mockSuggestionRepo) ListByPlan(_ context.Context, planID string) ([]model.SpeakerSuggestion, error) {
	var result []model.SpeakerSuggestion
	for _, s := range m.suggestions {
		if s.SemesterPlanID != nil && *s.SemesterPlanID == planID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSuggestionRepo) Update(_ context.Context, suggestion *model.SpeakerSuggestion) error {
	m.suggestions[suggestion.SuggestionID] = suggestion
	return nil
}

func (m *mockSuggestionRepo) Delete(_ context.Context, id string) error {
	delete(m.suggestions, id)
	return nil
}

func (m *mockSuggestionRepo) DeleteByIDs(_ context.Context, ids []string) error {
	for _, id := range ids {
		delete(m.suggestions, id)
	}
	return nil
}

func (m *mockSuggestionRepo) ClearSpeaker(_ context.Context, speakerID string) (int64, error) {
	var n int64
	for _, s := range m.suggestions {
		if s.SpeakerID != nil && *s.SpeakerID == speakerID {
			s.SpeakerID = nil
			n++
		}
	}
	return n, nil
}

// ── Mock SpeakerAvailabilityRepository ──

type mockAvailabilityRepo struct {
	items map[string]*model.SpeakerAvailability
	seq   int
}

func newMockAvailabilityRepo() *mockAvailabilityRepo {
	return &mockAvailabilityRepo{items: make(map[string]*model.SpeakerAvailability)}
}

func (m *mockAvailabilityRepo) Create(_ context.Context, availability *model.SpeakerAvailability) error {
	if availability.AvailabilityID == "" {
		m.seq++
		availability.AvailabilityID = fmt.Sprintf("avail-%d", m.seq)
	}
	m.items[availability.AvailabilityID] = availability
	return nil
}

func (m *mockAvailabilityRepo) ListBySuggestion(_ context.Context, suggestionID string) ([]model.SpeakerAvailability, error) {
	var result []model.SpeakerAvailability
	for _, a := range m.items {
		if a.SuggestionID == suggestionID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAvailabilityRepo) DeleteBySuggestionIDs(_ context.Context, suggestionIDs []string) error {
	for id, a := range m.items {
		for _, sid := range suggestionIDs {
			if a.SuggestionID == sid {
				delete(m.items, id)
			}
		}
	}
	return nil
}

// ── Mock SpeakerWorkflowRepository ──

type mockWorkflowRepo struct {
	entries map[string]*model.SpeakerWorkflow
	seq     int
}

func newMockWorkflowRepo() *mockWorkflowRepo {
	return &mockWorkflowRepo{entries: make(map[string]*model.SpeakerWorkflow)}
}

func (m *mockWorkflowRepo) Create(_ context.Context, entry *model.SpeakerWorkflow) error {
	if entry.WorkflowID == "" {
		m.seq++
		entry.WorkflowID = fmt.Sprintf("wf-%d", m.seq)
	}
	m.entries[entry.WorkflowID] = entry
	return nil
}

func (m *mockWorkflowRepo) ListBySuggestion(_ context.Context, suggestionID string) ([]model.SpeakerWorkflow, error) {
	var result []model.SpeakerWorkflow
	for _, e := range m.entries {
		if e.SuggestionID == suggestionID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockWorkflowRepo) DeleteBySuggestionIDs(_ context.Context, suggestionIDs []string) error {
	for id, e := range m.entries {
		for _, sid := range suggestionIDs {
			if e.SuggestionID == sid {
				delete(m.entries, id)
			}
		}
	}
	return nil
}

// ── Mock SpeakerTokenRepository ──

type mockTokenRepo struct {
	tokens map[string]*model.SpeakerToken
	seq    int
}

func newMockTokenRepo() *mockTokenRepo {
	return &mockTokenRepo{tokens: make(map[string]*model.SpeakerToken)}
}

func (m *mockTokenRepo) Create(_ context.Context, token *model.SpeakerToken) error {
	if token.TokenID == "" {
		m.seq++
		token.TokenID = fmt.Sprintf("tok-%d", m.seq)
	}
	m.tokens[token.TokenID] = token
	return nil
}

func (m *mockTokenRepo) GetByToken(_ context.Context, token string) (*model.SpeakerToken, error) {
	for _, t := range m.tokens {
		if t.Token == token {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTokenRepo) ListBySuggestion(_ context.Context, suggestionID string) ([]model.SpeakerToken, error) {
	var result []model.SpeakerToken
	for _, t := range m.tokens {
		if t.SuggestionID == suggestionID {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (m *mockTokenRepo) DeleteBySuggestion(_ context.Context, suggestionID string) (int64, error) {
	var n int64
	for id, t := range m.tokens {
		if t.SuggestionID == suggestionID {
			delete(m.tokens, id)
			n++
		}
	}
	return n, nil
}

func (m *mockTokenRepo) DeleteBySuggestionIDs(_ context.Context, suggestionIDs []string) (int64, error) {
	var n int64
	for _, sid := range suggestionIDs {
		c, _ := m.DeleteBySuggestion(context.Background(), sid)
		n += c
	}
	return n, nil
}

// ── Mock SeminarRepository ──

type mockSeminarRepo struct {
	seminars map[string]*model.Seminar
	seq      int
}

func newMockSeminarRepo() *mockSeminarRepo {
	return &mockSeminarRepo{seminars: make(map[string]*model.Seminar)}
}

func (m *mockSeminarRepo) Create(_ context.Context, seminar *model.Seminar) error {
	if seminar.SeminarID == "" {
		m.seq++
		seminar.SeminarID = fmt.Sprintf("sem-%d", m.seq)
	}
	if seminar.Status == "" {
		seminar.Status = model.SeminarStatusPlanned
	}
	m.seminars[seminar.SeminarID] = seminar
	return nil
}

func (m *mockSeminarRepo) GetByID(_ context.Context, id string) (*model.Seminar, error) {
	if s, ok := m.seminars[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSeminarRepo) GetBySlot(_ context.Context, slotID string) (*model.Seminar, error) {
	for _, s := range m.seminars {
		if s.SlotID != nil && *s.SlotID == slotID {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSeminarRepo) List(_ context.Context, status string, offset, limit int) ([]model.Seminar, int64, error) {
	var result []model.Seminar
	for _, s := range m.seminars {
		if status != "" && s.Status != status {
			continue
		}
		result = append(result, *s)
	}
	return result, int64(len(result)), nil
}

func (m *mockSeminarRepo) Update(_ context.Context, seminar *model.Seminar) error {
	m.seminars[seminar.SeminarID] = seminar
	return nil
}

func (m *mockSeminarRepo) Delete(_ context.Context, id string) error {
	delete(m.seminars, id)
	return nil
}

func (m *mockSeminarRepo) ListBySpeaker(_ context.Context, speakerID string, limit int) ([]model.Seminar, error) {
	var result []model.Seminar
	for _, s := range m.seminars {
		if s.SpeakerID != nil && *s.SpeakerID == speakerID {
			result = append(result, *s)
			if limit > 0 && len(result) >= limit {
				break
			}
		}
	}
	return result, nil
}

func (m *mockSeminarRepo) ListBySlotIDs(_ context.Context, slotIDs []string) ([]model.Seminar, error) {
	var result []model.Seminar
	for _, s := range m.seminars {
		if s.SlotID == nil {
			continue
		}
		for _, sid := range slotIDs {
			if *s.SlotID == sid {
				result = append(result, *s)
				break
			}
		}
	}
	return result, nil
}

func (m *mockSeminarRepo) ClearRoom(_ context.Context, roomID string) (int64, error) {
	var n int64
	for _, s := range m.seminars {
		if s.RoomID != nil && *s.RoomID == roomID {
			s.RoomID = nil
			n++
		}
	}
	return n, nil
}

func (m *mockSeminarRepo) ClearSlot(_ context.Context, seminarID string) error {
	if s, ok := m.seminars[seminarID]; ok {
		s.SlotID = nil
	}
	return nil
}

// ── Mock SeminarDetailsRepository ──

type mockDetailsRepo struct {
	details map[string]*model.SeminarDetails // key: seminarID
}

func newMockDetailsRepo() *mockDetailsRepo {
	return &mockDetailsRepo{details: make(map[string]*model.SeminarDetails)}
}

func (m *mockDetailsRepo) GetBySeminar(_ context.Context, seminarID string) (*model.SeminarDetails, error) {
	if d, ok := m.details[seminarID]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDetailsRepo) Create(_ context.Context, details *model.SeminarDetails) error {
	if details.DetailID == "" {
		details.DetailID = "det-" + details.SeminarID
	}
	m.details[details.SeminarID] = details
	return nil
}

func (m *mockDetailsRepo) Update(_ context.Context, details *model.SeminarDetails) error {
	m.details[details.SeminarID] = details
	return nil
}

func (m *mockDetailsRepo) DeleteBySeminar(_ context.Context, seminarID string) error {
	delete(m.details, seminarID)
	return nil
}

// ── Mock UploadedFileRepository ──

type mockUploadRepo struct {
	files map[string]*model.UploadedFile
	seq   int
}

func newMockUploadRepo() *mockUploadRepo {
	return &mockUploadRepo{files: make(map[string]*model.UploadedFile)}
}

func (m *mockUploadRepo) Create(_ context.Context, file *model.UploadedFile) error {
	if file.FileID == "" {
		m.seq++
		file.FileID = fmt.Sprintf("file-%d", m.seq)
	}
	m.files[file.FileID] = file
	return nil
}

func (m *mockUploadRepo) GetByID(_ context.Context, id string) (*model.UploadedFile, error) {
	if f, ok := m.files[id]; ok {
		return f, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUploadRepo) ListByOwner(_ context.Context, entityType, entityID string) ([]model.UploadedFile, error) {
	var result []model.UploadedFile
	for _, f := range m.files {
		if f.EntityType == entityType && f.EntityID == entityID {
			result = append(result, *f)
		}
	}
	return result, nil
}

func (m *mockUploadRepo) Delete(_ context.Context, id string) error {
	delete(m.files, id)
	return nil
}

// ── Mock ActivityEventRepository ──

type mockActivityRepo struct {
	events []model.ActivityEvent
}

func newMockActivityRepo() *mockActivityRepo {
	return &mockActivityRepo{}
}

func (m *mockActivityRepo) Create(_ context.Context, event *model.ActivityEvent) error {
	if event.EventID == "" {
		event.EventID = fmt.Sprintf("evt-%d", len(m.events)+1)
	}
	m.events = append(m.events, *event)
	return nil
}

func (m *mockActivityRepo) List(_ context.Context, planID string, offset, limit int) ([]model.ActivityEvent, int64, error) {
	var result []model.ActivityEvent
	for _, e := range m.events {
		if planID != "" && (e.SemesterPlanID == nil || *e.SemesterPlanID != planID) {
			continue
		}
		result = append(result, e)
	}
	return result, int64(len(result)), nil
}

func (m *mockActivityRepo) DeleteByPlan(_ context.Context, planID string) error {
	var kept []model.ActivityEvent
	for _, e := range m.events {
		if e.SemesterPlanID != nil && *e.SemesterPlanID == planID {
			continue
		}
		kept = append(kept, e)
	}
	m.events = kept
	return nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

// ── Mock Store ──

// mockStore 内存文件存储；failRemove 里的文件名模拟 IO 错误（非 ErrNotExist）
type mockStore struct {
	files      map[string][]byte
	failRemove map[string]bool
}

func newMockStore() *mockStore {
	return &mockStore{
		files:      make(map[string][]byte),
		failRemove: make(map[string]bool),
	}
}

func (m *mockStore) Save(filename string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.files[filename] = data
	return nil
}

func (m *mockStore) Remove(filename string) error {
	if m.failRemove[filename] {
		return fmt.Errorf("permission denied: %s", filename)
	}
	if _, ok := m.files[filename]; !ok {
		return fmt.Errorf("文件不存在: %w", storage.ErrNotExist)
	}
	delete(m.files, filename)
	return nil
}

func (m *mockStore) Open(filename string) (io.ReadCloser, error) {
	if data, ok := m.files[filename]; ok {
		return io.NopCloser(bytes.NewReader(data)), nil
	}
	return nil, storage.ErrNotExist
}
