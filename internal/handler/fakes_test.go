package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sahanmw/hostel-inventory/internal/config"
	"github.com/sahanmw/hostel-inventory/internal/model"
	"github.com/sahanmw/hostel-inventory/internal/repository"
	"github.com/sahanmw/hostel-inventory/internal/session"
)

// ----- fake user store -----

// fakeUserStore mimics the user repository contract in memory, including
// the two concurrency-sensitive pieces: the first-registration bootstrap
// and the check-and-clear reset code consume, both serialized by a mutex
// the way the SQL versions are serialized by the database.
type fakeUserStore struct {
	mu     sync.Mutex
	nextID uint64
	users  map[uint64]model.UserProfile
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uint64]model.UserProfile{}}
}

func (f *fakeUserStore) Register(ctx context.Context, u *model.UserProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ex := range f.users {
		if ex.Username == u.Username {
			return repository.ErrUsernameExists
		}
	}
	role := model.RolePending
	if len(f.users) == 0 {
		role = model.RoleWarden
	}
	f.nextID++
	u.ID = f.nextID
	u.Role = role
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserStore) Create(ctx context.Context, u *model.UserProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ex := range f.users {
		if ex.Username == u.Username {
			return repository.ErrUsernameExists
		}
	}
	f.nextID++
	u.ID = f.nextID
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uint64) (model.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return model.UserProfile{}, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetByUsername(ctx context.Context, username string) (model.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.UserProfile{}, repository.ErrNotFound
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (model.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var best model.UserProfile
	found := false
	for _, u := range f.users {
		if u.Email == email && (!found || u.ID < best.ID) {
			best = u
			found = true
		}
	}
	if !found {
		return model.UserProfile{}, repository.ErrNotFound
	}
	return best, nil
}

func (f *fakeUserStore) List(ctx context.Context) ([]model.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.UserProfile, 0, len(f.users))
	for id := uint64(1); id <= f.nextID; id++ {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserStore) Update(ctx context.Context, u *model.UserProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	u.UpdatedAt = time.Now().UTC()
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserStore) Delete(ctx context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserStore) Count(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users), nil
}

func (f *fakeUserStore) SetResetCode(ctx context.Context, id uint64, code string, expires time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.ResetCode = &code
	u.ResetCodeExpires = &expires
	f.users[id] = u
	return nil
}

func (f *fakeUserStore) ConsumeResetCode(ctx context.Context, id uint64, code, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok || u.ResetCode == nil || u.ResetCodeExpires == nil ||
		*u.ResetCode != code || time.Now().UTC().After(*u.ResetCodeExpires) {
		return repository.ErrResetCodeInvalid
	}
	u.PasswordHash = passwordHash
	u.ResetCode = nil
	u.ResetCodeExpires = nil
	f.users[id] = u
	return nil
}

// ----- fake mail sender -----

type fakeMailSender struct {
	mu    sync.Mutex
	sent  []string // recipient addresses, in send order
	fail  bool
	codes []string // codes paired with sent
}

func (f *fakeMailSender) SendResetCode(ctx context.Context, to, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return context.DeadlineExceeded
	}
	f.sent = append(f.sent, to)
	f.codes = append(f.codes, code)
	return nil
}

// ----- fake inventory store -----

// fakeInventory backs the room, asset and damage report handlers with one
// shared in-memory dataset so the room-deletion side effects (reports
// cascade away, assets detach) behave like the real schema.
type fakeInventory struct {
	mu      sync.Mutex
	nextID  uint64
	rooms   map[uint64]model.Room
	assets  map[uint64]model.Asset
	reports map[uint64]model.DamageReport
}

func newFakeInventory() *fakeInventory {
	return &fakeInventory{
		rooms:   map[uint64]model.Room{},
		assets:  map[uint64]model.Asset{},
		reports: map[uint64]model.DamageReport{},
	}
}

func (f *fakeInventory) roomDetail(r model.Room) repository.RoomDetail {
	count := 0
	for _, a := range f.assets {
		if a.RoomID != nil && *a.RoomID == r.ID {
			count++
		}
	}
	return repository.RoomDetail{
		ID: r.ID, RoomNumber: r.RoomNumber, HostelName: r.HostelName,
		Floor: r.Floor, Capacity: r.Capacity, AssetCount: count,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

func (f *fakeInventory) assetDetail(a model.Asset) repository.AssetDetail {
	d := repository.AssetDetail{
		ID: a.ID, Name: a.Name, AssetType: a.AssetType,
		TotalQuantity: a.TotalQuantity, Condition: a.Condition,
		RoomID: a.RoomID, CreatedAt: a.CreatedAt, UpdatedAt: a.UpdatedAt,
	}
	if a.RoomID != nil {
		if r, ok := f.rooms[*a.RoomID]; ok {
			num := r.RoomNumber
			d.RoomDisplay = &num
		}
	}
	return d
}

func (f *fakeInventory) reportDetail(rep model.DamageReport) repository.DamageReportDetail {
	d := repository.DamageReportDetail{
		ID: rep.ID, RoomID: rep.RoomID, AssetType: rep.AssetType,
		Description: rep.Description, Status: rep.Status,
		ReportedAt: rep.ReportedAt, UpdatedAt: rep.UpdatedAt,
	}
	if r, ok := f.rooms[rep.RoomID]; ok {
		d.RoomNumber = r.RoomNumber
	}
	return d
}

// rooms view

type fakeRoomStore struct{ inv *fakeInventory }

func (s *fakeRoomStore) List(ctx context.Context) ([]repository.RoomDetail, error) {
	s.inv.mu.Lock()
	defer s.inv.mu.Unlock()
	var out []repository.RoomDetail
	for id := uint64(1); id <= s.inv.nextID; id++ {
		if r, ok := s.inv.rooms[id]; ok {
			out = append(out, s.inv.roomDetail(r))
		}
	}
	return out, nil
}

func (s *fakeRoomStore) Get(ctx context.Context, id uint64) (repository.RoomDetail, error) {
	s.inv.mu.Lock()
	defer s.inv.mu.Unlock()
	r, ok := s.inv.rooms[id]
	if !ok {
		return repository.RoomDetail{}, repository.ErrNotFound
	}
	return s.inv.roomDetail(r), nil
}

func (s *fakeRoomStore) Create(ctx context.Context, room *model.Room) (repository.RoomDetail, error) {
	s.inv.mu.Lock()
	defer s.inv.mu.Unlock()
	for _, ex := range s.inv.rooms {
		if ex.RoomNumber == room.RoomNumber {
			return repository.RoomDetail{}, repository.ErrRoomNumberExists
		}
	}
	s.inv.nextID++
	room.ID = s.inv.nextID
	room.CreatedAt = time.Now().UTC()
	room.UpdatedAt = room.CreatedAt
	s.inv.rooms[room.ID] = *room
	return s.inv.roomDetail(*room), nil
}

func (s *fakeRoomStore) Update(ctx context.Context, id uint64, room *model.Room) (repository.RoomDetail, error) {
	s.inv.mu.Lock()
	defer s.inv.mu.Unlock()
	ex, ok := s.inv.rooms[id]
	if !ok {
		return repository.RoomDetail{}, repository.ErrNotFound
	}
	for otherID, other := range s.inv.rooms {
		if otherID != id && other.RoomNumber == room.RoomNumber {
			return repository.RoomDetail{}, repository.ErrRoomNumberExists
		}
	}
	ex.RoomNumber = room.RoomNumber
	ex.HostelName = room.HostelName
	ex.Floor = room.Floor
	ex.Capacity = room.Capacity
	ex.UpdatedAt = time.Now().UTC()
	s.inv.rooms[id] = ex
	return s.inv.roomDetail(ex), nil
}

func (s *fakeRoomStore) Delete(ctx context.Context, id uint64) error {
	s.inv.mu.Lock()
	defer s.inv.mu.Unlock()
	if _, ok := s.inv.rooms[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.inv.rooms, id)
	// Mirror the schema's FK actions: reports cascade, assets detach.
	for rid, rep := range s.inv.reports {
		if rep.RoomID == id {
			delete(s.inv.reports, rid)
		}
	}
	for aid, a := range s.inv.assets {
		if a.RoomID != nil && *a.RoomID == id {
			a.RoomID = nil
			s.inv.assets[aid] = a
		}
	}
	return nil
}

func (s *fakeRoomStore) Exists(ctx context.Context, id uint64) (bool, error) {
	s.inv.mu.Lock()
	defer s.inv.mu.Unlock()
	_, ok := s.inv.rooms[id]
	return ok, nil
}

func (s *fakeRoomStore) Count(ctx context.Context) (int, error) {
	s.inv.mu.Lock()
	defer s.inv.mu.Unlock()
	return len(s.inv.rooms), nil
}

// assets view

type fakeAssetStore struct{ inv *fakeInventory }

func (s *fakeAssetStore) List(ctx context.Context) ([]repository.AssetDetail, error) {
	s.inv.mu.Lock()
	defer s.inv.mu.Unlock()
	var out []repository.AssetDetail
	for id := s.inv.nextID; id >= 1; id-- {
		if a, ok := s.inv.assets[id]; ok {
			out = append(out, s.inv.assetDetail(a))
		}
	}
	return out, nil
}

func (s *fakeAssetStore) Get(ctx context.Context, id uint64) (repository.AssetDetail, error) {
	s.inv.mu.Lock()
	defer s.inv.mu.Unlock()
	a, ok := s.inv.assets[id]
	if !ok {
		return repository.AssetDetail{}, repository.ErrNotFound
	}
	return s.inv.assetDetail(a), nil
}

func (s *fakeAssetStore) Create(ctx context.Context, a *model.Asset) (repository.AssetDetail, error) {
	s.inv.mu.Lock()
	defer s.inv.mu.Unlock()
	s.inv.nextID++
	a.ID = s.inv.nextID
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt
	s.inv.assets[a.ID] = *a
	return s.inv.assetDetail(*a), nil
}

func (s *fakeAssetStore) Update(ctx context.Context, id uint64, a *model.Asset) (repository.AssetDetail, error) {
	s.inv.mu.Lock()
	defer s.inv.mu.Unlock()
	ex, ok := s.inv.assets[id]
	if !ok {
		return repository.AssetDetail{}, repository.ErrNotFound
	}
	ex.Name = a.Name
	ex.AssetType = a.AssetType
	ex.TotalQuantity = a.TotalQuantity
	ex.Condition = a.Condition
	ex.RoomID = a.RoomID
	ex.UpdatedAt = time.Now().UTC()
	s.inv.assets[id] = ex
	return s.inv.assetDetail(ex), nil
}

func (s *fakeAssetStore) Delete(ctx context.Context, id uint64) error {
	s.inv.mu.Lock()
	defer s.inv.mu.Unlock()
	if _, ok := s.inv.assets[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.inv.assets, id)
	return nil
}

func (s *fakeAssetStore) Count(ctx context.Context) (int, error) {
	s.inv.mu.Lock()
	defer s.inv.mu.Unlock()
	return len(s.inv.assets), nil
}

// damage reports view

type fakeReportStore struct{ inv *fakeInventory }

func (s *fakeReportStore) List(ctx context.Context) ([]repository.DamageReportDetail, error) {
	s.inv.mu.Lock()
	defer s.inv.mu.Unlock()
	var out []repository.DamageReportDetail
	for id := s.inv.nextID; id >= 1; id-- {
		if rep, ok := s.inv.reports[id]; ok {
			out = append(out, s.inv.reportDetail(rep))
		}
	}
	return out, nil
}

func (s *fakeReportStore) Get(ctx context.Context, id uint64) (repository.DamageReportDetail, error) {
	s.inv.mu.Lock()
	defer s.inv.mu.Unlock()
	rep, ok := s.inv.reports[id]
	if !ok {
		return repository.DamageReportDetail{}, repository.ErrNotFound
	}
	return s.inv.reportDetail(rep), nil
}

func (s *fakeReportStore) Create(ctx context.Context, rep *model.DamageReport) (repository.DamageReportDetail, error) {
	s.inv.mu.Lock()
	defer s.inv.mu.Unlock()
	s.inv.nextID++
	rep.ID = s.inv.nextID
	rep.ReportedAt = time.Now().UTC()
	rep.UpdatedAt = rep.ReportedAt
	s.inv.reports[rep.ID] = *rep
	return s.inv.reportDetail(*rep), nil
}

func (s *fakeReportStore) Update(ctx context.Context, id uint64, rep *model.DamageReport) (repository.DamageReportDetail, error) {
	s.inv.mu.Lock()
	defer s.inv.mu.Unlock()
	ex, ok := s.inv.reports[id]
	if !ok {
		return repository.DamageReportDetail{}, repository.ErrNotFound
	}
	ex.RoomID = rep.RoomID
	ex.AssetType = rep.AssetType
	ex.Description = rep.Description
	ex.Status = rep.Status
	ex.UpdatedAt = time.Now().UTC()
	s.inv.reports[id] = ex
	return s.inv.reportDetail(ex), nil
}

func (s *fakeReportStore) Delete(ctx context.Context, id uint64) error {
	s.inv.mu.Lock()
	defer s.inv.mu.Unlock()
	if _, ok := s.inv.reports[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.inv.reports, id)
	return nil
}

func (s *fakeReportStore) CountByStatus(ctx context.Context, status string) (int, error) {
	s.inv.mu.Lock()
	defer s.inv.mu.Unlock()
	n := 0
	for _, rep := range s.inv.reports {
		if rep.Status == status {
			n++
		}
	}
	return n, nil
}

// ----- request helpers -----

func testCfg() config.Config {
	return config.Config{
		Env:           "test",
		SessionCookie: "sessionid",
		SessionTTL:    time.Hour,
		BcryptCost:    4, // keep the tests fast
	}
}

type userFixture struct {
	h        *UserHandler
	users    *fakeUserStore
	sessions *session.MemoryStore
	mail     *fakeMailSender
}

func newUserFixture() *userFixture {
	users := newFakeUserStore()
	sessions := session.NewMemoryStore()
	sender := &fakeMailSender{}
	h := NewUserHandler(testCfg(), users, sessions, sender, zap.NewNop())
	return &userFixture{h: h, users: users, sessions: sessions, mail: sender}
}

// do runs a handler against a JSON request and returns the recorder. The
// optional setup hook can set path params and context values.
func do(t *testing.T, fn echo.HandlerFunc, method, target string, body any, setup func(c echo.Context)) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	var reader *strings.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(b))
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if setup != nil {
		setup(c)
	}
	require.NoError(t, fn(c))
	return rec
}

// decode unmarshals a JSON response body into a generic map.
func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
