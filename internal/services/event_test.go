package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"announcehub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID   map[string]*domain.Event
	nextID int
	err    error // if set, Create returns this error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:   make(map[string]*domain.Event),
		nextID: 1,
	}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range f.byID {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[j].CreatedAt.Before(out[i].CreatedAt)
	})
	return out, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, eventID string, upd domain.EventUpdate) (*domain.Event, error) {
	e, ok := f.byID[eventID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if upd.Name != nil {
		e.Name = *upd.Name
	}
	if upd.Description != nil {
		e.Description = upd.Description
	}
	if upd.StartDate != nil {
		e.StartDate = upd.StartDate
	}
	if upd.Timezone != nil {
		e.Timezone = *upd.Timezone
	}
	if upd.DripDaysBefore != nil {
		e.DripDaysBefore = upd.DripDaysBefore
	}
	if upd.DripStartTime != nil {
		e.DripStartTime = upd.DripStartTime
	}
	e.UpdatedAt = time.Now()
	return e, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeSpeakerRepo is an in-memory SpeakerRepository for tests. ListByEventID
// returns speakers ordered by creation time then ID, matching the SQL repo.
type fakeSpeakerRepo struct {
	byID      map[string]*domain.Speaker
	nextID    int
	createErr error
	listErr   error
}

func newFakeSpeakerRepo() *fakeSpeakerRepo {
	return &fakeSpeakerRepo{
		byID:   make(map[string]*domain.Speaker),
		nextID: 1,
	}
}

func (f *fakeSpeakerRepo) Create(ctx context.Context, sp *domain.Speaker) error {
	if f.createErr != nil {
		return f.createErr
	}
	sp.ID = fmt.Sprintf("sp-%d", f.nextID)
	f.nextID++
	f.byID[sp.ID] = sp
	return nil
}

func (f *fakeSpeakerRepo) GetByID(ctx context.Context, id string) (*domain.Speaker, error) {
	if sp, ok := f.byID[id]; ok {
		return sp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeSpeakerRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Speaker, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*domain.Speaker
	for _, sp := range f.byID {
		if sp.EventID == eventID {
			out = append(out, sp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeSpeakerRepo) Update(ctx context.Context, speakerID string, upd domain.SpeakerUpdate) (*domain.Speaker, error) {
	sp, ok := f.byID[speakerID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if upd.Name != nil {
		sp.Name = *upd.Name
	}
	if upd.Title != nil {
		sp.Title = *upd.Title
	}
	if upd.Company != nil {
		sp.Company = *upd.Company
	}
	if upd.Bio != nil {
		sp.Bio = *upd.Bio
	}
	if upd.HeadshotURL != nil {
		sp.HeadshotURL = *upd.HeadshotURL
	}
	sp.UpdatedAt = time.Now()
	return sp, nil
}

func (f *fakeSpeakerRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakePostRepo is an in-memory ScheduledPostRepository for tests.
type fakePostRepo struct {
	byID      map[string]*domain.ScheduledPost
	nextID    int
	createErr error
	// failCreateFor skips creation for these speaker IDs, simulating a
	// per-row write error during commit.
	failCreateFor map[string]bool
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{
		byID:          make(map[string]*domain.ScheduledPost),
		nextID:        1,
		failCreateFor: make(map[string]bool),
	}
}

func (f *fakePostRepo) Create(ctx context.Context, post *domain.ScheduledPost) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.failCreateFor[post.SpeakerID] {
		return errors.New("db write error")
	}
	post.ID = fmt.Sprintf("post-%d", f.nextID)
	f.nextID++
	f.byID[post.ID] = post
	return nil
}

func (f *fakePostRepo) GetByID(ctx context.Context, id string) (*domain.ScheduledPost, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakePostRepo) ListActiveByEventID(ctx context.Context, eventID string) ([]*domain.ScheduledPost, error) {
	var out []*domain.ScheduledPost
	for _, p := range f.byID {
		if p.EventID == eventID && p.IsActive() {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledAt.Before(out[j].ScheduledAt)
	})
	return out, nil
}

func (f *fakePostRepo) ListByEventID(ctx context.Context, eventID string, status domain.PostStatus, params domain.PaginationParams) ([]*domain.ScheduledPost, int, error) {
	var out []*domain.ScheduledPost
	for _, p := range f.byID {
		if p.EventID != eventID {
			continue
		}
		if status != "" && p.Status != status {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[j].ScheduledAt.Before(out[i].ScheduledAt)
	})
	total := len(out)
	offset := params.Offset()
	if offset > total {
		offset = total
	}
	end := offset + params.Limit()
	if end > total {
		end = total
	}
	return out[offset:end], total, nil
}

func (f *fakePostRepo) UpdateStatus(ctx context.Context, id string, status domain.PostStatus, errMsg *string) (*domain.ScheduledPost, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.Status = status
	p.Error = errMsg
	p.UpdatedAt = time.Now()
	return p, nil
}

// fakeAnnouncementRepo is an in-memory AnnouncementRepository for tests.
type fakeAnnouncementRepo struct {
	byID      map[string]*domain.Announcement
	nextID    int
	createErr error
}

func newFakeAnnouncementRepo() *fakeAnnouncementRepo {
	return &fakeAnnouncementRepo{
		byID:   make(map[string]*domain.Announcement),
		nextID: 1,
	}
}

func (f *fakeAnnouncementRepo) Create(ctx context.Context, a *domain.Announcement) error {
	if f.createErr != nil {
		return f.createErr
	}
	a.ID = fmt.Sprintf("ann-%d", f.nextID)
	f.nextID++
	f.byID[a.ID] = a
	return nil
}

func (f *fakeAnnouncementRepo) GetByID(ctx context.Context, id string) (*domain.Announcement, error) {
	if a, ok := f.byID[id]; ok {
		return a, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAnnouncementRepo) ListByEventID(ctx context.Context, eventID, speakerID string, platform domain.Platform) ([]*domain.Announcement, error) {
	var out []*domain.Announcement
	for _, a := range f.byID {
		if a.EventID != eventID {
			continue
		}
		if speakerID != "" && a.SpeakerID != speakerID {
			continue
		}
		if platform != "" && a.Platform != platform {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeAnnouncementRepo) GetBySpeakerAndPlatform(ctx context.Context, speakerID string, platform domain.Platform) (*domain.Announcement, error) {
	for _, a := range f.byID {
		if a.SpeakerID == speakerID && a.Platform == platform {
			return a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAnnouncementRepo) Update(ctx context.Context, id string, upd domain.AnnouncementUpdate) (*domain.Announcement, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if upd.Body != nil {
		a.Body = *upd.Body
	}
	if upd.ImageURL != nil {
		a.ImageURL = upd.ImageURL
	}
	a.UpdatedAt = time.Now()
	return a, nil
}

func (f *fakeAnnouncementRepo) MarkPublished(ctx context.Context, id, postURL string, postedAt time.Time) (*domain.Announcement, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	a.PostURL = &postURL
	a.PostedAt = &postedAt
	a.UpdatedAt = time.Now()
	return a, nil
}

func (f *fakeAnnouncementRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeSocialAccountRepo is an in-memory SocialAccountRepository for tests.
type fakeSocialAccountRepo struct {
	accounts []*domain.SocialAccount
	nextID   int
}

func newFakeSocialAccountRepo() *fakeSocialAccountRepo {
	return &fakeSocialAccountRepo{nextID: 1}
}

func (f *fakeSocialAccountRepo) Upsert(ctx context.Context, account *domain.SocialAccount) (*domain.SocialAccount, error) {
	for _, a := range f.accounts {
		if a.UserID == account.UserID && a.Platform == account.Platform {
			a.Handle = account.Handle
			a.AccessToken = account.AccessToken
			a.ExpiresAt = account.ExpiresAt
			a.UpdatedAt = time.Now()
			return a, nil
		}
	}
	account.ID = fmt.Sprintf("acct-%d", f.nextID)
	f.nextID++
	f.accounts = append(f.accounts, account)
	return account, nil
}

func (f *fakeSocialAccountRepo) GetByUserAndPlatform(ctx context.Context, userID string, platform domain.Platform) (*domain.SocialAccount, error) {
	for _, a := range f.accounts {
		if a.UserID == userID && a.Platform == platform {
			return a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeSocialAccountRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.SocialAccount, error) {
	var out []*domain.SocialAccount
	for _, a := range f.accounts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Platform < out[j].Platform })
	return out, nil
}

func (f *fakeSocialAccountRepo) Delete(ctx context.Context, userID string, platform domain.Platform) error {
	for i, a := range f.accounts {
		if a.UserID == userID && a.Platform == platform {
			f.accounts = append(f.accounts[:i], f.accounts[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// fakeUserRepo is an in-memory UserRepository for tests.
type fakeUserRepo struct {
	byID      map[string]*domain.User
	roles     map[string][]string // userID -> roleIDs
	nextID    int
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:   make(map[string]*domain.User),
		roles:  make(map[string][]string),
		nextID: 1,
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, u := range f.byID {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrDuplicateEmail
		}
	}
	user.ID = fmt.Sprintf("user-%d", f.nextID)
	f.nextID++
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.byID {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	if _, ok := f.byID[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserRepo) AssignRole(ctx context.Context, userID, roleID string) error {
	f.roles[userID] = append(f.roles[userID], roleID)
	return nil
}

func (f *fakeUserRepo) addUser(id, email, name string) *domain.User {
	u := &domain.User{ID: id, Email: email, Name: name}
	f.byID[id] = u
	return u
}

// fakeRoleRepo is an in-memory RoleRepository for tests, seeded with the
// organizer and admin roles.
type fakeRoleRepo struct {
	byCode map[string]*domain.Role
	byUser map[string][]*domain.Role
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{
		byCode: map[string]*domain.Role{
			"organizer": {ID: "role-1", Code: "organizer"},
			"admin":     {ID: "role-2", Code: "admin"},
		},
		byUser: make(map[string][]*domain.Role),
	}
}

func (f *fakeRoleRepo) GetByCode(ctx context.Context, code string) (*domain.Role, error) {
	if r, ok := f.byCode[code]; ok {
		return r, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRoleRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Role, error) {
	return f.byUser[userID], nil
}

// fakeEmailService tracks sent emails; errors are injectable per method.
type fakeEmailService struct {
	welcomeErr  error
	digestErr   error
	sentWelcome []*domain.WelcomeMessageEmailData
	sentDigests []*domain.ScheduleDigestEmailData
}

func newFakeEmailService() *fakeEmailService {
	return &fakeEmailService{}
}

func (f *fakeEmailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeMessageEmailData) error {
	if f.welcomeErr != nil {
		return f.welcomeErr
	}
	f.sentWelcome = append(f.sentWelcome, data)
	return nil
}

func (f *fakeEmailService) SendScheduleDigest(ctx context.Context, data *domain.ScheduleDigestEmailData) error {
	if f.digestErr != nil {
		return f.digestErr
	}
	f.sentDigests = append(f.sentDigests, data)
	return nil
}

// fakeCopyGenerator returns deterministic copy or a configurable error.
type fakeCopyGenerator struct {
	err error
	// failFor makes generation fail only for the named speaker.
	failFor string
}

func (f *fakeCopyGenerator) Generate(ctx context.Context, req domain.CopyRequest) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.failFor != "" && f.failFor == req.SpeakerName {
		return "", errors.New("generation failed")
	}
	return fmt.Sprintf("Meet %s at %s! (%s)", req.SpeakerName, req.EventName, req.Platform), nil
}

// fakePublisher records published posts, returning a fixed URL per call.
type fakePublisher struct {
	platform  domain.Platform
	err       error
	published []domain.SocialPost
}

func (f *fakePublisher) Publish(ctx context.Context, post domain.SocialPost) (*domain.PublishResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.published = append(f.published, post)
	return &domain.PublishResult{
		PostURL:  fmt.Sprintf("https://%s.example.com/p/%d", f.platform, len(f.published)),
		PostedAt: time.Now(),
	}, nil
}

func testPublishers() (map[domain.Platform]domain.SocialPublisher, map[domain.Platform]*fakePublisher) {
	fakes := map[domain.Platform]*fakePublisher{
		domain.PlatformLinkedIn:  {platform: domain.PlatformLinkedIn},
		domain.PlatformTwitter:   {platform: domain.PlatformTwitter},
		domain.PlatformInstagram: {platform: domain.PlatformInstagram},
	}
	publishers := make(map[domain.Platform]domain.SocialPublisher, len(fakes))
	for p, f := range fakes {
		publishers[p] = f
	}
	return publishers, fakes
}

// fakeHasher is a transparent PasswordHasher for tests.
type fakeHasher struct{}

func (fakeHasher) GenerateSalt() (string, error) { return "salt", nil }
func (fakeHasher) Hash(salt, password string) (string, error) {
	return salt + ":" + password, nil
}
func (fakeHasher) Compare(hash, salt, password string) error {
	if hash != salt+":"+password {
		return errors.New("mismatch")
	}
	return nil
}

// fakeTokenIssuer issues predictable tokens.
type fakeTokenIssuer struct{ err error }

func (f *fakeTokenIssuer) Issue(userID, email string, roles []string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-" + userID, nil
}

func TestEventService_CreateEvent(t *testing.T) {
	ctx := context.Background()
	timeout := 5 * time.Second

	tests := []struct {
		name    string
		setup   func() *fakeEventRepo
		event   *domain.Event
		wantErr bool
		assert  func(t *testing.T, eventRepo *fakeEventRepo, event *domain.Event)
	}{
		{
			name:  "success",
			setup: newFakeEventRepo,
			event: &domain.Event{Name: "GopherConf", OwnerID: "user-1", Timezone: "Europe/Madrid"},
			assert: func(t *testing.T, eventRepo *fakeEventRepo, event *domain.Event) {
				require.NotEmpty(t, event.ID)
				assert.False(t, event.CreatedAt.IsZero())
				assert.False(t, event.UpdatedAt.IsZero())
				got, ok := eventRepo.byID[event.ID]
				require.True(t, ok)
				assert.Equal(t, "user-1", got.OwnerID)
				assert.Equal(t, "Europe/Madrid", got.Timezone)
			},
		},
		{
			name:  "defaults timezone to UTC",
			setup: newFakeEventRepo,
			event: &domain.Event{Name: "GopherConf", OwnerID: "user-1"},
			assert: func(t *testing.T, _ *fakeEventRepo, event *domain.Event) {
				assert.Equal(t, "UTC", event.Timezone)
			},
		},
		{
			name:    "unknown timezone",
			setup:   newFakeEventRepo,
			event:   &domain.Event{Name: "GopherConf", OwnerID: "user-1", Timezone: "Mars/Olympus"},
			wantErr: true,
		},
		{
			name:    "missing owner",
			setup:   newFakeEventRepo,
			event:   &domain.Event{Name: "GopherConf"},
			wantErr: true,
		},
		{
			name:    "missing name",
			setup:   newFakeEventRepo,
			event:   &domain.Event{OwnerID: "user-1"},
			wantErr: true,
		},
		{
			name: "repo error",
			setup: func() *fakeEventRepo {
				er := newFakeEventRepo()
				er.err = errors.New("db error")
				return er
			},
			event:   &domain.Event{Name: "GopherConf", OwnerID: "user-1"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eventRepo := tt.setup()
			svc := NewEventService(eventRepo, newFakeSpeakerRepo(), timeout)
			ev := &domain.Event{Name: tt.event.Name, OwnerID: tt.event.OwnerID, Timezone: tt.event.Timezone}
			err := svc.CreateEvent(ctx, ev)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.assert != nil {
				tt.assert(t, eventRepo, ev)
			}
		})
	}
}

func TestEventService_GetEventByID(t *testing.T) {
	ctx := context.Background()
	timeout := 5 * time.Second

	eventRepo := newFakeEventRepo()
	speakerRepo := newFakeSpeakerRepo()
	require.NoError(t, eventRepo.Create(ctx, &domain.Event{Name: "GopherConf", OwnerID: "user-1", Timezone: "UTC"}))

	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, speakerRepo.Create(ctx, &domain.Speaker{EventID: "ev-1", Name: "Grace", CreatedAt: base.Add(time.Minute)}))
	require.NoError(t, speakerRepo.Create(ctx, &domain.Speaker{EventID: "ev-1", Name: "Ada", CreatedAt: base}))

	svc := NewEventService(eventRepo, speakerRepo, timeout)

	event, speakers, err := svc.GetEventByID(ctx, "ev-1")
	require.NoError(t, err)
	assert.Equal(t, "GopherConf", event.Name)
	require.Len(t, speakers, 2)
	// Creation order, not insertion order.
	assert.Equal(t, "Ada", speakers[0].Name)
	assert.Equal(t, "Grace", speakers[1].Name)

	_, _, err = svc.GetEventByID(ctx, "ev-missing")
	require.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestEventService_UpdateEvent(t *testing.T) {
	ctx := context.Background()
	timeout := 5 * time.Second
	startDate := time.Date(2026, 6, 19, 0, 0, 0, 0, time.UTC)
	desc := "Annual Go conference"
	badTZ := "Mars/Olympus"
	goodTZ := "America/New_York"
	days := 10
	zeroDays := 0
	startTime := "09:30"
	badStartTime := "25:99"

	tests := []struct {
		name          string
		eventID       string
		ownerID       string
		upd           domain.EventUpdate
		wantErr       bool
		wantNotFound  bool
		wantForbidden bool
		wantInvalid   bool
		assert        func(t *testing.T, event *domain.Event)
	}{
		{
			name:    "success updates date and description",
			eventID: "ev-1",
			ownerID: "user-1",
			upd:     domain.EventUpdate{StartDate: &startDate, Description: &desc},
			assert: func(t *testing.T, event *domain.Event) {
				require.NotNil(t, event.StartDate)
				assert.True(t, event.StartDate.Equal(startDate))
				require.NotNil(t, event.Description)
				assert.Equal(t, desc, *event.Description)
			},
		},
		{
			name:    "success updates drip settings",
			eventID: "ev-1",
			ownerID: "user-1",
			upd:     domain.EventUpdate{Timezone: &goodTZ, DripDaysBefore: &days, DripStartTime: &startTime},
			assert: func(t *testing.T, event *domain.Event) {
				assert.Equal(t, goodTZ, event.Timezone)
				require.NotNil(t, event.DripDaysBefore)
				assert.Equal(t, 10, *event.DripDaysBefore)
				require.NotNil(t, event.DripStartTime)
				assert.Equal(t, "09:30", *event.DripStartTime)
			},
		},
		{
			name:        "unknown timezone",
			eventID:     "ev-1",
			ownerID:     "user-1",
			upd:         domain.EventUpdate{Timezone: &badTZ},
			wantErr:     true,
			wantInvalid: true,
		},
		{
			name:        "non-positive drip days",
			eventID:     "ev-1",
			ownerID:     "user-1",
			upd:         domain.EventUpdate{DripDaysBefore: &zeroDays},
			wantErr:     true,
			wantInvalid: true,
		},
		{
			name:        "bad drip start time",
			eventID:     "ev-1",
			ownerID:     "user-1",
			upd:         domain.EventUpdate{DripStartTime: &badStartTime},
			wantErr:     true,
			wantInvalid: true,
		},
		{
			name:         "event not found",
			eventID:      "ev-missing",
			ownerID:      "user-1",
			upd:          domain.EventUpdate{Description: &desc},
			wantErr:      true,
			wantNotFound: true,
		},
		{
			name:          "forbidden not owner",
			eventID:       "ev-1",
			ownerID:       "user-2",
			upd:           domain.EventUpdate{Description: &desc},
			wantErr:       true,
			wantForbidden: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eventRepo := newFakeEventRepo()
			require.NoError(t, eventRepo.Create(ctx, &domain.Event{Name: "GopherConf", OwnerID: "user-1", Timezone: "UTC"}))
			svc := NewEventService(eventRepo, newFakeSpeakerRepo(), timeout)

			got, err := svc.UpdateEvent(ctx, tt.eventID, tt.ownerID, tt.upd)
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, got)
				if tt.wantNotFound {
					require.True(t, errors.Is(err, domain.ErrNotFound))
				}
				if tt.wantForbidden {
					require.True(t, errors.Is(err, domain.ErrForbidden))
				}
				if tt.wantInvalid {
					require.True(t, errors.Is(err, domain.ErrInvalidInput))
				}
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)
			if tt.assert != nil {
				tt.assert(t, got)
			}
		})
	}
}

func TestEventService_DeleteEvent(t *testing.T) {
	ctx := context.Background()
	timeout := 5 * time.Second

	eventRepo := newFakeEventRepo()
	require.NoError(t, eventRepo.Create(ctx, &domain.Event{Name: "GopherConf", OwnerID: "user-1"}))
	svc := NewEventService(eventRepo, newFakeSpeakerRepo(), timeout)

	err := svc.DeleteEvent(ctx, "ev-1", "user-2")
	require.True(t, errors.Is(err, domain.ErrForbidden))

	err = svc.DeleteEvent(ctx, "ev-missing", "user-1")
	require.True(t, errors.Is(err, domain.ErrNotFound))

	require.NoError(t, svc.DeleteEvent(ctx, "ev-1", "user-1"))
	_, ok := eventRepo.byID["ev-1"]
	assert.False(t, ok)
}

func TestEventService_ListEventsByOwner(t *testing.T) {
	ctx := context.Background()
	timeout := 5 * time.Second

	eventRepo := newFakeEventRepo()
	now := time.Now()
	require.NoError(t, eventRepo.Create(ctx, &domain.Event{Name: "Older", OwnerID: "user-1", CreatedAt: now.Add(-time.Hour)}))
	require.NoError(t, eventRepo.Create(ctx, &domain.Event{Name: "Newer", OwnerID: "user-1", CreatedAt: now}))
	require.NoError(t, eventRepo.Create(ctx, &domain.Event{Name: "Other", OwnerID: "user-2", CreatedAt: now}))
	svc := NewEventService(eventRepo, newFakeSpeakerRepo(), timeout)

	events, err := svc.ListEventsByOwner(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Newer", events[0].Name)
	assert.Equal(t, "Older", events[1].Name)

	events, err = svc.ListEventsByOwner(ctx, "user-3")
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}
