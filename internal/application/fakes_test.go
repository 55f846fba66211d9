package application

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/surershelf/task-manager-api/internal/domain/entity"
	"github.com/surershelf/task-manager-api/internal/domain/repository"
	"github.com/surershelf/task-manager-api/pkg/mailer"
)

// memStore mimics the postgres schema: unique emails, unique (activity, day),
// foreign keys and cascading deletes.
type memStore struct {
	mu         sync.Mutex
	users      map[string]entity.User
	activities map[string]entity.Activity
	progress   map[string]entity.Progress
	seq        int
}

func newMemStore() *memStore {
	return &memStore{
		users:      map[string]entity.User{},
		activities: map[string]entity.Activity{},
		progress:   map[string]entity.Progress{},
	}
}

func (m *memStore) tick() time.Time {
	m.seq++
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(m.seq) * time.Second)
}

type fakeUsers struct{ *memStore }
type fakeActivities struct{ *memStore }
type fakeProgress struct{ *memStore }

var (
	_ repository.UserRepository     = fakeUsers{}
	_ repository.ActivityRepository = fakeActivities{}
	_ repository.ProgressRepository = fakeProgress{}
)

func (f fakeUsers) Create(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.users {
		if o.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	u.CreatedAt = f.tick()
	u.UpdatedAt = u.CreatedAt
	f.users[u.ID] = *u
	return nil
}

func (f fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (f fakeUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			c := u
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f fakeUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	return err == nil, nil
}

func (f fakeUsers) ExistsByEmailExcept(_ context.Context, email, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email && u.ID != id {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeUsers) Update(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.users[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	for _, o := range f.users {
		if o.Email == u.Email && o.ID != u.ID {
			return repository.ErrDuplicate
		}
	}
	u.PasswordHash = cur.PasswordHash
	u.AvatarURL = cur.AvatarURL
	u.UpdatedAt = f.tick()
	f.users[u.ID] = *u
	return nil
}

func (f fakeUsers) UpdateAvatar(_ context.Context, id, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.AvatarURL = url
	f.users[id] = u
	return nil
}

func (f fakeUsers) UpdatePassword(_ context.Context, id, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = hash
	f.users[id] = u
	return nil
}

func (f fakeUsers) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.users, id)
	for aid, a := range f.activities {
		if a.UserID == id {
			delete(f.activities, aid)
			for pid, p := range f.progress {
				if p.ActivityID == aid {
					delete(f.progress, pid)
				}
			}
		}
	}
	return nil
}

func (f fakeActivities) Create(_ context.Context, a *entity.Activity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[a.UserID]; !ok {
		return repository.ErrMissingParent
	}
	a.CreatedAt = f.tick()
	a.UpdatedAt = a.CreatedAt
	f.activities[a.ID] = *a
	return nil
}

func (f fakeActivities) GetByIDAndUser(_ context.Context, id, userID string) (*entity.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.activities[id]
	if !ok || a.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (f fakeActivities) GetByID(_ context.Context, id string) (*entity.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.activities[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (f fakeActivities) filter(keep func(entity.Activity) bool) []entity.Activity {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []entity.Activity{}
	for _, a := range f.activities {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (f fakeActivities) ListActiveByUser(_ context.Context, userID string) ([]entity.Activity, error) {
	return f.filter(func(a entity.Activity) bool { return a.UserID == userID && a.Active }), nil
}

func (f fakeActivities) ListActiveByUserAndFrequency(_ context.Context, userID string, fr entity.Frequency) ([]entity.Activity, error) {
	return f.filter(func(a entity.Activity) bool { return a.UserID == userID && a.Active && a.Frequency == fr }), nil
}

func (f fakeActivities) FindSimilarActiveTitles(_ context.Context, userID, title string) ([]entity.Activity, error) {
	t := strings.ToLower(title)
	return f.filter(func(a entity.Activity) bool {
		o := strings.ToLower(a.Title)
		return a.UserID == userID && a.Active && (strings.Contains(o, t) || strings.Contains(t, o))
	}), nil
}

func (f fakeActivities) Update(_ context.Context, a *entity.Activity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.activities[a.ID]
	if !ok || cur.UserID != a.UserID {
		return repository.ErrNotFound
	}
	a.UpdatedAt = f.tick()
	f.activities[a.ID] = *a
	return nil
}

func (f fakeActivities) SetActive(_ context.Context, id, userID string, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.activities[id]
	if !ok || a.UserID != userID {
		return repository.ErrNotFound
	}
	a.Active = active
	f.activities[id] = a
	return nil
}

func (f fakeActivities) CountByUser(_ context.Context, userID string) (int, int, error) {
	all := f.filter(func(a entity.Activity) bool { return a.UserID == userID })
	active := 0
	for _, a := range all {
		if a.Active {
			active++
		}
	}
	return len(all), active, nil
}

func (f fakeProgress) Create(_ context.Context, p *entity.Progress) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.activities[p.ActivityID]; !ok {
		return repository.ErrMissingParent
	}
	for _, o := range f.progress {
		if o.ActivityID == p.ActivityID && o.FinishDate.Equal(p.FinishDate) {
			return repository.ErrDuplicate
		}
	}
	p.CreatedAt = f.tick()
	f.progress[p.ID] = *p
	return nil
}

func (f fakeProgress) ExistsForDate(_ context.Context, activityID string, day time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.progress {
		if o.ActivityID == activityID && o.FinishDate.Equal(day) {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeProgress) GetByID(_ context.Context, id string) (*entity.Progress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.progress[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (f fakeProgress) filter(keep func(entity.Progress, entity.Activity) bool) []entity.Progress {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []entity.Progress{}
	for _, p := range f.progress {
		a := f.activities[p.ActivityID]
		if keep(p, a) {
			p.ActivityTitle = a.Title
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FinishDate.After(out[j].FinishDate) })
	return out
}

func (f fakeProgress) ListByActivity(_ context.Context, activityID string) ([]entity.Progress, error) {
	return f.filter(func(p entity.Progress, _ entity.Activity) bool { return p.ActivityID == activityID }), nil
}

func (f fakeProgress) ListByUser(_ context.Context, userID string) ([]entity.Progress, error) {
	return f.filter(func(_ entity.Progress, a entity.Activity) bool { return a.UserID == userID }), nil
}

func (f fakeProgress) ListByUserBetween(_ context.Context, userID string, from, to time.Time) ([]entity.Progress, error) {
	return f.filter(func(p entity.Progress, a entity.Activity) bool {
		return a.UserID == userID && !p.FinishDate.Before(from) && !p.FinishDate.After(to)
	}), nil
}

func (f fakeProgress) LatestByActivity(ctx context.Context, activityID string) (*entity.Progress, error) {
	list, _ := f.ListByActivity(ctx, activityID)
	if len(list) == 0 {
		return nil, repository.ErrNotFound
	}
	return &list[0], nil
}

func (f fakeProgress) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.progress[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.progress, id)
	return nil
}

func (f fakeProgress) CountByUserAndStatus(_ context.Context, userID string) (int64, int64, error) {
	var fin, st int64
	for _, p := range f.filter(func(_ entity.Progress, a entity.Activity) bool { return a.UserID == userID }) {
		switch p.Status {
		case entity.StatusFinished:
			fin++
		case entity.StatusStarted:
			st++
		}
	}
	return fin, st, nil
}

// insertProgress bypasses the service to seed STARTED rows.
func (m *memStore) insertProgress(id, activityID string, day time.Time, st entity.Status) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.progress[id] = entity.Progress{ID: id, ActivityID: activityID, FinishDate: day, Status: st}
}

type fakeQueue struct {
	mu   sync.Mutex
	jobs []mailer.EmailJob
	err  error
}

func (q *fakeQueue) PublishJSON(_ context.Context, body any) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, body.(mailer.EmailJob))
	return nil
}

type fakeTokenStore struct {
	used map[string]bool
}

func (s *fakeTokenStore) Consume(_ context.Context, id string, _ time.Duration) (bool, error) {
	if s.used == nil {
		s.used = map[string]bool{}
	}
	if s.used[id] {
		return false, nil
	}
	s.used[id] = true
	return true, nil
}

type fakeAvatars struct {
	uploaded []string
	onUpload func()
}

func (a *fakeAvatars) Upload(_ context.Context, userID string, r io.Reader, filename, _ string) (string, error) {
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	if a.onUpload != nil {
		a.onUpload()
	}
	a.uploaded = append(a.uploaded, filename)
	return "https://storage.googleapis.com/bucket/avatars/" + userID + "/" + filename, nil
}

type cachedStats struct {
	gen   int64
	stats entity.CompletionStats
}

type fakeStatsCache struct {
	mu      sync.Mutex
	data    map[string]cachedStats
	gens    map[string]int64
	getErr  error
	deletes int
	// beforeSet runs once, just before the next Set stores its value
	beforeSet func()
}

func (c *fakeStatsCache) Get(_ context.Context, userID string) (*entity.CompletionStats, int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, 0, false, c.getErr
	}
	gen := c.gens[userID]
	e, ok := c.data[userID]
	if !ok || e.gen != gen {
		return nil, gen, false, nil
	}
	return &e.stats, gen, true, nil
}

func (c *fakeStatsCache) Set(_ context.Context, userID string, gen int64, s *entity.CompletionStats) error {
	c.mu.Lock()
	hook := c.beforeSet
	c.beforeSet = nil
	c.mu.Unlock()
	if hook != nil {
		hook()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.data == nil {
		c.data = map[string]cachedStats{}
	}
	c.data[userID] = cachedStats{gen: gen, stats: *s}
	return nil
}

func (c *fakeStatsCache) Invalidate(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens == nil {
		c.gens = map[string]int64{}
	}
	c.gens[userID]++
	c.deletes++
	return nil
}

// fresh reports whether a read for userID would be served from the cache.
func (c *fakeStatsCache) fresh(userID string) bool {
	_, _, ok, _ := c.Get(context.Background(), userID)
	return ok
}

type fakeIndex struct {
	docs map[string]entity.Activity
	err  error
}

func (x *fakeIndex) Index(_ context.Context, a *entity.Activity) error {
	if x.docs == nil {
		x.docs = map[string]entity.Activity{}
	}
	x.docs[a.ID] = *a
	return nil
}

func (x *fakeIndex) Search(_ context.Context, userID, q string, _ int) ([]string, error) {
	if x.err != nil {
		return nil, x.err
	}
	ids := []string{}
	for id, a := range x.docs {
		if a.UserID == userID && strings.Contains(strings.ToLower(a.Description+" "+a.Title), strings.ToLower(q)) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}
