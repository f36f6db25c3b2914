package application

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/oksasatya/gym-backend/internal/domain/entity"
	"github.com/oksasatya/gym-backend/internal/domain/repository"
	"github.com/oksasatya/gym-backend/pkg/mailer"
)

// memUsers mirrors the conditional-write semantics of the postgres repository.
type memUsers struct {
	mu     sync.Mutex
	byID   map[string]*entity.User
	seq    int
	err    error // returned by every call when set
	casErr error // returned by UpdatePassword only
}

func newMemUsers() *memUsers { return &memUsers{byID: map[string]*entity.User{}} }

func cloneUser(u *entity.User) *entity.User {
	c := *u
	if u.ResetToken != nil {
		t := *u.ResetToken
		c.ResetToken = &t
	}
	if u.TokenExpiry != nil {
		e := *u.TokenExpiry
		c.TokenExpiry = &e
	}
	return &c
}

func (m *memUsers) findEmail(email string) *entity.User {
	for _, u := range m.byID {
		if u.Email == email {
			return u
		}
	}
	return nil
}

func (m *memUsers) put(u *entity.User) *entity.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.ID == "" {
		m.seq++
		u.ID = fmt.Sprintf("user-%d", m.seq)
	}
	m.byID[u.ID] = cloneUser(u)
	return u
}

func (m *memUsers) get(id string) *entity.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		return cloneUser(u)
	}
	return nil
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if m.findEmail(u.Email) != nil {
		return repository.ErrDuplicate
	}
	m.seq++
	u.ID = fmt.Sprintf("user-%d", m.seq)
	m.byID[u.ID] = cloneUser(u)
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(u), nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u := m.findEmail(email)
	if u == nil {
		return nil, repository.ErrNotFound
	}
	return cloneUser(u), nil
}

func (m *memUsers) ListByPassword(_ context.Context, password string) ([]*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []*entity.User{}
	for _, u := range m.byID {
		if u.Password == password {
			out = append(out, cloneUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memUsers) UpdatePassword(_ context.Context, id, currentHash, newHash string, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	if m.casErr != nil {
		return false, m.casErr
	}
	u, ok := m.byID[id]
	if !ok || u.Password != currentHash {
		return false, nil
	}
	u.Password, u.UpdatedAt = newHash, at
	return true, nil
}

func (m *memUsers) UpdateAvatar(_ context.Context, id, avatarURL string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	u, ok := m.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.AvatarURL, u.UpdatedAt = avatarURL, at
	return nil
}

func (m *memUsers) SetResetToken(_ context.Context, email, token string, expiry time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	u := m.findEmail(email)
	if u == nil {
		return false, nil
	}
	u.ResetToken, u.TokenExpiry = &token, &expiry
	return true, nil
}

func (m *memUsers) GetByResetToken(_ context.Context, email, token string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u := m.findEmail(email)
	if u == nil || u.ResetToken == nil || *u.ResetToken != token {
		return nil, repository.ErrNotFound
	}
	return cloneUser(u), nil
}

func (m *memUsers) ConsumeResetToken(_ context.Context, email, token, newHash string, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	u := m.findEmail(email)
	if u == nil || u.ResetToken == nil || *u.ResetToken != token || u.TokenExpiry == nil || u.TokenExpiry.Before(at) {
		return false, nil
	}
	u.Password, u.ResetToken, u.TokenExpiry, u.UpdatedAt = newHash, nil, nil, at
	return true, nil
}

// memEvents guards capacity with the same predicate as the SQL decrement.
type memEvents struct {
	mu     sync.Mutex
	byID   map[string]*entity.Event
	seq    int
	err    error
	decErr error
}

func newMemEvents(events ...*entity.Event) *memEvents {
	m := &memEvents{byID: map[string]*entity.Event{}}
	for _, e := range events {
		c := *e
		m.byID[e.ID] = &c
	}
	return m
}

func (m *memEvents) capacity(id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byID[id].NumOfParticipants
}

func (m *memEvents) Create(_ context.Context, e *entity.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.seq++
	e.ID = fmt.Sprintf("event-%d", m.seq)
	c := *e
	m.byID[e.ID] = &c
	return nil
}

func (m *memEvents) GetByID(_ context.Context, id string) (*entity.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	e, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *e
	return &c, nil
}

func (m *memEvents) List(_ context.Context) ([]*entity.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []*entity.Event{}
	for _, e := range m.byID {
		c := *e
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memEvents) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memEvents) DecrementSlot(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.decErr != nil {
		return false, m.decErr
	}
	e, ok := m.byID[id]
	if !ok || e.NumOfParticipants <= 0 {
		return false, nil
	}
	e.NumOfParticipants--
	return true, nil
}

// staleEvents serves a fixed snapshot on reads so a test can race the decrement.
type staleEvents struct {
	*memEvents
	snapshot entity.Event
}

func (s *staleEvents) GetByID(_ context.Context, _ string) (*entity.Event, error) {
	c := s.snapshot
	return &c, nil
}

type memRegistrations struct {
	mu   sync.Mutex
	rows []*entity.Registration
	err  error
}

func (m *memRegistrations) Append(_ context.Context, r *entity.Registration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	r.ID = fmt.Sprintf("reg-%d", len(m.rows)+1)
	c := *r
	m.rows = append(m.rows, &c)
	return nil
}

func (m *memRegistrations) ListByEvent(_ context.Context, eventID string) ([]*entity.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []*entity.Registration{}
	for _, r := range m.rows {
		if r.EventID == eventID {
			c := *r
			out = append(out, &c)
		}
	}
	return out, nil
}

func (m *memRegistrations) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

type recordingNotifier struct {
	mu   sync.Mutex
	msgs []mailer.Message
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, m mailer.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, m)
	return n.err
}

func (n *recordingNotifier) sent() []mailer.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]mailer.Message(nil), n.msgs...)
}

type fakeTokens struct{}

func (fakeTokens) GenerateAccessToken(userID string) (string, time.Time, error) {
	return "access-" + userID, time.Unix(0, 0).UTC(), nil
}

type fakeUploader struct {
	path, contentType string
	body              []byte
	err               error
}

func (f *fakeUploader) Upload(_ context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.path, f.contentType, f.body = objectPath, contentType, b
	return "https://storage.googleapis.com/avatars-bucket/" + objectPath, nil
}

type fakeIndex struct {
	indexed []string
	removed []string
	hits    []*entity.Event
	err     error
}

func (f *fakeIndex) Index(_ context.Context, e *entity.Event) error {
	f.indexed = append(f.indexed, e.ID)
	return f.err
}

func (f *fakeIndex) Remove(_ context.Context, id string) error {
	f.removed = append(f.removed, id)
	return f.err
}

func (f *fakeIndex) Search(_ context.Context, _ string, _ int) ([]*entity.Event, error) {
	return f.hits, f.err
}

type memFeedback struct {
	rows []*entity.Feedback
	err  error
}

func (m *memFeedback) Create(_ context.Context, f *entity.Feedback) error {
	if m.err != nil {
		return m.err
	}
	f.ID = fmt.Sprintf("fb-%d", len(m.rows)+1)
	m.rows = append(m.rows, f)
	return nil
}

func (m *memFeedback) List(_ context.Context) ([]*entity.Feedback, error) { return m.rows, m.err }

type memContacts struct {
	rows []*entity.ContactMessage
	err  error
}

func (m *memContacts) Create(_ context.Context, c *entity.ContactMessage) error {
	if m.err != nil {
		return m.err
	}
	c.ID = fmt.Sprintf("msg-%d", len(m.rows)+1)
	m.rows = append(m.rows, c)
	return nil
}

func (m *memContacts) List(_ context.Context) ([]*entity.ContactMessage, error) { return m.rows, m.err }

type memPayments struct {
	rows []*entity.Payment
	err  error
}

func (m *memPayments) Create(_ context.Context, p *entity.Payment) error {
	if m.err != nil {
		return m.err
	}
	m.rows = append(m.rows, p)
	return nil
}

type fakeCheckout struct {
	req CheckoutRequest
	err error
}

func (f *fakeCheckout) CreateCheckout(_ context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &CheckoutSession{ID: "cs_test_1", URL: "https://checkout.stripe.com/c/pay/cs_test_1"}, nil
}

var (
	_ repository.UserRepository         = (*memUsers)(nil)
	_ repository.EventRepository        = (*memEvents)(nil)
	_ repository.RegistrationRepository = (*memRegistrations)(nil)
	_ repository.FeedbackRepository     = (*memFeedback)(nil)
	_ repository.ContactRepository      = (*memContacts)(nil)
	_ repository.PaymentRepository      = (*memPayments)(nil)
	_ EventIndex                        = (*fakeIndex)(nil)
	_ AvatarUploader                    = (*fakeUploader)(nil)
	_ CheckoutCreator                   = (*fakeCheckout)(nil)
)
