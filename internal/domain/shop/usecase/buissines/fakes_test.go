package buissines

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/deps"
	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/dto"
	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/entities"
	shoperrors "github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/errors"
	pkgerrors "github.com/Alokchauhan110/Premium-Plan/pkg/errors"
)

const (
	testAdminID = int64(1001)
	testBuyerID = int64(2002)
)

var (
	testAdmin = dto.Actor{ID: testAdminID, DisplayName: "Admin", Handle: "boss"}
	testBuyer = dto.Actor{ID: testBuyerID, DisplayName: "Buyer", Handle: "buyer"}
)

// store is an in-memory implementation of every repository
type store struct {
	mu            sync.Mutex
	users         map[int64]entities.User
	channels      []entities.Channel
	plan          *entities.AllAccessPlan
	subscriptions []entities.Subscription
	payments      map[string]*entities.PendingPayment
	sessions      map[int64]entities.Session
}

func newStore() *store {
	return &store{
		users:    make(map[int64]entities.User),
		payments: make(map[string]*entities.PendingPayment),
		sessions: make(map[int64]entities.Session),
	}
}

func (s *store) repositories() *deps.Repositories {
	return &deps.Repositories{
		Users:         (*userRepo)(s),
		Channels:      (*channelRepo)(s),
		Plans:         (*planRepo)(s),
		Subscriptions: (*subscriptionRepo)(s),
		Payments:      (*paymentRepo)(s),
		Sessions:      (*sessionRepo)(s),
	}
}

func (s *store) subscriptionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscriptions)
}

func (s *store) channelCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.channels)
}

type userRepo store

func (r *userRepo) Upsert(_ context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.users[user.ID]; ok {
		user.JoinedAt = existing.JoinedAt
	}
	r.users[user.ID] = *user
	return nil
}

func (r *userRepo) GetByIDs(_ context.Context, ids []int64) (map[int64]entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[int64]entities.User)
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

type channelRepo store

func (r *channelRepo) Create(_ context.Context, ch *entities.Channel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.channels {
		if existing.Key == ch.Key {
			return fmt.Errorf("%w: %s", shoperrors.ErrChannelKeyTaken, ch.Key)
		}
	}
	ch.ID = uint(len(r.channels) + 1)
	r.channels = append(r.channels, *ch)
	return nil
}

func (r *channelRepo) ListActive(_ context.Context) ([]entities.Channel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.Channel
	for _, ch := range r.channels {
		if ch.Active {
			out = append(out, ch)
		}
	}
	return out, nil
}

func (r *channelRepo) ListAll(_ context.Context) ([]entities.Channel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entities.Channel(nil), r.channels...), nil
}

func (r *channelRepo) GetByKey(_ context.Context, key string) (*entities.Channel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ch := range r.channels {
		if ch.Key == key {
			c := ch
			return &c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", shoperrors.ErrChannelNotFound, key)
}

func (r *channelRepo) SetActive(_ context.Context, key string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.channels {
		if r.channels[i].Key == key {
			r.channels[i].Active = active
			return nil
		}
	}
	return fmt.Errorf("%w: %s", shoperrors.ErrChannelNotFound, key)
}

type planRepo store

func (r *planRepo) EnsureSeeded(_ context.Context, plan *entities.AllAccessPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.plan != nil {
		*plan = *r.plan
		return nil
	}
	p := *plan
	p.ID = 1
	r.plan = &p
	return nil
}

func (r *planRepo) Get(_ context.Context) (*entities.AllAccessPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.plan == nil {
		return nil, shoperrors.ErrPlanNotFound
	}
	p := *r.plan
	return &p, nil
}

func (r *planRepo) SetActive(_ context.Context, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.plan == nil {
		return shoperrors.ErrPlanNotFound
	}
	r.plan.Active = active
	return nil
}

func (r *planRepo) SetPrice(_ context.Context, price float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.plan == nil {
		return shoperrors.ErrPlanNotFound
	}
	r.plan.Price = price
	return nil
}

type subscriptionRepo store

func (r *subscriptionRepo) ListByUser(_ context.Context, userID int64) ([]entities.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.Subscription
	for _, s := range r.subscriptions {
		if s.UserID == userID && s.Active {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EndAt.After(out[j].EndAt) })
	return out, nil
}

func (r *subscriptionRepo) GetByPaymentID(_ context.Context, paymentID string) (*entities.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.subscriptions {
		if s.PaymentID == paymentID {
			sub := s
			return &sub, nil
		}
	}
	return nil, pkgerrors.NewNotFoundError("subscription not found")
}

func (r *subscriptionRepo) MarkInvoiceSent(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.subscriptions {
		if r.subscriptions[i].ID == id {
			r.subscriptions[i].InvoiceSent = true
			return nil
		}
	}
	return pkgerrors.NewNotFoundError("subscription not found")
}

type paymentRepo store

func (r *paymentRepo) Create(_ context.Context, p *entities.PendingPayment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.payments[p.ID] = &cp
	return nil
}

func (r *paymentRepo) GetByID(_ context.Context, id string) (*entities.PendingPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", shoperrors.ErrPaymentNotFound, id)
	}
	cp := *p
	return &cp, nil
}

func (r *paymentRepo) FindByUserPlan(_ context.Context, userID int64, planKey string, status entities.PaymentStatus) ([]entities.PendingPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.PendingPayment
	for _, p := range r.payments {
		if p.UserID == userID && p.PlanKey == planKey && p.Status == status {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *paymentRepo) ListByStatus(_ context.Context, status entities.PaymentStatus) ([]entities.PendingPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.PendingPayment
	for _, p := range r.payments {
		if p.Status == status {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *paymentRepo) ListByUser(_ context.Context, userID int64, limit int) ([]entities.PendingPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.PendingPayment
	for _, p := range r.payments {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *paymentRepo) MarkSubmitted(_ context.Context, id string, proof dto.Proof, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok || p.Status != entities.PaymentStatusPending {
		return fmt.Errorf("%w: %s", shoperrors.ErrNoPendingCheckout, id)
	}
	p.Status = entities.PaymentStatusSubmitted
	p.ProofReference = proof.FileID
	p.ProofKind = proof.Kind
	p.SubmittedAt = &at
	return nil
}

func (r *paymentRepo) SetAmount(_ context.Context, id string, amount float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.payments[id]; ok && p.Status == entities.PaymentStatusPending {
		p.Amount = amount
	}
	return nil
}

func (r *paymentRepo) SetArchiveKey(_ context.Context, id, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.payments[id]; ok {
		p.ProofArchiveKey = key
	}
	return nil
}

func (r *paymentRepo) Approve(_ context.Context, id string, adminID int64, at time.Time, sub *entities.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok || p.Status != entities.PaymentStatusSubmitted {
		return fmt.Errorf("%w: %s", shoperrors.ErrPaymentNotSubmitted, id)
	}
	p.Status = entities.PaymentStatusApproved
	p.DecidedAt = &at
	p.DecidedBy = &adminID

	sub.PaymentID = id
	sub.ID = uint(len(r.subscriptions) + 1)
	r.subscriptions = append(r.subscriptions, *sub)
	return nil
}

func (r *paymentRepo) Reject(_ context.Context, id string, adminID int64, at time.Time, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok || p.Status != entities.PaymentStatusSubmitted {
		return fmt.Errorf("%w: %s", shoperrors.ErrPaymentNotSubmitted, id)
	}
	p.Status = entities.PaymentStatusRejected
	p.DecidedAt = &at
	p.DecidedBy = &adminID
	p.RejectReason = reason
	return nil
}

type sessionRepo store

func (r *sessionRepo) Get(_ context.Context, userID int64) (*entities.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[userID]; ok {
		return &s, nil
	}
	return &entities.Session{UserID: userID, OnboardingState: entities.OnboardingIdle}, nil
}

func (r *sessionRepo) Save(_ context.Context, session *entities.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.UserID] = *session
	return nil
}

type sentMessage struct {
	chatID   int64
	text     string
	fileRef  string
	kind     string
	keyboard *dto.Keyboard
}

type mockMessenger struct {
	mu      sync.Mutex
	sent    []sentMessage
	failFor map[int64]error
}

func (m *mockMessenger) record(chatID int64, msg sentMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.failFor[chatID]; ok {
		return err
	}
	msg.chatID = chatID
	m.sent = append(m.sent, msg)
	return nil
}

func (m *mockMessenger) SendMessage(_ context.Context, chatID int64, text string, kb *dto.Keyboard) error {
	return m.record(chatID, sentMessage{text: text, kind: "message", keyboard: kb})
}

func (m *mockMessenger) EditMessage(_ context.Context, chatID int64, _ int, text string, kb *dto.Keyboard) error {
	return m.record(chatID, sentMessage{text: text, kind: "edit", keyboard: kb})
}

func (m *mockMessenger) SendPhoto(_ context.Context, chatID int64, fileRef, caption string) error {
	return m.record(chatID, sentMessage{text: caption, fileRef: fileRef, kind: "photo"})
}

func (m *mockMessenger) SendDocument(_ context.Context, chatID int64, fileRef, caption string) error {
	return m.record(chatID, sentMessage{text: caption, fileRef: fileRef, kind: "document"})
}

func (m *mockMessenger) AnswerCallback(_ context.Context, _ string) error {
	return nil
}

func (m *mockMessenger) to(chatID int64) []sentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []sentMessage
	for _, s := range m.sent {
		if s.chatID == chatID {
			out = append(out, s)
		}
	}
	return out
}

type mockAccess struct {
	mu         sync.Mutex
	status     deps.MemberStatus
	statusErr  error
	inviteErr  error
	inviteLink string
	grantErrs  map[string]error
	granted    []string
	attempted  []string
}

func newMockAccess() *mockAccess {
	return &mockAccess{
		status:     deps.MemberStatusAdministrator,
		inviteLink: "https://t.me/+invite",
		grantErrs:  make(map[string]error),
	}
}

func (m *mockAccess) GetMembershipStatus(_ context.Context, _ string) (deps.MemberStatus, error) {
	return m.status, m.statusErr
}

func (m *mockAccess) CreateInviteLink(_ context.Context, channelRef string) (string, error) {
	if m.inviteErr != nil {
		return "", m.inviteErr
	}
	return m.inviteLink + channelRef, nil
}

func (m *mockAccess) GrantMembership(_ context.Context, channelRef string, _ int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempted = append(m.attempted, channelRef)
	if err := m.grantErrs[channelRef]; err != nil {
		return err
	}
	m.granted = append(m.granted, channelRef)
	return nil
}

type mockEvents struct {
	mu     sync.Mutex
	events []dto.ShopEvent
}

func (m *mockEvents) Publish(_ context.Context, e dto.ShopEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
	return nil
}

func (m *mockEvents) types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, e := range m.events {
		out = append(out, e.Type)
	}
	return out
}

type mockQueue struct {
	err      error
	enqueued []dto.ProofNotification
}

func (m *mockQueue) EnqueueProofNotification(_ context.Context, n dto.ProofNotification) error {
	if m.err != nil {
		return m.err
	}
	m.enqueued = append(m.enqueued, n)
	return nil
}

type mockMetrics struct {
	mu            sync.Mutex
	checkouts     int
	proofs        int
	approvals     int
	rejections    int
	grantFailures []string
	created       int
}

func (m *mockMetrics) RecordCheckout(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkouts++
}

func (m *mockMetrics) RecordProofSubmitted(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.proofs++
}

func (m *mockMetrics) RecordApproval(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.approvals++
}

func (m *mockMetrics) RecordRejection(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejections++
}

func (m *mockMetrics) RecordChannelCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created++
}

func (m *mockMetrics) RecordGrantFailure(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.grantFailures = append(m.grantFailures, key)
}

type mockFiles struct{ err error }

func (m *mockFiles) Download(_ context.Context, fileID string) (*dto.File, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &dto.File{Name: fileID + ".jpg", ContentType: "image/jpeg", Data: []byte("img")}, nil
}

type mockArchive struct {
	keys map[string]string
	err  error
}

func (m *mockArchive) Archive(_ context.Context, paymentID string, _ *dto.File) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if m.keys == nil {
		m.keys = make(map[string]string)
	}
	key := "proofs/" + paymentID + ".jpg"
	m.keys[paymentID] = key
	return key, nil
}

// fixture wires a UseCase over in-memory fakes
type fixture struct {
	uc        *UseCase
	store     *store
	messenger *mockMessenger
	access    *mockAccess
	events    *mockEvents
	metrics   *mockMetrics
	now       time.Time
	ids       int
}

func newFixture() *fixture {
	f := &fixture{
		store:     newStore(),
		messenger: &mockMessenger{failFor: make(map[int64]error)},
		access:    newMockAccess(),
		events:    &mockEvents{},
		metrics:   &mockMetrics{},
		now:       time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	f.uc = NewUseCase(Dependencies{
		Repos:     f.store.repositories(),
		Messenger: f.messenger,
		Access:    f.access,
		Events:    f.events,
		Metrics:   f.metrics,
	}, Settings{
		AdminIDs:            []int64{testAdminID},
		AllAccessName:       "Server Premium",
		AllAccessPrice:      599,
		CurrencySymbol:      "₹",
		PaymentInstructions: "Pay to UPI shop@upi",
	}, zerolog.Nop())

	f.uc.now = func() time.Time { return f.now }
	f.uc.newID = func() string {
		f.ids++
		return fmt.Sprintf("pay-%d", f.ids)
	}
	return f
}

// addChannel drives the onboarding dialogue to completion
func (f *fixture) addChannel(ctx context.Context, name, price string, chatID int64) (*dto.Reply, error) {
	if _, err := f.uc.StartOnboarding(ctx, testAdmin); err != nil {
		return nil, err
	}
	steps := []dto.IncomingMessage{
		{Text: name},
		{Text: price},
		{Text: "skip"},
		{Forward: &dto.ForwardOrigin{Kind: dto.ForwardFromChannel, ChatID: chatID, Title: name}},
	}
	var reply *dto.Reply
	for _, step := range steps {
		var err error
		reply, err = f.uc.HandleDialogueInput(ctx, testAdmin, step)
		if err != nil {
			return nil, err
		}
	}
	return reply, nil
}

// buy runs checkout and proof submission, returning the payment id
func (f *fixture) buy(ctx context.Context, buyer dto.Actor, key string) (string, error) {
	if _, err := f.uc.Checkout(ctx, buyer, key); err != nil {
		return "", err
	}
	session, err := f.store.repositories().Sessions.Get(ctx, buyer.ID)
	if err != nil {
		return "", err
	}
	paymentID := session.PendingPaymentID
	if _, err := f.uc.SubmitProof(ctx, buyer, dto.Proof{FileID: "file-" + paymentID, Kind: entities.ProofKindPhoto}); err != nil {
		return "", err
	}
	return paymentID, nil
}

var errProvider = errors.New("bad request: not enough rights")
