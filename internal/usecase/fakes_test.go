package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/NasaVasa/stocky/internal/domain"
	"github.com/shopspring/decimal"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*domain.User)}
}

func (r *fakeUserRepo) addUser(telegramUserID int64, username string) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	user := &domain.User{ID: r.nextID, TelegramUserID: telegramUserID, Username: username}
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) GetByTelegramID(_ context.Context, telegramUserID int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.TelegramUserID == telegramUserID {
			copied := *user
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID uint) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	user.ID = r.nextID
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

type fakeAlertRepo struct {
	mu          sync.Mutex
	nextID      uint
	alerts      map[uint]*domain.Alert
	triggerErrs map[uint]error
	listErr     error
}

func newFakeAlertRepo() *fakeAlertRepo {
	return &fakeAlertRepo{alerts: make(map[uint]*domain.Alert), triggerErrs: make(map[uint]error)}
}

func (r *fakeAlertRepo) Create(_ context.Context, alert *domain.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	alert.ID = r.nextID
	copied := *alert
	r.alerts[alert.ID] = &copied
	return nil
}

func (r *fakeAlertRepo) ListPending(_ context.Context) ([]domain.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var pending []domain.Alert
	for id := uint(1); id <= r.nextID; id++ {
		alert, ok := r.alerts[id]
		if !ok || alert.Triggered {
			continue
		}
		if alert.Expired != nil && *alert.Expired {
			continue
		}
		pending = append(pending, *alert)
	}
	return pending, nil
}

func (r *fakeAlertRepo) ListByUser(_ context.Context, userID uint) ([]domain.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var owned []domain.Alert
	for id := uint(1); id <= r.nextID; id++ {
		if alert, ok := r.alerts[id]; ok && alert.UserID == userID {
			owned = append(owned, *alert)
		}
	}
	return owned, nil
}

func (r *fakeAlertRepo) SearchByOwner(_ context.Context, userID uint, term string) ([]domain.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	needle := strings.ToUpper(term)
	var matched []domain.Alert
	for id := uint(1); id <= r.nextID; id++ {
		alert, ok := r.alerts[id]
		if !ok || alert.UserID != userID {
			continue
		}
		if strings.Contains(alert.Ticker, needle) {
			matched = append(matched, *alert)
		}
	}
	return matched, nil
}

func (r *fakeAlertRepo) MarkTriggered(_ context.Context, alertID uint, when time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.triggerErrs[alertID]; ok {
		return err
	}
	alert, ok := r.alerts[alertID]
	if !ok || alert.Triggered {
		return domain.ErrNotFound
	}
	alert.Triggered = true
	stamp := when
	alert.TriggeredTime = &stamp
	alert.Expired = nil
	alert.ExpirationTime = nil
	return nil
}

func (r *fakeAlertRepo) MarkExpired(_ context.Context, alertID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	alert, ok := r.alerts[alertID]
	if !ok || alert.Triggered || alert.Expired == nil || *alert.Expired {
		return domain.ErrNotFound
	}
	expired := true
	alert.Expired = &expired
	return nil
}

func (r *fakeAlertRepo) Delete(_ context.Context, userID uint, alertID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	alert, ok := r.alerts[alertID]
	if !ok || alert.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.alerts, alertID)
	return nil
}

func (r *fakeAlertRepo) get(alertID uint) domain.Alert {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.alerts[alertID]
}

type fakePriceSource struct {
	mu     sync.Mutex
	prices map[string]decimal.Decimal
	errs   map[string]error
	calls  map[string]int
}

func newFakePriceSource() *fakePriceSource {
	return &fakePriceSource{
		prices: make(map[string]decimal.Decimal),
		errs:   make(map[string]error),
		calls:  make(map[string]int),
	}
}

func (s *fakePriceSource) CurrentPrice(_ context.Context, ticker string) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[ticker]++
	if err, ok := s.errs[ticker]; ok {
		return decimal.Decimal{}, err
	}
	price, ok := s.prices[ticker]
	if !ok {
		return decimal.Decimal{}, domain.ErrTickerNotFound
	}
	return price, nil
}

func (s *fakePriceSource) Quote(ctx context.Context, ticker string) (*domain.Quote, error) {
	price, err := s.CurrentPrice(ctx, ticker)
	if err != nil {
		return nil, err
	}
	return &domain.Quote{Ticker: ticker, Price: price, Currency: "USD"}, nil
}

func (s *fakePriceSource) callCount(ticker string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[ticker]
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *fakeNotifier) Notify(_ int64, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, text)
	return nil
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.messages)
}
