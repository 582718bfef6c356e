package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
	"github.com/pretest-uz/PreTest-DashboardService/internal/infra/storage/sessionstore"
)

// maxTouchInterval верхняя граница интервала между отметками активности одной сессии
const maxTouchInterval = time.Minute

// Service типизированный доступ к клиентскому состоянию браузерных сессий
type Service struct {
	store   Store
	metrics Metrics
	logger  Logger
	ttl     time.Duration
	now     func() time.Time

	touchEvery time.Duration
	touchMu    sync.Mutex
	touched    map[string]time.Time
}

// NewService создает новый экземпляр сервиса сессий
func NewService(store Store, metrics Metrics, logger Logger, ttl time.Duration) *Service {
	touchEvery := ttl / 10
	if touchEvery <= 0 || touchEvery > maxTouchInterval {
		touchEvery = maxTouchInterval
	}

	return &Service{
		store:      store,
		metrics:    metrics,
		logger:     logger,
		ttl:        ttl,
		now:        time.Now,
		touchEvery: touchEvery,
		touched:    make(map[string]time.Time),
	}
}

// NewID генерирует идентификатор новой сессии
func NewID() string {
	return uuid.NewString()
}

// IsValidID проверяет, что идентификатор из cookie похож на выданный сервисом
func IsValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Bind возвращает состояние конкретной сессии
func (s *Service) Bind(sessionID string) *Session {
	return &Session{id: sessionID, svc: s}
}

// RunJanitor периодически удаляет сессии, неактивные дольше TTL; блокируется до отмены ctx
func (s *Service) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Cleanup(ctx)
		}
	}
}

// Touch отмечает сессию активной, TTL отсчитывается от последнего запроса, а не от последней записи
// В хранилище пишется не чаще touchEvery на сессию
func (s *Service) Touch(ctx context.Context, sessionID string) error {
	now := s.now()

	s.touchMu.Lock()
	if last, ok := s.touched[sessionID]; ok && now.Sub(last) < s.touchEvery {
		s.touchMu.Unlock()
		return nil
	}
	s.touched[sessionID] = now
	s.touchMu.Unlock()

	err := s.store.Touch(ctx, sessionID, now)
	s.observe("touch", err)
	if err != nil {
		// следующий запрос попробует снова
		s.touchMu.Lock()
		delete(s.touched, sessionID)
		s.touchMu.Unlock()
		return fmt.Errorf("%w: touch: %v", ErrInternal, err)
	}
	return nil
}

// pruneTouched забывает отметки старше touchEvery, они всё равно не сдерживают запись
func (s *Service) pruneTouched(now time.Time) {
	s.touchMu.Lock()
	defer s.touchMu.Unlock()

	for sessionID, last := range s.touched {
		if now.Sub(last) >= s.touchEvery {
			delete(s.touched, sessionID)
		}
	}
}

// Cleanup один проход очистки просроченных сессий
func (s *Service) Cleanup(ctx context.Context) {
	s.pruneTouched(s.now())

	deleted, err := s.store.DeleteExpired(ctx, s.now().Add(-s.ttl))
	if err != nil {
		s.observe("delete_expired", err)
		s.logger.Error("SessionJanitor: failed to delete expired sessions: %v", err)
		return
	}

	s.observe("delete_expired", nil)
	if deleted > 0 {
		s.logger.Info("SessionJanitor: deleted %d expired session values", deleted)
	}
}

func (s *Service) observe(operation string, err error) {
	if s.metrics == nil {
		return
	}

	result := "ok"
	switch {
	case errors.Is(err, sessionstore.ErrNotFound):
		result = "miss"
	case err != nil:
		result = "error"
	}
	s.metrics.ObserveSessionStore(operation, result)
}

func (s *Service) get(ctx context.Context, sessionID, key string) (string, bool, error) {
	value, err := s.store.Get(ctx, sessionID, key)
	s.observe("get", err)

	if errors.Is(err, sessionstore.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: get %s: %v", ErrInternal, key, err)
	}

	// чтение тоже активность: иначе janitor удалит сессию, в которую только читают
	if err := s.Touch(ctx, sessionID); err != nil {
		s.logger.Warn("Session: failed to mark session active: %v", err)
	}
	return value, true, nil
}

func (s *Service) set(ctx context.Context, sessionID, key, value string) error {
	err := s.store.Set(ctx, sessionID, key, value)
	s.observe("set", err)
	if err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrInternal, key, err)
	}
	return nil
}

func (s *Service) clear(ctx context.Context, sessionID string, keys ...string) error {
	err := s.store.Clear(ctx, sessionID, keys...)
	s.observe("clear", err)
	if err != nil {
		return fmt.Errorf("%w: clear: %v", ErrInternal, err)
	}
	return nil
}

// getJSON читает JSON-значение; битое значение удаляется и считается отсутствующим
func (s *Service) getJSON(ctx context.Context, sessionID, key string, out interface{}) (bool, error) {
	raw, ok, err := s.get(ctx, sessionID, key)
	if err != nil || !ok {
		return false, err
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.logger.Warn("Session: corrupted value for key=%s, dropping: %v", key, err)
		if err := s.clear(ctx, sessionID, key); err != nil {
			return false, err
		}
		return false, nil
	}
	return true, nil
}

func (s *Service) setJSON(ctx context.Context, sessionID, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrInternal, key, err)
	}
	return s.set(ctx, sessionID, key, string(raw))
}

// Session клиентское состояние одной браузерной сессии
// Реализует хранилище токенов для клиента PreTest API
type Session struct {
	id  string
	svc *Service
}

// ID идентификатор сессии
func (s *Session) ID() string {
	return s.id
}

// AccessToken возвращает access-токен или пустую строку
func (s *Session) AccessToken(ctx context.Context) (string, error) {
	token, _, err := s.svc.get(ctx, s.id, domain.KeyAccessToken)
	return token, err
}

// RefreshToken возвращает refresh-токен или пустую строку
func (s *Session) RefreshToken(ctx context.Context) (string, error) {
	token, _, err := s.svc.get(ctx, s.id, domain.KeyRefreshToken)
	return token, err
}

// SetAccessToken сохраняет обновлённый access-токен
func (s *Session) SetAccessToken(ctx context.Context, token string) error {
	return s.svc.set(ctx, s.id, domain.KeyAccessToken, token)
}

// SetTokens сохраняет пару токенов после логина или верификации
func (s *Session) SetTokens(ctx context.Context, pair domain.TokenPair) error {
	if err := s.svc.set(ctx, s.id, domain.KeyAccessToken, pair.Access); err != nil {
		return err
	}
	return s.svc.set(ctx, s.id, domain.KeyRefreshToken, pair.Refresh)
}

// ClearAuth удаляет accessToken, refreshToken и user; черновик бронирования сохраняется
func (s *Session) ClearAuth(ctx context.Context) error {
	return s.svc.clear(ctx, s.id, domain.AuthKeys...)
}

// IsAuthenticated true, если в сессии есть access-токен
func (s *Session) IsAuthenticated(ctx context.Context) (bool, error) {
	token, err := s.AccessToken(ctx)
	return token != "", err
}

// User возвращает закэшированный профиль или nil
func (s *Session) User(ctx context.Context) (*domain.User, error) {
	var user domain.User
	ok, err := s.svc.getJSON(ctx, s.id, domain.KeyUser, &user)
	if err != nil || !ok {
		return nil, err
	}
	return &user, nil
}

// SetUser кэширует профиль пользователя
func (s *Session) SetUser(ctx context.Context, user *domain.User) error {
	return s.svc.setJSON(ctx, s.id, domain.KeyUser, user)
}

// PendingBooking возвращает черновик бронирования или nil
func (s *Session) PendingBooking(ctx context.Context) (*domain.PendingBooking, error) {
	var draft domain.PendingBooking
	ok, err := s.svc.getJSON(ctx, s.id, domain.KeyPendingBooking, &draft)
	if err != nil || !ok {
		return nil, err
	}
	return &draft, nil
}

// SetPendingBooking сохраняет черновик бронирования до входа пользователя
func (s *Session) SetPendingBooking(ctx context.Context, draft *domain.PendingBooking) error {
	return s.svc.setJSON(ctx, s.id, domain.KeyPendingBooking, draft)
}

// ClearPendingBooking удаляет черновик бронирования
func (s *Session) ClearPendingBooking(ctx context.Context) error {
	return s.svc.clear(ctx, s.id, domain.KeyPendingBooking)
}

// Wizard возвращает сохранённое состояние мастера или nil
func (s *Session) Wizard(ctx context.Context) (*domain.WizardState, error) {
	var state domain.WizardState
	ok, err := s.svc.getJSON(ctx, s.id, domain.KeyBookingWizard, &state)
	if err != nil || !ok {
		return nil, err
	}
	if !state.Step.IsValid() {
		return nil, nil
	}
	return &state, nil
}

// SaveWizard сохраняет состояние мастера
func (s *Session) SaveWizard(ctx context.Context, state *domain.WizardState) error {
	return s.svc.setJSON(ctx, s.id, domain.KeyBookingWizard, state)
}

// ClearWizard удаляет состояние мастера
func (s *Session) ClearWizard(ctx context.Context) error {
	return s.svc.clear(ctx, s.id, domain.KeyBookingWizard)
}

type sessionKey struct{}

// WithSession кладёт сессию в контекст запроса
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

// FromContext возвращает сессию из контекста запроса
func FromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(sessionKey{}).(*Session)
	return sess, ok && sess != nil
}
