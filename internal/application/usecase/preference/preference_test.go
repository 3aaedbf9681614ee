package preference

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/budget-tracker/insights/internal/domain/entity"
	domainerror "github.com/budget-tracker/insights/internal/domain/error"
)

type memoryStore struct {
	mu     sync.Mutex
	items  map[string]*entity.Preference
	setErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{items: map[string]*entity.Preference{}}
}

func storeKey(id string, key entity.PreferenceKey) string {
	return id + "/" + string(key)
}

func (s *memoryStore) Get(_ context.Context, session *entity.Session, key entity.PreferenceKey) (*entity.Preference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[storeKey(session.OwnerID(), key)]
	if !ok {
		return nil, domainerror.ErrPreferenceNotFound
	}
	return p, nil
}

func (s *memoryStore) Set(_ context.Context, p *entity.Preference) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	s.items[storeKey(p.OwnerID, p.Key)] = p
	return nil
}

func assertPreferenceCode(t *testing.T, err error, want domainerror.PreferenceErrorCode) {
	t.Helper()
	var prefErr *domainerror.PreferenceError
	if !errors.As(err, &prefErr) {
		t.Fatalf("expected PreferenceError, got %v", err)
	}
	if prefErr.Code != want {
		t.Errorf("expected code %s, got %s", want, prefErr.Code)
	}
}

func TestPreferenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	session := entity.NewGuestSession(time.Hour)
	set := NewSetPreferenceUseCase(store)
	get := NewGetPreferenceUseCase(store)

	if _, err := set.Execute(ctx, SetPreferenceInput{Session: session, Key: "selected_month", Value: "Mar"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := get.Execute(ctx, GetPreferenceInput{Session: session, Key: "selected_month"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Value != "Mar" {
		t.Errorf("expected Mar, got %s", out.Value)
	}

	t.Run("sessions are isolated", func(t *testing.T) {
		other := entity.NewGuestSession(time.Hour)
		_, err := get.Execute(ctx, GetPreferenceInput{Session: other, Key: "selected_month"})
		assertPreferenceCode(t, err, domainerror.ErrCodePreferenceNotFound)
	})

	t.Run("overwrite replaces value", func(t *testing.T) {
		if _, err := set.Execute(ctx, SetPreferenceInput{Session: session, Key: "selected_month", Value: "Apr"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out, _ := get.Execute(ctx, GetPreferenceInput{Session: session, Key: "selected_month"})
		if out.Value != "Apr" {
			t.Errorf("expected Apr, got %s", out.Value)
		}
	})
}

func TestSetPreferenceUseCase_Validation(t *testing.T) {
	ctx := context.Background()
	session := entity.NewGuestSession(time.Hour)

	tests := []struct {
		name  string
		key   string
		value string
		code  domainerror.PreferenceErrorCode
	}{
		{name: "unknown key", key: "theme", value: "dark", code: domainerror.ErrCodeUnknownPreferenceKey},
		{name: "value too long", key: "selected_category", value: strings.Repeat("x", MaxValueLength+1), code: domainerror.ErrCodePreferenceValueTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSetPreferenceUseCase(newMemoryStore()).Execute(ctx, SetPreferenceInput{Session: session, Key: tt.key, Value: tt.value})
			assertPreferenceCode(t, err, tt.code)
		})
	}

	t.Run("store failure", func(t *testing.T) {
		store := newMemoryStore()
		store.setErr = errors.New("connection reset")
		_, err := NewSetPreferenceUseCase(store).Execute(ctx, SetPreferenceInput{Session: session, Key: "chart_view", Value: "bar"})
		assertPreferenceCode(t, err, domainerror.ErrCodePreferenceStoreFailure)
	})
}
