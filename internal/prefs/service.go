package prefs

import (
	"context"
	"encoding/json"
	"fmt"
)

// Service: чтение и сохранение профиля и настроек поверх Store.
type Service struct {
	store Store
}

func NewService(store Store) *Service { return &Service{store: store} }

// Profile: если профиль ещё не сохраняли, возвращается профиль по умолчанию.
func (s *Service) Profile(ctx context.Context) (Profile, error) {
	raw, ok, err := s.store.Get(ctx, KeyProfile)
	if err != nil || !ok {
		return DefaultProfile(), err
	}
	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return DefaultProfile(), fmt.Errorf("decode %s: %w", KeyProfile, err)
	}
	return p, nil
}

func (s *Service) SaveProfile(ctx context.Context, p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return s.put(ctx, KeyProfile, p)
}

func (s *Service) Settings(ctx context.Context) (Settings, error) {
	raw, ok, err := s.store.Get(ctx, KeySettings)
	if err != nil || !ok {
		return DefaultSettings(), err
	}
	var st storedSettings
	if err := json.Unmarshal(raw, &st); err != nil {
		return DefaultSettings(), fmt.Errorf("decode %s: %w", KeySettings, err)
	}
	return st.settings(), nil
}

func (s *Service) SaveSettings(ctx context.Context, st Settings) error {
	if err := st.Validate(); err != nil {
		return err
	}
	return s.put(ctx, KeySettings, st)
}

// Watch передаёт изменения профиля и настроек (в том числе из других процессов).
func (s *Service) Watch(ctx context.Context, fn func(key string)) error {
	return s.store.Watch(ctx, fn)
}

func (s *Service) put(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.store.Put(ctx, key, raw)
}
