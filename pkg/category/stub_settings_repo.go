package category

import "context"

type StubSettingsRepo struct {
	data map[string]string
}

func NewStubSettingsRepo() *StubSettingsRepo {
	return &StubSettingsRepo{data: map[string]string{}}
}

func (s *StubSettingsRepo) Get(ctx context.Context, name string) (string, error) {
	value, ok := s.data[name]
	if !ok {
		return "", ErrSettingNotFound
	}
	return value, nil
}

func (s *StubSettingsRepo) Set(ctx context.Context, name string, value string) error {
	s.data[name] = value
	return nil
}

func (s *StubSettingsRepo) Cleanup() {
	s.data = map[string]string{}
}
