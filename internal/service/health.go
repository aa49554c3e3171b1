package service

import "context"

// Pinger is the slice of the repository the health service needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthService struct {
	store Pinger
}

func NewHealthService(store Pinger) *HealthService {
	return &HealthService{store: store}
}

// Ping reports whether the vitals store still answers.
func (s *HealthService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
