package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"values-md/internal/domain"
)

// ExperimentStore guarda el estado observable de experimentos en curso.
// Toda entrada expira: el estado de un experimento nunca sobrevive su TTL,
// a diferencia del mapa global que crecía sin límite en versiones previas.
type ExperimentStore interface {
	Put(ctx context.Context, state domain.ExperimentState) error
	Get(ctx context.Context, experimentID string) (domain.ExperimentState, bool, error)
	List(ctx context.Context) ([]domain.ExperimentState, error)
}

type memoryExperimentStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]memoryExperimentEntry
}

type memoryExperimentEntry struct {
	state     domain.ExperimentState
	expiresAt time.Time
}

func NewMemoryExperimentStore(ttl time.Duration) ExperimentStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &memoryExperimentStore{
		ttl:   ttl,
		items: make(map[string]memoryExperimentEntry),
	}
}

func (s *memoryExperimentStore) Put(_ context.Context, state domain.ExperimentState) error {
	if strings.TrimSpace(state.ID) == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpired()
	s.items[state.ID] = memoryExperimentEntry{
		state:     state,
		expiresAt: time.Now().UTC().Add(s.ttl),
	}
	return nil
}

func (s *memoryExperimentStore) Get(_ context.Context, experimentID string) (domain.ExperimentState, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.items[experimentID]
	if !ok {
		return domain.ExperimentState{}, false, nil
	}
	if time.Now().UTC().After(entry.expiresAt) {
		delete(s.items, experimentID)
		return domain.ExperimentState{}, false, nil
	}
	return entry.state, true, nil
}

func (s *memoryExperimentStore) List(_ context.Context) ([]domain.ExperimentState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpired()
	states := make([]domain.ExperimentState, 0, len(s.items))
	for _, entry := range s.items {
		states = append(states, entry.state)
	}
	return states, nil
}

// evictExpired limpia entradas vencidas; caller debe tener el lock.
func (s *memoryExperimentStore) evictExpired() {
	now := time.Now().UTC()
	for id, entry := range s.items {
		if now.After(entry.expiresAt) {
			delete(s.items, id)
		}
	}
}

type redisExperimentStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisExperimentStore(client *redis.Client, ttl time.Duration) ExperimentStore {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &redisExperimentStore{
		client: client,
		ttl:    ttl,
		prefix: "experiment:state:",
	}
}

func (s *redisExperimentStore) Put(ctx context.Context, state domain.ExperimentState) error {
	if strings.TrimSpace(state.ID) == "" {
		return nil
	}
	payload, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.prefix+state.ID, payload, s.ttl).Err()
}

func (s *redisExperimentStore) Get(ctx context.Context, experimentID string) (domain.ExperimentState, bool, error) {
	payload, err := s.client.Get(ctx, s.prefix+experimentID).Bytes()
	if err == redis.Nil {
		return domain.ExperimentState{}, false, nil
	}
	if err != nil {
		return domain.ExperimentState{}, false, err
	}
	var state domain.ExperimentState
	if err := json.Unmarshal(payload, &state); err != nil {
		return domain.ExperimentState{}, false, err
	}
	return state, true, nil
}

func (s *redisExperimentStore) List(ctx context.Context) ([]domain.ExperimentState, error) {
	var states []domain.ExperimentState
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		payload, err := s.client.Get(ctx, iter.Val()).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, err
		}
		var state domain.ExperimentState
		if err := json.Unmarshal(payload, &state); err != nil {
			continue
		}
		states = append(states, state)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return states, nil
}
