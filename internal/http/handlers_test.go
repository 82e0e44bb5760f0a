package http

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"values-md/internal/domain"
	"values-md/internal/service"
)

type mockResponseRepo struct {
	bySession map[string][]domain.UserResponse
	summaries []domain.SessionSummary
	err       error
}

func newMockResponseRepo() *mockResponseRepo {
	return &mockResponseRepo{bySession: make(map[string][]domain.UserResponse)}
}

func (m *mockResponseRepo) CreateBatch(_ context.Context, responses []domain.UserResponse) error {
	if m.err != nil {
		return m.err
	}
	for _, r := range responses {
		m.bySession[r.SessionID] = append(m.bySession[r.SessionID], r)
	}
	return nil
}

func (m *mockResponseRepo) ListBySessionID(_ context.Context, sessionID string) ([]domain.UserResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.bySession[sessionID], nil
}

func (m *mockResponseRepo) ListSessionSummaries(_ context.Context, _ int) ([]domain.SessionSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.summaries, nil
}

type mockDilemmaRepo struct {
	byID map[string]domain.Dilemma
	err  error
}

func newMockDilemmaRepo() *mockDilemmaRepo {
	return &mockDilemmaRepo{byID: make(map[string]domain.Dilemma)}
}

func (m *mockDilemmaRepo) GetByID(_ context.Context, id string) (domain.Dilemma, error) {
	if m.err != nil {
		return domain.Dilemma{}, m.err
	}
	d, ok := m.byID[id]
	if !ok {
		return domain.Dilemma{}, pgx.ErrNoRows
	}
	return d, nil
}

func (m *mockDilemmaRepo) GetRandom(_ context.Context) (domain.Dilemma, error) {
	if m.err != nil {
		return domain.Dilemma{}, m.err
	}
	for _, d := range m.byID {
		return d, nil
	}
	return domain.Dilemma{}, pgx.ErrNoRows
}

func (m *mockDilemmaRepo) ListRandomExcluding(_ context.Context, excludeID string, limit int) ([]domain.Dilemma, error) {
	var out []domain.Dilemma
	for _, d := range m.byID {
		if d.ID == excludeID || len(out) >= limit {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (m *mockDilemmaRepo) ListByIDs(_ context.Context, ids []string) ([]domain.Dilemma, error) {
	var out []domain.Dilemma
	for _, id := range ids {
		if d, ok := m.byID[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *mockDilemmaRepo) Create(_ context.Context, d domain.Dilemma) error {
	m.byID[d.ID] = d
	return nil
}

type mockDemographicsRepo struct {
	last domain.UserDemographics
	err  error
}

func (m *mockDemographicsRepo) Upsert(_ context.Context, demo domain.UserDemographics) error {
	if m.err != nil {
		return m.err
	}
	m.last = demo
	return nil
}

type mockMotifRepo struct {
	motifs []domain.Motif
}

func (m *mockMotifRepo) List(_ context.Context) ([]domain.Motif, error)  { return m.motifs, nil }
func (m *mockMotifRepo) Upsert(_ context.Context, _ domain.Motif) error { return nil }

type mockFrameworkRepo struct {
	frameworks []domain.Framework
}

func (m *mockFrameworkRepo) List(_ context.Context) ([]domain.Framework, error) {
	return m.frameworks, nil
}
func (m *mockFrameworkRepo) Upsert(_ context.Context, _ domain.Framework) error { return nil }

type mockAdminRepo struct {
	byEmail map[string]domain.AdminUser
}

func (m *mockAdminRepo) GetByEmail(_ context.Context, email string) (domain.AdminUser, error) {
	admin, ok := m.byEmail[email]
	if !ok {
		return domain.AdminUser{}, pgx.ErrNoRows
	}
	return admin, nil
}

func (m *mockAdminRepo) Upsert(_ context.Context, admin domain.AdminUser) error {
	if m.byEmail == nil {
		m.byEmail = make(map[string]domain.AdminUser)
	}
	m.byEmail[admin.Email] = admin
	return nil
}

func (m *mockAdminRepo) UpdatePassword(_ context.Context, adminID, passwordHash string) error {
	for email, admin := range m.byEmail {
		if admin.ID == adminID {
			admin.PasswordHash = passwordHash
			m.byEmail[email] = admin
			return nil
		}
	}
	return pgx.ErrNoRows
}

type mockLLMResponseRepo struct {
	created []domain.LLMResponse
}

func (m *mockLLMResponseRepo) Create(_ context.Context, resp domain.LLMResponse) error {
	m.created = append(m.created, resp)
	return nil
}

func (m *mockLLMResponseRepo) ListByExperimentID(_ context.Context, experimentID string) ([]domain.LLMResponse, error) {
	var out []domain.LLMResponse
	for _, r := range m.created {
		if r.ExperimentID == experimentID {
			out = append(out, r)
		}
	}
	return out, nil
}

func newTestValuesService(responses *mockResponseRepo, dilemmas *mockDilemmaRepo) *service.ValuesService {
	return service.NewValuesService(
		zap.NewNop(),
		responses,
		dilemmas,
		&mockMotifRepo{motifs: []domain.Motif{
			{ID: "UTIL_CALC", Name: "Utilitarian Calculation", Category: "consequentialism", Weight: 0.9},
			{ID: "DUTY_CARE", Name: "Duty of Care", Category: "deontological", Weight: 0.9},
		}},
		&mockFrameworkRepo{frameworks: []domain.Framework{
			{ID: "UTIL_ACT", Name: "Act Utilitarianism"},
		}},
		service.ValuesAggregator{},
		service.ValuesSynthesizer{Now: func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }},
		3,
	)
}

func testDilemma(id, motif string) domain.Dilemma {
	return domain.Dilemma{
		ID:           id,
		Title:        "Dilemma " + id,
		Scenario:     "Scenario for " + id,
		Difficulty:   6,
		ChoiceA:      "Option A text",
		ChoiceAMotif: motif,
		ChoiceB:      "Option B text",
	}
}
