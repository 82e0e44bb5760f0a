package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"values-md/internal/domain"
)

type mockResponseRepo struct {
	bySession map[string][]domain.UserResponse
	err       error
}

func (m *mockResponseRepo) CreateBatch(_ context.Context, responses []domain.UserResponse) error {
	if m.bySession == nil {
		m.bySession = make(map[string][]domain.UserResponse)
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
	return nil, nil
}

type mockDilemmaRepo struct {
	byID map[string]domain.Dilemma
}

func (m *mockDilemmaRepo) GetByID(_ context.Context, id string) (domain.Dilemma, error) {
	d, ok := m.byID[id]
	if !ok {
		return domain.Dilemma{}, errors.New("not found")
	}
	return d, nil
}

func (m *mockDilemmaRepo) GetRandom(_ context.Context) (domain.Dilemma, error) {
	for _, d := range m.byID {
		return d, nil
	}
	return domain.Dilemma{}, errors.New("not found")
}

func (m *mockDilemmaRepo) ListRandomExcluding(_ context.Context, _ string, _ int) ([]domain.Dilemma, error) {
	return nil, nil
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
	if m.byID == nil {
		m.byID = make(map[string]domain.Dilemma)
	}
	m.byID[d.ID] = d
	return nil
}

type mockMotifRepo struct {
	motifs []domain.Motif
	err    error
}

func (m *mockMotifRepo) List(_ context.Context) ([]domain.Motif, error) { return m.motifs, m.err }
func (m *mockMotifRepo) Upsert(_ context.Context, _ domain.Motif) error { return nil }

type mockFrameworkRepo struct {
	frameworks []domain.Framework
}

func (m *mockFrameworkRepo) List(_ context.Context) ([]domain.Framework, error) {
	return m.frameworks, nil
}
func (m *mockFrameworkRepo) Upsert(_ context.Context, _ domain.Framework) error { return nil }

func newTestValuesService(responses *mockResponseRepo, dilemmas *mockDilemmaRepo) *ValuesService {
	return NewValuesService(
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
		ValuesAggregator{},
		ValuesSynthesizer{Now: func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }},
		3,
	)
}

func TestGenerateProfile_NoResponsesIsNotFound(t *testing.T) {
	svc := newTestValuesService(&mockResponseRepo{}, &mockDilemmaRepo{})

	_, err := svc.GenerateProfile(context.Background(), "empty-session")
	if !errors.Is(err, ErrNoResponses) {
		t.Fatalf("expected ErrNoResponses, got %v", err)
	}

	_, err = svc.GenerateProfile(context.Background(), "   ")
	if !errors.Is(err, ErrNoResponses) {
		t.Fatalf("expected ErrNoResponses for blank session id, got %v", err)
	}
}

func TestGenerateProfile_BelowThreshold(t *testing.T) {
	responses := &mockResponseRepo{bySession: map[string][]domain.UserResponse{
		"s1": {
			{SessionID: "s1", DilemmaID: "d1", ChosenOption: domain.OptionA, PerceivedDifficulty: 5},
			{SessionID: "s1", DilemmaID: "d1", ChosenOption: domain.OptionA, PerceivedDifficulty: 5},
		},
	}}
	svc := newTestValuesService(responses, &mockDilemmaRepo{})

	_, err := svc.GenerateProfile(context.Background(), "s1")
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestGenerateProfile_FullPipeline(t *testing.T) {
	dilemmas := &mockDilemmaRepo{byID: map[string]domain.Dilemma{
		"d1": {ID: "d1", Title: "Triage", Difficulty: 7, ChoiceA: "Treat many", ChoiceAMotif: "UTIL_CALC", ChoiceBMotif: "DUTY_CARE"},
		"d2": {ID: "d2", Title: "Whistleblowing", Difficulty: 6, ChoiceAMotif: "UTIL_CALC"},
		"d3": {ID: "d3", Title: "Broken Promise", Difficulty: 4, ChoiceBMotif: "DUTY_CARE"},
	}}
	responses := &mockResponseRepo{bySession: map[string][]domain.UserResponse{
		"s1": {
			{SessionID: "s1", DilemmaID: "d1", ChosenOption: domain.OptionA, PerceivedDifficulty: 8, Reasoning: "Most lives saved."},
			{SessionID: "s1", DilemmaID: "d2", ChosenOption: domain.OptionA, PerceivedDifficulty: 6},
			{SessionID: "s1", DilemmaID: "d3", ChosenOption: domain.OptionB, PerceivedDifficulty: 4},
		},
	}}
	svc := newTestValuesService(responses, dilemmas)

	profile, err := svc.GenerateProfile(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.ResponseCount != 3 || profile.ResolvedCount != 3 {
		t.Fatalf("unexpected counts: %+v", profile)
	}
	if len(profile.MotifScores) != 2 || profile.MotifScores[0].MotifID != "UTIL_CALC" {
		t.Fatalf("unexpected motif scores: %+v", profile.MotifScores)
	}
	if len(profile.FrameworkScores) == 0 || profile.FrameworkScores[0].FrameworkID != "UTIL_ACT" {
		t.Fatalf("unexpected framework scores: %+v", profile.FrameworkScores)
	}
	if len(profile.Examples) != 1 || profile.Examples[0].Reasoning != "Most lives saved." {
		t.Fatalf("unexpected examples: %+v", profile.Examples)
	}
	if !strings.Contains(profile.Markdown, "Utilitarian Calculation") {
		t.Fatalf("markdown missing primary motif:\n%s", profile.Markdown)
	}
}

func TestGenerateProfile_RepeatedRunsIdentical(t *testing.T) {
	dilemmas := &mockDilemmaRepo{byID: map[string]domain.Dilemma{
		"d1": {ID: "d1", Title: "Triage", Difficulty: 7, ChoiceAMotif: "UTIL_CALC"},
	}}
	responses := &mockResponseRepo{bySession: map[string][]domain.UserResponse{
		"s1": {
			{SessionID: "s1", DilemmaID: "d1", ChosenOption: domain.OptionA, PerceivedDifficulty: 5},
			{SessionID: "s1", DilemmaID: "d1", ChosenOption: domain.OptionA, PerceivedDifficulty: 5},
			{SessionID: "s1", DilemmaID: "d1", ChosenOption: domain.OptionA, PerceivedDifficulty: 5},
		},
	}}
	svc := newTestValuesService(responses, dilemmas)

	first, err := svc.GenerateProfile(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.GenerateProfile(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Markdown != second.Markdown {
		t.Fatalf("profile generation is not deterministic")
	}
}
