package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"values-md/internal/domain"
	"values-md/internal/llm"
)

type mockLLMResponseRepo struct {
	created []domain.LLMResponse
	err     error
}

func (m *mockLLMResponseRepo) Create(_ context.Context, resp domain.LLMResponse) error {
	if m.err != nil {
		return m.err
	}
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

func TestExtractChoice(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   domain.ChosenOption
		wantOK bool
	}{
		{name: "leading letter", raw: "B) because fewer people are harmed", want: domain.OptionB, wantOK: true},
		{name: "letter in prose", raw: "I would choose option C here.", want: domain.OptionC, wantOK: true},
		{name: "no isolated letter", raw: "BAD ANSWER without any option", wantOK: false},
		{name: "empty", raw: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractChoice(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%t got=%t", tt.wantOK, ok)
			}
			if ok && got != tt.want {
				t.Fatalf("expected %q got %q", tt.want, got)
			}
		})
	}
}

func newTestExperimentService(mock *llm.MockClient, llmRepo *mockLLMResponseRepo) (*ExperimentService, *mockDilemmaRepo, *mockResponseRepo) {
	dilemmas := &mockDilemmaRepo{byID: map[string]domain.Dilemma{
		"d1": {ID: "d1", Title: "Triage", Scenario: "Who gets the ventilator?", Difficulty: 7,
			ChoiceA: "Treat many", ChoiceAMotif: "UTIL_CALC", ChoiceB: "First come"},
		"d2": {ID: "d2", Title: "Promise", Scenario: "Break a promise?", Difficulty: 4,
			ChoiceA: "Keep it", ChoiceAMotif: "DUTY_CARE", ChoiceB: "Break it"},
	}}
	responses := &mockResponseRepo{bySession: map[string][]domain.UserResponse{
		"s1": {
			{SessionID: "s1", DilemmaID: "d1", ChosenOption: domain.OptionA, PerceivedDifficulty: 8},
			{SessionID: "s1", DilemmaID: "d2", ChosenOption: domain.OptionA, PerceivedDifficulty: 4},
			{SessionID: "s1", DilemmaID: "d1", ChosenOption: domain.OptionA, PerceivedDifficulty: 6},
		},
	}}
	valuesSvc := newTestValuesService(responses, dilemmas)
	svc := NewExperimentService(
		zap.NewNop(),
		mock,
		NewMemoryExperimentStore(time.Hour),
		valuesSvc,
		responses,
		dilemmas,
		llmRepo,
	)
	return svc, dilemmas, responses
}

func TestExperimentRun_PersistsControlAndTreatment(t *testing.T) {
	mock := &llm.MockClient{Response: "A) this alternative maximizes welfare"}
	llmRepo := &mockLLMResponseRepo{}
	svc, dilemmas, _ := newTestExperimentService(mock, llmRepo)

	state := domain.ExperimentState{
		ID:         "exp_test",
		SessionID:  "s1",
		Status:     domain.ExperimentRunning,
		TotalTasks: 4,
		StartedAt:  time.Now().UTC(),
	}
	scenarios, err := dilemmas.ListByIDs(context.Background(), []string{"d1", "d2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	svc.run(context.Background(), state, []string{"test/model"}, scenarios, "# My Values\n")

	if len(llmRepo.created) != 4 {
		t.Fatalf("expected 4 persisted responses, got %d", len(llmRepo.created))
	}
	var control, treatment int
	for _, r := range llmRepo.created {
		if r.ChosenOption != domain.OptionA {
			t.Fatalf("expected extracted choice a, got %q", r.ChosenOption)
		}
		if r.ValuesGuided {
			treatment++
		} else {
			control++
		}
	}
	if control != 2 || treatment != 2 {
		t.Fatalf("expected 2 control and 2 treatment rows, got %d/%d", control, treatment)
	}

	// El treatment debe llevar el values.md en el system prompt; el control no.
	var sawControl, sawTreatment bool
	for _, call := range mock.Calls {
		if call.Model != "test/model" {
			t.Fatalf("unexpected model %q", call.Model)
		}
		if strings.Contains(call.SystemPrompt, "User's Values Profile") {
			sawTreatment = true
		} else {
			sawControl = true
		}
	}
	if !sawControl || !sawTreatment {
		t.Fatalf("expected both prompt conditions, control=%t treatment=%t", sawControl, sawTreatment)
	}

	final, err := svc.Get(context.Background(), "exp_test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if final.Status != domain.ExperimentCompleted || final.Progress != 4 {
		t.Fatalf("unexpected final state: %+v", final)
	}
}

func TestExperimentStart_RequiresProfile(t *testing.T) {
	mock := &llm.MockClient{Response: "A"}
	svc, _, _ := newTestExperimentService(mock, &mockLLMResponseRepo{})

	if _, err := svc.Start(context.Background(), ExperimentConfig{SessionID: "missing"}); err == nil {
		t.Fatalf("expected error for session without responses")
	}
}

func TestExperimentGet_NotFound(t *testing.T) {
	mock := &llm.MockClient{Response: "A"}
	svc, _, _ := newTestExperimentService(mock, &mockLLMResponseRepo{})

	if _, err := svc.Get(context.Background(), "exp_missing"); err != ErrExperimentNotFound {
		t.Fatalf("expected ErrExperimentNotFound, got %v", err)
	}
}

func TestExperimentRun_ModelErrorRecorded(t *testing.T) {
	mock := &llm.MockClient{Err: context.DeadlineExceeded}
	llmRepo := &mockLLMResponseRepo{}
	svc, dilemmas, _ := newTestExperimentService(mock, llmRepo)

	scenarios, _ := dilemmas.ListByIDs(context.Background(), []string{"d1"})
	state := domain.ExperimentState{ID: "exp_err", Status: domain.ExperimentRunning, TotalTasks: 2, StartedAt: time.Now().UTC()}

	svc.run(context.Background(), state, []string{"test/model"}, scenarios, "")

	final, err := svc.Get(context.Background(), "exp_err")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if final.Status != domain.ExperimentError {
		t.Fatalf("expected error status, got %+v", final)
	}
	if len(final.Errors) != 2 {
		t.Fatalf("expected 2 recorded errors, got %+v", final.Errors)
	}
	if len(llmRepo.created) != 0 {
		t.Fatalf("no rows should persist on failure, got %d", len(llmRepo.created))
	}
}

func TestMemoryExperimentStore_TTLEviction(t *testing.T) {
	store := NewMemoryExperimentStore(time.Millisecond)
	state := domain.ExperimentState{ID: "exp_ttl", Status: domain.ExperimentRunning}
	if err := store.Put(context.Background(), state); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	if _, ok, _ := store.Get(context.Background(), "exp_ttl"); ok {
		t.Fatalf("expected entry to expire")
	}
	states, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(states) != 0 {
		t.Fatalf("expected empty list after TTL, got %+v", states)
	}
}
