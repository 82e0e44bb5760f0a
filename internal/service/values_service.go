package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"values-md/internal/domain"
	"values-md/internal/repository"
)

var (
	// ErrNoResponses indica que la sesión no tiene respuestas registradas.
	ErrNoResponses = errors.New("no responses found for session")
	// ErrInsufficientData indica menos respuestas que el umbral mínimo
	// para un perfil estadísticamente significativo.
	ErrInsufficientData = errors.New("not enough responses for a meaningful profile")
)

// defaultMinResponses es el umbral histórico del panel de sesiones.
const defaultMinResponses = 3

// ValuesService orquesta el pipeline completo: lee respuestas y catálogos,
// corre la agregación y sintetiza el documento values.md. El perfil no se
// persiste; eso queda en manos del caller.
type ValuesService struct {
	logger       *zap.Logger
	responses    repository.ResponseRepository
	dilemmas     repository.DilemmaRepository
	motifs       repository.MotifRepository
	frameworks   repository.FrameworkRepository
	aggregator   ValuesAggregator
	synthesizer  ValuesSynthesizer
	minResponses int
}

func NewValuesService(
	logger *zap.Logger,
	responses repository.ResponseRepository,
	dilemmas repository.DilemmaRepository,
	motifs repository.MotifRepository,
	frameworks repository.FrameworkRepository,
	aggregator ValuesAggregator,
	synthesizer ValuesSynthesizer,
	minResponses int,
) *ValuesService {
	if minResponses <= 0 {
		minResponses = defaultMinResponses
	}
	return &ValuesService{
		logger:       logger,
		responses:    responses,
		dilemmas:     dilemmas,
		motifs:       motifs,
		frameworks:   frameworks,
		aggregator:   aggregator,
		synthesizer:  synthesizer,
		minResponses: minResponses,
	}
}

// GenerateProfile genera el perfil de valores de una sesión.
// Sin respuestas devuelve ErrNoResponses; por debajo del umbral,
// ErrInsufficientData. Fallas de catálogo son fatales para la corrida.
func (s *ValuesService) GenerateProfile(ctx context.Context, sessionID string) (domain.ValuesProfile, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return domain.ValuesProfile{}, ErrNoResponses
	}

	responses, err := s.responses.ListBySessionID(ctx, sessionID)
	if err != nil {
		return domain.ValuesProfile{}, fmt.Errorf("list responses: %w", err)
	}
	if len(responses) == 0 {
		return domain.ValuesProfile{}, ErrNoResponses
	}
	if len(responses) < s.minResponses {
		return domain.ValuesProfile{}, fmt.Errorf("%w: got %d, need %d", ErrInsufficientData, len(responses), s.minResponses)
	}

	dilemmas, err := s.fetchDilemmas(ctx, responses)
	if err != nil {
		return domain.ValuesProfile{}, err
	}

	motifRows, err := s.motifs.List(ctx)
	if err != nil {
		return domain.ValuesProfile{}, fmt.Errorf("load motif catalog: %w", err)
	}
	frameworkRows, err := s.frameworks.List(ctx)
	if err != nil {
		return domain.ValuesProfile{}, fmt.Errorf("load framework catalog: %w", err)
	}
	motifCatalog := domain.NewMotifCatalog(motifRows)
	frameworkCatalog := domain.NewFrameworkCatalog(frameworkRows)

	scores := s.aggregator.Aggregate(responses, dilemmas, motifCatalog)
	frameworkScores := MapToFrameworks(scores, motifCatalog)
	examples := SelectExamples(responses, dilemmas, maxReasoningExamples)

	profile := s.synthesizer.Synthesize(
		sessionID, scores, frameworkScores, examples,
		motifCatalog, frameworkCatalog, len(responses),
	)

	if s.logger != nil {
		s.logger.Info("values profile generated",
			zap.String("session_id", sessionID),
			zap.Int("responses", len(responses)),
			zap.Int("resolved", profile.ResolvedCount),
			zap.Int("motifs", len(scores)),
		)
	}

	return profile, nil
}

func (s *ValuesService) fetchDilemmas(ctx context.Context, responses []domain.UserResponse) (map[string]domain.Dilemma, error) {
	seen := make(map[string]struct{}, len(responses))
	ids := make([]string, 0, len(responses))
	for _, resp := range responses {
		if _, ok := seen[resp.DilemmaID]; ok {
			continue
		}
		seen[resp.DilemmaID] = struct{}{}
		ids = append(ids, resp.DilemmaID)
	}

	rows, err := s.dilemmas.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list dilemmas: %w", err)
	}

	dilemmas := make(map[string]domain.Dilemma, len(rows))
	for _, d := range rows {
		dilemmas[d.ID] = d
	}
	return dilemmas, nil
}

// SelectExamples elige los primeros extractos con razonamiento textual como
// ejemplos ilustrativos, en el orden de llegada de las respuestas.
func SelectExamples(responses []domain.UserResponse, dilemmas map[string]domain.Dilemma, limit int) []domain.ResponseExample {
	var examples []domain.ResponseExample
	for _, resp := range responses {
		if len(examples) >= limit {
			break
		}
		if strings.TrimSpace(resp.Reasoning) == "" {
			continue
		}
		dilemma, ok := dilemmas[resp.DilemmaID]
		if !ok {
			continue
		}
		examples = append(examples, domain.ResponseExample{
			DilemmaTitle: dilemma.Title,
			ChosenOption: resp.ChosenOption,
			ChoiceText:   dilemma.ChoiceText(resp.ChosenOption),
			Reasoning:    strings.TrimSpace(resp.Reasoning),
		})
	}
	return examples
}
