package service

import (
	"fmt"
	"strings"
	"time"

	"values-md/internal/domain"
)

// Textos de respaldo cuando no hay puntajes o el catálogo no describe un motif.
const (
	fallbackPrimaryName        = "Balanced reasoning"
	fallbackPrimaryDescription = "This reflects a balanced approach to moral reasoning without a single dominant pattern."
	fallbackDescription        = "This reflects my core approach to moral reasoning."
	fallbackIndicators         = "Follow consistent ethical principles based on my moral framework."
	fallbackLogicalPattern     = "Follow my primary ethical framework"
)

// maxReasoningExamples limita los extractos textuales en el documento.
const maxReasoningExamples = 3

// maxFrameworksShown es un truncamiento de presentación, no un invariante.
const maxFrameworksShown = 3

// ValuesSynthesizer renderiza el documento values.md. Render determinista:
// sin aleatoriedad ni I/O; el reloj se inyecta para poder testearlo.
type ValuesSynthesizer struct {
	Now func() time.Time
}

// Synthesize combina puntajes, alineación de frameworks y ejemplos en el
// perfil final. Con puntajes vacíos produce igualmente un documento bien
// formado con los textos de respaldo; el umbral mínimo de respuestas lo
// impone el caller, no este componente.
func (s ValuesSynthesizer) Synthesize(
	sessionID string,
	scores []domain.MotifScore,
	frameworkScores []domain.FrameworkScore,
	examples []domain.ResponseExample,
	motifCatalog domain.MotifCatalog,
	frameworkCatalog domain.FrameworkCatalog,
	responseCount int,
) domain.ValuesProfile {
	now := time.Now().UTC()
	if s.Now != nil {
		now = s.Now().UTC()
	}

	if len(examples) > maxReasoningExamples {
		examples = examples[:maxReasoningExamples]
	}

	resolved := ResolvedCount(scores)
	markdown := s.render(scores, frameworkScores, examples, motifCatalog, frameworkCatalog, responseCount, resolved, now)

	return domain.ValuesProfile{
		SessionID:       sessionID,
		MotifScores:     scores,
		FrameworkScores: frameworkScores,
		Examples:        examples,
		ResponseCount:   responseCount,
		ResolvedCount:   resolved,
		Markdown:        markdown,
	}
}

func (s ValuesSynthesizer) render(
	scores []domain.MotifScore,
	frameworkScores []domain.FrameworkScore,
	examples []domain.ResponseExample,
	motifCatalog domain.MotifCatalog,
	frameworkCatalog domain.FrameworkCatalog,
	responseCount, resolved int,
	now time.Time,
) string {
	var sb strings.Builder

	primaryName := fallbackPrimaryName
	primaryDescription := fallbackPrimaryDescription
	var primary *domain.Motif
	if len(scores) > 0 {
		if m, ok := motifCatalog[scores[0].MotifID]; ok {
			primary = &m
			primaryName = m.Name
			primaryDescription = m.Description
			if primaryDescription == "" {
				primaryDescription = fallbackDescription
			}
		} else {
			primaryName = scores[0].MotifID
			primaryDescription = fallbackDescription
		}
	}

	sb.WriteString("# My Values\n\n")

	// 1. Core Ethical Framework
	sb.WriteString("## Core Ethical Framework\n\n")
	sb.WriteString(fmt.Sprintf("Based on my responses to ethical dilemmas, my decision-making is primarily guided by **%s**.\n\n", primaryName))
	sb.WriteString(primaryDescription)
	sb.WriteString("\n\n")

	if len(frameworkScores) > 0 {
		sb.WriteString("My reasoning aligns most closely with these ethical traditions:\n\n")
		shown := frameworkScores
		if len(shown) > maxFrameworksShown {
			shown = shown[:maxFrameworksShown]
		}
		for i, fs := range shown {
			name := fs.FrameworkID
			principle := ""
			if f, ok := frameworkCatalog[fs.FrameworkID]; ok {
				name = f.Name
				principle = f.KeyPrinciple
			}
			if principle != "" {
				sb.WriteString(fmt.Sprintf("%d. **%s** — %s\n", i+1, name, principle))
			} else {
				sb.WriteString(fmt.Sprintf("%d. **%s**\n", i+1, name))
			}
		}
		sb.WriteString("\n")
	} else {
		sb.WriteString("No single ethical tradition dominates my responses.\n\n")
	}

	// 2. Decision-Making Patterns
	sb.WriteString("## Decision-Making Patterns\n\n")
	if len(scores) > 0 {
		sb.WriteString("### Primary Motifs (in order of preference)\n\n")
		sb.WriteString("| Rank | Motif | Responses | Share |\n")
		sb.WriteString("|------|-------|-----------|-------|\n")
		for _, score := range scores {
			name := score.MotifID
			if m, ok := motifCatalog[score.MotifID]; ok {
				name = m.Name
			}
			sb.WriteString(fmt.Sprintf("| %d | %s | %d | %s |\n",
				score.Rank, name, score.Count, percentage(score.Count, resolved)))
		}
		sb.WriteString("\n### Key Principles\n\nWhen making decisions, I tend to:\n\n")
		indicators := fallbackIndicators
		if primary != nil && primary.BehavioralIndicators != "" {
			indicators = primary.BehavioralIndicators
		}
		sb.WriteString(indicators)
		sb.WriteString("\n\n")
	} else {
		sb.WriteString("Not enough choices were tagged with behavioral motifs to rank decision patterns.\n\n")
	}

	// 3. Reasoning Examples
	sb.WriteString("## Reasoning Examples\n\n")
	if len(examples) > 0 {
		for i, ex := range examples {
			sb.WriteString(fmt.Sprintf("### Dilemma %d: %s\n\n", i+1, ex.DilemmaTitle))
			sb.WriteString(fmt.Sprintf("- **Choice:** Option %s", strings.ToUpper(string(ex.ChosenOption))))
			if ex.ChoiceText != "" {
				sb.WriteString(fmt.Sprintf(" — %s", ex.ChoiceText))
			}
			sb.WriteString("\n")
			if ex.Reasoning != "" {
				sb.WriteString(fmt.Sprintf("- **Reasoning:** %s\n", ex.Reasoning))
			}
			sb.WriteString("\n")
		}
	} else {
		sb.WriteString("No free-text reasoning was recorded for this session.\n\n")
	}

	// 4. Instructions for AI Systems
	sb.WriteString("## Instructions for AI Systems\n\n")
	sb.WriteString("When making decisions on my behalf, please:\n\n")
	logical := fallbackLogicalPattern
	if primary != nil && primary.LogicalPatterns != "" {
		logical = primary.LogicalPatterns
	}
	directive := 1
	sb.WriteString(fmt.Sprintf("%d. **Prioritize %s** — %s\n", directive, primaryName, logical))
	directive++
	if primary != nil {
		if conflicts := catalogNames(primary.ConflictIDs(), motifCatalog); len(conflicts) > 0 {
			sb.WriteString(fmt.Sprintf("%d. **Flag tensions** with %s before acting, since these patterns conflict with my primary approach\n",
				directive, joinNames(conflicts)))
			directive++
		}
		if synergies := catalogNames(primary.SynergyIDs(), motifCatalog); len(synergies) > 0 {
			sb.WriteString(fmt.Sprintf("%d. **Lean on %s** when my primary approach is inconclusive, since these patterns reinforce it\n",
				directive, joinNames(synergies)))
			directive++
		}
	}
	sb.WriteString(fmt.Sprintf("%d. **Consider multiple perspectives** but weight them according to my demonstrated preferences\n", directive))
	directive++
	sb.WriteString(fmt.Sprintf("%d. **Be transparent** about the reasoning process and potential trade-offs\n", directive))
	directive++
	sb.WriteString(fmt.Sprintf("%d. **Ask for clarification** when facing novel ethical dilemmas not covered by these examples\n\n", directive))

	// Pie de procedencia
	sb.WriteString("---\n\n")
	sb.WriteString(fmt.Sprintf("*Generated from responses to %d ethical dilemmas*\n", responseCount))
	sb.WriteString(fmt.Sprintf("*Last updated: %s*\n", now.Format("2006-01-02")))

	return sb.String()
}

// percentage formatea count/total como porcentaje entero; "—" sin denominador.
func percentage(count, total int) string {
	if total <= 0 {
		return "—"
	}
	return fmt.Sprintf("%d%%", int(float64(count)/float64(total)*100+0.5))
}

// catalogNames traduce ids de motif a nombres, conservando el id cuando el
// catálogo no lo conoce.
func catalogNames(ids []string, catalog domain.MotifCatalog) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if m, ok := catalog[id]; ok && m.Name != "" {
			names = append(names, m.Name)
			continue
		}
		names = append(names, id)
	}
	return names
}

func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	}
	return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
}
