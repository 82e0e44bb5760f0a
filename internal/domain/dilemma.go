package domain

import "time"

// ChosenOption identifica el slot elegido en un dilema. Enumeración fija a-d.
type ChosenOption string

const (
	OptionA ChosenOption = "a"
	OptionB ChosenOption = "b"
	OptionC ChosenOption = "c"
	OptionD ChosenOption = "d"
)

// Valid reporta si la opción pertenece a la enumeración.
func (o ChosenOption) Valid() bool {
	switch o {
	case OptionA, OptionB, OptionC, OptionD:
		return true
	}
	return false
}

// Dilemma es un escenario con cuatro opciones, cada una opcionalmente
// etiquetada con un motif (el mapa slot -> motif puede tener huecos).
type Dilemma struct {
	ID              string    `json:"dilemma_id"`
	Domain          string    `json:"domain,omitempty"`
	GeneratorType   string    `json:"generator_type,omitempty"`
	Difficulty      int       `json:"difficulty"`
	Title           string    `json:"title"`
	Scenario        string    `json:"scenario"`
	ChoiceA         string    `json:"choice_a"`
	ChoiceAMotif    string    `json:"choice_a_motif,omitempty"`
	ChoiceB         string    `json:"choice_b"`
	ChoiceBMotif    string    `json:"choice_b_motif,omitempty"`
	ChoiceC         string    `json:"choice_c"`
	ChoiceCMotif    string    `json:"choice_c_motif,omitempty"`
	ChoiceD         string    `json:"choice_d"`
	ChoiceDMotif    string    `json:"choice_d_motif,omitempty"`
	CulturalContext string    `json:"cultural_context,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// ChoiceMotif devuelve el motif asociado al slot elegido. Cadena vacía si el
// slot no tiene motif o la opción no pertenece a la enumeración.
func (d Dilemma) ChoiceMotif(option ChosenOption) string {
	switch option {
	case OptionA:
		return d.ChoiceAMotif
	case OptionB:
		return d.ChoiceBMotif
	case OptionC:
		return d.ChoiceCMotif
	case OptionD:
		return d.ChoiceDMotif
	}
	return ""
}

// ChoiceText devuelve el texto de la opción elegida.
func (d Dilemma) ChoiceText(option ChosenOption) string {
	switch option {
	case OptionA:
		return d.ChoiceA
	case OptionB:
		return d.ChoiceB
	case OptionC:
		return d.ChoiceC
	case OptionD:
		return d.ChoiceD
	}
	return ""
}
