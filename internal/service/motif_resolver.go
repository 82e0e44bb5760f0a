package service

import (
	"strings"

	"values-md/internal/domain"
)

// ResolveMotif determina qué motif representa la opción elegida de una
// respuesta. El caller debe pasar el dilema que corresponde a la respuesta;
// esta función no cruza los ids.
//
// Devuelve ok=false cuando el slot elegido no tiene motif asignado o la
// opción no pertenece a la enumeración. No es un error: la agregación
// simplemente omite estas respuestas.
func ResolveMotif(response domain.UserResponse, dilemma domain.Dilemma) (string, bool) {
	if !response.ChosenOption.Valid() {
		return "", false
	}
	motifID := strings.TrimSpace(dilemma.ChoiceMotif(response.ChosenOption))
	if motifID == "" {
		return "", false
	}
	return motifID, true
}
