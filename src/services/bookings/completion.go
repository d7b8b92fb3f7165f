package bookings

import (
	"context"

	"Backend-Seabreeze/src/models"
	"Backend-Seabreeze/src/services/schema"
)

// CompletionResult is the completion verdict plus the required-and-applicable
// questions that are still unanswered.
type CompletionResult struct {
	Complete    bool              `json:"complete"`
	Unsatisfied []models.Question `json:"unsatisfied,omitempty"`
}

// EvaluateCompletion decides whether an answer set satisfies the schema.
//
// Equipment questions are excluded (they have their own completeness signal).
// A question gated by secondBookingOnly/ndisOnly only counts in that context,
// and NDIS-funded bookings are exempt from the full-accommodation-package
// radio. Dependencies are OR-combined: one matching target makes the question
// applicable. A required question whose dependencies are all unmet is not
// required yet, deliberately, rather than blocking completion.
func EvaluateCompletion(questions []models.Question, pairs []models.QaPair, secondBooking bool) CompletionResult {
	set := NewAnswerSet(questions, pairs)
	ndis := set.IsNdisFunded()

	result := CompletionResult{Complete: true}
	for _, q := range questions {
		if q.Type == models.EquipmentQuestion {
			continue
		}
		if !q.Required {
			continue
		}
		if q.SecondBookingOnly && !secondBooking {
			continue
		}
		if q.NdisOnly && !ndis {
			continue
		}
		if ndis && q.QuestionKey == models.KeyFullAccommodation {
			continue
		}
		if !dependenciesMet(q, set) {
			continue
		}
		if set.ByID(q.ID) == "" {
			result.Complete = false
			result.Unsatisfied = append(result.Unsatisfied, q)
		}
	}
	return result
}

// EvaluateBookingCompletion applies the zero-section rule before delegating:
// a booking with no sections has nothing to answer into and is simply
// incomplete, never an error.
func EvaluateBookingCompletion(sections []models.Section, questions []models.Question, pairs []models.QaPair, secondBooking bool) CompletionResult {
	if len(sections) == 0 {
		return CompletionResult{Complete: false}
	}
	return EvaluateCompletion(questions, pairs, secondBooking)
}

func dependenciesMet(q models.Question, set *AnswerSet) bool {
	if len(q.Dependencies) == 0 {
		return true
	}
	for _, dep := range q.Dependencies {
		actual := set.ByID(dep.DependencyID)
		if actual != "" && actual == dep.Answer {
			return true
		}
	}
	return false
}

// IsComplete loads a booking by its public uuid and evaluates completion
// against the template it originated from. A booking with no sections is
// simply incomplete; a missing schema is a hard error.
func IsComplete(ctx context.Context, bookingUUID string) (bool, error) {
	res, err := Completion(ctx, bookingUUID)
	if err != nil {
		return false, err
	}
	return res.Complete, nil
}

// Completion is IsComplete with the unsatisfied-question detail.
func Completion(ctx context.Context, bookingUUID string) (CompletionResult, error) {
	booking, err := GetBookingByUUID(ctx, bookingUUID)
	if err != nil {
		return CompletionResult{}, err
	}

	sections, err := GetBookingSections(ctx, booking.ID)
	if err != nil {
		return CompletionResult{}, err
	}
	if len(sections) == 0 {
		return EvaluateBookingCompletion(sections, nil, nil, booking.SecondBooking), nil
	}

	pairs, err := GetBookingQaPairs(ctx, sections)
	if err != nil {
		return CompletionResult{}, err
	}

	graph, err := schema.ResolveBookingTemplate(ctx, sections)
	if err != nil {
		return CompletionResult{}, err
	}

	return EvaluateBookingCompletion(sections, graph.AllQuestions(), pairs, booking.SecondBooking), nil
}
