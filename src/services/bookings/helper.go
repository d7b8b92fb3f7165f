package bookings

import (
	"strings"

	"Backend-Seabreeze/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AnswerSet indexes a booking's flattened qa-pairs for lookup by question id,
// question key, or literal question text. Key lookup is always preferred; the
// text path exists only for legacy schema rows that were never keyed and can
// be retired once every question carries a key.
type AnswerSet struct {
	questions  []models.Question
	questionBy map[primitive.ObjectID]models.Question
	byID       map[primitive.ObjectID]string
	keyToID    map[string]primitive.ObjectID
	textToID   map[string]primitive.ObjectID
}

// NewAnswerSet builds the lookup index from schema questions and answers.
func NewAnswerSet(questions []models.Question, pairs []models.QaPair) *AnswerSet {
	s := &AnswerSet{
		questions:  questions,
		questionBy: make(map[primitive.ObjectID]models.Question, len(questions)),
		byID:       make(map[primitive.ObjectID]string, len(pairs)),
		keyToID:    make(map[string]primitive.ObjectID, len(questions)),
		textToID:   make(map[string]primitive.ObjectID, len(questions)),
	}
	for _, q := range questions {
		s.questionBy[q.ID] = q
		if q.QuestionKey != "" {
			s.keyToID[q.QuestionKey] = q.ID
		}
		if q.QuestionText != "" {
			s.textToID[q.QuestionText] = q.ID
		}
	}
	for _, p := range pairs {
		s.byID[p.QuestionID] = p.Answer
	}
	return s
}

// Questions returns the schema questions behind this set.
func (s *AnswerSet) Questions() []models.Question {
	return s.questions
}

// ByID returns the raw answer for a question id.
func (s *AnswerSet) ByID(id primitive.ObjectID) string {
	return s.byID[id]
}

// ByKey returns the raw answer for a question key.
func (s *AnswerSet) ByKey(key string) string {
	id, ok := s.keyToID[key]
	if !ok {
		return ""
	}
	return s.byID[id]
}

// ByText returns the raw answer matched on literal question text.
func (s *AnswerSet) ByText(text string) string {
	id, ok := s.textToID[text]
	if !ok {
		return ""
	}
	return s.byID[id]
}

// QuestionByID returns the schema question for an id.
func (s *AnswerSet) QuestionByID(id primitive.ObjectID) (models.Question, bool) {
	q, ok := s.questionBy[id]
	return q, ok
}

// ResolveQuestion finds a question by key first, falling back to literal text,
// then to a direct id. The fallback order mirrors Resolve.
func (s *AnswerSet) ResolveQuestion(key, text string, id primitive.ObjectID) (models.Question, bool) {
	if key != "" {
		if qid, ok := s.keyToID[key]; ok {
			return s.questionBy[qid], true
		}
	}
	if text != "" {
		if qid, ok := s.textToID[text]; ok {
			return s.questionBy[qid], true
		}
	}
	if !id.IsZero() {
		if q, ok := s.questionBy[id]; ok {
			return q, true
		}
	}
	return models.Question{}, false
}

// Resolve looks an answer up by key first, then by text. The boolean reports
// whether the question itself was found, independent of it being answered.
func (s *AnswerSet) Resolve(key, text string) (string, bool) {
	if key != "" {
		if id, ok := s.keyToID[key]; ok {
			return s.byID[id], true
		}
	}
	if text != "" {
		if id, ok := s.textToID[text]; ok {
			return s.byID[id], true
		}
	}
	return "", false
}

// IsNdisFunded reports whether the funding-source answer names NDIS/NDIA.
func (s *AnswerSet) IsNdisFunded() bool {
	answer := strings.ToUpper(s.ByKey(models.KeyFundingSource))
	return strings.Contains(answer, "NDIS") || strings.Contains(answer, "NDIA")
}

// FlattenQaPairs merges every section's pairs into one list.
func FlattenQaPairs(bySection map[primitive.ObjectID][]models.QaPair) []models.QaPair {
	var out []models.QaPair
	for _, pairs := range bySection {
		out = append(out, pairs...)
	}
	return out
}
