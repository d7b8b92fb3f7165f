package triggers

import (
	"context"
	"errors"
	"testing"
	"time"

	"Backend-Seabreeze/src/models"
	"Backend-Seabreeze/src/services/bookings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeSender struct {
	sent []sentMail
	err  error
}

type sentMail struct {
	To      string
	Subject string
	HTML    string
}

func (f *fakeSender) Send(to, subject, html string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, HTML: html})
	return nil
}

func strPtr(s string) *string { return &s }

func testAnswerSet(t *testing.T, entries map[string]string) *bookings.AnswerSet {
	t.Helper()
	var questions []models.Question
	var pairs []models.QaPair
	for key, value := range entries {
		q := models.Question{
			ID:           primitive.NewObjectID(),
			Type:         models.TextQuestion,
			QuestionText: key,
			QuestionKey:  key,
		}
		questions = append(questions, q)
		if value != "" {
			pairs = append(pairs, models.QaPair{QuestionID: q.ID, Answer: value})
		}
	}
	return bookings.NewAnswerSet(questions, pairs)
}

func testBooking() *models.Booking {
	checkin := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	checkout := time.Date(2023, 5, 4, 0, 0, 0, 0, time.UTC)
	return &models.Booking{
		ID:                primitive.NewObjectID(),
		UUID:              "11111111-2222-3333-4444-555555555555",
		GuestName:         "Alex Doe",
		GuestEmail:        "alex@example.com",
		PreferredCheckin:  &checkin,
		PreferredCheckout: &checkout,
	}
}

func TestMatchRule(t *testing.T) {
	set := testAnswerSet(t, map[string]string{
		models.KeyAssistanceAnimal: "Yes",
		models.KeyLateArrival:      "No",
		models.KeyArrivalTime:      "",
	})

	t.Run("ExactMatch", func(t *testing.T) {
		rule := models.Trigger{TriggerQuestions: []models.TriggerQuestion{
			{QuestionKey: models.KeyAssistanceAnimal, Answer: strPtr("Yes")},
		}}
		matched, ok := matchRule(rule, set, false)
		require.True(t, ok)
		require.Len(t, matched, 1)
		assert.Equal(t, "Yes", matched[0].Answer)
	})

	t.Run("ExactMatchIsCaseSensitive", func(t *testing.T) {
		rule := models.Trigger{TriggerQuestions: []models.TriggerQuestion{
			{QuestionKey: models.KeyAssistanceAnimal, Answer: strPtr("yes")},
		}}
		_, ok := matchRule(rule, set, false)
		assert.False(t, ok)

		// The legacy foundation-stay comparison folds case.
		_, ok = matchRule(rule, set, true)
		assert.True(t, ok)
	})

	t.Run("NilAnswerFiresOnAnyNonEmpty", func(t *testing.T) {
		rule := models.Trigger{TriggerQuestions: []models.TriggerQuestion{
			{QuestionKey: models.KeyLateArrival},
		}}
		matched, ok := matchRule(rule, set, false)
		require.True(t, ok)
		assert.Equal(t, "No", matched[0].Answer)
	})

	t.Run("UnansweredQuestionNeverFires", func(t *testing.T) {
		rule := models.Trigger{TriggerQuestions: []models.TriggerQuestion{
			{QuestionKey: models.KeyArrivalTime},
		}}
		_, ok := matchRule(rule, set, false)
		assert.False(t, ok)
	})

	t.Run("AllQuestionsMustMatch", func(t *testing.T) {
		rule := models.Trigger{TriggerQuestions: []models.TriggerQuestion{
			{QuestionKey: models.KeyAssistanceAnimal, Answer: strPtr("Yes")},
			{QuestionKey: models.KeyLateArrival, Answer: strPtr("Yes")},
		}}
		_, ok := matchRule(rule, set, false)
		assert.False(t, ok)
	})

	t.Run("UnknownQuestionNeverFires", func(t *testing.T) {
		rule := models.Trigger{TriggerQuestions: []models.TriggerQuestion{
			{QuestionKey: "no_such_key"},
		}}
		_, ok := matchRule(rule, set, false)
		assert.False(t, ok)
	})

	t.Run("NoQuestionsNeverFires", func(t *testing.T) {
		_, ok := matchRule(models.Trigger{}, set, false)
		assert.False(t, ok)
	})
}

func TestDispatch(t *testing.T) {
	booking := testBooking()
	set := testAnswerSet(t, map[string]string{
		models.KeyAssistanceAnimal: "Yes",
		models.KeyCoordinatorEmail: "coordinator@plan.example.com",
		models.KeySupportPackage:   "Level 2",
	})

	animalRule := func(template, recipient string) models.Trigger {
		return models.Trigger{
			ID:            primitive.NewObjectID(),
			Name:          "assistance animal",
			EmailTemplate: template,
			Recipient:     recipient,
			TriggerQuestions: []models.TriggerQuestion{
				{QuestionKey: models.KeyAssistanceAnimal, Answer: strPtr("Yes")},
			},
		}
	}

	t.Run("InternalRuleSendsToConfiguredRecipient", func(t *testing.T) {
		sender := &fakeSender{}
		var marked []primitive.ObjectID
		d := &Dispatcher{Sender: sender, MarkSent: func(_ context.Context, id primitive.ObjectID) error {
			marked = append(marked, id)
			return nil
		}}
		rule := animalRule(models.TemplateInternal, "staff@seabreeze.example.com")

		results := d.Dispatch(context.Background(), EventSubmit, booking, set, []models.Trigger{rule})

		require.Len(t, results, 1)
		assert.True(t, results[0].Sent)
		assert.NoError(t, results[0].Err)
		require.Len(t, sender.sent, 1)
		assert.Equal(t, "staff@seabreeze.example.com", sender.sent[0].To)
		assert.Contains(t, sender.sent[0].HTML, "Alex Doe")
		assert.Equal(t, []primitive.ObjectID{rule.ID}, marked)
	})

	t.Run("ExternalRuleSendsToGuest", func(t *testing.T) {
		sender := &fakeSender{}
		d := &Dispatcher{Sender: sender}
		rule := animalRule(models.TemplateExternal, "")

		results := d.Dispatch(context.Background(), EventSubmit, booking, set, []models.Trigger{rule})

		require.Len(t, results, 1)
		assert.True(t, results[0].Sent)
		require.Len(t, sender.sent, 1)
		assert.Equal(t, booking.GuestEmail, sender.sent[0].To)
	})

	t.Run("FunderRuleSendsToCoordinatorAnswer", func(t *testing.T) {
		sender := &fakeSender{}
		d := &Dispatcher{Sender: sender}
		rule := animalRule(models.TemplateFunder, "")

		results := d.Dispatch(context.Background(), EventSubmit, booking, set, []models.Trigger{rule})

		require.Len(t, results, 1)
		assert.True(t, results[0].Sent)
		require.Len(t, sender.sent, 1)
		assert.Equal(t, "coordinator@plan.example.com", sender.sent[0].To)
	})

	t.Run("FoundationStayComputesCost", func(t *testing.T) {
		sender := &fakeSender{}
		d := &Dispatcher{Sender: sender}
		rule := animalRule(models.TemplateFoundationStay, "foundation@seabreeze.example.com")

		results := d.Dispatch(context.Background(), EventSubmit, booking, set, []models.Trigger{rule})

		require.Len(t, results, 1)
		require.NoError(t, results[0].Err)
		assert.True(t, results[0].Sent)
		require.Len(t, sender.sent, 1)
		// 3 nights at the level 2 rate.
		assert.Contains(t, sender.sent[0].HTML, "938.25")
	})

	t.Run("UnmatchedRuleIsSkipped", func(t *testing.T) {
		sender := &fakeSender{}
		d := &Dispatcher{Sender: sender}
		rule := models.Trigger{
			Name:          "never fires",
			EmailTemplate: models.TemplateInternal,
			Recipient:     "staff@seabreeze.example.com",
			TriggerQuestions: []models.TriggerQuestion{
				{QuestionKey: models.KeyAssistanceAnimal, Answer: strPtr("No")},
			},
		}

		results := d.Dispatch(context.Background(), EventSubmit, booking, set, []models.Trigger{rule})

		require.Len(t, results, 1)
		assert.False(t, results[0].Sent)
		assert.Equal(t, "conditions not met", results[0].Skipped)
		assert.Empty(t, sender.sent)
	})

	t.Run("InvalidRecipientSkipsRuleOnly", func(t *testing.T) {
		sender := &fakeSender{}
		d := &Dispatcher{Sender: sender}
		rules := []models.Trigger{
			animalRule(models.TemplateInternal, "not-an-address"),
			animalRule(models.TemplateInternal, "staff@seabreeze.example.com"),
		}

		results := d.Dispatch(context.Background(), EventSubmit, booking, set, rules)

		require.Len(t, results, 2)
		assert.False(t, results[0].Sent)
		assert.NotEmpty(t, results[0].Skipped)
		assert.True(t, results[1].Sent)
		require.Len(t, sender.sent, 1)
	})

	t.Run("SendFailureIsolatedPerRule", func(t *testing.T) {
		sender := &fakeSender{err: errors.New("smtp down")}
		d := &Dispatcher{Sender: sender}
		rules := []models.Trigger{
			animalRule(models.TemplateInternal, "staff@seabreeze.example.com"),
			animalRule(models.TemplateInternal, "other@seabreeze.example.com"),
		}

		results := d.Dispatch(context.Background(), EventSubmit, booking, set, rules)

		require.Len(t, results, 2)
		assert.Error(t, results[0].Err)
		assert.Error(t, results[1].Err)
		assert.False(t, results[0].Sent)
		assert.False(t, results[1].Sent)
	})

	t.Run("UnknownTemplateIsAnError", func(t *testing.T) {
		sender := &fakeSender{}
		d := &Dispatcher{Sender: sender}
		rule := animalRule("carrier-pigeon", "staff@seabreeze.example.com")

		results := d.Dispatch(context.Background(), EventSubmit, booking, set, []models.Trigger{rule})

		require.Len(t, results, 1)
		assert.Error(t, results[0].Err)
		assert.Empty(t, sender.sent)
	})

	t.Run("UnknownSupportPackageIsAnError", func(t *testing.T) {
		sender := &fakeSender{}
		d := &Dispatcher{Sender: sender}
		noPkg := testAnswerSet(t, map[string]string{
			models.KeyAssistanceAnimal: "Yes",
			models.KeySupportPackage:   "Platinum",
		})
		rule := animalRule(models.TemplateFoundationStay, "foundation@seabreeze.example.com")

		results := d.Dispatch(context.Background(), EventSubmit, booking, noPkg, []models.Trigger{rule})

		require.Len(t, results, 1)
		assert.Error(t, results[0].Err)
		assert.Empty(t, sender.sent)
	})
}
