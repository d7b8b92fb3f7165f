package triggers

import (
	"context"
	"fmt"
	"log"
	"net/mail"
	"strings"

	"Backend-Seabreeze/src/models"
	"Backend-Seabreeze/src/services/bookings"
	"Backend-Seabreeze/src/services/triggers/email"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event names the lifecycle point a trigger pass runs at. Idempotency across
// repeated passes is the caller's job, via the booking's metainfo flags; the
// dispatcher itself just evaluates and sends.
type Event string

const (
	EventSubmit  Event = "on_submit"
	EventConfirm Event = "on_booking_confirmed"
	EventGeneric Event = "trigger_emails"
)

// RuleResult records what one rule did during a pass. Rules are processed
// independently; one failing never aborts the rest.
type RuleResult struct {
	Trigger models.Trigger
	Sent    bool
	Skipped string
	Err     error
}

// Dispatcher evaluates trigger rules against a booking's answers and sends
// through the injected mail capability.
type Dispatcher struct {
	Sender   email.MailSender
	MarkSent func(ctx context.Context, triggerID primitive.ObjectID) error
}

// NewDispatcher wires the production dispatcher: real sender, sentCount bump
// on success.
func NewDispatcher(sender email.MailSender) *Dispatcher {
	return &Dispatcher{Sender: sender, MarkSent: IncrementSent}
}

// Dispatch runs every rule against the answer set. Each rule resolves its
// questions (key first, text fallback), checks the match condition, and sends
// with the rendering strategy its emailTemplate discriminator selects.
func (d *Dispatcher) Dispatch(ctx context.Context, event Event, booking *models.Booking, set *bookings.AnswerSet, rules []models.Trigger) []RuleResult {
	results := make([]RuleResult, 0, len(rules))
	for _, rule := range rules {
		res := d.dispatchOne(ctx, booking, set, rule)
		if res.Err != nil {
			log.Printf("[triggers] rule %q failed event=%s booking=%s: %v", rule.Name, event, booking.UUID, res.Err)
		} else if res.Skipped != "" {
			log.Printf("[triggers] rule %q skipped event=%s booking=%s: %s", rule.Name, event, booking.UUID, res.Skipped)
		}
		results = append(results, res)
	}
	return results
}

func (d *Dispatcher) dispatchOne(ctx context.Context, booking *models.Booking, set *bookings.AnswerSet, rule models.Trigger) RuleResult {
	res := RuleResult{Trigger: rule}

	lowercase := rule.EmailTemplate == models.TemplateFoundationStay
	matched, ok := matchRule(rule, set, lowercase)
	if !ok {
		res.Skipped = "conditions not met"
		return res
	}

	var (
		recipient string
		subject   string
		html      string
		err       error
	)
	switch rule.EmailTemplate {
	case models.TemplateFunder:
		recipient = set.ByKey(models.KeyCoordinatorEmail)
		subject = "Plan-managed stay: " + booking.GuestName
		html, err = email.RenderFunderEmailHTML(email.FunderEmailData{
			GuestName:   booking.GuestName,
			BookingUUID: booking.UUID,
			Checkin:     booking.PreferredCheckin,
			Checkout:    booking.PreferredCheckout,
			Matched:     matched,
		})

	case models.TemplateInternal:
		recipient = rule.Recipient
		subject = "[Seabreeze] " + rule.Name
		html, err = email.RenderInternalEmailHTML(email.InternalEmailData{
			TriggerName: rule.Name,
			GuestName:   booking.GuestName,
			GuestEmail:  booking.GuestEmail,
			BookingUUID: booking.UUID,
			Matched:     matched,
		})

	case models.TemplateExternal:
		recipient = booking.GuestEmail
		subject = "Your stay with Seabreeze Respite"
		html, err = email.RenderExternalEmailHTML(email.ExternalEmailData{
			GuestName: booking.GuestName,
			Checkin:   booking.PreferredCheckin,
			Checkout:  booking.PreferredCheckout,
			Matched:   matched,
		})

	case models.TemplateBookingHighlights:
		recipient = rule.Recipient
		subject = "Booking highlights: " + booking.GuestName
		html, err = email.RenderHighlightsEmailHTML(email.HighlightsEmailData{
			GuestName:   booking.GuestName,
			BookingUUID: booking.UUID,
			Matched:     matched,
		})

	case models.TemplateFoundationStay:
		recipient = rule.Recipient
		subject = "Foundation stay estimate: " + booking.GuestName
		var data email.FoundationStayEmailData
		data, err = foundationStayData(booking, set)
		if err == nil {
			html, err = email.RenderFoundationStayEmailHTML(data)
		}

	default:
		res.Err = fmt.Errorf("unknown email template %q", rule.EmailTemplate)
		return res
	}
	if err != nil {
		res.Err = err
		return res
	}

	if _, addrErr := mail.ParseAddress(recipient); addrErr != nil {
		// Bad recipient short-circuits this rule only.
		res.Skipped = fmt.Sprintf("invalid recipient %q", recipient)
		return res
	}

	if err := d.Sender.Send(recipient, subject, html); err != nil {
		res.Err = err
		return res
	}
	res.Sent = true

	if d.MarkSent != nil {
		if err := d.MarkSent(ctx, rule.ID); err != nil {
			log.Printf("[triggers] sentCount bump failed rule=%q: %v", rule.Name, err)
		}
	}
	return res
}

// matchRule checks every trigger question of the rule. A nil expected answer
// fires on any non-empty actual answer; otherwise the comparison is exact
// (lower-cased only for the legacy foundation-stay template). All listed
// questions must match; the matched pairs come back for the renderers.
func matchRule(rule models.Trigger, set *bookings.AnswerSet, lowercase bool) ([]email.MatchedAnswer, bool) {
	if len(rule.TriggerQuestions) == 0 {
		return nil, false
	}

	var matched []email.MatchedAnswer
	for _, tq := range rule.TriggerQuestions {
		question, ok := set.ResolveQuestion(tq.QuestionKey, tq.QuestionText, tq.QuestionID)
		if !ok {
			return nil, false
		}
		actual := set.ByID(question.ID)
		if actual == "" {
			return nil, false
		}
		if tq.Answer != nil {
			expected := *tq.Answer
			got := actual
			if lowercase {
				expected = strings.ToLower(expected)
				got = strings.ToLower(got)
			}
			if expected != got {
				return nil, false
			}
		}
		matched = append(matched, email.MatchedAnswer{Question: question.QuestionText, Answer: actual})
	}
	return matched, true
}

// Nightly rates for the derived foundation support-package cost.
var supportPackageRates = map[string]float64{
	"level 1": 210.50,
	"level 2": 312.75,
	"level 3": 428.00,
}

func foundationStayData(booking *models.Booking, set *bookings.AnswerSet) (email.FoundationStayEmailData, error) {
	pkg := set.ByKey(models.KeySupportPackage)
	rate, ok := supportPackageRates[strings.ToLower(strings.TrimSpace(pkg))]
	if !ok {
		return email.FoundationStayEmailData{}, fmt.Errorf("unknown support package %q", pkg)
	}
	if booking.PreferredCheckin == nil || booking.PreferredCheckout == nil {
		return email.FoundationStayEmailData{}, fmt.Errorf("booking %s has no stay dates for cost estimate", booking.UUID)
	}
	nights := int(booking.PreferredCheckout.Sub(*booking.PreferredCheckin).Hours() / 24)
	if nights < 1 {
		nights = 1
	}
	return email.FoundationStayEmailData{
		GuestName:   booking.GuestName,
		BookingUUID: booking.UUID,
		Package:     pkg,
		Nights:      nights,
		NightlyCost: rate,
		TotalCost:   rate * float64(nights),
	}, nil
}
