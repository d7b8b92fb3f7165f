package jobs

import (
	"encoding/json"
	"strings"

	"github.com/hibiken/asynq"
)

// Task types handled by the worker. One per background operation of the
// engine; every handler is guarded by a metainfo flag read-check-set.
const (
	TypeDisseminate          = "booking:disseminate"
	TypeTriggerEmailsSubmit  = "booking:trigger-emails:submit"
	TypeTriggerEmailsConfirm = "booking:trigger-emails:confirm"
	TypePdfExport            = "booking:pdf-export"
	TypeEvaluateTriggers     = "booking:evaluate-email-triggers"
	TypeSendTriggerEmail     = "booking:send-trigger-email"
	TypeSendDatesOfStay      = "booking:send-dates-of-stay"
)

type BookingPayload struct {
	BookingUUID string `json:"bookingUuid"`
}

func (p *BookingPayload) Normalize() {
	p.BookingUUID = strings.TrimSpace(p.BookingUUID)
}

type TriggerEmailPayload struct {
	BookingUUID string `json:"bookingUuid"`
	TriggerID   string `json:"triggerId"`
}

func newBookingTask(taskType, bookingUUID string) (*asynq.Task, error) {
	payload := BookingPayload{BookingUUID: bookingUUID}
	payload.Normalize()

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(taskType, b), nil
}

func NewDisseminateTask(bookingUUID string) (*asynq.Task, error) {
	return newBookingTask(TypeDisseminate, bookingUUID)
}

func NewTriggerEmailsSubmitTask(bookingUUID string) (*asynq.Task, error) {
	return newBookingTask(TypeTriggerEmailsSubmit, bookingUUID)
}

func NewTriggerEmailsConfirmTask(bookingUUID string) (*asynq.Task, error) {
	return newBookingTask(TypeTriggerEmailsConfirm, bookingUUID)
}

func NewPdfExportTask(bookingUUID string) (*asynq.Task, error) {
	return newBookingTask(TypePdfExport, bookingUUID)
}

func NewEvaluateTriggersTask(bookingUUID string) (*asynq.Task, error) {
	return newBookingTask(TypeEvaluateTriggers, bookingUUID)
}

func NewSendDatesOfStayTask(bookingUUID string) (*asynq.Task, error) {
	return newBookingTask(TypeSendDatesOfStay, bookingUUID)
}

func NewSendTriggerEmailTask(bookingUUID, triggerID string) (*asynq.Task, error) {
	b, err := json.Marshal(TriggerEmailPayload{
		BookingUUID: strings.TrimSpace(bookingUUID),
		TriggerID:   strings.TrimSpace(triggerID),
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSendTriggerEmail, b), nil
}
