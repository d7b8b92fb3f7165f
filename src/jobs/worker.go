package jobs

import (
	"log"

	DB "Backend-Seabreeze/src/database"
	"Backend-Seabreeze/src/services/storage"
	"Backend-Seabreeze/src/services/triggers"
	"Backend-Seabreeze/src/services/triggers/email"

	"github.com/hibiken/asynq"
)

// StartWorker runs the asynq server on its own goroutine. Outbound email and
// PDF work is long-latency; queuing it here keeps the HTTP handlers from
// awaiting it inline, and asynq's retry policy covers transport failures.
func StartWorker(sender email.MailSender, store *storage.LocalStorage) {
	if DB.RedisURI == "" {
		log.Println("⚠️ Redis not available. Background worker will not start.")
		return
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: DB.RedisURI},
		asynq.Config{Concurrency: 5},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeDisseminate, HandleDisseminate(store))
	mux.HandleFunc(TypeTriggerEmailsSubmit,
		HandleTriggerEmails(sender, triggers.EventSubmit, "triggered_emails.on_submit"))
	mux.HandleFunc(TypeTriggerEmailsConfirm,
		HandleTriggerEmails(sender, triggers.EventConfirm, "triggered_emails.on_booking_confirmed"))
	mux.HandleFunc(TypePdfExport, HandlePdfExport(store))
	mux.HandleFunc(TypeEvaluateTriggers, HandleEvaluateTriggers(sender))
	mux.HandleFunc(TypeSendTriggerEmail, HandleSendTriggerEmail(sender))
	mux.HandleFunc(TypeSendDatesOfStay, HandleSendDatesOfStay(sender))

	go func() {
		if err := srv.Run(mux); err != nil {
			log.Println("❌ Asynq worker stopped:", err)
		}
	}()
	log.Println("✅ Background worker started")
}
