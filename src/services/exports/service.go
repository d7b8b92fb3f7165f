package exports

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"net/url"
	"time"

	"Backend-Seabreeze/src/models"
	"Backend-Seabreeze/src/services/bookings"
	"Backend-Seabreeze/src/services/storage"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

//go:embed booking_summary.html
var summaryHTML string

var summaryTmpl = template.Must(
	template.New("summary").
		Funcs(template.FuncMap{
			"formatDate": func(t *time.Time) string {
				if t == nil {
					return "-"
				}
				return t.Format("02/01/2006")
			},
		}).
		Parse(summaryHTML),
)

type SummaryData struct {
	Booking models.Booking
	Rooms   []models.Room
	Now     time.Time
}

// RenderSummaryHTML renders the booking summary page fed to the PDF printer.
func RenderSummaryHTML(data SummaryData) (string, error) {
	var buf bytes.Buffer
	if err := summaryTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ExportBookingPDF prints the booking summary to PDF in headless Chrome and
// stores it at bookings/<uuid>/summary.pdf. Returns the storage path.
func ExportBookingPDF(ctx context.Context, booking *models.Booking, store *storage.LocalStorage) (string, error) {
	rooms, err := bookings.GetBookingRooms(ctx, booking.ID)
	if err != nil {
		return "", err
	}

	html, err := RenderSummaryHTML(SummaryData{Booking: *booking, Rooms: rooms, Now: time.Now()})
	if err != nil {
		return "", err
	}

	pdf, err := printHTMLToPDF(ctx, html)
	if err != nil {
		return "", err
	}

	path := fmt.Sprintf("bookings/%s/summary.pdf", booking.UUID)
	if err := store.Write(path, pdf); err != nil {
		return "", err
	}
	return path, nil
}

func printHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true), // required when running as root in a container
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	taskCtx, timeoutCancel := context.WithTimeout(taskCtx, 30*time.Second)
	defer timeoutCancel()

	var pdf []byte
	err := chromedp.Run(taskCtx,
		chromedp.Navigate("data:text/html,"+url.PathEscape(html)),
		chromedp.Sleep(200*time.Millisecond),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdf, nil
}
