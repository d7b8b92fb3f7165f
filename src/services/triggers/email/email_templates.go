package email

import (
	"bytes"
	_ "embed"
	"html/template"
	"time"
)

var dateFuncs = template.FuncMap{
	"formatDate": func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.Format("02/01/2006")
	},
}

// MatchedAnswer is one question/answer the rule matched on, as shown in the
// rendered emails.
type MatchedAnswer struct {
	Question string
	Answer   string
}

//go:embed email_funder.html
var funderEmailHTML string

var funderEmailTmpl = template.Must(
	template.New("funder").Funcs(dateFuncs).Parse(funderEmailHTML),
)

type FunderEmailData struct {
	GuestName   string
	BookingUUID string
	Checkin     *time.Time
	Checkout    *time.Time
	Matched     []MatchedAnswer
}

func RenderFunderEmailHTML(data FunderEmailData) (string, error) {
	var buf bytes.Buffer
	if err := funderEmailTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

//go:embed email_internal.html
var internalEmailHTML string

var internalEmailTmpl = template.Must(
	template.New("internal").Funcs(dateFuncs).Parse(internalEmailHTML),
)

type InternalEmailData struct {
	TriggerName string
	GuestName   string
	GuestEmail  string
	BookingUUID string
	Matched     []MatchedAnswer
}

func RenderInternalEmailHTML(data InternalEmailData) (string, error) {
	var buf bytes.Buffer
	if err := internalEmailTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

//go:embed email_external.html
var externalEmailHTML string

var externalEmailTmpl = template.Must(
	template.New("external").Funcs(dateFuncs).Parse(externalEmailHTML),
)

type ExternalEmailData struct {
	GuestName string
	Checkin   *time.Time
	Checkout  *time.Time
	Matched   []MatchedAnswer
}

func RenderExternalEmailHTML(data ExternalEmailData) (string, error) {
	var buf bytes.Buffer
	if err := externalEmailTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

//go:embed email_highlights.html
var highlightsEmailHTML string

var highlightsEmailTmpl = template.Must(
	template.New("highlights").Funcs(dateFuncs).Parse(highlightsEmailHTML),
)

type HighlightsEmailData struct {
	GuestName   string
	BookingUUID string
	Matched     []MatchedAnswer
}

func RenderHighlightsEmailHTML(data HighlightsEmailData) (string, error) {
	var buf bytes.Buffer
	if err := highlightsEmailTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

//go:embed email_foundation_stay.html
var foundationStayEmailHTML string

var foundationStayEmailTmpl = template.Must(
	template.New("foundation-stay").Funcs(dateFuncs).Parse(foundationStayEmailHTML),
)

type FoundationStayEmailData struct {
	GuestName   string
	BookingUUID string
	Package     string
	Nights      int
	NightlyCost float64
	TotalCost   float64
}

func RenderFoundationStayEmailHTML(data FoundationStayEmailData) (string, error) {
	var buf bytes.Buffer
	if err := foundationStayEmailTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

//go:embed email_dates_of_stay.html
var datesOfStayEmailHTML string

var datesOfStayEmailTmpl = template.Must(
	template.New("dates-of-stay").Funcs(dateFuncs).Parse(datesOfStayEmailHTML),
)

type DatesOfStayEmailData struct {
	GuestName string
	Checkin   *time.Time
	Checkout  *time.Time
	Rooms     []string
}

func RenderDatesOfStayEmailHTML(data DatesOfStayEmailData) (string, error) {
	var buf bytes.Buffer
	if err := datesOfStayEmailTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
