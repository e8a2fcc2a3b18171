package booking

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/ccsfp-clinic/clinic-gateway/internal/consultation"
)

var calendarTmpl = template.Must(template.New("calendar").Funcs(template.FuncMap{
	"time12": consultation.FormatTime24To12,
}).Parse(`<div id="booking-calendar">
<div class="calendar-header">
<form method="post" action="/booking/prev-month"><button id="prev-month">&lt;</button></form>
<span id="month-label">{{.Label}}</span>
<form method="post" action="/booking/next-month"><button id="next-month">&gt;</button></form>
</div>
<div class="calendar-grid">
{{- range .Cells}}
{{- if .OtherMonth}}
<span class="day other-month">{{.Day}}</span>
{{- else if .Past}}
<span class="day past">{{.Day}}</span>
{{- else}}
<form method="post" action="/booking/select-date"><button class="day{{if .Today}} today{{end}}{{if .Selected}} selected{{end}}" name="date" value="{{.Date}}">{{.Day}}</button></form>
{{- end}}
{{- end}}
</div>
{{- if .SelectedDate}}
<div class="slot-list">
{{- range .Slots}}
{{- if .Available}}
<form method="post" action="/booking/select-slot"><button class="slot{{if .Selected}} selected{{end}}" name="slot" value="{{.Value}}">{{time12 .Value}}</button></form>
{{- else}}
<span class="slot taken">{{time12 .Value}}</span>
{{- end}}
{{- end}}
</div>
{{- end}}
</div>
`))

type slotView struct {
	Value     string
	Available bool
	Selected  bool
}

type calendarView struct {
	Label        string
	Cells        []Cell
	SelectedDate string
	Slots        []slotView
}

// RenderCalendar renders the month grid plus, when a date is selected, the
// slot picker with availability for the given nurse.
func RenderCalendar(e *Engine, availability map[string]bool) (template.HTML, error) {
	year, month := e.Month()
	date, slot := e.Selection()

	view := calendarView{
		Label:        MonthLabel(year, month),
		Cells:        MonthGrid(year, month, time.Now(), date),
		SelectedDate: date,
	}
	if date != "" {
		for _, s := range Slots() {
			available := true
			if availability != nil {
				available = availability[s]
			}
			view.Slots = append(view.Slots, slotView{Value: s, Available: available, Selected: s == slot})
		}
	}

	var buf bytes.Buffer
	if err := calendarTmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render booking calendar: %w", err)
	}
	return template.HTML(buf.String()), nil
}
