// Package ics renders tasks as an iCalendar feed.
//
// Recurring tasks carry an RRULE. Lunar rules have no RRULE equivalent and
// are expanded into individual events covering this year and the next. Child
// tasks with a schedule of their own become separate events; unscheduled
// children fold into the parent's description as a checklist.
package ics

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"github.com/tasknote/taskcal/dates"
	"github.com/tasknote/taskcal/recurrence"
	"github.com/tasknote/taskcal/task"
)

const (
	defaultProductID = "-//taskcal//Task Export//EN"
	alarmLead        = "-PT15M"
	// lunarExpansionCap bounds the per-task event count when a lunar rule
	// is unrolled over the two-year export range.
	lunarExpansionCap = 100
)

// Options configure an Exporter. The zero value is usable.
type Options struct {
	Logger *slog.Logger
	// Now anchors the lunar expansion range; defaults to time.Now.
	Now          func() time.Time
	ProductID    string
	CalendarName string
}

// Exporter builds VCALENDAR feeds from task sets.
type Exporter struct {
	logger    *slog.Logger
	now       func() time.Time
	productID string
	calName   string
}

// New builds an Exporter from opts.
func New(opts Options) *Exporter {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	productID := opts.ProductID
	if productID == "" {
		productID = defaultProductID
	}
	return &Exporter{logger: logger, now: now, productID: productID, calName: opts.CalendarName}
}

// Encode writes the calendar for tasks to w.
func (e *Exporter) Encode(w io.Writer, tasks []*task.Task) error {
	if err := ical.NewEncoder(w).Encode(e.Calendar(tasks)); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}
	return nil
}

// Calendar builds the VCALENDAR for the task set. Only root tasks with a
// start date become events; their scheduled children are emitted right
// before them.
func (e *Exporter) Calendar(tasks []*task.Task) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropProductID, e.productID)
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropMethod, "PUBLISH")
	if e.calName != "" {
		cal.Props.SetText(ical.PropName, e.calName)
	}

	children := make(map[string][]*task.Task)
	for _, t := range tasks {
		if t != nil && t.ParentID != "" {
			children[t.ParentID] = append(children[t.ParentID], t)
		}
	}

	stamp := e.now()
	for _, t := range tasks {
		if t == nil || t.ParentID != "" || t.Date == "" {
			continue
		}
		description := t.Note
		for _, child := range children[t.ID] {
			if child.Date == "" && child.Time == "" {
				description += foldedChildLine(child)
				continue
			}
			cal.Children = append(cal.Children, e.childEvent(t, child, stamp))
		}
		cal.Children = append(cal.Children, e.taskEvents(t, description, stamp)...)
	}
	return cal
}

// eventData is everything one VEVENT is built from.
type eventData struct {
	uid, summary, description string
	completed                 bool
	date, clock               string
	endDate, endClock         string
	createdTime               string
}

func (e *Exporter) taskEvents(t *task.Task, description string, stamp time.Time) []*ical.Component {
	if t.Recurring() && t.Repeat.IsLunar() {
		return e.lunarEvents(t, description, stamp)
	}

	ev := e.buildEvent(eventData{
		uid:         eventUID(t.ID, t.Date, t.Time),
		summary:     titleOf(t),
		description: description,
		completed:   t.Completed,
		date:        t.Date,
		clock:       t.Time,
		endDate:     t.EndDate,
		endClock:    t.EndTime,
		createdTime: t.CreatedTime,
	}, stamp)
	e.attachRule(ev, t)
	return []*ical.Component{ev}
}

func (e *Exporter) childEvent(parent, child *task.Task, stamp time.Time) *ical.Component {
	date := child.Date
	if date == "" {
		date = parent.Date
	}
	ev := e.buildEvent(eventData{
		uid:         eventUID(child.ID, date, child.Time),
		summary:     titleOf(child),
		description: child.Note,
		completed:   child.Completed,
		date:        date,
		clock:       child.Time,
		endDate:     child.EndDate,
		endClock:    child.EndTime,
		createdTime: child.CreatedTime,
	}, stamp)
	e.attachRule(ev, child)
	return ev
}

// lunarEvents unrolls a lunar rule into plain events from January 1st of the
// current year through the end of the next.
func (e *Exporter) lunarEvents(t *task.Task, description string, stamp time.Time) []*ical.Component {
	year := e.now().Year()
	start := dates.MakeDate(year, 1, 1)
	end := dates.MakeDate(year+1, 12, 31)

	var out []*ical.Component
	for _, occ := range recurrence.Enumerate(t, start, end, lunarExpansionCap) {
		out = append(out, e.buildEvent(eventData{
			uid:         eventUID(t.ID, occ, ""),
			summary:     titleOf(t),
			description: description,
			completed:   t.Completed,
			date:        occ,
			clock:       t.Time,
			endDate:     t.EndDate,
			endClock:    t.EndTime,
			createdTime: t.CreatedTime,
		}, stamp))
	}
	return out
}

// attachRule sets the RRULE for non-lunar recurring tasks. With an RRULE the
// fixed end is replaced by a duration so every occurrence gets the same
// length.
func (e *Exporter) attachRule(ev *ical.Component, t *task.Task) {
	if !t.Recurring() || t.Repeat.IsLunar() {
		return
	}
	value, err := RuleString(t.Repeat)
	if err != nil {
		e.logger.Warn("skipping recurrence rule", "task", t.ID, "error", err)
		return
	}
	if value == "" {
		return
	}
	ev.Props.SetText(ical.PropRecurrenceRule, value)

	delete(ev.Props, ical.PropDateTimeEnd)
	delete(ev.Props, ical.PropDuration)
	if t.Time == "" {
		ev.Props.SetText(ical.PropDuration, "P1D")
		return
	}
	ev.Props.SetText(ical.PropDuration, eventDuration(t.Time, t.EndTime))
}

func (e *Exporter) buildEvent(d eventData, stamp time.Time) *ical.Component {
	ev := ical.NewComponent(ical.CompEvent)
	ev.Props.SetText(ical.PropUID, d.uid)
	ev.Props.SetText(ical.PropSummary, d.summary)
	if d.description != "" {
		ev.Props.SetText(ical.PropDescription, d.description)
	}
	ev.Props.SetText(ical.PropStatus, statusOf(d.completed))
	ev.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
	if created, ok := dates.ParseDateTime(d.createdTime); ok {
		ev.Props.SetDateTime(ical.PropCreated, created)
	}

	if d.clock != "" {
		ev.Props.SetDateTime(ical.PropDateTimeStart, dateTimeOf(d.date, d.clock))
		if d.endClock != "" {
			end := d.endDate
			if end == "" {
				end = d.date
			}
			ev.Props.SetDateTime(ical.PropDateTimeEnd, dateTimeOf(end, d.endClock))
		} else {
			ev.Props.SetText(ical.PropDuration, "PT1H")
		}
		if !d.completed {
			ev.Children = append(ev.Children, alarm(d.summary))
		}
	} else {
		// All-day events; DTEND is exclusive, hence the extra day.
		end := d.date
		if d.endDate != "" {
			end = d.endDate
		}
		setAllDay(ev, ical.PropDateTimeStart, d.date)
		setAllDay(ev, ical.PropDateTimeEnd, dates.AddDays(end, 1))
	}
	return ev
}

func alarm(summary string) *ical.Component {
	al := ical.NewComponent("VALARM")
	al.Props.SetText("ACTION", "DISPLAY")
	al.Props.SetText(ical.PropDescription, summary)
	al.Props.SetText("TRIGGER", alarmLead)
	return al
}

func setAllDay(ev *ical.Component, name, date string) {
	ev.Props[name] = []ical.Prop{{
		Name:   name,
		Value:  dates.Parse(date).Format("20060102"),
		Params: ical.Params{ical.ParamValue: []string{"DATE"}},
	}}
}

// eventDuration mirrors the start/end clock difference; an end that does not
// extend past the start falls back to one hour.
func eventDuration(clock, endClock string) string {
	if endClock == "" {
		return "PT1H"
	}
	sh, sm := splitClock(clock)
	eh, em := splitClock(endClock)
	h, m := eh-sh, em-sm
	if m < 0 {
		h, m = h-1, m+60
	}
	switch {
	case h <= 0 && m <= 0:
		return "PT1H"
	case h > 0 && m > 0:
		return fmt.Sprintf("PT%dH%dM", h, m)
	case h > 0:
		return fmt.Sprintf("PT%dH", h)
	default:
		return fmt.Sprintf("PT%dM", m)
	}
}

func splitClock(clock string) (hour, minute int) {
	t, err := time.Parse(dates.ISOTime, clock)
	if err != nil {
		return 0, 0
	}
	return t.Hour(), t.Minute()
}

func dateTimeOf(date, clock string) time.Time {
	t := dates.Parse(date)
	if c, err := time.Parse(dates.ISOTime, clock); err == nil {
		t = t.Add(time.Duration(c.Hour())*time.Hour + time.Duration(c.Minute())*time.Minute)
	}
	return t
}

func eventUID(id, date, clock string) string {
	if id == "" {
		id = uuid.NewString()
	}
	uid := id + "-" + date
	if clock != "" {
		uid += "-" + strings.ReplaceAll(clock, ":", "")
	}
	return uid + "@taskcal"
}

func titleOf(t *task.Task) string {
	if t.Title == "" {
		return "(untitled)"
	}
	return t.Title
}

func statusOf(completed bool) string {
	if completed {
		return "CONFIRMED"
	}
	return "TENTATIVE"
}

func foldedChildLine(child *task.Task) string {
	line := "\n- " + titleOf(child)
	if child.Note != "" {
		line += ": " + child.Note
	}
	return line
}
