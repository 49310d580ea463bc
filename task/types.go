// Package task defines the plain records the engine computes over: tasks,
// recurrence rules, per-occurrence overrides and materialized instances.
//
// The records are owned and mutated by the external task store; everything in
// this module only reads them and returns derived values. JSON tags mirror
// the store's serialized shape so records can be handed over 1:1.
package task

import (
	"strings"

	"github.com/google/uuid"
)

// Priority of a task.
type Priority string

const (
	PriorityNone   Priority = "none"
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Kind discriminates the recurrence rule variants. Each kind reads only its
// own constraint fields on Rule.
type Kind string

const (
	KindDaily   Kind = "daily"
	KindWeekly  Kind = "weekly"
	KindMonthly Kind = "monthly"
	KindYearly  Kind = "yearly"
	KindCustom  Kind = "custom"
	// KindIntervalPattern repeats on a fixed list of day offsets from the
	// anchor date, e.g. the spaced-repetition default of 1, 2, 4, 7, 15.
	KindIntervalPattern Kind = "interval-pattern"
	KindLunarMonthly    Kind = "lunar-monthly"
	KindLunarYearly     Kind = "lunar-yearly"
)

// EndType says how a recurrence terminates.
type EndType string

const (
	EndNever   EndType = "never"
	EndByDate  EndType = "date"
	EndByCount EndType = "count"
)

// DefaultIntervalPattern is the day-offset list used by interval-pattern
// rules that do not carry their own.
var DefaultIntervalPattern = []int{1, 2, 4, 7, 15}

// Rule is a recurrence rule. The Kind selects which constraint fields apply:
//
//   - weekly: WeekDays (Sunday=0). Without an explicit set the rule falls
//     back to the anchor's weekday; either way the interval is checked at
//     week granularity.
//   - monthly: MonthDays, or the anchor's day-of-month with Interval.
//   - yearly: Months+MonthDays together, or the anchor's month/day with
//     Interval.
//   - custom: any combination of WeekDays, MonthDays and Months; empty sets
//     do not constrain.
//   - interval-pattern: IntervalPattern day offsets from the anchor.
//   - lunar-monthly: LunarDay. lunar-yearly: LunarMonth and LunarDay.
type Rule struct {
	Enabled  bool `json:"enabled"`
	Type     Kind `json:"type"`
	Interval int  `json:"interval,omitempty"` // every N days/weeks/months/years, minimum 1

	WeekDays        []int `json:"weekDays,omitempty"`
	MonthDays       []int `json:"monthDays,omitempty"`
	Months          []int `json:"months,omitempty"`
	IntervalPattern []int `json:"intervalPattern,omitempty"`
	LunarMonth      int   `json:"lunarMonth,omitempty"`
	LunarDay        int   `json:"lunarDay,omitempty"`

	EndType  EndType `json:"endType,omitempty"`
	EndDate  string  `json:"endDate,omitempty"`
	EndCount int     `json:"endCount,omitempty"`

	// ExcludeDates lists canonical occurrence dates removed by the user.
	ExcludeDates []string `json:"excludeDates,omitempty"`
	// Overrides maps canonical occurrence dates to per-occurrence edits.
	// Keys are always the unmodified enumerated date, never the overridden
	// one, so completion tracking survives date edits.
	Overrides map[string]Override `json:"instanceModifications,omitempty"`
	// CompletedDates holds canonical dates of completed occurrences.
	CompletedDates []string `json:"completedInstances,omitempty"`
	// CompletedTimes maps canonical dates to completion timestamps
	// ("YYYY-MM-DD HH:MM").
	CompletedTimes map[string]string `json:"completedTimes,omitempty"`
}

// EffectiveInterval returns the rule interval, never less than 1.
func (r *Rule) EffectiveInterval() int {
	if r.Interval < 1 {
		return 1
	}
	return r.Interval
}

// Pattern returns the day-offset pattern for interval-pattern rules.
func (r *Rule) Pattern() []int {
	if len(r.IntervalPattern) > 0 {
		return r.IntervalPattern
	}
	return DefaultIntervalPattern
}

// IsLunar reports whether the rule is driven by the lunar calendar.
func (r *Rule) IsLunar() bool {
	return r.Type == KindLunarMonthly || r.Type == KindLunarYearly
}

// Excluded reports whether date is in the rule's excluded-dates set.
func (r *Rule) Excluded(date string) bool {
	for _, d := range r.ExcludeDates {
		if d == date {
			return true
		}
	}
	return false
}

// CompletedOn reports whether the occurrence on the canonical date is marked
// complete.
func (r *Rule) CompletedOn(date string) bool {
	for _, d := range r.CompletedDates {
		if d == date {
			return true
		}
	}
	return false
}

// Task is a recurring or one-off item as stored by the external task store.
type Task struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
	Note  string `json:"note,omitempty"`

	Date    string `json:"date,omitempty"`    // start date, ISO
	Time    string `json:"time,omitempty"`    // start time, HH:MM
	EndDate string `json:"endDate,omitempty"` // spanning occurrences
	EndTime string `json:"endTime,omitempty"`

	Priority   Priority `json:"priority,omitempty"`
	CategoryID string   `json:"categoryId,omitempty"` // comma-joined set, order-insignificant
	ProjectID  string   `json:"projectId,omitempty"`
	// ParentID is a back-reference, not ownership: a child's lifecycle is
	// independent of its parent.
	ParentID string `json:"parentId,omitempty"`

	Repeat *Rule `json:"repeat,omitempty"` // absent means non-recurring

	Completed     bool   `json:"completed,omitempty"`
	CompletedTime string `json:"completedTime,omitempty"`
	CreatedTime   string `json:"createdTime,omitempty"` // "YYYY-MM-DD HH:MM"

	// DailyCompletions tracks per-day completion of multi-day spanning
	// tasks; each spanned day is completed independently.
	DailyCompletions map[string]bool `json:"dailyCompletions,omitempty"`

	// AvailableToday marks an unscheduled task that may be picked up any
	// day on or after AvailableStartDate; DailyAvailableDone lists the days
	// it was already done.
	AvailableToday     bool     `json:"isAvailableToday,omitempty"`
	AvailableStartDate string   `json:"availableStartDate,omitempty"`
	DailyAvailableDone []string `json:"dailyDessertCompleted,omitempty"`

	Milestone bool     `json:"isMilestone,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	SortOrder int      `json:"sort,omitempty"`
}

// Recurring reports whether the task has an enabled recurrence rule.
func (t *Task) Recurring() bool {
	return t.Repeat != nil && t.Repeat.Enabled && t.Repeat.Type != ""
}

// Override lookup for the canonical occurrence date; the zero Override when
// none exists.
func (t *Task) Override(date string) (Override, bool) {
	if t.Repeat == nil || t.Repeat.Overrides == nil {
		return Override{}, false
	}
	o, ok := t.Repeat.Overrides[date]
	return o, ok
}

// OccurrenceKey derives the stable identifier used for completion and
// override lookups. The date is always the canonical enumerated one.
func OccurrenceKey(taskID, canonicalDate string) string {
	return taskID + "_" + canonicalDate
}

// KeyDate extracts the canonical date back out of an occurrence key.
func KeyDate(key string) string {
	if i := strings.LastIndexByte(key, '_'); i >= 0 {
		return key[i+1:]
	}
	return key
}

// NewID returns a fresh task identifier.
func NewID() string {
	return uuid.NewString()
}

// Instance is one materialized occurrence of a task. Instances are transient:
// built fresh for every query window, never persisted.
type Instance struct {
	Task

	// InstanceID is the occurrence key, OriginalID the source task.
	InstanceID string `json:"instanceId"`
	OriginalID string `json:"originalId"`
	IsRepeated bool   `json:"isRepeatedInstance"`
}
