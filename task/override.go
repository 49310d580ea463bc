package task

import (
	"encoding/json"

	"github.com/samber/mo"
)

// Override carries per-occurrence edits keyed by the canonical occurrence
// date. Every field distinguishes "not overridden" (None) from an explicit
// value, matching the store's undefined-vs-present JSON semantics. A stored
// explicit null date means the occurrence is suppressed entirely; that state
// surfaces here as Skip.
type Override struct {
	Skip bool

	Date       mo.Option[string]
	Time       mo.Option[string]
	EndDate    mo.Option[string]
	EndTime    mo.Option[string]
	Note       mo.Option[string]
	Priority   mo.Option[Priority]
	CategoryID mo.Option[string]
	ProjectID  mo.Option[string]
	// CompletedTime is an explicit per-occurrence completion timestamp.
	CompletedTime mo.Option[string]
}

// DateOr returns the overridden date, or inherited when not overridden.
// A suppressed occurrence has no date of its own.
func (o Override) DateOr(inherited string) string {
	if o.Skip {
		return inherited
	}
	return orElse(o.Date, inherited)
}

// TimeOr resolves the time field against the inherited value.
func (o Override) TimeOr(inherited string) string { return orElse(o.Time, inherited) }

// EndDateOr resolves the end date field against the inherited value.
func (o Override) EndDateOr(inherited string) string { return orElse(o.EndDate, inherited) }

// EndTimeOr resolves the end time field against the inherited value.
func (o Override) EndTimeOr(inherited string) string { return orElse(o.EndTime, inherited) }

// NoteOr resolves the note field against the inherited value.
func (o Override) NoteOr(inherited string) string { return orElse(o.Note, inherited) }

// PriorityOr resolves the priority field against the inherited value.
func (o Override) PriorityOr(inherited Priority) Priority { return orElse(o.Priority, inherited) }

// CategoryOr resolves the category field against the inherited value.
func (o Override) CategoryOr(inherited string) string { return orElse(o.CategoryID, inherited) }

// ProjectOr resolves the project field against the inherited value.
func (o Override) ProjectOr(inherited string) string { return orElse(o.ProjectID, inherited) }

func orElse[T any](o mo.Option[T], inherited T) T {
	if v, ok := o.Get(); ok {
		return v
	}
	return inherited
}

// overrideJSON is the stored wire shape. Pointer fields distinguish absent
// keys from explicit nulls via json.RawMessage on the date.
type overrideJSON struct {
	Date          json.RawMessage `json:"date,omitempty"`
	Time          *string         `json:"time,omitempty"`
	EndDate       *string         `json:"endDate,omitempty"`
	EndTime       *string         `json:"endTime,omitempty"`
	Note          *string         `json:"note,omitempty"`
	Priority      *Priority       `json:"priority,omitempty"`
	CategoryID    *string         `json:"categoryId,omitempty"`
	ProjectID     *string         `json:"projectId,omitempty"`
	CompletedTime *string         `json:"completedTime,omitempty"`
}

// UnmarshalJSON maps the stored record onto option fields, turning an
// explicit `"date": null` into Skip.
func (o *Override) UnmarshalJSON(data []byte) error {
	var raw overrideJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*o = Override{}
	if raw.Date != nil {
		if string(raw.Date) == "null" {
			o.Skip = true
		} else {
			var s string
			if err := json.Unmarshal(raw.Date, &s); err != nil {
				return err
			}
			o.Date = mo.Some(s)
		}
	}
	o.Time = fromPtr(raw.Time)
	o.EndDate = fromPtr(raw.EndDate)
	o.EndTime = fromPtr(raw.EndTime)
	o.Note = fromPtr(raw.Note)
	o.Priority = fromPtr(raw.Priority)
	o.CategoryID = fromPtr(raw.CategoryID)
	o.ProjectID = fromPtr(raw.ProjectID)
	o.CompletedTime = fromPtr(raw.CompletedTime)
	return nil
}

// MarshalJSON writes the stored wire shape, emitting `"date": null` for a
// suppressed occurrence.
func (o Override) MarshalJSON() ([]byte, error) {
	raw := overrideJSON{
		Time:          toPtr(o.Time),
		EndDate:       toPtr(o.EndDate),
		EndTime:       toPtr(o.EndTime),
		Note:          toPtr(o.Note),
		Priority:      toPtr(o.Priority),
		CategoryID:    toPtr(o.CategoryID),
		ProjectID:     toPtr(o.ProjectID),
		CompletedTime: toPtr(o.CompletedTime),
	}
	if o.Skip {
		raw.Date = json.RawMessage("null")
	} else if d, ok := o.Date.Get(); ok {
		b, err := json.Marshal(d)
		if err != nil {
			return nil, err
		}
		raw.Date = b
	}
	return json.Marshal(raw)
}

func fromPtr[T any](p *T) mo.Option[T] {
	if p == nil {
		return mo.None[T]()
	}
	return mo.Some(*p)
}

func toPtr[T any](o mo.Option[T]) *T {
	if v, ok := o.Get(); ok {
		return &v
	}
	return nil
}
