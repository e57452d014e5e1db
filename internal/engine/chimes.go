package engine

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-artclock/internal/config"
)

// ChimeCalendar renders the hourly chimes of the day containing now as iCalendar data.
// Each chime starts on the hour in now's location and is summarised by its phrase.
func ChimeCalendar(now time.Time, policy PhrasePolicy) ([]byte, error) {
	cal := ical.NewCalendar()

	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropXWRTimezone, now.Location().String())
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	loc := now.Location()
	year, month, day := now.Date()
	dateKey := now.Format(config.DateFormatFullDash)

	for hour := 0; hour < config.ChimesPerDay; hour++ {
		phrase, err := NewTimePhrase(hour, 0, policy)
		if err != nil {
			return nil, err
		}

		start := time.Date(year, month, day, hour, 0, 0, 0, loc)

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatChimeUID, dateKey, hour, config.ICalDomain))
		event.Props.SetText(config.PropSummary, phrase.Text)
		event.Props.Set(dtStampProp)

		// Stamped in UTC so clients need no VTIMEZONE block.
		dtStart := ical.NewProp(config.PropDTStart)
		dtStart.SetDateTime(start.UTC())
		event.Props.Set(dtStart)

		dtEnd := ical.NewProp(config.PropDTEnd)
		dtEnd.SetDateTime(start.Add(config.ChimeDuration).UTC())
		event.Props.Set(dtEnd)

		addAlarm(event, phrase.Text)
		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Debug(config.MsgChimesUpdated,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyDate, dateKey,
		config.LogKeyTimezone, loc.String(),
	)
	return buf.Bytes(), nil
}

// addAlarm appends a DISPLAY alarm firing at the start of the event.
func addAlarm(event *ical.Event, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid "VALUE=TEXT" param
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = config.ICalTrigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}
