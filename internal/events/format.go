package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// Format converts an event to a human-readable string for line-mode output.
// Returns the empty string for nil or unknown events.
func Format(event Event) string {
	if event == nil {
		return ""
	}

	switch e := event.(type) {
	case *SessionStartEvent:
		return fmt.Sprintf("starting %s %q (%d steps)", e.Activity, e.Title, e.Steps)
	case *StepStartEvent:
		if e.DurationSeconds == 0 {
			return fmt.Sprintf("step %d: %s [%s] (untimed)", e.Index+1, e.Name, e.Kind)
		}
		return fmt.Sprintf("step %d: %s [%s] %s", e.Index+1, e.Name, e.Kind, clock(e.DurationSeconds))
	case *StepAdvanceEvent:
		if e.Trigger == "expiry" {
			return fmt.Sprintf("step %d time is up", e.From+1)
		}
		return fmt.Sprintf("skipped step %d with %s left", e.From+1, clock(e.SecondsRemaining))
	case *TimerEvent:
		if e.Type() == EventTimerPause {
			return fmt.Sprintf("paused at %s", clock(e.SecondsRemaining))
		}
		return fmt.Sprintf("timer running, %s left", clock(e.SecondsRemaining))
	case *SessionFinishedEvent:
		return "all steps done, confirm to complete or restart"
	case *SessionRestartEvent:
		return "restarting from the first step"
	case *SessionCompleteEvent:
		return fmt.Sprintf("%s complete after %s", e.Activity, clock(e.ElapsedSeconds))
	case *SessionExitEvent:
		if e.Finished {
			return "left without confirming completion"
		}
		return fmt.Sprintf("left at step %d", e.Index+1)
	case *ErrorEvent:
		return "error: " + e.Message
	default:
		return ""
	}
}

func clock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// FormatLine renders one activity log line as "[15:04:05] type: detail".
// Lines that are not JSON are returned unchanged.
func FormatLine(line string) string {
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		return line
	}

	timestamp := ""
	if ts, ok := entry["timestamp"].(string); ok {
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			timestamp = t.Local().Format("15:04:05")
		} else {
			timestamp = ts
		}
	}
	eventType, _ := entry["type"].(string)

	var detail string
	switch EventType(eventType) {
	case EventSessionStart:
		title, _ := entry["title"].(string)
		activity, _ := entry["activity"].(string)
		detail = fmt.Sprintf("%s %q", activity, title)
	case EventStepStart:
		name, _ := entry["name"].(string)
		if idx, ok := entry["index"].(float64); ok {
			detail = fmt.Sprintf("step %d %s", int(idx)+1, name)
		}
	case EventStepAdvance:
		trigger, _ := entry["trigger"].(string)
		if from, ok := entry["from"].(float64); ok {
			detail = fmt.Sprintf("from step %d (%s)", int(from)+1, trigger)
		}
	case EventSessionComplete:
		activity, _ := entry["activity"].(string)
		detail = activity
		if secs, ok := entry["elapsed_seconds"].(float64); ok {
			detail = fmt.Sprintf("%s in %s", activity, clock(int(secs)))
		}
	case EventError:
		detail, _ = entry["message"].(string)
	}

	if detail != "" {
		return fmt.Sprintf("[%s] %s: %s", timestamp, eventType, detail)
	}
	return fmt.Sprintf("[%s] %s", timestamp, eventType)
}
