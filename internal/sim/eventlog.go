package sim

import (
	"fmt"
	"strings"
)

// Event categories.
const (
	CatCommand = "command"
	CatBuild   = "build"
	CatTrain   = "train"
	CatTarget  = "target"
	CatPath    = "path"
	CatState   = "state"
	CatCombat  = "combat"
	CatDeath   = "death"
	CatWave    = "wave"
	CatMessage = "message"
)

// Event is one structured record produced by a tick.
type Event struct {
	Tick     int
	Entity   string  // label e.g. "A3", "H12", or "--" for global events
	Side     string  // "ally", "hostile", "structure" or "--"
	Category string  // see Cat* constants
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the event as a fixed-width log line.
//
//	[T=042] H12  combat    attack           Goblin attacked House for 1 damage.
func (e Event) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-9s %-16s %s",
		e.Tick, e.Entity, e.Category, e.Key, e.Value)
}

// EventLog collects structured events across ticks. Unlike the MessageBoard it
// is unbounded and machine-readable.
type EventLog struct {
	entries []Event
	verbose bool
}

// NewEventLog creates an EventLog. If verbose is true, per-tick movement
// entries are also recorded.
func NewEventLog(verbose bool) *EventLog {
	return &EventLog{verbose: verbose}
}

// Add records a new entry.
func (el *EventLog) Add(tick int, entity, side, category, key, value string, numVal float64) {
	el.entries = append(el.entries, Event{
		Tick:     tick,
		Entity:   entity,
		Side:     side,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (el *EventLog) AddVerbose(tick int, entity, side, category, key, value string, numVal float64) {
	if !el.verbose {
		return
	}
	el.Add(tick, entity, side, category, key, value, numVal)
}

// Len returns the number of recorded entries.
func (el *EventLog) Len() int {
	return len(el.entries)
}

// Entries returns all recorded entries.
func (el *EventLog) Entries() []Event {
	return el.entries
}

// Since returns the entries recorded at or after index i.
func (el *EventLog) Since(i int) []Event {
	if i >= len(el.entries) {
		return nil
	}
	out := make([]Event, len(el.entries)-i)
	copy(out, el.entries[i:])
	return out
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (el *EventLog) Filter(category, key string) []Event {
	var out []Event
	for _, e := range el.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterEntity returns entries for a specific entity label.
func (el *EventLog) FilterEntity(label string) []Event {
	var out []Event
	for _, e := range el.entries {
		if e.Entity == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (el *EventLog) FilterTickRange(fromTick, toTick int) []Event {
	var out []Event
	for _, e := range el.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (el *EventLog) CountCategory(category, key string) int {
	return len(el.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (el *EventLog) LastOf(category, key string) (Event, bool) {
	entries := el.Filter(category, key)
	if len(entries) == 0 {
		return Event{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (el *EventLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range el.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (el *EventLog) Format() string {
	return formatEvents(el.entries)
}

// FormatRange returns a log string filtered to a tick range.
func (el *EventLog) FormatRange(fromTick, toTick int) string {
	return formatEvents(el.FilterTickRange(fromTick, toTick))
}

func formatEvents(events []Event) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
