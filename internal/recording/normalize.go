package recording

import (
	"math"
	"strconv"
	"strings"
)

// NormalizeEvents drops entries without a type and coerces the rest into Events.
func NormalizeEvents(raw []map[string]any) []Event {
	events := make([]Event, 0, len(raw))
	for _, item := range raw {
		typ, ok := eventType(item["type"])
		if !ok {
			continue
		}

		events = append(events, Event{
			Type:      EventType(typ),
			Timestamp: coerceTimestamp(item["timestamp"]),
			X:         numberField(item, "x"),
			Y:         numberField(item, "y"),
			ScrollX:   numberField(item, "scrollX"),
			ScrollY:   numberField(item, "scrollY"),
			Button:    numberField(item, "button"),
			Target:    stringField(item, "target"),
			Phase:     stringField(item, "phase"),
			URL:       stringField(item, "url"),
			Href:      stringField(item, "href"),
			Location:  stringField(item, "location"),
		})
	}
	return events
}

// eventType accepts any truthy scalar. Booleans and numbers are stringified;
// false, zero, NaN, empty strings, objects and arrays are rejected.
func eventType(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, t != ""
	case bool:
		return "true", t
	case float64:
		if t == 0 || math.IsNaN(t) {
			return "", false
		}
		if math.IsInf(t, 0) {
			if t > 0 {
				return "Infinity", true
			}
			return "-Infinity", true
		}
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), t != 0
	case int64:
		return strconv.FormatInt(t, 10), t != 0
	default:
		return "", false
	}
}

func coerceTimestamp(v any) int64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return int64(math.Round(f))
}

func numberField(item map[string]any, key string) *float64 {
	switch t := item[key].(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil
		}
		return &t
	case int:
		f := float64(t)
		return &f
	}
	return nil
}

func stringField(item map[string]any, key string) string {
	s, _ := item[key].(string)
	return s
}
