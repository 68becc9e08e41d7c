package blaseball

import "time"

// FeedEventData is the loosely-typed data payload a feed event carries.
// Values decode from JSON, so numeric fields surface as float64.
type FeedEventData map[string]any

// IsTruthy mirrors Python truthiness for the bootstrap scan: nil, "", 0,
// 0.0 and false are all falsy; everything else is truthy.
func IsTruthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	default:
		return true
	}
}

func (d FeedEventData) String(key string) string {
	if v, ok := d[key].(string); ok {
		return v
	}
	return ""
}

func (d FeedEventData) Int(key string) int {
	switch v := d[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

func (d FeedEventData) Float(key string) float64 {
	switch v := d[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

func (d FeedEventData) Bool(key string) bool {
	v, _ := d[key].(bool)
	return v
}

// FeedEvent is one record from the upstream feed stream.
type FeedEvent struct {
	ID          string
	Type        int
	Description string
	Created     time.Time
	PlayerTags  []string
	Data        FeedEventData
}

// FirstTruthy scans events in order and returns the first truthy value
// stored at key in its Data, or nil if none is truthy.
func FirstTruthy(events []FeedEvent, key string) any {
	for _, e := range events {
		if v, ok := e.Data[key]; ok && IsTruthy(v) {
			return v
		}
	}
	return nil
}

func FirstTruthyString(events []FeedEvent, key string) string {
	v := FirstTruthy(events, key)
	s, _ := v.(string)
	return s
}

func FirstTruthyInt(events []FeedEvent, key string) int {
	v := FirstTruthy(events, key)
	switch t := v.(type) {
	case float64:
		return int(t)
	case int:
		return t
	default:
		return 0
	}
}

func FirstTruthyFloat(events []FeedEvent, key string) float64 {
	v := FirstTruthy(events, key)
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	default:
		return 0
	}
}

func FirstTruthyBool(events []FeedEvent, key string) bool {
	v := FirstTruthy(events, key)
	b, _ := v.(bool)
	return b
}

// UnionNonEmpty collects the set of distinct non-empty string values stored
// at key across all events — used to build a pitcher's initial mod set from
// every bootstrap event's snapshot of it, not just the first.
func UnionNonEmpty(events []FeedEvent, key string) map[Mod]bool {
	out := map[Mod]bool{}
	for _, e := range events {
		if s := e.Data.String(key); s != "" {
			out[Mod(s)] = true
		}
	}
	return out
}
