package loaders

import "time"

// Record is the flat log row accumulated over one request. Keys map
// directly to message_logs columns.
type Record map[string]any

// Clone returns a shallow copy so the final update can extend the initial
// record without aliasing.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// NormalizeTimestamps recursively converts every time.Time in the value to
// an RFC3339 string, over nested maps and slices. The stored row must
// contain no residual datetime objects.
func NormalizeTimestamps(v any) any {
	switch val := v.(type) {
	case time.Time:
		return val.UTC().Format(time.RFC3339Nano)
	case *time.Time:
		if val == nil {
			return nil
		}
		return val.UTC().Format(time.RFC3339Nano)
	case Record:
		out := make(Record, len(val))
		for k, item := range val {
			out[k] = NormalizeTimestamps(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = NormalizeTimestamps(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = NormalizeTimestamps(item)
		}
		return out
	default:
		return v
	}
}

// Normalize returns a copy of the record with all timestamps serialized.
func (r Record) Normalize() Record {
	return NormalizeTimestamps(r).(Record)
}
