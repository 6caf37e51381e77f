package mongo

import (
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Date fields in the enquiries collection were written by several
// generations of clients and arrive in whatever shape each one used:
// native BSON datetimes, RFC 3339 strings, epoch milliseconds, raw
// {seconds: N} documents. Every read goes through normalizeDate so the
// rest of the code only ever sees time.Time.

// normalizeDate converts a raw BSON value into a UTC time.Time. It
// returns false for absent or unrecognizable values and never panics;
// unknown shapes are logged as warnings and treated as absent.
func normalizeDate(raw any, logger *slog.Logger) (time.Time, bool) {
	switch v := raw.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return v.UTC(), true
	case primitive.DateTime:
		return v.Time().UTC(), true
	case primitive.Timestamp:
		return time.Unix(int64(v.T), 0).UTC(), true
	case string:
		return parseDateString(v)
	case int64:
		return time.UnixMilli(v).UTC(), true
	case int32:
		return time.UnixMilli(int64(v)).UTC(), true
	case float64:
		return time.UnixMilli(int64(v)).UTC(), true
	case primitive.D:
		if secs, ok := secondsField(v.Map()); ok {
			return time.Unix(secs, 0).UTC(), true
		}
	case primitive.M:
		if secs, ok := secondsField(v); ok {
			return time.Unix(secs, 0).UTC(), true
		}
	case map[string]any:
		if secs, ok := secondsField(v); ok {
			return time.Unix(secs, 0).UTC(), true
		}
	}
	if logger != nil {
		logger.Warn("unrecognized date shape in store", "type", typeName(raw))
	}
	return time.Time{}, false
}

// denormalizeDate converts a value into the store's native datetime for
// writing. Unusable input falls back to now; callers must not lean on
// that fallback for correctness-critical fields.
func denormalizeDate(v any) primitive.DateTime {
	switch val := v.(type) {
	case primitive.DateTime:
		return val
	case time.Time:
		if !val.IsZero() {
			return primitive.NewDateTimeFromTime(val)
		}
	case *time.Time:
		if val != nil && !val.IsZero() {
			return primitive.NewDateTimeFromTime(*val)
		}
	case string:
		if t, ok := parseDateString(val); ok {
			return primitive.NewDateTimeFromTime(t)
		}
	}
	return primitive.NewDateTimeFromTime(time.Now())
}

func parseDateString(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func secondsField(m map[string]any) (int64, bool) {
	raw, ok := m["seconds"]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case float64:
		return int64(v), true
	}
	return 0, false
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
