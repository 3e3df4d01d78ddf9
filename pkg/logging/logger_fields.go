package logging

import (
	"math"
	"time"
)

func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Float64 stores non-finite values as strings so entries stay valid JSON
func Float64(key string, value float64) Field {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return Field{Key: key, Value: formatNonFinite(value)}
	}
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Grid field helpers

func Component(name string) Field {
	return String("component", name)
}

func Operation(op string) Field {
	return String("operation", op)
}

func RunID(id string) Field {
	return String("run_id", id)
}

func NodeID(id int) Field {
	return Int("node_id", id)
}

func EdgeID(id int) Field {
	return Int("edge_id", id)
}

func Kind(kind string) Field {
	return String("kind", kind)
}

func Step(n int) Field {
	return Int("step", n)
}

func Severity(v float64) Field {
	return Float64("severity", v)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Count(n int) Field {
	return Int("count", n)
}

func formatNonFinite(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	default:
		return "NaN"
	}
}
