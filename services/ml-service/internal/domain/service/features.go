package service

import "encoding/json"

// floatFeature extracts a numeric feature from a raw feature map, falling
// back to the model default when the key is absent or not numeric.
func floatFeature(features map[string]any, key string, fallback float64) float64 {
	v, ok := features[key]
	if !ok || v == nil {
		return fallback
	}
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return fallback
		}
		return f
	case bool:
		if x {
			return 1
		}
		return 0
	default:
		return fallback
	}
}

// boolFeature extracts a boolean feature from a raw feature map.
func boolFeature(features map[string]any, key string, fallback bool) bool {
	v, ok := features[key]
	if !ok || v == nil {
		return fallback
	}
	switch x := v.(type) {
	case bool:
		return x
	case float64:
		return x != 0
	case int:
		return x != 0
	default:
		return fallback
	}
}

// clamp bounds v to the [lo, hi] interval.
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
