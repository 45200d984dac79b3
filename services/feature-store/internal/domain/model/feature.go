package model

import "time"

// FeatureRecord is a point-in-time feature map for a single entity.
type FeatureRecord struct {
	Features  map[string]any `json:"features"`
	Timestamp time.Time      `json:"timestamp"`
}
