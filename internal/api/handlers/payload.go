package handlers

import (
	"encoding/json"
	"net/http"
	"time"
)

// decodePayload reads the request body into a generic map so validation can
// distinguish absent fields from present-but-empty ones.
func decodePayload(r *http.Request) (map[string]any, bool) {
	payload := map[string]any{}
	if r.Body == nil {
		return payload, true
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return nil, false
	}
	return payload, true
}

func strField(m map[string]any, key string) (string, bool) {
	v, ok := m[key].(string)
	return v, ok
}

func boolField(m map[string]any, key string) (bool, bool) {
	v, ok := m[key].(bool)
	return v, ok
}

func timeField(m map[string]any, key string) (*time.Time, bool) {
	v, ok := m[key].(time.Time)
	if !ok {
		return nil, false
	}
	return &v, true
}
