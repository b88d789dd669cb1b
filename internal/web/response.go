package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"reflect"
)

// statusMessage is the envelope of write responses and failures.
type statusMessage struct {
	Status string `json:"status"`
	Msg    string `json:"msg"`
	Data   any    `json:"data,omitempty"`
}

func success(msg string, data any) statusMessage {
	return statusMessage{Status: "Success", Msg: msg, Data: data}
}

func failure(msg string) statusMessage {
	return statusMessage{Status: "Failed", Msg: msg}
}

// respond writes data as JSON with status, or just the status when data is
// empty (nil, a nil pointer, or an empty slice or map).
func respond(w http.ResponseWriter, logger *slog.Logger, status int, data any) {
	if isEmpty(data) {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", jsonContentType)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func isEmpty(data any) bool {
	if data == nil {
		return true
	}
	v := reflect.ValueOf(data)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		return v.IsNil()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return false
	}
}
