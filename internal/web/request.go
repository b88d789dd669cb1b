package web

import (
	"encoding/json"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/vbonduro/crudapp/internal/record"
	"github.com/vbonduro/crudapp/internal/sanitize"
)

const (
	apiPrefix       = "/api/"
	jsonContentType = "application/json"
	routeParam      = "x"
)

// apiRequest is the parsed, untyped view of one API call.
type apiRequest struct {
	Method      string
	ContentType string

	// Route is the resource path below the API prefix, e.g. "items/7".
	Route string
	Name  string

	// ID comes from the second route segment or a JSON body "id" key.
	// IDPresent is set even when the value was not numeric (ID is then 0).
	ID        int64
	IDPresent bool

	// QueryID comes from the "id" request parameter.
	QueryID        int64
	QueryIDPresent bool

	// Payload is the decoded JSON object, nil when the body was not JSON,
	// empty, or malformed.
	Payload map[string]any
	Params  url.Values
}

// readID resolves the id for read operations, where the request
// parameter takes precedence over the route.
func (r *apiRequest) readID() (int64, bool) {
	if r.QueryIDPresent {
		return r.QueryID, true
	}
	return r.ID, r.IDPresent
}

// writeID resolves the id for update and delete, where the route or body
// takes precedence over the request parameter.
func (r *apiRequest) writeID() int64 {
	if r.IDPresent {
		return r.ID
	}
	return r.QueryID
}

// param returns a named value from the JSON payload or, failing that, the
// query/form parameters.
func (r *apiRequest) param(name string) string {
	if raw, ok := r.Payload[name]; ok {
		return record.Text(raw)
	}
	return r.Params.Get(name)
}

func parseRequest(w http.ResponseWriter, r *http.Request, maxBody int64, logger *slog.Logger) *apiRequest {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)

	req := &apiRequest{
		Method:      r.Method,
		ContentType: mediaType(r.Header.Get("Content-Type")),
	}

	if req.ContentType == jsonContentType {
		req.Payload = decodePayload(r.Body)
		req.Params = r.URL.Query()
	} else {
		if err := r.ParseForm(); err != nil {
			logger.Debug("failed to parse form", "error", err)
		}
		req.Params = r.Form
		if req.Params == nil {
			req.Params = r.URL.Query()
		}
	}

	logParams(logger, req.Params, req.Payload)

	req.Route = strings.Trim(r.URL.Query().Get(routeParam), "/")
	if req.Route == "" {
		req.Route = strings.Trim(strings.TrimPrefix(r.URL.Path, apiPrefix), "/")
	}
	segments := strings.Split(req.Route, "/")
	req.Name = strings.ToLower(strings.TrimSpace(segments[0]))
	if len(segments) > 1 && strings.TrimSpace(segments[1]) != "" {
		req.ID, req.IDPresent = parseID(segments[1]), true
	}

	if raw, ok := req.Payload["id"]; ok {
		if s := record.Text(raw); s != "" {
			req.ID, req.IDPresent = parseID(s), true
		}
	}

	if s := req.Params.Get("id"); s != "" {
		req.QueryID, req.QueryIDPresent = parseID(s), true
	}

	return req
}

// parseID coerces an id segment; anything but a base-10 integer becomes 0.
func parseID(s string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func mediaType(header string) string {
	if header == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(header)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(header))
	}
	return mt
}

func decodePayload(body io.Reader) map[string]any {
	dec := json.NewDecoder(body)
	dec.UseNumber()
	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil
	}
	return payload
}

// logParams runs every inbound scalar through the sanitizer and logs it.
func logParams(logger *slog.Logger, params url.Values, payload map[string]any) {
	for k, vs := range params {
		for _, v := range vs {
			logger.Debug("request parameter", "key", sanitize.Value(k), "value", sanitize.Value(v))
		}
	}
	for k, raw := range payload {
		logger.Debug("request field", "key", sanitize.Value(k), "value", sanitize.Value(record.Text(raw)))
	}
}
