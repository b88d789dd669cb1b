package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/vbonduro/crudapp/internal/logging"
	"github.com/vbonduro/crudapp/internal/service"
)

// handleAPI is the single entry point of the /api/ tree. It owns method
// handling so unsupported verbs get 404 and mismatched verbs get 406.
func (s *Server) handleAPI(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), s.logger)
	req := parseRequest(w, r, s.maxBodyBytes, logger)
	op := resolve(req)

	switch op.kind {
	case opUnsupported:
		logger.Warn("request method or route is not supported", "method", req.Method, "route", req.Route)
		respond(w, logger, http.StatusNotFound, nil)
		return
	case opOptions:
		w.Header().Set("Allow", allowedMethods)
		respond(w, logger, http.StatusOK, nil)
		return
	}

	if req.Method != op.verb {
		logger.Error("method not acceptable", "operation", op.kind.String(), "method", req.Method, "expected", op.verb)
		respond(w, logger, http.StatusNotAcceptable, nil)
		return
	}

	logger.Info("dispatching", "operation", op.kind.String(), "id", op.id)

	switch op.kind {
	case opList:
		s.listItems(w, r, logger)
	case opReadOne:
		s.getItem(w, r, logger, op.id)
	case opCreate:
		s.createItem(w, r, logger, req)
	case opUpdate:
		s.updateItem(w, r, logger, op.id, req)
	case opDelete:
		s.deleteItem(w, r, logger, op.id)
	case opLogin:
		s.login(w, r, logger, req)
	}
}

func (s *Server) listItems(w http.ResponseWriter, r *http.Request, logger *slog.Logger) {
	items, err := s.items.List(r.Context())
	if err != nil {
		s.fail(w, logger, opList, err)
		return
	}
	logger.Info("selected items", "count", len(items))
	respond(w, logger, http.StatusOK, items)
}

func (s *Server) getItem(w http.ResponseWriter, r *http.Request, logger *slog.Logger, id int64) {
	item, err := s.items.Get(r.Context(), id)
	if err != nil {
		s.fail(w, logger, opReadOne, err)
		return
	}
	respond(w, logger, http.StatusOK, item)
}

func (s *Server) createItem(w http.ResponseWriter, r *http.Request, logger *slog.Logger, req *apiRequest) {
	item, err := s.items.Create(r.Context(), req.Payload)
	if err != nil {
		s.fail(w, logger, opCreate, err)
		return
	}
	logger.Info("created item", "id", item.ID)
	respond(w, logger, http.StatusCreated, success("Item created successfully.", item))
}

func (s *Server) updateItem(w http.ResponseWriter, r *http.Request, logger *slog.Logger, id int64, req *apiRequest) {
	item, err := s.items.Update(r.Context(), id, req.Payload)
	if err != nil {
		s.fail(w, logger, opUpdate, err)
		return
	}
	logger.Info("updated item", "id", id)
	var data any
	if item != nil {
		data = item
	}
	respond(w, logger, http.StatusOK, success(fmt.Sprintf("Item %d updated successfully.", id), data))
}

func (s *Server) deleteItem(w http.ResponseWriter, r *http.Request, logger *slog.Logger, id int64) {
	if err := s.items.Delete(r.Context(), id); err != nil {
		s.fail(w, logger, opDelete, err)
		return
	}
	logger.Info("deleted item", "id", id)
	respond(w, logger, http.StatusOK, success("Successfully deleted one item.", nil))
}

// fail maps a service error to a response: ErrNoContent is 204, anything
// else is logged and reported as 500.
func (s *Server) fail(w http.ResponseWriter, logger *slog.Logger, op opKind, err error) {
	if errors.Is(err, service.ErrNoContent) {
		logger.Info("no content", "operation", op.String())
		respond(w, logger, http.StatusNoContent, nil)
		return
	}
	logger.Error("operation failed", "operation", op.String(), "error", err)
	respond(w, logger, http.StatusInternalServerError, failure("Internal server error."))
}
