package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/vbonduro/crudapp/internal/service"
)

func (s *Server) login(w http.ResponseWriter, r *http.Request, logger *slog.Logger, req *apiRequest) {
	user, err := s.auth.Login(r.Context(), req.param("email"), req.param("pwd"))
	if errors.Is(err, service.ErrInvalidCredentials) {
		logger.Info("email address or password was not valid")
		respond(w, logger, http.StatusBadRequest, failure("Invalid Email address or Password"))
		return
	}
	if err != nil {
		s.fail(w, logger, opLogin, err)
		return
	}
	respond(w, logger, http.StatusOK, user)
}
