package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/fadeyibigbolahan/mbjobs-backend/internal/common"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/user"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/http/middleware"
)

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return common.NewError(common.CodeValidation, "request body is required", err)
		}
		return common.NewError(common.CodeValidation, "invalid request body", err)
	}
	return nil
}

// decodeJSONOptional is decodeJSON for endpoints where the body may be
// omitted entirely; dst is left zero-valued in that case.
func decodeJSONOptional(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return common.NewError(common.CodeValidation, "invalid request body", err)
	}
	return nil
}

// idFromPath returns the path segment idxFromEnd positions from the
// end, parsed as a UUID. idFromPath(r, 1) on /jobs/{id} yields {id}.
func idFromPath(r *http.Request, idxFromEnd int) (common.UUID, error) {
	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if idxFromEnd < 1 || idxFromEnd > len(segments) {
		return "", common.NewError(common.CodeValidation, "invalid path", nil)
	}
	id, err := common.ParseUUID(segments[len(segments)-idxFromEnd])
	if err != nil {
		return "", common.NewError(common.CodeValidation, "invalid id in path", err)
	}
	return id, nil
}

func errUnauthorized() error {
	return common.NewError(common.CodeUnauthorized, "authentication required", nil)
}

func actorFromRequest(r *http.Request) (user.Actor, error) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		return user.Actor{}, errUnauthorized()
	}
	return actor, nil
}
