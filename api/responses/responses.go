package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	pkgerrors "github.com/angelmondragon/gestion-backend/pkg/errors"
	"github.com/angelmondragon/gestion-backend/pkg/logger"
	"github.com/angelmondragon/gestion-backend/pkg/types"
)

// Codes whose own message is safe to show; the rest use the public message.
var clientVisible = map[pkgerrors.Code]bool{
	pkgerrors.CodeValidation:   true,
	pkgerrors.CodeMalformed:    true,
	pkgerrors.CodeForbidden:    true,
	pkgerrors.CodeUnauthorized: true,
	pkgerrors.CodeNotFound:     true,
	pkgerrors.CodeConflict:     true,
	pkgerrors.CodeIdempotency:  true,
	pkgerrors.CodeInternal:     true,
}

// WriteSuccess writes payload with a 200. Payloads embed types.Envelope so
// their fields sit next to "status" at the top level.
func WriteSuccess(w http.ResponseWriter, payload any) {
	WriteSuccessStatus(w, http.StatusOK, payload)
}

func WriteSuccessStatus(w http.ResponseWriter, status int, payload any) {
	writeJSON(w, status, payload)
}

// WriteError renders err as an error envelope. Untyped errors become
// INTERNAL_ERROR with the cause in the message.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "server error: "+err.Error())
	}
	meta := pkgerrors.MetadataFor(typed.Code())

	envelope := types.ErrorEnvelope{
		Envelope: types.Envelope{Status: types.StatusError},
		Code:     string(typed.Code()),
		Message:  meta.PublicMessage,
		Errors:   typed.Messages(),
	}
	if clientVisible[typed.Code()] && typed.Message() != "" {
		envelope.Message = typed.Message()
	}
	if typed.Code() == pkgerrors.CodeDependency {
		envelope.Message = dependencyMessage(typed)
	}
	if meta.DetailsAllowed {
		envelope.Details = typed.Details()
	}

	if logg != nil {
		logg.Error(logg.WithFields(ctx, pkgerrors.Dump(err).Fields()), "request.error", err)
	}
	writeJSON(w, meta.HTTPStatus, envelope)
}

// dependencyMessage reports a store or cache failure as a server error that
// carries the underlying cause text.
func dependencyMessage(typed *pkgerrors.Error) string {
	msg := "server error: " + typed.Message()
	if cause := typed.Unwrap(); cause != nil {
		msg += ": " + cause.Error()
	}
	return msg
}

// writeJSON marshals before touching headers so an encoding failure can
// still produce a clean 500.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, `{"status":"error","code":"INTERNAL_ERROR","message":"failed to encode response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}
