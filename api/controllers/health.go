package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/gestion-backend/api/responses"
	"github.com/angelmondragon/gestion-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/gestion-backend/pkg/errors"
	"github.com/angelmondragon/gestion-backend/pkg/logger"
	"github.com/angelmondragon/gestion-backend/pkg/types"
)

const readyTimeout = 2 * time.Second

// Pinger is a dependency the readiness check pings.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthResponse struct {
	types.Envelope
	State string `json:"state"`
	Env   string `json:"env"`
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, healthResponse{Envelope: types.Success(), State: "live", Env: cfg.App.Env})
	}
}

// HealthReady pings every named dependency and fails with 503 on the first error.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unavailable").
					WithDetails(map[string]string{"dependency": name}))
				return
			}
		}

		responses.WriteSuccess(w, healthResponse{Envelope: types.Success(), State: "ready", Env: cfg.App.Env})
	}
}
