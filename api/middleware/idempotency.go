package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/angelmondragon/gestion-backend/api/responses"
	pkgerrors "github.com/angelmondragon/gestion-backend/pkg/errors"
	"github.com/angelmondragon/gestion-backend/pkg/logger"
	pkgredis "github.com/angelmondragon/gestion-backend/pkg/redis"
)

const (
	idempotencyHeader = "Idempotency-Key"
	replayHeader      = "Idempotent-Replayed"

	maxIdempotencyKeyLen = 128

	defaultIdempotencyTTL  = 24 * time.Hour
	criticalIdempotencyTTL = 7 * 24 * time.Hour
	// pendingIdempotencyTTL bounds how long a crashed request can hold its key.
	pendingIdempotencyTTL = 2 * time.Minute
)

// writeRoute is a POST path template; "*" matches exactly one segment.
type writeRoute struct {
	segments []string
	ttl      time.Duration
}

// Checkout moves money and stock, so its keys live longest.
var idempotentWrites = []writeRoute{
	{segments: splitPath("/api/v1/sales/checkout"), ttl: criticalIdempotencyTTL},
	{segments: splitPath("/api/v1/supplier-orders/*/items"), ttl: defaultIdempotencyTTL},
}

// storedResponse with a zero Status marks a request still being handled.
type storedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type,omitempty"`
	Body        []byte `json:"body"`
	Fingerprint string `json:"fingerprint"`
}

func (s *storedResponse) pending() bool {
	return s.Status == 0
}

// Idempotency makes the listed writes safe to retry. The key is reserved
// before the handler runs; the first non-5xx response for (caller, path,
// Idempotency-Key) is then stored and replayed for identical bodies. A
// different body under the same key, or a retry while the first request is
// in flight, is rejected.
func Idempotency(store pkgredis.IdempotencyStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// group middleware sees a partial route pattern; match the path
			ttl, ok := routeTTL(r.Method, r.URL.Path)
			if !ok || store == nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx := r.Context()

			clientKey := strings.TrimSpace(r.Header.Get(idempotencyHeader))
			switch {
			case clientKey == "":
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Idempotency-Key header required"))
				return
			case len(clientKey) > maxIdempotencyKeyLen:
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Idempotency-Key header too long"))
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeMalformed, err, "read request body"))
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			fingerprint := fingerprintBody(body)
			key := store.IdempotencyKey(idempotencyScope(r), clientKey)

			prior, err := lookupStored(r, store, key)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check idempotency"))
				return
			}
			if prior == nil {
				reserved, err := reserve(r, store, key, fingerprint)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reserve idempotency key"))
					return
				}
				if !reserved {
					// lost the race to a concurrent request with the same key
					if prior, err = lookupStored(r, store, key); err != nil {
						responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check idempotency"))
						return
					}
					if prior == nil {
						prior = &storedResponse{Fingerprint: fingerprint}
					}
				}
			}
			if prior != nil {
				switch {
				case prior.Fingerprint != fingerprint:
					responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeIdempotency, "idempotency key reused with different request body"))
				case prior.pending():
					responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeIdempotency, "request with this idempotency key is still in progress"))
				default:
					if logg != nil {
						logg.Info(logg.WithField(ctx, "idempotency_key", clientKey), "idempotency.replay")
					}
					prior.replay(w)
				}
				return
			}

			stored := false
			defer func() {
				// server failures and panics stay retryable under the same key
				if !stored {
					if err := store.Del(ctx, key); err != nil && logg != nil {
						logg.Error(ctx, "idempotency.release_failed", err)
					}
				}
			}()

			capture := &bodyCapture{statusRecorder: statusRecorder{ResponseWriter: w}}
			next.ServeHTTP(capture, r)

			if capture.Status() >= http.StatusInternalServerError {
				return
			}
			payload, err := json.Marshal(storedResponse{
				Status:      capture.Status(),
				ContentType: capture.Header().Get("Content-Type"),
				Body:        capture.buf.Bytes(),
				Fingerprint: fingerprint,
			})
			if err == nil {
				err = store.Set(ctx, key, string(payload), ttl)
			}
			if err != nil {
				if logg != nil {
					logg.Error(ctx, "idempotency.persist_failed", err)
				}
				return
			}
			stored = true
		})
	}
}

// reserve claims key with a pending record so concurrent retries see the
// request in flight instead of running it again.
func reserve(r *http.Request, store pkgredis.IdempotencyStore, key, fingerprint string) (bool, error) {
	payload, err := json.Marshal(storedResponse{Fingerprint: fingerprint})
	if err != nil {
		return false, err
	}
	return store.SetNX(r.Context(), key, string(payload), pendingIdempotencyTTL)
}

func lookupStored(r *http.Request, store pkgredis.IdempotencyStore, key string) (*storedResponse, error) {
	raw, err := store.Get(r.Context(), key)
	if errors.Is(err, redis.Nil) || (err == nil && raw == "") {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var stored storedResponse
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (s *storedResponse) replay(w http.ResponseWriter) {
	if s.ContentType != "" {
		w.Header().Set("Content-Type", s.ContentType)
	}
	w.Header().Set(replayHeader, "true")
	w.WriteHeader(s.Status)
	_, _ = w.Write(s.Body)
}

func idempotencyScope(r *http.Request) string {
	return strings.Join([]string{UserIDFromContext(r.Context()), r.Method, r.URL.Path}, "|")
}

func fingerprintBody(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

func routeTTL(method, path string) (time.Duration, bool) {
	if method != http.MethodPost {
		return 0, false
	}
	segments := splitPath(path)
	for _, route := range idempotentWrites {
		if route.matches(segments) {
			return route.ttl, true
		}
	}
	return 0, false
}

func (w writeRoute) matches(segments []string) bool {
	if len(segments) != len(w.segments) {
		return false
	}
	for i, want := range w.segments {
		if want != "*" && want != segments[i] {
			return false
		}
	}
	return true
}

func splitPath(path string) []string {
	return strings.Split(strings.Trim(path, "/"), "/")
}

type bodyCapture struct {
	statusRecorder
	buf bytes.Buffer
}

func (c *bodyCapture) Write(b []byte) (int, error) {
	c.buf.Write(b)
	return c.statusRecorder.Write(b)
}
