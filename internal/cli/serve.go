package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/seedshuffle/seedshuffle/pkg/errors"
	"github.com/seedshuffle/seedshuffle/pkg/shuffle"
)

// newServeCmd creates the "serve" command, which exposes the rearrangement
// operations over HTTP.
func newServeCmd(configPath *string) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the rearrangement API over HTTP",
		Long: `Start an HTTP server exposing the rearrangement operations. The API is
stateless: every request carries its own seed and the same request always
produces the same response.

  POST /v1/shuffle      {"items": [...], "seed": "<integer>"}
  POST /v1/cyclic       {"items": [...], "seed": "<integer>"}
  POST /v1/derangement  {"items": [...], "seed": "<integer>"}
  GET  /v1/entropy?n=52&family=permutation
  GET  /healthz`,
		Example: `  seedshuffle serve
  seedshuffle serve --listen :9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			addr := cfg.Listen
			if listen != "" {
				addr = listen
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           newRouter(logger),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("listening", "addr", addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case <-ctx.Done():
				logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "shutdown failed")
				}
				return ctx.Err()
			case err := <-errCh:
				if err != nil && err != http.ErrServerClosed {
					return errors.Wrap(errors.ErrCodeNetwork, err, "server failed")
				}
				return nil
			}
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides config)")
	return cmd
}

// newRouter builds the HTTP API router. It is separate from the serve
// command so tests can exercise the handlers directly.
func newRouter(logger *charmlog.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(requestLogger(logger))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/v1/entropy", handleEntropy)
	r.Post("/v1/shuffle", handleRearrange(shuffle.FamilyPermutation))
	r.Post("/v1/cyclic", handleRearrange(shuffle.FamilyCyclic))
	r.Post("/v1/derangement", handleRearrange(shuffle.FamilyDerangement))
	return r
}

type ctxKeyRequestID struct{}

// requestID assigns each request a UUID, echoed in the X-Request-ID header
// and carried in the context for log correlation.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, req.WithContext(context.WithValue(req.Context(), ctxKeyRequestID{}, id)))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID{}).(string)
	return id
}

func requestLogger(logger *charmlog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
			next.ServeHTTP(ww, req)
			logger.Info("request",
				"method", req.Method,
				"path", req.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", requestIDFrom(req.Context()),
			)
		})
	}
}

type rearrangeRequest struct {
	Items []string `json:"items"`
	Seed  string   `json:"seed"`
}

type rearrangeResponse struct {
	Family string   `json:"family"`
	Seed   string   `json:"seed"`
	Result []string `json:"result"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type entropyResponse struct {
	Family string `json:"family"`
	N      int    `json:"n"`
	Bits   int    `json:"bits"`
	Count  string `json:"count"`
	Passes int    `json:"passes,omitempty"`
}

func handleRearrange(family shuffle.Family) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var body rearrangeRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid JSON body"))
			return
		}
		if len(body.Items) == 0 {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "items must not be empty"))
			return
		}
		seed, err := errors.ParseSeed(body.Seed)
		if err != nil {
			writeError(w, err)
			return
		}

		items := make([]string, len(body.Items))
		copy(items, body.Items)
		switch family {
		case shuffle.FamilyCyclic:
			err = shuffle.CyclicPermutation(items, seed)
		case shuffle.FamilyDerangement:
			err = shuffle.Derangement(items, seed)
		default:
			err = shuffle.Shuffle(items, seed)
		}
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, rearrangeResponse{
			Family: string(family),
			Seed:   seed.String(),
			Result: items,
		})
	}
}

func handleEntropy(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	n, err := strconv.Atoi(q.Get("n"))
	if err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "query parameter n must be an integer"))
		return
	}
	familyName := q.Get("family")
	if familyName == "" {
		familyName = string(shuffle.FamilyPermutation)
	}
	family, err := shuffle.ParseFamily(familyName)
	if err != nil {
		writeError(w, err)
		return
	}

	count, err := shuffle.Count(n, family)
	if err != nil {
		writeError(w, err)
		return
	}
	bits, err := shuffle.RequiredBits(n, family)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := entropyResponse{Family: string(family), N: n, Bits: bits, Count: count.String()}
	if p := q.Get("period"); p != "" {
		period, err := errors.ParseSeed(p)
		if err != nil {
			writeError(w, err)
			return
		}
		passes, err := shuffle.PassesRequired(n, period)
		if err != nil {
			writeError(w, err)
			return
		}
		resp.Passes = passes
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeDomain, errors.ErrCodeInvalidInput, errors.ErrCodeInvalidSeed,
		errors.ErrCodeInvalidFamily, errors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	}
	writeJSON(w, status, errorResponse{Code: string(code), Message: errors.UserMessage(err)})
}
