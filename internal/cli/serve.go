// SPDX-License-Identifier: Unlicense OR MIT

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/wasiq-nisar/passthrough/f32"
	"github.com/wasiq-nisar/passthrough/layer"
	"github.com/wasiq-nisar/passthrough/scene"
)

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve an HTTP inspector for the scene",
		Long: `serve exposes the scene over HTTP:

  GET /route?x=100&y=180   routing decision as JSON
  GET /frame.png           the rendered frame
  GET /tree.dot            the layer tree as Graphviz DOT
  GET /healthz             liveness check`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			_, s, err := loadScene(cmd)
			if err != nil {
				return err
			}
			srv := &http.Server{
				Addr:              addr,
				Handler:           newInspector(s, logger),
				ReadHeaderTimeout: 5 * time.Second,
			}
			return serve(cmd.Context(), srv, logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

// serve runs srv until ctx is done, then shuts it down.
func serve(ctx context.Context, srv *http.Server, logger *log.Logger) error {
	errc := make(chan error, 1)
	go func() {
		logger.Info("Serving inspector", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("Inspector stopped")
	return nil
}

type inspector struct {
	scene  *scene.Scene
	logger *log.Logger

	frameOnce sync.Once
	frame     []byte
	frameErr  error
}

// routeResponse is the JSON body of /route.
type routeResponse struct {
	RequestID string     `json:"request_id"`
	Point     point      `json:"point"`
	Pass      bool       `json:"pass"`
	Receiver  string     `json:"receiver,omitempty"`
	Local     *point     `json:"local,omitempty"`
	Bounds    *rectangle `json:"bounds,omitempty"`
}

type point struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

type rectangle struct {
	Min point `json:"min"`
	Max point `json:"max"`
}

func newInspector(s *scene.Scene, logger *log.Logger) http.Handler {
	in := &inspector{scene: s, logger: logger}
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(in.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})
	r.Get("/route", in.route)
	r.Get("/frame.png", in.serveFrame)
	r.Get("/tree.dot", in.tree)
	return r
}

// requestID tags every request with a UUID, or the id supplied by the
// client, and echoes it in the X-Request-Id header.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(middleware.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(middleware.RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (in *inspector) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		in.logger.Debug("Request",
			"id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed", time.Since(start).Round(time.Microsecond))
	})
}

func (in *inspector) route(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x, errx := strconv.ParseFloat(q.Get("x"), 32)
	y, erry := strconv.ParseFloat(q.Get("y"), 32)
	p := f32.Pt(float32(x), float32(y))
	if errx != nil || erry != nil || !p.Finite() {
		http.Error(w, "x and y must be finite numbers", http.StatusBadRequest)
		return
	}
	res := in.scene.Route(p)
	resp := routeResponse{
		RequestID: middleware.GetReqID(r.Context()),
		Point:     point{p.X, p.Y},
		Pass:      res.Passed(),
	}
	if !res.Passed() {
		b := res.Receiver.Bounds()
		resp.Receiver = layer.Name(res.Receiver)
		resp.Local = &point{res.Local.X, res.Local.Y}
		resp.Bounds = &rectangle{point{b.Min.X, b.Min.Y}, point{b.Max.X, b.Max.Y}}
	}
	in.logger.Info("Routed", "id", resp.RequestID, "point", p, "receiver", resp.Receiver, "pass", resp.Pass)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		in.logger.Error("Encode response", "err", err)
	}
}

func (in *inspector) serveFrame(w http.ResponseWriter, r *http.Request) {
	in.frameOnce.Do(func() {
		img, err := in.scene.Render()
		if err != nil {
			in.frameErr = err
			return
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			in.frameErr = fmt.Errorf("encode frame: %w", err)
			return
		}
		in.frame = buf.Bytes()
	})
	if in.frameErr != nil {
		in.logger.Error("Render frame", "err", in.frameErr)
		http.Error(w, in.frameErr.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(in.frame)
}

func (in *inspector) tree(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	w.Write([]byte(scene.DOT(in.scene.Root())))
}
