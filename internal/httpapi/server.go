package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Server wires the webhook and management routes into one HTTP listener.
type Server struct {
	httpSrv *http.Server
	webhook *WebhookHandler
}

func NewServer(addr string, wh *WebhookHandler, api *API, debug bool) *Server {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	router.POST("/callback", wh.Handle)
	api.Register(router)

	return &Server{
		httpSrv: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		webhook: wh,
	}
}

// ListenAndServe blocks until the listener fails or Shutdown is called.
func (s *Server) ListenAndServe() error {
	err := s.httpSrv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops accepting requests, then waits for in-flight webhook
// event processing.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpSrv.Shutdown(ctx); err != nil {
		return err
	}
	return s.webhook.Shutdown(ctx)
}
