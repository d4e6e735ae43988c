package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/danmuck/udpchat/internal/observability"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const version = "0.1.0"

// AdminRouter exposes read-only health, metrics and registry views.
func (s *Server) AdminRouter(corsOrigins []string) *gin.Engine {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log.Logger))
	r.Use(observability.RequestMetricsMiddleware(s.ID))
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(corsOrigins),
		AllowMethods: []string{"GET"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})
	s.RegisterRoutes(r)
	return r
}

func (s *Server) RegisterRoutes(routes gin.IRoutes) {
	routes.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.Started).String(),
			"server":  s.ID,
			"version": version,
		})
	})

	routes.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ready":   true,
			"addr":    s.LocalAddr().String(),
			"server":  s.ID,
			"version": version,
		})
	})

	routes.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.GET("/channels", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"channels": s.Registry.Snapshot(),
		})
	})

	routes.GET("/channels/:channel", func(c *gin.Context) {
		channel := c.Param("channel")
		addrs, ok := s.Registry.Subscribers(channel)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "channel not found"})
			return
		}
		list := make([]string, 0, len(addrs))
		for _, addr := range addrs {
			list = append(list, addr.String())
		}
		c.JSON(http.StatusOK, gin.H{"channel": channel, "subscribers": list})
	})
}

// ServeAdmin runs the admin router on addr until ctx is cancelled.
func (s *Server) ServeAdmin(ctx context.Context, addr string, corsOrigins []string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.AdminRouter(corsOrigins),
		ReadHeaderTimeout: 5 * time.Second,
	}
	stop := context.AfterFunc(ctx, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	})
	defer stop()

	log.Info().Str("server", s.ID).Str("addr", addr).Msg("admin listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, origin := range origins {
		v := strings.TrimSpace(origin)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return []string{"http://localhost", "http://127.0.0.1"}
	}
	return out
}
