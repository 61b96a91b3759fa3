// Package api exposes template assembly over HTTP.
package api

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
	"golang.org/x/time/rate"

	"github.com/samcharles93/promptkit/internal/logger"
	"github.com/samcharles93/promptkit/internal/model"
	"github.com/samcharles93/promptkit/internal/tokenizer"
)

type ServerConfig struct {
	Registry  *model.Registry
	Tokenizer tokenizer.Tokenizer
	Log       logger.Logger

	// RequestsPerSecond caps assembly throughput; zero disables the cap.
	RequestsPerSecond float64
	Burst             int
}

type Server struct {
	registry *model.Registry
	tok      tokenizer.Tokenizer
	log      logger.Logger
	limiter  *rate.Limiter
}

func NewServer(cfg ServerConfig) *Server {
	log := cfg.Log
	if log == nil {
		log = logger.Default()
	}
	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	return &Server{
		registry: cfg.Registry,
		tok:      cfg.Tokenizer,
		log:      log,
		limiter:  limiter,
	}
}

func (s *Server) Register(e *echo.Echo) {
	e.POST("/v1/template", s.handleTemplate)
	e.GET("/v1/configs", s.handleListConfigs)
}

func (s *Server) handleTemplate(c *echo.Context) error {
	if s.limiter != nil && !s.limiter.Allow() {
		return writeError(c, http.StatusTooManyRequests, "rate_limit_error", "assembly rate limit exceeded", "")
	}

	req, err := decodeJSON[TemplateRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	if req.Config == "" {
		return writeBadRequest(c, "config is required")
	}

	cfg, err := s.registry.Lookup(req.Config)
	if err != nil {
		return writeNotFound(c, err.Error())
	}

	tokens, masks, group, err := cfg.ConversationTemplate(
		s.tok.Encode, s.tok.EncodeSpecial, req.Items, req.Props)
	if err != nil {
		if errors.Is(err, model.ErrUnknownRole) || errors.Is(err, model.ErrDanglingTurn) {
			return writeBadRequest(c, err.Error())
		}
		s.log.Error("template assembly failed", "config", req.Config, "error", err)
		return writeError(c, http.StatusInternalServerError, "server_error", err.Error(), "")
	}

	return c.JSON(http.StatusOK, TemplateResponse{
		ID:     "tmpl-" + uuid.NewString(),
		Config: req.Config,
		Tokens: tokens,
		Masks:  masks,
		Group:  group,
	})
}

func (s *Server) handleListConfigs(c *echo.Context) error {
	names := s.registry.Names()
	data := make([]ConfigInfo, 0, len(names))
	for _, name := range names {
		cfg, err := s.registry.Lookup(name)
		if err != nil {
			return writeError(c, http.StatusInternalServerError, "server_error", err.Error(), "")
		}
		data = append(data, ConfigInfo{
			Name:              name,
			DisplayName:       cfg.Name,
			AIRole:            cfg.AIRole,
			EOTToken:          cfg.EOTToken,
			BOSToken:          cfg.BOSToken,
			System:            cfg.System,
			MaxContext:        cfg.MaxContext,
			ConditionalPrefix: cfg.Prefix.Conditional(),
			Grouped:           cfg.Group != nil,
		})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"object": "list",
		"data":   data,
	})
}
