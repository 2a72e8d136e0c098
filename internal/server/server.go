// Package server exposes the analysis pipeline over HTTP: OAuth handshake,
// on-demand analysis and stored report retrieval.
package server

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/mikey/email-persona/internal/adapters/gmail"
	"github.com/mikey/email-persona/internal/config"
	"github.com/mikey/email-persona/internal/core"
	"github.com/mikey/email-persona/internal/factory"
)

// Server wires the HTTP surface to the signal service and storage.
type Server struct {
	app      *fiber.App
	cfg      config.ServerConfig
	analysis config.AnalysisConfig
	oauth    *gmail.OAuthManager
	store    factory.Store
	service  *core.SignalService
	logger   *zap.Logger

	// newSource builds a mailbox fetcher for an authorized account. Tests
	// replace it with a stub.
	newSource func(ctx context.Context, email string) (core.EmailSource, error)
}

// New creates an HTTP server around the given collaborators.
func New(
	cfg *config.Config,
	oauth *gmail.OAuthManager,
	store factory.Store,
	service *core.SignalService,
	logger *zap.Logger,
) *Server {
	serverCfg := cfg.GetServer()

	s := &Server{
		cfg:      serverCfg,
		analysis: cfg.GetAnalysis(),
		oauth:    oauth,
		store:    store,
		service:  service,
		logger:   logger,
	}
	s.newSource = func(ctx context.Context, email string) (core.EmailSource, error) {
		ts, err := oauth.TokenSource(ctx, email)
		if err != nil {
			return nil, err
		}
		return gmail.NewFetcher(ctx, ts, logger)
	}

	s.app = fiber.New(fiber.Config{
		ReadTimeout:           serverCfg.ReadTimeout,
		WriteTimeout:          serverCfg.WriteTimeout,
		DisableStartupMessage: true,
	})
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.app.Get("/health", s.handleHealth)
	s.app.Get("/auth/gmail/url", s.handleAuthURL)
	s.app.Get("/auth/gmail/callback", s.handleAuthCallback)
	s.app.Post("/api/analyze", s.handleAnalyze)
	s.app.Get("/api/signals/:email", s.handleGetSignals)
	s.app.Delete("/api/signals/:email", s.handleDeleteSignals)
}

// Listen starts serving on the configured address. It blocks until shutdown.
func (s *Server) Listen() error {
	s.logger.Info("Starting HTTP server", zap.String("address", s.cfg.ListenAddress))
	return s.app.Listen(s.cfg.ListenAddress)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) handleAuthURL(c *fiber.Ctx) error {
	state := c.Query("state", "state")
	return c.JSON(fiber.Map{"auth_url": s.oauth.AuthURL(state)})
}

func (s *Server) handleAuthCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing authorization code")
	}

	email, err := s.oauth.Exchange(c.Context(), code)
	if err != nil {
		s.logger.Error("OAuth exchange failed", zap.Error(err))
		return fiber.NewError(fiber.StatusBadGateway, "authorization failed")
	}
	return c.JSON(fiber.Map{"user_email": email})
}

type analyzeRequest struct {
	Email         string `json:"email"`
	MaxEmails     int    `json:"max_emails"`
	MaxSentEmails int    `json:"max_sent_emails"`
}

func (s *Server) handleAnalyze(c *fiber.Ctx) error {
	var req analyzeRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
	}
	if req.MaxEmails <= 0 {
		req.MaxEmails = s.analysis.MaxEmails
	}
	if req.MaxSentEmails <= 0 {
		req.MaxSentEmails = s.analysis.MaxSentEmails
	}

	ctx := c.Context()
	source, err := s.newSource(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "mailbox not authorized")
		}
		s.logger.Error("Failed to open mailbox", zap.Error(err))
		return fiber.NewError(fiber.StatusBadGateway, "failed to open mailbox")
	}

	userEmail, err := source.UserEmail(ctx)
	if err != nil {
		s.logger.Error("Failed to resolve mailbox owner", zap.Error(err))
		return fiber.NewError(fiber.StatusBadGateway, "failed to resolve mailbox owner")
	}

	emails, err := source.FetchRecent(ctx, req.MaxEmails)
	if err != nil {
		s.logger.Error("Failed to fetch messages", zap.Error(err))
		return fiber.NewError(fiber.StatusBadGateway, "failed to fetch messages")
	}
	sent, err := source.FetchSent(ctx, req.MaxSentEmails)
	if err != nil {
		s.logger.Error("Failed to fetch sent messages", zap.Error(err))
		return fiber.NewError(fiber.StatusBadGateway, "failed to fetch sent messages")
	}

	// The two queries have independent windows: a sent message can be older
	// than everything in the recent window. Union those into the batch so the
	// sent list is always a subset of it.
	batchIDs := make(map[string]struct{}, len(emails))
	for i := range emails {
		batchIDs[emails[i].ID] = struct{}{}
	}
	for i := range sent {
		if _, ok := batchIDs[sent[i].ID]; !ok {
			batchIDs[sent[i].ID] = struct{}{}
			emails = append(emails, sent[i])
		}
	}

	// Bodies feed only the LLM enrichment, so fetch just the slice it can use.
	var bodies []string
	if s.analysis.EnableLLM && len(sent) > 0 {
		n := s.analysis.LLMMaxEmails
		if n <= 0 || n > len(sent) {
			n = len(sent)
		}
		ids := make([]string, 0, n)
		for _, record := range sent[:n] {
			ids = append(ids, record.ID)
		}
		bodies, err = source.FetchBodies(ctx, ids)
		if err != nil {
			s.logger.Warn("Failed to fetch sent bodies, continuing without enrichment", zap.Error(err))
			bodies = nil
		}
	}

	signals, err := s.service.Analyze(ctx, core.AnalysisInput{
		UserEmail:  userEmail,
		Emails:     emails,
		SentEmails: sent,
		SentBodies: bodies,
	})
	if err != nil {
		s.logger.Error("Analysis failed", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "analysis failed")
	}

	if err := s.store.SaveSignals(ctx, signals); err != nil {
		s.logger.Error("Failed to persist signals", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "failed to persist signals")
	}

	return c.JSON(signals)
}

func (s *Server) handleGetSignals(c *fiber.Ctx) error {
	email := c.Params("email")
	signals, err := s.store.GetSignals(c.Context(), email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "no report for this user")
		}
		s.logger.Error("Failed to load signals", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load signals")
	}
	return c.JSON(signals)
}

func (s *Server) handleDeleteSignals(c *fiber.Ctx) error {
	email := c.Params("email")
	if err := s.store.DeleteSignals(c.Context(), email); err != nil {
		s.logger.Error("Failed to delete signals", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "failed to delete signals")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
