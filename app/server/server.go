package server

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"

	"pdfrag/app/api"
	"pdfrag/model"
	"pdfrag/service"
	"pdfrag/store"

	"github.com/gofiber/fiber/v2"
)

var config = fiber.Config{
	ErrorHandler: api.ErrorHandler,
}

type Server struct {
	listenAddr string
	logger     *slog.Logger
}

func NewServer(addr string) *Server {
	return &Server{
		listenAddr: addr,
		logger:     slog.Default(),
	}
}

func (s *Server) Stop() {
	s.logger.Info("server stopped")
}

func (s *Server) Run() {
	ctx := context.Background()
	port, _ := strconv.Atoi(os.Getenv("PG_PORT"))
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable", os.Getenv("PG_HOST"), port, os.Getenv("PG_USER"), os.Getenv("PG_PASS"), os.Getenv("PG_DB_NAME"))
	pool, err := store.NewPostgresStore(ctx, connStr)
	if err != nil {
		log.Fatal("error to connect to Postgres database", err)
		return
	}

	embedder := model.NewOpenAIEmbedder()

	if err := pool.Init(ctx, embedder.Dimension()); err != nil {
		log.Fatal("error to create tables", err)
		return
	}

	// Resolved once at startup, read-only after that
	defaultCollection := service.ResolveDefaultCollection(os.Getenv("DEFAULT_COLLECTION"))
	s.logger.Info("chat default collection resolved", "collection", defaultCollection)

	var (
		app           = fiber.New(config)
		ingestor      = service.NewIngestor(pool, embedder)
		retriever     = service.NewRetriever(pool, embedder)
		checkHandler  = api.NewCheckHandler()
		uploadHandler = api.NewUploadHandler(ingestor)
		queryHandler  = api.NewQueryHandler(retriever)
		chatHandler   = api.NewChatHandler(retriever, defaultCollection)
		check         = app.Group("/check")
		apiv1         = app.Group("/api/v1")
	)

	check.Get("/healthy", checkHandler.HandleHealthy)
	apiv1.Post("/chat", chatHandler.HandleChat)
	apiv1.Post("/:collection/upload", uploadHandler.HandleUpload)
	apiv1.Post("/:collection/query", queryHandler.HandleQuery)

	err = app.Listen(s.listenAddr)
	if err != nil {
		s.logger.Error("error to start server", "error", err.Error())
		return
	}
}
