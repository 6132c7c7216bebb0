package http

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/magic-machines/telegram-repl-bot/internal/config"
	"github.com/magic-machines/telegram-repl-bot/internal/speech"
	"github.com/magic-machines/telegram-repl-bot/internal/store"
	"github.com/magic-machines/telegram-repl-bot/internal/vision"
)

type Server struct {
	engine *gin.Engine
	cfg    config.Config
}

func NewServer(cfg config.Config) (*Server, error) {
	gin.SetMode(gin.ReleaseMode)

	photos, err := store.New(cfg.PhotosDir)
	if err != nil {
		return nil, fmt.Errorf("init photo store: %w", err)
	}

	audio, err := store.New(cfg.AudioDir)
	if err != nil {
		return nil, fmt.Errorf("init audio store: %w", err)
	}

	ocr := vision.NewEngine(cfg.OCRLanguages, cfg.TesseractBin)
	stt := speech.NewClient(cfg)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestLogger())
	engine.Use(MaxBodySize(cfg.MaxUploadBytes))
	engine.Use(CORS())

	api := NewAPI(photos, audio, ocr, stt)
	registerRoutes(engine, api)

	return &Server{engine: engine, cfg: cfg}, nil
}

func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.cfg.Port)
	return s.engine.Run(addr)
}
