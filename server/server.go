package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"powerdash/api"
	"powerdash/dashboard"
	"powerdash/internal"
	"powerdash/internal/config"
	"powerdash/metrics"
	"powerdash/utility"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

const (
	rootEndpoint      = "/"
	optionsEndpoint   = "/api/options"
	viewEndpoint      = "/api/view"
	tableEndpoint     = "/api/table"
	summaryEndpoint   = "/api/summary"
	logEndpoint       = "/api/log"
	reloadEndpoint    = "/api/reload"
	tariffPngEndpoint = "/chart/tariff.png"
	mapEndpoint       = "/chart/map.json"
	wsEndpoint        = "/ws"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	upgrader   websocket.Upgrader
	dashboard  *dashboard.Dashboard
	apiHandler *api.Handler
	logger     internal.LogHandler
}

func NewServer(conf *config.Config, dash *dashboard.Dashboard, logger internal.LogHandler) *Server {
	server := Server{
		conf:      conf,
		dashboard: dash,
		logger:    logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024 * 64,
		},
	}
	// register itself as a router for httpServer handler
	router := httprouter.New()
	server.Register(router)
	server.httpServer = &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return &server
}

func (s *Server) SetApiHandler(handler *api.Handler) {
	s.apiHandler = handler
}

func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Register(router *httprouter.Router) {
	router.GET(rootEndpoint, s.handleIndex)
	router.GET(optionsEndpoint, s.handleOptions)
	router.GET(viewEndpoint, s.handleView)
	router.GET(tableEndpoint, s.handleTable)
	router.GET(summaryEndpoint, s.handleSummary)
	router.GET(logEndpoint, s.handleLog)
	router.POST(reloadEndpoint, s.handleReload)
	router.GET(tariffPngEndpoint, s.handleTariffPng)
	router.GET(mapEndpoint, s.handleMap)
	router.GET(wsEndpoint, s.handleWsRequest)
	if s.conf.Metrics.Enabled && s.conf.Metrics.Port == "" {
		router.Handler(http.MethodGet, metrics.Path, metrics.Handler())
	}
}

func (s *Server) Start() error {
	if s.conf == nil {
		return utility.Err("configuration not loaded")
	}
	serverAddress := fmt.Sprintf("%s:%s", s.conf.Listen.BindIP, s.conf.Listen.Port)
	s.logger.FeatureEvent("server", "", fmt.Sprintf("starting server on %s", serverAddress))
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}
	if s.conf.Listen.TLS {
		s.logger.Debug("starting https TLS server")
		err = s.httpServer.ServeTLS(listener, s.conf.Listen.CertFile, s.conf.Listen.KeyFile)
	} else {
		s.logger.Debug("starting http server")
		err = s.httpServer.Serve(listener)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
