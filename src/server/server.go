// Package server exposes the retrieval core, agent memory store, and render
// presets over HTTP. Rank failures keep the same single-element error
// envelope the CLI emits, carried on a 4xx/5xx status.
package server

import (
	"errors"
	"net/http"
	"time"

	json "github.com/alpkeskin/gotoon"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/recall-labs/go-recall/src/concurrent"
	"github.com/recall-labs/go-recall/src/config"
	"github.com/recall-labs/go-recall/src/memory/model"
	"github.com/recall-labs/go-recall/src/memory/source"
	"github.com/recall-labs/go-recall/src/render"
	"github.com/recall-labs/go-recall/src/retrieval"
)

// Server wires the HTTP surface to the retrieval core.
type Server struct {
	cfg     *config.Config
	log     *logrus.Logger
	store   *source.MemoryStore
	presets render.Presets
	pool    *concurrent.WorkerPool
}

func New(cfg *config.Config, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.New()
	}
	return &Server{
		cfg:     cfg,
		log:     log,
		store:   source.NewMemoryStore(cfg.Memory.StoreFile),
		presets: cfg.Presets(),
		pool:    concurrent.NewWorkerPool(cfg.Render.MaxConcurrency),
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	v1 := r.Group("/v1")
	v1.POST("/rank", s.handleRank)
	v1.GET("/presets", s.handleListPresets)
	v1.GET("/presets/:name", s.handleGetPreset)
	v1.GET("/agents/:agent/memories", s.handleAgentMemories)
	v1.POST("/agents/:agent/memories", s.handleAddMemory)
	v1.DELETE("/agents/:agent/memories", s.handleClearMemories)
	v1.GET("/graph", s.handleGraph)
	v1.POST("/graph/nodes", s.handleAddNode)
	v1.POST("/graph/edges", s.handleAddEdge)
	return r
}

// Run starts serving on the configured address.
func (s *Server) Run() error {
	s.log.WithField("address", s.cfg.Server.Address).Info("starting server")
	return s.Router().Run(s.cfg.Server.Address)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"elapsed": time.Since(start).String(),
		}).Debug("request")
	}
}

// errorEnvelope writes the single-element {error} array on the given status.
func errorEnvelope(c *gin.Context, status int, err error) {
	c.JSON(status, []gin.H{{"error": err.Error()}})
}

func statusFor(err error) int {
	var fmtErr *source.InputFormatError
	var argErr *retrieval.ArgumentError
	var resErr *source.ResourceError
	switch {
	case errors.As(err, &fmtErr), errors.As(err, &argErr):
		return http.StatusBadRequest
	case errors.As(err, &resErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// storeStatus maps store mutation failures: write failures are service
// errors, everything else is a rejected request.
func storeStatus(err error) int {
	var resErr *source.ResourceError
	if errors.As(err, &resErr) {
		return http.StatusServiceUnavailable
	}
	return http.StatusBadRequest
}

type rankRequest struct {
	Query    []float32       `json:"query"`
	TopK     *int            `json:"top_k"`
	Memories json.RawMessage `json:"memories"`
}

func (s *Server) handleRank(c *gin.Context) {
	var req rankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorEnvelope(c, http.StatusBadRequest, &source.InputFormatError{Err: err})
		return
	}
	topK := s.cfg.Memory.DefaultTopK
	if req.TopK != nil {
		topK = *req.TopK
	}

	var src source.Source
	if len(req.Memories) > 0 {
		records, err := source.DecodeRecords(req.Memories)
		if err != nil {
			errorEnvelope(c, statusFor(err), err)
			return
		}
		src = source.SliceSource(records)
	} else {
		src = source.NewFileSource(s.cfg.Memory.File)
	}

	err := s.pool.Do(c.Request.Context(), func() error {
		ranked, err := retrieval.Retrieve(c.Request.Context(), src, retrieval.Request{Query: req.Query, TopK: topK})
		if err != nil {
			return err
		}
		c.JSON(http.StatusOK, ranked)
		return nil
	})
	if err != nil {
		errorEnvelope(c, statusFor(err), err)
	}
}

func (s *Server) handleListPresets(c *gin.Context) {
	names := s.presets.Names()
	out := make([]render.Preset, 0, len(names))
	for _, name := range names {
		preset, _ := s.presets.Lookup(name)
		out = append(out, preset)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetPreset(c *gin.Context) {
	preset, err := s.presets.Lookup(c.Param("name"))
	if err != nil {
		errorEnvelope(c, http.StatusNotFound, err)
		return
	}
	c.JSON(http.StatusOK, preset)
}

func (s *Server) handleAgentMemories(c *gin.Context) {
	topK := s.cfg.Memory.DefaultTopK
	if raw := c.Query("top_k"); raw != "" {
		parsed, err := retrieval.ParseTopK(raw)
		if err != nil {
			errorEnvelope(c, http.StatusBadRequest, err)
			return
		}
		topK = parsed
	}
	c.JSON(http.StatusOK, s.store.AgentMemories(c.Param("agent"), topK))
}

type addMemoryRequest struct {
	Content    string  `json:"content"`
	Importance float64 `json:"importance"`
}

func (s *Server) handleAddMemory(c *gin.Context) {
	var req addMemoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorEnvelope(c, http.StatusBadRequest, &source.InputFormatError{Err: err})
		return
	}
	entry, err := s.store.AddMemory(c.Param("agent"), req.Content, req.Importance)
	if err != nil {
		errorEnvelope(c, storeStatus(err), err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (s *Server) handleClearMemories(c *gin.Context) {
	removed, err := s.store.ClearAgentMemories(c.Param("agent"))
	if err != nil {
		errorEnvelope(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

func (s *Server) handleGraph(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Graph())
}

func (s *Server) handleAddNode(c *gin.Context) {
	var node model.KnowledgeNode
	if err := c.ShouldBindJSON(&node); err != nil {
		errorEnvelope(c, http.StatusBadRequest, &source.InputFormatError{Err: err})
		return
	}
	if err := s.store.AddNode(node); err != nil {
		errorEnvelope(c, storeStatus(err), err)
		return
	}
	c.JSON(http.StatusCreated, node)
}

func (s *Server) handleAddEdge(c *gin.Context) {
	var edge model.KnowledgeEdge
	if err := c.ShouldBindJSON(&edge); err != nil {
		errorEnvelope(c, http.StatusBadRequest, &source.InputFormatError{Err: err})
		return
	}
	if err := s.store.AddEdge(edge); err != nil {
		errorEnvelope(c, storeStatus(err), err)
		return
	}
	c.JSON(http.StatusCreated, edge)
}
