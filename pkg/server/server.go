package server

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/duynguyendang/doc2kg/pkg/common/errors"
	"github.com/duynguyendang/doc2kg/pkg/graph"
	"github.com/duynguyendang/doc2kg/pkg/pipeline"
	"github.com/duynguyendang/doc2kg/pkg/storage"
)

// Server holds the state for the REST API server.
type Server struct {
	pipeline *pipeline.Pipeline
	objects  storage.ObjectStore
	graph    graph.Store
	router   *gin.Engine
}

// NewServer creates a new Server instance.
func NewServer(p *pipeline.Pipeline, objects storage.ObjectStore, g graph.Store) *Server {
	r := gin.Default()
	s := &Server{
		pipeline: p,
		objects:  objects,
		graph:    g,
		router:   r,
	}
	s.setupRoutes()
	return s
}

// Run starts the server on the specified address.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthCheck)

	s.router.POST("/document", s.handleCreateDocument)
	s.router.GET("/documents", s.handleListDocuments)
	s.router.GET("/document/:id", s.handleGetDocument)
	s.router.GET("/document/:id/plaintext", s.handleGetPlainText)
	s.router.GET("/document/:id/ranges", s.handleGetRanges)
	s.router.GET("/document/:id/pdf", s.handleGetPDF)
	s.router.GET("/document/:id/page/:page", s.handleGetPageImage)
	s.router.PUT("/document/:id/plaintext", s.handleUpdatePlainText)
	s.router.PUT("/document/:id/ranges", s.handleUpdateRanges)
	s.router.PUT("/document/:id/graph", s.handleUpdateGraph)
}

// Health check
func (s *Server) healthCheck(c *gin.Context) {
	c.Status(http.StatusOK)
}

// handleError translates an error into an HTTP response via the common
// sentinel mapping. Server-side failures are logged with their cause.
func handleError(c *gin.Context, err error) {
	appErr := errors.MapError(err)
	if appErr.Code >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(appErr.Code, gin.H{"error": appErr.Message})
}
