package server

import (
	stderrors "errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/duynguyendang/doc2kg/pkg/common/errors"
	"github.com/duynguyendang/doc2kg/pkg/graph"
	"github.com/duynguyendang/doc2kg/pkg/pipeline"
	"github.com/duynguyendang/doc2kg/pkg/storage"
)

// handleCreateDocument ingests a new document from a multipart upload
// or from a URL.
func (s *Server) handleCreateDocument(c *gin.Context) {
	var req pipeline.IngestRequest

	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			handleError(c, errors.NewAppError(http.StatusInternalServerError, "Failed to create document", err))
			return
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			handleError(c, errors.NewAppError(http.StatusInternalServerError, "Failed to create document", err))
			return
		}
		req.Data = data
	}

	if len(req.Data) == 0 {
		// The URL may arrive as a form field or as a JSON body.
		if url := c.PostForm("url"); url != "" {
			req.SourceURL = url
		} else {
			var body struct {
				URL string `json:"url"`
			}
			if err := c.ShouldBindJSON(&body); err == nil {
				req.SourceURL = body.URL
			}
		}
	}

	docID, err := s.pipeline.Ingest(c.Request.Context(), req)
	if err != nil {
		switch {
		case stderrors.Is(err, errors.ErrConflict):
			handleError(c, errors.NewAppError(http.StatusBadRequest, "Document already exists.", err))
		case stderrors.Is(err, errors.ErrInvalidInput):
			handleError(c, errors.NewAppError(http.StatusBadRequest, "Could not obtain a valid PDF file.", err))
		case stderrors.Is(err, errors.ErrExtraction):
			handleError(c, errors.NewAppError(http.StatusInternalServerError, "Failed to extract text", err))
		default:
			handleError(c, errors.NewAppError(http.StatusInternalServerError, "Failed to create document", err))
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      docID,
		"message": "Document created successfully",
	})
}

// handleGetDocument returns the properties of one Document node.
func (s *Server) handleGetDocument(c *gin.Context) {
	id := c.Param("id")

	doc, err := s.graph.GetDocument(c.Request.Context(), id)
	if err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			handleError(c, errors.NewAppError(http.StatusNotFound, fmt.Sprintf("Document with ID '%s' not found.", id), err))
		} else {
			handleError(c, errors.NewAppError(http.StatusInternalServerError, "Failed to retrieve document.", err))
		}
		return
	}

	c.JSON(http.StatusOK, doc)
}

// handleListDocuments returns a summary row per Document node.
func (s *Server) handleListDocuments(c *gin.Context) {
	docs, err := s.graph.ListDocuments(c.Request.Context())
	if err != nil {
		handleError(c, errors.NewAppError(http.StatusInternalServerError, "Failed to retrieve document list.", err))
		return
	}
	if docs == nil {
		docs = []graph.DocumentSummary{}
	}
	c.JSON(http.StatusOK, docs)
}

func (s *Server) handleGetPlainText(c *gin.Context) {
	id := c.Param("id")

	data, err := s.readObject(c, storage.TextKey(id))
	if err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			handleError(c, errors.NewAppError(http.StatusNotFound, fmt.Sprintf("Plain text for document ID '%s' not found.", id), err))
		} else {
			handleError(c, errors.NewAppError(http.StatusInternalServerError, "Failed to retrieve plain text.", err))
		}
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", data)
}

func (s *Server) handleGetRanges(c *gin.Context) {
	id := c.Param("id")

	data, err := s.readObject(c, storage.RangesKey(id))
	if err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			handleError(c, errors.NewAppError(http.StatusNotFound, fmt.Sprintf("Ranges for document ID '%s' not found.", id), err))
		} else {
			handleError(c, errors.NewAppError(http.StatusInternalServerError, "Failed to retrieve ranges.", err))
		}
		return
	}

	c.Data(http.StatusOK, "application/json", data)
}

func (s *Server) handleGetPDF(c *gin.Context) {
	id := c.Param("id")

	rc, size, err := s.objects.Get(c.Request.Context(), storage.PDFKey(id))
	if err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			handleError(c, errors.NewAppError(http.StatusNotFound, fmt.Sprintf("PDF for document ID '%s' not found.", id), err))
		} else {
			handleError(c, errors.NewAppError(http.StatusInternalServerError, "Failed to retrieve PDF.", err))
		}
		return
	}
	defer rc.Close()

	c.DataFromReader(http.StatusOK, size, "application/pdf", rc, nil)
}

func (s *Server) handleGetPageImage(c *gin.Context) {
	id := c.Param("id")
	page := c.Param("page")

	rc, size, err := s.objects.Get(c.Request.Context(), storage.PageKey(id, page))
	if err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			handleError(c, errors.NewAppError(http.StatusNotFound, fmt.Sprintf("Image for document ID '%s' page '%s' not found.", id, page), err))
		} else {
			handleError(c, errors.NewAppError(http.StatusInternalServerError, "Failed to retrieve page image.", err))
		}
		return
	}
	defer rc.Close()

	c.DataFromReader(http.StatusOK, size, "image/png", rc, nil)
}

// handleUpdatePlainText replaces the stored plain text of a document.
// The graph is not touched; a separate PUT /document/:id/graph applies
// the new text.
func (s *Server) handleUpdatePlainText(c *gin.Context) {
	s.updateObject(c, storage.TextKey(c.Param("id")), "text/plain; charset=utf-8", "Plain text")
}

// handleUpdateRanges replaces the stored range set of a document.
func (s *Server) handleUpdateRanges(c *gin.Context) {
	s.updateObject(c, storage.RangesKey(c.Param("id")), "application/json", "Ranges")
}

// handleUpdateGraph rebuilds the document's subgraph from its current
// stored plain text.
func (s *Server) handleUpdateGraph(c *gin.Context) {
	id := c.Param("id")

	if err := s.pipeline.RebuildGraph(c.Request.Context(), id); err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			handleError(c, errors.NewAppError(http.StatusNotFound, fmt.Sprintf("Document with ID '%s' not found.", id), err))
		} else {
			handleError(c, errors.NewAppError(http.StatusInternalServerError, "Failed to update graph from plain text.", err))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Graph for document ID '%s' updated successfully.", id)})
}

// updateObject guards an artifact overwrite behind a Document existence
// check, then streams the request body into the object store.
func (s *Server) updateObject(c *gin.Context, key, contentType, what string) {
	id := c.Param("id")

	exists, err := s.graph.DocumentExists(c.Request.Context(), id)
	if err != nil {
		handleError(c, errors.NewAppError(http.StatusInternalServerError, fmt.Sprintf("Failed to update %s.", what), err))
		return
	}
	if !exists {
		handleError(c, errors.NewAppError(http.StatusNotFound, fmt.Sprintf("Document with ID '%s' not found.", id), nil))
		return
	}

	err = s.objects.Put(c.Request.Context(), key, c.Request.Body, c.Request.ContentLength, contentType)
	if err != nil {
		handleError(c, errors.NewAppError(http.StatusInternalServerError, fmt.Sprintf("Failed to update %s.", what), err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%s for document ID '%s' updated successfully.", what, id)})
}

func (s *Server) readObject(c *gin.Context, key string) ([]byte, error) {
	rc, _, err := s.objects.Get(c.Request.Context(), key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
