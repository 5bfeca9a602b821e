package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/arenalabs/arena/pkg/compare"
)

type compareRequest struct {
	Prompt string   `json:"prompt"`
	Models []string `json:"models"`
}

type compareResponse struct {
	ID       string                         `json:"id"`
	Results  map[string]compare.ModelResult `json:"results"`
	Order    []string                       `json:"order"`
	Metadata compare.Metadata               `json:"metadata"`
}

// handleCompare accepts a prompt plus model ids and returns the full
// keyed result set. Validation problems are the client's fault (400);
// a broken aggregation invariant is ours (500). Per-model provider
// failures ride inside the 200 response.
func (s *Server) handleCompare(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	resp, err := s.dispatcher.Dispatch(c.Request.Context(), compare.Request{
		Prompt:   req.Prompt,
		ModelIDs: req.Models,
	})
	if err != nil {
		var validationErr *compare.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, compareResponse{
		ID:       uuid.NewString(),
		Results:  resp.Results,
		Order:    resp.Order,
		Metadata: resp.Metadata,
	})
}

// handleModels lists the model ids clients may select.
func (s *Server) handleModels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"models": s.registry.IDs()})
}
