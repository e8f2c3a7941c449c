package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guardian-io/guardian/internal/graph"
	"github.com/guardian-io/guardian/internal/graph/layout"
)

type dragNodeRequest struct {
	NodeID string  `json:"nodeId"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

type releaseNodeRequest struct {
	NodeID string `json:"nodeId"`
}

func (s *Server) GetSupplyChainGraph(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.layout.Topology()})
}

func (s *Server) StartLayoutSession(c *gin.Context) {
	var req graph.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.layout.StartSession(req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) GetLayoutSnapshot(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	frame, err := s.layout.Snapshot(id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": frame})
}

func (s *Server) DragLayoutNode(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req dragNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	nodeID := strings.TrimSpace(req.NodeID)
	if nodeID == "" {
		AbortWithError(c, newValidationError("nodeId", "invalid_node_id", "invalid node id"))
		return
	}

	if err := s.layout.Drag(id, nodeID, req.X, req.Y); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) ReleaseLayoutNode(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req releaseNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	nodeID := strings.TrimSpace(req.NodeID)
	if nodeID == "" {
		AbortWithError(c, newValidationError("nodeId", "invalid_node_id", "invalid node id"))
		return
	}

	if err := s.layout.Release(id, nodeID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) StopLayoutSession(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	if err := s.layout.StopSession(id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// StreamLayoutFrames replays the session backlog then follows the live frame
// stream over SSE until the client disconnects or the session closes.
func (s *Server) StreamLayoutFrames(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		AbortWithError(c, invalidRequestError())
		return
	}

	subscription, backlog, err := s.layout.Subscribe(id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	defer subscription.Close()

	writer := c.Writer
	headers := writer.Header()
	headers.Set("Content-Type", "text/event-stream")
	headers.Set("Cache-Control", "no-cache")
	headers.Set("Connection", "keep-alive")
	headers.Set("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	flusher, ok := writer.(http.Flusher)
	if !ok {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	if _, err := io.WriteString(writer, "retry: 2000\n\n"); err != nil {
		return
	}

	for _, frame := range backlog {
		if err := writeLayoutFrame(writer, frame); err != nil {
			return
		}
	}
	flusher.Flush()

	ctx := c.Request.Context()
	heartbeat := time.NewTicker(15 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case frame, open := <-subscription.Frames():
			if !open {
				return
			}
			if err := writeLayoutFrame(writer, frame); err != nil {
				return
			}
			flusher.Flush()
		case <-heartbeat.C:
			if _, err := io.WriteString(writer, ": heartbeat\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeLayoutFrame(w io.Writer, frame layout.Frame) error {
	data, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", data)
	return err
}
