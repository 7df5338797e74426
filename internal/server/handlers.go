package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type queryRequest struct {
	Q string `json:"q"`
}

type sendRequest struct {
	To        string `json:"to" binding:"omitempty,email"`
	Subject   string `json:"subject" binding:"required"`
	Body      string `json:"body" binding:"required"`
	HTML      bool   `json:"html"`
	FromName  string `json:"from_name"`
	FromEmail string `json:"from_email" binding:"omitempty,email"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleQuery(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	q := strings.TrimSpace(req.Q)
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	resp, err := s.querier.Query(c.Request.Context(), q)
	if err != nil {
		s.logger.Error("query failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to answer query"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleResume(c *gin.Context) {
	c.JSON(http.StatusOK, s.doc)
}

func (s *Server) handleResumeDownload(c *gin.Context) {
	data, err := s.doc.JSON()
	if err != nil {
		s.logger.Error("encode resume", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode resume"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+s.doc.DownloadName()+`"`)
	c.Data(http.StatusOK, "application/json", data)
}

// handleSend stores a contact message and relays it when a mailer is
// configured. Messages only ever go to the configured contact address.
func (s *Server) handleSend(c *gin.Context) {
	if s.store == nil || s.contactEmail == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Recipient address not configured. Contact admin to enable messaging."})
		return
	}

	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.To != "" && !strings.EqualFold(req.To, s.contactEmail) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipient not allowed"})
		return
	}

	msg := &Message{
		To:        s.contactEmail,
		Subject:   req.Subject,
		Body:      req.Body,
		HTML:      req.HTML,
		FromName:  req.FromName,
		FromEmail: req.FromEmail,
	}
	ctx := c.Request.Context()
	if err := s.store.Save(ctx, msg); err != nil {
		s.logger.Error("store message", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store message"})
		return
	}

	if s.mailer == nil {
		c.JSON(http.StatusAccepted, gin.H{"id": msg.ID, "status": "stored"})
		return
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.logger.Error("relay message", "id", msg.ID, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"id": msg.ID, "error": "failed to send message"})
		return
	}
	if err := s.store.MarkRelayed(ctx, msg.ID); err != nil {
		s.logger.Error("mark relayed", "id", msg.ID, "error", err)
	}
	c.JSON(http.StatusOK, gin.H{"id": msg.ID, "status": "sent"})
}
