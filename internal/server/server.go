package server

import (
	"encoding/base64"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/stemsprouts/renderer/internal/engine"
	"github.com/stemsprouts/renderer/internal/script"
)

// Server exposes the rendering pipeline over HTTP for the activity
// frontend.
type Server struct {
	project *engine.RenderProject
}

// NewServer wraps a configured render project.
func NewServer(project *engine.RenderProject) *Server {
	return &Server{project: project}
}

// RenderVideoRequest is the frontend contract: скрипт приходит обёрнутым
// в script_data.
type RenderVideoRequest struct {
	ScriptData script.Script `json:"script_data"`
}

// RenderVideoResponse reports a finished render.
type RenderVideoResponse struct {
	Success   bool     `json:"success"`
	VideoPath string   `json:"video_path,omitempty"`
	Message   string   `json:"message,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// PreviewRequest carries the title to render a preview card for.
type PreviewRequest struct {
	Title string `json:"title"`
}

// PreviewResponse carries the preview image as base64 PNG.
type PreviewResponse struct {
	Success     bool   `json:"success"`
	PreviewData string `json:"preview_data,omitempty"`
	Message     string `json:"message,omitempty"`
	Error       string `json:"error,omitempty"`
}

// NewRouter constructs the Gin engine with all routes registered.
func NewRouter(project *engine.RenderProject) *gin.Engine {
	s := NewServer(project)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	// Фронтенд ходит с другого origin, поэтому CORS открыт
	r.Use(cors.Default())

	r.GET("/health", s.handleHealth)
	r.POST("/render-video", s.handleRenderVideo)
	r.POST("/generate-preview", s.handleGeneratePreview)
	return r
}

// handleHealth reports liveness and the capabilities the frontend can
// rely on. Always 200: if the process answers, the façade is up.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "stem-video-renderer",
		"capabilities": []string{
			"render-video",
			"generate-preview",
		},
	})
}

// handleRenderVideo runs the full pipeline synchronously and returns the
// artifact path.
func (s *Server) handleRenderVideo(c *gin.Context) {
	var req RenderVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, RenderVideoResponse{
			Success: false,
			Error:   "invalid JSON payload: " + err.Error(),
		})
		return
	}

	log.Printf("[*] Запрос рендера: %q (%d шагов)", req.ScriptData.Title, len(req.ScriptData.Steps))

	result, err := s.project.Render(c.Request.Context(), req.ScriptData)
	if err != nil {
		log.Printf("[!] Рендер не удался: %v", err)
		c.JSON(http.StatusInternalServerError, RenderVideoResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, RenderVideoResponse{
		Success:   true,
		VideoPath: result.OutputPath,
		Message:   "Video rendered successfully",
		Warnings:  result.Warnings,
	})
}

// handleGeneratePreview renders the intro canvas and streams it back as
// base64 PNG, never touching disk.
func (s *Server) handleGeneratePreview(c *gin.Context) {
	var req PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, PreviewResponse{
			Success: false,
			Error:   "invalid JSON payload: " + err.Error(),
		})
		return
	}

	data, err := s.project.Preview(req.Title)
	if err != nil {
		log.Printf("[!] Превью не удалось: %v", err)
		c.JSON(http.StatusInternalServerError, PreviewResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, PreviewResponse{
		Success:     true,
		PreviewData: base64.StdEncoding.EncodeToString(data),
		Message:     "Preview generated",
	})
}
