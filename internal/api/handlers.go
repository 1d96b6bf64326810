package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vidinsight/internal/model"
	"vidinsight/internal/pipeline"
	"vidinsight/internal/report"
	"vidinsight/internal/storage"
	"vidinsight/internal/translate"
	"vidinsight/internal/utils"
)

// Analyzer runs one URL through the pipeline.
type Analyzer interface {
	Run(ctx context.Context, req model.VideoRequest) (*model.Analysis, error)
}

// Server holds the stores the handlers work against. They are passed
// in explicitly rather than living in package globals so concurrent
// sessions share exactly what they should and nothing more.
type Server struct {
	analyzer  Analyzer
	analyses  *storage.AnalysisStore
	favorites storage.FavoritesStore
	visits    *storage.VisitLog
}

func NewServer(analyzer Analyzer, analyses *storage.AnalysisStore, favorites storage.FavoritesStore, visits *storage.VisitLog) *Server {
	return &Server{
		analyzer:  analyzer,
		analyses:  analyses,
		favorites: favorites,
		visits:    visits,
	}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	// Health check
	r.GET("/health", s.healthCheck)

	// API v1
	v1 := r.Group("/api/v1")
	{
		v1.GET("/languages", s.listLanguages)
		v1.POST("/analyses", s.analyze)
		v1.GET("/analyses/:id", s.getAnalysis)
		v1.GET("/analyses/:id/report", s.downloadReport)
		v1.POST("/favorites", s.addFavorite)
		v1.GET("/favorites", s.listFavorites)
		v1.DELETE("/favorites/:index", s.removeFavorite)
		v1.DELETE("/favorites", s.clearFavorites)
	}
}

// owner resolves the requesting user. Without authentication the
// X-User-ID header is the owner key; everything else is "anonymous".
func owner(c *gin.Context) string {
	if id := c.GetHeader("X-User-ID"); id != "" {
		return id
	}
	return "anonymous"
}

// healthCheck returns server health status
func (s *Server) healthCheck(c *gin.Context) {
	utils.Success(c, gin.H{
		"status":  "ok",
		"service": "vidinsight-backend",
	})
}

// listLanguages returns the supported translation targets
func (s *Server) listLanguages(c *gin.Context) {
	langs := make([]gin.H, 0, len(translate.Languages))
	for _, name := range translate.LanguageNames() {
		langs = append(langs, gin.H{"name": name, "code": translate.Languages[name]})
	}
	utils.Success(c, gin.H{"languages": langs})
}

// AnalyzeRequest is the body of POST /api/v1/analyses
type AnalyzeRequest struct {
	URL            string `json:"url" binding:"required"`
	TargetLanguage string `json:"target_language" binding:"required"`
	SourceLanguage string `json:"source_language"`
}

// analyze runs the whole pipeline for one URL
func (s *Server) analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "url and target_language are required")
		return
	}

	user := owner(c)
	if err := s.visits.Record(user, req.URL); err != nil {
		// The visit log is best-effort; never fail the run over it.
		log.Printf("[API] Failed to record visit: %v", err)
	}

	analysis, err := s.analyzer.Run(c.Request.Context(), model.VideoRequest{
		URL:            req.URL,
		TargetLanguage: req.TargetLanguage,
		SourceLanguage: req.SourceLanguage,
	})
	if err != nil {
		log.Printf("[API] Pipeline failed for %s: %v", req.URL, err)
		stage, status := stageStatus(err)
		c.JSON(status, gin.H{
			"success": false,
			"stage":   stage,
			"error":   err.Error(),
		})
		return
	}

	s.analyses.Save(analysis)

	utils.Success(c, gin.H{
		"analysis_id": analysis.ID.String(),
		"platform":    analysis.Platform,
		"video_info":  analysis.VideoInfo,
		"transcript":  analysis.Transcript,
		"summary":     analysis.Summary,
		"translation": analysis.Translation,
		"created_at":  analysis.CreatedAt,
	})
}

// stageStatus maps a pipeline failure to the stage label and HTTP
// status surfaced to the user.
func stageStatus(err error) (string, int) {
	var se *pipeline.StageError
	if !errors.As(err, &se) {
		return "pipeline", http.StatusInternalServerError
	}
	switch se.Stage {
	case pipeline.StageValidate:
		return se.Stage, http.StatusBadRequest
	case pipeline.StageFetch, pipeline.StageExtract:
		return se.Stage, http.StatusUnprocessableEntity
	case pipeline.StageTranscribe:
		return se.Stage, http.StatusBadGateway
	default:
		return se.Stage, http.StatusInternalServerError
	}
}

// getAnalysis returns a stored analysis
func (s *Server) getAnalysis(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid analysis id")
		return
	}

	analysis, ok := s.analyses.Get(id)
	if !ok {
		utils.Error(c, http.StatusNotFound, "analysis not found")
		return
	}

	utils.Success(c, gin.H{
		"analysis_id": analysis.ID.String(),
		"url":         analysis.URL,
		"platform":    analysis.Platform,
		"video_info":  analysis.VideoInfo,
		"transcript":  analysis.Transcript,
		"summary":     analysis.Summary,
		"translation": analysis.Translation,
		"created_at":  analysis.CreatedAt,
	})
}

// downloadReport renders the PDF report for an analysis
func (s *Server) downloadReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid analysis id")
		return
	}

	analysis, ok := s.analyses.Get(id)
	if !ok {
		utils.Error(c, http.StatusNotFound, "analysis not found")
		return
	}

	pdfBytes, err := report.Build(analysis)
	if err != nil {
		log.Printf("[API] Report generation failed for %s: %v", id, err)
		utils.Error(c, http.StatusInternalServerError, "failed to generate report")
		return
	}

	filename := report.Filename(time.Now().UTC())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// AddFavoriteRequest is the body of POST /api/v1/favorites
type AddFavoriteRequest struct {
	AnalysisID string `json:"analysis_id" binding:"required"`
}

// addFavorite copies an analysis into the caller's favorites
func (s *Server) addFavorite(c *gin.Context) {
	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "analysis_id is required")
		return
	}

	id, err := uuid.Parse(req.AnalysisID)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid analysis id")
		return
	}

	analysis, ok := s.analyses.Get(id)
	if !ok {
		utils.Error(c, http.StatusNotFound, "analysis not found")
		return
	}

	entry := &model.FavoriteEntry{
		ID:        uuid.New(),
		Owner:     owner(c),
		URL:       analysis.URL,
		Summary:   analysis.Summary,
		CreatedAt: time.Now().UTC(),
	}
	if analysis.Translation != nil {
		entry.Translation = analysis.Translation.Text
		entry.TargetLanguage = analysis.Translation.TargetLanguage
	}
	if analysis.VideoInfo != nil && analysis.VideoInfo.Title != nil {
		entry.Title = analysis.VideoInfo.Title
	}

	if err := s.favorites.Add(c.Request.Context(), entry); err != nil {
		log.Printf("[API] Failed to save favorite: %v", err)
		utils.Error(c, http.StatusInternalServerError, "failed to save favorite")
		return
	}

	utils.Success(c, gin.H{"id": entry.ID.String(), "message": "saved to favorites"})
}

// listFavorites returns the caller's favorites; ?order=desc reverses
// the view (newest first)
func (s *Server) listFavorites(c *gin.Context) {
	entries, err := s.favorites.List(c.Request.Context(), owner(c))
	if err != nil {
		log.Printf("[API] Failed to list favorites: %v", err)
		utils.Error(c, http.StatusInternalServerError, "failed to list favorites")
		return
	}

	if c.Query("order") == "desc" {
		for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
			entries[i], entries[j] = entries[j], entries[i]
		}
	}

	utils.Success(c, gin.H{"items": entries, "count": len(entries)})
}

// removeFavorite deletes by position; the index refers to the order
// the caller is looking at, so ?order=desc changes how it maps onto
// the stored list
func (s *Server) removeFavorite(c *gin.Context) {
	displayIndex, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid index")
		return
	}

	user := owner(c)
	entries, err := s.favorites.List(c.Request.Context(), user)
	if err != nil {
		log.Printf("[API] Failed to list favorites: %v", err)
		utils.Error(c, http.StatusInternalServerError, "failed to remove favorite")
		return
	}

	idx, err := storage.InsertionIndex(displayIndex, len(entries), c.Query("order") == "desc")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	removed, err := s.favorites.Remove(c.Request.Context(), user, idx)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	utils.Success(c, gin.H{"removed": removed, "message": "favorite removed"})
}

// clearFavorites empties the caller's list
func (s *Server) clearFavorites(c *gin.Context) {
	if err := s.favorites.Clear(c.Request.Context(), owner(c)); err != nil {
		log.Printf("[API] Failed to clear favorites: %v", err)
		utils.Error(c, http.StatusInternalServerError, "failed to clear favorites")
		return
	}
	utils.Success(c, gin.H{"message": "favorites cleared"})
}
