package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/skill-matcher/internal/db"
	"github.com/jonathan/skill-matcher/internal/ingestion"
	"github.com/jonathan/skill-matcher/internal/logger"
	"github.com/jonathan/skill-matcher/internal/pipeline"
	"github.com/jonathan/skill-matcher/internal/queue"
	"github.com/jonathan/skill-matcher/internal/server/middleware"
	"github.com/jonathan/skill-matcher/internal/storage"
	"github.com/jonathan/skill-matcher/internal/types"
)

const (
	resumeField = "resume"
	// multipartOverhead is the body allowance for boundaries and headers on
	// top of the file itself.
	multipartOverhead = 64 << 10
	defaultJobLimit   = 20
)

// UploadData describes a processed upload.
type UploadData struct {
	Filename             string              `json:"filename"`
	Size                 int64               `json:"size"`
	ExtractedSkills      []string            `json:"extractedSkills"`
	ProgrammingLanguages []string            `json:"programmingLanguages"`
	SkillsByCategory     map[string][]string `json:"skillsByCategory"`
	MatchedRoles         []types.RoleMatch   `json:"matchedRoles"`
	SelectedRole         string              `json:"selectedRole"`
	TextPreview          string              `json:"textPreview"`
}

// UploadResponse is returned by a synchronous upload.
type UploadResponse struct {
	Message         string     `json:"message"`
	ExtractedSkills []string   `json:"extractedSkills"`
	SelectedRole    string     `json:"selectedRole"`
	Data            UploadData `json:"data"`
}

// JobAccepted is returned by an asynchronous upload.
type JobAccepted struct {
	Message string       `json:"message"`
	JobID   uuid.UUID    `json:"jobId"`
	Status  db.JobStatus `json:"status"`
}

// handleUploadResume handles POST /resume/upload.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	maxBytes := s.cfg.MaxUploadBytes
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)
	file, header, err := r.FormFile(resumeField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("File exceeds the %d byte limit.", maxBytes))
			return
		}
		writeError(w, http.StatusBadRequest, "No resume uploaded")
		return
	}
	defer file.Close()

	if header.Size > maxBytes {
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("File exceeds the %d byte limit.", maxBytes))
		return
	}
	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	mime := ingestion.DetectMIME(header.Filename, data)
	if !ingestion.IsSupported(mime) {
		writeError(w, http.StatusUnsupportedMediaType, "Only PDF, DOCX and plain text files are allowed.")
		return
	}

	key := storage.ResumeKey(user.ID, header.Filename, s.now())
	log := s.logger.With(
		zap.String(logger.FieldUserID, user.ID.String()),
		zap.String(logger.FieldObjectKey, key),
	)

	if err := s.store.Put(ctx, key, mime, data); err != nil {
		log.Error("failed to store resume", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to store resume.")
		return
	}

	if s.queue != nil && wantsAsync(r) {
		s.enqueueResume(ctx, w, log, user.ID, key, mime)
		return
	}

	analysis, text, err := s.analyzeUpload(mime, data)
	if err != nil {
		s.discard(ctx, log, key)
		status := HTTPStatus(err)
		if status == http.StatusInternalServerError {
			// Corrupt documents surface as generic errors.
			status = http.StatusBadRequest
		}
		writeError(w, status, uploadErrorMessage(err))
		return
	}

	rec := db.ResumeRecord{ObjectKey: key, MIME: mime, Text: text, Analysis: analysis}
	if err := s.db.SaveResumeAnalysis(ctx, user.ID, rec); err != nil {
		s.discard(ctx, log, key)
		log.Error("failed to save analysis", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to process resume. Please try again.")
		return
	}
	if user.ResumeKey != "" && user.ResumeKey != key {
		s.discard(ctx, log, user.ResumeKey)
	}

	log.Info("resume analyzed",
		zap.Int("skills", len(analysis.ExtractedSkills)),
		zap.String("selected_role", analysis.SelectedRole),
	)
	writeJSON(w, http.StatusOK, UploadResponse{
		Message:         "Resume processed successfully.",
		ExtractedSkills: analysis.ExtractedSkills,
		SelectedRole:    analysis.SelectedRole,
		Data: UploadData{
			Filename:             key,
			Size:                 int64(len(data)),
			ExtractedSkills:      analysis.ExtractedSkills,
			ProgrammingLanguages: analysis.ProgrammingLanguages,
			SkillsByCategory:     analysis.SkillsByCategory,
			MatchedRoles:         analysis.MatchedRoles,
			SelectedRole:         analysis.SelectedRole,
			TextPreview:          analysis.TextPreview,
		},
	})
}

func (s *Server) analyzeUpload(mime string, data []byte) (*types.ResumeAnalysis, string, error) {
	raw, err := ingestion.ExtractText(mime, data)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read document: %w", err)
	}
	text := ingestion.CleanText(raw)
	analysis, err := s.analyzer.Analyze(text)
	if err != nil {
		return nil, "", err
	}
	return analysis, text, nil
}

func uploadErrorMessage(err error) string {
	switch {
	case errors.Is(err, pipeline.ErrEmptyText):
		return "Could not extract text from the document. It may be image-based."
	case errors.Is(err, pipeline.ErrNoSkills):
		return "No skills could be detected from this document. Please upload a valid resume with relevant skills listed."
	}
	return "Could not read the uploaded document."
}

func (s *Server) enqueueResume(ctx context.Context, w http.ResponseWriter, log *zap.Logger, userID uuid.UUID, key, mime string) {
	jobID, err := s.db.CreateAnalysisJob(ctx, userID, key, mime)
	if err != nil {
		s.discard(ctx, log, key)
		log.Error("failed to create analysis job", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to queue resume.")
		return
	}

	job := queue.Job{ID: jobID, UserID: userID, ObjectKey: key, MIME: mime, EnqueuedAt: s.now().UTC()}
	if err := s.queue.Enqueue(ctx, job); err != nil {
		log.Error("failed to enqueue analysis job", zap.String(logger.FieldJobID, jobID.String()), zap.Error(err))
		if uerr := s.db.UpdateAnalysisJobStatus(ctx, jobID, db.JobFailed, "could not be queued"); uerr != nil {
			log.Error("failed to mark job failed", zap.Error(uerr))
		}
		s.discard(ctx, log, key)
		writeError(w, http.StatusServiceUnavailable, "Analysis queue unavailable. Please try again shortly.")
		return
	}

	log.Info("resume queued", zap.String(logger.FieldJobID, jobID.String()))
	writeJSON(w, http.StatusAccepted, JobAccepted{
		Message: "Resume queued for analysis.",
		JobID:   jobID,
		Status:  db.JobQueued,
	})
}

// discard deletes a stored object, logging failures.
func (s *Server) discard(ctx context.Context, log *zap.Logger, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		log.Warn("failed to delete stored resume", zap.String("key", key), zap.Error(err))
	}
}

// handleResumeText handles GET /resume/text.
func (s *Server) handleResumeText(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	if user.ResumeText == "" {
		writeError(w, http.StatusNotFound, (&ErrNoResume{}).Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"resumeText": user.ResumeText,
		"hasResume":  true,
	})
}

// handleDownloadResume handles GET /resume/download.
func (s *Server) handleDownloadResume(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	if !user.HasResume() {
		writeError(w, http.StatusNotFound, "No resume found.")
		return
	}

	data, err := s.store.Get(r.Context(), user.ResumeKey)
	if err != nil {
		if HTTPStatus(err) == http.StatusNotFound {
			writeError(w, http.StatusNotFound, "Resume file not found on server.")
			return
		}
		s.logger.Error("failed to fetch resume", zap.String(logger.FieldObjectKey, user.ResumeKey), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	contentType := user.ResumeMIME
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloadName(user.Name, user.ResumeKey)))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// downloadName builds "<Name_With_Underscores>_Resume<ext>".
func downloadName(name, key string) string {
	base := strings.Join(strings.Fields(name), "_")
	if base == "" {
		base = "My"
	}
	return base + "_Resume" + filepath.Ext(key)
}

// handleGetJob handles GET /resume/jobs/{id}.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	job, err := s.db.GetAnalysisJob(r.Context(), jobID)
	if err != nil {
		s.logger.Error("failed to get analysis job", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if job == nil || job.UserID != userID {
		writeError(w, http.StatusNotFound, (&ErrJobNotFound{JobID: jobID}).Error())
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// handleListJobs handles GET /resume/jobs.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	limit := defaultJobLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	jobs, err := s.db.ListAnalysisJobs(r.Context(), userID, limit)
	if err != nil {
		s.logger.Error("failed to list analysis jobs", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if jobs == nil {
		jobs = []db.AnalysisJob{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"jobs": jobs})
}

// currentUser loads the authenticated user, writing an error response when
// that fails.
func (s *Server) currentUser(w http.ResponseWriter, r *http.Request) (*db.User, bool) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return nil, false
	}
	user, err := s.db.GetUser(r.Context(), userID)
	if err != nil {
		s.logger.Error("failed to get user", zap.String(logger.FieldUserID, userID.String()), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error.")
		return nil, false
	}
	if user == nil {
		writeError(w, http.StatusNotFound, (&ErrUserNotFound{UserID: userID}).Error())
		return nil, false
	}
	return user, true
}

func requestUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := middleware.UserID(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return uuid.Nil, false
	}
	return userID, true
}

func wantsAsync(r *http.Request) bool {
	v := r.URL.Query().Get("async")
	if v == "" {
		v = r.FormValue("async")
	}
	async, _ := strconv.ParseBool(v)
	return async
}
