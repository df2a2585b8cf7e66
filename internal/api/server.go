package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/pkg/errors"

	health "logboard/internal"
	"logboard/internal/config"
	"logboard/internal/log"
	"logboard/internal/models"
	"logboard/internal/store"
)

const logsPerPage = 10

// Crawler는 블로그 플랫폼 판별과 글 수집을 제공합니다.
type Crawler interface {
	DetectSite(ctx context.Context, url string) models.SiteInfo
	Crawl(ctx context.Context, url string) models.SiteInfo
	SupportedPlatforms() []models.Platform
}

// MetaExtractor는 링크 미리보기 메타 태그를 읽습니다.
type MetaExtractor interface {
	Extract(ctx context.Context, url string) *models.MetaInfo
}

// Server는 로그 보드 HTTP API입니다.
type Server struct {
	cfg     *config.Config
	store   store.LogStore
	crawler Crawler
	meta    MetaExtractor
	now     func() time.Time
}

func NewServer(cfg *config.Config, logStore store.LogStore, crawler Crawler, meta MetaExtractor) *Server {
	return &Server{
		cfg:     cfg,
		store:   logStore,
		crawler: crawler,
		meta:    meta,
		now:     time.Now,
	}
}

// Routes는 모든 API 경로가 등록된 라우터를 반환합니다.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	// 로그 보드 프론트엔드는 다른 origin에서 호출합니다.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))

	r.Get("/", health.NewController().HealthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Post("/logs", s.insertLog)
		r.Get("/logs", s.listLogs)
		r.Delete("/logs/{id}", s.trashLog)
		r.Get("/blogs/info", s.blogInfo)
		r.Get("/blogs/posts", s.blogPosts)
		r.Get("/platforms", s.platforms)
	})
	return r
}

func (s *Server) insertLog(w http.ResponseWriter, r *http.Request) {
	fields, message := decodeStrings(r, "name", "url")
	if message != "" {
		respond(w, http.StatusBadRequest, nil, message)
		return
	}
	name, url := fields["name"], fields["url"]

	if !s.cfg.IsMember(name) {
		respond(w, http.StatusBadRequest, nil, msgNotMember)
		return
	}

	meta := s.meta.Extract(r.Context(), url)
	if meta == nil {
		meta = &models.MetaInfo{}
	}

	id, err := s.store.Insert(r.Context(), models.LogEntry{
		Name:      name,
		URL:       url,
		CreatedAt: s.now(),
		Trash:     false,
		MetaInfo:  *meta,
	})
	if err != nil {
		log.Error().Err(err).Str("name", name).Msg("로그 저장 실패")
		respond(w, http.StatusNotFound, nil, msgInsertFailed)
		return
	}

	respond(w, http.StatusOK, map[string]string{"inserted_id": id}, "")
}

func (s *Server) listLogs(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	entries, total, err := s.store.List(r.Context(), page, logsPerPage)
	if err != nil {
		log.Error().Err(err).Int("page", page).Msg("로그 목록 조회 실패")
		respond(w, http.StatusNotFound, nil, msgListFailed)
		return
	}

	totalPages := int((total + logsPerPage - 1) / logsPerPage)
	logs := make([]models.LogView, 0, len(entries))
	for _, entry := range entries {
		logs = append(logs, entry.View())
	}

	respond(w, http.StatusOK, map[string]any{
		"logs":     logs,
		"finished": page >= totalPages,
	}, "")
}

func (s *Server) trashLog(w http.ResponseWriter, r *http.Request) {
	err := s.store.Trash(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		respond(w, http.StatusNotFound, nil, msgLogNotFound)
		return
	} else if err != nil {
		log.Error().Err(err).Msg("로그 숨김 처리 실패")
		respond(w, http.StatusInternalServerError, nil, msgTrashFailed)
		return
	}
	respond(w, http.StatusOK, nil, "")
}

func (s *Server) blogInfo(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		respond(w, http.StatusBadRequest, nil, msgURLRequired)
		return
	}

	info := s.crawler.DetectSite(r.Context(), url)
	if info.Status != models.StatusSuccess {
		respond(w, http.StatusBadRequest, nil, info.Message)
		return
	}
	respond(w, http.StatusOK, info, "")
}

func (s *Server) blogPosts(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		respond(w, http.StatusBadRequest, nil, msgURLRequired)
		return
	}

	info := s.crawler.Crawl(r.Context(), url)
	if info.Status != models.StatusSuccess {
		respond(w, http.StatusBadRequest, nil, info.Message)
		return
	}
	respond(w, http.StatusOK, map[string]any{
		"platform":  info.Platform,
		"blog_name": info.BlogName,
		"blog_id":   info.BlogID,
		"posts":     info.Posts,
	}, "")
}

func (s *Server) platforms(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]any{"platforms": s.crawler.SupportedPlatforms()}, "")
}
