package crawlers

import (
	"context"
	"time"

	"logboard/internal/log"
	"logboard/internal/models"
)

// CrawlerManager는 플랫폼 판별과 글 수집을 묶어 제공하는 매니저입니다.
type CrawlerManager struct {
	crawlers  []models.BlogCrawler
	detector  *SiteDetector
	collector *PostCollector
}

// NewCrawlerManager는 지원하는 모든 플랫폼 크롤러로 CrawlerManager를 생성합니다.
// 판별은 티스토리(페이지 본문), velog(URL 경로) 순서로 진행됩니다.
func NewCrawlerManager(fetcher Fetcher, maxPages int) *CrawlerManager {
	crawlers := []models.BlogCrawler{
		NewTistoryCrawler(fetcher),
		NewVelogCrawler(fetcher),
	}
	return &CrawlerManager{
		crawlers:  crawlers,
		detector:  NewSiteDetector(fetcher, crawlers...),
		collector: NewPostCollector(maxPages, crawlers...),
	}
}

func (m *CrawlerManager) DetectSite(ctx context.Context, url string) models.SiteInfo {
	return m.detector.Detect(ctx, url)
}

func (m *CrawlerManager) CollectPosts(ctx context.Context, info models.SiteInfo) models.SiteInfo {
	return m.collector.Collect(ctx, info)
}

// Crawl은 url의 플랫폼을 판별한 뒤 모든 글을 수집합니다.
func (m *CrawlerManager) Crawl(ctx context.Context, url string) models.SiteInfo {
	log.Info().Str("url", url).Msg("크롤링 시작")
	start := time.Now()

	info := m.DetectSite(ctx, url)
	if info.Status != models.StatusSuccess {
		log.Warn().Str("url", url).Str("message", info.Message).Msg("사이트 판별 실패")
		return info
	}

	info = m.CollectPosts(ctx, info)
	log.Info().
		Str("url", url).
		Str("status", string(info.Status)).
		Int("posts", len(info.Posts)).
		Dur("duration", time.Since(start)).
		Msg("크롤링 완료")
	return info
}

// SupportedPlatforms는 판별 가능한 플랫폼 목록을 반환합니다.
func (m *CrawlerManager) SupportedPlatforms() []models.Platform {
	platforms := make([]models.Platform, 0, len(m.crawlers))
	for _, crawler := range m.crawlers {
		platforms = append(platforms, crawler.Platform())
	}
	return platforms
}
