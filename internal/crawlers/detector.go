package crawlers

import (
	"context"
	"strings"

	"logboard/internal/log"
	"logboard/internal/models"
)

// SiteDetector는 URL이 어떤 블로그 플랫폼인지 판별합니다.
type SiteDetector struct {
	fetcher  Fetcher
	crawlers []models.BlogCrawler
}

// NewSiteDetector는 crawlers를 주어진 순서대로 검사하는 SiteDetector를 생성합니다.
func NewSiteDetector(fetcher Fetcher, crawlers ...models.BlogCrawler) *SiteDetector {
	return &SiteDetector{fetcher: fetcher, crawlers: crawlers}
}

// Detect는 페이지를 받아 플랫폼을 판별하고 초기 크롤링 상태를 돌려줍니다.
// 실패는 에러 대신 Status가 error인 SiteInfo로 표현됩니다.
func (d *SiteDetector) Detect(ctx context.Context, rawURL string) models.SiteInfo {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return models.Failed(msgEmptyURL)
	}

	res, err := d.fetcher.Get(ctx, rawURL)
	if err != nil {
		log.Warn().Err(err).Str("url", rawURL).Msg("사이트 조회 실패")
		return models.Failed(msgLookupFailed)
	}
	if !res.OK() {
		log.Warn().Int("status", res.StatusCode).Str("url", rawURL).Msg("사이트 응답 오류")
		return models.Failed(msgLookupFailed)
	}

	for _, crawler := range d.crawlers {
		if info, ok := crawler.Detect(rawURL, res.Body); ok {
			return info
		}
	}

	return models.Failed(msgUnknownPlatform)
}
