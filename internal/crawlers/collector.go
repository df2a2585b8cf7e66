package crawlers

import (
	"context"

	"logboard/internal/log"
	"logboard/internal/models"
)

// PostCollector는 플랫폼에 맞는 크롤러로 페이지가 끝날 때까지 글을 모읍니다.
type PostCollector struct {
	crawlers map[models.Platform]models.BlogCrawler
	maxPages int
}

// NewPostCollector는 한 번의 수집에서 최대 maxPages 페이지까지만 요청하는 PostCollector를 생성합니다.
func NewPostCollector(maxPages int, crawlers ...models.BlogCrawler) *PostCollector {
	byPlatform := make(map[models.Platform]models.BlogCrawler, len(crawlers))
	for _, crawler := range crawlers {
		byPlatform[crawler.Platform()] = crawler
	}
	return &PostCollector{crawlers: byPlatform, maxPages: maxPages}
}

// Collect는 info의 커서부터 마지막 페이지까지 글을 수집합니다.
// info가 에러 상태거나 지원하지 않는 플랫폼이면 그대로 돌려줍니다.
// 수집 중 실패하면 그때까지 모은 글과 함께 에러 상태를 돌려줍니다.
func (c *PostCollector) Collect(ctx context.Context, info models.SiteInfo) models.SiteInfo {
	if info.Status != models.StatusSuccess || info.Platform == models.PlatformUnknown {
		return info
	}
	crawler, ok := c.crawlers[info.Platform]
	if !ok {
		return info
	}

	out := info
	out.Posts = append([]models.Post{}, info.Posts...)

	for fetched := 0; ; fetched++ {
		if fetched >= c.maxPages {
			log.Warn().
				Str("platform", out.Platform.String()).
				Str("blog", out.BlogName).
				Int("pages", fetched).
				Err(ErrPageLimit).
				Msg("최대 페이지 수 도달, 수집 중단")
			return fail(out, msgPageLimit)
		}
		if err := ctx.Err(); err != nil {
			log.Warn().Err(err).Str("blog", out.BlogName).Msg("수집 취소")
			return fail(out, msgFetchFailed)
		}

		more, err := crawler.FetchPage(ctx, &out)
		if err != nil {
			log.Warn().
				Err(err).
				Str("platform", out.Platform.String()).
				Str("blog", out.BlogName).
				Msg("글 목록 수집 실패")
			return fail(out, msgFetchFailed)
		}
		if !more {
			log.Info().
				Str("platform", out.Platform.String()).
				Str("blog", out.BlogName).
				Int("pages", fetched+1).
				Int("posts", len(out.Posts)).
				Msg("글 목록 수집 완료")
			return out
		}
	}
}

func fail(info models.SiteInfo, message string) models.SiteInfo {
	info.Status = models.StatusError
	info.Message = message
	info.Platform = models.PlatformUnknown
	return info
}
