package crawlers

import (
	"context"
	"fmt"
	"net/url"
	"regexp"

	"github.com/pkg/errors"

	"logboard/internal/log"
	"logboard/internal/models"
)

const velogGraphQLEndpoint = "https://v3.velog.io/graphql"

const velogPostsQuery = `query velogPosts($cursor: ID, $username: String) {
  posts(cursor: $cursor, username: $username) {
    id
    title
    short_description
    thumbnail
    url_slug
    released_at
  }
}`

var velogProfilePattern = regexp.MustCompile(`^https?://(?:www\.)?velog\.io/@([^/?#]*)`)

// GraphQLRequest는 GraphQL 엔드포인트로 보내는 요청 본문입니다.
type GraphQLRequest struct {
	OperationName string         `json:"operationName"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
}

// VelogCrawler는 직전 페이지 마지막 글 id를 커서로 삼아 velog 글 목록을 수집합니다.
type VelogCrawler struct {
	fetcher  Fetcher
	endpoint string
}

func NewVelogCrawler(fetcher Fetcher) *VelogCrawler {
	return &VelogCrawler{fetcher: fetcher, endpoint: velogGraphQLEndpoint}
}

func (c *VelogCrawler) Platform() models.Platform {
	return models.PlatformVelog
}

// Detect는 URL의 /@<handle> 경로에서 사용자 이름을 꺼냅니다.
// handle이 비어 있어도 성공으로 처리하며 이 경우 수집되는 글은 없습니다.
func (c *VelogCrawler) Detect(pageURL string, _ []byte) (models.SiteInfo, bool) {
	m := velogProfilePattern.FindStringSubmatch(pageURL)
	if m == nil {
		return models.SiteInfo{}, false
	}

	handle, err := url.PathUnescape(m[1])
	if err != nil {
		handle = m[1]
	}

	return models.SiteInfo{
		Status:       models.StatusSuccess,
		Platform:     models.PlatformVelog,
		BlogName:     handle,
		BlogID:       handle,
		Cursor:       models.TokenCursor(""),
		PageTemplate: velogPostsQuery,
		Posts:        []models.Post{},
	}, true
}

type velogPage struct {
	Data struct {
		Posts []struct {
			ID               string `json:"id"`
			Title            string `json:"title"`
			ShortDescription string `json:"short_description"`
			Thumbnail        string `json:"thumbnail"`
			URLSlug          string `json:"url_slug"`
			ReleasedAt       string `json:"released_at"`
		} `json:"posts"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// FetchPage는 한 페이지를 가져와 커서를 이번 페이지 마지막 글 id로 옮깁니다.
// 빈 페이지가 오면 끝입니다.
func (c *VelogCrawler) FetchPage(ctx context.Context, info *models.SiteInfo) (bool, error) {
	if info.BlogID == "" {
		return false, nil
	}

	var cursor any
	if info.Cursor.Token != "" {
		cursor = info.Cursor.Token
	}
	req := GraphQLRequest{
		OperationName: "velogPosts",
		Query:         info.PageTemplate,
		Variables: map[string]any{
			"cursor":   cursor,
			"username": info.BlogID,
		},
	}

	res, err := c.fetcher.PostJSON(ctx, c.endpoint, req)
	if err != nil {
		return false, upstreamError(err)
	}

	var page velogPage
	if err := decodeResponse(res, &page); err != nil {
		return false, err
	}
	if len(page.Errors) > 0 {
		return false, errors.Wrapf(ErrUpstream, "GraphQL 오류: %s", page.Errors[0].Message)
	}

	for _, p := range page.Data.Posts {
		info.Posts = append(info.Posts, models.Post{
			ExternalID:   p.ID,
			Title:        p.Title,
			URL:          fmt.Sprintf("https://velog.io/@%s/%s", info.BlogID, p.URLSlug),
			CreatedAt:    p.ReleasedAt,
			ThumbnailURL: optional(p.Thumbnail),
			Summary:      optional(p.ShortDescription),
		})
	}

	log.Info().
		Str("blog", info.BlogID).
		Str("cursor", info.Cursor.Token).
		Int("items", len(page.Data.Posts)).
		Msg("velog 페이지 수집")

	if len(page.Data.Posts) == 0 {
		return false, nil
	}
	last := page.Data.Posts[len(page.Data.Posts)-1].ID
	if last == "" {
		// 빈 커서는 첫 페이지 요청과 같으므로 같은 글을 반복해서 받게 된다
		return false, errors.Wrap(ErrUpstream, "마지막 글에 id가 없음")
	}
	info.Cursor.Token = last
	return true, nil
}
