package crawlers

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"logboard/internal/log"
	"logboard/internal/models"
)

const (
	// tistoryMarker는 티스토리 블로그 페이지 설정에 항상 들어 있는 보안 기본 URL입니다.
	tistoryMarker    = "https://www.tistory.com"
	tistoryPageSize  = 20
	tistoryPageToken = "#page"
)

var (
	tistoryConfigPattern = regexp.MustCompile(`window\.T\.config\s*=\s*\{`)
	tistoryDatePattern   = regexp.MustCompile(`(\d{4})\.\s*(\d{1,2})\.\s*(\d{1,2})\.?`)
)

// TistoryCrawler는 페이지 번호 기반으로 티스토리 글 목록을 수집합니다.
type TistoryCrawler struct {
	fetcher Fetcher
}

func NewTistoryCrawler(fetcher Fetcher) *TistoryCrawler {
	return &TistoryCrawler{fetcher: fetcher}
}

func (c *TistoryCrawler) Platform() models.Platform {
	return models.PlatformTistory
}

type tistoryConfig struct {
	Blog struct {
		ID   flexString `json:"id"`
		Name string     `json:"name"`
	} `json:"BLOG"`
}

// Detect는 페이지 스크립트에 심어진 window.T.config에서 블로그 이름과 id를 꺼냅니다.
func (c *TistoryCrawler) Detect(pageURL string, body []byte) (models.SiteInfo, bool) {
	if !bytes.Contains(body, []byte(tistoryMarker)) {
		return models.SiteInfo{}, false
	}

	config, err := findTistoryConfig(body)
	if err != nil {
		log.Warn().Err(err).Str("url", pageURL).Msg("티스토리 설정 추출 실패")
		return models.Failed(msgConfigNotFound), true
	}
	if config.Blog.Name == "" {
		log.Warn().Str("url", pageURL).Msg("티스토리 설정에 블로그 이름이 없음")
		return models.Failed(msgConfigNotFound), true
	}

	return models.SiteInfo{
		Status:   models.StatusSuccess,
		Platform: models.PlatformTistory,
		BlogName: config.Blog.Name,
		BlogID:   string(config.Blog.ID),
		Cursor:   models.PageCursor(0),
		PageTemplate: fmt.Sprintf(
			"https://%s.tistory.com/m/api/entry/0/POST?page=%s&size=%d",
			config.Blog.Name, tistoryPageToken, tistoryPageSize,
		),
		Posts: []models.Post{},
	}, true
}

// findTistoryConfig는 window.T.config 대입 위치부터 첫 JSON 값 하나만 디코딩합니다.
// 문자열 값 안의 "};"에 걸리지 않도록 끝은 정규식이 아닌 디코더가 판단합니다.
func findTistoryConfig(body []byte) (*tistoryConfig, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "HTML 파싱 실패")
	}

	var raw string
	doc.Find("script").EachWithBreak(func(i int, s *goquery.Selection) bool {
		text := s.Text()
		if loc := tistoryConfigPattern.FindStringIndex(text); loc != nil {
			raw = text[loc[1]-1:]
			return false
		}
		return true
	})
	if raw == "" {
		return nil, errors.New("window.T.config 스크립트를 찾을 수 없음")
	}

	var config tistoryConfig
	if err := json.NewDecoder(strings.NewReader(raw)).Decode(&config); err != nil {
		return nil, errors.Wrap(err, "설정 JSON 파싱 실패")
	}
	return &config, nil
}

type tistoryItem struct {
	ID        flexString `json:"id"`
	Title     string     `json:"title"`
	URL       string     `json:"url"`
	SubPath   string     `json:"subPath"`
	Published string     `json:"published"`
	Thumbnail string     `json:"thumbnail"`
	Summary   string     `json:"summary"`
}

type tistoryPage struct {
	Data struct {
		Items    []tistoryItem `json:"items"`
		NextPage any           `json:"nextPage"`
	} `json:"data"`
}

// FetchPage는 현재 페이지 번호의 글 목록을 가져옵니다. nextPage가 null이면 끝입니다.
func (c *TistoryCrawler) FetchPage(ctx context.Context, info *models.SiteInfo) (bool, error) {
	pageURL := strings.Replace(info.PageTemplate, tistoryPageToken, strconv.Itoa(info.Cursor.Page), 1)

	res, err := c.fetcher.Get(ctx, pageURL)
	if err != nil {
		return false, upstreamError(err)
	}

	var page tistoryPage
	if err := decodeResponse(res, &page); err != nil {
		return false, err
	}

	for _, item := range page.Data.Items {
		info.Posts = append(info.Posts, models.Post{
			ExternalID:   string(item.ID),
			Title:        item.Title,
			URL:          item.URL + item.SubPath,
			CreatedAt:    parseTistoryDate(item.Published),
			ThumbnailURL: optional(item.Thumbnail),
			Summary:      optional(item.Summary),
		})
	}

	log.Info().
		Str("blog", info.BlogName).
		Int("page", info.Cursor.Page).
		Int("items", len(page.Data.Items)).
		Msg("티스토리 페이지 수집")

	if page.Data.NextPage == nil {
		return false, nil
	}
	info.Cursor.Page++
	return true, nil
}

// parseTistoryDate는 "2023. 01. 05." 형식을 "2023-01-05"로 바꿉니다.
// 알 수 없는 형식이면 원문을 그대로 둡니다.
func parseTistoryDate(published string) string {
	published = strings.TrimSpace(published)
	if t, err := time.Parse("2006. 01. 02.", published); err == nil {
		return t.Format(time.DateOnly)
	}

	if m := tistoryDatePattern.FindStringSubmatch(published); len(m) == 4 {
		if t, err := time.Parse("2006-1-2", fmt.Sprintf("%s-%s-%s", m[1], m[2], m[3])); err == nil {
			return t.Format(time.DateOnly)
		}
	}

	log.Warn().Str("published", published).Msg("티스토리 날짜 파싱 실패")
	return published
}
