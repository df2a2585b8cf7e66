package models

import (
	"context"

	"github.com/goccy/go-json"
)

//go:generate stringer -type=Platform -linecomment

// Platform은 블로그가 호스팅되는 플랫폼입니다.
type Platform int

const (
	PlatformUnknown Platform = iota // unknown
	PlatformTistory                 // tistory
	PlatformVelog                   // velog
)

func (p Platform) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Status는 사이트 조회 결과 상태입니다.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// CursorKind는 플랫폼의 페이지네이션 방식을 나타냅니다.
type CursorKind int

const (
	CursorPage  CursorKind = iota // 0부터 시작하는 페이지 번호
	CursorToken                   // 직전 페이지 마지막 글 id, 빈 문자열이면 처음부터
)

// Cursor는 페이지 번호 또는 불투명 문자열 중 하나를 담습니다.
type Cursor struct {
	Kind  CursorKind
	Page  int
	Token string
}

func PageCursor(page int) Cursor {
	return Cursor{Kind: CursorPage, Page: page}
}

func TokenCursor(token string) Cursor {
	return Cursor{Kind: CursorToken, Token: token}
}

func (c Cursor) MarshalJSON() ([]byte, error) {
	if c.Kind == CursorToken {
		return json.Marshal(c.Token)
	}
	return json.Marshal(c.Page)
}

// Post는 정규화된 블로그 글 하나입니다. URL은 바로 열 수 있는 절대 주소입니다.
type Post struct {
	ExternalID   string  `json:"id"`
	Title        string  `json:"title"`
	URL          string  `json:"url"`
	CreatedAt    string  `json:"created_at"`
	ThumbnailURL *string `json:"thumbnail"`
	Summary      *string `json:"summary"`
}

// SiteInfo는 한 번의 크롤링 동안 유지되는 상태입니다.
// Platform은 Status가 success일 때만 설정됩니다.
type SiteInfo struct {
	Status       Status   `json:"status"`
	Message      string   `json:"message,omitempty"`
	Platform     Platform `json:"platform"`
	BlogName     string   `json:"blog_name"`
	BlogID       string   `json:"blog_id"`
	Cursor       Cursor   `json:"page_cursor"`
	PageTemplate string   `json:"page_template"`
	Posts        []Post   `json:"posts"`
}

// Failed는 에러 상태의 SiteInfo를 만듭니다.
func Failed(message string) SiteInfo {
	return SiteInfo{Status: StatusError, Message: message, Platform: PlatformUnknown}
}

// BlogCrawler는 플랫폼별 사이트 판별과 페이지 단위 수집을 담당하는 인터페이스입니다.
type BlogCrawler interface {
	Platform() Platform
	// Detect는 페이지가 이 플랫폼이면 초기 크롤링 상태를 돌려줍니다.
	Detect(pageURL string, body []byte) (SiteInfo, bool)
	// FetchPage는 현재 커서의 한 페이지를 info.Posts에 추가하고 커서를 전진시킵니다.
	// 더 가져올 페이지가 있으면 true를 반환합니다.
	FetchPage(ctx context.Context, info *SiteInfo) (bool, error)
}

// BlogPostFilter는 블로그 포스트 필터링을 위한 인터페이스입니다.
type BlogPostFilter interface {
	Filter(posts []Post) []Post
}
