package filters

import (
	"strings"
	"time"

	"logboard/internal/models"
)

// PostFilter는 기준일 이후 작성된 글 중 키워드가 들어간 글만 남깁니다.
type PostFilter struct {
	since    time.Time
	keywords []string
}

// NewPostFilter는 새로운 PostFilter 인스턴스를 생성합니다. 키워드가 없으면 날짜로만 거릅니다.
func NewPostFilter(since time.Time, keywords ...string) *PostFilter {
	lowered := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		if keyword = strings.TrimSpace(keyword); keyword != "" {
			lowered = append(lowered, strings.ToLower(keyword))
		}
	}
	return &PostFilter{since: since, keywords: lowered}
}

// Filter는 조건에 맞는 글을 원래 순서대로 반환합니다.
func (f *PostFilter) Filter(posts []models.Post) []models.Post {
	filtered := []models.Post{}
	for _, post := range posts {
		// 날짜를 읽을 수 없는 글은 기준일과 비교하지 않고 남긴다
		if created, ok := ParseCreatedAt(post.CreatedAt); ok && created.Before(f.since) {
			continue
		}
		if f.matchesKeyword(post) {
			filtered = append(filtered, post)
		}
	}
	return filtered
}

func (f *PostFilter) matchesKeyword(post models.Post) bool {
	if len(f.keywords) == 0 {
		return true
	}

	text := strings.ToLower(post.Title)
	if post.Summary != nil {
		text += " " + strings.ToLower(*post.Summary)
	}
	for _, keyword := range f.keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// ParseCreatedAt은 플랫폼별 작성일 문자열(YYYY-MM-DD 또는 RFC3339)을 시각으로 바꿉니다.
func ParseCreatedAt(createdAt string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, createdAt); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
