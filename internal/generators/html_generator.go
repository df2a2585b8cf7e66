package generators

import (
	"fmt"
	"html/template"
	"io"
	"sort"
	"time"

	"logboard/internal/filters"
	"logboard/internal/models"
)

// HTMLGenerator는 수집한 블로그 글 목록을 HTML 다이제스트로 변환하는 제너레이터입니다.
type HTMLGenerator struct {
	template *template.Template
	now      func() time.Time
}

// NewHTMLGenerator는 새로운 HTMLGenerator 인스턴스를 생성합니다.
func NewHTMLGenerator() *HTMLGenerator {
	return &HTMLGenerator{
		template: template.Must(template.New("digest").Parse(digestTemplate)),
		now:      time.Now,
	}
}

type yearGroup struct {
	Year  string
	Posts []models.Post
}

// GenerateHTML은 info의 글을 최신순, 연도별로 묶어 w에 씁니다.
func (g *HTMLGenerator) GenerateHTML(info models.SiteInfo, w io.Writer) error {
	posts := append([]models.Post{}, info.Posts...)
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt > posts[j].CreatedAt
	})

	data := struct {
		BlogName    string
		Platform    string
		Years       []yearGroup
		TotalCount  int
		GeneratedAt string
	}{
		BlogName:    info.BlogName,
		Platform:    info.Platform.String(),
		Years:       g.groupByYear(posts),
		TotalCount:  len(posts),
		GeneratedAt: g.now().In(models.KST).Format(time.DateTime),
	}

	if err := g.template.Execute(w, data); err != nil {
		return fmt.Errorf("HTML 템플릿 실행 실패: %w", err)
	}
	return nil
}

// groupByYear는 정렬된 글을 작성 연도별로 묶습니다. 날짜를 읽을 수 없는 글은 "기타"로 모입니다.
func (g *HTMLGenerator) groupByYear(posts []models.Post) []yearGroup {
	var groups []yearGroup
	var others []models.Post
	for _, post := range posts {
		created, ok := filters.ParseCreatedAt(post.CreatedAt)
		if !ok {
			others = append(others, post)
			continue
		}
		year := created.Format("2006")
		if len(groups) == 0 || groups[len(groups)-1].Year != year {
			groups = append(groups, yearGroup{Year: year})
		}
		groups[len(groups)-1].Posts = append(groups[len(groups)-1].Posts, post)
	}
	if len(others) > 0 {
		groups = append(groups, yearGroup{Year: "기타", Posts: others})
	}
	return groups
}

// digestTemplate은 블로그 다이제스트 페이지의 HTML 템플릿입니다.
const digestTemplate = `<!DOCTYPE html>
<html lang="ko">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.BlogName}} 글 모음</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            line-height: 1.6;
            color: #333;
            background-color: #f8f9fa;
        }

        .container {
            max-width: 960px;
            margin: 0 auto;
            padding: 20px;
        }

        .header {
            text-align: center;
            padding: 32px 0;
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            color: white;
            border-radius: 12px;
        }

        .post-card {
            display: flex;
            gap: 16px;
            background: white;
            border-radius: 12px;
            padding: 16px;
            margin-bottom: 12px;
            box-shadow: 0 4px 15px rgba(0,0,0,0.1);
        }

        .post-card img {
            width: 120px;
            height: 80px;
            object-fit: cover;
            border-radius: 8px;
        }

        .post-date {
            color: #666;
            font-size: 0.85rem;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>{{.BlogName}}</h1>
            <p>{{.Platform}} · 총 {{.TotalCount}}개 글 · {{.GeneratedAt}} 기준</p>
        </div>
        {{range .Years}}
        <h2>{{.Year}}</h2>
        {{range .Posts}}
        <a class="post-card" href="{{.URL}}" target="_blank" rel="noopener">
            {{if .ThumbnailURL}}<img src="{{.ThumbnailURL}}" alt="">{{end}}
            <div>
                <h3>{{.Title}}</h3>
                <div class="post-date">{{.CreatedAt}}</div>
                {{if .Summary}}<p>{{.Summary}}</p>{{end}}
            </div>
        </a>
        {{end}}
        {{end}}
    </div>
</body>
</html>`
