package crawlers

import (
	"bytes"
	"context"

	"github.com/PuerkitoBio/goquery"

	"logboard/internal/log"
	"logboard/internal/models"
)

// MetaExtractor는 링크 미리보기용 메타 태그를 추출합니다.
type MetaExtractor struct {
	fetcher Fetcher
}

func NewMetaExtractor(fetcher Fetcher) *MetaExtractor {
	return &MetaExtractor{fetcher: fetcher}
}

// Extract는 페이지의 description, og:title, og:image, og:url 값을 읽습니다.
// 요청이나 파싱이 실패하면 nil을 반환합니다.
func (e *MetaExtractor) Extract(ctx context.Context, url string) *models.MetaInfo {
	res, err := e.fetcher.Get(ctx, url)
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("메타 태그 추출 중 요청 실패")
		return nil
	}
	if !res.OK() {
		log.Warn().Int("status", res.StatusCode).Str("url", url).Msg("메타 태그 추출 중 응답 오류")
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body))
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("메타 태그 추출 중 HTML 파싱 실패")
		return nil
	}

	return &models.MetaInfo{
		Description: metaContent(doc, "meta[name='description']"),
		OgTitle:     metaContent(doc, "meta[property='og:title']"),
		OgImage:     metaContent(doc, "meta[property='og:image']"),
		OgURL:       metaContent(doc, "meta[property='og:url']"),
	}
}

func metaContent(doc *goquery.Document, selector string) *string {
	content, ok := doc.Find(selector).First().Attr("content")
	if !ok {
		return nil
	}
	return &content
}
