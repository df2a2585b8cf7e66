package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"logboard/internal/config"
	"logboard/internal/crawlers"
	"logboard/internal/filters"
	"logboard/internal/generators"
	"logboard/internal/log"
	"logboard/internal/models"
)

// CrawlEvent는 Lambda 호출 이벤트입니다.
type CrawlEvent struct {
	URL      string   `json:"url"`
	Keywords []string `json:"keywords"`
}

// CrawlResult는 Lambda 응답입니다.
type CrawlResult struct {
	Result   string `json:"result"`
	Message  string `json:"message,omitempty"`
	Platform string `json:"platform,omitempty"`
	BlogName string `json:"blog_name,omitempty"`
	Posts    int    `json:"posts"`
	HTMLKey  string `json:"html_key,omitempty"`
	JSONKey  string `json:"json_key,omitempty"`
}

// uploader는 S3 PutObject만 필요로 합니다.
type uploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type handler struct {
	cfg     *config.Config
	manager *crawlers.CrawlerManager
	s3      uploader
}

// uploadToS3는 내용을 S3 버킷의 key에 업로드합니다.
func (h *handler) uploadToS3(ctx context.Context, key, contentType string, content []byte) error {
	_, err := h.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(h.cfg.S3Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return errors.Wrapf(err, "S3 업로드 실패: %s", key)
	}
	log.Info().Str("bucket", h.cfg.S3Bucket).Str("key", key).Msg("S3 업로드 완료")
	return nil
}

func (h *handler) Handle(ctx context.Context, event CrawlEvent) (CrawlResult, error) {
	info := h.manager.Crawl(ctx, event.URL)
	if info.Status != models.StatusSuccess {
		return CrawlResult{Result: "fail", Message: info.Message}, nil
	}

	info.Posts = filters.NewPostFilter(h.cfg.FilterDate, event.Keywords...).Filter(info.Posts)
	prefix := fmt.Sprintf("%s/%s", info.Platform, objectName(info.BlogName))

	var html bytes.Buffer
	if err := generators.NewHTMLGenerator().GenerateHTML(info, &html); err != nil {
		return CrawlResult{}, err
	}
	payload, err := json.Marshal(info)
	if err != nil {
		return CrawlResult{}, errors.Wrap(err, "JSON 직렬화 실패")
	}

	result := CrawlResult{
		Result:   "success",
		Platform: info.Platform.String(),
		BlogName: info.BlogName,
		Posts:    len(info.Posts),
		HTMLKey:  prefix + "/index.html",
		JSONKey:  prefix + "/posts.json",
	}
	if err := h.uploadToS3(ctx, result.HTMLKey, "text/html", html.Bytes()); err != nil {
		return CrawlResult{}, err
	}
	if err := h.uploadToS3(ctx, result.JSONKey, "application/json", payload); err != nil {
		return CrawlResult{}, err
	}
	return result, nil
}

// objectName은 블로그 이름을 S3 키에 안전한 형태로 바꿉니다.
func objectName(name string) string {
	name = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ' ' {
			return '_'
		}
		return r
	}, name)
	if name == "" {
		return "_"
	}
	return name
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("설정 로드 실패")
		panic(err)
	}
	if cfg.S3Bucket == "" {
		panic("S3_BUCKET 환경변수가 설정되지 않았습니다.")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Error().Err(err).Msg("AWS 설정 로드 실패")
		panic(err)
	}

	h := &handler{
		cfg:     cfg,
		manager: crawlers.NewCrawlerManager(crawlers.NewRestyFetcher(cfg.HTTPTimeout, cfg.UserAgent), cfg.MaxPages),
		s3:      s3.NewFromConfig(awsCfg),
	}
	lambda.Start(h.Handle)
}
