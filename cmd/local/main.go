package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"logboard/internal/config"
	"logboard/internal/crawlers"
	"logboard/internal/filters"
	"logboard/internal/generators"
	"logboard/internal/log"
	"logboard/internal/models"
)

func writeFile(path string, write func(f *os.File) error) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "파일 생성 실패: %s", path)
	}
	defer file.Close()
	if err := write(file); err != nil {
		return errors.Wrapf(err, "파일 쓰기 실패: %s", path)
	}
	return nil
}

func run(ctx context.Context, cfg *config.Config, url, outDir string, keywords []string) error {
	manager := crawlers.NewCrawlerManager(crawlers.NewRestyFetcher(cfg.HTTPTimeout, cfg.UserAgent), cfg.MaxPages)
	info := manager.Crawl(ctx, url)
	if info.Status != models.StatusSuccess {
		return errors.Errorf("크롤링 실패: %s", info.Message)
	}

	var filter models.BlogPostFilter = filters.NewPostFilter(cfg.FilterDate, keywords...)
	info.Posts = filter.Filter(info.Posts)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errors.Wrap(err, "출력 디렉터리 생성 실패")
	}

	htmlPath := filepath.Join(outDir, "index.html")
	err := writeFile(htmlPath, func(f *os.File) error {
		return generators.NewHTMLGenerator().GenerateHTML(info, f)
	})
	if err != nil {
		return err
	}

	jsonPath := filepath.Join(outDir, "posts.json")
	err = writeFile(jsonPath, func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	})
	if err != nil {
		return err
	}

	log.Info().
		Str("blog", info.BlogName).
		Int("posts", len(info.Posts)).
		Str("html", htmlPath).
		Str("json", jsonPath).
		Msg("로컬 파일 저장 완료")
	return nil
}

func main() {
	var outDir, keywords string

	rootCmd := &cobra.Command{
		Use:   "local <blog-url>",
		Short: "블로그 글을 모두 수집해 HTML 다이제스트와 JSON으로 저장합니다",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			var words []string
			if keywords != "" {
				words = strings.Split(keywords, ",")
			}
			return run(cmd.Context(), cfg, args[0], outDir, words)
		},
	}
	rootCmd.Flags().StringVarP(&outDir, "out", "o", ".", "출력 디렉터리")
	rootCmd.Flags().StringVarP(&keywords, "keywords", "k", "", "쉼표로 구분한 제목/요약 키워드")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Error().Err(err).Msg("실행 실패")
		os.Exit(1)
	}
}
