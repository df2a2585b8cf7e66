package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Config는 서버와 크롤러가 요청 처리 시 주입받는 설정 값입니다.
type Config struct {
	Port        int
	MongoURI    string
	MongoDB     string
	Members     []string
	HTTPTimeout time.Duration
	MaxPages    int
	UserAgent   string
	S3Bucket    string
	FilterDate  time.Time
}

const (
	defaultPort        = 5000
	defaultHTTPTimeout = 60 * time.Second
	defaultMaxPages    = 500
	defaultFilterDate  = "2025-01-01"
	defaultUserAgent   = "Mozilla/5.0 (compatible; LogBoardBot/1.0)"
)

// defaultMembers는 MEMBERS 환경변수가 없을 때 사용하는 정글 멤버 명단입니다.
var defaultMembers = []string{
	"고민지", "김기래", "김동규", "김민규", "김보아", "김성종", "김수민", "김현호",
	"류승찬", "박수연", "박혜린", "배상화", "송상록", "신예린", "신우진", "안수연",
	"안준표", "안태주", "양진성", "오준탁", "유호준", "이종호", "이주명", "이주형",
	"이지윤", "이태윤", "장준영", "조성진", "최선하", "한진우", "홍석표", "황희구",
}

// Load는 .env 파일(있다면)과 환경변수에서 설정을 읽습니다.
func Load() (*Config, error) {
	// .env가 없어도 환경변수만으로 동작해야 한다
	_ = godotenv.Load()
	return FromLookup(os.LookupEnv)
}

// FromLookup은 주어진 조회 함수로 설정을 구성합니다.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	cfg := &Config{
		Port:        defaultPort,
		MongoURI:    get(lookup, "MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     get(lookup, "MONGO_DB", "logboard"),
		Members:     defaultMembers,
		HTTPTimeout: defaultHTTPTimeout,
		MaxPages:    defaultMaxPages,
		UserAgent:   get(lookup, "USER_AGENT", defaultUserAgent),
		S3Bucket:    get(lookup, "S3_BUCKET", ""),
	}

	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.Wrapf(err, "PORT 파싱 실패: %q", v)
		}
		cfg.Port = port
	}

	if v, ok := lookup("MEMBERS"); ok && strings.TrimSpace(v) != "" {
		cfg.Members = splitList(v)
	}

	if v, ok := lookup("HTTP_TIMEOUT"); ok && v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return nil, errors.Wrapf(err, "HTTP_TIMEOUT 파싱 실패: %q", v)
		}
		cfg.HTTPTimeout = timeout
	}

	if v, ok := lookup("MAX_PAGES"); ok && v != "" {
		maxPages, err := strconv.Atoi(v)
		if err != nil || maxPages < 1 {
			return nil, errors.Errorf("MAX_PAGES는 1 이상의 정수여야 합니다: %q", v)
		}
		cfg.MaxPages = maxPages
	}

	filterDate, err := time.Parse("2006-01-02", get(lookup, "FILTER_DATE", defaultFilterDate))
	if err != nil {
		return nil, errors.Wrap(err, "FILTER_DATE 파싱 실패")
	}
	cfg.FilterDate = filterDate

	return cfg, nil
}

// IsMember는 이름이 멤버 명단에 있는지 확인합니다.
func (c *Config) IsMember(name string) bool {
	for _, member := range c.Members {
		if member == name {
			return true
		}
	}
	return false
}

func get(lookup func(string) (string, bool), key, fallback string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
