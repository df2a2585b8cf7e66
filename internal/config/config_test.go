package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromLookupDefaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(nil))
	require.NoError(t, err)

	require.Equal(t, 5000, cfg.Port)
	require.Equal(t, 60*time.Second, cfg.HTTPTimeout)
	require.Equal(t, 500, cfg.MaxPages)
	require.Equal(t, "2025-01-01", cfg.FilterDate.Format("2006-01-02"))
	require.Len(t, cfg.Members, 32)
	require.True(t, cfg.IsMember("김기래"))
	require.False(t, cfg.IsMember("홍길동"))
}

func TestFromLookupOverrides(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"PORT":         "8080",
		"MEMBERS":      " alice, bob ,,",
		"HTTP_TIMEOUT": "5s",
		"MAX_PAGES":    "3",
		"FILTER_DATE":  "2024-06-01",
		"S3_BUCKET":    "digest",
	}))
	require.NoError(t, err)

	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, []string{"alice", "bob"}, cfg.Members)
	require.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	require.Equal(t, 3, cfg.MaxPages)
	require.Equal(t, "digest", cfg.S3Bucket)
	require.True(t, cfg.IsMember("bob"))
}

func TestFromLookupRejectsBadValues(t *testing.T) {
	for _, env := range []map[string]string{
		{"PORT": "abc"},
		{"HTTP_TIMEOUT": "soon"},
		{"MAX_PAGES": "0"},
		{"FILTER_DATE": "2024/06/01"},
	} {
		_, err := FromLookup(lookupFrom(env))
		require.Error(t, err, "env %v", env)
	}
}
