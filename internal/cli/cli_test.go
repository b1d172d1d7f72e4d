package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/trustbuddy/internal/model"
)

func newTestViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	require.NoError(t, setDefaults(v, model.DefaultConfig()))
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func TestDecodeConfig_Defaults(t *testing.T) {
	cfg, err := decodeConfig(newTestViper(t))
	require.NoError(t, err)
	assert.Equal(t, model.DefaultConfig(), cfg)
}

func TestDecodeConfig_EnvOverrides(t *testing.T) {
	t.Setenv("TRUSTBUDDY_SERVER_ADDR", ":9999")
	t.Setenv("TRUSTBUDDY_SESSION_IDLE_TTL", "1h")
	t.Setenv("TRUSTBUDDY_ANALYSIS_SEED", "7")
	t.Setenv("TRUSTBUDDY_LOGGING_JSON", "true")

	cfg, err := decodeConfig(newTestViper(t))
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, time.Hour, cfg.Session.IdleTTL)
	assert.Equal(t, uint64(7), cfg.Analysis.Seed)
	assert.True(t, cfg.Logging.JSON)
	assert.Equal(t, "tb_session", cfg.Session.CookieName, "untouched keys keep defaults")
}

func TestDecodeConfig_File(t *testing.T) {
	v := newTestViper(t)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
server:
  max_upload_bytes: 2048
  rate_limit:
    burst: 3
cache:
  enabled: false
concurrency:
  workers: 9
`)))

	cfg, err := decodeConfig(v)
	require.NoError(t, err)
	assert.Equal(t, int64(2048), cfg.Server.MaxUploadBytes)
	assert.Equal(t, 3, cfg.Server.RateLimit.Burst)
	assert.Equal(t, float64(5), cfg.Server.RateLimit.RequestsPerSecond)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 9, cfg.Concurrency.Workers)
}

func TestFlatten(t *testing.T) {
	got := flatten("", map[string]interface{}{
		"a": 1,
		"b": map[string]interface{}{"c": "x", "d": map[string]interface{}{"e": true}},
	})
	assert.Equal(t, map[string]interface{}{"a": 1, "b.c": "x", "b.d.e": true}, got)
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, writeDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var cfg model.Config
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, model.DefaultConfig().Server.Addr, cfg.Server.Addr)
	assert.Equal(t, 24*time.Hour, cfg.Session.IdleTTL)

	assert.Error(t, writeDefaultConfig(path), "existing file is not overwritten")
}

func TestReportName(t *testing.T) {
	seen := make(map[string]int)
	assert.Equal(t, "holiday-photo", reportName("/tmp/a/holiday photo.jpg", seen))
	assert.Equal(t, "holiday-photo-2", reportName("/tmp/b/holiday photo.png", seen))
	assert.Equal(t, "x_y", reportName("x:y.webp", seen))
	assert.Equal(t, "image", reportName(".png", seen))
}

func TestClaimText(t *testing.T) {
	defer func() { textFile = "" }()

	textFile = ""
	got, err := claimText([]string{"5g causes covid"})
	require.NoError(t, err)
	assert.Equal(t, "5g causes covid", got)

	_, err = claimText(nil)
	assert.Error(t, err)

	textFile = filepath.Join(t.TempDir(), "claim.txt")
	require.NoError(t, os.WriteFile(textFile, []byte("the election 2020 was stolen"), 0o644))
	got, err = claimText(nil)
	require.NoError(t, err)
	assert.Equal(t, "the election 2020 was stolen", got)
}
