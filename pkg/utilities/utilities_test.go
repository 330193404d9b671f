package utilities

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewObjectID(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewObjectID()
		require.Len(t, id, ObjectIDLen)
		assert.True(t, IsObjectID(id), id)
		assert.Equal(t, strings.ToLower(id), id)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestIsObjectID(t *testing.T) {
	assert.True(t, IsObjectID("ffffffffffffffffffffffff"))
	assert.True(t, IsObjectID("65A1B2C3D4E5F60718293A4B"))
	assert.False(t, IsObjectID("fffffffffffffffffffffff"))
	assert.False(t, IsObjectID("gggggggggggggggggggggggg"))
	assert.False(t, IsObjectID(""))
}

func TestNewSnowflakeNode(t *testing.T) {
	node := NewSnowflakeNode(5)
	a, b := node.Generate(), node.Generate()
	assert.NotEqual(t, a, b)

	fallback := NewSnowflakeNode(-1)
	require.NotNil(t, fallback)
	assert.NotZero(t, fallback.Generate().Int64())
}

func TestLevelFromString(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, levelFromString("debug"))
	assert.Equal(t, zapcore.WarnLevel, levelFromString("warning"))
	assert.Equal(t, zapcore.ErrorLevel, levelFromString("error"))
	assert.Equal(t, zapcore.InfoLevel, levelFromString("nonsense"))
}

func TestConfigFromEnv_DefaultLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_DEV", "1")
	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Level)
	assert.True(t, cfg.Dev)

	t.Setenv("LOG_DEV", "0")
	cfg, err = ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Level)
}

func TestInit_WritesRotatingFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{Level: "info", Dir: dir, MaxAge: 24 * time.Hour, Rotation: time.Hour}

	lg, err := Init(cfg)
	require.NoError(t, err)
	lg.Info("hello")
	lg.Error("boom")
	_ = lg.Sync()

	combined, err := filepath.Glob(filepath.Join(dir, "combined.*.log"))
	require.NoError(t, err)
	require.Len(t, combined, 1)
	data, err := os.ReadFile(combined[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, string(data), "boom")

	errs, err := filepath.Glob(filepath.Join(dir, "error.*.log"))
	require.NoError(t, err)
	require.Len(t, errs, 1)
	data, err = os.ReadFile(errs[0])
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hello")
	assert.Contains(t, string(data), "boom")
}

func TestDecodeJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"price": 19.99}`))
	v, err := DecodeJSON(r)
	require.NoError(t, err)
	m := v.(map[string]any)
	assert.Equal(t, json.Number("19.99"), m["price"])

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":`))
	_, err = DecodeJSON(r)
	assert.ErrorIs(t, err, ErrInvalidJSON)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
	_, err = DecodeJSON(r)
	assert.ErrorIs(t, err, ErrInvalidJSON)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{} {}`))
	_, err = DecodeJSON(r)
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestFailFields(t *testing.T) {
	rec := httptest.NewRecorder()
	FailFields(rec, "Validation failed", map[string]string{"email": "bad"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":false,"message":"Validation failed","errors":{"email":"bad"}}`, rec.Body.String())
}
