package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("non-existent config file", func(t *testing.T) {
		cfg, err := Load("invalid/path/to/config.yml")

		assert.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.Nil(t, cfg)
	})

	t.Run("empty path yields defaults", func(t *testing.T) {
		cfg, err := Load("")

		assert.NoError(t, err)
		assert.NotNil(t, cfg)

		var wantCfg Config
		setDefaults(&wantCfg)

		assert.Equal(t, wantCfg, *cfg)
	})

	t.Run("invalid config file", func(t *testing.T) {
		data := `base_url: http://sho.rt
http_server:
  port: not number`

		f := createTempFile(t, []byte(data))
		cfg, err := Load(f.Name())

		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("success", func(t *testing.T) {
		data := `env: prod
short_code_length: 8
base_url: http://sho.rt
http_server:
  port: 8080`

		f := createTempFile(t, []byte(data))
		cfg, err := Load(f.Name())

		assert.NoError(t, err)
		assert.NotNil(t, cfg)

		var wantCfg Config
		setDefaults(&wantCfg)

		wantCfg.Env = EnvProd
		wantCfg.ShortCodeLength = 8
		wantCfg.BaseURL = "http://sho.rt"
		wantCfg.HTTPServer.Port = 8080

		assert.Equal(t, wantCfg, *cfg)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("BASE_URL", "https://sho.rt")

		data := `base_url: http://localhost:3000
http_server:
  port: 8080`

		f := createTempFile(t, []byte(data))
		cfg, err := Load(f.Name())

		assert.NoError(t, err)
		assert.NotNil(t, cfg)
		assert.Equal(t, 9090, cfg.HTTPServer.Port)
		assert.Equal(t, "https://sho.rt", cfg.BaseURL)
	})

	t.Run("invalid PORT value", func(t *testing.T) {
		t.Setenv("PORT", "not number")

		cfg, err := Load("")

		assert.Error(t, err)
		assert.Nil(t, cfg)
	})
}

func createTempFile(t testing.TB, data []byte) *os.File {
	t.Helper()

	f, err := os.CreateTemp("", "config.yml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	t.Cleanup(func() {
		f.Close()
		os.Remove(f.Name())
	})

	if _, err := f.Write(data); err != nil {
		t.Fatalf("Failed to write to file: %v", err)
	}

	return f
}

func TestHTTPServer_Addr(t *testing.T) {
	s := HTTPServer{Port: 8080}

	assert.Equal(t, ":8080", s.Addr())
}
