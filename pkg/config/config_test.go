package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkenney/vsphere/pkg/config"
	vserrors "github.com/mkenney/vsphere/pkg/vsphere/errors"
	"github.com/mkenney/vsphere/pkg/vsphere/rpc"
	"github.com/mkenney/vsphere/pkg/vsphere/watch"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		config.EnvHost,
		config.EnvUser,
		config.EnvPassword,
		config.EnvVerifyTLS,
		config.EnvWatchTimeoutSeconds,
		config.EnvMaxWaitSeconds,
		config.EnvPollQPS,
		config.EnvPollBurst,
		config.EnvMaxConcurrentOps,
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "vsphere.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaults(t *testing.T) {
	assert := assert.New(t)
	clearEnv(t)

	cfg := config.Defaults()
	assert.Equal("", cfg.Host)
	assert.True(cfg.VerifyTLS)
	assert.Equal(10*time.Minute, cfg.WatchTimeout)
	assert.Equal(60, cfg.MaxWaitSeconds)
	assert.Equal(10, cfg.PollQPS)
	assert.Equal(1, cfg.PollBurst)
	assert.Equal(8, cfg.MaxConcurrentOps)
}

func TestDefaultsFromEnv(t *testing.T) {
	assert := assert.New(t)
	clearEnv(t)
	t.Setenv(config.EnvHost, "vcenter.example.com")
	t.Setenv(config.EnvUser, "administrator@vsphere.local")
	t.Setenv(config.EnvPassword, "secret")
	t.Setenv(config.EnvVerifyTLS, "false")
	t.Setenv(config.EnvWatchTimeoutSeconds, "30")
	t.Setenv(config.EnvMaxConcurrentOps, "2")

	cfg := config.Defaults()
	assert.Equal("vcenter.example.com", cfg.Host)
	assert.Equal("administrator@vsphere.local", cfg.User)
	assert.Equal("secret", cfg.Password)
	assert.False(cfg.VerifyTLS)
	assert.Equal(30*time.Second, cfg.WatchTimeout)
	assert.Equal(2, cfg.MaxConcurrentOps)
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)
	clearEnv(t)
	t.Setenv(config.EnvUser, "from-env")

	path := writeFile(t, `
host: vcenter.example.com
verify_tls: false
watch_timeout: 90s
poll_qps: 5
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal("vcenter.example.com", cfg.Host)
	assert.Equal("from-env", cfg.User)
	assert.False(cfg.VerifyTLS)
	assert.Equal(90*time.Second, cfg.WatchTimeout)
	assert.Equal(5, cfg.PollQPS)
	assert.Equal(60, cfg.MaxWaitSeconds)
	assert.NoError(cfg.Validate())
}

func TestLoadFailures(t *testing.T) {
	clearEnv(t)

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, vserrors.ErrInvalidConfig))

	_, err = config.Load(writeFile(t, "hostname: typo.example.com\n"))
	assert.True(t, errors.Is(err, vserrors.ErrInvalidConfig))

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Defaults(), cfg)
}

func TestValidate(t *testing.T) {
	valid := config.Config{
		Host:             "vcenter.example.com",
		User:             "administrator@vsphere.local",
		WatchTimeout:     time.Minute,
		MaxWaitSeconds:   60,
		PollQPS:          10,
		PollBurst:        1,
		MaxConcurrentOps: 4,
	}
	tests := []struct {
		name     string
		mutate   func(*config.Config)
		problems []string
	}{
		{name: "valid", mutate: func(*config.Config) {}},
		{
			name:     "missing host",
			mutate:   func(c *config.Config) { c.Host = "" },
			problems: []string{"host is required"},
		},
		{
			name: "everything wrong",
			mutate: func(c *config.Config) {
				*c = config.Config{}
			},
			problems: []string{
				"host is required",
				"user is required",
				"watch timeout must be positive",
				"max wait seconds must be between",
				"poll qps must be positive",
				"poll burst must be positive",
				"max concurrent ops must be positive",
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert := assert.New(t)
			cfg := valid
			test.mutate(&cfg)
			err := cfg.Validate()
			if 0 == len(test.problems) {
				assert.NoError(err)
				return
			}
			assert.True(errors.Is(err, vserrors.ErrInvalidConfig))
			for _, problem := range test.problems {
				assert.Contains(err.Error(), problem)
			}
		})
	}
}

func TestProjections(t *testing.T) {
	assert := assert.New(t)
	cfg := config.Config{
		Host:           "vcenter.example.com",
		User:           "administrator@vsphere.local",
		Password:       "secret",
		VerifyTLS:      true,
		WatchTimeout:   time.Minute,
		MaxWaitSeconds: 30,
		PollQPS:        4,
		PollBurst:      2,
	}
	assert.Equal(rpc.ConnectSpec{
		Host:      "vcenter.example.com",
		User:      "administrator@vsphere.local",
		Password:  "secret",
		VerifyTLS: true,
	}, cfg.ConnectSpec())
	assert.Equal(watch.Options{
		Timeout:        time.Minute,
		MaxWaitSeconds: 30,
		PollQPS:        4,
		PollBurst:      2,
	}, cfg.WatchOptions())
	assert.NotContains(cfg.String(), "secret")
}
