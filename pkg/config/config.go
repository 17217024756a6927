/*
Package config loads the settings of the vSphere client.

Values are resolved in order: built-in defaults, VSPHERE_* environment
variables, an optional YAML file, then command line flags applied by the
caller.
*/
package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/jaypipes/envutil"
	"gopkg.in/yaml.v2"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/mkenney/vsphere/internal/codes"
	vserrors "github.com/mkenney/vsphere/pkg/vsphere/errors"
	"github.com/mkenney/vsphere/pkg/vsphere/rpc"
	"github.com/mkenney/vsphere/pkg/vsphere/watch"
)

const (
	defaultVerifyTLS           = true
	defaultWatchTimeoutSeconds = 600
	defaultMaxWaitSeconds      = watch.DefaultMaxWaitSeconds
	defaultPollQPS             = watch.DefaultPollQPS
	defaultPollBurst           = watch.DefaultPollBurst
	defaultMaxConcurrentOps    = 8
)

// Environment variables read by Defaults.
const (
	EnvHost                = "VSPHERE_HOST"
	EnvUser                = "VSPHERE_USER"
	EnvPassword            = "VSPHERE_PASSWORD"
	EnvVerifyTLS           = "VSPHERE_VERIFY_TLS"
	EnvWatchTimeoutSeconds = "VSPHERE_WATCH_TIMEOUT_SECONDS"
	EnvMaxWaitSeconds      = "VSPHERE_MAX_WAIT_SECONDS"
	EnvPollQPS             = "VSPHERE_POLL_QPS"
	EnvPollBurst           = "VSPHERE_POLL_BURST"
	EnvMaxConcurrentOps    = "VSPHERE_MAX_CONCURRENT_OPS"
)

/*
Config holds the connection and tuning settings of a client.
*/
type Config struct {
	Host      string `yaml:"host"`
	User      string `yaml:"user"`
	Password  string `yaml:"password"`
	VerifyTLS bool   `yaml:"verify_tls"`

	// WatchTimeout bounds every change watch.
	WatchTimeout time.Duration `yaml:"watch_timeout"`
	// MaxWaitSeconds is the server side wait of one poll.
	MaxWaitSeconds int `yaml:"max_wait_seconds"`
	// PollQPS and PollBurst pace the polls of one watch.
	PollQPS   int `yaml:"poll_qps"`
	PollBurst int `yaml:"poll_burst"`
	// MaxConcurrentOps bounds the power operations run at once.
	MaxConcurrentOps int `yaml:"max_concurrent_ops"`
}

/*
Defaults returns the built-in defaults overridden by the environment.
*/
func Defaults() Config {
	return Config{
		Host:      envutil.WithDefault(EnvHost, ""),
		User:      envutil.WithDefault(EnvUser, ""),
		Password:  envutil.WithDefault(EnvPassword, ""),
		VerifyTLS: envutil.WithDefaultBool(EnvVerifyTLS, defaultVerifyTLS),
		WatchTimeout: time.Duration(
			envutil.WithDefaultInt(EnvWatchTimeoutSeconds, defaultWatchTimeoutSeconds),
		) * time.Second,
		MaxWaitSeconds:   envutil.WithDefaultInt(EnvMaxWaitSeconds, defaultMaxWaitSeconds),
		PollQPS:          envutil.WithDefaultInt(EnvPollQPS, defaultPollQPS),
		PollBurst:        envutil.WithDefaultInt(EnvPollBurst, defaultPollBurst),
		MaxConcurrentOps: envutil.WithDefaultInt(EnvMaxConcurrentOps, defaultMaxConcurrentOps),
	}
}

/*
Load returns Defaults overlaid with the YAML file at path. An empty path skips
the file. The result is not validated.
*/
func Load(path string) (Config, error) {
	cfg := Defaults()
	if "" == path {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if nil != err {
		return cfg, vserrors.Wrap(err, codes.ErrInvalidConfig, "Load", nil)
	}
	if err := yaml.UnmarshalStrict(data, &cfg); nil != err {
		return cfg, vserrors.Wrap(err, codes.ErrInvalidConfig, "Load", nil)
	}
	return cfg, nil
}

/*
Validate reports every invalid setting at once.
*/
func (c Config) Validate() error {
	errs := []error{}
	if "" == c.Host {
		errs = append(errs, fmt.Errorf("host is required"))
	}
	if "" == c.User {
		errs = append(errs, fmt.Errorf("user is required"))
	}
	if c.WatchTimeout <= 0 {
		errs = append(errs, fmt.Errorf("watch timeout must be positive, got %s", c.WatchTimeout))
	}
	if c.MaxWaitSeconds <= 0 || c.MaxWaitSeconds > math.MaxInt32 {
		errs = append(errs, fmt.Errorf("max wait seconds must be between 1 and %d, got %d", math.MaxInt32, c.MaxWaitSeconds))
	}
	if c.PollQPS <= 0 {
		errs = append(errs, fmt.Errorf("poll qps must be positive, got %d", c.PollQPS))
	}
	if c.PollBurst <= 0 {
		errs = append(errs, fmt.Errorf("poll burst must be positive, got %d", c.PollBurst))
	}
	if c.MaxConcurrentOps <= 0 {
		errs = append(errs, fmt.Errorf("max concurrent ops must be positive, got %d", c.MaxConcurrentOps))
	}
	if agg := utilerrors.NewAggregate(errs); nil != agg {
		return vserrors.Wrap(agg, codes.ErrInvalidConfig, "Validate", nil)
	}
	return nil
}

/*
ConnectSpec returns the session parameters of c.
*/
func (c Config) ConnectSpec() rpc.ConnectSpec {
	return rpc.ConnectSpec{
		Host:      c.Host,
		User:      c.User,
		Password:  c.Password,
		VerifyTLS: c.VerifyTLS,
	}
}

/*
WatchOptions returns the change watch settings of c.
*/
func (c Config) WatchOptions() watch.Options {
	return watch.Options{
		Timeout:        c.WatchTimeout,
		MaxWaitSeconds: int32(c.MaxWaitSeconds),
		PollQPS:        float32(c.PollQPS),
		PollBurst:      c.PollBurst,
	}
}

/*
String implements fmt.Stringer without revealing the password.
*/
func (c Config) String() string {
	password := ""
	if "" != c.Password {
		password = "********"
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s verify_tls=%t watch_timeout=%s max_wait_seconds=%d poll_qps=%d poll_burst=%d max_concurrent_ops=%d",
		c.Host, c.User, password, c.VerifyTLS, c.WatchTimeout, c.MaxWaitSeconds, c.PollQPS, c.PollBurst, c.MaxConcurrentOps,
	)
}
