package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/fivetwenty-io/ghapi-client/internal/constants"
	"github.com/fivetwenty-io/ghapi-client/internal/logging"
	"github.com/fivetwenty-io/ghapi-client/pkg/ghapi"
	"github.com/fivetwenty-io/ghapi-client/pkg/ghapi/backend/async"
	"github.com/fivetwenty-io/ghapi-client/pkg/ghapi/backend/resty"
	"github.com/fivetwenty-io/ghapi-client/pkg/ghapi/backend/retryable"
	"github.com/fivetwenty-io/ghapi-client/pkg/ghapi/metrics"
	"github.com/fivetwenty-io/ghapi-client/pkg/ghclient"
)

// ClientOptions is everything needed to build a client for one command.
type ClientOptions struct {
	Endpoint string
	Auth     ghapi.Auth
	Backend  string
	Retries  int
	RPS      float64
	Verbose  bool
	Logger   ghapi.Logger
	Metrics  *metrics.Collector
}

var (
	metricsOnce      sync.Once
	metricsRegistry  *prometheus.Registry
	metricsCollector *metrics.Collector
)

// sharedMetrics returns the process-wide collector.
func sharedMetrics() (*prometheus.Registry, *metrics.Collector) {
	metricsOnce.Do(func() {
		metricsRegistry = prometheus.NewRegistry()
		metricsCollector = metrics.New(metricsRegistry, "ghapi")
	})

	return metricsRegistry, metricsCollector
}

// FlushMetrics writes the collected metrics to the configured metrics file.
// It does nothing when no file is configured.
func FlushMetrics() error {
	path := viper.GetString("metrics_file")
	if path == "" {
		return nil
	}

	registry, _ := sharedMetrics()

	err := prometheus.WriteToTextfile(path, registry)
	if err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}

	return nil
}

// ResolveAuth turns the configured scheme and credentials into an Auth.
// readPassword is only called for basic auth without a configured password.
func ResolveAuth(scheme, token, user, password string, readPassword func() (string, error)) (ghapi.Auth, error) {
	switch strings.ToLower(scheme) {
	case "", "token":
		if token == "" {
			return ghapi.NoAuth(), nil
		}

		return ghapi.TokenAuth(token), nil
	case "bearer":
		if token == "" {
			return ghapi.NoAuth(), nil
		}

		return ghapi.BearerAuth(token), nil
	case "basic":
		if password == "" && readPassword != nil {
			var err error

			password, err = readPassword()
			if err != nil {
				return ghapi.Auth{}, err
			}
		}

		if password == "" {
			return ghapi.Auth{}, constants.ErrPasswordRequired
		}

		return ghapi.BasicAuth(user, password), nil
	case "none":
		return ghapi.NoAuth(), nil
	default:
		return ghapi.Auth{}, fmt.Errorf("%w: %s", constants.ErrUnknownAuthScheme, scheme)
	}
}

// promptPassword reads a password from the terminal without echo.
func promptPassword(out io.Writer) func() (string, error) {
	return func() (string, error) {
		fd := int(os.Stdin.Fd())
		if !term.IsTerminal(fd) {
			return "", constants.ErrNotATerminal
		}

		_, _ = fmt.Fprint(out, "Password: ")

		bytePassword, err := term.ReadPassword(fd)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}

		_, _ = fmt.Fprintln(out)

		return string(bytePassword), nil
	}
}

// NewCaller builds the caller for the selected backend, wrapped in the
// standard interceptors.
func NewCaller(opts ClientOptions) (ghapi.Caller, error) {
	logger := opts.Logger
	if logger == nil {
		logger = ghapi.NopLogger()
	}

	chain := ghapi.NewInterceptorChain().
		AddRequestInterceptor(ghapi.RequestIDInterceptor())

	if opts.RPS > 0 && opts.Backend != constants.BackendAsync {
		chain.AddRequestInterceptor(ghapi.RateLimitInterceptor(opts.RPS, 1))
	}

	if opts.Verbose {
		chain.AddResponseInterceptor(ghapi.LoggingResponseInterceptor(logger))
	}

	if opts.Metrics != nil {
		chain.AddResponseInterceptor(opts.Metrics.Interceptor())
	}

	callerOpts := []ghapi.CallerOption{
		ghapi.WithLogger(logger),
		ghapi.WithDebug(opts.Verbose),
		ghapi.WithInterceptors(chain),
	}

	switch strings.ToLower(opts.Backend) {
	case "", constants.BackendRetryable:
		backendOpts := []retryable.Option{retryable.WithLogger(logger)}
		if opts.Retries > 0 {
			backendOpts = append(backendOpts,
				retryable.WithRetry(opts.Retries, constants.DefaultRetryWaitMin, constants.DefaultRetryWaitMax))
		}

		return ghapi.Blocking(retryable.New(opts.Auth, backendOpts...), callerOpts...), nil
	case constants.BackendResty:
		backendOpts := []resty.Option{resty.WithLogger(logger)}
		if opts.Retries > 0 {
			backendOpts = append(backendOpts,
				resty.WithRetry(opts.Retries, constants.DefaultRetryWaitMin, constants.DefaultRetryWaitMax))
		}

		return ghapi.Blocking(resty.New(opts.Auth, backendOpts...), callerOpts...), nil
	case constants.BackendAsync:
		var backendOpts []async.Option
		if opts.RPS > 0 {
			backendOpts = append(backendOpts, async.WithRequestsPerSecond(opts.RPS, 1))
		}

		return ghapi.Async(async.New(opts.Auth, backendOpts...), callerOpts...), nil
	default:
		return nil, fmt.Errorf("%w: %s", constants.ErrUnknownBackend, opts.Backend)
	}
}

// NewClient builds a client from explicit options.
func NewClient(opts ClientOptions) (ghapi.Client, error) {
	caller, err := NewCaller(opts)
	if err != nil {
		return nil, err
	}

	return ghclient.New(caller, &ghapi.Config{
		APIEndpoint: opts.Endpoint,
		PerPage:     viper.GetInt("per_page"),
		Debug:       opts.Verbose,
		Logger:      opts.Logger,
	})
}

// optionsFromConfig reads the client options from flags, environment and
// config file.
func optionsFromConfig(out io.Writer) (ClientOptions, error) {
	auth, err := ResolveAuth(
		viper.GetString("auth_scheme"),
		viper.GetString("token"),
		viper.GetString("user"),
		viper.GetString("password"),
		promptPassword(out),
	)
	if err != nil {
		return ClientOptions{}, err
	}

	level := "warn"
	if viper.GetBool("verbose") {
		level = "debug"
	}

	logger := logging.New(logging.Config{
		Level:   level,
		Format:  logging.FormatConsole,
		NoColor: viper.GetBool("no_color"),
	}, os.Stderr).WithComponent("ghapi")

	_, collector := sharedMetrics()

	return ClientOptions{
		Endpoint: viper.GetString("api"),
		Auth:     auth,
		Backend:  viper.GetString("backend"),
		Retries:  viper.GetInt("retries"),
		RPS:      viper.GetFloat64("rps"),
		Verbose:  viper.GetBool("verbose"),
		Logger:   logger,
		Metrics:  collector,
	}, nil
}

// CreateClient builds a client from the current configuration.
func CreateClient(out io.Writer) (ghapi.Client, error) {
	opts, err := optionsFromConfig(out)
	if err != nil {
		return nil, err
	}

	return NewClient(opts)
}
