package ghapi

import (
	"context"
	"time"
)

// CallerOption configures a Caller built by Blocking or Async.
type CallerOption func(*callerCore)

// WithLogger sets the logger used for request and response logging.
func WithLogger(logger Logger) CallerOption {
	return func(c *callerCore) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDebug enables per-request debug logging.
func WithDebug(debug bool) CallerOption {
	return func(c *callerCore) {
		c.debug = debug
	}
}

// WithInterceptors runs chain around every call.
func WithInterceptors(chain *InterceptorChain) CallerOption {
	return func(c *callerCore) {
		if chain != nil {
			c.chain = chain
		}
	}
}

type callerCore struct {
	logger Logger
	debug  bool
	chain  *InterceptorChain
	now    func() time.Time
}

func newCallerCore(opts []CallerOption) callerCore {
	core := callerCore{
		logger: NopLogger(),
		chain:  NewInterceptorChain(),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(&core)
	}

	return core
}

type sendFunc func(ctx context.Context, env *RequestEnvelope) (Response, error)

func (c *callerCore) call(ctx context.Context, env *RequestEnvelope, send sendFunc) (Response, error) {
	env, err := c.chain.ExecuteRequestInterceptors(ctx, env)
	if err != nil {
		return nil, err
	}

	if c.debug {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method":    env.Method,
			"uri":       env.URI,
			"has_body":  env.Body != nil,
			"body_size": len(env.Body),
		})
	}

	start := c.now()
	resp, sendErr := send(ctx, env)

	if sendErr == nil && resp == nil {
		sendErr = ErrNilResponse
	}

	info := &ResponseInfo{
		Response: resp,
		Err:      sendErr,
		Duration: c.now().Sub(start),
	}
	if resp != nil {
		info.StatusCode = resp.StatusCode()
	}

	err = c.chain.ExecuteResponseInterceptors(ctx, env, info)
	if err != nil {
		if resp != nil {
			_ = resp.Close()
		}

		return nil, err
	}

	if sendErr != nil {
		adapterErr := ToAdapterError(sendErr)
		if c.debug {
			c.logger.Debug("HTTP Error", map[string]interface{}{
				"method": env.Method,
				"uri":    env.URI,
				"error":  adapterErr.Description,
			})
		}

		return nil, adapterErr
	}

	if c.debug {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":   env.Method,
			"uri":      env.URI,
			"status":   info.StatusCode,
			"duration": info.Duration.String(),
		})
	}

	return resp, nil
}
