package proxy

import (
	"fmt"
	"net/http"
	"net/url"
)

// Settings describes an optional outbound HTTP proxy.
type Settings struct {
	// Enabled turns the proxy on.
	Enabled bool `mapstructure:"PROXY_ENABLED" default:"false"`
	// Hostname is the proxy host.
	Hostname string `mapstructure:"PROXY_HOSTNAME"`
	// Port is the proxy port.
	Port int `mapstructure:"PROXY_PORT"`
	// Username is the optional proxy user.
	Username string `mapstructure:"PROXY_USERNAME"`
	// Password is the optional proxy password.
	Password string `mapstructure:"PROXY_PASSWORD"`
}

// HasProxy returns true if proxy is enabled and configured.
func (p Settings) HasProxy() bool {
	return p.Enabled && p.Hostname != "" && p.Port > 0
}

// URL returns the proxy URL including credentials, or nil when no proxy
// is configured.
func (p Settings) URL() *url.URL {
	if !p.HasProxy() {
		return nil
	}

	u := &url.URL{
		Scheme: "http",
		Host:   fmt.Sprintf("%s:%d", p.Hostname, p.Port),
	}
	if p.Username != "" {
		u.User = url.UserPassword(p.Username, p.Password)
	}
	return u
}

// Func returns a proxy selector for http.Transport.Proxy. Without a
// configured proxy it honours the usual HTTP_PROXY environment variables.
func (p Settings) Func() func(*http.Request) (*url.URL, error) {
	u := p.URL()
	if u == nil {
		return http.ProxyFromEnvironment
	}
	return http.ProxyURL(u)
}
