package storage

import (
	"net/url"
	"path/filepath"
	"strings"

	"agoranet.io/agora/lib/errors"
)

type Config struct {
	Scheme string
	Path   string
}

// NewConfigFromString parses an uri like `file:///var/db/agora` or
// `memory://`.
func NewConfigFromString(s string) (config *Config, err error) {
	var u *url.URL
	if u, err = url.Parse(s); err != nil {
		err = errors.InvalidStorageConfig.Clone().SetData("error", err.Error())
		return
	}

	switch u.Scheme {
	case "memory":
		config = &Config{Scheme: "memory"}
	case "file":
		path := filepath.Join(u.Host, u.Path)
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		config = &Config{Scheme: "file", Path: path}
	default:
		err = errors.InvalidStorageConfig.Clone().SetData("scheme", u.Scheme)
	}

	return
}

func (c *Config) String() string {
	u := url.URL{Scheme: c.Scheme, Path: c.Path}
	return u.String()
}
