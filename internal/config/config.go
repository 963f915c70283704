// Package config supplies the dispatcher's endpoint configuration: a
// static default list from the environment, an optional config file, and
// a watch feed that pushes endpoint-list changes into the registry while
// a long-lived session is running.
package config

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/valpere/lingoroute/internal/endpoint"
)

// EnvEndpoints is the environment variable carrying the static default
// endpoint list, comma or whitespace delimited.
const EnvEndpoints = "LINGOROUTE_ENDPOINTS"

// endpointsKey is the config-file key the watch feed observes.
const endpointsKey = "endpoints"

// ParseEndpoints splits a comma/space-delimited endpoint string into an
// ordered list, dropping empty entries. An empty or absent value yields
// an empty list, in which case translation always fails with
// "no endpoints configured".
func ParseEndpoints(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	var out []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// DefaultEndpoints reads the static default list from the environment.
func DefaultEndpoints() []string {
	return ParseEndpoints(os.Getenv(EnvEndpoints))
}

// Load reads the lingoroute config file, looked up in path when given,
// else in the working directory and ~/.config/lingoroute. A missing file
// is not an error; the returned viper is still usable for watching.
func Load(path string) (*viper.Viper, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("lingoroute")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home + "/.config/lingoroute")
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || os.IsNotExist(err) {
			return v, nil
		}
		return nil, err
	}
	return v, nil
}

// Endpoints returns the endpoint list from the config file, or nil when
// the key is absent or empty.
func Endpoints(v *viper.Viper) []string {
	return trimAll(v.GetStringSlice(endpointsKey))
}

// Watch subscribes the registry to config-file changes: a non-empty
// endpoints key replaces the rotation, an empty or removed key restores
// the static defaults. Permission errors while re-reading are swallowed;
// other errors are logged and otherwise ignored.
func Watch(v *viper.Viper, reg *endpoint.Registry, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	if v.ConfigFileUsed() == "" {
		// Nothing to watch; the static defaults stand.
		return
	}

	v.OnConfigChange(func(fsnotify.Event) {
		if err := v.ReadInConfig(); err != nil {
			if os.IsPermission(err) {
				return
			}
			logger.Warn("endpoint feed read failed", "error", err)
			return
		}
		list := Endpoints(v)
		reg.Replace(list)
		if len(list) == 0 {
			logger.Info("endpoint feed cleared, defaults restored")
		} else {
			logger.Info("endpoint list replaced", "count", len(list))
		}
	})
	v.WatchConfig()
}

func trimAll(list []string) []string {
	var out []string
	for _, e := range list {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}
