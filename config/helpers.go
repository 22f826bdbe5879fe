package config

import (
	"github.com/spf13/viper"
)

// orDefault reads key with get when the key is set, def otherwise.
func orDefault[T any](v *viper.Viper, key string, def T, get func(string) T) T {
	if v.IsSet(key) {
		return get(key)
	}
	return def
}
