package main

import (
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// configKey names one setting. Components map to a nested config path
// ("log.level"), a flag ("--log-level") and an env var ("CHM_LOG_LEVEL").
type configKey []string

func (c configKey) EnvName() string {
	return "CHM_" + strings.ReplaceAll(strings.ToUpper(c.FlagName()), "-", "_")
}

func (c configKey) AccessPath() string {
	return strings.ReplaceAll(strings.Join(c, "."), "-", "_")
}

func (c configKey) FlagName() string {
	return strings.Join(c, "-")
}

func name(components ...string) configKey { return components }

func registerString(v *viper.Viper, flags *pflag.FlagSet, name configKey, value string, usage string) {
	flags.String(name.FlagName(), value, usage)
	bind(v, flags, name, value)
}

func registerBool(v *viper.Viper, flags *pflag.FlagSet, name configKey, value bool, usage string) {
	flags.Bool(name.FlagName(), value, usage)
	bind(v, flags, name, value)
}

func registerInt(v *viper.Viper, flags *pflag.FlagSet, name configKey, value int, usage string) {
	flags.Int(name.FlagName(), value, usage)
	bind(v, flags, name, value)
}

func registerDuration(v *viper.Viper, flags *pflag.FlagSet, name configKey, value time.Duration, usage string) {
	flags.Duration(name.FlagName(), value, usage)
	bind(v, flags, name, value)
}

func bind(v *viper.Viper, flags *pflag.FlagSet, name configKey, value any) {
	_ = v.BindEnv(name.AccessPath(), name.EnvName())
	_ = v.BindPFlag(name.AccessPath(), flags.Lookup(name.FlagName()))
	v.SetDefault(name.AccessPath(), value)
}
