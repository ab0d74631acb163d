package webping_config

import (
	common "github.com/NordCoder/webping/internal/config/common"
)

type Output struct {
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

type Config struct {
	App    common.App   `mapstructure:"app"`
	Probe  common.Probe `mapstructure:"probe"`
	Log    common.Log   `mapstructure:"log"`
	Output Output       `mapstructure:"output"`
}
