package config

// Config is the top-level treemap configuration, corresponding to .treemap.yml.
type Config struct {
	Dataset      string       `yaml:"dataset" koanf:"dataset"`
	Width        float64      `yaml:"width" koanf:"width"`
	Height       float64      `yaml:"height" koanf:"height"`
	PaddingInner float64      `yaml:"padding_inner" koanf:"padding_inner"`
	Tile         string       `yaml:"tile" koanf:"tile"`
	Format       string       `yaml:"format" koanf:"format"`
	Colors       []string     `yaml:"colors,omitempty" koanf:"colors"`
	Summary      bool         `yaml:"summary" koanf:"summary"`
	OutputDir    string       `yaml:"output_dir" koanf:"output_dir"`
	Include      []string     `yaml:"include" koanf:"include"`
	Exclude      []string     `yaml:"exclude" koanf:"exclude"`
	DBPath       string       `yaml:"db_path" koanf:"db_path"`
	Server       ServerConfig `yaml:"server" koanf:"server"`
}

// ServerConfig holds settings for treemap serve.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all" koanf:"allow_all"`
}
