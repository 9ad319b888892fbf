package config

import "time"

type Config struct {
	Static   FeedConfig    `yaml:"static"`
	Realtime FeedConfig    `yaml:"realtime"`
	HTTP     HTTPConfig    `yaml:"http"`
	Storage  StorageConfig `yaml:"storage"`
	API      APIConfig     `yaml:"api"`
}

type FeedConfig struct {
	URL string `yaml:"url" validate:"omitempty,url"`
}

type HTTPConfig struct {
	Timeout   time.Duration `yaml:"timeout" validate:"gte=0"`
	UserAgent string        `yaml:"userAgent"`
}

type StorageConfig struct {
	Platform   string `yaml:"platform" validate:"required"`
	Directory  string `yaml:"directory"`
	SQLitePath string `yaml:"sqlitePath"`

	// ChunkSize is counted in characters, not bytes
	ChunkSize        int `yaml:"chunkSize" validate:"gte=0"`
	WriteConcurrency int `yaml:"writeConcurrency" validate:"gte=0"`

	Redis RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	Database int    `yaml:"database" validate:"gte=0"`
}

type APIConfig struct {
	Listen string `yaml:"listen"`
}
