package config

import (
	"errors"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Postgres   DBConfig
	Redis      RedisConfig
	S3         S3Config
	Logger     Logger
	Worker     WorkerConfig
	Media      MediaConfig
	Thumbnails ThumbnailConfig
	Profiles   []ProfileConfig
}

type ServerConfig struct {
	AppVersion string
	Port       string
	Mode       string
}

// WorkerConfig drives the encode poll loop. The settle delays exist for
// eventually consistent backends; with Postgres and S3 they stay at zero.
type WorkerConfig struct {
	WorkerCount       int
	PollInterval      int
	RecordSettleDelay int
	StoreSettleDelay  int
	MaxCPUUsage       float64
	Workdir           string
}

// MediaConfig holds the paths of the external tools the encode recipes invoke.
type MediaConfig struct {
	FFmpegPath     string
	FFprobePath    string
	FlvtoolPath    string
	NeroAacEncPath string
	MP4BoxPath     string
}

type ThumbnailConfig struct {
	Choose int
	Width  int
	Height int
}

// ProfileConfig is one target encoding. Profiles are immutable and owned by
// the deployment config, not the record store.
type ProfileConfig struct {
	Key             string
	Title           string
	Container       string
	Width           int
	Height          int
	VideoCodec      string
	VideoBitrate    int
	Fps             int
	AudioCodec      string
	AudioBitrate    int
	AudioSampleRate int
	Player          string
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	PgDriver string
}

type RedisConfig struct {
	RedisAddr     string
	RedisPassword string
	DB            int
	MinIdleConns  int
	PoolSize      int
	PoolTimeout   int
}

type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
}

type Logger struct {
	Development       bool
	DisableCaller     bool
	DisableStacktrace bool
	Encoding          string
	Level             string
}

func LoadConfig(filename string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(filename)
	v.AddConfigPath(".")
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFound) {
			return nil, errors.New("config file not found")
		}
		return nil, err
	}
	return v, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
