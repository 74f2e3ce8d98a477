package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	defaultConfigFile = "config.yml"
	configPathEnv     = "POWERDASH_CONFIG"
)

type Config struct {
	IsDebug  bool   `yaml:"is_debug" env:"POWERDASH_DEBUG" env-default:"false"`
	TimeZone string `yaml:"time_zone" env:"POWERDASH_TIME_ZONE" env-default:"Europe/Zurich"`
	Listen   struct {
		BindIP   string `yaml:"bind_ip" env:"POWERDASH_BIND_IP" env-default:"0.0.0.0"`
		Port     string `yaml:"port" env:"POWERDASH_PORT" env-default:"8501"`
		TLS      bool   `yaml:"tls_enabled" env-default:"false"`
		CertFile string `yaml:"cert_file" env-default:""`
		KeyFile  string `yaml:"key_file" env-default:""`
	} `yaml:"listen"`
	Data struct {
		PlantsPath     string `yaml:"plants_path" env:"POWERDASH_PLANTS_PATH" env-default:"./data/renewable_power_plants_CH.csv"`
		BoundariesPath string `yaml:"boundaries_path" env:"POWERDASH_BOUNDARIES_PATH" env-default:"./data/georef-switzerland-kanton.geojson"`
		FeatureKey     string `yaml:"feature_key" env-default:"kan_name"`
	} `yaml:"data"`
	Cache struct {
		Size int           `yaml:"size" env:"POWERDASH_CACHE_SIZE" env-default:"8"`
		TTL  time.Duration `yaml:"ttl" env:"POWERDASH_CACHE_TTL" env-default:"30m"`
	} `yaml:"cache"`
	Map struct {
		Zoom            float64 `yaml:"zoom" env-default:"7"`
		CenterLat       float64 `yaml:"center_lat" env-default:"46.84"`
		CenterLon       float64 `yaml:"center_lon" env-default:"8.34"`
		Opacity         float64 `yaml:"opacity" env-default:"0.2"`
		Width           int     `yaml:"width" env-default:"1200"`
		Height          int     `yaml:"height" env-default:"900"`
		Style           string  `yaml:"style" env-default:"carto-positron"`
		ColorScale      string  `yaml:"color_scale" env-default:"Earth"`
		FixedColorRange bool    `yaml:"fixed_color_range" env-default:"false"`
		ColorMin        float64 `yaml:"color_min" env-default:"1"`
		ColorMax        float64 `yaml:"color_max" env-default:"2"`
	} `yaml:"map"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" env-default:"false"`
		BindIP  string `yaml:"bind_ip" env-default:"0.0.0.0"`
		Port    string `yaml:"port" env-default:"9100"`
	} `yaml:"metrics"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env-default:"false"`
		Host     string `yaml:"host" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env-default:"27017"`
		User     string `yaml:"user" env-default:""`
		Password string `yaml:"password" env:"POWERDASH_MONGO_PASSWORD" env-default:""`
		Database string `yaml:"database" env-default:"powerdash"`
	} `yaml:"mongo"`
	Telegram struct {
		Enabled bool   `yaml:"enabled" env-default:"false"`
		ApiKey  string `yaml:"api_key" env:"POWERDASH_TELEGRAM_KEY" env-default:""`
	} `yaml:"telegram"`
}

var instance *Config
var once sync.Once

// GetConfig reads the process configuration once; the file path comes from
// POWERDASH_CONFIG and falls back to config.yml in the working directory
func GetConfig() (*Config, error) {
	var err error
	once.Do(func() {
		path := os.Getenv(configPathEnv)
		if path == "" {
			path = defaultConfigFile
		}
		log.Println("reading config from", path)
		instance, err = Load(path)
		if err != nil {
			desc, _ := cleanenv.GetDescription(&Config{}, nil)
			log.Println(desc)
			instance = nil
		}
	})
	return instance, err
}

// Load reads the yaml file at path; a missing file is not an error, the
// defaults and environment are used instead
func Load(path string) (*Config, error) {
	conf := &Config{}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err = cleanenv.ReadEnv(conf); err != nil {
			return nil, err
		}
		return conf, nil
	}
	if err := cleanenv.ReadConfig(path, conf); err != nil {
		return nil, err
	}
	return conf, nil
}
