package config

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/go-redis/redis/v8"
	"gopkg.in/yaml.v3"
)

var ctx = context.Background()

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TLS      bool   `yaml:"tls"`
}

type SessionConfig struct {
	CookieName string `yaml:"cookie_name"`
	TTLSeconds int64  `yaml:"ttl_seconds"`
}

type MySQLConfig struct {
	DSN string `yaml:"dsn"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type UploadsConfig struct {
	Dir          string   `yaml:"dir"`
	MaxSizeBytes int64    `yaml:"max_size_bytes"`
	AllowedMime  []string `yaml:"allowed_mime"`
}

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	MySQL   MySQLConfig   `yaml:"mysql"`
	Redis   RedisConfig   `yaml:"redis"`
	Session SessionConfig `yaml:"session"`
	Uploads UploadsConfig `yaml:"uploads"`
}

var GlobalConfig *Config
var RedisClient *redis.Client

func InitConfig(path string) {
	data, err := os.ReadFile(path + "/config.yaml")
	if err != nil {
		log.Fatalf("Read config failed: %v", err)
	}
	if err := yaml.Unmarshal(data, &GlobalConfig); err != nil {
		log.Fatalf("Parse config failed: %v", err)
	}
	applyDefaults()
	applyEnvOverrides()
}

func InitRedis() {
	opt := &redis.Options{
		Addr:     GlobalConfig.Redis.Addr,
		Password: GlobalConfig.Redis.Password,
		DB:       GlobalConfig.Redis.DB,
	}
	if GlobalConfig.Redis.TLS {
		opt.TLSConfig = &tls.Config{}
	}
	RedisClient = redis.NewClient(opt)
	if _, err := RedisClient.Ping(ctx).Result(); err != nil {
		panic(fmt.Sprintf("Redis connect failed: %v", err))
	}
	fmt.Println("Redis connected!")
}

func applyDefaults() {
	if GlobalConfig == nil {
		return
	}
	if GlobalConfig.Session.CookieName == "" {
		GlobalConfig.Session.CookieName = "daybook_sess"
	}
	if GlobalConfig.Session.TTLSeconds == 0 {
		GlobalConfig.Session.TTLSeconds = 7 * 24 * 3600
	}
	if GlobalConfig.Uploads.Dir == "" {
		GlobalConfig.Uploads.Dir = "uploads"
	}
	if GlobalConfig.Uploads.MaxSizeBytes == 0 {
		GlobalConfig.Uploads.MaxSizeBytes = 5 * 1024 * 1024
	}
	if len(GlobalConfig.Uploads.AllowedMime) == 0 {
		GlobalConfig.Uploads.AllowedMime = []string{
			"image/jpeg", "image/png", "image/gif", "image/webp",
			"audio/mpeg", "audio/wav", "audio/ogg",
		}
	}
}

func applyEnvOverrides() {
	if GlobalConfig == nil {
		return
	}
	if v := os.Getenv("MYSQL_DSN"); v != "" {
		GlobalConfig.MySQL.DSN = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		GlobalConfig.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		GlobalConfig.Redis.Password = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		GlobalConfig.Server.Port = v
	}
	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		GlobalConfig.Uploads.Dir = v
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			GlobalConfig.Session.TTLSeconds = parsed
		}
	}
}
