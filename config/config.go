package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

const (
	DefaultServerAddr         = ":8888"
	DefaultAuthorID           = "1"
	DefaultFeatureImagePrefix = "__GHOST_URL__"
	DefaultTimestampLayout    = "2006-01-02 15:04:05"
	DefaultMetaTitleMaxLength = 30
	DefaultMongoDBName        = "wp_importer"
	DefaultKafkaTopic         = "wp-importer.post.events"
)

type AppConfig struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Import   ImportConfig   `yaml:"import"`
	Mongo    MongoConfig    `yaml:"mongo"`
	Kafka    KafkaConfig    `yaml:"kafka"`

	// populated from the environment, never from config.yaml
	DatabaseURL string `yaml:"-"`
	APIToken    string `yaml:"-"`
	MongoURI    string `yaml:"-"`
	Brokers     string `yaml:"-"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DatabaseConfig tunes the MySQL connection pool. Zero values fall back to the
// defaults in package db.
type DatabaseConfig struct {
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	PingTimeout     time.Duration `yaml:"ping_timeout"`
}

// ImportConfig holds the knobs of the post migration pipeline.
type ImportConfig struct {
	// DefaultAuthorID is used when an external author has no migration mapping.
	DefaultAuthorID string `yaml:"default_author_id"`
	// FeatureImagePrefix is prepended to every non-empty feature image URL.
	FeatureImagePrefix string `yaml:"feature_image_prefix"`
	// TimestampLayout is the Go time layout of the legacy created_at values.
	TimestampLayout string `yaml:"timestamp_layout"`
	// MetaTitleMaxLength is the longest title still copied into meta_title.
	MetaTitleMaxLength int `yaml:"meta_title_max_length"`
}

type MongoConfig struct {
	DBName string `yaml:"db_name"`
}

type KafkaConfig struct {
	Topic      string `yaml:"topic"`
	Partitions int    `yaml:"partitions"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	c, err := Parse(data)
	if err != nil {
		panic(err)
	}
	config = c
}

// Parse decodes a config.yaml document, fills defaults and overlays the
// environment.
func Parse(data []byte) (*AppConfig, error) {
	var c AppConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	c.applyDefaults()
	c.applyEnv()
	return &c, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
	if c.Import.DefaultAuthorID == "" {
		c.Import.DefaultAuthorID = DefaultAuthorID
	}
	if c.Import.FeatureImagePrefix == "" {
		c.Import.FeatureImagePrefix = DefaultFeatureImagePrefix
	}
	if c.Import.TimestampLayout == "" {
		c.Import.TimestampLayout = DefaultTimestampLayout
	}
	if c.Import.MetaTitleMaxLength <= 0 {
		c.Import.MetaTitleMaxLength = DefaultMetaTitleMaxLength
	}
	if c.Mongo.DBName == "" {
		c.Mongo.DBName = DefaultMongoDBName
	}
	if c.Kafka.Topic == "" {
		c.Kafka.Topic = DefaultKafkaTopic
	}
	if c.Kafka.Partitions <= 0 {
		c.Kafka.Partitions = 1
	}
}

func (c *AppConfig) applyEnv() {
	c.DatabaseURL = os.Getenv("DB_URL")
	c.APIToken = os.Getenv("API_TOKEN")
	c.MongoURI = os.Getenv("MONGO_URI")
	c.Brokers = os.Getenv("KAFKA_BOOTSTRAP_SERVERS")
	if lv := strings.TrimSpace(os.Getenv("LOG_LEVEL")); lv != "" {
		c.Logging.Level = lv
	}
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
