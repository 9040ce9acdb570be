package global

import (
	"os"
	"strconv"
	"time"

	errs "github.com/BlackYHawk/react-food-AI-sub000/tools/errs"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Addr     string `yaml:"addr"`
	Mode     string `yaml:"mode"` // gin mode: debug|release|test
	LogLevel string `yaml:"logLevel"`
}

type MongoConfig struct {
	Uri         string `yaml:"uri"`
	Database    string `yaml:"database"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	MaxPoolSize int    `yaml:"maxPoolSize"`
	MaxRetry    int    `yaml:"maxRetry"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"poolSize"`
}

type JwtConfig struct {
	Secret   string   `yaml:"secret"`
	TokenTTL Duration `yaml:"tokenTTL"`
}

type ChatConfig struct {
	WriteDeadline  Duration `yaml:"writeDeadline"`
	MaxMessageSize int64    `yaml:"maxMessageSize"`
	HistoryLimit   int64    `yaml:"historyLimit"`
}

// Duration wraps time.Duration so YAML accepts "5s"/"72h" strings; bare
// integers are read as seconds.
type Duration time.Duration

func (d Duration) D() time.Duration { return time.Duration(d) }

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, perr := time.ParseDuration(s)
		if perr != nil {
			return perr
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := value.Decode(&n); err != nil {
		return err
	}
	*d = Duration(time.Duration(n) * time.Second)
	return nil
}

type AppConfig struct {
	Server ServerConfig `yaml:"server"`
	Mongo  MongoConfig  `yaml:"mongo"`
	Redis  RedisConfig  `yaml:"redis"`
	Jwt    JwtConfig    `yaml:"jwt"`
	Chat   ChatConfig   `yaml:"chat"`
}

var Config = Default()

func Default() AppConfig {
	return AppConfig{
		Server: ServerConfig{
			Addr:     ":8080",
			Mode:     "debug",
			LogLevel: "debug",
		},
		Mongo: MongoConfig{
			Uri:         "mongodb://localhost:27017",
			Database:    "react_food_ai",
			MaxPoolSize: 20,
			MaxRetry:    3,
		},
		Redis: RedisConfig{
			Addr: "127.0.0.1:6379",
			DB:   0,
		},
		Jwt: JwtConfig{
			Secret:   "change-me-in-production",
			TokenTTL: Duration(72 * time.Hour),
		},
		Chat: ChatConfig{
			WriteDeadline:  Duration(5 * time.Second),
			MaxMessageSize: 64 << 10,
			HistoryLimit:   50,
		},
	}
}

// Load reads the YAML config at path over the defaults, then applies env
// overrides. A missing file is not an error: env and defaults still apply.
func Load(path string) error {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return errs.WrapMsg(err, "read config", "path", path)
			}
		} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return errs.WrapMsg(err, "parse config", "path", path)
		}
	}
	applyEnv(&cfg)
	Config = cfg
	return nil
}

func applyEnv(cfg *AppConfig) {
	setStr(&cfg.Server.Addr, "SERVER_ADDR")
	setStr(&cfg.Server.Mode, "SERVER_MODE")
	setStr(&cfg.Server.LogLevel, "LOG_LEVEL")
	setStr(&cfg.Mongo.Uri, "MONGO_URI")
	setStr(&cfg.Mongo.Database, "MONGO_DATABASE")
	setStr(&cfg.Mongo.Username, "MONGO_USERNAME")
	setStr(&cfg.Mongo.Password, "MONGO_PASSWORD")
	setStr(&cfg.Redis.Addr, "REDIS_ADDR")
	setStr(&cfg.Redis.Password, "REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "REDIS_DB")
	setStr(&cfg.Jwt.Secret, "JWT_SECRET")
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func JwtSecret() []byte { return []byte(Config.Jwt.Secret) }
