package config

import (
	"github.com/ilyakaznacheev/cleanenv"
	"log"
	"os"
	"time"
)

const defaultConfigPath = "./config/local.yaml"

type Config struct {
	Env        string         `yaml:"env" env-default:"prod"`
	HTTPServer `yaml:"http_server"`
	Catalog    CatalogSource  `yaml:"catalog"`
	Mappings   MappingsSource `yaml:"mappings"`

	DBUser     string `yaml:"db_user" env:"DB_USER"`
	DBPassword string `yaml:"db_password" env:"DB_PASSWORD"`
	DBHost     string `yaml:"db_host" env-default:"localhost"`
	DBPort     int    `yaml:"db_port" env-default:"3306"`
	DBName     string `yaml:"db_name"`
	ParseTime  bool   `yaml:"parse_time" env-default:"true"`

	AdminLogin string `yaml:"admin_login" env:"ADMIN_LOGIN"`
	AdminPass  string `yaml:"admin_pass" env:"ADMIN_PASS"`

	AllowedOrigins []string      `yaml:"allowed_origins" env-default:"http://localhost:5173"`
	WeightDecimals int           `yaml:"weight_decimals" env-default:"2"`
	FrontendDir    string        `yaml:"frontend_dir" env-default:"./frontend-dist"`
	SessionIdle    time.Duration `yaml:"session_idle" env-default:"12h"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:4001"`
	Timeout     time.Duration `yaml:"timeout"  env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout"  env-default:"60s"`
}

// CatalogSource откуда брать справочники: excel или mysql.
type CatalogSource struct {
	Source       string `yaml:"source" env-default:"excel"`
	MatrixPath   string `yaml:"matrix_path" env-default:"data/Матрица.xlsx"`
	BracketsPath string `yaml:"brackets_path" env-default:"data/Кронштейны.xlsx"`
}

// MappingsSource хранилище подтверждённых соответствий: file или mysql.
type MappingsSource struct {
	Source string `yaml:"source" env-default:"file"`
	Path   string `yaml:"path" env-default:"data/mappings.json"`
}

func (c *Config) UsesMySQL() bool {
	return c.Catalog.Source == "mysql" || c.Mappings.Source == "mysql"
}

func MustConfig() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return &cfg
}
