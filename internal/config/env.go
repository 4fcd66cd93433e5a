package config

import (
	"strings"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// DevJWTSecret is the JWT_SECRET default. It is refused in production.
const DevJWTSecret = "change-me"

// Env holds every runtime setting. Values come from the process environment,
// optionally seeded from a .env file.
type Env struct {
	AppEnv   string `env:"APP_ENV,default=development"`
	AppAddr  string `env:"APP_ADDR,default=:8080"`
	GinMode  string `env:"GIN_MODE"`
	LogLevel string `env:"LOG_LEVEL,default=info"`

	DBHost         string `env:"DB_HOST,default=127.0.0.1"`
	DBPort         string `env:"DB_PORT,default=3306"`
	DBUser         string `env:"DB_USER,default=root"`
	DBPassword     string `env:"DB_PASSWORD"`
	DBName         string `env:"DB_NAME,default=travel_agency"`
	DBMaxOpenConns int    `env:"DB_MAX_OPEN_CONNS,default=25"`
	DBAutoMigrate  bool   `env:"DB_AUTO_MIGRATE,default=false"`

	JWTSecret string        `env:"JWT_SECRET,default=change-me"`
	JWTTTL    time.Duration `env:"JWT_TTL,default=24h"`

	UploadDir         string `env:"UPLOAD_DIR,default=uploads"`
	UploadMaxFiles    int    `env:"UPLOAD_MAX_FILES,default=10"`
	UploadMaxFileSize int64  `env:"UPLOAD_MAX_FILE_SIZE,default=10485760"`

	CORSOrigins        string `env:"CORS_ALLOWED_ORIGINS,default=http://localhost:3000|http://localhost:5173"`
	CORSAllowedOrigins []string

	RedisAddr         string        `env:"REDIS_ADDR"`
	RedisPassword     string        `env:"REDIS_PASSWORD"`
	RedisDB           int           `env:"REDIS_DB,default=0"`
	DashboardCacheTTL time.Duration `env:"DASHBOARD_CACHE_TTL,default=1m"`

	AuthRatePerMin int `env:"AUTH_RATE_PER_MIN,default=30"`
}

// LoadEnv reads the optional dotenv file at path and maps the environment onto Env.
func LoadEnv(path string) (Env, error) {
	var e Env
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return e, errors.Wrapf(err, "load env file %s", path)
		}
	}

	if _, err := env.UnmarshalFromEnviron(&e); err != nil {
		return e, errors.Wrap(err, "map environment")
	}

	e.GinMode = strings.TrimSpace(e.GinMode)
	e.AppEnv = strings.ToLower(strings.TrimSpace(e.AppEnv))
	var origins []string
	for _, o := range strings.Split(e.CORSOrigins, "|") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	e.CORSAllowedOrigins = origins

	if e.IsProduction() {
		if secret := strings.TrimSpace(e.JWTSecret); secret == "" || secret == DevJWTSecret {
			return e, errors.New("JWT_SECRET must be set to a non-default value in production")
		}
	}

	if e.UploadMaxFiles <= 0 {
		e.UploadMaxFiles = 10
	}
	return e, nil
}

func (e Env) IsProduction() bool {
	return e.AppEnv == "production"
}
