package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type (
	APP struct {
		Name        string
		Host        string
		Port        string
		Env         string
		CORSOrigins []string
	}
	Auth struct {
		JWTSecret     string
		JWKSURL       string
		Issuer        string
		WebhookSecret string
		// TokenOrgFallback grants org access when the org id is a substring
		// of the caller's token identifier.
		TokenOrgFallback bool
	}
	DB struct {
		User     string
		Password string
		Name     string
		Host     string
		Port     string
		Migrate  bool
	}
	S3 struct {
		Endpoint        string
		PublicEndpoint  string
		Region          string
		AccessKeyID     string
		SecretAccessKey string
		BucketUploads   string
		UseSSL          bool
		UploadURLTTL    time.Duration
		DownloadURLTTL  time.Duration
	}
	MQ struct {
		User         string
		Password     string
		Vhost        string
		Host         string
		AmqpPort     string
		Exchange     string
		ExchangeType string
		QueueName    string
	}
	Limits struct {
		UploadURLPerMinute int
		UploadURLBurst     int
	}

	Config struct {
		App    APP
		Auth   Auth
		DB     DB
		S3     S3
		MQ     MQ
		Limits Limits
	}
)

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	b, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(def)))
	if err != nil {
		return def
	}
	return b
}

func getEnvInt(key string, def int) int {
	n, err := strconv.Atoi(getEnv(key, strconv.Itoa(def)))
	if err != nil {
		return def
	}
	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, def.String()))
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func getEnvList(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}

	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func Load() Config {
	app := APP{
		Name:        getEnv("SERVICE_NAME", "filedrive"),
		Host:        getEnv("SERVICE_HOST", ""),
		Port:        getEnv("SERVICE_PORT", "8080"),
		Env:         getEnv("SERVICE_ENV", ""),
		CORSOrigins: getEnvList("SERVICE_CORS_ORIGINS"),
	}
	auth := Auth{
		JWTSecret:        getEnv("AUTH_JWT_SECRET", ""),
		JWKSURL:          getEnv("AUTH_JWKS_URL", ""),
		Issuer:           getEnv("AUTH_ISSUER", ""),
		WebhookSecret:    getEnv("AUTH_WEBHOOK_SECRET", ""),
		TokenOrgFallback: getEnvBool("AUTH_TOKEN_ORG_FALLBACK", true),
	}
	db := DB{
		User:     getEnv("POSTGRES_USER", ""),
		Password: getEnv("POSTGRES_PASSWORD", ""),
		Name:     getEnv("POSTGRES_DB", ""),
		Host:     getEnv("POSTGRES_HOST", ""),
		Port:     getEnv("POSTGRES_PORT", ""),
		Migrate:  getEnvBool("POSTGRES_MIGRATE", true),
	}
	s3 := S3{
		Endpoint:        getEnv("S3_ENDPOINT", ""),
		PublicEndpoint:  getEnv("S3_PUBLIC_ENDPOINT", ""),
		Region:          getEnv("S3_REGION", "us-east-1"),
		AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		BucketUploads:   getEnv("S3_BUCKET_UPLOADS", ""),
		UseSSL:          getEnvBool("S3_USE_SSL", false),
		UploadURLTTL:    getEnvDuration("S3_UPLOAD_URL_TTL", 15*time.Minute),
		DownloadURLTTL:  getEnvDuration("S3_DOWNLOAD_URL_TTL", time.Hour),
	}
	if s3.PublicEndpoint == "" {
		s3.PublicEndpoint = s3.Endpoint
	}
	mq := MQ{
		User:         getEnv("RABBITMQ_USER", ""),
		Password:     getEnv("RABBITMQ_PASSWORD", ""),
		Vhost:        getEnv("RABBITMQ_VHOST", ""),
		Host:         getEnv("RABBITMQ_HOST", ""),
		AmqpPort:     getEnv("RABBITMQ_AMQP_PORT", ""),
		Exchange:     getEnv("RABBITMQ_EXCHANGE", "filedrive.events"),
		ExchangeType: getEnv("RABBITMQ_EXCHANGE_TYPE", "direct"),
		QueueName:    getEnv("RABBITMQ_QUEUE_NAME", "filedrive.audit"),
	}
	limits := Limits{
		UploadURLPerMinute: getEnvInt("LIMIT_UPLOAD_URL_PER_MINUTE", 30),
		UploadURLBurst:     getEnvInt("LIMIT_UPLOAD_URL_BURST", 5),
	}

	return Config{
		App:    app,
		Auth:   auth,
		DB:     db,
		S3:     s3,
		MQ:     mq,
		Limits: limits,
	}
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	return fmt.Sprintf(
		"postgres://%s@%s:%s/%s",
		url.UserPassword(c.DB.User, c.DB.Password).String(),
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
	), nil
}

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}

// Validate reports configuration the service cannot run with.
func (c Config) Validate() error {
	if c.Auth.JWTSecret == "" && c.Auth.JWKSURL == "" {
		return fmt.Errorf("invalid auth config: AUTH_JWT_SECRET or AUTH_JWKS_URL is required")
	}
	// Webhook users are keyed by the configured issuer; the gate must key
	// callers the same way.
	if c.Auth.WebhookSecret != "" && c.Auth.Issuer == "" {
		return fmt.Errorf("invalid auth config: AUTH_ISSUER is required with AUTH_WEBHOOK_SECRET")
	}
	if c.S3.Endpoint == "" || c.S3.BucketUploads == "" {
		return fmt.Errorf("invalid S3 config: endpoint and bucket are required")
	}
	return nil
}
