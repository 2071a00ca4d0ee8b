package config

// ConfigLogger настройки логирования
type ConfigLogger struct {
	Level string `mapstructure:"level"`
	// Format json или console
	Format string `mapstructure:"format"`
}

// ConfigServer настройки сервера
type ConfigServer struct {
	UseReflection           bool `mapstructure:"use_reflection"`
	PortGRPC                int  `mapstructure:"port_grpc"`
	PortHTTP                int  `mapstructure:"port_http"`
	MaxConcurrentStreams    int  `mapstructure:"max_concurrent_streams"`
	HTTPReadTimeout         int  `mapstructure:"http_read_timeout"`
	HTTPWriteTimeout        int  `mapstructure:"http_write_timeout"`
	HTTPIdleTimeout         int  `mapstructure:"http_idle_timeout"`
	HTTPReadHeaderTimeout   int  `mapstructure:"http_read_header_timeout"`
	GracefulShutdownTimeout int  `mapstructure:"graceful_shutdown_timeout"`
}

// ConfigGateway настройки HTTP Gateway
type ConfigGateway struct {
	CORSAllowedOrigins string `mapstructure:"cors_allowed_origins"`
	CORSMaxAge         int    `mapstructure:"cors_max_age"`
	RateLimitRPS       int    `mapstructure:"rate_limit_rps"`
	RateLimitBurst     int    `mapstructure:"rate_limit_burst"`
}

// ConfigAuth настройки авторизации. Пустой токен отключает проверку.
type ConfigAuth struct {
	Token string `mapstructure:"token"`
}

// ConfigDebug настройки для локальной разработки
type ConfigDebug struct {
	// SeedBooks количество случайных книг, добавляемых при старте
	SeedBooks int `mapstructure:"seed_books"`
	// SeedValue зерно генератора; 0 - случайное
	SeedValue int `mapstructure:"seed_value"`
}

// Config основная структура конфигурации
type Config struct {
	Logger  *ConfigLogger  `mapstructure:"logger"`
	Server  *ConfigServer  `mapstructure:"server"`
	Gateway *ConfigGateway `mapstructure:"gateway"`
	Auth    *ConfigAuth    `mapstructure:"auth"`
	Debug   *ConfigDebug   `mapstructure:"debug"`
}
