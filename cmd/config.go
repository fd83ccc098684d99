package cmd

import (
	"fmt"
	"time"
)

type Config struct {
	HTTPPort   string `env:"HTTP_PORT" envDefault:"8080"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"parceltrack"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// RedisAddr selects the shared broadcast log; empty keeps it in memory.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	SyncLogKey       string        `env:"SYNC_LOG_KEY" envDefault:"parceltrack:sync:log"`
	SyncChannel      string        `env:"SYNC_CHANNEL" envDefault:"parceltrack:sync:wake"`
	SyncLogCapacity  int           `env:"SYNC_LOG_CAPACITY" envDefault:"50"`
	SyncPollInterval time.Duration `env:"SYNC_POLL_INTERVAL" envDefault:"3s"`

	AdminRecipient string `env:"ADMIN_RECIPIENT" envDefault:"admin"`
	TrackingPrefix string `env:"TRACKING_PREFIX" envDefault:"PCL"`
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) UsesRedis() bool {
	return c.RedisAddr != ""
}
