package main

import (
	"strings"
	"time"
)

type Config struct {
	LogLevel            string        `env:"LOG_LEVEL,default=INFO"`
	BadgerFilepath      string        `env:"BADGER_FILEPATH,required=true"`
	MirrorDriver        string        `env:"MIRROR_DRIVER,default=postgres"`
	MirrorDSN           string        `env:"MIRROR_DSN,required=true"`
	NumberOfPartitions  int           `env:"NUMBER_OF_PARTITIONS,default=8"`
	PartitionBufferSize int           `env:"PARTITION_BUFFER_SIZE,default=256"`
	RestartInterval     time.Duration `env:"RESTART_INTERVAL,default=1s"`
	HeartbeatInterval   time.Duration `env:"HEARTBEAT_INTERVAL,default=30s"`
	CheckpointInterval  time.Duration `env:"CHECKPOINT_INTERVAL,default=1s"`
	CompactChangeLog    bool          `env:"COMPACT_CHANGE_LOG,default=true"`
	PushRetryDelay      time.Duration `env:"PUSH_RETRY_DELAY,default=200ms"`
	ConditionalPointer  bool          `env:"CONDITIONAL_POINTER,default=true"`
	HTTPHost            string        `env:"HTTP_HOST,default=localhost"`
	HTTPPort            int           `env:"HTTP_PORT,default=8080"`
	GRPCHealthPort      int           `env:"GRPC_HEALTH_PORT,default=8081"`
	JWTSecret           string        `env:"JWT_SECRET,required=true"`
	AuthTokenDuration   time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`
	DefaultPageSize     int           `env:"DEFAULT_PAGE_SIZE,default=20"`
	MaxPageSize         int           `env:"MAX_PAGE_SIZE,default=100"`
	CORSAllowedOrigins  string        `env:"CORS_ALLOWED_ORIGINS,default=*"`
}

func (c Config) AllowedOrigins() []string {
	return strings.Split(c.CORSAllowedOrigins, ",")
}
