// Package buildCFG turns the raw config.yaml values into the typed settings
// the rest of the process consumes.
package buildCFG

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/config"

	"churchapi/internal/mailer"
)

type ServerConfig struct {
	Port          string
	AllowedOrigin string
	ReceiptPrefix string
}

type MongoConfig struct {
	URI      string
	Database string
}

type RabbitConfig struct {
	Url      string
	Exchange string
	Queue    string
}

func BuildServerConfig(cfg *config.Config, log *zerolog.Logger) ServerConfig {
	port := cfg.GetString("server.port")
	if port == "" {
		port = "5000"
		log.Warn().Msg("server.port not set, defaulting to 5000")
	}
	prefix := cfg.GetString("org.receipt_prefix")
	if prefix == "" {
		prefix = "GRHCG"
	}
	return ServerConfig{
		Port:          port,
		AllowedOrigin: cfg.GetString("server.allowed_origin"),
		ReceiptPrefix: prefix,
	}
}

func BuildMongoConfig(cfg *config.Config, log *zerolog.Logger) (MongoConfig, error) {
	uri := cfg.GetString("mongo.uri")
	if uri == "" {
		return MongoConfig{}, fmt.Errorf("mongo.uri is required")
	}
	dbName := cfg.GetString("mongo.database")
	if dbName == "" {
		dbName = "church"
		log.Warn().Msg("mongo.database not set, defaulting to church")
	}
	return MongoConfig{URI: uri, Database: dbName}, nil
}

func BuildRabbitConfig(cfg *config.Config, log *zerolog.Logger) (RabbitConfig, error) {
	url := cfg.GetString("rabbit.url")
	if url == "" {
		return RabbitConfig{}, fmt.Errorf("rabbit.url is required")
	}
	exchange := cfg.GetString("rabbit.exchange")
	if exchange == "" {
		exchange = "notifications"
	}
	queue := cfg.GetString("rabbit.queue")
	if queue == "" {
		queue = "email-tasks"
	}
	return RabbitConfig{Url: url, Exchange: exchange, Queue: queue}, nil
}

func BuildSMTPConfig(cfg *config.Config) mailer.Config {
	return mailer.Config{
		Host:     cfg.GetString("smtp.host"),
		Port:     cfg.GetString("smtp.port"),
		From:     cfg.GetString("smtp.from"),
		Password: cfg.GetString("smtp.password"),
	}
}
