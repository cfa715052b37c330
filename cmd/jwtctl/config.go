package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	jwt "github.com/cybergodev/jwtcodec"
)

// fileConfig is the layout of the --config file
type fileConfig struct {
	Codec      jwt.Config       `yaml:"codec"`
	Revocation revocationConfig `yaml:"revocation"`
}

type revocationConfig struct {
	jwt.RevocationConfig `yaml:",inline"`

	RedisAddr string `yaml:"redis_addr"`
	RedisDB   int    `yaml:"redis_db"`
	Prefix    string `yaml:"prefix"`
}

func defaultFileConfig() fileConfig {
	return fileConfig{
		Codec:      jwt.DefaultConfig(),
		Revocation: revocationConfig{RevocationConfig: jwt.DefaultRevocationConfig()},
	}
}

// loadConfig reads path over the defaults. An empty path yields the defaults.
func loadConfig(path string) (fileConfig, error) {
	cfg := defaultFileConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// commandConfig loads the --config file and applies the redis flag
func commandConfig(cmd *cobra.Command) (fileConfig, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := loadConfig(path)
	if err != nil {
		return cfg, err
	}

	if cmd.Flags().Lookup("redis-addr") != nil && cmd.Flags().Changed("redis-addr") {
		cfg.Revocation.RedisAddr, _ = cmd.Flags().GetString("redis-addr")
	}
	cfg.Codec.Logger = log
	return cfg, nil
}

// newRevoker connects to the configured redis, or returns nil when no
// address is configured
func newRevoker(ctx context.Context, cfg revocationConfig) (*jwt.Revoker, func(), error) {
	if cfg.RedisAddr == "" {
		return nil, func() {}, nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
	}

	revoker := jwt.NewRedisRevoker(client, cfg.Prefix, cfg.RevocationConfig, log)
	closeFn := func() {
		_ = revoker.Close()
		_ = client.Close()
	}
	return revoker, closeFn, nil
}
