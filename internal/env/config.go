package env

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	"github.com/luma/argot/protocol"
)

type Config struct {
	Debug           bool `env:"ARGOT_DEBUG"`
	MaxDepth        int  `env:"ARGOT_MAX_DEPTH"`
	MaxBufferSize   int  `env:"ARGOT_MAX_BUFFER"`
	MaxBulkLength   int  `env:"ARGOT_MAX_BULK"`
	MaxElementCount int  `env:"ARGOT_MAX_ELEMENTS"`
}

func LoadConfig(ctx context.Context) (*Config, error) {
	config := Config{}

	if err := godotenv.Load(".env.local"); err != nil {
		if !os.IsNotExist(err) {
			panic(err)
		}
	}

	if err := envconfig.Process(ctx, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

// DecoderOptions translates the configured limits into decoder options.
// Unset limits keep the decoder defaults.
func (c *Config) DecoderOptions() []protocol.DecoderOption {
	options := make([]protocol.DecoderOption, 0, 4)

	if c.MaxDepth > 0 {
		options = append(options, protocol.WithMaxDepth(c.MaxDepth))
	}

	if c.MaxBufferSize > 0 {
		options = append(options, protocol.WithMaxBufferSize(c.MaxBufferSize))
	}

	if c.MaxBulkLength > 0 {
		options = append(options, protocol.WithMaxBulkLength(c.MaxBulkLength))
	}

	if c.MaxElementCount > 0 {
		options = append(options, protocol.WithMaxElementCount(c.MaxElementCount))
	}

	return options
}
