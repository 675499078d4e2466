package aptos

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
)

// Config holds the configuration for the Aptos indexer API client.
// The contract address identifies which deployment's events are fetched;
// events are filtered server-side by the fully qualified indexed_type.
type Config struct {
	IndexerURL      string `env:"APTOS_INDEXER_URL" envDefault:"https://api.testnet.aptoslabs.com/v1/graphql"`
	ContractAddress string `env:"CHARITY_CONTRACT_ADDRESS" envDefault:"0xe2fb002d94700d394877fcbaaf82bcfb53c6ce6b902d32c4bdea3ccf15f4ba62"`
	ModuleName      string `env:"CHARITY_MODULE_NAME" envDefault:"charity"`
	RequestTimeout  int    `env:"APTOS_REQUEST_TIMEOUT" envDefault:"30"` // seconds
	PageSize        int    `env:"APTOS_PAGE_SIZE" envDefault:"100"`
}

// Load loads the Aptos client configuration from environment variables.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		// Create a temporary logger for error reporting during config loading
		logger, logErr := zap.NewProduction()
		if logErr == nil {
			logger.Sugar().Errorw("failed to parse aptos config", "error", err)
		} else {
			fmt.Fprintf(os.Stderr, "failed to parse aptos config: %v\n", err)
		}
		os.Exit(1)
	}
	return cfg
}

// EventType returns the fully qualified indexed_type tag for an event kind.
func (c Config) EventType(kind EventKind) string {
	return fmt.Sprintf("%s::%s::%s", c.ContractAddress, c.ModuleName, kind)
}
