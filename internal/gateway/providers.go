package gateway

import (
	"github.com/wb-go/wbf/zlog"

	"github.com/vhpires/groupcast/internal/config"
	"github.com/vhpires/groupcast/pkg/backoff"
)

// New selects the provider backend from configuration and wraps it
// with the retry policy. The rest of the system is agnostic to the
// concrete value.
func New(cfg config.WhatsApp, policy backoff.Policy) Provider {
	var provider Provider

	switch cfg.Provider {
	case "meta":
		provider = NewMeta()
	default:
		provider = NewEvolution(cfg.BaseURL, cfg.APIKey)
	}

	zlog.Logger.Info().Str("provider", cfg.Provider).Msg("whatsapp provider selected")

	return WithRetry(provider, policy)
}
