package observability

import (
	"github.com/danmuck/recordctl/internal/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger configures the runtime logger and returns a child tagged with
// component.
func InitLogger(component string) zerolog.Logger {
	logging.ConfigureRuntime()
	return log.Logger.With().Str("component", component).Logger()
}
