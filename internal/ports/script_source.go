package ports

import (
	"context"

	"github.com/bnema/pmc-telemetry/internal/domain"
)

type ScriptSource interface {
	Load(ctx context.Context) (domain.Script, error)
}
