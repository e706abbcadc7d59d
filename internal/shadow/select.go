package shadow

import (
	"fmt"
	"log/slog"

	"github.com/1broseidon/frameless/internal/frameless"
	"github.com/1broseidon/frameless/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
)

// Strategy names accepted in configuration.
const (
	StrategyAuto   = "auto"
	StrategyNative = "native"
	StrategySoft   = "soft"
	StrategyNone   = "none"
)

// Choose resolves a configured strategy name to a concrete one. auto picks
// native when a compositor is running.
func Choose(name string, compositor bool) (string, error) {
	switch name {
	case StrategyAuto, "":
		if compositor {
			return StrategyNative, nil
		}
		return StrategySoft, nil
	case StrategyNative, StrategySoft, StrategyNone:
		return name, nil
	default:
		return "", fmt.Errorf("unknown shadow strategy %q (want auto, native, soft or none)", name)
	}
}

// Select builds the strategy for win once at startup. It returns a nil
// strategy for "none".
func Select(conn *x11.Connection, win xproto.Window, name string, params Params, logger *slog.Logger) (frameless.ShadowStrategy, error) {
	chosen, err := Choose(name, conn.CompositorRunning())
	if err != nil {
		return nil, err
	}
	if logger != nil {
		logger.Info("shadow strategy selected", "configured", name, "strategy", chosen)
	}

	switch chosen {
	case StrategyNative:
		return NewComposited(conn, win), nil
	case StrategySoft:
		if err := params.Validate(); err != nil {
			return nil, err
		}
		return NewSoft(conn, win, params), nil
	default:
		return nil, nil
	}
}
