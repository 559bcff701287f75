// Package autoload initializes the global logger from the environment when
// imported for side effects.
package autoload

import (
	configx "github.com/retail-sales-agent/server/pkg/config"
	logx "github.com/retail-sales-agent/server/pkg/logger"
)

func init() {
	cfg := configx.MustNew[logx.Config]("LOG")
	logx.Init(*cfg)
}
