// Package domain contains all domain modules
package domain

import (
	"go.uber.org/fx"

	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop"
)

// Module aggregates all domain modules for fx dependency injection
var Module = fx.Module("domain",
	shop.Module,
)
