// Package infrastructure contains infrastructure layer components
package infrastructure

import (
	"go.uber.org/fx"

	"github.com/Alokchauhan110/Premium-Plan/internal/infrastructure/database"
	"github.com/Alokchauhan110/Premium-Plan/internal/infrastructure/grpc"
	"github.com/Alokchauhan110/Premium-Plan/internal/infrastructure/http"
	"github.com/Alokchauhan110/Premium-Plan/internal/infrastructure/logger"
	"github.com/Alokchauhan110/Premium-Plan/internal/infrastructure/metrics"
	"github.com/Alokchauhan110/Premium-Plan/internal/infrastructure/redis"
	"github.com/Alokchauhan110/Premium-Plan/internal/infrastructure/s3"
	"github.com/Alokchauhan110/Premium-Plan/internal/infrastructure/telegram"
)

// Module provides all infrastructure components for fx dependency injection
var Module = fx.Module("infrastructure",
	logger.Module,
	database.Module,
	redis.Module,
	s3.Module,
	metrics.Module,
	telegram.Module,
	http.Module,
	grpc.Module,
)
