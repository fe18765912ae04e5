package server

import (
	"github.com/google/wire"

	"github.com/iWorld-y/market_research/app/display/internal/data"
	"github.com/iWorld-y/market_research/app/display/internal/usecase"
)

// ProviderSet 是展示服务的依赖注入 Provider 集合
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,

	// Data providers
	data.NewData,
	data.NewReportRepo,

	// UseCase providers
	usecase.NewReportUseCase,
)
