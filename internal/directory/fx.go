package directory

import (
	"github.com/smallbiznis/storefront/internal/directory/repository"
	"github.com/smallbiznis/storefront/internal/directory/service"
	"go.uber.org/fx"
)

var Module = fx.Module("directory.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
