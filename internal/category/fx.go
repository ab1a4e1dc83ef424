package category

import (
	"github.com/heartlink/heartlink/internal/category/repository"
	"github.com/heartlink/heartlink/internal/category/service"
	"go.uber.org/fx"
)

var Module = fx.Module("category",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
