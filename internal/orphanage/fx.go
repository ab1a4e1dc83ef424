package orphanage

import (
	"github.com/heartlink/heartlink/internal/orphanage/repository"
	"github.com/heartlink/heartlink/internal/orphanage/service"
	"go.uber.org/fx"
)

var Module = fx.Module("orphanage",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
