package donation

import (
	"github.com/heartlink/heartlink/internal/donation/repository"
	"github.com/heartlink/heartlink/internal/donation/service"
	"go.uber.org/fx"
)

var Module = fx.Module("donation",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
