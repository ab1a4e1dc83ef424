package need

import (
	donationdomain "github.com/heartlink/heartlink/internal/donation/domain"
	"github.com/heartlink/heartlink/internal/need/domain"
	"github.com/heartlink/heartlink/internal/need/repository"
	"github.com/heartlink/heartlink/internal/need/service"
	"go.uber.org/fx"
)

var Module = fx.Module("need",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
	fx.Provide(func(s *service.Service) domain.Service { return s }),
	fx.Provide(func(s *service.Service) donationdomain.NeedFulfiller { return s }),
)
