package handler

import (
	"net/http"

	"github.com/vfg2006/invoicing-api/internal/api/handler/router"
	"github.com/vfg2006/invoicing-api/internal/usecases/analyzing"
	"github.com/vfg2006/invoicing-api/internal/usecases/authenticating"
	"github.com/vfg2006/invoicing-api/internal/usecases/cataloging"
	"github.com/vfg2006/invoicing-api/internal/usecases/purchasing"
	"github.com/vfg2006/invoicing-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Analytics(service *analyzing.Service) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/analytics/purchases",
			Method:      http.MethodGet,
			Handler:     GetPurchaseAnalytics(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Documents(service purchasing.Purchaser) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/purchases",
			Method:      http.MethodPost,
			Handler:     CreatePurchase(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/invoices",
			Method:      http.MethodPost,
			Handler:     CreateInvoice(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Catalog(service cataloging.Cataloger) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/catalog/products",
			Method:      http.MethodGet,
			Handler:     SearchProducts(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/catalog/providers",
			Method:      http.MethodGet,
			Handler:     SearchProviders(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/catalog/fixed-assets",
			Method:      http.MethodGet,
			Handler:     SearchFixedAssets(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
