package internal

import (
	"net/http"

	"github.com/Na1awut/NDLP/internal/controllers"
	"github.com/Na1awut/NDLP/internal/providers"
	"github.com/Na1awut/NDLP/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/process", http.HandlerFunc(apiController.Process))
	routers.Get("/status", http.HandlerFunc(apiController.Status))
	routers.Post("/gettoken", http.HandlerFunc(apiController.GetToken))
	routers.Post("/link", http.HandlerFunc(apiController.Link))
	routers.Post("/reset", http.HandlerFunc(apiController.Reset))
	return routers
}
