package server

import (
	"walletledger/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupSwagger serves the API docs under /swagger. Try-it-out requests go to
// the port this process listens on.
func SetupSwagger(r *gin.Engine, port string) {
	docs.SwaggerInfo.Host = "localhost:" + port

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.PersistAuthorization(true),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.DocExpansion("list"),
	))
}
