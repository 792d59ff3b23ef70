package routes

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestSetupSwagger_RegistersDocsRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	SetupSwagger(router)

	var found bool
	for _, route := range router.Routes() {
		if route.Method == http.MethodGet && route.Path == "/swagger/*any" {
			found = true
		}
	}
	require.True(t, found)
}
