package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/gadget-store-api/internal/interface/http"
	"github.com/oksasatya/gadget-store-api/internal/metrics"
)

type SystemModule struct{}

func NewSystemModule() *SystemModule { return &SystemModule{} }

func (m *SystemModule) Register(rg *gin.RouterGroup) {
	rg.GET("/", handlers.Root)
	rg.GET("/health", handlers.Health)
}

// MetricsModule exposes the Prometheus registry on /metrics.
type MetricsModule struct{}

func NewMetricsModule() *MetricsModule { return &MetricsModule{} }

func (m *MetricsModule) Register(rg *gin.RouterGroup) {
	rg.GET("/metrics", gin.WrapH(metrics.Handler()))
}
