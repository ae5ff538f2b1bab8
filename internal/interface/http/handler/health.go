package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/xiebiao/storefront/pkg/response"
)

// Pinger 依赖健康检查
type Pinger func(ctx context.Context) error

// HealthHandler 存活与就绪检查
type HealthHandler struct {
	checks  map[string]Pinger
	timeout time.Duration
}

// NewHealthHandler checks的key为依赖名称(mysql、redis)
func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks, timeout: 2 * time.Second}
}

// Ping 存活检查
// @Summary      存活检查
// @Tags         运维
// @Produce      json
// @Success      200 {object} response.Response
// @Router       /ping [get]
func (h *HealthHandler) Ping(c *gin.Context) {
	response.Success(c, gin.H{"message": "pong"})
}

// Health 依赖检查,任一依赖不可用返回503
// @Summary      健康检查
// @Tags         运维
// @Produce      json
// @Success      200 {object} response.Response
// @Failure      503 {object} response.Response
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	results := make(map[string]string, len(h.checks))
	for name := range h.checks {
		results[name] = "ok"
	}

	// 各依赖并发检查,结果写入各自的key
	type outcome struct {
		name string
		err  error
	}
	ch := make(chan outcome, len(h.checks))
	var g errgroup.Group
	for name, ping := range h.checks {
		g.Go(func() error {
			ch <- outcome{name: name, err: ping(ctx)}
			return nil
		})
	}
	_ = g.Wait()
	close(ch)
	healthy := true
	for o := range ch {
		if o.err != nil {
			healthy = false
			results[o.name] = o.err.Error()
		}
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, response.Response{Success: false, Data: results})
		return
	}
	response.Success(c, results)
}
