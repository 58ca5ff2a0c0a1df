// Package health 提供 /healthz 探针及其依赖检查函数。
package health

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/wyfcoding/inversion/algorithm/inversion"
	"github.com/wyfcoding/inversion/response"
	"github.com/wyfcoding/inversion/service"

	"github.com/gin-gonic/gin"
)

// Checker 定义健康检查函数原型。
type Checker func() error

// selfCheckSeq 是一条已知答案的序列，用来确认计数链路可用。
var selfCheckSeq = []int{2, 3, 1}

const selfCheckInversions = 2

// CounterChecker 返回计数服务自检函数，对固定序列计数并核对结果。
func CounterChecker(svc *service.InversionService) Checker {
	return func() error {
		if svc == nil {
			return errors.New("inversion service is nil")
		}
		// 直接调用计数算法，自检不计入业务指标，也不读写结果缓存。
		n, err := inversion.CountWith(svc.Options().Strategy, selfCheckSeq)
		if err != nil {
			return fmt.Errorf("self-check count failed: %w", err)
		}
		if n != selfCheckInversions {
			return fmt.Errorf("self-check count mismatch: got %d, want %d", n, selfCheckInversions)
		}
		return nil
	}
}

// Handler 返回健康检查接口。所有检查通过时返回 200，否则返回 503 并列出失败项。
func Handler(serviceName string, checkers map[string]Checker) gin.HandlerFunc {
	names := make([]string, 0, len(checkers))
	for name := range checkers {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c *gin.Context) {
		failures := make(map[string]string)
		for _, name := range names {
			if err := checkers[name](); err != nil {
				failures[name] = err.Error()
			}
		}

		body := gin.H{
			"status":    "UP",
			"service":   serviceName,
			"timestamp": time.Now().Unix(),
		}
		if len(failures) == 0 {
			response.SuccessWithRawData(c, body)
			return
		}
		body["status"] = "DOWN"
		body["failures"] = failures
		c.JSON(http.StatusServiceUnavailable, body)
	}
}
