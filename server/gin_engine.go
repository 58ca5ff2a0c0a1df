package server

import (
	"github.com/gin-gonic/gin" // 导入Gin Web框架。
)

// NewDefaultGinEngine 创建一个新的 Gin 引擎实例。
// 引擎不内置任何中间件，由调用方决定中间件顺序与集合。
func NewDefaultGinEngine(middlewares ...gin.HandlerFunc) *gin.Engine {
	engine := gin.New()
	engine.Use(middlewares...)
	return engine
}
