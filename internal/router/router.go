package router

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/wakaf-tunai/internal/authz"
	"github.com/wakaf-tunai/internal/cache"
	"github.com/wakaf-tunai/internal/config"
	adminhandlers "github.com/wakaf-tunai/internal/http/handlers/admin"
	publichandlers "github.com/wakaf-tunai/internal/http/handlers/public"
	"github.com/wakaf-tunai/internal/http/response"
	"github.com/wakaf-tunai/internal/logger"
	"github.com/wakaf-tunai/internal/provider"
	"github.com/wakaf-tunai/internal/storage"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.Z()
	r := gin.New()

	// 初始化 Handler（按公开/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "wakaf"
	}
	redisClient := cache.Client()
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.rate_limited",
	}
	submitRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:donation_submit", redisPrefix),
		WindowSeconds: cfg.Security.SubmitRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.SubmitRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.SubmitRateLimit.BlockSeconds,
		MessageKey:    "error.rate_limited",
	}
	confirmRule := submitRule
	confirmRule.Prefix = fmt.Sprintf("%s:rate:donation_confirm", redisPrefix)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 本地存储时直接提供凭证与证书文件
	if local, ok := c.FileStore.(*storage.LocalStore); ok {
		r.Static(localStaticRoute(cfg.Storage.Local.URLPrefix), local.Dir())
	}

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 捐赠人接口
		public := apiV1.Group("/public")
		{
			public.GET("/captcha", publicHandler.GetCaptcha)
			public.POST("/donations", RateLimitMiddleware(redisClient, submitRule, KeyByIP), publicHandler.SubmitDonation)
			public.POST("/donations/confirm", RateLimitMiddleware(redisClient, confirmRule, KeyByIP), publicHandler.ConfirmDonation)
			public.GET("/donations/:code", publicHandler.GetDonationByCode)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 无需鉴权
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIPAndJSONField("email")), adminHandler.AdminLogin)
			admin.POST("/setup", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.AdminSetup)

			// 需要鉴权的接口
			authorized := admin.Group("")
			authorized.Use(JWTAuthMiddleware(c.AuthService), AdminRBACMiddleware(c.AuthzService))
			{
				authorized.GET("/me", adminHandler.GetCurrentAdmin)

				// 捐赠管理
				authorized.GET("/donations", adminHandler.GetAdminDonations)
				authorized.GET("/donations/summary", adminHandler.GetDonationSummary)
				authorized.GET("/donations/:id", adminHandler.GetAdminDonation)
				authorized.PUT("/donations/:id", adminHandler.UpdateDonation)
				authorized.DELETE("/donations/:id", adminHandler.DeleteDonation)
				authorized.POST("/donations/:id/approve", adminHandler.ApproveDonation)
				authorized.POST("/donations/:id/certificate", adminHandler.GenerateCertificate)
				authorized.POST("/donations/:id/sent", adminHandler.MarkDonationSent)

				// 证书模板与设置
				authorized.POST("/certificate/template", adminHandler.UploadCertificateTemplate)
				authorized.GET("/settings/donation", adminHandler.GetDonationSettings)
				authorized.PUT("/settings/donation", adminHandler.UpdateDonationSettings)

				// 管理员账号
				authorized.GET("/users", adminHandler.GetAdminUsers)
				authorized.POST("/users", adminHandler.CreateAdminUser)
				authorized.DELETE("/users/:id", adminHandler.DeleteAdminUser)

				authorized.GET("/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

// localStaticRoute 从公开 URL 前缀中取出路由路径
func localStaticRoute(urlPrefix string) string {
	route := strings.TrimSpace(urlPrefix)
	if parsed, err := url.Parse(route); err == nil && parsed.Host != "" {
		route = parsed.Path
	}
	route = "/" + strings.Trim(route, "/")
	if route == "/" {
		return "/uploads"
	}
	return route
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		if item.Path == "/api/v1/admin/login" || item.Path == "/api/v1/admin/setup" {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	return segments[1]
}
