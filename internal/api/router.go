package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"dog-daycare-backend/internal/model"
	"dog-daycare-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler, rateLimitPerSec float64, rateLimitBurst int, cacheTTL time.Duration) *gin.Engine {
	r := gin.Default()

	rateLimiter := mw.RateLimiter(rate.Limit(rateLimitPerSec), rateLimitBurst)

	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	session := mw.SessionAuth(h.sessions)
	staff := mw.RequireRole(model.RoleModerator)
	admin := mw.RequireRole(model.RoleAdmin)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", h.Register)
			authGroup.POST("/login", h.Login)
			authGroup.POST("/logout", h.Logout)
			authGroup.GET("/me", session, h.Me)
		}

		owners := api.Group("/owners", session)
		{
			owners.GET("", h.ListOwners)
			owners.POST("", h.CreateOwner)
			owners.GET("/:ownerId", h.GetOwner)
			owners.PUT("/:ownerId", h.UpdateOwner)
			owners.DELETE("/:ownerId", h.DeleteOwner)
			owners.GET("/:ownerId/canines", h.ListCaninesForOwner)
		}

		canines := api.Group("/canines", session)
		{
			canines.POST("", h.CreateCanine)
			canines.GET("/:canineId", h.GetCanine)
			canines.PUT("/:canineId", h.UpdateCanine)
			canines.DELETE("/:canineId", h.DeleteCanine)
		}

		bookings := api.Group("/bookings", session)
		{
			bookings.POST("", h.CreateBooking)
			bookings.GET("", h.ListBookingsForDate)
			bookings.DELETE("/:bookingId", h.DeleteBooking)
			bookings.POST("/multiple-bookings/:canineId", h.CreateBookingsBatch)
			bookings.GET("/multiple-bookings/:canineId", h.ListBookingsForCanine)
			bookings.GET("/upcoming-bookings/:canineId", h.GetUpcomingBooking)
			bookings.PATCH("/book-in-out/:bookingId", h.UpdateBookingStatus)
		}

		shop := api.Group("/shop")
		{
			// The public shop list is the one cacheable surface.
			shop.GET("/items", caching, h.ListShopItems)
			shop.POST("/items", session, staff, h.CreateShopItem)
			shop.PUT("/items/:itemId", session, staff, h.UpdateShopItem)
			shop.DELETE("/items/:itemId", session, staff, h.DeleteShopItem)
		}

		notifications := api.Group("/notifications", session)
		{
			notifications.GET("", h.ListNotifications)
			notifications.GET("/unread-count", h.GetUnreadCount)
			notifications.POST("/:notificationId/read", h.MarkNotificationRead)
			notifications.POST("", staff, h.CreateNotification)
			notifications.PUT("/subscriptions", h.PutSubscription)
			notifications.DELETE("/subscriptions", h.DeleteSubscription)
		}
		api.GET("/vapid_public_key", h.GetVAPIDPublicKey)

		roleRequests := api.Group("/role-requests", session)
		{
			roleRequests.POST("", h.CreateRoleRequest)
			roleRequests.GET("", admin, h.ListRoleRequests)
			roleRequests.POST("/:requestId/approve", admin, h.ApproveRoleRequest)
			roleRequests.POST("/:requestId/deny", admin, h.DenyRoleRequest)
		}
	}

	return r
}
