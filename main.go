package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/PrayerJournal/controllers"
	"github.com/PrayerJournal/initializers"
	"github.com/PrayerJournal/middlewares"
	"github.com/PrayerJournal/services"
)

func init() {
	initializers.LoadEnv()
	initializers.ConnectDB()
	services.InitPushNotificationService()
	services.InitEmailService()
	services.InitRealtime()
	services.StartReminderScheduler()
}

func main() {
	router := gin.Default()

	getKey := func(c *gin.Context) string {
		if gin.Mode() == gin.DebugMode {
			return c.FullPath()
		}
		return c.ClientIP()
	}

	router.POST("/login", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.UserLogin)
	router.POST("/signup", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.UserSignup)
	router.GET("/ping", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.Ping)

	auth := router.Group("/")
	auth.Use(middlewares.CheckAuth)
	auth.Use(middlewares.RateLimitMiddleware(10, 10, getKey))
	{
		// user routes
		auth.GET("/users/me", controllers.GetUserProfile)
		auth.POST("/users/push-token", controllers.StorePushToken)

		auth.GET("/users/:user_profile_id/prayers", controllers.GetUserPrayers)
		auth.PUT("/users/:user_profile_id/prayers", controllers.UpsertUserPrayer)
		auth.DELETE("/prayers/:prayer_id", controllers.DeleteUserPrayer)

		auth.GET("/users/:user_profile_id/stats", controllers.GetUserStats)

		auth.GET("/users/:user_profile_id/settings", controllers.GetUserSettings)
		auth.PUT("/users/:user_profile_id/settings", controllers.UpdateUserSettings)
		auth.GET("/users/:user_profile_id/reminders", controllers.GetUserReminders)
		auth.PUT("/users/:user_profile_id/reminders", controllers.UpdateUserReminders)

		// group routes
		auth.GET("/groups", controllers.GetUserGroups)
		auth.POST("/groups", controllers.CreateGroup)
		auth.POST("/groups/join", controllers.JoinGroup)
		auth.GET("/groups/:group_profile_id", controllers.GetGroup)
		auth.PATCH("/groups/:group_profile_id/focus", controllers.UpdateGroupFocus)
		auth.DELETE("/groups/:group_profile_id", controllers.DeleteGroup)
		auth.POST("/groups/:group_profile_id/leave", controllers.LeaveGroup)
		auth.GET("/groups/:group_profile_id/events", controllers.GroupEvents)

		auth.GET("/groups/:group_profile_id/members", controllers.GetGroupMembers)
		auth.PATCH("/groups/:group_profile_id/members/:user_profile_id/approve", controllers.ApproveMember)
		auth.DELETE("/groups/:group_profile_id/members/:user_profile_id", controllers.RemoveMember)

		auth.POST("/groups/:group_profile_id/invite", controllers.CreateGroupInvite)

		auth.GET("/groups/:group_profile_id/posts", controllers.GetGroupPosts)
		auth.POST("/groups/:group_profile_id/posts", controllers.CreateGroupPost)
		auth.DELETE("/groups/:group_profile_id/posts/:group_post_id", controllers.DeleteGroupPost)

		auth.GET("/groups/:group_profile_id/logs", controllers.GetGroupTimeLogs)
		auth.POST("/groups/:group_profile_id/logs", controllers.CreateGroupTimeLog)

		// admin only routes
		admin := auth.Group("/")
		admin.Use(middlewares.CheckAdmin)
		admin.Use(middlewares.RateLimitMiddleware(5, 5, getKey))
		{
			admin.GET("/users", controllers.ListUsers)
		}
	}

	if err := router.Run(); err != nil {
		log.Fatal(err)
	}
}
