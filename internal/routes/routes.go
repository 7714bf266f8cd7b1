package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/PiyushPb/vichar-backend/internal/handlers"
	"github.com/PiyushPb/vichar-backend/internal/middleware"
)

// Deps bundles everything route registration needs.
type Deps struct {
	Auth      *handlers.AuthHandler
	User      *handlers.UserHandler
	Tweet     *handlers.TweetHandler
	JWTSecret string
	Limiter   *middleware.RateLimiter
	Mongo     *mongo.Client
	Redis     *redis.Client
}

// Register mounts the full route table.
func Register(app *fiber.App, d Deps) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Hello World!")
	})
	registerHealth(app, d)

	authenticate := middleware.RequireAuth(d.JWTSecret)

	auth := app.Group("/v1/auth")
	if d.Limiter != nil {
		auth.Use(d.Limiter.ByIP())
	}
	auth.Post("/register", d.Auth.Register)
	auth.Post("/login", d.Auth.Login)
	auth.Post("/checkusername", d.Auth.CheckUsername)
	auth.Post("/forget-password", d.Auth.ForgetPassword)
	auth.Post("/resetPassword/:id/:resetToken", d.Auth.ResetPassword)

	user := app.Group("/v1/user")
	user.Get("/currentUser", authenticate, d.User.GetCurrentUser)
	user.Get("/userUID/:uid", authenticate, d.User.GetUserByUID)
	user.Patch("/updateUserProfile/:id", authenticate, d.User.UpdateUserProfile)
	user.Patch("/changePassword/:id", authenticate, d.User.ChangePassword)
	user.Get("/searchUser/:query", authenticate, d.User.SearchUser)
	user.Put("/follow/:followId", authenticate, d.User.FollowUser)
	user.Put("/unfollow/:unFollowId", authenticate, d.User.UnfollowUser)
	// Registered last so named routes above win over the wildcard.
	user.Get("/:username", authenticate, d.User.GetUserByUsername)

	tweet := app.Group("/v1/tweet")
	tweet.Post("/createTweet", authenticate, d.Tweet.CreateTweet)
	tweet.Get("/getTweets", authenticate, d.Tweet.GetTweets)
	tweet.Post("/likeTweet", authenticate, d.Tweet.LikeTweet)
	tweet.Get("/getUserTweets/:userId", authenticate, d.Tweet.GetUserTweets)
}

func registerHealth(app *fiber.App, d Deps) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		mongoStatus := "ok"
		redisStatus := "ok"

		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if d.Mongo != nil {
			if err := d.Mongo.Ping(ctx, nil); err != nil {
				mongoStatus = err.Error()
			}
		}
		if d.Redis != nil {
			if err := d.Redis.Ping(ctx).Err(); err != nil {
				redisStatus = err.Error()
			}
		}

		status := fiber.StatusOK
		if mongoStatus != "ok" || redisStatus != "ok" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(fiber.Map{
			"status":    fiber.Map{"mongo": mongoStatus, "redis": redisStatus},
			"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		})
	})
}
