// Seeds the database with fake development data.
package main

import (
	"flag"
	"os"

	"devlink/internal/config"
	"devlink/internal/database"
	"devlink/internal/middleware"
	"devlink/internal/seed"
)

func main() {
	opts := seed.DefaultOptions()
	flag.IntVar(&opts.Users, "users", opts.Users, "number of users to create")
	flag.IntVar(&opts.PostsPerUser, "posts", opts.PostsPerUser, "posts per user")
	flag.IntVar(&opts.CommentsPerPost, "comments", opts.CommentsPerPost, "comments per post")
	flag.Int64Var(&opts.Seed, "seed", opts.Seed, "random seed (0 = nondeterministic)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		middleware.Logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		middleware.Logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := seed.Run(db, opts); err != nil {
		middleware.Logger.Error("seeding failed", "error", err)
		os.Exit(1)
	}
}
