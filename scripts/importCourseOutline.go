package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/Mavton23/donza-sub001/authoring"
	"github.com/Mavton23/donza-sub001/authoring/outline"
	"github.com/Mavton23/donza-sub001/config"
	"github.com/Mavton23/donza-sub001/logger"
	"github.com/Mavton23/donza-sub001/remotesync"
)

func main() {
	// Load config; the course API is reached through REMOTE_BASE_URL
	config.LoadConfig()
	log, err := logger.Init(config.AppConfig.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	path := "course_outline.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	file, err := os.Open(path)
	if err != nil {
		log.Fatal("failed to open outline", "path", path, "error", err)
	}
	defer file.Close()

	o, err := outline.Parse(file)
	if err != nil {
		log.Fatal("failed to read outline", "path", path, "error", err)
	}
	log.Info("outline loaded", "course_id", o.CourseID, "modules", len(o.Modules), "lessons", o.LessonCount())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := remotesync.NewFromConfig(config.AppConfig, log)
	tree, err := authoring.OpenContentTree(ctx, o.Session(), client, authoring.WithLogger(log))
	if err != nil {
		log.Fatal("failed to load course", "course_id", o.CourseID, "error", err)
	}

	rep, err := outline.Import(ctx, tree, authoring.NewBatchQueue(tree), o)
	var partial *authoring.PartialBatchError
	switch {
	case errors.As(err, &partial):
		log.Error("import stopped",
			"created", partial.Succeeded,
			"failed", partial.Failed.Draft.Title,
			"not_sent", len(partial.Pending),
			"error", partial.Err)
		os.Exit(1)
	case err != nil:
		log.Fatal("import failed", "error", err)
	}

	log.Info("import complete",
		"modules_created", rep.ModulesCreated,
		"modules_reused", rep.ModulesReused,
		"lessons_created", len(rep.Lessons))
}
