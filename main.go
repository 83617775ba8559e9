package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"time"

	"SchoolDesk/entity"
	"SchoolDesk/internal/config"
	repository "SchoolDesk/internal/database"
	"SchoolDesk/internal/database/memory"
	"SchoolDesk/internal/http-server/api"
	"SchoolDesk/internal/lib/logger"
	"SchoolDesk/internal/lib/sl"
	"SchoolDesk/internal/service/access"
	"SchoolDesk/internal/service/auth"
	"SchoolDesk/internal/service/classroom"
	"SchoolDesk/internal/service/school"
	"SchoolDesk/internal/service/student"
	"SchoolDesk/internal/service/user"
	"SchoolDesk/internal/ws"
)

// storage is everything the services need from a backing store. Both the
// mongo client and the in-memory store satisfy it.
type storage interface {
	school.Store
	school.UserLookup
	school.ClassroomCounter
	user.Store
	user.SchoolLookup
	classroom.Store
	classroom.StudentCounter
	student.Store
	auth.Repository
}

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	lg.Info("starting schooldesk", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	var store storage
	if conf.Mongo.Enabled {
		db, err := repository.NewMongoClient(conf, lg)
		if err != nil {
			lg.Error("mongo client", sl.Err(err))
			return
		}
		store = db
		lg.With(
			slog.String("host", conf.Mongo.Host),
			slog.String("port", conf.Mongo.Port),
			slog.String("user", conf.Mongo.User),
			slog.String("database", conf.Mongo.Database),
		).Info("mongo client initialized")
	} else {
		store = memory.New()
		lg.Info("in-memory store initialized")
	}

	policy := access.NewPolicy()

	authService := auth.NewService(
		store,
		time.Duration(conf.Auth.TokenTTLHours)*time.Hour,
		conf.Auth.BcryptCost,
		lg,
	)

	schoolService := school.NewService(store, store, store, policy, lg)
	userService := user.NewService(store, store, authService, authService, policy, lg)
	classroomService := classroom.NewService(store, store, store, policy, lg)
	studentService := student.NewService(store, store, policy, lg)

	hub := ws.NewHub(lg)
	go hub.Run()
	schoolService.SetNotifier(hub)
	userService.SetNotifier(hub)
	classroomService.SetNotifier(hub)
	studentService.SetNotifier(hub)

	if err := bootstrapAdmin(conf, store, authService, lg); err != nil {
		lg.Error("bootstrap admin", sl.Err(err))
		return
	}

	// *** blocking start with http server ***
	err := api.New(conf, lg, api.Deps{
		Auth:       authService,
		Sessions:   authService,
		Schools:    schoolService,
		Users:      userService,
		Classrooms: classroomService,
		Students:   studentService,
		Hub:        hub,
	})
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Error("service stopped")
}

// bootstrapAdmin seeds the superadmin account from config. Registration
// never grants the superadmin role, so this is the only way in.
func bootstrapAdmin(conf *config.Config, store storage, hasher *auth.Service, lg *slog.Logger) error {
	if conf.Bootstrap.AdminEmail == "" || conf.Bootstrap.AdminPassword == "" {
		lg.Warn("superadmin bootstrap skipped, no credentials configured")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	existing, err := store.GetUserByEmail(ctx, conf.Bootstrap.AdminEmail)
	if err != nil && !errors.Is(err, entity.ErrNotFound) {
		return err
	}
	if existing != nil {
		return nil
	}

	digest, err := hasher.Hash(conf.Bootstrap.AdminPassword)
	if err != nil {
		return err
	}

	admin := entity.NewUser(conf.Bootstrap.AdminUsername, conf.Bootstrap.AdminEmail, digest, entity.SuperAdminRole, "")
	if err := store.InsertUser(ctx, admin); err != nil {
		return err
	}

	lg.With(
		slog.String("username", admin.Username),
		sl.Secret("email", admin.Email),
	).Info("superadmin bootstrapped")
	return nil
}
