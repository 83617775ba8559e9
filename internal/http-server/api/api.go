package api

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"SchoolDesk/internal/config"
	"SchoolDesk/internal/http-server/handlers/classroom"
	"SchoolDesk/internal/http-server/handlers/errors"
	"SchoolDesk/internal/http-server/handlers/school"
	"SchoolDesk/internal/http-server/handlers/student"
	"SchoolDesk/internal/http-server/handlers/user"
	"SchoolDesk/internal/http-server/middleware/authenticate"
	"SchoolDesk/internal/http-server/middleware/timeout"
	"SchoolDesk/internal/lib/sl"
	"SchoolDesk/internal/ws"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

// Deps collects the cores the router dispatches to. Each service is wired
// in main and passed here as the interface its handler package declares.
type Deps struct {
	Auth       authenticate.Authenticator
	Sessions   user.SessionCore
	Schools    school.Core
	Users      user.Core
	Classrooms classroom.Core
	Students   student.Core
	Hub        *ws.Hub
}

func New(conf *config.Config, log *slog.Logger, deps Deps) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	router := chi.NewRouter()
	router.Use(timeout.Timeout(5))
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(render.SetContentType(render.ContentTypeJSON))

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Route("/auth", func(r chi.Router) {
			r.Post("/login", user.Login(log, deps.Users))
			r.Post("/register", user.Register(log, deps.Users))
		})

		// the event feed authenticates through its token query param,
		// not the bearer middleware
		v1.Get("/events", func(w http.ResponseWriter, r *http.Request) {
			ws.ServeWs(deps.Hub, deps.Auth, log, w, r)
		})

		v1.Group(func(authed chi.Router) {
			authed.Use(authenticate.New(log, deps.Auth))

			authed.Post("/auth/logout", user.Logout(log, deps.Sessions))
			authed.Route("/schools", func(r chi.Router) {
				r.Post("/", school.CreateSchool(log, deps.Schools))
				r.Get("/", school.ListSchools(log, deps.Schools))
				r.Get("/{id}", school.GetSchool(log, deps.Schools))
				r.Put("/{id}", school.UpdateSchool(log, deps.Schools))
				r.Delete("/{id}", school.DeleteSchool(log, deps.Schools))
			})
			authed.Route("/users", func(r chi.Router) {
				r.Get("/", user.ListUsers(log, deps.Users))
				r.Get("/{id}", user.GetUser(log, deps.Users))
				r.Put("/{id}", user.UpdateUser(log, deps.Users))
				r.Delete("/{id}", user.DeleteUser(log, deps.Users))
			})
			authed.Route("/classrooms", func(r chi.Router) {
				r.Post("/", classroom.CreateClassroom(log, deps.Classrooms))
				r.Get("/", classroom.ListClassrooms(log, deps.Classrooms))
				r.Get("/{id}", classroom.GetClassroom(log, deps.Classrooms))
				r.Put("/{id}", classroom.UpdateClassroom(log, deps.Classrooms))
				r.Delete("/{id}", classroom.DeleteClassroom(log, deps.Classrooms))
			})
			authed.Route("/students", func(r chi.Router) {
				r.Post("/", student.CreateStudent(log, deps.Students))
				r.Get("/", student.ListStudents(log, deps.Students))
				r.Get("/classrooms/{classroomId}", student.ListByClassroom(log, deps.Students))
				r.Get("/{id}", student.GetStudent(log, deps.Students))
				r.Put("/{id}", student.UpdateStudent(log, deps.Students))
				r.Delete("/{id}", student.DeleteStudent(log, deps.Students))
			})
		})
	})

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:  router,
		ErrorLog: httpLog,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}
