package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/jalenlum/email-list-backend/internal/auth"
	"github.com/jalenlum/email-list-backend/internal/lists"
	"github.com/jalenlum/email-list-backend/internal/store"
)

// Server wires the repositories, the authenticator, and the command
// handlers into a fiber application.
type Server struct {
	app     *fiber.App
	repo    store.RepositoryManager
	auther  *auth.Auther
	logger  auth.Logger
	debug   bool
	hashIDs bool

	signup        *auth.SignupHandler
	verify        *auth.VerifyEmailHandler
	deleteAccount *auth.DeleteAccountHandler
	createProject *lists.CreateProjectHandler
	deleteProject *lists.DeleteProjectHandler
	collectEmail  *lists.CollectEmailHandler
	listEmails    *lists.ListEmailsHandler
	deleteEmail   *lists.DeleteEmailHandler
}

type Option func(*Server)

func WithLogger(logger auth.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

func WithDebug(debug bool) Option {
	return func(s *Server) {
		s.debug = debug
	}
}

// WithDeterministicIDs derives new user ids from the signup email instead
// of generating random ones.
func WithDeterministicIDs(enabled bool) Option {
	return func(s *Server) {
		s.hashIDs = enabled
	}
}

func New(repo store.RepositoryManager, auther *auth.Auther, mailer auth.VerificationMailer, opts ...Option) *Server {
	s := &Server{
		repo:   repo,
		auther: auther,
		logger: auth.DefaultLogger(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	s.signup = auth.NewSignupHandler(repo, mailer, s.logger)
	s.verify = auth.NewVerifyEmailHandler(repo)
	s.deleteAccount = auth.NewDeleteAccountHandler(repo)
	s.createProject = lists.NewCreateProjectHandler(repo)
	s.deleteProject = lists.NewDeleteProjectHandler(repo)
	s.collectEmail = lists.NewCollectEmailHandler(repo)
	s.listEmails = lists.NewListEmailsHandler(repo)
	s.deleteEmail = lists.NewDeleteEmailHandler(repo)

	s.app = fiber.New(fiber.Config{
		ErrorHandler: newErrorHandler(s.logger),
	})

	s.app.Use(cors.New())

	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	api := s.app.Group("/api")

	api.Post("/signup", s.handleSignup)
	api.Get("/verify", s.handleVerify)
	api.Post("/signin", s.handleSignin)

	api.Delete("/user", s.requireAuth, s.handleDeleteAccount)

	api.Post("/projects", s.requireAuth, s.handleCreateProject)
	api.Delete("/projects/:id", s.requireAuth, s.handleDeleteProject)

	// public collection endpoint, no auth by design
	api.Post("/projects/:id/emails", s.handleCollectEmail)

	api.Get("/projects/:id/emails", s.requireAuth, s.handleListEmails)
	api.Delete("/projects/:id/emails/:emailID", s.requireAuth, s.handleDeleteEmail)
}

// App exposes the fiber application for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
