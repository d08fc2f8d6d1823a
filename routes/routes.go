package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/rriehl64/collibra-app-sub009/admin"
	"github.com/rriehl64/collibra-app-sub009/config"
	"github.com/rriehl64/collibra-app-sub009/database"
	"github.com/rriehl64/collibra-app-sub009/handlers"
	"github.com/rriehl64/collibra-app-sub009/middleware"
	"github.com/rriehl64/collibra-app-sub009/models"
	"github.com/rriehl64/collibra-app-sub009/search"
	"github.com/rriehl64/collibra-app-sub009/store"
	"github.com/rriehl64/collibra-app-sub009/utils"
	"github.com/rriehl64/collibra-app-sub009/websocket"
)

// OPTIONS is listed so CORS preflights match a route.
var (
	MethodsGetOnly    = []string{http.MethodGet, http.MethodOptions}
	MethodsPostOnly   = []string{http.MethodPost, http.MethodOptions}
	MethodsPutOnly    = []string{http.MethodPut, http.MethodOptions}
	MethodsPatchOnly  = []string{http.MethodPatch, http.MethodOptions}
	MethodsDeleteOnly = []string{http.MethodDelete, http.MethodOptions}
)

const (
	PathAPI     = "/api/v1"
	PathHealth  = "/health"
	PathMetrics = "/metrics"
)

type Repositories struct {
	DataAssets            store.Repository[models.DataAsset]
	Domains               store.Repository[models.Domain]
	Policies              store.Repository[models.Policy]
	Portfolios            store.Repository[models.Portfolio]
	ProgramDocumentations store.Repository[models.ProgramDocumentation]
	Users                 store.Repository[models.User]
	TeamMembers           store.Repository[models.TeamMember]
}

func MongoRepositories(db *database.DB) Repositories {
	return Repositories{
		DataAssets:            store.NewMongo[models.DataAsset](db.Collection(database.DataAssets)),
		Domains:               store.NewMongo[models.Domain](db.Collection(database.Domains)),
		Policies:              store.NewMongo[models.Policy](db.Collection(database.Policies)),
		Portfolios:            store.NewMongo[models.Portfolio](db.Collection(database.Portfolios)),
		ProgramDocumentations: store.NewMongo[models.ProgramDocumentation](db.Collection(database.ProgramDocumentations)),
		Users:                 store.NewMongo[models.User](db.Collection(database.Users)),
		TeamMembers:           store.NewMongo[models.TeamMember](db.Collection(database.TeamMembers)),
	}
}

// Deps is everything the router needs. Hub and Metrics are optional.
type Deps struct {
	Config  *config.Config
	DB      handlers.Pinger
	Repos   Repositories
	Tokens  *utils.TokenIssuer
	Hub     *websocket.Hub
	Metrics *middleware.Metrics
	Catalog admin.Catalog
	Logger  *zap.Logger
}

type collection interface {
	List(http.ResponseWriter, *http.Request)
	Get(http.ResponseWriter, *http.Request)
	Create(http.ResponseWriter, *http.Request)
	Update(http.ResponseWriter, *http.Request)
	Delete(http.ResponseWriter, *http.Request)
}

type guard func(http.HandlerFunc) http.Handler

func NewRouter(d Deps) *mux.Router {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if d.Catalog == nil {
		d.Catalog = admin.NewCatalog()
	}
	var events handlers.Publisher
	if d.Hub != nil {
		events = d.Hub
	}

	r := mux.NewRouter()
	r.Use(middleware.Logging(logger), middleware.Recovery(logger), middleware.CORS(d.Config.AllowedOrigins))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
		r.Handle(PathMetrics, d.Metrics.Handler()).Methods(http.MethodGet)
	}

	r.HandleFunc(PathHealth, handlers.HealthCheck(d.DB)).Methods(MethodsGetOnly...)

	public := func(h http.HandlerFunc) http.Handler { return h }
	authed := func(roles ...string) guard {
		return func(h http.HandlerFunc) http.Handler {
			next := http.Handler(h)
			if len(roles) > 0 {
				next = middleware.RequireRoles(roles...)(next)
			}
			return middleware.Auth(d.Tokens, logger)(next)
		}
	}
	editors := authed(models.RoleAdmin, models.RoleDataSteward)
	admins := authed(models.RoleAdmin)

	api := r.PathPrefix(PathAPI).Subrouter()

	// auth
	auth := handlers.NewAuthHandler(d.Repos.Users, d.Tokens, logger)
	api.HandleFunc("/auth/login", auth.Login).Methods(MethodsPostOnly...)
	api.HandleFunc("/auth/register", auth.Register).Methods(MethodsPostOnly...)
	api.Handle("/auth/me", authed()(auth.Me)).Methods(MethodsGetOnly...)

	// catalog collections
	registerCollection(api, "/data-assets",
		handlers.NewResource[models.DataAsset]("data-assets", "Data asset", d.Repos.DataAssets, events, logger).
			WithListFilter(handlers.DataAssetFilter),
		public, editors)
	registerCollection(api, "/domains",
		handlers.NewResource[models.Domain]("domains", "Domain", d.Repos.Domains, events, logger),
		public, editors)
	registerCollection(api, "/policies",
		handlers.NewResource[models.Policy]("policies", "Policy", d.Repos.Policies, events, logger),
		public, editors)
	registerCollection(api, "/portfolios",
		handlers.NewResource[models.Portfolio]("portfolios", "Portfolio", d.Repos.Portfolios, events, logger),
		public, editors)
	registerCollection(api, "/program-documentation",
		handlers.NewResource[models.ProgramDocumentation]("program-documentation", "Program documentation", d.Repos.ProgramDocumentations, events, logger),
		public, editors)
	registerCollection(api, "/users",
		handlers.NewResource[models.User]("users", "User", d.Repos.Users, events, logger),
		admins, admins)

	// search
	sh := handlers.NewSearchHandler(search.DefaultFilterOptions())
	api.HandleFunc("/search/suggestions", sh.Suggestions).Methods(MethodsGetOnly...)
	api.HandleFunc("/search/filters", sh.FilterOptions).Methods(MethodsGetOnly...)

	// admin catalog pages
	ah := handlers.NewAdminHandler(d.Catalog)
	api.HandleFunc("/admin/{page}", ah.List).Methods(MethodsGetOnly...)

	// team management
	team := handlers.NewTeamHandler(d.Repos.TeamMembers, events, logger)
	registerCollection(api, "/team-management/members", team, public, editors)
	api.Handle("/team-management/members/{id}/archive", editors(team.Archive)).Methods(MethodsPatchOnly...)
	api.Handle("/team-management/members/{id}/reactivate", editors(team.Reactivate)).Methods(MethodsPatchOnly...)

	// websockets
	upgrader := websocket.NewUpgrader(d.Config.AllowedOrigins)
	if d.Hub != nil {
		d.Hub.Restrict("users", models.RoleAdmin)
		r.Handle("/ws/changes", middleware.OptionalAuth(d.Tokens)(
			websocket.ServeChanges(d.Hub, upgrader, logger))).Methods(http.MethodGet)
	}
	r.HandleFunc("/ws/admin/{page}/search",
		websocket.ServeAdminSearch(d.Catalog, d.Config.SearchDebounce, upgrader, logger)).Methods(http.MethodGet)

	return r
}

func registerCollection(api *mux.Router, path string, c collection, read, write guard) {
	api.Handle(path, read(c.List)).Methods(MethodsGetOnly...)
	api.Handle(path, write(c.Create)).Methods(MethodsPostOnly...)
	api.Handle(path+"/{id}", read(c.Get)).Methods(MethodsGetOnly...)
	api.Handle(path+"/{id}", write(c.Update)).Methods(MethodsPutOnly...)
	api.Handle(path+"/{id}", write(c.Delete)).Methods(MethodsDeleteOnly...)
}
