package routes

import (
	"net/http"

	"github.com/Rakhulsr/khayal-shop/app/configs"
	"github.com/Rakhulsr/khayal-shop/app/handlers"
	"github.com/Rakhulsr/khayal-shop/app/handlers/admin"
	"github.com/Rakhulsr/khayal-shop/app/middlewares"
	"github.com/Rakhulsr/khayal-shop/app/repositories"
	"github.com/Rakhulsr/khayal-shop/app/services"
	"github.com/Rakhulsr/khayal-shop/app/utils/renderer"
	"github.com/Rakhulsr/khayal-shop/app/utils/sessions"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Options struct {
	Env          configs.ENV
	SessionStore sessions.SessionStore
	// CSRFKey enables gorilla/csrf when non-nil.
	CSRFKey []byte
	// Notifiers are told about new orders in addition to the webhook,
	// mailer and live feed built from Env.
	Notifiers []services.OrderNotifier
}

// NewRouter wires repositories, services and handlers into the HTTP API.
func NewRouter(db *gorm.DB, opts Options) http.Handler {
	env := opts.Env
	rd := renderer.New(!env.IsProduction())

	productRepo := repositories.NewProductRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	userRepo := repositories.NewUserRepository(db)

	feed := services.NewOrderFeed()
	notifiers := services.Notifiers{
		services.NewWebhookNotifier(env.NotifyWebhookURL),
		services.NewMailer(services.MailConfig{
			Host:     env.EmailHost,
			Port:     env.EmailPort,
			Username: env.EmailUsername,
			Password: env.EmailPassword,
			From:     env.EmailFrom,
		}),
		feed,
	}
	notifiers = append(notifiers, opts.Notifiers...)

	identity := services.NewIdentityService(userRepo, env.AdminEmails, []byte(env.JWTSecret))
	catalog := services.NewCatalogService(productRepo, categoryRepo)
	carts := services.NewCartService(cartRepo, productRepo)
	checkout := services.NewCheckoutService(db, cartRepo, orderRepo, notifiers)
	orders := services.NewOrderService(orderRepo)
	productAdmin := services.NewProductAdminService(productRepo)
	exports := services.NewExportService(orderRepo, productRepo)

	store := opts.SessionStore
	homeHandler := handlers.NewHomeHandler(rd, catalog)
	authHandler := handlers.NewAuthHandler(rd, identity, carts, store)
	productHandler := handlers.NewProductHandler(catalog, rd)
	cartHandler := handlers.NewCartHandler(carts, rd)
	checkoutHandler := handlers.NewCheckoutHandler(checkout, rd)
	orderHandler := handlers.NewOrderHandler(orders, rd)
	adminHandler := admin.NewAdminHandler(rd, orders, productAdmin, catalog, exports)

	guard := func(action string, h http.HandlerFunc) http.Handler {
		return middlewares.RequireAuthForAction(identity, store, rd, action)(h)
	}

	router := mux.NewRouter()
	router.Use(
		middlewares.Authenticate(identity, store, rd),
		middlewares.CartCountMiddleware(carts),
	)

	router.HandleFunc("/", homeHandler.Home).Methods("GET")

	router.HandleFunc("/signup", authHandler.SignUpHandler).Methods("POST")
	router.HandleFunc("/login", authHandler.LoginGetHandler).Methods("GET")
	router.HandleFunc("/login", authHandler.LoginPostHandler).Methods("POST")
	router.HandleFunc("/logout", authHandler.LogoutHandler).Methods("POST")
	router.HandleFunc("/me", authHandler.MeHandler).Methods("GET")
	router.HandleFunc("/me", authHandler.UpdateProfileHandler).Methods("PUT")
	router.HandleFunc("/auth/token", authHandler.TokenHandler).Methods("POST")

	router.HandleFunc("/products", productHandler.ProductListHandler).Methods("GET")
	router.HandleFunc("/products/{id}", productHandler.ProductDetailHandler).Methods("GET")
	router.HandleFunc("/categories", productHandler.CategoriesHandler).Methods("GET")

	router.HandleFunc("/cart/count", cartHandler.CartCount).Methods("GET")
	router.Handle("/cart", guard(services.ActionCartManage, cartHandler.GetCart)).Methods("GET")
	router.Handle("/cart", guard(services.ActionCartManage, cartHandler.ClearCart)).Methods("DELETE")
	router.Handle("/cart/items", guard(services.ActionCartManage, cartHandler.AddToCart)).Methods("POST")
	router.Handle("/cart/items/{index:[0-9]+}", guard(services.ActionCartManage, cartHandler.UpdateCartItem)).Methods("PUT")
	router.Handle("/cart/items/{index:[0-9]+}", guard(services.ActionCartManage, cartHandler.RemoveCartItem)).Methods("DELETE")

	router.Handle("/checkout", guard(services.ActionOrderPlace, checkoutHandler.PlaceOrder)).Methods("POST")
	router.Handle("/orders", guard(services.ActionOrderViewOwn, orderHandler.MyOrders)).Methods("GET")
	router.Handle("/orders/{id}", guard(services.ActionOrderViewOwn, orderHandler.OrderDetail)).Methods("GET")

	adminRouter := router.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middlewares.AdminAuthMiddleware(identity, store, rd))

	adminRouter.Handle("/dashboard", guard(services.ActionAdminDashboard, adminHandler.Dashboard)).Methods("GET")
	adminRouter.Handle("/orders", guard(services.ActionAdminOrders, adminHandler.ListOrders)).Methods("GET")
	adminRouter.Handle("/orders/live", guard(services.ActionAdminOrders, feed.ServeHTTP)).Methods("GET")
	adminRouter.Handle("/orders/{id}", guard(services.ActionAdminOrders, adminHandler.GetOrder)).Methods("GET")
	adminRouter.Handle("/orders/{id}/status", guard(services.ActionAdminOrders, adminHandler.UpdateOrderStatus)).Methods("PUT")
	adminRouter.Handle("/products", guard(services.ActionAdminProducts, adminHandler.ListProducts)).Methods("GET")
	adminRouter.Handle("/products", guard(services.ActionAdminProducts, adminHandler.CreateProduct)).Methods("POST")
	adminRouter.Handle("/products/{id}", guard(services.ActionAdminProducts, adminHandler.UpdateProduct)).Methods("PUT")
	adminRouter.Handle("/products/{id}", guard(services.ActionAdminProducts, adminHandler.DeleteProduct)).Methods("DELETE")
	adminRouter.Handle("/categories", guard(services.ActionAdminProducts, adminHandler.ListCategories)).Methods("GET")
	adminRouter.Handle("/export/orders.xlsx", guard(services.ActionAdminOrders, adminHandler.ExportOrders)).Methods("GET")
	adminRouter.Handle("/export/products.xlsx", guard(services.ActionAdminProducts, adminHandler.ExportProducts)).Methods("GET")

	// Method override has to run before mux matches the route.
	return middlewares.CSRF(opts.CSRFKey, env.IsProduction())(middlewares.MethodOverrideMiddleware(router))
}
