package httpserver

func (s *Server) setupRoutes() {
	s.echo.GET("/", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	public := s.middleware.IPRateLimit.Handler()
	jwt := s.middleware.JWT.RequireJWT()
	limit := s.middleware.RateLimit.Handler()

	authn := s.echo.Group("/authenticate")
	authn.POST("", s.authenticate, public)
	authn.GET("/refresh", s.refreshToken, s.middleware.JWT.RequireJWTAllowExpired(), limit)

	clients := s.echo.Group("/clients")
	clients.POST("", s.createClient, public)
	clients.GET("/:id/email/confirmation", s.confirmEmail, public)
	clients.GET("", s.listClients, jwt, limit)
	clients.GET("/:id", s.getClient, jwt, limit)
	clients.PATCH("/:id", s.updateClient, jwt, limit)
	clients.DELETE("/:id", s.deleteClient, jwt, limit)

	products := s.echo.Group("/products", jwt, limit)
	products.GET("", s.listProducts)
	products.GET("/favorites", s.listFavorites)
	products.GET("/favorites/:id", s.getFavorite)
	products.DELETE("/favorites/:id", s.deleteFavorite)
	products.GET("/:id", s.getProduct)
	products.POST("/:id/favorites", s.createFavorite)
	products.GET("/:id/favorites", s.getFavoriteByProduct)
	products.DELETE("/:id/favorites", s.deleteFavoriteByProduct)
}
