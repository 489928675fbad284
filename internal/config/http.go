package config

type HTTP struct {
	Port     uint32 `env:"HTTP_PORT" envDefault:"8000"`
	Swagger  bool   `env:"HTTP_SWAGGER" envDefault:"true"`
	BasePath string `env:"HTTP_BASE_PATH" envDefault:"/api/products"`

	// CorsAllowedOrigin is the only origin allowed to call the API.
	// Requests carrying any other Origin header are rejected.
	CorsAllowedOrigin string `env:"HTTP_CORS_ALLOWED_ORIGIN"`
}
