package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// OpenAPISpec represents a simplified OpenAPI 3.0 specification document.
type OpenAPISpec struct {
	OpenAPI    string         `json:"openapi"`
	Info       Info           `json:"info"`
	Servers    []Server       `json:"servers"`
	Paths      map[string]any `json:"paths"`
	Components map[string]any `json:"components,omitempty"`
}

type Info struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Version     string `json:"version"`
}

type Server struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

var apiSpec OpenAPISpec

func init() {
	apiSpec = OpenAPISpec{
		OpenAPI: "3.0.3",
		Info: Info{
			Title:       "Gatehouse API",
			Description: "Account registration and login service API",
			Version:     "1.0.0",
		},
		Servers: []Server{
			{URL: "http://localhost:8080", Description: "Local development server"},
		},
		Paths: map[string]any{
			"/health": map[string]any{
				"get": map[string]any{
					"summary":     "Health Check",
					"description": "Check the health status of the service",
					"operationId": "healthCheck",
					"tags":        []string{"Health"},
					"responses": map[string]any{
						"200": map[string]any{
							"description": "Service is healthy",
						},
					},
				},
			},
			"/auth/register": map[string]any{
				"post": map[string]any{
					"summary":     "Register User",
					"description": "Register a new user account",
					"operationId": "register",
					"tags":        []string{"Authentication"},
					"requestBody": map[string]any{
						"required": true,
						"content": map[string]any{
							"application/json": map[string]any{
								"schema": map[string]any{
									"type":     "object",
									"required": []string{"username", "email", "password"},
									"properties": map[string]any{
										"username": map[string]any{
											"type":    "string",
											"example": "johndoe",
										},
										"email": map[string]any{
											"type":    "string",
											"format":  "email",
											"example": "user@example.com",
										},
										"password": map[string]any{
											"type":    "string",
											"example": "SecurePass123",
										},
									},
								},
							},
						},
					},
					"responses": map[string]any{
						"201": map[string]any{
							"description": "User registered successfully",
						},
						"400": map[string]any{
							"description": "Invalid input",
						},
						"409": map[string]any{
							"description": "Username or email already exists",
						},
					},
				},
			},
			"/auth/login": map[string]any{
				"post": map[string]any{
					"summary":     "Login",
					"description": "Authenticate a user and receive a session token",
					"operationId": "login",
					"tags":        []string{"Authentication"},
					"requestBody": map[string]any{
						"required": true,
						"content": map[string]any{
							"application/json": map[string]any{
								"schema": map[string]any{
									"type":     "object",
									"required": []string{"email", "password"},
									"properties": map[string]any{
										"email": map[string]any{
											"type":   "string",
											"format": "email",
										},
										"password": map[string]any{
											"type": "string",
										},
									},
								},
							},
						},
					},
					"responses": map[string]any{
						"200": map[string]any{
							"description": "Login successful",
						},
						"401": map[string]any{
							"description": "Invalid credentials",
						},
					},
				},
			},
			"/user/profile": map[string]any{
				"get": map[string]any{
					"summary":     "Get Current User",
					"description": "Get the authenticated user's account information",
					"operationId": "getProfile",
					"tags":        []string{"User"},
					"security": []map[string]any{
						{"BearerAuth": []string{}},
					},
					"responses": map[string]any{
						"200": map[string]any{
							"description": "User information",
						},
						"401": map[string]any{
							"description": "Unauthorized",
						},
					},
				},
			},
		},
		Components: map[string]any{
			"securitySchemes": map[string]any{
				"BearerAuth": map[string]any{
					"type":         "http",
					"scheme":       "bearer",
					"bearerFormat": "JWT",
				},
			},
		},
	}
}

// swaggerUIPage is the documentation shell. The Swagger UI assets load from a
// CDN and render the spec served at /docs/openapi.json.
const swaggerUIPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8"/>
  <meta name="viewport" content="width=device-width, initial-scale=1"/>
  <title>Gatehouse API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css"/>
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
<script>
  window.onload = () => {
    SwaggerUIBundle({
      url: "/docs/openapi.json",
      dom_id: "#swagger-ui"
    });
  };
</script>
</body>
</html>`

// DocsHandler serves the interactive API documentation.
type DocsHandler struct{}

// NewDocsHandler is the constructor for DocsHandler.
func NewDocsHandler() *DocsHandler {
	return &DocsHandler{}
}

// UI serves the interactive documentation page.
func (h *DocsHandler) UI(c echo.Context) error {
	return c.HTML(http.StatusOK, swaggerUIPage)
}

// OpenAPIJSON returns the OpenAPI specification as JSON.
func (h *DocsHandler) OpenAPIJSON(c echo.Context) error {
	return c.JSON(http.StatusOK, apiSpec)
}
