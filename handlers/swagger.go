package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>legalease — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document describing the main endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "legalease", "version": "v0.1.0" },
  "paths": {
    "/api/generate": {
      "post": {
        "summary": "Generate a legal document from form fields",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"documentType":{"type":"string"},"language":{"type":"string"},"filename":{"type":"string"}},"additionalProperties":{"type":"string"}}}}},
        "responses": { "200": { "description": "generated text and saved document" }, "400": { "description": "missing or invalid field" }, "409": { "description": "generation already in progress" } }
      }
    },
    "/api/document-types": {
      "get": { "summary": "List supported document types and their fields", "responses": { "200": { "description": "types with ordered fields" } } }
    },
    "/api/chat": {
      "post": { "summary": "Ask the legal assistant", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"prompt":{"type":"string"}}}}}}, "responses": { "200": { "description": "assistant reply" }, "400": { "description": "prompt missing" } } }
    },
    "/api/chat/upload": {
      "post": { "summary": "Attach a file to the conversation", "responses": { "200": { "description": "acknowledgement" } } }
    },
    "/api/documents": {
      "get": { "summary": "List saved documents", "responses": { "200": { "description": "document metadata list" } } }
    },
    "/api/documents/{id}/export": {
      "post": { "summary": "Export a saved document as PDF", "responses": { "200": { "description": "PDF download" }, "404": { "description": "unknown document" } } }
    },
    "/auth/register": {
      "post": { "summary": "Create a profile and log in", "responses": { "201": { "description": "tokens returned" }, "409": { "description": "email already registered" } } }
    },
    "/auth/login": {
      "post": { "summary": "Password login", "responses": { "200": { "description": "tokens returned" }, "401": { "description": "invalid credentials" } } }
    },
    "/auth/refresh": {
      "post": { "summary": "Refresh access token", "responses": { "200": { "description": "new access token" }, "401": { "description": "invalid refresh" } } }
    },
    "/auth/logout": {
      "post": { "summary": "Logout and invalidate refresh token", "responses": { "200": { "description": "logged out" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
