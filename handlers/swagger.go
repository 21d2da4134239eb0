package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the API.
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
    <title>storefront — Swagger</title>
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

// Minimal OpenAPI document covering the endpoints clients integrate against.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "storefront", "version": "v1.0.0" },
  "paths": {
    "/api/products": {
      "get": { "summary": "List products (pass fresh=1 to bypass the snapshot)", "responses": { "200": { "description": "product list" } } }
    },
    "/api/products/{id}": {
      "get": { "summary": "Get one product", "responses": { "200": { "description": "product" }, "404": { "description": "not found" } } }
    },
    "/api/categories": {
      "get": { "summary": "List categories", "responses": { "200": { "description": "category list" } } }
    },
    "/api/menus": {
      "get": { "summary": "List navigation menus sorted by order", "responses": { "200": { "description": "menu list" } } }
    },
    "/api/coupons/preview": {
      "post": { "summary": "Price a cart against a coupon code", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"code":{"type":"string"},"items":{"type":"array"}}}}}}, "responses": { "200": { "description": "priced summary" }, "422": { "description": "coupon rejected" } } }
    },
    "/api/checkout": {
      "post": { "summary": "Place an order", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"customer":{"type":"string"},"phone":{"type":"string"},"address":{"type":"string"},"paymentMethod":{"type":"string"},"coupon":{"type":"string"},"items":{"type":"array"}}}}}}, "responses": { "201": { "description": "order created" }, "422": { "description": "coupon rejected" } } }
    },
    "/api/login": {
      "post": { "summary": "Back-office login", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"username":{"type":"string"},"password":{"type":"string"}}}}}}, "responses": { "200": { "description": "token and user" }, "401": { "description": "bad credentials" } } }
    },
    "/api/admin/orders": {
      "get": { "summary": "List orders (bearer token required)", "responses": { "200": { "description": "order list" }, "401": { "description": "missing or invalid token" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "metrics exposition" } } } }
  }
}`
