package main

// @title Storefront API
// @version 1.0
// @description Storefront API: catalog browsing, session carts, search suggestions, checkout, orders and back-office.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Catalog
// @tag.description Product listing, filtering and detail pages

// @tag.name Cart
// @tag.description Session cart, keyed by the X-Session-ID header or sf_session cookie

// @tag.name Search
// @tag.description Live suggestions, search history and the typeahead bar

// @tag.name Checkout
// @tag.description Order summary and submission

// @tag.name Orders
// @tag.description Order history of the signed-in user

// @tag.name Auth
// @tag.description Sign-up, sign-in and sign-out

// @tag.name Users
// @tag.description Profile endpoints

// @tag.name Admin
// @tag.description Admin-only endpoints
