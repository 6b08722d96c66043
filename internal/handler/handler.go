package handler

import (
	"github.com/graphql-go/graphql"
	"go.uber.org/zap"

	"gamereviews/backend/internal/hub"
	"gamereviews/backend/internal/store"
)

// Handler serves the GraphQL endpoint and the supporting routes.
type Handler struct {
	Schema graphql.Schema
	Store  store.Store
	Hub    *hub.Hub
	Logger *zap.Logger
}

// ErrorResponse is the body of every non-GraphQL error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}
