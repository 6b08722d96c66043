package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"go.uber.org/zap"
)

// GraphQLRequest is the body of a POST /graphql request.
type GraphQLRequest struct {
	Query         string                 `json:"query" binding:"required"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// PostGraphQL executes an operation sent as JSON.
func (h *Handler) PostGraphQL(c *gin.Context) {
	var req GraphQLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	h.execute(c, req)
}

// GetGraphQL executes an operation sent as query parameters. variables, when
// present, must be a JSON object.
func (h *Handler) GetGraphQL(c *gin.Context) {
	req := GraphQLRequest{
		Query:         c.Query("query"),
		OperationName: c.Query("operationName"),
	}
	if req.Query == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "query parameter is required"})
		return
	}
	if raw := c.Query("variables"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "variables must be a JSON object"})
			return
		}
	}
	h.execute(c, req)
}

func (h *Handler) execute(c *gin.Context, req GraphQLRequest) {
	result := graphql.Do(graphql.Params{
		Schema:         h.Schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        c.Request.Context(),
	})
	if result.HasErrors() && h.Logger != nil {
		h.Logger.Debug("GraphQL operation returned errors",
			zap.String("operation_name", req.OperationName),
			zap.Int("errors", len(result.Errors)),
		)
	}
	c.JSON(http.StatusOK, result)
}
