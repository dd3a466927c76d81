package graph

import (
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/labstack/echo/v4"
)

// graphqlRequest is the standard GraphQL-over-HTTP POST body
type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// HTTPHandler serves the schema at a single POST endpoint. Execution errors
// come back inside the standard GraphQL response body, not as HTTP errors.
func HTTPHandler(schema graphql.Schema) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req graphqlRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			OperationName:  req.OperationName,
			VariableValues: req.Variables,
			Context:        c.Request().Context(),
		})
		return c.JSON(http.StatusOK, result)
	}
}
