package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/relgraph/relgraph/internal/server/middleware"
	"github.com/relgraph/relgraph/pkg/graph"
	"github.com/relgraph/relgraph/pkg/store"
	storepgx "github.com/relgraph/relgraph/pkg/store/pgx"
)

// GetRelationshipsHandler serves the global relationship view: the full
// pipeline with density-bounded pruning. Malformed filter values are
// clamped or ignored, never rejected.
func GetRelationshipsHandler(c echo.Context) error {
	// Numeric params bind as strings so malformed values degrade to "no
	// filter" instead of failing the request.
	type getRelationshipsParams struct {
		Limit          string `query:"limit"`
		Clusters       string `query:"clusters"`
		Categories     string `query:"categories"`
		YearMin        string `query:"yearMin"`
		YearMax        string `query:"yearMax"`
		IncludeUndated string `query:"includeUndated"`
		Keywords       string `query:"keywords"`
		MaxHops        string `query:"maxHops"`
	}

	type getRelationshipsResponse struct {
		Relationships     []graph.Triple `json:"relationships"`
		TotalBeforeLimit  int            `json:"totalBeforeLimit"`
		TotalBeforeFilter int            `json:"totalBeforeFilter"`
	}

	params := new(getRelationshipsParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	st := storepgx.NewTripleDBStorage(app.DBConn)
	triples, err := st.LoadTriples(ctx, store.MaxQueryRows)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	engine := graph.NewEngine(app.Aliases.Current(), app.RootEntity)
	res := engine.GlobalView(triples, graph.BuildParams(graph.RawParams{
		Limit:          atoiOrZero(params.Limit),
		Clusters:       params.Clusters,
		Categories:     params.Categories,
		YearMin:        atoiOrZero(params.YearMin),
		YearMax:        atoiOrZero(params.YearMax),
		IncludeUndated: params.IncludeUndated,
		Keywords:       params.Keywords,
		MaxHops:        params.MaxHops,
	}))

	return c.JSON(http.StatusOK, getRelationshipsResponse{
		Relationships:     res.Relationships,
		TotalBeforeLimit:  res.TotalUniqueEdges,
		TotalBeforeFilter: res.TotalBeforeFilter,
	})
}
