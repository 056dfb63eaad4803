package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/relgraph/relgraph/internal/server/middleware"
	"github.com/relgraph/relgraph/pkg/graph"
	"github.com/relgraph/relgraph/pkg/store"
	storepgx "github.com/relgraph/relgraph/pkg/store/pgx"
)

// GetEntityRelationshipsHandler serves the single-entity neighborhood view.
// The path entity may be an alias; its full equivalence set is matched. No
// edge budget applies, so the caller always sees the complete filtered
// neighborhood plus the pre-filter total.
func GetEntityRelationshipsHandler(c echo.Context) error {
	type getEntityRelationshipsParams struct {
		Name           string `param:"name" validate:"required"`
		Clusters       string `query:"clusters"`
		Categories     string `query:"categories"`
		YearMin        string `query:"yearMin"`
		YearMax        string `query:"yearMax"`
		IncludeUndated string `query:"includeUndated"`
		Keywords       string `query:"keywords"`
	}

	type getEntityRelationshipsResponse struct {
		Relationships     []graph.Triple `json:"relationships"`
		TotalBeforeFilter int            `json:"totalBeforeFilter"`
		Aliases           []string       `json:"aliases"`
	}

	params := new(getEntityRelationshipsParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
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
	res := engine.NeighborhoodView(triples, params.Name, graph.BuildParams(graph.RawParams{
		Clusters:       params.Clusters,
		Categories:     params.Categories,
		YearMin:        atoiOrZero(params.YearMin),
		YearMax:        atoiOrZero(params.YearMax),
		IncludeUndated: params.IncludeUndated,
		Keywords:       params.Keywords,
	}))

	return c.JSON(http.StatusOK, getEntityRelationshipsResponse{
		Relationships:     res.Relationships,
		TotalBeforeFilter: res.TotalBeforeFilter,
		Aliases:           res.Aliases,
	})
}
