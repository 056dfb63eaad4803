package middleware

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"github.com/relgraph/relgraph/internal/snapshot"
)

// App bundles the shared read-only resources of the server: the connection
// pool, the alias snapshot and the configured root entity.
type App struct {
	DBConn     *pgxpool.Pool
	Aliases    *snapshot.AliasSnapshot
	RootEntity string
}

type AppContext struct {
	echo.Context
	App *App
}

func AppContextMiddleware(
	db *pgxpool.Pool,
	aliases *snapshot.AliasSnapshot,
	rootEntity string,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			app := &App{
				DBConn:     db,
				Aliases:    aliases,
				RootEntity: rootEntity,
			}
			cc := &AppContext{c, app}
			return next(cc)
		}
	}
}
