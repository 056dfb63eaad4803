package main

import (
	"github.com/relgraph/relgraph/internal/server"
	"github.com/relgraph/relgraph/internal/util"
	"github.com/relgraph/relgraph/pkg/logger"
	"github.com/relgraph/relgraph/pkg/logger/console"

	_ "github.com/lib/pq"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	server.Init()
}
