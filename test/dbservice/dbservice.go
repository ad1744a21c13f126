// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

//go:build integration || e2e

package dbservice

import (
	"context"
	"log"
	"sync"

	"github.com/neo4j/graphsemantics/internal/config"
	"github.com/neo4j/graphsemantics/test/containerrunner"
	"github.com/neo4j/neo4j-go-driver/v6/neo4j"
)

// DBService hands tests a driver for either a testcontainer or an externally provided Neo4j.
type DBService struct {
	driver       neo4j.Driver
	driverOnce   sync.Once // Ensures driver is initialized exactly once
	useContainer bool
}

func NewDBService() *DBService {
	useContainer := config.GetEnvWithDefault("USE_CONTAINER", "true") == "true"
	log.Printf("Testing using container: %t", useContainer)
	return &DBService{useContainer: useContainer}
}

func (dbs *DBService) Start(ctx context.Context) {
	if dbs.useContainer {
		containerrunner.Start(ctx)
	}
}

func (dbs *DBService) Stop(ctx context.Context) {
	if dbs.useContainer {
		containerrunner.Close(ctx)
		return
	}
	if dbs.driver != nil {
		_ = dbs.driver.Close(ctx)
	}
}

func (dbs *DBService) GetDriver() neo4j.Driver {
	dbs.driverOnce.Do(func() {
		if dbs.useContainer {
			dbs.driver = containerrunner.GetDriver()
			return
		}

		cfg := dbs.GetDriverConf()
		drv, err := neo4j.NewDriver(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
		if err != nil {
			log.Fatalf("failed to create driver: %v", err)
		}
		dbs.driver = drv
	})

	return dbs.driver
}

func (dbs *DBService) GetDriverConf() *config.Config {
	if dbs.useContainer {
		return containerrunner.GetDriverConf()
	}

	return &config.Config{
		URI:      config.GetEnvWithDefault("NEO4J_URI", "bolt://localhost:7687"),
		Username: config.GetEnvWithDefault("NEO4J_USERNAME", "neo4j"),
		Password: config.GetEnvWithDefault("NEO4J_PASSWORD", "password"),
		Database: config.GetEnvWithDefault("NEO4J_DATABASE", "neo4j"),
	}
}
