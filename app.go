package main

import (
	"net/http"
	"os"

	fthealth "github.com/Financial-Times/go-fthealth/v1_1"
	"github.com/Financial-Times/go-logger"
	"github.com/Financial-Times/http-handlers-go/httphandlers"
	status "github.com/Financial-Times/service-status-go/httphandlers"
	"github.com/Financial-Times/significant-individuals-bods-transformer/bods"
	"github.com/Financial-Times/significant-individuals-bods-transformer/transformer"
	"github.com/gorilla/mux"
	"github.com/jawher/mow.cli"
	"github.com/rcrowley/go-metrics"
)

const appDescription = "Converts significant individual filings into Beneficial Ownership Data Standard statements"

func main() {
	app := cli.App("significant-individuals-bods-transformer", appDescription)
	appSystemCode := app.String(cli.StringOpt{
		Name:   "app-system-code",
		Value:  "significant-individuals-bods-transformer",
		Desc:   "System Code of the application",
		EnvVar: "APP_SYSTEM_CODE",
	})
	appName := app.String(cli.StringOpt{
		Name:   "app-name",
		Value:  "Significant Individuals BODS Transformer",
		Desc:   "Application name",
		EnvVar: "APP_NAME",
	})
	port := app.String(cli.StringOpt{
		Name:   "port",
		Value:  "8080",
		Desc:   "Port to listen on",
		EnvVar: "APP_PORT",
	})
	logLevel := app.String(cli.StringOpt{
		Name:   "log-level",
		Value:  "INFO",
		Desc:   "Level of logging to be shown",
		EnvVar: "LOG_LEVEL",
	})
	batchWorkers := app.Int(cli.IntOpt{
		Name:   "batch-workers",
		Value:  8,
		Desc:   "Number of records converted concurrently in a batch request",
		EnvVar: "BATCH_WORKERS",
	})
	strictPercentages := app.Bool(cli.BoolOpt{
		Name:   "strict-percentages",
		Value:  false,
		Desc:   "Reject percentages of votes or shares outside 0-100",
		EnvVar: "STRICT_PERCENTAGES",
	})
	jurisdictionName := app.String(cli.StringOpt{
		Name:   "jurisdiction-name",
		Value:  bods.Canada.Name,
		Desc:   "Name of the country used for citizenship and tax residency",
		EnvVar: "JURISDICTION_NAME",
	})
	jurisdictionCode := app.String(cli.StringOpt{
		Name:   "jurisdiction-code",
		Value:  bods.Canada.Code,
		Desc:   "ISO alpha-2 code of the country used for citizenship and tax residency",
		EnvVar: "JURISDICTION_CODE",
	})

	app.Action = func() {
		logger.InitLogger(*appSystemCode, *logLevel)
		logger.Infof("[Startup] %s is starting, listening on port %s", *appSystemCode, *port)

		converter := bods.NewConverter(
			bods.WithJurisdiction(bods.Country{Name: *jurisdictionName, Code: *jurisdictionCode}),
			bods.WithStrictPercentages(*strictPercentages),
		)
		service := transformer.NewService(converter, *batchWorkers, transformer.NewMetrics(metrics.DefaultRegistry))
		handler := transformer.NewHandler(service)

		router := mux.NewRouter()
		handler.RegisterHandlers(router)

		var monitoringRouter http.Handler = router
		monitoringRouter = httphandlers.TransactionAwareRequestLoggingHandler(logger.Logger(), monitoringRouter)
		monitoringRouter = httphandlers.HTTPMetricsHandler(metrics.DefaultRegistry, monitoringRouter)

		healthCheck := fthealth.HealthCheck{
			SystemCode:  *appSystemCode,
			Name:        *appName,
			Description: appDescription,
			Checks:      []fthealth.Check{handler.HealthCheck()},
		}

		serveMux := http.NewServeMux()
		serveMux.HandleFunc("/__health", fthealth.Handler(healthCheck))
		serveMux.HandleFunc("/__gtg", handler.GoodToGo)
		serveMux.HandleFunc(status.PingPath, status.PingHandler)
		serveMux.HandleFunc(status.BuildInfoPath, status.BuildInfoHandler)
		serveMux.Handle("/", monitoringRouter)

		if err := http.ListenAndServe(":"+*port, serveMux); err != nil {
			logger.Fatalf("Unable to start server: %v", err)
		}
	}

	if err := app.Run(os.Args); err != nil {
		logger.Errorf("App could not start, error=[%s]\n", err)
		return
	}
}
