package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/crewlane/compliance-backend-go/internal/config"
	appHTTP "github.com/crewlane/compliance-backend-go/internal/handler/http"
	"github.com/crewlane/compliance-backend-go/internal/pkg/cron"
	"github.com/crewlane/compliance-backend-go/internal/pkg/database"
	"github.com/crewlane/compliance-backend-go/internal/pkg/email"
	"github.com/crewlane/compliance-backend-go/internal/pkg/sse"
	"github.com/crewlane/compliance-backend-go/internal/repository/postgresql"
	complianceService "github.com/crewlane/compliance-backend-go/internal/service/compliance"
	contractService "github.com/crewlane/compliance-backend-go/internal/service/contract"
	"github.com/crewlane/compliance-backend-go/internal/service/timeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn, cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	workerRepo := postgresql.NewWorkerRepository(db)
	contractRepo := postgresql.NewContractRepository(db)
	salaryRepo := postgresql.NewSalaryRecordRepository(db)
	hoursRepo := postgresql.NewHoursRecordRepository(db)
	workflowRepo := postgresql.NewWorkflowRepository(db)
	snapshotRepo := postgresql.NewPayrollSnapshotRepository(db)

	resolvers := []timeline.Resolver{
		timeline.NewPayrollResolver(snapshotRepo),
		timeline.NewLedgerResolver(contractRepo),
		timeline.NewProfileResolver(),
	}
	timelineBuilder := timeline.NewBuilder(workerRepo, resolvers, cfg.Compliance.Rules)
	alertGenerator := complianceService.NewAlertGenerator(timelineBuilder, cfg.Compliance.Rules, cfg.Sweep.Concurrency)

	hub := sse.NewHub()
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	contractSvc := contractService.NewContractService(
		db,
		contractRepo,
		salaryRepo,
		hoursRepo,
		workflowRepo,
		workerRepo,
		timelineBuilder,
		alertGenerator,
		hub,
		cfg.Compliance.Rules,
	)

	scheduler := cron.NewScheduler()
	complianceJobs := cron.NewComplianceJobs(
		workerRepo,
		alertGenerator,
		timelineBuilder,
		hub,
		emailService,
		cfg.Sweep.DigestRecipient,
		cfg.Sweep.Interval,
	)
	complianceJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	contractHandler := appHTTP.NewContractHandler(contractSvc)
	complianceHandler := appHTTP.NewComplianceHandler(alertGenerator, workerRepo, hub)

	router := appHTTP.NewRouter(cfg, contractHandler, complianceHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{Addr: port, Handler: router}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down...")
	_ = server.Close()
}
