package appbootstrap

import (
	"database/sql"

	"hospital-portal/api"
	"hospital-portal/config"
	"hospital-portal/core/faqs"
	"hospital-portal/core/incidents"
	"hospital-portal/core/maintenance"
	"hospital-portal/core/metrics"
	"hospital-portal/core/store"
	"hospital-portal/core/utils"
)

type runtimeComposition struct {
	serverDeps api.ServerDeps
}

func composeRuntime(cfg *config.AppConfig, db *sql.DB, logger *utils.Logger) (*runtimeComposition, error) {
	m, err := metrics.New(nil)
	if err != nil {
		return nil, err
	}
	faqsStore := store.NewFAQsStore(db)
	reportsStore := store.NewIncidentReportsStore(db)

	faqsSvc := faqs.NewService(faqsStore, m)
	incidentsSvc := incidents.NewService(reportsStore, m, cfg.Location())

	scheduler, err := maintenance.NewScheduler(cfg.Maintenance, db, m, cfg.Location(), logger.With("component", "maintenance"))
	if err != nil {
		return nil, err
	}

	return &runtimeComposition{
		serverDeps: api.ServerDeps{
			DB:        db,
			FAQs:      faqsSvc,
			Incidents: incidentsSvc,
			Metrics:   m,
			Workers:   []api.BackgroundWorker{scheduler},
		},
	}, nil
}
