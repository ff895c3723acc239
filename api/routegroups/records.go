package routegroups

import (
	"hospital-portal/api/handlers"

	"github.com/go-chi/chi/v5"
)

// RegisterFAQs mounts /faqs. Numeric ids only, so /faqs/abc falls through to 404.
func RegisterFAQs(apiRouter chi.Router, faqs *handlers.FAQsHandler) {
	apiRouter.Route("/faqs", func(faqsRouter chi.Router) {
		faqsRouter.MethodFunc("GET", "/", faqs.List)
		faqsRouter.MethodFunc("POST", "/", faqs.Create)
		faqsRouter.MethodFunc("GET", "/{id:[0-9]+}", faqs.Get)
		faqsRouter.MethodFunc("PUT", "/{id:[0-9]+}", faqs.Update)
		faqsRouter.MethodFunc("DELETE", "/{id:[0-9]+}", faqs.Delete)
		faqsRouter.MethodFunc("GET", "/search", faqs.Search)
		faqsRouter.MethodFunc("GET", "/search/", faqs.Search)
		faqsRouter.MethodFunc("GET", "/search/{keyword}", faqs.Search)
		faqsRouter.MethodFunc("GET", "/category/{category}", faqs.ByCategory)
	})
}

func RegisterIncidents(apiRouter chi.Router, incidents *handlers.IncidentsHandler) {
	apiRouter.Route("/incidents", func(incidentsRouter chi.Router) {
		incidentsRouter.MethodFunc("GET", "/", incidents.List)
		incidentsRouter.MethodFunc("POST", "/", incidents.Create)
		incidentsRouter.MethodFunc("GET", "/{id:[0-9]+}", incidents.Get)
		incidentsRouter.MethodFunc("DELETE", "/{id:[0-9]+}", incidents.Delete)
		incidentsRouter.MethodFunc("GET", "/search", incidents.Search)
		incidentsRouter.MethodFunc("GET", "/search/", incidents.Search)
		incidentsRouter.MethodFunc("GET", "/search/{keyword}", incidents.Search)
	})
}
