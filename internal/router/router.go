package router

import (
	"github.com/redis/go-redis/v9"

	"guardpost/backend/foundation/web"
	"guardpost/backend/internal/audit"
	"guardpost/backend/internal/auth"
	"guardpost/backend/internal/middleware"
	"guardpost/backend/internal/pkg/config"
	"guardpost/backend/internal/pkg/repository/postgresql"
	"guardpost/backend/internal/repository/postgres/client"
	"guardpost/backend/internal/repository/postgres/geofenceevent"
	"guardpost/backend/internal/repository/postgres/invoice"
	"guardpost/backend/internal/repository/postgres/officer"
	"guardpost/backend/internal/repository/postgres/payrollrun"
	"guardpost/backend/internal/repository/postgres/shift"
	"guardpost/backend/internal/repository/postgres/site"
	"guardpost/backend/internal/repository/postgres/timeentry"
	"guardpost/backend/internal/service/billing"
	"guardpost/backend/internal/service/payroll"
	"guardpost/backend/internal/service/rates"

	auth_controller "guardpost/backend/internal/controller/http/v1/auth"
	client_controller "guardpost/backend/internal/controller/http/v1/client"
	geofence_controller "guardpost/backend/internal/controller/http/v1/geofence"
	invoice_controller "guardpost/backend/internal/controller/http/v1/invoice"
	officer_controller "guardpost/backend/internal/controller/http/v1/officer"
	payrollrun_controller "guardpost/backend/internal/controller/http/v1/payrollrun"
	shift_controller "guardpost/backend/internal/controller/http/v1/shift"
	site_controller "guardpost/backend/internal/controller/http/v1/site"
	timeentry_controller "guardpost/backend/internal/controller/http/v1/timeentry"
)

type Router struct {
	*web.App
	postgresDB *postgresql.Database
	redisDB    *redis.Client
	auth       *auth.Auth
	cfg        *config.Config
}

func NewRouter(
	app *web.App,
	postgresDB *postgresql.Database,
	redisDB *redis.Client,
	auth *auth.Auth,
	cfg *config.Config,
) *Router {
	return &Router{
		app,
		postgresDB,
		redisDB,
		auth,
		cfg,
	}
}

func (r Router) Init() error {
	r.HandleMethodNotAllowed = true
	r.Use(middleware.CORSMiddleware(r.cfg.CORSOrigins))

	resolver, err := rates.NewResolver(r.cfg.DefaultPayRate, r.cfg.DefaultBillRate)
	if err != nil {
		return err
	}
	aggregator := payroll.NewAggregator(resolver)
	grouper := billing.NewGrouper(resolver)
	recorder := audit.NewRecorder(r.postgresDB)

	// - postgresql
	officerPostgres := officer.NewRepository(r.postgresDB)
	clientPostgres := client.NewRepository(r.postgresDB)
	sitePostgres := site.NewRepository(r.postgresDB, r.cfg.BaseUrl)
	shiftPostgres := shift.NewRepository(r.postgresDB, recorder)
	timeEntryPostgres := timeentry.NewRepository(r.postgresDB, resolver)
	payrollRunPostgres := payrollrun.NewRepository(r.postgresDB, aggregator, recorder)
	invoicePostgres := invoice.NewRepository(r.postgresDB, grouper, recorder)
	geofenceEventPostgres := geofenceevent.NewRepository(r.postgresDB, r.redisDB)

	// controller
	authController := auth_controller.NewController(officerPostgres, r.auth)
	officerController := officer_controller.NewController(officerPostgres)
	clientController := client_controller.NewController(clientPostgres)
	siteController := site_controller.NewController(sitePostgres)
	shiftController := shift_controller.NewController(shiftPostgres)
	timeEntryController := timeentry_controller.NewController(timeEntryPostgres)
	payrollRunController := payrollrun_controller.NewController(payrollRunPostgres)
	invoiceController := invoice_controller.NewController(invoicePostgres)
	geofenceController := geofence_controller.NewController(geofenceEventPostgres)

	// #auth
	r.Post("/api/v1/sign-in", authController.SignIn)
	r.Post("/api/v1/refresh-token", authController.RefreshToken)

	// #officer
	r.Get("/api/v1/officer/list", officerController.GetOfficerList, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleDispatcher))
	r.Get("/api/v1/officer/:id", officerController.GetOfficerDetailById, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleDispatcher))
	r.Post("/api/v1/officer/create", officerController.CreateOfficer, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/officer/:id", officerController.UpdateOfficerColumns, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/officer/:id", officerController.DeleteOfficer, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #client
	r.Get("/api/v1/client/list", clientController.GetClientList, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleDispatcher))
	r.Get("/api/v1/client/:id", clientController.GetClientDetailById, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleDispatcher))
	r.Post("/api/v1/client/create", clientController.CreateClient, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/client/:id", clientController.UpdateClientColumns, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/client/:id", clientController.DeleteClient, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #site
	r.Get("/api/v1/site/list", siteController.GetSiteList, middleware.Authenticate(r.auth))
	r.Get("/api/v1/site/:id", siteController.GetSiteDetailById, middleware.Authenticate(r.auth))
	r.Get("/api/v1/site/:id/qrcode", siteController.GetSiteClockInQR, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleDispatcher))
	r.Post("/api/v1/site/create", siteController.CreateSite, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleDispatcher))
	r.Patch("/api/v1/site/:id", siteController.UpdateSiteColumns, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleDispatcher))
	r.Delete("/api/v1/site/:id", siteController.DeleteSite, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #shift
	r.Get("/api/v1/shift/list", shiftController.GetShiftList, middleware.Authenticate(r.auth))
	r.Post("/api/v1/shift/create", shiftController.CreateShift, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleDispatcher))
	r.Patch("/api/v1/shift/:id", shiftController.UpdateShiftColumns, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleDispatcher))
	r.Post("/api/v1/shift/:id/assign", shiftController.AssignShift, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleDispatcher))
	r.Post("/api/v1/shift/sweep", shiftController.SweepElapsedShifts, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleDispatcher))
	r.Delete("/api/v1/shift/:id", shiftController.DeleteShift, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleDispatcher))

	// #time entry
	r.Get("/api/v1/time-entry/list", timeEntryController.GetTimeEntryList, middleware.Authenticate(r.auth))
	r.Post("/api/v1/time-entry/clock-in", timeEntryController.ClockIn, middleware.Authenticate(r.auth))
	r.Post("/api/v1/time-entry/:id/clock-out", timeEntryController.ClockOut, middleware.Authenticate(r.auth))
	r.Patch("/api/v1/time-entry/:id/review", timeEntryController.ReviewTimeEntry, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleDispatcher))
	r.Delete("/api/v1/time-entry/:id", timeEntryController.DeleteTimeEntry, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #payroll
	r.Get("/api/v1/payroll/list", payrollRunController.GetPayrollRunList, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/payroll/:id", payrollRunController.GetPayrollRunDetailById, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/payroll/:id/export", payrollRunController.ExportPayrollRun, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/payroll/preview", payrollRunController.PreviewPayrollRun, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/payroll/confirm", payrollRunController.ConfirmPayrollRun, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/payroll/:id/paid", payrollRunController.MarkPayrollRunPaid, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #invoice
	r.Get("/api/v1/invoice/list", invoiceController.GetInvoiceList, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleClient))
	r.Get("/api/v1/invoice/:id", invoiceController.GetInvoiceDetailById, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleClient))
	r.Get("/api/v1/invoice/:id/pdf", invoiceController.GetInvoicePdf, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleClient))
	r.Get("/api/v1/invoice/preview/:client_id", invoiceController.PreviewInvoice, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/invoice/confirm/:client_id", invoiceController.ConfirmInvoice, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/invoice/:id/status", invoiceController.UpdateInvoiceStatus, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #geofence
	r.Post("/api/v1/geofence/ping", geofenceController.Ping, middleware.Authenticate(r.auth, auth.RoleOfficer))
	r.Get("/api/v1/geofence/list", geofenceController.GetEventList, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleDispatcher))
	r.Patch("/api/v1/geofence/:id/acknowledge", geofenceController.AcknowledgeEvent, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleDispatcher))

	return r.Run(r.cfg.ServerPort)
}
