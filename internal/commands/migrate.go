package commands

import (
	"fmt"
	"log"

	"github.com/pkg/errors"

	"guardpost/backend/internal/pkg/repository/postgresql"
)

// ErrHelp provides context that help was given.
var ErrHelp = errors.New("provided help")

type Scheme struct {
	Index       int
	Description string
	Query       string
}

var scheme = []Scheme{
	{
		Index:       1,
		Description: "CREATE TYPE \"officer_role\" AS ENUM",
		Query: `
        CREATE TYPE "officer_role" AS ENUM ('OFFICER', 'DISPATCHER', 'ADMIN', 'CLIENT');`,
	},
	{
		Index:       2,
		Description: "Create table: officers.",
		Query: `
        CREATE TABLE IF NOT EXISTS officers (
            id serial primary key,
            employee_id text not null,
            password text not null,
            role officer_role,
            full_name text,
            phone text,
            email text,
            employment_status text default 'onboarding',
            financials jsonb,
            created_at timestamp default now(),
            created_by int references officers(id),
            updated_at timestamp,
            updated_by int references officers(id),
            deleted_at timestamp,
            deleted_by int references officers(id)
        );`,
	},
	{
		Index:       3,
		Description: "Create admin with employee_id: Admin01, password: 1",
		Query: `
        INSERT INTO officers(employee_id, role, password, employment_status)
        SELECT 'Admin01', 'ADMIN', '$2a$10$NKtnMwDPFSQLG6uOi4Zqheru5Ygbj9TWFHjpl478rRSaO5cJ9QuH2', 'active'
        WHERE NOT EXISTS (SELECT employee_id FROM officers WHERE employee_id = 'Admin01');
        `,
	},
	{
		Index:       4,
		Description: "Create table: clients",
		Query: `
        CREATE TABLE IF NOT EXISTS clients (
            id serial primary key,
            name text not null,
            contact_name text,
            contact_email text,
            phone text,
            billing_settings jsonb,
            created_at timestamp default now(),
            created_by int references officers(id),
            updated_at timestamp,
            updated_by int references officers(id),
            deleted_at timestamp,
            deleted_by int references officers(id)
        );`,
	},
	{
		Index:       5,
		Description: "Create table: sites",
		Query: `
        CREATE TABLE IF NOT EXISTS sites (
            id serial primary key,
            client_id int not null references clients(id),
            name text not null,
            address text,
            latitude double precision,
            longitude double precision,
            radius double precision,
            created_at timestamp default now(),
            created_by int references officers(id),
            updated_at timestamp,
            updated_by int references officers(id),
            deleted_at timestamp,
            deleted_by int references officers(id)
        );`,
	},
	{
		Index:       6,
		Description: "Create table: shifts",
		Query: `
        CREATE TABLE IF NOT EXISTS shifts (
            id serial primary key,
            site_id int not null references sites(id),
            officer_id int references officers(id),
            start_time timestamp not null,
            end_time timestamp not null,
            status text not null default 'draft',
            pay_rate numeric,
            bill_rate numeric,
            break_duration int,
            notes text,
            created_at timestamp default now(),
            created_by int references officers(id),
            updated_at timestamp,
            updated_by int references officers(id),
            deleted_at timestamp,
            deleted_by int references officers(id)
        );`,
	},
	{
		Index:       7,
		Description: "Create table: payroll_runs",
		Query: `
        CREATE TABLE IF NOT EXISTS payroll_runs (
            id serial primary key,
            period_start timestamp not null,
            period_end timestamp not null,
            total_amount numeric,
            officer_count int,
            status text not null default 'draft',
            processed_at timestamp,
            created_at timestamp default now(),
            created_by int references officers(id),
            updated_at timestamp,
            updated_by int references officers(id),
            deleted_at timestamp,
            deleted_by int references officers(id)
        );`,
	},
	{
		Index:       8,
		Description: "Create table: payroll_items",
		Query: `
        CREATE TABLE IF NOT EXISTS payroll_items (
            id serial primary key,
            payroll_run_id int not null references payroll_runs(id),
            officer_id int not null references officers(id),
            regular_hours numeric,
            overtime_hours numeric,
            gross_pay numeric,
            deductions_total numeric,
            net_pay numeric,
            created_at timestamp default now(),
            created_by int references officers(id),
            updated_at timestamp,
            updated_by int references officers(id),
            deleted_at timestamp,
            deleted_by int references officers(id)
        );`,
	},
	{
		Index:       9,
		Description: "Create table: invoices",
		Query: `
        CREATE TABLE IF NOT EXISTS invoices (
            id serial primary key,
            client_id int not null references clients(id),
            invoice_number text not null unique,
            issue_date timestamp,
            due_date timestamp,
            amount numeric,
            status text not null default 'draft',
            created_at timestamp default now(),
            created_by int references officers(id),
            updated_at timestamp,
            updated_by int references officers(id),
            deleted_at timestamp,
            deleted_by int references officers(id)
        );`,
	},
	{
		Index:       10,
		Description: "Create table: invoice_items",
		Query: `
        CREATE TABLE IF NOT EXISTS invoice_items (
            id serial primary key,
            invoice_id int not null references invoices(id),
            description text,
            quantity numeric,
            rate numeric,
            amount numeric,
            created_at timestamp default now(),
            created_by int references officers(id),
            updated_at timestamp,
            updated_by int references officers(id),
            deleted_at timestamp,
            deleted_by int references officers(id)
        );`,
	},
	{
		Index:       11,
		Description: "Create table: time_entries",
		Query: `
        CREATE TABLE IF NOT EXISTS time_entries (
            id serial primary key,
            shift_id int not null references shifts(id),
            officer_id int not null references officers(id),
            clock_in timestamp,
            clock_out timestamp,
            total_hours numeric,
            status text not null default 'pending',
            pay_rate numeric,
            bill_rate numeric,
            invoice_id int references invoices(id),
            payroll_run_id int references payroll_runs(id),
            created_at timestamp default now(),
            created_by int references officers(id),
            updated_at timestamp,
            updated_by int references officers(id),
            deleted_at timestamp,
            deleted_by int references officers(id)
        );`,
	},
	{
		Index:       12,
		Description: "Create table: geofence_events",
		Query: `
        CREATE TABLE IF NOT EXISTS geofence_events (
            id serial primary key,
            officer_id int not null references officers(id),
            site_id int not null references sites(id),
            event_type text not null,
            latitude double precision,
            longitude double precision,
            distance_from_center int,
            occurred_at timestamp not null,
            acknowledged bool default false,
            created_at timestamp default now(),
            created_by int references officers(id),
            updated_at timestamp,
            updated_by int references officers(id),
            deleted_at timestamp,
            deleted_by int references officers(id)
        );`,
	},
	{
		Index:       13,
		Description: "Create table: audit_logs",
		Query: `
        CREATE TABLE IF NOT EXISTS audit_logs (
            id serial primary key,
            action text not null,
            description text,
            actor_id int,
            target_resource text,
            target_id int,
            created_at timestamp default now()
        );`,
	},
	{
		Index:       14,
		Description: "Indexes for hot lookups",
		Query: `
        CREATE INDEX IF NOT EXISTS idx_shifts_officer_time ON shifts (officer_id, start_time) WHERE deleted_at IS NULL;
        CREATE INDEX IF NOT EXISTS idx_time_entries_officer ON time_entries (officer_id) WHERE deleted_at IS NULL;
        CREATE INDEX IF NOT EXISTS idx_time_entries_unbilled ON time_entries (invoice_id) WHERE deleted_at IS NULL;
        CREATE INDEX IF NOT EXISTS idx_geofence_events_officer_site ON geofence_events (officer_id, site_id, occurred_at);`,
	},
}

func Migrate(db *postgresql.Database) {
	for _, s := range scheme {
		if _, err := db.Query(s.Query); err != nil {
			log.Fatalln("migrate error", err)
		}
	}
}

func MigrateUP(db *postgresql.Database) {
	var (
		version int
		dirty   bool
		er      *string
	)
	err := db.QueryRow("SELECT version, dirty, error FROM schema_migrations").Scan(&version, &dirty, &er)
	if err != nil {
		if err.Error() == `ERROR: relation "schema_migrations" does not exist (SQLSTATE=42P01)` {
			if _, err = db.Exec(`
				CREATE TABLE IF NOT EXISTS schema_migrations (version int not null, dirty bool not null, error text);
				DELETE FROM schema_migrations;
				INSERT INTO schema_migrations (version, dirty) values (0, false);
			`); err != nil {
				log.Fatalln("migrate schema_migrations create error", err)
			}
			version = 0
			dirty = false
		} else {
			log.Fatalln("migrate schema_migrations scan: ", err)
		}
	}

	if dirty {
		for _, v := range scheme {
			if v.Index == version {
				if _, err = db.Exec(v.Query); err != nil {
					if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET error = '%s'`, err.Error())); err != nil {
						log.Fatalln("migrate error", err)
					}
					log.Fatalln(fmt.Sprintf("migrate error version: %d", version), err)
				}
				if _, err = db.Exec(`UPDATE schema_migrations SET dirty = false, error = null`); err != nil {
					log.Fatalln("migrate error", err)
				}
			}
		}
	}

	for _, s := range scheme {
		if s.Index > version {
			if _, err = db.Exec(s.Query); err != nil {
				if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET error = '%s', version = %d, dirty = true`, err.Error(), s.Index)); err != nil {
					log.Fatalln("migrate error", err)
				}
				log.Fatalln(fmt.Sprintf("migrate error version: %d", s.Index), err)
			}
			if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET version = %d`, s.Index)); err != nil {
				log.Fatalln("migrate error", err)
			}
		}
	}
}
