// Command seed applies the database schema and optionally inserts demo
// bank routing rules for local development.
package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"ocr-journal-backend/internal/models"
	"ocr-journal-backend/internal/repository"
	"ocr-journal-backend/pkg/config"
	"ocr-journal-backend/pkg/logger"
	"ocr-journal-backend/pkg/postgres"
)

const schema = `
CREATE TABLE IF NOT EXISTS connections (
	id BIGSERIAL PRIMARY KEY,
	org_id TEXT NOT NULL DEFAULT '',
	org_name TEXT,
	zoho_user_id TEXT,
	access_token TEXT,
	refresh_token TEXT,
	expires_at TIMESTAMPTZ,
	status TEXT NOT NULL DEFAULT 'active',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS account_cache (
	id BIGSERIAL PRIMARY KEY,
	connection_id BIGINT NOT NULL REFERENCES connections(id),
	account_id TEXT NOT NULL,
	name TEXT NOT NULL,
	code TEXT,
	type TEXT,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_account_cache_connection ON account_cache(connection_id);

CREATE TABLE IF NOT EXISTS bank_org_rules (
	id BIGSERIAL PRIMARY KEY,
	bank_name TEXT NOT NULL,
	account_last4 TEXT NOT NULL,
	alt_fingerprint TEXT,
	connection_id BIGINT NOT NULL REFERENCES connections(id),
	confidence_floor DOUBLE PRECISION NOT NULL DEFAULT 0.85,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_bank_org_rules_fingerprint ON bank_org_rules(bank_name, account_last4);

CREATE TABLE IF NOT EXISTS mapping_rules (
	id BIGSERIAL PRIMARY KEY,
	pattern TEXT NOT NULL,
	debit_account_id TEXT NOT NULL,
	credit_account_id TEXT NOT NULL,
	tax_code TEXT,
	connection_id BIGINT NOT NULL REFERENCES connections(id),
	confidence_floor DOUBLE PRECISION NOT NULL DEFAULT 0.85,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS uploads (
	id UUID PRIMARY KEY,
	filename TEXT NOT NULL,
	content_type TEXT NOT NULL DEFAULT '',
	sha256 TEXT NOT NULL,
	bank_guess TEXT,
	ocr_text TEXT NOT NULL DEFAULT '',
	ocr_conf DOUBLE PRECISION NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS transactions (
	id UUID PRIMARY KEY,
	upload_id UUID REFERENCES uploads(id),
	connection_id BIGINT REFERENCES connections(id),
	date TEXT NOT NULL DEFAULT '',
	amount DOUBLE PRECISION NOT NULL DEFAULT 0,
	currency TEXT NOT NULL DEFAULT 'PHP',
	reference TEXT NOT NULL DEFAULT '',
	payer TEXT NOT NULL DEFAULT '',
	payee TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'pending',
	idempotency_key TEXT NOT NULL UNIQUE,
	books_journal_id TEXT,
	notes TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_transactions_connection ON transactions(connection_id);
`

func main() {
	demo := flag.Bool("demo", false, "insert demo bank routing rules")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if _, err := db.Exec(ctx, schema); err != nil {
		appLogger.Fatal("Failed to apply schema", zap.Error(err))
	}
	appLogger.Info("Schema applied")

	if !*demo {
		return
	}

	connectionRepo := repository.NewConnectionRepository(db, appLogger)
	bankRuleRepo := repository.NewBankRuleRepository(db, appLogger)

	orgName := "Demo Trading Corp"
	conn := &models.Connection{OrgID: "demo-org", OrgName: &orgName}
	if err := connectionRepo.Create(ctx, conn); err != nil {
		appLogger.Fatal("Failed to create demo connection", zap.Error(err))
	}

	demoRules := []models.BankOrgRule{
		{BankName: "BPI", AccountLast4: "1234", ConnectionID: conn.ID},
		{BankName: "BDO", AccountLast4: "5678", ConnectionID: conn.ID},
		{BankName: "UnionBank", AccountLast4: "9012", ConnectionID: conn.ID},
	}
	for i := range demoRules {
		if err := bankRuleRepo.Create(ctx, &demoRules[i]); err != nil {
			appLogger.Fatal("Failed to seed bank rule", zap.Error(err))
		}
	}

	appLogger.Info("Demo data seeded",
		zap.Int64("connection_id", conn.ID),
		zap.Int("bank_rules", len(demoRules)),
	)
}
