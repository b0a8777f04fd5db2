package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fleetfin-dev/fleetfin/internal/auditlog"
	"github.com/fleetfin-dev/fleetfin/internal/config"
	"github.com/fleetfin-dev/fleetfin/internal/costs"
	"github.com/fleetfin-dev/fleetfin/internal/fleet"
	"github.com/fleetfin-dev/fleetfin/internal/gitops"
	"github.com/fleetfin-dev/fleetfin/internal/ledger"
	"github.com/fleetfin-dev/fleetfin/internal/log"
	"github.com/fleetfin-dev/fleetfin/internal/model"
	"github.com/fleetfin-dev/fleetfin/internal/report"
)

// configFile is the configuration file at the books root.
const configFile = "fleetfin.yaml"

// books bundles every service loaded from one books directory.
type books struct {
	root     string
	cfg      *config.Config
	store    *ledger.Store
	ledger   *ledger.Ledger
	fleet    *fleet.Service
	costs    []model.CostRecord
	revenues []model.RevenueRecord
	logger   *log.Logger
}

// openBooks resolves the books directory (flag value, then FLEETFIN_DATA_DIR,
// then cwd) and loads config, ledger, fleet registry, and cost records.
func openBooks(dir string) (*books, error) {
	env, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	if dir == "" {
		dir = env.DataDir
	}
	if dir == "" {
		dir = "."
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(root, configFile))
	if err != nil {
		return nil, err
	}

	store := ledger.NewStore(root)
	led, err := store.Load()
	if err != nil {
		return nil, err
	}

	flt, err := fleet.Load(root)
	if err != nil {
		return nil, err
	}

	costRecords, revenueRecords, err := costs.LoadRecords(root)
	if err != nil {
		return nil, err
	}

	return &books{
		root:     root,
		cfg:      cfg,
		store:    store,
		ledger:   led,
		fleet:    flt,
		costs:    costRecords,
		revenues: revenueRecords,
		logger:   log.New(env.LogLevel),
	}, nil
}

// engine builds a report engine over the loaded snapshot.
func (b *books) engine() *report.Engine {
	return report.NewEngine(b.ledger, b.fleet, costs.NewAggregator(b.costs, b.revenues))
}

// audit appends one operation entry to the audit log.
func (b *books) audit(action, accountID, amount, txnID, result string) {
	entry := auditlog.Entry{
		Timestamp: time.Now().UTC(),
		Actor:     b.cfg.Business.Name,
		Action:    action,
		AccountID: accountID,
		Amount:    amount,
		TxnID:     txnID,
		Result:    result,
	}
	if err := auditlog.Append(b.root, []auditlog.Entry{entry}); err != nil {
		b.logger.Warn("audit log append failed", "error", err)
	}
}

// autoCommit commits the books directory when git integration is on.
func (b *books) autoCommit(message string) {
	if !b.cfg.Git.AutoCommit || !gitops.IsRepo(b.root) {
		return
	}
	hash, err := gitops.CommitAll(b.root, message, b.cfg.Git.AuthorName, b.cfg.Git.AuthorEmail)
	if err != nil {
		b.logger.Warn("auto-commit failed", "error", err)
		return
	}
	b.logger.WithComponent("gitops").Info("committed", "hash", hash)
}
