// Package cli is the interactive surface over the record store: a small
// REPL mirroring the pages of the original dashboard. It owns no business
// rules; every command maps onto a store or synchronizer operation and
// renders the result.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/gokturk078/cektakip/internal/auth"
	"github.com/gokturk078/cektakip/internal/checks"
	"github.com/gokturk078/cektakip/internal/config"
	"github.com/gokturk078/cektakip/internal/localcache"
	"github.com/gokturk078/cektakip/internal/logging"
	"github.com/gokturk078/cektakip/internal/notify"
	"github.com/gokturk078/cektakip/internal/remote"
	"github.com/gokturk078/cektakip/internal/syncer"
)

type App struct {
	config   *config.Config
	store    *checks.Store
	syncer   *syncer.Syncer
	auth     *auth.Authenticator
	notifier *notify.Notifier
	cache    *localcache.Repositories
	session  string
	reader   *bufio.Reader
	log      logging.Logger
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	repos, err := localcache.InitDatabase(ctx, cfg.CachePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing cache database: %w", err)
	}

	store, err := buildRemote(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	sync := syncer.New(store, repos.Snapshots, log)
	snap := sync.Load(ctx)

	recordStore := checks.NewStore(checks.Deps{
		Initial:       snap.Checks,
		Sync:          sync,
		Banks:         repos.Banks,
		BaselineBanks: cfg.BaselineBanks,
		Log:           log,
	})

	app := &App{
		config: cfg,
		store:  recordStore,
		syncer: sync,
		auth:   auth.New(cfg.PasswordHash, cfg.SessionSecret, cfg.SessionTTL),
		cache:  repos,
		reader: bufio.NewReader(os.Stdin),
		log:    log,
	}

	mailerOpts := notify.EmailJSOptions{
		ServiceID:  cfg.EmailJSServiceID,
		TemplateID: cfg.EmailJSTemplateID,
		PublicKey:  cfg.EmailJSPublicKey,
		ToEmail:    cfg.EmailJSToEmail,
		Timeout:    cfg.HTTPTimeout,
	}
	if mailerOpts.Configured() {
		app.notifier = notify.NewNotifier(notify.NewEmailJSMailer(mailerOpts), log)
	}

	return app, nil
}

func buildRemote(ctx context.Context, cfg *config.Config, log logging.Logger) (remote.Store, error) {
	switch cfg.Backend {
	case "github":
		return remote.NewGitHubStore(remote.GitHubOptions{
			Owner:    cfg.GitHubOwner,
			Repo:     cfg.GitHubRepo,
			Branch:   cfg.GitHubBranch,
			FilePath: cfg.GitHubFilePath,
			Token:    cfg.GitHubToken,
			Timeout:  cfg.HTTPTimeout,
		}, log), nil
	case "s3":
		s, err := remote.NewS3Store(ctx, remote.S3Options{
			Bucket:    cfg.S3Bucket,
			Key:       cfg.S3Key,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		}, log)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "postgres":
		p, err := remote.NewPostgresStore(ctx, cfg.DatabaseDSN, cfg.SnapshotName, log)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

func (a *App) isLoggedIn() bool {
	return a.session != "" && a.auth.Verify(a.session) == nil
}

func (a *App) Run(ctx context.Context) {
	defer a.cache.Close()
	a.Root(ctx)
}
