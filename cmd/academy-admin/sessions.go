package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/edunexa/academy-api/internal/core"
	"github.com/edunexa/academy-api/internal/data"
	domainauth "github.com/edunexa/academy-api/internal/domain/auth"
	"github.com/edunexa/academy-api/internal/service"
)

const (
	sessionKeyPrefix      = "session:"
	defaultRedisScanCount = 100
	redisCommandTimeout   = 2 * time.Minute
)

type listSessionsOptions struct {
	Email string
	Limit int
}

type clearSessionsOptions struct {
	Email  string
	All    bool
	DryRun bool
	Yes    bool
}

type bumpCatalogOptions struct {
	Resource string
}

type sessionEntry struct {
	Key     string
	Session domainauth.Session
	TTL     time.Duration
}

func runListSessions(cmdCtx *commandContext, args []string) error {
	opts, err := parseListSessionsFlags(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, redisCommandTimeout)
	defer cancel()

	redisClient, err := requireRedis(cmdCtx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeInfra(nil, redisClient); closeErr != nil {
			cmdCtx.Logger.Warn("redis close failed", "error", closeErr)
		}
	}()

	entries, scanned, err := collectSessions(ctx, redisClient, cmdCtx.Logger, opts)
	if err != nil {
		return err
	}

	return renderSessions(entries, scanned, opts)
}

func runClearSessions(cmdCtx *commandContext, args []string) error {
	opts, err := parseClearSessionsFlags(args)
	if err != nil {
		return err
	}
	if confirmErr := confirmAction(clearSessionsConfirmOptions{opts}, "revoke login sessions"); confirmErr != nil {
		return confirmErr
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, redisCommandTimeout)
	defer cancel()

	redisClient, err := requireRedis(cmdCtx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeInfra(nil, redisClient); closeErr != nil {
			cmdCtx.Logger.Warn("redis close failed", "error", closeErr)
		}
	}()

	entries, _, err := collectSessions(ctx, redisClient, cmdCtx.Logger, listSessionsOptions{Email: opts.Email})
	if err != nil {
		return err
	}

	if opts.DryRun {
		cmdCtx.Logger.Info("dry run; no sessions deleted", "matched", len(entries))
		return renderSessions(entries, len(entries), listSessionsOptions{Email: opts.Email})
	}

	deleted := 0
	for _, entry := range entries {
		if delErr := redisClient.Del(ctx, entry.Key).Err(); delErr != nil {
			return fmt.Errorf("delete %s: %w", entry.Key, delErr)
		}
		deleted++
	}

	cmdCtx.Logger.Info("clear sessions complete", "sessions_revoked", deleted)
	return nil
}

// runBumpCatalog bumps catalog version counters so cached list responses are
// abandoned without touching individual keys; orphaned entries age out via TTL.
func runBumpCatalog(cmdCtx *commandContext, args []string) error {
	opts, err := parseBumpCatalogFlags(args)
	if err != nil {
		return err
	}

	resources := catalogResources()
	if opts.Resource != "" {
		if !isKnownCatalogResource(opts.Resource, resources) {
			return fmt.Errorf(
				"unknown catalog resource %q (valid options: %s)",
				opts.Resource,
				strings.Join(resources, ", "),
			)
		}
		resources = []string{opts.Resource}
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, redisCommandTimeout)
	defer cancel()

	redisClient, err := requireRedis(cmdCtx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeInfra(nil, redisClient); closeErr != nil {
			cmdCtx.Logger.Warn("redis close failed", "error", closeErr)
		}
	}()

	catalog := core.NewCatalogCache(data.NewRedisCacheRepo(redisClient), core.DefaultCatalogCacheConfig())
	for _, resource := range resources {
		if invErr := catalog.Invalidate(ctx, resource); invErr != nil {
			return fmt.Errorf("bump %s: %w", resource, invErr)
		}
		cmdCtx.Logger.Info("catalog version bumped", "resource", resource)
	}

	return nil
}

func catalogResources() []string {
	return []string{
		service.CatalogBranches,
		service.CatalogCourses,
		service.CatalogFaculty,
		service.CatalogOutstandingStudents,
		service.CatalogEvents,
		service.CatalogTestimonials,
	}
}

func isKnownCatalogResource(resource string, known []string) bool {
	for _, candidate := range known {
		if candidate == resource {
			return true
		}
	}
	return false
}

//nolint:ireturn // returning redis.UniversalClient keeps sentinel/cluster support flexible.
func requireRedis(cmdCtx *commandContext) (redis.UniversalClient, error) {
	_, redisClient, err := connectInfraWithOptions(&connectInfraOptions{
		Logger:    cmdCtx.Logger,
		Config:    &cmdCtx.Config,
		WantDB:    false,
		WantRedis: true,
	})
	if err != nil {
		return nil, err
	}
	if redisClient == nil {
		return nil, errors.New("redis configuration is required for this command")
	}
	return redisClient, nil
}

func collectSessions(
	ctx context.Context,
	client redis.UniversalClient,
	logger *slog.Logger,
	opts listSessionsOptions,
) ([]sessionEntry, int, error) {
	iter := client.Scan(ctx, 0, sessionKeyPrefix+"*", defaultRedisScanCount).Iterator()

	var entries []sessionEntry
	scanned := 0
	for iter.Next(ctx) {
		key := iter.Val()
		scanned++

		raw, err := client.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			continue // expired between scan and get
		}
		if err != nil {
			return nil, scanned, fmt.Errorf("redis get %s: %w", key, err)
		}

		var sess domainauth.Session
		if unmarshalErr := json.Unmarshal([]byte(raw), &sess); unmarshalErr != nil {
			if logger != nil {
				logger.Warn("skipping undecodable session", "key", key, "error", unmarshalErr)
			}
			continue
		}

		if opts.Email != "" && !strings.EqualFold(sess.User.Email, opts.Email) {
			continue
		}

		entry := sessionEntry{Key: key, Session: sess}
		if ttl, ttlErr := client.TTL(ctx, key).Result(); ttlErr == nil {
			entry.TTL = ttl
		}
		entries = append(entries, entry)

		if opts.Limit > 0 && len(entries) >= opts.Limit {
			break
		}
	}
	if err := iter.Err(); err != nil {
		return nil, scanned, fmt.Errorf("redis scan: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Session.ExpiresAt.Before(entries[j].Session.ExpiresAt)
	})

	return entries, scanned, nil
}

func renderSessions(entries []sessionEntry, scanned int, opts listSessionsOptions) error {
	if err := writef(os.Stdout, "Active sessions: %d", len(entries)); err != nil {
		return fmt.Errorf("write session count: %w", err)
	}
	if opts.Email != "" {
		if err := writef(os.Stdout, " (filtered by email %q, %d keys scanned)", opts.Email, scanned); err != nil {
			return fmt.Errorf("write session filter info: %w", err)
		}
	}
	if err := writeln(os.Stdout); err != nil {
		return fmt.Errorf("write session header newline: %w", err)
	}

	if len(entries) == 0 {
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writeln(w, "SESSION\tEMAIL\tROLE\tEXPIRES\tTTL"); err != nil {
		return fmt.Errorf("write session table header: %w", err)
	}
	for _, entry := range entries {
		if err := writef(w, "%s\t%s\t%s\t%s\t%s\n",
			shortSessionID(entry.Session.ID),
			entry.Session.User.Email,
			entry.Session.Role,
			entry.Session.ExpiresAt.UTC().Format(time.RFC3339),
			entry.TTL,
		); err != nil {
			return fmt.Errorf("write session row: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush session table: %w", err)
	}
	return nil
}

// shortSessionID truncates a session ID for display; full IDs are credentials
// and stay out of terminal scrollback.
func shortSessionID(id string) string {
	const visible = 8
	if len(id) <= visible {
		return id
	}
	return id[:visible] + "…"
}

type clearSessionsConfirmOptions struct {
	opts clearSessionsOptions
}

func (c clearSessionsConfirmOptions) IsDryRun() bool { return c.opts.DryRun }
func (c clearSessionsConfirmOptions) IsYes() bool    { return c.opts.Yes }
func (c clearSessionsConfirmOptions) GetWarning() string {
	return "WARNING: this will sign out every logged-in user."
}

func (c clearSessionsConfirmOptions) GetTarget() string {
	if c.opts.Email == "" {
		return ""
	}
	return fmt.Sprintf("account %q", c.opts.Email)
}

func parseListSessionsFlags(args []string) (listSessionsOptions, error) {
	fs := flag.NewFlagSet("list-sessions", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts listSessionsOptions
	fs.StringVar(&opts.Email, "email", "", "Only show sessions for this account email")
	fs.IntVar(&opts.Limit, "limit", 0, "Stop after this many sessions (0 = no limit)")

	if err := fs.Parse(args); err != nil {
		return listSessionsOptions{}, err
	}
	if opts.Limit < 0 {
		return listSessionsOptions{}, errors.New("--limit cannot be negative")
	}
	return opts, nil
}

func parseClearSessionsFlags(args []string) (clearSessionsOptions, error) {
	fs := flag.NewFlagSet("clear-sessions", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts clearSessionsOptions
	fs.StringVar(&opts.Email, "email", "", "Only revoke sessions for this account email")
	fs.BoolVar(&opts.All, "all", false, "Revoke every session")
	fs.BoolVar(&opts.DryRun, "dry-run", false, "Show matching sessions without deleting them")
	fs.BoolVar(&opts.Yes, "yes", false, "Skip confirmation prompt")

	if err := fs.Parse(args); err != nil {
		return clearSessionsOptions{}, err
	}
	if opts.Email == "" && !opts.All {
		return clearSessionsOptions{}, errors.New("pass --email to target one account or --all to revoke everything")
	}
	if opts.Email != "" && opts.All {
		return clearSessionsOptions{}, errors.New("--email and --all are mutually exclusive")
	}
	return opts, nil
}

func parseBumpCatalogFlags(args []string) (bumpCatalogOptions, error) {
	fs := flag.NewFlagSet("bump-catalog", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts bumpCatalogOptions
	fs.StringVar(&opts.Resource, "resource", "", "Bump a single catalog resource (default: all)")

	if err := fs.Parse(args); err != nil {
		return bumpCatalogOptions{}, err
	}
	return opts, nil
}
