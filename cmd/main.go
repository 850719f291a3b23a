package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dtroode/idm-okta/internal/config"
	"github.com/dtroode/idm-okta/internal/dao/okta"
	"github.com/dtroode/idm-okta/internal/dao/okta/listener"
	"github.com/dtroode/idm-okta/internal/logger"
	"github.com/dtroode/idm-okta/internal/model"
	oktaprovider "github.com/dtroode/idm-okta/internal/provider/okta"
	"github.com/dtroode/idm-okta/internal/query"
	"github.com/dtroode/idm-okta/internal/repository/postgres"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const usage = `usage: idm-okta <command> [args]

commands:
  find-email <email>       look a user up by email, deactivated included
  find-guid <guid>         look a user up by the key guid, deactivated included
  find-okta-id <id>        look a user up by Okta user id
  search <last name>       stream users whose last name starts with the argument
  groups [base]            list groups at or below base
  deactivate <guid>        deactivate a user
  reactivate <guid>        reactivate a user
  version                  print build information
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if os.Args[1] == "version" {
		logAppVersion()
		return
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	provider, err := oktaprovider.NewClient(ctx, cfg.Okta.OrgURL, cfg.Okta.APIToken, cfg.Okta.PageSize)
	if err != nil {
		logger.Fatal("failed to initialize okta client", "error", err)
	}

	var listeners []model.UserListener
	if cfg.Fallback.Enabled {
		db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			logger.Fatal("failed to initialize fallback store", "error", err)
		}
		defer db.Close()

		fallback := listener.NewFallback(postgres.NewUserRepository(db), logger.With("component", "Fallback"))
		listeners = append(listeners, fallback)
	}

	dao := okta.NewUserDao(provider, logger.With("component", "UserDao"), okta.Options{
		MaxSearchResults: cfg.Okta.MaxSearchResults,
		InitialGroups:    cfg.Okta.InitialGroups,
		LoadGroups:       cfg.Okta.LoadGroups,
		ReadOnly:         cfg.Okta.ReadOnly,
	}, listeners...)

	cmdCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	if err := run(cmdCtx, dao, os.Args[1], os.Args[2:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		logger.Fatal("command failed", "command", os.Args[1], "error", err)
	}
}

var errUsage = errors.New("invalid usage")

func run(ctx context.Context, dao *okta.UserDao, cmd string, args []string) error {
	arg := func() (string, error) {
		if len(args) != 1 {
			return "", errUsage
		}
		return args[0], nil
	}
	guidArg := func() (string, error) {
		guid, err := arg()
		if err != nil {
			return "", err
		}
		if !model.ValidGUID(guid) {
			return "", fmt.Errorf("invalid guid %q", guid)
		}
		return guid, nil
	}

	switch cmd {
	case "find-email":
		email, err := arg()
		if err != nil {
			return err
		}
		user, err := dao.FindByEmail(ctx, email, true)
		if err != nil {
			return err
		}
		return printJSON(toUserView(user))

	case "find-guid":
		guid, err := guidArg()
		if err != nil {
			return err
		}
		user, err := dao.FindByTheKeyGUID(ctx, guid, true)
		if err != nil {
			return err
		}
		return printJSON(toUserView(user))

	case "find-okta-id":
		id, err := arg()
		if err != nil {
			return err
		}
		user, err := dao.FindByOktaUserID(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(toUserView(user))

	case "search":
		prefix, err := arg()
		if err != nil {
			return err
		}
		users, err := dao.StreamUsers(ctx, query.Sw(query.AttrLastName, prefix), false, true)
		if err != nil {
			return err
		}
		for user, err := range users {
			if err != nil {
				return err
			}
			if err := printJSON(toUserView(user)); err != nil {
				return err
			}
		}
		return nil

	case "groups":
		if len(args) > 1 {
			return errUsage
		}
		var base string
		if len(args) == 1 {
			base = args[0]
		}
		groups, err := dao.GetAllGroups(ctx, base)
		if err != nil {
			return err
		}
		for _, g := range groups {
			if err := printJSON(g); err != nil {
				return err
			}
		}
		return nil

	case "deactivate", "reactivate":
		guid, err := guidArg()
		if err != nil {
			return err
		}
		user, err := dao.FindByTheKeyGUID(ctx, guid, true)
		if err != nil {
			return err
		}
		if cmd == "deactivate" {
			return dao.Deactivate(ctx, user)
		}
		return dao.Reactivate(ctx, user)
	}

	return errUsage
}

// userView is the printable subset of a user; secrets are left out.
type userView struct {
	TheKeyGUID  string     `json:"theKeyGuid"`
	RelayGUID   string     `json:"relayGuid"`
	OktaUserID  string     `json:"oktaUserId"`
	Email       string     `json:"email"`
	Deactivated bool       `json:"deactivated"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Groups      []string   `json:"groups,omitempty"`
	LoginTime   *time.Time `json:"loginTime,omitempty"`
}

func toUserView(u *model.User) userView {
	v := userView{
		TheKeyGUID:  u.TheKeyGUID,
		RelayGUID:   u.RelayGUID,
		OktaUserID:  u.OktaUserID,
		Email:       u.Email,
		Deactivated: u.Deactivated,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		LoginTime:   u.LoginTime,
	}
	for _, g := range u.Groups {
		v.Groups = append(v.Groups, g.Name())
	}
	return v
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
