package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-auth-client/adminapi"
	"github.com/jrsteele09/go-auth-client/authapi"
	"github.com/jrsteele09/go-auth-client/client"
	"github.com/jrsteele09/go-auth-client/credentials"
	"github.com/jrsteele09/go-auth-client/internal/config"
	"github.com/jrsteele09/go-auth-client/internal/utils"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("Error: %s\n", err)
	}
}

func run(args []string) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()

	if len(args) == 0 {
		displayAppname(c.GetAppName())
		usage()
		return errors.New("command required")
	}

	logger := newLogger(c)

	store, err := newStore(c)
	if err != nil {
		return err
	}

	api, err := client.New(c.GetAuthBaseURL(), store,
		client.WithTimeout(c.GetHTTPTimeout()),
		client.WithClientIdentity(c.GetClientVersion(), c.GetClientPlatform()),
		client.WithLogger(logger),
		client.WithSessionExpiredFunc(func() {
			logger.Warn().Msg("session expired, please sign in again")
		}),
	)
	if err != nil {
		return err
	}

	authService, err := authapi.NewService(api, store, authapi.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	switch args[0] {
	case "signin":
		return signIn(ctx, authService, args[1:])
	case "signout":
		return signOut(ctx, authService)
	case "whoami":
		return whoAmI(ctx, authService)
	case "admin-health":
		return adminHealth(ctx, c, store, logger)
	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func signIn(ctx context.Context, svc *authapi.Service, args []string) error {
	fs := flag.NewFlagSet("signin", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	data, err := svc.SignIn(ctx, authapi.SignInInput{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	if data.User != nil {
		fmt.Printf("Signed in as %s (%s)\n", data.User.FullName, data.User.Email)
	} else {
		fmt.Println("Signed in")
	}
	return nil
}

func signOut(ctx context.Context, svc *authapi.Service) error {
	if err := svc.SignOut(ctx); err != nil {
		return err
	}
	fmt.Println("Signed out")
	return nil
}

func whoAmI(ctx context.Context, svc *authapi.Service) error {
	profile, err := svc.Profile(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s> active=%t\n", profile.Username, profile.Email, profile.Active)
	if name := utils.Value(profile.FirstName) + " " + utils.Value(profile.LastName); name != " " {
		fmt.Printf("Name: %s\n", name)
	}
	return nil
}

func adminHealth(ctx context.Context, c config.Config, store credentials.Store, logger zerolog.Logger) error {
	api, err := client.New(c.GetAdminBaseURL(), store,
		client.WithTimeout(c.GetHTTPTimeout()),
		client.WithClientIdentity(c.GetClientVersion(), c.GetClientPlatform()),
		client.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	adminService, err := adminapi.NewService(api, c.GetAdminKey())
	if err != nil {
		return err
	}

	snapshots, err := adminService.LatestHealthSnapshots(ctx, 5)
	if err != nil {
		return err
	}

	fmt.Printf("Latest %d health snapshots:\n", snapshots.Count)
	for _, s := range snapshots.Snapshots {
		fmt.Printf("  %s  db=%s redis=%s crypto=%s\n",
			s.Timestamp.Format("2006-01-02 15:04:05"), s.DBStatus, s.RedisStatus, s.CryptoStatus)
	}
	return nil
}

func newStore(c config.Config) (credentials.Store, error) {
	if passphrase := c.GetCredentialsPassphrase(); passphrase != "" {
		return credentials.NewEncryptedFileStore(c.GetCredentialsFile(), passphrase)
	}
	return credentials.NewFileStore(c.GetCredentialsFile())
}

func newLogger(c config.Config) zerolog.Logger {
	level := zerolog.InfoLevel
	if c.GetEnv() == "DEV" {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}

func usage() {
	fmt.Println("Usage: authcli <command> [flags]")
	fmt.Println("Commands:")
	fmt.Println("  signin -email <email> -password <password>")
	fmt.Println("  signout")
	fmt.Println("  whoami")
	fmt.Println("  admin-health")
}
