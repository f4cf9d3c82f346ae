// Command carelink is a CLI client for the CareLink home-nursing marketplace.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/HamdySalah/carelink/internal/api"
	"github.com/HamdySalah/carelink/internal/errs"
	"github.com/HamdySalah/carelink/internal/model"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func usage() {
	fmt.Fprintf(os.Stderr, `carelink CLI
Usage:
  carelink -addr URL [-timeout dur] [-v] <cmd> [args]

Commands:
  version
  register          -name -email -password -role patient|nurse [nurse flags]
  login             -email -password                 (saves session)
  logout
  whoami
  profile
  profile-update    -name <n> -phone <p>
  request-create    -title -address -lat -lng -at RFC3339 [-hours -budget -details]   (patient)
  requests          [-mine] [-status open|accepted|completed|cancelled]
  request-cancel    -id <uuid>                       (patient)
  request-complete  -id <uuid>                       (patient)
  apply             -id <uuid> -price <n> [-message] (nurse)
  applications      -id <uuid>                       (patient)
  accept            -id <application uuid>           (patient)
  review            -request <uuid> -rating 1..5 [-comment]
  reviews           -request <uuid>
  nearby            -lat -lng [-radius km]
`)
	os.Exit(2)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func fail(err error) {
	if ce, ok := classified(err); ok {
		fmt.Fprintln(os.Stderr, ce.UserMessage())
		fmt.Fprintf(os.Stderr, "(%s, status %d)\n", ce.Kind(), ce.StatusCode())
		os.Exit(1)
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

// newClient wires the API client with session storage and the error
// dispatcher used by the whole process.
func newClient(addr string, timeout time.Duration, verbose bool) *api.Client {
	log := zap.NewNop()
	if verbose {
		log, _ = zap.NewDevelopment()
	}

	// the same dispatcher serves the client and the retry helper
	d := errs.Default()
	d.Register(errs.KindTokenExpired, func(*errs.ClassifiedError) {
		fmt.Fprintln(os.Stderr, "session expired; run 'carelink login'")
	})
	d.Register(errs.KindAccountPending, func(*errs.ClassifiedError) {
		fmt.Fprintln(os.Stderr, "your account is awaiting approval")
	})

	return api.New(addr,
		api.WithTimeout(timeout),
		api.WithLogger(log),
		api.WithDispatcher(d),
		api.WithTokenSource(api.TokenFunc(loadToken)),
		api.WithUnauthorizedHook(clearSession),
	)
}

func main() {
	addr := flag.String("addr", "http://localhost:3001/api", "backend base URL")
	timeout := flag.Duration("timeout", 30*time.Second, "per-request timeout")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}
	cmd := flag.Arg(0)
	args := flag.Args()[1:]

	ctx, cancel := context.WithTimeout(context.Background(), *timeout+10*time.Second)
	defer cancel()

	cli := newClient(*addr, *timeout, *verbose)

	switch cmd {

	case "version":
		fmt.Printf("carelink %s (%s)\n", version, buildDate)

	case "register":
		cmdRegister(ctx, cli, args)

	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		email := fs.String("email", "", "email")
		pass := fs.String("password", "", "password")
		_ = fs.Parse(args)
		if *email == "" || *pass == "" {
			fmt.Fprintln(os.Stderr, "need -email and -password")
			os.Exit(1)
		}
		res, err := cli.Login(ctx, *email, *pass)
		if err != nil {
			fail(err)
		}
		if err := saveSession(res.Tokens, res.User); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "logout":
		clearSession()
		fmt.Println("ok")

	case "whoami":
		sf, err := loadSession()
		if err != nil {
			fail(err)
		}
		printJSON(sf)

	case "profile":
		u, err := cli.Profile(ctx)
		if err != nil {
			fail(err)
		}
		printJSON(u)

	case "profile-update":
		fs := flag.NewFlagSet("profile-update", flag.ExitOnError)
		name := fs.String("name", "", "display name")
		phone := fs.String("phone", "", "phone")
		_ = fs.Parse(args)
		u, err := cli.UpdateProfile(ctx, api.UpdateProfileInput{Name: *name, Phone: *phone})
		if err != nil {
			fail(err)
		}
		printJSON(u)

	case "request-create":
		cmdRequestCreate(ctx, cli, args)
	case "requests":
		cmdRequests(ctx, cli, args)
	case "request-cancel":
		cmdRequestAction(ctx, cli, args, "request-cancel", cli.CancelRequest)
	case "request-complete":
		cmdRequestAction(ctx, cli, args, "request-complete", cli.CompleteRequest)
	case "apply":
		cmdApply(ctx, cli, args)
	case "applications":
		cmdApplications(ctx, cli, args)
	case "accept":
		cmdAccept(ctx, cli, args)
	case "review":
		cmdReview(ctx, cli, args)
	case "reviews":
		cmdReviews(ctx, cli, args)
	case "nearby":
		cmdNearby(ctx, cli, args)

	default:
		usage()
	}
}

// classified reports whether err went through boundary classification.
// Local errors (flag parsing, file IO) are shown raw instead of hiding
// behind a generic user message.
func classified(err error) (*errs.ClassifiedError, bool) {
	ce := errs.Ensure(err)
	if ce == nil {
		return nil, false
	}
	if ce.Kind() == errs.KindUnknown && ce.StatusCode() == 0 && ce.Unwrap() != nil {
		return nil, false
	}
	return ce, true
}

// guard exits with the role error, shared by the restricted commands.
func guard(roles ...model.Role) {
	if err := requireRole(roles...); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
