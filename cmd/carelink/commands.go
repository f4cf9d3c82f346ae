// cmd/carelink/commands.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/HamdySalah/carelink/internal/api"
	"github.com/HamdySalah/carelink/internal/model"
	"github.com/HamdySalah/carelink/internal/retry"
)

// ------- validators -------

var reEmail = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func validEmail(s string) bool { return reEmail.MatchString(s) }

func validRating(n int) bool { return n >= 1 && n <= 5 }

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func mustUUID(s, name string) uuid.UUID {
	id, err := uuid.FromString(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad %s: %q is not a uuid\n", name, s)
		os.Exit(1)
	}
	return id
}

// ------- commands -------

// cmdRegister signs up a patient or a nurse account from flags.
func cmdRegister(ctx context.Context, cli *api.Client, args []string) {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email")
	pass := fs.String("password", "", "password")
	phone := fs.String("phone", "", "phone")
	role := fs.String("role", "patient", "patient|nurse")
	licence := fs.String("licence", "", "nurse licence number")
	years := fs.Int("years", 0, "years of experience")
	spec := fs.String("specialties", "", "comma-separated specialties")
	rate := fs.Float64("rate", 0, "hourly rate")
	lat := fs.Float64("lat", 0, "latitude")
	lng := fs.Float64("lng", 0, "longitude")
	_ = fs.Parse(args)

	if *name == "" || !validEmail(*email) || *pass == "" {
		fmt.Fprintln(os.Stderr, "need -name, a valid -email and -password")
		os.Exit(1)
	}
	in := api.RegisterInput{
		Name:     *name,
		Email:    *email,
		Password: *pass,
		Phone:    *phone,
		Role:     model.Role(*role),
	}
	switch in.Role {
	case model.RolePatient:
	case model.RoleNurse:
		if *licence == "" {
			fmt.Fprintln(os.Stderr, "nurse accounts need -licence")
			os.Exit(1)
		}
		in.LicenceNumber = *licence
		in.YearsExperience = *years
		in.Specialties = splitList(*spec)
		in.HourlyRate = *rate
		in.Location = &model.Location{Lat: *lat, Lng: *lng}
	default:
		fmt.Fprintln(os.Stderr, "-role must be patient or nurse")
		os.Exit(1)
	}

	u, err := cli.Register(ctx, in)
	if err != nil {
		fail(err)
	}
	fmt.Println(u.ID)
}

// cmdRequestCreate posts a care request (patients only).
func cmdRequestCreate(ctx context.Context, cli *api.Client, args []string) {
	guard(model.RolePatient)

	fs := flag.NewFlagSet("request-create", flag.ExitOnError)
	title := fs.String("title", "", "short title")
	details := fs.String("details", "", "free-text details")
	address := fs.String("address", "", "street address")
	lat := fs.Float64("lat", 0, "latitude")
	lng := fs.Float64("lng", 0, "longitude")
	at := fs.String("at", "", "scheduled time (RFC3339)")
	hours := fs.Int("hours", 1, "expected duration")
	budget := fs.Float64("budget", 0, "offered total (0 = negotiable)")
	_ = fs.Parse(args)

	if *title == "" || *address == "" || *at == "" {
		fmt.Fprintln(os.Stderr, "need -title, -address and -at")
		os.Exit(1)
	}
	when, err := time.Parse(time.RFC3339, *at)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad -at: %v\n", err)
		os.Exit(1)
	}

	r, err := cli.CreateRequest(ctx, api.CreateRequestInput{
		Title:       *title,
		Details:     *details,
		Address:     *address,
		Location:    model.Location{Lat: *lat, Lng: *lng},
		ScheduledAt: when,
		Hours:       *hours,
		Budget:      *budget,
	})
	if err != nil {
		fail(err)
	}
	printJSON(r)
}

// cmdRequests lists requests, retrying transient failures.
func cmdRequests(ctx context.Context, cli *api.Client, args []string) {
	fs := flag.NewFlagSet("requests", flag.ExitOnError)
	mine := fs.Bool("mine", false, "only my requests")
	status := fs.String("status", "", "filter by status")
	_ = fs.Parse(args)

	var out []model.CareRequest
	err := retry.Do(ctx, func(ctx context.Context) error {
		var err error
		out, err = cli.Requests(ctx, api.RequestFilter{
			Mine:   *mine,
			Status: model.RequestStatus(*status),
		})
		return err
	})
	if err != nil {
		fail(err)
	}
	printJSON(out)
}

// cmdRequestAction runs cancel/complete style single-id commands.
func cmdRequestAction(ctx context.Context, cli *api.Client, args []string, name string,
	action func(context.Context, uuid.UUID) (*model.CareRequest, error),
) {
	guard(model.RolePatient)

	fs := flag.NewFlagSet(name, flag.ExitOnError)
	id := fs.String("id", "", "request id (uuid)")
	_ = fs.Parse(args)
	if *id == "" {
		fmt.Fprintln(os.Stderr, "need -id")
		os.Exit(1)
	}

	r, err := action(ctx, mustUUID(*id, "id"))
	if err != nil {
		fail(err)
	}
	printJSON(r)
}

// cmdApply submits a nurse's offer on an open request.
func cmdApply(ctx context.Context, cli *api.Client, args []string) {
	guard(model.RoleNurse)

	fs := flag.NewFlagSet("apply", flag.ExitOnError)
	id := fs.String("id", "", "request id (uuid)")
	price := fs.Float64("price", 0, "offered price")
	message := fs.String("message", "", "note to the patient")
	_ = fs.Parse(args)
	if *id == "" || *price <= 0 {
		fmt.Fprintln(os.Stderr, "need -id and a positive -price")
		os.Exit(1)
	}

	a, err := cli.Apply(ctx, mustUUID(*id, "id"), api.ApplyInput{Price: *price, Message: *message})
	if err != nil {
		fail(err)
	}
	printJSON(a)
}

// cmdApplications lists offers on one of the caller's requests.
func cmdApplications(ctx context.Context, cli *api.Client, args []string) {
	guard(model.RolePatient)

	fs := flag.NewFlagSet("applications", flag.ExitOnError)
	id := fs.String("id", "", "request id (uuid)")
	_ = fs.Parse(args)
	if *id == "" {
		fmt.Fprintln(os.Stderr, "need -id")
		os.Exit(1)
	}

	out, err := cli.Applications(ctx, mustUUID(*id, "id"))
	if err != nil {
		fail(err)
	}
	printJSON(out)
}

// cmdAccept accepts one application on a request.
func cmdAccept(ctx context.Context, cli *api.Client, args []string) {
	guard(model.RolePatient)

	fs := flag.NewFlagSet("accept", flag.ExitOnError)
	id := fs.String("id", "", "application id (uuid)")
	_ = fs.Parse(args)
	if *id == "" {
		fmt.Fprintln(os.Stderr, "need -id")
		os.Exit(1)
	}

	a, err := cli.AcceptApplication(ctx, mustUUID(*id, "id"))
	if err != nil {
		fail(err)
	}
	printJSON(a)
}

// cmdReview rates the other side of a completed request.
func cmdReview(ctx context.Context, cli *api.Client, args []string) {
	guard(model.RolePatient, model.RoleNurse)

	fs := flag.NewFlagSet("review", flag.ExitOnError)
	request := fs.String("request", "", "request id (uuid)")
	rating := fs.Int("rating", 0, "rating 1..5")
	comment := fs.String("comment", "", "comment")
	_ = fs.Parse(args)
	if *request == "" || !validRating(*rating) {
		fmt.Fprintln(os.Stderr, "need -request and -rating between 1 and 5")
		os.Exit(1)
	}

	r, err := cli.SubmitReview(ctx, api.ReviewInput{
		RequestID: mustUUID(*request, "request"),
		Rating:    *rating,
		Comment:   *comment,
	})
	if err != nil {
		fail(err)
	}
	printJSON(r)
}

// cmdReviews lists the reviews on a request, retrying transient failures.
func cmdReviews(ctx context.Context, cli *api.Client, args []string) {
	fs := flag.NewFlagSet("reviews", flag.ExitOnError)
	request := fs.String("request", "", "request id (uuid)")
	_ = fs.Parse(args)
	if *request == "" {
		fmt.Fprintln(os.Stderr, "need -request")
		os.Exit(1)
	}
	id := mustUUID(*request, "request")

	var out []model.Review
	err := retry.Do(ctx, func(ctx context.Context) error {
		var err error
		out, err = cli.RequestReviews(ctx, id)
		return err
	})
	if err != nil {
		fail(err)
	}
	printJSON(out)
}

// cmdNearby searches approved nurses around a point.
func cmdNearby(ctx context.Context, cli *api.Client, args []string) {
	fs := flag.NewFlagSet("nearby", flag.ExitOnError)
	lat := fs.Float64("lat", 0, "latitude")
	lng := fs.Float64("lng", 0, "longitude")
	radius := fs.Float64("radius", 10, "radius in km")
	_ = fs.Parse(args)

	var out []model.NurseProfile
	err := retry.Do(ctx, func(ctx context.Context) error {
		var err error
		out, err = cli.NearbyNurses(ctx, *lat, *lng, *radius)
		return err
	})
	if err != nil {
		fail(err)
	}
	printJSON(out)
}
