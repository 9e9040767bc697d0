// Package main provides a CLI for building destination redirect URLs,
// validating form values and issuing session tokens without running the
// server.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"registration/internal/platform/logger"
	"registration/internal/registration/i18n"
	"registration/internal/registration/models"
	"registration/internal/registration/redirect"
	"registration/internal/registration/service"
	formvalidation "registration/internal/registration/validation"
	"registration/pkg/domain"
	"registration/pkg/platform/middleware/requesttime"
	"registration/pkg/sessiontoken"
)

// Exit codes.
const (
	exitOK      = 0
	exitUsage   = 1
	exitInvalid = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, time.Now))
}

func run(args []string, stdout, stderr io.Writer, now func() time.Time) int {
	if len(args) < 1 {
		printUsage(stderr)
		return exitUsage
	}

	switch args[0] {
	case "url":
		return runURL(args[1:], stdout, stderr, now)
	case "validate":
		return runValidate(args[1:], stdout, stderr, now)
	case "token":
		return runToken(args[1:], stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)
		return exitOK
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return exitUsage
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `regurl - Build registration redirect URLs

Usage:
  regurl <command> [flags]

Commands:
  url       Validate the form values and print the destination URL
  validate  Print the validation result as JSON
  token     Print fresh session tokens

Examples:
  regurl url -first-name דני -last-name כהן -id 123456782 \
    -birth-date 2010-07-14 -gender male -phone 0541234567

  regurl url -language en -base-url https://form.jotform.com/241234 ...

  regurl validate -id 123456789 -json=false

  regurl token -n 5

Use "regurl <command> -h" for more information about a command.`)
}

// formFlags registers the form field flags shared by url and validate.
type formFlags struct {
	firstName   *string
	lastName    *string
	nationalID  *string
	birthDate   *string
	gender      *string
	phone       *string
	countryCode *string
	language    *string
	today       *string
}

func registerFormFlags(fs *flag.FlagSet) formFlags {
	return formFlags{
		firstName:   fs.String("first-name", "", "First name"),
		lastName:    fs.String("last-name", "", "Last name"),
		nationalID:  fs.String("id", "", "National ID number (9 digits)"),
		birthDate:   fs.String("birth-date", "", "Birth date, YYYY-MM-DD"),
		gender:      fs.String("gender", "", "male or female"),
		phone:       fs.String("phone", "", "Phone number"),
		countryCode: fs.String("country-code", domain.DefaultDialCode, "Dial code"),
		language:    fs.String("language", string(domain.DefaultLanguage), "he or en"),
		today:       fs.String("today", "", "Reference date for age checks, YYYY-MM-DD (default: now)"),
	}
}

func (f formFlags) request() models.SubmissionRequest {
	req := models.SubmissionRequest{
		FirstName:   *f.firstName,
		LastName:    *f.lastName,
		IDNumber:    *f.nationalID,
		BirthDate:   *f.birthDate,
		Gender:      *f.gender,
		Phone:       *f.phone,
		CountryCode: *f.countryCode,
		Language:    *f.language,
	}
	req.Normalize()
	return req
}

// context pins the reference date used for the age checks.
func (f formFlags) context(now func() time.Time) (context.Context, error) {
	today := now()
	if *f.today != "" {
		t, err := time.Parse(time.DateOnly, *f.today)
		if err != nil {
			return nil, fmt.Errorf("invalid -today: %w", err)
		}
		today = t
	}
	return requesttime.WithTime(context.Background(), today), nil
}

func (f formFlags) lang() (domain.Language, error) {
	return domain.ParseLanguage(*f.language)
}

func runURL(args []string, stdout, stderr io.Writer, now func() time.Time) int {
	fs := flag.NewFlagSet("url", flag.ContinueOnError)
	fs.SetOutput(stderr)
	form := registerFormFlags(fs)
	baseURL := fs.String("base-url", redirect.DefaultBaseURL, "Destination form URL")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	lang, err := form.lang()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	ctx, err := form.context(now)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	builder, err := redirect.NewBuilder(*baseURL)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	catalog, err := i18n.New()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	log := logger.New(logger.Options{Level: "error", Format: "text", Output: stderr})
	svc := service.New(formvalidation.New(), sessiontoken.NewGenerator(nil), builder, log)

	req := form.request()
	result, err := svc.Submit(ctx, req.Fields(), lang)
	if err != nil {
		var fieldErrs *models.FieldErrors
		if errors.As(err, &fieldErrs) {
			printFieldErrors(stderr, catalog, lang, fieldErrs.Result)
			return exitInvalid
		}
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	fmt.Fprintln(stdout, result.RedirectURL)
	return exitOK
}

func printFieldErrors(w io.Writer, catalog *i18n.Catalog, lang domain.Language, result models.ValidationResult) {
	for _, field := range result.Fields() {
		fmt.Fprintf(w, "%s: %s\n", field, catalog.Message(lang, result[field].Key))
	}
}

type validateOutput struct {
	Valid  bool                        `json:"valid"`
	Fields map[string]validateFieldOut `json:"fields"`
}

type validateFieldOut struct {
	Kind    models.ErrorKind  `json:"kind"`
	Key     models.MessageKey `json:"key"`
	Message string            `json:"message"`
}

func runValidate(args []string, stdout, stderr io.Writer, now func() time.Time) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	form := registerFormFlags(fs)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	lang, err := form.lang()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	ctx, err := form.context(now)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	catalog, err := i18n.New()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	req := form.request()
	result := formvalidation.New().Validate(ctx, req.Fields())

	out := validateOutput{Valid: result.Valid(), Fields: make(map[string]validateFieldOut, len(result))}
	for field, fe := range result {
		out.Fields[string(field)] = validateFieldOut{
			Kind:    fe.Kind,
			Key:     fe.Key,
			Message: catalog.Message(lang, fe.Key),
		}
	}
	if err := printJSON(stdout, out); err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	if !out.Valid {
		return exitInvalid
	}
	return exitOK
}

func runToken(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	fs.SetOutput(stderr)
	n := fs.Int("n", 1, "Number of tokens")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *n < 1 {
		fmt.Fprintln(stderr, "-n must be at least 1")
		return exitUsage
	}

	source, tier := sessiontoken.SelectSource(nil)
	if tier != sessiontoken.TierStrong {
		fmt.Fprintf(stderr, "warning: using %s randomness\n", tier)
	}
	g := sessiontoken.NewGenerator(source)
	for range *n {
		fmt.Fprintln(stdout, g.Generate())
	}
	return exitOK
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
