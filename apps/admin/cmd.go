package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/term"

	"github.com/Sky-walkerX/Examcell/core"
	"github.com/Sky-walkerX/Examcell/core/auth"
	"github.com/Sky-walkerX/Examcell/core/report"
	"github.com/Sky-walkerX/Examcell/core/result"
	"github.com/Sky-walkerX/Examcell/core/student"
	"github.com/Sky-walkerX/Examcell/core/subject"
	"github.com/Sky-walkerX/Examcell/core/upload"
	apisvc "github.com/Sky-walkerX/Examcell/services/api"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type command struct {
	name  string
	usage string
	run   func(cli *commandLine, ctx context.Context, args []string) error
}

var commands = []command{
	{"login", "login -email EMAIL [-role admin|student] - log in; the password is prompted", (*commandLine).login},
	{"logout", "logout - forget the current session", (*commandLine).logout},
	{"whoami", "whoami - show the logged in user", (*commandLine).whoami},
	{"students", "students - list all students", (*commandLine).students},
	{"student", "student -id ID - show a student", (*commandLine).student},
	{"addstudent", "addstudent -id ID -name NAME -email EMAIL -department DEPT -year N [-image URL]", (*commandLine).addStudent},
	{"updatestudent", "updatestudent -id ID [-name] [-email] [-department] [-year] [-status Active|Inactive] [-image]", (*commandLine).updateStudent},
	{"deletestudent", "deletestudent -id ID", (*commandLine).deleteStudent},
	{"results", "results [-student ID | -semester SEMESTER | -board] - list results", (*commandLine).results},
	{"myresults", "myresults - show the logged in student's results", (*commandLine).myResults},
	{"overview", "overview -student ID - show a student along with their results", (*commandLine).overview},
	{"addresult", "addresult -student ID -semester SEMESTER -code CODE [-name NAME] -marks N -grade GRADE", (*commandLine).addResult},
	{"addresults", "addresults -student ID -semester SEMESTER CODE:MARKS:GRADE[:NAME]... - enter several results", (*commandLine).addResults},
	{"updateresult", "updateresult -id ID -marks N -grade GRADE", (*commandLine).updateResult},
	{"deleteresult", "deleteresult -id ID", (*commandLine).deleteResult},
	{"subjects", "subjects - list all subjects", (*commandLine).subjects},
	{"subject", "subject -code CODE - show a subject", (*commandLine).subject},
	{"addsubject", "addsubject -code CODE -name NAME -department DEPT [-credits N]", (*commandLine).addSubject},
	{"updatesubject", "updatesubject -code CODE [-name] [-department] [-credits]", (*commandLine).updateSubject},
	{"deletesubject", "deletesubject -code CODE", (*commandLine).deleteSubject},
	{"uploads", "uploads [-limit N] - list recent uploads", (*commandLine).uploads},
	{"uploadcsv", "uploadcsv -semester SEMESTER -file PATH [-type TYPE] - upload a results CSV", (*commandLine).uploadCSV},
	{"analytics", "analytics - show the admin dashboard statistics", (*commandLine).analytics},
	{"report", "report -semester SEMESTER [-out PATH] - fetch the HTML report of a semester", (*commandLine).report},
}

type commandLine struct {
	out    io.Writer
	errOut io.Writer
	output string
	logger core.Logger

	// client metrics; only collected in debug mode
	registry *prometheus.Registry

	authSvc    *auth.Service
	studentSvc *student.Service
	resultSvc  *result.Service
	subjectSvc *subject.Service
	uploadSvc  *upload.Service
	reportSvc  *report.Service
}

// newCommandLine wires the services on top of an API client whose token comes from store,
// unless a static token is configured.
func newCommandLine(conf *core.Config, logger core.Logger, store auth.Store, out, errOut io.Writer) (*commandLine, error) {
	var tokens apisvc.TokenProvider = auth.NewTokenSource(store)
	if conf.API.Token != "" {
		tokens = apisvc.StaticToken(conf.API.Token)
	}

	opts := &apisvc.Options{
		BaseURL: conf.API.URL,
		Tokens:  tokens,
		Logger:  logger,
		Timeout: conf.API.Timeout,
	}
	var registry *prometheus.Registry
	if conf.Debug {
		registry = prometheus.NewRegistry()
		opts.Registerer = registry
	}
	client, err := apisvc.NewClient(opts)
	if err != nil {
		return nil, err
	}

	validate, translator := core.NewValidator()
	return &commandLine{
		out:        out,
		errOut:     errOut,
		output:     conf.Output,
		logger:     logger,
		registry:   registry,
		authSvc:    auth.NewService(client, store, validate, translator),
		studentSvc: student.NewService(client, validate, translator),
		resultSvc:  result.NewService(client, validate, translator),
		subjectSvc: subject.NewService(client, validate, translator),
		uploadSvc:  upload.NewService(client, validate, translator),
		reportSvc:  report.NewService(client, client, client),
	}, nil
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.errOut, "Usage:")
	for _, cmd := range commands {
		fmt.Fprintf(cli.errOut, "  %s\n", cmd.usage)
	}
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	for _, cmd := range commands {
		if cmd.name == args[1] {
			return cmd.run(cli, ctx, args[2:])
		}
	}

	fmt.Fprintf(cli.errOut, "unknown command %q\n", args[1])
	if names := suggest(args[1]); len(names) > 0 {
		fmt.Fprintf(cli.errOut, "did you mean: %s?\n\n", strings.Join(names, ", "))
	}
	cli.printUsage()
	return errHelp
}

// flagSet returns a FlagSet that reports to the CLI error output instead of exiting.
func (cli *commandLine) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.errOut)
	return fs
}

func (cli *commandLine) parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return errHelp
		}
		return err
	}
	return nil
}

// requireFlags prints the usage of fs when any of vals is blank.
func requireFlags(fs *flag.FlagSet, vals ...string) error {
	for _, val := range vals {
		if strings.TrimSpace(val) == "" {
			fs.Usage()
			return errHelp
		}
	}
	return nil
}

// visited returns the names of the flags that were set on the command line.
func visited(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

func readPassword(cli *commandLine) (string, error) {
	fmt.Fprint(cli.errOut, "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.errOut)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

func commandNames() []string {
	names := make([]string, len(commands))
	for i, cmd := range commands {
		names[i] = cmd.name
	}
	sort.Strings(names)
	return names
}
