package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/Sky-walkerX/Examcell/core"
	apisvc "github.com/Sky-walkerX/Examcell/services/api"
	logsvc "github.com/Sky-walkerX/Examcell/services/logger"
	sessionstore "github.com/Sky-walkerX/Examcell/storage/session"
)

func main() {
	std := log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig()
	if err != nil {
		std.Fatal(err)
	}
	logger := logsvc.NewRollbarLogger(std, conf)

	cli, err := newCommandLine(conf, logger, sessionstore.NewFileStore(conf.Session.File), os.Stdout, os.Stderr)
	if err != nil {
		logger.Fatal("setting up the command line", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = cli.run(ctx, os.Args)
	cli.logMetrics()
	if err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "\nerror: %s\n", describe(err))
		}
		stop()
		os.Exit(1)
	}
}

// describe adds the field errors returned by the API to the message of err.
func describe(err error) string {
	var herr *apisvc.HTTPError
	if !errors.As(err, &herr) || len(herr.FieldErrors) == 0 {
		return err.Error()
	}

	fields := make([]string, 0, len(herr.FieldErrors))
	for field := range herr.FieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var sb strings.Builder
	sb.WriteString(err.Error())
	for _, field := range fields {
		fmt.Fprintf(&sb, "\n  %s: %s", field, herr.FieldErrors[field])
	}
	return sb.String()
}
