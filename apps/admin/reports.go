package main

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/Sky-walkerX/Examcell/core/upload"
)

func (cli *commandLine) uploads(ctx context.Context, args []string) error {
	fs := cli.flagSet("uploads")
	limit := fs.Int("limit", upload.DefaultRecentLimit, "How many uploads to list.")
	if err := cli.parse(fs, args); err != nil {
		return err
	}
	uploads, err := cli.uploadSvc.Recent(ctx, *limit)
	if err != nil {
		return err
	}
	return cli.print(uploads)
}

func (cli *commandLine) uploadCSV(ctx context.Context, args []string) error {
	fs := cli.flagSet("uploadcsv")
	semester := fs.String("semester", "", "The semester the results belong to.")
	path := fs.String("file", "", "Path to the CSV file.")
	typ := fs.String("type", upload.TypeSemesterResults, "The upload type.")
	if err := cli.parse(fs, args); err != nil {
		return err
	}
	if err := requireFlags(fs, *semester, *path); err != nil {
		return err
	}

	f, err := os.Open(*path)
	if err != nil {
		return errors.Wrap(err, "opening CSV file")
	}
	defer f.Close()

	resp, err := cli.uploadSvc.UploadCSV(ctx, upload.CSVUpload{
		Semester: *semester,
		Type:     *typ,
		Filename: filepath.Base(*path),
		Content:  f,
	})
	if err != nil {
		return err
	}
	return cli.print(resp)
}

func (cli *commandLine) analytics(ctx context.Context, args []string) error {
	if err := cli.parse(cli.flagSet("analytics"), args); err != nil {
		return err
	}
	stats, err := cli.reportSvc.Analytics(ctx)
	if err != nil {
		return err
	}
	return cli.print(stats)
}

func (cli *commandLine) report(ctx context.Context, args []string) error {
	fs := cli.flagSet("report")
	semester := fs.String("semester", "", "The semester to report on.")
	out := fs.String("out", "", "Write the report to this file instead of the standard output.")
	if err := cli.parse(fs, args); err != nil {
		return err
	}
	if err := requireFlags(fs, *semester); err != nil {
		return err
	}

	page, err := cli.reportSvc.SemesterHTML(ctx, *semester)
	if err != nil {
		return err
	}
	if *out == "" {
		_, err = cli.out.Write([]byte(page))
		return err
	}
	if err := ioutil.WriteFile(*out, []byte(page), 0644); err != nil {
		return errors.Wrap(err, "writing report")
	}
	cli.printf("Report written to %s", *out)
	return nil
}
