package main

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/Sky-walkerX/Examcell/core/result"
)

func (cli *commandLine) results(ctx context.Context, args []string) error {
	fs := cli.flagSet("results")
	studentID := fs.String("student", "", "Only the results of this student.")
	semester := fs.String("semester", "", "Only the results of this semester.")
	board := fs.Bool("board", false, "Include the student names.")
	if err := cli.parse(fs, args); err != nil {
		return err
	}

	var (
		v   interface{}
		err error
	)
	switch {
	case *studentID != "":
		v, err = cli.resultSvc.QueryByStudent(ctx, *studentID)
	case *semester != "":
		v, err = cli.resultSvc.QueryBySemester(ctx, *semester)
	case *board:
		v, err = cli.reportSvc.ResultsBoard(ctx)
	default:
		v, err = cli.resultSvc.QueryAll(ctx)
	}
	if err != nil {
		return err
	}
	return cli.print(v)
}

func (cli *commandLine) myResults(ctx context.Context, args []string) error {
	if err := cli.parse(cli.flagSet("myresults"), args); err != nil {
		return err
	}
	sess, err := cli.authSvc.Current(ctx)
	if err != nil {
		return err
	}
	if !sess.IsStudent() {
		return errors.Errorf("myresults is only available to students, you are logged in as %s", sess.Role)
	}

	overview, err := cli.reportSvc.StudentOverview(ctx, sess.ID)
	if err != nil {
		return err
	}
	return cli.print(overview)
}

func (cli *commandLine) overview(ctx context.Context, args []string) error {
	fs := cli.flagSet("overview")
	studentID := fs.String("student", "", "The student ID.")
	if err := cli.parse(fs, args); err != nil {
		return err
	}
	if err := requireFlags(fs, *studentID); err != nil {
		return err
	}

	overview, err := cli.reportSvc.StudentOverview(ctx, *studentID)
	if err != nil {
		return err
	}
	return cli.print(overview)
}

func (cli *commandLine) addResult(ctx context.Context, args []string) error {
	fs := cli.flagSet("addresult")
	studentID := fs.String("student", "", "The student ID.")
	semester := fs.String("semester", "", "The semester, e.g. \"Fall 2024\".")
	code := fs.String("code", "", "The subject code.")
	name := fs.String("name", "", "The subject name; defaults to the code.")
	marks := fs.Float64("marks", 0, "Marks between 0 and 100.")
	grade := fs.String("grade", "", "The grade.")
	if err := cli.parse(fs, args); err != nil {
		return err
	}
	if err := requireFlags(fs, *studentID, *semester, *code, *grade); err != nil {
		return err
	}

	res, err := cli.resultSvc.Create(ctx, result.NewResult{
		StudentID:   *studentID,
		Semester:    *semester,
		SubjectCode: *code,
		SubjectName: *name,
		Marks:       *marks,
		Grade:       *grade,
	})
	if err != nil {
		return err
	}
	return cli.print(res)
}

// parseRow parses CODE:MARKS:GRADE[:NAME].
func parseRow(arg string) result.Row {
	parts := strings.SplitN(arg, ":", 4)
	for len(parts) < 4 {
		parts = append(parts, "")
	}
	return result.Row{SubjectCode: parts[0], Marks: parts[1], Grade: parts[2], SubjectName: parts[3]}
}

func (cli *commandLine) addResults(ctx context.Context, args []string) error {
	fs := cli.flagSet("addresults")
	studentID := fs.String("student", "", "The student ID.")
	semester := fs.String("semester", "", "The semester, e.g. \"Fall 2024\".")
	if err := cli.parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errHelp
	}

	rows := make([]result.Row, fs.NArg())
	for i, arg := range fs.Args() {
		rows[i] = parseRow(arg)
	}
	report, err := cli.resultSvc.CreateMany(ctx, *studentID, *semester, rows)
	if err != nil {
		return err
	}
	if len(report.Errors) > 0 {
		cli.logger.Warn(report.Summary())
	}
	return cli.print(report)
}

func (cli *commandLine) updateResult(ctx context.Context, args []string) error {
	fs := cli.flagSet("updateresult")
	id := fs.Int64("id", 0, "The result ID.")
	marks := fs.Float64("marks", 0, "Marks between 0 and 100.")
	grade := fs.String("grade", "", "The grade.")
	if err := cli.parse(fs, args); err != nil {
		return err
	}
	if *id == 0 {
		fs.Usage()
		return errHelp
	}

	res, err := cli.resultSvc.Update(ctx, *id, result.UpdateResult{Marks: *marks, Grade: *grade})
	if err != nil {
		return err
	}
	return cli.print(res)
}

func (cli *commandLine) deleteResult(ctx context.Context, args []string) error {
	fs := cli.flagSet("deleteresult")
	id := fs.Int64("id", 0, "The result ID.")
	if err := cli.parse(fs, args); err != nil {
		return err
	}
	if *id == 0 {
		fs.Usage()
		return errHelp
	}

	if err := cli.resultSvc.Delete(ctx, *id); err != nil {
		return err
	}
	cli.printf("Deleted result %d", *id)
	return nil
}
