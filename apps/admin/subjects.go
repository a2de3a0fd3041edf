package main

import (
	"context"

	"github.com/Sky-walkerX/Examcell/core/subject"
)

func (cli *commandLine) subjects(ctx context.Context, args []string) error {
	if err := cli.parse(cli.flagSet("subjects"), args); err != nil {
		return err
	}
	subjects, err := cli.subjectSvc.QueryAll(ctx)
	if err != nil {
		return err
	}
	return cli.print(subjects)
}

func (cli *commandLine) subject(ctx context.Context, args []string) error {
	fs := cli.flagSet("subject")
	code := fs.String("code", "", "The subject code.")
	if err := cli.parse(fs, args); err != nil {
		return err
	}
	if err := requireFlags(fs, *code); err != nil {
		return err
	}

	sub, err := cli.subjectSvc.GetByCode(ctx, *code)
	if err != nil {
		return err
	}
	return cli.print(sub)
}

func (cli *commandLine) addSubject(ctx context.Context, args []string) error {
	fs := cli.flagSet("addsubject")
	code := fs.String("code", "", "The subject code.")
	name := fs.String("name", "", "The subject name.")
	dept := fs.String("department", "", "Department.")
	credits := fs.Int("credits", 0, "Credits.")
	if err := cli.parse(fs, args); err != nil {
		return err
	}
	if err := requireFlags(fs, *code, *name, *dept); err != nil {
		return err
	}

	sub, err := cli.subjectSvc.Create(ctx, subject.NewSubject{Code: *code, Name: *name, Department: *dept, Credits: *credits})
	if err != nil {
		return err
	}
	return cli.print(sub)
}

func (cli *commandLine) updateSubject(ctx context.Context, args []string) error {
	fs := cli.flagSet("updatesubject")
	code := fs.String("code", "", "The subject code.")
	name := fs.String("name", "", "The subject name.")
	dept := fs.String("department", "", "Department.")
	credits := fs.Int("credits", 0, "Credits.")
	if err := cli.parse(fs, args); err != nil {
		return err
	}
	if err := requireFlags(fs, *code); err != nil {
		return err
	}

	var us subject.UpdateSubject
	set := visited(fs)
	if set["name"] {
		us.Name = name
	}
	if set["department"] {
		us.Department = dept
	}
	if set["credits"] {
		us.Credits = credits
	}

	sub, err := cli.subjectSvc.Update(ctx, *code, us)
	if err != nil {
		return err
	}
	return cli.print(sub)
}

func (cli *commandLine) deleteSubject(ctx context.Context, args []string) error {
	fs := cli.flagSet("deletesubject")
	code := fs.String("code", "", "The subject code.")
	if err := cli.parse(fs, args); err != nil {
		return err
	}
	if err := requireFlags(fs, *code); err != nil {
		return err
	}

	if err := cli.subjectSvc.Delete(ctx, *code); err != nil {
		return err
	}
	cli.printf("Deleted subject %s", *code)
	return nil
}
