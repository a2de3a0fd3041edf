package main

import (
	"context"

	"github.com/Sky-walkerX/Examcell/core/student"
)

func (cli *commandLine) students(ctx context.Context, args []string) error {
	if err := cli.parse(cli.flagSet("students"), args); err != nil {
		return err
	}
	students, err := cli.studentSvc.QueryAll(ctx)
	if err != nil {
		return err
	}
	return cli.print(students)
}

func (cli *commandLine) student(ctx context.Context, args []string) error {
	fs := cli.flagSet("student")
	id := fs.String("id", "", "The student ID.")
	if err := cli.parse(fs, args); err != nil {
		return err
	}
	if err := requireFlags(fs, *id); err != nil {
		return err
	}

	stu, err := cli.studentSvc.GetByID(ctx, *id)
	if err != nil {
		return err
	}
	return cli.print(stu)
}

func (cli *commandLine) addStudent(ctx context.Context, args []string) error {
	fs := cli.flagSet("addstudent")
	id := fs.String("id", "", "The student ID.")
	name := fs.String("name", "", "Full name.")
	email := fs.String("email", "", "Email address.")
	dept := fs.String("department", "", "Department.")
	year := fs.Int("year", 0, "Year of study.")
	image := fs.String("image", "", "Profile image URL (optional).")
	if err := cli.parse(fs, args); err != nil {
		return err
	}
	if err := requireFlags(fs, *id, *name, *email, *dept); err != nil {
		return err
	}

	ns := student.NewStudent{ID: *id, Name: *name, Email: *email, Department: *dept, Year: *year}
	if *image != "" {
		ns.ProfileImage = image
	}
	stu, err := cli.studentSvc.Create(ctx, ns)
	if err != nil {
		return err
	}
	return cli.print(stu)
}

func (cli *commandLine) updateStudent(ctx context.Context, args []string) error {
	fs := cli.flagSet("updatestudent")
	id := fs.String("id", "", "The student ID.")
	name := fs.String("name", "", "Full name.")
	email := fs.String("email", "", "Email address.")
	dept := fs.String("department", "", "Department.")
	year := fs.Int("year", 0, "Year of study.")
	status := fs.String("status", "", "Active or Inactive.")
	image := fs.String("image", "", "Profile image URL.")
	if err := cli.parse(fs, args); err != nil {
		return err
	}
	if err := requireFlags(fs, *id); err != nil {
		return err
	}

	var us student.UpdateStudent
	set := visited(fs)
	if set["name"] {
		us.Name = name
	}
	if set["email"] {
		us.Email = email
	}
	if set["department"] {
		us.Department = dept
	}
	if set["year"] {
		us.Year = year
	}
	if set["status"] {
		us.Status = status
	}
	if set["image"] {
		us.ProfileImage = image
	}

	stu, err := cli.studentSvc.Update(ctx, *id, us)
	if err != nil {
		return err
	}
	return cli.print(stu)
}

func (cli *commandLine) deleteStudent(ctx context.Context, args []string) error {
	fs := cli.flagSet("deletestudent")
	id := fs.String("id", "", "The student ID.")
	if err := cli.parse(fs, args); err != nil {
		return err
	}
	if err := requireFlags(fs, *id); err != nil {
		return err
	}

	if err := cli.studentSvc.Delete(ctx, *id); err != nil {
		return err
	}
	cli.printf("Deleted student %s", *id)
	return nil
}
