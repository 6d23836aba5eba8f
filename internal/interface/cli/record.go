package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campus-hub/campus-registry/internal/application/command"
	"github.com/campus-hub/campus-registry/pkg/logger"
)

func newAddStudentCommand(app *App) *cobra.Command {
	var (
		name      string
		age       int
		email     string
		studentID string
	)

	cmd := &cobra.Command{
		Use:   "add-student",
		Short: "Add a student record",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.SubmitStudent.Handle(cmd.Context(), command.SubmitStudentCommand{
				Name:      name,
				Age:       age,
				Email:     email,
				StudentID: studentID,
			})
			if err != nil {
				return err
			}

			app.Logger.Info("student added", logger.StudentID(res.Student.StudentID))
			fmt.Fprintf(cmd.OutOrStdout(), "added student %s (%s)\n", res.Student.Name, res.Student.StudentID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "student name")
	cmd.Flags().IntVar(&age, "age", 0, "student age")
	cmd.Flags().StringVar(&email, "email", "", "student email")
	cmd.Flags().StringVar(&studentID, "id", "", "student id (natural key)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func newAddInstructorCommand(app *App) *cobra.Command {
	var (
		name         string
		age          int
		email        string
		instructorID string
	)

	cmd := &cobra.Command{
		Use:   "add-instructor",
		Short: "Add an instructor record",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.SubmitInstructor.Handle(cmd.Context(), command.SubmitInstructorCommand{
				Name:         name,
				Age:          age,
				Email:        email,
				InstructorID: instructorID,
			})
			if err != nil {
				return err
			}

			app.Logger.Info("instructor added", logger.InstructorID(res.Instructor.InstructorID))
			fmt.Fprintf(cmd.OutOrStdout(), "added instructor %s (%s)\n", res.Instructor.Name, res.Instructor.InstructorID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "instructor name")
	cmd.Flags().IntVar(&age, "age", 0, "instructor age")
	cmd.Flags().StringVar(&email, "email", "", "instructor email")
	cmd.Flags().StringVar(&instructorID, "id", "", "instructor id (natural key)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func newAddCourseCommand(app *App) *cobra.Command {
	var (
		courseID     string
		courseName   string
		instructorID string
	)

	cmd := &cobra.Command{
		Use:   "add-course",
		Short: "Add a course record, optionally with an instructor",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.SubmitCourse.Handle(cmd.Context(), command.SubmitCourseCommand{
				CourseID:     courseID,
				CourseName:   courseName,
				InstructorID: instructorID,
			})
			if err != nil {
				return err
			}

			app.Logger.Info("course added", logger.CourseID(res.Course.CourseID))
			if res.Course.HasInstructor() {
				fmt.Fprintf(cmd.OutOrStdout(), "added course %s (%s) taught by %s\n",
					res.Course.CourseName, res.Course.CourseID, res.Course.InstructorID)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "added course %s (%s)\n", res.Course.CourseName, res.Course.CourseID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&courseID, "id", "", "course id (natural key)")
	cmd.Flags().StringVar(&courseName, "name", "", "course name")
	cmd.Flags().StringVar(&instructorID, "instructor", "", "instructor id (optional)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newUpdateCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update an existing record",
	}

	var (
		name  string
		age   int
		email string
	)

	student := &cobra.Command{
		Use:   "student <student-id>",
		Short: "Update a student's name, age, and email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			updated, err := app.Update.HandleStudent(cmd.Context(), command.UpdateStudentCommand{
				StudentID: args[0],
				Name:      name,
				Age:       age,
				Email:     email,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated student %s\n", updated.StudentID)
			return nil
		},
	}
	student.Flags().StringVar(&name, "name", "", "new name")
	student.Flags().IntVar(&age, "age", 0, "new age")
	student.Flags().StringVar(&email, "email", "", "new email")
	_ = student.MarkFlagRequired("name")
	_ = student.MarkFlagRequired("email")

	var (
		iname  string
		iage   int
		iemail string
	)

	instructor := &cobra.Command{
		Use:   "instructor <instructor-id>",
		Short: "Update an instructor's name, age, and email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			updated, err := app.Update.HandleInstructor(cmd.Context(), command.UpdateInstructorCommand{
				InstructorID: args[0],
				Name:         iname,
				Age:          iage,
				Email:        iemail,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated instructor %s\n", updated.InstructorID)
			return nil
		},
	}
	instructor.Flags().StringVar(&iname, "name", "", "new name")
	instructor.Flags().IntVar(&iage, "age", 0, "new age")
	instructor.Flags().StringVar(&iemail, "email", "", "new email")
	_ = instructor.MarkFlagRequired("name")
	_ = instructor.MarkFlagRequired("email")

	var cname string

	course := &cobra.Command{
		Use:   "course <course-id>",
		Short: "Update a course's display name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			updated, err := app.Update.HandleCourse(cmd.Context(), command.UpdateCourseCommand{
				CourseID:   args[0],
				CourseName: cname,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated course %s\n", updated.CourseID)
			return nil
		},
	}
	course.Flags().StringVar(&cname, "name", "", "new course name")
	_ = course.MarkFlagRequired("name")

	cmd.AddCommand(student, instructor, course)
	return cmd
}

func newRemoveCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a record by natural key",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "student <student-id>",
			Short: "Remove a student and its enrollments",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.Remove.RemoveStudent(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed student %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "instructor <instructor-id>",
			Short: "Remove an instructor; its courses keep no instructor",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.Remove.RemoveInstructor(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed instructor %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "course <course-id>",
			Short: "Remove a course and its enrollments",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.Remove.RemoveCourse(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed course %s\n", args[0])
				return nil
			},
		},
	)

	return cmd
}
